package poseHandler

import (
	"HeadTurner/internal/api/pose"
	"HeadTurner/internal/entity"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"time"
)

const wsReadTimeout = 5 * time.Minute

// handlePreviewWebSocket answers every {"yaw":..,"pitch":..} message with a
// fresh preview so the page can follow the sliders without polling.
func (h *PoseHandler) handlePreviewWebSocket(c *websocket.Conn) {
	h.log.Info("Pose preview WebSocket client connected")
	defer h.log.Info("Pose preview WebSocket client disconnected")

	for {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		_, data, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Errorf("Pose preview WebSocket error: %v", err)
			}
			break
		}

		var msg pose.EditPoseRequest
		var reply interface{}
		if err := jsoniter.Unmarshal(data, &msg); err != nil {
			reply = entity.NewEditFailure(entity.FailureValidation, "malformed pose message: "+err.Error()).Payload()
		} else if err := h.validator.Struct(msg); err != nil {
			reply = entity.NewEditFailure(entity.FailureValidation, err.Error()).Payload()
		} else if preview, err := h.poseService.Preview(msg.Yaw, msg.Pitch); err != nil {
			reply = entity.NewEditFailure(pose.KindOf(err), err.Error()).Payload()
		} else {
			reply = preview
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(reply); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}
	}
}
