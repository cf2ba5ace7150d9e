package poseHandler

import (
	poseService "HeadTurner/internal/api/pose/service"
	"HeadTurner/internal/middleware"
	"HeadTurner/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"time"
)

type PoseHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	poseService poseService.IPoseService
	utils       utils.IUtils
	timeout     time.Duration
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ps poseService.IPoseService,
	utils utils.IUtils,
	timeout time.Duration,
) *PoseHandler {
	return &PoseHandler{
		log:         log,
		validator:   validator,
		middleware:  middleware,
		poseService: ps,
		utils:       utils,
		timeout:     timeout,
	}
}

func (h *PoseHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	p := srv.Group("/pose")
	p.Get("/preview", h.Preview)
	p.Get("/indicator", h.Indicator)
	p.Post("/edit", h.middleware.NewRateLimiter, h.EditPose)
	p.Use("/ws", wsMiddleware)
	p.Get("/ws", websocket.New(h.handlePreviewWebSocket))

	srv.Get("/models", h.ListModels)
}
