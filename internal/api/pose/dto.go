package pose

import "HeadTurner/internal/entity"

type EditPoseRequest struct {
	Yaw   int `form:"yaw" json:"yaw" query:"yaw" validate:"min=-45,max=45"`
	Pitch int `form:"pitch" json:"pitch" query:"pitch" validate:"min=-30,max=30"`
}

type IndicatorRequest struct {
	Yaw   int `query:"yaw" validate:"min=-45,max=45"`
	Pitch int `query:"pitch" validate:"min=-30,max=30"`
	Size  int `query:"size" validate:"omitempty,min=64,max=1024"`
}

type EditInput struct {
	Image []byte
	Yaw   int
	Pitch int
}

type EditOutput struct {
	Image   *entity.EditedImage
	Request entity.EditRequest
}

type PreviewResponse struct {
	Pose        entity.Pose `json:"pose"`
	Direction   string      `json:"direction"`
	Instruction string      `json:"instruction"`
	Indicator   string      `json:"indicator_svg"`
}

type ModelsResponse struct {
	Current string      `json:"current"`
	Data    []ModelInfo `json:"data"`
}

type ModelInfo struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Methods     []string `json:"supported_generation_methods"`
}

const DefaultIndicatorSize = 240
