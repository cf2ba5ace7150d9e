package poseService

import (
	"HeadTurner/internal/api/pose"
	"HeadTurner/pkg/gemini"
	"HeadTurner/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IPoseService interface {
	EditPose(ctx context.Context, input pose.EditInput) (*pose.EditOutput, error)
	Preview(yaw, pitch int) (*pose.PreviewResponse, error)
	Indicator(yaw, pitch, size int) (string, error)
	ListModels(ctx context.Context) (*pose.ModelsResponse, error)
}

type poseService struct {
	log    *logrus.Logger
	gemini gemini.IGemini
	utils  utils.IUtils
}

func NewPoseService(
	log *logrus.Logger,
	gemini gemini.IGemini,
	utils utils.IUtils,
) IPoseService {
	return &poseService{
		log:    log,
		gemini: gemini,
		utils:  utils,
	}
}
