package poseService

import (
	"HeadTurner/internal/api/pose"
	"HeadTurner/internal/entity"
	"HeadTurner/pkg/gemini"
	"HeadTurner/pkg/indicator"
	"HeadTurner/pkg/log"
	"HeadTurner/pkg/prompt"
	"errors"
	"fmt"
	"golang.org/x/net/context"
	"strings"
	"time"
)

func (s *poseService) newEditRequest(input pose.EditInput) (*entity.EditRequest, error) {
	if len(input.Image) == 0 {
		return nil, fmt.Errorf("%w: an image is required", pose.ErrValidation)
	}

	p, err := entity.NewPose(input.Yaw, input.Pitch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pose.ErrValidation, err)
	}

	info, err := s.utils.DecodeImage(input.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: uploaded file is not a readable image", pose.ErrValidation)
	}
	if !info.Format.IsUploadable() {
		return nil, fmt.Errorf("%w: %s images are not supported, use JPEG or PNG", pose.ErrValidation, info.Format)
	}

	req := &entity.EditRequest{
		Image: entity.SourceImage{
			Data:   input.Image,
			Format: info.Format,
		},
		Pose:        p,
		Instruction: prompt.Build(p),
	}
	if s.gemini != nil {
		req.Model = s.gemini.ModelName()
	}

	return req, nil
}

func (s *poseService) EditPose(ctx context.Context, input pose.EditInput) (*pose.EditOutput, error) {
	req, err := s.newEditRequest(input)
	if err != nil {
		return nil, err
	}

	if s.gemini == nil {
		return nil, fmt.Errorf("%w: no gemini client configured", pose.ErrConfiguration)
	}

	start := time.Now()
	s.log.WithFields(log.Fields{
		"request_id": log.RequestIDFrom(ctx),
		"model":      req.Model,
		"yaw":        req.Pose.Yaw,
		"pitch":      req.Pose.Pitch,
		"format":     req.Image.Format,
		"image_size": len(req.Image.Data),
	}).Info("Dispatching pose edit")

	result, err := s.gemini.EditImage(ctx, req.Image.Format.MIMEType(), req.Image.Data, req.Instruction)
	if err != nil {
		mapped := mapGeminiError(err)
		s.log.WithFields(log.Fields{
			"request_id": log.RequestIDFrom(ctx),
			"error":      err.Error(),
			"kind":       pose.KindOf(mapped),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Warn("Pose edit failed")
		return nil, mapped
	}

	info, err := s.utils.DecodeImage(result.Data)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": log.RequestIDFrom(ctx),
			"mime_type":  result.MIMEType,
			"size":       len(result.Data),
		}).Warn("Model returned undecodable image data")
		return nil, fmt.Errorf("%w: %v", pose.ErrDecode, err)
	}

	mimeType := result.MIMEType
	if !strings.HasPrefix(mimeType, "image/") {
		mimeType = s.utils.SniffMIMEType(result.Data)
	}

	s.log.WithFields(log.Fields{
		"request_id": log.RequestIDFrom(ctx),
		"mime_type":  mimeType,
		"width":      info.Width,
		"height":     info.Height,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("Pose edit completed")

	return &pose.EditOutput{
		Image: &entity.EditedImage{
			Data:     result.Data,
			MIMEType: mimeType,
			Format:   info.Format,
			Width:    info.Width,
			Height:   info.Height,
			Note:     result.Note,
		},
		Request: *req,
	}, nil
}

func (s *poseService) Preview(yaw, pitch int) (*pose.PreviewResponse, error) {
	p, err := entity.NewPose(yaw, pitch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pose.ErrValidation, err)
	}

	return &pose.PreviewResponse{
		Pose:        p,
		Direction:   prompt.Direction(p),
		Instruction: prompt.Build(p),
		Indicator:   indicator.SVG(float64(p.Yaw), float64(p.Pitch), pose.DefaultIndicatorSize),
	}, nil
}

func (s *poseService) Indicator(yaw, pitch, size int) (string, error) {
	p, err := entity.NewPose(yaw, pitch)
	if err != nil {
		return "", fmt.Errorf("%w: %v", pose.ErrValidation, err)
	}
	if size == 0 {
		size = pose.DefaultIndicatorSize
	}

	return indicator.SVG(float64(p.Yaw), float64(p.Pitch), size), nil
}

func (s *poseService) ListModels(ctx context.Context) (*pose.ModelsResponse, error) {
	if s.gemini == nil {
		return nil, fmt.Errorf("%w: no gemini client configured", pose.ErrConfiguration)
	}

	models, err := s.gemini.ListModels(ctx)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	resp := &pose.ModelsResponse{
		Current: s.gemini.ModelName(),
		Data:    make([]pose.ModelInfo, 0, len(models)),
	}
	for _, m := range models {
		resp.Data = append(resp.Data, pose.ModelInfo{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Description: m.Description,
			Methods:     m.Methods,
		})
	}

	return resp, nil
}

func mapGeminiError(err error) error {
	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey), errors.Is(err, gemini.ErrUnauthenticated):
		return fmt.Errorf("%w: %v", pose.ErrConfiguration, err)
	case errors.Is(err, gemini.ErrInvalidInput):
		return fmt.Errorf("%w: %v", pose.ErrValidation, err)
	case errors.Is(err, gemini.ErrUnreachable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", pose.ErrTransport, err)
	default:
		return fmt.Errorf("%w: %v", pose.ErrService, err)
	}
}
