package poseHandler

import (
	"HeadTurner/internal/api/pose"
	"HeadTurner/internal/entity"
	contextPkg "HeadTurner/pkg/context"
	"HeadTurner/pkg/handlerUtil"
	"HeadTurner/pkg/log"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

const rawFormat = "raw"

// EditPose accepts a multipart form with an "image" file and the "yaw" and
// "pitch" slider values.
func (h *PoseHandler) EditPose(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req pose.EditPoseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return errHandler.Handle(ctx, requestID, fmt.Errorf("%w: an image file is required", pose.ErrValidation), ctx.Path(), "read_form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
		"yaw":        req.Yaw,
		"pitch":      req.Pitch,
	}).Debug("Processing pose edit request")

	data, err := h.utils.ReadImageFile(file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, fmt.Errorf("%w: %v", pose.ErrValidation, err), ctx.Path(), "read_image_file")
	}

	out, err := h.poseService.EditPose(c, pose.EditInput{
		Image: data,
		Yaw:   req.Yaw,
		Pitch: req.Pitch,
	})
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "edit_pose")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"mime_type":  out.Image.MIMEType,
		"size":       len(out.Image.Data),
	}).Info("Pose edit successful")

	if ctx.Query("format") == rawFormat {
		ctx.Set(fiber.HeaderContentType, out.Image.MIMEType)
		return ctx.Status(fiber.StatusOK).Send(out.Image.Data)
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, entity.NewEditSuccess(out.Image, out.Request.Instruction).Payload())
}

func (h *PoseHandler) Preview(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req pose.EditPoseRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	preview, err := h.poseService.Preview(req.Yaw, req.Pitch)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "preview")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, preview)
}

func (h *PoseHandler) Indicator(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req pose.IndicatorRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	svg, err := h.poseService.Indicator(req.Yaw, req.Pitch, req.Size)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "indicator")
	}

	ctx.Set(fiber.HeaderContentType, "image/svg+xml")
	ctx.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return ctx.Status(fiber.StatusOK).SendString(svg)
}

func (h *PoseHandler) ListModels(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	models, err := h.poseService.ListModels(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_models")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, models)
}
