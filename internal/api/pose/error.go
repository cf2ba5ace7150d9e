package pose

import (
	"HeadTurner/internal/entity"
	"HeadTurner/pkg/response"
	"net/http"
)

var (
	ErrValidation    = response.NewError(http.StatusBadRequest, entity.FailureValidation, "invalid edit request")
	ErrConfiguration = response.NewError(http.StatusServiceUnavailable, entity.FailureConfiguration, "image editing service credentials are missing or invalid")
	ErrTransport     = response.NewError(http.StatusGatewayTimeout, entity.FailureTransport, "could not reach the image editing service")
	ErrService       = response.NewError(http.StatusBadGateway, entity.FailureService, "image editing service reported an error")
	ErrDecode        = response.NewError(http.StatusBadGateway, entity.FailureDecode, "image editing service returned data that is not an image")
	ErrRateLimited   = response.NewError(http.StatusTooManyRequests, entity.FailureRateLimited, "too many edit requests, wait a moment and try again")
)

// KindOf reports which failure kind err belongs to.
func KindOf(err error) entity.FailureKind {
	return response.KindOf(err)
}
