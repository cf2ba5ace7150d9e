package gemini

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrMissingAPIKey   = errors.New("gemini API key is required")
	ErrInvalidInput    = errors.New("invalid gemini request")
	ErrUnauthenticated = errors.New("gemini rejected the API credential")
	ErrUnreachable     = errors.New("gemini could not be reached")
	ErrRejected        = errors.New("gemini reported an error")
	ErrNoImage         = errors.New("gemini returned no image")
)

const reasonAPIKeyInvalid = "API_KEY_INVALID"

// classify maps a GenerateContent/ListModels error onto one of the sentinel
// errors above, keeping the service's own message as detail.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("%w: %v", ErrRejected, blocked)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Reason() == reasonAPIKeyInvalid {
			return fmt.Errorf("%w: %s", ErrUnauthenticated, message(apiErr))
		}

		switch apiErr.HTTPCode() {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrUnauthenticated, message(apiErr))
		case http.StatusRequestTimeout, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return fmt.Errorf("%w: %s", ErrUnreachable, message(apiErr))
		}

		if st := apiErr.GRPCStatus(); st != nil {
			return byCode(st.Code(), st.Message())
		}

		return fmt.Errorf("%w: %s", ErrRejected, message(apiErr))
	}

	if st, ok := status.FromError(err); ok {
		return byCode(st.Code(), st.Message())
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return fmt.Errorf("%w: %v", ErrRejected, err)
}

func byCode(code codes.Code, msg string) error {
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, msg)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", ErrUnreachable, msg)
	default:
		return fmt.Errorf("%w: %s (%s)", ErrRejected, msg, code)
	}
}

func message(apiErr *apierror.APIError) string {
	if st := apiErr.GRPCStatus(); st != nil && st.Message() != "" {
		return st.Message()
	}
	return apiErr.Error()
}
