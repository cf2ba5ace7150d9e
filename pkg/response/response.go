package response

import (
	"HeadTurner/internal/entity"
	"errors"
	"net/http"
)

// Error is a failure the page can show: an HTTP status plus the kind it is
// reported under.
type Error struct {
	Code int
	Kind entity.FailureKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}

	return e.Code == t.Code && e.Kind == t.Kind && e.Err.Error() == t.Err.Error()
}

func NewError(code int, kind entity.FailureKind, err string) error {
	return &Error{code, kind, errors.New(err)}
}

// KindOf returns the kind carried by the first *Error in err's chain.
func KindOf(err error) entity.FailureKind {
	var respErr *Error
	if errors.As(err, &respErr) && respErr.Kind != "" {
		return respErr.Kind
	}
	return entity.FailureUnexpected
}

// StatusOf returns the HTTP status carried by err, 500 when there is none.
func StatusOf(err error) int {
	var respErr *Error
	if errors.As(err, &respErr) && respErr.Code != 0 {
		return respErr.Code
	}
	return http.StatusInternalServerError
}

// KindForStatus names the failure kind for a status raised outside the
// domain code, such as a router miss or an oversized body.
func KindForStatus(code int) entity.FailureKind {
	switch {
	case code == http.StatusNotFound, code == http.StatusMethodNotAllowed:
		return entity.FailureNotFound
	case code == http.StatusTooManyRequests:
		return entity.FailureRateLimited
	case code == http.StatusGatewayTimeout, code == http.StatusRequestTimeout:
		return entity.FailureTransport
	case code >= 400 && code < 500:
		return entity.FailureValidation
	default:
		return entity.FailureUnexpected
	}
}
