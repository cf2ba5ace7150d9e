package middleware

import (
	"HeadTurner/internal/entity"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestApp(limit float64, burst int) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := New(logger, rate.Limit(limit), burst)
	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewLoggingMiddleware())
	app.Post("/edit", m.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})
	return app
}

func TestRequestID(t *testing.T) {
	app := newTestApp(100, 100)

	req := httptest.NewRequest(http.MethodPost, "/edit", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Len(t, string(body), 26)
	assert.Equal(t, string(body), resp.Header.Get(RequestIDKey))

	req = httptest.NewRequest(http.MethodPost, "/edit", nil)
	req.Header.Set(RequestIDKey, "client-supplied")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "client-supplied", string(body))
}

func TestRateLimiter(t *testing.T) {
	app := newTestApp(0.001, 2)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/edit", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/edit", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	var failure entity.EditFailure
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&failure))
	assert.Equal(t, entity.FailureRateLimited, failure.Kind)
	assert.Equal(t, entity.ResultFailure, failure.Status)
}

func TestSanitizeRequestBody(t *testing.T) {
	assert.Equal(t, "[multipart body]", sanitizeRequestBody("multipart/form-data; boundary=x", []byte("--x")))
	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody("text/plain", []byte("hello")))
	assert.JSONEq(t, `{"yaw":10,"api_key":"[SECRET]"}`, sanitizeRequestBody("application/json", []byte(`{"yaw":10,"api_key":"abc"}`)))
}

func TestLoggingMiddleware_LogsStatusOfReturnedError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := New(logger, rate.Inf, 1)

	app := fiber.New()
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewLoggingMiddleware())
	app.Get("/ws", func(c *fiber.Ctx) error {
		return fiber.ErrUpgradeRequired
	})

	tests := []struct {
		target     string
		wantStatus int
	}{
		{"/ws", fiber.StatusUpgradeRequired},
		{"/missing", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			hook.Reset()

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.WarnLevel, entry.Level)
			assert.Equal(t, "Client error", entry.Message)
			assert.Equal(t, tt.wantStatus, entry.Data["status"])
		})
	}
}
