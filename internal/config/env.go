package config

import (
	"HeadTurner/pkg/gemini"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// AppConfig is read once at startup and handed to every component that needs it.
type AppConfig struct {
	Env            string
	Port           string
	Gemini         gemini.Config
	MaxUploadBytes int64
	EditRate       rate.Limit
	EditBurst      int
}

const (
	defaultPort           = "3000"
	defaultMaxUploadBytes = 10 * 1024 * 1024
	defaultEditsPerMinute = 10
	defaultEditBurst      = 3
)

// FromEnv builds the configuration from the process environment. A missing
// API key is reported here, before any request is served.
func FromEnv() (*AppConfig, error) {
	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY (or GOOGLE_API_KEY)", gemini.ErrMissingAPIKey)
	}

	cfg := &AppConfig{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("APP_PORT", defaultPort),
		Gemini: gemini.Config{
			APIKey:    apiKey,
			ModelName: getEnv("GEMINI_MODEL_NAME", gemini.DefaultModelName),
			Timeout:   gemini.DefaultTimeout,
		},
		MaxUploadBytes: defaultMaxUploadBytes,
		EditRate:       rate.Limit(float64(defaultEditsPerMinute) / 60),
		EditBurst:      defaultEditBurst,
	}

	if v := os.Getenv("GEMINI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid GEMINI_TIMEOUT %q: must be a positive duration such as 45s", v)
		}
		cfg.Gemini.Timeout = d
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES %q", v)
		}
		cfg.MaxUploadBytes = n
	}

	if v := os.Getenv("EDITS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid EDITS_PER_MINUTE %q", v)
		}
		cfg.EditRate = rate.Limit(float64(n) / 60)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
