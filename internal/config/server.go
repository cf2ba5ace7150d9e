package config

import (
	poseHandler "HeadTurner/internal/api/pose/handler"
	poseService "HeadTurner/internal/api/pose/service"
	"HeadTurner/internal/middleware"
	"HeadTurner/pkg/gemini"
	"HeadTurner/pkg/utils"
	"HeadTurner/web"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	cfg          *AppConfig
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	geminiClient gemini.IGemini
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	return server, nil
}

func WithConfig(cfg *AppConfig) ServerOption {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.cfg == nil {
			return fmt.Errorf("config must be set before middleware")
		}
		s.middleware = middleware.New(s.log, s.cfg.EditRate, s.cfg.EditBurst)
		return nil
	}
}

// WithGeminiClient builds the client from the config. Pass a ready client to
// replace it, e.g. in tests.
func WithGeminiClient(clients ...gemini.IGemini) ServerOption {
	return func(s *Server) error {
		if len(clients) > 0 {
			s.geminiClient = clients[0]
			return nil
		}

		if s.cfg == nil {
			return fmt.Errorf("config must be set before the Gemini client")
		}

		client, err := gemini.NewGeminiClient(s.cfg.Gemini)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		if s.cfg == nil {
			return fmt.Errorf("config must be set before utils")
		}
		s.utils = utils.New(s.cfg.MaxUploadBytes)
		return nil
	}
}

func (s *Server) RegisterHandler() {
	poseServices := poseService.NewPoseService(s.log, s.geminiClient, s.utils)
	poseHandlers := poseHandler.New(s.log, s.validator, s.middleware, poseServices, s.utils, s.cfg.Gemini.Timeout)

	s.handlers = append(s.handlers, poseHandlers)
}

// Mount attaches middleware and API routes; Run calls it before listening.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	s.setupPage()
	s.setupHealthCheck()

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) Run() error {
	s.Mount()

	if err := s.engine.Listen(fmt.Sprintf(":%s", s.cfg.Port)); err != nil {
		return err
	}

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	if s.geminiClient != nil {
		if closeErr := s.geminiClient.Close(); closeErr != nil {
			s.log.Errorf("Failed to close Gemini client: %v", closeErr)
		}
	}

	return err
}

func (s *Server) setupPage() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.Send(web.Index)
	})
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/healthz", func(ctx *fiber.Ctx) error {
		model := ""
		if s.geminiClient != nil {
			model = s.geminiClient.ModelName()
		}
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
			"model":   model,
		})
	})
}
