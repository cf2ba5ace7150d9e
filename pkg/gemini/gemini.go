package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	DefaultModelName = "gemini-2.5-flash-image"
	DefaultTimeout   = 60 * time.Second

	generateContentMethod = "generateContent"
)

var newGenaiClient = genai.NewClient

type Config struct {
	APIKey    string
	ModelName string
	Timeout   time.Duration
}

type Image struct {
	MIMEType string
	Data     []byte
	// Text the model sent alongside the image, if any.
	Note string
}

type Model struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Methods     []string `json:"supported_generation_methods"`
}

type IGemini interface {
	EditImage(ctx context.Context, mimeType string, image []byte, instruction string) (*Image, error)
	ListModels(ctx context.Context) ([]Model, error)
	ModelName() string
	Close() error
}

type geminiClient struct {
	modelName string
	timeout   time.Duration
	client    *genai.Client
}

func NewGeminiClient(cfg Config) (IGemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	if cfg.ModelName == "" {
		cfg.ModelName = DefaultModelName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := newGenaiClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		modelName: cfg.ModelName,
		timeout:   cfg.Timeout,
		client:    client,
	}, nil
}

func (g *geminiClient) ModelName() string {
	return g.modelName
}

// EditImage sends the image and instruction in a single GenerateContent call.
// There is no retry; every failure comes back classified.
func (g *geminiClient) EditImage(ctx context.Context, mimeType string, image []byte, instruction string) (*Image, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image data is empty", ErrInvalidInput)
	}
	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("%w: instruction is empty", ErrInvalidInput)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: unsupported mime type %q", ErrInvalidInput, mimeType)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.modelName)
	res, err := model.GenerateContent(ctx,
		genai.Text(instruction),
		genai.Blob{MIMEType: mimeType, Data: image},
	)
	if err != nil {
		return nil, classify(err)
	}

	return extractImage(res)
}

func extractImage(res *genai.GenerateContentResponse) (*Image, error) {
	if res == nil || len(res.Candidates) == 0 {
		if res != nil && res.PromptFeedback != nil && res.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return nil, fmt.Errorf("%w: prompt blocked (%v)", ErrRejected, res.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("%w: response has no candidates", ErrNoImage)
	}

	candidate := res.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: candidate has no content (finish reason %v)", ErrNoImage, candidate.FinishReason)
	}

	var notes []string
	var result *Image
	for _, part := range candidate.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			if s := strings.TrimSpace(string(p)); s != "" {
				notes = append(notes, s)
			}
		case genai.Blob:
			if result == nil && len(p.Data) > 0 {
				result = &Image{MIMEType: p.MIMEType, Data: p.Data}
			}
		}
	}

	note := strings.Join(notes, "\n")
	if result == nil {
		if note != "" {
			return nil, fmt.Errorf("%w: model replied with text only: %s", ErrNoImage, note)
		}
		return nil, fmt.Errorf("%w: response carries no image part", ErrNoImage)
	}

	result.Note = note
	return result, nil
}

// ListModels returns the models the key can call with generateContent.
func (g *geminiClient) ListModels(ctx context.Context) ([]Model, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var models []Model
	it := g.client.ListModels(ctx)
	for {
		info, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify(err)
		}

		if !supports(info.SupportedGenerationMethods, generateContentMethod) {
			continue
		}

		models = append(models, Model{
			Name:        info.Name,
			DisplayName: info.DisplayName,
			Description: info.Description,
			Methods:     info.SupportedGenerationMethods,
		})
	}

	return models, nil
}

func supports(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

func (g *geminiClient) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
