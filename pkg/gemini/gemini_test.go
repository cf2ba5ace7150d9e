package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func apiError(t *testing.T, err error) error {
	t.Helper()
	apiErr, ok := apierror.FromError(err)
	require.True(t, ok)
	return apiErr
}

func TestNewGeminiClient_MissingKey(t *testing.T) {
	client, err := NewGeminiClient(Config{APIKey: "  "})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewGeminiClient_ConstructionFailureIsNotNetwork(t *testing.T) {
	original := newGenaiClient
	t.Cleanup(func() { newGenaiClient = original })

	newGenaiClient = func(context.Context, ...option.ClientOption) (*genai.Client, error) {
		return nil, errors.New("invalid client option")
	}

	client, err := NewGeminiClient(Config{APIKey: "key"})
	assert.Nil(t, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid client option")
	assert.NotErrorIs(t, err, ErrUnreachable)
	assert.NotErrorIs(t, err, ErrMissingAPIKey)
}

func TestEditImage_RejectsInvalidInputBeforeDispatch(t *testing.T) {
	// A nil genai client would panic if the request were dispatched.
	g := &geminiClient{modelName: DefaultModelName, timeout: DefaultTimeout}

	tests := []struct {
		name        string
		mimeType    string
		image       []byte
		instruction string
	}{
		{"nil image", "image/png", nil, "turn the head"},
		{"empty image", "image/png", []byte{}, "turn the head"},
		{"blank instruction", "image/png", []byte{1, 2, 3}, "   "},
		{"not an image mime type", "text/plain", []byte{1, 2, 3}, "turn the head"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.EditImage(context.Background(), tt.mimeType, tt.image, tt.instruction)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestClassify(t *testing.T) {
	keyInvalid, err := status.New(codes.InvalidArgument, "API key not valid. Please pass a valid API key.").
		WithDetails(&errdetails.ErrorInfo{Reason: reasonAPIKeyInvalid, Domain: "googleapis.com"})
	require.NoError(t, err)

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"grpc unauthenticated", apiError(t, status.Error(codes.Unauthenticated, "bad key")), ErrUnauthenticated},
		{"grpc permission denied", apiError(t, status.Error(codes.PermissionDenied, "no access")), ErrUnauthenticated},
		{"invalid api key reason", apiError(t, keyInvalid.Err()), ErrUnauthenticated},
		{"http 401", apiError(t, &googleapi.Error{Code: 401, Message: "unauthorized"}), ErrUnauthenticated},
		{"http 503", apiError(t, &googleapi.Error{Code: 503, Message: "unavailable"}), ErrUnreachable},
		{"grpc unavailable", apiError(t, status.Error(codes.Unavailable, "connection refused")), ErrUnreachable},
		{"raw grpc status", status.Error(codes.ResourceExhausted, "quota"), ErrRejected},
		{"grpc invalid argument", apiError(t, status.Error(codes.InvalidArgument, "bad image")), ErrRejected},
		{"deadline", fmt.Errorf("rpc: %w", context.DeadlineExceeded), ErrUnreachable},
		{"canceled", context.Canceled, ErrUnreachable},
		{"blocked", &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}, ErrRejected},
		{"unknown", errors.New("boom"), ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.NoError(t, classify(nil))
}

func TestClassify_KeepsServiceMessage(t *testing.T) {
	got := classify(apiError(t, status.Error(codes.Unauthenticated, "API key expired")))
	assert.Contains(t, got.Error(), "API key expired")
}

func TestExtractImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	t.Run("image with text note", func(t *testing.T) {
		res := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Here is the edited photo."),
				genai.Blob{MIMEType: "image/png", Data: png},
			}},
		}}}

		img, err := extractImage(res)
		require.NoError(t, err)
		assert.Equal(t, png, img.Data)
		assert.Equal(t, "image/png", img.MIMEType)
		assert.Equal(t, "Here is the edited photo.", img.Note)
	})

	t.Run("text only reply", func(t *testing.T) {
		res := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("I can't help with that.")}},
		}}}

		_, err := extractImage(res)
		assert.ErrorIs(t, err, ErrNoImage)
		assert.Contains(t, err.Error(), "I can't help with that.")
	})

	t.Run("empty blob", func(t *testing.T) {
		res := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
		}}}

		_, err := extractImage(res)
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := extractImage(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, ErrNoImage)

		_, err = extractImage(nil)
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("blocked prompt", func(t *testing.T) {
		_, err := extractImage(&genai.GenerateContentResponse{
			PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
		})
		assert.ErrorIs(t, err, ErrRejected)
	})
}

func TestSupports(t *testing.T) {
	assert.True(t, supports([]string{"countTokens", "generateContent"}, generateContentMethod))
	assert.False(t, supports([]string{"embedContent"}, generateContentMethod))
	assert.False(t, supports(nil, generateContentMethod))
}
