package poseService

import (
	"HeadTurner/internal/api/pose"
	"HeadTurner/internal/entity"
	"HeadTurner/pkg/gemini"
	"HeadTurner/pkg/prompt"
	"HeadTurner/pkg/utils"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGemini struct {
	calls       int
	mimeType    string
	instruction string
	image       *gemini.Image
	models      []gemini.Model
	err         error
}

func (f *fakeGemini) EditImage(_ context.Context, mimeType string, _ []byte, instruction string) (*gemini.Image, error) {
	f.calls++
	f.mimeType = mimeType
	f.instruction = instruction
	return f.image, f.err
}

func (f *fakeGemini) ListModels(context.Context) ([]gemini.Model, error) {
	f.calls++
	return f.models, f.err
}

func (f *fakeGemini) ModelName() string { return "test-model" }

func (f *fakeGemini) Close() error { return nil }

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newService(g gemini.IGemini) IPoseService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewPoseService(logger, g, utils.New(0))
}

func TestEditPose_Success(t *testing.T) {
	edited := pngBytes(t, 4, 3)
	fake := &fakeGemini{image: &gemini.Image{MIMEType: "image/png", Data: edited, Note: "done"}}
	svc := newService(fake)

	out, err := svc.EditPose(context.Background(), pose.EditInput{Image: pngBytes(t, 8, 8), Yaw: 20, Pitch: -10})
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "image/png", fake.mimeType)
	assert.Equal(t, prompt.Build(entity.Pose{Yaw: 20, Pitch: -10}), fake.instruction)
	assert.Equal(t, edited, out.Image.Data)
	assert.Equal(t, 4, out.Image.Width)
	assert.Equal(t, 3, out.Image.Height)
	assert.Equal(t, "done", out.Image.Note)
	assert.Equal(t, "test-model", out.Request.Model)
}

func TestEditPose_FillsMissingMIMEType(t *testing.T) {
	fake := &fakeGemini{image: &gemini.Image{Data: pngBytes(t, 2, 2)}}

	out, err := newService(fake).EditPose(context.Background(), pose.EditInput{Image: pngBytes(t, 2, 2)})
	require.NoError(t, err)
	assert.Equal(t, "image/png", out.Image.MIMEType)
}

func TestEditPose_ValidationNeverCallsRemote(t *testing.T) {
	tests := []struct {
		name  string
		input pose.EditInput
	}{
		{"missing image", pose.EditInput{Yaw: 10}},
		{"garbage image", pose.EditInput{Image: []byte("not an image")}},
		{"yaw out of range", pose.EditInput{Image: []byte{1}, Yaw: 46}},
		{"pitch out of range", pose.EditInput{Image: []byte{1}, Pitch: -31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGemini{}
			_, err := newService(fake).EditPose(context.Background(), tt.input)

			assert.ErrorIs(t, err, pose.ErrValidation)
			assert.Equal(t, entity.FailureValidation, pose.KindOf(err))
			assert.Zero(t, fake.calls)
		})
	}
}

func TestEditPose_RemoteFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want entity.FailureKind
	}{
		{"rejected credential", fmt.Errorf("%w: API key not valid", gemini.ErrUnauthenticated), entity.FailureConfiguration},
		{"missing credential", gemini.ErrMissingAPIKey, entity.FailureConfiguration},
		{"network", fmt.Errorf("%w: connection refused", gemini.ErrUnreachable), entity.FailureTransport},
		{"deadline", context.DeadlineExceeded, entity.FailureTransport},
		{"service error payload", fmt.Errorf("%w: quota exceeded", gemini.ErrRejected), entity.FailureService},
		{"text only reply", fmt.Errorf("%w: refused", gemini.ErrNoImage), entity.FailureService},
		{"unclassified", errors.New("boom"), entity.FailureService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGemini{err: tt.err}
			out, err := newService(fake).EditPose(context.Background(), pose.EditInput{Image: pngBytes(t, 2, 2)})

			assert.Nil(t, out)
			assert.Equal(t, tt.want, pose.KindOf(err))
			assert.Contains(t, err.Error(), tt.err.Error())
		})
	}
}

func TestEditPose_CorruptedResponseIsDecodeError(t *testing.T) {
	fake := &fakeGemini{image: &gemini.Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G', 0, 0}}}

	out, err := newService(fake).EditPose(context.Background(), pose.EditInput{Image: pngBytes(t, 2, 2)})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, pose.ErrDecode)
	assert.Equal(t, entity.FailureDecode, pose.KindOf(err))
}

func TestEditPose_NoClientIsConfigurationError(t *testing.T) {
	_, err := newService(nil).EditPose(context.Background(), pose.EditInput{Image: pngBytes(t, 2, 2)})
	assert.ErrorIs(t, err, pose.ErrConfiguration)
}

func TestPreview(t *testing.T) {
	svc := newService(nil)

	preview, err := svc.Preview(0, 0)
	require.NoError(t, err)
	assert.Equal(t, prompt.NoChange, preview.Direction)
	assert.Contains(t, preview.Indicator, "<svg")

	_, err = svc.Preview(90, 0)
	assert.ErrorIs(t, err, pose.ErrValidation)
}

func TestIndicator(t *testing.T) {
	svc := newService(nil)

	svg, err := svc.Indicator(10, 10, 0)
	require.NoError(t, err)
	assert.Contains(t, svg, fmt.Sprintf(`width="%d"`, pose.DefaultIndicatorSize))

	_, err = svc.Indicator(0, 45, 100)
	assert.ErrorIs(t, err, pose.ErrValidation)
}

func TestListModels(t *testing.T) {
	fake := &fakeGemini{models: []gemini.Model{{Name: "models/gemini-2.5-flash-image", Methods: []string{"generateContent"}}}}

	resp, err := newService(fake).ListModels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-model", resp.Current)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "models/gemini-2.5-flash-image", resp.Data[0].Name)

	failing := &fakeGemini{err: fmt.Errorf("%w: bad key", gemini.ErrUnauthenticated)}
	_, err = newService(failing).ListModels(context.Background())
	assert.ErrorIs(t, err, pose.ErrConfiguration)
}
