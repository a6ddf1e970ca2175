package placement

import (
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/image-cropper/pkg/types"
)

// createTestImage draws a busy checkerboard subject in the left third of a flat background
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{90, 120, 160, 255}
			if x < width/3 && (x/8+y/8)%2 == 0 {
				c = color.RGBA{230, 40, 30, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

type fakeClient struct {
	result *types.LocateResult
	err    error
	model  string
	prompt string
	imgB64 string
}

func (f *fakeClient) LocateSubject(_ context.Context, model, prompt, imgB64 string) (*types.LocateResult, error) {
	f.model, f.prompt, f.imgB64 = model, prompt, imgB64
	return f.result, f.err
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"center", "saliency", "vision"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), m)
	}
	_, err := ParseMode("random")
	assert.Error(t, err)
}

func TestCenter(t *testing.T) {
	box, err := Center{}.Suggest(context.Background(), createTestImage(1024, 768), 512)
	require.NoError(t, err)
	assert.Equal(t, 256.0, box.X)
	assert.Equal(t, 128.0, box.Y)
	assert.Equal(t, 512.0, box.Side)
}

func TestSaliency(t *testing.T) {
	img := createTestImage(600, 300)
	s := NewSaliency(imaging.Linear)

	box, err := s.Suggest(context.Background(), img, 200)
	require.NoError(t, err)
	assert.Equal(t, 200.0, box.Side)

	c := box.Center()
	assert.True(t, c.X >= 0 && c.X <= 600, "center x %f", c.X)
	assert.True(t, c.Y >= 0 && c.Y <= 300, "center y %f", c.Y)
}

func TestSaliencyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSaliency(imaging.Linear).Suggest(ctx, createTestImage(100, 100), 50)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVision(t *testing.T) {
	fc := &fakeClient{result: &types.LocateResult{
		Primary: types.Subject{Label: "kite", Confidence: 0.9, Cx: 0.25, Cy: 0.75},
	}}
	v := &Vision{Client: fc, Model: "minicpm-v", MaxDim: 256, Quality: 80}

	box, err := v.Suggest(context.Background(), createTestImage(800, 400), 100)
	require.NoError(t, err)

	c := box.Center()
	assert.InDelta(t, 200, c.X, 1e-9)
	assert.InDelta(t, 300, c.Y, 1e-9)
	assert.Equal(t, 100.0, box.Side)

	assert.Equal(t, "minicpm-v", fc.model)
	assert.True(t, strings.Contains(fc.prompt, "normalized"))

	// the image sent to the model is downscaled to MaxDim on the long side
	data, err := base64.StdEncoding.DecodeString(fc.imgB64)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestVisionError(t *testing.T) {
	v := &Vision{Client: &fakeClient{err: errors.New("connection refused")}}
	_, err := v.Suggest(context.Background(), createTestImage(64, 64), 32)
	assert.Error(t, err)
}

func TestSubjectCenter(t *testing.T) {
	tests := []struct {
		name   string
		result *types.LocateResult
		cx, cy float64
	}{
		{"nil", nil, 0.5, 0.5},
		{"none label", &types.LocateResult{Primary: types.Subject{Label: "none", Cx: 0.1, Cy: 0.1}}, 0.5, 0.5},
		{"explicit center", &types.LocateResult{Primary: types.Subject{Label: "dog", Cx: 0.3, Cy: 0.6}}, 0.3, 0.6},
		{"box only", &types.LocateResult{Primary: types.Subject{Label: "dog", Box: types.Box{X: 0.5, Y: 0.5, W: 0.2, H: 0.4}}}, 0.6, 0.7},
		{"out of range center uses box", &types.LocateResult{Primary: types.Subject{Label: "dog", Cx: 400, Cy: 300, Box: types.Box{X: 0, Y: 0, W: 0.5, H: 0.5}}}, 0.25, 0.25},
		{"nothing usable", &types.LocateResult{Primary: types.Subject{Label: "dog", Cx: -1}}, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := subjectCenter(tt.result)
			assert.InDelta(t, tt.cx, cx, 1e-9)
			assert.InDelta(t, tt.cy, cy, 1e-9)
		})
	}
}
