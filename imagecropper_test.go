package imagecropper

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/image-cropper/pkg/cropbox"
	"github.com/menta2k/image-cropper/pkg/placement"
)

// createTestImage creates a simple test image with a bright subject in the center
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x > width/3 && x < 2*width/3 && y > height/3 && y < 2*height/3 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.RGBA{64, 64, 64, 255})
			}
		}
	}
	return img
}

func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, createTestImage(width, height)))
	return path
}

func decodeJPEGSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestCropperWorkflow(t *testing.T) {
	in := writeTestPNG(t, 1200, 900)
	c := New()

	require.NoError(t, c.LoadImage(in))
	require.NoError(t, c.SelectSize("512 x 512"))
	c.Move(40, -20)

	box, ok := c.Box()
	require.True(t, ok)
	assert.Equal(t, cropbox.CropBox{X: 384, Y: 174, Side: 512}, box)

	out := filepath.Join(t.TempDir(), c.SuggestedFilename())
	require.NoError(t, c.Save(out))
	assert.Equal(t, "image_001.jpg", filepath.Base(out))
	assert.Equal(t, "image_002.jpg", c.SuggestedFilename())

	w, h := decodeJPEGSize(t, out)
	assert.Equal(t, 512, w)
	assert.Equal(t, 512, h)
	assert.Equal(t, "Saved!", c.Session().Status())
}

func TestCropperPlace(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadImage(writeTestPNG(t, 800, 600)))
	require.NoError(t, c.Place(context.Background(), placement.Center{}))

	box, _ := c.Box()
	assert.Equal(t, cropbox.Centered(800, 600, 1024), box)
}

func TestExportFile(t *testing.T) {
	in := writeTestPNG(t, 3000, 2000)
	out := filepath.Join(t.TempDir(), "crop.jpg")

	require.NoError(t, ExportFile(in, out, "2048 x 2048", 80))
	w, h := decodeJPEGSize(t, out)
	assert.Equal(t, 2048, w)
	assert.Equal(t, 2048, h)
}

func TestExportFileErrors(t *testing.T) {
	dir := t.TempDir()

	err := ExportFile(filepath.Join(dir, "missing.png"), filepath.Join(dir, "a.jpg"), "512 x 512", 0)
	assert.Error(t, err)

	err = ExportFile(writeTestPNG(t, 100, 100), filepath.Join(dir, "b.jpg"), "640 x 480", 0)
	assert.ErrorIs(t, err, cropbox.ErrInvalidTarget)
	assert.NoFileExists(t, filepath.Join(dir, "b.jpg"))
}
