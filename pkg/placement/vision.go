package placement

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-cropper/pkg/client"
	"github.com/menta2k/image-cropper/pkg/cropbox"
	"github.com/menta2k/image-cropper/pkg/types"
)

// LocatePrompt asks the model for the dominant subject as normalized JSON
const LocatePrompt = `You are an image subject locator.

Return JSON only:
{
  "primary": {
    "label": "string",
    "confidence": 0.0,
    "box": {"x": 0.0, "y": 0.0, "w": 0.0, "h": 0.0},
    "cx": 0.0,
    "cy": 0.0
  },
  "description": "short neutral sentence"
}

RULES
- All coordinates are normalized to [0,1] (NOT pixels).
- cx, cy is the visual center of the dominant subject (people, animals, vehicles; else the most salient object).
- If no subject is found, return label "none" with cx 0.5 and cy 0.5.
- JSON only. No markdown, no code fences, no comments.`

// Vision centers the box on the subject a vision model locates
type Vision struct {
	Client client.VisionClient
	Model  string
	// MaxDim bounds the long side of the image sent to the model, 0 sends it as is
	MaxDim  int
	Quality int
}

// Suggest implements Suggester
func (v *Vision) Suggest(ctx context.Context, img image.Image, side float64) (cropbox.CropBox, error) {
	imgB64, err := EncodeForModel(img, v.MaxDim, v.Quality)
	if err != nil {
		return cropbox.CropBox{}, err
	}

	result, err := v.Client.LocateSubject(ctx, v.Model, LocatePrompt, imgB64)
	if err != nil {
		return cropbox.CropBox{}, fmt.Errorf("subject detection failed: %w", err)
	}

	cx, cy := subjectCenter(result)
	b := img.Bounds()
	return cropbox.CenteredAt(cx*float64(b.Dx()), cy*float64(b.Dy()), side), nil
}

// EncodeForModel downsizes img so its long side is at most maxDim and returns it as base64 JPEG
func EncodeForModel(img image.Image, maxDim, quality int) (string, error) {
	if maxDim > 0 {
		b := img.Bounds()
		if b.Dx() > maxDim || b.Dy() > maxDim {
			if b.Dx() >= b.Dy() {
				img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
			} else {
				img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
			}
		}
	}
	if quality < 1 || quality > 100 {
		quality = 85
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("encoding image for model: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// subjectCenter picks the normalized subject center, preferring the explicit
// cx/cy and falling back to the box center, then to the image center
func subjectCenter(result *types.LocateResult) (float64, float64) {
	if result == nil || strings.EqualFold(result.Primary.Label, "none") {
		return 0.5, 0.5
	}
	p := result.Primary
	if inUnit(p.Cx) && inUnit(p.Cy) && (p.Cx != 0 || p.Cy != 0) {
		return p.Cx, p.Cy
	}
	if p.Box.W > 0 && p.Box.H > 0 {
		cx, cy := p.Box.Center()
		return clamp(cx, 0, 1), clamp(cy, 0, 1)
	}
	return 0.5, 0.5
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1 && !math.IsNaN(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
