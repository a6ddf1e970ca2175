package client

import (
	"context"

	"github.com/menta2k/image-cropper/pkg/types"
)

// VisionClient locates the main subject of a base64-encoded image
type VisionClient interface {
	LocateSubject(ctx context.Context, model, prompt, imgB64 string) (*types.LocateResult, error)
}
