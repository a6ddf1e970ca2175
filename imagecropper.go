// Package imagecropper loads an image, positions a square crop box over it and
// exports the covered region as a JPEG of a fixed size.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		imagecropper "github.com/menta2k/image-cropper"
//	)
//
//	func main() {
//		c := imagecropper.New()
//		if err := c.LoadImage("photo.png"); err != nil {
//			log.Fatal(err)
//		}
//		if err := c.SelectSize("512 x 512"); err != nil {
//			log.Fatal(err)
//		}
//		c.Move(40, -20)
//		if err := c.Save(c.SuggestedFilename()); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package is a thin front over its components:
//
// 1. CropBox (pkg/cropbox): square box geometry, drag state and export sizes
// 2. Export (pkg/export): crop, scale and JPEG encoding, suggested filenames
// 3. Session (pkg/session): the image, box, size and filename of one editing session
// 4. Placement (pkg/placement): optional center, saliency and vision-model placement
package imagecropper

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/menta2k/image-cropper/pkg/cropbox"
	"github.com/menta2k/image-cropper/pkg/placement"
	"github.com/menta2k/image-cropper/pkg/session"
)

// Version of the image cropper
const Version = "1.0.0"

// Cropper provides a high-level interface over a session
type Cropper struct {
	session *session.Session
}

// New creates a Cropper with default options and no logging
func New() *Cropper {
	return NewWithOptions(session.DefaultOptions(), zap.NewNop())
}

// NewWithOptions creates a Cropper with custom options
func NewWithOptions(opts session.Options, log *zap.Logger) *Cropper {
	return &Cropper{session: session.New(opts, log)}
}

// Session exposes the underlying session for drag handling and status
func (c *Cropper) Session() *session.Session {
	return c.session
}

// LoadImage loads an image and centers the box on it
func (c *Cropper) LoadImage(path string) error {
	return c.session.Load(path)
}

// SelectSize selects an export size by its label, e.g. "1024 x 1024"
func (c *Cropper) SelectSize(label string) error {
	return c.session.SelectTarget(label)
}

// Move translates the crop box
func (c *Cropper) Move(dx, dy float64) {
	c.session.Move(dx, dy)
}

// Place positions the box with s
func (c *Cropper) Place(ctx context.Context, s placement.Suggester) error {
	return c.session.Place(ctx, s)
}

// Box returns the current crop box
func (c *Cropper) Box() (cropbox.CropBox, bool) {
	return c.session.Box()
}

// SuggestedFilename returns the next suggested output name
func (c *Cropper) SuggestedFilename() string {
	return c.session.SuggestedFilename()
}

// Save writes the crop to path as JPEG
func (c *Cropper) Save(path string) error {
	return c.session.Save(path)
}

// ExportFile is a convenience function that loads inputPath, centers a box for
// the named size and writes the crop to outputPath
func ExportFile(inputPath, outputPath, size string, quality int) error {
	opts := session.DefaultOptions()
	if quality != 0 {
		opts.Quality = quality
	}
	c := NewWithOptions(opts, zap.NewNop())

	if err := c.SelectSize(size); err != nil {
		return err
	}
	if err := c.LoadImage(inputPath); err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	if err := c.Save(outputPath); err != nil {
		return fmt.Errorf("failed to save crop: %w", err)
	}
	return nil
}
