// Package session holds the state of one cropping session: the loaded image,
// its crop box, the export target and the suggested output name.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/menta2k/image-cropper/pkg/cropbox"
	"github.com/menta2k/image-cropper/pkg/export"
	"github.com/menta2k/image-cropper/pkg/imagefile"
	"github.com/menta2k/image-cropper/pkg/placement"
)

// ErrNoImage is returned by operations that need a loaded image
var ErrNoImage = errors.New("no image loaded")

// Status texts shown to the user
const (
	StatusSaved   = "Saved!"
	StatusNoImage = "No image loaded"
)

// Options configures a new Session
type Options struct {
	Quality      int
	Filter       imaging.ResampleFilter
	SeedFilename string
	Target       cropbox.Target
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Quality:      export.DefaultQuality,
		Filter:       imaging.Lanczos,
		SeedFilename: export.DefaultSeedFilename,
		Target:       cropbox.DefaultTarget,
	}
}

// Session is not safe for concurrent use; the UI drives it from one goroutine.
type Session struct {
	id       string
	log      *zap.Logger
	pipeline *export.Pipeline

	img    image.Image
	source string
	box    cropbox.CropBox
	target cropbox.Target
	drag   cropbox.Drag

	// bumped whenever the image, target or box changes
	generation uint64

	lastSaved string
	status    string
}

// New creates an empty session
func New(opts Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Target == (cropbox.Target{}) {
		opts.Target = cropbox.DefaultTarget
	}
	if opts.SeedFilename == "" {
		opts.SeedFilename = export.DefaultSeedFilename
	}

	id := uuid.New().String()
	return &Session{
		id:        id,
		log:       log.With(zap.String("session", id)),
		pipeline:  &export.Pipeline{Quality: opts.Quality, Filter: opts.Filter},
		target:    opts.Target,
		lastSaved: opts.SeedFilename,
	}
}

// ID returns the session identifier used in log entries
func (s *Session) ID() string {
	return s.id
}

// Load decodes the image at path and makes it current. On failure the
// previous image and box are kept.
func (s *Session) Load(path string) error {
	img, err := imagefile.Load(path)
	if err != nil {
		s.status = fmt.Sprintf("Load failed: %v", err)
		s.log.Warn("Failed to load image", zap.String("path", path), zap.Error(err))
		return err
	}
	s.SetImage(img, path)
	return nil
}

// LoadReader is Load for an already open stream; name is used for logging
func (s *Session) LoadReader(r io.Reader, name string) error {
	img, err := imagefile.Decode(r)
	if err != nil {
		s.status = fmt.Sprintf("Load failed: %v", err)
		s.log.Warn("Failed to decode image", zap.String("source", name), zap.Error(err))
		return err
	}
	s.SetImage(img, name)
	return nil
}

// SetImage replaces the current image and recenters the box for the current target
func (s *Session) SetImage(img image.Image, source string) {
	s.img = img
	s.source = source
	s.drag.End()
	s.reset()
	s.status = ""

	info := imagefile.GetInfo(img)
	s.log.Info("Image loaded",
		zap.String("source", source),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Float64("aspect_ratio", info.AspectRatio))
}

// HasImage reports whether an image is loaded
func (s *Session) HasImage() bool {
	return s.img != nil
}

// Image returns the current image, nil if none
func (s *Session) Image() image.Image {
	return s.img
}

// Source returns the path or name the current image came from
func (s *Session) Source() string {
	return s.source
}

// Box returns the crop box; ok is false when no image is loaded
func (s *Session) Box() (cropbox.CropBox, bool) {
	return s.box, s.img != nil
}

// Target returns the selected export target
func (s *Session) Target() cropbox.Target {
	return s.target
}

// SelectTarget selects the target named by label and recenters the box.
// Unknown labels leave the session unchanged.
func (s *Session) SelectTarget(label string) error {
	t, err := cropbox.ParseTarget(label)
	if err != nil {
		return err
	}
	s.SetTarget(t)
	return nil
}

// SetTarget selects t and recreates the box centered with side t.Side()
func (s *Session) SetTarget(t cropbox.Target) {
	s.target = t
	s.reset()
	s.log.Debug("Target selected", zap.Stringer("target", t))
}

func (s *Session) reset() {
	s.generation++
	if s.img == nil {
		return
	}
	b := s.img.Bounds()
	s.box = cropbox.Centered(b.Dx(), b.Dy(), s.target.Side())
}

// Generation identifies the current image, target and box. It changes on every
// edit, so a result computed against an older generation can be recognised.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Move translates the box. Without an image it does nothing.
func (s *Session) Move(dx, dy float64) {
	if s.img == nil {
		return
	}
	s.box = s.box.Move(dx, dy)
	s.generation++
}

// ResizeFromCorner drags the bottom-right corner to (px, py), keeping the box square
func (s *Session) ResizeFromCorner(px, py float64) {
	if s.img == nil {
		return
	}
	s.box = s.box.ResizeFromCorner(px, py)
	s.generation++
}

// BeginDrag starts a pointer drag at p in image coordinates. handleSize is
// the resize handle's side in image pixels.
func (s *Session) BeginDrag(p cropbox.Point, handleSize float64) cropbox.DragMode {
	if s.img == nil {
		return cropbox.DragNone
	}
	return s.drag.Begin(s.box, p, handleSize)
}

// DragTo continues the active drag to p and returns the updated box
func (s *Session) DragTo(p cropbox.Point) cropbox.CropBox {
	if s.img != nil && s.drag.Active() {
		s.box = s.drag.Update(s.box, p)
		s.generation++
	}
	return s.box
}

// EndDrag finishes the active drag
func (s *Session) EndDrag() {
	s.drag.End()
}

// Dragging returns the mode of the drag in progress
func (s *Session) Dragging() cropbox.DragMode {
	return s.drag.Mode()
}

// Place positions a box of the current target side where sg suggests.
// On error the box is left where it was.
func (s *Session) Place(ctx context.Context, sg placement.Suggester) error {
	if err := s.RequireImage(); err != nil {
		return err
	}
	box, err := sg.Suggest(ctx, s.img, s.target.Side())
	return s.ApplyPlacement(s.generation, box, err)
}

// ApplyPlacement sets a box, or records the suggester's error, for a
// suggestion computed at generation gen. If the image, target or box changed
// since then the result is dropped, so slow suggesters can run off the UI goroutine.
func (s *Session) ApplyPlacement(gen uint64, box cropbox.CropBox, err error) error {
	if gen != s.generation {
		s.log.Debug("Dropped stale placement",
			zap.Uint64("generation", gen),
			zap.Uint64("current", s.generation))
		return nil
	}
	if err != nil {
		s.status = fmt.Sprintf("Auto place failed: %v", err)
		s.log.Warn("Placement failed", zap.Error(err))
		return err
	}

	s.box = box
	s.generation++
	s.status = ""
	s.log.Debug("Box placed",
		zap.Float64("x", box.X),
		zap.Float64("y", box.Y),
		zap.Float64("side", box.Side))
	return nil
}

// RequireImage returns ErrNoImage, and says so in the status, when nothing is loaded
func (s *Session) RequireImage() error {
	if s.img == nil {
		s.status = StatusNoImage
		return ErrNoImage
	}
	return nil
}

// Render crops and scales the current box without writing anything. A
// failure is reported in the status the same way a failed save is.
func (s *Session) Render() (image.Image, error) {
	if err := s.RequireImage(); err != nil {
		return nil, err
	}
	out, err := s.pipeline.Render(s.img, s.box, s.target)
	if err != nil {
		s.status = fmt.Sprintf("Save failed: %v", err)
		s.log.Warn("Crop cannot be rendered", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// SuggestedFilename is the name offered for the next save
func (s *Session) SuggestedFilename() string {
	return export.NextSuggestedFilename(s.lastSaved)
}

// Save crops, scales and writes the current box to path as JPEG. Without an
// image it writes nothing and returns ErrNoImage.
func (s *Session) Save(path string) error {
	if err := s.RequireImage(); err != nil {
		return err
	}

	if err := s.pipeline.Export(s.img, s.box, s.target, path); err != nil {
		return s.saveFailed(path, err)
	}
	return s.saved(path)
}

// SaveTo is Save for an already open destination such as a dialog writer.
// name is recorded as the last saved filename.
func (s *Session) SaveTo(w io.Writer, name string) error {
	if err := s.RequireImage(); err != nil {
		return err
	}

	if err := s.pipeline.ExportTo(w, s.img, s.box, s.target); err != nil {
		return s.saveFailed(name, err)
	}
	return s.saved(name)
}

func (s *Session) saved(path string) error {
	s.lastSaved = export.SavedName(path)
	s.status = StatusSaved
	s.log.Info("Crop saved",
		zap.String("path", path),
		zap.Stringer("target", s.target),
		zap.Float64("side", s.box.Side))
	return nil
}

func (s *Session) saveFailed(path string, err error) error {
	s.status = fmt.Sprintf("Save failed: %v", err)
	s.log.Error("Failed to save crop", zap.String("path", path), zap.Error(err))
	return err
}

// Status returns the text for the status label
func (s *Session) Status() string {
	return s.status
}
