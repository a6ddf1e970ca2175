package cropbox

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget is returned for a size label outside the supported set
var ErrInvalidTarget = errors.New("invalid export target")

// Target is an export size. Targets are always square.
type Target struct {
	Width  int
	Height int
}

// Supported export targets
var (
	Target512  = Target{512, 512}
	Target1024 = Target{1024, 1024}
	Target2048 = Target{2048, 2048}

	DefaultTarget = Target1024
)

// Targets returns the supported targets in selector order
func Targets() []Target {
	return []Target{Target512, Target1024, Target2048}
}

// Labels returns the selector labels for Targets
func Labels() []string {
	targets := Targets()
	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = t.String()
	}
	return labels
}

// ParseTarget maps a selector label such as "512 x 512" to its Target
func ParseTarget(label string) (Target, error) {
	for _, t := range Targets() {
		if t.String() == label {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, label)
}

// String returns the selector label
func (t Target) String() string {
	return fmt.Sprintf("%d x %d", t.Width, t.Height)
}

// Side returns the crop box side length for this target
func (t Target) Side() float64 {
	return float64(t.Width)
}

// Size returns width and height
func (t Target) Size() (int, int) {
	return t.Width, t.Height
}
