// Package types holds the normalized shapes exchanged with vision models.
package types

// Box is a bounding box with coordinates normalized to [0,1]
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the normalized center of the box
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Subject is the dominant subject a vision model located in an image
type Subject struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
	Cx         float64 `json:"cx"`
	Cy         float64 `json:"cy"`
}

// LocateResult is the model's answer to a subject-locate prompt
type LocateResult struct {
	Primary     Subject `json:"primary"`
	Description string  `json:"description"`
}

// Fallback is used whenever the model answer cannot be trusted
func Fallback(label string) *LocateResult {
	return &LocateResult{
		Primary: Subject{
			Label:      label,
			Confidence: 0,
			Box:        Box{X: 0.25, Y: 0.25, W: 0.5, H: 0.5},
			Cx:         0.5,
			Cy:         0.5,
		},
		Description: "centered fallback",
	}
}
