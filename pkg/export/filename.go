package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// DefaultSeedFilename seeds the suggested filename of a new session
const DefaultSeedFilename = "image_000.jpg"

var counterPattern = regexp.MustCompile(`^(\w+)_(\d{3,})\.jpg$`)

// NextSuggestedFilename advances a name_NNN.jpg counter by one.
// Names that do not follow the pattern come back unchanged.
func NextSuggestedFilename(current string) string {
	m := counterPattern.FindStringSubmatch(current)
	if m == nil {
		return current
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return current
	}
	return fmt.Sprintf("%s_%03d.jpg", m[1], n+1)
}

// SavedName returns the file name part of a saved path, which becomes the
// basis for the next suggestion
func SavedName(path string) string {
	return filepath.Base(path)
}
