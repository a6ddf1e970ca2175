package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSuggestedFilename(t *testing.T) {
	tests := map[string]string{
		"image_000.jpg":    "image_001.jpg",
		"image_001.jpg":    "image_002.jpg",
		"image_009.jpg":    "image_010.jpg",
		"image_999.jpg":    "image_1000.jpg",
		"image_1000.jpg":   "image_1001.jpg",
		"my_photo_041.jpg": "my_photo_042.jpg",
		"photo.jpg":        "photo.jpg",
		"image_01.jpg":     "image_01.jpg",
		"image_001.png":    "image_001.png",
		"image_001.jpeg":   "image_001.jpeg",
		"image 001.jpg":    "image 001.jpg",
		"":                 "",
	}

	for in, want := range tests {
		assert.Equal(t, want, NextSuggestedFilename(in), in)
	}
}

func TestSavedName(t *testing.T) {
	assert.Equal(t, "image_004.jpg", SavedName("/home/user/Pictures/image_004.jpg"))
	assert.Equal(t, "photo.jpg", SavedName("photo.jpg"))
}
