package cropbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"512 x 512", "1024 x 1024", "2048 x 2048"}, Labels())
}

func TestParseTarget(t *testing.T) {
	for _, label := range Labels() {
		target, err := ParseTarget(label)
		require.NoError(t, err)
		assert.Equal(t, label, target.String())
		assert.Equal(t, target.Width, target.Height)
	}

	target, err := ParseTarget("512 x 512")
	require.NoError(t, err)
	assert.Equal(t, 512.0, target.Side())
}

func TestParseTargetRejectsUnknown(t *testing.T) {
	for _, label := range []string{"", "800 x 600", "512x512", "4096 x 4096", "1024 X 1024"} {
		_, err := ParseTarget(label)
		assert.ErrorIs(t, err, ErrInvalidTarget, label)
	}
}

func TestDefaultTarget(t *testing.T) {
	w, h := DefaultTarget.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 1024, h)
}
