package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	assert.True(t, DirExists(dir))
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(""))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.png")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.png")))
}

func TestFirstSupportedFile(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	png := filepath.Join(dir, "photo.PNG")
	jpg := filepath.Join(dir, "second.jpg")
	for _, p := range []string{txt, png, jpg} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	got, ok := FirstSupportedFile([]string{txt, filepath.Join(dir, "gone.png"), png, jpg})
	require.True(t, ok)
	assert.Equal(t, png, got)

	_, ok = FirstSupportedFile([]string{txt})
	assert.False(t, ok)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "image_001.jpg", OutputPath("", "image_001.jpg"))
	assert.Equal(t, filepath.Join("out", "image_001.jpg"), OutputPath("out", "image_001.jpg"))
	assert.Equal(t, filepath.Join("out", "a_b.jpg"), OutputPath("out", "a/b.jpg"))
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "2.0 MB", FormatFileSize(2*1024*1024))
}
