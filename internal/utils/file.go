package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/menta2k/image-cropper/pkg/imagefile"
)

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// FirstSupportedFile returns the first path that is an existing file with an
// accepted image extension. Dropping several files loads only that one.
func FirstSupportedFile(paths []string) (string, bool) {
	for _, p := range paths {
		if imagefile.IsSupportedPath(p) && FileExists(p) {
			return p, true
		}
	}
	return "", false
}

// SanitizeFilename removes or replaces invalid characters in filenames
func SanitizeFilename(filename string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := filename
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	return strings.Trim(result, " .")
}

// OutputPath joins the configured output directory with a suggested filename.
// An empty dir leaves the name relative to the working directory.
func OutputPath(dir, name string) string {
	name = SanitizeFilename(name)
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// FormatFileSize formats file size in human-readable format
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
