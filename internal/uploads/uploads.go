// Package uploads stores user-submitted files and hands back the URL they
// are reachable under.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidFileType is returned for extensions outside AllowedExtensions.
var ErrInvalidFileType = errors.New("invalid file type")

// AllowedExtensions lists the accepted archive and image extensions.
var AllowedExtensions = []string{".zip", ".rar", ".7z", ".tar.gz", ".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Store persists one file under name and returns its public URL.
type Store interface {
	Save(ctx context.Context, name string, body io.Reader, size int64, contentType string) (string, error)
}

// Extension returns the lower-cased allowed extension of filename, matching
// multi-part extensions such as ".tar.gz" first.
func Extension(filename string) (string, error) {
	lower := strings.ToLower(filepath.Base(filename))
	for _, ext := range AllowedExtensions {
		if strings.Contains(ext[1:], ".") && strings.HasSuffix(lower, ext) && len(lower) > len(ext) {
			return ext, nil
		}
	}
	ext := filepath.Ext(lower)
	for _, allowed := range AllowedExtensions {
		if ext == allowed && len(lower) > len(ext) {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFileType, filepath.Ext(filename))
}

// NewName returns a fresh random file name carrying the original extension.
func NewName(originalName string) (string, error) {
	ext, err := Extension(originalName)
	if err != nil {
		return "", err
	}
	return uuid.NewString() + ext, nil
}
