// Package uploads stores user-supplied images and returns their public URL.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type Store interface {
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// ObjectName builds a collision-free key that keeps a readable form of the
// original file name.
func ObjectName(original string) string {
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".jpg"
	}
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%s%s", uuid.NewString(), base, strings.ToLower(ext))
}
