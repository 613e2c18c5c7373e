// Package upload stores images and returns the URL they are served from.
package upload

import (
	"context"
	"errors"
	"io"
)

// ErrUpload is the single user-facing upload failure.
var ErrUpload = errors.New("Failed to upload image")

// MaxSize is the largest file the admin upload endpoint accepts.
const MaxSize = 5 << 20 // 5MB

// Uploader stores the image read from r and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
