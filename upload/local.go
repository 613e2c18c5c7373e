package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 82
)

// Local re-encodes images as JPEG into a directory served under urlPrefix.
type Local struct {
	dir       string
	urlPrefix string
}

// NewLocal creates an uploader writing to dir; stored files are addressed as
// urlPrefix + "/" + filename.
func NewLocal(dir, urlPrefix string) *Local {
	return &Local{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Upload decodes the image, downsizes it to maxImageWidth, writes it under a
// unique name and returns its URL.
func (u *Local) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := processImage(r)
	if err != nil {
		slog.Error("upload_decode_failed", "filename", filename, "error", err)
		return "", ErrUpload
	}
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	name := u.uniqueName(baseName(filename))
	if err := os.WriteFile(filepath.Join(u.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return u.urlPrefix + "/" + name, nil
}

func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

var reUnsafeName = regexp.MustCompile(`[^a-z0-9]+`)

func baseName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.Trim(reUnsafeName.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if base == "" {
		base = "image"
	}
	return base
}

// uniqueName appends a counter until the name is free in u.dir.
func (u *Local) uniqueName(base string) string {
	candidate := base + ".jpg"
	for counter := 2; ; counter++ {
		if _, err := os.Stat(filepath.Join(u.dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d.jpg", base, counter)
	}
}
