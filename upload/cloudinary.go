package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"
)

// Cloudinary uploads unsigned images using an upload preset.
type Cloudinary struct {
	endpoint string
	preset   string
	client   *http.Client
}

// NewCloudinary creates an uploader for the given cloud name and unsigned
// upload preset.
func NewCloudinary(cloudName, preset string) *Cloudinary {
	return NewCloudinaryEndpoint(fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cloudName), preset)
}

// NewCloudinaryEndpoint creates an uploader posting to an explicit endpoint.
func NewCloudinaryEndpoint(endpoint, preset string) *Cloudinary {
	return &Cloudinary{
		endpoint: endpoint,
		preset:   preset,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file as multipart form data and returns its secure URL.
func (u *Cloudinary) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := mw.WriteField("upload_preset", u.preset); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		slog.Error("upload_unreachable", "error", err)
		return "", ErrUpload
	}
	defer resp.Body.Close()

	var out cloudinaryResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || out.SecureURL == "" {
		msg := ""
		if out.Error != nil {
			msg = out.Error.Message
		}
		slog.Error("upload_rejected", "status", resp.StatusCode, "message", msg)
		return "", ErrUpload
	}
	slog.Info("upload_stored", "url", out.SecureURL)
	return out.SecureURL, nil
}
