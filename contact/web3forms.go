package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultEndpoint is the public Web3Forms submit URL.
const DefaultEndpoint = "https://api.web3forms.com/submit"

// Web3FormsRelay posts messages as JSON to a form-relay service that forwards
// them to the organisation's inbox.
type Web3FormsRelay struct {
	endpoint  string
	accessKey string
	client    *http.Client
}

// NewWeb3FormsRelay creates a relay. An empty endpoint uses DefaultEndpoint.
func NewWeb3FormsRelay(endpoint, accessKey string) *Web3FormsRelay {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Web3FormsRelay{
		endpoint:  endpoint,
		accessKey: accessKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type relayRequest struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send posts m to the relay endpoint.
func (r *Web3FormsRelay) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(relayRequest{
		AccessKey: r.accessKey,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Error("contact_relay_unreachable", "error", err)
		return fmt.Errorf("%w: %v", ErrRelay, err)
	}
	defer resp.Body.Close()

	var out relayResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !out.Success {
		slog.Error("contact_relay_rejected", "status", resp.StatusCode, "message", out.Message)
		return fmt.Errorf("%w: status %d: %s", ErrRelay, resp.StatusCode, out.Message)
	}
	slog.Info("contact_relay_sent", "subject", m.Subject)
	return nil
}
