package contact

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendRelay delivers contact messages as email through the Resend API.
type ResendRelay struct {
	client *resend.Client
	from   string
	to     string
}

// NewResendRelay creates a relay sending from `from` to the staff inbox `to`.
func NewResendRelay(apiKey, from, to string) *ResendRelay {
	return &ResendRelay{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

// Send emails m to the staff inbox with the sender as reply-to.
func (r *ResendRelay) Send(ctx context.Context, m Message) error {
	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{r.to},
		Subject: "[Contact] " + m.Subject,
		Html:    renderEmail(m),
		ReplyTo: m.Email,
	}
	sent, err := r.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		slog.Error("resend_send_failed", "error", err, "subject", m.Subject)
		return fmt.Errorf("%w: %v", ErrRelay, err)
	}
	slog.Info("resend_sent", "message_id", sent.Id, "subject", m.Subject)
	return nil
}

func renderEmail(m Message) string {
	return fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p><p><strong>Subject:</strong> %s</p><p>%s</p>",
		html.EscapeString(m.Name),
		html.EscapeString(m.Email),
		html.EscapeString(m.Subject),
		html.EscapeString(m.Message))
}
