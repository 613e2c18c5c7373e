// Package contact validates contact-form submissions and hands them to an
// external relay. Messages never touch the site database.
package contact

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrRelay is returned when the relay rejects or cannot receive a message.
var ErrRelay = errors.New("contact: relay failed")

// Message is a contact-form submission.
type Message struct {
	Name    string `form:"name" json:"name" validate:"min=2"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Subject string `form:"subject" json:"subject" validate:"min=5"`
	Message string `form:"message" json:"message" validate:"min=10"`
}

// Relay delivers a validated message.
type Relay interface {
	Send(ctx context.Context, m Message) error
}

var validate = validator.New()

var fieldMessages = map[string]string{
	"Name":    "Name must be at least 2 characters",
	"Email":   "Please enter a valid email address",
	"Subject": "Subject must be at least 5 characters",
	"Message": "Message must be at least 10 characters",
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, k := range []string{"name", "email", "subject", "message"} {
		if msg, ok := fe[k]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Validate trims m and checks it against the form schema. On failure the
// returned error is a FieldErrors.
func Validate(m *Message) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)

	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := FieldErrors{}
	for _, v := range verrs {
		fe[strings.ToLower(v.Field())] = fieldMessages[v.Field()]
	}
	return fe
}
