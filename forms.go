package outreach

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/outreach/contact"
	"github.com/eringen/outreach/content"
)

const (
	msgVolunteerFailed = "Failed to submit registration. Please try again."
	msgTooManyRequests = "Too many submissions. Please wait a minute and try again."
	msgContactSent     = "Message sent successfully!"
	msgContactFailed   = "Failed to send message. Please try again."
)

func (a *App) volunteerPage(c echo.Context, form content.Volunteer) VolunteerPage {
	return VolunteerPage{
		Chrome:       a.chrome(c, "volunteer", PageMeta{Title: "Volunteer"}),
		Form:         form,
		Interests:    content.VolunteerInterests,
		Availability: content.VolunteerAvailability,
		Skills:       content.VolunteerSkills,
	}
}

func (a *App) handleVolunteerForm(c echo.Context) error {
	return Render(c, a.Views.Volunteer(a.volunteerPage(c, content.Volunteer{})))
}

func (a *App) handleVolunteerSubmit(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	v := content.Volunteer{
		FullName:     strings.TrimSpace(form.Get("full_name")),
		Email:        strings.TrimSpace(form.Get("email")),
		Phone:        strings.TrimSpace(form.Get("phone")),
		Interests:    FilterEmpty(form["interests"]),
		Availability: FilterEmpty(form["availability"]),
		Skills:       FilterEmpty(form["skills"]),
		Experience:   strings.TrimSpace(form.Get("experience")),
	}

	page := a.volunteerPage(c, v)
	if err := content.ValidateVolunteer(v); err != nil {
		page.Error = err.Error()
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Volunteer(page))
	}
	if !a.formLimiter.Allow(c.RealIP()) {
		page.Error = msgTooManyRequests
		return RenderStatus(c, http.StatusTooManyRequests, a.Views.Volunteer(page))
	}

	v.Status = content.VolunteerPending
	v.CreatedAt = a.now().UTC()
	if _, err := a.Volunteers.Create(c.Request().Context(), v); err != nil {
		c.Logger().Errorf("volunteer: insert registration: %v", err)
		page.Error = msgVolunteerFailed
		return RenderStatus(c, http.StatusInternalServerError, a.Views.Volunteer(page))
	}

	page = a.volunteerPage(c, content.Volunteer{})
	page.Success = true
	return Render(c, a.Views.Volunteer(page))
}

func (a *App) handleContactForm(c echo.Context) error {
	return Render(c, a.Views.Contact(ContactPage{
		Chrome: a.chrome(c, "contact", PageMeta{Title: "Contact Us"}),
	}))
}

func (a *App) handleContactSubmit(c echo.Context) error {
	var msg contact.Message
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	page := ContactPage{Chrome: a.chrome(c, "contact", PageMeta{Title: "Contact Us"})}

	if err := contact.Validate(&msg); err != nil {
		var fe contact.FieldErrors
		if !errors.As(err, &fe) {
			return err
		}
		page.Name, page.Email, page.Subject, page.Message = msg.Name, msg.Email, msg.Subject, msg.Message
		page.FieldErrors = fe
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Contact(page))
	}
	if !a.formLimiter.Allow(c.RealIP()) {
		page.Name, page.Email, page.Subject, page.Message = msg.Name, msg.Email, msg.Subject, msg.Message
		page.Toast, page.ToastError = msgTooManyRequests, true
		return RenderStatus(c, http.StatusTooManyRequests, a.Views.Contact(page))
	}

	if err := a.Relay.Send(c.Request().Context(), msg); err != nil {
		c.Logger().Errorf("contact: relay: %v", err)
		page.Name, page.Email, page.Subject, page.Message = msg.Name, msg.Email, msg.Subject, msg.Message
		page.Toast, page.ToastError = msgContactFailed, true
		return Render(c, a.Views.Contact(page))
	}
	page.Toast = msgContactSent
	return Render(c, a.Views.Contact(page))
}
