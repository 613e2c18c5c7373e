package content

import (
	"errors"
	"regexp"
	"strings"
)

// Volunteer form validation errors, in the order they are checked.
var (
	ErrVolunteerRequired     = errors.New("Please fill in all required fields")
	ErrVolunteerEmail        = errors.New("Please enter a valid email address")
	ErrVolunteerPhone        = errors.New("Please enter a valid phone number")
	ErrVolunteerInterests    = errors.New("Please select at least one area of interest")
	ErrVolunteerAvailability = errors.New("Please select your availability")
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rePhone = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

// Volunteer form choices.
var (
	VolunteerInterests = []string{
		"Event Planning",
		"Fundraising",
		"Mentoring",
		"Community Outreach",
		"Social Media",
		"Photography",
		"Administrative Support",
		"Teaching",
	}
	VolunteerAvailability = []string{
		"Weekday Mornings",
		"Weekday Afternoons",
		"Weekday Evenings",
		"Weekend Mornings",
		"Weekend Afternoons",
		"Weekend Evenings",
	}
	VolunteerSkills = []string{
		"Communication",
		"Leadership",
		"Organization",
		"Technical",
		"Creative",
		"Languages",
	}
)

// ValidateVolunteer checks a registration the way the signup form does and
// returns the first failure.
func ValidateVolunteer(v Volunteer) error {
	if strings.TrimSpace(v.FullName) == "" || strings.TrimSpace(v.Email) == "" || strings.TrimSpace(v.Phone) == "" {
		return ErrVolunteerRequired
	}
	if !reEmail.MatchString(strings.TrimSpace(v.Email)) {
		return ErrVolunteerEmail
	}
	if !rePhone.MatchString(strings.TrimSpace(v.Phone)) {
		return ErrVolunteerPhone
	}
	if len(v.Interests) == 0 {
		return ErrVolunteerInterests
	}
	if len(v.Availability) == 0 {
		return ErrVolunteerAvailability
	}
	return nil
}
