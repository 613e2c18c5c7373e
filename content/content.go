// Package content defines the rows the site publishes and collects: blog
// posts, events, FAQs, gallery items and volunteer registrations.
package content

import "time"

// BlogPost is a rich-text article shown under /blog/.
type BlogPost struct {
	ID          string
	Title       string
	Content     string // HTML from the admin editor
	HeaderImage string
	Tags        []string
	Slug        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Published   bool
}

// Link returns the public path of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.Slug + "/"
}

// EventStatus is chosen by staff; it is never derived from the event date.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

// EventStatuses lists the selectable statuses in display order.
var EventStatuses = []EventStatus{EventUpcoming, EventOngoing, EventCompleted}

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	for _, v := range EventStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Event struct {
	ID          string
	Title       string
	Description string // HTML
	Image       string
	Date        time.Time
	Location    string
	Status      EventStatus
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Link returns the public path of the event.
func (e Event) Link() string {
	return "/events/" + e.ID + "/"
}

type FAQ struct {
	ID        string
	Question  string
	Answer    string // HTML
	SortOrder int
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type GalleryItem struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	SortOrder   int
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VolunteerStatus tracks staff review of a registration.
type VolunteerStatus string

const (
	VolunteerPending  VolunteerStatus = "pending"
	VolunteerApproved VolunteerStatus = "approved"
	VolunteerRejected VolunteerStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s VolunteerStatus) Valid() bool {
	switch s {
	case VolunteerPending, VolunteerApproved, VolunteerRejected:
		return true
	}
	return false
}

type Volunteer struct {
	ID           string
	FullName     string
	Email        string
	Phone        string
	Interests    []string
	Availability []string
	Skills       []string
	Experience   string
	Status       VolunteerStatus
	CreatedAt    time.Time
}
