package content

import (
	"testing"
	"time"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"Spring   Fundraiser  2025", "spring-fundraiser-2025"},
		{"  Padded Title  ", "padded-title"},
		{"Already-hyphenated title", "already-hyphenated-title"},
		{"snake_case stays", "snake_case-stays"},
		{"Café & Bake Sale", "caf-bake-sale"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Slug(tt.input)
		if got != tt.expected {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSlugIdempotent(t *testing.T) {
	titles := []string{"Our Annual Gala!", "Food Drive: Week 3", "hello-world"}
	for _, title := range titles {
		once := Slug(title)
		if again := Slug(title); again != once {
			t.Errorf("Slug(%q) not deterministic: %q vs %q", title, once, again)
		}
		if twice := Slug(once); twice != once {
			t.Errorf("Slug(Slug(%q)) = %q, want %q", title, twice, once)
		}
	}
}

func validVolunteer() Volunteer {
	return Volunteer{
		FullName:     "Ada Lovelace",
		Email:        "ada@example.org",
		Phone:        "+1 415-555-0100",
		Interests:    []string{"Mentoring"},
		Availability: []string{"Weekend Mornings"},
	}
}

func TestValidateVolunteer(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Volunteer)
		want   error
	}{
		{"valid", func(v *Volunteer) {}, nil},
		{"missing name", func(v *Volunteer) { v.FullName = " " }, ErrVolunteerRequired},
		{"missing phone", func(v *Volunteer) { v.Phone = "" }, ErrVolunteerRequired},
		{"bad email", func(v *Volunteer) { v.Email = "not-an-email" }, ErrVolunteerEmail},
		{"short phone", func(v *Volunteer) { v.Phone = "123" }, ErrVolunteerPhone},
		{"letters in phone", func(v *Volunteer) { v.Phone = "555-CALL-NOW" }, ErrVolunteerPhone},
		{"no interests", func(v *Volunteer) { v.Interests = nil }, ErrVolunteerInterests},
		{"no availability", func(v *Volunteer) { v.Availability = nil }, ErrVolunteerAvailability},
		{"email checked before phone", func(v *Volunteer) {
			v.Email = "nope"
			v.Phone = "1"
		}, ErrVolunteerEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVolunteer()
			tt.modify(&v)
			if got := ValidateVolunteer(v); got != tt.want {
				t.Errorf("ValidateVolunteer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitEvents(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "a", Date: now.Add(-48 * time.Hour)},
		{ID: "b", Date: now},
		{ID: "c", Date: now.Add(72 * time.Hour)},
	}
	upcoming, past := SplitEvents(events, now)
	if len(past) != 1 || past[0].ID != "a" {
		t.Errorf("past = %v, want [a]", past)
	}
	if len(upcoming) != 2 || upcoming[0].ID != "b" || upcoming[1].ID != "c" {
		t.Errorf("upcoming = %v, want [b c]", upcoming)
	}
}

func TestStatusValid(t *testing.T) {
	if !EventOngoing.Valid() || EventStatus("cancelled").Valid() {
		t.Error("EventStatus.Valid mismatch")
	}
	if !VolunteerApproved.Valid() || VolunteerStatus("").Valid() {
		t.Error("VolunteerStatus.Valid mismatch")
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		body string
		n    int
		want string
	}{
		{"<p>Short &amp; sweet</p>", 50, "Short & sweet"},
		{"<p>One</p>\n<p>Two</p>", 50, "One Two"},
		{"<p>We packed four hundred meals this weekend.</p>", 20, "We packed four…"},
		{"<script>alert(1)</script><p>Safe</p>", 50, "Safe"},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.body, tt.n); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.body, tt.n, got, tt.want)
		}
	}
}
