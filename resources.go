package outreach

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eringen/outreach/content"
)

// formTime is the value format of <input type="datetime-local">.
const formTime = "2006-01-02T15:04"

func formBool(form url.Values, name string) bool {
	return form.Get(name) != ""
}

func formInt(form url.Values, name string) (int, error) {
	v := strings.TrimSpace(form.Get(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return n, nil
}

func checkbox(b bool) string {
	if b {
		return "on"
	}
	return ""
}

func stamp(created *time.Time, updated *time.Time, prevCreated *time.Time, now time.Time) {
	switch {
	case prevCreated != nil && !prevCreated.IsZero():
		*created = *prevCreated
	case created.IsZero():
		*created = now
	}
	*updated = now
}

// BlogResource configures the blog post manager. The slug is recomputed from
// the title on every save.
var BlogResource = Resource[content.BlogPost]{
	Path:     "blog",
	Title:    "Blog Posts",
	Singular: "blog post",
	Table:    BlogPosts,
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: FieldText, Required: true},
		{Name: "header_image", Label: "Header image", Kind: FieldImage},
		{Name: "tags", Label: "Tags (comma separated)", Kind: FieldTags},
		{Name: "content", Label: "Content", Kind: FieldHTML, Required: true},
		{Name: "published", Label: "Published", Kind: FieldCheckbox},
	},
	Headings: []string{"Title", "Slug", "Created"},
	Cells: func(p content.BlogPost) []string {
		return []string{p.Title, p.Slug, p.CreatedAt.Format("Jan 2, 2006")}
	},
	Encode: func(p content.BlogPost) url.Values {
		return url.Values{
			"title":        {p.Title},
			"header_image": {p.HeaderImage},
			"tags":         {JoinTags(p.Tags)},
			"content":      {p.Content},
			"published":    {checkbox(p.Published)},
		}
	},
	Decode: func(form url.Values) (content.BlogPost, error) {
		title := strings.TrimSpace(form.Get("title"))
		if content.Slug(title) == "" {
			return content.BlogPost{}, &FieldError{Field: "title", Message: "Title must contain letters or numbers"}
		}
		return content.BlogPost{
			ID:          strings.TrimSpace(form.Get("id")),
			Title:       title,
			HeaderImage: strings.TrimSpace(form.Get("header_image")),
			Tags:        SplitTags(form.Get("tags")),
			Content:     form.Get("content"),
			Published:   formBool(form, "published"),
		}, nil
	},
	SetID: func(p *content.BlogPost, id string) { p.ID = id },
	Prepare: func(p *content.BlogPost, prev *content.BlogPost, now time.Time) {
		p.Slug = content.Slug(p.Title)
		var prevCreated *time.Time
		if prev != nil {
			prevCreated = &prev.CreatedAt
		}
		stamp(&p.CreatedAt, &p.UpdatedAt, prevCreated, now)
	},
	Published: func(p content.BlogPost) bool { return p.Published },
}

func eventStatusOptions() []string {
	out := make([]string, len(content.EventStatuses))
	for i, s := range content.EventStatuses {
		out[i] = string(s)
	}
	return out
}

// NewEventResource configures the event manager. Dates are entered and
// listed in loc. Saving always unpublishes the event; publishing is a
// separate action from the list.
func NewEventResource(loc *time.Location) Resource[content.Event] {
	return Resource[content.Event]{
		Path:     "events",
		Title:    "Events",
		Singular: "event",
		Table:    Events,
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: FieldText, Required: true},
			{Name: "date", Label: "Date", Kind: FieldDateTime, Required: true},
			{Name: "location", Label: "Location", Kind: FieldText},
			{Name: "status", Label: "Status", Kind: FieldSelect, Options: eventStatusOptions()},
			{Name: "image", Label: "Image", Kind: FieldImage},
			{Name: "description", Label: "Description", Kind: FieldHTML, Required: true},
		},
		Headings: []string{"Title", "Date", "Location", "Status"},
		Cells: func(e content.Event) []string {
			return []string{e.Title, e.Date.In(loc).Format("Jan 2, 2006 3:04 PM"), e.Location, string(e.Status)}
		},
		Encode: func(e content.Event) url.Values {
			return url.Values{
				"title":       {e.Title},
				"date":        {e.Date.In(loc).Format(formTime)},
				"location":    {e.Location},
				"status":      {string(e.Status)},
				"image":       {e.Image},
				"description": {e.Description},
			}
		},
		Decode: func(form url.Values) (content.Event, error) {
			date, err := time.ParseInLocation(formTime, strings.TrimSpace(form.Get("date")), loc)
			if err != nil {
				return content.Event{}, fmt.Errorf("invalid date: use YYYY-MM-DDTHH:MM")
			}
			status := content.EventStatus(form.Get("status"))
			if status == "" {
				status = content.EventUpcoming
			}
			if !status.Valid() {
				return content.Event{}, fmt.Errorf("invalid status %q", status)
			}
			return content.Event{
				ID:          strings.TrimSpace(form.Get("id")),
				Title:       strings.TrimSpace(form.Get("title")),
				Description: form.Get("description"),
				Image:       strings.TrimSpace(form.Get("image")),
				Date:        date,
				Location:    strings.TrimSpace(form.Get("location")),
				Status:      status,
				Published:   formBool(form, "published"),
			}, nil
		},
		SetID: func(e *content.Event, id string) { e.ID = id },
		Prepare: func(e *content.Event, prev *content.Event, now time.Time) {
			e.Published = false
			var prevCreated *time.Time
			if prev != nil {
				prevCreated = &prev.CreatedAt
			}
			stamp(&e.CreatedAt, &e.UpdatedAt, prevCreated, now)
		},
		Published: func(e content.Event) bool { return e.Published },
	}
}

// FAQResource configures the FAQ manager.
var FAQResource = Resource[content.FAQ]{
	Path:     "faqs",
	Title:    "FAQs",
	Singular: "FAQ",
	Table:    FAQs,
	Fields: []Field{
		{Name: "question", Label: "Question", Kind: FieldText, Required: true},
		{Name: "answer", Label: "Answer", Kind: FieldHTML, Required: true},
		{Name: "sort_order", Label: "Sort order", Kind: FieldNumber},
		{Name: "published", Label: "Published", Kind: FieldCheckbox},
	},
	Headings: []string{"#", "Question"},
	Cells: func(f content.FAQ) []string {
		return []string{strconv.Itoa(f.SortOrder), f.Question}
	},
	Encode: func(f content.FAQ) url.Values {
		return url.Values{
			"question":   {f.Question},
			"answer":     {f.Answer},
			"sort_order": {strconv.Itoa(f.SortOrder)},
			"published":  {checkbox(f.Published)},
		}
	},
	Decode: func(form url.Values) (content.FAQ, error) {
		order, err := formInt(form, "sort_order")
		if err != nil {
			return content.FAQ{}, err
		}
		return content.FAQ{
			ID:        strings.TrimSpace(form.Get("id")),
			Question:  strings.TrimSpace(form.Get("question")),
			Answer:    form.Get("answer"),
			SortOrder: order,
			Published: formBool(form, "published"),
		}, nil
	},
	SetID: func(f *content.FAQ, id string) { f.ID = id },
	Prepare: func(f *content.FAQ, prev *content.FAQ, now time.Time) {
		var prevCreated *time.Time
		if prev != nil {
			prevCreated = &prev.CreatedAt
		}
		stamp(&f.CreatedAt, &f.UpdatedAt, prevCreated, now)
	},
	Published: func(f content.FAQ) bool { return f.Published },
}

// GalleryResource configures the gallery manager.
var GalleryResource = Resource[content.GalleryItem]{
	Path:     "gallery",
	Title:    "Gallery",
	Singular: "gallery image",
	Table:    GalleryItems,
	Fields: []Field{
		{Name: "title", Label: "Title", Kind: FieldText, Required: true},
		{Name: "image_url", Label: "Image", Kind: FieldImage, Required: true},
		{Name: "description", Label: "Description", Kind: FieldTextarea},
		{Name: "sort_order", Label: "Sort order", Kind: FieldNumber},
		{Name: "published", Label: "Published", Kind: FieldCheckbox},
	},
	Headings: []string{"#", "Title", "Image"},
	Cells: func(g content.GalleryItem) []string {
		return []string{strconv.Itoa(g.SortOrder), g.Title, g.ImageURL}
	},
	Encode: func(g content.GalleryItem) url.Values {
		return url.Values{
			"title":       {g.Title},
			"image_url":   {g.ImageURL},
			"description": {g.Description},
			"sort_order":  {strconv.Itoa(g.SortOrder)},
			"published":   {checkbox(g.Published)},
		}
	},
	Decode: func(form url.Values) (content.GalleryItem, error) {
		order, err := formInt(form, "sort_order")
		if err != nil {
			return content.GalleryItem{}, err
		}
		return content.GalleryItem{
			ID:          strings.TrimSpace(form.Get("id")),
			Title:       strings.TrimSpace(form.Get("title")),
			Description: strings.TrimSpace(form.Get("description")),
			ImageURL:    strings.TrimSpace(form.Get("image_url")),
			SortOrder:   order,
			Published:   formBool(form, "published"),
		}, nil
	},
	SetID: func(g *content.GalleryItem, id string) { g.ID = id },
	Prepare: func(g *content.GalleryItem, prev *content.GalleryItem, now time.Time) {
		var prevCreated *time.Time
		if prev != nil {
			prevCreated = &prev.CreatedAt
		}
		stamp(&g.CreatedAt, &g.UpdatedAt, prevCreated, now)
	},
	Published: func(g content.GalleryItem) bool { return g.Published },
}

// VolunteerResource configures the volunteer manager. Registrations come from
// the public form, so staff can only review, change status and delete.
var VolunteerResource = Resource[content.Volunteer]{
	Path:     "volunteers",
	Title:    "Volunteers",
	Singular: "volunteer",
	Table:    Volunteers,
	Headings: []string{"Name", "Email", "Phone", "Interests", "Availability", "Skills", "Experience", "Submitted"},
	Cells: func(v content.Volunteer) []string {
		return []string{
			v.FullName, v.Email, v.Phone,
			JoinTags(v.Interests), JoinTags(v.Availability), JoinTags(v.Skills),
			v.Experience, v.CreatedAt.Format("Jan 2, 2006"),
		}
	},
	SetID: func(v *content.Volunteer, id string) { v.ID = id },
	Prepare: func(v *content.Volunteer, prev *content.Volunteer, now time.Time) {
		if prev != nil {
			v.CreatedAt = prev.CreatedAt
		}
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		if v.Status == "" {
			v.Status = content.VolunteerPending
		}
	},
	Statuses: []string{
		string(content.VolunteerPending),
		string(content.VolunteerApproved),
		string(content.VolunteerRejected),
	},
	Status: func(v content.Volunteer) string { return string(v.Status) },
}
