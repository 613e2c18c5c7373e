package outreach

import (
	"github.com/eringen/outreach/content"
)

// BlogPosts maps content.BlogPost onto blog_posts.
var BlogPosts = Table[content.BlogPost]{
	Name:    "blog_posts",
	Columns: []string{"id", "title", "content", "header_image", "tags", "slug", "created_at", "updated_at", "published"},
	Order:   Order{Column: "created_at", Desc: true},
	Scan: func(s rowScanner) (content.BlogPost, error) {
		var p content.BlogPost
		var tags, created, updated string
		err := s.Scan(&p.ID, &p.Title, &p.Content, &p.HeaderImage, &tags, &p.Slug, &created, &updated, &p.Published)
		p.Tags = decodeList(tags)
		p.CreatedAt = decodeTime(created)
		p.UpdatedAt = decodeTime(updated)
		return p, err
	},
	Values: func(p content.BlogPost) []any {
		return []any{p.ID, p.Title, p.Content, p.HeaderImage, encodeList(p.Tags), p.Slug,
			encodeTime(p.CreatedAt), encodeTime(p.UpdatedAt), boolInt(p.Published)}
	},
	ID: func(p content.BlogPost) string { return p.ID },
}

// Events maps content.Event onto events.
var Events = Table[content.Event]{
	Name:    "events",
	Columns: []string{"id", "title", "description", "image", "date", "location", "status", "published", "created_at", "updated_at"},
	Order:   Order{Column: "date"},
	Scan: func(s rowScanner) (content.Event, error) {
		var e content.Event
		var date, status, created, updated string
		err := s.Scan(&e.ID, &e.Title, &e.Description, &e.Image, &date, &e.Location, &status, &e.Published, &created, &updated)
		e.Date = decodeTime(date)
		e.Status = content.EventStatus(status)
		e.CreatedAt = decodeTime(created)
		e.UpdatedAt = decodeTime(updated)
		return e, err
	},
	Values: func(e content.Event) []any {
		return []any{e.ID, e.Title, e.Description, e.Image, encodeTime(e.Date), e.Location, string(e.Status),
			boolInt(e.Published), encodeTime(e.CreatedAt), encodeTime(e.UpdatedAt)}
	},
	ID: func(e content.Event) string { return e.ID },
}

// FAQs maps content.FAQ onto faqs.
var FAQs = Table[content.FAQ]{
	Name:    "faqs",
	Columns: []string{"id", "question", "answer", "sort_order", "published", "created_at", "updated_at"},
	Order:   Order{Column: "sort_order"},
	Scan: func(s rowScanner) (content.FAQ, error) {
		var f content.FAQ
		var created, updated string
		err := s.Scan(&f.ID, &f.Question, &f.Answer, &f.SortOrder, &f.Published, &created, &updated)
		f.CreatedAt = decodeTime(created)
		f.UpdatedAt = decodeTime(updated)
		return f, err
	},
	Values: func(f content.FAQ) []any {
		return []any{f.ID, f.Question, f.Answer, f.SortOrder, boolInt(f.Published), encodeTime(f.CreatedAt), encodeTime(f.UpdatedAt)}
	},
	ID: func(f content.FAQ) string { return f.ID },
}

// GalleryItems maps content.GalleryItem onto gallery_items.
var GalleryItems = Table[content.GalleryItem]{
	Name:    "gallery_items",
	Columns: []string{"id", "title", "description", "image_url", "sort_order", "published", "created_at", "updated_at"},
	Order:   Order{Column: "sort_order"},
	Scan: func(s rowScanner) (content.GalleryItem, error) {
		var g content.GalleryItem
		var created, updated string
		err := s.Scan(&g.ID, &g.Title, &g.Description, &g.ImageURL, &g.SortOrder, &g.Published, &created, &updated)
		g.CreatedAt = decodeTime(created)
		g.UpdatedAt = decodeTime(updated)
		return g, err
	},
	Values: func(g content.GalleryItem) []any {
		return []any{g.ID, g.Title, g.Description, g.ImageURL, g.SortOrder, boolInt(g.Published), encodeTime(g.CreatedAt), encodeTime(g.UpdatedAt)}
	},
	ID: func(g content.GalleryItem) string { return g.ID },
}

// Volunteers maps content.Volunteer onto volunteers.
var Volunteers = Table[content.Volunteer]{
	Name:    "volunteers",
	Columns: []string{"id", "full_name", "email", "phone", "interests", "availability", "skills", "experience", "status", "created_at"},
	Order:   Order{Column: "created_at", Desc: true},
	Scan: func(s rowScanner) (content.Volunteer, error) {
		var v content.Volunteer
		var interests, availability, skills, status, created string
		err := s.Scan(&v.ID, &v.FullName, &v.Email, &v.Phone, &interests, &availability, &skills, &v.Experience, &status, &created)
		v.Interests = decodeList(interests)
		v.Availability = decodeList(availability)
		v.Skills = decodeList(skills)
		v.Status = content.VolunteerStatus(status)
		v.CreatedAt = decodeTime(created)
		return v, err
	},
	Values: func(v content.Volunteer) []any {
		return []any{v.ID, v.FullName, v.Email, v.Phone, encodeList(v.Interests), encodeList(v.Availability),
			encodeList(v.Skills), v.Experience, string(v.Status), encodeTime(v.CreatedAt)}
	},
	ID: func(v content.Volunteer) string { return v.ID },
}
