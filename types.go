package outreach

import (
	"time"

	"github.com/eringen/outreach/content"
)

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

// SiteInfo is the public subset of SiteConfig that templates may read.
type SiteInfo struct {
	Name        string
	URL         string
	Description string
	Email       string
	DonateURL   string
}

// Chrome is embedded in every page view model.
type Chrome struct {
	Site   SiteInfo
	Meta   PageMeta
	Active string // nav key of the current section
	CSRF   string
	Admin  bool
	JSONLD string
}

type HomePage struct {
	Chrome
	Copy   SiteCopy
	Posts  []content.BlogPost
	Events []content.Event
}

// StaticPage is a long-form page whose body comes from embedded Markdown.
type StaticPage struct {
	Chrome
	Copy    SiteCopy
	Heading string
	Body    string // rendered HTML
}

type TeamPage struct {
	Chrome
	Members []TeamMember
}

type BlogListPage struct {
	Chrome
	Posts     []content.BlogPost
	Tags      []string
	ActiveTag string
	Failed    bool
}

type BlogPostPage struct {
	Chrome
	Post    content.BlogPost
	Related []content.BlogPost
}

type EventListPage struct {
	Chrome
	Upcoming []content.Event
	Past     []content.Event
	Failed   bool
}

type EventDetailPage struct {
	Chrome
	Event content.Event
}

type FAQPage struct {
	Chrome
	FAQs   []content.FAQ
	Failed bool
}

type GalleryPage struct {
	Chrome
	Items  []content.GalleryItem
	Failed bool
}

// VolunteerPage renders the signup form. Form holds the submitted values when
// validation fails so nothing is lost.
type VolunteerPage struct {
	Chrome
	Form         content.Volunteer
	Interests    []string
	Availability []string
	Skills       []string
	Error        string
	Success      bool
}

type ContactPage struct {
	Chrome
	Name, Email, Subject, Message string
	FieldErrors                   map[string]string
	Toast                         string
	ToastError                    bool
}

// ComingSoonPage is shown by the access gate before launch.
type ComingSoonPage struct {
	Chrome
	LaunchAt  time.Time
	Remaining Remaining
}

type LoginPage struct {
	Chrome
	Username string
	Error    string
}

// DashboardCount is one tile on the admin dashboard.
type DashboardCount struct {
	Path  string
	Title string
	Count int
}

type DashboardPage struct {
	Chrome
	Username string
	Counts   []DashboardCount
}

// ManagerPage is the generic admin list + form for one resource.
type ManagerPage struct {
	Chrome
	Path        string
	Title       string
	Singular    string
	Headings    []string
	Rows        []ManagerRow
	Form        *ManagerForm
	Publishable bool
	Statuses    []string
	Message     string
	Alert       string
}

type ManagerRow struct {
	ID        string
	Cells     []string
	Published bool
	Status    string
}

type ManagerForm struct {
	ID      string
	Editing bool
	Fields  []FormField
}

// FormField is a Field with its current value.
type FormField struct {
	Field
	Value string
}

// Checked reports whether a checkbox field is set.
func (f FormField) Checked() bool {
	return f.Value != "" && f.Value != "false"
}
