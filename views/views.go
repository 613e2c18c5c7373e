// Package views is the default template set for an outreach site. Pages are
// html/template files embedded in the binary and exposed as templ components,
// so a deployment can replace any of them with generated templ code.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/outreach"
	"github.com/eringen/outreach/content"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	// Rich text from the admin editor. Sanitized again on the way out.
	"richText": func(s string) template.HTML {
		return template.HTML(outreach.SanitizeHTML(s))
	},
	// Markdown copy already rendered to HTML at startup from embedded files.
	"trusted": func(s string) template.HTML { return template.HTML(s) },
	"jsonLD":  func(s string) template.JS { return template.JS(s) },
	"excerpt": content.Excerpt,
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"dateTime": func(t time.Time) string {
		return t.Format("Mon, Jan 2, 2006 at 3:04 PM")
	},
	"isoTime": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
	"join":  func(vals []string) string { return strings.Join(vals, ", ") },
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"has": func(vals []string, v string) bool {
		for _, x := range vals {
			if x == v {
				return true
			}
		}
		return false
	},
	"year": func() int { return time.Now().Year() },
	"pad2": func(n int) string { return fmt.Sprintf("%02d", n) },
}

// parse builds one page: the shared layout plus the page's own file.
func parse(page string) (*template.Template, error) {
	return template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
		"templates/layout.html", "templates/partials.html", "templates/"+page)
}

func component[T any](t *template.Template) func(T) templ.Component {
	return func(data T) templ.Component {
		return templ.FromGoHTML(t, data)
	}
}

// New parses the embedded templates and returns them as ViewFuncs.
func New() (outreach.ViewFuncs, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{
		"home.html", "page.html", "team.html", "blog_list.html", "blog_post.html",
		"events.html", "event.html", "faq.html", "gallery.html", "volunteer.html",
		"contact.html", "coming_soon.html", "login.html", "dashboard.html",
		"manager.html", "not_found.html", "error.html",
	} {
		t, err := parse(name)
		if err != nil {
			return outreach.ViewFuncs{}, fmt.Errorf("views: parse %s: %w", name, err)
		}
		pages[name] = t
	}

	return outreach.ViewFuncs{
		Home:           component[outreach.HomePage](pages["home.html"]),
		Page:           component[outreach.StaticPage](pages["page.html"]),
		Team:           component[outreach.TeamPage](pages["team.html"]),
		BlogList:       component[outreach.BlogListPage](pages["blog_list.html"]),
		BlogPost:       component[outreach.BlogPostPage](pages["blog_post.html"]),
		EventList:      component[outreach.EventListPage](pages["events.html"]),
		EventDetail:    component[outreach.EventDetailPage](pages["event.html"]),
		FAQ:            component[outreach.FAQPage](pages["faq.html"]),
		Gallery:        component[outreach.GalleryPage](pages["gallery.html"]),
		Volunteer:      component[outreach.VolunteerPage](pages["volunteer.html"]),
		Contact:        component[outreach.ContactPage](pages["contact.html"]),
		ComingSoon:     component[outreach.ComingSoonPage](pages["coming_soon.html"]),
		AdminLogin:     component[outreach.LoginPage](pages["login.html"]),
		AdminDashboard: component[outreach.DashboardPage](pages["dashboard.html"]),
		AdminManager:   component[outreach.ManagerPage](pages["manager.html"]),
		NotFound:       component[outreach.Chrome](pages["not_found.html"]),
		ServerError:    component[outreach.Chrome](pages["error.html"]),
	}, nil
}

// Must is like New but panics on a template error.
func Must() outreach.ViewFuncs {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}
