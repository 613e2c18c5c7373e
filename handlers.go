package outreach

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/outreach/content"
)

var published = Eq{"published", 1}

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := BlogPosts.Select(ctx, a.DB, BlogPosts.Order, published)
	if err != nil {
		c.Logger().Errorf("home: list posts: %v", err)
	}
	events, err := Events.Select(ctx, a.DB, Events.Order, published)
	if err != nil {
		c.Logger().Errorf("home: list events: %v", err)
	}
	upcoming, _ := content.SplitEvents(a.inZone(events), a.now())

	ch := a.chrome(c, "home", PageMeta{})
	ch.JSONLD = OrganizationJsonLD(a.Config)
	return Render(c, a.Views.Home(HomePage{
		Chrome: ch,
		Copy:   a.Content.Copy,
		Posts:  firstN(posts, 3),
		Events: firstN(upcoming, 3),
	}))
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (a *App) handleStaticPage(name, heading string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return Render(c, a.Views.Page(StaticPage{
			Chrome:  a.chrome(c, name, PageMeta{Title: heading}),
			Copy:    a.Content.Copy,
			Heading: heading,
			Body:    a.Content.Pages[name],
		}))
	}
}

func (a *App) handleTeam(c echo.Context) error {
	return Render(c, a.Views.Team(TeamPage{
		Chrome:  a.chrome(c, "team", PageMeta{Title: "Our Team"}),
		Members: a.Content.Copy.Team,
	}))
}

func (a *App) handleBlogList(c echo.Context) error {
	posts, err := BlogPosts.Select(c.Request().Context(), a.DB, BlogPosts.Order, published)
	if err != nil {
		c.Logger().Errorf("blog: list posts: %v", err)
	}
	tag := c.QueryParam("tag")
	return Render(c, a.Views.BlogList(BlogListPage{
		Chrome:    a.chrome(c, "blog", PageMeta{Title: "Blog"}),
		Posts:     FilterByTag(posts, tag),
		Tags:      PostTags(posts),
		ActiveTag: strings.ToLower(strings.TrimSpace(tag)),
		Failed:    err != nil,
	}))
}

func (a *App) handleBlogPost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := BlogPosts.Get(ctx, a.DB, Eq{"slug", c.Param("slug")}, published)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.Logger().Errorf("blog: get post %q: %v", c.Param("slug"), err)
		}
		return c.Redirect(http.StatusSeeOther, "/blog/")
	}
	posts, err := BlogPosts.Select(ctx, a.DB, BlogPosts.Order, published)
	if err != nil {
		c.Logger().Errorf("blog: list related: %v", err)
	}
	ch := a.chrome(c, "blog", PageMeta{
		Title:  post.Title,
		URL:    BuildURL(a.Config.URL, "blog", post.Slug),
		OGType: "article",
		Image:  post.HeaderImage,
	})
	ch.JSONLD = BlogPostingJsonLD(post, a.Config)
	return Render(c, a.Views.BlogPost(BlogPostPage{
		Chrome:  ch,
		Post:    post,
		Related: firstN(FilterRelatedPosts(post, posts), 3),
	}))
}

func (a *App) handleEventList(c echo.Context) error {
	events, err := Events.Select(c.Request().Context(), a.DB, Events.Order, published)
	if err != nil {
		c.Logger().Errorf("events: list: %v", err)
	}
	upcoming, past := content.SplitEvents(a.inZone(events), a.now())
	// Past events read most recent first.
	for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
		past[i], past[j] = past[j], past[i]
	}
	return Render(c, a.Views.EventList(EventListPage{
		Chrome:   a.chrome(c, "events", PageMeta{Title: "Events"}),
		Upcoming: upcoming,
		Past:     past,
		Failed:   err != nil,
	}))
}

func (a *App) handleEventDetail(c echo.Context) error {
	event, err := Events.Get(c.Request().Context(), a.DB, Eq{"id", c.Param("id")}, published)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.Logger().Errorf("events: get %q: %v", c.Param("id"), err)
		}
		return c.Redirect(http.StatusSeeOther, "/events/")
	}
	event.Date = event.Date.In(a.Config.Location)
	ch := a.chrome(c, "events", PageMeta{
		Title: event.Title,
		URL:   BuildURL(a.Config.URL, "events", event.ID),
		Image: event.Image,
	})
	ch.JSONLD = EventJsonLD(event, a.Config)
	return Render(c, a.Views.EventDetail(EventDetailPage{Chrome: ch, Event: event}))
}

// inZone moves event times into the site timezone for display.
func (a *App) inZone(events []content.Event) []content.Event {
	for i := range events {
		events[i].Date = events[i].Date.In(a.Config.Location)
	}
	return events
}

func (a *App) handleFAQ(c echo.Context) error {
	faqs, err := FAQs.Select(c.Request().Context(), a.DB, FAQs.Order, published)
	if err != nil {
		c.Logger().Errorf("faq: list: %v", err)
	}
	return Render(c, a.Views.FAQ(FAQPage{
		Chrome: a.chrome(c, "faq", PageMeta{Title: "Frequently Asked Questions"}),
		FAQs:   faqs,
		Failed: err != nil,
	}))
}

func (a *App) handleGallery(c echo.Context) error {
	items, err := GalleryItems.Select(c.Request().Context(), a.DB, GalleryItems.Order, published)
	if err != nil {
		c.Logger().Errorf("gallery: list: %v", err)
	}
	return Render(c, a.Views.Gallery(GalleryPage{
		Chrome: a.chrome(c, "gallery", PageMeta{Title: "Gallery"}),
		Items:  items,
		Failed: err != nil,
	}))
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s\n", strings.TrimRight(a.Config.URL, "/")+"/sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.DB.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.chrome(c, "", PageMeta{Title: "Page not found"})))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.chrome(c, "", PageMeta{Title: "Something went wrong"})))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
