package outreach

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/outreach/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitemapPages are the fixed public pages, in nav order.
var sitemapPages = []string{
	"about", "team", "why-support", "donate", "events", "blog",
	"faq", "gallery", "volunteer", "contact",
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := BlogPosts.Select(ctx, a.DB, BlogPosts.Order, published)
	if err != nil {
		c.Logger().Errorf("sitemap: list posts: %v", err)
	}
	events, err := Events.Select(ctx, a.DB, Events.Order, published)
	if err != nil {
		c.Logger().Errorf("sitemap: list events: %v", err)
	}
	return a.renderSitemap(c, posts, events)
}

func (a *App) renderSitemap(c echo.Context, posts []content.BlogPost, events []content.Event) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	for _, p := range sitemapPages {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p)})
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", p.Slug),
			LastMod: p.UpdatedAt.UTC().Format("2006-01-02"),
		})
	}
	for _, e := range events {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "events", e.ID),
			LastMod: e.UpdatedAt.UTC().Format("2006-01-02"),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
