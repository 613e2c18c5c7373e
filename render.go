package outreach

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// chrome builds the shared page data for a request.
func (a *App) chrome(c echo.Context, active string, meta PageMeta) Chrome {
	if meta.Title == "" {
		meta.Title = a.Config.Name
	} else {
		meta.Title = meta.Title + " | " + a.Config.Name
	}
	if meta.Description == "" {
		meta.Description = a.Config.Description
	}
	if meta.URL == "" {
		meta.URL = BuildURL(a.Config.URL, c.Request().URL.Path)
	}
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	return Chrome{
		Site:   a.Config.info(),
		Meta:   meta,
		Active: active,
		CSRF:   CsrfToken(c),
		Admin:  IsAuthenticated(c),
	}
}
