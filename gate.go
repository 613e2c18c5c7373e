package outreach

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const accessCookie = "site_access"

// Remaining is the countdown shown on the coming-soon page.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Done reports whether the countdown has reached zero.
func (r Remaining) Done() bool {
	return r == Remaining{}
}

// Countdown splits the time from now until target into days, hours, minutes
// and seconds. Once target has passed every field is zero.
func Countdown(now, target time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{}
	}
	total := int(d / time.Second)
	return Remaining{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// gateBypass lists paths that are always served: assets, feeds and the
// admin area, so staff can prepare content before launch.
func gateBypass(path string) bool {
	return strings.HasPrefix(path, "/public/") ||
		strings.HasPrefix(path, "/admin") ||
		path == "/healthz" || path == "/robots.txt" || path == "/favicon.svg" ||
		path == "/feed.xml" || path == "/sitemap.xml"
}

// accessGate shows the coming-soon page until the visitor has unlocked the
// site. Visiting any page with the unlock parameter stores a cookie so later
// visits go straight through.
func (a *App) accessGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !a.Config.GateEnabled || gateBypass(c.Request().URL.Path) {
			return next(c)
		}
		if c.QueryParams().Has(a.Config.GateParam) {
			c.SetCookie(&http.Cookie{
				Name:     accessCookie,
				Value:    "1",
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   a.Config.CookieSecure,
			})
			return next(c)
		}
		if ck, err := c.Cookie(accessCookie); err == nil && ck.Value == "1" {
			return next(c)
		}
		c.Response().Header().Set("Cache-Control", "no-store")
		return RenderStatus(c, http.StatusOK, a.Views.ComingSoon(ComingSoonPage{
			Chrome:    a.chrome(c, "", PageMeta{Title: "Coming soon"}),
			LaunchAt:  a.Config.LaunchAt,
			Remaining: Countdown(a.now(), a.Config.LaunchAt),
		}))
	}
}
