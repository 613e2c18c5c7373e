package outreach

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/outreach/upload"
)

func (a *App) handleLoginForm(c echo.Context) error {
	if IsAuthenticated(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(LoginPage{
		Chrome: a.chrome(c, "admin", PageMeta{Title: "Staff login"}),
	}))
}

func (a *App) handleLogin(c echo.Context) error {
	ip := c.RealIP()
	page := LoginPage{
		Chrome:   a.chrome(c, "admin", PageMeta{Title: "Staff login"}),
		Username: strings.TrimSpace(c.FormValue("username")),
	}
	if !a.loginLimiter.Check(ip) {
		page.Error = "Too many login attempts. Try again later."
		return RenderStatus(c, http.StatusTooManyRequests, a.Views.AdminLogin(page))
	}
	ok, err := Login(c, a.Auth, Credentials{Username: page.Username, Password: c.FormValue("password")})
	if err != nil {
		return err
	}
	if !ok {
		a.loginLimiter.Record(ip)
		page.Error = ErrInvalidCredentials.Error()
		return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(page))
	}
	a.loginLimiter.Reset(ip)
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func handleLogout(c echo.Context) error {
	if err := Logout(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login/")
}

func (a *App) handleDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	sess, _ := CurrentSession(c)
	page := DashboardPage{
		Chrome:   a.chrome(c, "admin", PageMeta{Title: "Dashboard"}),
		Username: sess.Username,
	}
	for _, p := range a.sectionOrder {
		s := a.sections[p]
		n, err := s.count(ctx)
		if err != nil {
			c.Logger().Errorf("admin: count %s: %v", p, err)
		}
		page.Counts = append(page.Counts, DashboardCount{Path: p, Title: s.title(), Count: n})
	}
	return Render(c, a.Views.AdminDashboard(page))
}

// handleUpload stores one image from the "file" field and returns its URL.
func (a *App) handleUpload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file provided"})
	}
	u, err := a.uploadFile(c, fh)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, errTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"url": u})
}

var errTooLarge = errors.New("Image must be 5 MB or smaller")

func (a *App) uploadFile(c echo.Context, fh *multipart.FileHeader) (string, error) {
	if fh.Size > upload.MaxSize {
		return "", errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", upload.ErrUpload
	}
	defer f.Close()
	u, err := a.Uploader.Upload(c.Request().Context(), fh.Filename, f)
	if err != nil {
		c.Logger().Errorf("admin: upload %q: %v", fh.Filename, err)
		return "", upload.ErrUpload
	}
	return u, nil
}

func (a *App) section(c echo.Context) (adminSection, error) {
	s, ok := a.sections[c.Param("resource")]
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound)
	}
	return s, nil
}

// renderManager lists a section, optionally with a row loaded into the form,
// and shows msg as a notice or alert as an error banner.
func (a *App) renderManager(c echo.Context, s adminSection, editID, msg, alert string) error {
	return a.renderSection(c, s, editID, nil, msg, alert)
}

// renderRejected re-renders a section after a failed save with the submitted
// values kept in the form.
func (a *App) renderRejected(c echo.Context, s adminSection, form url.Values, alert string) error {
	return a.renderSection(c, s, "", form, "", alert)
}

func (a *App) renderSection(c echo.Context, s adminSection, editID string, submitted url.Values, msg, alert string) error {
	page, err := s.page(c.Request().Context(), editID, submitted)
	if err != nil {
		if editID != "" && errors.Is(err, ErrNotFound) {
			return c.Redirect(http.StatusSeeOther, "/admin/"+s.path()+"/")
		}
		c.Logger().Errorf("admin: list %s: %v", s.path(), err)
		if alert == "" {
			alert = "Failed to load " + strings.ToLower(s.title())
		}
	}
	page.Chrome = a.chrome(c, "admin", PageMeta{Title: s.title()})
	page.Message = msg
	page.Alert = alert
	return Render(c, a.Views.AdminManager(page))
}

func (a *App) handleManager(c echo.Context) error {
	s, err := a.section(c)
	if err != nil {
		return err
	}
	return a.renderManager(c, s, "", "", "")
}

func (a *App) handleManagerEdit(c echo.Context) error {
	s, err := a.section(c)
	if err != nil {
		return err
	}
	if len(s.fields()) == 0 {
		return c.Redirect(http.StatusSeeOther, "/admin/"+s.path()+"/")
	}
	return a.renderManager(c, s, c.Param("id"), "", "")
}

func (a *App) handleManagerSave(c echo.Context) error {
	s, err := a.section(c)
	if err != nil {
		return err
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := url.Values{}
	for k, v := range params {
		form[k] = append([]string(nil), v...)
	}

	// An uploaded file replaces whatever URL was typed into an image field.
	for _, f := range s.fields() {
		if f.Kind != FieldImage {
			continue
		}
		fh, err := c.FormFile(f.Name + "_file")
		if err != nil || fh.Size == 0 {
			continue
		}
		u, err := a.uploadFile(c, fh)
		if err != nil {
			return a.renderRejected(c, s, form, err.Error())
		}
		form.Set(f.Name, u)
	}

	if err := s.saveForm(c.Request().Context(), form); err != nil {
		c.Logger().Errorf("admin: save %s: %v", s.path(), err)
		return a.renderRejected(c, s, form, saveAlert(err))
	}
	return a.renderManager(c, s, "", "Saved", "")
}

func saveAlert(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return "Failed to save. Please try again."
}

func (a *App) handleManagerPublish(c echo.Context) error {
	s, err := a.section(c)
	if err != nil {
		return err
	}
	on, err := s.togglePublished(c.Request().Context(), c.Param("id"))
	if err != nil {
		c.Logger().Errorf("admin: publish %s/%s: %v", s.path(), c.Param("id"), err)
		return a.renderManager(c, s, "", "", "Failed to update publish state")
	}
	msg := "Unpublished"
	if on {
		msg = "Published"
	}
	return a.renderManager(c, s, "", msg, "")
}

func (a *App) handleManagerDelete(c echo.Context) error {
	s, err := a.section(c)
	if err != nil {
		return err
	}
	if c.FormValue("confirm") != "yes" {
		return a.renderManager(c, s, "", "", "Deletion not confirmed")
	}
	if err := s.remove(c.Request().Context(), c.Param("id")); err != nil {
		c.Logger().Errorf("admin: delete %s/%s: %v", s.path(), c.Param("id"), err)
		return a.renderManager(c, s, "", "", "Failed to delete")
	}
	return a.renderManager(c, s, "", "Deleted", "")
}

func (a *App) handleManagerStatus(c echo.Context) error {
	s, err := a.section(c)
	if err != nil {
		return err
	}
	if err := s.setStatus(c.Request().Context(), c.Param("id"), c.FormValue("status")); err != nil {
		c.Logger().Errorf("admin: status %s/%s: %v", s.path(), c.Param("id"), err)
		return a.renderManager(c, s, "", "", "Failed to update status")
	}
	return a.renderManager(c, s, "", "Status updated", "")
}
