package outreach

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/eringen/outreach/contact"
	"github.com/eringen/outreach/content"
)

const (
	testUser     = "staff"
	testPassword = "correct horse battery"
	testCSRF     = "test-csrf-token"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func stubView[T any](name string) func(T) templ.Component {
	return func(data T) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "view=%s\n%+v\n", name, data)
			return err
		})
	}
}

func stubViews() ViewFuncs {
	return ViewFuncs{
		Home:           stubView[HomePage]("home"),
		Page:           stubView[StaticPage]("page"),
		Team:           stubView[TeamPage]("team"),
		BlogList:       stubView[BlogListPage]("blog_list"),
		BlogPost:       stubView[BlogPostPage]("blog_post"),
		EventList:      stubView[EventListPage]("events"),
		EventDetail:    stubView[EventDetailPage]("event"),
		FAQ:            stubView[FAQPage]("faq"),
		Gallery:        stubView[GalleryPage]("gallery"),
		Volunteer:      stubView[VolunteerPage]("volunteer"),
		Contact:        stubView[ContactPage]("contact"),
		ComingSoon:     stubView[ComingSoonPage]("coming_soon"),
		AdminLogin:     stubView[LoginPage]("login"),
		AdminDashboard: stubView[DashboardPage]("dashboard"),
		AdminManager:   stubManager,
		NotFound:       stubView[Chrome]("not_found"),
		ServerError:    stubView[Chrome]("error"),
	}
}

// stubManager also prints the form, which %+v would show as a pointer.
func stubManager(p ManagerPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "view=manager\n%+v\n", p); err != nil {
			return err
		}
		if p.Form != nil {
			_, err := fmt.Fprintf(w, "form=%+v\n", *p.Form)
			return err
		}
		return nil
	})
}

type fakeRelay struct {
	mu   sync.Mutex
	sent []contact.Message
	err  error
}

func (f *fakeRelay) Send(ctx context.Context, m contact.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return f.err
}

func (f *fakeRelay) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeUploader struct {
	url   string
	err   error
	names []string
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.names = append(f.names, filename)
	return f.url, f.err
}

type testEnv struct {
	app      *App
	relay    *fakeRelay
	uploader *fakeUploader
}

func newTestEnv(t *testing.T, cfg SiteConfig) *testEnv {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	cfg.AdminUsername = testUser
	cfg.AdminPasswordHash = string(hash)
	cfg.SessionSecret = "test-session-secret"
	cfg.URL = "https://example.org"
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	db, err := OpenDB(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	env := &testEnv{
		relay:    &fakeRelay{},
		uploader: &fakeUploader{url: "https://cdn.example.org/photo.jpg"},
	}
	env.app = New(cfg, stubViews(),
		WithDB(db),
		WithRelay(env.relay),
		WithUploader(env.uploader),
		WithClock(func() time.Time { return testNow }),
	)
	if err := env.app.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { env.app.Close() })
	return env
}

// client is a minimal browser: it keeps cookies between requests and sends
// a matching CSRF cookie and header on every request.
type client struct {
	t   *testing.T
	app *App
	jar map[string]*http.Cookie
}

func (e *testEnv) client(t *testing.T) *client {
	return &client{t: t, app: e.app, jar: map[string]*http.Cookie{}}
}

func (c *client) send(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set(echo.HeaderXCSRFToken, testCSRF)
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: testCSRF})
	for _, ck := range c.jar {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "_csrf" {
			continue
		}
		if ck.MaxAge < 0 {
			delete(c.jar, ck.Name)
			continue
		}
		c.jar[ck.Name] = ck
	}
	return rec
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.send(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return c.send(req)
}

func (c *client) postMultipart(target string, fields map[string]string, fileField, fileName string, file []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			c.t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			c.t.Fatalf("create file: %v", err)
		}
		fw.Write(file)
	}
	w.Close()
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return c.send(req)
}

func (c *client) login() {
	c.t.Helper()
	rec := c.post("/admin/login/", url.Values{"username": {testUser}, "password": {testPassword}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/" {
		c.t.Fatalf("login: got %d %q, want 303 /admin/", rec.Code, rec.Header().Get("Location"))
	}
}

func seedPost(t *testing.T, a *App, title string, published bool, tags ...string) content.BlogPost {
	t.Helper()
	p, err := a.Blog.Create(context.Background(), content.BlogPost{
		Title:     title,
		Content:   "<p>" + title + " body</p>",
		Tags:      tags,
		Published: published,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func TestPublicBlogHidesDrafts(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	seedPost(t, env.app, "Spring Food Drive", true, "food")
	draft := seedPost(t, env.app, "Secret Draft", false)
	c := env.client(t)

	rec := c.get("/blog/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /blog/: status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Spring Food Drive") {
		t.Errorf("published post missing from /blog/")
	}
	if strings.Contains(body, "Secret Draft") {
		t.Errorf("draft post listed on /blog/")
	}

	rec = c.get("/blog/" + draft.Slug + "/")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/blog/" {
		t.Errorf("GET draft: got %d %q, want 303 /blog/", rec.Code, rec.Header().Get("Location"))
	}

	c.login()
	body = c.get("/admin/blog/").Body.String()
	if !strings.Contains(body, "Secret Draft") || !strings.Contains(body, "Spring Food Drive") {
		t.Errorf("admin list should show drafts and published posts:\n%s", body)
	}
}

func TestBlogPostPage(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	post := seedPost(t, env.app, "Our Annual Gala!", true, "events")
	seedPost(t, env.app, "Gala Volunteers Needed", true, "events")
	c := env.client(t)

	if post.Slug != "our-annual-gala" {
		t.Fatalf("slug = %q", post.Slug)
	}
	rec := c.get("/blog/our-annual-gala/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "view=blog_post") || !strings.Contains(body, "Gala Volunteers Needed") {
		t.Errorf("expected post page with related post, got:\n%s", body)
	}
	if !strings.Contains(body, `"@type":"BlogPosting"`) {
		t.Errorf("expected BlogPosting JSON-LD")
	}
}

func TestBlogTagFilter(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	seedPost(t, env.app, "Tutoring Results", true, "Education")
	seedPost(t, env.app, "Soup Kitchen Update", true, "food")
	c := env.client(t)

	body := c.get("/blog/?tag=education").Body.String()
	if !strings.Contains(body, "Tutoring Results") || strings.Contains(body, "Soup Kitchen Update") {
		t.Errorf("tag filter not applied:\n%s", body)
	}
}

func TestEventSaveForcesUnpublished(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	c := env.client(t)
	c.login()

	rec := c.post("/admin/events/save/", url.Values{
		"title":       {"Community Picnic"},
		"date":        {"2025-04-01T10:00"},
		"location":    {"Riverside Park"},
		"status":      {"upcoming"},
		"description": {"<p>Bring a blanket.</p>"},
		"published":   {"on"},
	})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Message:Saved") {
		t.Fatalf("save event: %d\n%s", rec.Code, rec.Body.String())
	}

	events, err := env.app.Events.List(context.Background())
	if err != nil || len(events) != 1 {
		t.Fatalf("list events: %v (%d rows)", err, len(events))
	}
	ev := events[0]
	if ev.Published {
		t.Fatalf("saved event should be unpublished")
	}
	if strings.Contains(c.get("/events/").Body.String(), "Community Picnic") {
		t.Errorf("unpublished event listed publicly")
	}

	rec = c.post("/admin/events/"+ev.ID+"/publish/", url.Values{})
	if !strings.Contains(rec.Body.String(), "Message:Published") {
		t.Fatalf("publish: %s", rec.Body.String())
	}
	body := c.get("/events/").Body.String()
	if !strings.Contains(body, "Community Picnic") {
		t.Errorf("published upcoming event missing from /events/")
	}

	// Saving again (an edit) resets the flag.
	rec = c.post("/admin/events/save/", url.Values{
		"id":          {ev.ID},
		"title":       {"Community Picnic"},
		"date":        {"2025-04-01T10:00"},
		"description": {"<p>Bring a blanket and a friend.</p>"},
	})
	if !strings.Contains(rec.Body.String(), "Message:Saved") {
		t.Fatalf("edit: %s", rec.Body.String())
	}
	got, err := env.app.Events.Get(context.Background(), ev.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Published {
		t.Errorf("edited event should be unpublished again")
	}
	if !got.CreatedAt.Equal(ev.CreatedAt) {
		t.Errorf("CreatedAt changed on edit: %v -> %v", ev.CreatedAt, got.CreatedAt)
	}
}

func TestEventsSplitUpcomingAndPast(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	ctx := context.Background()
	for _, e := range []content.Event{
		{Title: "Last Winter Coat Drive", Date: testNow.Add(-30 * 24 * time.Hour)},
		{Title: "Next Week Cleanup", Date: testNow.Add(7 * 24 * time.Hour)},
	} {
		e.Description = "<p>details</p>"
		e.Status = content.EventUpcoming
		saved, err := env.app.Events.Create(ctx, e)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := env.app.Events.TogglePublished(ctx, saved.ID); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	body := env.client(t).get("/events/").Body.String()
	up := strings.Index(body, "Upcoming:")
	past := strings.Index(body, "Past:")
	if up < 0 || past < 0 {
		t.Fatalf("unexpected body:\n%s", body)
	}
	if i := strings.Index(body, "Next Week Cleanup"); i < up || i > past {
		t.Errorf("future event not in Upcoming")
	}
	if i := strings.Index(body, "Last Winter Coat Drive"); i < past {
		t.Errorf("past event not in Past")
	}
}

func TestEventDetail(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	ctx := context.Background()
	create := func(title string, publish bool) content.Event {
		e, err := env.app.Events.Create(ctx, content.Event{
			Title: title, Description: "<p>details</p>", Date: testNow.Add(72 * time.Hour),
			Location: "Town Hall", Status: content.EventUpcoming,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if publish {
			if _, err := env.app.Events.TogglePublished(ctx, e.ID); err != nil {
				t.Fatalf("publish: %v", err)
			}
		}
		return e
	}
	live := create("Spring Gala", true)
	draft := create("Planning Meeting", false)
	c := env.client(t)

	rec := c.get("/events/" + live.ID + "/")
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, "view=event") || !strings.Contains(body, "Spring Gala") {
		t.Fatalf("published event: %d\n%s", rec.Code, body)
	}
	if !strings.Contains(body, `"@type":"Event"`) || !strings.Contains(body, `"url":"https://example.org/events/`+live.ID+`/"`) {
		t.Errorf("event JSON-LD missing:\n%s", body)
	}

	tests := []struct {
		name string
		id   string
	}{
		{"unpublished", draft.ID},
		{"unknown", "no-such-event"},
	}
	for _, tt := range tests {
		rec := c.get("/events/" + tt.id + "/")
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/events/" {
			t.Errorf("%s event: %d %q, want 303 to /events/", tt.name, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestEventTimesUseSiteZone(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	env := newTestEnv(t, SiteConfig{Location: est})
	ctx := context.Background()
	c := env.client(t)
	c.login()

	// testNow is 07:00 EST; the event starts at 10:00 EST.
	rec := c.post("/admin/events/save/", url.Values{
		"title":       {"Morning Market"},
		"date":        {"2025-03-10T10:00"},
		"description": {"<p>Fresh produce</p>"},
	})
	if !strings.Contains(rec.Body.String(), "Message:Saved") {
		t.Fatalf("save: %s", rec.Body.String())
	}
	events, err := env.app.Events.List(ctx)
	if err != nil || len(events) != 1 {
		t.Fatalf("list: %v (%d rows)", err, len(events))
	}
	ev := events[0]
	if want := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC); !ev.Date.Equal(want) {
		t.Errorf("stored date = %v, want %v", ev.Date, want)
	}
	if _, err := env.app.Events.TogglePublished(ctx, ev.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}

	body := c.get("/events/").Body.String()
	up, past := strings.Index(body, "Upcoming:"), strings.Index(body, "Past:")
	if i := strings.Index(body, "Morning Market"); i < up || i > past {
		t.Errorf("event later today not listed as upcoming:\n%s", body)
	}
	if body := c.get("/events/" + ev.ID + "/").Body.String(); !strings.Contains(body, `"startDate":"2025-03-10T10:00:00-05:00"`) {
		t.Errorf("startDate not in site zone:\n%s", body)
	}
	if body := c.get("/admin/events/" + ev.ID + "/").Body.String(); !strings.Contains(body, "Value:2025-03-10T10:00") {
		t.Errorf("edit form not in site zone:\n%s", body)
	}
}

func TestFAQPage(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	ctx := context.Background()
	for _, f := range []content.FAQ{
		{Question: "Second question", Answer: "<p>b</p>", SortOrder: 2, Published: true},
		{Question: "Hidden question", Answer: "<p>c</p>", SortOrder: 0},
		{Question: "First question", Answer: "<p>a</p>", SortOrder: 1, Published: true},
	} {
		if _, err := env.app.FAQs.Create(ctx, f); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rec := env.client(t).get("/faq/")
	body := rec.Body.String()
	if rec.Code != http.StatusOK || !strings.Contains(body, "view=faq") {
		t.Fatalf("faq: %d\n%s", rec.Code, body)
	}
	if strings.Contains(body, "Hidden question") {
		t.Errorf("draft FAQ shown publicly")
	}
	first, second := strings.Index(body, "First question"), strings.Index(body, "Second question")
	if first < 0 || second < first {
		t.Errorf("FAQs not in sort order:\n%s", body)
	}
}

func volunteerForm(phone string) url.Values {
	return url.Values{
		"full_name":    {"Jordan Lee"},
		"email":        {"jordan@example.org"},
		"phone":        {phone},
		"interests":    {"Community Outreach"},
		"availability": {"Weekend Mornings"},
	}
}

func TestVolunteerPhoneValidation(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	c := env.client(t)
	ctx := context.Background()

	rec := c.post("/volunteer/", volunteerForm("123"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("short phone: status %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), content.ErrVolunteerPhone.Error()) {
		t.Errorf("expected phone error, got:\n%s", rec.Body.String())
	}
	if n, _ := env.app.Volunteers.Count(ctx); n != 0 {
		t.Fatalf("invalid registration stored (%d rows)", n)
	}

	rec = c.post("/volunteer/", volunteerForm("+1 415-555-0100"))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Success:true") {
		t.Fatalf("valid phone: %d\n%s", rec.Code, rec.Body.String())
	}
	vols, err := env.app.Volunteers.List(ctx)
	if err != nil || len(vols) != 1 {
		t.Fatalf("list volunteers: %v (%d rows)", err, len(vols))
	}
	if vols[0].Status != content.VolunteerPending {
		t.Errorf("status = %q, want pending", vols[0].Status)
	}
	if !vols[0].CreatedAt.Equal(testNow) {
		t.Errorf("created_at = %v, want %v", vols[0].CreatedAt, testNow)
	}
}

func TestVolunteerStatusAndReadOnly(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	c := env.client(t)
	c.post("/volunteer/", volunteerForm("+1 415-555-0100"))
	vols, _ := env.app.Volunteers.List(context.Background())
	if len(vols) != 1 {
		t.Fatalf("expected one registration")
	}
	id := vols[0].ID

	c.login()
	rec := c.post("/admin/volunteers/"+id+"/status/", url.Values{"status": {"approved"}})
	if !strings.Contains(rec.Body.String(), "Message:Status updated") {
		t.Fatalf("status: %s", rec.Body.String())
	}
	got, _ := env.app.Volunteers.Get(context.Background(), id)
	if got.Status != content.VolunteerApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}

	rec = c.post("/admin/volunteers/"+id+"/status/", url.Values{"status": {"archived"}})
	if !strings.Contains(rec.Body.String(), "Alert:Failed to update status") {
		t.Errorf("invalid status should alert: %s", rec.Body.String())
	}

	rec = c.post("/admin/volunteers/save/", url.Values{"full_name": {"Injected"}})
	if !strings.Contains(rec.Body.String(), "Alert:Failed to save") {
		t.Errorf("volunteers should be read-only: %s", rec.Body.String())
	}
	rec = c.post("/admin/volunteers/"+id+"/publish/", url.Values{})
	if !strings.Contains(rec.Body.String(), "Alert:Failed to update publish state") {
		t.Errorf("volunteers have no publish toggle: %s", rec.Body.String())
	}
}

func TestContactValidatesBeforeRelay(t *testing.T) {
	tests := []struct {
		name  string
		form  url.Values
		field string
	}{
		{
			name:  "short message",
			form:  url.Values{"name": {"Sam"}, "email": {"sam@example.org"}, "subject": {"Hello there"}, "message": {"hi"}},
			field: "message",
		},
		{
			name:  "invalid email",
			form:  url.Values{"name": {"Sam"}, "email": {"sam-at-example"}, "subject": {"Hello there"}, "message": {"I would like to help out."}},
			field: "email",
		},
		{
			name:  "short name",
			form:  url.Values{"name": {"S"}, "email": {"sam@example.org"}, "subject": {"Hello there"}, "message": {"I would like to help out."}},
			field: "name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, SiteConfig{})
			rec := env.client(t).post("/contact/", tt.form)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status %d, want 422", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.field+":") {
				t.Errorf("expected %s field error, got:\n%s", tt.field, rec.Body.String())
			}
			if n := env.relay.count(); n != 0 {
				t.Errorf("relay called %d times for invalid input", n)
			}
		})
	}
}

func TestContactRelay(t *testing.T) {
	form := url.Values{
		"name":    {"Sam Rivera"},
		"email":   {"sam@example.org"},
		"subject": {"Corporate volunteering"},
		"message": {"Our team of twelve would like to help at the next food drive."},
	}

	env := newTestEnv(t, SiteConfig{})
	rec := env.client(t).post("/contact/", form)
	if !strings.Contains(rec.Body.String(), "Toast:"+msgContactSent) {
		t.Errorf("expected success toast, got:\n%s", rec.Body.String())
	}
	if env.relay.count() != 1 || env.relay.sent[0].Subject != "Corporate volunteering" {
		t.Errorf("relay got %+v", env.relay.sent)
	}

	env = newTestEnv(t, SiteConfig{})
	env.relay.err = fmt.Errorf("%w: status 500", contact.ErrRelay)
	rec = env.client(t).post("/contact/", form)
	body := rec.Body.String()
	if !strings.Contains(body, "Toast:"+msgContactFailed) || !strings.Contains(body, "ToastError:true") {
		t.Errorf("expected failure toast, got:\n%s", body)
	}
	if !strings.Contains(body, "Sam Rivera") {
		t.Errorf("fields should be kept after a relay failure")
	}
}

func TestAccessGate(t *testing.T) {
	launch := testNow.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second)
	env := newTestEnv(t, SiteConfig{GateEnabled: true, LaunchAt: launch})
	c := env.client(t)

	body := c.get("/").Body.String()
	if !strings.Contains(body, "view=coming_soon") {
		t.Fatalf("expected coming-soon page, got:\n%s", body)
	}
	if !strings.Contains(body, "Remaining:{Days:2 Hours:3 Minutes:4 Seconds:5}") {
		t.Errorf("unexpected countdown:\n%s", body)
	}

	if got := c.get("/healthz").Code; got != http.StatusOK {
		t.Errorf("/healthz behind gate: %d", got)
	}
	if body := c.get("/admin/login/").Body.String(); !strings.Contains(body, "view=login") {
		t.Errorf("admin login should bypass the gate")
	}

	if body := c.get("/?preview").Body.String(); !strings.Contains(body, "view=home") {
		t.Fatalf("marker should unlock the site, got:\n%s", body)
	}
	if _, ok := c.jar[accessCookie]; !ok {
		t.Fatalf("marker should set the %s cookie", accessCookie)
	}
	if body := c.get("/about/").Body.String(); !strings.Contains(body, "view=page") {
		t.Errorf("cookie should keep the site unlocked, got:\n%s", body)
	}

	// A fresh visitor is still gated.
	if body := env.client(t).get("/about/").Body.String(); !strings.Contains(body, "view=coming_soon") {
		t.Errorf("fresh visitor should see the gate")
	}
}

func TestAccessGateDisabled(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	if body := env.client(t).get("/").Body.String(); !strings.Contains(body, "view=home") {
		t.Errorf("gate disabled: expected home, got:\n%s", body)
	}
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	c := env.client(t)

	rec := c.get("/admin/")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login/" {
		t.Fatalf("anonymous /admin/: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if rec := c.get("/admin/blog/"); rec.Code != http.StatusSeeOther {
		t.Errorf("anonymous /admin/blog/: %d, want 303", rec.Code)
	}

	rec = c.post("/admin/login/", url.Values{"username": {testUser}, "password": {"wrong"}})
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "Error:Invalid credentials") {
		t.Fatalf("wrong password: %d\n%s", rec.Code, rec.Body.String())
	}
	if rec := c.get("/admin/"); rec.Code != http.StatusSeeOther {
		t.Fatalf("failed login must stay logged out")
	}

	c.login()
	rec = c.get("/admin/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "view=dashboard") {
		t.Fatalf("dashboard: %d\n%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Username:"+testUser) {
		t.Errorf("dashboard should show the staff user")
	}

	rec = c.post("/admin/logout/", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout: %d", rec.Code)
	}
	if rec := c.get("/admin/"); rec.Code != http.StatusSeeOther {
		t.Errorf("after logout /admin/ should redirect, got %d", rec.Code)
	}
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t, SiteConfig{LoginAttempts: 2})
	c := env.client(t)
	bad := url.Values{"username": {testUser}, "password": {"nope"}}

	for i := 0; i < 2; i++ {
		if rec := c.post("/admin/login/", bad); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: %d", i+1, rec.Code)
		}
	}
	rec := c.post("/admin/login/", url.Values{"username": {testUser}, "password": {testPassword}})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("third attempt: %d, want 429", rec.Code)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	const title = "Bake Sale Recap"
	ctx := context.Background()
	tests := []struct {
		section string
		public  string
		seed    func(t *testing.T, a *App) string
		get     func(a *App, id string) error
	}{
		{
			section: "blog",
			public:  "/blog/",
			seed:    func(t *testing.T, a *App) string { return seedPost(t, a, title, true).ID },
			get: func(a *App, id string) error {
				_, err := a.Blog.Get(ctx, id)
				return err
			},
		},
		{
			section: "events",
			public:  "/events/",
			seed: func(t *testing.T, a *App) string {
				e, err := a.Events.Create(ctx, content.Event{
					Title: title, Description: "<p>x</p>", Date: testNow.Add(48 * time.Hour), Status: content.EventUpcoming,
				})
				if err != nil {
					t.Fatalf("seed event: %v", err)
				}
				if _, err := a.Events.TogglePublished(ctx, e.ID); err != nil {
					t.Fatalf("publish event: %v", err)
				}
				return e.ID
			},
			get: func(a *App, id string) error {
				_, err := a.Events.Get(ctx, id)
				return err
			},
		},
		{
			section: "faqs",
			public:  "/faq/",
			seed: func(t *testing.T, a *App) string {
				f, err := a.FAQs.Create(ctx, content.FAQ{Question: title, Answer: "<p>x</p>", Published: true})
				if err != nil {
					t.Fatalf("seed faq: %v", err)
				}
				return f.ID
			},
			get: func(a *App, id string) error {
				_, err := a.FAQs.Get(ctx, id)
				return err
			},
		},
		{
			section: "gallery",
			public:  "/gallery/",
			seed: func(t *testing.T, a *App) string {
				g, err := a.Gallery.Create(ctx, content.GalleryItem{Title: title, ImageURL: "/public/uploads/bake.jpg", Published: true})
				if err != nil {
					t.Fatalf("seed gallery item: %v", err)
				}
				return g.ID
			},
			get: func(a *App, id string) error {
				_, err := a.Gallery.Get(ctx, id)
				return err
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			env := newTestEnv(t, SiteConfig{})
			id := tt.seed(t, env.app)
			c := env.client(t)
			c.login()
			if !strings.Contains(c.get(tt.public).Body.String(), title) {
				t.Fatalf("seeded row missing from %s", tt.public)
			}

			target := "/admin/" + tt.section + "/" + id + "/delete/"
			rec := c.post(target, url.Values{})
			if !strings.Contains(rec.Body.String(), "Alert:Deletion not confirmed") {
				t.Fatalf("unconfirmed delete: %s", rec.Body.String())
			}
			if err := tt.get(env.app, id); err != nil {
				t.Fatalf("row removed without confirmation: %v", err)
			}

			rec = c.post(target, url.Values{"confirm": {"yes"}})
			body := rec.Body.String()
			if !strings.Contains(body, "Message:Deleted") {
				t.Fatalf("delete: %s", body)
			}
			if strings.Contains(body, title) {
				t.Errorf("deleted row still in admin list")
			}
			if strings.Contains(c.get(tt.public).Body.String(), title) {
				t.Errorf("deleted row still on %s", tt.public)
			}
			if err := tt.get(env.app, id); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete: %v, want ErrNotFound", err)
			}
		})
	}
}

func TestManagerSaveRequiredField(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	c := env.client(t)
	c.login()

	rec := c.post("/admin/faqs/save/", url.Values{"question": {"How do I donate?"}})
	if !strings.Contains(rec.Body.String(), "Alert:Answer is required") {
		t.Errorf("expected required-field alert, got:\n%s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Value:How do I donate?") {
		t.Errorf("submitted question not kept in the form:\n%s", rec.Body.String())
	}
	if n, _ := env.app.FAQs.Count(context.Background()); n != 0 {
		t.Errorf("invalid FAQ stored")
	}

	rec = c.post("/admin/events/save/", url.Values{"title": {"Gala"}, "date": {"next friday"}, "description": {"x"}})
	body := rec.Body.String()
	if !strings.Contains(body, "Alert:invalid date") {
		t.Errorf("expected date alert, got:\n%s", body)
	}
	for _, want := range []string{"Value:Gala", "Value:next friday", "Editing:false"} {
		if !strings.Contains(body, want) {
			t.Errorf("rejected event form missing %q:\n%s", want, body)
		}
	}

	post := seedPost(t, env.app, "Original Title", false)
	rec = c.post("/admin/blog/save/", url.Values{"id": {post.ID}, "title": {"!!!"}, "content": {"<p>edited</p>"}})
	body = rec.Body.String()
	if !strings.Contains(body, "Alert:Title must contain letters or numbers") {
		t.Errorf("expected slug alert, got:\n%s", body)
	}
	if !strings.Contains(body, "ID:"+post.ID+" Editing:true") || !strings.Contains(body, "Value:<p>edited</p>") {
		t.Errorf("rejected edit lost its values:\n%s", body)
	}
	if got, _ := env.app.Blog.Get(context.Background(), post.ID); got.Title != "Original Title" {
		t.Errorf("rejected edit changed the post: %q", got.Title)
	}
}

func TestManagerEditForm(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	post := seedPost(t, env.app, "Editable Post", false, "news", "food")
	c := env.client(t)
	c.login()

	body := c.get("/admin/blog/" + post.ID + "/").Body.String()
	if !strings.Contains(body, "Editing:true") || !strings.Contains(body, "Value:news, food") {
		t.Errorf("edit form not populated:\n%s", body)
	}

	rec := c.get("/admin/blog/does-not-exist/")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/blog/" {
		t.Errorf("missing row: %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if rec := c.get("/admin/unknown/"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown section: %d, want 404", rec.Code)
	}
}

func TestAdminUpload(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	c := env.client(t)
	c.login()

	rec := c.postMultipart("/admin/upload/", nil, "file", "team.jpg", []byte("jpeg bytes"))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"url":"https://cdn.example.org/photo.jpg"`) {
		t.Fatalf("upload: %d %s", rec.Code, rec.Body.String())
	}

	env.uploader.err = errors.New("boom")
	rec = c.postMultipart("/admin/upload/", nil, "file", "team.jpg", []byte("jpeg bytes"))
	if rec.Code != http.StatusBadGateway || !strings.Contains(rec.Body.String(), `"error":"Failed to upload image"`) {
		t.Errorf("failed upload: %d %s", rec.Code, rec.Body.String())
	}

	rec = c.postMultipart("/admin/upload/", nil, "", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file: %d, want 400", rec.Code)
	}
}

func TestManagerSaveWithImageFile(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	c := env.client(t)
	c.login()

	rec := c.postMultipart("/admin/gallery/save/", map[string]string{
		"title":     "Volunteers at the food bank",
		"published": "on",
	}, "image_url_file", "foodbank.jpg", []byte("jpeg bytes"))
	if !strings.Contains(rec.Body.String(), "Message:Saved") {
		t.Fatalf("save: %s", rec.Body.String())
	}
	items, _ := env.app.Gallery.List(context.Background())
	if len(items) != 1 || items[0].ImageURL != "https://cdn.example.org/photo.jpg" {
		t.Fatalf("gallery items = %+v", items)
	}
	if len(env.uploader.names) != 1 || env.uploader.names[0] != "foodbank.jpg" {
		t.Errorf("uploader calls = %v", env.uploader.names)
	}
	if !strings.Contains(c.get("/gallery/").Body.String(), "Volunteers at the food bank") {
		t.Errorf("published gallery item missing from /gallery/")
	}
}

func TestDashboardCounts(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	seedPost(t, env.app, "One", true)
	seedPost(t, env.app, "Two", false)
	c := env.client(t)
	c.login()

	body := c.get("/admin/").Body.String()
	if !strings.Contains(body, "{Path:blog Title:Blog Posts Count:2}") {
		t.Errorf("blog count missing:\n%s", body)
	}
	if !strings.Contains(body, "{Path:volunteers Title:Volunteers Count:0}") {
		t.Errorf("volunteer count missing:\n%s", body)
	}
}

func TestFeedsAndHealth(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	seedPost(t, env.app, "Winter Appeal", true, "appeal")
	seedPost(t, env.app, "Unfinished", false)
	c := env.client(t)

	rec := c.get("/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("feed: %d", rec.Code)
	}
	feed := rec.Body.String()
	if !strings.Contains(feed, "<link>https://example.org/blog/winter-appeal/</link>") {
		t.Errorf("feed missing post link:\n%s", feed)
	}
	if strings.Contains(feed, "Unfinished") {
		t.Errorf("feed lists a draft")
	}

	sitemap := c.get("/sitemap.xml").Body.String()
	for _, want := range []string{
		"<loc>https://example.org</loc>",
		"<loc>https://example.org/volunteer/</loc>",
		"<loc>https://example.org/blog/winter-appeal/</loc>",
	} {
		if !strings.Contains(sitemap, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}

	robots := c.get("/robots.txt").Body.String()
	if !strings.Contains(robots, "Sitemap: https://example.org/sitemap.xml") {
		t.Errorf("robots.txt: %s", robots)
	}

	if rec := c.get("/healthz"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("healthz: %d %s", rec.Code, rec.Body.String())
	}
}

func TestStaticPagesAndNotFound(t *testing.T) {
	env := newTestEnv(t, SiteConfig{})
	c := env.client(t)

	for _, path := range []string{"/about/", "/why-support/", "/donate/"} {
		rec := c.get(path)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "view=page") {
			t.Errorf("GET %s: %d", path, rec.Code)
		}
	}
	if body := c.get("/team/").Body.String(); !strings.Contains(body, "view=team") {
		t.Errorf("team page: %s", body)
	}
	rec := c.get("/no-such-page/")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "view=not_found") {
		t.Errorf("unknown page: %d %s", rec.Code, rec.Body.String())
	}
}
