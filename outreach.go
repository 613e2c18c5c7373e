// Package outreach is the website and content manager of a non-profit
// organisation, built with Go, Echo, and templ. It serves the public
// marketing pages, the volunteer and contact forms, and a staff dashboard
// for publishing blog posts, events, FAQs and gallery images.
//
// Templates are supplied through the ViewFuncs struct; the views package
// provides the default set.
package outreach

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/outreach/contact"
	"github.com/eringen/outreach/content"
	"github.com/eringen/outreach/upload"
)

// ViewFuncs holds the templ components the handlers render. This is the
// inversion-of-control point that lets a deployment own its templates.
type ViewFuncs struct {
	Home           func(HomePage) templ.Component
	Page           func(StaticPage) templ.Component
	Team           func(TeamPage) templ.Component
	BlogList       func(BlogListPage) templ.Component
	BlogPost       func(BlogPostPage) templ.Component
	EventList      func(EventListPage) templ.Component
	EventDetail    func(EventDetailPage) templ.Component
	FAQ            func(FAQPage) templ.Component
	Gallery        func(GalleryPage) templ.Component
	Volunteer      func(VolunteerPage) templ.Component
	Contact        func(ContactPage) templ.Component
	ComingSoon     func(ComingSoonPage) templ.Component
	AdminLogin     func(LoginPage) templ.Component
	AdminDashboard func(DashboardPage) templ.Component
	AdminManager   func(ManagerPage) templ.Component
	NotFound       func(Chrome) templ.Component
	ServerError    func(Chrome) templ.Component
}

// App is the central application. It wires together the database, the
// content managers, the external services, handlers, middleware and views.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	DB       *DB
	Views    ViewFuncs
	Content  *SiteContent
	Auth     Authenticator
	Uploader upload.Uploader
	Relay    contact.Relay

	Blog       *Manager[content.BlogPost]
	Events     *Manager[content.Event]
	FAQs       *Manager[content.FAQ]
	Gallery    *Manager[content.GalleryItem]
	Volunteers *Manager[content.Volunteer]

	sections     map[string]adminSection
	sectionOrder []string
	loginLimiter *Limiter
	formLimiter  *Limiter
	customRoutes []func(*App)
	contentFS    fs.FS
	staticDir    string
	now          func() time.Time
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		now:       time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// WithContent replaces the embedded site copy with files from fsys
// (site.yaml and pages/*.md).
func WithContent(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// Setup opens the database, builds the managers and external clients, and
// registers middleware and routes. Start calls it; tests call it directly.
func (a *App) Setup() error {
	if a.Auth == nil {
		if a.Config.AdminUsername == "" || a.Config.AdminPasswordHash == "" {
			return fmt.Errorf("outreach: AdminUsername and AdminPasswordHash are required")
		}
		a.Auth = NewStaticAuthenticator(a.Config.AdminUsername, a.Config.AdminPasswordHash)
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("outreach: SessionSecret is required")
	}

	if a.DB == nil {
		db, err := OpenDB(a.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("outreach: open database: %w", err)
		}
		a.DB = db
	}

	if a.contentFS == nil {
		a.contentFS = DefaultContent()
	}
	sc, err := LoadSiteContent(a.contentFS)
	if err != nil {
		return fmt.Errorf("outreach: load site content: %w", err)
	}
	a.Content = sc

	if a.Uploader == nil {
		u, err := a.newUploader()
		if err != nil {
			return err
		}
		a.Uploader = u
	}
	if a.Relay == nil {
		r, err := a.newRelay()
		if err != nil {
			return err
		}
		a.Relay = r
	}

	a.Blog = NewManager(a.DB, BlogResource)
	a.Events = NewManager(a.DB, NewEventResource(a.Config.Location))
	a.FAQs = NewManager(a.DB, FAQResource)
	a.Gallery = NewManager(a.DB, GalleryResource)
	a.Volunteers = NewManager(a.DB, VolunteerResource)
	a.Blog.now = a.now
	a.Events.now = a.now
	a.FAQs.now = a.now
	a.Gallery.now = a.now
	a.Volunteers.now = a.now
	a.registerSections(a.Blog, a.Events, a.FAQs, a.Gallery, a.Volunteers)

	a.loginLimiter = NewLimiter(a.Config.LoginAttempts, a.Config.LoginWindow)
	a.formLimiter = NewLimiter(a.Config.SubmissionsPerMin, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) registerSections(sections ...adminSection) {
	a.sections = make(map[string]adminSection, len(sections))
	a.sectionOrder = a.sectionOrder[:0]
	for _, s := range sections {
		a.sections[s.path()] = s
		a.sectionOrder = append(a.sectionOrder, s.path())
	}
}

func (a *App) newUploader() (upload.Uploader, error) {
	switch a.Config.UploadProvider {
	case "cloudinary":
		if a.Config.CloudinaryCloud == "" || a.Config.CloudinaryPreset == "" {
			return nil, fmt.Errorf("outreach: cloudinary uploads need CLOUDINARY_CLOUD_NAME and CLOUDINARY_UPLOAD_PRESET")
		}
		return upload.NewCloudinary(a.Config.CloudinaryCloud, a.Config.CloudinaryPreset), nil
	case "local":
		dir := a.Config.UploadDir
		if dir == "" {
			dir = filepath.Join(a.staticDir, "uploads")
		}
		return upload.NewLocal(dir, "/public/uploads"), nil
	}
	return nil, fmt.Errorf("outreach: unknown upload provider %q", a.Config.UploadProvider)
}

func (a *App) newRelay() (contact.Relay, error) {
	switch a.Config.ContactProvider {
	case "web3forms":
		return contact.NewWeb3FormsRelay(a.Config.ContactEndpoint, a.Config.ContactAccessKey), nil
	case "resend":
		if a.Config.ResendAPIKey == "" || a.Config.ResendTo == "" {
			return nil, fmt.Errorf("outreach: resend relay needs RESEND_API_KEY and RESEND_TO")
		}
		return contact.NewResendRelay(a.Config.ResendAPIKey, a.Config.ResendFrom, a.Config.ResendTo), nil
	}
	return nil, fmt.Errorf("outreach: unknown contact provider %q", a.Config.ContactProvider)
}

// Start sets the app up and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/favicon.svg", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", func(c echo.Context) error { return c.Redirect(http.StatusMovedPermanently, "/public/favicon.svg") })
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/about/", a.handleStaticPage("about", "About Us"))
	e.GET("/why-support/", a.handleStaticPage("why-support", "Why Support Us"))
	e.GET("/donate/", a.handleStaticPage("donate", "Donate"))
	e.GET("/team/", a.handleTeam)
	e.GET("/blog/", a.handleBlogList)
	e.GET("/blog/:slug/", a.handleBlogPost)
	e.GET("/events/", a.handleEventList)
	e.GET("/events/:id/", a.handleEventDetail)
	e.GET("/faq/", a.handleFAQ)
	e.GET("/gallery/", a.handleGallery)
	e.GET("/volunteer/", a.handleVolunteerForm)
	e.POST("/volunteer/", a.handleVolunteerSubmit)
	e.GET("/contact/", a.handleContactForm)
	e.POST("/contact/", a.handleContactSubmit)

	// Admin
	e.GET("/admin/login/", a.handleLoginForm)
	e.POST("/admin/login/", a.handleLogin)
	e.POST("/admin/logout/", handleLogout)

	admin := e.Group("/admin", requireAdmin)
	admin.GET("/", a.handleDashboard)
	admin.POST("/upload/", a.handleUpload)
	admin.GET("/:resource/", a.handleManager)
	admin.GET("/:resource/:id/", a.handleManagerEdit)
	admin.POST("/:resource/save/", a.handleManagerSave)
	admin.POST("/:resource/:id/publish/", a.handleManagerPublish)
	admin.POST("/:resource/:id/delete/", a.handleManagerDelete)
	admin.POST("/:resource/:id/status/", a.handleManagerStatus)
}

// Close releases the database and background goroutines.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.formLimiter != nil {
		a.formLimiter.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("outreach: required environment variable %s is not set", key)
	}
	return v
}
