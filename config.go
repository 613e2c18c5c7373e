package outreach

import (
	"fmt"
	"strconv"
	"time"

	"github.com/eringen/outreach/contact"
	"github.com/eringen/outreach/upload"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name         string // Organisation name (default "Hope Foundation")
	URL          string // Canonical URL (default "http://localhost:3000")
	Description  string // Meta description and feed description
	ContactEmail string // Shown in the footer and JSON-LD
	DonateURL    string // External donation checkout link

	Location *time.Location // Timezone event times are entered and shown in (default time.Local)

	Addr        string // Listen address (default ":3000")
	DatabaseURL string // SQLite path or postgres:// DSN (default "data/site.db")

	AdminUsername     string // Required: staff login name
	AdminPasswordHash string // Required: bcrypt hash of the staff password
	SessionSecret     string // Required: session encryption secret
	CookieSecure      bool   // Set true for HTTPS

	GateEnabled bool      // Show the coming-soon page until unlocked
	GateParam   string    // Query parameter that unlocks the site (default "preview")
	LaunchAt    time.Time // Countdown target

	UploadProvider    string // "local" (default) or "cloudinary"
	UploadDir         string // Local uploads directory (default "<static>/uploads")
	CloudinaryCloud   string
	CloudinaryPreset  string
	ContactProvider   string // "web3forms" (default) or "resend"
	ContactEndpoint   string
	ContactAccessKey  string
	ResendAPIKey      string
	ResendFrom        string
	ResendTo          string
	LoginAttempts     int           // Failed logins allowed per window (default 5)
	LoginWindow       time.Duration // default 1min
	SubmissionsPerMin int           // Public form posts per IP per minute (default 10)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Hope Foundation"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = "data/site.db"
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.GateParam == "" {
		c.GateParam = "preview"
	}
	if c.UploadProvider == "" {
		c.UploadProvider = "local"
	}
	if c.ContactProvider == "" {
		c.ContactProvider = "web3forms"
	}
	if c.LoginAttempts == 0 {
		c.LoginAttempts = 5
	}
	if c.LoginWindow == 0 {
		c.LoginWindow = time.Minute
	}
	if c.SubmissionsPerMin == 0 {
		c.SubmissionsPerMin = 10
	}
}

func (c SiteConfig) info() SiteInfo {
	return SiteInfo{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Email:       c.ContactEmail,
		DonateURL:   c.DonateURL,
	}
}

// ConfigFromEnv builds a SiteConfig from environment variables. Unset values
// fall back to the defaults applied by New.
func ConfigFromEnv() (SiteConfig, error) {
	cfg := SiteConfig{
		Name:              EnvOr("SITE_NAME", ""),
		URL:               EnvOr("SITE_URL", ""),
		Description:       EnvOr("SITE_DESCRIPTION", ""),
		ContactEmail:      EnvOr("SITE_EMAIL", ""),
		DonateURL:         EnvOr("DONATE_URL", ""),
		Addr:              EnvOr("ADDR", ""),
		DatabaseURL:       EnvOr("DATABASE_URL", ""),
		AdminUsername:     EnvOr("ADMIN_USERNAME", ""),
		AdminPasswordHash: EnvOr("ADMIN_PASSWORD_HASH", ""),
		SessionSecret:     EnvOr("SESSION_SECRET", ""),
		CookieSecure:      EnvOr("COOKIE_SECURE", "") == "true",
		GateEnabled:       EnvOr("GATE_ENABLED", "") == "true",
		GateParam:         EnvOr("GATE_PARAM", ""),
		UploadProvider:    EnvOr("UPLOAD_PROVIDER", ""),
		UploadDir:         EnvOr("UPLOAD_DIR", ""),
		CloudinaryCloud:   EnvOr("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryPreset:  EnvOr("CLOUDINARY_UPLOAD_PRESET", ""),
		ContactProvider:   EnvOr("CONTACT_PROVIDER", ""),
		ContactEndpoint:   EnvOr("CONTACT_ENDPOINT", ""),
		ContactAccessKey:  EnvOr("CONTACT_ACCESS_KEY", ""),
		ResendAPIKey:      EnvOr("RESEND_API_KEY", ""),
		ResendFrom:        EnvOr("RESEND_FROM", ""),
		ResendTo:          EnvOr("RESEND_TO", ""),
	}
	if v := EnvOr("LAUNCH_AT", ""); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return cfg, fmt.Errorf("LAUNCH_AT: %w", err)
		}
		cfg.LaunchAt = t
	}
	if v := EnvOr("SITE_TZ", ""); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return cfg, fmt.Errorf("SITE_TZ: %w", err)
		}
		cfg.Location = loc
	}
	if v := EnvOr("LOGIN_ATTEMPTS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("LOGIN_ATTEMPTS: %w", err)
		}
		cfg.LoginAttempts = n
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithDB uses an already opened database instead of opening Config.DatabaseURL.
func WithDB(db *DB) Option {
	return func(a *App) {
		a.DB = db
	}
}

// WithAuthenticator replaces the configured credential check.
func WithAuthenticator(auth Authenticator) Option {
	return func(a *App) {
		a.Auth = auth
	}
}

// WithUploader replaces the configured image uploader.
func WithUploader(u upload.Uploader) Option {
	return func(a *App) {
		a.Uploader = u
	}
}

// WithRelay replaces the configured contact relay.
func WithRelay(r contact.Relay) Option {
	return func(a *App) {
		a.Relay = r
	}
}

// WithClock overrides the time source used by the gate and event listings.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
