package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/eringen/outreach"
)

var envTemplate = template.Must(template.New("env").Parse(`# Site
SITE_NAME="{{.SiteName}}"
SITE_URL=http://localhost:3000
SITE_DESCRIPTION=
SITE_EMAIL=
DONATE_URL=
# IANA zone event times are entered in, e.g. America/New_York (default: server zone)
SITE_TZ=
ADDR=:3000

# Storage: a file path for SQLite or a postgres:// URL
DATABASE_URL=data/site.db
CONTENT_DIR={{.ContentDir}}

# Staff login. Generate the hash with: outreach hash-password
ADMIN_USERNAME=admin
ADMIN_PASSWORD_HASH=
SESSION_SECRET={{.SessionSecret}}
COOKIE_SECURE=false

# Pre-launch gate
GATE_ENABLED=false
GATE_PARAM=preview
LAUNCH_AT=

# Images: local or cloudinary
UPLOAD_PROVIDER=local
CLOUDINARY_CLOUD_NAME=
CLOUDINARY_UPLOAD_PRESET=

# Contact form: web3forms or resend
CONTACT_PROVIDER=web3forms
CONTACT_ACCESS_KEY=
RESEND_API_KEY=
RESEND_FROM=
RESEND_TO=
`))

type initData struct {
	SiteName      string
	ContentDir    string
	SessionSecret string
}

// runInit copies the built-in site content into dir so it can be edited,
// and writes a matching .env.example.
func runInit(dir string) error {
	contentDir := filepath.Join(dir, "sitecontent")
	if _, err := os.Stat(contentDir); err == nil {
		return fmt.Errorf("directory %q already exists", contentDir)
	}

	src := outreach.DefaultContent()
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		outPath := filepath.Join(contentDir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}
		b, err := fs.ReadFile(src, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := os.WriteFile(outPath, b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		fmt.Printf("  created %s\n", outPath)
		return nil
	})
	if err != nil {
		return err
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return err
	}
	envPath := filepath.Join(dir, ".env.example")
	f, err := os.Create(envPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", envPath, err)
	}
	defer f.Close()
	if err := envTemplate.Execute(f, initData{
		SiteName:      toTitle(filepath.Base(filepath.Clean(dir))),
		ContentDir:    contentDir,
		SessionSecret: hex.EncodeToString(secret),
	}); err != nil {
		return err
	}
	fmt.Printf("  created %s\n", envPath)

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cp %s .env\n", envPath)
	fmt.Println("  outreach hash-password   # paste the hash into ADMIN_PASSWORD_HASH")
	fmt.Println("  outreach serve")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "hope-foundation" -> "Hope Foundation"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
