package outreach

import (
	"embed"
	"io/fs"
)

// EmbeddedAssets contains static assets shipped with the site:
// site.js (countdown, delete confirmation, upload preview) and site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// defaultContent holds the default site.yaml and pages/*.md copy.
//
//go:embed all:sitecontent
var defaultContent embed.FS

// DefaultContent returns the built-in site.yaml and pages/*.md.
func DefaultContent() fs.FS {
	sub, err := fs.Sub(defaultContent, "sitecontent")
	if err != nil {
		panic(err)
	}
	return sub
}
