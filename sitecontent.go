package outreach

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// SiteCopy is the fixed marketing copy of the site: hero, mission, team,
// reasons to support and donation options. It lives in site.yaml so staff
// can edit wording without touching templates.
type SiteCopy struct {
	Hero struct {
		Title    string `yaml:"title"`
		Subtitle string `yaml:"subtitle"`
		CTALabel string `yaml:"cta_label"`
		CTALink  string `yaml:"cta_link"`
		Image    string `yaml:"image"`
	} `yaml:"hero"`
	Mission    string       `yaml:"mission"`
	Stats      []Stat       `yaml:"stats"`
	Team       []TeamMember `yaml:"team"`
	WhySupport []Reason     `yaml:"why_support"`
	Donation   struct {
		Intro   string           `yaml:"intro"`
		Options []DonationOption `yaml:"options"`
	} `yaml:"donation"`
}

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type TeamMember struct {
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Bio   string `yaml:"bio"`
	Photo string `yaml:"photo"`
}

type Reason struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

type DonationOption struct {
	Amount string `yaml:"amount"`
	Impact string `yaml:"impact"`
}

// SiteContent holds the parsed copy and the rendered long-form pages.
type SiteContent struct {
	Copy  SiteCopy
	Pages map[string]string // page name -> rendered HTML
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// LoadSiteContent reads site.yaml and every pages/*.md file from fsys.
func LoadSiteContent(fsys fs.FS) (*SiteContent, error) {
	raw, err := fs.ReadFile(fsys, "site.yaml")
	if err != nil {
		return nil, fmt.Errorf("read site.yaml: %w", err)
	}
	sc := &SiteContent{Pages: map[string]string{}}
	if err := yaml.Unmarshal(raw, &sc.Copy); err != nil {
		return nil, fmt.Errorf("parse site.yaml: %w", err)
	}

	files, err := fs.Glob(fsys, "pages/*.md")
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		key := name[len("pages/") : len(name)-len(".md")]
		sc.Pages[key] = buf.String()
	}
	return sc, nil
}
