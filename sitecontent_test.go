package outreach

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadDefaultContent(t *testing.T) {
	sc, err := LoadSiteContent(DefaultContent())
	if err != nil {
		t.Fatalf("LoadSiteContent: %v", err)
	}
	if sc.Copy.Hero.Title == "" || sc.Copy.Mission == "" {
		t.Errorf("hero or mission missing: %+v", sc.Copy.Hero)
	}
	if len(sc.Copy.Team) != 3 {
		t.Errorf("team = %d members, want 3", len(sc.Copy.Team))
	}
	if len(sc.Copy.WhySupport) == 0 || len(sc.Copy.Donation.Options) == 0 {
		t.Errorf("why-support or donation options missing")
	}
	for _, page := range []string{"about", "why-support", "donate"} {
		if !strings.Contains(sc.Pages[page], "<") {
			t.Errorf("page %q not rendered: %q", page, sc.Pages[page])
		}
	}
}

func TestLoadSiteContent(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte("mission: Feed everyone\nteam:\n  - name: Sam\n    role: Treasurer\n")},
		"pages/about.md": {Data: []byte("# About us\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")},
	}
	sc, err := LoadSiteContent(fsys)
	if err != nil {
		t.Fatalf("LoadSiteContent: %v", err)
	}
	if sc.Copy.Mission != "Feed everyone" || sc.Copy.Team[0].Role != "Treasurer" {
		t.Errorf("copy = %+v", sc.Copy)
	}
	about := sc.Pages["about"]
	if !strings.Contains(about, "<h1>About us</h1>") || !strings.Contains(about, "<table>") {
		t.Errorf("about = %q", about)
	}
}

func TestLoadSiteContentErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"missing site.yaml", fstest.MapFS{"pages/about.md": {Data: []byte("hi")}}},
		{"bad yaml", fstest.MapFS{"site.yaml": {Data: []byte("team: [")}}},
	}
	for _, tt := range tests {
		if _, err := LoadSiteContent(tt.fsys); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
