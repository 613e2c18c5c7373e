package outreach

import (
	"strings"
	"testing"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		input   string
		keep    string
		dropped string
	}{
		{`<p>Hello <strong>there</strong></p>`, "<strong>there</strong>", ""},
		{`<p>Hi</p><script>alert(1)</script>`, "<p>Hi</p>", "script"},
		{`<img src="x.jpg" onerror="alert(1)">`, `src="x.jpg"`, "onerror"},
		{`<a href="javascript:alert(1)">x</a>`, "x", "javascript"},
		{`<p class="lead">Intro</p>`, `class="lead"`, ""},
		{`<iframe src="https://evil.example"></iframe>ok`, "ok", "iframe"},
	}
	for _, tt := range tests {
		got := SanitizeHTML(tt.input)
		if !strings.Contains(got, tt.keep) {
			t.Errorf("SanitizeHTML(%q) = %q, want it to keep %q", tt.input, got, tt.keep)
		}
		if tt.dropped != "" && strings.Contains(got, tt.dropped) {
			t.Errorf("SanitizeHTML(%q) = %q, want %q removed", tt.input, got, tt.dropped)
		}
	}
}
