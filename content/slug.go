package content

import (
	"regexp"
	"strings"
)

var (
	reSlugStrip = regexp.MustCompile(`[^\w\s-]`)
	reSlugSpace = regexp.MustCompile(`\s+`)
)

// Slug derives the URL identifier of a blog post from its title: lowercase,
// drop anything that is not a word character, space or hyphen, then turn
// each whitespace run into a single hyphen.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = reSlugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return reSlugSpace.ReplaceAllString(s, "-")
}
