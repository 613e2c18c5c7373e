package outreach

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// SanitizeHTML strips scripts, event handlers and other unsafe markup from
// rich-text fields. It runs when an admin saves a row and again when the
// row is rendered, so rows written by other tools are covered too.
func SanitizeHTML(s string) string {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("target").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
		policy.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return policy.Sanitize(s)
}
