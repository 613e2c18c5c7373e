package outreach

import (
	"encoding/json"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/eringen/outreach/content"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitTags parses a comma separated tag field, preserving order.
func SplitTags(s string) []string {
	return FilterEmpty(strings.Split(s, ","))
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// PostTags returns the sorted, case-folded set of tags used by posts.
func PostTags(posts []content.BlogPost) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		for _, t := range p.Tags {
			set[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FilterByTag keeps posts carrying tag (case-insensitive). An empty tag keeps all.
func FilterByTag(posts []content.BlogPost, tag string) []content.BlogPost {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return posts
	}
	var out []content.BlogPost
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.ToLower(strings.TrimSpace(t)) == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// FilterRelatedPosts finds posts that share at least one tag with current.
func FilterRelatedPosts(current content.BlogPost, posts []content.BlogPost) []content.BlogPost {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []content.BlogPost
	for _, p := range posts {
		if p.ID == current.ID {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[strings.ToLower(strings.TrimSpace(t))]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// OrganizationJsonLD returns a Schema.org NGO block for the site.
func OrganizationJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "NGO",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.ContactEmail != "" {
		data["email"] = cfg.ContactEmail
	}
	return marshalJsonLD(data)
}

// BlogPostingJsonLD returns a Schema.org BlogPosting block for a post.
func BlogPostingJsonLD(post content.BlogPost, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"datePublished": post.CreatedAt.Format("2006-01-02"),
		"dateModified":  post.UpdatedAt.Format("2006-01-02"),
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.HeaderImage != "" {
		data["image"] = post.HeaderImage
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshalJsonLD(data)
}

// EventJsonLD returns a Schema.org Event block.
func EventJsonLD(e content.Event, cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":  "https://schema.org",
		"@type":     "Event",
		"name":      e.Title,
		"startDate": e.Date.Format("2006-01-02T15:04:05Z07:00"),
		"url":       BuildURL(cfg.URL, "events", e.ID),
		"organizer": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
			"url":   BuildURL(cfg.URL),
		},
	}
	if e.Location != "" {
		data["location"] = map[string]string{
			"@type": "Place",
			"name":  e.Location,
		}
	}
	if e.Image != "" {
		data["image"] = e.Image
	}
	return marshalJsonLD(data)
}
