package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title: lower-case, strip everything
// outside [a-z0-9\s-], collapse whitespace runs to a single hyphen, collapse
// hyphen runs, trim leading/trailing hyphens. The result is deterministic and
// idempotent for a given title.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// JobSlug derives a job-posting slug. Unlike blog slugs, which are unique by
// constraint and reject collisions, job slugs get a millisecond creation
// timestamp appended unconditionally so two identical titles never collide.
func JobSlug(title string, at time.Time) string {
	return fmt.Sprintf("%s-%d", Slugify(title), at.UnixMilli())
}
