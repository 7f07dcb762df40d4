package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Senior Go Engineer!  ", "senior-go-engineer"},
		{"C++ & Rust: a comparison", "c-rust-a-comparison"},
		{"already-hyphenated---title", "already-hyphenated-title"},
		{"--- leading and trailing ---", "leading-and-trailing"},
		{"MiXeD CaSe 123", "mixed-case-123"},
		{"!!!", ""},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.title); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugify_Deterministic(t *testing.T) {
	title := "The Same Title, Twice!"
	first := Slugify(title)
	second := Slugify(title)
	if first != second {
		t.Fatalf("slug not deterministic: %q vs %q", first, second)
	}
	// Idempotent: slugifying a slug yields itself.
	if again := Slugify(first); again != first {
		t.Fatalf("slug not idempotent: %q -> %q", first, again)
	}
}

func TestSlugify_Charset(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	titles := []string{
		"Plain title",
		"Numbers 42 and symbols #$%",
		"Ünïcödé gets stripped",
		"   lots    of    spaces   ",
		"hyphen - heavy -- title",
	}
	for _, title := range titles {
		got := Slugify(title)
		if got == "" {
			continue
		}
		if !valid.MatchString(got) {
			t.Errorf("Slugify(%q) = %q: contains invalid characters or stray hyphens", title, got)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Slugify(%q) = %q: leading/trailing hyphen", title, got)
		}
	}
}

func TestJobSlug_AppendsTimestamp(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	got := JobSlug("Backend Engineer", at)
	want := "backend-engineer-1700000000000"
	if got != want {
		t.Fatalf("JobSlug = %q, want %q", got, want)
	}
}

func TestJobSlug_IdenticalTitlesDiffer(t *testing.T) {
	// Job slugs disambiguate by timestamp rather than rejecting collisions —
	// the opposite policy from blog slugs.
	a := JobSlug("Backend Engineer", time.UnixMilli(1))
	b := JobSlug("Backend Engineer", time.UnixMilli(2))
	if a == b {
		t.Fatalf("expected distinct slugs for identical titles, got %q twice", a)
	}
}
