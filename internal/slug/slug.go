// Package slug derives URL-safe identifiers from titles and names.
//
// Two variants exist. Latin keeps only [a-z0-9-] and is used for categories,
// menus, countries, levels and courses. Arabic additionally keeps the Arabic
// block (U+0600–U+06FF) and is used for scholarships and posts whose titles
// are usually written in Arabic.
//
// Both are pure functions of their input. They do not guarantee uniqueness;
// the unique index on the slug column does.
package slug

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespace = regexp.MustCompile(`[\s\x{000B}\x{0085}\p{Z}]+`)
	nonLatin   = regexp.MustCompile(`[^a-z0-9-]`)
	nonArabic  = regexp.MustCompile(`[^a-z0-9\x{0600}-\x{06FF}-]`)
	dashes     = regexp.MustCompile(`-+`)
)

// Latin lowercases s, turns whitespace runs (Unicode spaces such as NBSP
// included) into hyphens, drops everything
// outside [a-z0-9-], collapses repeated hyphens and trims them from both ends.
func Latin(s string) string {
	return derive(s, nonLatin)
}

// Arabic behaves like Latin but keeps Arabic letters and digits. Input is NFC
// normalized first so composed and decomposed forms yield the same slug.
func Arabic(s string) string {
	return derive(norm.NFC.String(s), nonArabic)
}

func derive(s string, strip *regexp.Regexp) string {
	s = strings.ToLower(s)
	s = whitespace.ReplaceAllString(s, "-")
	s = strip.ReplaceAllString(s, "")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
