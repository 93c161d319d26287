// Package slug derives URL slugs and two-letter codes from Vietnamese names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]`)
)

// Slugify lowercases name, folds diacritics and joins the remaining
// alphanumeric runs with single hyphens.
func Slugify(name string) string {
	s := nonAlnumRun.ReplaceAllString(fold(name), "-")
	return strings.Trim(s, "-")
}

// Abbreviate returns the first two alphanumeric characters of the folded
// name, upper-cased.
func Abbreviate(name string) string {
	s := nonAlnum.ReplaceAllString(fold(name), "")
	if len(s) > 2 {
		s = s[:2]
	}
	return strings.ToUpper(s)
}

// CleanAbbr normalises an operator-typed abbreviation: trimmed,
// upper-cased, at most two characters.
func CleanAbbr(s string) string {
	r := []rune(strings.ToUpper(strings.TrimSpace(s)))
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "đ", "d")
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
