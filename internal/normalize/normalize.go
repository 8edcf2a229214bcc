// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize derives clustering keys from uploaded filenames.
//
// A group key is the filename with its chapter-identifying span removed and
// separators collapsed, so that two chapters of the same book normalize to
// the same key while unrelated files keep distinct keys.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/textbook-engine/internal/extract"
)

var (
	separatorPattern = regexp.MustCompile(`[\s_.\-]+`)
	duplicatePattern = regexp.MustCompile(`\s*\(\d+\)$`)

	titleCaser = cases.Title(language.English)
)

// Key returns the normalized group key for a filename: the stem with the
// chapter recognizer's matched span removed, separators collapsed to single
// spaces, lowercased, and trimmed.
//
// When no chapter pattern matches, the key is the whole normalized stem.
// When the chapter span covers the whole stem (bare numeric-prefix names),
// the key is empty and the file carries no series signal at all.
func Key(name string) string {
	stem := extract.Stem(name)
	if m, ok := extract.MatchChapter(stem); ok {
		stem = stem[:m.Start] + " " + stem[m.End:]
	}
	return clean(stem)
}

// Tokens splits a normalized key into its whitespace-separated tokens.
func Tokens(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Fields(key)
}

// Label renders a human-readable group name from a key, falling back to the
// given filename stem when the key is empty.
func Label(key, fallback string) string {
	if key == "" {
		key = clean(extract.Stem(fallback))
	}
	if key == "" {
		return fallback
	}
	return titleCaser.String(key)
}

// clean collapses separators, removes duplicate-download suffixes, and
// lowercases.
func clean(s string) string {
	s = separatorPattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = duplicatePattern.ReplaceAllString(s, "")
	return strings.ToLower(strings.TrimSpace(s))
}
