// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// ChapterMatch is the result of the chapter recognizer on one filename stem.
// Start and End delimit the matched span in the stem so the key normalizer
// can strip it.
type ChapterMatch struct {
	Number           int
	Title            string
	NumberConfidence float64
	TitleConfidence  float64
	Start            int
	End              int
}

// Chapter pattern families, most specific first.
var (
	// "Subject - Ch 03 - Title" and "Subject - Chapter 3 - Title".
	delimitedChapterPattern = regexp.MustCompile(
		`^(?i)(.*?)[\s_]*-[\s_]*ch(?:apter)?\.?[\s_]*(\d{1,3})[\s_]*-[\s_]*(.*)$`)

	// "Chapter 3 Title", "Lesson12_Title", "Unit 4 - Title", "Ch. 7".
	keywordChapterPattern = regexp.MustCompile(
		`(?i)\b(chapter|lesson|unit|ch)\.?[\s_.-]*(\d{1,3})\b[\s_.:-]*(.*)$`)

	// "Chapter Three Title" with a spelled-out number.
	wordChapterPattern = regexp.MustCompile(
		`(?i)\bchapter[\s_.-]+(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen)\b[\s_.:-]*(.*)$`)

	// "03_Introduction" bare numeric prefix.
	numericPrefixPattern = regexp.MustCompile(
		`^[\s_]*(\d{1,3})[\s_.)-]+(.*)$`)

	duplicateSuffixPattern = regexp.MustCompile(`\s*\(\d+\)$`)
	multiSpacePattern      = regexp.MustCompile(`\s+`)
)

// maxTitleRunes caps chapter titles recovered from filenames.
const maxTitleRunes = 100

// MatchChapter runs the chapter pattern families against a filename stem
// (no extension) in priority order. The second return value is false when
// no family matches. Span offsets are valid for the original stem.
func MatchChapter(stem string) (ChapterMatch, bool) {
	stem = demark(stem)
	if idx := delimitedChapterPattern.FindStringSubmatchIndex(stem); idx != nil {
		num, ok := parseChapterNumber(stem[idx[4]:idx[5]])
		if ok {
			m := ChapterMatch{
				Number:           num,
				NumberConfidence: 1.0,
				// Span starts after the series prefix so the key keeps it.
				Start: idx[3],
				End:   len(stem),
			}
			m.Title, m.TitleConfidence = cleanTitle(stem[idx[6]:idx[7]], 0.9)
			return m, true
		}
	}

	if idx := keywordChapterPattern.FindStringSubmatchIndex(stem); idx != nil {
		num, ok := parseChapterNumber(stem[idx[4]:idx[5]])
		if ok {
			keyword := strings.ToLower(stem[idx[2]:idx[3]])
			m := ChapterMatch{
				Number:           num,
				NumberConfidence: 1.0,
				Start:            idx[0],
				End:              len(stem),
			}
			if keyword == "ch" {
				// Abbreviated marker, slightly less literal.
				m.NumberConfidence = 0.9
			}
			m.Title, m.TitleConfidence = cleanTitle(stem[idx[6]:idx[7]], 0.8)
			return m, true
		}
	}

	if idx := wordChapterPattern.FindStringSubmatchIndex(stem); idx != nil {
		word := strings.ToLower(stem[idx[2]:idx[3]])
		m := ChapterMatch{
			Number:           wordNumbers[word],
			NumberConfidence: 0.8,
			Start:            idx[0],
			End:              len(stem),
		}
		m.Title, m.TitleConfidence = cleanTitle(stem[idx[4]:idx[5]], 0.8)
		return m, true
	}

	if idx := numericPrefixPattern.FindStringSubmatchIndex(stem); idx != nil {
		num, ok := parseChapterNumber(stem[idx[2]:idx[3]])
		if ok {
			m := ChapterMatch{
				Number:           num,
				NumberConfidence: 0.6,
				Start:            0,
				End:              len(stem),
			}
			m.Title, m.TitleConfidence = cleanTitle(stem[idx[4]:idx[5]], 0.5)
			return m, true
		}
	}

	return ChapterMatch{}, false
}

// parseChapterNumber converts and range-checks a chapter number capture.
func parseChapterNumber(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 199 {
		return 0, false
	}
	return n, true
}

// cleanTitle converts separators in a captured title segment to spaces,
// drops duplicate-download suffixes like "(2)", and caps the length. It
// returns the cleaned title and the given confidence, or zero confidence
// when nothing usable remains.
func cleanTitle(raw string, confidence float64) (string, float64) {
	title := strings.NewReplacer("_", " ", "-", " ").Replace(raw)
	title = duplicateSuffixPattern.ReplaceAllString(title, "")
	title = multiSpacePattern.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)
	if title == "" {
		return "", 0
	}
	if runes := []rune(title); len(runes) > maxTitleRunes {
		title = strings.TrimSpace(string(runes[:maxTitleRunes]))
	}
	return title, confidence
}
