// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract infers textbook metadata from uploaded filenames.
//
// It applies an ordered chain of recognizers (publisher, curriculum, grade,
// subject, chapter), each a pure function from a filename to a field value
// with a confidence in [0,1]. A filename no recognizer understands yields an
// all-unknown result with zero confidence on every field; that is valid
// low-information output, not an error.
package extract

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/textbook-engine/pkg/types"
)

var (
	separatorPattern = regexp.MustCompile(`[\s_.\-]+`)

	// "Class 10", "Grade-9", "Std 8", "Class10".
	gradePattern = regexp.MustCompile(
		`(?i)\b(?:class|grade|std|standard)([\s_.\-]*)(\d{1,2})\b`)

	// "Class IX", "Grade XII".
	romanGradePattern = regexp.MustCompile(
		`(?i)\b(?:class|grade)[\s_.\-]+([ivx]{1,4})\b`)
)

// subjectKeywords is the subject table's keys ordered longest first so more
// specific keywords win substring matching deterministically.
var subjectKeywords = func() []string {
	keys := make([]string, 0, len(subjects))
	for k := range subjects {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// Fields runs all recognizers against one filename and returns the inferred
// per-field metadata.
func Fields(name string) types.ExtractedFields {
	stem := Stem(name)
	tokens := Tokenize(stem)

	var f types.ExtractedFields
	f.Publisher = recognizePublisher(tokens)
	f.CurriculumStandard = recognizeCurriculum(tokens, f.Publisher)
	f.Grade = recognizeGrade(stem)
	f.Subject = recognizeSubject(stem, tokens)

	if m, ok := MatchChapter(stem); ok {
		f.ChapterNumber = types.IntField{Value: m.Number, Confidence: m.NumberConfidence}
		if m.TitleConfidence > 0 {
			f.ChapterTitle = types.StringField{Value: m.Title, Confidence: m.TitleConfidence}
		}
	}

	return f
}

// Stem strips the extension from a filename.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// demark converts underscores to spaces so the word-boundary patterns see
// filename separators; regexp treats "_" as a word character, so "\bchapter"
// would never fire after one. The mapping is byte-for-byte, so span offsets
// against the demarked stem are valid for the original.
func demark(stem string) string {
	return strings.ReplaceAll(stem, "_", " ")
}

// Tokenize splits a filename stem into lowercase tokens on whitespace,
// underscores, hyphens, and dots.
func Tokenize(stem string) []string {
	parts := separatorPattern.Split(strings.ToLower(stem), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// recognizePublisher matches known publisher tokens. A leading token is the
// conventional position and scores highest; a token elsewhere still counts.
func recognizePublisher(tokens []string) types.StringField {
	for i, tok := range tokens {
		if canonical, ok := publishers[tok]; ok {
			confidence := 0.8
			if i == 0 {
				confidence = 0.9
			}
			return types.StringField{Value: canonical, Confidence: confidence}
		}
	}
	return types.StringField{}
}

// recognizeCurriculum prefers an explicit curriculum token and falls back to
// the standard the recognized publisher implies.
func recognizeCurriculum(tokens []string, publisher types.StringField) types.StringField {
	for _, tok := range tokens {
		if canonical, ok := curriculumTokens[tok]; ok {
			return types.StringField{Value: canonical, Confidence: 1.0}
		}
	}
	if publisher.Known() {
		if standard, ok := curriculumByPublisher[publisher.Value]; ok {
			return types.StringField{Value: standard, Confidence: 0.7}
		}
	}
	return types.StringField{}
}

// recognizeGrade extracts a class/grade level and validates it against the
// plausible 1-12 range. Confidence scales with how literally the pattern
// matched: a separated decimal form scores 1.0, an attached form 0.9, and a
// Roman-numeral class 0.9.
func recognizeGrade(stem string) types.IntField {
	stem = demark(stem)
	if m := gradePattern.FindStringSubmatch(stem); m != nil {
		n, err := strconv.Atoi(m[2])
		if err == nil && n >= 1 && n <= 12 {
			confidence := 1.0
			if m[1] == "" {
				confidence = 0.9
			}
			return types.IntField{Value: n, Confidence: confidence}
		}
	}
	if m := romanGradePattern.FindStringSubmatch(stem); m != nil {
		if n, ok := romanNumerals[strings.ToLower(m[1])]; ok {
			return types.IntField{Value: n, Confidence: 0.9}
		}
	}
	return types.IntField{}
}

// recognizeSubject matches the curated subject keyword table. An exact token
// match scores 1.0; a substring match (long keywords only, so "bio" cannot
// fire inside unrelated words) scores 0.7.
func recognizeSubject(stem string, tokens []string) types.StringField {
	for _, tok := range tokens {
		if canonical, ok := subjects[tok]; ok {
			return types.StringField{Value: canonical, Confidence: 1.0}
		}
	}
	lower := strings.ToLower(stem)
	for _, kw := range subjectKeywords {
		if len(kw) < 5 {
			continue
		}
		if strings.Contains(lower, kw) {
			return types.StringField{Value: subjects[kw], Confidence: 0.7}
		}
	}
	return types.StringField{}
}
