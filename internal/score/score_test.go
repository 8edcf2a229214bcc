// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"testing"

	"github.com/pdiddy/textbook-engine/pkg/types"
)

func fullFields(publisher, subject string, grade int) types.ExtractedFields {
	return types.ExtractedFields{
		Publisher:          types.StringField{Value: publisher, Confidence: 0.9},
		CurriculumStandard: types.StringField{Value: "CBSE", Confidence: 0.7},
		Grade:              types.IntField{Value: grade, Confidence: 0.9},
		Subject:            types.StringField{Value: subject, Confidence: 1.0},
		ChapterNumber:      types.IntField{Value: 1, Confidence: 1.0},
		ChapterTitle:       types.StringField{Value: "Title", Confidence: 0.9},
	}
}

func TestGroupWellFormedBatchScoresHigh(t *testing.T) {
	members := []Input{
		{Key: "ncert class10 maths", Fields: fullFields("NCERT", "Mathematics", 10)},
		{Key: "ncert class10 maths", Fields: fullFields("NCERT", "Mathematics", 10)},
		{Key: "ncert class10 maths", Fields: fullFields("NCERT", "Mathematics", 10)},
	}

	res := Group(members, "ncert class10 maths", types.EngineConfig{})
	if res.Confidence < 0.8 {
		t.Errorf("confidence = %v, want >= 0.8", res.Confidence)
	}
	if res.SuggestedSeries != "NCERT Mathematics Class 10" {
		t.Errorf("series = %q", res.SuggestedSeries)
	}
	if res.SuggestedPublisher != "NCERT" {
		t.Errorf("publisher = %q", res.SuggestedPublisher)
	}
}

func TestGroupUnstructuredSingletonScoresLow(t *testing.T) {
	// A consistent key but nothing extracted: only the consistency term
	// contributes.
	members := []Input{
		{Key: "zxqv mft blorp", Fields: types.ExtractedFields{}},
	}

	res := Group(members, "zxqv mft blorp", types.EngineConfig{})
	if res.Confidence > 0.5 {
		t.Errorf("confidence = %v, want <= 0.5", res.Confidence)
	}
	if res.SuggestedSeries != "Zxqv Mft Blorp" {
		t.Errorf("series = %q", res.SuggestedSeries)
	}
	if res.SuggestedPublisher != "" {
		t.Errorf("publisher = %q, want empty", res.SuggestedPublisher)
	}
}

func TestGroupEmpty(t *testing.T) {
	res := Group(nil, "", types.EngineConfig{})
	if res != (Result{}) {
		t.Errorf("empty group scored %+v", res)
	}
}

func TestGroupDisagreementLowersConfidence(t *testing.T) {
	agree := []Input{
		{Key: "k", Fields: fullFields("NCERT", "Physics", 11)},
		{Key: "k", Fields: fullFields("NCERT", "Physics", 11)},
	}
	disagree := []Input{
		{Key: "k", Fields: fullFields("NCERT", "Physics", 11)},
		{Key: "k", Fields: fullFields("ICSE", "Chemistry", 9)},
	}

	a := Group(agree, "k", types.EngineConfig{})
	b := Group(disagree, "k", types.EngineConfig{})
	if b.Confidence >= a.Confidence {
		t.Errorf("disagreeing batch scored %v, agreeing batch %v", b.Confidence, a.Confidence)
	}
}

func TestMajorityVote(t *testing.T) {
	members := []Input{
		{Fields: fullFields("NCERT", "Mathematics", 10)},
		{Fields: fullFields("ICSE", "Mathematics", 10)},
		{Fields: fullFields("NCERT", "Mathematics", 9)},
	}

	info := MajorityFields(members)
	if info.Publisher != "NCERT" {
		t.Errorf("publisher = %q, want NCERT", info.Publisher)
	}
	if info.Subject != "Mathematics" {
		t.Errorf("subject = %q", info.Subject)
	}
	if info.Grade != 10 {
		t.Errorf("grade = %d, want 10", info.Grade)
	}
}

func TestMajorityVoteTieKeepsFirstSeen(t *testing.T) {
	members := []Input{
		{Fields: fullFields("ICSE", "Science", 9)},
		{Fields: fullFields("NCERT", "Science", 10)},
	}

	info := MajorityFields(members)
	if info.Publisher != "ICSE" {
		t.Errorf("publisher = %q, want first-seen ICSE", info.Publisher)
	}
	if info.Grade != 9 {
		t.Errorf("grade = %d, want first-seen 9", info.Grade)
	}
}

func TestMajorityVoteIgnoresUnknown(t *testing.T) {
	members := []Input{
		{Fields: types.ExtractedFields{}},
		{Fields: fullFields("NCERT", "Biology", 12)},
		{Fields: types.ExtractedFields{}},
	}

	info := MajorityFields(members)
	if info.Publisher != "NCERT" || info.Subject != "Biology" || info.Grade != 12 {
		t.Errorf("unexpected vote: %+v", info)
	}
}

func TestSuggestSeriesPartialFields(t *testing.T) {
	// Subject and grade but no publisher still composes a readable name.
	fields := types.ExtractedFields{
		Subject: types.StringField{Value: "History", Confidence: 1.0},
		Grade:   types.IntField{Value: 8, Confidence: 0.9},
	}
	members := []Input{{Key: "history class8", Fields: fields}}

	res := Group(members, "history class8", types.EngineConfig{})
	if res.SuggestedSeries != "History Class 8" {
		t.Errorf("series = %q, want %q", res.SuggestedSeries, "History Class 8")
	}
}

func TestKeyConsistencyFraction(t *testing.T) {
	members := []Input{
		{Key: "a b c"},
		{Key: "a b c"},
		{Key: "a b d"},
		{Key: "a b c"},
	}
	if got := keyConsistency(members, "a b c"); got != 0.75 {
		t.Errorf("consistency = %v, want 0.75", got)
	}
	if got := keyConsistency(members, ""); got != 0 {
		t.Errorf("consistency with empty rep key = %v, want 0", got)
	}
}
