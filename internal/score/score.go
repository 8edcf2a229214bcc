// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes group-level confidence and suggested metadata.
//
// Confidence is a weighted combination of three signals: how consistently
// the members' normalized keys match the group's representative key, how many
// of the expected fields (publisher, subject, grade) were extracted and agree
// across every member, and the mean per-field extraction confidence. The
// result is a continuous [0,1] signal for the review step, never a binary
// accept/reject.
package score

import (
	"fmt"
	"strings"

	"github.com/pdiddy/textbook-engine/internal/normalize"
	"github.com/pdiddy/textbook-engine/pkg/types"
)

// Input is one group member as seen by the scorer.
type Input struct {
	// Key is the member's normalized key.
	Key string

	// Fields is the member's extracted metadata.
	Fields types.ExtractedFields
}

// Result holds the scorer's output for one group.
type Result struct {
	// Confidence is the aggregate group confidence in [0,1].
	Confidence float64

	// SuggestedSeries is a series name composed from the majority-vote
	// publisher, subject, and grade, or derived from the group key when no
	// field is known.
	SuggestedSeries string

	// SuggestedPublisher is the majority-vote publisher across members.
	SuggestedPublisher string
}

// Group scores one candidate group. repKey is the representative key the
// members clustered on. An empty member list scores zero.
func Group(members []Input, repKey string, cfg types.EngineConfig) Result {
	if len(members) == 0 {
		return Result{}
	}
	cfg = cfg.Normalized()

	consistency := keyConsistency(members, repKey)
	agreement := fieldAgreement(members)
	extraction := meanExtraction(members)

	confidence := cfg.ConsistencyWeight*consistency +
		cfg.AgreementWeight*agreement +
		cfg.ExtractionWeight*extraction
	confidence = clamp01(confidence)

	publisher := majorityString(members, func(f types.ExtractedFields) types.StringField {
		return f.Publisher
	})

	return Result{
		Confidence:         confidence,
		SuggestedSeries:    suggestSeries(members, publisher, repKey),
		SuggestedPublisher: publisher,
	}
}

// keyConsistency is the fraction of members whose key equals the
// representative key exactly.
func keyConsistency(members []Input, repKey string) float64 {
	if repKey == "" {
		return 0
	}
	matched := 0
	for _, m := range members {
		if m.Key == repKey {
			matched++
		}
	}
	return float64(matched) / float64(len(members))
}

// fieldAgreement is the fraction of expected fields (publisher, subject,
// grade) that were extracted with non-zero confidence in every member and
// carry the same value throughout.
func fieldAgreement(members []Input) float64 {
	agreed := 0

	if allAgreeString(members, func(f types.ExtractedFields) types.StringField { return f.Publisher }) {
		agreed++
	}
	if allAgreeString(members, func(f types.ExtractedFields) types.StringField { return f.Subject }) {
		agreed++
	}
	if allAgreeInt(members, func(f types.ExtractedFields) types.IntField { return f.Grade }) {
		agreed++
	}

	return float64(agreed) / 3
}

func allAgreeString(members []Input, field func(types.ExtractedFields) types.StringField) bool {
	first := field(members[0].Fields)
	if !first.Known() {
		return false
	}
	for _, m := range members[1:] {
		f := field(m.Fields)
		if !f.Known() || f.Value != first.Value {
			return false
		}
	}
	return true
}

func allAgreeInt(members []Input, field func(types.ExtractedFields) types.IntField) bool {
	first := field(members[0].Fields)
	if !first.Known() {
		return false
	}
	for _, m := range members[1:] {
		f := field(m.Fields)
		if !f.Known() || f.Value != first.Value {
			return false
		}
	}
	return true
}

// meanExtraction averages the per-field extraction confidence over members.
func meanExtraction(members []Input) float64 {
	sum := 0.0
	for _, m := range members {
		sum += m.Fields.MeanConfidence()
	}
	return sum / float64(len(members))
}

// majorityString votes across members on one string field, ignoring unknown
// values. Ties resolve to the value seen first in batch order.
func majorityString(members []Input, field func(types.ExtractedFields) types.StringField) string {
	counts := make(map[string]int)
	var order []string
	for _, m := range members {
		f := field(m.Fields)
		if !f.Known() {
			continue
		}
		if counts[f.Value] == 0 {
			order = append(order, f.Value)
		}
		counts[f.Value]++
	}
	best := ""
	for _, v := range order {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

// majorityInt votes across members on one integer field, ignoring unknown
// values. Ties resolve to the value seen first in batch order.
func majorityInt(members []Input, field func(types.ExtractedFields) types.IntField) (int, bool) {
	counts := make(map[int]int)
	var order []int
	for _, m := range members {
		f := field(m.Fields)
		if !f.Known() {
			continue
		}
		if counts[f.Value] == 0 {
			order = append(order, f.Value)
		}
		counts[f.Value]++
	}
	if len(order) == 0 {
		return 0, false
	}
	best := order[0]
	for _, v := range order[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best, true
}

// MajorityFields assembles the majority-vote value of every series-level
// field across the group, for the hierarchy builder.
func MajorityFields(members []Input) types.SeriesInfo {
	info := types.SeriesInfo{
		Publisher: majorityString(members, func(f types.ExtractedFields) types.StringField { return f.Publisher }),
		Subject:   majorityString(members, func(f types.ExtractedFields) types.StringField { return f.Subject }),
		CurriculumStandard: majorityString(members, func(f types.ExtractedFields) types.StringField {
			return f.CurriculumStandard
		}),
	}
	if grade, ok := majorityInt(members, func(f types.ExtractedFields) types.IntField { return f.Grade }); ok {
		info.Grade = grade
	}
	return info
}

// suggestSeries composes a series name from the voted fields, falling back
// to a label derived from the representative key.
func suggestSeries(members []Input, publisher, repKey string) string {
	subject := majorityString(members, func(f types.ExtractedFields) types.StringField { return f.Subject })
	grade, hasGrade := majorityInt(members, func(f types.ExtractedFields) types.IntField { return f.Grade })

	var parts []string
	if publisher != "" {
		parts = append(parts, publisher)
	}
	if subject != "" {
		parts = append(parts, subject)
	}
	if hasGrade {
		parts = append(parts, fmt.Sprintf("Class %d", grade))
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return normalize.Label(repKey, "")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
