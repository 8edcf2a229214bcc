// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wizard is the I/O boundary between the inference engine and the
// human-confirmation step.
//
// It splits a draft hierarchy into the three review-stage DTOs and accepts
// the edited DTOs back, re-validating the structural invariants (unique
// chapter numbers, ordered non-overlapping page ranges) before the result is
// handed to persistence. No inference happens here.
package wizard

import (
	"fmt"
	"sort"

	"github.com/pdiddy/textbook-engine/pkg/types"
)

// Stages splits a draft hierarchy into the three wizard-stage DTOs.
func Stages(d types.DraftHierarchy) (types.SeriesInfo, types.BookDetails, types.ChapterOrganization) {
	return d.Series, d.Book, d.Chapters
}

// Assemble recombines reviewer-edited DTOs into a confirmed hierarchy for
// persistence, re-validating all invariants. Unresolved chapter conflicts
// from the draft must have been cleared by the edit; Assemble re-derives
// conflicts from the edited chapter list rather than trusting the flag.
func Assemble(groupID string, series types.SeriesInfo, book types.BookDetails, chapters types.ChapterOrganization) (types.DraftHierarchy, error) {
	if err := ValidateSeries(series); err != nil {
		return types.DraftHierarchy{}, err
	}
	if err := ValidateBook(book); err != nil {
		return types.DraftHierarchy{}, err
	}
	if err := ValidateChapters(chapters); err != nil {
		return types.DraftHierarchy{}, err
	}
	chapters.Conflicts = nil
	return types.DraftHierarchy{
		GroupID:  groupID,
		Series:   series,
		Book:     book,
		Chapters: chapters,
	}, nil
}

// ValidateSeries checks the confirmed series identity. Grade 0 means the
// reviewer left the grade unknown; a known grade must be in 1-12.
func ValidateSeries(s types.SeriesInfo) error {
	if s.Name == "" {
		return fmt.Errorf("series name is required")
	}
	if s.Grade < 0 || s.Grade > 12 {
		return fmt.Errorf("series grade %d invalid, want 1-12 or 0 for unknown", s.Grade)
	}
	return nil
}

// ValidateBook checks the confirmed volume details.
func ValidateBook(b types.BookDetails) error {
	if b.VolumeNumber < 1 {
		return fmt.Errorf("volume number must be at least 1, got %d", b.VolumeNumber)
	}
	if b.PublicationYear < 0 {
		return fmt.Errorf("publication year %d is invalid", b.PublicationYear)
	}
	return nil
}

// ValidateChapters checks the confirmed chapter list: every chapter carries
// a positive unique number, and page ranges, where both endpoints are known,
// are ordered and do not overlap any sibling's range.
func ValidateChapters(o types.ChapterOrganization) error {
	if len(o.Chapters) == 0 {
		return fmt.Errorf("at least one chapter is required")
	}

	seen := make(map[int]string)
	for _, ch := range o.Chapters {
		if ch.ChapterNumber < 1 {
			return fmt.Errorf("chapter %q has no chapter number", ch.FileName)
		}
		if prev, dup := seen[ch.ChapterNumber]; dup {
			return fmt.Errorf("chapter number %d assigned to both %q and %q",
				ch.ChapterNumber, prev, ch.FileName)
		}
		seen[ch.ChapterNumber] = ch.FileName

		if err := validatePageRange(ch); err != nil {
			return err
		}
	}

	return validateRangeOverlap(o.Chapters)
}

func validatePageRange(ch types.ChapterEntry) error {
	if ch.StartPage < 0 || ch.EndPage < 0 {
		return fmt.Errorf("chapter %d has a negative page bound", ch.ChapterNumber)
	}
	if ch.StartPage > 0 && ch.EndPage > 0 && ch.EndPage < ch.StartPage {
		return fmt.Errorf("chapter %d page range %d-%d is inverted",
			ch.ChapterNumber, ch.StartPage, ch.EndPage)
	}
	return nil
}

// validateRangeOverlap checks pairwise overlap between chapters whose page
// ranges are fully specified. Chapters missing an endpoint are skipped.
func validateRangeOverlap(chapters []types.ChapterEntry) error {
	var ranged []types.ChapterEntry
	for _, ch := range chapters {
		if ch.StartPage > 0 && ch.EndPage > 0 {
			ranged = append(ranged, ch)
		}
	}
	sort.Slice(ranged, func(i, j int) bool {
		return ranged[i].StartPage < ranged[j].StartPage
	})
	for i := 1; i < len(ranged); i++ {
		if ranged[i].StartPage <= ranged[i-1].EndPage {
			return fmt.Errorf("chapter %d pages %d-%d overlap chapter %d pages %d-%d",
				ranged[i].ChapterNumber, ranged[i].StartPage, ranged[i].EndPage,
				ranged[i-1].ChapterNumber, ranged[i-1].StartPage, ranged[i-1].EndPage)
		}
	}
	return nil
}
