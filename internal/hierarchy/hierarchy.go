// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hierarchy converts a scored file group into a draft
// Series → Book → Chapters structure for human review.
//
// The builder proposes exactly one volume per group; multi-volume series are
// a manual override during review, not an inference the engine attempts.
// Duplicate chapter numbers are surfaced as conflicts, never resolved by
// dropping or renumbering a file.
package hierarchy

import (
	"sort"

	"github.com/pdiddy/textbook-engine/internal/normalize"
	"github.com/pdiddy/textbook-engine/internal/score"
	"github.com/pdiddy/textbook-engine/pkg/types"
)

// Build assembles the draft hierarchy for one group. fields holds the
// extracted metadata for group.Files, index-aligned.
func Build(group types.FileGroup, fields []types.ExtractedFields) types.DraftHierarchy {
	members := make([]score.Input, len(group.Files))
	for i := range group.Files {
		members[i] = score.Input{Fields: fields[i]}
	}

	series := score.MajorityFields(members)
	series.Name = group.SuggestedSeries
	if series.Publisher == "" {
		series.Publisher = group.SuggestedPublisher
	}

	return types.DraftHierarchy{
		GroupID: group.ID,
		Series:  series,
		Book: types.BookDetails{
			VolumeNumber: 1,
			VolumeTitle:  group.Name,
		},
		Chapters: buildChapters(group.Files, fields),
	}
}

// buildChapters orders one chapter per file: numbered chapters first in
// ascending number order, then unnumbered files sorted by filename. The
// ordering is stable so identical input always produces identical drafts.
func buildChapters(files []types.UploadedFile, fields []types.ExtractedFields) types.ChapterOrganization {
	entries := make([]types.ChapterEntry, len(files))
	for i, f := range files {
		entries[i] = types.ChapterEntry{
			FileID:        f.ID,
			FileName:      f.Name,
			ChapterNumber: chapterNumber(fields[i]),
			Title:         chapterTitle(f, fields[i]),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ni, nj := entries[i].ChapterNumber, entries[j].ChapterNumber
		switch {
		case ni > 0 && nj > 0 && ni != nj:
			return ni < nj
		case ni > 0 && nj == 0:
			return true
		case ni == 0 && nj > 0:
			return false
		default:
			return entries[i].FileName < entries[j].FileName
		}
	})

	return types.ChapterOrganization{
		Chapters:  entries,
		Conflicts: findConflicts(files, fields),
	}
}

func chapterNumber(f types.ExtractedFields) int {
	if !f.ChapterNumber.Known() {
		return 0
	}
	return f.ChapterNumber.Value
}

// chapterTitle prefers the recognized title segment and falls back to a
// label derived from the whole filename.
func chapterTitle(file types.UploadedFile, f types.ExtractedFields) string {
	if f.ChapterTitle.Known() {
		return f.ChapterTitle.Value
	}
	return normalize.Label("", file.Name)
}

// findConflicts reports every chapter number claimed by more than one file,
// with the claimants listed in batch order.
func findConflicts(files []types.UploadedFile, fields []types.ExtractedFields) []types.ChapterConflict {
	claims := make(map[int][]string)
	for i, f := range files {
		n := chapterNumber(fields[i])
		if n > 0 {
			claims[n] = append(claims[n], f.ID)
		}
	}

	var numbers []int
	for n, ids := range claims {
		if len(ids) > 1 {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	var conflicts []types.ChapterConflict
	for _, n := range numbers {
		conflicts = append(conflicts, types.ChapterConflict{
			ChapterNumber: n,
			FileIDs:       claims[n],
		})
	}
	return conflicts
}
