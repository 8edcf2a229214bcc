// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wizard

import (
	"strings"
	"testing"

	"github.com/pdiddy/textbook-engine/pkg/types"
)

func validDraft() types.DraftHierarchy {
	return types.DraftHierarchy{
		GroupID: "g1",
		Series: types.SeriesInfo{
			Name:      "NCERT Mathematics Class 10",
			Publisher: "NCERT",
			Grade:     10,
			Subject:   "Mathematics",
		},
		Book: types.BookDetails{
			VolumeNumber: 1,
			VolumeTitle:  "Ncert Class10 Maths",
		},
		Chapters: types.ChapterOrganization{
			Chapters: []types.ChapterEntry{
				{FileID: "a", FileName: "ch1.pdf", ChapterNumber: 1, Title: "Real Numbers", StartPage: 1, EndPage: 20},
				{FileID: "b", FileName: "ch2.pdf", ChapterNumber: 2, Title: "Polynomials", StartPage: 21, EndPage: 44},
			},
		},
	}
}

func TestStagesRoundTrip(t *testing.T) {
	draft := validDraft()
	series, book, chapters := Stages(draft)

	out, err := Assemble(draft.GroupID, series, book, chapters)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if out.GroupID != draft.GroupID {
		t.Errorf("group ID = %q", out.GroupID)
	}
	if out.Series != draft.Series {
		t.Errorf("series = %+v, want %+v", out.Series, draft.Series)
	}
	if len(out.Chapters.Chapters) != 2 {
		t.Errorf("got %d chapters", len(out.Chapters.Chapters))
	}
}

func TestAssembleClearsResolvedConflicts(t *testing.T) {
	draft := validDraft()
	draft.Chapters.Conflicts = []types.ChapterConflict{
		{ChapterNumber: 1, FileIDs: []string{"a", "b"}},
	}

	// The reviewer renumbered the chapters, so the stale flag must go.
	out, err := Assemble(draft.GroupID, draft.Series, draft.Book, draft.Chapters)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if out.Chapters.HasConflicts() {
		t.Errorf("stale conflicts survived assembly: %+v", out.Chapters.Conflicts)
	}
}

func TestAssembleRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.DraftHierarchy)
		wantErr string
	}{
		{
			name:    "missing series name",
			mutate:  func(d *types.DraftHierarchy) { d.Series.Name = "" },
			wantErr: "series name is required",
		},
		{
			name:    "grade above range",
			mutate:  func(d *types.DraftHierarchy) { d.Series.Grade = 13 },
			wantErr: "want 1-12 or 0 for unknown",
		},
		{
			name:    "negative grade",
			mutate:  func(d *types.DraftHierarchy) { d.Series.Grade = -1 },
			wantErr: "want 1-12 or 0 for unknown",
		},
		{
			name:    "volume number zero",
			mutate:  func(d *types.DraftHierarchy) { d.Book.VolumeNumber = 0 },
			wantErr: "volume number",
		},
		{
			name: "no chapters",
			mutate: func(d *types.DraftHierarchy) {
				d.Chapters.Chapters = nil
			},
			wantErr: "at least one chapter",
		},
		{
			name: "unnumbered chapter",
			mutate: func(d *types.DraftHierarchy) {
				d.Chapters.Chapters[0].ChapterNumber = 0
			},
			wantErr: "no chapter number",
		},
		{
			name: "duplicate chapter numbers",
			mutate: func(d *types.DraftHierarchy) {
				d.Chapters.Chapters[1].ChapterNumber = 1
			},
			wantErr: "assigned to both",
		},
		{
			name: "inverted page range",
			mutate: func(d *types.DraftHierarchy) {
				d.Chapters.Chapters[0].StartPage = 20
				d.Chapters.Chapters[0].EndPage = 1
			},
			wantErr: "inverted",
		},
		{
			name: "overlapping page ranges",
			mutate: func(d *types.DraftHierarchy) {
				d.Chapters.Chapters[1].StartPage = 15
			},
			wantErr: "overlap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)

			_, err := Assemble(draft.GroupID, draft.Series, draft.Book, draft.Chapters)
			if err == nil {
				t.Fatal("want error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSeriesAllowsUnknownGrade(t *testing.T) {
	// Grade 0 marks an unknown grade and is accepted at confirmation.
	s := types.SeriesInfo{Name: "Oxford English Reader", Publisher: "Oxford"}
	if err := ValidateSeries(s); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateChaptersAllowsMissingPageRanges(t *testing.T) {
	// Page ranges are optional; only fully specified ranges participate in
	// overlap checks.
	org := types.ChapterOrganization{
		Chapters: []types.ChapterEntry{
			{FileID: "a", FileName: "a.pdf", ChapterNumber: 1, StartPage: 1, EndPage: 30},
			{FileID: "b", FileName: "b.pdf", ChapterNumber: 2},
			{FileID: "c", FileName: "c.pdf", ChapterNumber: 3, StartPage: 31, EndPage: 60},
		},
	}
	if err := ValidateChapters(org); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
