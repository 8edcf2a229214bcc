// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hierarchy

import (
	"testing"

	"github.com/pdiddy/textbook-engine/pkg/types"
)

func chapterFields(num int, title string) types.ExtractedFields {
	return types.ExtractedFields{
		Publisher:     types.StringField{Value: "NCERT", Confidence: 0.9},
		Grade:         types.IntField{Value: 10, Confidence: 0.9},
		Subject:       types.StringField{Value: "Mathematics", Confidence: 1.0},
		ChapterNumber: types.IntField{Value: num, Confidence: 1.0},
		ChapterTitle:  types.StringField{Value: title, Confidence: 0.9},
	}
}

func TestBuildOrdersChapters(t *testing.T) {
	group := types.FileGroup{
		ID:   "g1",
		Name: "Ncert Class10 Maths",
		Files: []types.UploadedFile{
			{ID: "f5", Name: "NCERT_Class10_Maths_Chapter5_Triangles.pdf"},
			{ID: "f1", Name: "NCERT_Class10_Maths_Chapter1_Real_Numbers.pdf"},
			{ID: "fx", Name: "NCERT_Class10_Maths_Appendix.pdf"},
			{ID: "f3", Name: "NCERT_Class10_Maths_Chapter3_Algebra.pdf"},
		},
		SuggestedSeries: "NCERT Mathematics Class 10",
	}
	fields := []types.ExtractedFields{
		chapterFields(5, "Triangles"),
		chapterFields(1, "Real Numbers"),
		{}, // no chapter recognized
		chapterFields(3, "Algebra"),
	}

	draft := Build(group, fields)

	wantOrder := []string{"f1", "f3", "f5", "fx"}
	if len(draft.Chapters.Chapters) != len(wantOrder) {
		t.Fatalf("got %d chapters, want %d", len(draft.Chapters.Chapters), len(wantOrder))
	}
	for i, want := range wantOrder {
		if got := draft.Chapters.Chapters[i].FileID; got != want {
			t.Errorf("chapter %d = %s, want %s", i, got, want)
		}
	}
	if draft.Chapters.HasConflicts() {
		t.Errorf("unexpected conflicts: %+v", draft.Chapters.Conflicts)
	}
}

func TestBuildSeriesFromMajorityFields(t *testing.T) {
	group := types.FileGroup{
		ID:   "g1",
		Name: "Ncert Class10 Maths",
		Files: []types.UploadedFile{
			{ID: "a", Name: "a.pdf"},
			{ID: "b", Name: "b.pdf"},
		},
		SuggestedSeries:    "NCERT Mathematics Class 10",
		SuggestedPublisher: "NCERT",
	}
	fields := []types.ExtractedFields{
		chapterFields(1, "One"),
		chapterFields(2, "Two"),
	}

	draft := Build(group, fields)
	if draft.GroupID != "g1" {
		t.Errorf("group ID = %q", draft.GroupID)
	}
	if draft.Series.Name != "NCERT Mathematics Class 10" {
		t.Errorf("series name = %q", draft.Series.Name)
	}
	if draft.Series.Publisher != "NCERT" || draft.Series.Subject != "Mathematics" || draft.Series.Grade != 10 {
		t.Errorf("series fields = %+v", draft.Series)
	}
	if draft.Book.VolumeNumber != 1 {
		t.Errorf("volume number = %d, want 1", draft.Book.VolumeNumber)
	}
	if draft.Book.VolumeTitle != "Ncert Class10 Maths" {
		t.Errorf("volume title = %q", draft.Book.VolumeTitle)
	}
}

func TestBuildPublisherFallsBackToGroupSuggestion(t *testing.T) {
	group := types.FileGroup{
		ID:                 "g1",
		Files:              []types.UploadedFile{{ID: "a", Name: "a.pdf"}},
		SuggestedPublisher: "Oxford",
	}
	fields := []types.ExtractedFields{{}}

	draft := Build(group, fields)
	if draft.Series.Publisher != "Oxford" {
		t.Errorf("publisher = %q, want group suggestion Oxford", draft.Series.Publisher)
	}
}

func TestBuildFlagsDuplicateChapterNumbers(t *testing.T) {
	group := types.FileGroup{
		ID: "g1",
		Files: []types.UploadedFile{
			{ID: "a", Name: "Chapter3_Algebra.pdf"},
			{ID: "b", Name: "Chapter3_Algebra_(2).pdf"},
			{ID: "c", Name: "Chapter4_Geometry.pdf"},
		},
	}
	fields := []types.ExtractedFields{
		chapterFields(3, "Algebra"),
		chapterFields(3, "Algebra"),
		chapterFields(4, "Geometry"),
	}

	draft := Build(group, fields)

	// Both claimants stay in the draft; the collision is only flagged.
	if len(draft.Chapters.Chapters) != 3 {
		t.Fatalf("got %d chapters, want all 3 retained", len(draft.Chapters.Chapters))
	}
	if !draft.Chapters.HasConflicts() {
		t.Fatal("duplicate chapter number not flagged")
	}
	if len(draft.Chapters.Conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(draft.Chapters.Conflicts))
	}
	conflict := draft.Chapters.Conflicts[0]
	if conflict.ChapterNumber != 3 {
		t.Errorf("conflict number = %d, want 3", conflict.ChapterNumber)
	}
	if len(conflict.FileIDs) != 2 || conflict.FileIDs[0] != "a" || conflict.FileIDs[1] != "b" {
		t.Errorf("conflict file IDs = %v, want [a b]", conflict.FileIDs)
	}
}

func TestBuildUnnumberedTitleFromFilename(t *testing.T) {
	group := types.FileGroup{
		ID:    "g1",
		Files: []types.UploadedFile{{ID: "a", Name: "supplementary_reading_material.pdf"}},
	}
	fields := []types.ExtractedFields{{}}

	draft := Build(group, fields)
	if got := draft.Chapters.Chapters[0].Title; got != "Supplementary Reading Material" {
		t.Errorf("title = %q", got)
	}
	if draft.Chapters.Chapters[0].ChapterNumber != 0 {
		t.Errorf("chapter number = %d, want 0", draft.Chapters.Chapters[0].ChapterNumber)
	}
}
