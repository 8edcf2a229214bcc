// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SeriesInfo is the first review-stage DTO: the series identity as inferred
// or as edited by the reviewer. Unconfirmed values may be partial; a
// confirmed SeriesInfo maps 1:1 onto a BookSeries row.
type SeriesInfo struct {
	// Name is the proposed series name.
	Name string `json:"name" yaml:"name"`

	// Publisher is the proposed publisher.
	Publisher string `json:"publisher" yaml:"publisher"`

	// CurriculumStandard is the proposed curriculum (e.g. "CBSE").
	CurriculumStandard string `json:"curriculum_standard" yaml:"curriculum_standard"`

	// Grade is the proposed grade level; zero when not yet determined.
	Grade int `json:"grade" yaml:"grade"`

	// Subject is the proposed canonical subject.
	Subject string `json:"subject" yaml:"subject"`

	// Description is free text entered during review.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// BookDetails is the second review-stage DTO: volume-level attributes.
// The engine always proposes a single volume; the volume number is a manual
// override field for multi-volume series.
type BookDetails struct {
	// VolumeNumber orders the volume within the series. Defaults to 1.
	VolumeNumber int `json:"volume_number" yaml:"volume_number"`

	// VolumeTitle is the volume's own title.
	VolumeTitle string `json:"volume_title" yaml:"volume_title"`

	// ISBN is the volume's ISBN, if entered.
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`

	// Edition is the edition label, if entered.
	Edition string `json:"edition,omitempty" yaml:"edition,omitempty"`

	// PublicationYear is the year of publication; zero when unknown.
	PublicationYear int `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`

	// Authors lists the volume authors.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// TotalPages is the page count across all chapters; zero when unknown.
	TotalPages int `json:"total_pages,omitempty" yaml:"total_pages,omitempty"`
}

// ChapterEntry is one chapter row within ChapterOrganization, linked back to
// the uploaded file it came from.
type ChapterEntry struct {
	// FileID references the UploadedFile this chapter was inferred from.
	FileID string `json:"file_id" yaml:"file_id"`

	// FileName is the original filename, kept for display during review.
	FileName string `json:"file_name" yaml:"file_name"`

	// ChapterNumber is the proposed chapter number; zero when the filename
	// carried none.
	ChapterNumber int `json:"chapter_number" yaml:"chapter_number"`

	// Title is the proposed chapter title.
	Title string `json:"title" yaml:"title"`

	// Summary is an optional content summary entered during review.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// StartPage is the first page of the chapter; zero when unknown.
	StartPage int `json:"start_page,omitempty" yaml:"start_page,omitempty"`

	// EndPage is the last page of the chapter; zero when unknown.
	EndPage int `json:"end_page,omitempty" yaml:"end_page,omitempty"`
}

// ChapterConflict records a duplicate chapter number detected within one
// group. Conflicts are surfaced for human resolution, never resolved by
// discarding a file.
type ChapterConflict struct {
	// ChapterNumber is the contested number.
	ChapterNumber int `json:"chapter_number" yaml:"chapter_number"`

	// FileIDs lists the files that claim the number, in batch order.
	FileIDs []string `json:"file_ids" yaml:"file_ids"`
}

// ChapterOrganization is the third review-stage DTO: the ordered chapter
// list with any structural conflicts the builder detected.
type ChapterOrganization struct {
	// Chapters lists the proposed chapters in reading order.
	Chapters []ChapterEntry `json:"chapters" yaml:"chapters"`

	// Conflicts lists duplicate chapter numbers awaiting resolution.
	Conflicts []ChapterConflict `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// HasConflicts reports whether any chapter numbers are contested.
func (o ChapterOrganization) HasConflicts() bool {
	return len(o.Conflicts) > 0
}

// DraftHierarchy bundles the three review-stage DTOs for one file group.
// It is the engine's final output and the wizard's input.
type DraftHierarchy struct {
	// GroupID references the FileGroup the draft was built from.
	GroupID string `json:"group_id" yaml:"group_id"`

	// Series is the proposed series identity.
	Series SeriesInfo `json:"series" yaml:"series"`

	// Book is the proposed volume.
	Book BookDetails `json:"book" yaml:"book"`

	// Chapters is the proposed chapter organization.
	Chapters ChapterOrganization `json:"chapters" yaml:"chapters"`
}
