// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// BookSeries identifies a publication line: one curriculum standard,
// publisher, grade, and subject. Series rows are created only after a human
// confirms a FileGroup (or enters one manually), never by the inference
// engine directly.
type BookSeries struct {
	// ID is the series row identifier.
	ID string `json:"id" yaml:"id"`

	// Name is the series name (e.g. "NCERT Mathematics Class 10").
	Name string `json:"name" yaml:"name"`

	// Publisher is the publishing organization.
	Publisher string `json:"publisher" yaml:"publisher"`

	// CurriculumStandard is the curriculum the series follows (e.g. "CBSE").
	CurriculumStandard string `json:"curriculum_standard" yaml:"curriculum_standard"`

	// Grade is the class/grade level.
	Grade int `json:"grade" yaml:"grade"`

	// Subject is the canonical subject name.
	Subject string `json:"subject" yaml:"subject"`

	// Description is free-text notes entered during review.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// CreatedAt is when the series row was first persisted.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the series row was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Book is one volume within a series. VolumeNumber is unique within its
// series once confirmed.
type Book struct {
	// ID is the book row identifier.
	ID string `json:"id" yaml:"id"`

	// SeriesID references the owning BookSeries.
	SeriesID string `json:"series_id" yaml:"series_id"`

	// VolumeNumber orders the book within its series.
	VolumeNumber int `json:"volume_number" yaml:"volume_number"`

	// VolumeTitle is the volume's own title, when distinct from the series name.
	VolumeTitle string `json:"volume_title" yaml:"volume_title"`

	// ISBN is the volume's ISBN, if known.
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`

	// Edition is the edition label, if known.
	Edition string `json:"edition,omitempty" yaml:"edition,omitempty"`

	// PublicationYear is the year of publication; zero when unknown.
	PublicationYear int `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`

	// Authors lists the volume authors in title-page order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// TotalPages is the page count across all chapters; zero when unknown.
	TotalPages int `json:"total_pages" yaml:"total_pages"`

	// UploadedAt is when the volume's files were uploaded.
	UploadedAt time.Time `json:"uploaded_at" yaml:"uploaded_at"`
}

// BookChapter is one chapter within a book. ChapterNumber is unique within
// its book, and when both page endpoints are known the range must not overlap
// any sibling chapter's range.
type BookChapter struct {
	// ID is the chapter row identifier.
	ID string `json:"id" yaml:"id"`

	// BookID references the owning Book.
	BookID string `json:"book_id" yaml:"book_id"`

	// ChapterNumber orders the chapter within its book.
	ChapterNumber int `json:"chapter_number" yaml:"chapter_number"`

	// Title is the chapter title.
	Title string `json:"title" yaml:"title"`

	// Summary is an optional free-text content summary.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// StartPage is the first page of the chapter; zero when unknown.
	StartPage int `json:"start_page,omitempty" yaml:"start_page,omitempty"`

	// EndPage is the last page of the chapter; zero when unknown.
	EndPage int `json:"end_page,omitempty" yaml:"end_page,omitempty"`

	// CreatedAt is when the chapter row was first persisted.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the chapter row was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// PageCount returns the chapter's page span, or zero when either endpoint
// is unknown.
func (c BookChapter) PageCount() int {
	if c.StartPage <= 0 || c.EndPage <= 0 || c.EndPage < c.StartPage {
		return 0
	}
	return c.EndPage - c.StartPage + 1
}

// HasPageRange reports whether both page endpoints are known.
func (c BookChapter) HasPageRange() bool {
	return c.StartPage > 0 && c.EndPage > 0
}
