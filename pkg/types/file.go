// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// UploadedFile is one file in an upload batch as reported by the upload
// transport. The engine reads its metadata only; ContentRef is an opaque
// handle that is never opened here.
type UploadedFile struct {
	// ID is the stable identifier assigned by the upload transport.
	ID string `json:"id" yaml:"id"`

	// Name is the original filename, including extension.
	Name string `json:"name" yaml:"name"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// MIMEType is the declared content type (e.g. "application/pdf").
	MIMEType string `json:"mime_type" yaml:"mime_type"`

	// LastModified is the file's last-modified timestamp.
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`

	// ContentRef is an opaque handle to the file bytes, owned by the
	// storage layer.
	ContentRef string `json:"content_ref,omitempty" yaml:"content_ref,omitempty"`
}

// StringField is a string attribute inferred from a filename together with
// the recognizer's confidence. A zero Confidence means the field is unknown.
type StringField struct {
	Value      string  `json:"value" yaml:"value"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Known reports whether the field carries a usable value.
func (f StringField) Known() bool {
	return f.Confidence > 0 && f.Value != ""
}

// IntField is an integer attribute inferred from a filename together with
// the recognizer's confidence. A zero Confidence means the field is unknown.
type IntField struct {
	Value      int     `json:"value" yaml:"value"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Known reports whether the field carries a usable value.
func (f IntField) Known() bool {
	return f.Confidence > 0
}

// ExtractedFields holds the per-file attributes the pattern recognizers
// inferred from one filename. Fields the recognizers could not determine
// are left at zero confidence; an all-unknown result is valid low-information
// output, not an error.
type ExtractedFields struct {
	// Publisher is the recognized publisher or curriculum organization
	// (e.g. "NCERT").
	Publisher StringField `json:"publisher" yaml:"publisher"`

	// Subject is the canonical subject name (e.g. "Mathematics").
	Subject StringField `json:"subject" yaml:"subject"`

	// Grade is the class/grade level, validated to the 1-12 range.
	Grade IntField `json:"grade" yaml:"grade"`

	// CurriculumStandard is the curriculum the publisher implies
	// (e.g. "CBSE").
	CurriculumStandard StringField `json:"curriculum_standard" yaml:"curriculum_standard"`

	// ChapterNumber is the chapter's position within its book.
	ChapterNumber IntField `json:"chapter_number" yaml:"chapter_number"`

	// ChapterTitle is the free-text title following the chapter marker,
	// with separators converted to spaces.
	ChapterTitle StringField `json:"chapter_title" yaml:"chapter_title"`
}

// MeanConfidence returns the average confidence across all six fields.
func (e ExtractedFields) MeanConfidence() float64 {
	sum := e.Publisher.Confidence +
		e.Subject.Confidence +
		e.Grade.Confidence +
		e.CurriculumStandard.Confidence +
		e.ChapterNumber.Confidence +
		e.ChapterTitle.Confidence
	return sum / 6
}

// FileGroup is the engine's hypothesis that a set of uploaded files are
// chapters of the same book. Every file in a batch belongs to exactly one
// group; unrelated files end up in singleton groups.
type FileGroup struct {
	// ID identifies the group within one inference run.
	ID string `json:"id" yaml:"id"`

	// Name is a human-readable label derived from the group key.
	Name string `json:"name" yaml:"name"`

	// Key is the representative normalized key the members clustered on.
	Key string `json:"key" yaml:"key"`

	// Files are the group members in deterministic batch order.
	Files []UploadedFile `json:"files" yaml:"files"`

	// SuggestedSeries is the majority-vote series name across members.
	SuggestedSeries string `json:"suggested_series" yaml:"suggested_series"`

	// SuggestedPublisher is the majority-vote publisher across members.
	SuggestedPublisher string `json:"suggested_publisher" yaml:"suggested_publisher"`

	// Confidence is the aggregate grouping confidence in [0,1].
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// IsUserCreated marks groups a human assembled manually. Such groups
	// bypass scoring and are treated as authoritative (confidence 1.0).
	IsUserCreated bool `json:"is_user_created" yaml:"is_user_created"`
}
