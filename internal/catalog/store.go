// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists confirmed textbook hierarchies.
//
// It is the persistence collaborator on the far side of the wizard boundary:
// confirmed SeriesInfo/BookDetails/ChapterOrganization DTOs map 1:1 onto
// series, book, and chapter rows in a local SQLite database. The inference
// engine never touches this package.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/textbook-engine/internal/wizard"
	"github.com/pdiddy/textbook-engine/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the catalog SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the catalog database at catalogDir/catalog.db,
// creating the schema if needed. Uniqueness of volume numbers within a
// series and chapter numbers within a book is enforced by the schema.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS series (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			publisher TEXT,
			curriculum_standard TEXT,
			grade INTEGER,
			subject TEXT,
			description TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE(name, publisher, grade, subject)
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			series_id TEXT NOT NULL REFERENCES series(id),
			volume_number INTEGER NOT NULL,
			volume_title TEXT,
			isbn TEXT,
			edition TEXT,
			publication_year INTEGER,
			authors TEXT,
			total_pages INTEGER,
			uploaded_at TEXT NOT NULL,
			UNIQUE(series_id, volume_number)
		)`,
		`CREATE TABLE IF NOT EXISTS chapters (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL REFERENCES books(id),
			chapter_number INTEGER NOT NULL,
			title TEXT NOT NULL,
			summary TEXT,
			start_page INTEGER,
			end_page INTEGER,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE(book_id, chapter_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_series_id ON books(series_id)`,
		`CREATE INDEX IF NOT EXISTS idx_chapters_book_id ON chapters(book_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// StoreConfirmed persists one confirmed hierarchy in a single transaction:
// the series row is found or created, the volume is added under it, and the
// chapters are added under the volume. The hierarchy is re-validated before
// any row is written. It returns the series and book row IDs.
func (s *Store) StoreConfirmed(ctx context.Context, d types.DraftHierarchy) (string, string, error) {
	if err := wizard.ValidateSeries(d.Series); err != nil {
		return "", "", err
	}
	if err := wizard.ValidateBook(d.Book); err != nil {
		return "", "", err
	}
	if err := wizard.ValidateChapters(d.Chapters); err != nil {
		return "", "", err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	seriesID, err := findOrCreateSeries(ctx, tx, d.Series, now)
	if err != nil {
		return "", "", err
	}

	bookID, err := insertBook(ctx, tx, seriesID, d.Book, d.Chapters, now)
	if err != nil {
		return "", "", err
	}

	for _, ch := range d.Chapters.Chapters {
		if err := insertChapter(ctx, tx, bookID, ch, now); err != nil {
			return "", "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", "", fmt.Errorf("committing transaction: %w", err)
	}
	return seriesID, bookID, nil
}

// findOrCreateSeries reuses an existing series row with the same identity
// (name, publisher, grade, subject) or inserts a new one. Reuse counts as a
// modification of the series, so its updated_at moves forward.
func findOrCreateSeries(ctx context.Context, tx *sql.Tx, info types.SeriesInfo, now string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM series WHERE name = ? AND publisher = ? AND grade = ? AND subject = ?`,
		info.Name, info.Publisher, info.Grade, info.Subject,
	).Scan(&id)
	if err == nil {
		if _, err := tx.ExecContext(ctx,
			`UPDATE series SET updated_at = ? WHERE id = ?`, now, id); err != nil {
			return "", fmt.Errorf("updating series %s: %w", id, err)
		}
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("looking up series: %w", err)
	}

	id = uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO series (id, name, publisher, curriculum_standard, grade, subject, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, info.Name, info.Publisher, info.CurriculumStandard, info.Grade,
		info.Subject, info.Description, now, now)
	if err != nil {
		return "", fmt.Errorf("inserting series %q: %w", info.Name, err)
	}
	return id, nil
}

// insertBook adds the volume row. Total pages defaults to the sum of the
// chapters' page spans when the details carry no explicit count.
func insertBook(ctx context.Context, tx *sql.Tx, seriesID string, book types.BookDetails, chapters types.ChapterOrganization, now string) (string, error) {
	var count int
	err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM books WHERE series_id = ? AND volume_number = ?`,
		seriesID, book.VolumeNumber,
	).Scan(&count)
	if err != nil {
		return "", fmt.Errorf("checking volume number: %w", err)
	}
	if count > 0 {
		return "", fmt.Errorf("volume %d already exists in this series", book.VolumeNumber)
	}

	totalPages := book.TotalPages
	if totalPages == 0 {
		totalPages = chapterPageSum(chapters)
	}

	authors, err := json.Marshal(book.Authors)
	if err != nil {
		return "", fmt.Errorf("encoding authors: %w", err)
	}

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO books (id, series_id, volume_number, volume_title, isbn, edition, publication_year, authors, total_pages, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, seriesID, book.VolumeNumber, book.VolumeTitle, book.ISBN,
		book.Edition, book.PublicationYear, string(authors), totalPages, now)
	if err != nil {
		return "", fmt.Errorf("inserting volume %d: %w", book.VolumeNumber, err)
	}
	return id, nil
}

func insertChapter(ctx context.Context, tx *sql.Tx, bookID string, ch types.ChapterEntry, now string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO chapters (id, book_id, chapter_number, title, summary, start_page, end_page, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), bookID, ch.ChapterNumber, ch.Title, ch.Summary,
		ch.StartPage, ch.EndPage, now, now)
	if err != nil {
		return fmt.Errorf("inserting chapter %d: %w", ch.ChapterNumber, err)
	}
	return nil
}

// chapterPageSum totals the page spans of chapters whose ranges are fully
// specified.
func chapterPageSum(o types.ChapterOrganization) int {
	total := 0
	for _, ch := range o.Chapters {
		if ch.StartPage > 0 && ch.EndPage >= ch.StartPage {
			total += ch.EndPage - ch.StartPage + 1
		}
	}
	return total
}

// ListSeries returns all series rows ordered by name.
func (s *Store) ListSeries(ctx context.Context) ([]types.BookSeries, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, publisher, curriculum_standard, grade, subject, description, created_at, updated_at
		 FROM series ORDER BY name, grade`)
	if err != nil {
		return nil, fmt.Errorf("querying series: %w", err)
	}
	defer rows.Close()

	var out []types.BookSeries
	for rows.Next() {
		var sr types.BookSeries
		var created, updated string
		if err := rows.Scan(&sr.ID, &sr.Name, &sr.Publisher, &sr.CurriculumStandard,
			&sr.Grade, &sr.Subject, &sr.Description, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning series row: %w", err)
		}
		sr.CreatedAt = parseTime(created)
		sr.UpdatedAt = parseTime(updated)
		out = append(out, sr)
	}
	return out, rows.Err()
}

// ListBooks returns the books in one series ordered by volume number. An
// empty seriesID returns all books.
func (s *Store) ListBooks(ctx context.Context, seriesID string) ([]types.Book, error) {
	query := `SELECT id, series_id, volume_number, volume_title, isbn, edition, publication_year, authors, total_pages, uploaded_at
		 FROM books`
	var args []any
	if seriesID != "" {
		query += ` WHERE series_id = ?`
		args = append(args, seriesID)
	}
	query += ` ORDER BY series_id, volume_number`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var out []types.Book
	for rows.Next() {
		var b types.Book
		var authors, uploaded string
		if err := rows.Scan(&b.ID, &b.SeriesID, &b.VolumeNumber, &b.VolumeTitle,
			&b.ISBN, &b.Edition, &b.PublicationYear, &authors, &b.TotalPages, &uploaded); err != nil {
			return nil, fmt.Errorf("scanning book row: %w", err)
		}
		if authors != "" && authors != "null" {
			if err := json.Unmarshal([]byte(authors), &b.Authors); err != nil {
				return nil, fmt.Errorf("decoding authors for book %s: %w", b.ID, err)
			}
		}
		b.UploadedAt = parseTime(uploaded)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListChapters returns the chapters of one book ordered by chapter number.
func (s *Store) ListChapters(ctx context.Context, bookID string) ([]types.BookChapter, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, book_id, chapter_number, title, summary, start_page, end_page, created_at, updated_at
		 FROM chapters WHERE book_id = ? ORDER BY chapter_number`, bookID)
	if err != nil {
		return nil, fmt.Errorf("querying chapters: %w", err)
	}
	defer rows.Close()

	var out []types.BookChapter
	for rows.Next() {
		var ch types.BookChapter
		var created, updated string
		if err := rows.Scan(&ch.ID, &ch.BookID, &ch.ChapterNumber, &ch.Title,
			&ch.Summary, &ch.StartPage, &ch.EndPage, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning chapter row: %w", err)
		}
		ch.CreatedAt = parseTime(created)
		ch.UpdatedAt = parseTime(updated)
		out = append(out, ch)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
