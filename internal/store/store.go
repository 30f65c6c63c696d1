// Package store keeps books of paragraphs and the bindings between them in a
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/sqlite"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/verse"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/cache"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/logging"
)

// Defaults for the paragraph cache.
const (
	DefaultCacheTTL   = 5 * time.Minute
	DefaultCacheBooks = 16
)

const schema = `
	CREATE TABLE IF NOT EXISTS books (
		id TEXT PRIMARY KEY,
		imported TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS paragraphs (
		book_id TEXT NOT NULL,
		id TEXT NOT NULL,
		chapter INTEGER NOT NULL,
		section INTEGER NOT NULL,
		idx INTEGER NOT NULL,
		style TEXT NOT NULL DEFAULT '',
		text TEXT NOT NULL DEFAULT '',
		verse_range TEXT,
		PRIMARY KEY (book_id, id),
		FOREIGN KEY (book_id) REFERENCES books(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_paragraphs_pos ON paragraphs(book_id, chapter, section, idx);
	CREATE TABLE IF NOT EXISTS bindings (
		id TEXT PRIMARY KEY,
		source_book TEXT NOT NULL,
		target_book TEXT NOT NULL,
		created TEXT NOT NULL,
		fingerprint TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS binding_pairs (
		binding_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		source_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		PRIMARY KEY (binding_id, seq),
		FOREIGN KEY (binding_id) REFERENCES bindings(id) ON DELETE CASCADE
	);
`

// Store is a SQLite-backed paragraph and binding store. It is safe for
// concurrent use. Paragraph slices it returns are shared with its cache and
// must not be modified.
type Store struct {
	db    *sql.DB
	path  string
	cache *cache.TTL[string, []*para.Paragraph]
}

// Option configures Open.
type Option func(*Store)

// WithCacheTTL sets how long book contents stay cached. Zero disables the
// cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) { s.cache = cache.New[string, []*para.Paragraph](ttl, DefaultCacheBooks) }
}

// Open opens the database at path and brings its schema up to date.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	s := &Store{
		db:    db,
		path:  path,
		cache: cache.New[string, []*para.Paragraph](DefaultCacheTTL, DefaultCacheBooks),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// Migrate creates any missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "migrate schema")
	}
	return nil
}

// PutParagraphs replaces the contents of book bookID with ps, creating the
// book if needed.
func (s *Store) PutParagraphs(ctx context.Context, bookID string, ps []*para.Paragraph) (err error) {
	if bookID == "" {
		return errors.NewValidation("book", "book ID is empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM paragraphs WHERE book_id = ?`, bookID); err != nil {
		return errors.Wrapf(err, "clear book %s", bookID)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO books (id, imported) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET imported = excluded.imported`,
		bookID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return errors.Wrapf(err, "register book %s", bookID)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO paragraphs (book_id, id, chapter, section, idx, style, text, verse_range)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare paragraph insert")
	}
	defer stmt.Close()

	for _, p := range ps {
		var rangeJSON sql.NullString
		if p.Range != nil {
			data, mErr := json.Marshal(p.Range.Properties())
			if mErr != nil {
				return errors.Wrapf(mErr, "encode range of %s", p.ID)
			}
			rangeJSON = sql.NullString{String: string(data), Valid: true}
		}
		if _, err = stmt.ExecContext(ctx, bookID, p.ID,
			p.Position.Chapter, p.Position.Section, p.Position.Index,
			p.Style, p.Text, rangeJSON); err != nil {
			return errors.Wrapf(err, "insert paragraph %s", p.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit paragraphs")
	}
	s.cache.Delete(bookID)
	logging.StoreEvent("put", "paragraphs", len(ps), "book", bookID)
	return nil
}

// Paragraphs returns the paragraphs of book bookID in book order. An unknown
// book yields an error matching errors.ErrNotFound.
func (s *Store) Paragraphs(ctx context.Context, bookID string) ([]*para.Paragraph, error) {
	if ps, ok := s.cache.Get(bookID); ok {
		return ps, nil
	}

	if err := s.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chapter, section, idx, style, text, verse_range
		 FROM paragraphs WHERE book_id = ?
		 ORDER BY chapter, section, idx`, bookID)
	if err != nil {
		return nil, errors.Wrapf(err, "query book %s", bookID)
	}
	defer rows.Close()

	ps := []*para.Paragraph{}
	for rows.Next() {
		p := &para.Paragraph{BookID: bookID}
		var rangeJSON sql.NullString
		if err := rows.Scan(&p.ID, &p.Position.Chapter, &p.Position.Section, &p.Position.Index,
			&p.Style, &p.Text, &rangeJSON); err != nil {
			return nil, errors.Wrapf(err, "scan paragraph of %s", bookID)
		}
		if rangeJSON.Valid {
			r, err := decodeRange(rangeJSON.String)
			if err != nil {
				return nil, errors.Wrapf(err, "paragraph %s", p.ID)
			}
			p.Range = &r
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "read book %s", bookID)
	}

	s.cache.Set(bookID, ps)
	logging.StoreEvent("get", "paragraphs", len(ps), "book", bookID)
	return ps, nil
}

func decodeRange(data string) (verse.Range, error) {
	var props map[string]any
	if err := json.Unmarshal([]byte(data), &props); err != nil {
		return verse.Range{}, &errors.ParseError{Format: "stored verse range", Message: "invalid JSON", Err: err}
	}
	return verse.ParseProperties(props)
}

// BookInfo describes a stored book.
type BookInfo struct {
	ID         string    `json:"id"`
	Paragraphs int       `json:"paragraphs"`
	Ranged     int       `json:"ranged"`
	Imported   time.Time `json:"imported"`
}

// Books lists the stored books ordered by ID.
func (s *Store) Books(ctx context.Context) ([]BookInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.imported, COUNT(p.id), COUNT(p.verse_range)
		 FROM books b LEFT JOIN paragraphs p ON p.book_id = b.id
		 GROUP BY b.id ORDER BY b.id`)
	if err != nil {
		return nil, errors.Wrap(err, "query books")
	}
	defer rows.Close()

	var books []BookInfo
	for rows.Next() {
		var (
			b        BookInfo
			imported string
		)
		if err := rows.Scan(&b.ID, &imported, &b.Paragraphs, &b.Ranged); err != nil {
			return nil, errors.Wrap(err, "scan book")
		}
		if b.Imported, err = time.Parse(time.RFC3339, imported); err != nil {
			return nil, errors.Wrapf(err, "book %s import time", b.ID)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// DeleteBook removes a book and its paragraphs. Bindings that refer to it
// are kept.
func (s *Store) DeleteBook(ctx context.Context, bookID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID)
	if err != nil {
		return errors.Wrapf(err, "delete book %s", bookID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFound("book", bookID)
	}
	s.cache.Delete(bookID)
	logging.StoreEvent("delete", "books", 1, "book", bookID)
	return nil
}

func (s *Store) requireBook(ctx context.Context, bookID string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM books WHERE id = ?`, bookID).Scan(&one)
	if err == sql.ErrNoRows {
		return errors.NewNotFound("book", bookID)
	}
	if err != nil {
		return errors.Wrapf(err, "look up book %s", bookID)
	}
	return nil
}
