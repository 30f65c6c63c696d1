package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	coreerrors "github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/verse"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/binding"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "parabind.db"), opts...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mkPara(id string, chapter, section, index int, r string) *para.Paragraph {
	p := &para.Paragraph{
		ID:       id,
		Position: para.Position{Chapter: chapter, Section: section, Index: index},
		Style:    "p",
		Text:     "text of " + id,
	}
	if r != "" {
		rng, err := verse.ParseRange(r)
		if err != nil {
			panic(err)
		}
		p.Range = &rng
	}
	return p
}

func TestPutAndGetParagraphs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := []*para.Paragraph{
		mkPara("p3", 2, 0, 0, "1-3"),
		mkPara("p1", 1, 0, 0, ""),
		mkPara("p2", 1, 1, 0, "4b-6"),
	}
	if err := s.PutParagraphs(ctx, "MAT-en", in); err != nil {
		t.Fatalf("PutParagraphs() error = %v", err)
	}

	got, err := s.Paragraphs(ctx, "MAT-en")
	if err != nil {
		t.Fatalf("Paragraphs() error = %v", err)
	}

	wantIDs := []string{"p1", "p2", "p3"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d paragraphs, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %s, want %s", i, got[i].ID, id)
		}
		if got[i].BookID != "MAT-en" {
			t.Errorf("got[%d].BookID = %q", i, got[i].BookID)
		}
	}
	if got[0].Range != nil {
		t.Errorf("p1 range = %v, want none", got[0].Range)
	}
	if got[1].Range == nil || got[1].Range.String() != "4b-6" {
		t.Errorf("p2 range = %v, want 4b-6", got[1].Range)
	}
	if got[1].Text != "text of p2" || got[1].Style != "p" {
		t.Errorf("p2 = %+v", got[1])
	}
}

func TestPutParagraphsReplacesBook(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutParagraphs(ctx, "B", []*para.Paragraph{mkPara("old", 1, 0, 0, "1")}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Paragraphs(ctx, "B"); err != nil {
		t.Fatal(err)
	}
	if err := s.PutParagraphs(ctx, "B", []*para.Paragraph{mkPara("new", 1, 0, 0, "1")}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Paragraphs(ctx, "B")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("after replace got %v, want [new]", got)
	}
}

func TestPutParagraphsRollsBackOnDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutParagraphs(ctx, "B", []*para.Paragraph{mkPara("a", 1, 0, 0, "1")}); err != nil {
		t.Fatal(err)
	}
	dup := []*para.Paragraph{mkPara("x", 1, 0, 0, "1"), mkPara("x", 1, 0, 1, "2")}
	if err := s.PutParagraphs(ctx, "B", dup); err == nil {
		t.Fatal("PutParagraphs() with duplicate IDs should fail")
	}

	got, err := s.Paragraphs(ctx, "B")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("book changed by a failed put: %v", got)
	}
}

func TestParagraphsErrors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Paragraphs(ctx, "nope"); !errors.Is(err, coreerrors.ErrNotFound) {
		t.Errorf("Paragraphs(unknown) error = %v, want ErrNotFound", err)
	}
	if err := s.PutParagraphs(ctx, "", nil); !errors.Is(err, coreerrors.ErrInvalidInput) {
		t.Errorf("PutParagraphs(\"\") error = %v, want ErrInvalidInput", err)
	}

	if err := s.PutParagraphs(ctx, "EMPTY", nil); err != nil {
		t.Fatal(err)
	}
	got, err := s.Paragraphs(ctx, "EMPTY")
	if err != nil || len(got) != 0 {
		t.Errorf("Paragraphs(EMPTY) = %v, %v, want empty", got, err)
	}
}

func TestCorruptStoredRange(t *testing.T) {
	s := openTestStore(t, WithCacheTTL(0))
	ctx := context.Background()

	if err := s.PutParagraphs(ctx, "B", []*para.Paragraph{mkPara("a", 1, 0, 0, "1")}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.db.Exec(`UPDATE paragraphs SET verse_range = ? WHERE id = 'a'`,
		`{"startVerse":5,"startMidVerse":false,"endVerse":2,"endMidVerse":false}`); err != nil {
		t.Fatal(err)
	}

	_, err := s.Paragraphs(ctx, "B")
	var rangeErr *coreerrors.InvalidRangeError
	if !errors.As(err, &rangeErr) {
		t.Errorf("Paragraphs() error = %v, want InvalidRangeError", err)
	}
}

func TestParagraphsCache(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutParagraphs(ctx, "B", []*para.Paragraph{mkPara("a", 1, 0, 0, "1")}); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Paragraphs(ctx, "B")
	second, _ := s.Paragraphs(ctx, "B")
	if len(first) == 0 || first[0] != second[0] {
		t.Error("second read should be served from the cache")
	}
	if hits := s.cache.Stats().Hits; hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}

	if err := s.DeleteBook(ctx, "B"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Paragraphs(ctx, "B"); !errors.Is(err, coreerrors.ErrNotFound) {
		t.Errorf("deleted book still readable: %v", err)
	}
}

func TestBooks(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutParagraphs(ctx, "MAT-fi", []*para.Paragraph{mkPara("f1", 1, 0, 0, "")}); err != nil {
		t.Fatal(err)
	}
	if err := s.PutParagraphs(ctx, "MAT-en", []*para.Paragraph{
		mkPara("e1", 1, 0, 0, ""), mkPara("e2", 1, 0, 1, "1-2"), mkPara("e3", 1, 0, 2, "3"),
	}); err != nil {
		t.Fatal(err)
	}

	books, err := s.Books(ctx)
	if err != nil {
		t.Fatalf("Books() error = %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("Books() = %v, want 2 books", books)
	}
	en := books[0]
	if en.ID != "MAT-en" || en.Paragraphs != 3 || en.Ranged != 2 {
		t.Errorf("books[0] = %+v, want MAT-en with 3 paragraphs, 2 ranged", en)
	}
	if time.Since(en.Imported) > time.Hour {
		t.Errorf("Imported = %v", en.Imported)
	}

	if err := s.DeleteBook(ctx, "nope"); !errors.Is(err, coreerrors.ErrNotFound) {
		t.Errorf("DeleteBook(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parabind.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.PutParagraphs(ctx, "B", []*para.Paragraph{mkPara("a", 1, 0, 0, "1")}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	if got, err := s.Paragraphs(ctx, "B"); err != nil || len(got) != 1 {
		t.Errorf("Paragraphs() after reopen = %v, %v", got, err)
	}
}

func TestBindingRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	pairs := []binding.Pair{{"e1", "f1"}, {"e2", "f2"}, {"e3", "f2"}}
	b := &binding.Binding{
		ID:          "b-1",
		SourceBook:  "MAT-en",
		TargetBook:  "MAT-fi",
		Created:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Pairs:       pairs,
		Fingerprint: binding.Fingerprint(pairs),
	}
	if err := s.SaveBinding(ctx, b); err != nil {
		t.Fatalf("SaveBinding() error = %v", err)
	}

	got, err := s.Binding(ctx, "b-1")
	if err != nil {
		t.Fatalf("Binding() error = %v", err)
	}
	if got.SourceBook != b.SourceBook || got.TargetBook != b.TargetBook || !got.Created.Equal(b.Created) {
		t.Errorf("Binding() = %+v, want %+v", got, b)
	}
	if len(got.Pairs) != len(pairs) {
		t.Fatalf("Pairs = %v, want %v", got.Pairs, pairs)
	}
	for i := range pairs {
		if got.Pairs[i] != pairs[i] {
			t.Errorf("Pairs[%d] = %v, want %v", i, got.Pairs[i], pairs[i])
		}
	}
	if err := got.Verify(); err != nil {
		t.Errorf("Verify() error = %v", err)
	}

	if err := s.SaveBinding(ctx, b); !errors.Is(err, coreerrors.ErrAlreadyExists) {
		t.Errorf("second SaveBinding() error = %v, want ErrAlreadyExists", err)
	}
}

func TestBindingsList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"second", "first"} {
		b := &binding.Binding{
			ID:         id,
			SourceBook: "A",
			TargetBook: "B",
			Created:    time.Date(2024, 1, 2-i, 0, 0, 0, 0, time.UTC),
			Pairs:      make([]binding.Pair, i+1),
		}
		if err := s.SaveBinding(ctx, b); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.Bindings(ctx)
	if err != nil {
		t.Fatalf("Bindings() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "first" || list[1].ID != "second" {
		t.Fatalf("Bindings() = %+v, want first then second", list)
	}
	if list[0].Pairs != 2 || list[1].Pairs != 1 {
		t.Errorf("pair counts = %d, %d, want 2, 1", list[0].Pairs, list[1].Pairs)
	}

	if err := s.DeleteBinding(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Binding(ctx, "first"); !errors.Is(err, coreerrors.ErrNotFound) {
		t.Errorf("Binding(deleted) error = %v, want ErrNotFound", err)
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM binding_pairs WHERE binding_id = 'first'`).Scan(&n); err != nil || n != 0 {
		t.Errorf("pairs of deleted binding = %d, %v, want 0", n, err)
	}
}

func TestCreateBindingFromStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutParagraphs(ctx, "MAT-en", []*para.Paragraph{
		mkPara("e1", 1, 0, 0, ""), mkPara("e2", 1, 0, 1, "1-3"), mkPara("e3", 1, 0, 2, "3-6"),
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.PutParagraphs(ctx, "MAT-fi", []*para.Paragraph{
		mkPara("f1", 1, 0, 0, ""), mkPara("f2", 1, 0, 1, "1-6"),
	}); err != nil {
		t.Fatal(err)
	}

	b, err := binding.Create(ctx, s, s, "MAT-en", "MAT-fi")
	if err != nil {
		t.Fatalf("binding.Create() error = %v", err)
	}
	stored, err := s.Binding(ctx, b.ID)
	if err != nil {
		t.Fatalf("Binding() error = %v", err)
	}
	if stored.Fingerprint != b.Fingerprint || len(stored.Pairs) != 3 {
		t.Errorf("stored = %+v, want %+v", stored, b)
	}
}
