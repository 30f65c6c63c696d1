// Package binding turns an alignment of two stored books into a persistent
// binding record.
package binding

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/align"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/para"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/logging"
)

// Pair links a source paragraph to a target paragraph by ID.
type Pair struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// Binding is the saved result of aligning two books.
type Binding struct {
	ID          string    `json:"id"`
	SourceBook  string    `json:"source_book"`
	TargetBook  string    `json:"target_book"`
	Created     time.Time `json:"created"`
	Pairs       []Pair    `json:"pairs"`
	Fingerprint string    `json:"fingerprint"`
}

// ParagraphSource loads the paragraphs of a book in book order.
type ParagraphSource interface {
	Paragraphs(ctx context.Context, bookID string) ([]*para.Paragraph, error)
}

// BindingSink persists bindings.
type BindingSink interface {
	SaveBinding(ctx context.Context, b *Binding) error
}

// New builds a binding from matches with a fresh ID.
func New(sourceBook, targetBook string, matches []align.Match) *Binding {
	pairs := make([]Pair, len(matches))
	for i, m := range matches {
		pairs[i] = Pair{SourceID: m.Source.ID, TargetID: m.Target.ID}
	}
	return &Binding{
		ID:          uuid.New().String(),
		SourceBook:  sourceBook,
		TargetBook:  targetBook,
		Created:     time.Now().UTC().Truncate(time.Second),
		Pairs:       pairs,
		Fingerprint: Fingerprint(pairs),
	}
}

// Fingerprint returns the BLAKE3 hex digest of the ordered pair IDs. Two
// bindings with the same pairs in the same order share a fingerprint.
func Fingerprint(pairs []Pair) string {
	h := blake3.New()
	for _, p := range pairs {
		h.WriteString(p.SourceID)
		h.WriteString("\x00")
		h.WriteString(p.TargetID)
		h.WriteString("\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Verify checks that the stored fingerprint matches the pairs.
func (b *Binding) Verify() error {
	if want := Fingerprint(b.Pairs); b.Fingerprint != want {
		return errors.NewValidation("fingerprint",
			fmt.Sprintf("binding %s: got %s, want %s", b.ID, b.Fingerprint, want))
	}
	return nil
}

// Targets returns the IDs of the target paragraphs paired with sourceID in
// pair order.
func (b *Binding) Targets(sourceID string) []string {
	var ids []string
	for _, p := range b.Pairs {
		if p.SourceID == sourceID {
			ids = append(ids, p.TargetID)
		}
	}
	return ids
}

// Sources returns the IDs of the source paragraphs paired with targetID in
// pair order.
func (b *Binding) Sources(targetID string) []string {
	var ids []string
	for _, p := range b.Pairs {
		if p.TargetID == targetID {
			ids = append(ids, p.SourceID)
		}
	}
	return ids
}

// Option configures Create.
type Option func(*options)

type options struct {
	aligner *align.Aligner
}

// WithAligner sets the aligner used by Create.
func WithAligner(a *align.Aligner) Option {
	return func(o *options) { o.aligner = a }
}

// Create loads both books from src, aligns them, and saves the resulting
// binding to sink. It fails with align.ErrNothingToAlign when either book
// has no paragraphs.
func Create(ctx context.Context, src ParagraphSource, sink BindingSink, sourceBook, targetBook string, opts ...Option) (*Binding, error) {
	o := options{aligner: &align.Aligner{}}
	for _, opt := range opts {
		opt(&o)
	}

	sources, err := load(ctx, src, sourceBook)
	if err != nil {
		return nil, err
	}
	targets, err := load(ctx, src, targetBook)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 || len(targets) == 0 {
		logging.NothingToAlign(ctx, sourceBook, targetBook, len(sources), len(targets))
		return nil, fmt.Errorf("binding %s to %s: %w", sourceBook, targetBook, align.ErrNothingToAlign)
	}

	matches := o.aligner.AlignChapters(sources, targets)
	b := New(sourceBook, targetBook, matches)

	ctx = logging.WithRunID(ctx, b.ID)
	sum := align.Summarize(matches)
	logging.AlignmentResult(ctx, sourceBook, targetBook, len(sources), len(targets), len(b.Pairs),
		"one_to_many", sum.OneToMany,
		"many_to_one", sum.ManyToOne,
		"rangeless", sum.Rangeless,
	)

	if err := sink.SaveBinding(ctx, b); err != nil {
		return nil, errors.Wrapf(err, "save binding %s", b.ID)
	}
	return b, nil
}

func load(ctx context.Context, src ParagraphSource, bookID string) ([]*para.Paragraph, error) {
	ps, err := src.Paragraphs(ctx, bookID)
	if err != nil {
		return nil, errors.Wrapf(err, "load book %s", bookID)
	}
	if !para.IsSorted(ps) {
		ps = append([]*para.Paragraph(nil), ps...)
		para.SortByPosition(ps)
	}
	return ps, nil
}
