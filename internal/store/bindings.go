package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/core/errors"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/binding"
	"github.com/karivalkama/Agricola-Scripture-Editor-sub002/internal/logging"
)

// BindingInfo is a binding without its pairs.
type BindingInfo struct {
	ID          string    `json:"id"`
	SourceBook  string    `json:"source_book"`
	TargetBook  string    `json:"target_book"`
	Created     time.Time `json:"created"`
	Fingerprint string    `json:"fingerprint"`
	Pairs       int       `json:"pairs"`
}

// SaveBinding stores b. A binding with the same ID must not exist.
func (s *Store) SaveBinding(ctx context.Context, b *binding.Binding) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var one int
	switch qErr := tx.QueryRowContext(ctx, `SELECT 1 FROM bindings WHERE id = ?`, b.ID).Scan(&one); qErr {
	case nil:
		return errors.Wrapf(errors.ErrAlreadyExists, "binding %s", b.ID)
	case sql.ErrNoRows:
	default:
		return errors.Wrapf(qErr, "look up binding %s", b.ID)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO bindings (id, source_book, target_book, created, fingerprint) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.SourceBook, b.TargetBook, b.Created.UTC().Format(time.RFC3339), b.Fingerprint); err != nil {
		return errors.Wrapf(err, "insert binding %s", b.ID)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO binding_pairs (binding_id, seq, source_id, target_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare pair insert")
	}
	defer stmt.Close()

	for i, p := range b.Pairs {
		if _, err = stmt.ExecContext(ctx, b.ID, i, p.SourceID, p.TargetID); err != nil {
			return errors.Wrapf(err, "insert pair %d of binding %s", i, b.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit binding")
	}
	logging.StoreEvent("put", "bindings", len(b.Pairs), "binding", b.ID)
	return nil
}

// Binding returns the binding with the given ID and all of its pairs.
func (s *Store) Binding(ctx context.Context, id string) (*binding.Binding, error) {
	var (
		b       binding.Binding
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source_book, target_book, created, fingerprint FROM bindings WHERE id = ?`, id).
		Scan(&b.ID, &b.SourceBook, &b.TargetBook, &created, &b.Fingerprint)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("binding", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "query binding %s", id)
	}
	if b.Created, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, errors.Wrapf(err, "binding %s creation time", id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source_id, target_id FROM binding_pairs WHERE binding_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "query pairs of %s", id)
	}
	defer rows.Close()

	b.Pairs = []binding.Pair{}
	for rows.Next() {
		var p binding.Pair
		if err := rows.Scan(&p.SourceID, &p.TargetID); err != nil {
			return nil, errors.Wrapf(err, "scan pair of %s", id)
		}
		b.Pairs = append(b.Pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "read pairs of %s", id)
	}
	return &b, nil
}

// Bindings lists the stored bindings, oldest first.
func (s *Store) Bindings(ctx context.Context) ([]BindingInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.source_book, b.target_book, b.created, b.fingerprint, COUNT(p.seq)
		 FROM bindings b LEFT JOIN binding_pairs p ON p.binding_id = b.id
		 GROUP BY b.id ORDER BY b.created, b.id`)
	if err != nil {
		return nil, errors.Wrap(err, "query bindings")
	}
	defer rows.Close()

	var out []BindingInfo
	for rows.Next() {
		var (
			info    BindingInfo
			created string
		)
		if err := rows.Scan(&info.ID, &info.SourceBook, &info.TargetBook, &created,
			&info.Fingerprint, &info.Pairs); err != nil {
			return nil, errors.Wrap(err, "scan binding")
		}
		if info.Created, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, errors.Wrapf(err, "binding %s creation time", info.ID)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// DeleteBinding removes a binding and its pairs.
func (s *Store) DeleteBinding(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bindings WHERE id = ?`, id)
	if err != nil {
		return errors.Wrapf(err, "delete binding %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NewNotFound("binding", id)
	}
	logging.StoreEvent("delete", "bindings", 1, "binding", id)
	return nil
}
