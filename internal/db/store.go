package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ramanasai/fitlog/internal/activity"
)

// Store keeps ledger records in SQLite. Newer rows have a higher seq, so
// listing by seq descending yields newest first.
type Store struct {
	db *sql.DB
}

var _ activity.Store = (*Store)(nil)

// NewStore wraps an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenStore opens an in-memory database and wraps it.
func OpenStore(ctx context.Context) (*Store, error) {
	dbh, err := Open(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(dbh), nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Prepend(ctx context.Context, r activity.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activities(id, name, duration_text) VALUES(?,?,?)`,
		r.ID, r.Name, r.DurationText)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, id string) (activity.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return activity.Record{}, err
	}
	defer func() { _ = tx.Rollback() }()

	r := activity.Record{ID: id}
	err = tx.QueryRowContext(ctx, `SELECT name, duration_text FROM activities WHERE id = ?`, id).
		Scan(&r.Name, &r.DurationText)
	if err == sql.ErrNoRows {
		return activity.Record{}, activity.ErrRecordNotFound
	}
	if err != nil {
		return activity.Record{}, fmt.Errorf("lookup activity: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id); err != nil {
		return activity.Record{}, fmt.Errorf("delete activity: %w", err)
	}
	return r, tx.Commit()
}

func (s *Store) List(ctx context.Context) ([]activity.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, duration_text FROM activities ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Record
	for rows.Next() {
		var r activity.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.DurationText); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
