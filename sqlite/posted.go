package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mkowalik/docgram"
)

// Compile-time interface verification.
var _ docgram.PostedStore = (*PostedService)(nil)

// PostedService implements docgram.PostedStore using SQLite.
type PostedService struct {
	db *DB
}

// NewPostedService creates a new PostedService.
func NewPostedService(db *DB) *PostedService {
	return &PostedService{db: db}
}

// Count returns the number of posted identities.
func (s *PostedService) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posted`).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Contains reports whether the identity has already been published.
func (s *PostedService) Contains(ctx context.Context, identity string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM posted WHERE identity = ?
	`, identity).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Commit durably records the identity. Re-committing an existing identity
// is a no-op, so a crash between publish and commit on a previous run can
// be reconciled by simply committing again.
func (s *PostedService) Commit(ctx context.Context, identity string, locator string) error {
	if identity == "" {
		return docgram.Errorf(docgram.EINVALID, "identity required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posted (identity, locator, posted_at)
		VALUES (?, ?, ?)
		ON CONFLICT (identity) DO NOTHING
	`, identity, locator, time.Now().UTC().Format(time.RFC3339))

	return err
}
