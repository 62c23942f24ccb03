// Package postgres implements the catalog store on top of sqlx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"log/slog"

	"studybot/catalog"
	"studybot/core/logger"
)

const (
	queryTimeout = 3 * time.Second

	// uniqueViolation is the Postgres error code for duplicate keys.
	uniqueViolation = "23505"
)

// Store persists catalog entries in Postgres. Every operation is a single
// statement executed with a per-call timeout.
type Store struct {
	db *sqlx.DB
}

// New wraps an established connection pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, queryTimeout)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// Add inserts a new entry. A name collision maps to catalog.ErrAlreadyExists.
func (s *Store) Add(ctx context.Context, cat catalog.Category, e catalog.Entity) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var query string
	var args []any
	if cat.HasSurrogateID {
		query = fmt.Sprintf("INSERT INTO %s (name, description, link) VALUES ($1, $2, $3)", cat.Table)
		args = []any{e.Name, e.Description, e.Link}
	} else {
		query = fmt.Sprintf("INSERT INTO %s (term, definition) VALUES ($1, $2)", cat.Table)
		args = []any{e.Name, e.Description}
	}

	start := time.Now()
	_, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("add %s %q: %w", cat.Key, e.Name, catalog.ErrAlreadyExists)
		}
		logger.Error(ctx, "service.catalog", "store.add",
			slog.String("category", cat.Key),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("add %s: %w", cat.Key, err)
	}
	return nil
}

// DeleteByID removes an entry by its serial id. Zero affected rows map to
// catalog.ErrNotFound so a second admin pressing the same button gets a
// non-fatal outcome.
func (s *Store) DeleteByID(ctx context.Context, cat catalog.Category, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", cat.Table)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error(ctx, "service.catalog", "store.delete",
			slog.String("category", cat.Key),
			slog.Int64("item_id", id),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("delete %s %d: %w", cat.Key, id, err)
	}
	return checkAffected(res, cat.Key)
}

// DeleteByName removes an entry by name; used for terms.
func (s *Store) DeleteByName(ctx context.Context, cat catalog.Category, name string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	column := "name"
	if !cat.HasSurrogateID {
		column = "term"
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", cat.Table, column)
	res, err := s.db.ExecContext(ctx, query, name)
	if err != nil {
		logger.Error(ctx, "service.catalog", "store.delete",
			slog.String("category", cat.Key),
			slog.String("term", name),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("delete %s %q: %w", cat.Key, name, err)
	}
	return checkAffected(res, cat.Key)
}

// UpdateByID rewrites the entry with the given id.
func (s *Store) UpdateByID(ctx context.Context, cat catalog.Category, e catalog.Entity) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE %s SET name = $1, description = $2, link = $3 WHERE id = $4", cat.Table)
	res, err := s.db.ExecContext(ctx, query, e.Name, e.Description, e.Link, e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update %s %d: %w", cat.Key, e.ID, catalog.ErrAlreadyExists)
		}
		return fmt.Errorf("update %s %d: %w", cat.Key, e.ID, err)
	}
	return checkAffected(res, cat.Key)
}

// UpdateByName rewrites the entry with the given name; used for terms.
func (s *Store) UpdateByName(ctx context.Context, cat catalog.Category, name string, e catalog.Entity) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var query string
	var args []any
	if cat.HasSurrogateID {
		query = fmt.Sprintf("UPDATE %s SET name = $1, description = $2, link = $3 WHERE name = $4", cat.Table)
		args = []any{e.Name, e.Description, e.Link, name}
	} else {
		query = fmt.Sprintf("UPDATE %s SET term = $1, definition = $2 WHERE term = $3", cat.Table)
		args = []any{e.Name, e.Description, name}
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update %s %q: %w", cat.Key, name, catalog.ErrAlreadyExists)
		}
		return fmt.Errorf("update %s %q: %w", cat.Key, name, err)
	}
	return checkAffected(res, cat.Key)
}

// ListPage returns one page of entries in stable order.
func (s *Store) ListPage(ctx context.Context, cat catalog.Category, offset, limit int) ([]catalog.Entity, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var query string
	if cat.HasSurrogateID {
		query = fmt.Sprintf("SELECT id, name, description, link FROM %s ORDER BY id LIMIT $1 OFFSET $2", cat.Table)
	} else {
		query = fmt.Sprintf("SELECT term AS name, definition AS description FROM %s ORDER BY term LIMIT $1 OFFSET $2", cat.Table)
	}

	var out []catalog.Entity
	if err := s.db.SelectContext(ctx, &out, query, limit, offset); err != nil {
		logger.Error(ctx, "service.catalog", "store.list",
			slog.String("category", cat.Key),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("list %s: %w", cat.Key, err)
	}
	return out, nil
}

// ListAll returns every entry of a category in stable order.
func (s *Store) ListAll(ctx context.Context, cat catalog.Category) ([]catalog.Entity, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var query string
	if cat.HasSurrogateID {
		query = fmt.Sprintf("SELECT id, name, description, link FROM %s ORDER BY id", cat.Table)
	} else {
		query = fmt.Sprintf("SELECT term AS name, definition AS description FROM %s ORDER BY term", cat.Table)
	}

	var out []catalog.Entity
	if err := s.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", cat.Key, err)
	}
	return out, nil
}

// Count returns the number of entries in a category.
func (s *Store) Count(ctx context.Context, cat catalog.Category) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", cat.Table)
	if err := s.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("count %s: %w", cat.Key, err)
	}
	return n, nil
}

func checkAffected(res interface{ RowsAffected() (int64, error) }, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", key, catalog.ErrNotFound)
	}
	return nil
}
