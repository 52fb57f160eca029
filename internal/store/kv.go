package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// KVRepo is a string key-value store. The application state layer keeps
// its settings, history and favorites here as JSON documents.
type KVRepo interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

type kvRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().
		Select("value").
		From(builder().Table(kvTable)).
		Where(entsql.EQ("key", key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %q: %w", key, err)
	}
	return value, true, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().
		Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().
		Delete(kvTable).
		Where(entsql.EQ("key", key)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
