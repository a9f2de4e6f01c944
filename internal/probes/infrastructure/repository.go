package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"sysprobe/internal/probes/domain"
)

var _ domain.Repository = (*Repository)(nil)

// Repository mirrors the latest snapshot entry of every probe into SQLite,
// so display layers running in another process can read it.
type Repository struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// NewRepository creates a new SQLite snapshot repository
func NewRepository(readDB *sql.DB, writeDB *sql.DB) *Repository {
	return &Repository{
		readDB:  readDB,
		writeDB: writeDB,
	}
}

const upsertEntry = `insert into snapshot (name, probe_id, type, value, updated_at, runs, failures, last_error)
values (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8)
on conflict (name) do update set
    probe_id = excluded.probe_id,
    type = excluded.type,
    value = excluded.value,
    updated_at = excluded.updated_at,
    runs = excluded.runs,
    failures = excluded.failures,
    last_error = excluded.last_error`

// SaveEntry replaces the stored entry of a probe
func (r *Repository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	value, err := json.Marshal(entry.Value)
	if err != nil {
		return fmt.Errorf("failed to encode value of %s: %w", entry.Name, err)
	}

	var updatedAt int64
	if !entry.UpdatedAt.IsZero() {
		updatedAt = entry.UpdatedAt.UnixMilli()
	}

	_, err = r.writeDB.ExecContext(ctx, upsertEntry,
		entry.Name,
		entry.ProbeID,
		entry.Type,
		string(value),
		updatedAt,
		entry.Runs,
		entry.Failures,
		entry.LastError,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot entry %s: %w", entry.Name, err)
	}
	return nil
}

// DeleteEntry removes the stored entry of a probe
func (r *Repository) DeleteEntry(ctx context.Context, name string) error {
	_, err := r.writeDB.ExecContext(ctx, `delete from snapshot where name = ?1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot entry %s: %w", name, err)
	}
	return nil
}

// ClearEntries removes every stored entry. Called on start so entries of
// probes from a previous run do not linger.
func (r *Repository) ClearEntries(ctx context.Context) error {
	_, err := r.writeDB.ExecContext(ctx, `delete from snapshot`)
	return err
}

// ListEntries returns every stored entry sorted by name
func (r *Repository) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	rows, err := r.readDB.QueryContext(ctx, `select name, probe_id, type, value, updated_at, runs, failures, last_error
from snapshot
order by name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var (
			entry     domain.Entry
			value     string
			updatedAt int64
		)
		if err := rows.Scan(
			&entry.Name,
			&entry.ProbeID,
			&entry.Type,
			&value,
			&updatedAt,
			&entry.Runs,
			&entry.Failures,
			&entry.LastError,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(value), &entry.Value); err != nil {
			return nil, fmt.Errorf("failed to decode value of %s: %w", entry.Name, err)
		}
		if updatedAt != 0 {
			entry.UpdatedAt = time.UnixMilli(updatedAt)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
