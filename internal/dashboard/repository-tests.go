package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/ptr"
)

// sqliteTestLogRepository implements TestLogRepository.
type sqliteTestLogRepository struct {
	baseRepository
}

const selectEntries = `
	SELECT id, athlete, exercise, raw_value, value_kind, body_weight, relative_strength, gender, tested_on
	FROM test_entries`

// ListEntries returns the live entries in the order they were logged.
func (r *sqliteTestLogRepository) ListEntries(ctx context.Context) (_ []StoredEntry, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, selectEntries+`
		WHERE deleted_at IS NULL
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query test entries: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var entries []StoredEntry
	for rows.Next() {
		var entry StoredEntry
		if entry, err = scanEntry(rows); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

// GetEntry returns a live entry or ErrNotFound.
func (r *sqliteTestLogRepository) GetEntry(ctx context.Context, id uuid.UUID) (StoredEntry, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, selectEntries+`
		WHERE id = ? AND deleted_at IS NULL`, id.String())
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredEntry{}, ErrNotFound
	}
	if err != nil {
		return StoredEntry{}, err
	}
	return entry, nil
}

// AppendEntry adds entry to the end of the log.
func (r *sqliteTestLogRepository) AppendEntry(ctx context.Context, entry StoredEntry) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO test_entries (id, athlete, canonical_athlete, exercise, canonical_exercise, raw_value,
		                          value_kind, body_weight, relative_strength, gender, tested_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(),
		entry.Athlete,
		leveling.Normalize(entry.Athlete),
		entry.Exercise,
		leveling.Normalize(entry.Exercise),
		entry.RawValue,
		string(entry.Kind),
		nullFloat(entry.BodyWeight),
		nullFloat(entry.RelativeStrength),
		string(entry.Gender),
		entry.Date.Format(dateFormat),
	)
	if err != nil {
		return fmt.Errorf("insert test entry: %w", err)
	}
	return nil
}

// DeleteEntry soft deletes a live entry or returns ErrNotFound.
func (r *sqliteTestLogRepository) DeleteEntry(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE test_entries
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		at.UTC().Format(timestampFormat), id.String())
	if err != nil {
		return fmt.Errorf("soft delete test entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (StoredEntry, error) {
	var (
		entry            StoredEntry
		id               string
		bodyWeight       sql.NullFloat64
		relativeStrength sql.NullFloat64
		testedOn         string
	)
	if err := s.Scan(&id, &entry.Athlete, &entry.Exercise, &entry.RawValue, &entry.Kind, &bodyWeight,
		&relativeStrength, &entry.Gender, &testedOn); err != nil {
		return StoredEntry{}, fmt.Errorf("scan test entry: %w", err)
	}

	var err error
	if entry.ID, err = uuid.Parse(id); err != nil {
		return StoredEntry{}, fmt.Errorf("parse test entry id %q: %w", id, err)
	}
	if entry.Date, err = time.Parse(dateFormat, testedOn); err != nil {
		return StoredEntry{}, fmt.Errorf("parse test date %q: %w", testedOn, err)
	}
	if bodyWeight.Valid {
		entry.BodyWeight = ptr.Ref(bodyWeight.Float64)
	}
	if relativeStrength.Valid {
		entry.RelativeStrength = ptr.Ref(relativeStrength.Float64)
	}
	return entry, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: ptr.ValueOr(v, 0), Valid: v != nil}
}
