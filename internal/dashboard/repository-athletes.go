package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/ptr"
)

// sqliteAthleteRepository implements AthleteRepository.
type sqliteAthleteRepository struct {
	baseRepository
}

const selectAthletes = `
	SELECT name, gender, body_weight
	FROM athletes`

// ListAthletes returns the profiles ordered by canonical name.
func (r *sqliteAthleteRepository) ListAthletes(ctx context.Context) (_ []Athlete, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, selectAthletes+`
		ORDER BY canonical_name`)
	if err != nil {
		return nil, fmt.Errorf("query athletes: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var athletes []Athlete
	for rows.Next() {
		var athlete Athlete
		if athlete, err = scanAthlete(rows); err != nil {
			return nil, err
		}
		athletes = append(athletes, athlete)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return athletes, nil
}

// GetAthlete returns the profile whose canonical name equals the key of name or ErrNotFound.
func (r *sqliteAthleteRepository) GetAthlete(ctx context.Context, name string) (Athlete, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, selectAthletes+`
		WHERE canonical_name = ?`, leveling.Normalize(name))
	athlete, err := scanAthlete(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Athlete{}, ErrNotFound
	}
	if err != nil {
		return Athlete{}, err
	}
	return athlete, nil
}

// SaveAthlete creates or updates the profile with the same canonical name.
func (r *sqliteAthleteRepository) SaveAthlete(ctx context.Context, athlete Athlete) error {
	if err := upsertAthlete(ctx, r.db.ReadWrite, athlete); err != nil {
		return fmt.Errorf("upsert athlete: %w", err)
	}
	return nil
}

func upsertAthlete(ctx context.Context, db execer, athlete Athlete) error {
	gender := sql.NullString{String: "", Valid: athlete.Gender != nil}
	if athlete.Gender != nil {
		gender.String = string(*athlete.Gender)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO athletes (name, canonical_name, gender, body_weight)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (canonical_name) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender,
			body_weight = excluded.body_weight`,
		athlete.Name, leveling.Normalize(athlete.Name), gender, nullFloat(athlete.BodyWeight))
	if err != nil {
		return fmt.Errorf("insert athlete: %w", err)
	}
	return nil
}

func scanAthlete(s scanner) (Athlete, error) {
	var (
		athlete    Athlete
		gender     sql.NullString
		bodyWeight sql.NullFloat64
	)
	if err := s.Scan(&athlete.Name, &gender, &bodyWeight); err != nil {
		return Athlete{}, fmt.Errorf("scan athlete: %w", err)
	}
	if gender.Valid {
		athlete.Gender = ptr.Ref(leveling.Gender(gender.String))
	}
	if bodyWeight.Valid {
		athlete.BodyWeight = ptr.Ref(bodyWeight.Float64)
	}
	return athlete, nil
}
