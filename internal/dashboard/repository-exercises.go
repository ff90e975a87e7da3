package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/myrjola/boxlevels/internal/leveling"
)

// sqliteExerciseRepository implements ExerciseRepository.
type sqliteExerciseRepository struct {
	baseRepository
}

// ListExercises returns the exercise table in coach defined order.
func (r *sqliteExerciseRepository) ListExercises(ctx context.Context) (_ []leveling.ExerciseDefinition, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT name, category, value_kind
		FROM exercises
		ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []leveling.ExerciseDefinition
	for rows.Next() {
		var def leveling.ExerciseDefinition
		if err = rows.Scan(&def.Name, &def.Category, &def.Kind); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, def)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return exercises, nil
}

// SaveExercise creates or updates the exercise with the same canonical name. New exercises are appended to the
// end of the table.
func (r *sqliteExerciseRepository) SaveExercise(ctx context.Context, def leveling.ExerciseDefinition) error {
	if err := upsertExercise(ctx, r.db.ReadWrite, def); err != nil {
		return fmt.Errorf("upsert exercise: %w", err)
	}
	return nil
}

func upsertExercise(ctx context.Context, db execer, def leveling.ExerciseDefinition) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO exercises (name, canonical_name, category, value_kind, position)
		VALUES (?, ?, ?, ?, (SELECT coalesce(max(position), 0) + 1 FROM exercises))
		ON CONFLICT (canonical_name) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			value_kind = excluded.value_kind`,
		def.Name, def.Key(), def.Category, string(def.Kind))
	if err != nil {
		return fmt.Errorf("insert exercise: %w", err)
	}
	return nil
}
