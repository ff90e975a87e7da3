package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// sqliteWorkoutRepository implements WorkoutRepository.
type sqliteWorkoutRepository struct {
	baseRepository
}

// ListWorkouts returns the workouts scheduled between from and to inclusive, ordered by date and name. A zero
// bound leaves that side open.
func (r *sqliteWorkoutRepository) ListWorkouts(ctx context.Context, from, to time.Time) (_ []Workout, err error) {
	var (
		where []string
		args  []any
	)
	if !from.IsZero() {
		where = append(where, "scheduled_on >= ?")
		args = append(args, from.Format(dateFormat))
	}
	if !to.IsZero() {
		where = append(where, "scheduled_on <= ?")
		args = append(args, to.Format(dateFormat))
	}
	query := `
		SELECT id, name, title, description, scheduled_on, beginner, intermediate, advanced, exercises, score
		FROM workouts`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY scheduled_on, name"

	rows, err := r.db.ReadOnly.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var workouts []Workout
	for rows.Next() {
		var (
			w         Workout
			id        string
			date      string
			exercises string
		)
		if err = rows.Scan(&id, &w.Name, &w.Title, &w.Description, &date, &w.Beginner, &w.Intermediate,
			&w.Advanced, &exercises, &w.Score); err != nil {
			return nil, fmt.Errorf("scan workout: %w", err)
		}
		if w.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse workout id %q: %w", id, err)
		}
		if w.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, fmt.Errorf("parse workout date %q: %w", date, err)
		}
		w.Exercises = SplitExercises(exercises)
		workouts = append(workouts, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return workouts, nil
}

// SaveWorkout creates or updates the workout with the same id.
func (r *sqliteWorkoutRepository) SaveWorkout(ctx context.Context, workout Workout) error {
	if err := upsertWorkout(ctx, r.db.ReadWrite, workout); err != nil {
		return fmt.Errorf("upsert workout: %w", err)
	}
	return nil
}

// DeleteWorkout removes a workout or returns ErrNotFound.
func (r *sqliteWorkoutRepository) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
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

func upsertWorkout(ctx context.Context, db execer, w Workout) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO workouts (id, name, title, description, scheduled_on, beginner, intermediate, advanced,
		                      exercises, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			title = excluded.title,
			description = excluded.description,
			scheduled_on = excluded.scheduled_on,
			beginner = excluded.beginner,
			intermediate = excluded.intermediate,
			advanced = excluded.advanced,
			exercises = excluded.exercises,
			score = excluded.score`,
		w.ID.String(), w.Name, w.Title, w.Description, w.Date.Format(dateFormat), w.Beginner, w.Intermediate,
		w.Advanced, strings.Join(w.Exercises, ", "), string(w.Score))
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	return nil
}
