package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/sqlite"
)

const (
	dateFormat      = time.DateOnly
	timestampFormat = "2006-01-02T15:04:05.000Z"
)

// ExerciseRepository stores the exercise table.
type ExerciseRepository interface {
	// ListExercises returns the exercise table in coach defined order.
	ListExercises(ctx context.Context) ([]leveling.ExerciseDefinition, error)
	// SaveExercise creates or updates the exercise with the same canonical name.
	SaveExercise(ctx context.Context, def leveling.ExerciseDefinition) error
}

// BenchmarkRepository stores the benchmark table.
type BenchmarkRepository interface {
	ListBenchmarks(ctx context.Context) ([]leveling.BenchmarkRow, error)
	// SaveBenchmark creates or updates the row with the same canonical exercise and gender.
	SaveBenchmark(ctx context.Context, row leveling.BenchmarkRow) error
}

// TestLogRepository stores the append-only test log.
type TestLogRepository interface {
	// ListEntries returns the live entries in the order they were logged.
	ListEntries(ctx context.Context) ([]StoredEntry, error)
	// GetEntry returns a live entry or ErrNotFound.
	GetEntry(ctx context.Context, id uuid.UUID) (StoredEntry, error)
	AppendEntry(ctx context.Context, entry StoredEntry) error
	// DeleteEntry soft deletes a live entry or returns ErrNotFound.
	DeleteEntry(ctx context.Context, id uuid.UUID, at time.Time) error
}

// AthleteRepository stores athlete profiles.
type AthleteRepository interface {
	// ListAthletes returns the profiles ordered by canonical name.
	ListAthletes(ctx context.Context) ([]Athlete, error)
	// GetAthlete returns the profile whose canonical name equals the key of name or ErrNotFound.
	GetAthlete(ctx context.Context, name string) (Athlete, error)
	// SaveAthlete creates or updates the profile with the same canonical name.
	SaveAthlete(ctx context.Context, athlete Athlete) error
}

// WorkoutRepository stores the workout of the day calendar.
type WorkoutRepository interface {
	// ListWorkouts returns the workouts scheduled between from and to inclusive, ordered by date and name. A zero
	// bound leaves that side open.
	ListWorkouts(ctx context.Context, from, to time.Time) ([]Workout, error)
	// SaveWorkout creates or updates the workout with the same id.
	SaveWorkout(ctx context.Context, workout Workout) error
	// DeleteWorkout removes a workout or returns ErrNotFound.
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
}

// Reference is everything a seed document loads.
type Reference struct {
	Exercises  []leveling.ExerciseDefinition
	Benchmarks []leveling.BenchmarkRow
	Athletes   []Athlete
	Workouts   []Workout
}

// Repository is the row store the service reads from and writes derived fields to.
type Repository interface {
	ExerciseRepository
	BenchmarkRepository
	TestLogRepository
	AthleteRepository
	WorkoutRepository
	// ImportReference upserts the reference data in one transaction.
	ImportReference(ctx context.Context, ref Reference) error
}

// baseRepository provides common functionality for the SQLite repositories.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{db: db, logger: logger}
}

// rollback rolls back tx unless it has already been committed.
func (r baseRepository) rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		r.logger.LogAttrs(ctx, slog.LevelError, "failed to rollback transaction", slog.Any("error", err))
	}
}

// SQLiteRepository implements Repository on top of [sqlite.Database].
type SQLiteRepository struct {
	*sqliteExerciseRepository
	*sqliteBenchmarkRepository
	*sqliteTestLogRepository
	*sqliteAthleteRepository
	*sqliteWorkoutRepository
	base baseRepository
}

// NewSQLiteRepository creates a Repository backed by db.
func NewSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *SQLiteRepository {
	base := newBaseRepository(db, logger)
	return &SQLiteRepository{
		sqliteExerciseRepository:  &sqliteExerciseRepository{baseRepository: base},
		sqliteBenchmarkRepository: &sqliteBenchmarkRepository{baseRepository: base},
		sqliteTestLogRepository:   &sqliteTestLogRepository{baseRepository: base},
		sqliteAthleteRepository:   &sqliteAthleteRepository{baseRepository: base},
		sqliteWorkoutRepository:   &sqliteWorkoutRepository{baseRepository: base},
		base:                      base,
	}
}

// ImportReference upserts the reference data in one transaction.
func (r *SQLiteRepository) ImportReference(ctx context.Context, ref Reference) error {
	tx, err := r.base.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer r.base.rollback(ctx, tx)

	for _, def := range ref.Exercises {
		if err = upsertExercise(ctx, tx, def); err != nil {
			return fmt.Errorf("upsert exercise %s: %w", def.Name, err)
		}
	}
	for _, row := range ref.Benchmarks {
		if err = upsertBenchmark(ctx, tx, row); err != nil {
			return fmt.Errorf("upsert benchmark %s/%s: %w", row.Exercise, row.Gender, err)
		}
	}
	for _, athlete := range ref.Athletes {
		if err = upsertAthlete(ctx, tx, athlete); err != nil {
			return fmt.Errorf("upsert athlete %s: %w", athlete.Name, err)
		}
	}
	for _, workout := range ref.Workouts {
		if err = upsertWorkout(ctx, tx, workout); err != nil {
			return fmt.Errorf("upsert workout %s: %w", workout.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
