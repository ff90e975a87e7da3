package dashboard

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myrjola/boxlevels/internal/errors"
	"github.com/myrjola/boxlevels/internal/leveling"
)

var (
	// ErrNotFound is returned when a test entry, an exercise, a benchmark, an athlete or a workout does not exist.
	ErrNotFound = errors.NewSentinel("not found")
	// ErrForbidden is returned when the actor in the context may not perform the operation.
	ErrForbidden = errors.NewSentinel("forbidden")
	// ErrInvalidEntry is returned when submitted data cannot be stored.
	ErrInvalidEntry = errors.NewSentinel("invalid entry")
)

// NewTest is a test result submitted by an athlete or a coach on behalf of an athlete.
// Kind may be left empty to use the kind of the exercise definition. Gender and BodyWeight may be left empty to
// use the athlete's profile.
type NewTest struct {
	Athlete    string
	Exercise   string
	RawValue   string
	Kind       leveling.ValueKind
	BodyWeight *float64
	Gender     leveling.Gender
	Date       time.Time
}

// StoredEntry is a test log row together with the fields derived when it was appended.
type StoredEntry struct {
	leveling.TestEntry
	RelativeStrength *float64
}

// Analysis is the feedback shown right after a test is saved.
type Analysis struct {
	Entry    StoredEntry
	Result   leveling.Result
	Previous *leveling.EntryResult
	Progress leveling.Progress
	RetestOn time.Time
}

// SeedSummary reports what an import stored and what it skipped.
type SeedSummary struct {
	Exercises         int
	Benchmarks        int
	Athletes          int
	Workouts          int
	SkippedDuplicates int
}

// Athlete is the profile of a box member.
type Athlete struct {
	Name       string
	Gender     *leveling.Gender
	BodyWeight *float64
}

// WorkoutScore is how a workout of the day is scored.
type WorkoutScore string

const (
	ScoreWeight   WorkoutScore = "weight"
	ScoreReps     WorkoutScore = "reps"
	ScoreTime     WorkoutScore = "time"
	ScoreCalories WorkoutScore = "calories"
	ScoreMeters   WorkoutScore = "meters"
	ScoreRounds   WorkoutScore = "rounds"
	ScoreOther    WorkoutScore = "other"
)

var scoreLabels = map[string]WorkoutScore{
	"weight": ScoreWeight, "kg": ScoreWeight,
	"reps": ScoreReps,
	"time": ScoreTime, "tempo": ScoreTime,
	"calories": ScoreCalories, "calorie": ScoreCalories,
	"meters": ScoreMeters, "metri": ScoreMeters,
	"rounds": ScoreRounds, "round": ScoreRounds,
	"other": ScoreOther, "altro": ScoreOther,
}

// ParseWorkoutScore maps an English or coaching sheet label to a WorkoutScore. Labels are matched case-insensitively.
func ParseWorkoutScore(label string) (WorkoutScore, bool) {
	score, ok := scoreLabels[strings.ToLower(strings.TrimSpace(label))]
	return score, ok
}

// Workout is one entry of the workout of the day calendar. Each level has its own version of the workout.
type Workout struct {
	ID           uuid.UUID
	Name         string
	Title        string
	Description  string
	Date         time.Time
	Beginner     string
	Intermediate string
	Advanced     string
	Exercises    []string
	Score        WorkoutScore
}

// workoutID derives a stable id from the date and the canonical name so that importing the same calendar twice
// updates instead of duplicating.
func workoutID(name string, date time.Time) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(date.Format(time.DateOnly)+"/"+leveling.Normalize(name)))
}

// SplitExercises parses a comma separated exercise list and drops empty items.
func SplitExercises(list string) []string {
	var exercises []string
	for item := range strings.SplitSeq(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			exercises = append(exercises, item)
		}
	}
	return exercises
}
