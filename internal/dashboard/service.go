// Package dashboard is the coaching dashboard facade: it loads the reference tables and the test log from a
// [Repository], classifies entries with the leveling engine and enforces who may change what.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/myrjola/boxlevels/internal/contexthelpers"
	"github.com/myrjola/boxlevels/internal/errors"
	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/logging"
	"github.com/myrjola/boxlevels/internal/ptr"
)

// Service handles the business logic of the dashboard. It holds no cached state; every call reads the
// repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new dashboard service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// tables is a snapshot of everything the engine needs.
type tables struct {
	exercises  []leveling.ExerciseDefinition
	benchmarks []leveling.BenchmarkRow
	log        []StoredEntry
}

func (t tables) entries() []leveling.TestEntry {
	entries := make([]leveling.TestEntry, len(t.log))
	for i, e := range t.log {
		entries[i] = e.TestEntry
	}
	return entries
}

// loadTables reads the three tables concurrently from the repository.
func (s *Service) loadTables(ctx context.Context) (tables, error) {
	var t tables
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if t.exercises, err = s.repo.ListExercises(ctx); err != nil {
			return fmt.Errorf("list exercises: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if t.benchmarks, err = s.repo.ListBenchmarks(ctx); err != nil {
			return fmt.Errorf("list benchmarks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if t.log, err = s.repo.ListEntries(ctx); err != nil {
			return fmt.Errorf("list test entries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return tables{}, errors.Wrap(err, "load tables")
	}

	for _, key := range leveling.DuplicateBenchmarks(t.benchmarks) {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "duplicate benchmark rows, using the first",
			slog.String("exercise", key.Exercise), slog.String("gender", string(key.Gender)))
	}
	return t, nil
}

// classify classifies entry and logs data-quality problems.
func (s *Service) classify(ctx context.Context, entry leveling.TestEntry, t tables) leveling.Result {
	result := leveling.ClassifyEntry(entry, t.exercises, t.benchmarks)
	if result.Reason == leveling.ReasonKindMismatch {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "test entry kind differs from exercise definition",
			slog.String("entry", entry.ID.String()),
			slog.String("exercise", entry.Exercise),
			slog.String("kind", string(entry.Kind)))
	}
	return result
}

// withProfile fills a missing gender or body weight from the athlete's profile. Athletes without a profile are
// left as submitted.
func (s *Service) withProfile(ctx context.Context, test NewTest) (NewTest, error) {
	if test.Gender != "" && test.BodyWeight != nil {
		return test, nil
	}
	athlete, err := s.repo.GetAthlete(ctx, test.Athlete)
	if errors.Is(err, ErrNotFound) {
		return test, nil
	}
	if err != nil {
		return test, errors.Wrap(err, "get athlete", slog.String("athlete", test.Athlete))
	}
	if test.Gender == "" && athlete.Gender != nil {
		test.Gender = *athlete.Gender
	}
	if test.BodyWeight == nil && athlete.BodyWeight != nil {
		test.BodyWeight = ptr.Ref(*athlete.BodyWeight)
	}
	return test, nil
}

// RecordTest validates and appends a test to the log and returns the feedback shown after saving: the
// classification, the progress since the previous test of the same exercise and the suggested retest date.
// Athletes may only record their own tests. A missing gender or body weight is taken from the athlete's profile.
func (s *Service) RecordTest(ctx context.Context, test NewTest) (Analysis, error) {
	if leveling.Normalize(test.Athlete) == "" || leveling.Normalize(test.Exercise) == "" {
		return Analysis{}, fmt.Errorf("%w: athlete and exercise are required", ErrInvalidEntry)
	}
	test, err := s.withProfile(ctx, test)
	if err != nil {
		return Analysis{}, errors.Wrap(err, "record test")
	}
	gender, ok := leveling.ParseGender(string(test.Gender))
	if !ok {
		return Analysis{}, fmt.Errorf("%w: unknown gender %q", ErrInvalidEntry, test.Gender)
	}
	test.Gender = gender
	if test.Date.IsZero() {
		return Analysis{}, fmt.Errorf("%w: test date is required", ErrInvalidEntry)
	}
	if err = authorize(ctx, test.Athlete); err != nil {
		return Analysis{}, errors.Wrap(err, "record test", slog.String("athlete", test.Athlete))
	}

	t, err := s.loadTables(ctx)
	if err != nil {
		return Analysis{}, errors.Wrap(err, "record test")
	}
	kind := test.Kind
	if kind == "" {
		def, ok := leveling.FindExercise(test.Exercise, t.exercises)
		if !ok {
			return Analysis{}, fmt.Errorf("%w: unknown exercise %q", ErrInvalidEntry, test.Exercise)
		}
		kind = def.Kind
	}

	entry := StoredEntry{
		TestEntry: leveling.TestEntry{
			ID:         uuid.New(),
			Athlete:    test.Athlete,
			Exercise:   test.Exercise,
			RawValue:   test.RawValue,
			Kind:       kind,
			BodyWeight: test.BodyWeight,
			Gender:     test.Gender,
			Date:       test.Date,
		},
		RelativeStrength: nil,
	}
	if kind == leveling.KindWeightRelative {
		entry.RelativeStrength = leveling.RelativeStrength(entry.RawValue, entry.BodyWeight)
	}
	ctx = logging.WithAttrs(ctx, slog.String("entry", entry.ID.String()))
	if err = s.repo.AppendEntry(ctx, entry); err != nil {
		return Analysis{}, errors.Wrap(err, "append test", slog.String("athlete", entry.Athlete))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "recorded test",
		slog.String("athlete", entry.Athlete), slog.String("exercise", entry.Exercise))

	analysis := Analysis{
		Entry:    entry,
		Result:   s.classify(ctx, entry.TestEntry, t),
		Previous: nil,
		Progress: leveling.Progress{PercentChange: nil, TierIncreased: false},
		RetestOn: leveling.RetestDate(entry.Date),
	}
	if previous, ok := leveling.PreviousEntry(entry.TestEntry, t.entries()); ok {
		previousResult := s.classify(ctx, previous, t)
		analysis.Previous = &leveling.EntryResult{Entry: previous, Result: previousResult}
		analysis.Progress = leveling.CompareEntries(analysis.Result, previousResult, entry.Kind)
	}
	return analysis, nil
}

// Preview classifies a test without storing it. Kind defaults to the kind of the exercise definition, gender and
// body weight default to the athlete's profile and sheet gender labels are accepted.
func (s *Service) Preview(ctx context.Context, test NewTest) (leveling.Result, error) {
	test, err := s.withProfile(ctx, test)
	if err != nil {
		return leveling.Result{}, errors.Wrap(err, "preview")
	}
	t, err := s.loadTables(ctx)
	if err != nil {
		return leveling.Result{}, errors.Wrap(err, "preview")
	}
	entry := leveling.TestEntry{
		ID:         uuid.Nil,
		Athlete:    test.Athlete,
		Exercise:   test.Exercise,
		RawValue:   test.RawValue,
		Kind:       test.Kind,
		BodyWeight: test.BodyWeight,
		Gender:     test.Gender,
		Date:       test.Date,
	}
	if gender, ok := leveling.ParseGender(string(test.Gender)); ok {
		entry.Gender = gender
	}
	if entry.Kind == "" {
		if def, ok := leveling.FindExercise(test.Exercise, t.exercises); ok {
			entry.Kind = def.Kind
		}
	}
	return s.classify(ctx, entry, t), nil
}

// DeleteTest soft deletes a test. Coaches may delete any test and athletes only their own.
func (s *Service) DeleteTest(ctx context.Context, id uuid.UUID) error {
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return errors.Wrap(err, "get test", slog.String("entry", id.String()))
	}
	if err = authorize(ctx, entry.Athlete); err != nil {
		return errors.Wrap(err, "delete test", slog.String("entry", id.String()))
	}
	if err = s.repo.DeleteEntry(ctx, id, s.now()); err != nil {
		return errors.Wrap(err, "delete test", slog.String("entry", id.String()))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "deleted test", slog.String("entry", id.String()))
	return nil
}

// History returns every live test of athlete with its classification, newest first.
func (s *Service) History(ctx context.Context, athlete string) ([]leveling.EntryResult, error) {
	t, err := s.loadTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "history")
	}
	var history []leveling.EntryResult
	for i := len(t.log) - 1; i >= 0; i-- {
		entry := t.log[i].TestEntry
		if leveling.SameName(entry.Athlete, athlete) {
			history = append(history, leveling.EntryResult{Entry: entry, Result: s.classify(ctx, entry, t)})
		}
	}
	// Stable so that tests of the same day stay newest first.
	slices.SortStableFunc(history, func(a, b leveling.EntryResult) int {
		return b.Entry.Date.Compare(a.Entry.Date)
	})
	return history, nil
}

// Latest returns the latest test of athlete for every exercise with its classification.
func (s *Service) Latest(ctx context.Context, athlete string) ([]leveling.EntryResult, error) {
	t, err := s.loadTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "latest")
	}
	latest := leveling.LatestPerExercise(athlete, t.entries())
	results := make([]leveling.EntryResult, len(latest))
	for i, entry := range latest {
		results[i] = leveling.EntryResult{Entry: entry, Result: s.classify(ctx, entry, t)}
	}
	return results, nil
}

// Leaderboard ranks the best test of every athlete for exercise, optionally for one gender only.
func (s *Service) Leaderboard(ctx context.Context, exercise string, gender *leveling.Gender) ([]leveling.Ranking, error) {
	t, err := s.loadTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "leaderboard")
	}
	if _, ok := leveling.FindExercise(exercise, t.exercises); !ok {
		return nil, errors.Wrap(ErrNotFound, "leaderboard", slog.String("exercise", exercise))
	}
	return leveling.Leaderboard(exercise, gender, t.entries(), t.exercises, t.benchmarks), nil
}

// CategoryLeaderboard ranks the athletes of a category by their summed personal bests, optionally for one gender
// only.
func (s *Service) CategoryLeaderboard(
	ctx context.Context,
	category string,
	gender *leveling.Gender,
) (leveling.CategoryBoard, error) {
	t, err := s.loadTables(ctx)
	if err != nil {
		return leveling.CategoryBoard{}, errors.Wrap(err, "category leaderboard")
	}
	key := leveling.Normalize(category)
	if !slices.ContainsFunc(t.exercises, func(def leveling.ExerciseDefinition) bool {
		return def.CategoryKey() == key
	}) {
		return leveling.CategoryBoard{}, errors.Wrap(ErrNotFound, "category leaderboard",
			slog.String("category", category))
	}
	return leveling.CategoryLeaderboard(category, gender, t.entries(), t.exercises, t.benchmarks), nil
}

// Profile averages the achieved tier per category for athlete, or for the whole box when athlete is empty.
func (s *Service) Profile(ctx context.Context, athlete string) ([]leveling.CategoryLevel, error) {
	t, err := s.loadTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "profile")
	}
	return leveling.CategoryProfile(athlete, t.entries(), t.exercises, t.benchmarks), nil
}

// Balance counts the tests of every athlete per category.
func (s *Service) Balance(ctx context.Context) (leveling.BalanceTable, error) {
	t, err := s.loadTables(ctx)
	if err != nil {
		return leveling.BalanceTable{}, errors.Wrap(err, "balance")
	}
	return leveling.Balance(t.entries(), t.exercises), nil
}

// Exercises returns the exercise table.
func (s *Service) Exercises(ctx context.Context) ([]leveling.ExerciseDefinition, error) {
	exercises, err := s.repo.ListExercises(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list exercises")
	}
	return exercises, nil
}

// SaveExercise creates or updates an exercise definition. Only coaches may edit reference data.
func (s *Service) SaveExercise(ctx context.Context, def leveling.ExerciseDefinition) error {
	if !contexthelpers.IsCoach(ctx) {
		return errors.Wrap(ErrForbidden, "save exercise")
	}
	if def.Key() == "" {
		return fmt.Errorf("%w: exercise name is required", ErrInvalidEntry)
	}
	kind, known := leveling.ParseValueKind(string(def.Kind))
	if !known {
		return fmt.Errorf("%w: unknown value kind %q", ErrInvalidEntry, def.Kind)
	}
	def.Kind = kind
	if err := s.repo.SaveExercise(ctx, def); err != nil {
		return errors.Wrap(err, "save exercise", slog.String("exercise", def.Name))
	}
	return nil
}

// SaveBenchmark creates or updates the benchmark row of an exercise and gender. Only coaches may edit reference
// data. Thresholds that do not convert for the exercise's kind are stored but logged because they will leave
// their tier undefined.
func (s *Service) SaveBenchmark(ctx context.Context, row leveling.BenchmarkRow) error {
	if !contexthelpers.IsCoach(ctx) {
		return errors.Wrap(ErrForbidden, "save benchmark")
	}
	if leveling.Normalize(row.Exercise) == "" {
		return fmt.Errorf("%w: benchmark exercise is required", ErrInvalidEntry)
	}
	gender, ok := leveling.ParseGender(string(row.Gender))
	if !ok {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidEntry, row.Gender)
	}
	row.Gender = gender

	exercises, err := s.repo.ListExercises(ctx)
	if err != nil {
		return errors.Wrap(err, "save benchmark")
	}
	def, ok := leveling.FindExercise(row.Exercise, exercises)
	if !ok {
		return errors.Wrap(ErrNotFound, "save benchmark", slog.String("exercise", row.Exercise))
	}
	th := leveling.ConvertThresholds(row, def.Kind)
	for _, tier := range leveling.Tiers() {
		if raw, present := row.Thresholds[tier]; present {
			if _, defined := th.Get(tier); !defined {
				s.logger.LogAttrs(ctx, slog.LevelWarn, "benchmark threshold does not convert",
					slog.String("exercise", row.Exercise),
					slog.String("tier", tier.String()),
					slog.String("threshold", raw))
			}
		}
	}

	if err = s.repo.SaveBenchmark(ctx, row); err != nil {
		return errors.Wrap(err, "save benchmark", slog.String("exercise", row.Exercise))
	}
	return nil
}

// ImportSeed loads exercises, benchmarks, athlete profiles and workouts from a YAML seed document in one transaction. Only coaches may edit
// reference data.
func (s *Service) ImportSeed(ctx context.Context, r io.Reader) (SeedSummary, error) {
	if !contexthelpers.IsCoach(ctx) {
		return SeedSummary{}, errors.Wrap(ErrForbidden, "import seed")
	}
	parsed, err := parseSeed(r)
	if err != nil {
		return SeedSummary{}, errors.Wrap(err, "import seed")
	}
	for _, name := range parsed.unknownKinds {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "unknown value kind, using generic numeric",
			slog.String("exercise", name))
	}
	for _, key := range parsed.duplicates {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "duplicate benchmark rows in seed, keeping the first",
			slog.String("exercise", key.Exercise), slog.String("gender", string(key.Gender)))
	}

	ref := Reference{
		Exercises:  parsed.exercises,
		Benchmarks: parsed.benchmarks,
		Athletes:   parsed.athletes,
		Workouts:   parsed.workouts,
	}
	if err = s.repo.ImportReference(ctx, ref); err != nil {
		return SeedSummary{}, errors.Wrap(err, "import seed")
	}
	summary := SeedSummary{
		Exercises:         len(parsed.exercises),
		Benchmarks:        len(parsed.benchmarks),
		Athletes:          len(parsed.athletes),
		Workouts:          len(parsed.workouts),
		SkippedDuplicates: parsed.skipped,
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "imported seed",
		slog.Int("exercises", summary.Exercises),
		slog.Int("benchmarks", summary.Benchmarks),
		slog.Int("athletes", summary.Athletes),
		slog.Int("workouts", summary.Workouts),
		slog.Int("skipped", summary.SkippedDuplicates))
	return summary, nil
}

// Athletes returns every athlete profile. Only coaches may read profiles.
func (s *Service) Athletes(ctx context.Context) ([]Athlete, error) {
	if !contexthelpers.IsCoach(ctx) {
		return nil, errors.Wrap(ErrForbidden, "list athletes")
	}
	athletes, err := s.repo.ListAthletes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list athletes")
	}
	return athletes, nil
}

// SaveAthlete creates or updates an athlete profile. Only coaches may edit profiles.
func (s *Service) SaveAthlete(ctx context.Context, athlete Athlete) error {
	if !contexthelpers.IsCoach(ctx) {
		return errors.Wrap(ErrForbidden, "save athlete")
	}
	athlete, err := validateAthlete(athlete)
	if err != nil {
		return err
	}
	if err = s.repo.SaveAthlete(ctx, athlete); err != nil {
		return errors.Wrap(err, "save athlete", slog.String("athlete", athlete.Name))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "saved athlete", slog.String("athlete", athlete.Name))
	return nil
}

// Workouts returns the workouts scheduled between from and to inclusive. A zero bound leaves that side open.
func (s *Service) Workouts(ctx context.Context, from, to time.Time) ([]Workout, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: workout range ends before it starts", ErrInvalidEntry)
	}
	workouts, err := s.repo.ListWorkouts(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "list workouts")
	}
	return workouts, nil
}

// SaveWorkout creates or updates a workout of the day and returns it as stored. A workout without an id gets one
// derived from its date and name. Only coaches may edit the calendar.
func (s *Service) SaveWorkout(ctx context.Context, workout Workout) (Workout, error) {
	if !contexthelpers.IsCoach(ctx) {
		return Workout{}, errors.Wrap(ErrForbidden, "save workout")
	}
	workout, err := validateWorkout(workout)
	if err != nil {
		return Workout{}, err
	}
	if workout.ID == uuid.Nil {
		workout.ID = workoutID(workout.Name, workout.Date)
	}
	if err = s.repo.SaveWorkout(ctx, workout); err != nil {
		return Workout{}, errors.Wrap(err, "save workout", slog.String("workout", workout.Name))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "saved workout",
		slog.String("workout", workout.ID.String()), slog.String("name", workout.Name))
	return workout, nil
}

// DeleteWorkout removes a workout of the day. Only coaches may edit the calendar.
func (s *Service) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	if !contexthelpers.IsCoach(ctx) {
		return errors.Wrap(ErrForbidden, "delete workout")
	}
	if err := s.repo.DeleteWorkout(ctx, id); err != nil {
		return errors.Wrap(err, "delete workout", slog.String("workout", id.String()))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "deleted workout", slog.String("workout", id.String()))
	return nil
}

// authorize permits coaches and the athlete named athlete.
func authorize(ctx context.Context, athlete string) error {
	actor, ok := contexthelpers.ActorFrom(ctx)
	if !ok {
		return ErrForbidden
	}
	if actor.Role == contexthelpers.RoleCoach || leveling.SameName(actor.Name, athlete) {
		return nil
	}
	return ErrForbidden
}
