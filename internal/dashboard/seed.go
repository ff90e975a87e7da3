package dashboard

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/ptr"
)

// seedFile is the YAML document a coach uses to bulk load reference data. Labels from the coaching sheets such as
// kg_rel, tempo, Maschio or Femmina are accepted alongside the English names.
//
//	exercises:
//	  - name: Back Squat
//	    category: Strength
//	    kind: kg_rel
//	benchmarks:
//	  - exercise: Back Squat
//	    gender: Maschio
//	    base: "0.75"
//	    elite: "2"
//	athletes:
//	  - name: Anna Rossi
//	    gender: Femmina
//	    body_weight: 61.5
//	workouts:
//	  - name: Fran
//	    date: 2024-05-06
//	    beginner: 21-15-9 jumping pull ups and 20 kg thrusters
//	    exercises: Thruster, Pull Up
//	    score: tempo
type seedFile struct {
	Exercises  []seedExercise  `yaml:"exercises"`
	Benchmarks []seedBenchmark `yaml:"benchmarks"`
	Athletes   []seedAthlete   `yaml:"athletes"`
	Workouts   []seedWorkout   `yaml:"workouts"`
}

type seedExercise struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Kind     string `yaml:"kind"`
}

type seedBenchmark struct {
	Exercise     string  `yaml:"exercise"`
	Gender       string  `yaml:"gender"`
	Base         *string `yaml:"base"`
	Beginner     *string `yaml:"beginner"`
	Intermediate *string `yaml:"intermediate"`
	Good         *string `yaml:"good"`
	Elite        *string `yaml:"elite"`
}

type seedAthlete struct {
	Name       string   `yaml:"name"`
	Gender     string   `yaml:"gender"`
	BodyWeight *float64 `yaml:"body_weight"`
}

type seedWorkout struct {
	Name         string `yaml:"name"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Date         string `yaml:"date"`
	Beginner     string `yaml:"beginner"`
	Intermediate string `yaml:"intermediate"`
	Advanced     string `yaml:"advanced"`
	Exercises    string `yaml:"exercises"`
	Score        string `yaml:"score"`
}

// seed is a validated seedFile.
type seed struct {
	exercises    []leveling.ExerciseDefinition
	benchmarks   []leveling.BenchmarkRow
	athletes     []Athlete
	workouts     []Workout
	unknownKinds []string
	duplicates   []leveling.BenchmarkKey
	skipped      int
}

// parseSeed decodes and validates a seed document. Unknown value kinds fall back to generic numeric and are
// reported in unknownKinds. Duplicate benchmark rows keep the first occurrence.
func parseSeed(r io.Reader) (seed, error) {
	var file seedFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return seed{}, fmt.Errorf("%w: decode seed: %w", ErrInvalidEntry, err)
	}

	var s seed
	for i, e := range file.Exercises {
		if leveling.Normalize(e.Name) == "" {
			return seed{}, fmt.Errorf("%w: exercise %d has no name", ErrInvalidEntry, i+1)
		}
		kind, known := leveling.ParseValueKind(e.Kind)
		if !known {
			s.unknownKinds = append(s.unknownKinds, e.Name)
		}
		s.exercises = append(s.exercises, leveling.ExerciseDefinition{
			Name:     strings.TrimSpace(e.Name),
			Category: strings.TrimSpace(e.Category),
			Kind:     kind,
		})
	}

	var rows []leveling.BenchmarkRow
	for i, b := range file.Benchmarks {
		if leveling.Normalize(b.Exercise) == "" {
			return seed{}, fmt.Errorf("%w: benchmark %d has no exercise", ErrInvalidEntry, i+1)
		}
		gender, ok := leveling.ParseGender(strings.TrimSpace(b.Gender))
		if !ok {
			return seed{}, fmt.Errorf("%w: benchmark %d has unknown gender %q", ErrInvalidEntry, i+1, b.Gender)
		}
		row := leveling.BenchmarkRow{
			Exercise:   strings.TrimSpace(b.Exercise),
			Gender:     gender,
			Thresholds: make(map[leveling.Tier]string),
		}
		for tier, v := range map[leveling.Tier]*string{
			leveling.TierBase:         b.Base,
			leveling.TierBeginner:     b.Beginner,
			leveling.TierIntermediate: b.Intermediate,
			leveling.TierGood:         b.Good,
			leveling.TierElite:        b.Elite,
		} {
			if v != nil {
				row.Thresholds[tier] = strings.TrimSpace(*v)
			}
		}
		rows = append(rows, row)
	}

	s.duplicates = leveling.DuplicateBenchmarks(rows)
	seen := make(map[leveling.BenchmarkKey]bool, len(rows))
	for _, row := range rows {
		key := leveling.BenchmarkKey{Exercise: leveling.Normalize(row.Exercise), Gender: row.Gender}
		if seen[key] {
			s.skipped++
			continue
		}
		seen[key] = true
		s.benchmarks = append(s.benchmarks, row)
	}

	for i, a := range file.Athletes {
		athlete := Athlete{Name: a.Name, Gender: nil, BodyWeight: a.BodyWeight}
		if g := strings.TrimSpace(a.Gender); g != "" {
			athlete.Gender = ptr.Ref(leveling.Gender(g))
		}
		athlete, err := validateAthlete(athlete)
		if err != nil {
			return seed{}, fmt.Errorf("athlete %d: %w", i+1, err)
		}
		s.athletes = append(s.athletes, athlete)
	}

	for i, w := range file.Workouts {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(w.Date))
		if err != nil {
			return seed{}, fmt.Errorf("%w: workout %d has invalid date %q", ErrInvalidEntry, i+1, w.Date)
		}
		workout, err := validateWorkout(Workout{
			ID:           workoutID(w.Name, date),
			Name:         w.Name,
			Title:        w.Title,
			Description:  w.Description,
			Date:         date,
			Beginner:     w.Beginner,
			Intermediate: w.Intermediate,
			Advanced:     w.Advanced,
			Exercises:    SplitExercises(w.Exercises),
			Score:        WorkoutScore(w.Score),
		})
		if err != nil {
			return seed{}, fmt.Errorf("workout %d: %w", i+1, err)
		}
		s.workouts = append(s.workouts, workout)
	}
	return s, nil
}

// validateAthlete trims the name and normalises sheet gender labels. A nil gender stays unknown.
func validateAthlete(athlete Athlete) (Athlete, error) {
	athlete.Name = strings.TrimSpace(athlete.Name)
	if leveling.Normalize(athlete.Name) == "" {
		return Athlete{}, fmt.Errorf("%w: athlete name is required", ErrInvalidEntry)
	}
	if athlete.Gender != nil {
		gender, ok := leveling.ParseGender(string(*athlete.Gender))
		if !ok {
			return Athlete{}, fmt.Errorf("%w: unknown gender %q", ErrInvalidEntry, *athlete.Gender)
		}
		athlete.Gender = &gender
	}
	if bw := athlete.BodyWeight; bw != nil && !(*bw > 0 && !math.IsInf(*bw, 0)) {
		return Athlete{}, fmt.Errorf("%w: body weight must be positive", ErrInvalidEntry)
	}
	return athlete, nil
}

// validateWorkout trims the text fields and normalises the score label.
func validateWorkout(w Workout) (Workout, error) {
	w.Name = strings.TrimSpace(w.Name)
	if leveling.Normalize(w.Name) == "" {
		return Workout{}, fmt.Errorf("%w: workout name is required", ErrInvalidEntry)
	}
	if w.Date.IsZero() {
		return Workout{}, fmt.Errorf("%w: workout date is required", ErrInvalidEntry)
	}
	score, ok := ParseWorkoutScore(string(w.Score))
	if !ok {
		return Workout{}, fmt.Errorf("%w: unknown workout score %q", ErrInvalidEntry, w.Score)
	}
	w.Score = score
	for _, field := range []*string{&w.Title, &w.Description, &w.Beginner, &w.Intermediate, &w.Advanced} {
		*field = strings.TrimSpace(*field)
	}
	return w, nil
}
