package leveling

import (
	"time"

	"github.com/google/uuid"
)

// retestDays is how many calendar days an athlete should wait before repeating a test.
const retestDays = 6 * 7

// ExerciseDefinition is reference data maintained by a coach.
type ExerciseDefinition struct {
	Name     string
	Category string
	Kind     ValueKind
}

// Key is the canonical key of the exercise name.
func (d ExerciseDefinition) Key() string {
	return Normalize(d.Name)
}

// CategoryKey is the canonical key of the category name.
func (d ExerciseDefinition) CategoryKey() string {
	return Normalize(d.Category)
}

// TestEntry is one submitted test in the append-only test log.
type TestEntry struct {
	ID         uuid.UUID
	Athlete    string
	Exercise   string
	RawValue   string
	Kind       ValueKind
	BodyWeight *float64
	Gender     Gender
	Date       time.Time
}

// EntryResult pairs an entry with its classification.
type EntryResult struct {
	Entry  TestEntry
	Result Result
}

// FindExercise returns the definition whose canonical key equals the key of name.
func FindExercise(name string, exercises []ExerciseDefinition) (ExerciseDefinition, bool) {
	key := Normalize(name)
	for _, def := range exercises {
		if def.Key() == key {
			return def, true
		}
	}
	return ExerciseDefinition{}, false
}

// ClassifyEntry classifies a logged test against the exercise table and the benchmark table.
//
// An entry whose exercise is missing from the exercise table, or whose kind differs from the definition, is
// unclassifiable. A missing benchmark row takes precedence over an unparseable value so that callers can ask for
// the missing benchmark data. Result.Value is populated whenever the raw value converts.
func ClassifyEntry(entry TestEntry, exercises []ExerciseDefinition, benchmarks []BenchmarkRow) Result {
	def, ok := FindExercise(entry.Exercise, exercises)
	if !ok {
		return unclassifiable(nil, ReasonUnknownExercise)
	}
	if def.Kind != entry.Kind {
		return unclassifiable(nil, ReasonKindMismatch)
	}

	var value *float64
	if v, converted := Convert(entry.RawValue, entry.Kind, entry.BodyWeight); converted {
		value = &v
	}

	th, found := Resolve(entry.Exercise, entry.Gender, entry.Kind, benchmarks)
	if !found {
		return unclassifiable(value, ReasonNoBenchmark)
	}
	if value == nil {
		return unclassifiable(nil, ReasonUnparseable)
	}
	return Classify(*value, th, entry.Kind)
}

// CompareEntries compares the classifications of two entries of the same athlete and exercise.
func CompareEntries(current, previous Result, kind ValueKind) Progress {
	return Compare(current, previous, kind)
}

// ClassifyLog classifies every entry independently. An unclassifiable entry never affects the others.
func ClassifyLog(entries []TestEntry, exercises []ExerciseDefinition, benchmarks []BenchmarkRow) []EntryResult {
	results := make([]EntryResult, len(entries))
	for i, entry := range entries {
		results[i] = EntryResult{Entry: entry, Result: ClassifyEntry(entry, exercises, benchmarks)}
	}
	return results
}

// RetestDate is the date an athlete should repeat a test taken on date. The wall clock time is kept across
// daylight saving changes.
func RetestDate(date time.Time) time.Time {
	return date.AddDate(0, 0, retestDays)
}

// PreviousEntry returns the most recent entry of the same athlete and exercise dated strictly before current.
// When several entries share that date the one logged last wins.
func PreviousEntry(current TestEntry, log []TestEntry) (TestEntry, bool) {
	var (
		previous TestEntry
		found    bool
	)
	athlete, exercise := Normalize(current.Athlete), Normalize(current.Exercise)
	for _, e := range log {
		if e.ID == current.ID || Normalize(e.Athlete) != athlete || Normalize(e.Exercise) != exercise {
			continue
		}
		if !e.Date.Before(current.Date) {
			continue
		}
		if !found || !e.Date.Before(previous.Date) {
			previous, found = e, true
		}
	}
	return previous, found
}
