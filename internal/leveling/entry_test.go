package leveling_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/ptr"
)

func entryID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-4000-8000-%012d", n))
}

func day(month time.Month, d int) time.Time {
	return time.Date(2023, month, d, 0, 0, 0, 0, time.UTC)
}

func testExercises() []leveling.ExerciseDefinition {
	return []leveling.ExerciseDefinition{
		{Name: "Back Squat", Category: "Strength", Kind: leveling.KindWeightRelative},
		{Name: "Pull Up", Category: "Gymnastics", Kind: leveling.KindReps},
		{Name: "Row 500m", Category: "Engine", Kind: leveling.KindTime},
		{Name: "Deadlift", Category: "strength", Kind: leveling.KindWeightRelative},
	}
}

func thresholds(base, beginner, intermediate, good, elite string) map[leveling.Tier]string {
	return map[leveling.Tier]string{
		leveling.TierBase:         base,
		leveling.TierBeginner:     beginner,
		leveling.TierIntermediate: intermediate,
		leveling.TierGood:         good,
		leveling.TierElite:        elite,
	}
}

func testBenchmarks() []leveling.BenchmarkRow {
	return []leveling.BenchmarkRow{
		{Exercise: "back squat", Gender: leveling.GenderMale, Thresholds: thresholds("0,75", "1", "1,25", "1,5", "2")},
		{Exercise: "BACK-SQUAT", Gender: leveling.GenderFemale, Thresholds: thresholds("0.5", "0.75", "1", "1.25", "1.5")},
		{Exercise: "pull_up", Gender: leveling.GenderMale, Thresholds: thresholds("1", "5", "10", "15", "20")},
		{Exercise: "Row 500m", Gender: leveling.GenderMale, Thresholds: thresholds("2:10", "2:00", "1:50", "1:40", "1:30")},
		{Exercise: "Deadlift", Gender: leveling.GenderMale, Thresholds: thresholds("1", "1.25", "1.5", "2", "2.5")},
		// Data-quality duplicate that must never win.
		{Exercise: "Pull Up", Gender: leveling.GenderMale, Thresholds: thresholds("100", "200", "300", "400", "500")},
	}
}

// testLog holds entries out of date order on purpose.
func testLog() []leveling.TestEntry {
	return []leveling.TestEntry{
		{
			ID: entryID(2), Athlete: "Anna", Exercise: "Back Squat", RawValue: "75", Kind: leveling.KindWeightRelative,
			BodyWeight: ptr.Ref(60.0), Gender: leveling.GenderFemale, Date: day(time.March, 1),
		},
		{
			ID: entryID(1), Athlete: "Anna", Exercise: "back squat", RawValue: "60", Kind: leveling.KindWeightRelative,
			BodyWeight: ptr.Ref(60.0), Gender: leveling.GenderFemale, Date: day(time.January, 10),
		},
		{
			ID: entryID(3), Athlete: "Marco", Exercise: "Pull Up", RawValue: "12", Kind: leveling.KindReps,
			BodyWeight: nil, Gender: leveling.GenderMale, Date: day(time.February, 1),
		},
		{
			ID: entryID(4), Athlete: "Marco", Exercise: "row-500m", RawValue: "1:45", Kind: leveling.KindTime,
			BodyWeight: nil, Gender: leveling.GenderMale, Date: day(time.February, 2),
		},
		{
			ID: entryID(5), Athlete: "Luca", Exercise: "Row 500m", RawValue: "1:35", Kind: leveling.KindTime,
			BodyWeight: nil, Gender: leveling.GenderMale, Date: day(time.February, 3),
		},
		{
			ID: entryID(6), Athlete: "Luca", Exercise: "Pull Up", RawValue: "many", Kind: leveling.KindReps,
			BodyWeight: nil, Gender: leveling.GenderMale, Date: day(time.February, 4),
		},
		{
			ID: entryID(7), Athlete: "anna", Exercise: "Pull Up", RawValue: "3", Kind: leveling.KindReps,
			BodyWeight: nil, Gender: leveling.GenderFemale, Date: day(time.February, 5),
		},
	}
}

func TestClassifyEntry(t *testing.T) {
	entry := func(exercise, raw string, kind leveling.ValueKind, bw *float64, gender leveling.Gender) leveling.TestEntry {
		return leveling.TestEntry{
			ID: entryID(100), Athlete: "Giulia", Exercise: exercise, RawValue: raw, Kind: kind,
			BodyWeight: bw, Gender: gender, Date: day(time.April, 1),
		}
	}

	tests := []struct {
		name  string
		entry leveling.TestEntry
		want  leveling.Result
	}{
		{
			name:  "relative strength with loose exercise name",
			entry: entry(" back_squat ", "90", leveling.KindWeightRelative, ptr.Ref(60.0), leveling.GenderFemale),
			want: leveling.Result{
				Value:      ptr.Ref(1.5),
				Achieved:   ptr.Ref(leveling.TierElite),
				Next:       nil,
				NextTarget: nil,
				Reason:     leveling.ReasonClassified,
			},
		},
		{
			name:  "first duplicate benchmark wins",
			entry: entry("Pull Up", "12", leveling.KindReps, nil, leveling.GenderMale),
			want: leveling.Result{
				Value:      ptr.Ref(12.0),
				Achieved:   ptr.Ref(leveling.TierIntermediate),
				Next:       ptr.Ref(leveling.TierGood),
				NextTarget: &leveling.Target{Value: 15, Display: "15"},
				Reason:     leveling.ReasonClassified,
			},
		},
		{
			name:  "time target formatted",
			entry: entry("Row 500m", "1:55", leveling.KindTime, nil, leveling.GenderMale),
			want: leveling.Result{
				Value:      ptr.Ref(115.0),
				Achieved:   ptr.Ref(leveling.TierBeginner),
				Next:       ptr.Ref(leveling.TierIntermediate),
				NextTarget: &leveling.Target{Value: 110, Display: "01:50"},
				Reason:     leveling.ReasonClassified,
			},
		},
		{
			name:  "zero body weight",
			entry: entry("Deadlift", "100", leveling.KindWeightRelative, ptr.Ref(0.0), leveling.GenderMale),
			want: leveling.Result{
				Value: nil, Achieved: nil, Next: nil, NextTarget: nil, Reason: leveling.ReasonUnparseable,
			},
		},
		{
			name:  "no benchmark for gender",
			entry: entry("Deadlift", "100", leveling.KindWeightRelative, ptr.Ref(80.0), leveling.GenderOther),
			want: leveling.Result{
				Value: ptr.Ref(1.25), Achieved: nil, Next: nil, NextTarget: nil, Reason: leveling.ReasonNoBenchmark,
			},
		},
		{
			name:  "no benchmark wins over unparseable value",
			entry: entry("Deadlift", "heavy", leveling.KindWeightRelative, ptr.Ref(80.0), leveling.GenderOther),
			want: leveling.Result{
				Value: nil, Achieved: nil, Next: nil, NextTarget: nil, Reason: leveling.ReasonNoBenchmark,
			},
		},
		{
			name:  "kind mismatch",
			entry: entry("Row 500m", "95", leveling.KindGeneric, nil, leveling.GenderMale),
			want: leveling.Result{
				Value: nil, Achieved: nil, Next: nil, NextTarget: nil, Reason: leveling.ReasonKindMismatch,
			},
		},
		{
			name:  "unknown exercise",
			entry: entry("Yoke Carry", "40", leveling.KindGeneric, nil, leveling.GenderMale),
			want: leveling.Result{
				Value: nil, Achieved: nil, Next: nil, NextTarget: nil, Reason: leveling.ReasonUnknownExercise,
			},
		},
		{
			name:  "gender is matched exactly",
			entry: entry("Pull Up", "12", leveling.KindReps, nil, leveling.Gender("Male")),
			want: leveling.Result{
				Value: ptr.Ref(12.0), Achieved: nil, Next: nil, NextTarget: nil, Reason: leveling.ReasonNoBenchmark,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leveling.ClassifyEntry(tt.entry, testExercises(), testBenchmarks())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ClassifyEntry() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyLog_IsolatesFailures(t *testing.T) {
	log := testLog()
	results := leveling.ClassifyLog(log, testExercises(), testBenchmarks())
	if len(results) != len(log) {
		t.Fatalf("ClassifyLog() returned %d results, want %d", len(results), len(log))
	}

	want := map[uuid.UUID]leveling.Reason{
		entryID(1): leveling.ReasonClassified,
		entryID(2): leveling.ReasonClassified,
		entryID(3): leveling.ReasonClassified,
		entryID(4): leveling.ReasonClassified,
		entryID(5): leveling.ReasonClassified,
		entryID(6): leveling.ReasonUnparseable,
		entryID(7): leveling.ReasonNoBenchmark,
	}
	for i, r := range results {
		if r.Entry.ID != log[i].ID {
			t.Errorf("result %d belongs to %s, want %s", i, r.Entry.ID, log[i].ID)
		}
		if r.Result.Reason != want[r.Entry.ID] {
			t.Errorf("entry %s reason = %s, want %s", r.Entry.ID, r.Result.Reason, want[r.Entry.ID])
		}
	}
}

func TestPreviousEntry(t *testing.T) {
	log := testLog()

	previous, ok := leveling.PreviousEntry(log[0], log)
	if !ok {
		t.Fatal("PreviousEntry() found nothing")
	}
	if previous.ID != entryID(1) {
		t.Errorf("PreviousEntry() = %s, want %s", previous.ID, entryID(1))
	}

	if _, ok = leveling.PreviousEntry(log[1], log); ok {
		t.Error("PreviousEntry() of the first test found an entry")
	}

	sameDay := log[0]
	sameDay.ID = entryID(99)
	if got, _ := leveling.PreviousEntry(sameDay, append(log, sameDay)); got.ID != entryID(1) {
		t.Errorf("PreviousEntry() = %s, want an entry strictly before the test date", got.ID)
	}
}

func TestRetestDate(t *testing.T) {
	got := leveling.RetestDate(day(time.January, 10))
	if want := day(time.February, 21); !got.Equal(want) {
		t.Errorf("RetestDate() = %s, want %s", got, want)
	}

	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}
	// Six weeks after 1 March crosses the switch to summer time.
	got = leveling.RetestDate(time.Date(2024, time.March, 1, 0, 0, 0, 0, rome))
	if want := time.Date(2024, time.April, 12, 0, 0, 0, 0, rome); !got.Equal(want) {
		t.Errorf("RetestDate() across daylight saving = %s, want %s", got, want)
	}
}
