package leveling_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/ptr"
)

func TestLatestPerExercise(t *testing.T) {
	latest := leveling.LatestPerExercise("ANNA", testLog())
	var got []uuid.UUID
	for _, e := range latest {
		got = append(got, e.ID)
	}
	want := []uuid.UUID{entryID(2), entryID(7)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LatestPerExercise() mismatch (-want +got):\n%s", diff)
	}
}

func TestCategoryProfile(t *testing.T) {
	tests := []struct {
		name    string
		athlete string
		want    []leveling.CategoryLevel
	}{
		{
			name:    "one athlete",
			athlete: "anna",
			want: []leveling.CategoryLevel{
				{Category: "Strength", Average: 3.5, Count: 2},
				{Category: "Gymnastics", Average: 0, Count: 1},
			},
		},
		{
			name:    "whole box",
			athlete: "",
			want: []leveling.CategoryLevel{
				{Category: "Strength", Average: 3.5, Count: 2},
				{Category: "Gymnastics", Average: 1, Count: 3},
				{Category: "Engine", Average: 3.5, Count: 2},
			},
		},
		{
			name:    "unknown athlete",
			athlete: "Nobody",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leveling.CategoryProfile(tt.athlete, testLog(), testExercises(), testBenchmarks())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CategoryProfile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeaderboard(t *testing.T) {
	type row struct {
		Position int
		Athlete  string
		Value    float64
	}
	male := leveling.GenderMale

	tests := []struct {
		name     string
		exercise string
		gender   *leveling.Gender
		log      []leveling.TestEntry
		want     []row
	}{
		{
			name:     "time ranks lowest first",
			exercise: "row 500m",
			gender:   nil,
			log:      testLog(),
			want:     []row{{Position: 1, Athlete: "Luca", Value: 95}, {Position: 2, Athlete: "Marco", Value: 105}},
		},
		{
			name:     "unconvertible entries are skipped",
			exercise: "pull-up",
			gender:   nil,
			log:      testLog(),
			want:     []row{{Position: 1, Athlete: "Marco", Value: 12}, {Position: 2, Athlete: "anna", Value: 3}},
		},
		{
			name:     "gender filter",
			exercise: "Pull Up",
			gender:   &male,
			log:      testLog(),
			want:     []row{{Position: 1, Athlete: "Marco", Value: 12}},
		},
		{
			name:     "best entry per athlete",
			exercise: "Back Squat",
			gender:   nil,
			log:      testLog(),
			want:     []row{{Position: 1, Athlete: "Anna", Value: 1.25}},
		},
		{
			name:     "ties rank the earlier test first",
			exercise: "Pull Up",
			gender:   nil,
			log: append(testLog(), leveling.TestEntry{
				ID: entryID(8), Athlete: "Sara", Exercise: "Pull Up", RawValue: "12", Kind: leveling.KindReps,
				BodyWeight: nil, Gender: leveling.GenderFemale, Date: day(time.January, 5),
			}),
			want: []row{
				{Position: 1, Athlete: "Sara", Value: 12},
				{Position: 2, Athlete: "Marco", Value: 12},
				{Position: 3, Athlete: "anna", Value: 3},
			},
		},
		{
			name:     "unknown exercise",
			exercise: "Yoke Carry",
			gender:   nil,
			log:      testLog(),
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []row
			for _, r := range leveling.Leaderboard(tt.exercise, tt.gender, tt.log, testExercises(), testBenchmarks()) {
				got = append(got, row{Position: r.Position, Athlete: r.Entry.Athlete, Value: r.Value})
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Leaderboard() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeaderboard_CarriesClassification(t *testing.T) {
	board := leveling.Leaderboard("Row 500m", nil, testLog(), testExercises(), testBenchmarks())
	if len(board) == 0 {
		t.Fatal("empty leaderboard")
	}
	if diff := cmp.Diff(ptr.Ref(leveling.TierGood), board[0].Result.Achieved); diff != "" {
		t.Errorf("leader tier mismatch (-want +got):\n%s", diff)
	}
}

func TestBalance(t *testing.T) {
	log := append(testLog(), leveling.TestEntry{
		ID: entryID(9), Athlete: "Marco", Exercise: "Yoke Carry", RawValue: "40", Kind: leveling.KindGeneric,
		BodyWeight: nil, Gender: leveling.GenderMale, Date: day(time.March, 3),
	})

	got := leveling.Balance(log, testExercises())
	want := leveling.BalanceTable{
		Categories: []string{"Strength", "Gymnastics", "Engine", ""},
		Rows: []leveling.BalanceRow{
			{Athlete: "Anna", Counts: []int{2, 1, 0, 0}, Total: 3},
			{Athlete: "Luca", Counts: []int{0, 1, 1, 0}, Total: 2},
			{Athlete: "Marco", Counts: []int{0, 1, 1, 1}, Total: 3},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Balance() mismatch (-want +got):\n%s", diff)
	}
}

func TestBalance_EmptyCategorySharesColumn(t *testing.T) {
	exercises := append(testExercises(), leveling.ExerciseDefinition{
		Name: "Plank", Category: "", Kind: leveling.KindGeneric,
	})
	log := []leveling.TestEntry{
		{
			ID: entryID(1), Athlete: "Anna", Exercise: "Yoke Carry", RawValue: "40", Kind: leveling.KindGeneric,
			BodyWeight: nil, Gender: leveling.GenderFemale, Date: day(time.March, 1),
		},
		{
			ID: entryID(2), Athlete: "Anna", Exercise: "Plank", RawValue: "90", Kind: leveling.KindGeneric,
			BodyWeight: nil, Gender: leveling.GenderFemale, Date: day(time.March, 2),
		},
	}

	got := leveling.Balance(log, exercises)
	want := leveling.BalanceTable{
		Categories: []string{"Strength", "Gymnastics", "Engine", ""},
		Rows:       []leveling.BalanceRow{{Athlete: "Anna", Counts: []int{0, 0, 0, 2}, Total: 2}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Balance() mismatch (-want +got):
%s", diff)
	}
}

func TestCategoryLeaderboard(t *testing.T) {
	log := append(testLog(),
		leveling.TestEntry{
			ID: entryID(10), Athlete: "Anna", Exercise: "Deadlift", RawValue: "90", Kind: leveling.KindWeightRelative,
			BodyWeight: ptr.Ref(60.0), Gender: leveling.GenderFemale, Date: day(time.March, 2),
		},
		leveling.TestEntry{
			ID: entryID(11), Athlete: "Marco", Exercise: "deadlift", RawValue: "120", Kind: leveling.KindWeightRelative,
			BodyWeight: ptr.Ref(80.0), Gender: leveling.GenderMale, Date: day(time.March, 3),
		},
		leveling.TestEntry{
			ID: entryID(12), Athlete: "Marco", Exercise: "Row 500m", RawValue: "1:55", Kind: leveling.KindTime,
			BodyWeight: nil, Gender: leveling.GenderMale, Date: day(time.March, 4),
		},
	)
	male := leveling.GenderMale

	tests := []struct {
		name     string
		category string
		gender   *leveling.Gender
		want     leveling.CategoryBoard
	}{
		{
			name:     "sum of personal bests",
			category: "STRENGTH",
			gender:   nil,
			want: leveling.CategoryBoard{
				Category: "Strength",
				Numeric: []leveling.Standing{
					{Position: 1, Athlete: "Anna", Total: 2.75, Exercises: 2},
					{Position: 2, Athlete: "Marco", Total: 1.5, Exercises: 1},
				},
				Timed: nil,
			},
		},
		{
			name:     "gender filter",
			category: "strength",
			gender:   &male,
			want: leveling.CategoryBoard{
				Category: "Strength",
				Numeric:  []leveling.Standing{{Position: 1, Athlete: "Marco", Total: 1.5, Exercises: 1}},
				Timed:    nil,
			},
		},
		{
			name:     "best time ranks lowest first",
			category: "engine",
			gender:   nil,
			want: leveling.CategoryBoard{
				Category: "Engine",
				Numeric:  nil,
				Timed: []leveling.Standing{
					{Position: 1, Athlete: "Luca", Total: 95, Exercises: 1},
					{Position: 2, Athlete: "Marco", Total: 105, Exercises: 1},
				},
			},
		},
		{
			name:     "unconvertible entries are ignored",
			category: "Gymnastics",
			gender:   nil,
			want: leveling.CategoryBoard{
				Category: "Gymnastics",
				Numeric: []leveling.Standing{
					{Position: 1, Athlete: "Marco", Total: 12, Exercises: 1},
					{Position: 2, Athlete: "anna", Total: 3, Exercises: 1},
				},
				Timed: nil,
			},
		},
		{
			name:     "unknown category",
			category: " Mobility ",
			gender:   nil,
			want:     leveling.CategoryBoard{Category: "Mobility", Numeric: nil, Timed: nil},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leveling.CategoryLeaderboard(tt.category, tt.gender, log, testExercises(), testBenchmarks())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CategoryLeaderboard() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
