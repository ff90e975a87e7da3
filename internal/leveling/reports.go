package leveling

import (
	"math"
	"slices"
	"strings"
)

// LatestPerExercise returns the most recent entry of athlete for every exercise, ordered by canonical exercise key.
// Entries sharing the latest date resolve to the one logged last.
func LatestPerExercise(athlete string, log []TestEntry) []TestEntry {
	key := Normalize(athlete)
	latest := make(map[string]TestEntry)
	for _, e := range log {
		if Normalize(e.Athlete) != key {
			continue
		}
		exercise := Normalize(e.Exercise)
		if current, ok := latest[exercise]; ok && e.Date.Before(current.Date) {
			continue
		}
		latest[exercise] = e
	}

	keys := make([]string, 0, len(latest))
	for k := range latest {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	entries := make([]TestEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, latest[k])
	}
	return entries
}

// CategoryLevel is the average achieved tier of one category. Unclassifiable entries count as zero.
type CategoryLevel struct {
	Category string
	Average  float64
	Count    int
}

// CategoryProfile averages the achieved tier per category over the entries of athlete, or over every entry when
// athlete is empty. Categories follow the order of their first appearance in the exercise table and categories
// without entries are left out. Entries of unknown exercises are ignored.
func CategoryProfile(
	athlete string,
	log []TestEntry,
	exercises []ExerciseDefinition,
	benchmarks []BenchmarkRow,
) []CategoryLevel {
	type sum struct {
		name  string
		total int
		count int
	}
	var order []string
	sums := make(map[string]*sum)
	for _, def := range exercises {
		key := def.CategoryKey()
		if _, ok := sums[key]; !ok {
			sums[key] = &sum{name: def.Category, total: 0, count: 0}
			order = append(order, key)
		}
	}

	filter := Normalize(athlete)
	for _, e := range log {
		if filter != "" && Normalize(e.Athlete) != filter {
			continue
		}
		def, ok := FindExercise(e.Exercise, exercises)
		if !ok {
			continue
		}
		s := sums[def.CategoryKey()]
		s.count++
		if r := ClassifyEntry(e, exercises, benchmarks); r.Classified() {
			s.total += int(*r.Achieved)
		}
	}

	var levels []CategoryLevel
	for _, key := range order {
		s := sums[key]
		if s.count == 0 {
			continue
		}
		average := math.Round(float64(s.total)/float64(s.count)*100) / 100 //nolint:mnd // two decimals
		levels = append(levels, CategoryLevel{Category: s.name, Average: average, Count: s.count})
	}
	return levels
}

// Ranking is one row of a leaderboard.
type Ranking struct {
	Position int
	Entry    TestEntry
	Value    float64
	Result   Result
}

// Leaderboard ranks the best entry of each athlete for exercise. Lower values rank first for time and higher values
// otherwise. Equal values rank the earlier test first. A non-nil gender restricts the board to that gender.
// Entries whose value cannot be converted are not ranked.
func Leaderboard(
	exercise string,
	gender *Gender,
	log []TestEntry,
	exercises []ExerciseDefinition,
	benchmarks []BenchmarkRow,
) []Ranking {
	def, ok := FindExercise(exercise, exercises)
	if !ok {
		return nil
	}
	kind := def.Kind
	better := func(a, b Ranking) bool {
		if a.Value != b.Value {
			if kind.LowerIsBetter() {
				return a.Value < b.Value
			}
			return a.Value > b.Value
		}
		return a.Entry.Date.Before(b.Entry.Date)
	}

	best := make(map[string]Ranking)
	for _, e := range log {
		if !SameName(e.Exercise, def.Name) || (gender != nil && e.Gender != *gender) {
			continue
		}
		r := ClassifyEntry(e, exercises, benchmarks)
		if r.Value == nil {
			continue
		}
		candidate := Ranking{Position: 0, Entry: e, Value: *r.Value, Result: r}
		athlete := Normalize(e.Athlete)
		if current, ok := best[athlete]; !ok || better(candidate, current) {
			best[athlete] = candidate
		}
	}

	rankings := make([]Ranking, 0, len(best))
	for _, r := range best {
		rankings = append(rankings, r)
	}
	slices.SortFunc(rankings, func(a, b Ranking) int {
		switch {
		case better(a, b):
			return -1
		case better(b, a):
			return 1
		default:
			return strings.Compare(Normalize(a.Entry.Athlete), Normalize(b.Entry.Athlete))
		}
	})
	for i := range rankings {
		rankings[i].Position = i + 1
	}
	return rankings
}

// BalanceRow counts the tests of one athlete per category. Counts is aligned with BalanceTable.Categories.
type BalanceRow struct {
	Athlete string
	Counts  []int
	Total   int
}

// BalanceTable shows how evenly athletes test across categories.
type BalanceTable struct {
	Categories []string
	Rows       []BalanceRow
}

// Balance counts the tests per athlete and category. Categories follow the exercise table. Exercises missing from
// the table are counted under the empty category, which is appended unless the table already has one. Rows are ordered by canonical athlete key.
func Balance(log []TestEntry, exercises []ExerciseDefinition) BalanceTable {
	var (
		categories []string
		index      = make(map[string]int)
	)
	for _, def := range exercises {
		key := def.CategoryKey()
		if _, ok := index[key]; !ok {
			index[key] = len(categories)
			categories = append(categories, def.Category)
		}
	}

	type tally struct {
		name   string
		counts map[int]int
		total  int
	}
	tallies := make(map[string]*tally)
	for _, e := range log {
		categoryKey := ""
		if def, ok := FindExercise(e.Exercise, exercises); ok {
			categoryKey = def.CategoryKey()
		}
		column, ok := index[categoryKey]
		if !ok {
			column = len(categories)
			index[categoryKey] = column
			categories = append(categories, "")
		}
		key := Normalize(e.Athlete)
		t, ok := tallies[key]
		if !ok {
			t = &tally{name: e.Athlete, counts: make(map[int]int), total: 0}
			tallies[key] = t
		}
		t.counts[column]++
		t.total++
	}

	keys := make([]string, 0, len(tallies))
	for k := range tallies {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	rows := make([]BalanceRow, 0, len(keys))
	for _, k := range keys {
		t := tallies[k]
		counts := make([]int, len(categories))
		for column, n := range t.counts {
			counts[column] = n
		}
		rows = append(rows, BalanceRow{Athlete: t.name, Counts: counts, Total: t.total})
	}
	return BalanceTable{Categories: categories, Rows: rows}
}

// Standing is one row of a category leaderboard. Total sums the personal best of the athlete over Exercises
// exercises of the category.
type Standing struct {
	Position  int
	Athlete   string
	Total     float64
	Exercises int
}

// CategoryBoard ranks athletes across every exercise of a category. Time exercises are summed separately because
// their totals rank the other way.
type CategoryBoard struct {
	Category string
	// Numeric sums the best value of each non-time exercise, highest first.
	Numeric []Standing
	// Timed sums the best time of each time exercise, lowest first.
	Timed []Standing
}

// CategoryLeaderboard ranks the athletes of category by their summed personal bests. The category is matched by
// canonical key. A non-nil gender restricts the board to entries of that gender. Entries whose value cannot be
// converted are ignored. Equal totals are ordered by canonical athlete key.
func CategoryLeaderboard(
	category string,
	gender *Gender,
	log []TestEntry,
	exercises []ExerciseDefinition,
	benchmarks []BenchmarkRow,
) CategoryBoard {
	key := Normalize(category)
	board := CategoryBoard{Category: strings.TrimSpace(category), Numeric: nil, Timed: nil}
	for _, def := range exercises {
		if def.CategoryKey() == key {
			board.Category = def.Category
			break
		}
	}

	type personalBest struct {
		athlete  string
		exercise string
	}
	var (
		order []personalBest
		bests = make(map[personalBest]float64)
		timed = make(map[personalBest]bool)
		names = make(map[string]string)
	)
	for _, e := range log {
		if gender != nil && e.Gender != *gender {
			continue
		}
		def, ok := FindExercise(e.Exercise, exercises)
		if !ok || def.CategoryKey() != key {
			continue
		}
		r := ClassifyEntry(e, exercises, benchmarks)
		if r.Value == nil {
			continue
		}
		pb := personalBest{athlete: Normalize(e.Athlete), exercise: def.Key()}
		current, seen := bests[pb]
		switch {
		case !seen:
			order = append(order, pb)
		case def.Kind.LowerIsBetter() && *r.Value >= current, !def.Kind.LowerIsBetter() && *r.Value <= current:
			continue
		}
		bests[pb] = *r.Value
		timed[pb] = def.Kind.LowerIsBetter()
		if _, ok = names[pb.athlete]; !ok {
			names[pb.athlete] = e.Athlete
		}
	}

	numericTotals := make(map[string]*Standing)
	timedTotals := make(map[string]*Standing)
	for _, pb := range order {
		totals := numericTotals
		if timed[pb] {
			totals = timedTotals
		}
		s, ok := totals[pb.athlete]
		if !ok {
			s = &Standing{Position: 0, Athlete: names[pb.athlete], Total: 0, Exercises: 0}
			totals[pb.athlete] = s
		}
		s.Total += bests[pb]
		s.Exercises++
	}
	board.Numeric = rankStandings(numericTotals, false)
	board.Timed = rankStandings(timedTotals, true)
	return board
}

func rankStandings(totals map[string]*Standing, lowerIsBetter bool) []Standing {
	if len(totals) == 0 {
		return nil
	}
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ta, tb := totals[a].Total, totals[b].Total
		switch {
		case ta == tb:
			return strings.Compare(a, b)
		case (ta < tb) == lowerIsBetter:
			return -1
		default:
			return 1
		}
	})
	standings := make([]Standing, len(keys))
	for i, k := range keys {
		standings[i] = *totals[k]
		standings[i].Position = i + 1
	}
	return standings
}
