package leveling

// BenchmarkRow holds the raw tier thresholds of one exercise for one gender as entered by a coach.
// A missing or unparseable threshold leaves the tier undefined.
type BenchmarkRow struct {
	Exercise   string
	Gender     Gender
	Thresholds map[Tier]string
}

// Thresholds are the tier thresholds of a benchmark row converted into the scalar space of a [ValueKind].
type Thresholds struct {
	values  [tierCount]float64
	defined [tierCount]bool
}

// NewThresholds builds Thresholds from already converted values. Invalid tiers are ignored.
func NewThresholds(values map[Tier]float64) Thresholds {
	var th Thresholds
	for tier, v := range values {
		if tier.Valid() {
			th.values[tier.index()] = v
			th.defined[tier.index()] = true
		}
	}
	return th
}

// Get returns the threshold of tier and whether it is defined.
func (th Thresholds) Get(tier Tier) (float64, bool) {
	if !tier.Valid() {
		return 0, false
	}
	return th.values[tier.index()], th.defined[tier.index()]
}

// Empty reports whether no tier has a defined threshold.
func (th Thresholds) Empty() bool {
	for _, d := range th.defined {
		if d {
			return false
		}
	}
	return true
}

// ConvertThresholds converts the raw thresholds of row into the scalar space of kind.
func ConvertThresholds(row BenchmarkRow, kind ValueKind) Thresholds {
	var th Thresholds
	for _, tier := range Tiers() {
		raw, ok := row.Thresholds[tier]
		if !ok {
			continue
		}
		if v, ok := convertThreshold(raw, kind); ok {
			th.values[tier.index()] = v
			th.defined[tier.index()] = true
		}
	}
	return th
}

// FindBenchmark returns the first row of table whose exercise has the same canonical key as exercise and whose
// gender is exactly gender.
func FindBenchmark(exercise string, gender Gender, table []BenchmarkRow) (BenchmarkRow, bool) {
	key := Normalize(exercise)
	for _, row := range table {
		if row.Gender == gender && Normalize(row.Exercise) == key {
			return row, true
		}
	}
	return BenchmarkRow{}, false
}

// Resolve looks up the benchmark row of (exercise, gender) and converts its thresholds for kind.
// ok is false when the table has no such row. Duplicate rows resolve to the first one.
func Resolve(exercise string, gender Gender, kind ValueKind, table []BenchmarkRow) (th Thresholds, ok bool) {
	row, ok := FindBenchmark(exercise, gender, table)
	if !ok {
		return Thresholds{}, false
	}
	return ConvertThresholds(row, kind), true
}

// BenchmarkKey identifies the benchmark row of an exercise for a gender.
type BenchmarkKey struct {
	Exercise string
	Gender   Gender
}

// DuplicateBenchmarks lists the (canonical exercise, gender) pairs that occur more than once in table, in order of
// their first occurrence.
func DuplicateBenchmarks(table []BenchmarkRow) []BenchmarkKey {
	seen := make(map[BenchmarkKey]int, len(table))
	var order []BenchmarkKey
	for _, row := range table {
		key := BenchmarkKey{Exercise: Normalize(row.Exercise), Gender: row.Gender}
		seen[key]++
		if seen[key] == 2 { //nolint:mnd // report once, on the first duplicate
			order = append(order, key)
		}
	}
	return order
}
