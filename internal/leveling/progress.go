package leveling

// Progress compares a result with an earlier one for the same athlete and exercise.
// PercentChange is positive for an improvement and nil when it cannot be computed.
type Progress struct {
	PercentChange *float64
	TierIncreased bool
}

// Compare computes the improvement of current over previous. For time, a decrease is an improvement.
// The percentage is not computable when either result is unclassifiable or the previous value is missing or zero.
// TierIncreased is true only when both tiers are defined and the current one is higher.
func Compare(current, previous Result, kind ValueKind) Progress {
	progress := Progress{PercentChange: nil, TierIncreased: false}
	if !current.Classified() || !previous.Classified() {
		return progress
	}
	progress.TierIncreased = *current.Achieved > *previous.Achieved

	if current.Value == nil || previous.Value == nil || *previous.Value == 0 {
		return progress
	}
	prev, cur := *previous.Value, *current.Value
	var change float64
	if kind.LowerIsBetter() {
		change = (prev - cur) / prev * 100 //nolint:mnd // percent
	} else {
		change = (cur - prev) / prev * 100 //nolint:mnd // percent
	}
	progress.PercentChange = &change
	return progress
}
