package leveling

import "math"

// Reason explains the outcome of a classification.
type Reason string

const (
	ReasonClassified      Reason = "classified"
	ReasonBelowBase       Reason = "below_base"
	ReasonUnparseable     Reason = "unparseable"
	ReasonNoThresholds    Reason = "no_thresholds"
	ReasonNoBenchmark     Reason = "no_benchmark"
	ReasonKindMismatch    Reason = "kind_mismatch"
	ReasonUnknownExercise Reason = "unknown_exercise"
)

// Target is the threshold of the next tier both as a scalar and formatted in the unit of the exercise.
type Target struct {
	Value   float64
	Display string
}

// Result is the derived classification of one value. Value is nil when the raw value could not be converted.
// Achieved is nil when the value is unclassifiable, which is distinct from the lowest real tier.
type Result struct {
	Value      *float64
	Achieved   *Tier
	Next       *Tier
	NextTarget *Target
	Reason     Reason
}

// Classified reports whether a tier was achieved.
func (r Result) Classified() bool {
	return r.Achieved != nil
}

func unclassifiable(value *float64, reason Reason) Result {
	return Result{Value: value, Achieved: nil, Next: nil, NextTarget: nil, Reason: reason}
}

// Classify selects the highest tier with a defined threshold that value meets in the direction of kind and the next
// tier above it together with its target. Tiers without a threshold are skipped.
func Classify(value float64, th Thresholds, kind ValueKind) Result {
	if math.IsNaN(value) {
		return unclassifiable(nil, ReasonUnparseable)
	}
	v := value
	if th.Empty() {
		return unclassifiable(&v, ReasonNoThresholds)
	}
	tiers := Tiers()
	for i := len(tiers) - 1; i >= 0; i-- {
		threshold, ok := th.Get(tiers[i])
		if !ok || !kind.meets(value, threshold) {
			continue
		}
		achieved := tiers[i]
		result := Result{Value: &v, Achieved: &achieved, Next: nil, NextTarget: nil, Reason: ReasonClassified}
		if next, ok := achieved.Next(); ok {
			if target, ok := th.Get(next); ok {
				result.Next = &next
				result.NextTarget = &Target{Value: target, Display: FormatValue(target, kind)}
			}
		}
		return result
	}
	return unclassifiable(&v, ReasonBelowBase)
}
