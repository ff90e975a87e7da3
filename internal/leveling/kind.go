package leveling

// ValueKind tells how a raw test value is interpreted.
type ValueKind string

const (
	// KindWeightRelative is a lifted weight divided by the athlete's body weight.
	KindWeightRelative ValueKind = "weight_relative"
	// KindReps is a repetition count.
	KindReps ValueKind = "reps"
	// KindTime is an elapsed "MM:SS" time where lower is better.
	KindTime ValueKind = "time"
	// KindGeneric is any other number where higher is better.
	KindGeneric ValueKind = "generic_numeric"
)

// ParseValueKind maps a value kind label to a ValueKind. Both the canonical names and the labels used by the
// coaching sheets (kg_rel, reps, tempo, valore, altro) are recognised regardless of case and separators.
// Unrecognised labels map to KindGeneric and known is false so that callers can flag the row.
func ParseValueKind(label string) (kind ValueKind, known bool) {
	switch Normalize(label) {
	case "weightrelative", "kgrel":
		return KindWeightRelative, true
	case "reps":
		return KindReps, true
	case "time", "tempo":
		return KindTime, true
	case "genericnumeric", "valore", "altro":
		return KindGeneric, true
	default:
		return KindGeneric, false
	}
}

// LowerIsBetter reports whether smaller values rank higher.
func (k ValueKind) LowerIsBetter() bool {
	return k == KindTime
}

// meets reports whether value satisfies threshold in the direction of k.
func (k ValueKind) meets(value, threshold float64) bool {
	if k.LowerIsBetter() {
		return value <= threshold
	}
	return value >= threshold
}
