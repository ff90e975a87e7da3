package leveling

// Gender selects the benchmark row of an exercise. Benchmark rows are matched on exact equality only.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender maps exactly one of male, female, other or the sheet labels Maschio, Femmina, Altro to a Gender.
// Matching is deliberately exact so that a typo never silently selects another gender's benchmarks.
func ParseGender(s string) (Gender, bool) {
	switch s {
	case "male", "Maschio":
		return GenderMale, true
	case "female", "Femmina":
		return GenderFemale, true
	case "other", "Altro":
		return GenderOther, true
	default:
		return "", false
	}
}
