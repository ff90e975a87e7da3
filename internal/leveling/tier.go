package leveling

// Tier is one of the five ordered skill levels. The zero value is not a tier; unclassifiable results carry a nil
// *Tier instead.
type Tier int

const (
	TierBase Tier = iota + 1
	TierBeginner
	TierIntermediate
	TierGood
	TierElite
)

const tierCount = int(TierElite)

//nolint:gochecknoglobals // lookup tables
var (
	tierNames = [...]string{"base", "beginner", "intermediate", "good", "elite"}

	// tierAliases maps the labels used by the coaching sheets to tiers.
	tierAliases = map[string]Tier{
		"principiante": TierBeginner,
		"intermedio":   TierIntermediate,
		"buono":        TierGood,
	}
)

// Tiers returns all tiers from base to elite.
func Tiers() []Tier {
	return []Tier{TierBase, TierBeginner, TierIntermediate, TierGood, TierElite}
}

// Valid reports whether t is one of the five tiers.
func (t Tier) Valid() bool {
	return t >= TierBase && t <= TierElite
}

func (t Tier) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return tierNames[t-1]
}

// Next returns the tier immediately above t. ok is false for elite.
func (t Tier) Next() (next Tier, ok bool) {
	if !t.Valid() || t == TierElite {
		return 0, false
	}
	return t + 1, true
}

func (t Tier) index() int {
	return int(t) - 1
}

// ParseTier parses a tier name. English names and the Italian sheet labels are accepted regardless of case.
func ParseTier(s string) (Tier, bool) {
	key := Normalize(s)
	for _, t := range Tiers() {
		if t.String() == key {
			return t, true
		}
	}
	t, ok := tierAliases[key]
	return t, ok
}
