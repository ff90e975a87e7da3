package i18n_test

import (
	"testing"

	"github.com/myrjola/boxlevels/internal/i18n"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		lang i18n.Language
		key  string
		want string
	}{
		{name: "english", lang: i18n.English, key: "tier.beginner", want: "Beginner"},
		{name: "italian", lang: i18n.Italian, key: "tier.beginner", want: "Principiante"},
		{name: "unsupported language falls back", lang: i18n.Language("fi"), key: "tier.good", want: "Good"},
		{name: "unknown key", lang: i18n.Italian, key: "no.such.key", want: "no.such.key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := i18n.Translate(tt.lang, tt.key); got != tt.want {
				t.Errorf("Translate(%s, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestLanguagesHaveTheSameKeys(t *testing.T) {
	// Every English label must have an Italian counterpart and vice versa.
	keys := []string{
		"tier.base", "tier.beginner", "tier.intermediate", "tier.good", "tier.elite",
		"reason.below_base", "reason.no_benchmark", "reason.no_thresholds", "reason.unparseable",
		"reason.kind_mismatch", "reason.unknown_exercise",
		"report.title", "report.latest", "report.profile", "report.leaderboard", "report.empty", "report.top",
	}
	for _, lang := range i18n.SupportedLanguages() {
		for _, key := range keys {
			if got := i18n.Translate(lang, key); got == key {
				t.Errorf("Translate(%s, %q) is missing", lang, key)
			}
		}
	}
}

func TestParse(t *testing.T) {
	if lang, ok := i18n.Parse(" IT "); !ok || lang != i18n.Italian {
		t.Errorf("Parse(IT) = %q, %v, want it, true", lang, ok)
	}
	if _, ok := i18n.Parse("fi"); ok {
		t.Error("Parse(fi) ok = true, want false")
	}
}
