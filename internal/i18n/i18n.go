// Package i18n translates the labels shown to athletes and coaches.
package i18n

import "strings"

// Language represents a supported language.
type Language string

const (
	// English is the English language.
	English Language = "en"
	// Italian is the language of the coaching sheets.
	Italian Language = "it"
)

// DefaultLanguage is the fallback language.
const DefaultLanguage = English

// translations maps language codes to translation keys and their values.
//
//nolint:gochecknoglobals // static lookup table
var translations = map[Language]map[string]string{
	English: {
		"tier.base":               "Base",
		"tier.beginner":           "Beginner",
		"tier.intermediate":       "Intermediate",
		"tier.good":               "Good",
		"tier.elite":              "Elite",
		"reason.below_base":       "Below base",
		"reason.no_benchmark":     "No benchmark",
		"reason.no_thresholds":    "No thresholds",
		"reason.unparseable":      "Invalid value",
		"reason.kind_mismatch":    "Wrong value type",
		"reason.unknown_exercise": "Unknown exercise",
		"report.title":            "Test report",
		"report.latest":           "Latest tests",
		"report.profile":          "Level by category",
		"report.leaderboard":      "Leaderboard",
		"report.date":             "Date",
		"report.exercise":         "Exercise",
		"report.value":            "Value",
		"report.level":            "Level",
		"report.next":             "Next level",
		"report.category":         "Category",
		"report.average":          "Average",
		"report.tests":            "Tests",
		"report.position":         "#",
		"report.athlete":          "Athlete",
		"report.empty":            "No tests yet.",
		"report.top":              "Top level reached",
		"language.name.en":        "English",
		"language.name.it":        "Italiano",
	},
	Italian: {
		"tier.base":               "Base",
		"tier.beginner":           "Principiante",
		"tier.intermediate":       "Intermedio",
		"tier.good":               "Buono",
		"tier.elite":              "Elite",
		"reason.below_base":       "Sotto base",
		"reason.no_benchmark":     "Benchmark mancante",
		"reason.no_thresholds":    "Soglie mancanti",
		"reason.unparseable":      "Valore non valido",
		"reason.kind_mismatch":    "Tipo di valore errato",
		"reason.unknown_exercise": "Esercizio sconosciuto",
		"report.title":            "Report test",
		"report.latest":           "Ultimi test",
		"report.profile":          "Livello per categoria",
		"report.leaderboard":      "Classifica",
		"report.date":             "Data",
		"report.exercise":         "Esercizio",
		"report.value":            "Valore",
		"report.level":            "Livello",
		"report.next":             "Prossimo livello",
		"report.category":         "Categoria",
		"report.average":          "Media",
		"report.tests":            "Test",
		"report.position":         "#",
		"report.athlete":          "Atleta",
		"report.empty":            "Nessun test registrato.",
		"report.top":              "Livello massimo raggiunto",
		"language.name.en":        "English",
		"language.name.it":        "Italiano",
	},
}

// SupportedLanguages returns a list of all supported languages.
func SupportedLanguages() []Language {
	return []Language{English, Italian}
}

// IsSupported checks if a language is supported.
func IsSupported(lang Language) bool {
	_, ok := translations[lang]
	return ok
}

// Parse maps a language code such as "it" or "IT" to a supported Language.
func Parse(code string) (Language, bool) {
	lang := Language(strings.ToLower(strings.TrimSpace(code)))
	return lang, IsSupported(lang)
}

// Translate returns the translation for the given key in the specified language.
// If the key is not found, it falls back to the default language.
// If still not found, it returns the key itself.
func Translate(lang Language, key string) string {
	if langTranslations, ok := translations[lang]; ok {
		if translation, ok := langTranslations[key]; ok {
			return translation
		}
	}
	if lang != DefaultLanguage {
		if translation, ok := translations[DefaultLanguage][key]; ok {
			return translation
		}
	}
	return key
}
