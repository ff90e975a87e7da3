package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/myrjola/boxlevels/internal/i18n"
	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/ptr"
	"github.com/myrjola/boxlevels/internal/report"
)

func athlete() report.Athlete {
	return report.Athlete{
		Name: "Anna",
		Latest: []leveling.EntryResult{
			{
				Entry: leveling.TestEntry{
					Athlete: "Anna", Exercise: "Row 500m", RawValue: "2:00", Kind: leveling.KindTime,
					Gender: leveling.GenderFemale, Date: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
				},
				Result: leveling.Result{
					Value:      ptr.Ref(120.0),
					Achieved:   ptr.Ref(leveling.TierIntermediate),
					Next:       ptr.Ref(leveling.TierGood),
					NextTarget: &leveling.Target{Value: 115, Display: "01:55"},
					Reason:     leveling.ReasonClassified,
				},
			},
			{
				Entry: leveling.TestEntry{
					Athlete: "Anna", Exercise: "Deadlift", RawValue: "100", Kind: leveling.KindWeightRelative,
					Gender: leveling.GenderOther, Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
				},
				Result: leveling.Result{
					Value: ptr.Ref(1.25), Achieved: nil, Next: nil, NextTarget: nil, Reason: leveling.ReasonNoBenchmark,
				},
			},
		},
		Profile: []leveling.CategoryLevel{
			{Category: "Engine", Average: 3, Count: 1},
			{Category: "Strength", Average: 0, Count: 1},
		},
	}
}

func render(t *testing.T, lang i18n.Language, a report.Athlete) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := report.NewRenderer(lang).AthleteHTML(&buf, a); err != nil {
		t.Fatalf("AthleteHTML() error = %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return doc
}

func cells(s *goquery.Selection) [][]string {
	var rows [][]string
	s.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		rows = append(rows, row)
	})
	return rows
}

func TestAthleteHTML(t *testing.T) {
	tests := []struct {
		name        string
		lang        i18n.Language
		wantTitle   string
		wantLatest  [][]string
		wantProfile [][]string
	}{
		{
			name:      "english",
			lang:      i18n.English,
			wantTitle: "Test report: Anna",
			wantLatest: [][]string{
				{"2024-02-01", "Row 500m", "2:00", "Intermediate", "Good (01:55)"},
				{"2024-03-01", "Deadlift", "100", "No benchmark", "-"},
			},
			wantProfile: [][]string{{"Engine", "3.00", "1"}, {"Strength", "0.00", "1"}},
		},
		{
			name:      "italian",
			lang:      i18n.Italian,
			wantTitle: "Report test: Anna",
			wantLatest: [][]string{
				{"2024-02-01", "Row 500m", "2:00", "Intermedio", "Buono (01:55)"},
				{"2024-03-01", "Deadlift", "100", "Benchmark mancante", "-"},
			},
			wantProfile: [][]string{{"Engine", "3.00", "1"}, {"Strength", "0.00", "1"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := render(t, tt.lang, athlete())
			if got := doc.Find("h1").Text(); got != tt.wantTitle {
				t.Errorf("title = %q, want %q", got, tt.wantTitle)
			}
			tables := doc.Find("table")
			if tables.Length() != 2 {
				t.Fatalf("found %d tables, want 2", tables.Length())
			}
			if diff := cmp.Diff(tt.wantLatest, cells(tables.Eq(0))); diff != "" {
				t.Errorf("latest table mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantProfile, cells(tables.Eq(1))); diff != "" {
				t.Errorf("profile table mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAthleteHTML_EscapesInput(t *testing.T) {
	a := athlete()
	a.Name = "<script>alert(1)</script>"
	a.Latest[0].Entry.Exercise = "Row | 500m"

	doc := render(t, i18n.English, a)
	if doc.Find("script").Length() != 0 {
		t.Error("raw HTML from a name reached the report")
	}
	if got := strings.TrimSpace(doc.Find("tbody tr").First().Find("td").Eq(1).Text()); got != "Row | 500m" {
		t.Errorf("exercise cell = %q, want the pipe kept inside the cell", got)
	}
}

func TestAthleteHTML_Empty(t *testing.T) {
	doc := render(t, i18n.English, report.Athlete{Name: "Nobody", Latest: nil, Profile: nil})
	if doc.Find("table").Length() != 0 {
		t.Error("expected no tables for an athlete without tests")
	}
	if !strings.Contains(doc.Text(), "No tests yet.") {
		t.Errorf("report %q does not mention the missing tests", doc.Text())
	}
}

func TestBoardHTML(t *testing.T) {
	board := report.Board{
		Exercise: "Row 500m",
		Kind:     leveling.KindTime,
		Rankings: []leveling.Ranking{
			{
				Position: 1,
				Entry: leveling.TestEntry{
					Athlete: "Luca", Exercise: "Row 500m", RawValue: "1:35", Kind: leveling.KindTime,
					Gender: leveling.GenderMale, Date: time.Date(2024, time.February, 4, 0, 0, 0, 0, time.UTC),
				},
				Value: 95,
				Result: leveling.Result{
					Value: ptr.Ref(95.0), Achieved: ptr.Ref(leveling.TierGood), Next: ptr.Ref(leveling.TierElite),
					NextTarget: &leveling.Target{Value: 90, Display: "01:30"}, Reason: leveling.ReasonClassified,
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := report.NewRenderer(i18n.English).BoardHTML(&buf, board); err != nil {
		t.Fatalf("BoardHTML() error = %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	want := [][]string{{"1", "Luca", "01:35", "Good", "2024-02-04"}}
	if diff := cmp.Diff(want, cells(doc.Find("table"))); diff != "" {
		t.Errorf("leaderboard mismatch (-want +got):\n%s", diff)
	}
}

func TestLevel(t *testing.T) {
	r := report.NewRenderer(i18n.Italian)
	elite := leveling.Result{
		Value: ptr.Ref(30.0), Achieved: ptr.Ref(leveling.TierElite), Next: nil, NextTarget: nil,
		Reason: leveling.ReasonClassified,
	}
	if got := r.Level(elite); got != "Elite" {
		t.Errorf("Level() = %q, want Elite", got)
	}
	if got := r.Next(elite); got != "Livello massimo raggiunto" {
		t.Errorf("Next() = %q, want the top level label", got)
	}
}
