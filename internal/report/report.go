// Package report renders athlete and leaderboard reports as Markdown and converts them to HTML with goldmark.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/myrjola/boxlevels/internal/i18n"
	"github.com/myrjola/boxlevels/internal/leveling"
)

// Athlete is the content of an athlete report.
type Athlete struct {
	Name    string
	Latest  []leveling.EntryResult
	Profile []leveling.CategoryLevel
}

// Board is the content of a leaderboard report.
type Board struct {
	Exercise string
	Kind     leveling.ValueKind
	Rankings []leveling.Ranking
}

// Renderer renders reports in one language.
type Renderer struct {
	lang     i18n.Language
	markdown goldmark.Markdown
}

// NewRenderer creates a Renderer for lang. Raw HTML in names is never passed through.
func NewRenderer(lang i18n.Language) *Renderer {
	return &Renderer{
		lang:     lang,
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

func (r *Renderer) t(key string) string {
	return i18n.Translate(r.lang, key)
}

// Level labels the outcome of a classification in the renderer's language.
func (r *Renderer) Level(result leveling.Result) string {
	if result.Achieved != nil {
		return r.t("tier." + result.Achieved.String())
	}
	return r.t("reason." + string(result.Reason))
}

// Next labels the next tier and its target, if any.
func (r *Renderer) Next(result leveling.Result) string {
	switch {
	case result.Next != nil && result.NextTarget != nil:
		return r.t("tier."+result.Next.String()) + " (" + result.NextTarget.Display + ")"
	case result.Achieved != nil && *result.Achieved == leveling.TierElite:
		return r.t("report.top")
	default:
		return "-"
	}
}

// AthleteMarkdown writes the report of one athlete as Markdown.
func (r *Renderer) AthleteMarkdown(w io.Writer, a Athlete) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", r.t("report.title"), cell(a.Name))

	fmt.Fprintf(&b, "## %s\n\n", r.t("report.latest"))
	if len(a.Latest) == 0 {
		fmt.Fprintf(&b, "%s\n\n", r.t("report.empty"))
	} else {
		row(&b, r.t("report.date"), r.t("report.exercise"), r.t("report.value"), r.t("report.level"),
			r.t("report.next"))
		row(&b, "---", "---", "---:", "---", "---")
		for _, l := range a.Latest {
			row(&b, l.Entry.Date.Format(time.DateOnly), l.Entry.Exercise, l.Entry.RawValue, r.Level(l.Result),
				r.Next(l.Result))
		}
		b.WriteString("\n")
	}

	if len(a.Profile) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", r.t("report.profile"))
		row(&b, r.t("report.category"), r.t("report.average"), r.t("report.tests"))
		row(&b, "---", "---:", "---:")
		for _, p := range a.Profile {
			row(&b, p.Category, strconv.FormatFloat(p.Average, 'f', 2, 64), strconv.Itoa(p.Count))
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// BoardMarkdown writes a leaderboard as Markdown.
func (r *Renderer) BoardMarkdown(w io.Writer, board Board) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", r.t("report.leaderboard"), cell(board.Exercise))
	if len(board.Rankings) == 0 {
		fmt.Fprintf(&b, "%s\n", r.t("report.empty"))
	} else {
		row(&b, r.t("report.position"), r.t("report.athlete"), r.t("report.value"), r.t("report.level"),
			r.t("report.date"))
		row(&b, "---:", "---", "---:", "---", "---")
		for _, rank := range board.Rankings {
			row(&b, strconv.Itoa(rank.Position), rank.Entry.Athlete, leveling.FormatValue(rank.Value, board.Kind),
				r.Level(rank.Result), rank.Entry.Date.Format(time.DateOnly))
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// AthleteHTML writes the report of one athlete as an HTML fragment.
func (r *Renderer) AthleteHTML(w io.Writer, a Athlete) error {
	var md bytes.Buffer
	if err := r.AthleteMarkdown(&md, a); err != nil {
		return err
	}
	return r.toHTML(w, md.Bytes())
}

// BoardHTML writes a leaderboard as an HTML fragment.
func (r *Renderer) BoardHTML(w io.Writer, board Board) error {
	var md bytes.Buffer
	if err := r.BoardMarkdown(&md, board); err != nil {
		return err
	}
	return r.toHTML(w, md.Bytes())
}

func (r *Renderer) toHTML(w io.Writer, source []byte) error {
	if err := r.markdown.Convert(source, w); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}
	return nil
}

func row(b *strings.Builder, cells ...string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" " + cell(c) + " |")
	}
	b.WriteString("\n")
}

// cell escapes characters that would break a table cell or a heading.
func cell(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
