package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/myrjola/boxlevels/internal/contexthelpers"
	"github.com/myrjola/boxlevels/internal/dashboard"
	"github.com/myrjola/boxlevels/internal/errors"
	"github.com/myrjola/boxlevels/internal/leveling"
	"github.com/myrjola/boxlevels/internal/ptr"
	"github.com/myrjola/boxlevels/internal/report"
)

// actorFlags identify who runs a command that changes data.
type actorFlags struct {
	role string
	name string
}

func addActorFlags(fs *flag.FlagSet) *actorFlags {
	var a actorFlags
	fs.StringVar(&a.role, "as", "", "role of the person running the command: athlete or coach")
	fs.StringVar(&a.name, "name", "", "name of the person running the command")
	return &a
}

// context stores the actor in ctx. Without -as the context carries no actor and every write is forbidden.
func (a *actorFlags) context(ctx context.Context) (context.Context, error) {
	switch contexthelpers.Role(a.role) {
	case "":
		return ctx, nil
	case contexthelpers.RoleAthlete, contexthelpers.RoleCoach:
		return contexthelpers.WithActor(ctx, contexthelpers.Actor{Name: a.name, Role: contexthelpers.Role(a.role)}), nil
	default:
		return nil, errors.Wrap(errUsage, "unknown role", slog.String("role", a.role))
	}
}

// testFlags describe a test value for record and classify.
type testFlags struct {
	athlete    string
	exercise   string
	value      string
	kind       string
	bodyWeight string
	gender     string
	date       string
}

func addTestFlags(fs *flag.FlagSet) *testFlags {
	var f testFlags
	fs.StringVar(&f.athlete, "athlete", "", "athlete name")
	fs.StringVar(&f.exercise, "exercise", "", "exercise name")
	fs.StringVar(&f.value, "value", "", "raw value: a number, or MM:SS for time")
	fs.StringVar(&f.kind, "kind", "", "value kind, defaults to the kind of the exercise")
	fs.StringVar(&f.bodyWeight, "bw", "", "body weight in kg, required for relative weight exercises")
	fs.StringVar(&f.gender, "gender", "", "male, female or other")
	fs.StringVar(&f.date, "date", "", "test date as YYYY-MM-DD, defaults to today")
	return &f
}

func (f *testFlags) newTest(now time.Time) (dashboard.NewTest, error) {
	test := dashboard.NewTest{
		Athlete:    f.athlete,
		Exercise:   f.exercise,
		RawValue:   f.value,
		Kind:       "",
		BodyWeight: nil,
		Gender:     leveling.Gender(f.gender),
		Date:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
	}
	if f.kind != "" {
		kind, known := leveling.ParseValueKind(f.kind)
		if !known {
			return test, errors.Wrap(errUsage, "unknown value kind", slog.String("kind", f.kind))
		}
		test.Kind = kind
	}
	if f.bodyWeight != "" {
		bw, ok := leveling.ParseNumber(f.bodyWeight)
		if !ok {
			return test, errors.Wrap(errUsage, "invalid body weight", slog.String("bw", f.bodyWeight))
		}
		test.BodyWeight = ptr.Ref(bw)
	}
	if f.date != "" {
		date, err := time.Parse(time.DateOnly, f.date)
		if err != nil {
			return test, errors.Wrap(errUsage, "invalid date", slog.String("date", f.date))
		}
		test.Date = date
	}
	return test, nil
}

func runSeed(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "seed")
	actor := addActorFlags(fs)
	file := fs.String("file", "-", "YAML seed file, - reads stdin")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}

	r := app.stdin
	if *file != "-" {
		f, openErr := os.Open(*file)
		if openErr != nil {
			return errors.Wrap(openErr, "open seed", slog.String("file", *file))
		}
		defer f.Close()
		r = f
	}
	summary, err := app.service.ImportSeed(ctx, r)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Imported %d exercises and %d benchmarks, skipped %d duplicates\n",
		summary.Exercises, summary.Benchmarks, summary.SkippedDuplicates)
	if summary.Athletes > 0 || summary.Workouts > 0 {
		fmt.Fprintf(app.stdout, "Imported %d athletes and %d workouts\n", summary.Athletes, summary.Workouts)
	}
	return nil
}

func runSaveExercise(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "exercise")
	actor := addActorFlags(fs)
	var def leveling.ExerciseDefinition
	fs.StringVar(&def.Name, "exercise", "", "exercise name")
	fs.StringVar(&def.Category, "category", "", "category such as Strength or Engine")
	kind := fs.String("kind", string(leveling.KindGeneric), "weight_relative, reps, time or generic_numeric")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}
	def.Kind = leveling.ValueKind(*kind)
	if err = app.service.SaveExercise(ctx, def); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Saved exercise %s\n", def.Name)
	return nil
}

func runSaveBenchmark(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "benchmark")
	actor := addActorFlags(fs)
	exercise := fs.String("exercise", "", "exercise name")
	gender := fs.String("gender", "", "male, female or other")
	thresholds := make(map[leveling.Tier]*string)
	for _, tier := range leveling.Tiers() {
		thresholds[tier] = fs.String(tier.String(), "", "threshold of the "+tier.String()+" tier")
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}

	row := leveling.BenchmarkRow{
		Exercise:   *exercise,
		Gender:     leveling.Gender(*gender),
		Thresholds: make(map[leveling.Tier]string),
	}
	for tier, raw := range thresholds {
		if *raw != "" {
			row.Thresholds[tier] = *raw
		}
	}
	if err = app.service.SaveBenchmark(ctx, row); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Saved benchmark %s (%s)\n", row.Exercise, row.Gender)
	return nil
}

func runExercises(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "exercises")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	exercises, err := app.service.Exercises(ctx)
	if err != nil {
		return err
	}
	tw := newTable(app.stdout, "EXERCISE", "CATEGORY", "KIND")
	for _, def := range exercises {
		tableRow(tw, def.Name, def.Category, string(def.Kind))
	}
	return tw.Flush()
}

func runRecord(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "record")
	actor := addActorFlags(fs)
	tf := addTestFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}
	test, err := tf.newTest(time.Now())
	if err != nil {
		return err
	}

	analysis, err := app.service.RecordTest(ctx, test)
	if err != nil {
		return err
	}
	entry := analysis.Entry
	fmt.Fprintf(app.stdout, "Recorded %s\n", entry.ID)
	fmt.Fprintf(app.stdout, "%s %s %s: %s, next %s\n", entry.Date.Format(time.DateOnly), entry.Exercise,
		entry.RawValue, app.renderer.Level(analysis.Result), app.renderer.Next(analysis.Result))
	if entry.RelativeStrength != nil {
		fmt.Fprintf(app.stdout, "Relative strength %s\n", strconv.FormatFloat(*entry.RelativeStrength, 'f', 2, 64))
	}
	if analysis.Previous != nil {
		previous := analysis.Previous
		fmt.Fprintf(app.stdout, "Previous %s %s: %s\n", previous.Entry.Date.Format(time.DateOnly),
			previous.Entry.RawValue, app.renderer.Level(previous.Result))
		fmt.Fprintf(app.stdout, "Progress %s\n", progress(analysis.Progress))
	}
	fmt.Fprintf(app.stdout, "Retest on %s\n", analysis.RetestOn.Format(time.DateOnly))
	return nil
}

func progress(p leveling.Progress) string {
	if p.PercentChange == nil {
		return "-"
	}
	s := strconv.FormatFloat(*p.PercentChange, 'f', 1, 64) + "%"
	if *p.PercentChange > 0 {
		s = "+" + s
	}
	if p.TierIncreased {
		s += ", level up"
	}
	return s
}

func runClassify(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "classify")
	tf := addTestFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	test, err := tf.newTest(time.Now())
	if err != nil {
		return err
	}
	result, err := app.service.Preview(ctx, test)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "%s %s: %s, next %s\n", test.Exercise, test.RawValue, app.renderer.Level(result),
		app.renderer.Next(result))
	return nil
}

func runDelete(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "delete")
	actor := addActorFlags(fs)
	rawID := fs.String("id", "", "id of the test to delete")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return errors.Wrap(errUsage, "invalid test id", slog.String("id", *rawID))
	}
	if err = app.service.DeleteTest(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Deleted %s\n", id)
	return nil
}

func athleteFlag(fs *flag.FlagSet) *string {
	return fs.String("athlete", "", "athlete name")
}

func runHistory(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "history")
	athlete := athleteFlag(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	history, err := app.service.History(ctx, *athlete)
	if err != nil {
		return err
	}
	return writeResults(app, history, true)
}

func runLatest(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "latest")
	athlete := athleteFlag(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	latest, err := app.service.Latest(ctx, *athlete)
	if err != nil {
		return err
	}
	return writeResults(app, latest, false)
}

func writeResults(app *application, results []leveling.EntryResult, withID bool) error {
	headers := []string{"DATE", "EXERCISE", "VALUE", "LEVEL", "NEXT"}
	if withID {
		headers = append(headers, "ID")
	}
	tw := newTable(app.stdout, headers...)
	for _, r := range results {
		cells := []string{
			r.Entry.Date.Format(time.DateOnly), r.Entry.Exercise, r.Entry.RawValue,
			app.renderer.Level(r.Result), app.renderer.Next(r.Result),
		}
		if withID {
			cells = append(cells, r.Entry.ID.String())
		}
		tableRow(tw, cells...)
	}
	return tw.Flush()
}

func genderFlag(fs *flag.FlagSet) *string {
	return fs.String("gender", "", "restrict to male, female or other")
}

func parseGenderFilter(raw string) (*leveling.Gender, error) {
	if raw == "" {
		return nil, nil //nolint:nilnil // no filter
	}
	gender, ok := leveling.ParseGender(raw)
	if !ok {
		return nil, errors.Wrap(errUsage, "unknown gender", slog.String("gender", raw))
	}
	return &gender, nil
}

func runLeaderboard(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "leaderboard")
	exercise := fs.String("exercise", "", "exercise name")
	rawGender := genderFlag(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	board, err := leaderboard(ctx, app, *exercise, *rawGender)
	if err != nil {
		return err
	}
	tw := newTable(app.stdout, "#", "ATHLETE", "VALUE", "LEVEL", "DATE")
	for _, rank := range board.Rankings {
		tableRow(tw, strconv.Itoa(rank.Position), rank.Entry.Athlete, leveling.FormatValue(rank.Value, board.Kind),
			app.renderer.Level(rank.Result), rank.Entry.Date.Format(time.DateOnly))
	}
	return tw.Flush()
}

func leaderboard(ctx context.Context, app *application, exercise, rawGender string) (report.Board, error) {
	gender, err := parseGenderFilter(rawGender)
	if err != nil {
		return report.Board{}, err
	}
	rankings, err := app.service.Leaderboard(ctx, exercise, gender)
	if err != nil {
		return report.Board{}, err
	}
	exercises, err := app.service.Exercises(ctx)
	if err != nil {
		return report.Board{}, err
	}
	def, _ := leveling.FindExercise(exercise, exercises)
	return report.Board{Exercise: def.Name, Kind: def.Kind, Rankings: rankings}, nil
}

func runProfile(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "profile")
	athlete := fs.String("athlete", "", "athlete name, empty for the whole box")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	profile, err := app.service.Profile(ctx, *athlete)
	if err != nil {
		return err
	}
	tw := newTable(app.stdout, "CATEGORY", "AVERAGE", "TESTS")
	for _, p := range profile {
		tableRow(tw, p.Category, strconv.FormatFloat(p.Average, 'f', 2, 64), strconv.Itoa(p.Count))
	}
	return tw.Flush()
}

func runStandings(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "standings")
	category := fs.String("category", "", "category such as Strength or Engine")
	rawGender := genderFlag(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	gender, err := parseGenderFilter(*rawGender)
	if err != nil {
		return err
	}
	board, err := app.service.CategoryLeaderboard(ctx, *category, gender)
	if err != nil {
		return err
	}
	if len(board.Numeric) == 0 && len(board.Timed) == 0 {
		fmt.Fprintf(app.stdout, "No tests in %s\n", board.Category)
		return nil
	}
	if len(board.Numeric) > 0 {
		fmt.Fprintf(app.stdout, "%s: sum of personal bests\n", board.Category)
		if err = writeStandings(app, board.Numeric, leveling.KindGeneric); err != nil {
			return err
		}
	}
	if len(board.Timed) > 0 {
		fmt.Fprintf(app.stdout, "%s: sum of best times\n", board.Category)
		if err = writeStandings(app, board.Timed, leveling.KindTime); err != nil {
			return err
		}
	}
	return nil
}

func writeStandings(app *application, standings []leveling.Standing, kind leveling.ValueKind) error {
	tw := newTable(app.stdout, "#", "ATHLETE", "TOTAL", "EXERCISES")
	for _, s := range standings {
		total := strconv.FormatFloat(s.Total, 'f', 2, 64)
		if kind == leveling.KindTime {
			total = leveling.FormatTime(s.Total)
		}
		tableRow(tw, strconv.Itoa(s.Position), s.Athlete, total, strconv.Itoa(s.Exercises))
	}
	return tw.Flush()
}

func runSaveAthlete(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "athlete")
	actor := addActorFlags(fs)
	name := athleteFlag(fs)
	gender := fs.String("gender", "", "male, female or other")
	bodyWeight := fs.String("bw", "", "body weight in kg")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}

	athlete := dashboard.Athlete{Name: *name, Gender: nil, BodyWeight: nil}
	if *gender != "" {
		athlete.Gender = ptr.Ref(leveling.Gender(*gender))
	}
	if *bodyWeight != "" {
		bw, ok := leveling.ParseNumber(*bodyWeight)
		if !ok {
			return errors.Wrap(errUsage, "invalid body weight", slog.String("bw", *bodyWeight))
		}
		athlete.BodyWeight = ptr.Ref(bw)
	}
	if err = app.service.SaveAthlete(ctx, athlete); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Saved athlete %s\n", strings.TrimSpace(athlete.Name))
	return nil
}

func runAthletes(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "athletes")
	actor := addActorFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}
	athletes, err := app.service.Athletes(ctx)
	if err != nil {
		return err
	}
	tw := newTable(app.stdout, "ATHLETE", "GENDER", "BODY WEIGHT")
	for _, a := range athletes {
		gender, bw := "-", "-"
		if a.Gender != nil {
			gender = string(*a.Gender)
		}
		if a.BodyWeight != nil {
			bw = strconv.FormatFloat(*a.BodyWeight, 'f', -1, 64)
		}
		tableRow(tw, a.Name, gender, bw)
	}
	return tw.Flush()
}

// runWorkout dispatches "wod list", "wod save" and "wod delete". A bare "wod" lists the calendar.
func runWorkout(ctx context.Context, app *application, args []string) error {
	action := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		action, args = args[0], args[1:]
	}
	switch action {
	case "list":
		return runListWorkouts(ctx, app, args)
	case "save":
		return runSaveWorkout(ctx, app, args)
	case "delete":
		return runDeleteWorkout(ctx, app, args)
	default:
		return errors.Wrap(errUsage, "unknown wod action", slog.String("action", action))
	}
}

func parseDateFlag(name, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, errors.Wrap(errUsage, "invalid date", slog.String(name, raw))
	}
	return date, nil
}

func runListWorkouts(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "wod list")
	rawFrom := fs.String("from", "", "first date as YYYY-MM-DD")
	rawTo := fs.String("to", "", "last date as YYYY-MM-DD")
	search := fs.String("search", "", "only workouts whose name contains this text")
	verbose := fs.Bool("v", false, "print the description and the version of every level")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	from, err := parseDateFlag("from", *rawFrom)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", *rawTo)
	if err != nil {
		return err
	}
	workouts, err := app.service.Workouts(ctx, from, to)
	if err != nil {
		return err
	}

	needle := strings.ToLower(strings.TrimSpace(*search))
	tw := newTable(app.stdout, "DATE", "WOD", "TITLE", "SCORE", "EXERCISES", "ID")
	var shown []dashboard.Workout
	for _, w := range workouts {
		if needle != "" && !strings.Contains(strings.ToLower(w.Name), needle) {
			continue
		}
		shown = append(shown, w)
		tableRow(tw, w.Date.Format(time.DateOnly), w.Name, w.Title, string(w.Score),
			strings.Join(w.Exercises, ", "), w.ID.String())
	}
	if err = tw.Flush(); err != nil {
		return err
	}
	if *verbose {
		for _, w := range shown {
			fmt.Fprintf(app.stdout, "\n%s %s\n%s\n", w.Date.Format(time.DateOnly), w.Name, w.Description)
			fmt.Fprintf(app.stdout, "  Beginner: %s\n  Intermediate: %s\n  Advanced: %s\n",
				w.Beginner, w.Intermediate, w.Advanced)
		}
	}
	return nil
}

func runSaveWorkout(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "wod save")
	actor := addActorFlags(fs)
	rawID := fs.String("id", "", "id of the workout to edit, empty to create one")
	var w dashboard.Workout
	fs.StringVar(&w.Name, "wod", "", "workout name")
	fs.StringVar(&w.Title, "title", "", "title or goal of the workout")
	fs.StringVar(&w.Description, "description", "", "description")
	rawDate := fs.String("date", "", "scheduled date as YYYY-MM-DD")
	fs.StringVar(&w.Beginner, "beginner", "", "beginner version")
	fs.StringVar(&w.Intermediate, "intermediate", "", "intermediate version")
	fs.StringVar(&w.Advanced, "advanced", "", "advanced version")
	exercises := fs.String("exercises", "", "comma separated exercises")
	score := fs.String("score", string(dashboard.ScoreOther),
		"weight, reps, time, calories, meters, rounds or other")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}
	if *rawID != "" {
		if w.ID, err = uuid.Parse(*rawID); err != nil {
			return errors.Wrap(errUsage, "invalid workout id", slog.String("id", *rawID))
		}
	}
	if w.Date, err = parseDateFlag("date", *rawDate); err != nil {
		return err
	}
	w.Exercises = dashboard.SplitExercises(*exercises)
	w.Score = dashboard.WorkoutScore(*score)

	saved, err := app.service.SaveWorkout(ctx, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Saved workout %s %s\n", saved.ID, saved.Name)
	return nil
}

func runDeleteWorkout(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "wod delete")
	actor := addActorFlags(fs)
	rawID := fs.String("id", "", "id of the workout to delete")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx, err := actor.context(ctx)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return errors.Wrap(errUsage, "invalid workout id", slog.String("id", *rawID))
	}
	if err = app.service.DeleteWorkout(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "Deleted workout %s\n", id)
	return nil
}

func runBalance(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "balance")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	balance, err := app.service.Balance(ctx)
	if err != nil {
		return err
	}
	headers := []string{"ATHLETE"}
	for _, c := range balance.Categories {
		if c == "" {
			c = "-"
		}
		headers = append(headers, strings.ToUpper(c))
	}
	headers = append(headers, "TOTAL")
	tw := newTable(app.stdout, headers...)
	for _, row := range balance.Rows {
		cells := []string{row.Athlete}
		for _, n := range row.Counts {
			cells = append(cells, strconv.Itoa(n))
		}
		cells = append(cells, strconv.Itoa(row.Total))
		tableRow(tw, cells...)
	}
	return tw.Flush()
}

func runReport(ctx context.Context, app *application, args []string) error {
	fs := flagSet(app, "report")
	athlete := fs.String("athlete", "", "athlete whose report to render")
	exercise := fs.String("exercise", "", "exercise whose leaderboard to render")
	rawGender := genderFlag(fs)
	format := fs.String("format", "md", "md or html")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *format != "md" && *format != "html" {
		return errors.Wrap(errUsage, "unknown format", slog.String("format", *format))
	}
	html := *format == "html"

	switch {
	case *athlete != "" && *exercise == "":
		latest, err := app.service.Latest(ctx, *athlete)
		if err != nil {
			return err
		}
		profile, err := app.service.Profile(ctx, *athlete)
		if err != nil {
			return err
		}
		a := report.Athlete{Name: *athlete, Latest: latest, Profile: profile}
		if html {
			return app.renderer.AthleteHTML(app.stdout, a)
		}
		return app.renderer.AthleteMarkdown(app.stdout, a)
	case *exercise != "" && *athlete == "":
		board, err := leaderboard(ctx, app, *exercise, *rawGender)
		if err != nil {
			return err
		}
		if html {
			return app.renderer.BoardHTML(app.stdout, board)
		}
		return app.renderer.BoardMarkdown(app.stdout, board)
	default:
		return errors.Wrap(errUsage, "report needs exactly one of -athlete or -exercise")
	}
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // two spaces between columns
	tableRow(tw, headers...)
	return tw
}

func tableRow(tw *tabwriter.Writer, cells ...string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}
