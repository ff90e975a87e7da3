package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/myrjola/boxlevels/internal/dashboard"
	"github.com/myrjola/boxlevels/internal/envstruct"
	"github.com/myrjola/boxlevels/internal/errors"
	"github.com/myrjola/boxlevels/internal/i18n"
	"github.com/myrjola/boxlevels/internal/logging"
	"github.com/myrjola/boxlevels/internal/report"
	"github.com/myrjola/boxlevels/internal/sqlite"
)

type config struct {
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"BOXLEVELS_SQLITE_URL" envDefault:"./boxlevels.sqlite3"`
	// LogLevel is one of debug, info, warn or error. Logs are written to stderr.
	LogLevel string `env:"BOXLEVELS_LOG_LEVEL" envDefault:"info" envOneOf:"debug,info,warn,error"`
	// Language selects the labels of tiers and reports.
	Language string `env:"BOXLEVELS_LANGUAGE" envDefault:"en" envOneOf:"en,it"`
}

var errUsage = errors.NewSentinel("usage")

// application holds what every command needs.
type application struct {
	logger   *slog.Logger
	service  *dashboard.Service
	renderer *report.Renderer
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

// command runs one subcommand with its arguments.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, app *application, args []string) error
}

func commands() []command {
	return []command{
		{name: "seed", summary: "import reference data, athletes and workouts from a YAML seed", run: runSeed},
		{name: "exercise", summary: "create or update an exercise definition", run: runSaveExercise},
		{name: "benchmark", summary: "create or update the benchmark of an exercise and gender", run: runSaveBenchmark},
		{name: "exercises", summary: "list the exercise table", run: runExercises},
		{name: "record", summary: "record a test and show the analysis", run: runRecord},
		{name: "classify", summary: "classify a value without recording it", run: runClassify},
		{name: "delete", summary: "delete a recorded test", run: runDelete},
		{name: "history", summary: "list the tests of an athlete, newest first", run: runHistory},
		{name: "latest", summary: "show the latest test of an athlete per exercise", run: runLatest},
		{name: "leaderboard", summary: "rank the athletes for an exercise", run: runLeaderboard},
		{name: "profile", summary: "average level per category", run: runProfile},
		{name: "standings", summary: "rank the athletes of a category by summed personal bests", run: runStandings},
		{name: "balance", summary: "count tests per athlete and category", run: runBalance},
		{name: "athlete", summary: "create or update an athlete profile", run: runSaveAthlete},
		{name: "athletes", summary: "list the athlete profiles", run: runAthletes},
		{name: "wod", summary: "list, save or delete workouts of the day", run: runWorkout},
		{name: "report", summary: "render an athlete or leaderboard report as Markdown or HTML", run: runReport},
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: levels <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-12s %s\n", c.name, c.summary)
	}
}

func run(
	ctx context.Context,
	lookupEnv func(string) (string, bool),
	args []string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) (err error) {
	var cancel context.CancelFunc
	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	logger := logging.New(stderr, level)
	lang, ok := i18n.Parse(cfg.Language)
	if !ok {
		return errors.New("unsupported language", slog.String("language", cfg.Language))
	}

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(stdout)
		return nil
	}
	var cmd *command
	for _, c := range commands() {
		if c.name == args[0] {
			cmd = &c
			break
		}
	}
	if cmd == nil {
		usage(stderr)
		return errors.Wrap(errUsage, "unknown command", slog.String("command", args[0]))
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close db"))
		}
	}()
	logger.LogAttrs(ctx, slog.LevelDebug, "connected to db")

	app := &application{
		logger:   logger,
		service:  dashboard.NewService(dashboard.NewSQLiteRepository(db, logger), logger),
		renderer: report.NewRenderer(lang),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}
	ctx = logging.WithAttrs(ctx, slog.String("command", cmd.name))
	if err = cmd.run(ctx, app, args[1:]); err != nil {
		return errors.Wrap(err, cmd.name)
	}
	return nil
}

func main() {
	ctx := context.Background()
	logger := logging.New(os.Stderr, slog.LevelInfo)
	if err := run(ctx, os.LookupEnv, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.LogAttrs(ctx, slog.LevelError, "command failed", errors.SlogError(err))
		if errors.Is(err, errUsage) {
			os.Exit(2) //nolint:mnd // usage error
		}
		os.Exit(1)
	}
}

// flagSet creates a flag set that reports errors instead of exiting.
func flagSet(app *application, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(app.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errors.Wrap(errUsage, err.Error())
	}
	if fs.NArg() > 0 {
		return errors.Wrap(errUsage, "unexpected arguments", slog.String("args", strings.Join(fs.Args(), " ")))
	}
	return nil
}
