// Command lucidmath compiles and evaluates formulas.
//
// With no subcommand, it evaluates each argument, or each line of its input
// when there are no arguments:
//
//	lucidmath '100+5*2' 'round(7, 5)'
//	lucidmath --given x=3 --given y=x^2 'sqrt(y)'
//	lucidmath --funcs funcs.yaml 'trip(100)'
//	lucidmath repl
//	lucidmath bench -w 4 'sin(1)*cos(1)'
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zephyrtronium/lucidmath/internal/log"
	"github.com/zephyrtronium/lucidmath/internal/profile"
)

// CLI is the command line of lucidmath.
type CLI struct {
	LogLevel  string `default:"warn" enum:"${levels}" help:"Log level. One of: ${levels}." group:"log"`
	LogFormat string `default:"text" enum:"${formats}" help:"Log format. One of: ${formats}." group:"log"`
	LogTime   string `default:"RFC3339" help:"Timestamp layout, either a name from package time or a custom layout. Use none to omit timestamps." group:"log" placeholder:"LAYOUT"`
	LogCaller bool   `negatable:"" help:"Include the source position of each message." group:"log"`

	Funcs string   `help:"YAML function table to load." type:"existingfile" placeholder:"FILE"`
	Given []string `sep:"none" help:"Define a name as the value of a formula, as name=formula. Repeatable." placeholder:"NAME=FORMULA"`

	Eval  Eval  `cmd:"" default:"withargs" help:"Evaluate formulas."`
	Repl  Repl  `cmd:"" help:"Evaluate formulas interactively."`
	Bench Bench `cmd:"" help:"Time repeated evaluation of a formula."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit)
	stop()
	if err != nil {
		log.ErrorContext(ctx, "run failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// run parses args and runs the selected command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, exit func(int)) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("lucidmath"),
		kong.Description("Compile and evaluate formulas."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups([]kong.Group{{Key: "log", Title: "Logging options"}}),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Vars{
			"levels":   strings.Join(log.Levels(), ","),
			"formats":  strings.Join(log.Formats(), ","),
			"profiles": "," + strings.Join(profile.Modes(), ","),
			"history":  historyPath(),
		},
	)
	if err != nil {
		return err
	}
	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	log.Config(
		log.WithOutput(stderr),
		log.WithLevel(log.ParseLevel(cli.LogLevel)),
		log.WithFormat(log.ParseFormat(cli.LogFormat)),
		log.WithTimeLayout(cli.LogTime),
		log.WithCaller(cli.LogCaller),
	)
	log.DebugContext(ctx, "logger initialized",
		slog.String("level", cli.LogLevel),
		slog.String("format", cli.LogFormat),
		slog.String("time_layout", cli.LogTime),
		slog.Bool("caller", cli.LogCaller),
	)
	s, err := newSession(cli.Funcs, cli.Given, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	return ktx.Run(s)
}

func historyPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "lucidmath", "history")
}
