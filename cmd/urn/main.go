// Command urn counts the draws from a labeled multiset that satisfy a set
// of constraints, or measures their probability.
//
//	urn -c 'COUNT DRAWS 3..7 FROM blue=12, red=16, green=11 WHERE red < 4 OR blue = 3;'
//	urn -f queries.urn
//	urn                   # interactive shell
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/gitrdm/urn/internal/config"
	"github.com/gitrdm/urn/internal/shell"
	"github.com/gitrdm/urn/pkg/urn"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := kingpin.New("urn", "Count or measure the probability of draws from a labeled multiset.")
	app.HelpFlag.Short('h')
	app.Version(urn.GetVersion())
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	configPath := app.Flag("config", "YAML configuration file.").Envar(config.EnvPath).String()
	logLevel := app.Flag("log-level", "Log level (overrides the configuration).").String()
	format := app.Flag("format", "Output format (overrides the configuration).").Enum(config.FormatTable, config.FormatPlot)
	command := app.Flag("command", "Run the given statements and exit.").Short('c').String()
	file := app.Flag("file", "Run the statements in the given file and exit.").Short('f').String()

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "urn: %s\n", err)
		return 2
	}
	if *command != "" && *file != "" {
		fmt.Fprintln(stderr, "urn: --command and --file cannot be used together")
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "urn: %s\n", err)
		return 2
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	log, err := cfg.NewLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "urn: %s\n", err)
		return 2
	}

	session, err := shell.NewSession(cfg, log, useColor(cfg.Output.Color, stdout))
	if err != nil {
		fmt.Fprintf(stderr, "urn: %s\n", err)
		return 1
	}

	src := *command
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(stderr, "urn: %s\n", errors.Wrap(err, "reading statements"))
			return 1
		}
		src = string(data)
	}
	if src == "" {
		if err := session.Run(stdin, stdout, isTerminal(stdin)); err != nil {
			fmt.Fprintf(stderr, "urn: %s\n", err)
			return 1
		}
		return 0
	}

	if err := session.Exec(stdout, src); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
