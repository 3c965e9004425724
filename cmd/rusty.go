package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/posidron/rusty/pkg/config"
	"github.com/posidron/rusty/pkg/define"
	"github.com/posidron/rusty/pkg/log"
	"github.com/posidron/rusty/pkg/repl"
	"github.com/posidron/rusty/pkg/rusty"
	"github.com/posidron/rusty/pkg/stdlib"
)

const description = "Run a rusty script, or start the REPL when no file is given."

// CLI is the rusty command line.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Config  kong.ConfigFlag  `help:"Configuration file (default ${configPath})." type:"path"`
	Version kong.VersionFlag `help:"Print the version and exit."`

	MaxCallDepth  int      `default:"${maxCallDepth}"  help:"Maximum nesting of function calls."`
	MaxParseDepth int      `default:"${maxParseDepth}" help:"Maximum nesting of the source."`
	Define        []string `help:"Define a global from an expr-lang expression." placeholder:"NAME=EXPR" short:"D"`
	Dump          string   `default:"" enum:",source,yaml,json" help:"Print the parsed program (${enum}) instead of running it."`
	History       string   `default:"${historyPath}" help:"REPL history file." type:"path"`

	File string `arg:"" help:"Script to run." optional:"" type:"existingfile"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Exit, os.Args[1:]...)
	stop()
	if err != nil {
		log.Debug("run failed", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, exit func(int), args ...string) error {
	var cli CLI

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(config.Name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.Configuration(config.Load, config.DefaultPath()),
		kong.Vars{
			"version":       rusty.VERSION,
			"configPath":    config.DefaultPath(),
			"historyPath":   config.DefaultHistoryPath(),
			"maxCallDepth":  fmt.Sprint(rusty.DefaultMaxCallDepth),
			"maxParseDepth": fmt.Sprint(rusty.DefaultMaxParseDepth),
		}.CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := cli.Log.start(ctx)
	stopProfile, err := cli.Pprof.start(ctx)
	if err != nil {
		return err
	}
	defer stopProfile()

	return cli.run(ctx, logger)
}

func (cli *CLI) run(ctx context.Context, logger log.Logger) error {
	defined, err := define.Parse(cli.Define)
	if err != nil {
		return err
	}
	opts := []rusty.Option{
		rusty.WithLogger(logger),
		rusty.WithGlobals(rusty.Merge(stdlib.Bindings(), defined)),
		rusty.WithMaxCallDepth(cli.MaxCallDepth),
		rusty.WithMaxParseDepth(cli.MaxParseDepth),
	}

	if cli.File == "" {
		if cli.Dump != "" {
			return errors.New("--dump needs a FILE")
		}
		return repl.Run(ctx,
			repl.WithLogger(logger),
			repl.WithHistory(cli.History),
			repl.WithInterpreter(opts...),
		)
	}

	source, err := rusty.ReadProgram(cli.File)
	if err != nil {
		return err
	}
	if cli.Dump != "" {
		return dump(source, cli.Dump, opts)
	}
	return rusty.RunProgram(ctx, cli.File, source, opts...)
}

func dump(source, format string, opts []rusty.Option) error {
	dumpFormat, err := rusty.ParseDumpFormat(format)
	if err != nil {
		return err
	}
	statements, err := rusty.New(opts...).Parse(source)
	if err != nil {
		return err
	}
	out, err := rusty.Dump(statements, dumpFormat)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
