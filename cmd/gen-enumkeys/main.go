package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/seitarof/gen-enumkeys/internal/cli"
	"github.com/seitarof/gen-enumkeys/internal/generator"
	"github.com/seitarof/gen-enumkeys/internal/matcher"
	"github.com/seitarof/gen-enumkeys/internal/model"
	"github.com/seitarof/gen-enumkeys/internal/parser"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "gen-enumkeys:", err)
		return 2
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return 0
	}

	logger := cli.NewLogger(cfg.Verbose, os.Stderr)
	defer func() { _ = logger.Sync() }()

	reporter, err := cli.NewReporter(cfg.Format, os.Stderr)
	if err != nil {
		logger.Error("reporter", zap.Error(err))
		return 2
	}

	p := parser.New()
	m := matcher.NewSumMatcher()
	f := generator.NewGoimportsFormatter()
	w := generator.NewFileWriter()
	g := generator.New(f, w)

	runner := cli.NewRunner(p, m, g,
		cli.WithLogger(logger),
		cli.WithReporter(reporter),
		cli.WithDiffOutput(os.Stdout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx, cfg); err != nil {
		// Declaration errors were already printed by the reporter.
		if !errors.Is(err, model.ErrInvalidDeclaration) {
			logger.Error("generation failed", zap.Error(err))
		}
		return 1
	}
	return 0
}
