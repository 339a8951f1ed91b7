// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			if msg := usageErr.Error(); msg != "" {
				logger.Error(msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}

		var fault *chip8.Fault
		if errors.As(err, &fault) {
			logger.Error("Execution halted",
				log.Hex("address", fault.Address),
				log.Hex("opcode", fault.Instruction.Word),
				log.Err(fault.Err))
		} else {
			logger.Error("Running failed", log.Err(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) (rerr error) {
	writer, err := pipeline.CreateWriter(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := writer.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	p := pipeline.New(logger)
	return p.Execute(ctx, opts, writer)
}

// printBanner prints application version information
func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8 - CHIP-8 interpreter", log.String("version", buildinfo.Version(version, commit, date)))
}
