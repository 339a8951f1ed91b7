// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/random"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// RunnerConfig returns the timing configuration of the runner.
func RunnerConfig(opts options.Program) runner.Config {
	return runner.Config{
		CycleRate:     opts.CycleRate,
		TimerRate:     opts.TimerRate,
		MaxCycles:     opts.MaxCycles,
		Fast:          opts.Fast,
		CoupledTimers: opts.CoupledTimers,
	}
}

// MachineOptions returns the interpreter options. The tracer is only set
// if tracing is enabled.
func MachineOptions(opts options.Program, tracer chip8.Tracer) []chip8.Option {
	rnd := random.New()
	if opts.Seed != 0 {
		rnd = random.NewSeeded(opts.Seed)
	}

	machineOptions := []chip8.Option{chip8.WithRandom(rnd)}
	if opts.Trace && tracer != nil {
		machineOptions = append(machineOptions, chip8.WithTracer(tracer))
	}
	if opts.CoupledTimers {
		machineOptions = append(machineOptions, chip8.WithCoupledTimers())
	}
	return machineOptions
}

// Input creates the keypad input from the -keys and -press options.
// It returns nil if no key is ever pressed.
func Input(opts options.Program) (runner.Input, error) {
	if opts.Keys == "" && opts.Press == "" {
		return nil, nil
	}

	mapper := keypad.Hex
	if opts.QWERTY {
		mapper = keypad.QWERTY
	}

	held, err := keypad.Parse(opts.Keys, mapper)
	if err != nil {
		return nil, fmt.Errorf("parsing held keys: %w", err)
	}
	if opts.Press == "" {
		return keypad.NewStatic(held), nil
	}

	presses, err := keypad.ParseSchedule(opts.Press, mapper)
	if err != nil {
		return nil, fmt.Errorf("parsing key presses: %w", err)
	}
	return keypad.NewSchedule(held, presses...), nil
}
