// Package pipeline orchestrates loading, running and output of a ROM.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/render"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete workflow.
type Pipeline struct {
	logger  *log.Logger
	loader  *loader.Loader
	console io.Writer // target of the live screen output
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:  logger,
		loader:  loader.New(),
		console: os.Stdout,
	}
}

// Execute loads the ROM and either runs it or writes a disassembly listing.
// The final screen or the listing is written to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	p.printInfo(opts, rom)

	if opts.Disasm {
		if err := disasm.Listing(writer, rom, opts.Disassembler); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	return p.ExecuteWithROM(ctx, rom, opts, writer)
}

// ExecuteWithROM runs an already loaded ROM image.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program, writer io.Writer) error {
	machine := chip8.New(config.MachineOptions(opts, p.trace)...)
	if err := machine.LoadROM(rom); err != nil {
		return fmt.Errorf("loading rom into memory: %w", err)
	}

	runnerOptions, recorder, err := p.createOutputs(opts)
	if err != nil {
		return err
	}

	r, err := runner.New(p.logger, machine, config.RunnerConfig(opts), runnerOptions...)
	if err != nil {
		return fmt.Errorf("creating runner: %w", err)
	}

	runErr := p.run(ctx, r, opts)

	p.logger.Debug("Execution stopped",
		log.Int("cycles", int(r.Cycles())),
		log.Int("ticks", int(r.Ticks())),
		log.Int("frames", int(r.Frames())),
		log.Hex("pc", machine.PC()))

	// outputs are written even if the run was interrupted or faulted
	if err := p.writeOutputs(machine, recorder, opts, writer); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// createOutputs creates the runner input and outputs requested by the options.
func (p *Pipeline) createOutputs(opts options.Program) ([]runner.Option, *audio.WavRecorder, error) {
	var runnerOptions []runner.Option

	input, err := config.Input(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("creating keypad input: %w", err)
	}
	if input != nil {
		runnerOptions = append(runnerOptions, runner.WithInput(input))
	}

	var recorder *audio.WavRecorder
	if opts.Audio != "" {
		recorder, err = audio.NewWavRecorder(opts.Audio, opts.TimerRate)
		if err != nil {
			return nil, nil, fmt.Errorf("creating wav recorder: %w", err)
		}
		runnerOptions = append(runnerOptions, runner.WithAudio(recorder))
	}

	if opts.Live {
		runnerOptions = append(runnerOptions, runner.WithFrame(render.NewTerminal(p.console, opts.Scale)))
	}

	return runnerOptions, recorder, nil
}

// run executes the runner, a reached duration limit ends the run without error.
func (p *Pipeline) run(ctx context.Context, r *runner.Runner, opts options.Program) error {
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	err := r.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		p.logger.Debug("Duration limit reached", log.String("duration", opts.Duration.String()))
		return nil
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("running rom: %w", err)
	}
}

func (p *Pipeline) writeOutputs(machine *chip8.Chip8, recorder *audio.WavRecorder,
	opts options.Program, writer io.Writer) error {

	display := machine.Display()

	if recorder != nil {
		if err := recorder.Close(); err != nil {
			return fmt.Errorf("writing wav file: %w", err)
		}
		p.logger.Info("Sound recorded", log.String("file", opts.Audio), log.Int("samples", recorder.Samples()))
	}

	if opts.Screenshot != "" {
		if err := writeScreenshot(opts.Screenshot, &display, opts.Scale); err != nil {
			return err
		}
		p.logger.Info("Screenshot written", log.String("file", opts.Screenshot))
	}

	if !opts.NoScreen {
		if err := render.Text(writer, &display, opts.Scale); err != nil {
			return fmt.Errorf("writing screen: %w", err)
		}
	}
	return nil
}

func writeScreenshot(filename string, display *chip8.Display, scale int) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating screenshot file %s: %w", filename, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing screenshot file: %w", err)
		}
	}()

	if err := render.WriteBMP(f, display, scale); err != nil {
		return fmt.Errorf("writing screenshot: %w", err)
	}
	return nil
}

// trace logs an instruction before it gets executed.
func (p *Pipeline) trace(address uint16, ins chip8.Instruction) {
	p.logger.Debug("Executing",
		log.Hex("address", address),
		log.Hex("opcode", ins.Word),
		log.String("instruction", disasm.Format(ins)))
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(opts options.Program, rom []byte) {
	if opts.Quiet {
		return
	}

	if opts.Disasm {
		p.logger.Info("Disassembling CHIP-8 ROM",
			log.String("file", opts.Input),
			log.Int("size", len(rom)))
		return
	}

	p.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.Int("hz", opts.CycleRate))
	if opts.Trace && !opts.Debug {
		p.logger.Warn("Instruction tracing requires -debug to be visible")
	}
}

// CreateWriter returns the output writer for the options, which is either
// the output file or stdout.
func CreateWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// nopCloser wraps an io.Writer to add a no-op Close method.
type nopCloser struct {
	io.Writer
}

func (nc nopCloser) Close() error {
	return nil
}
