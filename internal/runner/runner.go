// Package runner drives the interpreter at a fixed instruction rate and
// ticks its timers at a fixed timer rate.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Machine is the interpreter that the runner executes.
type Machine interface {
	Step() (bool, error)
	TickTimers()
	SetKeys(keys [chip8.KeyCount]bool)
	SoundActive() bool
	Display() chip8.Display
}

// Input provides the keypad state before every executed cycle.
type Input interface {
	Keys(cycle uint64) [chip8.KeyCount]bool
}

// Audio receives the buzzer state after every timer tick.
type Audio interface {
	Tick(active bool)
}

// Frame receives the display after every timer tick that changed it.
type Frame interface {
	Frame(display *chip8.Display) error
}

// Config contains the timing settings of a run.
type Config struct {
	CycleRate     int    // instructions per second
	TimerRate     int    // timer ticks per second
	MaxCycles     uint64 // stop after this many instructions, 0 for no limit
	Fast          bool   // do not pace the execution in real time
	CoupledTimers bool   // the machine ticks its timers itself on every step
}

// Option defines a runner option.
type Option func(*Runner)

// WithInput sets the keypad input.
func WithInput(input Input) Option {
	return func(r *Runner) {
		r.input = input
	}
}

// WithAudio sets the audio output.
func WithAudio(audio Audio) Option {
	return func(r *Runner) {
		r.audio = audio
	}
}

// WithFrame sets the frame output.
func WithFrame(frame Frame) Option {
	return func(r *Runner) {
		r.frame = frame
	}
}

// Runner executes a machine.
type Runner struct {
	logger  *log.Logger
	machine Machine
	cfg     Config

	input Input
	audio Audio
	frame Frame

	cycleCredit int // cycle rate remainder carried to the next timer period
	cycles      uint64
	ticks       uint64
	frames      uint64
}

// New returns a runner for the machine.
func New(logger *log.Logger, machine Machine, cfg Config, options ...Option) (*Runner, error) {
	if cfg.CycleRate <= 0 {
		return nil, fmt.Errorf("invalid cycle rate %d", cfg.CycleRate)
	}
	if cfg.TimerRate <= 0 {
		return nil, fmt.Errorf("invalid timer rate %d", cfg.TimerRate)
	}

	r := &Runner{
		logger:  logger,
		machine: machine,
		cfg:     cfg,
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

// CyclesPerTick returns the average number of instructions executed between
// two timer ticks.
func (r *Runner) CyclesPerTick() float64 {
	return float64(r.cfg.CycleRate) / float64(r.cfg.TimerRate)
}

// Cycles returns the number of executed instructions.
func (r *Runner) Cycles() uint64 {
	return r.cycles
}

// Ticks returns the number of timer ticks.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

// Frames returns the number of frames passed to the frame output.
func (r *Runner) Frames() uint64 {
	return r.frames
}

// Run executes the machine until the context is cancelled, the cycle limit
// is reached or the machine faults. Reaching the cycle limit is not an error.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Debug("Starting execution",
		log.Int("cycle_rate", r.cfg.CycleRate),
		log.Int("timer_rate", r.cfg.TimerRate))

	var pace <-chan time.Time
	if !r.cfg.Fast {
		ticker := time.NewTicker(time.Second / time.Duration(r.cfg.TimerRate))
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		done, err := r.tick()
		if err != nil {
			return err
		}
		if done {
			r.logger.Debug("Cycle limit reached", log.Int("cycles", int(r.cycles)))
			return nil
		}

		if pace == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-pace:
		}
	}
}

// tick executes the instructions of one timer period and ticks the timers.
// It returns true if the cycle limit was reached.
func (r *Runner) tick() (bool, error) {
	dirty := false

	for range r.cycleBudget() {
		if r.cfg.MaxCycles > 0 && r.cycles >= r.cfg.MaxCycles {
			return true, r.drawFrame(dirty)
		}

		if r.input != nil {
			r.machine.SetKeys(r.input.Keys(r.cycles))
		}

		drawn, err := r.machine.Step()
		if err != nil {
			return false, fmt.Errorf("executing cycle %d: %w", r.cycles, err)
		}
		r.cycles++
		dirty = dirty || drawn
	}

	if !r.cfg.CoupledTimers {
		r.machine.TickTimers()
	}
	r.ticks++

	if r.audio != nil {
		r.audio.Tick(r.machine.SoundActive())
	}

	return false, r.drawFrame(dirty)
}

// cycleBudget returns the number of instructions of the next timer period.
// The remainder of the division is carried over, so that CycleRate
// instructions are executed for every TimerRate ticks.
func (r *Runner) cycleBudget() int {
	r.cycleCredit += r.cfg.CycleRate
	n := r.cycleCredit / r.cfg.TimerRate
	r.cycleCredit -= n * r.cfg.TimerRate
	return n
}

func (r *Runner) drawFrame(dirty bool) error {
	if !dirty || r.frame == nil {
		return nil
	}

	display := r.machine.Display()
	if err := r.frame.Frame(&display); err != nil {
		return fmt.Errorf("drawing frame: %w", err)
	}
	r.frames++
	return nil
}
