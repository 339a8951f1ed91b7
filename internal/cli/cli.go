// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

const maxScale = 16

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)
	inverse := readDisasmOptionFlags(flags, &opts.Disassembler)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if len(args) > 0 {
		if err := validateArgs(args); err != nil {
			return opts, err
		}
		if opts.Input != "" {
			return opts, &UsageError{
				msg: fmt.Sprintf("ROM file %s given as argument and with -i %s", args[0], opts.Input),
			}
		}
		opts.Input = args[0]
	}

	// Apply inverse logic for hex comments and offsets
	opts.HexComments = !inverse.noHexComments
	opts.OffsetComments = !inverse.noOffsets

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("only one ROM file can be run, got %d", len(args)),
		}
	}
	return nil
}

// validateOptionCombinations checks option values and their combinations.
func validateOptionCombinations(opts options.Program) error {
	if opts.CycleRate <= 0 {
		return fmt.Errorf("invalid cycle rate %d, must be positive", opts.CycleRate)
	}
	if opts.TimerRate <= 0 {
		return fmt.Errorf("invalid timer rate %d, must be positive", opts.TimerRate)
	}
	if opts.Scale < 1 || opts.Scale > maxScale {
		return fmt.Errorf("invalid scale %d, must be between 1 and %d", opts.Scale, maxScale)
	}
	if opts.Duration < 0 {
		return fmt.Errorf("invalid duration %s", opts.Duration)
	}

	if opts.Disasm && (opts.Screenshot != "" || opts.Audio != "" || opts.Live) {
		return errors.New("-disasm can not be combined with -screenshot, -wav or -live")
	}
	if !opts.Disasm && opts.Audio != "" && opts.MaxCycles == 0 && opts.Duration == 0 {
		return errors.New("-wav buffers the whole recording and requires -cycles or -duration to limit the run")
	}
	if !opts.Disasm && opts.Live && opts.Fast {
		return errors.New("-live requires real time execution and can not be combined with -fast")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file, alternative to passing it as last argument")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the final screen or disassembly, printed on console if no name given")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of the .bmp file to write the final screen to")
	flags.StringVar(&opts.Audio, "wav", "", "name of the .wav file to record the sound output to")
	flags.BoolVar(&opts.Disasm, "disasm", false, "output a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Fast, "fast", false, "run as fast as possible instead of in real time")
	flags.BoolVar(&opts.Live, "live", false, "redraw the screen on the console while running")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.StringVar(&opts.Keys, "keys", "", "comma separated keys held down during the whole run, for example 5,a")
	flags.StringVar(&opts.Press, "press", "", "comma separated key presses for cycle ranges, for example 5@100-200,a@300")
	flags.BoolVar(&opts.QWERTY, "qwerty", false, "name keys by their position on a QWERTY keyboard (1234/qwer/asdf/zxcv)")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, time based if 0")
	flags.BoolVar(&opts.NoScreen, "noscreen", false, "do not output the final screen")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.IntVar(&opts.CycleRate, "hz", options.DefaultCycleRate, "instructions executed per second")
	flags.IntVar(&opts.TimerRate, "timerhz", options.DefaultTimerRate, "timer decrements per second")
	flags.Uint64Var(&opts.MaxCycles, "cycles", 0, "stop after executing this many instructions, 0 for no limit")
	flags.DurationVar(&opts.Duration, "duration", 0, "stop after running for this duration, for example 10s, 0 for no limit")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "scale factor of the screen output")
	flags.BoolVar(&opts.CoupledTimers, "coupled", false, "decrement the timers once per executed instruction")
}

type inverseFlags struct {
	noHexComments bool
	noOffsets     bool
}

func readDisasmOptionFlags(flags *flag.FlagSet, opts *options.Disassembler) *inverseFlags {
	var inverse inverseFlags
	flags.BoolVar(&inverse.noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in disassembly comments")
	flags.BoolVar(&inverse.noOffsets, "nooffsets", false, "do not output addresses in disassembly comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the ROM in the disassembly")
	return &inverse
}
