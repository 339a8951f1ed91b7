// Package options contains the program options.
package options

import "time"

// Default timing of the interpreter.
const (
	DefaultCycleRate = 700 // instructions per second
	DefaultTimerRate = 60  // timer decrements per second
	DefaultScale     = 1
)

// Parameters contains file path options.
type Parameters struct {
	Input      string `flag:"i" usage:"input ROM file"`
	Output     string `flag:"o" usage:"output file for the final screen as text (default: stdout)"`
	Screenshot string `flag:"screenshot" usage:"write the final screen as .bmp image"`
	Audio      string `flag:"wav" usage:"record the sound output as .wav file"`
}

// Flags contains behavior options.
type Flags struct {
	Disasm   bool   `flag:"disasm" usage:"print a disassembly listing instead of running the ROM"`
	Fast     bool   `flag:"fast" usage:"run as fast as possible instead of in real time"`
	Live     bool   `flag:"live" usage:"redraw the screen on the console while running"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Keys     string `flag:"keys" usage:"keys held down during the whole run, e.g. 5,q"`
	Press    string `flag:"press" usage:"keys pressed for cycle ranges, e.g. 5@100-200"`
	QWERTY   bool   `flag:"qwerty" usage:"name keys by their position on a QWERTY keyboard instead of hex digits"`
	Seed     uint64 `flag:"seed" usage:"seed of the random number generator (default: time based)"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	NoScreen bool   `flag:"noscreen" usage:"do not print the final screen"`
}

// Emulation contains timing options of the interpreter.
type Emulation struct {
	CycleRate     int           `flag:"hz" usage:"instructions executed per second" default:"700"`
	TimerRate     int           `flag:"timerhz" usage:"timer decrements per second" default:"60"`
	MaxCycles     uint64        `flag:"cycles" usage:"stop after executing this many instructions (0: unlimited)"`
	Duration      time.Duration `flag:"duration" usage:"stop after running for this duration (0: unlimited)"`
	Scale         int           `flag:"scale" usage:"scale factor of the screen output" default:"1"`
	CoupledTimers bool          `flag:"coupled" usage:"decrement the timers once per executed instruction"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Emulation
	Disassembler
}

// Disassembler defines options to control the disassembly listing.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
	ZeroBytes      bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}

// NewProgram returns program options set to the defaults.
func NewProgram() Program {
	return Program{
		Emulation: Emulation{
			CycleRate: DefaultCycleRate,
			TimerRate: DefaultTimerRate,
			Scale:     DefaultScale,
		},
		Disassembler: NewDisassembler(),
	}
}
