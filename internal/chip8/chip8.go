package chip8

import "github.com/retroenv/retrochip8/internal/random"

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Reserved interpreter area
//	0x050-0x09F: Built-in hex digit font (16 glyphs, 5 bytes each)
//	0x0A0-0x1FF: Reserved interpreter area
//	0x200-0xFFF: User program space (3584 bytes)
//
// The display buffer (64x32 pixels) and stack are maintained
// separately from the 4KB main memory address space.
const (
	// MemorySize is the size of the CHIP-8 address space in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where CHIP-8 programs begin execution.
	// Programs are loaded at address 0x200 but stored starting at offset 0x0 in ROM files.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = 0xFFF

	// MaxROMSize is the largest program that fits between ProgramStart and MaxAddress.
	MaxROMSize = MaxAddress - ProgramStart + 1

	// FontStart is the address of the built-in hex digit font.
	FontStart = 0x050

	// FontGlyphSize is the number of bytes of a single font glyph.
	FontGlyphSize = 5

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the index of VF, the carry/borrow/collision flag.
	FlagRegister = 0xF

	// StackSize is the number of return addresses the call stack can hold.
	StackSize = 16

	// KeyCount is the number of keys of the hex keypad.
	KeyCount = 16

	// InstructionSize is the size of a CHIP-8 instruction in bytes.
	InstructionSize = 2
)

// Random provides the bytes consumed by the RND instruction.
type Random interface {
	Byte() uint8
}

// Tracer is called for every instruction before it gets executed.
// The address is the location the instruction was fetched from.
type Tracer func(address uint16, ins Instruction)

// Option configures an interpreter.
type Option func(*Chip8)

// WithRandom sets the random source used by the RND instruction.
func WithRandom(rnd Random) Option {
	return func(c *Chip8) {
		c.random = rnd
	}
}

// WithTracer sets a hook that observes every executed instruction.
func WithTracer(tracer Tracer) Option {
	return func(c *Chip8) {
		c.tracer = tracer
	}
}

// WithCoupledTimers makes every Step also tick the timers once.
// Drivers that tick the timers at their own 60 Hz cadence should not use this.
func WithCoupledTimers() Option {
	return func(c *Chip8) {
		c.coupledTimers = true
	}
}

// Chip8 is a CHIP-8 interpreter. It owns the complete machine state and is
// mutated only by Step, TickTimers and the host key setters.
// It is not safe for concurrent use.
type Chip8 struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	index  uint16
	pc     uint16

	stack [StackSize]uint16
	sp    uint8

	delayTimer uint8
	soundTimer uint8

	keypad  [KeyCount]bool
	display Display

	frameDirty bool
	fault      error

	random        Random
	tracer        Tracer
	coupledTimers bool
}

// New returns a new interpreter in its power-on state with the font loaded.
func New(options ...Option) *Chip8 {
	c := &Chip8{
		random: random.New(),
	}
	for _, option := range options {
		option(c)
	}
	c.Reset()
	return c
}

// Reset clears the machine state back to the power-on state and reloads the font.
// A previously loaded ROM is cleared as well.
func (c *Chip8) Reset() {
	c.memory = [MemorySize]byte{}
	c.v = [RegisterCount]uint8{}
	c.index = 0
	c.pc = ProgramStart
	c.stack = [StackSize]uint16{}
	c.sp = 0
	c.delayTimer = 0
	c.soundTimer = 0
	c.keypad = [KeyCount]bool{}
	c.display.Clear()
	c.frameDirty = false
	c.fault = nil
	c.LoadFont()
}

// Step executes exactly one instruction. It returns whether the framebuffer
// was modified by the instruction. A fatal condition halts the interpreter,
// the returned *Fault is returned again by every following call until Reset.
func (c *Chip8) Step() (bool, error) {
	if c.fault != nil {
		return false, c.fault
	}

	address := c.pc
	word := c.fetch(address)
	c.pc += InstructionSize

	ins := Decode(word)
	if c.tracer != nil {
		c.tracer(address, ins)
	}

	c.frameDirty = false
	if err := c.execute(ins); err != nil {
		c.pc = address
		c.fault = &Fault{
			Address:     address,
			Instruction: ins,
			Err:         err,
		}
		return false, c.fault
	}

	if c.coupledTimers {
		c.TickTimers()
	}
	return c.frameDirty, nil
}

// TickTimers decrements the delay and sound timers by one, stopping at zero.
// It is meant to be called at 60 Hz, independent of the instruction rate.
func (c *Chip8) TickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// fetch reads the big-endian instruction word at the given address.
func (c *Chip8) fetch(address uint16) uint16 {
	hi := c.memory[address&MaxAddress]
	lo := c.memory[(address+1)&MaxAddress]
	return uint16(hi)<<8 | uint16(lo)
}

// Halted returns whether a fatal condition stopped the interpreter.
func (c *Chip8) Halted() bool {
	return c.fault != nil
}

// Err returns the fault that halted the interpreter, or nil.
func (c *Chip8) Err() error {
	return c.fault
}
