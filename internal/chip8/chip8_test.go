package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type fixedRandom uint8

func (f fixedRandom) Byte() uint8 {
	return uint8(f)
}

// program encodes instruction words as a big-endian ROM image.
func program(words ...uint16) []byte {
	rom := make([]byte, 0, len(words)*InstructionSize)
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	return rom
}

func newWithProgram(t *testing.T, words ...uint16) *Chip8 {
	t.Helper()
	c := New(WithRandom(fixedRandom(0xFF)))
	assert.NoError(t, c.LoadROM(program(words...)))
	return c
}

func step(t *testing.T, c *Chip8, count int) {
	t.Helper()
	for range count {
		_, err := c.Step()
		assert.NoError(t, err)
	}
}

func TestNew(t *testing.T) {
	c := New()

	assert.Equal(t, uint16(ProgramStart), c.PC())
	assert.Equal(t, uint8(0), c.SP())
	assert.Equal(t, uint16(0), c.Index())
	assert.Equal(t, [RegisterCount]uint8{}, c.Registers())
	display := c.Display()
	assert.Equal(t, 0, display.Lit())
	assert.False(t, c.Halted())

	for i, b := range Font() {
		assert.Equal(t, b, c.ReadMemory(uint16(FontStart+i)))
	}
}

func TestReset(t *testing.T) {
	c := newWithProgram(t, 0x6A42, 0xA123, 0x00E0)
	step(t, c, 2)
	c.SetKey(3, true)

	c.Reset()

	assert.Equal(t, uint16(ProgramStart), c.PC())
	assert.Equal(t, uint8(0), c.Register(0xA))
	assert.Equal(t, uint16(0), c.Index())
	assert.Equal(t, [KeyCount]bool{}, c.Keys())
	assert.Equal(t, byte(0), c.ReadMemory(ProgramStart))
	assert.Equal(t, Font()[0], c.ReadMemory(FontStart))
}

func TestStepAdvancesProgramCounter(t *testing.T) {
	c := newWithProgram(t, 0x6001, 0x6102)
	step(t, c, 2)
	assert.Equal(t, uint16(ProgramStart+4), c.PC())
}

func TestStepInvalidOpcodeIsNoOp(t *testing.T) {
	words := []uint16{0x0123, 0x5121, 0x8008, 0x9AB1, 0xE0FF, 0xF0FF}

	for _, word := range words {
		c := newWithProgram(t, 0x6A42, 0xA321, word)
		step(t, c, 2)
		before := c.Registers()
		index := c.Index()
		display := c.Display()

		drawn, err := c.Step()
		assert.NoError(t, err)
		assert.False(t, drawn)
		assert.Equal(t, uint16(ProgramStart+6), c.PC())
		assert.Equal(t, before, c.Registers())
		assert.Equal(t, index, c.Index())
		assert.Equal(t, display, c.Display())
	}
}

func TestTickTimers(t *testing.T) {
	// LD V0, 2; LD DT, V0; LD ST, V0
	c := newWithProgram(t, 0x6002, 0xF015, 0xF018)
	step(t, c, 3)

	assert.Equal(t, uint8(2), c.DelayTimer())
	assert.True(t, c.SoundActive())

	c.TickTimers()
	assert.Equal(t, uint8(1), c.DelayTimer())
	assert.Equal(t, uint8(1), c.SoundTimer())

	c.TickTimers()
	c.TickTimers()
	assert.Equal(t, uint8(0), c.DelayTimer())
	assert.Equal(t, uint8(0), c.SoundTimer())
	assert.False(t, c.SoundActive())
}

func TestStepDoesNotTickTimersByDefault(t *testing.T) {
	// LD V0, 5; LD DT, V0; JP 0x204
	c := newWithProgram(t, 0x6005, 0xF015, 0x1204)
	step(t, c, 10)
	assert.Equal(t, uint8(5), c.DelayTimer())
}

func TestCoupledTimers(t *testing.T) {
	c := New(WithCoupledTimers())
	// LD V0, 5; LD DT, V0; JP 0x204
	assert.NoError(t, c.LoadROM(program(0x6005, 0xF015, 0x1204)))

	step(t, c, 2)
	assert.Equal(t, uint8(4), c.DelayTimer())
	step(t, c, 10)
	assert.Equal(t, uint8(0), c.DelayTimer())
}

func TestTracer(t *testing.T) {
	var addresses []uint16
	var ops []Op
	c := New(WithTracer(func(address uint16, ins Instruction) {
		addresses = append(addresses, address)
		ops = append(ops, ins.Op)
	}))
	assert.NoError(t, c.LoadROM(program(0x00E0, 0x1200)))

	step(t, c, 3)

	assert.Equal(t, []uint16{0x200, 0x202, 0x200}, addresses)
	assert.Equal(t, []Op{Op00E0, Op1NNN, Op00E0}, ops)
}

func TestStackOverflow(t *testing.T) {
	// CALL 0x200 recursively
	c := newWithProgram(t, 0x2200)
	step(t, c, StackSize)
	assert.Equal(t, uint8(StackSize), c.SP())

	_, err := c.Step()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrStackOverflow))

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x200), fault.Address)
	assert.Equal(t, Op2NNN, fault.Instruction.Op)

	assert.True(t, c.Halted())
	assert.Equal(t, uint16(0x200), c.PC())
	assert.Equal(t, uint8(StackSize), c.SP())

	// the interpreter stays halted
	_, err2 := c.Step()
	assert.True(t, errors.Is(err2, ErrStackOverflow))
	assert.Equal(t, uint16(0x200), c.PC())
}

func TestStackUnderflow(t *testing.T) {
	c := newWithProgram(t, 0x00EE)

	_, err := c.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.ErrorContains(t, err, "stack underflow at $200")
	assert.True(t, c.Halted())
	assert.Equal(t, c.Err(), err)

	c.Reset()
	assert.False(t, c.Halted())
	assert.NoError(t, c.Err())
}

// TestClsJumpLoop runs a ROM that only clears the screen and jumps back.
func TestClsJumpLoop(t *testing.T) {
	c := newWithProgram(t, 0x00E0, 0x1200)

	for cycle := 1; cycle <= 100; cycle++ {
		_, err := c.Step()
		assert.NoError(t, err)
		if cycle%2 == 0 {
			assert.Equal(t, uint16(0x200), c.PC())
		}
		display := c.Display()
		assert.Equal(t, 0, display.Lit())
	}
}
