// Package chip8 provides the CHIP-8 interpreter core.
//
// # Machine State
//
// The interpreter owns 4KB of memory (0x000-MaxAddress), 16 general purpose
// 8-bit registers V0-VF, the 16-bit index register I, the program counter,
// a 16 entry call stack, the delay and sound timers, the 16 key keypad latch
// and a 64x32 monochrome framebuffer. Register VF doubles as the
// carry/borrow/collision flag and is overwritten by several instructions.
//
// # Execution
//
// Step executes exactly one instruction:
//  1. Fetch the big-endian instruction word at the program counter
//  2. Advance the program counter by 2
//  3. Decode the word into an Op and its operand fields
//  4. Execute the instruction against the machine state
//
// Jumps, calls and returns overwrite the already advanced program counter.
// Words that do not match a documented instruction are executed as no-op.
//
// The interpreter does not schedule itself. The host calls Step at its chosen
// instruction rate and TickTimers at 60 Hz:
//
//	c := chip8.New()
//	if err := c.LoadROM(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		c.SetKeys(input.Keys())
//		drawn, err := c.Step()
//		if err != nil {
//			return err
//		}
//		...
//	}
//
// # Errors
//
// A CALL with a full stack, a RET with an empty stack and an oversized ROM are
// fatal. Step returns a *Fault wrapping ErrStackOverflow or ErrStackUnderflow
// and the interpreter stays halted until Reset. Arithmetic overflow wraps
// around and is never an error.
package chip8
