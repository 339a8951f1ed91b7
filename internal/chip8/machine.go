package chip8

// PC returns the program counter.
func (c *Chip8) PC() uint16 {
	return c.pc
}

// Index returns the index register I.
func (c *Chip8) Index() uint16 {
	return c.index
}

// SP returns the stack pointer, the number of return addresses on the stack.
func (c *Chip8) SP() uint8 {
	return c.sp
}

// Stack returns a copy of the call stack.
func (c *Chip8) Stack() [StackSize]uint16 {
	return c.stack
}

// Register returns the value of register Vx. Only the low nibble of x is used.
func (c *Chip8) Register(x uint8) uint8 {
	return c.v[x&0xF]
}

// Registers returns a copy of the registers V0-VF.
func (c *Chip8) Registers() [RegisterCount]uint8 {
	return c.v
}

// DelayTimer returns the current delay timer value.
func (c *Chip8) DelayTimer() uint8 {
	return c.delayTimer
}

// SoundTimer returns the current sound timer value.
func (c *Chip8) SoundTimer() uint8 {
	return c.soundTimer
}

// SoundActive returns whether the host should currently emit a tone.
func (c *Chip8) SoundActive() bool {
	return c.soundTimer != 0
}

// ReadMemory returns the byte at the given address, wrapped into the 4KB address space.
func (c *Chip8) ReadMemory(address uint16) byte {
	return c.memory[address&MaxAddress]
}

// Display returns a copy of the framebuffer.
func (c *Chip8) Display() Display {
	return c.display
}

// Keys returns the current keypad state.
func (c *Chip8) Keys() [KeyCount]bool {
	return c.keypad
}

// SetKey sets the pressed state of a single key. Only the low nibble of key is used.
func (c *Chip8) SetKey(key uint8, pressed bool) {
	c.keypad[key&0xF] = pressed
}

// SetKeys replaces the complete keypad state.
func (c *Chip8) SetKeys(keys [KeyCount]bool) {
	c.keypad = keys
}
