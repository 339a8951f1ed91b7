package chip8

// handler executes a decoded instruction. The program counter already points
// to the following instruction when a handler is called.
type handler func(c *Chip8, ins Instruction) error

var handlers = [opCount]handler{
	OpInvalid: opNop,
	Op00E0:    opCls,
	Op00EE:    opRet,
	Op1NNN:    opJp,
	Op2NNN:    opCall,
	Op3XKK:    opSeByte,
	Op4XKK:    opSneByte,
	Op5XY0:    opSeReg,
	Op6XKK:    opLdByte,
	Op7XKK:    opAddByte,
	Op8XY0:    opLdReg,
	Op8XY1:    opOr,
	Op8XY2:    opAnd,
	Op8XY3:    opXor,
	Op8XY4:    opAddReg,
	Op8XY5:    opSub,
	Op8XY6:    opShr,
	Op8XY7:    opSubn,
	Op8XYE:    opShl,
	Op9XY0:    opSneReg,
	OpANNN:    opLdI,
	OpBNNN:    opJpV0,
	OpCXKK:    opRnd,
	OpDXYN:    opDrw,
	OpEX9E:    opSkp,
	OpEXA1:    opSknp,
	OpFX07:    opLdVxDT,
	OpFX0A:    opLdVxK,
	OpFX15:    opLdDTVx,
	OpFX18:    opLdSTVx,
	OpFX1E:    opAddI,
	OpFX29:    opLdF,
	OpFX33:    opLdB,
	OpFX55:    opStoreRegs,
	OpFX65:    opLoadRegs,
}

func (c *Chip8) execute(ins Instruction) error {
	if ins.Op >= opCount {
		return nil
	}
	return handlers[ins.Op](c, ins)
}

func (c *Chip8) skipIf(condition bool) {
	if condition {
		c.pc += InstructionSize
	}
}

func opNop(_ *Chip8, _ Instruction) error {
	return nil
}

// opCls clears the display.
func opCls(c *Chip8, _ Instruction) error {
	c.display.Clear()
	c.frameDirty = true
	return nil
}

// opRet returns from a subroutine.
func opRet(c *Chip8, _ Instruction) error {
	if c.sp == 0 {
		return ErrStackUnderflow
	}
	c.sp--
	c.pc = c.stack[c.sp]
	return nil
}

func opJp(c *Chip8, ins Instruction) error {
	c.pc = ins.NNN
	return nil
}

// opCall pushes the address of the following instruction and jumps to nnn.
func opCall(c *Chip8, ins Instruction) error {
	if int(c.sp) >= StackSize {
		return ErrStackOverflow
	}
	c.stack[c.sp] = c.pc
	c.sp++
	c.pc = ins.NNN
	return nil
}

func opSeByte(c *Chip8, ins Instruction) error {
	c.skipIf(c.v[ins.X] == ins.KK)
	return nil
}

func opSneByte(c *Chip8, ins Instruction) error {
	c.skipIf(c.v[ins.X] != ins.KK)
	return nil
}

func opSeReg(c *Chip8, ins Instruction) error {
	c.skipIf(c.v[ins.X] == c.v[ins.Y])
	return nil
}

func opSneReg(c *Chip8, ins Instruction) error {
	c.skipIf(c.v[ins.X] != c.v[ins.Y])
	return nil
}

func opLdByte(c *Chip8, ins Instruction) error {
	c.v[ins.X] = ins.KK
	return nil
}

// opAddByte adds kk to Vx without touching VF.
func opAddByte(c *Chip8, ins Instruction) error {
	c.v[ins.X] += ins.KK
	return nil
}

func opLdReg(c *Chip8, ins Instruction) error {
	c.v[ins.X] = c.v[ins.Y]
	return nil
}

func opOr(c *Chip8, ins Instruction) error {
	c.v[ins.X] |= c.v[ins.Y]
	return nil
}

func opAnd(c *Chip8, ins Instruction) error {
	c.v[ins.X] &= c.v[ins.Y]
	return nil
}

func opXor(c *Chip8, ins Instruction) error {
	c.v[ins.X] ^= c.v[ins.Y]
	return nil
}

// setFlagged stores an ALU result in Vx and the flag in VF, in that order,
// so that VF as destination ends up holding the flag.
func (c *Chip8) setFlagged(x, result uint8, flag bool) {
	c.v[x] = result
	if flag {
		c.v[FlagRegister] = 1
	} else {
		c.v[FlagRegister] = 0
	}
}

func opAddReg(c *Chip8, ins Instruction) error {
	sum := uint16(c.v[ins.X]) + uint16(c.v[ins.Y])
	c.setFlagged(ins.X, uint8(sum), sum > 0xFF)
	return nil
}

func opSub(c *Chip8, ins Instruction) error {
	vx, vy := c.v[ins.X], c.v[ins.Y]
	c.setFlagged(ins.X, vx-vy, vx > vy)
	return nil
}

func opSubn(c *Chip8, ins Instruction) error {
	vx, vy := c.v[ins.X], c.v[ins.Y]
	c.setFlagged(ins.X, vy-vx, vy > vx)
	return nil
}

func opShr(c *Chip8, ins Instruction) error {
	vx := c.v[ins.X]
	c.setFlagged(ins.X, vx>>1, vx&0x01 != 0)
	return nil
}

func opShl(c *Chip8, ins Instruction) error {
	vx := c.v[ins.X]
	c.setFlagged(ins.X, vx<<1, vx&0x80 != 0)
	return nil
}

func opLdI(c *Chip8, ins Instruction) error {
	c.index = ins.NNN
	return nil
}

func opJpV0(c *Chip8, ins Instruction) error {
	c.pc = uint16(c.v[0]) + ins.NNN
	return nil
}

func opRnd(c *Chip8, ins Instruction) error {
	c.v[ins.X] = c.random.Byte() & ins.KK
	return nil
}

// opDrw draws an n rows high sprite from memory at I to the position Vx, Vy.
// The origin wraps around the screen, the sprite itself is clipped at the edges.
func opDrw(c *Chip8, ins Instruction) error {
	x := int(c.v[ins.X]) % ScreenWidth
	y := int(c.v[ins.Y]) % ScreenHeight

	rows := make([]byte, ins.N)
	for row := range rows {
		rows[row] = c.memory[(c.index+uint16(row))&MaxAddress]
	}

	collision := c.display.drawSprite(x, y, rows)
	if collision {
		c.v[FlagRegister] = 1
	} else {
		c.v[FlagRegister] = 0
	}
	c.frameDirty = true
	return nil
}

func opSkp(c *Chip8, ins Instruction) error {
	c.skipIf(c.keypad[c.v[ins.X]&0xF])
	return nil
}

func opSknp(c *Chip8, ins Instruction) error {
	c.skipIf(!c.keypad[c.v[ins.X]&0xF])
	return nil
}

func opLdVxDT(c *Chip8, ins Instruction) error {
	c.v[ins.X] = c.delayTimer
	return nil
}

// opLdVxK waits for a key press by re-executing itself until a key is held.
// The lowest held key is stored in Vx.
func opLdVxK(c *Chip8, ins Instruction) error {
	for key, pressed := range c.keypad {
		if pressed {
			c.v[ins.X] = uint8(key)
			return nil
		}
	}
	c.pc -= InstructionSize
	return nil
}

func opLdDTVx(c *Chip8, ins Instruction) error {
	c.delayTimer = c.v[ins.X]
	return nil
}

func opLdSTVx(c *Chip8, ins Instruction) error {
	c.soundTimer = c.v[ins.X]
	return nil
}

func opAddI(c *Chip8, ins Instruction) error {
	c.index += uint16(c.v[ins.X])
	return nil
}

// opLdF points I to the font glyph of the hex digit in Vx.
func opLdF(c *Chip8, ins Instruction) error {
	digit := uint16(c.v[ins.X] & 0xF)
	c.index = FontStart + FontGlyphSize*digit
	return nil
}

// opLdB stores the decimal digits of Vx at I, I+1 and I+2.
func opLdB(c *Chip8, ins Instruction) error {
	value := c.v[ins.X]
	c.memory[c.index&MaxAddress] = value / 100
	c.memory[(c.index+1)&MaxAddress] = value / 10 % 10
	c.memory[(c.index+2)&MaxAddress] = value % 10
	return nil
}

// opStoreRegs stores V0 through Vx inclusive to memory starting at I.
func opStoreRegs(c *Chip8, ins Instruction) error {
	for i := uint16(0); i <= uint16(ins.X); i++ {
		c.memory[(c.index+i)&MaxAddress] = c.v[i]
	}
	return nil
}

// opLoadRegs loads V0 through Vx inclusive from memory starting at I.
func opLoadRegs(c *Chip8, ins Instruction) error {
	for i := uint16(0); i <= uint16(ins.X); i++ {
		c.v[i] = c.memory[(c.index+i)&MaxAddress]
	}
	return nil
}
