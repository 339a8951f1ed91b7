package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies a decoded CHIP-8 instruction.
type Op uint8

// CHIP-8 instructions, named after their opcode pattern.
const (
	OpInvalid   Op = iota // no documented instruction, executed as no-op
	Op00E0                // CLS
	Op00EE                // RET
	Op1NNN                // JP addr
	Op2NNN                // CALL addr
	Op3XKK                // SE Vx, byte
	Op4XKK                // SNE Vx, byte
	Op5XY0                // SE Vx, Vy
	Op6XKK                // LD Vx, byte
	Op7XKK                // ADD Vx, byte
	Op8XY0                // LD Vx, Vy
	Op8XY1                // OR Vx, Vy
	Op8XY2                // AND Vx, Vy
	Op8XY3                // XOR Vx, Vy
	Op8XY4                // ADD Vx, Vy
	Op8XY5                // SUB Vx, Vy
	Op8XY6                // SHR Vx
	Op8XY7                // SUBN Vx, Vy
	Op8XYE                // SHL Vx
	Op9XY0                // SNE Vx, Vy
	OpANNN                // LD I, addr
	OpBNNN                // JP V0, addr
	OpCXKK                // RND Vx, byte
	OpDXYN                // DRW Vx, Vy, nibble
	OpEX9E                // SKP Vx
	OpEXA1                // SKNP Vx
	OpFX07                // LD Vx, DT
	OpFX0A                // LD Vx, K
	OpFX15                // LD DT, Vx
	OpFX18                // LD ST, Vx
	OpFX1E                // ADD I, Vx
	OpFX29                // LD F, Vx
	OpFX33                // LD B, Vx
	OpFX55                // LD [I], Vx
	OpFX65                // LD Vx, [I]

	opCount
)

var opNames = [opCount]string{
	OpInvalid: "???",
	Op00E0:    "CLS",
	Op00EE:    "RET",
	Op1NNN:    "JP addr",
	Op2NNN:    "CALL addr",
	Op3XKK:    "SE Vx, byte",
	Op4XKK:    "SNE Vx, byte",
	Op5XY0:    "SE Vx, Vy",
	Op6XKK:    "LD Vx, byte",
	Op7XKK:    "ADD Vx, byte",
	Op8XY0:    "LD Vx, Vy",
	Op8XY1:    "OR Vx, Vy",
	Op8XY2:    "AND Vx, Vy",
	Op8XY3:    "XOR Vx, Vy",
	Op8XY4:    "ADD Vx, Vy",
	Op8XY5:    "SUB Vx, Vy",
	Op8XY6:    "SHR Vx",
	Op8XY7:    "SUBN Vx, Vy",
	Op8XYE:    "SHL Vx",
	Op9XY0:    "SNE Vx, Vy",
	OpANNN:    "LD I, addr",
	OpBNNN:    "JP V0, addr",
	OpCXKK:    "RND Vx, byte",
	OpDXYN:    "DRW Vx, Vy, nibble",
	OpEX9E:    "SKP Vx",
	OpEXA1:    "SKNP Vx",
	OpFX07:    "LD Vx, DT",
	OpFX0A:    "LD Vx, K",
	OpFX15:    "LD DT, Vx",
	OpFX18:    "LD ST, Vx",
	OpFX1E:    "ADD I, Vx",
	OpFX29:    "LD F, Vx",
	OpFX33:    "LD B, Vx",
	OpFX55:    "LD [I], Vx",
	OpFX65:    "LD Vx, [I]",
}

// String returns the instruction pattern in the common CHIP-8 notation.
func (o Op) String() string {
	if o >= opCount {
		return fmt.Sprintf("Op(%d)", o)
	}
	return opNames[o]
}

// Valid returns whether the op is a documented instruction.
func (o Op) Valid() bool {
	return o > OpInvalid && o < opCount
}

// Instruction returns the instruction definition of the op, which provides
// the mnemonic. It returns nil for OpInvalid.
func (o Op) Instruction() *chip8cpu.Instruction {
	if !o.Valid() {
		return nil
	}
	return opcodes[o].ins
}

// Instruction is a decoded instruction word with its unpacked operand fields.
type Instruction struct {
	Word uint16
	Op   Op

	Kind uint8  // top nibble, the instruction class
	X    uint8  // register index in bits 8-11
	Y    uint8  // register index in bits 4-7
	N    uint8  // lowest nibble
	KK   uint8  // lowest byte
	NNN  uint16 // lowest 12 bits, an address
}

func (i Instruction) String() string {
	return fmt.Sprintf("%04X %s", i.Word, i.Op)
}

// Decode unpacks an instruction word and identifies its instruction.
// Words that do not match a documented instruction decode to OpInvalid.
func Decode(word uint16) Instruction {
	ins := Instruction{
		Word: word,
		Kind: uint8(word >> 12),
		X:    uint8(word>>8) & 0xF,
		Y:    uint8(word>>4) & 0xF,
		N:    uint8(word) & 0xF,
		KK:   uint8(word),
		NNN:  word & 0xFFF,
	}
	ins.Op = decodeOp(word, ins.Kind)
	return ins
}

// decodeOp looks up the opcodes of the instruction class and returns the op
// of the first entry matching the word. Table entries that have no op, like
// SYS addr or extension opcodes, are skipped.
func decodeOp(word uint16, kind uint8) Op {
	for _, entry := range chip8cpu.Opcodes[int(kind)] {
		if entry.Info.Mask&word != entry.Info.Value {
			continue
		}

		op, ok := valueOps[entry.Info.Value]
		if !ok {
			continue
		}
		if def := opcodes[op]; def.mask&word == def.value {
			return op
		}
	}
	return OpInvalid
}

type opcode struct {
	value uint16 // word bits with all operand fields cleared
	mask  uint16 // bits of the word that identify the instruction
	ins   *chip8cpu.Instruction
}

var opcodes = [opCount]opcode{
	Op00E0: {0x00E0, 0xFFFF, chip8cpu.ClsInst},
	Op00EE: {0x00EE, 0xFFFF, chip8cpu.RetInst},
	Op1NNN: {0x1000, 0xF000, chip8cpu.JpInst},
	Op2NNN: {0x2000, 0xF000, chip8cpu.CallInst},
	Op3XKK: {0x3000, 0xF000, chip8cpu.SeInst},
	Op4XKK: {0x4000, 0xF000, chip8cpu.SneInst},
	Op5XY0: {0x5000, 0xF00F, chip8cpu.SeInst},
	Op6XKK: {0x6000, 0xF000, chip8cpu.LdInst},
	Op7XKK: {0x7000, 0xF000, chip8cpu.AddInst},
	Op8XY0: {0x8000, 0xF00F, chip8cpu.LdInst},
	Op8XY1: {0x8001, 0xF00F, chip8cpu.OrInst},
	Op8XY2: {0x8002, 0xF00F, chip8cpu.AndInst},
	Op8XY3: {0x8003, 0xF00F, chip8cpu.XorInst},
	Op8XY4: {0x8004, 0xF00F, chip8cpu.AddInst},
	Op8XY5: {0x8005, 0xF00F, chip8cpu.SubInst},
	Op8XY6: {0x8006, 0xF00F, chip8cpu.ShrInst},
	Op8XY7: {0x8007, 0xF00F, chip8cpu.SubnInst},
	Op8XYE: {0x800E, 0xF00F, chip8cpu.ShlInst},
	Op9XY0: {0x9000, 0xF00F, chip8cpu.SneInst},
	OpANNN: {0xA000, 0xF000, chip8cpu.LdInst},
	OpBNNN: {0xB000, 0xF000, chip8cpu.JpInst},
	OpCXKK: {0xC000, 0xF000, chip8cpu.RndInst},
	OpDXYN: {0xD000, 0xF000, chip8cpu.DrwInst},
	OpEX9E: {0xE09E, 0xF0FF, chip8cpu.SkpInst},
	OpEXA1: {0xE0A1, 0xF0FF, chip8cpu.SknpInst},
	OpFX07: {0xF007, 0xF0FF, chip8cpu.LdInst},
	OpFX0A: {0xF00A, 0xF0FF, chip8cpu.LdInst},
	OpFX15: {0xF015, 0xF0FF, chip8cpu.LdInst},
	OpFX18: {0xF018, 0xF0FF, chip8cpu.LdInst},
	OpFX1E: {0xF01E, 0xF0FF, chip8cpu.AddInst},
	OpFX29: {0xF029, 0xF0FF, chip8cpu.LdInst},
	OpFX33: {0xF033, 0xF0FF, chip8cpu.LdInst},
	OpFX55: {0xF055, 0xF0FF, chip8cpu.LdInst},
	OpFX65: {0xF065, 0xF0FF, chip8cpu.LdInst},
}

// valueOps maps the opcode value of a table entry to its op.
var valueOps = func() map[uint16]Op {
	m := make(map[uint16]Op, opCount)
	for op := Op00E0; op < opCount; op++ {
		m[opcodes[op].value] = op
	}
	return m
}()
