// Package disasm formats CHIP-8 instructions as assembly and writes listings of ROM images.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Name returns the mnemonic of the instruction, or an empty string for
// words that are not a documented instruction.
func Name(ins chip8.Instruction) string {
	def := ins.Op.Instruction()
	if def == nil {
		return ""
	}
	return def.Name
}

// Format returns the instruction in assembly notation.
// Words that are not a documented instruction are formatted as data.
func Format(ins chip8.Instruction) string {
	name := Name(ins)
	if name == "" {
		return fmt.Sprintf(".word $%04X", ins.Word)
	}
	if params := formatParams(ins); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of an instruction.
func formatParams(ins chip8.Instruction) string {
	switch ins.Kind {
	case 0x0:
		return "" // No parameters
	case 0x1, 0x2:
		return formatAddress(ins)
	case 0x3, 0x4, 0x6, 0x7, 0xC:
		return formatByte(ins)
	case 0x5, 0x9:
		return formatRegisters(ins)
	case 0x8:
		return formatALU(ins)
	case 0xA:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case 0xB:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	case 0xD:
		return formatDraw(ins)
	case 0xE:
		return formatRegister(ins)
	case 0xF:
		return formatMisc(ins)
	}
	return ""
}

// formatAddress formats jump and call instructions (JP addr, CALL addr).
func formatAddress(ins chip8.Instruction) string {
	return fmt.Sprintf("$%03X", ins.NNN)
}

// formatByte formats instructions with a register and an immediate byte
// (SE, SNE, LD, ADD, RND).
func formatByte(ins chip8.Instruction) string {
	return fmt.Sprintf("V%X, $%02X", ins.X, ins.KK)
}

// formatRegisters formats instructions with two register operands.
func formatRegisters(ins chip8.Instruction) string {
	return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
}

// formatRegister formats instructions with a single register operand (SKP, SKNP, SHR, SHL).
func formatRegister(ins chip8.Instruction) string {
	return fmt.Sprintf("V%X", ins.X)
}

// formatALU formats the register arithmetic and logic instructions.
func formatALU(ins chip8.Instruction) string {
	switch ins.Op {
	case chip8.Op8XY6, chip8.Op8XYE:
		return formatRegister(ins)
	default:
		return formatRegisters(ins)
	}
}

// formatDraw formats draw instructions (DRW).
func formatDraw(ins chip8.Instruction) string {
	return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
}

// formatMisc formats the timer, keyboard and memory instructions of the 0xF class.
func formatMisc(ins chip8.Instruction) string {
	switch ins.Op {
	case chip8.OpFX07:
		return fmt.Sprintf("V%X, DT", ins.X)
	case chip8.OpFX0A:
		return fmt.Sprintf("V%X, K", ins.X)
	case chip8.OpFX15:
		return fmt.Sprintf("DT, V%X", ins.X)
	case chip8.OpFX18:
		return fmt.Sprintf("ST, V%X", ins.X)
	case chip8.OpFX1E:
		return fmt.Sprintf("I, V%X", ins.X)
	case chip8.OpFX29:
		return fmt.Sprintf("F, V%X", ins.X)
	case chip8.OpFX33:
		return fmt.Sprintf("B, V%X", ins.X)
	case chip8.OpFX55:
		return fmt.Sprintf("[I], V%X", ins.X)
	case chip8.OpFX65:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}
