package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

const entryLabel = "Start"

// line is a single decoded listing entry.
type line struct {
	address uint16
	data    []byte
	ins     chip8.Instruction
	code    string
}

// labels maps referenced addresses of a program to their names.
type labels struct {
	names map[uint16]string
}

// Listing writes an assembly listing of the ROM image, as loaded at the
// program start address, to the writer. The image is swept linearly and
// every word is decoded as an instruction.
func Listing(w io.Writer, rom []byte, opts options.Disassembler) error {
	lines := sweep(rom, listingEnd(rom, opts.ZeroBytes))
	lbls := collectLabels(lines)

	if err := writeHeader(w); err != nil {
		return err
	}

	for i, l := range lines {
		if name, ok := lbls.names[l.address]; ok {
			if _, err := fmt.Fprintf(w, "%s:\n", name); err != nil {
				return fmt.Errorf("writing label %s: %w", name, err)
			}
		}

		if err := writeLine(w, l, lbls, opts); err != nil {
			return fmt.Errorf("writing address $%03X: %w", l.address, err)
		}

		if endsBlock(lines, i) && i < len(lines)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing block separator: %w", err)
			}
		}
	}

	return nil
}

func writeHeader(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Code base address: $%04X\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program starts at $%03X in CHIP-8 memory space\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}
	return nil
}

// listingEnd returns the number of ROM bytes to output. Trailing zero bytes
// are cut off unless requested, keeping the last instruction word intact.
func listingEnd(rom []byte, zeroBytes bool) int {
	if zeroBytes {
		return len(rom)
	}

	end := 0
	for i := len(rom) - 1; i >= 0; i-- {
		if rom[i] != 0 {
			end = i + 1
			break
		}
	}
	if end%2 == 1 && end < len(rom) {
		end++
	}
	return end
}

// sweep decodes the first end bytes of the ROM word by word.
func sweep(rom []byte, end int) []line {
	lines := make([]line, 0, end/chip8.InstructionSize+1)

	for i := 0; i < end; i += chip8.InstructionSize {
		address := uint16(chip8.ProgramStart + i)
		if i+1 >= end {
			lines = append(lines, line{address: address, data: rom[i : i+1]})
			break
		}

		word := uint16(rom[i])<<8 | uint16(rom[i+1])
		ins := chip8.Decode(word)
		lines = append(lines, line{
			address: address,
			data:    rom[i : i+2],
			ins:     ins,
			code:    Format(ins),
		})
	}
	return lines
}

// collectLabels names every address that is the target of a call, jump or
// index register load and that starts a line of the listing.
func collectLabels(lines []line) labels {
	starts := set.New[uint16]()
	for _, l := range lines {
		starts.Add(l.address)
	}

	lbls := labels{
		names: map[uint16]string{},
	}
	if len(lines) > 0 {
		lbls.names[chip8.ProgramStart] = entryLabel
	}

	for _, l := range lines {
		if len(l.data) < chip8.InstructionSize {
			continue
		}
		target := l.ins.NNN
		if target == chip8.ProgramStart || !starts.Contains(target) {
			continue
		}

		switch {
		case isCall(l.ins):
			lbls.names[target] = fmt.Sprintf("sub_%03X", target)
		case isJump(l.ins):
			if _, ok := lbls.names[target]; !ok {
				lbls.names[target] = fmt.Sprintf("label_%03X", target)
			}
		case isDataReference(l.ins):
			if _, ok := lbls.names[target]; !ok {
				lbls.names[target] = fmt.Sprintf("data_%03X", target)
			}
		}
	}
	return lbls
}

func writeLine(w io.Writer, l line, lbls labels, opts options.Disassembler) error {
	var code string
	switch {
	case len(l.data) < chip8.InstructionSize:
		code = fmt.Sprintf(".byte $%02X", l.data[0])
	default:
		code = operandLabel(l, lbls)
	}

	text := "    " + code
	comment := lineComment(l, opts)
	if comment == "" {
		_, err := fmt.Fprintf(w, "%s\n", text)
		return err
	}
	_, err := fmt.Fprintf(w, "%-32s ; %s\n", text, comment)
	return err
}

// operandLabel replaces the address operand of an instruction by its label.
func operandLabel(l line, lbls labels) string {
	name, ok := lbls.names[l.ins.NNN]
	if !ok {
		return l.code
	}

	switch l.ins.Op {
	case chip8.Op1NNN, chip8.Op2NNN:
		return fmt.Sprintf("%s %s", Name(l.ins), name)
	case chip8.OpANNN:
		return fmt.Sprintf("%s I, %s", Name(l.ins), name)
	default:
		return l.code
	}
}

func lineComment(l line, opts options.Disassembler) string {
	var hex string
	if opts.HexComments {
		hex = fmt.Sprintf("%02X", l.data[0])
		if len(l.data) > 1 {
			hex = fmt.Sprintf("%02X %02X", l.data[0], l.data[1])
		}
	}

	switch {
	case opts.OffsetComments && hex != "":
		return fmt.Sprintf("$%03X: %s", l.address, hex)
	case opts.OffsetComments:
		return fmt.Sprintf("$%03X", l.address)
	default:
		return hex
	}
}

// endsBlock returns whether the line unconditionally leaves the linear
// control flow, which is the case for jumps and returns that can not be
// skipped by the previous instruction.
func endsBlock(lines []line, i int) bool {
	ins := lines[i].ins
	if len(lines[i].data) < chip8.InstructionSize {
		return false
	}
	if !isJump(ins) && !isReturn(ins) {
		return false
	}
	return i == 0 || !isSkip(lines[i-1].ins)
}

func isCall(ins chip8.Instruction) bool {
	return ins.Op.Instruction() == chip8cpu.CallInst
}

// isJump returns true for absolute jumps only, JP V0, addr has no static target.
func isJump(ins chip8.Instruction) bool {
	return ins.Op == chip8.Op1NNN
}

func isReturn(ins chip8.Instruction) bool {
	return ins.Op.Instruction() == chip8cpu.RetInst
}

func isSkip(ins chip8.Instruction) bool {
	def := ins.Op.Instruction()
	if def == nil {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(def.Name)
}

// isDataReference returns true for LD I, addr which points the index register to data.
func isDataReference(ins chip8.Instruction) bool {
	return ins.Op == chip8.OpANNN
}
