package disasm

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

const header = "; CHIP-8 ROM Disassembly\n" +
	"; Code base address: $0200\n" +
	"; Program starts at $200 in CHIP-8 memory space\n\n" +
	".org $200\n\n"

func commented(code, comment string) string {
	return fmt.Sprintf("%-32s ; %s\n", "    "+code, comment)
}

func TestListing(t *testing.T) {
	rom := []byte{
		0x00, 0xE0, // cls
		0x22, 0x06, // call 206
		0x12, 0x02, // jp 202
		0x61, 0x05, // ld V1, 5
		0x00, 0xEE, // ret
		0x00, 0x00,
	}

	var buf bytes.Buffer
	assert.NoError(t, Listing(&buf, rom, options.NewDisassembler()))

	expected := header +
		"Start:\n" +
		commented(chip8cpu.ClsInst.Name, "$200: 00 E0") +
		"label_202:\n" +
		commented(chip8cpu.CallInst.Name+" sub_206", "$202: 22 06") +
		commented(chip8cpu.JpInst.Name+" label_202", "$204: 12 02") +
		"\n" +
		"sub_206:\n" +
		commented(chip8cpu.LdInst.Name+" V1, $05", "$206: 61 05") +
		commented(chip8cpu.RetInst.Name, "$208: 00 EE")

	assert.Equal(t, expected, buf.String())
}

func TestListingDataLabel(t *testing.T) {
	rom := []byte{
		0xA2, 0x04, // ld I, 204
		0xD0, 0x11, // drw V0, V1, 1
		0xFF, 0x81,
	}

	var buf bytes.Buffer
	assert.NoError(t, Listing(&buf, rom, options.Disassembler{}))

	expected := header +
		"Start:\n" +
		"    " + chip8cpu.LdInst.Name + " I, data_204\n" +
		"    " + chip8cpu.DrwInst.Name + " V0, V1, $1\n" +
		"data_204:\n" +
		"    .word $FF81\n"

	assert.Equal(t, expected, buf.String())
}

func TestListingSkippedJumpKeepsBlock(t *testing.T) {
	rom := []byte{
		0x30, 0x01, // se V0, 1
		0x12, 0x00, // jp 200
		0x00, 0xE0, // cls
	}

	var buf bytes.Buffer
	assert.NoError(t, Listing(&buf, rom, options.Disassembler{}))

	expected := header +
		"Start:\n" +
		"    " + chip8cpu.SeInst.Name + " V0, $01\n" +
		"    " + chip8cpu.JpInst.Name + " Start\n" +
		"    " + chip8cpu.ClsInst.Name + "\n"

	assert.Equal(t, expected, buf.String())
}

func TestListingTrailingBytes(t *testing.T) {
	tests := []struct {
		name  string
		rom   []byte
		opts  options.Disassembler
		lines []string
	}{
		{
			name:  "odd trailing byte",
			rom:   []byte{0x00, 0xE0, 0x12},
			lines: []string{chip8cpu.ClsInst.Name, ".byte $12"},
		},
		{
			name:  "trailing zeros trimmed",
			rom:   []byte{0x00, 0xE0, 0x00, 0x00, 0x00},
			lines: []string{chip8cpu.ClsInst.Name},
		},
		{
			name:  "trailing zeros kept",
			rom:   []byte{0x00, 0xE0, 0x00, 0x00},
			opts:  options.Disassembler{ZeroBytes: true},
			lines: []string{chip8cpu.ClsInst.Name, ".word $0000"},
		},
		{
			name:  "last word kept intact",
			rom:   []byte{0x12, 0x00, 0x00, 0x00},
			lines: []string{chip8cpu.JpInst.Name + " Start"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, Listing(&buf, tt.rom, tt.opts))

			body := strings.TrimPrefix(buf.String(), header+"Start:\n")
			var got []string
			for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
				got = append(got, strings.TrimSpace(line))
			}
			assert.Equal(t, tt.lines, got)
		})
	}
}

func TestListingEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Listing(&buf, nil, options.NewDisassembler()))
	assert.Equal(t, header, buf.String())
}

func TestLineComment(t *testing.T) {
	l := line{address: 0x20A, data: []byte{0x6A, 0x42}}

	tests := []struct {
		name string
		opts options.Disassembler
		want string
	}{
		{"hex and offset", options.Disassembler{HexComments: true, OffsetComments: true}, "$20A: 6A 42"},
		{"offset only", options.Disassembler{OffsetComments: true}, "$20A"},
		{"hex only", options.Disassembler{HexComments: true}, "6A 42"},
		{"none", options.Disassembler{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lineComment(l, tt.opts))
		})
	}
}
