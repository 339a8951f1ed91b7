package cli

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = append([]string{"retrochip8"}, args...)
	return ParseFlags()
}

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseArgs(t, "game.ch8")
	assert.NoError(t, err)

	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, options.DefaultCycleRate, opts.CycleRate)
	assert.Equal(t, options.DefaultTimerRate, opts.TimerRate)
	assert.Equal(t, options.DefaultScale, opts.Scale)
	assert.Equal(t, uint64(0), opts.MaxCycles)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.False(t, opts.Fast)
	assert.False(t, opts.Disasm)
	assert.True(t, opts.HexComments)
	assert.True(t, opts.OffsetComments)
}

func TestParseFlags_InputFlag(t *testing.T) {
	opts, err := parseArgs(t, "-i", "game.ch8", "-fast")
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.True(t, opts.Fast)
}

func TestParseFlags_Emulation(t *testing.T) {
	opts, err := parseArgs(t,
		"-hz", "1000", "-timerhz", "50", "-cycles", "5000", "-duration", "2s",
		"-scale", "4", "-fast", "-coupled", "-seed", "42",
		"-keys", "5,a", "-press", "1@10-20", "-qwerty",
		"game.ch8")
	assert.NoError(t, err)

	assert.Equal(t, 1000, opts.CycleRate)
	assert.Equal(t, 50, opts.TimerRate)
	assert.Equal(t, uint64(5000), opts.MaxCycles)
	assert.Equal(t, 2*time.Second, opts.Duration)
	assert.Equal(t, 4, opts.Scale)
	assert.True(t, opts.Fast)
	assert.True(t, opts.CoupledTimers)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.Equal(t, "5,a", opts.Keys)
	assert.Equal(t, "1@10-20", opts.Press)
	assert.True(t, opts.QWERTY)
}

func TestParseFlags_DisasmOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Disassembler
	}{
		{
			name: "default flags",
			args: []string{"-disasm", "test.ch8"},
			want: options.Disassembler{HexComments: true, OffsetComments: true},
		},
		{
			name: "nohexcomments flag",
			args: []string{"-disasm", "-nohexcomments", "test.ch8"},
			want: options.Disassembler{OffsetComments: true},
		},
		{
			name: "nooffsets flag",
			args: []string{"-disasm", "-nooffsets", "test.ch8"},
			want: options.Disassembler{HexComments: true},
		},
		{
			name: "z flag",
			args: []string{"-disasm", "-z", "test.ch8"},
			want: options.Disassembler{HexComments: true, OffsetComments: true, ZeroBytes: true},
		},
		{
			name: "all disasm flags",
			args: []string{"-disasm", "-nohexcomments", "-nooffsets", "-z", "test.ch8"},
			want: options.Disassembler{ZeroBytes: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			assert.True(t, opts.Disasm)
			assert.Equal(t, tt.want, opts.Disassembler)
		})
	}
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{name: "no file", args: nil},
		{name: "flag after file", args: []string{"game.ch8", "-fast"}, msg: "Potential argument -fast"},
		{name: "two files", args: []string{"a.ch8", "b.ch8"}, msg: "only one ROM file"},
		{name: "input flag and file", args: []string{"-i", "a.ch8", "b.ch8"}, msg: "given as argument and with -i a.ch8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.Contains(t, usageErr.Error(), tt.msg)
		})
	}
}

func TestValidateOptionCombinations(t *testing.T) {
	valid := options.NewProgram()

	tests := []struct {
		name        string
		modify      func(opts *options.Program)
		expectError string
	}{
		{
			name:   "defaults",
			modify: func(*options.Program) {},
		},
		{
			name:        "zero cycle rate",
			modify:      func(opts *options.Program) { opts.CycleRate = 0 },
			expectError: "invalid cycle rate 0",
		},
		{
			name:        "negative timer rate",
			modify:      func(opts *options.Program) { opts.TimerRate = -1 },
			expectError: "invalid timer rate -1",
		},
		{
			name:        "scale too large",
			modify:      func(opts *options.Program) { opts.Scale = maxScale + 1 },
			expectError: "invalid scale 17",
		},
		{
			name:        "negative duration",
			modify:      func(opts *options.Program) { opts.Duration = -time.Second },
			expectError: "invalid duration",
		},
		{
			name: "disasm with screenshot",
			modify: func(opts *options.Program) {
				opts.Disasm = true
				opts.Screenshot = "screen.bmp"
			},
			expectError: "-disasm can not be combined",
		},
		{
			name: "live and fast",
			modify: func(opts *options.Program) {
				opts.Live = true
				opts.Fast = true
			},
			expectError: "-live requires real time execution",
		},
		{
			name:        "unbounded wav recording",
			modify:      func(opts *options.Program) { opts.Audio = "sound.wav" },
			expectError: "-wav buffers the whole recording",
		},
		{
			name: "wav recording with cycle limit",
			modify: func(opts *options.Program) {
				opts.Audio = "sound.wav"
				opts.MaxCycles = 7000
			},
		},
		{
			name: "wav recording with duration",
			modify: func(opts *options.Program) {
				opts.Audio = "sound.wav"
				opts.Duration = 10 * time.Second
			},
		},
		{
			name: "fast with cycle limit",
			modify: func(opts *options.Program) {
				opts.Fast = true
				opts.MaxCycles = 100
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.modify(&opts)

			err := validateOptionCombinations(opts)
			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
