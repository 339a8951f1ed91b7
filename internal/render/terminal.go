package render

import (
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// clearScreen moves the cursor home and clears an ANSI terminal.
const clearScreen = "\x1b[H\x1b[2J"

// Terminal redraws every frame to an ANSI terminal.
type Terminal struct {
	w      io.Writer
	scale  int
	frames uint64
}

// NewTerminal returns a terminal frame output.
func NewTerminal(w io.Writer, scale int) *Terminal {
	return &Terminal{
		w:     w,
		scale: scale,
	}
}

// Frame draws the display.
func (t *Terminal) Frame(display *chip8.Display) error {
	if _, err := io.WriteString(t.w, clearScreen); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}
	t.frames++
	return Text(t.w, display, t.scale)
}

// Frames returns the number of drawn frames.
func (t *Terminal) Frames() uint64 {
	return t.frames
}
