// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a ROM image from disk. Files that do not fit into the program
// area of the interpreter memory are rejected with chip8.ErrROMTooLarge.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.Read(file)
}

// Read reads a ROM image from the reader, reading at most one byte more
// than the maximum ROM size to detect oversized images.
func (l *Loader) Read(reader io.Reader) ([]byte, error) {
	rom, err := io.ReadAll(io.LimitReader(reader, chip8.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading rom: %w", err)
	}
	if len(rom) > chip8.MaxROMSize {
		return nil, fmt.Errorf("%w: more than %d bytes", chip8.ErrROMTooLarge, chip8.MaxROMSize)
	}
	return rom, nil
}
