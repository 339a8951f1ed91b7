// Package render converts the interpreter framebuffer into text and images.
package render

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"golang.org/x/image/bmp"
	"golang.org/x/image/colornames"
)

// Characters used for the text output.
const (
	PixelOn  = '#'
	PixelOff = '.'
)

// Screen is a monochrome pixel source of the interpreter screen size.
type Screen interface {
	Pixel(x, y int) bool
}

// palette of the image output, index 0 is the background.
var palette = color.Palette{colornames.Black, colornames.White}

// Text writes the screen as lines of characters, every pixel is repeated
// scale times in both directions.
func Text(w io.Writer, screen Screen, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}

	buf := bufio.NewWriter(w)
	line := make([]byte, 0, chip8.ScreenWidth*scale+1)

	for y := range chip8.ScreenHeight {
		line = line[:0]
		for x := range chip8.ScreenWidth {
			c := byte(PixelOff)
			if screen.Pixel(x, y) {
				c = PixelOn
			}
			for range scale {
				line = append(line, c)
			}
		}
		line = append(line, '\n')

		for range scale {
			if _, err := buf.Write(line); err != nil {
				return fmt.Errorf("writing screen line: %w", err)
			}
		}
	}

	if err := buf.Flush(); err != nil {
		return fmt.Errorf("flushing screen: %w", err)
	}
	return nil
}

// Image returns the screen as paletted image, every pixel is scaled to a
// square of scale by scale image pixels.
func Image(screen Screen, scale int) (*image.Paletted, error) {
	if scale < 1 {
		return nil, fmt.Errorf("invalid scale %d", scale)
	}

	bounds := image.Rect(0, 0, chip8.ScreenWidth*scale, chip8.ScreenHeight*scale)
	img := image.NewPaletted(bounds, palette)

	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			if screen.Pixel(x/scale, y/scale) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img, nil
}

// WriteBMP encodes the screen as BMP image.
func WriteBMP(w io.Writer, screen Screen, scale int) error {
	img, err := Image(screen, scale)
	if err != nil {
		return err
	}
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encoding bmp: %w", err)
	}
	return nil
}
