package chip8

// Display geometry.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
	ScreenPixels = ScreenWidth * ScreenHeight
)

// Display is the monochrome framebuffer, stored row-major.
// A pixel is either on (true) or off (false).
type Display [ScreenPixels]bool

// Pixel returns whether the pixel at the given position is on.
// Positions outside the screen are reported as off.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return d[y*ScreenWidth+x]
}

// Clear turns all pixels off.
func (d *Display) Clear() {
	*d = Display{}
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() int {
	var count int
	for _, on := range d {
		if on {
			count++
		}
	}
	return count
}

// drawSprite XORs a sprite of 8 pixel wide rows onto the framebuffer with its
// top left corner at x, y. Pixels past the right or bottom edge are clipped.
// It returns whether any pixel that was on got turned off.
func (d *Display) drawSprite(x, y int, rows []byte) bool {
	var collision bool

	for row, data := range rows {
		py := y + row
		if py >= ScreenHeight {
			break
		}

		for col := range 8 {
			if data&(0x80>>col) == 0 {
				continue
			}
			px := x + col
			if px >= ScreenWidth {
				break
			}

			i := py*ScreenWidth + px
			if d[i] {
				collision = true
			}
			d[i] = !d[i]
		}
	}

	return collision
}
