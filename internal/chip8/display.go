package chip8

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the 64x32 monochrome framebuffer. It is mutated only by the
// clear and draw opcodes; the host reads it once per frame for presentation.
type Display struct {
	pixels [DisplayHeight][DisplayWidth]bool
}

// Pixel reports whether the pixel at the given coordinates is set.
// Coordinates outside the buffer read as unset.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return d.pixels[y][x]
}

// Clear unsets every pixel of the buffer.
func (d *Display) Clear() {
	d.pixels = [DisplayHeight][DisplayWidth]bool{}
}

// drawSprite XOR-composites a sprite at the given position. The origin is
// always wrapped into the buffer (x mod 64, y mod 32). Pixels past the right
// or bottom edge are dropped when clipping is enabled and wrap to the
// opposite edge otherwise. It reports whether any set pixel was unset by the
// XOR (collision).
func (d *Display) drawSprite(sprite []byte, x, y uint8, clip bool) bool {
	originX := int(x) % DisplayWidth
	originY := int(y) % DisplayHeight

	collision := false
	for row, line := range sprite {
		py := originY + row
		if py >= DisplayHeight {
			if clip {
				continue
			}
			py %= DisplayHeight
		}

		for bit := 0; bit < 8; bit++ {
			if line&(0x80>>bit) == 0 {
				continue
			}
			px := originX + bit
			if px >= DisplayWidth {
				if clip {
					continue
				}
				px %= DisplayWidth
			}

			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}
	return collision
}
