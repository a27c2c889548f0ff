package chip8

import "strings"

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Framebuffer is the monochrome 64x32 display, indexed by y*DisplayWidth+x.
type Framebuffer struct {
	pixels [DisplayWidth * DisplayHeight]bool
}

// Pixel returns whether the pixel at the given position is lit. Coordinates
// outside of the display return false.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return f.pixels[y*DisplayWidth+x]
}

// Frame returns a copy of all pixels in row major order.
func (f *Framebuffer) Frame() [DisplayWidth * DisplayHeight]bool {
	return f.pixels
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, p := range f.pixels {
		if p {
			n++
		}
	}
	return n
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	f.pixels = [DisplayWidth * DisplayHeight]bool{}
}

// DrawSprite XORs the sprite rows into the display with the top left corner at
// (x, y). The origin wraps around the display edges, pixels past the right or
// bottom edge are clipped unless wrap is set. It returns true if any lit pixel
// was turned off.
func (f *Framebuffer) DrawSprite(x, y uint8, sprite []byte, wrap bool) bool {
	originX := int(x) % DisplayWidth
	originY := int(y) % DisplayHeight
	collision := false

	for row, bits := range sprite {
		py := originY + row
		if py >= DisplayHeight {
			if !wrap {
				break
			}
			py %= DisplayHeight
		}

		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			px := originX + col
			if px >= DisplayWidth {
				if !wrap {
					break
				}
				px %= DisplayWidth
			}

			idx := py*DisplayWidth + px
			if f.pixels[idx] {
				collision = true
			}
			f.pixels[idx] = !f.pixels[idx]
		}
	}
	return collision
}

// String renders the framebuffer as text, lit pixels as '#' and others as '.'.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((DisplayWidth + 1) * DisplayHeight)
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			if f.pixels[y*DisplayWidth+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
