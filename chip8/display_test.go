package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebuffer_DrawSprite(t *testing.T) {
	var fb Framebuffer

	collision := fb.DrawSprite(0, 0, []byte{0xA0}, false)
	assert.False(t, collision)
	assert.True(t, fb.Pixel(0, 0))
	assert.False(t, fb.Pixel(1, 0))
	assert.True(t, fb.Pixel(2, 0))

	collision = fb.DrawSprite(1, 0, []byte{0x80}, false)
	assert.False(t, collision)
	assert.True(t, fb.Pixel(1, 0))

	collision = fb.DrawSprite(2, 0, []byte{0x80}, false)
	assert.True(t, collision)
	assert.False(t, fb.Pixel(2, 0))
	assert.Equal(t, 2, fb.Lit())
}

func TestFramebuffer_OriginWraps(t *testing.T) {
	var fb Framebuffer

	fb.DrawSprite(DisplayWidth+3, DisplayHeight+2, []byte{0x80}, false)
	assert.True(t, fb.Pixel(3, 2))
	assert.Equal(t, 1, fb.Lit())
}

func TestFramebuffer_Clipping(t *testing.T) {
	var fb Framebuffer

	fb.DrawSprite(60, 30, []byte{0xFF, 0xFF, 0xFF}, false)
	assert.Equal(t, 8, fb.Lit())
	assert.True(t, fb.Pixel(63, 31))
	assert.False(t, fb.Pixel(0, 30))
	assert.False(t, fb.Pixel(60, 0))
}

func TestFramebuffer_Wrapping(t *testing.T) {
	var fb Framebuffer

	fb.DrawSprite(60, 30, []byte{0xFF, 0xFF, 0xFF}, true)
	assert.Equal(t, 24, fb.Lit())
	assert.True(t, fb.Pixel(3, 30))
	assert.True(t, fb.Pixel(60, 0))
	assert.True(t, fb.Pixel(0, 0))
}

func TestFramebuffer_Clear(t *testing.T) {
	var fb Framebuffer
	fb.DrawSprite(5, 5, []byte{0xFF, 0xFF}, false)

	fb.Clear()
	assert.Equal(t, 0, fb.Lit())
	for _, p := range fb.Frame() {
		assert.False(t, p)
	}
}

func TestFramebuffer_PixelOutside(t *testing.T) {
	var fb Framebuffer

	assert.False(t, fb.Pixel(-1, 0))
	assert.False(t, fb.Pixel(DisplayWidth, 0))
	assert.False(t, fb.Pixel(0, DisplayHeight))
}

func TestFramebuffer_String(t *testing.T) {
	var fb Framebuffer
	fb.DrawSprite(0, 0, []byte{0xC0}, false)

	lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")
	assert.Len(t, lines, DisplayHeight)
	assert.Equal(t, "##"+strings.Repeat(".", DisplayWidth-2), lines[0])
	assert.Equal(t, strings.Repeat(".", DisplayWidth), lines[1])
}
