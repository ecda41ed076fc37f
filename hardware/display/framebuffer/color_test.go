package framebuffer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGB565(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input  color.RGBA
		expect uint16
	}{
		{color.RGBA{0, 0, 0, 0}, 0},
		{color.RGBA{0, 0, 0, 0xff}, 0},
		{color.RGBA{0xff, 0xff, 0xff, 0xff}, 0xffff},
		{color.RGBA{0xff, 0x00, 0x00, 0xff}, 0xf800},
		{color.RGBA{0x00, 0xff, 0x00, 0xff}, 0x07e0},
		{color.RGBA{0x00, 0x00, 0xff, 0xff}, 0x001f},
		{color.RGBA{0x0c, 0x0c, 0x0c, 0xff}, 0x0861},
	}
	for _, c := range cases {
		assert.Equal(t, c.expect, encode565(c.input), c.input)
	}
}

func TestEncodeInto(t *testing.T) {
	t.Parallel()

	size := image.Point{X: 2, Y: 2}
	cs := []color.RGBA{
		{0xff, 0, 0, 0xff}, {0, 0xff, 0, 0xff},
		{0, 0, 0xff, 0xff}, {0xff, 0xff, 0xff, 0xff},
	}

	// stride wider than row, padding must stay untouched
	buf565 := make([]byte, 6*2)
	encodeInto(buf565, cs, formatRGB565, size, 6)
	assert.Equal(t, []byte{0x00, 0xf8, 0xe0, 0x07, 0, 0, 0x1f, 0x00, 0xff, 0xff, 0, 0}, buf565)

	buf32 := make([]byte, 8*2)
	encodeInto(buf32, cs, formatXRGB8888, size, 8)
	assert.Equal(t, []byte{
		0, 0, 0xff, 0, 0, 0xff, 0, 0,
		0xff, 0, 0, 0, 0xff, 0xff, 0xff, 0,
	}, buf32)
}

func TestPixelFormat(t *testing.T) {
	t.Parallel()

	f, err := pixelFormat(&variableScreenInfo{BitsPerPixel: 16, Red: rgb565.Red, Green: rgb565.Green, Blue: rgb565.Blue})
	assert.NoError(t, err)
	assert.Equal(t, formatRGB565, f)
	_, err = pixelFormat(&variableScreenInfo{BitsPerPixel: 8})
	assert.Error(t, err)
}
