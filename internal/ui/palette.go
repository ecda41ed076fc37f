package ui

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/temoto/ghost/internal/render"
)

var (
	colorBackground = color.RGBA{0x10, 0x10, 0x14, 0xff}
	colorStatus     = color.RGBA{0x24, 0x24, 0x2c, 0xff}
	colorText       = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	colorDim        = color.RGBA{0x80, 0x80, 0x88, 0xff}
)

func accentColor(hue float64) color.RGBA {
	return toRGBA(colorful.Hsv(hue, 0.7, 0.95))
}

func buttonStyle(accent color.RGBA) render.Style {
	a, _ := colorful.MakeColor(accent)
	black := colorful.Color{}
	return render.Style{
		Bg:          toRGBA(a.BlendLab(black, 0.75)),
		Border:      accent,
		BorderWidth: 3,
		Shadow:      toRGBA(a.BlendLab(black, 0.5)),
		ShadowWidth: 4,
		Radius:      12,
		Padding:     6,
	}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 0xff}
}
