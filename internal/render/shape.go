package render

import (
	"image"
	"image/color"
	"image/draw"
)

// roundMask is opaque inside rounded rectangle r and outside inner (if set).
type roundMask struct {
	r      image.Rectangle
	radius int
	inner  *roundMask
}

func (m *roundMask) ColorModel() color.Model { return color.AlphaModel }
func (m *roundMask) Bounds() image.Rectangle { return m.r }
func (m *roundMask) At(x, y int) color.Color {
	if !m.contains(x, y) || (m.inner != nil && m.inner.contains(x, y)) {
		return color.Alpha{0}
	}
	return color.Alpha{0xff}
}

func (m *roundMask) contains(x, y int) bool {
	if !(image.Point{x, y}.In(m.r)) {
		return false
	}
	rad := m.radius
	if half := minInt(m.r.Dx(), m.r.Dy()) / 2; rad > half {
		rad = half
	}
	if rad <= 0 {
		return true
	}
	// distance from nearest corner circle center, pixel centers
	cx, cy := 0, 0
	switch {
	case x < m.r.Min.X+rad:
		cx = m.r.Min.X + rad
	case x >= m.r.Max.X-rad:
		cx = m.r.Max.X - rad - 1
	default:
		return true
	}
	switch {
	case y < m.r.Min.Y+rad:
		cy = m.r.Min.Y + rad
	case y >= m.r.Max.Y-rad:
		cy = m.r.Max.Y - rad - 1
	default:
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= rad*rad
}

func fillRound(dst draw.Image, r image.Rectangle, radius int, c color.RGBA) {
	m := &roundMask{r: r, radius: radius}
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, m, r.Min, draw.Over)
}

func strokeRound(dst draw.Image, r image.Rectangle, radius, width int, c color.RGBA) {
	inner := &roundMask{r: r.Inset(width), radius: radius - width}
	m := &roundMask{r: r, radius: radius, inner: inner}
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, m, r.Min, draw.Over)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
