// Package display is RGBA pixel buffer with optional framebuffer output.
package display

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
	"github.com/temoto/ghost/hardware/display/framebuffer"
)

type Display struct {
	fb   *framebuffer.Framebuffer
	pix  []color.RGBA
	size image.Point

	mu       sync.Mutex
	updateCh chan<- *image.RGBA
}

// compile-time interface compliance test
var _ draw.Image = new(Display)

func NewFb(dev string) (*Display, error) {
	fb, err := framebuffer.New(dev)
	if err != nil {
		return nil, errors.Annotatef(err, "framebuffer device=%s", dev)
	}
	size := fb.Size()
	d := &Display{
		fb:   fb,
		pix:  make([]color.RGBA, size.X*size.Y),
		size: size,
	}
	return d, nil
}

func NewMock(size image.Point) *Display {
	return &Display{
		pix:  make([]color.RGBA, size.X*size.Y),
		size: size,
	}
}

// SetUpdateChan receives snapshot after every Flush.
// Snapshot is dropped when channel is not ready.
func (d *Display) SetUpdateChan(ch chan<- *image.RGBA) {
	d.mu.Lock()
	d.updateCh = ch
	d.mu.Unlock()
}

func (d *Display) Size() image.Point { return d.size }

func (d *Display) ColorModel() color.Model { return color.RGBAModel }
func (d *Display) Bounds() image.Rectangle { return image.Rectangle{Max: d.size} }
func (d *Display) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(d.Bounds())) {
		return color.RGBA{}
	}
	return d.get(x, y)
}
func (d *Display) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(d.Bounds())) {
		return
	}
	d.set(x, y, toRGBA(c))
}

func (d *Display) Clear() error {
	black := color.RGBA{0, 0, 0, 0xff}
	for i := range d.pix {
		d.pix[i] = black
	}
	return d.Flush()
}

func (d *Display) Flush() error {
	d.mu.Lock()
	ch := d.updateCh
	d.mu.Unlock()
	if ch != nil {
		select {
		case ch <- d.Snapshot():
		default:
		}
	}
	if d.fb != nil {
		if err := d.fb.Update(d.pix); err != nil {
			return err
		}
		return d.fb.Flush()
	}
	return nil
}

func (d *Display) Snapshot() *image.RGBA {
	img := image.NewRGBA(d.Bounds())
	for i, c := range d.pix {
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}
	return img
}

func (d *Display) Close() error {
	if d.fb != nil {
		return d.fb.Close()
	}
	return nil
}

// QR draws full screen code image.
func (d *Display) QR(text string, border bool, level qrcode.RecoveryLevel) error {
	qr, err := qrcode.New(text, level)
	if err != nil {
		return errors.Annotate(err, "QR")
	}
	qr.DisableBorder = !border
	minSize := minInt(d.size.X, d.size.Y)
	img := qr.Image(minSize).(*image.Paletted)
	if !img.Rect.In(image.Rectangle{Max: d.size}) {
		return errors.Errorf("QR image size=%s > display size=%s", img.Bounds().Max.String(), d.size.String())
	}
	d.palleted2(img)
	return d.Flush()
}

func (d *Display) palleted2(img *image.Paletted) {
	min, max := img.Bounds().Min, img.Bounds().Max
	bg := toRGBA(img.Palette[0])
	fg := toRGBA(img.Palette[1])
	for y := min.Y; y < max.Y; y++ {
		for x := min.X; x < max.X; x++ {
			palidx := img.Pix[img.PixOffset(x, y)]
			c := bg
			if palidx != 0 {
				c = fg
			}
			d.set(x, y, c)
		}
	}
}

func (d *Display) get(x, y int) color.RGBA    { return d.pix[y*d.size.X+x] }
func (d *Display) set(x, y int, c color.RGBA) { d.pix[y*d.size.X+x] = c }

func minInt(i1, i2 int) int {
	if i1 <= i2 {
		return i1
	}
	return i2
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
