// Package render is a small retained-mode scene graph for the menu screen.
// Objects are referenced by handles, handle None is never valid.
// All methods must be called from one goroutine.
package render

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/juju/errors"
)

type Obj uint32

const None Obj = 0

var ErrExhausted = errors.New("render: object limit reached")

type Kind uint8

const (
	KindScreen Kind = iota
	KindContainer
	KindButton
	KindImage
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindScreen:
		return "screen"
	case KindContainer:
		return "container"
	case KindButton:
		return "button"
	case KindImage:
		return "image"
	case KindLabel:
		return "label"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type Align uint8

const (
	AlignCenter Align = iota
	AlignTopLeft
	AlignTopMid
	AlignTopRight
	AlignBottomMid
	AlignLeftMid
	AlignRightMid
)

type Style struct {
	Bg          color.RGBA
	Border      color.RGBA
	BorderWidth int
	Shadow      color.RGBA
	ShadowWidth int
	Radius      int
	Padding     int
}

type Prop uint8

const (
	PropX Prop = iota
	PropY
)

func (p Prop) String() string {
	if p == PropY {
		return "y"
	}
	return "x"
}

// EaseFunc maps progress 0..1 to 0..1.
type EaseFunc func(float64) float64

func Linear(t float64) float64 { return t }

// EaseOut is cubic, fast start and slow finish.
func EaseOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Anim moves Prop offset of Obj from From to To.
type Anim struct {
	Obj      Obj
	Prop     Prop
	From     int
	To       int
	Duration time.Duration
	Ease     EaseFunc
}

type Backend interface {
	Screen() Obj
	Size() image.Point
	SetBackground(c color.RGBA)

	CreateContainer(parent Obj) (Obj, error)
	CreateButton(parent Obj) (Obj, error)
	CreateImage(parent Obj, img image.Image) (Obj, error)
	CreateLabel(parent Obj, text string) (Obj, error)

	SetStyle(o Obj, s Style)
	SetSize(o Obj, w, h int)
	Align(o Obj, a Align, dx, dy int)
	SetRecolor(o Obj, c color.RGBA)
	SetTextColor(o Obj, c color.RGBA)
	Animate(a Anim)

	// Destroy frees object with all children. None and unknown handles are ignored.
	Destroy(o Obj)
	// Clean destroys children, keeps object.
	Clean(o Obj)
}
