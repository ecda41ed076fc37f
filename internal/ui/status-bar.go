package ui

import (
	"github.com/temoto/ghost/internal/render"
)

const statusHeight = 16

// statusBar decorates parent with title and current mode tag.
func statusBar(b render.Backend, parent render.Obj, title string, mode Mode) error {
	bar, err := b.CreateContainer(parent)
	if err != nil {
		return err
	}
	b.SetSize(bar, b.Size().X, statusHeight)
	b.Align(bar, render.AlignTopLeft, 0, 0)
	b.SetStyle(bar, render.Style{Bg: colorStatus, Padding: 2})

	t, err := b.CreateLabel(bar, title)
	if err != nil {
		return err
	}
	b.SetTextColor(t, colorText)
	b.Align(t, render.AlignLeftMid, 2, 0)

	if mode != ModeNone {
		tag, err := b.CreateLabel(bar, mode.String())
		if err != nil {
			return err
		}
		b.SetTextColor(tag, colorDim)
		b.Align(tag, render.AlignRightMid, -2, 0)
	}
	return nil
}
