package ui

import (
	"github.com/temoto/ghost/internal/render"
	"github.com/temoto/ghost/internal/types"
)

const (
	ViewMain    = "main"
	ViewOptions = "options"
	ViewApps    = "apps"
)

// View is one full-screen UI state.
// Root() is render.None unless the view is active.
type View interface {
	Name() string
	Create() error
	// Destroy must be safe to call repeatedly.
	Destroy()
	HandleInput(types.InputEvent)
	Root() render.Obj
}

type InputHandler func(types.InputEvent)

func noInput(types.InputEvent) {}

// owned destroys object on Release unless Keep was called.
// Use with defer to free partially built subtrees on error paths.
type owned struct {
	b render.Backend
	o render.Obj
}

func own(b render.Backend, o render.Obj) *owned { return &owned{b: b, o: o} }

func (self *owned) Keep() render.Obj {
	o := self.o
	self.o = render.None
	return o
}

func (self *owned) Release() {
	if self.o != render.None {
		self.b.Destroy(self.o)
		self.o = render.None
	}
}
