package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// Recorder decorates Backend with call trace, used by tests to check operation order.
type Recorder struct {
	Backend

	mu  sync.Mutex
	ops []string
}

var _ Backend = new(Recorder)

func NewRecorder(b Backend) *Recorder { return &Recorder{Backend: b} }

func (self *Recorder) Ops() []string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]string(nil), self.ops...)
}

func (self *Recorder) Reset() {
	self.mu.Lock()
	self.ops = nil
	self.mu.Unlock()
}

func (self *Recorder) add(format string, args ...interface{}) {
	self.mu.Lock()
	self.ops = append(self.ops, fmt.Sprintf(format, args...))
	self.mu.Unlock()
}

func (self *Recorder) created(kind Kind, o Obj, err error) (Obj, error) {
	if err != nil {
		self.add("create %s err", kind.String())
	} else {
		self.add("create %s %d", kind.String(), o)
	}
	return o, err
}

func (self *Recorder) SetBackground(c color.RGBA) {
	self.add("background #%02x%02x%02x", c.R, c.G, c.B)
	self.Backend.SetBackground(c)
}

func (self *Recorder) CreateContainer(parent Obj) (Obj, error) {
	o, err := self.Backend.CreateContainer(parent)
	return self.created(KindContainer, o, err)
}

func (self *Recorder) CreateButton(parent Obj) (Obj, error) {
	o, err := self.Backend.CreateButton(parent)
	return self.created(KindButton, o, err)
}

func (self *Recorder) CreateImage(parent Obj, img image.Image) (Obj, error) {
	o, err := self.Backend.CreateImage(parent, img)
	return self.created(KindImage, o, err)
}

func (self *Recorder) CreateLabel(parent Obj, text string) (Obj, error) {
	o, err := self.Backend.CreateLabel(parent, text)
	return self.created(KindLabel, o, err)
}

func (self *Recorder) SetRecolor(o Obj, c color.RGBA) {
	self.add("recolor %d #%02x%02x%02x", o, c.R, c.G, c.B)
	self.Backend.SetRecolor(o, c)
}

func (self *Recorder) Animate(a Anim) {
	self.add("animate %d %s from=%d to=%d duration=%s", a.Obj, a.Prop.String(), a.From, a.To, a.Duration)
	self.Backend.Animate(a)
}

func (self *Recorder) Destroy(o Obj) {
	self.add("destroy %d", o)
	self.Backend.Destroy(o)
}

func (self *Recorder) Clean(o Obj) {
	self.add("clean %d", o)
	self.Backend.Clean(o)
}
