package render

import (
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/juju/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const DefaultMaxObjects = 64

type node struct {
	id       Obj
	kind     Kind
	parent   Obj
	children []Obj

	size   image.Point
	align  Align
	offset image.Point
	style  Style

	img        image.Image
	recolor    color.RGBA
	hasRecolor bool
	text       string
	textColor  color.RGBA
}

type animState struct {
	Anim
	start time.Time
}

// Scene implements Backend as object tree rasterized into draw.Image.
type Scene struct {
	Now func() time.Time

	max    int
	size   image.Point
	bg     color.RGBA
	nodes  map[Obj]*node
	last   Obj
	screen Obj
	anims  []animState
	dirty  bool
	face   font.Face
}

// compile-time interface compliance test
var _ Backend = new(Scene)

// NewScene creates scene with screen object, screen counts toward maxObjects.
func NewScene(size image.Point, maxObjects int) *Scene {
	if maxObjects <= 0 {
		maxObjects = DefaultMaxObjects
	}
	self := &Scene{
		Now:   time.Now,
		max:   maxObjects,
		size:  size,
		bg:    color.RGBA{0, 0, 0, 0xff},
		nodes: make(map[Obj]*node, maxObjects),
		face:  basicfont.Face7x13,
		dirty: true,
	}
	self.screen = self.alloc(KindScreen, None)
	return self
}

func (self *Scene) Screen() Obj       { return self.screen }
func (self *Scene) Size() image.Point { return self.size }
func (self *Scene) Len() int          { return len(self.nodes) }
func (self *Scene) Dirty() bool       { return self.dirty }

// Exists reports whether handle refers to live object.
func (self *Scene) Exists(o Obj) bool {
	_, ok := self.nodes[o]
	return ok
}

func (self *Scene) KindOf(o Obj) (Kind, bool) {
	n, ok := self.nodes[o]
	if !ok {
		return 0, false
	}
	return n.kind, true
}

func (self *Scene) Children(o Obj) []Obj {
	if n, ok := self.nodes[o]; ok {
		return append([]Obj(nil), n.children...)
	}
	return nil
}

func (self *Scene) Text(o Obj) string {
	if n, ok := self.nodes[o]; ok {
		return n.text
	}
	return ""
}

// Offset is current position shift, including running animation.
func (self *Scene) Offset(o Obj) image.Point {
	if n, ok := self.nodes[o]; ok {
		return n.offset
	}
	return image.Point{}
}

func (self *Scene) SetBackground(c color.RGBA) {
	self.bg = c
	self.dirty = true
}

func (self *Scene) CreateContainer(parent Obj) (Obj, error) {
	return self.create(KindContainer, parent, nil)
}

func (self *Scene) CreateButton(parent Obj) (Obj, error) {
	return self.create(KindButton, parent, nil)
}

func (self *Scene) CreateImage(parent Obj, img image.Image) (Obj, error) {
	if img == nil {
		return None, errors.NotValidf("render image=nil")
	}
	return self.create(KindImage, parent, func(n *node) { n.img = img })
}

func (self *Scene) CreateLabel(parent Obj, text string) (Obj, error) {
	return self.create(KindLabel, parent, func(n *node) {
		n.text = text
		n.textColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
	})
}

func (self *Scene) SetStyle(o Obj, s Style) {
	if n, ok := self.nodes[o]; ok {
		n.style = s
		self.dirty = true
	}
}

func (self *Scene) SetSize(o Obj, w, h int) {
	if n, ok := self.nodes[o]; ok {
		n.size = image.Point{w, h}
		self.dirty = true
	}
}

func (self *Scene) Align(o Obj, a Align, dx, dy int) {
	if n, ok := self.nodes[o]; ok {
		n.align = a
		n.offset = image.Point{dx, dy}
		self.dirty = true
	}
}

func (self *Scene) SetRecolor(o Obj, c color.RGBA) {
	if n, ok := self.nodes[o]; ok {
		n.recolor, n.hasRecolor = c, true
		self.dirty = true
	}
}

func (self *Scene) SetTextColor(o Obj, c color.RGBA) {
	if n, ok := self.nodes[o]; ok {
		n.textColor = c
		self.dirty = true
	}
}

// Animate replaces running animation of the same object and property.
// Offset jumps to From immediately.
func (self *Scene) Animate(a Anim) {
	n, ok := self.nodes[a.Obj]
	if !ok {
		return
	}
	if a.Ease == nil {
		a.Ease = Linear
	}
	self.cancelAnim(a.Obj, a.Prop, true)
	setProp(n, a.Prop, a.From)
	self.dirty = true
	if a.Duration <= 0 {
		setProp(n, a.Prop, a.To)
		return
	}
	self.anims = append(self.anims, animState{Anim: a, start: self.Now()})
}

func (self *Scene) Animating() bool { return len(self.anims) != 0 }

// Tick advances animations to now, returns true while any is running.
func (self *Scene) Tick(now time.Time) bool {
	live := self.anims[:0]
	for _, a := range self.anims {
		n, ok := self.nodes[a.Obj]
		if !ok {
			continue
		}
		progress := float64(now.Sub(a.start)) / float64(a.Duration)
		if progress >= 1 {
			setProp(n, a.Prop, a.To)
			self.dirty = true
			continue
		}
		if progress < 0 {
			progress = 0
		}
		v := a.From + int(float64(a.To-a.From)*a.Ease(progress))
		setProp(n, a.Prop, v)
		self.dirty = true
		live = append(live, a)
	}
	self.anims = live
	return len(self.anims) != 0
}

func (self *Scene) Destroy(o Obj) {
	if o == self.screen {
		self.Clean(o)
		return
	}
	n, ok := self.nodes[o]
	if !ok {
		return
	}
	if p, ok := self.nodes[n.parent]; ok {
		p.children = removeObj(p.children, o)
	}
	self.free(n)
	self.dirty = true
}

func (self *Scene) Clean(o Obj) {
	n, ok := self.nodes[o]
	if !ok {
		return
	}
	for _, c := range n.children {
		if cn, ok := self.nodes[c]; ok {
			self.free(cn)
		}
	}
	n.children = nil
	self.dirty = true
}

// Rect is object position on screen.
func (self *Scene) Rect(o Obj) image.Rectangle {
	n, ok := self.nodes[o]
	if !ok {
		return image.Rectangle{}
	}
	if n.kind == KindScreen {
		return image.Rectangle{Max: self.size}
	}
	parent, ok := self.nodes[n.parent]
	if !ok {
		return image.Rectangle{}
	}
	area := self.Rect(n.parent).Inset(parent.style.Padding)
	sz := self.objSize(n, area)
	pos := alignPos(n.align, area, sz).Add(n.offset)
	return image.Rectangle{Min: pos, Max: pos.Add(sz)}
}

func (self *Scene) create(kind Kind, parent Obj, init func(*node)) (Obj, error) {
	if _, ok := self.nodes[parent]; !ok {
		return None, errors.NotFoundf("render parent=%d", parent)
	}
	if len(self.nodes) >= self.max {
		return None, errors.Annotatef(ErrExhausted, "create %s max=%d", kind.String(), self.max)
	}
	id := self.alloc(kind, parent)
	if init != nil {
		init(self.nodes[id])
	}
	return id, nil
}

func (self *Scene) alloc(kind Kind, parent Obj) Obj {
	self.last++
	n := &node{id: self.last, kind: kind, parent: parent}
	self.nodes[n.id] = n
	if p, ok := self.nodes[parent]; ok {
		p.children = append(p.children, n.id)
	}
	self.dirty = true
	return n.id
}

func (self *Scene) free(n *node) {
	for _, c := range n.children {
		if cn, ok := self.nodes[c]; ok {
			self.free(cn)
		}
	}
	self.cancelAnim(n.id, 0, false)
	delete(self.nodes, n.id)
}

func (self *Scene) cancelAnim(o Obj, prop Prop, matchProp bool) {
	live := self.anims[:0]
	for _, a := range self.anims {
		if a.Obj == o && (!matchProp || a.Prop == prop) {
			continue
		}
		live = append(live, a)
	}
	self.anims = live
}

func (self *Scene) objSize(n *node, area image.Rectangle) image.Point {
	if n.size != (image.Point{}) {
		return n.size
	}
	switch n.kind {
	case KindImage:
		return n.img.Bounds().Size()
	case KindLabel:
		m := self.face.Metrics()
		return image.Point{
			X: font.MeasureString(self.face, n.text).Ceil(),
			Y: (m.Ascent + m.Descent).Ceil(),
		}
	}
	return area.Size()
}

func alignPos(a Align, area image.Rectangle, sz image.Point) image.Point {
	midX := area.Min.X + (area.Dx()-sz.X)/2
	midY := area.Min.Y + (area.Dy()-sz.Y)/2
	switch a {
	case AlignTopLeft:
		return area.Min
	case AlignTopMid:
		return image.Point{midX, area.Min.Y}
	case AlignTopRight:
		return image.Point{area.Max.X - sz.X, area.Min.Y}
	case AlignBottomMid:
		return image.Point{midX, area.Max.Y - sz.Y}
	case AlignLeftMid:
		return image.Point{area.Min.X, midY}
	case AlignRightMid:
		return image.Point{area.Max.X - sz.X, midY}
	}
	return image.Point{midX, midY}
}

func setProp(n *node, p Prop, v int) {
	if p == PropY {
		n.offset.Y = v
	} else {
		n.offset.X = v
	}
}

func removeObj(list []Obj, o Obj) []Obj {
	for i, x := range list {
		if x == o {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Render draws whole tree into dst and clears dirty flag.
func (self *Scene) Render(dst draw.Image) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(self.bg), image.Point{}, draw.Src)
	if n, ok := self.nodes[self.screen]; ok {
		self.drawChildren(dst, n)
	}
	self.dirty = false
}

func (self *Scene) drawChildren(dst draw.Image, n *node) {
	for _, c := range n.children {
		cn, ok := self.nodes[c]
		if !ok {
			continue
		}
		self.drawNode(dst, cn)
		self.drawChildren(dst, cn)
	}
}

func (self *Scene) drawNode(dst draw.Image, n *node) {
	r := self.Rect(n.id)
	s := &n.style
	switch n.kind {
	case KindContainer, KindButton:
		if s.ShadowWidth > 0 && s.Shadow.A != 0 {
			sr := r.Add(image.Point{s.ShadowWidth, s.ShadowWidth})
			fillRound(dst, sr, s.Radius, s.Shadow)
		}
		if s.Bg.A != 0 {
			fillRound(dst, r, s.Radius, s.Bg)
		}
		if s.BorderWidth > 0 && s.Border.A != 0 {
			strokeRound(dst, r, s.Radius, s.BorderWidth, s.Border)
		}

	case KindImage:
		src := n.img
		if n.hasRecolor {
			// image alpha becomes mask for solid accent color
			draw.DrawMask(dst, r, image.NewUniform(n.recolor), image.Point{}, src, src.Bounds().Min, draw.Over)
		} else {
			draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
		}

	case KindLabel:
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(n.textColor),
			Face: self.face,
			Dot:  fixed.P(r.Min.X, r.Min.Y+self.face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(n.text)
	}
}
