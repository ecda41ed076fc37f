package ui

import (
	"image"

	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
	"github.com/temoto/ghost/internal/render"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
)

const msgNoApps = "no apps url"

// AppsGallery shows QR code of app gallery link.
type AppsGallery struct {
	b     render.Backend
	log   *log2.Log
	views *Manager
	title string
	url   string

	qr   image.Image
	root render.Obj
}

var _ View = new(AppsGallery)

func NewAppsGallery(b render.Backend, log *log2.Log, views *Manager, title, url string) *AppsGallery {
	return &AppsGallery{b: b, log: log, views: views, title: title, url: url}
}

func (self *AppsGallery) Name() string     { return ViewApps }
func (self *AppsGallery) Root() render.Obj { return self.root }

func (self *AppsGallery) Create() error {
	size := self.b.Size()
	side := size.Y - statusHeight - 16
	if size.X < side {
		side = size.X
	}
	if self.qr == nil && self.url != "" {
		qr, err := qrcode.New(self.url, qrcode.Medium)
		if err != nil {
			return errors.Annotatef(err, "apps qr url=%s", self.url)
		}
		self.qr = qr.Image(side)
	}

	self.b.SetBackground(colorBackground)
	root, err := self.b.CreateContainer(self.b.Screen())
	if err != nil {
		return errors.Annotate(err, "apps root")
	}
	guard := own(self.b, root)
	defer guard.Release()
	if err = statusBar(self.b, root, self.title, ModeNone); err != nil {
		return errors.Annotate(err, "apps status")
	}

	caption := self.url
	if self.qr != nil {
		img, err := self.b.CreateImage(root, self.qr)
		if err != nil {
			return errors.Annotate(err, "apps qr")
		}
		self.b.Align(img, render.AlignCenter, 0, 0)
	} else {
		caption = msgNoApps
	}
	label, err := self.b.CreateLabel(root, caption)
	if err != nil {
		return errors.Annotate(err, "apps caption")
	}
	self.b.SetTextColor(label, colorDim)
	self.b.Align(label, render.AlignBottomMid, 0, -1)

	self.root = guard.Keep()
	return nil
}

func (self *AppsGallery) Destroy() {
	if self.root != render.None {
		self.b.Destroy(self.root)
	}
	self.root = render.None
}

func (self *AppsGallery) HandleInput(e types.InputEvent) {
	if !e.IsDirectional() || e.Up {
		return
	}
	switch e.Control {
	case types.ControlActivate, types.ControlBack:
		if err := self.views.SwitchName(ViewMain); err != nil {
			self.log.Error(errors.Annotate(err, "ui apps back"))
		}
	}
}
