package ui

import (
	"context"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/ghost/internal/render"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
)

const OptionBack = "Back"

const (
	optionRowHeight = 20
	optionRowGap    = 4
)

func DefaultOptions() map[Mode][]string {
	return map[Mode][]string{
		ModeBLE:  {"Scan", "Advertise"},
		ModeWiFi: {"Scan", "Access Point"},
		ModeGPS:  {"Position", "Satellites"},
	}
}

// OptionsMenu lists options of Nav mode plus Back entry.
type OptionsMenu struct {
	ctx     context.Context
	b       render.Backend
	log     *log2.Log
	nav     *Nav
	views   *Manager
	runner  Runner
	title   string
	options map[Mode][]string

	items    []string
	selected int
	root     render.Obj
	list     render.Obj
}

var _ View = new(OptionsMenu)

func NewOptionsMenu(ctx context.Context, b render.Backend, log *log2.Log, nav *Nav, views *Manager, runner Runner, title string, options map[Mode][]string) *OptionsMenu {
	if options == nil {
		options = DefaultOptions()
	}
	return &OptionsMenu{
		ctx:     ctx,
		b:       b,
		log:     log,
		nav:     nav,
		views:   views,
		runner:  runner,
		title:   title,
		options: options,
	}
}

func (self *OptionsMenu) Name() string     { return ViewOptions }
func (self *OptionsMenu) Root() render.Obj { return self.root }
func (self *OptionsMenu) Items() []string  { return self.items }
func (self *OptionsMenu) Selected() int    { return self.selected }

func (self *OptionsMenu) Create() error {
	mode := self.nav.Mode()
	opts, ok := self.options[mode]
	if !ok {
		return errors.NotFoundf("options for mode=%s", mode.String())
	}
	self.items = append(append(make([]string, 0, len(opts)+1), opts...), OptionBack)
	self.selected = 0
	self.b.SetBackground(colorBackground)

	root, err := self.b.CreateContainer(self.b.Screen())
	if err != nil {
		return errors.Annotate(err, "options root")
	}
	guard := own(self.b, root)
	defer guard.Release()
	if err = statusBar(self.b, root, self.title, mode); err != nil {
		return errors.Annotate(err, "options status")
	}
	list, err := self.b.CreateContainer(root)
	if err != nil {
		return errors.Annotate(err, "options list")
	}
	size := self.b.Size()
	self.b.SetSize(list, size.X, size.Y-statusHeight)
	self.b.Align(list, render.AlignBottomMid, 0, 0)
	self.list = list
	if err = self.render(); err != nil {
		self.list = render.None
		return err
	}
	self.root = guard.Keep()
	return nil
}

func (self *OptionsMenu) Destroy() {
	if self.root != render.None {
		self.b.Destroy(self.root)
	}
	self.root = render.None
	self.list = render.None
}

func (self *OptionsMenu) HandleInput(e types.InputEvent) {
	if !e.IsDirectional() || e.Up {
		return
	}
	n := len(self.items)
	switch e.Control {
	case types.ControlPrev:
		self.selected = (self.selected - 1 + n) % n
		self.rerender()
	case types.ControlNext:
		self.selected = (self.selected + 1) % n
		self.rerender()
	case types.ControlBack:
		self.back()
	case types.ControlActivate:
		option := self.items[self.selected]
		if option == OptionBack {
			self.back()
			return
		}
		mode := self.nav.Mode()
		if err := self.runner.Run(self.ctx, mode, option); err != nil {
			self.log.Error(errors.Annotatef(err, "ui run mode=%s option=%s", mode.String(), option))
		}
	}
}

func (self *OptionsMenu) back() {
	if err := self.views.SwitchName(ViewMain); err != nil {
		self.log.Error(errors.Annotate(err, "ui options back"))
	}
}

func (self *OptionsMenu) rerender() {
	if err := self.render(); err != nil {
		self.log.Errorf("ui options render err=%v", err)
	}
}

// render rebuilds visible window of rows, keeping selection on screen.
func (self *OptionsMenu) render() error {
	self.b.Clean(self.list)
	size := self.b.Size()
	pitch := optionRowHeight + optionRowGap
	visible := (size.Y - statusHeight - optionRowGap) / pitch
	if visible < 1 {
		visible = 1
	}
	first := 0
	if self.selected >= visible {
		first = self.selected - visible + 1
	}
	accent := accentColor(0)
	if i := int(self.nav.Mode()) - 1; i >= 0 && i < len(itemModes) {
		accent = accentColor(mainItems()[i].Hue)
	}
	for i := first; i < len(self.items) && i < first+visible; i++ {
		row, err := self.b.CreateButton(self.list)
		if err != nil {
			return errors.Annotatef(err, "options row=%d", i)
		}
		self.b.SetSize(row, size.X-16, optionRowHeight)
		self.b.Align(row, render.AlignTopMid, 0, optionRowGap+(i-first)*pitch)
		style := render.Style{Radius: 4, Padding: 2}
		if i == self.selected {
			style = buttonStyle(accent)
			style.BorderWidth, style.ShadowWidth, style.Radius, style.Padding = 1, 0, 4, 2
		}
		self.b.SetStyle(row, style)
		label, err := self.b.CreateLabel(row, optionLabel(self.items[i]))
		if err != nil {
			return errors.Annotatef(err, "options row=%d label", i)
		}
		self.b.SetTextColor(label, colorText)
		self.b.Align(label, render.AlignLeftMid, 4, 0)
	}
	return nil
}

func optionLabel(s string) string {
	if s == OptionBack {
		return "< " + s
	}
	return strings.TrimSpace(s)
}
