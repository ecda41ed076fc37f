package ui

import (
	"image/color"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/ghost/internal/render"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
)

const (
	DefaultLabelMinWidth = 128
	DefaultSlide         = 75 * time.Millisecond
)

type MenuItem struct {
	Name string
	Icon string // empty means text only
	Hue  float64
}

const (
	itemBLE = iota
	itemWiFi
	itemGPS
	itemApps
	itemPowerOff
)

func mainItems() []MenuItem {
	return []MenuItem{
		itemBLE:      {Name: "BLE", Icon: "ble", Hue: 210},
		itemWiFi:     {Name: "WiFi", Icon: "wifi", Hue: 140},
		itemGPS:      {Name: "GPS", Icon: "gps", Hue: 30},
		itemApps:     {Name: "Apps", Icon: "apps", Hue: 280},
		itemPowerOff: {Name: "Power-Off", Hue: 0},
	}
}

func iconNames() []string {
	items := mainItems()
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.Icon != "" {
			names = append(names, it.Icon)
		}
	}
	return names
}

var itemModes = [...]Mode{itemBLE: ModeBLE, itemWiFi: ModeWiFi, itemGPS: ModeGPS}

type PowerOffer interface {
	// PowerOff never returns.
	PowerOff()
}

// MainMenu shows one item at a time, prev/next slide to neighbour with wrap-around.
type MainMenu struct {
	b             render.Backend
	log           *log2.Log
	nav           *Nav
	views         *Manager
	power         PowerOffer
	icons         *IconSet
	title         string
	labelMinWidth int
	slide         time.Duration

	items    []MenuItem
	accents  []color.RGBA
	selected int

	root      render.Obj
	container render.Obj
	current   render.Obj
}

var _ View = new(MainMenu)

type MainMenuConfig struct {
	Title         string
	LabelMinWidth int
	Slide         time.Duration
}

func NewMainMenu(b render.Backend, log *log2.Log, nav *Nav, views *Manager, power PowerOffer, icons *IconSet, c MainMenuConfig) *MainMenu {
	if c.LabelMinWidth == 0 {
		c.LabelMinWidth = DefaultLabelMinWidth
	}
	if c.Slide == 0 {
		c.Slide = DefaultSlide
	}
	return &MainMenu{
		b:             b,
		log:           log,
		nav:           nav,
		views:         views,
		power:         power,
		icons:         icons,
		title:         c.Title,
		labelMinWidth: c.LabelMinWidth,
		slide:         c.Slide,
		items:         mainItems(),
	}
}

func (self *MainMenu) Name() string { return ViewMain }
func (self *MainMenu) Root() render.Obj { return self.root }
func (self *MainMenu) Selected() int { return self.selected }
func (self *MainMenu) Current() render.Obj { return self.current }
func (self *MainMenu) Items() []MenuItem { return self.items }
func (self *MainMenu) Accents() []color.RGBA { return self.accents }

func (self *MainMenu) Create() error {
	if self.accents == nil {
		self.accents = make([]color.RGBA, len(self.items))
		for i, it := range self.items {
			self.accents[i] = accentColor(it.Hue)
		}
	}
	self.b.SetBackground(colorBackground)

	root, err := self.b.CreateContainer(self.b.Screen())
	if err != nil {
		return errors.Annotate(err, "main menu root")
	}
	guard := own(self.b, root)
	defer guard.Release()

	container, err := self.b.CreateContainer(root)
	if err != nil {
		return errors.Annotate(err, "main menu container")
	}
	if err = statusBar(self.b, root, self.title, self.nav.Mode()); err != nil {
		return errors.Annotate(err, "main menu status")
	}

	self.container = container
	self.selected = 0
	self.current = render.None
	if err = self.render(false, false); err != nil {
		self.container = render.None
		return err
	}
	self.root = guard.Keep()
	return nil
}

func (self *MainMenu) Destroy() {
	if self.root != render.None {
		self.b.Destroy(self.root)
	}
	self.root = render.None
	self.container = render.None
	self.current = render.None
}

// SelectItem wraps index into item range and redraws.
// slideLeft means new item enters from the right edge.
func (self *MainMenu) SelectItem(newIndex int, slideLeft bool) {
	n := len(self.items)
	self.selected = ((newIndex % n) + n) % n
	if self.container == render.None {
		return
	}
	if err := self.render(true, slideLeft); err != nil {
		self.log.Error(errors.Annotatef(err, "ui main menu render index=%d", self.selected))
		// menu without item is dead end, UI loop rebuilds it
		if self.views.Active() == View(self) {
			self.views.Teardown()
		} else {
			self.Destroy()
		}
	}
}

func (self *MainMenu) HandleInput(e types.InputEvent) {
	if !e.IsDirectional() || e.Up {
		return
	}
	switch e.Control {
	case types.ControlPrev:
		self.SelectItem(self.selected-1, true)
	case types.ControlNext:
		self.SelectItem(self.selected+1, false)
	case types.ControlActivate:
		self.activate(self.selected)
	}
}

func (self *MainMenu) activate(index int) {
	self.log.Debugf("ui main menu activate index=%d", index)
	switch index {
	case itemBLE, itemWiFi, itemGPS:
		self.nav.SetMode(itemModes[index])
		self.switchTo(ViewOptions)
	case itemApps:
		self.switchTo(ViewApps)
	case itemPowerOff:
		self.power.PowerOff()
	default:
		self.log.Errorf("ui main menu unknown action index=%d", index)
	}
}

// After successful switch this view is destroyed, caller must return immediately.
func (self *MainMenu) switchTo(name string) {
	if err := self.views.SwitchName(name); err != nil {
		self.log.Error(errors.Annotatef(err, "ui main menu switch"))
	}
}

func (self *MainMenu) render(animate, slideLeft bool) error {
	if self.current != render.None {
		self.b.Destroy(self.current)
		self.current = render.None
	}

	item := &self.items[self.selected]
	accent := self.accents[self.selected]
	size := self.b.Size()

	btn, err := self.b.CreateButton(self.container)
	if err != nil {
		return errors.Annotatef(err, "main menu item=%s", item.Name)
	}
	guard := own(self.b, btn)
	defer guard.Release()
	self.b.SetSize(btn, size.X*2/3, (size.Y-statusHeight)*3/4)
	self.b.SetStyle(btn, buttonStyle(accent))
	self.b.Align(btn, render.AlignCenter, 0, statusHeight/2)

	showLabel := size.X > self.labelMinWidth
	if item.Icon != "" {
		if img, ok := self.icons.Get(item.Icon); ok {
			icon, err := self.b.CreateImage(btn, img)
			if err != nil {
				return errors.Annotatef(err, "main menu item=%s icon", item.Name)
			}
			dy := 0
			if showLabel {
				dy = -6
			}
			self.b.Align(icon, render.AlignCenter, 0, dy)
			self.b.SetRecolor(icon, accent)
		}
	}
	if showLabel {
		label, err := self.b.CreateLabel(btn, item.Name)
		if err != nil {
			return errors.Annotatef(err, "main menu item=%s label", item.Name)
		}
		self.b.SetTextColor(label, colorText)
		self.b.Align(label, render.AlignBottomMid, 0, 0)
	}
	self.current = guard.Keep()

	if animate {
		from := -size.X
		if slideLeft {
			from = size.X
		}
		self.b.Animate(render.Anim{
			Obj:      self.current,
			Prop:     render.PropX,
			From:     from,
			To:       0,
			Duration: self.slide,
			Ease:     render.EaseOut,
		})
	}
	return nil
}
