// Package ui runs menu views on the device screen.
// Single goroutine (Loop) owns views, navigation state, scene and display.
package ui

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/ghost/hardware/display"
	"github.com/temoto/ghost/helpers"
	"github.com/temoto/ghost/internal/render"
	"github.com/temoto/ghost/internal/state"
	"github.com/temoto/ghost/internal/types"
	ui_config "github.com/temoto/ghost/internal/ui/config"
)

const DefaultTitle = "ghost"

type UI struct {
	Manager *Manager
	Nav     *Nav
	Main    *MainMenu
	Options *OptionsMenu
	Apps    *AppsGallery
	// Runner receives option activations, LogRunner when nil.
	Runner Runner

	config  *ui_config.Config
	g       *state.Global
	scene   *render.Scene
	backend render.Backend
	display *display.Display
	inputch chan types.InputEvent
	frame   time.Duration

	XXX_testHook func(types.Event)
	// XXX_wrapBackend lets tests observe render calls.
	XXX_wrapBackend func(render.Backend) render.Backend
}

func (self *UI) Init(ctx context.Context) error {
	self.g = state.GetGlobal(ctx)
	self.config = &self.g.Config.UI
	if self.config.Title == "" {
		self.config.Title = DefaultTitle
	}

	d, err := self.g.Display()
	if err != nil {
		return errors.Annotate(err, "ui display")
	}
	if d == nil {
		return errors.Errorf("config: no display")
	}
	self.display = d
	self.scene = render.NewScene(d.Size(), self.g.Config.Render.MaxObjects)
	self.backend = self.scene
	if self.XXX_wrapBackend != nil {
		self.backend = self.XXX_wrapBackend(self.scene)
	}

	pwr, err := self.g.Power()
	if err != nil {
		return errors.Annotate(err, "ui power")
	}
	if self.Runner == nil {
		self.Runner = LogRunner{Log: self.g.Log}
	}
	options, err := parseOptions(self.config)
	if err != nil {
		return err
	}
	icons := LoadIcons(self.g.Log, self.config.IconDir, self.config.IconSize, iconNames()...)

	self.Nav = new(Nav)
	self.Manager = NewManager(self.g.Log)
	self.Main = NewMainMenu(self.backend, self.g.Log, self.Nav, self.Manager, pwr, icons, MainMenuConfig{
		Title:         self.config.Title,
		LabelMinWidth: self.config.LabelMinWidth,
		Slide:         helpers.IntMillisecondDefault(self.config.SlideMs, DefaultSlide),
	})
	self.Options = NewOptionsMenu(ctx, self.backend, self.g.Log, self.Nav, self.Manager, self.Runner, self.config.Title, options)
	self.Apps = NewAppsGallery(self.backend, self.g.Log, self.Manager, self.config.Title, self.config.AppsURL)
	self.Manager.Register(self.Main)
	self.Manager.Register(self.Options)
	self.Manager.Register(self.Apps)

	self.frame = self.g.FrameInterval()
	self.inputch = self.g.Hardware.Input.SubscribeChan("ui", self.g.Alive.StopChan())
	return nil
}

func (self *UI) Loop(ctx context.Context) {
	self.g.Alive.Add(1)
	defer self.g.Alive.Done()

	if err := self.Manager.SwitchName(ViewMain); err != nil {
		self.g.Error(err, "ui start")
		self.g.Stop()
		return
	}
	self.draw()

	var ticker *time.Ticker
	var tickch <-chan time.Time
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()

	for self.g.Alive.IsRunning() {
		e := self.wait(tickch)
		switch e.Kind {
		case types.EventInput:
			self.g.Log.Debugf("ui input %s", e.Input.String())
			self.Manager.InputHandler()(e.Input)
			if self.Manager.Active() == nil {
				self.fallback()
			}

		case types.EventFrame:
			self.scene.Tick(self.scene.Now())

		case types.EventStop:
			self.g.Log.Debugf("ui Loop stopping because g.Alive")
		}

		if self.scene.Animating() {
			if ticker == nil {
				ticker = time.NewTicker(self.frame)
				tickch = ticker.C
			}
		} else if ticker != nil {
			ticker.Stop()
			ticker, tickch = nil, nil
		}
		if self.scene.Dirty() {
			self.draw()
		}
		if self.XXX_testHook != nil {
			self.XXX_testHook(e)
		}
	}
	self.Manager.Teardown()
	self.g.Log.Debugf("ui loop end")
}

// fallback runs after view create failure, failed view is not retried.
func (self *UI) fallback() {
	self.g.Log.Errorf("ui no active view, fallback to %s", ViewMain)
	if err := self.Manager.SwitchName(ViewMain); err != nil {
		self.g.Error(err, "ui fallback")
		self.g.Stop()
	}
}

func (self *UI) wait(tickch <-chan time.Time) types.Event {
again:
	select {
	case e, ok := <-self.inputch:
		if !ok {
			return types.Event{Kind: types.EventStop}
		}
		if e.Up {
			goto again
		}
		return types.Event{Kind: types.EventInput, Input: e}

	case <-tickch:
		return types.Event{Kind: types.EventFrame}

	case <-self.g.Alive.StopChan():
		return types.Event{Kind: types.EventStop}
	}
}

func (self *UI) draw() {
	self.scene.Render(self.display)
	if err := self.display.Flush(); err != nil {
		self.g.Error(err, "ui display flush")
	}
}

func parseOptions(c *ui_config.Config) (map[Mode][]string, error) {
	options := DefaultOptions()
	for _, o := range c.Options {
		mode, err := ParseMode(o.Mode)
		if err != nil {
			return nil, errors.Annotate(err, "config: ui.options")
		}
		options[mode] = o.Items
	}
	return options, nil
}
