package ui

import (
	"github.com/juju/errors"
	"github.com/temoto/ghost/log2"
)

// Manager keeps at most one active view.
// Every switch destroys the old view before creating the new one, views are never suspended.
type Manager struct {
	log    *log2.Log
	views  map[string]View
	active View
}

func NewManager(log *log2.Log) *Manager {
	return &Manager{
		log:   log,
		views: make(map[string]View, 4),
	}
}

func (self *Manager) Register(v View) {
	name := v.Name()
	if _, ok := self.views[name]; ok {
		panic("code error ui duplicate view name=" + name)
	}
	self.views[name] = v
}

func (self *Manager) Lookup(name string) (View, bool) {
	v, ok := self.views[name]
	return v, ok
}

func (self *Manager) Active() View { return self.active }

// Switch destroys active view, then creates target.
// On create error there is no active view.
func (self *Manager) Switch(target View) error {
	if target == nil {
		return errors.NotValidf("ui switch target=nil")
	}
	if self.active != nil {
		self.log.Debugf("ui view destroy name=%s", self.active.Name())
		self.active.Destroy()
		self.active = nil
	}
	self.log.Debugf("ui view create name=%s", target.Name())
	if err := target.Create(); err != nil {
		return errors.Annotatef(err, "ui view=%s create", target.Name())
	}
	self.active = target
	return nil
}

func (self *Manager) SwitchName(name string) error {
	v, ok := self.Lookup(name)
	if !ok {
		return errors.NotFoundf("ui view=%s", name)
	}
	return self.Switch(v)
}

// InputHandler returns active view input handler or no-op.
func (self *Manager) InputHandler() InputHandler {
	if self.active == nil {
		return noInput
	}
	return self.active.HandleInput
}

func (self *Manager) Teardown() {
	if self.active != nil {
		self.active.Destroy()
		self.active = nil
	}
}
