// Package input merges hardware input sources into one event stream
// and fans it out to named subscribers.
package input

import (
	"io"
	"sync"

	"github.com/juju/errors"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
)

type Source interface {
	Read() (types.InputEvent, error)
	String() string
}

// subscriber channel is closed by Dispatch when stop is closed.
type subscriber struct {
	name string
	ch   chan types.InputEvent
	stop <-chan struct{}
}

func (self *subscriber) stopped() bool {
	select {
	case <-self.stop:
		return true
	default:
		return false
	}
}

type Dispatch struct {
	Log  *log2.Log
	bus  chan types.InputEvent
	stop <-chan struct{}

	mu   sync.Mutex
	subs map[string]*subscriber
}

func NewDispatch(log *log2.Log, stop <-chan struct{}) *Dispatch {
	return &Dispatch{
		Log:  log,
		bus:  make(chan types.InputEvent),
		stop: stop,
		subs: make(map[string]*subscriber, 2),
	}
}

// SubscribeChan panics on duplicate name, unless previous subscriber is stopped.
func (self *Dispatch) SubscribeChan(name string, stop <-chan struct{}) chan types.InputEvent {
	s := &subscriber{
		name: name,
		ch:   make(chan types.InputEvent),
		stop: stop,
	}

	self.mu.Lock()
	defer self.mu.Unlock()
	if s.stopped() {
		panic("code error input subscribe already stopped name=" + name)
	}
	if old, ok := self.subs[name]; ok {
		if !old.stopped() {
			panic("code error input duplicate subscribe name=" + name)
		}
		self.remove(old)
	}
	self.subs[name] = s
	return s.ch
}

// Run blocks until stop, delivering events from sources and Emit to subscribers.
func (self *Dispatch) Run(sources []Source) {
	for _, source := range sources {
		go self.readSource(source)
	}

	for {
		select {
		case event := <-self.bus:
			if n := self.fanout(event); n == 0 {
				self.Log.Debugf("input is not handled event=%s", event.String())
			}

		case <-self.stop:
			for {
				select {
				case <-self.bus:
				default:
					return
				}
			}
		}
	}
}

// Emit returns without delivery after Dispatch stop.
func (self *Dispatch) Emit(event types.InputEvent) {
	select {
	case self.bus <- event:
		self.Log.Debugf("input emit=%s", event.String())
	case <-self.stop:
	}
}

func (self *Dispatch) fanout(event types.InputEvent) int {
	self.mu.Lock()
	defer self.mu.Unlock()
	n := 0
	for _, s := range self.subs {
		if s.stopped() {
			self.remove(s)
			continue
		}
		select {
		case s.ch <- event:
			n++
		case <-s.stop:
			self.remove(s)
		}
	}
	return n
}

func (self *Dispatch) remove(s *subscriber) {
	close(s.ch)
	delete(self.subs, s.name)
}

// Source error stops only that source.
func (self *Dispatch) readSource(source Source) {
	tag := source.String()
	for {
		event, err := source.Read()
		if err == io.EOF {
			self.Log.Infof("input source=%s closed", tag)
			return
		}
		if err != nil {
			self.Log.Error(errors.Annotatef(err, "input source=%s", tag))
			return
		}
		self.Emit(event)
	}
}
