package platform

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/temoto/ghost/internal/types"
)

// Mock records platform calls for tests and dev simulator.
// DeepSleep terminates calling goroutine with runtime.Goexit, so code after it never runs.
type Mock struct {
	ConfigureErr error
	SetLevelErr  error

	mu        sync.Mutex
	calls     []string
	slept     chan struct{}
	sleepOnce sync.Once
}

var _ types.Platform = new(Mock)

func NewMock() *Mock {
	return &Mock{slept: make(chan struct{})}
}

func (self *Mock) ConfigureOutput(pin uint32) error {
	self.record(fmt.Sprintf("configure pin=%d", pin))
	return self.ConfigureErr
}

func (self *Mock) SetLevel(pin uint32, level byte) error {
	self.record(fmt.Sprintf("level pin=%d value=%d", pin, level))
	return self.SetLevelErr
}

func (self *Mock) Delay(d time.Duration) {
	self.record(fmt.Sprintf("delay %s", d))
}

func (self *Mock) DeepSleep() {
	self.record("sleep")
	self.sleepOnce.Do(func() { close(self.slept) })
	runtime.Goexit()
}

// Calls returns copy of recorded call trace.
func (self *Mock) Calls() []string {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]string(nil), self.calls...)
}

// SleptChan is closed after first DeepSleep.
func (self *Mock) SleptChan() <-chan struct{} { return self.slept }

func (self *Mock) record(s string) {
	self.mu.Lock()
	self.calls = append(self.calls, s)
	self.mu.Unlock()
}
