package platform

import (
	"strconv"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// Periph drives pins through periph.io host drivers (sysfs, memory mapped).
// Pin direction is set by the first SetLevel, periph has no separate output switch.
type Periph struct {
	Log   *log2.Log
	Sleep func() // must not return

	initOnce sync.Once
	initErr  error
	pins     map[uint32]gpio.PinIO
}

var _ types.Platform = new(Periph)

func NewPeriph(log *log2.Log, sleep func()) *Periph {
	return &Periph{
		Log:   log,
		Sleep: sleep,
		pins:  make(map[uint32]gpio.PinIO, 1),
	}
}

func (self *Periph) ConfigureOutput(pin uint32) error {
	self.initOnce.Do(func() {
		_, self.initErr = host.Init()
	})
	if self.initErr != nil {
		return errors.Annotate(self.initErr, "periph/init")
	}
	p := gpioreg.ByName(strconv.FormatUint(uint64(pin), 10))
	if p == nil {
		return errors.NotFoundf("periph gpio pin=%d", pin)
	}
	self.pins[pin] = p
	self.Log.Debugf("platform periph pin=%d name=%s", pin, p.Name())
	return nil
}

func (self *Periph) SetLevel(pin uint32, level byte) error {
	p, ok := self.pins[pin]
	if !ok {
		return errors.Errorf("periph gpio pin=%d is not configured as output", pin)
	}
	return errors.Annotatef(p.Out(gpio.Level(level != 0)), "periph gpio pin=%d set level=%d", pin, level)
}

func (self *Periph) Delay(d time.Duration) { time.Sleep(d) }

func (self *Periph) DeepSleep() {
	self.Log.Infof("platform periph deep sleep")
	self.Sleep()
}
