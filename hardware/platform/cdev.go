// Package platform implements types.Platform over real and fake hardware.
package platform

import (
	"time"

	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
)

const consumerLabel = "ghost-power"

type OpenChipFunc func(path, consumer string) (gpio.Chiper, error)

// Cdev drives pins through Linux GPIO character device.
type Cdev struct {
	Log   *log2.Log
	Sleep func() // must not return

	chipPath string
	openChip OpenChipFunc
	chip     gpio.Chiper
	lines    map[uint32]gpio.Lineser
}

// compile-time interface compliance test
var _ types.Platform = new(Cdev)

func NewCdev(log *log2.Log, chipPath string, sleep func()) *Cdev {
	return &Cdev{
		Log:      log,
		Sleep:    sleep,
		chipPath: chipPath,
		openChip: gpio.Open,
		lines:    make(map[uint32]gpio.Lineser, 1),
	}
}

// XXX_SetOpenChip replaces gpio.Open, used by tests with gpio_mock.
func (self *Cdev) XXX_SetOpenChip(f OpenChipFunc) { self.openChip = f }

// Character device v1 ABI has no bias flags, output request implies no pulls and no edge detection.
func (self *Cdev) ConfigureOutput(pin uint32) error {
	if self.chip == nil {
		chip, err := self.openChip(self.chipPath, consumerLabel)
		if err != nil {
			return errors.Annotatef(err, "gpio open chip=%s", self.chipPath)
		}
		self.chip = chip
	}
	if _, ok := self.lines[pin]; ok {
		return nil
	}
	lines, err := self.chip.OpenLines(gpio.GPIOHANDLE_REQUEST_OUTPUT, consumerLabel, pin)
	if err != nil {
		return errors.Annotatef(err, "gpio chip=%s pin=%d request output", self.chipPath, pin)
	}
	self.lines[pin] = lines
	self.Log.Debugf("platform cdev pin=%d output", pin)
	return nil
}

func (self *Cdev) SetLevel(pin uint32, level byte) error {
	lines, ok := self.lines[pin]
	if !ok {
		return errors.Errorf("gpio pin=%d is not configured as output", pin)
	}
	lines.SetFunc(pin)(level)
	return errors.Annotatef(lines.Flush(), "gpio pin=%d set level=%d", pin, level)
}

func (self *Cdev) Delay(d time.Duration) { time.Sleep(d) }

func (self *Cdev) DeepSleep() {
	self.Log.Infof("platform cdev deep sleep")
	self.Sleep()
}

func (self *Cdev) Close() error {
	for pin, l := range self.lines {
		if err := l.Close(); err != nil && !gpio.IsClosed(err) {
			self.Log.Errorf("platform cdev pin=%d close err=%v", pin, err)
		}
		delete(self.lines, pin)
	}
	if self.chip == nil {
		return nil
	}
	err := self.chip.Close()
	self.chip = nil
	if gpio.IsClosed(err) {
		return nil
	}
	return err
}
