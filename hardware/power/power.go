// Package power implements the irreversible power-down sequence.
// Pin level low cuts the peripheral rail, then the board enters terminal sleep.
package power

import (
	"time"

	"github.com/temoto/ghost/helpers"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
)

const (
	DefaultPin    uint32 = 15
	DefaultSettle        = 150 * time.Millisecond
)

type Config struct {
	Driver   string `hcl:"driver"` // cdev, periph
	Chip     string `hcl:"chip"`
	Pin      int    `hcl:"pin"`
	SettleMs int    `hcl:"settle_ms"`
	Sleep    string `hcl:"sleep"` // poweroff, halt
}

type Sequencer struct {
	log      *log2.Log
	platform types.Platform
	pin      uint32
	settle   time.Duration
}

func NewSequencer(log *log2.Log, p types.Platform, c *Config) *Sequencer {
	self := &Sequencer{
		log:      log,
		platform: p,
		pin:      DefaultPin,
		settle:   DefaultSettle,
	}
	if c != nil {
		if c.Pin > 0 {
			self.pin = uint32(c.Pin)
		}
		self.settle = helpers.IntMillisecondDefault(c.SettleMs, DefaultSettle)
	}
	return self
}

func (self *Sequencer) Pin() uint32 { return self.pin }
func (self *Sequencer) Settle() time.Duration { return self.settle }

// PowerOff never returns.
// Hardware errors are logged and ignored, there is nothing useful left to do but sleep.
func (self *Sequencer) PowerOff() {
	self.log.Infof("power off pin=%d settle=%v", self.pin, self.settle)
	if err := self.platform.ConfigureOutput(self.pin); err != nil {
		self.log.Errorf("power pin=%d configure err=%v", self.pin, err)
	}
	if err := self.platform.SetLevel(self.pin, 0); err != nil {
		self.log.Errorf("power pin=%d level low err=%v", self.pin, err)
	}
	self.platform.Delay(self.settle)
	self.platform.DeepSleep()
	self.log.Fatal("power: deep sleep returned")
}
