package input

import (
	"fmt"
	"io"
	"time"

	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"
	"github.com/temoto/ghost/internal/types"
)

const GpioButtonTag = "gpio-button"
const DefaultDebounce = 30 * time.Millisecond

type GpioButtonConfig struct {
	Name       string `hcl:"name,key"`
	Line       int    `hcl:"line"`
	Control    string `hcl:"control"`
	DebounceMs int    `hcl:"debounce_ms"`
}

// GpioButton is active-low push button, press is falling edge.
type GpioButton struct {
	tag      string
	ev       gpio.Eventer
	control  types.Control
	debounce uint64 // nanoseconds, same unit as EventData.Timestamp
	last     uint64
}

var _ Source = new(GpioButton)

func NewGpioButton(chip gpio.Chiper, line uint32, control types.Control, debounce time.Duration) (*GpioButton, error) {
	tag := fmt.Sprintf("%s:%d", GpioButtonTag, line)
	ev, err := chip.GetLineEvent(line, 0, gpio.GPIOEVENT_REQUEST_FALLING_EDGE, "ghost-"+control.String())
	if err != nil {
		return nil, errors.Annotate(err, tag)
	}
	return &GpioButton{
		tag:      tag,
		ev:       ev,
		control:  control,
		debounce: uint64(debounce),
	}, nil
}

func (self *GpioButton) String() string { return self.tag }
func (self *GpioButton) Close() error   { return self.ev.Close() }

func (self *GpioButton) Read() (types.InputEvent, error) {
	for {
		e, err := self.ev.Wait(0)
		if gpio.IsClosed(err) {
			return types.InputEvent{}, io.EOF
		}
		if err != nil {
			return types.InputEvent{}, err
		}
		if e.ID != gpio.GPIOEVENT_EVENT_FALLING_EDGE {
			continue
		}
		if self.last != 0 && e.Timestamp-self.last < self.debounce {
			continue
		}
		self.last = e.Timestamp
		return types.Directional(self.tag, self.control), nil
	}
}
