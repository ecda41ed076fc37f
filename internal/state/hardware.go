package state

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	gpio "github.com/temoto/gpio-cdev-go"
	"github.com/temoto/ghost/hardware/display"
	"github.com/temoto/ghost/hardware/input"
	"github.com/temoto/ghost/hardware/platform"
	"github.com/temoto/ghost/hardware/power"
	"github.com/temoto/ghost/helpers"
	"github.com/temoto/ghost/internal/types"
)

const (
	DefaultFrame    = 16 * time.Millisecond
	defaultWidth    = 240
	defaultHeight   = 135
	defaultGpioChip = "/dev/gpiochip0"
)

type hardware struct {
	Display struct {
		once
		D *display.Display
	}
	Input    *input.Dispatch
	Platform struct {
		once
		P types.Platform
	}
	power struct {
		once
		seq *power.Sequencer
	}
	gpioChip struct {
		once
		chip gpio.Chiper
	}
}

func (g *Global) Display() (*display.Display, error) {
	x := &g.Hardware.Display // short alias
	_ = x.do(func() error {
		if x.D != nil { // state-new testing mode
			return nil
		}
		cfg := &g.Config.Hardware.Display
		switch {
		case cfg.Framebuffer != "":
			x.D, x.err = display.NewFb(cfg.Framebuffer)
			return x.err

		default:
			size := image.Point{X: cfg.Width, Y: cfg.Height}
			if size.X <= 0 || size.Y <= 0 {
				size = image.Point{X: defaultWidth, Y: defaultHeight}
			}
			g.Log.Infof("config: hardware.display.framebuffer=empty, using mock size=%s", size.String())
			x.D = display.NewMock(size)
			return nil
		}
	})
	return x.D, x.err
}

func (g *Global) Platform() (types.Platform, error) {
	x := &g.Hardware.Platform
	_ = x.do(func() error {
		if x.P != nil { // state-new testing mode
			return nil
		}
		cfg := &g.Config.Hardware.Power
		chip := cfg.Chip
		if chip == "" {
			chip = defaultGpioChip
		}
		x.P, x.err = platform.New(g.Log, cfg.Driver, chip, cfg.Sleep)
		return errors.Annotate(x.err, "platform")
	})
	return x.P, x.err
}

// Power returns power-down sequencer.
// Platform errors are deferred to PowerOff, which logs and proceeds to sleep.
func (g *Global) Power() (*power.Sequencer, error) {
	x := &g.Hardware.power
	_ = x.do(func() error {
		p, err := g.Platform()
		if err != nil {
			return err
		}
		x.seq = power.NewSequencer(g.Log, p, &g.Config.Hardware.Power)
		return nil
	})
	return x.seq, x.err
}

func (g *Global) GpioChip() (gpio.Chiper, error) {
	x := &g.Hardware.gpioChip
	_ = x.do(func() error {
		path := g.Config.Hardware.Input.GpioChip
		x.chip, x.err = gpio.Open(path, "ghost-input")
		return errors.Annotatef(x.err, "config: hardware.input.gpio_chip=%s", path)
	})
	return x.chip, x.err
}

func (g *Global) initInput() error {
	g.Hardware.Input = input.NewDispatch(g.Log, g.Alive.StopChan())

	// support more input sources here
	sources := make([]input.Source, 0, 4)
	errs := make([]error, 0)

	cfg := &g.Config.Hardware.Input
	if !cfg.DevInputEvent.Enable {
		g.Log.Infof("input=%s disabled", input.DevInputEventTag)
	} else {
		keymap, err := input.ParseKeymap(cfg.DevInputEvent.Keymap)
		if err == nil {
			var src *input.DevInputEventSource
			src, err = input.NewDevInputEventSource(cfg.DevInputEvent.Device, keymap)
			if err == nil {
				sources = append(sources, src)
			}
		}
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "input=%s", input.DevInputEventTag))
		}
	}

	if len(cfg.GpioButtons) != 0 {
		chip, err := g.GpioChip()
		if err != nil {
			errs = append(errs, err)
		} else {
			for _, b := range cfg.GpioButtons {
				src, err := newGpioButton(chip, b)
				if err != nil {
					errs = append(errs, errors.Annotatef(err, "input=%s name=%s", input.GpioButtonTag, b.Name))
					continue
				}
				sources = append(sources, src)
			}
		}
	}

	go g.Hardware.Input.Run(sources)
	return helpers.FoldErrors(errs)
}

func newGpioButton(chip gpio.Chiper, b input.GpioButtonConfig) (*input.GpioButton, error) {
	c, err := parseButtonControl(b)
	if err != nil {
		return nil, err
	}
	debounce := helpers.IntMillisecondDefault(b.DebounceMs, input.DefaultDebounce)
	return input.NewGpioButton(chip, uint32(b.Line), c, debounce)
}

func parseButtonControl(b input.GpioButtonConfig) (types.Control, error) {
	c, err := types.ParseControl(b.Control)
	return c, errors.Annotatef(err, "config: gpio_button=%s", b.Name)
}

type once struct {
	sync.Mutex
	called uint32 // atomic bool
	err    error
}

func (o *once) done() bool {
	return atomic.LoadUint32(&o.called) == 1
}

func (o *once) do(f func() error) error {
	if o.done() { // fast path
		return o.err
	}
	o.Lock()
	defer o.Unlock()
	if o.done() {
		return o.err
	}
	o.err = f()
	atomic.StoreUint32(&o.called, 1)
	return o.err
}
