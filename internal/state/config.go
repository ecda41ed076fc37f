package state

import (
	"path/filepath"
	"sync"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/ghost/hardware/input"
	"github.com/temoto/ghost/hardware/platform"
	"github.com/temoto/ghost/hardware/power"
	"github.com/temoto/ghost/helpers"
	ui_config "github.com/temoto/ghost/internal/ui/config"
	"github.com/temoto/ghost/log2"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Hardware struct {
		Display struct {
			Framebuffer string `hcl:"framebuffer"`
			// mock display size when framebuffer is empty
			Width  int `hcl:"width"`
			Height int `hcl:"height"`
		}
		Input struct {
			DevInputEvent struct {
				Enable bool              `hcl:"enable"`
				Device string            `hcl:"device"`
				Keymap map[string]string `hcl:"keymap"`
			} `hcl:"dev_input_event"`
			GpioChip    string                   `hcl:"gpio_chip"`
			GpioButtons []input.GpioButtonConfig `hcl:"gpio_button"`
		}
		Power power.Config `hcl:"power"`
	}

	Render struct {
		MaxObjects int `hcl:"max_objects"`
		FrameMs    int `hcl:"frame_ms"`
	}

	UI ui_config.Config `hcl:"ui"`

	_copy_guard sync.Mutex //nolint:unused
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		log.Fatalf("config duplicate source=%s", source.Name)
	} else {
		log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	}
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
			return
		}
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	errs := make([]error, 0, 4)
	if _, err := input.ParseKeymap(c.Hardware.Input.DevInputEvent.Keymap); err != nil {
		errs = append(errs, errors.Annotate(err, "config: hardware.input.dev_input_event"))
	}
	for _, b := range c.Hardware.Input.GpioButtons {
		if b.Line < 0 {
			errs = append(errs, errors.NotValidf("config: gpio_button=%s line=%d", b.Name, b.Line))
		}
		if _, err := parseButtonControl(b); err != nil {
			errs = append(errs, err)
		}
	}
	if len(c.Hardware.Input.GpioButtons) != 0 && c.Hardware.Input.GpioChip == "" {
		errs = append(errs, errors.NotValidf("config: hardware.input.gpio_chip=empty with gpio_button"))
	}
	if p := c.Hardware.Power.Pin; p < 0 {
		errs = append(errs, errors.NotValidf("config: hardware.power.pin=%d", p))
	}
	if err := platform.ValidDriver(c.Hardware.Power.Driver); err != nil {
		errs = append(errs, err)
	}
	if err := platform.ValidSleep(c.Hardware.Power.Sleep); err != nil {
		errs = append(errs, err)
	}
	if c.Render.MaxObjects < 0 {
		errs = append(errs, errors.NotValidf("config: render.max_objects=%d", c.Render.MaxObjects))
	}
	for _, o := range c.UI.Options {
		if err := ui_config.ValidMode(o.Mode); err != nil {
			errs = append(errs, errors.Annotate(err, "config: ui.options"))
		}
		if len(o.Items) == 0 {
			errs = append(errs, errors.NotValidf("config: ui.options=%s items=empty", o.Mode))
		}
	}
	return helpers.FoldErrors(errs)
}
