package input

import (
	"io"
	"os"
	"strconv"

	"github.com/juju/errors"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/inputevent-go"
)

const DevInputEventTag = "dev-input-event"

// Linux input-event-codes.h
const evKey uint16 = 0x01

const (
	KeyEsc       types.InputKey = 1
	KeyBackspace types.InputKey = 14
	KeyEnter     types.InputKey = 28
	KeySpace     types.InputKey = 57
	KeyUp        types.InputKey = 103
	KeyLeft      types.InputKey = 105
	KeyRight     types.InputKey = 106
	KeyDown      types.InputKey = 108
)

type Keymap map[types.InputKey]types.Control

func DefaultKeymap() Keymap {
	return Keymap{
		KeyLeft:      types.ControlPrev,
		KeyUp:        types.ControlPrev,
		KeyRight:     types.ControlNext,
		KeyDown:      types.ControlNext,
		KeyEnter:     types.ControlActivate,
		KeySpace:     types.ControlActivate,
		KeyEsc:       types.ControlBack,
		KeyBackspace: types.ControlBack,
	}
}

// ParseKeymap accepts config form code->control name, e.g. "105" = "prev".
// Empty config gives DefaultKeymap.
func ParseKeymap(m map[string]string) (Keymap, error) {
	if len(m) == 0 {
		return DefaultKeymap(), nil
	}
	km := make(Keymap, len(m))
	for k, v := range m {
		code, err := strconv.ParseUint(k, 0, 16)
		if err != nil {
			return nil, errors.NotValidf("keymap code=%s", k)
		}
		c, err := types.ParseControl(v)
		if err != nil {
			return nil, errors.Annotatef(err, "keymap code=%s", k)
		}
		km[types.InputKey(code)] = c
	}
	return km, nil
}

type DevInputEventSource struct {
	f      io.ReadCloser
	keymap Keymap
}

// compile-time interface compliance test
var _ Source = new(DevInputEventSource)

func (self *DevInputEventSource) String() string { return DevInputEventTag }

func NewDevInputEventSource(device string, keymap Keymap) (*DevInputEventSource, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, err
	}
	return NewDevInputEventReader(f, keymap), nil
}

func NewDevInputEventReader(r io.ReadCloser, keymap Keymap) *DevInputEventSource {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &DevInputEventSource{f: r, keymap: keymap}
}

func (self *DevInputEventSource) Close() error { return self.f.Close() }

// Read skips key release, auto-repeat (hold) is delivered as another press.
func (self *DevInputEventSource) Read() (types.InputEvent, error) {
	for {
		ie, err := inputevent.ReadOne(self.f)
		if err != nil {
			return types.InputEvent{}, err
		}
		if ie.Type != evKey || ie.Value == int32(inputevent.KeyStateUp) {
			continue
		}
		key := types.InputKey(ie.Code)
		if c, ok := self.keymap[key]; ok {
			ev := types.Directional(DevInputEventTag, c)
			ev.Key = key
			return ev, nil
		}
		return types.InputEvent{
			Source: DevInputEventTag,
			Kind:   types.InputRawKey,
			Key:    key,
		}, nil
	}
}
