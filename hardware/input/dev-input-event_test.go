package input

import (
	"bytes"
	"encoding/binary"
	"io"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/inputevent-go"
)

func encodeEvents(t testing.TB, events ...inputevent.InputEvent) io.ReadCloser {
	var buf bytes.Buffer
	for _, e := range events {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, e))
	}
	return ioutil.NopCloser(&buf)
}

func key(code uint16, state inputevent.KeyEventState) inputevent.InputEvent {
	return inputevent.InputEvent{Type: evKey, Code: code, Value: int32(state)}
}

func TestDevInputEvent(t *testing.T) {
	t.Parallel()

	r := encodeEvents(t,
		inputevent.InputEvent{Type: 0x00}, // EV_SYN
		key(uint16(KeyRight), inputevent.KeyStateDown),
		key(uint16(KeyRight), inputevent.KeyStateUp),
		key(uint16(KeyRight), inputevent.KeyStateHold),
		key(uint16(KeyEnter), inputevent.KeyStateDown),
		key(30, inputevent.KeyStateDown), // KEY_A
	)
	src := NewDevInputEventReader(r, nil)

	expect := []types.InputEvent{
		{Source: DevInputEventTag, Kind: types.InputDirectional, Control: types.ControlNext, Key: KeyRight},
		{Source: DevInputEventTag, Kind: types.InputDirectional, Control: types.ControlNext, Key: KeyRight},
		{Source: DevInputEventTag, Kind: types.InputDirectional, Control: types.ControlActivate, Key: KeyEnter},
		{Source: DevInputEventTag, Kind: types.InputRawKey, Key: 30},
	}
	for i, e := range expect {
		got, err := src.Read()
		require.NoError(t, err, "i=%d", i)
		assert.Equal(t, e, got, "i=%d", i)
	}
	_, err := src.Read()
	assert.Equal(t, io.EOF, err)
}

func TestParseKeymap(t *testing.T) {
	t.Parallel()

	km, err := ParseKeymap(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultKeymap(), km)

	km, err = ParseKeymap(map[string]string{"0x69": "next", "28": "back"})
	require.NoError(t, err)
	assert.Equal(t, Keymap{KeyLeft: types.ControlNext, KeyEnter: types.ControlBack}, km)

	_, err = ParseKeymap(map[string]string{"left": "prev"})
	assert.Error(t, err)
	_, err = ParseKeymap(map[string]string{"105": "jump"})
	assert.Error(t, err)
}
