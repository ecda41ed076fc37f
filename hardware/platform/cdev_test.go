package platform

import (
	"fmt"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gpio "github.com/temoto/gpio-cdev-go"
	gpio_mock "github.com/temoto/gpio-cdev-go/mock"
	"github.com/temoto/ghost/log2"
)

func newTestCdev(t testing.TB, chip gpio.Chiper, openErr error) (*Cdev, *bool) {
	slept := false
	p := NewCdev(log2.NewTest(t, log2.LDebug), "/dev/gpiochip0", func() { slept = true })
	p.XXX_SetOpenChip(func(path, consumer string) (gpio.Chiper, error) {
		assert.Equal(t, "/dev/gpiochip0", path)
		assert.Equal(t, consumerLabel, consumer)
		return chip, openErr
	})
	return p, &slept
}

func TestCdevPowerPin(t *testing.T) {
	t.Parallel()

	lines := &gpio_mock.MockLines{}
	chip := &gpio_mock.MockChip{}
	chip.On("OpenLines", gpio.GPIOHANDLE_REQUEST_OUTPUT, consumerLabel, uint32(15)).Return(lines, nil).Once()
	var levels []byte
	lines.On("SetFunc", uint32(15)).Return(gpio.LineSetFunc(func(v byte) { levels = append(levels, v) }))
	lines.On("Flush").Return(nil)

	p, slept := newTestCdev(t, chip, nil)
	require.NoError(t, p.ConfigureOutput(15))
	// second configure reuses requested line
	require.NoError(t, p.ConfigureOutput(15))
	require.NoError(t, p.SetLevel(15, 0))
	p.DeepSleep()

	assert.Equal(t, []byte{0}, levels)
	assert.True(t, *slept)
	chip.AssertExpectations(t)
	lines.AssertExpectations(t)
}

func TestCdevErrors(t *testing.T) {
	t.Parallel()

	t.Run("open", func(t *testing.T) {
		p, _ := newTestCdev(t, nil, fmt.Errorf("permission denied"))
		err := p.ConfigureOutput(15)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chip=/dev/gpiochip0")
		assert.Contains(t, err.Error(), "permission denied")
	})
	t.Run("request", func(t *testing.T) {
		chip := &gpio_mock.MockChip{}
		chip.On("OpenLines", gpio.GPIOHANDLE_REQUEST_OUTPUT, consumerLabel, uint32(15)).Return((*gpio_mock.MockLines)(nil), fmt.Errorf("busy"))
		p, _ := newTestCdev(t, chip, nil)
		err := p.ConfigureOutput(15)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pin=15 request output: busy")
	})
	t.Run("not-configured", func(t *testing.T) {
		p, _ := newTestCdev(t, nil, nil)
		assert.Error(t, p.SetLevel(15, 0))
	})
	t.Run("flush", func(t *testing.T) {
		lines := &gpio_mock.MockLines{}
		chip := &gpio_mock.MockChip{}
		chip.On("OpenLines", mock.Anything, mock.Anything, uint32(15)).Return(lines, nil)
		lines.On("SetFunc", uint32(15)).Return(gpio.LineSetFunc(func(byte) {}))
		lines.On("Flush").Return(fmt.Errorf("io"))
		p, _ := newTestCdev(t, chip, nil)
		require.NoError(t, p.ConfigureOutput(15))
		err := p.SetLevel(15, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pin=15 set level=0")
	})
}

func TestCdevClose(t *testing.T) {
	t.Parallel()

	lines := &gpio_mock.MockLines{}
	chip := &gpio_mock.MockChip{}
	chip.On("OpenLines", mock.Anything, mock.Anything, uint32(15)).Return(lines, nil)
	lines.On("Close").Return(nil).Once()
	chip.On("Close").Return(nil).Once()
	p, _ := newTestCdev(t, chip, nil)
	require.NoError(t, p.ConfigureOutput(15))
	require.NoError(t, p.Close())
	// nothing left to close
	require.NoError(t, p.Close())
	chip.AssertExpectations(t)
	lines.AssertExpectations(t)
}

func TestMockDeepSleepNeverReturns(t *testing.T) {
	t.Parallel()

	m := NewMock()
	after := false
	go func() {
		_ = m.ConfigureOutput(15)
		m.DeepSleep()
		after = true
	}()
	<-m.SleptChan()
	assert.Equal(t, []string{"configure pin=15", "sleep"}, m.Calls())
	assert.False(t, after)
}

func TestNew(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	p, err := New(log, "", "/dev/gpiochip0", "")
	require.NoError(t, err)
	assert.IsType(t, &Cdev{}, p)
	p, err = New(log, DriverPeriph, "", SleepHalt)
	require.NoError(t, err)
	assert.IsType(t, &Periph{}, p)
	_, err = New(log, "bogus", "", "")
	assert.True(t, errors.IsNotValid(err))
	assert.EqualError(t, err, "config: power.driver=bogus not valid")
	_, err = New(log, "", "", "suspend")
	assert.True(t, errors.IsNotValid(err))
	assert.EqualError(t, err, "config: power.sleep=suspend not valid")

	assert.NoError(t, ValidDriver(""))
	assert.NoError(t, ValidDriver(DriverCdev))
	assert.NoError(t, ValidSleep(SleepPoweroff))
}
