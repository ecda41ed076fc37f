package power

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/ghost/hardware/platform"
	"github.com/temoto/ghost/log2"
)

func runPowerOff(s *Sequencer, m *platform.Mock) {
	go s.PowerOff()
	<-m.SleptChan()
}

func TestPowerOff(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		config    *Config
		configErr error
		levelErr  error
		expect    []string
	}
	cases := []Case{
		{"default", nil, nil, nil,
			[]string{"configure pin=15", "level pin=15 value=0", "delay 150ms", "sleep"}},
		{"zero-config", &Config{}, nil, nil,
			[]string{"configure pin=15", "level pin=15 value=0", "delay 150ms", "sleep"}},
		{"custom", &Config{Pin: 4, SettleMs: 120}, nil, nil,
			[]string{"configure pin=4", "level pin=4 value=0", "delay 120ms", "sleep"}},
		{"configure-error", nil, fmt.Errorf("busy"), nil,
			[]string{"configure pin=15", "level pin=15 value=0", "delay 150ms", "sleep"}},
		{"level-error", nil, nil, fmt.Errorf("io"),
			[]string{"configure pin=15", "level pin=15 value=0", "delay 150ms", "sleep"}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			m := platform.NewMock()
			m.ConfigureErr = c.configErr
			m.SetLevelErr = c.levelErr
			errCount := 0
			log := log2.NewTest(t, log2.LDebug)
			log.SetErrorFunc(func(error) { errCount++ })
			s := NewSequencer(log, m, c.config)
			runPowerOff(s, m)
			assert.Equal(t, c.expect, m.Calls())
			expectErrs := 0
			if c.configErr != nil {
				expectErrs++
			}
			if c.levelErr != nil {
				expectErrs++
			}
			assert.Equal(t, expectErrs, errCount)
		})
	}
}

type returningPlatform struct{ platform.Mock }

func (self *returningPlatform) DeepSleep() {}

func TestPowerOffSleepReturnedIsFatal(t *testing.T) {
	t.Parallel()

	m := &returningPlatform{}
	fatal := make(chan string, 1)
	log := log2.NewTest(t, log2.LDebug)
	log.XXX_SetFatalf(func(format string, args ...interface{}) { fatal <- "fatal: " + fmt.Sprintf(format, args...) })
	s := NewSequencer(log, m, nil)
	s.PowerOff()
	select {
	case msg := <-fatal:
		assert.Contains(t, msg, "deep sleep returned")
	case <-time.After(time.Second):
		t.Fatal("expected fatal")
	}
}
