package platform

import (
	"github.com/juju/errors"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
)

const (
	DriverCdev   = "cdev"
	DriverPeriph = "periph"

	SleepPoweroff = "poweroff"
	SleepHalt     = "halt"
)

// ValidDriver accepts empty name as cdev.
func ValidDriver(driver string) error {
	switch driver {
	case "", DriverCdev, DriverPeriph:
		return nil
	}
	return errors.NotValidf("config: power.driver=%s", driver)
}

func ValidSleep(mode string) error {
	switch mode {
	case "", SleepPoweroff, SleepHalt:
		return nil
	}
	return errors.NotValidf("config: power.sleep=%s", mode)
}

// New selects platform driver by name, empty name means cdev.
func New(log *log2.Log, driver, chipPath, sleepMode string) (types.Platform, error) {
	if err := ValidSleep(sleepMode); err != nil {
		return nil, err
	}
	if err := ValidDriver(driver); err != nil {
		return nil, err
	}
	sleep := Terminal(log, sleepMode)
	if driver == DriverPeriph {
		return NewPeriph(log, sleep), nil
	}
	return NewCdev(log, chipPath, sleep), nil
}
