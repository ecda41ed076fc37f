package types

import "time"

// Platform is the minimal hardware surface needed to power the device down.
// Implementations live in hardware/platform.
type Platform interface {
	// ConfigureOutput makes pin a digital output, pulls and interrupts disabled.
	ConfigureOutput(pin uint32) error
	SetLevel(pin uint32, level byte) error
	// Delay blocks calling goroutine.
	Delay(time.Duration)
	// DeepSleep enters terminal low-power state and never returns.
	DeepSleep()
}
