package ui

import (
	"fmt"
	"strings"

	ui_config "github.com/temoto/ghost/internal/ui/config"
)

// Mode is functional mode chosen in main menu and consumed by options view.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeBLE
	ModeWiFi
	ModeGPS
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeBLE:
		return "BLE"
	case ModeWiFi:
		return "WiFi"
	case ModeGPS:
		return "GPS"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case ui_config.ModeBLE:
		return ModeBLE, nil
	case ui_config.ModeWiFi:
		return ModeWiFi, nil
	case ui_config.ModeGPS:
		return ModeGPS, nil
	}
	return ModeNone, ui_config.ValidMode(s)
}

// Nav is navigation context shared by views, owned by UI goroutine.
type Nav struct {
	mode Mode
}

func (self *Nav) Mode() Mode     { return self.mode }
func (self *Nav) SetMode(m Mode) { self.mode = m }
