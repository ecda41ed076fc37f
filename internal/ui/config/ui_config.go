package ui_config

import (
	"strings"

	"github.com/juju/errors"
)

// Mode names accepted in `options "<mode>"` blocks, case insensitive.
const (
	ModeBLE  = "ble"
	ModeWiFi = "wifi"
	ModeGPS  = "gps"
)

type Config struct { //nolint:maligned
	Title         string `hcl:"title"`
	LabelMinWidth int    `hcl:"label_min_width"`
	IconDir       string `hcl:"icon_dir"`
	IconSize      int    `hcl:"icon_size"`
	AppsURL       string `hcl:"apps_url"`
	SlideMs       int    `hcl:"slide_ms"`

	Options []struct {
		Mode  string   `hcl:"mode,key"`
		Items []string `hcl:"items"`
	} `hcl:"options"`
}

func ValidMode(s string) error {
	switch strings.ToLower(s) {
	case ModeBLE, ModeWiFi, ModeGPS:
		return nil
	}
	return errors.NotValidf("mode=%s", s)
}
