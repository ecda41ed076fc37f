// Maintenance commands, not for daily use.
package maint

import (
	"context"

	"github.com/juju/errors"
	"github.com/temoto/ghost/cmd/ghost/subcmd"
	"github.com/temoto/ghost/internal/state"
)

var PowerOffMod = subcmd.Mod{
	Name:     "poweroff",
	Usage:    "cut peripheral power and enter deep sleep",
	Main:     PowerOffMain,
	Hardware: true,
}

var ConfigCheckMod = subcmd.Mod{
	Name:  "config-check",
	Usage: "read and validate configuration",
	Main:  ConfigCheckMain,
}

// PowerOffMain does not return on success.
func PowerOffMain(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.Config = config
	if err := config.Validate(); err != nil {
		return err
	}
	seq, err := g.Power()
	if err != nil {
		return errors.Annotate(err, "power")
	}
	seq.PowerOff()
	return nil
}

func ConfigCheckMain(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	if err := config.Validate(); err != nil {
		return err
	}
	p := &config.Hardware.Power
	g.Log.Infof("config ok display=%s power driver=%s pin=%d buttons=%d",
		config.Hardware.Display.Framebuffer, p.Driver, p.Pin, len(config.Hardware.Input.GpioButtons))
	return nil
}
