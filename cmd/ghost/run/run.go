// Main, user facing mode of operation.
package run

import (
	"context"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
	"github.com/temoto/ghost/cmd/ghost/subcmd"
	"github.com/temoto/ghost/internal/state"
	"github.com/temoto/ghost/internal/ui"
)

var Mod = subcmd.Mod{
	Name:     "run",
	Usage:    "run menu on device display",
	Main:     Main,
	Hardware: true,
}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)
	g.Log.Debugf("config=%+v", g.Config)

	if _, err := g.Power(); err != nil {
		err = errors.Annotate(err, "power init")
		showError(g, err)
		return err
	}

	ui := ui.UI{}
	if err := ui.Init(ctx); err != nil {
		err = errors.Annotate(err, "ui Init()")
		showError(g, err)
		return err
	}

	subcmd.SdNotify(g.Log, daemon.SdNotifyReady)
	g.Log.Debugf("ghost init complete")

	ui.Loop(ctx)
	subcmd.SdNotify(g.Log, daemon.SdNotifyStopping)
	g.Alive.Wait()
	if d, _ := g.Display(); d != nil {
		if err := d.Close(); err != nil {
			g.Error(err, "display close")
		}
	}
	return nil
}

// showError leaves startup error on screen as QR code, process exits after.
func showError(g *state.Global, err error) {
	d, derr := g.Display()
	if derr != nil {
		g.Error(derr, "show error")
		return
	}
	if qerr := d.QR(err.Error(), true, qrcode.Low); qerr != nil {
		g.Error(qerr, "show error")
	}
}
