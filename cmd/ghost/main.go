package main

import (
	"context"
	"os"

	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
	"github.com/temoto/ghost/cmd/ghost/maint"
	"github.com/temoto/ghost/cmd/ghost/run"
	"github.com/temoto/ghost/cmd/ghost/subcmd"
	"github.com/temoto/ghost/log2"
	"github.com/urfave/cli/v3"
)

var BuildVersion string = "unknown" // set by ldflags -X

var log = log2.NewStderr(log2.LDebug)

var modules = []subcmd.Mod{
	run.Mod,
	maint.PowerOffMod,
	maint.ConfigCheckMod,
}

func main() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetFlags(log2.LInteractiveFlags)
	} else {
		// assume systemd journal logging, no timestamp
		log.SetFlags(log2.LServiceFlags)
	}

	app := &cli.Command{
		Name:    "ghost",
		Usage:   "handheld menu and power control",
		Version: BuildVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  subcmd.FlagConfig,
				Value: "ghost.hcl",
				Usage: "configuration file",
			},
			&cli.StringFlag{
				Name:  subcmd.FlagLock,
				Usage: "single instance lock file, default in temp dir",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "hide debug messages",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("quiet") {
				log.SetLevel(log2.LInfo)
			}
			return ctx, nil
		},
	}
	for _, m := range modules {
		app.Commands = append(app.Commands, m.Command(log, BuildVersion))
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}
