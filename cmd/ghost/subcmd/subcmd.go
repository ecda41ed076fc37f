// Support sub-commands in ghost application.
package subcmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/gofrs/flock"
	"github.com/juju/errors"
	"github.com/temoto/ghost/internal/state"
	state_new "github.com/temoto/ghost/internal/state/new"
	"github.com/temoto/ghost/log2"
	"github.com/urfave/cli/v3"
)

const (
	FlagConfig = "config"
	FlagLock   = "lock"
)

type Mod struct {
	Name  string
	Usage string
	Main  func(context.Context, *state.Config) error
	// Hardware modes hold single instance lock while running.
	Hardware bool
}

// Command wraps Mod into cli command sharing root config and log.
func (m Mod) Command(log *log2.Log, buildVersion string) *cli.Command {
	if m.Name == "" || m.Main == nil {
		panic(fmt.Sprintf("code error Name='' or Main=nil module=%#v", m))
	}
	return &cli.Command{
		Name:  m.Name,
		Usage: m.Usage,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if m.Hardware {
				lock, err := Lock(cmd.String(FlagLock))
				if err != nil {
					return err
				}
				defer func() {
					if err := lock.Unlock(); err != nil {
						log.Errorf("lock release path=%s err=%v", lock.Path(), err)
					}
				}()
			}

			ctx, g := state_new.NewContext(log)
			g.BuildVersion = buildVersion
			config, err := state.ReadConfig(log, state.NewOsFullReader(), cmd.String(FlagConfig))
			if err != nil {
				return errors.Annotate(err, "config")
			}
			StopOnSignal(g)
			return m.Main(ctx, config)
		},
	}
}

// Lock takes exclusive single instance lock, hardware pins and display have one owner.
func Lock(path string) (*flock.Flock, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "ghost.lock")
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.Annotatef(err, "lock path=%s", path)
	}
	if !locked {
		return nil, errors.Errorf("another ghost instance is running, lock path=%s", path)
	}
	return lock, nil
}

// StopOnSignal stops g.Alive on SIGINT or SIGTERM.
func StopOnSignal(g *state.Global) {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigch:
			g.Log.Infof("signal=%s stopping", sig.String())
			g.Stop()
		case <-g.Alive.StopChan():
		}
		signal.Stop(sigch)
	}()
}

func SdNotify(log *log2.Log, s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
