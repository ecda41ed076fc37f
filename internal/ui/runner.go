package ui

import (
	"context"

	"github.com/temoto/ghost/log2"
)

// Runner starts functional mode with chosen option, radio subsystems live behind it.
type Runner interface {
	Run(ctx context.Context, mode Mode, option string) error
}

type RunnerFunc func(ctx context.Context, mode Mode, option string) error

func (f RunnerFunc) Run(ctx context.Context, mode Mode, option string) error { return f(ctx, mode, option) }

// LogRunner only logs requests.
type LogRunner struct{ Log *log2.Log }

func (self LogRunner) Run(ctx context.Context, mode Mode, option string) error {
	self.Log.Infof("ui run mode=%s option=%s", mode.String(), option)
	return nil
}
