// Sorry, workaround to import cycles.
package state_new

import (
	"context"
	"image"
	"os"
	"testing"

	"github.com/temoto/alive/v2"
	"github.com/temoto/ghost/hardware/display"
	"github.com/temoto/ghost/hardware/platform"
	"github.com/temoto/ghost/internal/state"
	"github.com/temoto/ghost/log2"
)

func NewContext(log *log2.Log) (context.Context, *state.Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}

	g := &state.Global{
		Alive: alive.NewAlive(),
		Log:   log,
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, state.ContextKey, g)

	return ctx, g
}

// NewTestContext builds Global with mock display and platform.Mock, input dispatch is running.
func NewTestContext(t testing.TB, buildVersion string, confString string) (context.Context, *state.Global) {
	fs := state.NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	var log *log2.Log
	if os.Getenv("ghost_test_log_stderr") == "1" {
		log = log2.NewStderr(log2.LDebug) // useful with panics
	} else {
		log = log2.NewTest(t, log2.LDebug)
	}
	log.SetFlags(log2.LTestFlags)
	ctx, g := NewContext(log)
	g.BuildVersion = buildVersion

	cfg := state.MustReadConfig(log, fs, "test-inline")
	size := image.Point{X: cfg.Hardware.Display.Width, Y: cfg.Hardware.Display.Height}
	if size.X <= 0 || size.Y <= 0 {
		size = image.Point{X: 240, Y: 135}
	}
	g.Hardware.Display.D = display.NewMock(size)
	g.Hardware.Platform.P = platform.NewMock()
	g.MustInit(ctx, cfg)

	return ctx, g
}

func MockPlatform(t testing.TB, g *state.Global) *platform.Mock {
	p, err := g.Platform()
	if err != nil {
		t.Fatal(err)
	}
	return p.(*platform.Mock)
}
