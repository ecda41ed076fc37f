package state

import (
	"context"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/temoto/alive/v2"
	"github.com/temoto/ghost/hardware/display"
	"github.com/temoto/ghost/hardware/platform"
	"github.com/temoto/ghost/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(testing.TB, context.Context)
		expectErr string
	}
	cases := []Case{
		{"empty", "", func(t testing.TB, ctx context.Context) {
			g := GetGlobal(ctx)
			assert.Equal(t, 64, g.Config.Render.MaxObjects)
			assert.Equal(t, 16*time.Millisecond, g.FrameInterval())
			seq, err := g.Power()
			assert.NoError(t, err)
			assert.Equal(t, uint32(15), seq.Pin())
			assert.Equal(t, 150*time.Millisecond, seq.Settle())
		}, ""},

		{"power",
			`hardware { power { pin = 4 settle_ms = 120 } } render { frame_ms = 20 }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				seq, err := g.Power()
				assert.NoError(t, err)
				assert.Equal(t, uint32(4), seq.Pin())
				assert.Equal(t, 120*time.Millisecond, seq.Settle())
				assert.Equal(t, 20*time.Millisecond, g.FrameInterval())
			},
			"",
		},

		{"ui", `
ui {
	title = "ghost"
	label_min_width = 100
	apps_url = "https://example.org/apps"
	options "wifi" { items = ["Scan", "Beacon"] }
	options "gps" { items = ["Fix"] }
}`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				c := &g.Config.UI
				assert.Equal(t, "ghost", c.Title)
				assert.Equal(t, 100, c.LabelMinWidth)
				assert.Equal(t, "https://example.org/apps", c.AppsURL)
				if assert.Len(t, c.Options, 2) {
					assert.Equal(t, "wifi", c.Options[0].Mode)
					assert.Equal(t, []string{"Scan", "Beacon"}, c.Options[0].Items)
					assert.Equal(t, "gps", c.Options[1].Mode)
				}
			}, ""},

		{"keymap",
			`hardware { input { dev_input_event { keymap { "105" = "next" } } } }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, map[string]string{"105": "next"}, g.Config.Hardware.Input.DevInputEvent.Keymap)
			}, ""},

		{"include-normalize", `
render { max_objects = 10 }
include "./empty" {}`,
			nil, ""},

		{"include-optional", `
include "power-pin-7" {}
include "non-exist" { optional = true }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 7, g.Config.Hardware.Power.Pin)
			}, ""},

		{"include-overwrites", `
hardware { power { pin = 1 } }
include "power-pin-7" {}`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, 7, g.Config.Hardware.Power.Pin)
			}, ""},

		{"error-syntax", `hello`, nil, "key 'hello' expected start of object"},
		{"error-include-loop", `include "include-loop" {}`, nil, "config include loop: from=include-loop include=include-loop"},
		{"error-include-required", `include "non-exist" {}`, nil, "config required name=non-exist"},
		{"error-keymap", `hardware { input { dev_input_event { keymap { "105" = "jump" } } } }`, nil, "unknown control=jump"},
		{"error-button", `hardware { input {
	gpio_chip = "/dev/gpiochip1"
	gpio_button "a" { line = 3 control = "fire" }
} }`, nil, "config: gpio_button=a"},
		{"error-button-chip", `hardware { input { gpio_button "a" { line = 3 control = "next" } } }`, nil, "gpio_chip=empty"},
		{"error-options", `ui { options "ble" { items = [] } }`, nil, "ui.options=ble items=empty"},
		{"error-options-mode", `ui { options "lora" { items = ["Join"] } }`, nil, "config: ui.options: mode=lora not valid"},
		{"error-power-driver", `hardware { power { driver = "gpiod" } }`, nil, "config: power.driver=gpiod not valid"},
		{"error-power-sleep", `hardware { power { sleep = "suspend" } }`, nil, "config: power.sleep=suspend not valid"},
	}
	mkCheck := func(c Case) func(*testing.T) {
		return func(t *testing.T) {
			// log := log2.NewStderr(log2.LDebug) // helps with panics
			log := log2.NewTest(t, log2.LDebug)

			// code duplicate from state_new.NewContext because of import cycle
			g := &Global{
				Alive: alive.NewAlive(),
				Log:   log,
			}
			g.Hardware.Display.D = display.NewMock(image.Point{X: 8, Y: 8})
			g.Hardware.Platform.P = platform.NewMock()
			ctx := context.Background()
			ctx = context.WithValue(ctx, ContextKey, g)
			defer g.Stop()

			fs := NewMockFullReader(map[string]string{
				"test-inline":  c.input,
				"empty":        "",
				"power-pin-7":  "hardware { power { pin = 7 } }",
				"error-syntax": "hello",
				"include-loop": `include "include-loop" {}`,
			})
			cfg, err := ReadConfig(log, fs, "test-inline")
			if err == nil {
				err = g.Init(ctx, cfg)
			}
			if c.expectErr == "" {
				if err != nil {
					t.Fatalf("error expected=nil actual='%v'", errors.ErrorStack(err))
				}
				if c.check != nil {
					c.check(t, ctx)
				}
			} else {
				if err == nil || !strings.Contains(err.Error(), c.expectErr) {
					t.Fatalf("error expected='%s' actual='%v'", c.expectErr, err)
				}
			}
		}
	}
	for _, c := range cases {
		t.Run(c.name, mkCheck(c))
	}
}

func TestFunctionalBundled(t *testing.T) {
	// not Parallel
	t.Logf("this test needs OS open|read|stat access to file `../../ghost.hcl`")

	log := log2.NewTest(t, log2.LDebug)
	c := MustReadConfig(log, NewOsFullReader(), "../../ghost.hcl")
	assert.NoError(t, c.Validate())
}
