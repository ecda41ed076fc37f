package ui

import (
	"context"
	"fmt"
	"image"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/ghost/internal/render"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/log2"
)

type runCall struct {
	mode   Mode
	option string
}

func newOptionsEnv(t testing.TB, options map[Mode][]string, runErr error) (*menuEnv, *OptionsMenu, *[]runCall) {
	env := &menuEnv{
		scene: render.NewScene(image.Point{240, 135}, 0),
		log:   log2.NewTest(t, log2.LDebug),
		nav:   new(Nav),
	}
	env.rec = render.NewRecorder(env.scene)
	env.views = NewManager(env.log)
	calls := []runCall{}
	runner := RunnerFunc(func(ctx context.Context, mode Mode, option string) error {
		calls = append(calls, runCall{mode, option})
		return runErr
	})
	om := NewOptionsMenu(context.Background(), env.rec, env.log, env.nav, env.views, runner, "test", options)
	env.views.Register(om)
	env.views.Register(&stubView{name: ViewMain, trace: &env.trace})
	return env, om, &calls
}

func TestOptionsMenu(t *testing.T) {
	t.Parallel()

	env, om, calls := newOptionsEnv(t, nil, nil)
	env.nav.SetMode(ModeWiFi)
	require.NoError(t, env.views.SwitchName(ViewOptions))
	assert.Equal(t, []string{"Scan", "Access Point", OptionBack}, om.Items())
	assert.Equal(t, 0, om.Selected())

	om.HandleInput(directional(types.ControlPrev))
	assert.Equal(t, 2, om.Selected())
	om.HandleInput(directional(types.ControlNext))
	om.HandleInput(directional(types.ControlNext))
	assert.Equal(t, 1, om.Selected())

	om.HandleInput(directional(types.ControlActivate))
	assert.Equal(t, []runCall{{ModeWiFi, "Access Point"}}, *calls)
	assert.Equal(t, ViewOptions, env.views.Active().Name())

	om.HandleInput(directional(types.ControlNext))
	om.HandleInput(directional(types.ControlActivate))
	assert.Len(t, *calls, 1)
	assert.Equal(t, ViewMain, env.views.Active().Name())
	assert.Equal(t, render.None, om.Root())
	assert.Equal(t, 1, env.scene.Len())
}

func TestOptionsMenuBack(t *testing.T) {
	t.Parallel()

	env, om, calls := newOptionsEnv(t, nil, nil)
	env.nav.SetMode(ModeBLE)
	require.NoError(t, env.views.SwitchName(ViewOptions))
	om.HandleInput(directional(types.ControlBack))
	assert.Equal(t, ViewMain, env.views.Active().Name())
	assert.Empty(t, *calls)
	assert.Equal(t, ModeBLE, env.nav.Mode())
}

func TestOptionsMenuRunError(t *testing.T) {
	t.Parallel()

	env, om, calls := newOptionsEnv(t, nil, fmt.Errorf("radio busy"))
	var errs []error
	env.log.SetErrorFunc(func(err error) { errs = append(errs, err) })
	env.nav.SetMode(ModeGPS)
	require.NoError(t, env.views.SwitchName(ViewOptions))
	om.HandleInput(directional(types.ControlActivate))
	assert.Len(t, *calls, 1)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "ui run mode=GPS option=Position: radio busy")
	assert.Equal(t, ViewOptions, env.views.Active().Name())
}

func TestOptionsMenuNoOptions(t *testing.T) {
	t.Parallel()

	env, om, _ := newOptionsEnv(t, map[Mode][]string{ModeBLE: {"Scan"}}, nil)
	env.nav.SetMode(ModeGPS)
	err := env.views.SwitchName(ViewOptions)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(errors.Cause(err)))
	assert.Nil(t, env.views.Active())
	assert.Equal(t, render.None, om.Root())
	assert.Equal(t, 1, env.scene.Len())
}

func TestOptionsMenuScroll(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	env, om, _ := newOptionsEnv(t, map[Mode][]string{ModeBLE: items}, nil)
	env.nav.SetMode(ModeBLE)
	require.NoError(t, env.views.SwitchName(ViewOptions))
	list := env.scene.Children(om.Root())[1]
	// (135-16-4)/24 = 4 rows fit
	assert.Len(t, env.scene.Children(list), 4)

	om.HandleInput(directional(types.ControlPrev))
	assert.Equal(t, len(items), om.Selected())
	rows := env.scene.Children(list)
	require.Len(t, rows, 4)
	last := env.scene.Children(rows[3])
	require.Len(t, last, 1)
	assert.Equal(t, "< Back", env.scene.Text(last[0]))
}

func TestAppsGallery(t *testing.T) {
	t.Parallel()

	for _, url := range []string{"https://example.com/apps", ""} {
		url := url
		t.Run(fmt.Sprintf("url=%s", url), func(t *testing.T) {
			t.Parallel()
			scene := render.NewScene(image.Point{240, 135}, 0)
			log := log2.NewTest(t, log2.LDebug)
			trace := []string{}
			views := NewManager(log)
			apps := NewAppsGallery(scene, log, views, "test", url)
			views.Register(apps)
			views.Register(&stubView{name: ViewMain, trace: &trace})

			require.NoError(t, views.SwitchName(ViewApps))
			children := scene.Children(apps.Root())
			caption := children[len(children)-1]
			if url == "" {
				assert.Len(t, children, 2)
				assert.Equal(t, msgNoApps, scene.Text(caption))
			} else {
				require.Len(t, children, 3)
				kind, _ := scene.KindOf(children[1])
				assert.Equal(t, render.KindImage, kind)
				assert.Equal(t, url, scene.Text(caption))
				qr := apps.qr
				require.NotNil(t, qr)
				// cached between creates
				require.NoError(t, views.SwitchName(ViewMain))
				require.NoError(t, views.SwitchName(ViewApps))
				assert.Same(t, qr, apps.qr)
			}

			apps.HandleInput(directional(types.ControlNext))
			assert.Equal(t, ViewApps, views.Active().Name())
			apps.HandleInput(directional(types.ControlBack))
			assert.Equal(t, ViewMain, views.Active().Name())
			assert.Equal(t, 1, scene.Len())
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseMode("WiFi")
	require.NoError(t, err)
	assert.Equal(t, ModeWiFi, mode)
	mode, err = ParseMode("lora")
	assert.True(t, errors.IsNotValid(err), "err=%v", err)
	assert.Equal(t, ModeNone, mode)
}
