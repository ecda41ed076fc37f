// Executable for developing UI without device.
// Real UI runs against mock display rendered in terminal, power pin calls are only logged.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/juju/errors"
	"github.com/temoto/ghost/hardware/platform"
	"github.com/temoto/ghost/internal/state"
	state_new "github.com/temoto/ghost/internal/state/new"
	"github.com/temoto/ghost/internal/types"
	"github.com/temoto/ghost/internal/ui"
	"github.com/temoto/ghost/log2"
)

const halfBlock = "▀"

type frameMsg *image.RGBA
type poweredOffMsg struct{ calls []string }

type model struct {
	g      *state.Global
	inputs chan<- types.InputEvent
	scale  int
	frame  *image.RGBA
	styles map[[2]string]lipgloss.Style
	footer lipgloss.Style
	status string
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = msg
	case poweredOffMsg:
		m.status = "power off: " + strings.Join(msg.calls, ", ")
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "left":
			m.press(types.ControlPrev)
		case "down", "right":
			m.press(types.ControlNext)
		case "enter", " ":
			m.press(types.ControlActivate)
		case "esc", "backspace":
			m.press(types.ControlBack)
		case "q", "ctrl+c":
			m.g.Stop()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *model) press(c types.Control) {
	m.status = "input " + c.String()
	select {
	case m.inputs <- types.Directional("ui-dev", c):
	default:
		m.status = "input queue full"
	}
}

func (m *model) View() string {
	if m.frame == nil {
		return "waiting for display\n"
	}
	b := m.frame.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 * m.scale {
		for x := b.Min.X; x < b.Max.X; x += m.scale {
			top := hexColor(m.frame, x, y)
			bottom := hexColor(m.frame, x, y+m.scale)
			sb.WriteString(m.cell(top, bottom).Render(halfBlock))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(m.footer.Render("arrows: prev/next  enter: activate  esc: back  q: quit"))
	sb.WriteByte('\n')
	sb.WriteString(m.status)
	return sb.String()
}

func (m *model) cell(fg, bg string) lipgloss.Style {
	key := [2]string{fg, bg}
	if s, ok := m.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
	m.styles[key] = s
	return s
}

func hexColor(img *image.RGBA, x, y int) string {
	if !(image.Point{x, y}.In(img.Bounds())) {
		return "#000000"
	}
	c := img.RGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "ghost.hcl", "")
	flagLog := cmdline.String("log", "ui-dev.log", "log file, terminal belongs to simulator")
	flagScale := cmdline.Int("scale", 2, "display pixels per terminal cell column")
	_ = cmdline.Parse(os.Args[1:])

	logFile, err := os.OpenFile(*flagLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file=%s err=%v\n", *flagLog, err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := log2.NewWriter(logFile, log2.LDebug)
	log.SetFlags(log2.LInteractiveFlags)

	ctx, g := state_new.NewContext(log)
	config := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	config.Hardware.Display.Framebuffer = ""
	config.Hardware.Input.GpioButtons = nil
	mock := platform.NewMock()
	g.Hardware.Platform.P = mock
	g.MustInit(ctx, config)

	d, err := g.Display()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	updates := make(chan *image.RGBA, 1)
	d.SetUpdateChan(updates)

	uiv := ui.UI{}
	if err := uiv.Init(ctx); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}

	inputs := make(chan types.InputEvent, 16)
	m := &model{
		g:      g,
		inputs: inputs,
		scale:  *flagScale,
		styles: make(map[[2]string]lipgloss.Style),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("#808088")),
	}
	if m.scale < 1 {
		m.scale = 1
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	stopch := g.Alive.StopChan()
	go func() {
		for {
			select {
			case e := <-inputs:
				g.Hardware.Input.Emit(e)
			case <-stopch:
				return
			}
		}
	}()
	go func() {
		for {
			select {
			case img := <-updates:
				program.Send(frameMsg(img))
			case <-mock.SleptChan():
				program.Send(poweredOffMsg{calls: mock.Calls()})
				return
			case <-stopch:
				return
			}
		}
	}()
	go uiv.Loop(ctx)

	if _, err := program.Run(); err != nil {
		log.Error(errors.Annotate(err, "ui-dev terminal"))
	}
	g.Stop()
	fmt.Println(m.status)
}
