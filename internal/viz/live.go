package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/system"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailLength     = 150
)

type TickMsg time.Time

type Options struct {
	Name string
	// TimeScale is simulated seconds per wall second.
	TimeScale float64
	FrameRate int
	Theme     string
	GIFPath   string
}

type pixel struct{ x, y int }

// Model drives a Simulator from the terminal frame loop: every frame feeds
// the wall time since the previous frame, scaled by TimeScale, into Tick.
type Model struct {
	sim     *sim.Simulator
	source  *system.SolarSystem
	initial []*dynamo.Body
	drift   *metrics.EnergyDrift
	opts    Options

	last     time.Time
	canvas   *Canvas
	camera   *Camera
	trails   map[string][]pixel
	energy   []float64
	theme    int
	styles   styles
	showHelp bool
	gif      *gifRecorder
	err      error
}

// NewModel expects s to have been initialized with source. The simulator is
// started if it is not already running.
func NewModel(s *sim.Simulator, source *system.SolarSystem, opts Options) Model {
	if opts.TimeScale <= 0 {
		opts.TimeScale = 1
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 60
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "gravsim.gif"
	}

	theme := 0
	for i, t := range Themes {
		if t.Name == opts.Theme {
			theme = i
		}
	}

	drift := metrics.NewEnergyDrift(s.GravitationalConstant(), s.MinDistance())
	drift.Baseline(source.Bodies())
	s.AddObserver(drift)

	m := Model{
		sim:     s,
		source:  source,
		initial: dynamo.CloneAll(source.Bodies()),
		drift:   drift,
		opts:    opts,
		canvas:  NewCanvas(width, height),
		camera:  NewCamera(),
		trails:  make(map[string][]pixel),
		energy:  make([]float64, 0, historyCapacity),
		theme:   theme,
		styles:  newStyles(Themes[theme]),
	}
	m.camera.Fit(source.Bodies(), m.canvas.PixelWidth(), m.canvas.PixelHeight())

	if !s.IsRunning() {
		s.Start()
	}
	return m
}

func (m Model) Simulator() *sim.Simulator { return m.sim }
func (m Model) Err() error                { return m.err }
func (m Model) Recording() bool           { return m.gif != nil }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FrameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		m.frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.gif != nil {
			m.err = m.gif.save()
			m.gif = nil
		}
		return m, tea.Quit
	case " ":
		switch m.sim.State() {
		case sim.Running:
			m.sim.Pause()
		case sim.Paused:
			m.sim.Resume()
		default:
			m.sim.Start()
		}
	case "s":
		m.sim.Stop()
	case "r":
		m.restart()
	case "+", "=":
		m.camera.ZoomIn()
		m.clearTrails()
	case "-", "_":
		m.camera.ZoomOut()
		m.clearTrails()
	case "x":
		m.camera.RotateX(math.Pi / 24)
		m.clearTrails()
	case "y":
		m.camera.RotateY(math.Pi / 24)
		m.clearTrails()
	case "c":
		m.camera.Reset()
		m.camera.Fit(m.sim.Bodies(), m.canvas.PixelWidth(), m.canvas.PixelHeight())
		m.clearTrails()
	case ">":
		m.opts.TimeScale *= 2
	case "<":
		m.opts.TimeScale /= 2
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = newStyles(Themes[m.theme])
	case "g":
		if m.gif == nil {
			m.gif = newGIFRecorder(m.opts.GIFPath)
		} else {
			m.err = m.gif.save()
			m.gif = nil
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// frame advances the simulator by the wall time since the previous frame.
// Paused or stopped simulators ignore the delta, so resuming never replays
// the time spent paused.
func (m *Model) frame(now time.Time) {
	if !m.last.IsZero() {
		delta := now.Sub(m.last).Seconds() * m.opts.TimeScale
		if m.sim.Tick(delta) > 0 {
			m.energy = append(m.energy, m.drift.Current())
			if len(m.energy) > historyCapacity {
				m.energy = m.energy[1:]
			}
		}
	}
	m.last = now

	m.draw()
	if m.gif != nil {
		m.gif.capture(m.canvas)
	}
}

// restart puts every body back where it started and re-initializes the
// simulator against the same registry.
func (m *Model) restart() {
	for _, b := range m.initial {
		live, err := m.source.Body(b.Name())
		if err != nil {
			continue
		}
		live.SetPosition(b.Position())
		live.SetVelocity(b.Velocity())
	}

	m.sim.Initialize(m.source, m.sim.TimeStep())
	m.sim.Start()
	m.drift.Baseline(m.source.Bodies())
	m.energy = m.energy[:0]
	m.clearTrails()
}

func (m *Model) clearTrails() {
	clear(m.trails)
}

func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.PixelWidth(), m.canvas.PixelHeight()

	for _, b := range m.sim.Bodies() {
		if b == nil {
			continue
		}
		x, y, ok := m.camera.Project(b.Position(), w, h)
		if !ok {
			continue
		}

		trail := append(m.trails[b.Name()], pixel{x, y})
		if len(trail) > trailLength {
			trail = trail[1:]
		}
		m.trails[b.Name()] = trail
		for _, p := range trail {
			m.canvas.Set(p.x, p.y)
		}

		r := 1
		if b.Radius()*m.camera.Scale*m.camera.Zoom >= 3 {
			r = 2
		}
		m.canvas.Disc(x, y, r)
	}
}

func (m Model) status() string {
	var s string
	switch m.sim.State() {
	case sim.Running:
		s = m.styles.running.Render("RUNNING")
	case sim.Paused:
		s = m.styles.paused.Render("PAUSED")
	case sim.Stopped:
		s = m.styles.stopped.Render("STOPPED")
	default:
		s = m.styles.paused.Render(strings.ToUpper(m.sim.State().String()))
	}
	if m.gif != nil {
		s += "  " + m.styles.recording.Render("● REC")
	}
	return s
}

func (m Model) View() string {
	st := m.styles
	var s strings.Builder

	s.WriteString(st.header.Render(strings.ToUpper(m.opts.Name)) + "\n")
	s.WriteString(m.status() + "\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.sim.SimTime()))
	row("Steps", fmt.Sprintf("%d", m.sim.Steps()))
	row("Bodies", fmt.Sprintf("%d", len(m.sim.Bodies())))
	row("Step", fmt.Sprintf("%gs", m.sim.TimeStep()))
	row("Speed", fmt.Sprintf("x%g", m.opts.TimeScale))
	row("Drift", fmt.Sprintf("%.3e", m.drift.Value()))
	if d := m.sim.DroppedTime(); d > 0 {
		row("Dropped", fmt.Sprintf("%.2fs", d))
	}
	row("Theme", Themes[m.theme].Name)
	if m.err != nil {
		s.WriteString(st.stopped.Render(m.err.Error()) + "\n")
	}

	s.WriteString(st.help.Render("─────────────────────\nSP:Pause S:Stop R:Restart\n<>:Speed +-:Zoom ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.canvas.String()), st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause / resume / start   ║
║  S        - Stop                     ║
║  R        - Restart from t = 0       ║
║  < >      - Halve / double speed     ║
║  + -      - Zoom in / out            ║
║  X Y      - Rotate view              ║
║  C        - Recentre view            ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`
