package viz

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/physics"
	"github.com/san-kum/bouncesim/internal/render"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
)

// resolver is implemented by engines that count the pairs they corrected.
type resolver interface {
	Resolved() int
}

type TickMsg time.Time

// RecordFunc receives the frames captured between two presses of the
// record key.
type RecordFunc func(frames []*image.RGBA) error

// Model is the terminal front end of a bounce run. It owns the simulator;
// the canvas only ever sees the copies handed to RenderFrame.
type Model struct {
	sim           *dynamo.Simulator
	name          string
	delay         time.Duration
	canvas        *Canvas
	surface       *render.ImageSurface
	running       bool
	quitting      bool
	frame         int
	energyHistory []float64
	recording     bool
	frames        []*image.RGBA
	onRecord      RecordFunc
	notice        string
	showHelp      bool
}

// NewModel wraps sim for the terminal. The delay between ticks comes from
// the simulator's frame delay, falling back to 60 Hz.
func NewModel(sim *dynamo.Simulator, name string) Model {
	cfg := sim.Config()
	delay := cfg.FrameDelay
	if delay <= 0 {
		delay = time.Second / 60
	}

	canvas := NewCanvas(width, height)
	canvas.Fit(cfg.World)

	m := Model{
		sim:           sim,
		name:          name,
		delay:         delay,
		canvas:        canvas,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.draw()
	return m
}

// WithRecorder enables GIF capture through fn. Frames are rendered at world
// resolution on a separate image surface.
func (m Model) WithRecorder(fn RecordFunc) Model {
	w := m.sim.World()
	surface, err := render.NewImageSurface(int(w.Width), int(w.Height))
	if err != nil {
		m.notice = err.Error()
		return m
	}
	m.surface = surface
	m.onRecord = fn
	return m
}

func (m Model) Canvas() *Canvas { return m.canvas }
func (m Model) Running() bool   { return m.running }
func (m Model) Recording() bool { return m.recording }
func (m Model) Quitting() bool  { return m.quitting }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.startRecording()
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			NextTheme()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording && m.running {
			m.captureFrame()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the physics simulation.
func (m *Model) step() {
	m.sim.Step()
	m.frame++

	m.energyHistory = append(m.energyHistory, m.energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) energy() float64 {
	bodies := m.sim.Bodies()
	return physics.KineticEnergy(bodies) +
		physics.PotentialEnergy(bodies, m.sim.World(), m.sim.Config().Params.Gravity)
}

func (m *Model) reset() {
	m.sim.Reset()
	m.frame = 0
	m.energyHistory = m.energyHistory[:0]
	m.draw()
}

func (m *Model) draw() {
	// the canvas never fails to present
	_ = dynamo.RenderFrame(m.canvas, m.sim.Bodies())
	m.canvas.DrawBorder()
}

func (m *Model) startRecording() {
	if m.surface == nil {
		m.notice = "recording unavailable"
		return
	}
	m.recording = true
	m.frames = make([]*image.RGBA, 0, historyCapacity)
	m.notice = ""
}

func (m *Model) stopRecording() {
	m.recording = false
	frames := m.frames
	m.frames = nil
	if len(frames) == 0 || m.onRecord == nil {
		return
	}
	if err := m.onRecord(frames); err != nil {
		m.notice = "record failed: " + err.Error()
		return
	}
	m.notice = fmt.Sprintf("saved %d frames", len(frames))
}

func (m *Model) captureFrame() {
	if err := dynamo.RenderFrame(m.surface, m.sim.Bodies()); err != nil {
		m.notice = err.Error()
		return
	}
	snap := image.NewRGBA(m.surface.Frame.Bounds())
	copy(snap.Pix, m.surface.Frame.Pix)
	m.frames = append(m.frames, snap)
}

// View renders the canvas next to the stats panel, all in the current theme.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := NewStyles(CurrentTheme)
	bodies := m.sim.Bodies()
	world := m.sim.World()
	canvasView := st.Canvas.Render(m.canvas.Colored())

	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().MarginBottom(1).Render(st.Gradient(strings.ToUpper(m.name))) + "\n")

	status := st.Running.Render(spinnerFrame(m.frame) + " RUNNING")
	if !m.running {
		status = st.Paused.Render("PAUSED")
	}
	if m.recording {
		status += "  " + st.Recording.Render(fmt.Sprintf("● REC %d", len(m.frames)))
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.Graph.Render(chart) + "\n\n")
	}

	p := physics.Momentum(bodies)
	contained := 0
	for _, b := range bodies {
		if world.Contains(b) {
			contained++
		}
	}
	row := func(label, value string) {
		s.WriteString(st.Label.Render(label) + value + "\n")
	}

	row("Tick", st.Value.Render(fmt.Sprintf("%d", m.sim.Ticks())))
	row("Time", st.Value.Render(fmt.Sprintf("%.1f", m.sim.Time())))
	row("Bodies", st.Value.Render(fmt.Sprintf("%d", len(bodies))))
	row("Kinetic", st.Value.Render(fmt.Sprintf("%.2f", physics.KineticEnergy(bodies))))
	row("Momentum", st.Value.Render(fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)))
	if r, ok := m.sim.Engine().(resolver); ok {
		row("Resolved", st.Value.Render(fmt.Sprintf("%d", r.Resolved())))
	}

	heights := make([]float64, min(len(bodies), 24))
	for i := range heights {
		heights[i] = world.Height - bodies[i].Pos.Y
	}
	row("Heights", st.Sparkline(heights))
	row("Inside", st.Containment(float64(contained)/float64(max(1, len(bodies))), 20))
	row("Theme", st.Value.Render(CurrentTheme.Name))

	if m.notice != "" {
		s.WriteString("\n" + st.Notice.Render(m.notice) + "\n")
	}

	s.WriteString(st.Help.Render(strings.Repeat("─", 23) + "\nSP:Pause R:Reset Q:Quit\nT:Theme  G:Record ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
	if m.showHelp {
		return st.Help.Render(`
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset simulation         ║
║  Q        - Quit                     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`) + "\n\n" + mainView
	}
	return mainView
}
