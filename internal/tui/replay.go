package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/projectile/internal/ballistics"
	"github.com/san-kum/projectile/internal/render"
)

const (
	canvasWidth  = 60
	canvasHeight = 15
	frameRate    = 30
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
	panel      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444466")).Padding(0, 1)
)

type TickMsg time.Time

// Model replays a sampled path in real time.
type Model struct {
	projectile   ballistics.Projectile
	acceleration float64
	path         *ballistics.Path
	frame        []float64
	canvas       *render.Canvas

	elapsed float64
	index   int
	speed   float64
	paused  bool
	last    time.Time
}

func NewModel(p ballistics.Projectile, a float64, path *ballistics.Path) Model {
	m := Model{
		projectile:   p,
		acceleration: a,
		path:         path,
		canvas:       render.NewCanvas(canvasWidth, canvasHeight),
		speed:        1,
	}
	if path.Len() > 0 {
		minX, maxX := path.X[0], path.X[0]
		minY, maxY := path.Y[0], path.Y[0]
		for i := range path.X {
			minX, maxX = min(minX, path.X[i]), max(maxX, path.X[i])
			minY, maxY = min(minY, path.Y[i]), max(maxY, path.Y[i])
		}
		if maxX == minX {
			maxX++
		}
		if maxY == minY {
			maxY++
		}
		m.frame = []float64{minX, maxX, minY, maxY}
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.elapsed, m.index = 0, 0
		case "+", "=":
			m.speed = min(m.speed*2, 16)
		case "-", "_":
			m.speed = max(m.speed/2, 0.125)
		}
		return m, nil
	case TickMsg:
		now := time.Time(msg)
		if !m.paused && !m.last.IsZero() {
			m.Advance(now.Sub(m.last).Seconds() * m.speed)
		}
		m.last = now
		return m, tick()
	}
	return m, nil
}

// Advance moves the replay clock forward by dt seconds of flight time.
// Paths sampled over a reversed interval replay by distance from their
// first sample.
func (m *Model) Advance(dt float64) {
	n := m.path.Len()
	if n == 0 {
		return
	}
	m.elapsed += dt
	start := m.path.Times[0]
	for m.index < n-1 && math.Abs(m.path.Times[m.index+1]-start) <= m.elapsed {
		m.index++
	}
}

func (m Model) Index() int { return m.index }

func (m Model) Done() bool { return m.index >= m.path.Len()-1 }

func (m Model) View() string {
	if m.path.Len() == 0 {
		return "no samples\n"
	}

	m.canvas.Clear()
	end := m.index + 1
	m.canvas.PlotXY(m.path.X[:end], m.path.Y[:end], m.frame)

	s := m.path.At(m.index)
	speed := m.projectile.SpeedAt(s.T, m.acceleration)
	state := "flying"
	switch {
	case m.paused:
		state = "paused"
	case m.Done():
		state = "landed"
	}

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	stats := strings.Join([]string{
		row("time", fmt.Sprintf("%.2fs", s.T)),
		row("x", fmt.Sprintf("%.2fm", s.X)),
		row("y", fmt.Sprintf("%.2fm", s.Y)),
		row("speed", fmt.Sprintf("%.2fm/s", speed)),
		row("replay", fmt.Sprintf("%gx %s", m.speed, state)),
	}, "\n")

	var b strings.Builder
	b.WriteString(titleStyle.Render("PROJECTILE") + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel.Render(m.canvas.String()), " ", panel.Render(stats)))
	b.WriteString("\n" + hintStyle.Render("space pause  r restart  +/- speed  q quit") + "\n")
	return b.String()
}

func Run(p ballistics.Projectile, a float64, path *ballistics.Path) error {
	_, err := tea.NewProgram(NewModel(p, a, path), tea.WithAltScreen()).Run()
	return err
}
