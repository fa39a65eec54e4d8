package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rotodyn/internal/dynamo"
)

const (
	graphWidth      = 70
	graphHeight     = 10
	historyCapacity = 600
	stepsPerFrame   = 10
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the rotational system in real time and plots the angular
// velocity history.
type Model struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	state      dynamo.State
	initial    dynamo.State
	t, dt      float64
	running    bool
	bodyName   string
	history    [][]float64
}

func NewModel(dyn dynamo.System, integ dynamo.Integrator, initState []float64, dt float64, bodyName string) Model {
	return Model{
		dyn:        dyn,
		integrator: integ,
		state:      dynamo.State(initState).Clone(),
		initial:    dynamo.State(initState).Clone(),
		dt:         dt,
		running:    true,
		bodyName:   bodyName,
		history:    make([][]float64, 3),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.history = make([][]float64, 3)
		}
	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerFrame; i++ {
				m.state = m.integrator.Step(m.dyn, m.state, m.t, m.dt)
				if proj, ok := m.dyn.(dynamo.Projector); ok {
					proj.Project(m.state)
				}
				m.t += m.dt
			}
			for axis := 0; axis < 3; axis++ {
				m.history[axis] = append(m.history[axis], m.state[4+axis])
				if len(m.history[axis]) > historyCapacity {
					m.history[axis] = m.history[axis][1:]
				}
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("rotodyn live: %s", m.bodyName)))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("t", fmt.Sprintf("%.1f s", m.t))
	row("omega", fmt.Sprintf("(%.3e, %.3e, %.3e) rad/s", m.state[4], m.state[5], m.state[6]))
	row("quaternion", fmt.Sprintf("(%.4f, %.4f, %.4f, %.4f)", m.state[0], m.state[1], m.state[2], m.state[3]))
	if ec, ok := m.dyn.(dynamo.Hamiltonian); ok {
		row("energy", fmt.Sprintf("%.6e J", ec.Energy(m.state)))
	}

	if len(m.history[0]) > 1 {
		plot := asciigraph.PlotMany(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("angular velocity components"))
		b.WriteString(graphStyle.Render(plot))
		b.WriteString("\n")
	}

	state := "running"
	if !m.running {
		state = "paused"
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("[space] pause/resume  [r] reset  [q] quit  (%s)", state)))
	return b.String()
}
