package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/katalvlaran/gridastar/astar"
	"github.com/katalvlaran/gridastar/config"
	"github.com/katalvlaran/gridastar/render"
)

// playInterval is the delay between steps in play mode.
const playInterval = 120 * time.Millisecond

type tickMsg time.Time

// StepperModel is the bubbletea model for stepping through a search.
type StepperModel struct {
	Engine *astar.Engine
	Config config.Config

	Playing bool
	ShowIDs bool
	Row     int // inspection cursor
	Col     int
	Status  string
	Err     error
}

// NewStepperModel wraps e, which was built from cfg.
func NewStepperModel(e *astar.Engine, cfg config.Config) StepperModel {
	return StepperModel{Engine: e, Config: cfg, Status: "ready"}
}

func (m StepperModel) Init() tea.Cmd { return nil }

func tick() tea.Cmd {
	return tea.Tick(playInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m StepperModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.Playing {
			return m, nil
		}
		m.step()
		if m.Engine.State().Terminal() {
			m.Playing = false
			return m, nil
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "n":
			m.step()
		case "r":
			m.run()
		case "p":
			if m.Engine.State().Terminal() {
				return m, nil
			}
			m.Playing = !m.Playing
			if m.Playing {
				return m, tick()
			}
		case "x":
			m.reset()
		case "i":
			m.ShowIDs = !m.ShowIDs
		case "up", "k":
			m.moveCursor(-1, 0)
		case "down", "j":
			m.moveCursor(1, 0)
		case "left", "h":
			m.moveCursor(0, -1)
		case "right", "l":
			m.moveCursor(0, 1)
		}
	}
	return m, nil
}

func (m *StepperModel) step() {
	n, err := m.Engine.AdvanceOne()
	switch {
	case err != nil:
		m.Err = err
		m.Playing = false
	case n == nil:
		m.Status = "open set exhausted"
	default:
		v, _ := m.Engine.Node(n.ID)
		m.Status = "closed " + v.String()
	}
}

func (m *StepperModel) run() {
	m.Playing = false
	if _, err := m.Engine.RunToCompletion(); err != nil {
		m.Err = err
		return
	}
	m.Status = fmt.Sprintf("finished after %d steps", m.Engine.Steps())
}

func (m *StepperModel) reset() {
	m.Playing = false
	if err := m.Engine.Reset(m.Config); err != nil {
		m.Err = err
		return
	}
	m.Err = nil
	m.Status = "reset"
}

func (m *StepperModel) moveCursor(dr, dc int) {
	rows, cols := m.Engine.Graph().Dims()
	m.Row = min(max(m.Row+dr, 0), rows-1)
	m.Col = min(max(m.Col+dc, 0), cols-1)
}

// Inspected returns the view of the node under the cursor.
func (m StepperModel) Inspected() astar.NodeView {
	id, _ := m.Engine.Graph().ID(m.Row, m.Col)
	v, _ := m.Engine.Node(id)
	return v
}

func (m StepperModel) View() string {
	var b strings.Builder
	e := m.Engine

	b.WriteString(styleTitle.Render(fmt.Sprintf("A* %s  step %d", e.State(), e.Steps())))
	b.WriteString("\n")
	b.WriteString(styleHelp.Render("space step  r run  p play  x reset  i ids  ←↑↓→ inspect  q quit"))
	b.WriteString("\n\n")
	b.WriteString(render.Text(e, render.TextOptions{IDs: m.ShowIDs, Legend: true}))
	b.WriteString("\n")

	b.WriteString(kv("cursor", m.Inspected().String()))
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(styleError.Render(iconError + " " + m.Err.Error()))
	} else {
		b.WriteString(kv("status", m.Status))
	}
	b.WriteString("\n")
	if e.State() == astar.Found {
		b.WriteString(kv("cost", e.Target().G))
		b.WriteString("\n")
		b.WriteString(kv("path", formatPath(e.PathIDs())))
		b.WriteString("\n")
	}
	return b.String()
}
