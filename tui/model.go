// Package tui is a terminal host for the bar chart. Clicking and dragging
// across the chart selects bars just like the desktop window.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"git.sr.ht/~whereswaldon/barchart/backend"
	"git.sr.ht/~whereswaldon/barchart/config"
	"git.sr.ht/~whereswaldon/barchart/interaction"
	"git.sr.ht/~whereswaldon/barchart/render"
	"git.sr.ht/~whereswaldon/barchart/style"
)

const (
	// chrome is the number of rows used by everything except the bars.
	chrome    = 5
	minHeight = chrome + 3
)

// StatusMsg carries a datasource update into the model.
type StatusMsg backend.Status

// Model is the bubbletea model of one chart.
type Model struct {
	cfg      config.Config
	palette  style.Palette
	classify style.Classifier

	session *interaction.Session
	result  interaction.Result
	status  backend.Status
	width   int
	height  int

	// statuses feeds datasource updates; nil when the data is static.
	statuses <-chan backend.Status
	// OnSelectionChanged is called when a drag moves onto a different bar.
	OnSelectionChanged func(interaction.Selection)
	// SetPaused toggles live updates. The pause key is ignored when nil.
	SetPaused func(paused bool)
}

// New creates a model showing data. If statuses is non-nil the model follows
// it for new data.
func New(cfg config.Config, data interaction.Dataset, statuses <-chan backend.Status) *Model {
	return &Model{
		cfg:      cfg,
		palette:  cfg.Palette(),
		classify: cfg.Classifier(),
		session:  interaction.NewSession(nil, data),
		statuses: statuses,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForStatus()
}

func (m *Model) waitForStatus() tea.Cmd {
	if m.statuses == nil {
		return nil
	}
	ch := m.statuses
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return StatusMsg(s)
	}
}

// labelBoxWidth sizes the label box, in cells, to fit the longest label.
func labelBoxWidth(data interaction.Dataset) int {
	w := 0
	for _, label := range data.Labels() {
		w = max(w, lipgloss.Width(label))
	}
	return w + 2
}

// relayout rebuilds the resolver for the terminal size and data.
func (m *Model) relayout() {
	if m.width <= 0 {
		return
	}
	g := interaction.Geometry{
		Width:          float64(m.width),
		LabelBoxWidth:  float64(labelBoxWidth(m.session.Data())),
		LabelBoxMargin: 1,
	}
	r, err := interaction.NewResolver(g)
	if err != nil {
		return
	}
	m.session.SetResolver(r)
	m.result = m.session.Current()
}

func (m *Model) ready() bool {
	return m.width > 0 && m.height >= minHeight
}

//nolint:ireturn // Third-party.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.relayout()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.ready() {
				m.result = m.session.Release()
			}
		case "p":
			if m.SetPaused != nil && m.status.Mode != backend.ModeNone {
				m.SetPaused(!m.status.Paused)
			}
		}

	case tea.MouseMsg:
		// Wheel events arrive as presses that are never released.
		if !m.ready() || tea.MouseEvent(msg).IsWheel() {
			return m, nil
		}
		switch msg.Action {
		case tea.MouseActionPress, tea.MouseActionMotion:
			if msg.Action == tea.MouseActionPress && msg.Button != tea.MouseButtonLeft {
				return m, nil
			}
			if msg.Action == tea.MouseActionMotion && m.session.Phase() != interaction.Dragging {
				return m, nil
			}
			m.move(msg.X)
		case tea.MouseActionRelease:
			m.result = m.session.Release()
		}

	case StatusMsg:
		if msg.Revision != m.status.Revision {
			m.session.SetData(msg.Data)
			m.relayout()
		}
		m.status = backend.Status(msg)
		return m, m.waitForStatus()
	}

	return m, nil
}

func (m *Model) move(x int) {
	var changed bool
	m.result, changed = m.session.Move(float64(x) / float64(m.width))
	if changed && m.OnSelectionChanged != nil {
		m.OnSelectionChanged(m.result.Selection)
	}
}

// Result returns the current interaction result.
func (m *Model) Result() interaction.Result {
	return m.result
}

func (m *Model) View() string {
	if !m.ready() {
		return "terminal too small\n"
	}
	var b strings.Builder
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(style.Hex(m.palette.Text)))
	b.WriteString(header.Render(m.result.Headline(m.cfg.Title)))
	b.WriteString("\n\n")
	b.WriteString(m.viewBars(m.height - chrome))
	b.WriteString(m.viewFooter())
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	return b.String()
}

func (m *Model) viewBars(rows int) string {
	highlight := -1
	if m.result.Selected {
		highlight = m.result.Selection.Index
	}
	bars := render.Layout(float64(m.width), float64(rows), m.result.Heights, highlight)
	data := m.session.Data()
	var b strings.Builder
	for row := 0; row < rows; row++ {
		var line strings.Builder
		for col := 0; col < m.width; col++ {
			cell := " "
			for _, bar := range bars {
				if !bar.Contains(float64(col)+.5, float64(row)+.5) {
					continue
				}
				g := m.classify(data.Point(bar.Index)).Gradient()
				shade := g.At(1 - (float64(row)+.5-bar.Y)/max(bar.H, 1))
				if bar.Highlighted {
					shade = g.End
				}
				cell = lipgloss.NewStyle().Foreground(lipgloss.Color(style.Hex(shade))).Render("█")
				break
			}
			line.WriteString(cell)
		}
		b.WriteString(line.String())
		b.WriteString("\n")
	}
	return b.String()
}

// viewFooter draws the arrow and label box, or the legend while idle.
func (m *Model) viewFooter() string {
	if !m.result.ShowLabel {
		if m.cfg.ShowsLegend() {
			legend := lipgloss.NewStyle().Foreground(lipgloss.Color(style.Hex(m.palette.Legend)))
			return "\n" + legend.Render(m.cfg.Legend)
		}
		return "\n"
	}
	boxW := labelBoxWidth(m.session.Data())
	offset := max(0, int(m.result.LabelOffset))
	tip := max(0, min(m.width-1, int(m.result.LabelOffset+float64(boxW)/2+m.result.ArrowOffset)))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(style.Hex(m.palette.Accent)))
	box := lipgloss.NewStyle().
		Width(boxW).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(style.Hex(m.palette.Background))).
		Background(lipgloss.Color(style.Hex(m.palette.Accent)))
	return strings.Repeat(" ", tip) + accent.Render("▲") + "\n" +
		strings.Repeat(" ", offset) + box.Render(m.result.Selection.Label)
}

func (m *Model) viewStatus() string {
	faint := lipgloss.NewStyle().Faint(true)
	parts := []string{"drag to inspect", "q quit"}
	if m.SetPaused != nil && m.status.Mode != backend.ModeNone {
		parts = append(parts, "p pause")
	}
	if m.status.Paused {
		parts = append(parts, "paused")
	}
	if m.status.Err != nil {
		parts = append(parts, m.status.Err.Error())
	}
	return faint.Render(strings.Join(parts, " · "))
}
