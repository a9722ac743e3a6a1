package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"compilab/internal/pipeline"
	"compilab/internal/stage"
)

type stageModel struct {
	title      string
	through    stage.Stage
	events     <-chan pipeline.Event
	spinner    spinner.Model
	prog       progress.Model
	rows       [stage.Count]stageRow
	generation uint64
	stale      int
	width      int
	done       bool
}

type stageRow struct {
	status      pipeline.Status
	diagnostics int
	elapsed     time.Duration
}

type eventMsg pipeline.Event
type doneMsg struct{}

// NewStageModel returns a Bubble Tea model rendering the stages of one
// session up to through. The model quits when events is closed.
func NewStageModel(title string, through stage.Stage, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &stageModel{
		title:   title,
		through: through,
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
	}
}

func (m *stageModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *stageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(pipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *stageModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (generation %d)", truncate(m.title, m.width-24), m.generation)
	if m.done {
		header = "done: " + header
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	for _, st := range stage.All() {
		if st > m.through {
			break
		}
		row := m.rows[st]
		status := row.status.String()
		line := fmt.Sprintf("  %s %-10s", styleStatus(row.status).Render(fmt.Sprintf("%10s", status)), st)
		if row.status.Done() {
			line += fmt.Sprintf(" %3d diag  %s", row.diagnostics, row.elapsed.Round(time.Microsecond))
		}
		b.WriteString(truncate(line, m.width))
		b.WriteString("\n")
	}
	if m.stale > 0 {
		fmt.Fprintf(&b, "  %d stale result(s) discarded\n", m.stale)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(m.fraction()))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *stageModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *stageModel) applyEvent(ev pipeline.Event) tea.Cmd {
	switch ev.Kind {
	case pipeline.EventInvalidated, pipeline.EventReset:
		m.generation = ev.Generation
		m.rows = [stage.Count]stageRow{}
	case pipeline.EventStageStarted:
		if ev.Generation == m.generation && ev.Stage.Valid() {
			m.rows[ev.Stage] = stageRow{status: pipeline.StatusRunning}
		}
	case pipeline.EventStageFinished:
		if ev.Generation == m.generation && ev.Stage.Valid() {
			m.rows[ev.Stage] = stageRow{status: ev.Status, diagnostics: ev.Diagnostics, elapsed: ev.Elapsed}
		}
	case pipeline.EventDiscarded:
		m.stale++
	default:
		return nil
	}
	return m.prog.SetPercent(m.fraction())
}

// fraction is the share of shown stages that reached a final status.
func (m *stageModel) fraction() float64 {
	total, finished := 0, 0
	for _, st := range stage.All() {
		if st > m.through {
			break
		}
		total++
		if m.rows[st].status.Done() {
			finished++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(finished) / float64(total)
}

func styleStatus(status pipeline.Status) lipgloss.Style {
	switch status {
	case pipeline.StatusSucceeded:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case pipeline.StatusFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case pipeline.StatusRunning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case pipeline.StatusCancelled:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
