package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"squish/internal/pipeline"
)

// Model renders live batch progress from a pipeline.ProgressUpdate channel.
type Model struct {
	updates   <-chan pipeline.ProgressUpdate
	bar       progress.Model
	spin      spinner.Model
	started   time.Time
	current   string
	total     int
	completed int
	processed int
	errors    int
	quitting  bool
}

type doneMsg struct{}

type updateMsg pipeline.ProgressUpdate

func NewModel(updates <-chan pipeline.ProgressUpdate) Model {
	bar := progress.New(progress.WithDefaultGradient())
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		updates: updates,
		bar:     bar,
		spin:    spin,
		started: time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(listenForUpdates(m.updates), m.spin.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.total += msg.TotalDelta
		m.completed += msg.CompletedDelta
		m.processed += msg.ProcessedDelta
		m.errors += msg.ErrorDelta
		if msg.File != "" {
			m.current = msg.File
		}
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		width := msg.Width - 8
		if width > 60 {
			width = 60
		}
		if width >= 20 {
			m.bar.Width = width
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.completed) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	header := m.spin.View() + labelStyle.Render("Processing images")
	if m.current != "" {
		header += dimStyle.Render("  "+m.current)
	}

	elapsed := time.Since(m.started).Round(100 * time.Millisecond)
	counts := labelStyle.Render(fmt.Sprintf("%d/%d", m.completed, m.total)) +
		dimStyle.Render(fmt.Sprintf("  errors:%d  elapsed:%s", m.errors, elapsed))

	lines := []string{
		header,
		m.bar.ViewAs(ratio) + "  " + counts,
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan pipeline.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
