// SPDX-License-Identifier: EPL-2.0

// Package monitor is a terminal status view of a running engine.
package monitor

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/notetrig/engine"
)

const refreshInterval = 100 * time.Millisecond

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7dcfff"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	dropStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
)

// Source is what the monitor polls. *engine.Engine satisfies it.
type Source interface {
	Stats() engine.Stats
	Polyphony() int
	SampleRate() int
	Channels() int
}

type Model struct {
	src   Source
	title string
	notes []uint8

	stats    engine.Stats
	quitting bool
}

type TickMsg time.Time

func NewModel(src Source, title string, notes []uint8) Model {
	return Model{
		src:   src,
		title: title,
		notes: notes,
		stats: src.Stats(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "enter", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case TickMsg:
		m.stats = m.src.Stats()
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.stats
	poly := m.src.Polyphony()

	header := headerStyle.Render(fmt.Sprintf("%s  %d Hz  %d ch  %d notes",
		m.title, m.src.SampleRate(), m.src.Channels(), len(m.notes)))

	bar := activeStyle.Render(strings.Repeat("█", min(st.ActiveVoices, poly))) +
		dimStyle.Render(strings.Repeat("·", max(poly-st.ActiveVoices, 0)))

	row := func(label string, v uint64, style lipgloss.Style) string {
		s := fmt.Sprintf("%d", v)
		if v > 0 {
			s = style.Render(s)
		}
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + s
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "voices")))
	out.WriteString(fmt.Sprintf("%s %d/%d\n", bar, st.ActiveVoices, poly))
	out.WriteString(row("triggered", st.Triggered, activeStyle) + "\n")
	out.WriteString(row("periods", st.Periods, activeStyle) + "\n")
	out.WriteString(row("queue full", st.QueueFullDrops, dropStyle) + "\n")
	out.WriteString(row("polyphony drops", st.PolyphonyDrops, dropStyle) + "\n")
	out.WriteString(row("unknown notes", st.UnknownNotes, dropStyle) + "\n")
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("q/enter:quit"))

	return out.String()
}

// Run shows the monitor until the user quits.
func Run(src Source, title string, notes []uint8) error {
	_, err := tea.NewProgram(NewModel(src, title, notes)).Run()
	return err
}
