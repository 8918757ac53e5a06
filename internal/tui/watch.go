package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/skilltrack/internal/models"
	"github.com/julianstephens/skilltrack/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(40).
			Align(lipgloss.Center)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// WatchConfig carries the snapshot the live view renders. The view is
// read-only: pausing and ending happen through the timer commands, not here.
type WatchConfig struct {
	SkillName string
	State     models.ActiveTimer
}

type keyMap struct {
	Quit key.Binding
	Help key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit, k.Help}}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type watchModel struct {
	cfg      WatchConfig
	now      time.Time
	keys     keyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

func newWatchModel(cfg WatchConfig) watchModel {
	return watchModel{
		cfg:  cfg,
		now:  time.Now(),
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case TickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	elapsed := liveElapsed(m.cfg.State, m.now)

	status := statusStyle.Render("running")
	if !m.cfg.State.IsRunning {
		status = pausedStyle.Render("paused")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(fmt.Sprintf("Tracking: %s", m.cfg.SkillName)),
		clockStyle.Render(utils.FormatClock(elapsed)),
		status,
		"",
		m.help.View(m.keys),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// liveElapsed extends the closed-interval total with the open interval's
// running time. A paused timer shows a frozen clock.
func liveElapsed(state models.ActiveTimer, now time.Time) int64 {
	elapsed := state.ElapsedSeconds
	if state.IsRunning && len(state.Intervals) > 0 {
		last := state.Intervals[len(state.Intervals)-1]
		if !last.Closed() {
			delta := (now.UnixMilli() - last.Start) / 1000
			if delta > 0 {
				elapsed += delta
			}
		}
	}
	return elapsed
}

// RunWatch renders the live timer until the user quits. The database is not
// touched while the view is open; the snapshot is advanced locally.
func RunWatch(cfg WatchConfig) error {
	p := tea.NewProgram(newWatchModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
