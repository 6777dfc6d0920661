// Package tui provides the terminal user interface for watching the swarm.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hiveworks/swarmrouter/pkg/models"
)

// Snapshot is one poll of the swarm's state.
type Snapshot struct {
	Stats models.SwarmStatistics
	Tasks []models.TaskSummary
}

// Fetcher retrieves the current swarm state. Called on every poll tick.
type Fetcher func() (Snapshot, error)

// snapshotMsg carries a poll result into the update loop.
type snapshotMsg struct {
	snapshot Snapshot
	err      error
}

// tickMsg triggers the next poll.
type tickMsg time.Time

// Monitor is the bubbletea model for the live swarm dashboard.
type Monitor struct {
	// fetch retrieves swarm state from the server.
	fetch Fetcher
	// interval is the polling interval.
	interval time.Duration
	// snapshot is the most recent successful poll.
	snapshot Snapshot
	// fetched indicates at least one poll has succeeded.
	fetched bool
	// err is the most recent poll error.
	err error
	// lastUpdate is when the snapshot was taken.
	lastUpdate time.Time
	// width is the terminal width.
	width int
	// height is the terminal height.
	height int
	// quitting indicates the monitor is shutting down.
	quitting bool
}

// NewMonitor creates a Monitor polling fetch at the given interval.
func NewMonitor(fetch Fetcher, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = time.Second
	}
	return &Monitor{fetch: fetch, interval: interval}
}

// Init implements tea.Model.
func (m *Monitor) Init() tea.Cmd {
	return tea.Batch(m.poll(), m.tick())
}

// Update implements tea.Model.
func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, m.poll()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		m.err = msg.err
		if msg.err == nil {
			m.snapshot = msg.snapshot
			m.fetched = true
			m.lastUpdate = time.Now()
		}

	case tickMsg:
		return m, tea.Batch(m.poll(), m.tick())
	}

	return m, nil
}

func (m *Monitor) poll() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := m.fetch()
		return snapshotMsg{snapshot: snapshot, err: err}
	}
}

func (m *Monitor) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC857")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))
)

// danceStyles maps each dance to its display color.
var danceStyles = map[models.Dance]lipgloss.Style{
	models.DanceWaggle:   lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	models.DanceRound:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	models.DanceScout:    lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	models.DanceTremble:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	models.DanceConverge: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	models.DanceDisperse: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
}

// View implements tea.Model.
func (m *Monitor) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("🐝 SwarmRouter"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render("live swarm monitor"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("poll failed: %v", m.err)))
		b.WriteString("\n\n")
	}

	if !m.fetched {
		b.WriteString(labelStyle.Render("waiting for first poll..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.statsView())
		b.WriteString("\n")
		b.WriteString(m.tasksView())
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("q quit · r refresh"))
	if m.fetched {
		b.WriteString(footerStyle.Render(fmt.Sprintf(" · updated %s", m.lastUpdate.Format("15:04:05"))))
	}
	b.WriteString("\n")

	return b.String()
}

// statsView renders the aggregate counters and the dance distribution.
func (m *Monitor) statsView() string {
	stats := m.snapshot.Stats

	var b strings.Builder
	row := func(label string, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-16s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("total tasks", fmt.Sprintf("%d", stats.TotalTasks))
	row("active tasks", fmt.Sprintf("%d", stats.ActiveTasks))
	row("completed", fmt.Sprintf("%d", stats.CompletedTasks))
	row("bees deployed", fmt.Sprintf("%d", stats.TotalBeesDeployed))
	row("avg savings", fmt.Sprintf("%.2f%%", stats.AverageTokenSavings))

	if len(stats.DanceDistribution) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("  dance distribution"))
		b.WriteString("\n")
		b.WriteString(danceBars(stats.DanceDistribution))
	}

	return b.String()
}

// danceBars renders a horizontal bar per dance, scaled to the busiest one.
func danceBars(distribution map[models.Dance]int) string {
	dances := make([]models.Dance, 0, len(distribution))
	max := 0
	for dance, count := range distribution {
		dances = append(dances, dance)
		if count > max {
			max = count
		}
	}
	sort.Slice(dances, func(i, j int) bool { return dances[i] < dances[j] })

	const barWidth = 24

	var b strings.Builder
	for _, dance := range dances {
		count := distribution[dance]
		filled := 0
		if max > 0 {
			filled = count * barWidth / max
		}
		if count > 0 && filled == 0 {
			filled = 1
		}

		style, ok := danceStyles[dance]
		if !ok {
			style = valueStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("  %-10s", dance)))
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(labelStyle.Render(fmt.Sprintf(" %d", count)))
		b.WriteString("\n")
	}
	return b.String()
}

// tasksView renders the most recent tasks, newest last.
func (m *Monitor) tasksView() string {
	tasks := m.snapshot.Tasks
	if len(tasks) == 0 {
		return labelStyle.Render("  no tasks yet") + "\n"
	}

	limit := 10
	if m.height > 0 {
		// Leave room for the header, stats block, and footer.
		available := m.height - 16
		if available > 0 && available < limit {
			limit = available
		}
	}
	if len(tasks) > limit {
		tasks = tasks[len(tasks)-limit:]
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("  recent tasks (%d total)", len(m.snapshot.Tasks))))
	b.WriteString("\n")
	for _, task := range tasks {
		style, ok := danceStyles[task.Dance]
		if !ok {
			style = valueStyle
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			style.Render(fmt.Sprintf("%-8s", task.Dance)),
			labelStyle.Render(fmt.Sprintf("%-11s", task.Status)),
			truncate(task.Description, 60),
		))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
