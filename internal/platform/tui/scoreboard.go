package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/vovakirdan/gem-arcade/internal/registry"
	"github.com/vovakirdan/gem-arcade/internal/storage"
)

const (
	minWidthForSidebar = 80  // Below this the mode list becomes a tab line
	sidebarWidth       = 24  // Mode list box, border included
	narrowTable        = 50  // Below this only rank, score and date are shown
	maxScores          = 100 // Rows loaded per mode
)

var (
	boxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Reload key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Reload, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev mode")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the score history of every registered mode.
type ScoreboardModel struct {
	games     []registry.GameInfo
	cursor    int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats            // Aggregates of the selected mode
	allStats  map[string]*storage.GameStats // Per-mode aggregates for the sidebar
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	loadErr   error // Last failed read from the store
}

// NewScoreboardModel creates a scoreboard showing the first registered mode.
// A nil store shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

// tableWidth is the width left for the table once margins and the sidebar are taken.
func (m *ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.wide() {
		w -= sidebarWidth + 3
	}
	return w
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 9},
		{Title: "Combo", Width: 6},
		{Title: "Matched", Width: 8},
		{Title: "Played", Width: 14},
	}
	if m.tableWidth() < narrowTable {
		columns = []table.Column{columns[0], columns[1], columns[4]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Title, summary, detail and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload reads the selected mode and the sidebar aggregates from the store.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.allStats, m.loadErr = nil, nil, nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.cursor].ID
		scores, err := m.store.TopScores(id, maxScores)
		if err != nil {
			m.loadErr = err
		}
		m.scores = scores

		all, err := m.store.GetAllGamesStats()
		if err != nil {
			m.loadErr = err
		}
		m.allStats = all
		m.stats = all[id]
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	wide := m.tableWidth() >= narrowTable
	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		row := table.Row{fmt.Sprintf("#%d", i+1), humanize.Comma(int64(s.Score))}
		if wide {
			row = append(row, fmt.Sprintf("x%d", s.MaxCombo), humanize.Comma(int64(s.TotalMatched)))
		}
		played := ""
		if !s.CreatedAt.IsZero() {
			played = humanize.Time(s.CreatedAt)
		}
		rows = append(rows, append(row, played))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.createTable()
		m.fillRows()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.cursor].Title
	}
	b.WriteString(activeStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", boxStyle.Render(m.tableView())))
	} else {
		b.WriteString(centerText(m.tabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(boxStyle.Render(m.tableView()), m.width))
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render(m.detail()))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// summary describes the selected mode's totals.
func (m ScoreboardModel) summary() string {
	if m.stats == nil {
		return ""
	}
	return fmt.Sprintf("%s  avg %s  best combo x%d  %s gems matched",
		english.Plural(m.stats.GamesCount, "game", ""),
		humanize.Comma(int64(m.stats.AvgScore)),
		m.stats.BestCombo,
		humanize.Comma(m.stats.TotalMatched))
}

// detail describes the highlighted row.
func (m ScoreboardModel) detail() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.scores) {
		return ""
	}
	s := m.scores[i]
	line := fmt.Sprintf("%s, %s",
		english.Plural(s.MovesMade, "move", ""),
		english.Plural(s.SpecialsCreated, "special", ""))
	if len(s.SessionID) >= 8 {
		line += "  session " + s.SessionID[:8]
	}
	return line
}

// sidebar lists every mode with its best score.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	b.WriteString("Modes\n")
	b.WriteString(strings.Repeat("─", sidebarWidth-4))
	for i, g := range m.games {
		b.WriteString("\n")
		line := "  " + truncate(g.Title, sidebarWidth-6)
		style := lipgloss.NewStyle()
		if i == m.cursor {
			line = "> " + truncate(g.Title, sidebarWidth-6)
			style = activeStyle
		}
		b.WriteString(style.Render(line))

		if st := m.allStats[g.ID]; st != nil {
			b.WriteString("\n")
			b.WriteString(faintStyle.Render(fmt.Sprintf("    best %s", humanize.Comma(int64(st.HighScore)))))
		}
	}
	return boxStyle.Width(sidebarWidth).Render(b.String())
}

// tabs lists the modes on one line, falling back to the current one if they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tab := lipgloss.NewStyle().Padding(0, 1)
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		name := truncate(g.Title, 10)
		if i == m.cursor {
			parts[i] = tab.Inherit(activeStyle).Background(lipgloss.Color("57")).Render(name)
		} else {
			parts[i] = tab.Inherit(faintStyle).Render(name)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = "< " + m.games[m.cursor].Title + " >"
	}
	return line
}

func (m ScoreboardModel) tableView() string {
	if m.loadErr != nil {
		return faintStyle.Padding(2, 4).Render("Could not load scores:\n" + m.loadErr.Error())
	}
	if len(m.scores) == 0 {
		return faintStyle.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nMatch some gems to set a high score!")
	}
	return m.table.View()
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// Err returns the error of the last load, if any.
func (m ScoreboardModel) Err() error {
	return m.loadErr
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in the local terminal.
// It reports whether the player went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
