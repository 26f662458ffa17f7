package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gem-arcade/internal/config"
	"github.com/vovakirdan/gem-arcade/internal/core"
	"github.com/vovakirdan/gem-arcade/internal/session"
)

// difficulties is the order presets are offered in.
var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// DifficultyModel lets users pick a difficulty preset before a game.
type DifficultyModel struct {
	cursor    int
	width     int
	height    int
	base      config.GemsConfig
	keyMapper *KeyMapper
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a difficulty picker describing presets
// applied on top of base. Normal is preselected.
func NewDifficultyModel(base config.GemsConfig, width, height int) DifficultyModel {
	return DifficultyModel{
		cursor:    1,
		width:     width,
		height:    height,
		base:      base,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficulties)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = difficulties[m.cursor]
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// describe summarizes what a preset changes.
func (m DifficultyModel) describe(p config.DifficultyPreset) string {
	cfg := m.base
	cfg.Modes = make(map[string]config.ModeConfig, len(m.base.Modes))
	for k, v := range m.base.Modes {
		cfg.Modes[k] = v
	}
	config.ApplyGemsPreset(&cfg, p)

	classic := cfg.Modes[string(session.ModeClassic)]
	timed := cfg.Modes[string(session.ModeTimed)]
	return fmt.Sprintf("%d gem types, %s, %s",
		cfg.Board.GemTypes, budgetText(classic.Moves, "moves"), budgetText(timed.Seconds, "s"))
}

func budgetText(v int, unit string) string {
	if v <= 0 {
		return "no limit"
	}
	if unit == "s" {
		return fmt.Sprintf("%ds", v)
	}
	return fmt.Sprintf("%d %s", v, unit)
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("D I F F I C U L T Y"), m.width))
	b.WriteString("\n\n")

	for i, p := range difficulties {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-6s", cursor, p)
		if i == m.cursor {
			line = menuCursorStyle.Render(line)
		}
		line += menuDimStyle.Render("  " + m.describe(p))
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or nil if still choosing.
func (m DifficultyModel) Selected() *config.DifficultyPreset {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector asks for a difficulty preset. It returns nil when
// the user backs out or quits.
func RunDifficultySelector(base config.GemsConfig, cfg core.RuntimeConfig) (*config.DifficultyPreset, core.RuntimeConfig, error) {
	model := NewDifficultyModel(base, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
