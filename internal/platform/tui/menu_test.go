package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gem-arcade/internal/config"
	"github.com/vovakirdan/gem-arcade/internal/core"
	"github.com/vovakirdan/gem-arcade/internal/session"
	"github.com/vovakirdan/gem-arcade/internal/storage"
)

func menuUpdate(t *testing.T, m MenuModel, key string) MenuModel {
	t.Helper()
	next, _ := m.Update(keyMsg(key))
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func saveGame(t *testing.T, store *storage.Store, gameID string, score int) {
	t.Helper()
	rec := storage.SessionRecord{
		GameID:    gameID,
		SessionID: "s-" + gameID,
		Result: session.Result{
			Mode:       session.ModeClassic,
			FinalScore: score,
			Stats:      session.Stats{Score: score, MaxCombo: 3, TotalMatched: 42},
		},
	}
	if _, err := store.SaveSession(rec); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
}

func TestMenuListsModes(t *testing.T) {
	store := openStore(t)
	saveGame(t, store, "gems", 1500)
	saveGame(t, store, "gems", 900)

	m := NewMenuModel(store, core.DefaultConfig())
	want := []string{"gems", "gems_endless", "gems_timed", "gems_zen"}
	if len(m.items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(m.items))
	}
	for i, id := range want {
		if m.items[i].GameID != id {
			t.Errorf("item %d = %s, want %s", i, m.items[i].GameID, id)
		}
	}
	if m.items[0].Best != 1500 || m.items[0].Games != 2 {
		t.Errorf("unexpected classic stats %+v", m.items[0])
	}
	if !strings.Contains(m.View(), "best 1,500, 2 played") {
		t.Errorf("view should show the best score:\n%s", m.View())
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	m = menuUpdate(t, m, "up")
	if m.cursor != 0 {
		t.Error("cursor should stop at the top")
	}
	m = menuUpdate(t, m, "down")
	m = menuUpdate(t, m, "down")
	m = menuUpdate(t, m, "enter")
	if sel := m.Selected(); sel == nil || sel.GameID != "gems_timed" {
		t.Errorf("expected gems_timed, got %+v", sel)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := menuUpdate(t, NewMenuModel(nil, core.DefaultConfig()), "tab")
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = menuUpdate(t, NewMenuModel(nil, core.DefaultConfig()), "q")
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}

func TestMenuResize(t *testing.T) {
	next, _ := NewMenuModel(nil, core.DefaultConfig()).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m := next.(MenuModel)
	if cfg := m.Config(); cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config not resized: %+v", cfg)
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"abc", 9, "   abc"},
		{"abc", 3, "abc"},
		{"héllo", 9, "  héllo"},
	}
	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestDifficultyDescribesPresets(t *testing.T) {
	base := config.DefaultGemsConfig()
	m := NewDifficultyModel(base, 80, 24)

	tests := []struct {
		preset config.DifficultyPreset
		want   string
	}{
		{config.DifficultyEasy, "5 gem types, 40 moves, 90s"},
		{config.DifficultyNormal, "6 gem types, 30 moves, 60s"},
		{config.DifficultyHard, "7 gem types, 20 moves, 45s"},
	}
	for _, tt := range tests {
		if got := m.describe(tt.preset); got != tt.want {
			t.Errorf("describe(%s) = %q, want %q", tt.preset, got, tt.want)
		}
	}
	if base.Modes["classic"].Moves != 30 {
		t.Error("describe should not modify the base config")
	}
}

func TestDifficultySelection(t *testing.T) {
	m := NewDifficultyModel(config.DefaultGemsConfig(), 80, 24)
	if m.Selected() != nil {
		t.Fatal("nothing is selected before Enter")
	}

	next, _ := m.Update(keyMsg("down"))
	next, cmd := next.Update(keyMsg("enter"))
	m = next.(DifficultyModel)
	if sel := m.Selected(); sel == nil || *sel != config.DifficultyHard {
		t.Errorf("expected hard, got %v", sel)
	}
	if cmd == nil {
		t.Error("selecting should close the picker")
	}

	next, _ = NewDifficultyModel(config.DefaultGemsConfig(), 80, 24).Update(keyMsg("esc"))
	if !next.(DifficultyModel).WantsBack() {
		t.Error("esc should go back")
	}
}

func TestScoreboardShowsStats(t *testing.T) {
	store := openStore(t)
	saveGame(t, store, "gems", 2500)

	m := NewScoreboardModel(store, 100, 30)
	if len(m.scores) != 1 || m.stats == nil {
		t.Fatalf("expected one score with stats, got %d scores", len(m.scores))
	}
	view := m.View()
	for _, want := range []string{"HIGH SCORES - Gems", "1 game", "best combo x3", "2,500", "best 2,500", "0 moves, 0 specials"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.stats != nil || len(m.scores) != 0 {
		t.Error("the next mode has no scores")
	}
	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("empty modes should say so")
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '◆', core.ColorRed)
	s.SetColored(0, 1, 'x', core.ColorBrightYellow)

	got := RenderScreen(s)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "◆") {
		t.Errorf("first line lost text: %q", lines[0])
	}
	if !strings.Contains(lines[1], "x") {
		t.Errorf("second line lost text: %q", lines[1])
	}
}

func TestUnreadableScoresAreReported(t *testing.T) {
	store := openStore(t)
	store.Close()

	m := NewMenuModel(store, core.DefaultConfig())
	if m.Err() == nil {
		t.Fatal("menu should keep the load error")
	}
	if len(m.items) == 0 {
		t.Error("modes should still be listed")
	}
	if !strings.Contains(m.View(), "Scores unavailable") {
		t.Error("menu view should mention the missing scores")
	}

	sb := NewScoreboardModel(store, 100, 30)
	if sb.Err() == nil {
		t.Fatal("scoreboard should keep the load error")
	}
	if !strings.Contains(sb.View(), "Could not load scores") {
		t.Error("scoreboard view should show the load error")
	}
}

func TestReadableScoresHaveNoError(t *testing.T) {
	store := openStore(t)
	if err := NewMenuModel(store, core.DefaultConfig()).Err(); err != nil {
		t.Errorf("menu Err() = %v", err)
	}
	if err := NewScoreboardModel(store, 100, 30).Err(); err != nil {
		t.Errorf("scoreboard Err() = %v", err)
	}
	if err := NewMenuModel(nil, core.DefaultConfig()).Err(); err != nil {
		t.Errorf("a menu without a store should not report an error, got %v", err)
	}
}
