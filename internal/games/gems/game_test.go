package gems

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/gem-arcade/internal/achievements"
	"github.com/vovakirdan/gem-arcade/internal/config"
	"github.com/vovakirdan/gem-arcade/internal/core"
	"github.com/vovakirdan/gem-arcade/internal/match3"
	"github.com/vovakirdan/gem-arcade/internal/registry"
	"github.com/vovakirdan/gem-arcade/internal/session"
)

func testConfig() config.GemsConfig {
	cfg := config.DefaultGemsConfig()
	cfg.Pacing = config.PacingConfig{SwapFrames: 2, RoundFrames: 4, PopupFrames: 3, HintIdleSeconds: 1}
	return cfg
}

func runtimeConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: seed}
}

func newGame(t *testing.T, mode session.Mode, cfg config.GemsConfig) *Game {
	t.Helper()
	g := NewWithConfig(mode, cfg)
	g.Reset(runtimeConfig(42))
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func idle(g *Game, n int) {
	for range n {
		g.Step(core.NewInputFrame())
	}
}

func drain(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 1000 && g.play.active(); i++ {
		g.Step(core.NewInputFrame())
	}
	if g.play.active() {
		t.Fatal("playback never finished")
	}
}

// playHint swaps the hinted move through cursor and confirm presses.
func playHint(t *testing.T, g *Game) match3.Move {
	t.Helper()
	m, ok := g.sess.Hint()
	if !ok {
		t.Fatal("board has no legal move")
	}
	g.cursor = m.From
	press(g, core.ActionConfirm)
	g.cursor = m.To
	press(g, core.ActionConfirm)
	return m
}

func render(g *Game) string {
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	return screen.String()
}

func TestRegisteredModes(t *testing.T) {
	for _, m := range Modes {
		id := GameID(m)
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
		if g.ID() != id || g.Title() != titles[m] {
			t.Errorf("%s: got ID %q title %q", id, g.ID(), g.Title())
		}
		if _, ok := g.(registry.SessionGame); !ok {
			t.Errorf("%s should be a SessionGame", id)
		}
	}
}

func TestResetDealsPlayableBoard(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())
	snap := g.Snapshot()

	board := match3.FromTypes(snap.Board)
	if !match3.FindMatches(board).Empty() || !match3.HasLegalMove(board) {
		t.Errorf("dealt board is not playable:\n%s", board)
	}
	if snap.State != StatePlaying || snap.MovesRemaining != 30 || snap.Score != 0 {
		t.Errorf("unexpected start snapshot %+v", snap)
	}
}

func TestSwapPlaysBackCascade(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())
	m := playHint(t, g)

	stats := g.sess.Stats()
	want := 1 + 2*stats.MaxCombo + stats.Reshuffles
	if len(g.play.frames) != want {
		t.Errorf("expected %d frames for %d rounds, got %d", want, stats.MaxCombo, len(g.play.frames))
	}
	last := g.play.frames[len(g.play.frames)-1]
	if !last.board.Equal(g.sess.Board()) {
		t.Error("the last frame should show the settled board")
	}
	if g.Snapshot().State != StateAnimating {
		t.Errorf("State = %s, expected animating", g.Snapshot().State)
	}

	// Input is ignored while the cascade is shown
	press(g, core.ActionRight)
	if g.cursor != m.To {
		t.Errorf("cursor moved during playback to %v", g.cursor)
	}

	drain(t, g)
	snap := g.Snapshot()
	if snap.State != StatePlaying || snap.Score == 0 || snap.MovesRemaining != 29 {
		t.Errorf("unexpected snapshot after playback %+v", snap)
	}
}

func TestPlaybackShowsFrameScore(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())
	playHint(t, g)

	if !strings.Contains(render(g), "Score 0") {
		t.Error("the swap frame should still show the old score")
	}
	drain(t, g)
	want := "Score " + humanize.Comma(int64(g.sess.Stats().Score))
	if !strings.Contains(render(g), want) {
		t.Errorf("expected %q after playback", want)
	}
}

func TestIdleHint(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())

	idle(g, 9)
	if g.hint != nil {
		t.Fatal("hint shown before the idle delay")
	}
	idle(g, 1)
	want, _ := g.sess.Hint()
	if g.hint == nil || *g.hint != want {
		t.Fatalf("hint = %v, expected %v", g.hint, want)
	}
	if !strings.Contains(render(g), "·") {
		t.Error("hinted cells should be marked")
	}

	press(g, core.ActionUp)
	if g.hint != nil {
		t.Error("input should hide the hint")
	}
}

func TestHintAction(t *testing.T) {
	cfg := testConfig()
	cfg.Pacing.HintIdleSeconds = 0
	g := newGame(t, session.ModeClassic, cfg)

	idle(g, 100)
	if g.hint != nil {
		t.Fatal("idle hints are disabled")
	}
	press(g, core.ActionHint)
	if g.hint == nil {
		t.Fatal("H should show a hint")
	}
	if snap := g.Snapshot(); snap.Hint == nil || *snap.Hint != *g.hint {
		t.Errorf("snapshot hint %v", snap.Hint)
	}
}

func TestTimedCountdown(t *testing.T) {
	cfg := testConfig()
	cfg.Modes["timed"] = config.ModeConfig{Seconds: 2}
	g := newGame(t, session.ModeTimed, cfg)

	idle(g, 10)
	if got := g.Snapshot().TimeRemaining; got != 1 {
		t.Fatalf("TimeRemaining = %d after one second", got)
	}
	if !strings.Contains(render(g), "Time 0:01") {
		t.Error("HUD should show the countdown")
	}

	idle(g, 10)
	if !g.State().GameOver || g.Snapshot().State != StateGameOver {
		t.Fatalf("timed game should be over, state %+v", g.State())
	}
	if !strings.Contains(render(g), "TIME'S UP!") {
		t.Error("expected the time-up overlay")
	}
	id, res, ok := g.Finished()
	if !ok || id == "" || res.Mode != session.ModeTimed {
		t.Errorf("Finished() = %q, %+v, %v", id, res, ok)
	}
}

func TestPauseStopsCountdown(t *testing.T) {
	cfg := testConfig()
	cfg.Modes["timed"] = config.ModeConfig{Seconds: 2}
	g := newGame(t, session.ModeTimed, cfg)

	press(g, core.ActionPause)
	idle(g, 30)
	if g.Snapshot().TimeRemaining != 2 || g.Snapshot().State != StatePaused {
		t.Fatalf("pause should freeze the timer, snapshot %+v", g.Snapshot())
	}
	if !g.State().Paused || !strings.Contains(render(g), "PAUSED") {
		t.Error("paused state should be reported and drawn")
	}

	press(g, core.ActionPause)
	idle(g, 10)
	if g.Snapshot().TimeRemaining != 1 {
		t.Errorf("timer should resume, got %d", g.Snapshot().TimeRemaining)
	}
}

func TestEndSession(t *testing.T) {
	zen := newGame(t, session.ModeZen, testConfig())
	playHint(t, zen)
	drain(t, zen)
	zen.EndSession()
	_, res, ok := zen.Finished()
	if !ok || res.FinalScore == 0 {
		t.Errorf("zen should end on request, got %+v, %v", res, ok)
	}

	classic := newGame(t, session.ModeClassic, testConfig())
	classic.EndSession()
	if _, _, ok := classic.Finished(); ok {
		t.Error("a bounded mode should not be ended early")
	}
}

func TestGameOverOverlay(t *testing.T) {
	cfg := testConfig()
	cfg.Modes["classic"] = config.ModeConfig{Moves: 1}
	g := newGame(t, session.ModeClassic, cfg)

	playHint(t, g)
	if g.State().GameOver {
		t.Fatal("game over should wait for the playback")
	}
	drain(t, g)

	if !g.State().GameOver {
		t.Fatal("single-move game should be over")
	}
	out := render(g)
	for _, want := range []string{"OUT OF MOVES", "NEW HIGH SCORE!", "Press R to restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("overlay is missing %q", want)
		}
	}

	g.Reset(runtimeConfig(43))
	if g.State().GameOver || g.State().Score != 0 {
		t.Errorf("Reset should start over, got %+v", g.State())
	}
}

func TestHighScoreFromStore(t *testing.T) {
	hs := session.NewMemoryHighScores()
	if err := hs.SetHighScore(session.HighScoreKey(session.ModeClassic), 1234); err != nil {
		t.Fatal(err)
	}

	g := NewWithConfig(session.ModeClassic, testConfig())
	g.UseHighScores(hs)
	g.Reset(runtimeConfig(42))

	if !strings.Contains(render(g), "Best 1,234") {
		t.Error("HUD should show the stored best score")
	}
}

func TestClickSelects(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())
	inner := g.boardRect().Inset(1)

	in := core.NewInputFrame()
	in.SetClick(inner.X+2*cellWidth+1, inner.Y+3)
	g.Step(in)

	sel, ok := g.sess.Selection()
	if !ok || sel != match3.At(3, 2) || g.cursor != sel {
		t.Errorf("click should select (3,2), got %v %v cursor %v", sel, ok, g.cursor)
	}

	in.Clear()
	in.SetClick(0, 0)
	g.Step(in)
	if sel, _ := g.sess.Selection(); sel != match3.At(3, 2) {
		t.Error("a click outside the board should do nothing")
	}

	press(g, core.ActionBack)
	if _, ok := g.sess.Selection(); ok {
		t.Error("Back should drop the selection")
	}
}

func TestRejectedSwapPopup(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())
	board := g.sess.Board()

	var from, to match3.Coord
	found := false
	board.ForEach(func(c match3.Coord, _ match3.Cell) {
		right := match3.At(c.Row, c.Col+1)
		if !found && board.InBounds(right) && !match3.WouldMatch(board, c, right) {
			from, to, found = c, right, true
		}
	})
	if !found {
		t.Fatal("no non-matching pair on the board")
	}

	g.cursor = from
	press(g, core.ActionConfirm)
	g.cursor = to
	press(g, core.ActionConfirm)

	if len(g.popups) == 0 || g.popups[0].text != "No match" {
		t.Fatalf("expected a no-match popup, got %+v", g.popups)
	}
	if g.Snapshot().MovesRemaining != 30 {
		t.Error("a rejected swap should cost nothing")
	}
	idle(g, 3)
	if len(g.popups) != 0 {
		t.Error("popup should expire after PopupFrames ticks")
	}
}

func TestShuffleAction(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())

	press(g, core.ActionShuffle)
	if g.sess.Stats().Reshuffles != 1 || !g.play.active() {
		t.Fatal("shuffle should queue a reshuffle frame")
	}
	idle(g, 1)
	if len(g.popups) == 0 || g.popups[0].text != "Shuffled!" {
		t.Errorf("expected a shuffle popup, got %+v", g.popups)
	}
	drain(t, g)
	if g.Snapshot().MovesRemaining != 30 {
		t.Error("shuffle should be free")
	}
}

func TestAchievementPopup(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())
	playHint(t, g)

	var seen []string
	for i := 0; i < 1000 && (g.play.active() || len(g.popups) > 0); i++ {
		for _, p := range g.popups {
			seen = append(seen, p.text)
		}
		g.Step(core.NewInputFrame())
	}

	if !g.tracker.Unlocked(achievements.FirstMatch) {
		t.Fatal("first match should be unlocked")
	}
	joined := strings.Join(seen, "|")
	if !strings.Contains(joined, "★ First Match") {
		t.Errorf("expected the achievement popup, saw %q", joined)
	}

	g.Reset(runtimeConfig(7))
	if g.Snapshot().Achievements == 0 {
		t.Error("achievements should survive a restart")
	}
}

func TestTooSmall(t *testing.T) {
	g := NewWithConfig(session.ModeClassic, testConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 10, Seed: 1})

	if !g.State().Paused || g.Snapshot().State != StatePausedSmall {
		t.Errorf("small window should pause, got %+v", g.State())
	}
	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small message")
	}
}

func TestResizeKeepsSession(t *testing.T) {
	g := newGame(t, session.ModeClassic, testConfig())
	playHint(t, g)
	drain(t, g)
	id := g.sess.ID()
	moves := g.sess.Stats().MovesRemaining

	g.Resize(20, 10)
	if !g.State().Paused {
		t.Error("shrinking below the minimum should pause")
	}
	g.Resize(100, 30)
	if g.State().Paused {
		t.Error("growing back should resume")
	}
	if g.sess.ID() != id || g.sess.Stats().MovesRemaining != moves {
		t.Error("resize should not restart the session")
	}
	if got := g.boardRect().X; got != (100-g.boardRect().W)/2 {
		t.Errorf("board not recentered, x = %d", got)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newGame(t, session.ModeClassic, testConfig())
		for range 3 {
			playHint(t, g)
			drain(t, g)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and input should give the same game:\n%+v\n%+v", a, b)
	}
}

func TestGemLook(t *testing.T) {
	tests := []struct {
		cell  match3.Cell
		glyph rune
		color core.Color
	}{
		{match3.Gem(0), '◆', core.ColorRed},
		{match3.Gem(4), '★', core.ColorBlue},
		{match3.Cell{Type: 1, Special: match3.SpecialStriped, Orientation: match3.Horizontal}, '⇔', core.ColorOrange},
		{match3.Cell{Type: 2, Special: match3.SpecialStriped, Orientation: match3.Vertical}, '⇕', core.ColorBrightYellow},
		{match3.Cell{Type: 3, Special: match3.SpecialBomb}, '✹', core.ColorBrightGreen},
		{match3.EmptyCell(), ' ', core.ColorDefault},
	}
	for _, tt := range tests {
		glyph, color := gemLook(tt.cell)
		if glyph != tt.glyph || color != tt.color {
			t.Errorf("gemLook(%+v) = %q/%d, expected %q/%d", tt.cell, glyph, color, tt.glyph, tt.color)
		}
	}
}
