// Package gems is the terminal front end of the gem puzzle. It turns
// platform input into session calls, replays the resolved cascade frame
// by frame and draws the board, HUD and overlays.
package gems

import (
	"fmt"

	"github.com/vovakirdan/gem-arcade/internal/achievements"
	"github.com/vovakirdan/gem-arcade/internal/config"
	"github.com/vovakirdan/gem-arcade/internal/core"
	"github.com/vovakirdan/gem-arcade/internal/match3"
	"github.com/vovakirdan/gem-arcade/internal/registry"
	"github.com/vovakirdan/gem-arcade/internal/session"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on every Reset.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// Modes lists the registered modes in menu order.
var Modes = []session.Mode{session.ModeClassic, session.ModeTimed, session.ModeEndless, session.ModeZen}

var gameIDs = map[session.Mode]string{
	session.ModeClassic: "gems",
	session.ModeTimed:   "gems_timed",
	session.ModeEndless: "gems_endless",
	session.ModeZen:     "gems_zen",
}

var titles = map[session.Mode]string{
	session.ModeClassic: "Gems",
	session.ModeTimed:   "Gems (Timed)",
	session.ModeEndless: "Gems (Endless)",
	session.ModeZen:     "Gems (Zen)",
}

// GameID returns the registry ID of a mode.
func GameID(m session.Mode) string {
	if id, ok := gameIDs[m]; ok {
		return id
	}
	return "gems_" + string(m)
}

func init() {
	for _, m := range Modes {
		registry.Register(GameID(m), func() registry.Game { return New(m) })
	}
}

// Game implements registry.SessionGame for one mode.
type Game struct {
	mode    session.Mode
	fixed   *config.GemsConfig
	cfg     config.GemsConfig
	runtime core.RuntimeConfig
	scores  session.HighScores
	tracker *achievements.Tracker
	sess    *session.Session

	tick        uint64
	cursor      match3.Coord
	paused      bool
	tooSmall    bool
	idleTicks   int
	secondTicks int
	hint        *match3.Move
	best        int
	newBest     bool

	play   playback
	popups []popup
}

// New creates a game for mode that loads its config on every Reset.
func New(mode session.Mode) *Game {
	return &Game{mode: mode, tracker: achievements.NewTracker()}
}

// NewWithConfig creates a game that always plays with cfg.
func NewWithConfig(mode session.Mode, cfg config.GemsConfig) *Game {
	g := New(mode)
	g.fixed = &cfg
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID(g.mode)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if t, ok := titles[g.mode]; ok {
		return t
	}
	return "Gems (" + string(g.mode) + ")"
}

// UseHighScores sets the store read and written when a session ends.
func (g *Game) UseHighScores(hs session.HighScores) {
	g.scores = hs
}

// Reset deals a new board. Achievements unlocked earlier stay unlocked.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = rt
	g.cfg = g.loadConfig()

	g.tick = 0
	g.cursor = match3.Coord{}
	g.paused = false
	g.idleTicks = 0
	g.secondTicks = 0
	g.hint = nil
	g.newBest = false
	g.play = playback{}
	g.popups = nil

	g.best = 0
	if g.scores != nil {
		if v, err := g.scores.HighScore(session.HighScoreKey(g.mode)); err == nil {
			g.best = v
		}
	}

	sess, err := g.startSession()
	if err != nil {
		g.cfg = config.DefaultGemsConfig()
		if sess, err = g.startSession(); err != nil {
			panic(fmt.Sprintf("gems: default config cannot start mode %s: %v", g.mode, err))
		}
	}
	g.sess = sess

	g.Resize(rt.ScreenW, rt.ScreenH)
}

// Resize adapts the layout to a new terminal size without touching the session.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.tooSmall = w < g.minWidth() || h < g.minHeight()
}

func (g *Game) loadConfig() config.GemsConfig {
	if g.fixed != nil {
		return *g.fixed
	}
	cfg, err := config.LoadGems(configPath)
	if err != nil {
		cfg = config.DefaultGemsConfig()
	}
	if difficultyPreset != "" {
		config.ApplyGemsPreset(&cfg, difficultyPreset)
	}
	return cfg
}

func (g *Game) startSession() (*session.Session, error) {
	opts := []session.Option{session.WithEvents(session.EventFunc(g.onEvent))}
	if g.scores != nil {
		opts = append(opts, session.WithHighScores(g.scores))
	}
	s, err := session.New(g.cfg.ToSessionConfig(), match3.NewRand(g.runtime.Seed), opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Start(g.mode); err != nil {
		return nil, err
	}
	return s, nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.sess.IsOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.advancePopups()
	g.countdown()

	// Input waits until the resolved cascade has been shown
	if g.play.active() {
		g.advancePlayback()
		return core.StepResult{State: g.State()}
	}
	if g.sess.IsOver() {
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.updateHint(in)

	return core.StepResult{State: g.State()}
}

// countdown feeds the session one Tick per second of play.
func (g *Game) countdown() {
	if g.sess.IsOver() {
		return
	}
	g.secondTicks++
	if g.secondTicks < g.runtime.TickRate {
		return
	}
	g.secondTicks = 0
	g.sess.Tick()
}

func (g *Game) handleInput(in core.InputFrame) {
	rows, cols := g.cfg.Board.Rows, g.cfg.Board.Cols

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Wrap(g.cursor.Row-1, rows)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Wrap(g.cursor.Row+1, rows)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Wrap(g.cursor.Col-1, cols)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Wrap(g.cursor.Col+1, cols)
	}

	if x, y, ok := in.Click(); ok {
		if c, ok := g.cellAt(x, y); ok {
			g.cursor = c
			g.selectCell(c)
		}
	}

	switch {
	case in.Has(core.ActionConfirm):
		g.selectCell(g.cursor)
	case in.Has(core.ActionBack):
		g.sess.ClearSelection()
	case in.Has(core.ActionShuffle):
		g.sess.Shuffle()
	}
}

func (g *Game) selectCell(c match3.Coord) {
	res := g.sess.Select(c)
	if res.Swap == nil || !res.Swap.Accepted {
		return
	}
	for _, a := range g.tracker.Evaluate(g.sess.Stats()) {
		g.play.bannerAtEnd(popup{text: "★ " + a.Name, color: core.ColorBrightYellow})
	}
}

// updateHint shows a hint on request or after the idle delay and hides it on any other input.
func (g *Game) updateHint(in core.InputFrame) {
	if in.Has(core.ActionHint) {
		g.showHint()
		return
	}
	if !in.Empty() {
		g.idleTicks = 0
		g.hint = nil
		return
	}

	g.idleTicks++
	idle := g.cfg.Pacing.HintIdleSeconds * g.runtime.TickRate
	if idle > 0 && g.idleTicks >= idle && g.hint == nil {
		g.showHint()
	}
}

func (g *Game) showHint() {
	if m, ok := g.sess.Hint(); ok {
		g.hint = &m
	}
}

// onEvent turns session events into playback frames and popups.
// It only reads the session.
func (g *Game) onEvent(evt session.Event) {
	pacing := g.cfg.Pacing
	switch e := evt.(type) {
	case session.SwapAcceptedEvent:
		g.hint = nil
		g.play.push(frame{board: g.sess.Board(), score: g.sess.Stats().Score, ticks: pacing.SwapFrames})

	case session.RoundResolvedEvent:
		before, score := g.play.tail(g.sess)
		flashTicks := pacing.RoundFrames / 2
		flash := frame{board: before, flash: e.Round.Matched, score: score, ticks: flashTicks}
		if d := e.Round.ComboDepth; d > 1 {
			flash.banners = append(flash.banners, popup{text: fmt.Sprintf("Combo x%d!", d), color: core.ColorBrightMagenta})
		}
		g.play.push(flash)
		g.play.push(frame{board: e.Round.Board, score: e.Score, ticks: pacing.RoundFrames - flashTicks})

	case session.ReshuffledEvent:
		g.hint = nil
		text := "No moves left, reshuffling"
		if e.Manual {
			text = "Shuffled!"
		}
		_, score := g.play.tail(g.sess)
		g.play.push(frame{
			board:   e.Board,
			score:   score,
			ticks:   pacing.RoundFrames,
			banners: []popup{{text: text, color: core.ColorBrightCyan}},
		})

	case session.SwapRejectedEvent:
		if e.Reason == session.RejectNoMatch {
			g.showPopup(popup{text: "No match", color: core.ColorGray})
		}

	case session.EndedEvent:
		g.best = e.Result.HighScore
		g.newBest = e.Result.NewHighScore
	}
}

func (g *Game) advancePlayback() {
	for _, b := range g.play.begin() {
		g.showPopup(b)
	}
	g.play.advance()
}

func (g *Game) showPopup(p popup) {
	p.ticks = max(g.cfg.Pacing.PopupFrames, 1)
	g.popups = append(g.popups, p)
}

func (g *Game) advancePopups() {
	if len(g.popups) == 0 {
		return
	}
	g.popups[0].ticks--
	if g.popups[0].ticks <= 0 {
		g.popups = g.popups[1:]
	}
}

// EndSession finishes a mode without a budget. Bounded modes are left
// running so an abandoned game never counts.
func (g *Game) EndSession() {
	if g.sess == nil || g.sess.Rules().Bounded() {
		return
	}
	g.sess.End()
}

// Finished returns the session result once the session is over.
func (g *Game) Finished() (string, session.Result, bool) {
	if g.sess == nil {
		return "", session.Result{}, false
	}
	res, ok := g.sess.Result()
	return g.sess.ID(), res, ok
}

// State returns the current game state.
// The game is reported over only after the last cascade has been shown.
func (g *Game) State() core.GameState {
	if g.sess == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.sess.Stats().Score,
		GameOver: g.sess.IsOver() && !g.play.active(),
		Paused:   g.paused || g.tooSmall,
	}
}

var _ registry.SessionGame = (*Game)(nil)
