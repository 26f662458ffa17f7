// Package session owns one game of gems: the board, the mode budget and the
// score counters. It validates player actions, drives the cascade resolver,
// folds round outcomes into counters and publishes events to collaborators.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gem-arcade/internal/match3"
)

// RejectReason explains why a swap was not accepted.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectNotStarted
	RejectGameOver
	RejectResolving
	RejectNoMovesLeft
	RejectNotAdjacent
	RejectNoMatch
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectNotStarted:
		return "not started"
	case RejectGameOver:
		return "game over"
	case RejectResolving:
		return "resolving"
	case RejectNoMovesLeft:
		return "no moves left"
	case RejectNotAdjacent:
		return "not adjacent"
	case RejectNoMatch:
		return "no match"
	default:
		return "unknown"
	}
}

// SwapOutcome is the result of AttemptSwap.
type SwapOutcome struct {
	Accepted   bool
	Reason     RejectReason // RejectNone when accepted
	Rounds     []match3.RoundOutcome
	ScoreDelta int
	Reshuffled bool // The settled board was dead and got reshuffled
	Ended      bool // The swap spent the last move
}

// Stats are the running counters of a session.
type Stats struct {
	Score           int
	MovesRemaining  int // Unlimited in modes without a move budget
	TimeRemaining   int // Unlimited in modes without a countdown
	ComboDepth      int // Depth of the round being published, 0 between actions
	MaxCombo        int
	TotalMatched    int
	SpecialsCreated int
	MovesMade       int
	Reshuffles      int
}

// Result is the outcome of a finished session.
type Result struct {
	Mode         Mode
	FinalScore   int
	HighScore    int // Best of the stored value and FinalScore
	NewHighScore bool
	Stats        Stats
}

// Config holds the board rules and the available modes.
type Config struct {
	Params match3.Params
	Modes  map[Mode]ModeRules
}

// DefaultConfig returns the 8x8 board with the built-in modes.
func DefaultConfig() Config {
	return Config{
		Params: match3.DefaultParams(),
		Modes:  DefaultModes(),
	}
}

// Validate checks the board params and every mode budget.
func (c Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if len(c.Modes) == 0 {
		return errors.New("session: no modes configured")
	}
	for m, r := range c.Modes {
		if err := validateRules(m, r); err != nil {
			return err
		}
	}
	return nil
}

// ErrResolving is returned by Start when called from an event sink mid-cascade.
var ErrResolving = errors.New("session: cascade in progress")

// Option configures a Session.
type Option func(*Session)

// WithEvents sets the event sink.
func WithEvents(sink EventSink) Option {
	return func(s *Session) {
		if sink != nil {
			s.events = sink
		}
	}
}

// WithHighScores sets the high score store consulted when a session ends.
func WithHighScores(hs HighScores) Option {
	return func(s *Session) {
		s.scores = hs
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithInitialBoard makes every Start deal a copy of g instead of a generated board.
func WithInitialBoard(g *match3.Grid) Option {
	return func(s *Session) {
		s.initial = g.Clone()
	}
}

// Session is a single-player game. It is not safe for concurrent use;
// callers drive it from one goroutine.
type Session struct {
	id  string
	cfg Config
	gen *match3.Generator
	res *match3.Resolver

	events  EventSink
	scores  HighScores
	log     *log.Logger
	initial *match3.Grid

	mode      Mode
	rules     ModeRules
	board     *match3.Grid
	stats     Stats
	result    Result
	started   bool
	over      bool
	resolving bool

	selected    match3.Coord
	hasSelected bool
}

// New creates a session. No board exists until Start.
func New(cfg Config, rng match3.Rand, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("session: nil random source")
	}

	s := &Session{
		id:     uuid.NewString(),
		cfg:    cfg,
		gen:    match3.NewGenerator(cfg.Params, rng),
		res:    match3.NewResolver(cfg.Params, rng),
		events: discardSink{},
		log:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.initial != nil && (s.initial.Rows() != cfg.Params.Rows || s.initial.Cols() != cfg.Params.Cols) {
		return nil, fmt.Errorf("session: initial board is %dx%d, params want %dx%d",
			s.initial.Rows(), s.initial.Cols(), cfg.Params.Rows, cfg.Params.Cols)
	}
	return s, nil
}

// Start deals a board for mode and resets every counter.
// Calling it again starts a new game in the same session.
func (s *Session) Start(mode Mode) error {
	if s.resolving {
		return ErrResolving
	}
	rules, ok := s.cfg.Modes[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	var (
		board    *match3.Grid
		playable bool
	)
	if s.initial != nil {
		board = s.initial.Clone()
		playable = match3.IsPlayable(board)
	} else {
		var rep match3.Report
		board, rep = s.gen.Generate()
		playable = rep.Playable
		if !playable {
			s.log.Warn("board generation exhausted retries", "attempts", rep.Attempts)
		}
	}

	s.mode = mode
	s.rules = rules
	s.board = board
	s.stats = Stats{MovesRemaining: rules.Moves, TimeRemaining: rules.Seconds}
	s.result = Result{}
	s.started = true
	s.over = false
	s.hasSelected = false

	s.log.Debug("session started", "id", s.id, "mode", mode, "moves", rules.Moves, "seconds", rules.Seconds)
	s.events.Publish(StartedEvent{
		SessionID: s.id,
		Mode:      mode,
		Rules:     rules,
		Board:     board.Clone(),
		Playable:  playable,
	})
	return nil
}

func (s *Session) rejectReason(a, b match3.Coord) RejectReason {
	switch {
	case !s.started:
		return RejectNotStarted
	case s.resolving:
		return RejectResolving
	case s.rules.MoveLimited() && s.stats.MovesRemaining <= 0:
		return RejectNoMovesLeft
	case s.over:
		return RejectGameOver
	case !match3.Adjacent(a, b):
		return RejectNotAdjacent
	case !match3.WouldMatch(s.board, a, b):
		return RejectNoMatch
	}
	return RejectNone
}

// AttemptSwap validates and, when legal, plays the swap of a and b through
// to a settled board. Rejected swaps change nothing.
func (s *Session) AttemptSwap(a, b match3.Coord) SwapOutcome {
	move := match3.Move{From: a, To: b}
	if reason := s.rejectReason(a, b); reason != RejectNone {
		s.events.Publish(SwapRejectedEvent{Move: move, Reason: reason})
		return SwapOutcome{Reason: reason}
	}

	s.resolving = true
	defer func() { s.resolving = false }()

	s.board.Swap(a, b)
	s.stats.MovesMade++
	if s.rules.MoveLimited() {
		s.stats.MovesRemaining--
	}
	s.events.Publish(SwapAcceptedEvent{Move: move, MovesRemaining: s.stats.MovesRemaining})

	out := SwapOutcome{Accepted: true}
	out.Rounds = s.res.Resolve(s.board)
	for _, round := range out.Rounds {
		s.stats.Score += round.RoundScore
		s.stats.TotalMatched += round.MatchedCount
		s.stats.SpecialsCreated += round.SpecialsCreated
		s.stats.MaxCombo = max(s.stats.MaxCombo, round.ComboDepth)
		s.stats.ComboDepth = round.ComboDepth
		out.ScoreDelta += round.RoundScore
		s.events.Publish(RoundResolvedEvent{Round: round, Score: s.stats.Score})
	}
	s.stats.ComboDepth = 0

	s.log.Debug("swap resolved", "id", s.id, "move", move, "rounds", len(out.Rounds), "delta", out.ScoreDelta)

	if s.budgetSpent() {
		s.finish()
		out.Ended = true
		return out
	}
	out.Reshuffled = s.ensureLegalMove()
	return out
}

func (s *Session) budgetSpent() bool {
	return (s.rules.MoveLimited() && s.stats.MovesRemaining <= 0) ||
		(s.rules.TimeLimited() && s.stats.TimeRemaining <= 0)
}

// ensureLegalMove reshuffles a dead board and reports whether it did.
func (s *Session) ensureLegalMove() bool {
	if match3.HasLegalMove(s.board) {
		return false
	}
	s.reshuffle(false)
	return true
}

func (s *Session) reshuffle(manual bool) {
	board, rep := s.gen.Reshuffle(s.board)
	s.board = board
	s.stats.Reshuffles++
	if !rep.Playable {
		s.log.Warn("reshuffle exhausted retries", "id", s.id, "attempts", rep.Attempts)
	}
	s.events.Publish(ReshuffledEvent{Manual: manual, Board: board.Clone(), Playable: rep.Playable})
}

// Tick advances the countdown by one second in time-limited modes and
// repeats the idle deadlock check. It reports whether the session is still
// in play afterwards; ticks before Start or after the end do nothing.
func (s *Session) Tick() bool {
	if !s.started || s.over {
		return false
	}
	if s.resolving {
		return true
	}

	s.resolving = true
	defer func() { s.resolving = false }()

	if s.rules.TimeLimited() {
		s.stats.TimeRemaining--
		if s.stats.TimeRemaining <= 0 {
			s.stats.TimeRemaining = 0
			s.finish()
			return false
		}
	}
	s.ensureLegalMove()
	return true
}

// Select applies click semantics: the first cell is selected, the same cell
// again deselects, an adjacent cell triggers a swap attempt, any other cell
// moves the selection.
func (s *Session) Select(c match3.Coord) SelectResult {
	if !s.started || s.over || s.resolving {
		return s.selection(nil)
	}
	if !s.board.InBounds(c) {
		panic(fmt.Sprintf("session: selection %v out of bounds", c))
	}

	switch {
	case !s.hasSelected:
		s.selected, s.hasSelected = c, true
	case s.selected == c:
		s.hasSelected = false
	case match3.Adjacent(s.selected, c):
		from := s.selected
		s.hasSelected = false
		out := s.AttemptSwap(from, c)
		return s.selection(&out)
	default:
		s.selected = c
	}
	return s.selection(nil)
}

// SelectResult describes the selection after Select.
type SelectResult struct {
	Selected  match3.Coord
	Selecting bool         // A cell is currently selected
	Swap      *SwapOutcome // Set when the click attempted a swap
}

func (s *Session) selection(out *SwapOutcome) SelectResult {
	return SelectResult{Selected: s.selected, Selecting: s.hasSelected, Swap: out}
}

// Selection returns the selected cell, if any.
func (s *Session) Selection() (match3.Coord, bool) {
	return s.selected, s.hasSelected
}

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() {
	s.hasSelected = false
}

// Hint returns the first legal move in scan order.
func (s *Session) Hint() (match3.Move, bool) {
	if !s.started || s.over {
		return match3.Move{}, false
	}
	return match3.FindLegalMove(s.board)
}

// Shuffle replaces the board with a permutation on player request.
// It costs no move and is refused before Start, after the end and mid-cascade.
func (s *Session) Shuffle() bool {
	if !s.started || s.over || s.resolving {
		return false
	}
	s.resolving = true
	defer func() { s.resolving = false }()

	s.hasSelected = false
	s.reshuffle(true)
	return true
}

// End finishes a running session, typically an unbounded mode on quit,
// and returns its result. It does nothing mid-cascade or once ended.
func (s *Session) End() Result {
	if s.started && !s.over && !s.resolving {
		s.resolving = true
		s.finish()
		s.resolving = false
	}
	return s.result
}

func (s *Session) finish() {
	s.over = true
	s.hasSelected = false

	key := HighScoreKey(s.mode)
	prev := 0
	if s.scores != nil {
		v, err := s.scores.HighScore(key)
		if err != nil {
			s.log.Warn("cannot read high score", "key", key, "err", err)
		} else {
			prev = v
		}
	}

	res := Result{
		Mode:         s.mode,
		FinalScore:   s.stats.Score,
		HighScore:    max(prev, s.stats.Score),
		NewHighScore: s.stats.Score > prev,
		Stats:        s.stats,
	}
	if res.NewHighScore && s.scores != nil {
		if err := s.scores.SetHighScore(key, res.FinalScore); err != nil {
			s.log.Warn("cannot store high score", "key", key, "err", err)
		}
	}
	s.result = res

	s.log.Info("session ended", "id", s.id, "mode", s.mode, "score", res.FinalScore,
		"high", res.HighScore, "new_high", res.NewHighScore)
	s.events.Publish(EndedEvent{Result: res})
}

// IsOver reports whether the session has ended.
func (s *Session) IsOver() bool {
	return s.over
}

// Started reports whether a board has been dealt.
func (s *Session) Started() bool {
	return s.started
}

// Result returns the final result once the session is over.
func (s *Session) Result() (Result, bool) {
	return s.result, s.over
}

// Board returns a copy of the current board, or nil before Start.
func (s *Session) Board() *match3.Grid {
	if s.board == nil {
		return nil
	}
	return s.board.Clone()
}

// Stats returns a snapshot of the counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// Rules returns the budget of the active mode.
func (s *Session) Rules() ModeRules {
	return s.rules
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Config returns the configuration the session was built with.
func (s *Session) Config() Config {
	return s.cfg
}
