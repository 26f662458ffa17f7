package gems

import (
	"github.com/vovakirdan/gem-arcade/internal/core"
	"github.com/vovakirdan/gem-arcade/internal/match3"
	"github.com/vovakirdan/gem-arcade/internal/session"
)

// frame is one still of a replayed cascade.
type frame struct {
	board   *match3.Grid
	flash   []match3.Coord // Matched cells drawn highlighted
	score   int            // Score shown while the frame is up
	ticks   int
	banners []popup // Shown when the frame comes up
}

type popup struct {
	text  string
	color core.Color
	ticks int
}

// playback is a FIFO of frames. The session resolves a swap at once;
// playback spreads the recorded rounds over ticks.
type playback struct {
	frames  []frame
	elapsed int
	started bool
}

func (p *playback) active() bool {
	return len(p.frames) > 0
}

func (p *playback) push(f frame) {
	f.ticks = max(f.ticks, 1)
	p.frames = append(p.frames, f)
}

// tail returns the board and score of the last queued frame, falling back
// to the live session when nothing is queued.
func (p *playback) tail(s *session.Session) (*match3.Grid, int) {
	if n := len(p.frames); n > 0 {
		return p.frames[n-1].board, p.frames[n-1].score
	}
	return s.Board(), s.Stats().Score
}

// bannerAtEnd attaches a popup to the last queued frame.
func (p *playback) bannerAtEnd(b popup) {
	if n := len(p.frames); n > 0 {
		p.frames[n-1].banners = append(p.frames[n-1].banners, b)
	}
}

// begin returns the banners of the current frame the first time it is shown.
func (p *playback) begin() []popup {
	if !p.active() || p.started {
		return nil
	}
	p.started = true
	return p.frames[0].banners
}

// advance counts one tick on the current frame and drops it when done.
func (p *playback) advance() {
	if !p.active() {
		return
	}
	p.elapsed++
	if p.elapsed >= p.frames[0].ticks {
		p.frames = p.frames[1:]
		p.elapsed = 0
		p.started = false
	}
}

// current returns the frame on screen.
func (p *playback) current() (frame, bool) {
	if !p.active() {
		return frame{}, false
	}
	return p.frames[0], true
}
