package gems

import (
	"fmt"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/gem-arcade/internal/core"
	"github.com/vovakirdan/gem-arcade/internal/match3"
	"github.com/vovakirdan/gem-arcade/internal/session"
)

const (
	cellWidth = 3 // Marker, glyph, marker
	hudHeight = 3
)

var gemGlyphs = []rune{'◆', '●', '▲', '■', '★', '♥', '✚', '♣'}

var gemColors = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorWhite,
}

// gemLook returns the glyph and colour of a cell. Specials keep their
// type colour and swap the glyph.
func gemLook(c match3.Cell) (rune, core.Color) {
	if c.IsEmpty() {
		return ' ', core.ColorDefault
	}
	color := gemColors[c.Type%len(gemColors)]
	switch c.Special {
	case match3.SpecialStriped:
		if c.Orientation == match3.Vertical {
			return '⇕', color.Bright()
		}
		return '⇔', color.Bright()
	case match3.SpecialBomb:
		return '✹', color.Bright()
	case match3.SpecialWrapped:
		return '▣', color.Bright()
	}
	return gemGlyphs[c.Type%len(gemGlyphs)], color
}

func (g *Game) minWidth() int {
	return max(g.cfg.Board.Cols*cellWidth+2, 36)
}

func (g *Game) minHeight() int {
	return hudHeight + g.cfg.Board.Rows + 2 + 2
}

// boardRect is the board frame, border included.
func (g *Game) boardRect() core.Rect {
	w := g.cfg.Board.Cols*cellWidth + 2
	h := g.cfg.Board.Rows + 2
	return core.NewRect((g.runtime.ScreenW-w)/2, hudHeight, w, h)
}

// cellAt maps a screen position to the board cell drawn there.
func (g *Game) cellAt(x, y int) (match3.Coord, bool) {
	inner := g.boardRect().Inset(1)
	if !inner.Contains(x, y) {
		return match3.Coord{}, false
	}
	return match3.At(y-inner.Y, (x-inner.X)/cellWidth), true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.boardRect()
	g.renderHUD(dst, board)
	g.renderBoard(dst, board)

	if len(g.popups) > 0 {
		p := g.popups[0]
		dst.DrawTextCenteredColored(board.Bottom(), p.text, p.color)
	}
	dst.DrawTextCenteredColored(dst.Height()-1, g.Controls(), core.ColorGray)

	g.renderOverlays(dst, board)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.runtime.ScreenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.minWidth(), g.minHeight()))
}

func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	stats := g.sess.Stats()
	score := stats.Score
	if f, ok := g.play.current(); ok {
		score = f.score
	}

	dst.DrawTextCenteredColored(0, g.Title(), core.ColorBrightCyan)

	left := "Score " + humanize.Comma(int64(score))
	dst.DrawTextColored(board.X, 1, left, core.ColorBrightWhite)

	var budget string
	switch rules := g.sess.Rules(); {
	case rules.MoveLimited():
		budget = fmt.Sprintf("Moves %d", stats.MovesRemaining)
	case rules.TimeLimited():
		budget = fmt.Sprintf("Time %d:%02d", stats.TimeRemaining/60, stats.TimeRemaining%60)
	default:
		budget = "∞"
	}
	budgetColor := core.ColorBrightWhite
	if lowBudget(g.sess.Rules(), stats) {
		budgetColor = core.ColorBrightRed
	}
	dst.DrawTextColored(board.Right()-utf8.RuneCountInString(budget), 1, budget, budgetColor)

	info := fmt.Sprintf("Best %s  Max combo x%d  Matched %d",
		humanize.Comma(int64(max(g.best, score))), stats.MaxCombo, stats.TotalMatched)
	dst.DrawTextCenteredColored(2, info, core.ColorGray)
}

// lowBudget reports whether the remaining moves or seconds should be drawn as a warning.
func lowBudget(r session.ModeRules, s session.Stats) bool {
	return (r.MoveLimited() && s.MovesRemaining <= 5) || (r.TimeLimited() && s.TimeRemaining <= 10)
}

func (g *Game) renderBoard(dst *core.Screen, rect core.Rect) {
	dst.DrawBox(rect, core.ColorGray)

	var grid *match3.Grid
	flash := map[match3.Coord]bool{}
	f, playing := g.play.current()
	if playing {
		grid = f.board
		for _, c := range f.flash {
			flash[c] = true
		}
	} else {
		grid = g.sess.Board()
	}

	hinted := map[match3.Coord]bool{}
	if g.hint != nil && !playing {
		hinted[g.hint.From] = true
		hinted[g.hint.To] = true
	}
	selected, selecting := g.sess.Selection()

	inner := rect.Inset(1)
	grid.ForEach(func(c match3.Coord, cell match3.Cell) {
		x := inner.X + c.Col*cellWidth
		y := inner.Y + c.Row

		glyph, color := gemLook(cell)
		left, right := ' ', ' '
		markColor := core.ColorBrightWhite

		switch {
		case flash[c]:
			glyph, color = '✺', core.ColorBrightWhite
		case selecting && c == selected:
			left, right = '[', ']'
			color = color.Bright()
		case hinted[c]:
			left, right = '·', '·'
			markColor = core.ColorBrightYellow
		}
		if !playing && c == g.cursor {
			if left == '[' {
				left, right = '»', '«'
			} else {
				left, right = '›', '‹'
			}
		}

		dst.SetColored(x, y, left, markColor)
		dst.SetColored(x+1, y, glyph, color)
		dst.SetColored(x+2, y, right, markColor)
	})
}

func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	if g.paused {
		drawOverlay(dst, board, core.ColorBrightWhite, "PAUSED", "Press P to resume")
		return
	}

	if !g.State().GameOver {
		return
	}

	res, _ := g.sess.Result()
	headline := "GAME OVER"
	switch rules := g.sess.Rules(); {
	case rules.MoveLimited():
		headline = "OUT OF MOVES"
	case rules.TimeLimited():
		headline = "TIME'S UP!"
	}

	lines := []string{headline, "Final score: " + humanize.Comma(int64(res.FinalScore))}
	color := core.ColorBrightWhite
	if g.newBest {
		lines = append(lines, "NEW HIGH SCORE!")
		color = core.ColorBrightYellow
	} else {
		lines = append(lines, "Best: "+humanize.Comma(int64(g.best)))
	}
	lines = append(lines, "Press R to restart")
	drawOverlay(dst, board, color, lines...)
}

// drawOverlay draws a boxed message centered on area.
func drawOverlay(dst *core.Screen, area core.Rect, color core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	box := area.CenterIn(maxLen+4, len(lines)+2)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	for i, line := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		dst.DrawTextColored(x, box.Y+1+i, line, color)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Enter/Click: Select | H: Hint | X: Shuffle | P: Pause | Q: Quit"
}
