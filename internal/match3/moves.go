package match3

import "fmt"

// Move is a swap of two adjacent cells.
type Move struct {
	From Coord
	To   Coord
}

// String returns "from->to".
func (m Move) String() string {
	return fmt.Sprintf("%v->%v", m.From, m.To)
}

// WouldMatch reports whether swapping a and b produces at least one run.
// The grid is left exactly as it was: the second swap exchanges the
// post-swap contents back. Non-adjacent pairs are a programming error.
func WouldMatch(g *Grid, a, b Coord) bool {
	if !Adjacent(a, b) {
		panic(fmt.Sprintf("match3: WouldMatch on non-adjacent cells %v and %v", a, b))
	}
	g.Swap(a, b)
	ok := g.hasMatch()
	g.Swap(a, b)
	return ok
}

// FindLegalMove returns the first legal move in row-major order, trying the
// right neighbour before the bottom neighbour of each cell.
func FindLegalMove(g *Grid) (Move, bool) {
	var found Move
	ok := false
	scanMoves(g, func(m Move) bool {
		found, ok = m, true
		return false
	})
	return found, ok
}

// HasLegalMove reports whether any swap produces a match.
func HasLegalMove(g *Grid) bool {
	_, ok := FindLegalMove(g)
	return ok
}

// LegalMoves returns every legal move in FindLegalMove order.
func LegalMoves(g *Grid) []Move {
	var moves []Move
	scanMoves(g, func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

// scanMoves visits legal moves in scan order until visit returns false.
func scanMoves(g *Grid, visit func(Move) bool) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			from := Coord{Row: r, Col: c}
			if c+1 < g.cols {
				to := Coord{Row: r, Col: c + 1}
				if WouldMatch(g, from, to) && !visit(Move{From: from, To: to}) {
					return
				}
			}
			if r+1 < g.rows {
				to := Coord{Row: r + 1, Col: c}
				if WouldMatch(g, from, to) && !visit(Move{From: from, To: to}) {
					return
				}
			}
		}
	}
}
