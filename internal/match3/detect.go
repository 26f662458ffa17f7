package match3

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// MatchGroup is one straight run of same-type cells.
type MatchGroup struct {
	Cells       []Coord
	Length      int
	Orientation Orientation
}

// Middle returns the promotion cell of the group, Cells[Length/2].
func (m MatchGroup) Middle() Coord {
	return m.Cells[m.Length/2]
}

// Matches is the result of one detection pass.
// Cells is de-duplicated in order of first occurrence; Groups keeps every run,
// horizontal runs in row-major order followed by vertical runs in column-major order.
type Matches struct {
	Cells  []Coord
	Groups []MatchGroup
}

// Empty reports whether nothing matched.
func (m Matches) Empty() bool {
	return len(m.Groups) == 0
}

// Count returns the number of distinct matched cells.
func (m Matches) Count() int {
	return len(m.Cells)
}

// Contains reports whether c is part of any run.
func (m Matches) Contains(c Coord) bool {
	for _, mc := range m.Cells {
		if mc == c {
			return true
		}
	}
	return false
}

// FindMatches scans g for runs of MinRun or more without mutating it.
func FindMatches(g *Grid) Matches {
	var res Matches
	seen := make(map[Coord]bool)

	record := func(group MatchGroup) {
		res.Groups = append(res.Groups, group)
		for _, c := range group.Cells {
			if !seen[c] {
				seen[c] = true
				res.Cells = append(res.Cells, c)
			}
		}
	}

	for r := 0; r < g.rows; r++ {
		c := 0
		for c <= g.cols-MinRun {
			n := g.runLength(r, c, 0, 1)
			if n < MinRun {
				c++
				continue
			}
			group := MatchGroup{Length: n, Orientation: Horizontal, Cells: make([]Coord, n)}
			for i := range n {
				group.Cells[i] = Coord{Row: r, Col: c + i}
			}
			record(group)
			c += n
		}
	}

	for c := 0; c < g.cols; c++ {
		r := 0
		for r <= g.rows-MinRun {
			n := g.runLength(r, c, 1, 0)
			if n < MinRun {
				r++
				continue
			}
			group := MatchGroup{Length: n, Orientation: Vertical, Cells: make([]Coord, n)}
			for i := range n {
				group.Cells[i] = Coord{Row: r + i, Col: c}
			}
			record(group)
			r += n
		}
	}

	return res
}

// runLength counts same-type cells starting at (r, c) stepping by (dr, dc).
// Empty cells never start or extend a run.
func (g *Grid) runLength(r, c, dr, dc int) int {
	t := g.cells[r*g.cols+c].Type
	if t == Empty {
		return 0
	}
	n := 1
	for {
		nr, nc := r+dr*n, c+dc*n
		if nr >= g.rows || nc >= g.cols || g.cells[nr*g.cols+nc].Type != t {
			return n
		}
		n++
	}
}

// hasMatch is a cheaper existence check used by move search.
func (g *Grid) hasMatch() bool {
	for r := 0; r < g.rows; r++ {
		for c := 0; c <= g.cols-MinRun; c++ {
			if g.runLength(r, c, 0, 1) >= MinRun {
				return true
			}
		}
	}
	for c := 0; c < g.cols; c++ {
		for r := 0; r <= g.rows-MinRun; r++ {
			if g.runLength(r, c, 1, 0) >= MinRun {
				return true
			}
		}
	}
	return false
}
