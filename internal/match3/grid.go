// Package match3 implements the board state machine of the gem puzzle:
// grid storage, run detection, move validation, cascade resolution and
// board generation. It is UI-agnostic and deterministic given a random source.
package match3

import (
	"fmt"
	"strings"
)

// Empty is the cell type of a cell that has been cleared and not yet refilled.
const Empty = -1

// Special identifies a promoted gem.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialStriped
	SpecialBomb
	SpecialWrapped
)

// String returns the special name.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialStriped:
		return "striped"
	case SpecialBomb:
		return "bomb"
	case SpecialWrapped:
		return "wrapped"
	default:
		return "unknown"
	}
}

// Orientation is the axis of a run or of a striped gem.
type Orientation uint8

const (
	OrientationNone Orientation = iota
	Horizontal
	Vertical
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "none"
	}
}

// Cell is a single board position.
// Orientation is only meaningful when Special is SpecialStriped.
type Cell struct {
	Type        int
	Special     Special
	Orientation Orientation
}

// Gem returns a plain gem of the given type.
func Gem(t int) Cell {
	return Cell{Type: t}
}

// EmptyCell returns a cleared cell.
func EmptyCell() Cell {
	return Cell{Type: Empty}
}

// IsEmpty reports whether the cell awaits refill.
func (c Cell) IsEmpty() bool {
	return c.Type == Empty
}

// Coord addresses a cell. Row grows downward, Col grows to the right.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Adjacent reports whether a and b are orthogonal neighbours.
func Adjacent(a, b Coord) bool {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Grid is a fixed rows x cols board stored row-major.
// Every accessor panics on out-of-bounds coordinates.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid allocates a grid with every cell empty.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("match3: invalid grid size %dx%d", rows, cols))
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for i := range g.cells {
		g.cells[i] = EmptyCell()
	}
	return g
}

// FromTypes builds a grid of plain gems from a rectangular matrix of types.
func FromTypes(types [][]int) *Grid {
	if len(types) == 0 {
		panic("match3: FromTypes needs at least one row")
	}
	g := NewGrid(len(types), len(types[0]))
	for r, row := range types {
		if len(row) != g.cols {
			panic(fmt.Sprintf("match3: row %d has %d columns, want %d", r, len(row), g.cols))
		}
		for c, t := range row {
			g.cells[r*g.cols+c] = Gem(t)
		}
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// InBounds reports whether c lies on the board.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) index(c Coord) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("match3: coordinate %v out of bounds for %dx%d grid", c, g.rows, g.cols))
	}
	return c.Row*g.cols + c.Col
}

// Get returns the cell at c.
func (g *Grid) Get(c Coord) Cell {
	return g.cells[g.index(c)]
}

// Set stores cell at c.
func (g *Grid) Set(c Coord, cell Cell) {
	g.cells[g.index(c)] = cell
}

// Swap exchanges the contents of a and b without any rule checks.
func (g *Grid) Swap(a, b Coord) {
	i, j := g.index(a), g.index(b)
	g.cells[i], g.cells[j] = g.cells[j], g.cells[i]
}

// ForEach calls fn for every cell in row-major order.
func (g *Grid) ForEach(fn func(c Coord, cell Cell)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			fn(Coord{Row: r, Col: c}, g.cells[r*g.cols+c])
		}
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}

// Types returns the type matrix, ignoring specials.
func (g *Grid) Types() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		for c := range out[r] {
			out[r][c] = g.cells[r*g.cols+c].Type
		}
	}
	return out
}

// EmptyCount returns the number of cells awaiting refill.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, cell := range g.cells {
		if cell.IsEmpty() {
			n++
		}
	}
	return n
}

// String renders the types as rows of digits, '.' for empty, with
// '-', '|' and '*' suffixes marking horizontal/vertical stripes and bombs.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := g.cells[r*g.cols+c]
			if cell.IsEmpty() {
				sb.WriteByte('.')
				continue
			}
			fmt.Fprintf(&sb, "%d", cell.Type)
			switch {
			case cell.Special == SpecialStriped && cell.Orientation == Vertical:
				sb.WriteByte('|')
			case cell.Special == SpecialStriped:
				sb.WriteByte('-')
			case cell.Special == SpecialBomb:
				sb.WriteByte('*')
			}
		}
	}
	return sb.String()
}
