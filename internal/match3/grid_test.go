package match3

import (
	"testing"
)

// seqRand returns its values in order, cycling, reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func constRand(v int) *seqRand {
	return &seqRand{vals: []int{v}}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestFromTypes(t *testing.T) {
	g := FromTypes([][]int{
		{0, 1, 2},
		{3, 4, 5},
	})
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("Expected 2x3 grid, got %dx%d", g.Rows(), g.Cols())
	}
	if got := g.Get(At(1, 2)); got != Gem(5) {
		t.Errorf("Get(1,2) = %+v, want plain gem 5", got)
	}
	if g.EmptyCount() != 0 {
		t.Errorf("Expected no empty cells, got %d", g.EmptyCount())
	}
}

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(3, 4)
	if g.EmptyCount() != 12 {
		t.Errorf("Expected 12 empty cells, got %d", g.EmptyCount())
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(3, 3)
	tests := []struct {
		name string
		fn   func()
	}{
		{"get negative row", func() { g.Get(At(-1, 0)) }},
		{"get past last col", func() { g.Get(At(0, 3)) }},
		{"set past last row", func() { g.Set(At(3, 0), Gem(1)) }},
		{"swap out of bounds", func() { g.Swap(At(0, 0), At(0, -1)) }},
		{"zero sized grid", func() { NewGrid(0, 3) }},
		{"ragged matrix", func() { FromTypes([][]int{{1, 2}, {1}}) }},
	}
	for _, tt := range tests {
		mustPanic(t, tt.name, tt.fn)
	}
}

func TestSwapDoesNotCheckAdjacency(t *testing.T) {
	g := FromTypes([][]int{
		{0, 1, 2},
		{3, 4, 5},
	})
	g.Swap(At(0, 0), At(1, 2))
	if g.Get(At(0, 0)).Type != 5 || g.Get(At(1, 2)).Type != 0 {
		t.Errorf("Swap did not exchange cells:\n%s", g)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := FromTypes([][]int{{0, 1, 2}})
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("Clone() should equal the original")
	}
	c.Set(At(0, 0), EmptyCell())
	if g.Get(At(0, 0)).Type != 0 {
		t.Error("mutating the clone changed the original")
	}
	if g.Equal(c) {
		t.Error("Equal() should notice the difference")
	}
}

func TestForEachRowMajor(t *testing.T) {
	g := FromTypes([][]int{
		{0, 1},
		{2, 3},
	})
	var seen []int
	g.ForEach(func(c Coord, cell Cell) {
		seen = append(seen, cell.Type)
	})
	for i, v := range seen {
		if v != i {
			t.Fatalf("ForEach order = %v, want [0 1 2 3]", seen)
		}
	}
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		a, b Coord
		want bool
	}{
		{At(0, 0), At(0, 1), true},
		{At(2, 2), At(1, 2), true},
		{At(0, 0), At(1, 1), false},
		{At(0, 0), At(0, 0), false},
		{At(0, 0), At(0, 2), false},
	}
	for _, tt := range tests {
		if got := Adjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("Adjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGridString(t *testing.T) {
	g := FromTypes([][]int{{1, 2, 3}})
	g.Set(At(0, 0), EmptyCell())
	g.Set(At(0, 1), Cell{Type: 2, Special: SpecialStriped, Orientation: Vertical})
	g.Set(At(0, 2), Cell{Type: 3, Special: SpecialBomb})
	if got, want := g.String(), ". 2| 3*"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
