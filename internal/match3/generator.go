package match3

// Report describes how a board was produced.
type Report struct {
	Attempts int
	Playable bool // False when the retry budget ran out and the last candidate was kept
}

// IsPlayable reports whether g has no standing matches and at least one legal move.
func IsPlayable(g *Grid) bool {
	return !g.hasMatch() && HasLegalMove(g)
}

// Generator builds starting boards and reshuffles dead ones.
type Generator struct {
	params Params
	rng    Rand
}

// NewGenerator returns a generator for boards described by p.
// Invalid params are a programming error.
func NewGenerator(p Params, rng Rand) *Generator {
	p.mustValidate()
	return &Generator{params: p, rng: rng}
}

// Generate fills a fresh grid with independent uniform types until it is
// playable or MaxGenerateAttempts is spent.
func (gen *Generator) Generate() (*Grid, Report) {
	g := NewGrid(gen.params.Rows, gen.params.Cols)
	var rep Report
	for rep.Attempts < gen.params.MaxGenerateAttempts {
		rep.Attempts++
		for i := range g.cells {
			g.cells[i] = Gem(gen.rng.IntN(gen.params.GemTypes))
		}
		if IsPlayable(g) {
			rep.Playable = true
			break
		}
	}
	return g, rep
}

// Reshuffle returns a new grid holding a uniform permutation of g's types,
// with all specials discarded, retried until playable or ReshuffleAttempts
// is spent. g itself is not modified.
func (gen *Generator) Reshuffle(g *Grid) (*Grid, Report) {
	types := make([]int, len(g.cells))
	for i, cell := range g.cells {
		types[i] = cell.Type
	}

	out := NewGrid(g.rows, g.cols)
	var rep Report
	for rep.Attempts < gen.params.ReshuffleAttempts {
		rep.Attempts++
		for i := len(types) - 1; i > 0; i-- {
			j := gen.rng.IntN(i + 1)
			types[i], types[j] = types[j], types[i]
		}
		for i, t := range types {
			out.cells[i] = Gem(t)
		}
		if IsPlayable(out) {
			rep.Playable = true
			break
		}
	}
	return out, rep
}
