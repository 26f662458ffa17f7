package match3

// Phase is a state of the cascade state machine.
type Phase uint8

const (
	PhaseDetecting Phase = iota
	PhaseScoring
	PhasePromoting
	PhaseClearing
	PhaseCompacting
	PhaseRefilling
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseDetecting:
		return "detecting"
	case PhaseScoring:
		return "scoring"
	case PhasePromoting:
		return "promoting"
	case PhaseClearing:
		return "clearing"
	case PhaseCompacting:
		return "compacting"
	case PhaseRefilling:
		return "refilling"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Promotion records a matched cell turned into a special gem.
type Promotion struct {
	At          Coord
	Type        int
	Special     Special
	Orientation Orientation
}

// RoundOutcome is the immutable record of one cascade iteration.
type RoundOutcome struct {
	ComboDepth      int // 1-based round index within the cascade
	MatchedCount    int // Distinct matched cells
	RoundScore      int
	SpecialsCreated int // One per qualifying group, even when two promote the same cell

	Groups     []MatchGroup
	Matched    []Coord
	Promotions []Promotion // Application order; a later entry may overwrite an earlier cell
	Cleared    []Coord
	Refilled   []Coord
	Board      *Grid // Board snapshot after refill
}

// Resolver drives cascades over a grid it does not retain.
type Resolver struct {
	params Params
	rng    Rand
	onStep func(phase Phase, depth int)
}

// NewResolver returns a resolver for boards described by p.
// Invalid params are a programming error.
func NewResolver(p Params, rng Rand) *Resolver {
	p.mustValidate()
	return &Resolver{params: p, rng: rng}
}

// OnPhase installs a hook called on entry to every phase.
func (r *Resolver) OnPhase(fn func(phase Phase, depth int)) {
	r.onStep = fn
}

// Resolve runs detect, score, promote, clear, compact and refill rounds on g
// until a detection pass finds nothing or MaxRounds rounds have run. Striped
// and bomb gems are never cleared, so a run made only of them stands until
// the bound. The returned rounds are in order; an action that matched
// nothing yields an empty slice.
func (r *Resolver) Resolve(g *Grid) []RoundOutcome {
	var (
		rounds []RoundOutcome
		cur    RoundOutcome
		found  Matches
		depth  int
	)

	phase := PhaseDetecting
	for phase != PhaseDone {
		if r.onStep != nil {
			r.onStep(phase, depth)
		}

		switch phase {
		case PhaseDetecting:
			if depth >= r.params.MaxRounds {
				phase = PhaseDone
				continue
			}
			found = FindMatches(g)
			if found.Empty() {
				phase = PhaseDone
				continue
			}
			depth++
			cur = RoundOutcome{
				ComboDepth:   depth,
				MatchedCount: found.Count(),
				Groups:       found.Groups,
				Matched:      found.Cells,
			}
			phase = PhaseScoring

		case PhaseScoring:
			cur.RoundScore = r.params.Scoring.RoundScore(cur.MatchedCount, depth)
			phase = PhasePromoting

		case PhasePromoting:
			cur.Promotions = promote(g, found.Groups, r.params.Scoring)
			cur.SpecialsCreated = len(cur.Promotions)
			phase = PhaseClearing

		case PhaseClearing:
			cur.Cleared = clearMatched(g, found.Cells)
			phase = PhaseCompacting

		case PhaseCompacting:
			Compact(g)
			phase = PhaseRefilling

		case PhaseRefilling:
			cur.Refilled = Refill(g, r.params.GemTypes, r.rng)
			cur.Board = g.Clone()
			rounds = append(rounds, cur)
			phase = PhaseDetecting
		}
	}
	if r.onStep != nil {
		r.onStep(PhaseDone, depth)
	}

	return rounds
}

// promote turns the middle cell of long groups into specials, in group order.
func promote(g *Grid, groups []MatchGroup, s Scoring) []Promotion {
	var promos []Promotion

	for _, grp := range groups {
		var p Promotion
		switch {
		case grp.Length >= s.BombThreshold:
			p.Special = SpecialBomb
		case grp.Length == s.StripedThreshold:
			p.Special = SpecialStriped
			p.Orientation = grp.Orientation
		default:
			continue
		}
		p.At = grp.Middle()
		p.Type = g.Get(p.At).Type
		g.Set(p.At, Cell{Type: p.Type, Special: p.Special, Orientation: p.Orientation})

		promos = append(promos, p)
	}

	return promos
}

// clearMatched empties every matched cell except striped and bomb gems,
// whether they were promoted this round or earlier.
func clearMatched(g *Grid, cells []Coord) []Coord {
	cleared := make([]Coord, 0, len(cells))
	for _, c := range cells {
		if sp := g.Get(c).Special; sp == SpecialStriped || sp == SpecialBomb {
			continue
		}
		g.Set(c, EmptyCell())
		cleared = append(cleared, c)
	}
	return cleared
}

// Compact lets non-empty cells fall to the bottom of each column,
// keeping their relative order and leaving empties on top.
func Compact(g *Grid) {
	for c := 0; c < g.cols; c++ {
		write := g.rows - 1
		for r := g.rows - 1; r >= 0; r-- {
			cell := g.cells[r*g.cols+c]
			if cell.IsEmpty() {
				continue
			}
			if r != write {
				g.cells[write*g.cols+c] = cell
				g.cells[r*g.cols+c] = EmptyCell()
			}
			write--
		}
	}
}

// Refill assigns a random plain gem to every empty cell and returns
// the refilled coordinates in row-major order.
func Refill(g *Grid, gemTypes int, rng Rand) []Coord {
	var filled []Coord
	for i, cell := range g.cells {
		if !cell.IsEmpty() {
			continue
		}
		g.cells[i] = Gem(rng.IntN(gemTypes))
		filled = append(filled, Coord{Row: i / g.cols, Col: i % g.cols})
	}
	return filled
}
