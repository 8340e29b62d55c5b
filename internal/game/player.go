package game

// Player carries identity plus the superset of per-mode scoring state.
// Each mode reads and writes only the fields it cares about; keeping them
// flat lets the orchestrator snapshot players wholesale for undo and lets
// saves round-trip through plain JSON.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Score is the running total: countdown in x01, cut-throat penalty
	// points, count-up in elimination and shanghai.
	Score int `json:"score"`

	// Marks maps a target ("20", "bull") to accumulated hits for the
	// mark-based modes.
	Marks map[string]int `json:"marks,omitempty"`

	// TargetIndex is the position in the mode's target sequence for the
	// sequential modes (around the clock, micky maus, split score).
	TargetIndex int `json:"target_index,omitempty"`

	// Opened reports whether a double/masters-in requirement has been met.
	Opened bool `json:"opened,omitempty"`

	// Killer state.
	Lives       int  `json:"lives,omitempty"`
	LifeSegment int  `json:"life_segment,omitempty"`
	Killer      bool `json:"killer,omitempty"`
	Eliminated  bool `json:"eliminated,omitempty"`

	// PreferredDouble biases checkout suggestions, 0 means no preference.
	PreferredDouble int `json:"preferred_double,omitempty"`

	Stats Stats `json:"stats"`

	// turn-start values for bust reversion, maintained by the orchestrator.
	turnStartScore  int
	turnStartOpened bool
	turnPoints      int
}

// Stats accumulates per-player aggregates across one game.
type Stats struct {
	Throws   int `json:"throws"`
	Points   int `json:"points"`
	Turns    int `json:"turns"`
	Busts    int `json:"busts"`
	Marks    int `json:"marks"`
	BestTurn int `json:"best_turn"`

	// Darts thrown with a one-dart finish available, and the ones that
	// actually finished the leg.
	CheckoutAttempts int `json:"checkout_attempts"`
	Checkouts        int `json:"checkouts"`
}

// Average returns points per three darts, the conventional x01 average.
func (s Stats) Average() float64 {
	if s.Throws == 0 {
		return 0
	}
	return float64(s.Points) / float64(s.Throws) * 3
}

// CheckoutPercent returns the share of darts at a finish that hit, 0-100.
func (s Stats) CheckoutPercent() float64 {
	if s.CheckoutAttempts == 0 {
		return 0
	}
	return float64(s.Checkouts) / float64(s.CheckoutAttempts) * 100
}

// MarksPerRound returns cricket marks per three darts.
func (s Stats) MarksPerRound() float64 {
	if s.Throws == 0 {
		return 0
	}
	return float64(s.Marks) / float64(s.Throws) * 3
}

func newPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name, Marks: make(map[string]int)}
}

// clone deep-copies the player for undo snapshots.
func (p *Player) clone() *Player {
	cp := *p
	cp.Marks = make(map[string]int, len(p.Marks))
	for k, v := range p.Marks {
		cp.Marks[k] = v
	}
	return &cp
}

// markCount is a nil-safe read of the player's hits on a target.
func (p *Player) markCount(target string) int {
	if p.Marks == nil {
		return 0
	}
	return p.Marks[target]
}

// addMarks records hits on a target. The stored count never exceeds the
// three marks it takes to close; overflow scoring works off the raw
// throw, not the stored count.
func (p *Player) addMarks(target string, n int) {
	if p.Marks == nil {
		p.Marks = make(map[string]int)
	}
	p.Marks[target] += n
	if p.Marks[target] > 3 {
		p.Marks[target] = 3
	}
}
