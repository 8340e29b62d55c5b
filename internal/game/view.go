package game

import "strconv"

// PlayerView is the wire representation of one player's standing.
type PlayerView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Score      int            `json:"score"`
	Marks      map[string]int `json:"marks,omitempty"`
	Target     string         `json:"target,omitempty"`
	Lives      int            `json:"lives,omitempty"`
	Segment    int            `json:"life_segment,omitempty"`
	Killer     bool           `json:"killer,omitempty"`
	Eliminated bool           `json:"eliminated,omitempty"`
	Stats      Stats          `json:"stats"`
}

// View is a read-only snapshot of a running or finished game.
type View struct {
	ID            string       `json:"id"`
	Mode          Mode         `json:"mode"`
	Status        Status       `json:"status"`
	Round         int          `json:"round"`
	CurrentPlayer string       `json:"current_player,omitempty"`
	DartsThrown   int          `json:"darts_thrown"`
	WinnerID      string       `json:"winner_id,omitempty"`
	Players       []PlayerView `json:"players"`
}

// TargetHint names what the player should aim at next in the
// sequential-target modes. Empty for free-aim modes.
func (g *Game) TargetHint(p *Player) string {
	switch l := g.logic.(type) {
	case *aroundTheClock:
		return l.CurrentTarget(p)
	case *mickyMaus:
		return l.CurrentTarget(p)
	case *shanghai:
		if g.round <= l.rounds {
			return strconv.Itoa(g.round)
		}
	case *splitScore:
		return l.CurrentTarget(g)
	}
	return ""
}

// Summary renders the game for API responses.
func (g *Game) Summary() View {
	v := View{
		ID:          g.id,
		Mode:        g.opts.Mode,
		Status:      g.status,
		Round:       g.round,
		DartsThrown: g.dartsThrown,
		WinnerID:    g.winnerID,
	}
	if cp := g.CurrentPlayer(); cp != nil {
		v.CurrentPlayer = cp.ID
	}
	for _, p := range g.players {
		pv := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Score:      p.Score,
			Target:     g.TargetHint(p),
			Lives:      p.Lives,
			Segment:    p.LifeSegment,
			Killer:     p.Killer,
			Eliminated: p.Eliminated,
			Stats:      p.Stats,
		}
		if len(p.Marks) > 0 {
			pv.Marks = make(map[string]int, len(p.Marks))
			for k, n := range p.Marks {
				pv.Marks[k] = n
			}
		}
		v.Players = append(v.Players, pv)
	}
	return v
}
