package game

import "github.com/opendarts/scoring-api/internal/checkout"

// elimination is a count-up race to an exact target score. Overshooting
// busts the whole turn, as does landing on target-1 or finishing without
// the required ring under double or masters out. Landing exactly on an
// opponent's score knocks that opponent back to zero.
type elimination struct {
	baseLogic
	target int
	out    checkout.OutRule
}

func newElimination(o Options) *elimination {
	return &elimination{target: o.TargetScore, out: o.Out}
}

// finishes reports whether the throw may land exactly on the target.
func (l *elimination) finishes(t Throw) bool {
	switch l.out {
	case checkout.DoubleOut:
		return t.IsDouble()
	case checkout.MastersOut:
		return t.IsMasters()
	default:
		return true
	}
}

func (l *elimination) Mode() Mode { return ModeElimination }

func (l *elimination) Init(g *Game) {
	for _, p := range g.players {
		p.Score = 0
	}
}

func (l *elimination) Apply(g *Game, p *Player, t Throw) Outcome {
	next := p.Score + t.Points
	bogey := next == l.target-1 && l.out != checkout.SingleOut
	if next > l.target || bogey || (next == l.target && !l.finishes(t)) {
		p.Score = p.turnStartScore
		p.Stats.Points -= p.turnPoints
		p.turnPoints = 0
		return OutcomeBust
	}

	p.Score = next
	p.Stats.Points += t.Points
	p.turnPoints += t.Points

	if next == l.target {
		if p.turnPoints > p.Stats.BestTurn {
			p.Stats.BestTurn = p.turnPoints
		}
		g.finishWin(p)
		return OutcomeWin
	}

	// ties send the opponent back to the start
	if next > 0 {
		for _, opp := range g.ActiveOpponents(p) {
			if opp.Score == next {
				opp.Score = 0
			}
		}
	}
	return OutcomeContinue
}

func (l *elimination) EndTurn(g *Game, p *Player) {
	if p.turnPoints > p.Stats.BestTurn {
		p.Stats.BestTurn = p.turnPoints
	}
}
