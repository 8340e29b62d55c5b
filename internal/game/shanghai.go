package game

// shanghai plays a fixed number of rounds; in round r only segment r
// scores, at face value times the ring multiplier. Hitting the single,
// double and triple of the round's segment in one turn is a shanghai and
// wins instantly. Otherwise the highest score after the last round wins;
// an exact tie is a draw.
type shanghai struct {
	baseLogic
	rounds int
}

func newShanghai(o Options) *shanghai {
	return &shanghai{rounds: o.Rounds}
}

func (l *shanghai) Mode() Mode { return ModeShanghai }

func (l *shanghai) Init(g *Game) {
	for _, p := range g.players {
		p.Score = 0
	}
}

// CurrentTarget is the round's segment for every player.
func (l *shanghai) CurrentTarget(g *Game) int { return g.round }

func (l *shanghai) Apply(g *Game, p *Player, t Throw) Outcome {
	if t.Segment != g.round {
		return OutcomeContinue
	}

	p.Score += t.Points
	p.Stats.Points += t.Points
	p.turnPoints += t.Points
	p.Stats.Marks += t.Marks()

	if l.turnIsShanghai(g) {
		g.finishWin(p)
		return OutcomeWin
	}
	return OutcomeContinue
}

// turnIsShanghai checks the current turn's throws for a single, double
// and triple of the round's segment.
func (l *shanghai) turnIsShanghai(g *Game) bool {
	var single, double, triple bool
	for _, rec := range g.turn {
		if rec.throw.Segment != g.round {
			continue
		}
		switch rec.throw.Ring {
		case RingSingle:
			single = true
		case RingDouble:
			double = true
		case RingTriple:
			triple = true
		}
	}
	return single && double && triple
}

func (l *shanghai) EndTurn(g *Game, p *Player) {
	if p.turnPoints > p.Stats.BestTurn {
		p.Stats.BestTurn = p.turnPoints
	}
}

func (l *shanghai) EndRound(g *Game) Outcome {
	if g.round < l.rounds {
		return OutcomeContinue
	}

	var best *Player
	tied := false
	for _, p := range g.players {
		if p.Eliminated {
			continue
		}
		switch {
		case best == nil || p.Score > best.Score:
			best, tied = p, false
		case p.Score == best.Score:
			tied = true
		}
	}
	if best == nil || tied {
		g.finishDraw()
		return OutcomeDraw
	}
	g.finishWin(best)
	return OutcomeWin
}
