package game

// killer plays in three phases. Players without a preset number first earn
// a life field with a qualifying throw: hitting an unclaimed segment takes
// it, a bull hit takes the bull field, and a successful claim closes the
// turn. A player becomes a killer with a double on their own field. Killers
// then take lives on any active player's field, one per ring multiplier;
// the bull field loses one life to the outer bull and two to the inner.
// Hitting your own field as a killer costs your own lives the same way.
// Last player with lives wins.
type killer struct {
	baseLogic
	lives int
}

// bullField marks a life field on the bull rather than a numbered segment.
const bullField = 25

func newKiller(o Options) *killer {
	return &killer{lives: o.Lives}
}

func (l *killer) Mode() Mode { return ModeKiller }

func (l *killer) Init(g *Game) {
	taken := make(map[int]bool)
	for _, p := range g.players {
		p.Lives = l.lives
		p.Killer = false
		p.Eliminated = false
		if p.LifeSegment < 1 || p.LifeSegment > 20 || taken[p.LifeSegment] {
			// earned with the first qualifying throw
			p.LifeSegment = 0
			continue
		}
		taken[p.LifeSegment] = true
	}
}

// claim resolves the life field a throw stakes out, or 0 for a miss.
func claim(t Throw) int {
	switch t.Ring {
	case RingOuterBull, RingInnerBull:
		return bullField
	case RingSingle, RingDouble, RingTriple:
		return t.Segment
	default:
		return 0
	}
}

func (l *killer) fieldTaken(g *Game, field int) bool {
	for _, p := range g.players {
		if !p.Eliminated && p.LifeSegment == field {
			return true
		}
	}
	return false
}

// lifeHit returns the lives a throw takes from the given field, zero when
// it lands elsewhere.
func lifeHit(field int, t Throw) int {
	if field == bullField {
		switch t.Ring {
		case RingInnerBull:
			return 2
		case RingOuterBull:
			return 1
		}
		return 0
	}
	if t.Segment != field {
		return 0
	}
	return ringMultiplier(t.Ring)
}

// arms reports whether a throw on the player's own field promotes them.
func arms(field int, t Throw) bool {
	if field == bullField {
		return t.Ring == RingOuterBull || t.Ring == RingInnerBull
	}
	return t.Segment == field && t.Ring == RingDouble
}

func (l *killer) takeLives(g *Game, victim *Player, n int) {
	victim.Lives -= n
	if victim.Lives <= 0 {
		victim.Lives = 0
		victim.Eliminated = true
	}
}

func (l *killer) lastAlive(g *Game) *Player {
	var alive *Player
	for _, p := range g.players {
		if p.Eliminated {
			continue
		}
		if alive != nil {
			return nil
		}
		alive = p
	}
	return alive
}

func (l *killer) Apply(g *Game, p *Player, t Throw) Outcome {
	if p.LifeSegment == 0 {
		field := claim(t)
		if field == 0 || l.fieldTaken(g, field) {
			return OutcomeContinue
		}
		p.LifeSegment = field
		g.closeTurn()
		return OutcomeContinue
	}

	if !p.Killer {
		if arms(p.LifeSegment, t) {
			p.Killer = true
			p.Stats.Marks++
		}
		return OutcomeContinue
	}

	if n := lifeHit(p.LifeSegment, t); n > 0 {
		// killers bleed on their own field
		l.takeLives(g, p, n)
	} else {
		for _, opp := range g.ActiveOpponents(p) {
			if n := lifeHit(opp.LifeSegment, t); n > 0 {
				l.takeLives(g, opp, n)
				p.Stats.Marks += n
				break
			}
		}
	}

	if winner := l.lastAlive(g); winner != nil {
		g.finishWin(winner)
		return OutcomeWin
	}
	return OutcomeContinue
}
