package game

import "strconv"

type cricketVariant int

const (
	cricketStandard cricketVariant = iota
	cricketCutThroat
	cricketTactics
)

// cricketLogic plays the mark-based family. Standard and tactics score
// overflow marks for the thrower; cut-throat pushes them onto every
// opponent who has not closed the target, and the lowest score wins.
type cricketLogic struct {
	baseLogic
	variant cricketVariant
	targets []string
	values  map[string]int
}

func newCricket(variant cricketVariant) *cricketLogic {
	low := 15
	if variant == cricketTactics {
		low = 10
	}
	l := &cricketLogic{variant: variant, values: make(map[string]int)}
	for s := 20; s >= low; s-- {
		key := strconv.Itoa(s)
		l.targets = append(l.targets, key)
		l.values[key] = s
	}
	l.targets = append(l.targets, BullTarget)
	l.values[BullTarget] = 25
	return l
}

func (l *cricketLogic) Mode() Mode {
	switch l.variant {
	case cricketCutThroat:
		return ModeCutThroat
	case cricketTactics:
		return ModeTactics
	default:
		return ModeCricket
	}
}

func (l *cricketLogic) Init(g *Game) {
	for _, p := range g.players {
		p.Score = 0
	}
}

func (l *cricketLogic) closed(p *Player, target string) bool {
	return p.markCount(target) >= 3
}

func (l *cricketLogic) allClosed(p *Player) bool {
	for _, target := range l.targets {
		if !l.closed(p, target) {
			return false
		}
	}
	return true
}

// dead reports whether every active player has closed the target, so
// hits on it no longer score.
func (l *cricketLogic) dead(g *Game, target string) bool {
	for _, p := range g.players {
		if !p.Eliminated && !l.closed(p, target) {
			return false
		}
	}
	return true
}

func (l *cricketLogic) leads(g *Game, p *Player) bool {
	for _, opp := range g.ActiveOpponents(p) {
		if l.variant == cricketCutThroat {
			if p.Score > opp.Score {
				return false
			}
		} else if p.Score < opp.Score {
			return false
		}
	}
	return true
}

func (l *cricketLogic) Apply(g *Game, p *Player, t Throw) Outcome {
	target := t.Target()
	if _, ok := l.values[target]; !ok {
		return OutcomeContinue
	}
	if l.dead(g, target) {
		return OutcomeContinue
	}

	marks := t.Marks()
	before := p.markCount(target)
	p.addMarks(target, marks)
	p.Stats.Marks += marks

	overflow := before + marks - 3
	if overflow > marks {
		overflow = marks
	}
	// overflow marks only score while some opponent still has the
	// target open
	open := false
	for _, opp := range g.ActiveOpponents(p) {
		if !l.closed(opp, target) {
			open = true
			break
		}
	}
	if overflow > 0 && open {
		pts := l.values[target] * overflow
		if l.variant == cricketCutThroat {
			for _, opp := range g.ActiveOpponents(p) {
				if !l.closed(opp, target) {
					opp.Score += pts
				}
			}
			p.Stats.Points += pts
		} else {
			p.Score += pts
			p.Stats.Points += pts
			p.turnPoints += pts
		}
	}

	if l.allClosed(p) && l.leads(g, p) {
		g.finishWin(p)
		return OutcomeWin
	}
	return OutcomeContinue
}
