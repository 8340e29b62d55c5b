package game

import "strconv"

// clockTarget is one step of an around-the-clock sequence.
type clockTarget struct {
	segment int
	ring    Ring // "" accepts any scoring ring
	bull    bool
}

func (c clockTarget) label() string {
	if c.bull {
		return BullTarget
	}
	prefix := ""
	switch c.ring {
	case RingDouble:
		prefix = "D"
	case RingTriple:
		prefix = "T"
	}
	return prefix + strconv.Itoa(c.segment)
}

func (c clockTarget) hit(t Throw) bool {
	if c.bull {
		return t.Ring == RingOuterBull || t.Ring == RingInnerBull
	}
	if t.Segment != c.segment {
		return false
	}
	if c.ring == "" {
		return t.Points > 0
	}
	return t.Ring == c.ring
}

// aroundTheClock walks each player through a fixed target sequence; the
// first to clear it wins.
type aroundTheClock struct {
	baseLogic
	targets []clockTarget
}

func newAroundTheClock(o Options) *aroundTheClock {
	l := &aroundTheClock{}
	switch o.ClockTargets {
	case "doubles":
		for s := 1; s <= 20; s++ {
			l.targets = append(l.targets, clockTarget{segment: s, ring: RingDouble})
		}
	case "triples":
		for s := 1; s <= 20; s++ {
			l.targets = append(l.targets, clockTarget{segment: s, ring: RingTriple})
		}
	case "1-20,bull":
		for s := 1; s <= 20; s++ {
			l.targets = append(l.targets, clockTarget{segment: s})
		}
		l.targets = append(l.targets, clockTarget{bull: true})
	default: // "1-20"
		for s := 1; s <= 20; s++ {
			l.targets = append(l.targets, clockTarget{segment: s})
		}
	}
	return l
}

func (l *aroundTheClock) Mode() Mode { return ModeATC }

func (l *aroundTheClock) Init(g *Game) {
	for _, p := range g.players {
		p.TargetIndex = 0
		p.Score = 0
	}
}

// CurrentTarget names the player's next target, for scoreboards and
// computer opponents.
func (l *aroundTheClock) CurrentTarget(p *Player) string {
	if p.TargetIndex >= len(l.targets) {
		return ""
	}
	return l.targets[p.TargetIndex].label()
}

func (l *aroundTheClock) Apply(g *Game, p *Player, t Throw) Outcome {
	if p.TargetIndex >= len(l.targets) {
		return OutcomeContinue
	}
	if !l.targets[p.TargetIndex].hit(t) {
		return OutcomeContinue
	}
	p.TargetIndex++
	p.Score++
	p.Stats.Marks++
	p.Stats.Points += t.Points
	if p.TargetIndex == len(l.targets) {
		g.finishWin(p)
		return OutcomeWin
	}
	return OutcomeContinue
}
