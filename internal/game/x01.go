package game

import "github.com/opendarts/scoring-api/internal/checkout"

// x01 is the countdown family (301, 501, 701...). Players race from the
// start score to exactly zero; in and out rules constrain the opening and
// finishing darts.
type x01 struct {
	baseLogic
	start int
	in    InRule
	out   checkout.OutRule
}

func newX01(o Options) *x01 {
	return &x01{start: o.StartScore, in: o.In, out: o.Out}
}

func (l *x01) Mode() Mode { return ModeX01 }

func (l *x01) Init(g *Game) {
	for _, p := range g.players {
		p.Score = l.start
		p.Opened = l.in == SingleIn
	}
}

func (l *x01) opens(t Throw) bool {
	switch l.in {
	case DoubleIn:
		return t.IsDouble()
	case MastersIn:
		return t.IsMasters()
	default:
		return t.Points > 0
	}
}

func (l *x01) finishes(t Throw) bool {
	switch l.out {
	case checkout.DoubleOut:
		return t.IsDouble()
	case checkout.MastersOut:
		return t.IsMasters()
	default:
		return true
	}
}

func (l *x01) Apply(g *Game, p *Player, t Throw) Outcome {
	if !p.Opened {
		if !l.opens(t) {
			return OutcomeContinue
		}
		p.Opened = true
	}

	// any dart thrown with a one-dart finish available counts as a
	// checkout attempt, whatever it hits
	if checkout.CanFinish(p.Score, l.out, 1) {
		p.Stats.CheckoutAttempts++
	}

	next := p.Score - t.Points
	bogey := next == 1 && l.out != checkout.SingleOut
	if next < 0 || bogey || (next == 0 && !l.finishes(t)) {
		// the whole turn is forfeit, not just this dart
		p.Score = p.turnStartScore
		p.Opened = p.turnStartOpened
		p.Stats.Points -= p.turnPoints
		p.turnPoints = 0
		return OutcomeBust
	}

	p.Score = next
	p.Stats.Points += t.Points
	p.turnPoints += t.Points
	if next == 0 {
		p.Stats.Checkouts++
		if p.turnPoints > p.Stats.BestTurn {
			p.Stats.BestTurn = p.turnPoints
		}
		g.finishWin(p)
		return OutcomeWin
	}
	return OutcomeContinue
}

func (l *x01) EndTurn(g *Game, p *Player) {
	if p.turnPoints > p.Stats.BestTurn {
		p.Stats.BestTurn = p.turnPoints
	}
}
