package game

// splitScore (halve it) starts everyone on 40 points and walks seven
// rounds of fixed targets. Darts on the round's exact target add their
// points; a turn with no hit halves the player's score, rounded up.
// Highest score after the last round wins.
type splitScore struct {
	baseLogic
}

type splitTarget struct {
	label   string
	ring    Ring
	segment int
}

var splitTargets = []splitTarget{
	{"S15", RingSingle, 15},
	{"S16", RingSingle, 16},
	{"D17", RingDouble, 17},
	{"D18", RingDouble, 18},
	{"T19", RingTriple, 19},
	{"T20", RingTriple, 20},
	{"BULL", RingInnerBull, 0},
}

const splitStartScore = 40

func newSplitScore() *splitScore { return &splitScore{} }

func (l *splitScore) Mode() Mode { return ModeSplitScore }

func (l *splitScore) Init(g *Game) {
	for _, p := range g.players {
		p.Score = splitStartScore
	}
}

// CurrentTarget is the round's target label for every player.
func (l *splitScore) CurrentTarget(g *Game) string {
	if g.round > len(splitTargets) {
		return ""
	}
	return splitTargets[g.round-1].label
}

func (l *splitScore) hit(g *Game, t Throw) bool {
	target := splitTargets[g.round-1]
	return t.Ring == target.ring && t.Segment == target.segment
}

func (l *splitScore) Apply(g *Game, p *Player, t Throw) Outcome {
	if g.round > len(splitTargets) || !l.hit(g, t) {
		return OutcomeContinue
	}
	p.Score += t.Points
	p.Stats.Points += t.Points
	p.turnPoints += t.Points
	p.Stats.Marks++
	return OutcomeContinue
}

func (l *splitScore) EndTurn(g *Game, p *Player) {
	if p.turnPoints > p.Stats.BestTurn {
		p.Stats.BestTurn = p.turnPoints
	}
	if p.turnPoints > 0 {
		return
	}
	// no hit this turn, halve rounding up
	p.Score = (p.Score + 1) / 2
}

func (l *splitScore) EndRound(g *Game) Outcome {
	if g.round < len(splitTargets) {
		return OutcomeContinue
	}

	var best *Player
	tied := false
	for _, p := range g.players {
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
