package game

import "strconv"

// mickyTargets runs 20 down to 12, then bull. Each needs three marks
// before the player moves on.
var mickyTargets = func() []string {
	var out []string
	for s := 20; s >= 12; s-- {
		out = append(out, strconv.Itoa(s))
	}
	return append(out, BullTarget)
}()

const mickyMarksNeeded = 3

// mickyMaus is the sequential marks race: close the current target with
// three marks to advance, first through the whole ladder wins. Spare
// marks from a high-multiplier dart carry over to the same target only.
type mickyMaus struct {
	baseLogic
}

func newMickyMaus() *mickyMaus { return &mickyMaus{} }

func (l *mickyMaus) Mode() Mode { return ModeMickyMaus }

func (l *mickyMaus) Init(g *Game) {
	for _, p := range g.players {
		p.TargetIndex = 0
		p.Score = 0
	}
}

func (l *mickyMaus) CurrentTarget(p *Player) string {
	if p.TargetIndex >= len(mickyTargets) {
		return ""
	}
	return mickyTargets[p.TargetIndex]
}

func (l *mickyMaus) Apply(g *Game, p *Player, t Throw) Outcome {
	if p.TargetIndex >= len(mickyTargets) {
		return OutcomeContinue
	}
	target := mickyTargets[p.TargetIndex]
	if t.Target() != target {
		return OutcomeContinue
	}

	marks := t.Marks()
	have := p.markCount(target)
	if have+marks > mickyMarksNeeded {
		marks = mickyMarksNeeded - have
	}
	p.addMarks(target, marks)
	p.Stats.Marks += marks

	if p.markCount(target) >= mickyMarksNeeded {
		p.TargetIndex++
		p.Score++
		if p.TargetIndex == len(mickyTargets) {
			g.finishWin(p)
			return OutcomeWin
		}
	}
	return OutcomeContinue
}
