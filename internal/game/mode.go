package game

import "fmt"

// Outcome classifies the effect of a single throw or of a completed round.
type Outcome int

const (
	// OutcomeContinue leaves the turn running.
	OutcomeContinue Outcome = iota
	// OutcomeBust ends the turn immediately; the mode has already reverted
	// the thrower's turn scoring.
	OutcomeBust
	// OutcomeWin finished the game; the mode has set the winner.
	OutcomeWin
	// OutcomeDraw finished the game with no winner.
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBust:
		return "bust"
	case OutcomeWin:
		return "win"
	case OutcomeDraw:
		return "draw"
	default:
		return "continue"
	}
}

// ModeLogic is the scoring strategy for one game variant. Implementations
// mutate player and game state through the hooks below and nowhere else.
// All mutable per-player state lives on Player so the orchestrator can
// snapshot it for undo without mode cooperation.
type ModeLogic interface {
	Mode() Mode

	// Init seeds per-player starting state (scores, marks, targets).
	Init(g *Game)

	// Apply scores one validated throw for the current player.
	Apply(g *Game, p *Player, t Throw) Outcome

	// EndTurn runs after the current player's turn closes, before play
	// moves on. Used for settlement that depends on the whole turn.
	EndTurn(g *Game, p *Player)

	// EndRound runs after every active player has completed the round.
	// Modes with a fixed round count end the game here.
	EndRound(g *Game) Outcome
}

// baseLogic provides no-op hooks for modes that do not need them.
type baseLogic struct{}

func (baseLogic) EndTurn(*Game, *Player) {}
func (baseLogic) EndRound(*Game) Outcome { return OutcomeContinue }

// modeFactories is the single registry of playable modes.
var modeFactories = map[Mode]func(Options) ModeLogic{
	ModeX01:         func(o Options) ModeLogic { return newX01(o) },
	ModeCricket:     func(o Options) ModeLogic { return newCricket(cricketStandard) },
	ModeCutThroat:   func(o Options) ModeLogic { return newCricket(cricketCutThroat) },
	ModeTactics:     func(o Options) ModeLogic { return newCricket(cricketTactics) },
	ModeATC:         func(o Options) ModeLogic { return newAroundTheClock(o) },
	ModeMickyMaus:   func(o Options) ModeLogic { return newMickyMaus() },
	ModeKiller:      func(o Options) ModeLogic { return newKiller(o) },
	ModeElimination: func(o Options) ModeLogic { return newElimination(o) },
	ModeShanghai:    func(o Options) ModeLogic { return newShanghai(o) },
	ModeSplitScore:  func(o Options) ModeLogic { return newSplitScore() },
}

func newModeLogic(o Options) (ModeLogic, error) {
	factory, ok := modeFactories[o.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, o.Mode)
	}
	return factory(o), nil
}

// ParseMode maps a wire-level mode tag to a Mode, accepting only
// registered variants.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := modeFactories[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Modes lists every registered mode tag, for validation messages.
func Modes() []Mode {
	out := make([]Mode, 0, len(modeFactories))
	for m := range modeFactories {
		out = append(out, m)
	}
	return out
}
