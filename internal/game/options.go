package game

import (
	"fmt"

	"github.com/opendarts/scoring-api/internal/checkout"
)

// Mode identifies a game variant. The constructor table in mode.go is the
// single registry of playable modes.
type Mode string

const (
	ModeX01         Mode = "x01"
	ModeCricket     Mode = "cricket"
	ModeCutThroat   Mode = "cut_throat"
	ModeTactics     Mode = "tactics"
	ModeATC         Mode = "around_the_clock"
	ModeMickyMaus   Mode = "micky_maus"
	ModeKiller      Mode = "killer"
	ModeElimination Mode = "elimination"
	ModeShanghai    Mode = "shanghai"
	ModeSplitScore  Mode = "split_score"
)

// InRule constrains the first scoring dart of an x01 leg.
type InRule string

const (
	SingleIn  InRule = "single"
	DoubleIn  InRule = "double"
	MastersIn InRule = "masters"
)

// Options carries every per-game setting. Fields irrelevant to the chosen
// mode are ignored by its logic.
type Options struct {
	Mode Mode `json:"mode"`

	// x01
	StartScore int              `json:"start_score,omitempty"` // 301, 501, 701...
	In         InRule           `json:"in_rule,omitempty"`
	Out        checkout.OutRule `json:"out_rule,omitempty"`

	// around the clock
	ClockTargets string `json:"clock_targets,omitempty"` // "1-20", "1-20,bull", "doubles", "triples"

	// killer
	Lives int `json:"lives,omitempty"`

	// elimination
	TargetScore int `json:"target_score,omitempty"`

	// shanghai / micky maus
	Rounds int `json:"rounds,omitempty"` // shanghai round count

	// match format; zero values mean a single standalone leg
	LegsToWin int `json:"legs_to_win,omitempty"`
	SetsToWin int `json:"sets_to_win,omitempty"`
}

// withDefaults fills unset options with the mode's conventional values.
func (o Options) withDefaults() Options {
	switch o.Mode {
	case ModeX01:
		if o.StartScore == 0 {
			o.StartScore = 501
		}
		if o.In == "" {
			o.In = SingleIn
		}
		if o.Out == "" {
			o.Out = checkout.DoubleOut
		}
	case ModeATC:
		if o.ClockTargets == "" {
			o.ClockTargets = "1-20"
		}
	case ModeKiller:
		if o.Lives == 0 {
			o.Lives = 3
		}
	case ModeElimination:
		if o.TargetScore == 0 {
			o.TargetScore = 301
		}
		if o.Out == "" {
			o.Out = checkout.SingleOut
		}
	case ModeShanghai:
		if o.Rounds == 0 {
			o.Rounds = 7
		}
	}
	return o
}

// validate rejects option combinations no mode can play.
func (o Options) validate() error {
	switch o.Mode {
	case ModeX01:
		if o.StartScore < 2 {
			return fmt.Errorf("%w: start score %d", ErrInvalidOptions, o.StartScore)
		}
	case ModeKiller:
		if o.Lives < 1 {
			return fmt.Errorf("%w: killer needs at least one life", ErrInvalidOptions)
		}
	case ModeElimination:
		if o.TargetScore < 2 {
			return fmt.Errorf("%w: target score %d", ErrInvalidOptions, o.TargetScore)
		}
	case ModeShanghai:
		if o.Rounds < 1 || o.Rounds > 20 {
			return fmt.Errorf("%w: shanghai rounds %d", ErrInvalidOptions, o.Rounds)
		}
	}
	return nil
}
