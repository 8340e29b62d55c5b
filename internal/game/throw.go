// Package game implements the darts rules engine: the throw and player data
// model, one scoring strategy per game mode, and the turn orchestrator that
// sequences players across rounds, legs and sets.
package game

import "fmt"

// Ring identifies the board ring a dart landed in.
type Ring string

const (
	RingMiss      Ring = "miss"
	RingSingle    Ring = "single"
	RingDouble    Ring = "double"
	RingTriple    Ring = "triple"
	RingOuterBull Ring = "bull"     // 25
	RingInnerBull Ring = "bullseye" // 50, counts as a double for out rules
)

// BullTarget is the scoreboard key used for both bull rings.
const BullTarget = "bull"

// Throw is the immutable outcome of a single dart. Points is derived from
// ring and segment at construction and never recomputed.
type Throw struct {
	Ring    Ring `json:"ring"`
	Segment int  `json:"segment,omitempty"`
	Points  int  `json:"points"`
}

// NewThrow validates a ring/segment combination and derives its point value.
// Segment is ignored for miss and bull rings.
func NewThrow(ring Ring, segment int) (Throw, error) {
	switch ring {
	case RingMiss:
		return Throw{Ring: RingMiss}, nil
	case RingOuterBull:
		return Throw{Ring: ring, Points: 25}, nil
	case RingInnerBull:
		return Throw{Ring: ring, Points: 50}, nil
	case RingSingle, RingDouble, RingTriple:
		if segment < 1 || segment > 20 {
			return Throw{}, fmt.Errorf("%w: segment %d out of range", ErrInvalidThrow, segment)
		}
		return Throw{Ring: ring, Segment: segment, Points: segment * ringMultiplier(ring)}, nil
	default:
		return Throw{}, fmt.Errorf("%w: unknown ring %q", ErrInvalidThrow, ring)
	}
}

func ringMultiplier(r Ring) int {
	switch r {
	case RingDouble:
		return 2
	case RingTriple:
		return 3
	default:
		return 1
	}
}

// Marks returns the number of marks a throw scores on its target in the
// cricket family of games. Bull rings score on the shared bull target.
func (t Throw) Marks() int {
	switch t.Ring {
	case RingInnerBull:
		return 2
	case RingOuterBull:
		return 1
	case RingSingle, RingDouble, RingTriple:
		return ringMultiplier(t.Ring)
	default:
		return 0
	}
}

// Target returns the scoreboard key this throw lands on, or "" for a miss.
func (t Throw) Target() string {
	switch t.Ring {
	case RingOuterBull, RingInnerBull:
		return BullTarget
	case RingSingle, RingDouble, RingTriple:
		return fmt.Sprintf("%d", t.Segment)
	default:
		return ""
	}
}

// IsDouble reports whether the throw satisfies a double-out rule. The inner
// bull counts as the double of 25.
func (t Throw) IsDouble() bool {
	return t.Ring == RingDouble || t.Ring == RingInnerBull
}

// IsMasters reports whether the throw satisfies a masters-out rule.
func (t Throw) IsMasters() bool {
	return t.Ring == RingDouble || t.Ring == RingTriple || t.Ring == RingInnerBull
}

func (t Throw) String() string {
	switch t.Ring {
	case RingMiss:
		return "miss"
	case RingOuterBull:
		return "25"
	case RingInnerBull:
		return "bull"
	case RingDouble:
		return fmt.Sprintf("D%d", t.Segment)
	case RingTriple:
		return fmt.Sprintf("T%d", t.Segment)
	default:
		return fmt.Sprintf("%d", t.Segment)
	}
}
