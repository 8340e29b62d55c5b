// Package ai implements computer opponents. A Thrower picks the target
// a competent player would aim at for the current mode and score, then
// scatters the dart according to its skill level.
package ai

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/opendarts/scoring-api/internal/checkout"
	"github.com/opendarts/scoring-api/internal/game"
)

// Level grades a computer opponent from pub player to pro.
type Level int

const (
	LevelEasy   Level = 1
	LevelMedium Level = 2
	LevelHard   Level = 3
	LevelPro    Level = 4
)

// ParseLevel accepts the wire names for difficulty levels.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "easy":
		return LevelEasy, true
	case "medium":
		return LevelMedium, true
	case "hard":
		return LevelHard, true
	case "pro":
		return LevelPro, true
	}
	return 0, false
}

func (l Level) String() string {
	switch l {
	case LevelEasy:
		return "easy"
	case LevelMedium:
		return "medium"
	case LevelHard:
		return "hard"
	case LevelPro:
		return "pro"
	}
	return "unknown"
}

// accuracy holds the scatter parameters for one level.
type accuracy struct {
	ringChance float64 // chance the intended ring is hit
	missChance float64 // chance the dart leaves the board entirely
	drift      int     // max segments of sideways drift on a miss
}

var levelAccuracy = map[Level]accuracy{
	LevelEasy:   {ringChance: 0.30, missChance: 0.12, drift: 2},
	LevelMedium: {ringChance: 0.50, missChance: 0.06, drift: 2},
	LevelHard:   {ringChance: 0.72, missChance: 0.02, drift: 1},
	LevelPro:    {ringChance: 0.90, missChance: 0.01, drift: 1},
}

// boardOrder is the clockwise segment layout of a standard dartboard,
// used to pick realistic neighbours when a dart drifts.
var boardOrder = [20]int{20, 1, 18, 4, 13, 6, 10, 15, 2, 17, 3, 19, 7, 16, 8, 11, 14, 9, 12, 5}

func neighbor(segment, offset int) int {
	for i, s := range boardOrder {
		if s == segment {
			return boardOrder[((i+offset)%20+20)%20]
		}
	}
	return segment
}

// Thrower is one computer opponent. It is not safe for concurrent use.
type Thrower struct {
	level Level
	acc   accuracy
	rng   *rand.Rand
}

// New builds a thrower. The seed makes a session reproducible; pass a
// varying value for casual play.
func New(level Level, seed int64) *Thrower {
	acc, ok := levelAccuracy[level]
	if !ok {
		acc = levelAccuracy[LevelMedium]
	}
	return &Thrower{level: level, acc: acc, rng: rand.New(rand.NewSource(seed))}
}

func (t *Thrower) Level() Level { return t.level }

// Throw aims and releases one dart for the player in the given game.
func (t *Thrower) Throw(g *game.Game, p *game.Player) game.Throw {
	return t.scatter(t.aim(g, p))
}

// aim picks the throw a well-informed player would attempt.
func (t *Thrower) aim(g *game.Game, p *game.Player) game.Throw {
	switch g.Mode() {
	case game.ModeX01:
		return t.aimX01(g, p)
	case game.ModeCricket, game.ModeCutThroat, game.ModeTactics:
		return aimCricket(g, p)
	case game.ModeKiller:
		return aimKiller(g, p)
	case game.ModeElimination:
		return aimCountUp(g.Options().TargetScore - p.Score)
	case game.ModeMickyMaus, game.ModeShanghai:
		// marks and points both scale with the multiplier, so go for
		// the triple of the current target
		th := parseTarget(g.TargetHint(p))
		if th.Ring == game.RingSingle {
			th.Ring = game.RingTriple
		}
		return th
	}
	if hint := g.TargetHint(p); hint != "" {
		return parseTarget(hint)
	}
	return game.Throw{Ring: game.RingTriple, Segment: 20}
}

func (t *Thrower) aimX01(g *game.Game, p *game.Player) game.Throw {
	dartsLeft := 3 - g.DartsThrown()
	if dartsLeft < 1 {
		dartsLeft = 3
	}
	paths := checkout.SuggestPreferred(p.Score, g.Options().Out, dartsLeft, p.PreferredDouble)
	if len(paths) > 0 {
		return parseTarget(paths[0][0].Label)
	}
	// no finish from here: throw for maximum unless that would bust
	if p.Score-60 >= 2 {
		return game.Throw{Ring: game.RingTriple, Segment: 20}
	}
	return game.Throw{Ring: game.RingSingle, Segment: 1}
}

// aimCricket goes for the lowest-value target the thrower still has
// open, falling back to the bull.
func aimCricket(g *game.Game, p *game.Player) game.Throw {
	low := 15
	if g.Mode() == game.ModeTactics {
		low = 10
	}
	for s := 20; s >= low; s-- {
		if p.Marks[strconv.Itoa(s)] < 3 {
			return game.Throw{Ring: game.RingTriple, Segment: s}
		}
	}
	if p.Marks[game.BullTarget] < 3 {
		return game.Throw{Ring: game.RingOuterBull}
	}
	// all closed: punish whoever is still open on the highest number
	for s := 20; s >= low; s-- {
		for _, opp := range g.ActiveOpponents(p) {
			if opp.Marks[strconv.Itoa(s)] < 3 {
				return game.Throw{Ring: game.RingTriple, Segment: s}
			}
		}
	}
	return game.Throw{Ring: game.RingOuterBull}
}

func aimKiller(g *game.Game, p *game.Player) game.Throw {
	if p.LifeSegment == 0 {
		// claim the highest free segment
		taken := make(map[int]bool)
		for _, other := range g.Players() {
			taken[other.LifeSegment] = true
		}
		for s := 20; s >= 1; s-- {
			if !taken[s] {
				return game.Throw{Ring: game.RingSingle, Segment: s}
			}
		}
		return game.Throw{Ring: game.RingOuterBull}
	}
	if !p.Killer {
		if p.LifeSegment > 20 {
			return game.Throw{Ring: game.RingInnerBull}
		}
		return game.Throw{Ring: game.RingDouble, Segment: p.LifeSegment}
	}
	var target *game.Player
	for _, opp := range g.ActiveOpponents(p) {
		if opp.LifeSegment == 0 {
			continue
		}
		if target == nil || opp.Lives > target.Lives {
			target = opp
		}
	}
	if target == nil {
		return game.Throw{Ring: game.RingMiss}
	}
	if target.LifeSegment > 20 {
		return game.Throw{Ring: game.RingInnerBull}
	}
	return game.Throw{Ring: game.RingTriple, Segment: target.LifeSegment}
}

// aimCountUp picks the biggest dart that cannot overshoot the remaining
// score.
func aimCountUp(remaining int) game.Throw {
	switch {
	case remaining >= 60:
		return game.Throw{Ring: game.RingTriple, Segment: 20}
	case remaining >= 3 && remaining%3 == 0 && remaining/3 <= 20:
		return game.Throw{Ring: game.RingTriple, Segment: remaining / 3}
	case remaining >= 2 && remaining%2 == 0 && remaining/2 <= 20:
		return game.Throw{Ring: game.RingDouble, Segment: remaining / 2}
	case remaining >= 1 && remaining <= 20:
		return game.Throw{Ring: game.RingSingle, Segment: remaining}
	default:
		return game.Throw{Ring: game.RingSingle, Segment: 1}
	}
}

// parseTarget turns a checkout label or target hint into an intended
// throw: "T20", "D16", "S15", "25", "BULL", "bull", or a bare number.
func parseTarget(label string) game.Throw {
	switch strings.ToLower(label) {
	case "bull", "be":
		return game.Throw{Ring: game.RingInnerBull}
	case "25":
		return game.Throw{Ring: game.RingOuterBull}
	}
	ring := game.RingSingle
	num := label
	switch label[0] {
	case 'T':
		ring, num = game.RingTriple, label[1:]
	case 'D':
		ring, num = game.RingDouble, label[1:]
	case 'S':
		num = label[1:]
	}
	segment, err := strconv.Atoi(num)
	if err != nil || segment < 1 || segment > 20 {
		return game.Throw{Ring: game.RingTriple, Segment: 20}
	}
	return game.Throw{Ring: ring, Segment: segment}
}

// scatter perturbs the intended throw according to the thrower's level.
func (t *Thrower) scatter(aim game.Throw) game.Throw {
	if aim.Ring == game.RingMiss {
		return aim
	}
	if t.rng.Float64() < t.acc.missChance {
		return game.Throw{Ring: game.RingMiss}
	}

	if aim.Ring == game.RingInnerBull || aim.Ring == game.RingOuterBull {
		if t.rng.Float64() < t.acc.ringChance {
			return aim
		}
		// bull misses land on the outer bull or a random single
		if aim.Ring == game.RingInnerBull && t.rng.Float64() < 0.5 {
			return game.Throw{Ring: game.RingOuterBull}
		}
		return game.Throw{Ring: game.RingSingle, Segment: boardOrder[t.rng.Intn(20)]}
	}

	segment := aim.Segment
	if t.rng.Float64() >= t.acc.ringChance {
		// sideways drift
		offset := t.rng.Intn(t.acc.drift) + 1
		if t.rng.Intn(2) == 0 {
			offset = -offset
		}
		segment = neighbor(segment, offset)
	}

	ring := aim.Ring
	if t.rng.Float64() >= t.acc.ringChance {
		// ring slips are almost always into the fat single
		ring = game.RingSingle
	}
	return game.Throw{Ring: ring, Segment: segment}
}
