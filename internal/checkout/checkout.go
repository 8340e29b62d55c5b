// Package checkout computes legal finishing combinations for x01-style
// games. It is pure and side-effect free; both the finish-suggestion
// endpoint and the AI target selection consume it.
package checkout

import (
	"fmt"
	"sort"
)

// OutRule is the opt-out rule constraining the final dart of a finish.
type OutRule string

const (
	SingleOut  OutRule = "single"  // any dart may finish
	DoubleOut  OutRule = "double"  // final dart must be a double or inner bull
	MastersOut OutRule = "masters" // final dart must be a double, triple or inner bull
)

// Dart is one step of a finish path.
type Dart struct {
	Label  string `json:"label"` // e.g. "T20", "D16", "25", "BULL"
	Points int    `json:"points"`
}

// Path is an ordered 1-3 dart finish whose points sum to the target score
// and whose final dart satisfies the out rule.
type Path []Dart

// Maximum finishable scores per darts remaining. Double-out tops out at
// D25/110/170; single and masters finishes can end on a treble.
func maxFinish(out OutRule, dartsLeft int) int {
	last := 60
	if out == DoubleOut {
		last = 50
	}
	return last + (dartsLeft-1)*60
}

// dart value tables, highest first so that enumeration prefers the
// highest-scoring first dart.
var (
	allDarts    []Dart // every achievable single-dart value
	doubleOuts  []Dart // legal final darts under double-out
	mastersOuts []Dart // legal final darts under masters-out
)

func init() {
	for s := 20; s >= 1; s-- {
		allDarts = append(allDarts, Dart{fmt.Sprintf("T%d", s), s * 3})
	}
	allDarts = append(allDarts, Dart{"BULL", 50})
	for s := 20; s >= 1; s-- {
		allDarts = append(allDarts, Dart{fmt.Sprintf("D%d", s), s * 2})
	}
	allDarts = append(allDarts, Dart{"25", 25})
	for s := 20; s >= 1; s-- {
		allDarts = append(allDarts, Dart{fmt.Sprintf("%d", s), s})
	}
	sort.SliceStable(allDarts, func(i, j int) bool {
		return allDarts[i].Points > allDarts[j].Points
	})

	doubleOuts = append(doubleOuts, Dart{"BULL", 50})
	for s := 20; s >= 1; s-- {
		doubleOuts = append(doubleOuts, Dart{fmt.Sprintf("D%d", s), s * 2})
	}
	mastersOuts = append(mastersOuts, Dart{"BULL", 50})
	for s := 20; s >= 1; s-- {
		mastersOuts = append(mastersOuts, Dart{fmt.Sprintf("T%d", s), s * 3})
	}
	for s := 20; s >= 1; s-- {
		mastersOuts = append(mastersOuts, Dart{fmt.Sprintf("D%d", s), s * 2})
	}
}

func finishers(out OutRule) []Dart {
	switch out {
	case DoubleOut:
		return doubleOuts
	case MastersOut:
		return mastersOuts
	default:
		return allDarts
	}
}

// maxPaths bounds the number of alternatives Suggest returns; the first
// path is the primary suggestion.
const maxPaths = 8

// Suggest enumerates finish paths for the remaining score. dartsLeft must
// be 1..3. Paths are ordered shortest first, then by highest first dart.
// An empty result means the score cannot be finished (bogey scores, score
// 1 under double/masters out, or out-of-range input).
func Suggest(score int, out OutRule, dartsLeft int) []Path {
	if dartsLeft < 1 || dartsLeft > 3 {
		return nil
	}
	if score < 1 || score > maxFinish(out, dartsLeft) {
		return nil
	}
	if out != SingleOut && score < 2 {
		return nil
	}

	last := finishers(out)
	var paths []Path

	// 1-dart finishes
	for _, d := range last {
		if d.Points == score {
			paths = append(paths, Path{d})
		}
	}

	// 2-dart finishes
	if dartsLeft >= 2 {
		for _, first := range allDarts {
			rest := score - first.Points
			if rest < 1 {
				continue
			}
			for _, d := range last {
				if d.Points == rest {
					paths = append(paths, Path{first, d})
					break
				}
			}
			if len(paths) >= maxPaths {
				return paths
			}
		}
	}

	// 3-dart finishes
	if dartsLeft == 3 {
		for _, first := range allDarts {
			rest := score - first.Points
			if rest < 2 && out != SingleOut {
				continue
			}
			if rest < 1 {
				continue
			}
			for _, second := range allDarts {
				tail := rest - second.Points
				if tail < 1 {
					continue
				}
				for _, d := range last {
					if d.Points == tail {
						paths = append(paths, Path{first, second, d})
						break
					}
				}
				if len(paths) >= maxPaths {
					return paths
				}
			}
			if len(paths) >= maxPaths {
				break
			}
		}
	}

	return paths
}

// SuggestPreferred behaves like Suggest but puts a path ending on the
// player's preferred double (e.g. 16 for D16) first when one exists.
func SuggestPreferred(score int, out OutRule, dartsLeft, preferredDouble int) []Path {
	paths := Suggest(score, out, dartsLeft)
	if preferredDouble < 1 || preferredDouble > 20 {
		return paths
	}
	want := fmt.Sprintf("D%d", preferredDouble)
	for i, p := range paths {
		if p[len(p)-1].Label == want {
			if i > 0 {
				paths = append([]Path{p}, append(paths[:i:i], paths[i+1:]...)...)
			}
			return paths
		}
	}
	if p := pathEndingOn(score, preferredDouble, dartsLeft); p != nil {
		paths = append([]Path{p}, paths...)
	}
	return paths
}

// pathEndingOn builds a finish whose last dart is the given double, or
// nil when none fits in the dart budget.
func pathEndingOn(score, double, dartsLeft int) Path {
	final := Dart{fmt.Sprintf("D%d", double), double * 2}
	rest := score - final.Points
	if rest == 0 {
		return Path{final}
	}
	if rest < 1 {
		return nil
	}
	if dartsLeft >= 2 {
		for _, d := range allDarts {
			if d.Points == rest {
				return Path{d, final}
			}
		}
	}
	if dartsLeft == 3 {
		for _, first := range allDarts {
			tail := rest - first.Points
			if tail < 1 {
				continue
			}
			for _, second := range allDarts {
				if second.Points == tail {
					return Path{first, second, final}
				}
			}
		}
	}
	return nil
}

// CanFinish reports whether the score is finishable with the darts left.
func CanFinish(score int, out OutRule, dartsLeft int) bool {
	return len(Suggest(score, out, dartsLeft)) > 0
}

// Format renders a path the way scoreboards display it: "T20, T20, BULL".
func Format(p Path) string {
	s := ""
	for i, d := range p {
		if i > 0 {
			s += ", "
		}
		s += d.Label
	}
	return s
}
