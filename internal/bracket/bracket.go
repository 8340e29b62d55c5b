// Package bracket builds and advances knockout tournament brackets.
// Matches are wired together at build time; recording a result pushes
// the winner (and in double elimination the loser) into the next match's
// open slot. Byes resolve themselves during the build.
package bracket

import (
	"errors"
	"fmt"
	"sort"
)

// Format selects the bracket shape.
type Format string

const (
	SingleElimination Format = "single_elimination"
	DoubleElimination Format = "double_elimination"
)

var (
	ErrTooFewPlayers  = errors.New("bracket needs at least two players")
	ErrUnknownMatch   = errors.New("unknown match")
	ErrMatchNotReady  = errors.New("match is not ready to play")
	ErrMatchPlayed    = errors.New("match already has a result")
	ErrNotParticipant = errors.New("winner is not a participant of the match")
	ErrUnknownFormat  = errors.New("unknown bracket format")
)

const (
	slotHome = 0
	slotAway = 1
)

// link routes a match outcome into a slot of a later match.
type link struct {
	match *Match
	slot  int
}

// Match is one node of the bracket. Home and Away hold player ids once
// known; empty strings mark slots still waiting on an earlier result.
type Match struct {
	UID    string `json:"uid"`
	Round  int    `json:"round"`
	Order  int    `json:"order"`
	Home   string `json:"home,omitempty"`
	Away   string `json:"away,omitempty"`
	Winner string `json:"winner,omitempty"`
	Loser  string `json:"loser,omitempty"`
	Bye    bool   `json:"bye,omitempty"`
	Played bool   `json:"played"`

	// Losers marks a losers-bracket match in double elimination.
	Losers bool `json:"losers,omitempty"`

	winnerTo *link
	loserTo  *link

	// voidHome/voidAway mark slots whose source can never deliver a
	// player, such as the loser of a bye.
	voidHome bool
	voidAway bool
}

func (m *Match) ready() bool {
	return !m.Played && m.Home != "" && m.Away != ""
}

func (m *Match) has(id string) bool {
	return id != "" && (m.Home == id || m.Away == id)
}

// Bracket tracks every match of one knockout tournament.
type Bracket struct {
	format     Format
	players    []string
	matches    []*Match
	byUID      map[string]*Match
	thirdPlace *Match
	grandFinal *Match
	resetFinal *Match
	lbFinal    *Match
	final      *Match

	done   bool
	first  string
	second string
	third  string
}

// Option tweaks bracket construction.
type Option func(*config)

type config struct {
	thirdPlace bool
}

// WithThirdPlaceMatch adds a bronze final between the semifinal losers.
// Single elimination only.
func WithThirdPlaceMatch() Option {
	return func(c *config) { c.thirdPlace = true }
}

// New builds a bracket over the players in seeding order: the first
// entry is the top seed and collects the first bye when the field is
// not a power of two.
func New(format Format, players []string, opts ...Option) (*Bracket, error) {
	if len(players) < 2 {
		return nil, ErrTooFewPlayers
	}
	seen := make(map[string]bool, len(players))
	for _, id := range players {
		if id == "" || seen[id] {
			return nil, fmt.Errorf("%w: duplicate or empty player id %q", ErrTooFewPlayers, id)
		}
		seen[id] = true
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Bracket{
		format:  format,
		players: append([]string(nil), players...),
		byUID:   make(map[string]*Match),
	}
	switch format {
	case SingleElimination:
		b.buildSingle(cfg.thirdPlace)
	case DoubleElimination:
		b.buildDouble()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	b.sortMatches()
	b.resolveByes()
	return b, nil
}

func (b *Bracket) Format() Format { return b.format }

// Matches returns every match, winners bracket first, in round order.
func (b *Bracket) Matches() []*Match { return b.matches }

// Match finds a match by uid.
func (b *Bracket) Match(uid string) (*Match, error) {
	m, ok := b.byUID[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatch, uid)
	}
	return m, nil
}

// Done reports whether the tournament has a champion.
func (b *Bracket) Done() bool { return b.done }

// Podium lists final placements, champion first. Third place is only
// present when the format decides one.
func (b *Bracket) Podium() []string {
	if !b.done {
		return nil
	}
	podium := []string{b.first, b.second}
	if b.third != "" {
		podium = append(podium, b.third)
	}
	return podium
}

// NextMatch returns the earliest playable match, or nil when nothing is
// ready.
func (b *Bracket) NextMatch() *Match {
	for _, m := range b.matches {
		if m.ready() {
			return m
		}
	}
	return nil
}

// RecordResult stores a winner for a ready match and advances the
// bracket.
func (b *Bracket) RecordResult(uid, winnerID string) error {
	m, err := b.Match(uid)
	if err != nil {
		return err
	}
	if m.Played {
		return fmt.Errorf("%w: %s", ErrMatchPlayed, uid)
	}
	if !m.ready() {
		return fmt.Errorf("%w: %s", ErrMatchNotReady, uid)
	}
	if !m.has(winnerID) {
		return fmt.Errorf("%w: %q in %s", ErrNotParticipant, winnerID, uid)
	}

	m.Played = true
	m.Winner = winnerID
	if m.Home == winnerID {
		m.Loser = m.Away
	} else {
		m.Loser = m.Home
	}

	b.afterResult(m)
	return nil
}

func (b *Bracket) afterResult(m *Match) {
	switch m {
	case b.grandFinal:
		// the winners-bracket champion sits in the home slot; losing
		// the grand final forces the bracket reset
		if m.Winner == m.Home {
			b.cancel(b.resetFinal)
			b.crown(m.Winner, m.Loser)
		} else {
			b.resetFinal.Home = m.Home
			b.resetFinal.Away = m.Away
		}
		return
	case b.resetFinal:
		b.crown(m.Winner, m.Loser)
		return
	}

	b.propagate(m)

	if b.format == SingleElimination && m == b.final {
		b.first, b.second = m.Winner, m.Loser
		if b.thirdPlace == nil {
			b.done = true
		}
	}
	if m == b.thirdPlace {
		b.third = m.Winner
	}
	if b.format == DoubleElimination && m == b.lbFinal {
		b.third = m.Loser
	}
	if b.format == SingleElimination && b.first != "" && (b.thirdPlace == nil || b.thirdPlace.Played) {
		b.done = true
	}
}

func (b *Bracket) crown(first, second string) {
	b.first, b.second = first, second
	b.done = true
}

// cancel retires a match that will never be played.
func (b *Bracket) cancel(m *Match) {
	if m != nil {
		m.Played = true
	}
}

func (b *Bracket) propagate(m *Match) {
	if m.winnerTo != nil {
		b.fill(m.winnerTo, m.Winner)
	}
	if m.loserTo != nil {
		if m.Loser == "" {
			b.void(m.loserTo)
		} else {
			b.fill(m.loserTo, m.Loser)
		}
	}
}

func (b *Bracket) fill(l *link, id string) {
	if l.slot == slotHome {
		l.match.Home = id
	} else {
		l.match.Away = id
	}
	b.maybeBye(l.match)
}

func (b *Bracket) void(l *link) {
	if l.slot == slotHome {
		l.match.voidHome = true
	} else {
		l.match.voidAway = true
	}
	b.maybeBye(l.match)
}

// maybeBye auto-advances a match whose other slot can never be filled.
// A match fed by two byes is itself retired as a bye.
func (b *Bracket) maybeBye(m *Match) {
	if m.Played {
		return
	}
	if m.voidHome && m.voidAway {
		m.Played = true
		m.Bye = true
		if m.winnerTo != nil {
			b.void(m.winnerTo)
		}
		if m.loserTo != nil {
			b.void(m.loserTo)
		}
		return
	}
	switch {
	case m.Home != "" && m.voidAway:
		m.Winner = m.Home
	case m.Away != "" && m.voidHome:
		m.Winner = m.Away
	default:
		return
	}
	m.Played = true
	m.Bye = true
	b.afterResult(m)
}

// resolveByes settles first-round byes created by a non power-of-two
// field.
func (b *Bracket) resolveByes() {
	for _, m := range b.matches {
		if m.Round == 1 && !m.Losers && !m.Played {
			b.maybeBye(m)
		}
	}
}

func (b *Bracket) sortMatches() {
	sort.SliceStable(b.matches, func(i, j int) bool {
		a, c := b.matches[i], b.matches[j]
		if a.Losers != c.Losers {
			return !a.Losers
		}
		if a.Round != c.Round {
			return a.Round < c.Round
		}
		return a.Order < c.Order
	})
}

func (b *Bracket) register(m *Match) *Match {
	b.matches = append(b.matches, m)
	b.byUID[m.UID] = m
	return m
}

// seedOrder returns the board positions for standard seeding, so the
// top seeds meet as late as possible and byes land on the top seeds.
func seedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		next := make([]int, 0, len(order)*2)
		mirror := len(order)*2 + 1
		for _, s := range order {
			next = append(next, s, mirror-s)
		}
		order = next
	}
	return order
}

func bracketSize(n int) (size, rounds int) {
	size, rounds = 1, 0
	for size < n {
		size <<= 1
		rounds++
	}
	return size, rounds
}
