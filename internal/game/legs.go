package game

import "fmt"

// MatchThrowResult extends a throw result with leg, set and match
// transitions. LegStats holds each player's stats for the leg that just
// ended and is only set when LegEnded is true.
type MatchThrowResult struct {
	ThrowResult
	LegEnded      bool             `json:"leg_ended"`
	LegWinnerID   string           `json:"leg_winner_id,omitempty"`
	LegStats      map[string]Stats `json:"leg_stats,omitempty"`
	SetEnded      bool             `json:"set_ended"`
	MatchOver     bool             `json:"match_over"`
	MatchWinnerID string           `json:"match_winner_id,omitempty"`
}

// Seat preserves a player's identity and presets across legs.
type Seat struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PreferredDouble int    `json:"preferred_double,omitempty"`
	LifeSegment     int    `json:"life_segment,omitempty"`
}

// Match plays a best-of series of legs, optionally grouped into sets.
// The throw-off alternates: each leg starts one seat later than the
// previous one.
type Match struct {
	id        string
	opts      Options
	seats     []Seat
	legsToWin int
	setsToWin int

	legNum   int // 1-based across the whole match
	legWins  map[string]int
	setWins  map[string]int
	totals   map[string]Stats
	current  *Game
	status   Status
	winnerID string
}

// NewMatch starts a match of the given format. legsToWin defaults to 1;
// setsToWin 0 means the match is decided on legs alone.
func NewMatch(id string, opts Options, roster []*Player) (*Match, error) {
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidOptions)
	}
	m := &Match{
		id:        id,
		opts:      opts,
		legsToWin: opts.LegsToWin,
		setsToWin: opts.SetsToWin,
		legWins:   make(map[string]int),
		setWins:   make(map[string]int),
		totals:    make(map[string]Stats),
		status:    StatusActive,
	}
	if m.legsToWin < 1 {
		m.legsToWin = 1
	}
	for _, p := range roster {
		m.seats = append(m.seats, Seat{
			ID:              p.ID,
			Name:            p.Name,
			PreferredDouble: p.PreferredDouble,
			LifeSegment:     p.LifeSegment,
		})
	}
	if err := m.startLeg(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Match) ID() string              { return m.id }
func (m *Match) Seats() []Seat           { return m.seats }
func (m *Match) Options() Options        { return m.opts }
func (m *Match) Status() Status          { return m.status }
func (m *Match) WinnerID() string        { return m.winnerID }
func (m *Match) CurrentLeg() *Game       { return m.current }
func (m *Match) LegNumber() int          { return m.legNum }
func (m *Match) LegWins() map[string]int { return m.legWins }
func (m *Match) SetWins() map[string]int { return m.setWins }

// Totals returns the player's accumulated stats over finished legs plus
// the running leg.
func (m *Match) Totals(id string) Stats {
	total := m.totals[id]
	if m.current != nil {
		if p, err := m.current.Player(id); err == nil {
			total = addStats(total, p.Stats)
		}
	}
	return total
}

func addStats(a, b Stats) Stats {
	a.Throws += b.Throws
	a.Points += b.Points
	a.Turns += b.Turns
	a.Busts += b.Busts
	a.Marks += b.Marks
	if b.BestTurn > a.BestTurn {
		a.BestTurn = b.BestTurn
	}
	return a
}

// startLeg builds a fresh game with the roster rotated by one seat per
// leg.
func (m *Match) startLeg() error {
	m.legNum++
	n := len(m.seats)
	start := (m.legNum - 1) % n
	roster := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		seat := m.seats[(start+i)%n]
		p := newPlayer(seat.ID, seat.Name)
		p.PreferredDouble = seat.PreferredDouble
		p.LifeSegment = seat.LifeSegment
		roster = append(roster, p)
	}
	g, err := NewGame(fmt.Sprintf("%s-leg-%d", m.id, m.legNum), m.opts, roster)
	if err != nil {
		return err
	}
	m.current = g
	return nil
}

// SubmitThrow scores a dart in the running leg and rolls leg and set
// wins forward, starting the next leg when one finishes.
func (m *Match) SubmitThrow(t Throw) (MatchThrowResult, error) {
	if m.status != StatusActive {
		return MatchThrowResult{}, ErrGameOver
	}
	inner, err := m.current.SubmitThrow(t)
	if err != nil {
		return MatchThrowResult{}, err
	}
	res := MatchThrowResult{ThrowResult: inner}
	if !inner.GameOver {
		return res, nil
	}

	res.LegEnded = true
	res.LegWinnerID = inner.WinnerID
	res.LegStats = make(map[string]Stats, len(m.current.Players()))
	for _, p := range m.current.Players() {
		res.LegStats[p.ID] = p.Stats
		m.totals[p.ID] = addStats(m.totals[p.ID], p.Stats)
	}

	if inner.WinnerID != "" {
		m.legWins[inner.WinnerID]++
		if m.legWins[inner.WinnerID] >= m.legsToWin {
			if m.setsToWin > 0 {
				res.SetEnded = true
				m.setWins[inner.WinnerID]++
				m.legWins = make(map[string]int)
				if m.setWins[inner.WinnerID] >= m.setsToWin {
					m.finish(inner.WinnerID)
					res.MatchOver = true
					res.MatchWinnerID = inner.WinnerID
					return res, nil
				}
			} else {
				m.finish(inner.WinnerID)
				res.MatchOver = true
				res.MatchWinnerID = inner.WinnerID
				return res, nil
			}
		}
	}

	if err := m.startLeg(); err != nil {
		return res, err
	}
	return res, nil
}

func (m *Match) finish(winnerID string) {
	m.status = StatusFinished
	m.winnerID = winnerID
	m.current = nil
}

// UndoLastThrow delegates to the running leg. A finished leg cannot be
// reopened.
func (m *Match) UndoLastThrow() (Throw, error) {
	if m.status != StatusActive {
		return Throw{}, ErrGameOver
	}
	return m.current.UndoLastThrow()
}

// RemovePlayer drops a player from the running leg and from future legs.
func (m *Match) RemovePlayer(id string) error {
	if m.status != StatusActive {
		return ErrGameOver
	}
	if err := m.current.RemovePlayer(id); err != nil {
		return err
	}
	for i, seat := range m.seats {
		if seat.ID == id {
			m.seats = append(m.seats[:i:i], m.seats[i+1:]...)
			break
		}
	}
	if m.current.Over() {
		// walkover decided the leg; treat it as deciding the match
		m.finish(m.current.WinnerID())
	}
	return nil
}
