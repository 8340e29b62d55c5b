package game

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SaveVersion is the current save schema. Restore accepts this version
// only; older dumps are rejected rather than silently migrated.
const SaveVersion = 3

// envelope wraps a payload with schema version and integrity checksum.
// The checksum is sha256 over the raw payload bytes, so any edit to the
// saved state invalidates it.
type envelope struct {
	Version  int             `json:"version"`
	Kind     string          `json:"kind"`
	Checksum string          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	kindGame  = "game"
	kindMatch = "match"
)

type savedPlayer struct {
	Player
	TurnStartScore  int  `json:"turn_start_score"`
	TurnStartOpened bool `json:"turn_start_opened"`
	TurnPoints      int  `json:"turn_points"`
}

type savedGame struct {
	ID          string        `json:"id"`
	Options     Options       `json:"options"`
	Players     []savedPlayer `json:"players"`
	Round       int           `json:"round"`
	Current     int           `json:"current"`
	DartsThrown int           `json:"darts_thrown"`
	Status      Status        `json:"status"`
	WinnerID    string        `json:"winner_id,omitempty"`
	History     []ThrowLog    `json:"history,omitempty"`
}

type savedMatch struct {
	ID       string           `json:"id"`
	Options  Options          `json:"options"`
	Seats    []Seat           `json:"seats"`
	LegNum   int              `json:"leg_num"`
	LegWins  map[string]int   `json:"leg_wins"`
	SetWins  map[string]int   `json:"set_wins"`
	Totals   map[string]Stats `json:"totals"`
	Status   Status           `json:"status"`
	WinnerID string           `json:"winner_id,omitempty"`
	Leg      *savedGame       `json:"leg,omitempty"`
}

func seal(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal save payload: %w", err)
	}
	sum := sha256.Sum256(raw)
	return json.Marshal(envelope{
		Version:  SaveVersion,
		Kind:     kind,
		Checksum: hex.EncodeToString(sum[:]),
		Payload:  raw,
	})
}

func open(kind string, data []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleSave, err)
	}
	if env.Version != SaveVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrIncompatibleSave, env.Version, SaveVersion)
	}
	if env.Kind != kind {
		return nil, fmt.Errorf("%w: kind %q, want %q", ErrIncompatibleSave, env.Kind, kind)
	}
	sum := sha256.Sum256(env.Payload)
	if hex.EncodeToString(sum[:]) != env.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrIncompatibleSave)
	}
	return env.Payload, nil
}

func (g *Game) dump() *savedGame {
	sg := &savedGame{
		ID:          g.id,
		Options:     g.opts,
		Round:       g.round,
		Current:     g.current,
		DartsThrown: g.dartsThrown,
		Status:      g.status,
		WinnerID:    g.winnerID,
		History:     g.history,
	}
	for _, p := range g.players {
		sg.Players = append(sg.Players, savedPlayer{
			Player:          *p.clone(),
			TurnStartScore:  p.turnStartScore,
			TurnStartOpened: p.turnStartOpened,
			TurnPoints:      p.turnPoints,
		})
	}
	return sg
}

// Export serializes the game for storage or transfer. The undo stack is
// not part of the save; restored games start with an empty turn history
// to rewind into.
func (g *Game) Export() ([]byte, error) {
	return seal(kindGame, g.dump())
}

func restoreGame(sg *savedGame) (*Game, error) {
	logic, err := newModeLogic(sg.Options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleSave, err)
	}
	if len(sg.Players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrIncompatibleSave)
	}
	if sg.Current < 0 || sg.Current >= len(sg.Players) {
		return nil, fmt.Errorf("%w: current player index %d", ErrIncompatibleSave, sg.Current)
	}
	if sg.DartsThrown < 0 || sg.DartsThrown >= dartsPerTurn+1 {
		return nil, fmt.Errorf("%w: darts thrown %d", ErrIncompatibleSave, sg.DartsThrown)
	}

	g := &Game{
		id:          sg.ID,
		opts:        sg.Options,
		logic:       logic,
		round:       sg.Round,
		current:     sg.Current,
		dartsThrown: sg.DartsThrown,
		status:      sg.Status,
		winnerID:    sg.WinnerID,
		history:     sg.History,
	}
	for i := range sg.Players {
		sp := &sg.Players[i]
		p := sp.Player.clone()
		p.turnStartScore = sp.TurnStartScore
		p.turnStartOpened = sp.TurnStartOpened
		p.turnPoints = sp.TurnPoints
		g.players = append(g.players, p)
	}
	return g, nil
}

// Restore rebuilds a game from Export output, verifying schema version
// and checksum first.
func Restore(data []byte) (*Game, error) {
	raw, err := open(kindGame, data)
	if err != nil {
		return nil, err
	}
	var sg savedGame
	if err := json.Unmarshal(raw, &sg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleSave, err)
	}
	return restoreGame(&sg)
}

// Export serializes the match, including the leg in progress.
func (m *Match) Export() ([]byte, error) {
	sm := &savedMatch{
		ID:       m.id,
		Options:  m.opts,
		Seats:    m.seats,
		LegNum:   m.legNum,
		LegWins:  m.legWins,
		SetWins:  m.setWins,
		Totals:   m.totals,
		Status:   m.status,
		WinnerID: m.winnerID,
	}
	if m.current != nil {
		sm.Leg = m.current.dump()
	}
	return seal(kindMatch, sm)
}

// RestoreMatch rebuilds a match from Export output.
func RestoreMatch(data []byte) (*Match, error) {
	raw, err := open(kindMatch, data)
	if err != nil {
		return nil, err
	}
	var sm savedMatch
	if err := json.Unmarshal(raw, &sm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleSave, err)
	}
	if len(sm.Seats) == 0 {
		return nil, fmt.Errorf("%w: no seats", ErrIncompatibleSave)
	}
	m := &Match{
		id:        sm.ID,
		opts:      sm.Options,
		seats:     sm.Seats,
		legsToWin: sm.Options.LegsToWin,
		setsToWin: sm.Options.SetsToWin,
		legNum:    sm.LegNum,
		legWins:   sm.LegWins,
		setWins:   sm.SetWins,
		totals:    sm.Totals,
		status:    sm.Status,
		winnerID:  sm.WinnerID,
	}
	if m.legsToWin < 1 {
		m.legsToWin = 1
	}
	if m.legWins == nil {
		m.legWins = make(map[string]int)
	}
	if m.setWins == nil {
		m.setWins = make(map[string]int)
	}
	if m.totals == nil {
		m.totals = make(map[string]Stats)
	}
	if sm.Leg != nil {
		leg, err := restoreGame(sm.Leg)
		if err != nil {
			return nil, err
		}
		m.current = leg
	} else if m.status == StatusActive {
		return nil, fmt.Errorf("%w: active match without a leg", ErrIncompatibleSave)
	}
	return m, nil
}
