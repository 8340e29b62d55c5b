package game

import "fmt"

// Status is the lifecycle state of a game.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
	StatusDraw     Status = "draw"
)

const dartsPerTurn = 3

// ThrowLog is one entry of the game's throw history.
type ThrowLog struct {
	Round    int    `json:"round"`
	PlayerID string `json:"player_id"`
	Throw    Throw  `json:"throw"`
	Outcome  string `json:"outcome"`
}

// ThrowResult reports what a submitted throw did.
type ThrowResult struct {
	PlayerID   string `json:"player_id"`
	Throw      Throw  `json:"throw"`
	Outcome    string `json:"outcome"`
	TurnEnded  bool   `json:"turn_ended"`
	RoundEnded bool   `json:"round_ended"`
	GameOver   bool   `json:"game_over"`
	WinnerID   string `json:"winner_id,omitempty"`
}

// snapshot captures everything a single undo must restore.
type snapshot struct {
	players     []*Player
	round       int
	current     int
	dartsThrown int
	historyLen  int
}

type turnRecord struct {
	throw Throw
	snap  snapshot
}

// Game sequences players through turns and rounds and delegates scoring
// to its ModeLogic. It is not safe for concurrent use; callers serialize
// access.
type Game struct {
	id      string
	opts    Options
	logic   ModeLogic
	players []*Player

	round       int // 1-based
	current     int // index into players
	dartsThrown int
	status      Status
	winnerID    string

	turn     []turnRecord
	history  []ThrowLog
	turnOver bool // set by a mode to close the turn after the current dart
}

// closeTurn makes the current dart the last one of the turn.
func (g *Game) closeTurn() { g.turnOver = true }

// NewGame builds a game for the given mode options and player roster.
// Player ids must be unique and non-empty.
func NewGame(id string, opts Options, roster []*Player) (*Game, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	logic, err := newModeLogic(opts)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidOptions)
	}
	if opts.Mode == ModeKiller && len(roster) < 2 {
		return nil, fmt.Errorf("%w: killer needs at least two players", ErrInvalidOptions)
	}
	seen := make(map[string]bool, len(roster))
	for _, p := range roster {
		if p.ID == "" || seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate or empty player id %q", ErrInvalidOptions, p.ID)
		}
		seen[p.ID] = true
		if p.Marks == nil {
			p.Marks = make(map[string]int)
		}
	}

	g := &Game{
		id:      id,
		opts:    opts,
		logic:   logic,
		players: roster,
		round:   1,
		status:  StatusActive,
	}
	logic.Init(g)
	return g, nil
}

// NewRoster builds players from parallel id/name pairs.
func NewRoster(ids, names []string) []*Player {
	players := make([]*Player, len(ids))
	for i := range ids {
		name := ids[i]
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		players[i] = newPlayer(ids[i], name)
	}
	return players
}

func (g *Game) ID() string       { return g.id }
func (g *Game) Mode() Mode       { return g.opts.Mode }
func (g *Game) Options() Options { return g.opts }
func (g *Game) Status() Status   { return g.status }
func (g *Game) Round() int       { return g.round }
func (g *Game) WinnerID() string { return g.winnerID }
func (g *Game) Over() bool       { return g.status != StatusActive }

// DartsThrown reports how many darts the current player has used this turn.
func (g *Game) DartsThrown() int { return g.dartsThrown }

// Players returns the roster in play order.
func (g *Game) Players() []*Player { return g.players }

// History returns the throw log in submission order.
func (g *Game) History() []ThrowLog { return g.history }

// CurrentPlayer returns the player to throw next, or nil once the game
// is over.
func (g *Game) CurrentPlayer() *Player {
	if g.status != StatusActive || len(g.players) == 0 {
		return nil
	}
	return g.players[g.current]
}

// Player finds a roster member by id.
func (g *Game) Player(id string) (*Player, error) {
	for _, p := range g.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
}

// ActiveOpponents returns every non-eliminated player other than p.
func (g *Game) ActiveOpponents(p *Player) []*Player {
	var out []*Player
	for _, other := range g.players {
		if other.ID != p.ID && !other.Eliminated {
			out = append(out, other)
		}
	}
	return out
}

func (g *Game) activeCount() int {
	n := 0
	for _, p := range g.players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

// finishWin and finishDraw are called by mode logic.
func (g *Game) finishWin(p *Player) {
	g.status = StatusFinished
	g.winnerID = p.ID
}

func (g *Game) finishDraw() {
	g.status = StatusDraw
}

// SubmitThrow scores one dart for the current player and advances turn
// and round state as needed.
func (g *Game) SubmitThrow(t Throw) (ThrowResult, error) {
	if g.status != StatusActive {
		return ThrowResult{}, ErrGameOver
	}
	t, err := NewThrow(t.Ring, t.Segment)
	if err != nil {
		return ThrowResult{}, err
	}

	p := g.players[g.current]
	if g.dartsThrown == 0 {
		g.beginTurn(p)
	}
	g.turn = append(g.turn, turnRecord{throw: t, snap: g.capture()})

	p.Stats.Throws++
	outcome := g.logic.Apply(g, p, t)
	g.dartsThrown++

	res := ThrowResult{
		PlayerID: p.ID,
		Throw:    t,
		Outcome:  outcome.String(),
	}
	g.history = append(g.history, ThrowLog{
		Round:    g.round,
		PlayerID: p.ID,
		Throw:    t,
		Outcome:  outcome.String(),
	})

	if outcome == OutcomeBust {
		p.Stats.Busts++
	}
	turnEnded := outcome == OutcomeBust ||
		g.dartsThrown == dartsPerTurn ||
		p.Eliminated ||
		g.turnOver ||
		g.status != StatusActive
	g.turnOver = false

	if turnEnded {
		res.TurnEnded = true
		g.logic.EndTurn(g, p)
		if g.status == StatusActive {
			res.RoundEnded = g.advanceTurn()
		}
	}

	if g.status != StatusActive {
		res.GameOver = true
		res.WinnerID = g.winnerID
		if g.status == StatusDraw && outcome != OutcomeDraw {
			res.Outcome = OutcomeDraw.String()
		}
		if g.status == StatusFinished && outcome != OutcomeWin {
			res.Outcome = OutcomeWin.String()
		}
	}
	return res, nil
}

func (g *Game) beginTurn(p *Player) {
	p.Stats.Turns++
	p.turnStartScore = p.Score
	p.turnStartOpened = p.Opened
	p.turnPoints = 0
}

// advanceTurn moves play to the next active player and reports whether a
// round boundary was crossed.
func (g *Game) advanceTurn() bool {
	g.turn = g.turn[:0]
	g.dartsThrown = 0

	roundEnded := false
	for i := 1; i <= len(g.players); i++ {
		idx := (g.current + i) % len(g.players)
		if idx <= g.current {
			roundEnded = true
		}
		if !g.players[idx].Eliminated {
			g.current = idx
			break
		}
	}
	if roundEnded {
		if outcome := g.logic.EndRound(g); outcome == OutcomeContinue {
			g.round++
		}
	}
	return roundEnded
}

// UndoLastThrow reverts the most recent throw of the current turn. Undo
// never crosses a turn boundary and a finished game cannot be rewound.
func (g *Game) UndoLastThrow() (Throw, error) {
	if g.status != StatusActive {
		return Throw{}, ErrGameOver
	}
	if len(g.turn) == 0 {
		return Throw{}, ErrNothingToUndo
	}
	rec := g.turn[len(g.turn)-1]
	g.turn = g.turn[:len(g.turn)-1]
	g.restore(rec.snap)
	return rec.throw, nil
}

// RemovePlayer drops a player between turns. The remaining roster keeps
// its order; if exactly one active player is left in a multiplayer game
// they win by walkover.
func (g *Game) RemovePlayer(id string) error {
	if g.status != StatusActive {
		return ErrGameOver
	}
	if g.dartsThrown > 0 {
		return ErrMidTurn
	}
	idx := -1
	for i, p := range g.players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	if len(g.players) == 1 {
		return fmt.Errorf("%w: cannot remove the last player", ErrMidTurn)
	}

	g.players = append(g.players[:idx:idx], g.players[idx+1:]...)
	if idx < g.current {
		g.current--
	} else if g.current >= len(g.players) {
		g.current = 0
	}
	for g.players[g.current].Eliminated && g.activeCount() > 0 {
		g.current = (g.current + 1) % len(g.players)
	}

	if g.activeCount() == 1 {
		for _, p := range g.players {
			if !p.Eliminated {
				g.finishWin(p)
				break
			}
		}
	}
	return nil
}

func (g *Game) capture() snapshot {
	players := make([]*Player, len(g.players))
	for i, p := range g.players {
		players[i] = p.clone()
	}
	return snapshot{
		players:     players,
		round:       g.round,
		current:     g.current,
		dartsThrown: g.dartsThrown,
		historyLen:  len(g.history),
	}
}

func (g *Game) restore(s snapshot) {
	g.players = s.players
	g.round = s.round
	g.current = s.current
	g.dartsThrown = s.dartsThrown
	g.history = g.history[:s.historyLen]
	g.status = StatusActive
	g.winnerID = ""
}
