package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opendarts/scoring-api/internal/ai"
	"github.com/opendarts/scoring-api/internal/checkout"
	"github.com/opendarts/scoring-api/internal/game"
	"github.com/opendarts/scoring-api/internal/models"
)

var (
	ErrUnknownGame = errors.New("unknown game")
	ErrNotYourTurn = errors.New("not this player's turn")
)

const (
	liveGameKeyPrefix = "darts:live:"
	liveGamesSet      = "darts:live_games"
	liveGameTTL       = 24 * time.Hour

	// stops a runaway bot-vs-bot game from spinning forever
	maxAutoDarts = 10000
)

// GameState is the API representation of a match.
type GameState struct {
	ID         string         `json:"id"`
	Mode       string         `json:"mode"`
	Status     string         `json:"status"`
	LegNumber  int            `json:"leg_number"`
	LegWins    map[string]int `json:"leg_wins,omitempty"`
	SetWins    map[string]int `json:"set_wins,omitempty"`
	WinnerID   string         `json:"winner_id,omitempty"`
	Leg        *game.View     `json:"leg,omitempty"`
	Suggestion string         `json:"suggestion,omitempty"` // current player's checkout, x01 only
}

// AutoThrow is one computer-player dart played after a human submission.
type AutoThrow struct {
	PlayerID string                `json:"player_id"`
	Throw    game.Throw            `json:"throw"`
	Result   game.MatchThrowResult `json:"result"`
}

// ThrowReply is the full response to a throw submission: the human
// player's result, any computer turns that followed, and the resulting
// state.
type ThrowReply struct {
	Result game.MatchThrowResult `json:"result"`
	Auto   []AutoThrow           `json:"auto,omitempty"`
	State  *GameState            `json:"state"`
}

// GamesService owns the registry of live matches.
type GamesService interface {
	Create(ctx context.Context, req models.CreateGameRequest) (*GameState, error)
	Get(ctx context.Context, id string) (*GameState, error)
	SubmitThrow(ctx context.Context, id string, req models.ThrowRequest) (*ThrowReply, error)
	Undo(ctx context.Context, id string) (*GameState, error)
	RemovePlayer(ctx context.Context, id, playerID string) (*GameState, error)
	Export(ctx context.Context, id string) ([]byte, error)
	Import(ctx context.Context, save []byte) (*GameState, error)
}

// session serializes all access to one match. Throw processing for a
// game is single threaded by construction.
type session struct {
	mu    sync.Mutex
	match *game.Match
	bots  map[string]*ai.Thrower
}

type gamesService struct {
	mu       sync.RWMutex
	sessions map[string]*session

	stats  StatsService
	rdb    RedisClient
	queue  ThrowQueue
	logger *zap.SugaredLogger
}

func NewGamesService(stats StatsService, rdb RedisClient, queue ThrowQueue, logger *zap.Logger) GamesService {
	return &gamesService{
		sessions: make(map[string]*session),
		stats:    stats,
		rdb:      rdb,
		queue:    queue,
		logger:   logger.Sugar(),
	}
}

func (s *gamesService) Create(ctx context.Context, req models.CreateGameRequest) (*GameState, error) {
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	opts := game.Options{
		Mode:         mode,
		StartScore:   req.StartScore,
		In:           game.InRule(req.InRule),
		Out:          checkout.OutRule(req.OutRule),
		ClockTargets: req.ClockTargets,
		Lives:        req.Lives,
		TargetScore:  req.TargetScore,
		Rounds:       req.Rounds,
		LegsToWin:    req.LegsToWin,
		SetsToWin:    req.SetsToWin,
	}

	ids := make([]string, len(req.Players))
	names := make([]string, len(req.Players))
	for i, spec := range req.Players {
		ids[i] = spec.ID
		if ids[i] == "" {
			ids[i] = uuid.NewString()
		}
		names[i] = spec.Name
	}

	roster := game.NewRoster(ids, names)
	bots := make(map[string]*ai.Thrower)
	for i, spec := range req.Players {
		roster[i].PreferredDouble = spec.PreferredDouble
		roster[i].LifeSegment = spec.LifeSegment
		if spec.Computer {
			level, ok := ai.ParseLevel(spec.Level)
			if !ok {
				level = ai.LevelMedium
			}
			bots[ids[i]] = ai.New(level, time.Now().UnixNano())
		}
	}

	m, err := game.NewMatch(uuid.NewString(), opts, roster)
	if err != nil {
		return nil, err
	}

	sess := &session{match: m, bots: bots}
	s.mu.Lock()
	s.sessions[m.ID()] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// a computer player may have the first turn
	if _, err := s.autoPlay(ctx, sess); err != nil {
		return nil, err
	}
	s.publish(ctx, sess)

	s.logger.Infow("Game created",
		"gameID", m.ID(),
		"mode", mode,
		"players", len(roster),
		"computers", len(bots),
	)
	return s.state(sess), nil
}

func (s *gamesService) Get(ctx context.Context, id string) (*GameState, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.state(sess), nil
}

func (s *gamesService) SubmitThrow(ctx context.Context, id string, req models.ThrowRequest) (*ThrowReply, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	m := sess.match
	leg := m.CurrentLeg()
	if leg == nil {
		return nil, game.ErrGameOver
	}
	current := leg.CurrentPlayer()
	if current == nil {
		return nil, game.ErrGameOver
	}
	if req.PlayerID != "" && req.PlayerID != current.ID {
		return nil, fmt.Errorf("%w: %s is up", ErrNotYourTurn, current.ID)
	}
	if _, isBot := sess.bots[current.ID]; isBot {
		return nil, fmt.Errorf("%w: %s is a computer player", ErrNotYourTurn, current.ID)
	}

	t, err := game.NewThrow(game.Ring(req.Ring), req.Segment)
	if err != nil {
		return nil, err
	}

	res, err := s.play(ctx, sess, current, t)
	if err != nil {
		return nil, err
	}

	auto, err := s.autoPlay(ctx, sess)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, sess)

	return &ThrowReply{Result: res, Auto: auto, State: s.state(sess)}, nil
}

// play scores one dart, archives the throw event, and flushes leg
// summaries when the dart ends a leg. The session lock is held.
func (s *gamesService) play(ctx context.Context, sess *session, p *game.Player, t game.Throw) (game.MatchThrowResult, error) {
	m := sess.match
	ev := models.ThrowEvent{
		Timestamp:  time.Now().UTC(),
		GameID:     m.ID(),
		Mode:       string(m.Options().Mode),
		LegNumber:  m.LegNumber(),
		Round:      m.CurrentLeg().Round(),
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Ring:       string(t.Ring),
		Segment:    t.Segment,
	}

	res, err := m.SubmitThrow(t)
	if err != nil {
		return res, err
	}

	ev.Points = res.Throw.Points
	ev.Outcome = res.Outcome
	s.queue.Enqueue(ev)

	if res.LegEnded {
		s.recordLeg(ctx, sess, ev.LegNumber, res)
	}
	return res, nil
}

// autoPlay lets computer players take their turns until a human is up
// or the match ends. The session lock is held.
func (s *gamesService) autoPlay(ctx context.Context, sess *session) ([]AutoThrow, error) {
	if len(sess.bots) == 0 {
		return nil, nil
	}
	m := sess.match
	var played []AutoThrow
	for darts := 0; darts < maxAutoDarts; darts++ {
		leg := m.CurrentLeg()
		if m.Status() != game.StatusActive || leg == nil {
			return played, nil
		}
		current := leg.CurrentPlayer()
		if current == nil {
			return played, nil
		}
		bot, ok := sess.bots[current.ID]
		if !ok {
			return played, nil
		}
		t := bot.Throw(leg, current)
		res, err := s.play(ctx, sess, current, t)
		if err != nil {
			return played, fmt.Errorf("computer throw: %w", err)
		}
		played = append(played, AutoThrow{PlayerID: current.ID, Throw: res.Throw, Result: res})
	}
	s.logger.Warnw("Computer play cap reached", "gameID", m.ID())
	return played, nil
}

func (s *gamesService) recordLeg(ctx context.Context, sess *session, legNumber int, res game.MatchThrowResult) {
	m := sess.match
	ended := time.Now().UTC()
	results := make([]models.LegResult, 0, len(res.LegStats))
	for id, st := range res.LegStats {
		results = append(results, models.LegResult{
			GameID:    m.ID(),
			Mode:      string(m.Options().Mode),
			LegNumber: legNumber,
			PlayerID:  id,
			Won:       id == res.LegWinnerID,
			Throws:    st.Throws,
			Points:    st.Points,
			Busts:     st.Busts,
			Marks:     st.Marks,
			BestTurn:  st.BestTurn,
			Average:   st.Average(),

			CheckoutAttempts: st.CheckoutAttempts,
			Checkouts:        st.Checkouts,
			CheckoutPercent:  st.CheckoutPercent(),

			EndedAt: ended,
		})
	}
	if err := s.stats.RecordLeg(ctx, results); err != nil {
		s.logger.Errorw("Failed to record leg results",
			"gameID", m.ID(),
			"leg", legNumber,
			"error", err,
		)
	}
}

func (s *gamesService) Undo(ctx context.Context, id string) (*GameState, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if _, err := sess.match.UndoLastThrow(); err != nil {
		return nil, err
	}
	s.publish(ctx, sess)
	return s.state(sess), nil
}

func (s *gamesService) RemovePlayer(ctx context.Context, id, playerID string) (*GameState, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.match.RemovePlayer(playerID); err != nil {
		return nil, err
	}
	delete(sess.bots, playerID)
	s.publish(ctx, sess)
	return s.state(sess), nil
}

func (s *gamesService) Export(ctx context.Context, id string) ([]byte, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.match.Export()
}

// Import restores a saved match under its original id. Computer players
// are not part of the save; restored games are human driven.
func (s *gamesService) Import(ctx context.Context, save []byte) (*GameState, error) {
	m, err := game.RestoreMatch(save)
	if err != nil {
		return nil, err
	}
	sess := &session{match: m, bots: make(map[string]*ai.Thrower)}

	s.mu.Lock()
	s.sessions[m.ID()] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	s.publish(ctx, sess)

	s.logger.Infow("Game imported", "gameID", m.ID(), "leg", m.LegNumber())
	return s.state(sess), nil
}

func (s *gamesService) session(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}
	return sess, nil
}

// state renders the session. The session lock is held.
func (s *gamesService) state(sess *session) *GameState {
	m := sess.match
	st := &GameState{
		ID:        m.ID(),
		Mode:      string(m.Options().Mode),
		Status:    string(m.Status()),
		LegNumber: m.LegNumber(),
		LegWins:   m.LegWins(),
		SetWins:   m.SetWins(),
		WinnerID:  m.WinnerID(),
	}
	leg := m.CurrentLeg()
	if leg == nil {
		return st
	}
	view := leg.Summary()
	st.Leg = &view

	if m.Options().Mode == game.ModeX01 {
		if p := leg.CurrentPlayer(); p != nil {
			dartsLeft := 3 - leg.DartsThrown()
			paths := checkout.SuggestPreferred(p.Score, m.Options().Out, dartsLeft, p.PreferredDouble)
			if len(paths) > 0 {
				st.Suggestion = checkout.Format(paths[0])
			}
		}
	}
	return st
}

// publish pushes the live snapshot to Redis for scoreboard pollers.
// Failures are logged and do not affect gameplay.
func (s *gamesService) publish(ctx context.Context, sess *session) {
	if s.rdb == nil {
		return
	}
	m := sess.match
	key := liveGameKeyPrefix + m.ID()

	payload, err := json.Marshal(s.state(sess))
	if err != nil {
		s.logger.Errorw("Failed to marshal live snapshot", "gameID", m.ID(), "error", err)
		return
	}
	if err := s.rdb.Set(ctx, key, payload, liveGameTTL).Err(); err != nil {
		s.logger.Warnw("Failed to publish live snapshot", "gameID", m.ID(), "error", err)
		return
	}
	if m.Status() == game.StatusActive {
		s.rdb.SAdd(ctx, liveGamesSet, m.ID())
	} else {
		s.rdb.SRem(ctx, liveGamesSet, m.ID())
	}
}
