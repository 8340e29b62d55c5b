package logic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opendarts/scoring-api/internal/bracket"
	"github.com/opendarts/scoring-api/internal/models"
)

var ErrUnknownTournament = errors.New("unknown tournament")

// TournamentState is the API representation of one bracket.
type TournamentState struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Format  string           `json:"format"`
	Players []string         `json:"players"`
	Done    bool             `json:"done"`
	Podium  []string         `json:"podium,omitempty"`
	Matches []*bracket.Match `json:"matches"`
}

// TournamentsService owns the registry of live brackets.
type TournamentsService interface {
	Create(ctx context.Context, req models.CreateTournamentRequest) (*TournamentState, error)
	Get(ctx context.Context, id string) (*TournamentState, error)
	RecordResult(ctx context.Context, id, matchUID, winnerID string) (*TournamentState, error)
	NextMatch(ctx context.Context, id string) (*bracket.Match, error)
}

type tournament struct {
	id      string
	name    string
	players []string
	bracket *bracket.Bracket
}

type tournamentsService struct {
	mu          sync.RWMutex
	tournaments map[string]*tournament

	pg     PgPool
	logger *zap.SugaredLogger
}

func NewTournamentsService(pg PgPool, logger *zap.Logger) TournamentsService {
	return &tournamentsService{
		tournaments: make(map[string]*tournament),
		pg:          pg,
		logger:      logger.Sugar(),
	}
}

func (s *tournamentsService) Create(ctx context.Context, req models.CreateTournamentRequest) (*TournamentState, error) {
	var opts []bracket.Option
	if req.ThirdPlace {
		opts = append(opts, bracket.WithThirdPlaceMatch())
	}
	b, err := bracket.New(bracket.Format(req.Format), req.Players, opts...)
	if err != nil {
		return nil, err
	}

	t := &tournament{
		id:      uuid.NewString(),
		name:    req.Name,
		players: req.Players,
		bracket: b,
	}
	s.mu.Lock()
	s.tournaments[t.id] = t
	s.mu.Unlock()

	s.logger.Infow("Tournament created",
		"tournamentID", t.id,
		"format", req.Format,
		"players", len(req.Players),
	)
	return s.state(t), nil
}

func (s *tournamentsService) Get(ctx context.Context, id string) (*TournamentState, error) {
	t, err := s.tournament(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state(t), nil
}

func (s *tournamentsService) RecordResult(ctx context.Context, id, matchUID, winnerID string) (*TournamentState, error) {
	t, err := s.tournament(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := t.bracket.RecordResult(matchUID, winnerID); err != nil {
		return nil, err
	}
	if t.bracket.Done() {
		s.archive(ctx, t)
	}
	return s.state(t), nil
}

func (s *tournamentsService) NextMatch(ctx context.Context, id string) (*bracket.Match, error) {
	t, err := s.tournament(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := t.bracket.NextMatch()
	if m == nil {
		return nil, fmt.Errorf("%w: no playable match", bracket.ErrMatchNotReady)
	}
	return m, nil
}

const insertTournament = `
	INSERT INTO tournaments (id, name, format, players, first, second, third, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// archive writes the final standing once the bracket completes. The
// registry lock is held.
func (s *tournamentsService) archive(ctx context.Context, t *tournament) {
	podium := t.bracket.Podium()
	row := make([]string, 3)
	copy(row, podium)

	_, err := s.pg.Exec(ctx, insertTournament,
		t.id, t.name, string(t.bracket.Format()), t.players,
		row[0], row[1], row[2], time.Now().UTC(),
	)
	if err != nil {
		s.logger.Errorw("Failed to archive tournament", "tournamentID", t.id, "error", err)
		return
	}
	s.logger.Infow("Tournament finished", "tournamentID", t.id, "winner", row[0])
}

func (s *tournamentsService) tournament(id string) (*tournament, error) {
	s.mu.RLock()
	t, ok := s.tournaments[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTournament, id)
	}
	return t, nil
}

func (s *tournamentsService) state(t *tournament) *TournamentState {
	return &TournamentState{
		ID:      t.id,
		Name:    t.name,
		Format:  string(t.bracket.Format()),
		Players: t.players,
		Done:    t.bracket.Done(),
		Podium:  t.bracket.Podium(),
		Matches: t.bracket.Matches(),
	}
}
