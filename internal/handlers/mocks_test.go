package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/opendarts/scoring-api/internal/bracket"
	"github.com/opendarts/scoring-api/internal/logic"
	"github.com/opendarts/scoring-api/internal/models"
)

// MockGamesService implements logic.GamesService
type MockGamesService struct {
	CreateFunc       func(ctx context.Context, req models.CreateGameRequest) (*logic.GameState, error)
	GetFunc          func(ctx context.Context, id string) (*logic.GameState, error)
	SubmitThrowFunc  func(ctx context.Context, id string, req models.ThrowRequest) (*logic.ThrowReply, error)
	UndoFunc         func(ctx context.Context, id string) (*logic.GameState, error)
	RemovePlayerFunc func(ctx context.Context, id, playerID string) (*logic.GameState, error)
	ExportFunc       func(ctx context.Context, id string) ([]byte, error)
	ImportFunc       func(ctx context.Context, save []byte) (*logic.GameState, error)
}

func (m *MockGamesService) Create(ctx context.Context, req models.CreateGameRequest) (*logic.GameState, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &logic.GameState{}, nil
}

func (m *MockGamesService) Get(ctx context.Context, id string) (*logic.GameState, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &logic.GameState{ID: id}, nil
}

func (m *MockGamesService) SubmitThrow(ctx context.Context, id string, req models.ThrowRequest) (*logic.ThrowReply, error) {
	if m.SubmitThrowFunc != nil {
		return m.SubmitThrowFunc(ctx, id, req)
	}
	return &logic.ThrowReply{}, nil
}

func (m *MockGamesService) Undo(ctx context.Context, id string) (*logic.GameState, error) {
	if m.UndoFunc != nil {
		return m.UndoFunc(ctx, id)
	}
	return &logic.GameState{ID: id}, nil
}

func (m *MockGamesService) RemovePlayer(ctx context.Context, id, playerID string) (*logic.GameState, error) {
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(ctx, id, playerID)
	}
	return &logic.GameState{ID: id}, nil
}

func (m *MockGamesService) Export(ctx context.Context, id string) ([]byte, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, id)
	}
	return []byte("{}"), nil
}

func (m *MockGamesService) Import(ctx context.Context, save []byte) (*logic.GameState, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, save)
	}
	return &logic.GameState{}, nil
}

// MockTournamentsService implements logic.TournamentsService
type MockTournamentsService struct {
	CreateFunc       func(ctx context.Context, req models.CreateTournamentRequest) (*logic.TournamentState, error)
	GetFunc          func(ctx context.Context, id string) (*logic.TournamentState, error)
	RecordResultFunc func(ctx context.Context, id, matchUID, winnerID string) (*logic.TournamentState, error)
	NextMatchFunc    func(ctx context.Context, id string) (*bracket.Match, error)
}

func (m *MockTournamentsService) Create(ctx context.Context, req models.CreateTournamentRequest) (*logic.TournamentState, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &logic.TournamentState{}, nil
}

func (m *MockTournamentsService) Get(ctx context.Context, id string) (*logic.TournamentState, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &logic.TournamentState{ID: id}, nil
}

func (m *MockTournamentsService) RecordResult(ctx context.Context, id, matchUID, winnerID string) (*logic.TournamentState, error) {
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(ctx, id, matchUID, winnerID)
	}
	return &logic.TournamentState{ID: id}, nil
}

func (m *MockTournamentsService) NextMatch(ctx context.Context, id string) (*bracket.Match, error) {
	if m.NextMatchFunc != nil {
		return m.NextMatchFunc(ctx, id)
	}
	return &bracket.Match{}, nil
}

// MockStatsService implements logic.StatsService
type MockStatsService struct {
	PlayerSummaryFunc func(ctx context.Context, playerID string) (*models.PlayerSummary, error)
	LeaderboardFunc   func(ctx context.Context, limit int) ([]models.PlayerCareer, error)
}

func (m *MockStatsService) RecordLeg(ctx context.Context, results []models.LegResult) error {
	return nil
}

func (m *MockStatsService) PlayerSummary(ctx context.Context, playerID string) (*models.PlayerSummary, error) {
	if m.PlayerSummaryFunc != nil {
		return m.PlayerSummaryFunc(ctx, playerID)
	}
	return &models.PlayerSummary{}, nil
}

func (m *MockStatsService) Leaderboard(ctx context.Context, limit int) ([]models.PlayerCareer, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, limit)
	}
	return nil, nil
}

func newTestHandler(games logic.GamesService, tournaments logic.TournamentsService, stats logic.StatsService) *Handler {
	return &Handler{
		logger:      zap.NewNop().Sugar(),
		validator:   validator.New(),
		games:       games,
		tournaments: tournaments,
		stats:       stats,
	}
}
