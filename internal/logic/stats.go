package logic

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/opendarts/scoring-api/internal/models"
)

// StatsService stores per-leg summaries and serves career aggregates.
type StatsService interface {
	RecordLeg(ctx context.Context, results []models.LegResult) error
	PlayerSummary(ctx context.Context, playerID string) (*models.PlayerSummary, error)
	Leaderboard(ctx context.Context, limit int) ([]models.PlayerCareer, error)
}

type statsService struct {
	pg PgPool
}

func NewStatsService(pg PgPool) StatsService {
	return &statsService{pg: pg}
}

const insertLegResult = `
	INSERT INTO leg_results (
		game_id, mode, leg_number, player_id, won,
		throws, points, busts, marks, best_turn, average,
		checkout_attempts, checkouts, ended_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func (s *statsService) RecordLeg(ctx context.Context, results []models.LegResult) error {
	for _, r := range results {
		_, err := s.pg.Exec(ctx, insertLegResult,
			r.GameID, r.Mode, r.LegNumber, r.PlayerID, r.Won,
			r.Throws, r.Points, r.Busts, r.Marks, r.BestTurn, r.Average,
			r.CheckoutAttempts, r.Checkouts, r.EndedAt,
		)
		if err != nil {
			return fmt.Errorf("insert leg result for %s: %w", r.PlayerID, err)
		}
	}
	return nil
}

// PlayerSummary fetches career aggregates and the most recent legs in
// parallel.
func (s *statsService) PlayerSummary(ctx context.Context, playerID string) (*models.PlayerSummary, error) {
	summary := &models.PlayerSummary{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		career, err := s.career(ctx, playerID)
		if err != nil {
			return fmt.Errorf("career stats: %w", err)
		}
		summary.Career = *career
		return nil
	})

	g.Go(func() error {
		recent, err := s.recentLegs(ctx, playerID, 10)
		if err != nil {
			return fmt.Errorf("recent legs: %w", err)
		}
		summary.Recent = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *statsService) career(ctx context.Context, playerID string) (*models.PlayerCareer, error) {
	query := `
		SELECT
			COUNT(*) AS legs_played,
			COUNT(*) FILTER (WHERE won) AS legs_won,
			COALESCE(SUM(throws), 0) AS throws,
			COALESCE(SUM(points), 0) AS points,
			COALESCE(SUM(busts), 0) AS busts,
			COALESCE(MAX(best_turn), 0) AS best_turn,
			COALESCE(SUM(checkout_attempts), 0) AS checkout_attempts,
			COALESCE(SUM(checkouts), 0) AS checkouts
		FROM leg_results
		WHERE player_id = $1
	`
	career := &models.PlayerCareer{PlayerID: playerID}
	err := s.pg.QueryRow(ctx, query, playerID).Scan(
		&career.LegsPlayed, &career.LegsWon,
		&career.Throws, &career.Points, &career.Busts, &career.BestTurn,
		&career.CheckoutAttempts, &career.Checkouts,
	)
	if err != nil {
		return nil, err
	}
	if career.Throws > 0 {
		career.Average = float64(career.Points) / float64(career.Throws) * 3
	}
	if career.CheckoutAttempts > 0 {
		career.CheckoutPercent = float64(career.Checkouts) / float64(career.CheckoutAttempts) * 100
	}
	return career, nil
}

func (s *statsService) recentLegs(ctx context.Context, playerID string, limit int) ([]models.LegResult, error) {
	query := `
		SELECT game_id, mode, leg_number, won,
			throws, points, busts, marks, best_turn, average,
			checkout_attempts, checkouts, ended_at
		FROM leg_results
		WHERE player_id = $1
		ORDER BY ended_at DESC
		LIMIT $2
	`
	rows, err := s.pg.Query(ctx, query, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var legs []models.LegResult
	for rows.Next() {
		r := models.LegResult{PlayerID: playerID}
		if err := rows.Scan(
			&r.GameID, &r.Mode, &r.LegNumber, &r.Won,
			&r.Throws, &r.Points, &r.Busts, &r.Marks, &r.BestTurn, &r.Average,
			&r.CheckoutAttempts, &r.Checkouts, &r.EndedAt,
		); err != nil {
			return nil, err
		}
		if r.CheckoutAttempts > 0 {
			r.CheckoutPercent = float64(r.Checkouts) / float64(r.CheckoutAttempts) * 100
		}
		legs = append(legs, r)
	}
	return legs, rows.Err()
}

func (s *statsService) Leaderboard(ctx context.Context, limit int) ([]models.PlayerCareer, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	query := `
		SELECT player_id,
			COUNT(*) AS legs_played,
			COUNT(*) FILTER (WHERE won) AS legs_won,
			COALESCE(SUM(throws), 0) AS throws,
			COALESCE(SUM(points), 0) AS points,
			COALESCE(SUM(busts), 0) AS busts,
			COALESCE(MAX(best_turn), 0) AS best_turn
		FROM leg_results
		GROUP BY player_id
		ORDER BY legs_won DESC, legs_played ASC
		LIMIT $1
	`
	rows, err := s.pg.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var board []models.PlayerCareer
	for rows.Next() {
		var c models.PlayerCareer
		if err := rows.Scan(
			&c.PlayerID, &c.LegsPlayed, &c.LegsWon,
			&c.Throws, &c.Points, &c.Busts, &c.BestTurn,
		); err != nil {
			return nil, err
		}
		if c.Throws > 0 {
			c.Average = float64(c.Points) / float64(c.Throws) * 3
		}
		board = append(board, c)
	}
	return board, rows.Err()
}
