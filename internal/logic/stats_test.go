package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/opendarts/scoring-api/internal/models"
)

func TestRecordLeg(t *testing.T) {
	pg := &MockPgPool{}
	svc := NewStatsService(pg)

	results := []models.LegResult{
		{GameID: "g1", Mode: "x01", LegNumber: 1, PlayerID: "p1", Won: true, Throws: 15, Points: 501},
		{GameID: "g1", Mode: "x01", LegNumber: 1, PlayerID: "p2", Throws: 12, Points: 380},
	}
	if err := svc.RecordLeg(context.Background(), results); err != nil {
		t.Fatalf("RecordLeg: %v", err)
	}
	if len(pg.Execs) != 2 {
		t.Errorf("inserted %d rows, want 2", len(pg.Execs))
	}
}

func TestRecordLegPropagatesError(t *testing.T) {
	dbErr := errors.New("connection refused")
	pg := &MockPgPool{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, dbErr
		},
	}
	svc := NewStatsService(pg)

	err := svc.RecordLeg(context.Background(), []models.LegResult{{GameID: "g1", PlayerID: "p1"}})
	if !errors.Is(err, dbErr) {
		t.Errorf("expected wrapped db error, got %v", err)
	}
}

func TestPlayerSummary(t *testing.T) {
	pg := &MockPgPool{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) pgx.Row {
			// legs_played, legs_won, throws, points, busts, best_turn,
			// checkout_attempts, checkouts
			return &MockPgRow{Values: []interface{}{20, 8, 900, 14000, 12, 180, 40, 8}}
		},
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &MockPgRows{Data: [][]interface{}{
				{"g9", "x01", 2, true, 15, 501, 0, 0, 140, 100.2, 4, 1, time.Now()},
			}}, nil
		},
	}
	svc := NewStatsService(pg)

	summary, err := svc.PlayerSummary(context.Background(), "p1")
	if err != nil {
		t.Fatalf("PlayerSummary: %v", err)
	}

	career := summary.Career
	if career.LegsPlayed != 20 || career.LegsWon != 8 {
		t.Errorf("career = %+v, want 20 played / 8 won", career)
	}
	wantAvg := float64(14000) / 900 * 3
	if career.Average != wantAvg {
		t.Errorf("average = %f, want %f", career.Average, wantAvg)
	}
	if career.CheckoutPercent != 20 {
		t.Errorf("checkout percent = %f, want 20", career.CheckoutPercent)
	}
	if len(summary.Recent) != 1 || summary.Recent[0].GameID != "g9" {
		t.Errorf("recent legs = %+v", summary.Recent)
	}
	if summary.Recent[0].CheckoutPercent != 25 {
		t.Errorf("recent checkout percent = %f, want 25", summary.Recent[0].CheckoutPercent)
	}
}

func TestPlayerSummaryQueryError(t *testing.T) {
	dbErr := errors.New("timeout")
	pg := &MockPgPool{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return nil, dbErr
		},
	}
	svc := NewStatsService(pg)

	if _, err := svc.PlayerSummary(context.Background(), "p1"); !errors.Is(err, dbErr) {
		t.Errorf("expected wrapped db error, got %v", err)
	}
}

func TestLeaderboard(t *testing.T) {
	pg := &MockPgPool{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
			return &MockPgRows{Data: [][]interface{}{
				{"p1", 30, 20, 1200, 18000, 9, 180},
				{"p2", 28, 12, 1100, 15000, 14, 171},
			}}, nil
		},
	}
	svc := NewStatsService(pg)

	board, err := svc.Leaderboard(context.Background(), 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(board) != 2 || board[0].PlayerID != "p1" {
		t.Errorf("leaderboard = %+v", board)
	}
}
