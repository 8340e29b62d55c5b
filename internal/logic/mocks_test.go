package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/opendarts/scoring-api/internal/models"
)

// MockPgPool implements PgPool
type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	Execs []string // sql of every Exec call
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockPgRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockPgRow{}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.Execs = append(m.Execs, sql)
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, sql, args...)
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// MockPgRow implements pgx.Row
type MockPgRow struct {
	Values []interface{}
	Error  error
}

func (m *MockPgRow) Scan(dest ...any) error {
	if m.Error != nil {
		return m.Error
	}
	for i, d := range dest {
		if i < len(m.Values) {
			setDest(d, m.Values[i])
		}
	}
	return nil
}

// MockPgRows implements pgx.Rows for the methods the services touch
type MockPgRows struct {
	pgx.Rows
	Data [][]interface{}
	idx  int
}

func (m *MockPgRows) Next() bool {
	if m.idx >= len(m.Data) {
		return false
	}
	m.idx++
	return true
}

func (m *MockPgRows) Scan(dest ...any) error {
	row := m.Data[m.idx-1]
	for i, d := range dest {
		if i < len(row) {
			setDest(d, row[i])
		}
	}
	return nil
}

func (m *MockPgRows) Close()     {}
func (m *MockPgRows) Err() error { return nil }

func setDest(dest interface{}, val interface{}) {
	switch d := dest.(type) {
	case *int:
		if v, ok := val.(int); ok {
			*d = v
		}
	case *string:
		if v, ok := val.(string); ok {
			*d = v
		}
	case *bool:
		if v, ok := val.(bool); ok {
			*d = v
		}
	case *float64:
		if v, ok := val.(float64); ok {
			*d = v
		}
	case *time.Time:
		if v, ok := val.(time.Time); ok {
			*d = v
		}
	}
}

// MockThrowQueue implements ThrowQueue
type MockThrowQueue struct {
	Events []models.ThrowEvent
}

func (m *MockThrowQueue) Enqueue(ev models.ThrowEvent) bool {
	m.Events = append(m.Events, ev)
	return true
}

func (m *MockThrowQueue) QueueDepth() int {
	return len(m.Events)
}

// MockStatsService implements StatsService
type MockStatsService struct {
	RecordLegFunc func(ctx context.Context, results []models.LegResult) error

	Recorded [][]models.LegResult
}

func (m *MockStatsService) RecordLeg(ctx context.Context, results []models.LegResult) error {
	m.Recorded = append(m.Recorded, results)
	if m.RecordLegFunc != nil {
		return m.RecordLegFunc(ctx, results)
	}
	return nil
}

func (m *MockStatsService) PlayerSummary(ctx context.Context, playerID string) (*models.PlayerSummary, error) {
	return &models.PlayerSummary{}, nil
}

func (m *MockStatsService) Leaderboard(ctx context.Context, limit int) ([]models.PlayerCareer, error) {
	return nil, nil
}
