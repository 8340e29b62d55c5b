package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/opendarts/scoring-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// ArchiveQueue exposes the throw archive pool to the readiness probe
type ArchiveQueue interface {
	QueueDepth() int
}

type Config struct {
	WorkerPool ArchiveQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Games       logic.GamesService
	Tournaments logic.TournamentsService
	Stats       logic.StatsService
}

type Handler struct {
	pool        ArchiveQueue
	pg          *pgxpool.Pool
	ch          driver.Conn
	redis       *redis.Client
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	games       logic.GamesService
	tournaments logic.TournamentsService
	stats       logic.StatsService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:        cfg.WorkerPool,
		pg:          cfg.Postgres,
		ch:          cfg.ClickHouse,
		redis:       cfg.Redis,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
		games:       cfg.Games,
		tournaments: cfg.Tournaments,
		stats:       cfg.Stats,
	}
}
