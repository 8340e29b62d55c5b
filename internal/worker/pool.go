// Package worker implements the buffered worker pool that archives throw
// events to ClickHouse. It decouples request handling from database
// writes: throws are enqueued, batched, and flushed on size or interval,
// with a graceful shutdown flush.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/opendarts/scoring-api/internal/models"
)

var (
	throwsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "darts_throws_ingested_total",
		Help: "Total number of throw events enqueued for archiving",
	})

	throwsArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "darts_throws_archived_total",
		Help: "Total number of throw events written to ClickHouse",
	})

	throwsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "darts_throws_failed_total",
		Help: "Total number of throw events that failed to archive",
	})

	throwsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "darts_throws_dropped_total",
		Help: "Total number of throw events dropped because the queue was full",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "darts_worker_queue_depth",
		Help: "Current depth of the archive queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "darts_batch_insert_duration_seconds",
		Help:    "Duration of batch inserts to ClickHouse",
		Buckets: prometheus.DefBuckets,
	})
)

const insertThrowEvents = `
	INSERT INTO darts.throw_events (
		timestamp, game_id, mode, leg_number, round,
		player_id, player_name, ring, segment, points, outcome
	)
`

// PoolConfig configures the archive pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	ClickHouse    driver.Conn
	Logger        *zap.Logger
}

// Pool batches throw events into ClickHouse.
type Pool struct {
	config   PoolConfig
	jobQueue chan models.ThrowEvent
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	return &Pool{
		config:   cfg,
		jobQueue: make(chan models.ThrowEvent, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines and the queue depth reporter.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue and flushes outstanding batches.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// Enqueue queues one throw event. Events are dropped rather than
// blocking gameplay when the queue is full.
func (p *Pool) Enqueue(ev models.ThrowEvent) bool {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue throw (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- ev:
		throwsIngested.Inc()
		return true
	default:
		throwsDropped.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]models.ThrowEvent, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		start := time.Now()
		if err := p.insertBatch(batch); err != nil {
			p.logger.Errorw("Batch insert failed",
				"worker", id,
				"batchSize", len(batch),
				"error", err,
			)
			throwsFailed.Add(float64(len(batch)))
		} else {
			throwsArchived.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())
		batch = batch[:0]
	}

	for {
		select {
		case ev, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, ev)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-p.ctx.Done():
			// drain whatever Stop left in the queue, then flush
			for ev := range p.jobQueue {
				batch = append(batch, ev)
				if len(batch) >= p.config.BatchSize {
					flush()
				}
			}
			flush()
			return
		}
	}
}

func (p *Pool) insertBatch(batch []models.ThrowEvent) error {
	ctx := context.Background()
	chBatch, err := p.config.ClickHouse.PrepareBatch(ctx, insertThrowEvents)
	if err != nil {
		return err
	}
	for _, ev := range batch {
		if err := chBatch.Append(
			ev.Timestamp,
			ev.GameID,
			ev.Mode,
			int32(ev.LegNumber),
			int32(ev.Round),
			ev.PlayerID,
			ev.PlayerName,
			ev.Ring,
			int32(ev.Segment),
			int32(ev.Points),
			ev.Outcome,
		); err != nil {
			return err
		}
	}
	return chBatch.Send()
}
