package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gradepeek/svue-api/internal/api/metrics"
	"github.com/gradepeek/svue-api/internal/core/domain"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	persistTimeout = 5 * time.Second
)

// UsageDispatcher fans usage events out to a fixed set of workers, sharded by
// subject so one caller's events are persisted in order. Record never blocks:
// when a shard is full the event is dropped and counted.
type UsageDispatcher struct {
	workers []chan domain.UsageEvent
	repo    ports.UsageRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.UsageRecorder = (*UsageDispatcher)(nil)

// NewUsageDispatcher creates a dispatcher with numWorkers shards. A nil repo
// logs events at debug level instead of persisting them.
func NewUsageDispatcher(numWorkers int, repo ports.UsageRepository, log zerolog.Logger) *UsageDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &UsageDispatcher{
		workers: make([]chan domain.UsageEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.UsageEvent, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. They run until Close.
func (d *UsageDispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

func (d *UsageDispatcher) Record(event domain.UsageEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.UsageDroppedTotal.Inc()
		return
	}

	idx := d.shardIndex(event.Subject)
	select {
	case d.workers[idx] <- event:
		metrics.UsageQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.UsageDroppedTotal.Inc()
		d.log.Warn().Int("worker_id", idx).Str("method", event.Method).Msg("usage queue full, event dropped")
	}
}

// Close stops accepting events and waits for queued ones to be written, or
// for ctx to expire.
func (d *UsageDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *UsageDispatcher) shardIndex(subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *UsageDispatcher) runWorker(id int, ch <-chan domain.UsageEvent) {
	defer d.wg.Done()
	gauge := metrics.UsageQueueDepth.WithLabelValues(strconv.Itoa(id))
	for event := range ch {
		gauge.Set(float64(len(ch)))
		d.persist(id, event)
	}
	gauge.Set(0)
}

func (d *UsageDispatcher) persist(id int, event domain.UsageEvent) {
	if d.repo == nil {
		d.log.Debug().
			Str("id", event.ID).
			Str("method", event.Method).
			Str("district", event.District).
			Str("outcome", string(event.Outcome)).
			Int64("duration_ms", event.DurationMs).
			Msg("usage")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := d.repo.InsertUsage(ctx, &event); err != nil {
		metrics.UsagePersistErrorsTotal.Inc()
		d.log.Error().Err(err).
			Str("id", event.ID).
			Int("worker_id", id).
			Msg("usage event persist failed")
	}
}
