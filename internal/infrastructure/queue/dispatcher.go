package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Counter is satisfied by prometheus.Counter.
type Counter interface {
	Inc()
}

// Dispatcher routes authentication events to a fixed set of workers using
// consistent hashing on the email, so events for one email are persisted in
// the order they were recorded.
type Dispatcher struct {
	workers []chan domain.AuthEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	dropped Counter
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var _ ports.AuditRecorder = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. dropped may be nil.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger, dropped Counter) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		repo:    repo,
		log:     log,
		dropped: dropped,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop stops accepting events and waits for the workers to persist what is
// already queued. If ctx ends first, Stop returns ctx.Err() and the remaining
// events are abandoned.
func (d *Dispatcher) Stop(ctx context.Context) error {
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

// Record hands an event to the worker responsible for its email. It never
// blocks: when that worker's queue is full, or the dispatcher is stopped,
// the event is dropped.
func (d *Dispatcher) Record(event domain.AuthEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(event, "audit dispatcher stopped, event dropped")
		return
	}
	select {
	case d.workers[d.shardIndex(event.Email)] <- event:
	default:
		d.drop(event, "audit queue full, event dropped")
	}
}

func (d *Dispatcher) drop(event domain.AuthEvent, msg string) {
	if d.dropped != nil {
		d.dropped.Inc()
	}
	d.log.Warn().
		Str("email", event.Email).
		Str("outcome", string(event.Outcome)).
		Msg(msg)
}

// Pending returns the number of queued events across all workers.
func (d *Dispatcher) Pending() int {
	n := 0
	for _, ch := range d.workers {
		n += len(ch)
	}
	return n
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

// runWorker persists events until its channel is closed and drained. Writes
// use their own deadline so queued events still land during shutdown.
func (d *Dispatcher) runWorker(id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	for event := range ch {
		writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := d.repo.InsertAuthEvent(writeCtx, &event)
		cancel()
		if err != nil {
			d.log.Error().Err(err).
				Str("email", event.Email).
				Int("worker_id", id).
				Msg("audit event persistence failed")
		}
	}
}
