package outbound

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/identity-platform/auth-service/internal/api/metrics"
	"github.com/identity-platform/auth-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var (
	// ErrQueueFull is returned when a worker's buffer is out of capacity.
	ErrQueueFull = errors.New("outbound queue full")

	// ErrStopped is returned once the dispatcher's context is cancelled.
	ErrStopped = errors.New("outbound dispatcher stopped")
)

// Dispatcher routes outbound events to a fixed set of workers using
// consistent hashing on the recipient, guaranteeing per-recipient delivery
// ordering. Enqueue never blocks the request path: a full or stopped
// dispatcher fails fast and the caller decides whether that matters.
type Dispatcher struct {
	workers []chan ports.OutboundEvent
	sink    ports.OutboundSink
	log     zerolog.Logger
	stopped atomic.Bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.OutboundSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.OutboundEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OutboundEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after which Enqueue fails with ErrStopped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		d.stopped.Store(true)
	}()
}

// Enqueue hands an event to the worker responsible for its recipient.
func (d *Dispatcher) Enqueue(event ports.OutboundEvent) error {
	if d.stopped.Load() {
		metrics.OutboundEventsTotal.WithLabelValues(string(event.Kind), "dropped").Inc()
		return ErrStopped
	}

	shard := d.shardIndex(event.Recipient)
	select {
	case d.workers[shard] <- event:
		metrics.OutboundQueueDepth.WithLabelValues(strconv.Itoa(shard)).Inc()
		return nil
	default:
		metrics.OutboundEventsTotal.WithLabelValues(string(event.Kind), "dropped").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OutboundEvent) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.OutboundQueueDepth.WithLabelValues(workerID).Dec()
			if err := d.sink.Deliver(ctx, event); err != nil {
				metrics.OutboundEventsTotal.WithLabelValues(string(event.Kind), "failed").Inc()
				d.log.Error().Err(err).
					Str("kind", string(event.Kind)).
					Int("worker_id", id).
					Msg("outbound delivery failed")
				continue
			}
			metrics.OutboundEventsTotal.WithLabelValues(string(event.Kind), "delivered").Inc()
		}
	}
}
