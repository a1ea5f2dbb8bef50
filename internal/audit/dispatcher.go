// Package audit provides an asynchronous audit trail for credential
// operations. Events are fanned out to a fixed set of workers sharded by
// email address, so entries for one account stay ordered while the request
// path never blocks on persistence.
package audit

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/runjamaica/auth-api/internal/core/domain"
	"github.com/runjamaica/auth-api/internal/core/ports"
	"github.com/runjamaica/auth-api/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher implements ports.AuditRecorder over a sharded worker pool
// draining into an AuditSink. It owns its lifecycle: call Start once, then
// Stop after the HTTP server has finished draining so buffered events are
// flushed rather than lost.
type Dispatcher struct {
	workers []chan domain.AuditEvent
	sink    ports.AuditSink
	log     zerolog.Logger

	done    chan struct{}
	wg      sync.WaitGroup
	stopped atomic.Bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.AuditSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEvent, numWorkers),
		sink:    sink,
		log:     log,
		done:    make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop signals the workers to finish, waits until every buffered event has
// been flushed to the sink, and returns. Events recorded after Stop are
// dropped and counted.
func (d *Dispatcher) Stop() {
	if d.stopped.Swap(true) {
		return
	}
	close(d.done)
	d.wg.Wait()
}

// Record enqueues an event on the worker responsible for its email address.
// When that worker's buffer is full, or the dispatcher has been stopped,
// the event is dropped and counted; the request path is never
// back-pressured by auditing.
func (d *Dispatcher) Record(event domain.AuditEvent) {
	if d.stopped.Load() {
		metrics.AuditEventsDroppedTotal.Inc()
		return
	}
	select {
	case d.workers[d.shardIndex(event.EmailAddress)] <- event:
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("action", event.Action).Msg("audit event dropped: worker channel full")
	}
}

// shardIndex maps an email address deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	gauge := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case event := <-ch:
			gauge.Set(float64(len(ch)))
			d.write(id, event)
		case <-d.done:
			// Drain whatever is already buffered, then exit.
			for {
				select {
				case event := <-ch:
					d.write(id, event)
				default:
					gauge.Set(0)
					return
				}
			}
		}
	}
}

// write persists one event. The background context keeps the flush alive
// during shutdown draining.
func (d *Dispatcher) write(id int, event domain.AuditEvent) {
	if err := d.sink.Write(context.Background(), event); err != nil {
		d.log.Error().Err(err).
			Str("action", event.Action).
			Int("worker_id", id).
			Msg("audit event persistence failed")
	}
}
