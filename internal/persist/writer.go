package persist

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Writer provides write-behind persistence over a Gateway. Enqueue
// never blocks on IO: each key gets at most one worker goroutine and a
// single pending snapshot. While a save is in flight newer snapshots
// replace the pending one, so writes to a key are serialized and a
// stale snapshot can never clobber a newer one. Failed saves are
// logged and dropped; the in-memory state stays authoritative and the
// next mutation's save reconciles the file.
type Writer struct {
	gateway Gateway
	logger  *zap.Logger

	mu     sync.Mutex
	queues map[string]*pendingSave
	closed bool
	wg     sync.WaitGroup
}

// pendingSave is the per-key queue slot.
type pendingSave struct {
	values  []string
	has     bool
	running bool
}

// NewWriter creates a Writer over gateway. A nil logger disables
// failure logging.
func NewWriter(gateway Gateway, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		gateway: gateway,
		logger:  logger,
		queues:  make(map[string]*pendingSave),
	}
}

// Enqueue schedules values to be saved under key, replacing any
// not-yet-written snapshot for the same key. After Close it is a no-op.
func (w *Writer) Enqueue(key string, values []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	q := w.queues[key]
	if q == nil {
		q = &pendingSave{}
		w.queues[key] = q
	}

	q.values = values
	q.has = true

	if !q.running {
		q.running = true
		w.wg.Add(1)
		go w.drain(key, q)
	}
}

// drain writes pending snapshots for one key until none remain.
func (w *Writer) drain(key string, q *pendingSave) {
	defer w.wg.Done()

	for {
		w.mu.Lock()
		if !q.has {
			q.running = false
			w.mu.Unlock()
			return
		}
		values := q.values
		q.has = false
		w.mu.Unlock()

		if err := w.gateway.Save(context.Background(), key, values); err != nil {
			w.logger.Warn("persistence write failed",
				zap.String("key", key),
				zap.Int("records", len(values)),
				zap.Error(err))
		}
	}
}

// Close stops accepting snapshots and blocks until every pending save
// has settled.
func (w *Writer) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.wg.Wait()
}
