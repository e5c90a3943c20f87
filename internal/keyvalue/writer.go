package keyvalue

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Writer is the write strategy a session store uses to mirror its state.
// Keeping it behind an interface makes the strategy (write-through vs
// batched) a pluggable policy, testable independently of store mutation
// logic.
type Writer interface {
	Write(key string, value []byte)
	Delete(key string)
	Flush(ctx context.Context) error
	Close() error
}

type immediateWriter struct {
	store  Store
	logger *zap.Logger
}

// NewImmediateWriter writes through to the store on every call. Write
// failures are logged, never propagated: losing a mirror write must not fail
// the user action.
func NewImmediateWriter(store Store, logger *zap.Logger) Writer {
	return &immediateWriter{store: store, logger: logger}
}

func (w *immediateWriter) Write(key string, value []byte) {
	if err := w.store.Set(context.Background(), key, value); err != nil {
		w.logger.Warn("Failed to persist state", zap.String("key", key), zap.Error(err))
	}
}

func (w *immediateWriter) Delete(key string) {
	if err := w.store.Delete(context.Background(), key); err != nil {
		w.logger.Warn("Failed to delete mirrored state", zap.String("key", key), zap.Error(err))
	}
}

func (w *immediateWriter) Flush(ctx context.Context) error { return nil }

func (w *immediateWriter) Close() error { return nil }

type debouncedWriter struct {
	store    Store
	logger   *zap.Logger
	interval time.Duration

	mu      sync.Mutex
	pending map[string][]byte
	timer   *time.Timer
	closed  bool
}

// NewDebouncedWriter coalesces writes per key and flushes at most once per
// interval. Only the latest value per key is kept; intermediate states are
// droppable because the mirror is last-write-wins anyway.
func NewDebouncedWriter(store Store, interval time.Duration, logger *zap.Logger) Writer {
	return &debouncedWriter{
		store:    store,
		logger:   logger,
		interval: interval,
		pending:  make(map[string][]byte),
	}
}

func (w *debouncedWriter) Write(key string, value []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.pending[key] = value
	if w.timer == nil {
		w.timer = time.AfterFunc(w.interval, func() {
			if err := w.Flush(context.Background()); err != nil {
				w.logger.Warn("Failed to flush batched writes", zap.Error(err))
			}
		})
	}
}

// Delete queues removal of the key. A nil pending value marks deletion;
// Write never stores nil because JSON encoding always yields bytes.
func (w *debouncedWriter) Delete(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	w.pending[key] = nil
	if w.timer == nil {
		w.timer = time.AfterFunc(w.interval, func() {
			if err := w.Flush(context.Background()); err != nil {
				w.logger.Warn("Failed to flush batched writes", zap.Error(err))
			}
		})
	}
}

// Flush applies every pending key and clears the batch.
func (w *debouncedWriter) Flush(ctx context.Context) error {
	w.mu.Lock()
	batch := w.pending
	w.pending = make(map[string][]byte)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	var firstErr error
	for key, value := range batch {
		var err error
		if value == nil {
			err = w.store.Delete(ctx, key)
		} else {
			err = w.store.Set(ctx, key, value)
		}
		if err != nil {
			w.logger.Warn("Failed to persist state", zap.String("key", key), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close flushes outstanding writes and rejects further ones.
func (w *debouncedWriter) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	return w.Flush(context.Background())
}
