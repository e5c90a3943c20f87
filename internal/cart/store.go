// Package cart holds a session's cart lines in memory and mirrors them to
// the key-value store on every mutation. The mirror is consulted exactly
// once, at hydration; after that the in-memory state wins.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"ethnikart/internal/domain"
	"ethnikart/internal/keyvalue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns the line items for one session.
type Store struct {
	mu     sync.Mutex
	items  []domain.LineItem
	key    string
	writer keyvalue.Writer
	logger *zap.Logger
}

// NewStore builds an empty store mirrored under key. Call Hydrate before
// first use to restore saved state.
func NewStore(key string, writer keyvalue.Writer, logger *zap.Logger) *Store {
	return &Store{
		key:    key,
		writer: writer,
		logger: logger,
	}
}

// Hydrate restores the line list from the mirror. A missing key or a corrupt
// payload leaves the store empty; corruption is logged, never propagated.
func (s *Store) Hydrate(ctx context.Context, kv keyvalue.Store) {
	raw, err := kv.Get(ctx, s.key)
	if err != nil {
		if err != keyvalue.ErrKeyNotFound {
			s.logger.Warn("Failed to load saved cart", zap.String("key", s.key), zap.Error(err))
		}
		return
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("Discarding unreadable saved cart", zap.String("key", s.key), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// AddItem merges item into the cart. A line matching the exact
// (product, size, colour) triple gets its quantity bumped by one; otherwise
// a new line is appended with quantity 1. Always succeeds.
func (s *Store) AddItem(item domain.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameVariant(item) {
			s.items[i].Quantity++
			s.persistLocked()
			return
		}
	}

	item.Quantity = 1
	s.items = append(s.items, item)
	s.persistLocked()
}

// RemoveProduct drops every line for the product, regardless of size or
// colour. Removal is deliberately broader than AddItem's per-variant merge.
// Removing an absent product is a no-op.
func (s *Store) RemoveProduct(productID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeProductLocked(productID)
}

// SetQuantity sets the quantity on every line for the product. A quantity of
// zero or less removes the product entirely, same scope as RemoveProduct.
func (s *Store) SetQuantity(productID uuid.UUID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeProductLocked(productID)
		return
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
		}
	}
	s.persistLocked()
}

// Clear empties the cart unconditionally and removes the mirror key rather
// than mirroring an empty list.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.writer.Delete(s.key)
}

// Items returns a copy of the current line list.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of price x quantity across all lines, recomputed on every
// read.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Count is the sum of quantities across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) removeProductLocked(productID uuid.UUID) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persistLocked()
}

func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("Failed to serialize cart", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.writer.Write(s.key, raw)
}
