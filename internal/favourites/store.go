// Package favourites holds a session's saved-product snapshots, mirrored to
// the key-value store under a key separate from the cart's.
package favourites

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ethnikart/internal/domain"
	"ethnikart/internal/keyvalue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns the favourites list for one session.
type Store struct {
	mu     sync.Mutex
	items  []domain.Favourite
	key    string
	writer keyvalue.Writer
	logger *zap.Logger
	now    func() time.Time
}

// NewStore builds an empty store mirrored under key.
func NewStore(key string, writer keyvalue.Writer, logger *zap.Logger) *Store {
	return &Store{
		key:    key,
		writer: writer,
		logger: logger,
		now:    time.Now,
	}
}

// Hydrate restores saved favourites. AddedAt comes back as a real timestamp
// through the JSON round trip, which display code depends on. Corrupt
// payloads are logged and discarded; the session starts empty.
func (s *Store) Hydrate(ctx context.Context, kv keyvalue.Store) {
	raw, err := kv.Get(ctx, s.key)
	if err != nil {
		if err != keyvalue.ErrKeyNotFound {
			s.logger.Warn("Failed to load saved favourites", zap.String("key", s.key), zap.Error(err))
		}
		return
	}

	var items []domain.Favourite
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("Discarding unreadable saved favourites", zap.String("key", s.key), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// Add saves a product snapshot. Adding a product that is already saved is a
// no-op: first write wins and the original AddedAt is preserved. The
// snapshot is never refreshed afterwards.
func (s *Store) Add(fav domain.Favourite) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.ProductID == fav.ProductID {
			return
		}
	}

	fav.AddedAt = s.now()
	s.items = append(s.items, fav)
	s.persistLocked()
}

// Remove drops the entry for the product; no-op if absent.
func (s *Store) Remove(productID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persistLocked()
}

// Contains reports whether the product is saved.
func (s *Store) Contains(productID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Clear empties the list unconditionally and removes the mirror key rather
// than mirroring an empty list.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.writer.Delete(s.key)
}

// Items returns a copy of the saved snapshots.
func (s *Store) Items() []domain.Favourite {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Favourite, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the number of saved products.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Store) persistLocked() {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("Failed to serialize favourites", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.writer.Write(s.key, raw)
}
