package bookmarks

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/akasha/internal/db"
	"github.com/ziadkadry99/akasha/internal/lore"
)

// Slots is the key-value storage a Store persists to. *db.DB satisfies it.
type Slots interface {
	ReadSlot(ctx context.Context, name string) ([]byte, error)
	WriteSlot(ctx context.Context, name string, value []byte) error
}

// Store owns the saved set for a session. Toggle and its write-through run
// under one lock, so concurrent toggles never interleave.
type Store struct {
	mu      sync.Mutex
	slots   Slots
	slot    string
	set     Set
	lastErr error
	logger  *zap.Logger
}

// NewStore creates an empty store bound to the named slot. Call Load to
// restore a previous session.
func NewStore(slots Slots, slot string, logger *zap.Logger) *Store {
	if slot == "" {
		slot = DefaultSlot
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{slots: slots, slot: slot, set: Set{}, logger: logger}
}

// Load replaces the in-memory set with the persisted one. It never fails:
// a missing, unreadable or malformed slot yields an empty set.
func (s *Store) Load(ctx context.Context) Set {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.slots.ReadSlot(ctx, s.slot)
	switch {
	case errors.Is(err, db.ErrSlotNotFound):
		s.set = Set{}
	case err != nil:
		s.logger.Warn("reading saved transmissions", zap.String("slot", s.slot), zap.Error(err))
		s.set = Set{}
	default:
		s.set = Decode(data)
	}

	s.logger.Debug("saved transmissions loaded", zap.String("slot", s.slot), zap.Int("count", len(s.set)))
	return s.snapshot()
}

// Toggle saves e, or removes it if already saved, then persists the new
// set. A persistence failure is logged and recorded but does not undo the
// change: the in-memory set stays authoritative for the session.
func (s *Store) Toggle(ctx context.Context, e lore.Excerpt) (saved bool, snapshot Set) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.set = Toggle(s.set, e)
	saved = IsSaved(s.set, e)

	if err := s.persistLocked(ctx); err != nil {
		s.logger.Warn("persisting saved transmissions", zap.String("slot", s.slot), zap.Error(err))
	}
	return saved, s.snapshot()
}

// IsSaved reports whether e is in the current set.
func (s *Store) IsSaved(e lore.Excerpt) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return IsSaved(s.set, e)
}

// Snapshot returns a copy of the current set.
func (s *Store) Snapshot() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Persist writes the current set to the slot.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// LastPersistError returns the error from the most recent write, or nil if
// it succeeded.
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := Encode(s.set)
	if err == nil {
		err = s.slots.WriteSlot(ctx, s.slot, data)
	}
	s.lastErr = err
	return err
}

func (s *Store) snapshot() Set {
	return append(Set{}, s.set...)
}
