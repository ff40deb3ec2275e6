package store

import (
	"fmt"
	"slices"
	"sync"

	kanerr "github.com/amterp/kanboard/internal/errors"
	"github.com/amterp/kanboard/internal/id"
	"github.com/amterp/kanboard/internal/model"
)

// MemoryCardStore implements CardStore in memory for the lifetime of a session.
//
// Mutations are serialized by writeMu, which is also held while listeners run,
// so listeners observe mutations in the order they were applied. Listeners may
// read from the store but must not call its mutators.
type MemoryCardStore struct {
	writeMu sync.Mutex

	mu        sync.RWMutex
	cards     []model.Card
	issued    map[string]struct{} // every id ever held, so ids are never reused
	revision  uint64
	listeners []listenerEntry
	nextSub   int

	newID id.Generator
}

type listenerEntry struct {
	id int
	fn Listener
}

// Option configures a MemoryCardStore.
type Option func(*MemoryCardStore)

// WithIDGenerator replaces the default flexid generator.
func WithIDGenerator(gen id.Generator) Option {
	return func(s *MemoryCardStore) {
		s.newID = gen
	}
}

// NewCardStore creates a store holding a copy of the given cards.
// Pass model.SeedCards() for a fresh session or nil for an empty board.
func NewCardStore(seed []model.Card, opts ...Option) *MemoryCardStore {
	s := &MemoryCardStore{
		cards:  slices.Clone(seed),
		issued: make(map[string]struct{}, len(seed)),
		newID:  id.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, c := range seed {
		s.issued[c.ID] = struct{}{}
	}
	return s
}

// Snapshot returns a copy of the current collection.
func (s *MemoryCardStore) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Get returns a copy of the card with the given id.
func (s *MemoryCardStore) Get(cardID string) (model.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(cardID); i >= 0 {
		return s.cards[i], true
	}
	return model.Card{}, false
}

// Create appends a new card with a freshly generated id.
// Title emptiness is the caller's concern; only enum ranges are checked.
func (s *MemoryCardStore) Create(input model.NewCard) (string, error) {
	if !input.Status.Valid() {
		return "", kanerr.InvalidField("status", fmt.Sprintf("out of range: %d", int(input.Status)))
	}
	if !input.Priority.Valid() {
		return "", kanerr.InvalidField("priority", fmt.Sprintf("out of range: %d", int(input.Priority)))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	cardID := s.freshIDLocked()
	s.cards = append(s.cards, model.Card{
		ID:          cardID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
	})
	snap := s.commitLocked()
	s.mu.Unlock()

	s.notify(snap)
	return cardID, nil
}

// Update merges patch into the matching card in place.
// Returns false without notifying if the id is unknown or the patch holds
// an out-of-range enum.
func (s *MemoryCardStore) Update(cardID string, patch model.CardPatch) bool {
	if !patch.Valid() {
		return false
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexLocked(cardID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.cards[i] = patch.Apply(s.cards[i])
	snap := s.commitLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

// Delete removes the matching card, keeping the order of the rest.
func (s *MemoryCardStore) Delete(cardID string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	i := s.indexLocked(cardID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.cards = slices.Delete(s.cards, i, i+1)
	snap := s.commitLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true
}

// Move changes only the card's status. Moving to the current status is
// applied as an identity mutation.
func (s *MemoryCardStore) Move(cardID string, status model.Status) bool {
	return s.Update(cardID, model.CardPatch{Status: &status})
}

// Subscribe registers fn to run after every applied mutation, after any
// previously registered listeners.
func (s *MemoryCardStore) Subscribe(fn Listener) func() {
	s.mu.Lock()
	s.nextSub++
	subID := s.nextSub
	s.listeners = append(s.listeners, listenerEntry{id: subID, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool {
				return e.id == subID
			})
		})
	}
}

func (s *MemoryCardStore) notify(snap model.Snapshot) {
	s.mu.RLock()
	listeners := slices.Clone(s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l.fn(cloneSnapshot(snap))
	}
}

func (s *MemoryCardStore) commitLocked() model.Snapshot {
	s.revision++
	return s.snapshotLocked()
}

func (s *MemoryCardStore) snapshotLocked() model.Snapshot {
	return model.Snapshot{
		Revision: s.revision,
		Cards:    copyCards(s.cards),
	}
}

func (s *MemoryCardStore) indexLocked(cardID string) int {
	return slices.IndexFunc(s.cards, func(c model.Card) bool {
		return c.ID == cardID
	})
}

// freshIDLocked asks the generator until it yields an id never seen before.
func (s *MemoryCardStore) freshIDLocked() string {
	for {
		candidate := s.newID()
		if candidate == "" {
			continue
		}
		if _, taken := s.issued[candidate]; taken {
			continue
		}
		s.issued[candidate] = struct{}{}
		return candidate
	}
}

func cloneSnapshot(snap model.Snapshot) model.Snapshot {
	snap.Cards = copyCards(snap.Cards)
	return snap
}

// copyCards never returns nil, so an empty board encodes as [].
func copyCards(cards []model.Card) []model.Card {
	out := make([]model.Card, len(cards))
	copy(out, cards)
	return out
}
