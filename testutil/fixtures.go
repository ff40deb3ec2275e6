package testutil

import (
	"sync"
	"testing"

	"github.com/amterp/kanboard/internal/id"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/store"
)

// TestCard returns a todo card with sensible test defaults.
func TestCard(cardID, title string) model.Card {
	return model.Card{
		ID:     cardID,
		Title:  title,
		Status: model.StatusTodo,
	}
}

// SeededStore returns a store holding the session seed cards. Generated ids
// are predictable: gen-1, gen-2, ...
func SeededStore(t *testing.T) *store.MemoryCardStore {
	t.Helper()
	return store.NewCardStore(model.SeedCards(), store.WithIDGenerator(id.Sequence("gen-")))
}

// MoveCall records one Move invocation.
type MoveCall struct {
	CardID string
	Status model.Status
}

// RecordingMover counts Move calls and forwards them to an optional store.
type RecordingMover struct {
	mu    sync.Mutex
	Next  store.CardStore
	Calls []MoveCall
}

// Move records the call and forwards it.
func (m *RecordingMover) Move(cardID string, status model.Status) bool {
	m.mu.Lock()
	m.Calls = append(m.Calls, MoveCall{CardID: cardID, Status: status})
	m.mu.Unlock()

	if m.Next == nil {
		return true
	}
	return m.Next.Move(cardID, status)
}

// CallCount returns how many moves were issued.
func (m *RecordingMover) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// StatusOf returns the status of a card in snap, failing the test if absent.
func StatusOf(t *testing.T, snap model.Snapshot, cardID string) model.Status {
	t.Helper()
	card, ok := snap.Find(cardID)
	if !ok {
		t.Fatalf("card %s not found in snapshot", cardID)
	}
	return card.Status
}
