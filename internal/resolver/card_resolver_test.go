package resolver

import (
	"errors"
	"testing"

	kanerr "github.com/amterp/kanboard/internal/errors"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/store"
)

func newTestStore() *store.MemoryCardStore {
	return store.NewCardStore([]model.Card{
		{ID: "abc123", Title: "Write parser", Status: model.StatusTodo},
		{ID: "abd456", Title: "Fix login bug", Status: model.StatusTodo},
		{ID: "xyz789", Title: "Deploy service", Status: model.StatusDone},
	})
}

func TestResolve_ByExactID(t *testing.T) {
	r := NewCardResolver(newTestStore())

	card, err := r.Resolve("abc123")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if card.Title != "Write parser" {
		t.Errorf("got %q", card.Title)
	}
}

func TestResolve_ByUniquePrefix(t *testing.T) {
	r := NewCardResolver(newTestStore())

	card, err := r.Resolve("xy")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if card.ID != "xyz789" {
		t.Errorf("got %q", card.ID)
	}
}

func TestResolve_AmbiguousPrefix(t *testing.T) {
	r := NewCardResolver(newTestStore())

	_, err := r.Resolve("ab")
	var amb *kanerr.AmbiguousError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(amb.Matches) != 2 {
		t.Errorf("matches = %v", amb.Matches)
	}
	if !kanerr.IsValidationError(err) {
		t.Error("ambiguous reference should be a validation error")
	}
}

func TestResolve_ByTitleCaseInsensitive(t *testing.T) {
	r := NewCardResolver(newTestStore())

	card, err := r.Resolve("deploy SERVICE")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if card.ID != "xyz789" {
		t.Errorf("got %q", card.ID)
	}
}

func TestResolve_FuzzyTitle(t *testing.T) {
	r := NewCardResolver(newTestStore())

	card, err := r.Resolve("login")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if card.ID != "abd456" {
		t.Errorf("got %q", card.ID)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := NewCardResolver(newTestStore())

	_, err := r.Resolve("qqqq")
	if !kanerr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestResolve_EmptyReference(t *testing.T) {
	r := NewCardResolver(newTestStore())

	if _, err := r.Resolve("  "); !kanerr.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestResolve_PlainList(t *testing.T) {
	cards := model.SeedCards()

	card, err := Resolve("2", cards)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if card.ID != "2" {
		t.Errorf("got %q", card.ID)
	}

	if _, err := Resolve("zzz", cards); !kanerr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
