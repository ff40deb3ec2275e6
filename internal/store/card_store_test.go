package store

import (
	"reflect"
	"sync"
	"testing"

	kanerr "github.com/amterp/kanboard/internal/errors"
	"github.com/amterp/kanboard/internal/id"
	"github.com/amterp/kanboard/internal/model"
)

func setupSeededStore(t *testing.T) *MemoryCardStore {
	t.Helper()
	return NewCardStore(model.SeedCards(), WithIDGenerator(id.Sequence("gen-")))
}

func cardIDs(cards []model.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func strPtr(s string) *string { return &s }

func TestMemoryCardStore_SeedSnapshot(t *testing.T) {
	s := setupSeededStore(t)

	snap := s.Snapshot()
	if snap.Revision != 0 {
		t.Errorf("fresh store revision = %d, want 0", snap.Revision)
	}
	if got := cardIDs(snap.Cards); !reflect.DeepEqual(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("seed order = %v", got)
	}
}

func TestMemoryCardStore_EmptySnapshotNotNil(t *testing.T) {
	s := NewCardStore(nil)
	if s.Snapshot().Cards == nil {
		t.Error("expected non-nil empty slice")
	}
}

func TestMemoryCardStore_CreateAppends(t *testing.T) {
	s := setupSeededStore(t)

	newID, err := s.Create(model.NewCard{Title: "X", Status: model.StatusTodo})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if newID != "gen-1" {
		t.Errorf("id = %q, want gen-1", newID)
	}

	snap := s.Snapshot()
	if len(snap.Cards) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(snap.Cards))
	}
	last := snap.Cards[4]
	if last.ID != newID || last.Title != "X" || last.Status != model.StatusTodo {
		t.Errorf("appended card = %+v", last)
	}
	if last.Priority != model.PriorityUnset || last.Description != "" {
		t.Errorf("optional fields should be absent: %+v", last)
	}
	if snap.Revision != 1 {
		t.Errorf("revision = %d, want 1", snap.Revision)
	}
}

func TestMemoryCardStore_CreateRejectsOutOfRangeEnums(t *testing.T) {
	s := setupSeededStore(t)

	if _, err := s.Create(model.NewCard{Title: "X"}); !kanerr.IsValidationError(err) {
		t.Errorf("zero status: expected validation error, got %v", err)
	}
	if _, err := s.Create(model.NewCard{Title: "X", Status: model.StatusDone, Priority: 9}); !kanerr.IsValidationError(err) {
		t.Errorf("bad priority: expected validation error, got %v", err)
	}
	if n := len(s.Snapshot().Cards); n != 4 {
		t.Errorf("rejected creates changed collection: %d cards", n)
	}
}

func TestMemoryCardStore_IDsNeverReused(t *testing.T) {
	// Generator that keeps proposing ids the store has already seen.
	proposals := []string{"1", "a", "a", "b", "a", "b", "c"}
	i := 0
	gen := func() string {
		p := proposals[i]
		i++
		return p
	}
	s := NewCardStore(model.SeedCards(), WithIDGenerator(gen))

	first, _ := s.Create(model.NewCard{Title: "A", Status: model.StatusTodo})
	if first != "a" {
		t.Fatalf("first id = %q, want a (seed id 1 must be skipped)", first)
	}
	s.Delete(first)

	second, _ := s.Create(model.NewCard{Title: "B", Status: model.StatusTodo})
	if second != "b" {
		t.Fatalf("second id = %q, want b (deleted id a must not be reused)", second)
	}
	third, _ := s.Create(model.NewCard{Title: "C", Status: model.StatusTodo})
	if third != "c" {
		t.Fatalf("third id = %q, want c", third)
	}
}

func TestMemoryCardStore_ManyCreatesUniqueIDs(t *testing.T) {
	s := NewCardStore(nil)
	seen := make(map[string]bool)
	for n := 0; n < 200; n++ {
		cardID, err := s.Create(model.NewCard{Title: "T", Status: model.StatusTodo})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[cardID] {
			t.Fatalf("duplicate id %q", cardID)
		}
		seen[cardID] = true
		if n%3 == 0 {
			s.Delete(cardID)
		}
	}
}

func TestMemoryCardStore_UpdateMergesOnlyGivenFields(t *testing.T) {
	s := setupSeededStore(t)
	before, _ := s.Get("1")

	if !s.Update("1", model.CardPatch{Title: strPtr("Redesign landing page")}) {
		t.Fatal("Update reported miss for existing card")
	}

	after, _ := s.Get("1")
	if after.Title != "Redesign landing page" {
		t.Errorf("title = %q", after.Title)
	}
	after.Title = before.Title
	if after != before {
		t.Errorf("other fields changed: before %+v after %+v", before, after)
	}
	if got := cardIDs(s.Snapshot().Cards); !reflect.DeepEqual(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("update changed order: %v", got)
	}
}

func TestMemoryCardStore_UpdateClearsDescriptionAndPriority(t *testing.T) {
	s := setupSeededStore(t)
	unset := model.PriorityUnset

	s.Update("1", model.CardPatch{Description: strPtr(""), Priority: &unset})

	card, _ := s.Get("1")
	if card.Description != "" {
		t.Errorf("description not cleared: %q", card.Description)
	}
	if card.Priority != model.PriorityUnset {
		t.Errorf("priority not cleared: %v", card.Priority)
	}
	if card.Title != "Design new landing page" {
		t.Errorf("title touched: %q", card.Title)
	}
}

func TestMemoryCardStore_UpdateUnknownIDIsNoop(t *testing.T) {
	s := setupSeededStore(t)
	before := s.Snapshot()

	if s.Update("missing", model.CardPatch{Title: strPtr("x")}) {
		t.Error("Update reported success for unknown id")
	}
	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("collection changed: %+v", after)
	}
}

func TestMemoryCardStore_UpdateRejectsInvalidPatch(t *testing.T) {
	s := setupSeededStore(t)
	bad := model.Status(99)

	if s.Update("1", model.CardPatch{Title: strPtr("x"), Status: &bad}) {
		t.Error("Update accepted out-of-range status")
	}
	card, _ := s.Get("1")
	if card.Title != "Design new landing page" || card.Status != model.StatusTodo {
		t.Errorf("invalid patch partially applied: %+v", card)
	}
}

func TestMemoryCardStore_DeleteKeepsRelativeOrder(t *testing.T) {
	s := setupSeededStore(t)

	if !s.Delete("2") {
		t.Fatal("Delete reported miss")
	}
	if got := cardIDs(s.Snapshot().Cards); !reflect.DeepEqual(got, []string{"1", "3", "4"}) {
		t.Errorf("order after delete = %v", got)
	}
	if _, ok := s.Get("2"); ok {
		t.Error("deleted card still readable")
	}
}

func TestMemoryCardStore_DeleteUnknownIDIsNoop(t *testing.T) {
	s := setupSeededStore(t)
	before := s.Snapshot()

	if s.Delete("nope") {
		t.Error("Delete reported success for unknown id")
	}
	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("collection changed: %+v", after)
	}
}

func TestMemoryCardStore_MoveChangesOnlyStatus(t *testing.T) {
	s := setupSeededStore(t)
	before, _ := s.Get("2")

	if !s.Move("2", model.StatusDone) {
		t.Fatal("Move reported miss")
	}

	after, _ := s.Get("2")
	if after.Status != model.StatusDone {
		t.Errorf("status = %v, want done", after.Status)
	}
	after.Status = before.Status
	if after != before {
		t.Errorf("move touched other fields: %+v", after)
	}
	if got := cardIDs(s.Snapshot().Cards); !reflect.DeepEqual(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("move relocated card: %v", got)
	}
}

func TestMemoryCardStore_MoveToSameStatusIsIdentity(t *testing.T) {
	s := setupSeededStore(t)
	before := s.Snapshot()

	if !s.Move("3", model.StatusInProgress) {
		t.Fatal("Move reported miss")
	}

	after := s.Snapshot()
	if !reflect.DeepEqual(before.Cards, after.Cards) {
		t.Errorf("content changed: %+v", after.Cards)
	}
}

func TestMemoryCardStore_MoveRejectsInvalidStatus(t *testing.T) {
	s := setupSeededStore(t)

	if s.Move("1", model.Status(0)) {
		t.Error("Move accepted zero status")
	}
	if s.Move("missing", model.StatusDone) {
		t.Error("Move accepted unknown id")
	}
	card, _ := s.Get("1")
	if card.Status != model.StatusTodo {
		t.Errorf("status corrupted: %v", card.Status)
	}
}

func TestMemoryCardStore_SubscribersNotifiedInOrder(t *testing.T) {
	s := setupSeededStore(t)

	var calls []string
	var revisions []uint64
	s.Subscribe(func(snap model.Snapshot) {
		calls = append(calls, "first")
		revisions = append(revisions, snap.Revision)
	})
	s.Subscribe(func(snap model.Snapshot) {
		calls = append(calls, "second")
	})

	s.Create(model.NewCard{Title: "X", Status: model.StatusTodo})
	s.Move("1", model.StatusDone)
	s.Delete("2")

	want := []string{"first", "second", "first", "second", "first", "second"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if !reflect.DeepEqual(revisions, []uint64{1, 2, 3}) {
		t.Errorf("revisions = %v", revisions)
	}
}

func TestMemoryCardStore_SubscriberGetsFullSnapshot(t *testing.T) {
	s := setupSeededStore(t)

	var got model.Snapshot
	s.Subscribe(func(snap model.Snapshot) { got = snap })
	s.Move("2", model.StatusInProgress)

	if len(got.Cards) != 4 {
		t.Fatalf("snapshot has %d cards, want 4", len(got.Cards))
	}
	if c, _ := got.Find("2"); c.Status != model.StatusInProgress {
		t.Errorf("snapshot not post-mutation: %+v", c)
	}
}

func TestMemoryCardStore_MissesDoNotNotify(t *testing.T) {
	s := setupSeededStore(t)

	notified := 0
	s.Subscribe(func(model.Snapshot) { notified++ })

	s.Update("missing", model.CardPatch{Title: strPtr("x")})
	s.Delete("missing")
	s.Move("missing", model.StatusDone)

	if notified != 0 {
		t.Errorf("notified %d times on misses", notified)
	}
}

func TestMemoryCardStore_Unsubscribe(t *testing.T) {
	s := setupSeededStore(t)

	notified := 0
	unsubscribe := s.Subscribe(func(model.Snapshot) { notified++ })

	s.Move("1", model.StatusDone)
	unsubscribe()
	unsubscribe() // Should not panic
	s.Move("1", model.StatusTodo)

	if notified != 1 {
		t.Errorf("notified %d times, want 1", notified)
	}
}

func TestMemoryCardStore_SnapshotIsACopy(t *testing.T) {
	s := setupSeededStore(t)

	snap := s.Snapshot()
	snap.Cards[0].Title = "mutated outside"

	card, _ := s.Get("1")
	if card.Title == "mutated outside" {
		t.Error("snapshot aliases store state")
	}
}

func TestMemoryCardStore_ListenerCanReadStore(t *testing.T) {
	s := setupSeededStore(t)

	var seen int
	s.Subscribe(func(model.Snapshot) {
		seen = len(s.Snapshot().Cards)
	})
	s.Create(model.NewCard{Title: "X", Status: model.StatusDone})

	if seen != 5 {
		t.Errorf("listener read %d cards, want 5", seen)
	}
}

func TestMemoryCardStore_ConcurrentMutations(t *testing.T) {
	s := NewCardStore(nil)

	var last uint64
	var mu sync.Mutex
	ordered := true
	s.Subscribe(func(snap model.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if snap.Revision != last+1 {
			ordered = false
		}
		last = snap.Revision
	})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 25; n++ {
				cardID, _ := s.Create(model.NewCard{Title: "T", Status: model.StatusTodo})
				s.Move(cardID, model.StatusDone)
			}
		}()
	}
	wg.Wait()

	if n := len(s.Snapshot().Cards); n != 200 {
		t.Errorf("expected 200 cards, got %d", n)
	}
	if !ordered {
		t.Error("listeners observed revisions out of order")
	}
	if last != 400 {
		t.Errorf("last revision = %d, want 400", last)
	}
}
