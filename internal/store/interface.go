package store

import "github.com/amterp/kanboard/internal/model"

// Listener receives the full collection after every applied mutation.
type Listener func(snap model.Snapshot)

// CardStore owns the card collection. All reads and writes go through it;
// callers only ever hold copies of cards.
//
// Mutators that reference an unknown id are no-ops and report false.
type CardStore interface {
	Snapshot() model.Snapshot
	Get(cardID string) (model.Card, bool)
	Create(card model.NewCard) (string, error)
	Update(cardID string, patch model.CardPatch) bool
	Delete(cardID string) bool
	Move(cardID string, status model.Status) bool
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn Listener) (unsubscribe func())
}

// SettingsStore handles settings persistence.
type SettingsStore interface {
	Load() (*model.Settings, error)
	Save(settings *model.Settings) error
	Path() string
}
