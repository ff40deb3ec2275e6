// Package inline models in-place editing of a single card field.
package inline

import (
	"fmt"

	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/util"
)

// Field is the card field being edited.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldDescription:
		return "description"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Updater is the store operation a committed edit issues.
type Updater interface {
	Update(cardID string, patch model.CardPatch) bool
}

// Outcome says what ending an edit did.
type Outcome int

const (
	// Committed means one update was issued.
	Committed Outcome = iota
	// Unchanged means the normalized draft equalled the prior value.
	Unchanged
	// Reverted means the draft was rejected and restored to the prior value.
	Reverted
	// Cancelled means the user abandoned the edit.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case Unchanged:
		return "unchanged"
	case Reverted:
		return "reverted"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Session is one in-progress edit of one field of one card.
// Nothing reaches the store until Submit or Blur.
type Session struct {
	updater Updater
	cardID  string
	field   Field
	prior   string
	draft   string
	active  bool
}

// Begin starts editing field of card. The draft starts as the current value.
func Begin(updater Updater, card model.Card, field Field) *Session {
	prior := card.Title
	if field == FieldDescription {
		prior = card.Description
	}
	return &Session{
		updater: updater,
		cardID:  card.ID,
		field:   field,
		prior:   prior,
		draft:   prior,
		active:  true,
	}
}

// CardID returns the card being edited.
func (s *Session) CardID() string { return s.cardID }

// Field returns the field being edited.
func (s *Session) Field() Field { return s.field }

// Active reports whether the session can still be submitted.
func (s *Session) Active() bool { return s.active }

// Draft returns the current draft text.
func (s *Session) Draft() string { return s.draft }

// SetDraft replaces the draft. Ignored once the session has ended.
func (s *Session) SetDraft(text string) {
	if s.active {
		s.draft = text
	}
}

// Submit ends the session, committing the normalized draft.
//
// A title is trimmed; an empty result is rejected and the draft reverts to
// the prior title. A description is trimmed; an empty result clears it.
// A value equal to the prior one issues no update.
func (s *Session) Submit() Outcome {
	if !s.active {
		return Cancelled
	}
	s.active = false

	value := util.CleanText(s.draft)
	if s.field == FieldTitle && value == "" {
		s.draft = s.prior
		return Reverted
	}
	s.draft = value
	if value == s.prior {
		return Unchanged
	}

	var patch model.CardPatch
	if s.field == FieldTitle {
		patch.Title = &value
	} else {
		patch.Description = &value
	}
	if !s.updater.Update(s.cardID, patch) {
		// Card deleted while editing.
		s.draft = s.prior
		return Reverted
	}
	return Committed
}

// Blur is losing focus, which submits.
func (s *Session) Blur() Outcome {
	return s.Submit()
}

// Cancel ends the session and restores the prior value without touching the store.
func (s *Session) Cancel() Outcome {
	if s.active {
		s.active = false
		s.draft = s.prior
	}
	return Cancelled
}
