package model

// Card represents a single task on the board.
// An empty Description means the card has no description.
type Card struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Status      Status   `json:"status"`
}

// NewCard holds the caller-supplied fields for creating a card.
// The id is always generated by the store.
type NewCard struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
}

// CardPatch is a partial update. Nil fields are left untouched.
// A non-nil empty Description clears the description and a non-nil
// PriorityUnset clears the priority.
type CardPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Status      *Status
}

// Empty reports whether the patch changes nothing.
func (p CardPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Status == nil
}

// Valid reports whether every enum in the patch is in range.
func (p CardPatch) Valid() bool {
	if p.Status != nil && !p.Status.Valid() {
		return false
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return false
	}
	return true
}

// Apply returns a copy of c with the patch merged in.
func (p CardPatch) Apply(c Card) Card {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	return c
}

// Snapshot is a point-in-time copy of the whole card collection.
// Revision increases by one with every applied mutation.
type Snapshot struct {
	Revision uint64 `json:"revision"`
	Cards    []Card `json:"cards"`
}

// Find returns the card with the given id.
func (s Snapshot) Find(id string) (Card, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// SeedCards returns the example cards every fresh session starts from.
func SeedCards() []Card {
	return []Card{
		{
			ID:          "1",
			Title:       "Design new landing page",
			Description: "Create wireframes and mockups",
			Priority:    PriorityHigh,
			Status:      StatusTodo,
		},
		{
			ID:       "2",
			Title:    "Update documentation",
			Priority: PriorityLow,
			Status:   StatusTodo,
		},
		{
			ID:          "3",
			Title:       "Implement authentication",
			Description: "Add OAuth support",
			Priority:    PriorityMedium,
			Status:      StatusInProgress,
		},
		{
			ID:          "4",
			Title:       "Setup project",
			Description: "Initialize repository and dependencies",
			Priority:    PriorityLow,
			Status:      StatusDone,
		},
	}
}
