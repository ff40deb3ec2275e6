package service

import (
	"github.com/amterp/kanboard/internal/board"
	kanerr "github.com/amterp/kanboard/internal/errors"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/resolver"
	"github.com/amterp/kanboard/internal/store"
	"github.com/amterp/kanboard/internal/util"
)

// CardService validates input from the outer surfaces (HTTP, CLI, TUI) and
// turns store misses into errors. The store itself never fails on a miss.
type CardService struct {
	cardStore  store.CardStore
	controller *board.Controller
	resolver   *resolver.CardResolver
}

// NewCardService creates a new card service.
func NewCardService(cardStore store.CardStore, controller *board.Controller) *CardService {
	return &CardService{
		cardStore:  cardStore,
		controller: controller,
		resolver:   resolver.NewCardResolver(cardStore),
	}
}

// AddCardInput contains the input for adding a card.
type AddCardInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`   // defaults to todo
	Priority    string `json:"priority,omitempty"` // "" = unset
}

// EditCardInput contains the input for editing a card.
// Pointer fields indicate "set this field"; nil means "don't change".
type EditCardInput struct {
	ID          string  `json:"-"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"` // empty string = clear
	Priority    *string `json:"priority,omitempty"`    // empty string = clear
	Status      *string `json:"status,omitempty"`
}

// Add creates a new card and returns it.
func (s *CardService) Add(input AddCardInput) (model.Card, error) {
	title := util.CleanText(input.Title)
	if title == "" {
		return model.Card{}, kanerr.EmptyTitle()
	}

	status := model.StatusTodo
	if input.Status != "" {
		parsed, err := parseStatus(input.Status)
		if err != nil {
			return model.Card{}, err
		}
		status = parsed
	}

	priority, err := parsePriority(input.Priority)
	if err != nil {
		return model.Card{}, err
	}

	cardID, err := s.cardStore.Create(model.NewCard{
		Title:       title,
		Description: util.CleanText(input.Description),
		Priority:    priority,
		Status:      status,
	})
	if err != nil {
		return model.Card{}, err
	}
	return s.Get(cardID)
}

// Get retrieves a card by ID.
func (s *CardService) Get(cardID string) (model.Card, error) {
	card, ok := s.cardStore.Get(cardID)
	if !ok {
		return model.Card{}, kanerr.CardNotFound(cardID)
	}
	return card, nil
}

// Resolve finds a card by id, id prefix or title.
func (s *CardService) Resolve(ref string) (model.Card, error) {
	return s.resolver.Resolve(ref)
}

// List returns all cards in collection order, optionally filtered by status.
func (s *CardService) List(statusFilter string) ([]model.Card, error) {
	cards := s.cardStore.Snapshot().Cards
	if statusFilter == "" {
		return cards, nil
	}

	status, err := parseStatus(statusFilter)
	if err != nil {
		return nil, err
	}
	result := []model.Card{}
	for _, card := range cards {
		if card.Status == status {
			result = append(result, card)
		}
	}
	return result, nil
}

// Board returns the current partitioned view.
func (s *CardService) Board() board.View {
	return s.controller.View()
}

// Edit applies changes specified in the input to an existing card.
// Fields whose normalized value is unchanged are left out of the update;
// if nothing changes, no mutation is issued.
func (s *CardService) Edit(input EditCardInput) (model.Card, error) {
	card, err := s.Get(input.ID)
	if err != nil {
		return model.Card{}, err
	}

	var patch model.CardPatch

	if input.Title != nil {
		title := util.CleanText(*input.Title)
		if title == "" {
			return model.Card{}, kanerr.EmptyTitle()
		}
		if title != card.Title {
			patch.Title = &title
		}
	}

	if input.Description != nil {
		desc := util.CleanText(*input.Description)
		if desc != card.Description {
			patch.Description = &desc
		}
	}

	if input.Priority != nil {
		priority, err := parsePriority(*input.Priority)
		if err != nil {
			return model.Card{}, err
		}
		if priority != card.Priority {
			patch.Priority = &priority
		}
	}

	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return model.Card{}, err
		}
		if status != card.Status {
			patch.Status = &status
		}
	}

	if patch.Empty() {
		return card, nil
	}
	if !s.cardStore.Update(card.ID, patch) {
		// Deleted between Get and Update.
		return model.Card{}, kanerr.CardNotFound(card.ID)
	}
	return s.Get(card.ID)
}

// Move sets a card's status. Moving to the current status is allowed.
func (s *CardService) Move(cardID, status string) (model.Card, error) {
	target, err := parseStatus(status)
	if err != nil {
		return model.Card{}, err
	}
	if !s.cardStore.Move(cardID, target) {
		return model.Card{}, kanerr.CardNotFound(cardID)
	}
	return s.Get(cardID)
}

// Delete removes a card from the board.
func (s *CardService) Delete(cardID string) error {
	if !s.cardStore.Delete(cardID) {
		return kanerr.CardNotFound(cardID)
	}
	return nil
}

func parseStatus(raw string) (model.Status, error) {
	status, err := model.ParseStatus(raw)
	if err != nil {
		return 0, kanerr.InvalidField("status", err.Error())
	}
	return status, nil
}

func parsePriority(raw string) (model.Priority, error) {
	priority, err := model.ParsePriority(raw)
	if err != nil {
		return 0, kanerr.InvalidField("priority", err.Error())
	}
	return priority, nil
}
