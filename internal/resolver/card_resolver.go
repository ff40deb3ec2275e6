package resolver

import (
	"strings"

	"github.com/sahilm/fuzzy"

	kanerr "github.com/amterp/kanboard/internal/errors"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/store"
)

// CardResolver turns a user-typed card reference into a card.
type CardResolver struct {
	cardStore store.CardStore
}

// NewCardResolver creates a new card resolver.
func NewCardResolver(cardStore store.CardStore) *CardResolver {
	return &CardResolver{cardStore: cardStore}
}

// Resolve finds a card by reference. In order:
//  1. exact id
//  2. unique id prefix
//  3. exact title, case-insensitive
//  4. fuzzy title match, when one candidate clearly scores best
func (r *CardResolver) Resolve(ref string) (model.Card, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Card{}, kanerr.InvalidField("card", "reference must not be empty")
	}

	if card, ok := r.cardStore.Get(ref); ok {
		return card, nil
	}
	return Resolve(ref, r.cardStore.Snapshot().Cards)
}

// Resolve is CardResolver.Resolve over a plain card list, for callers that
// fetched the board remotely.
func Resolve(ref string, cards []model.Card) (model.Card, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Card{}, kanerr.InvalidField("card", "reference must not be empty")
	}

	for _, c := range cards {
		if c.ID == ref {
			return c, nil
		}
	}

	if card, err, done := uniqueMatch(ref, cards, func(c model.Card) bool {
		return strings.HasPrefix(c.ID, ref)
	}); done {
		return card, err
	}

	if card, err, done := uniqueMatch(ref, cards, func(c model.Card) bool {
		return strings.EqualFold(c.Title, ref)
	}); done {
		return card, err
	}

	return fuzzyMatch(ref, cards)
}

// uniqueMatch reports done=true when pred matched at least one card.
func uniqueMatch(ref string, cards []model.Card, pred func(model.Card) bool) (model.Card, error, bool) {
	var matches []model.Card
	for _, c := range cards {
		if pred(c) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return model.Card{}, nil, false
	case 1:
		return matches[0], nil, true
	default:
		return model.Card{}, kanerr.AmbiguousCard(ref, cardIDs(matches)), true
	}
}

func fuzzyMatch(ref string, cards []model.Card) (model.Card, error) {
	matches := fuzzy.FindFrom(ref, titleSource(cards))
	switch {
	case len(matches) == 0:
		return model.Card{}, kanerr.CardNotFound(ref)
	case len(matches) == 1 || matches[0].Score > matches[1].Score:
		return cards[matches[0].Index], nil
	}

	var tied []model.Card
	for _, m := range matches {
		if m.Score == matches[0].Score {
			tied = append(tied, cards[m.Index])
		}
	}
	return model.Card{}, kanerr.AmbiguousCard(ref, cardIDs(tied))
}

// titleSource adapts a card slice to fuzzy.Source.
type titleSource []model.Card

func (t titleSource) String(i int) string { return t[i].Title }
func (t titleSource) Len() int            { return len(t) }

func cardIDs(cards []model.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
