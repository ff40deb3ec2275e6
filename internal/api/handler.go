package api

import (
	"encoding/json"
	"net/http"

	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/service"
)

// Handler contains all HTTP handlers for the API.
//
// Single session: every request works on the one in-memory board the server
// was started with. All connected clients see the same cards.
type Handler struct {
	cards    *service.CardService
	settings *LiveSettings
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(cards *service.CardService, settings *LiveSettings) *Handler {
	return &Handler{
		cards:    cards,
		settings: settings,
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/board", h.GetBoard)
	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)

	// Card routes
	mux.HandleFunc("GET /api/v1/cards", h.ListCards)
	mux.HandleFunc("POST /api/v1/cards", h.CreateCard)
	mux.HandleFunc("GET /api/v1/cards/{id}", h.GetCard)
	mux.HandleFunc("PATCH /api/v1/cards/{id}", h.UpdateCard)
	mux.HandleFunc("DELETE /api/v1/cards/{id}", h.DeleteCard)
	mux.HandleFunc("PATCH /api/v1/cards/{id}/move", h.MoveCard)
}

// GetBoard returns the partitioned board.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.cards.Board())
}

// GetSettings returns column display and drag thresholds.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, toSettingsResponse(h.settings.Get()))
}

// CardsResponse is the JSON response for listing cards.
type CardsResponse struct {
	Cards []model.Card `json:"cards"`
}

// ListCards returns all cards in collection order, optionally filtered by ?status=.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.URL.Query().Get("status"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, CardsResponse{Cards: cards})
}

// CreateCard creates a new card.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req service.AddCardInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	card, err := h.cards.Add(req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, card)
}

// GetCard returns a single card by ID.
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.Get(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, card)
}

// UpdateCard applies a partial update. Absent fields are left alone.
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	var req service.EditCardInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	req.ID = r.PathValue("id")

	card, err := h.cards.Edit(req)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, card)
}

// DeleteCard deletes a card.
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	if err := h.cards.Delete(r.PathValue("id")); err != nil {
		Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveCardRequest is the JSON body for moving a card.
type MoveCardRequest struct {
	Status string `json:"status"`
}

// MoveCard sets a card's status.
func (h *Handler) MoveCard(w http.ResponseWriter, r *http.Request) {
	var req MoveCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if req.Status == "" {
		BadRequest(w, "status is required")
		return
	}

	card, err := h.cards.Move(r.PathValue("id"), req.Status)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, card)
}
