package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amterp/kanboard/internal/board"
	kanerr "github.com/amterp/kanboard/internal/errors"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/service"
	"github.com/amterp/kanboard/internal/store"
	"github.com/amterp/kanboard/testutil"
)

// testAPI provides a complete test environment for API handler tests.
type testAPI struct {
	mux        *http.ServeMux
	cardStore  *store.MemoryCardStore
	controller *board.Controller
	settings   *LiveSettings
}

// setupTestAPI creates a test environment over a seeded in-memory store.
func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cardStore := testutil.SeededStore(t)
	settings := NewLiveSettings(nil)
	controller := board.NewController(cardStore, settings.Get().ColumnSpecs())
	t.Cleanup(controller.Close)

	handler := NewHandler(service.NewCardService(cardStore, controller), settings)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return &testAPI{
		mux:        mux,
		cardStore:  cardStore,
		controller: controller,
		settings:   settings,
	}
}

// request makes an HTTP request and returns the response.
func (api *testAPI) request(method, path string, body any) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestGetBoard(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.request("GET", "/api/v1/board", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	view := decode[board.View](t, rec)
	if len(view.Columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(view.Columns))
	}
	if view.Columns[0].Status != model.StatusTodo || len(view.Columns[0].Cards) != 2 {
		t.Errorf("Unexpected todo column: %+v", view.Columns[0])
	}
	if len(view.DropTargets) != 3 || view.DropTargets[1] != "in-progress" {
		t.Errorf("Unexpected drop targets: %v", view.DropTargets)
	}
}

func TestListCards(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.request("GET", "/api/v1/cards", nil)
	resp := decode[CardsResponse](t, rec)
	if len(resp.Cards) != 4 {
		t.Errorf("Expected 4 cards, got %d", len(resp.Cards))
	}

	rec = api.request("GET", "/api/v1/cards?status=done", nil)
	resp = decode[CardsResponse](t, rec)
	if len(resp.Cards) != 1 || resp.Cards[0].ID != "4" {
		t.Errorf("Unexpected done cards: %+v", resp.Cards)
	}

	rec = api.request("GET", "/api/v1/cards?status=blocked", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestCreateCard(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.request("POST", "/api/v1/cards", map[string]string{
		"title":    "X",
		"priority": "medium",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	card := decode[model.Card](t, rec)
	if card.ID != "gen-1" || card.Status != model.StatusTodo || card.Priority != model.PriorityMedium {
		t.Errorf("Unexpected card: %+v", card)
	}

	todo, _ := api.controller.View().Column(model.StatusTodo)
	if len(todo.Cards) != 3 {
		t.Errorf("Expected 3 todo cards, got %d", len(todo.Cards))
	}
}

func TestCreateCard_Invalid(t *testing.T) {
	api := setupTestAPI(t)

	tests := []struct {
		name string
		body any
	}{
		{"empty title", map[string]string{"title": "  "}},
		{"bad status", map[string]string{"title": "x", "status": "later"}},
		{"bad json", "not an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.request("POST", "/api/v1/cards", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			if resp := decode[ErrorResponse](t, rec); resp.Error == "" {
				t.Error("Expected error message")
			}
		})
	}

	if got := len(api.cardStore.Snapshot().Cards); got != 4 {
		t.Errorf("Store changed: %d cards", got)
	}
}

func TestGetCard(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.request("GET", "/api/v1/cards/3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if card := decode[model.Card](t, rec); card.Title != "Implement authentication" {
		t.Errorf("Unexpected card: %+v", card)
	}

	rec = api.request("GET", "/api/v1/cards/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestUpdateCard(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.request("PATCH", "/api/v1/cards/1", map[string]string{
		"title":       "Redesign landing page",
		"description": "",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	card := decode[model.Card](t, rec)
	if card.Title != "Redesign landing page" || card.Description != "" {
		t.Errorf("Unexpected card: %+v", card)
	}
	if card.Priority != model.PriorityHigh {
		t.Error("Absent field should be left alone")
	}
}

func TestUpdateCard_EmptyTitleLeavesCard(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.request("PATCH", "/api/v1/cards/1", map[string]string{"title": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	card, _ := api.cardStore.Get("1")
	if card.Title != "Design new landing page" {
		t.Errorf("Title changed to %q", card.Title)
	}
}

func TestDeleteCard(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.request("DELETE", "/api/v1/cards/2", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}

	rec = api.request("DELETE", "/api/v1/cards/2", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", rec.Code)
	}
}

func TestMoveCard(t *testing.T) {
	api := setupTestAPI(t)

	rec := api.request("PATCH", "/api/v1/cards/2/move", MoveCardRequest{Status: "done"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if card := decode[model.Card](t, rec); card.Status != model.StatusDone {
		t.Errorf("Unexpected status: %v", card.Status)
	}

	done, _ := api.controller.View().Column(model.StatusDone)
	if len(done.Cards) != 2 {
		t.Errorf("Expected 2 done cards, got %d", len(done.Cards))
	}

	tests := []struct {
		name string
		path string
		body MoveCardRequest
		want int
	}{
		{"missing status", "/api/v1/cards/2/move", MoveCardRequest{}, http.StatusBadRequest},
		{"unknown status", "/api/v1/cards/2/move", MoveCardRequest{Status: "trash"}, http.StatusBadRequest},
		{"unknown card", "/api/v1/cards/zzz/move", MoveCardRequest{Status: "todo"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := api.request("PATCH", tt.path, tt.body); rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestGetSettings(t *testing.T) {
	api := setupTestAPI(t)

	settings := model.DefaultSettings()
	settings.Drag.DelayMillis = 400
	settings.Columns = map[string]model.ColumnSettings{"done": {Title: "Shipped"}}
	api.settings.Set(settings)

	rec := api.request("GET", "/api/v1/settings", nil)
	resp := decode[SettingsResponse](t, rec)
	if resp.Drag.DelayMillis != 400 || resp.Drag.TolerancePx != model.DefaultDragTolerancePx {
		t.Errorf("Unexpected drag settings: %+v", resp.Drag)
	}
	if resp.Columns[2].Title != "Shipped" {
		t.Errorf("Unexpected columns: %+v", resp.Columns)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{kanerr.CardNotFound("x"), http.StatusNotFound},
		{kanerr.EmptyTitle(), http.StatusBadRequest},
		{kanerr.AmbiguousCard("a", []string{"ab", "ac"}), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestCors_Preflight(t *testing.T) {
	api := setupTestAPI(t)
	h := Cors(api.mux)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cards", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Missing CORS header")
	}
}
