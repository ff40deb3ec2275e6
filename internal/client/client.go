// Package client talks to a running `kanboard serve`.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amterp/kanboard/internal/api"
	"github.com/amterp/kanboard/internal/board"
	kanerr "github.com/amterp/kanboard/internal/errors"
	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/service"
)

// Client is a JSON client for the board API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL, e.g. http://localhost:3000.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Board fetches the partitioned board.
func (c *Client) Board(ctx context.Context) (board.View, error) {
	var view board.View
	err := c.do(ctx, http.MethodGet, "/api/v1/board", nil, &view)
	return view, err
}

// Settings fetches column display and drag thresholds.
func (c *Client) Settings(ctx context.Context) (api.SettingsResponse, error) {
	var resp api.SettingsResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/settings", nil, &resp)
	return resp, err
}

// ListCards fetches cards in collection order, optionally filtered by status.
func (c *Client) ListCards(ctx context.Context, status string) ([]model.Card, error) {
	path := "/api/v1/cards"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var resp api.CardsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cards, nil
}

// GetCard fetches one card by id.
func (c *Client) GetCard(ctx context.Context, cardID string) (model.Card, error) {
	var card model.Card
	err := c.do(ctx, http.MethodGet, cardPath(cardID), nil, &card)
	return card, err
}

// CreateCard adds a card.
func (c *Client) CreateCard(ctx context.Context, input service.AddCardInput) (model.Card, error) {
	var card model.Card
	err := c.do(ctx, http.MethodPost, "/api/v1/cards", input, &card)
	return card, err
}

// UpdateCard applies a partial update.
func (c *Client) UpdateCard(ctx context.Context, input service.EditCardInput) (model.Card, error) {
	var card model.Card
	err := c.do(ctx, http.MethodPatch, cardPath(input.ID), input, &card)
	return card, err
}

// MoveCard sets a card's status.
func (c *Client) MoveCard(ctx context.Context, cardID, status string) (model.Card, error) {
	var card model.Card
	err := c.do(ctx, http.MethodPatch, cardPath(cardID)+"/move", api.MoveCardRequest{Status: status}, &card)
	return card, err
}

// DeleteCard removes a card.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodDelete, cardPath(cardID), nil, nil)
}

func cardPath(cardID string) string {
	return "/api/v1/cards/" + url.PathEscape(cardID)
}

// do sends body as JSON and decodes a 2xx response into out.
// Error responses are mapped back to the domain error kinds.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach kanboard server at %s (is `kanboard serve` running?): %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var apiErr api.ErrorResponse
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		message = apiErr.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &kanerr.NotFoundError{Resource: "card", ID: strings.TrimPrefix(message, "card not found: ")}
	case http.StatusBadRequest:
		return &kanerr.ValidationError{Message: message}
	default:
		return fmt.Errorf("server error: %s", message)
	}
}
