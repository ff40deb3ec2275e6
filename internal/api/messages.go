package api

import (
	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/kanboard/internal/model"
)

// Server -> client message types.
const (
	MsgConnected = "connected"
	MsgBoard     = "board"
	MsgSettings  = "settings"
	MsgDrop      = "drop"
	MsgError     = "error"
)

// Client -> server message types.
const (
	MsgDragStart   = "drag_start"
	MsgDragMove    = "drag_move"
	MsgDragRelease = "drag_release"
	MsgDragCancel  = "drag_cancel"
)

// WebSocketMessage is the JSON message sent to clients.
type WebSocketMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ClientMessage is a drag notification from a client's gesture recognizer.
// Which fields are set depends on Type.
type ClientMessage struct {
	Type   string `json:"type"`
	CardID string `json:"card_id,omitempty"` // drag_start
	DX     int    `json:"dx,omitempty"`      // drag_move
	DY     int    `json:"dy,omitempty"`      // drag_move
	Target string `json:"target,omitempty"`  // drag_release; "" = over no target
}

// ConnectedData greets a new connection.
type ConnectedData struct {
	SessionID string             `json:"session_id"`
	Drag      model.DragSettings `json:"drag"`
	Board     board.View         `json:"board"`
}

// ErrorData reports a rejected client message.
type ErrorData struct {
	Message string `json:"message"`
}
