package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/amterp/kanboard/internal/api"
	"github.com/amterp/kanboard/internal/board"
)

// Watch streams board views until ctx is done or the connection drops.
// onBoard runs for the initial board and after every change.
func (c *Client) Watch(ctx context.Context, onBoard func(board.View)) error {
	wsURL := "ws" + strings.TrimPrefix(c.baseURL, "http") + "/api/v1/ws"

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("cannot connect to %s: %w", wsURL, err)
	}
	defer conn.Close()

	// Unblock ReadMessage when the caller gives up.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		var envelope struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &envelope); err != nil {
			continue
		}

		switch envelope.Type {
		case api.MsgConnected:
			var hello api.ConnectedData
			if err := json.Unmarshal(envelope.Data, &hello); err == nil {
				onBoard(hello.Board)
			}
		case api.MsgBoard:
			var view board.View
			if err := json.Unmarshal(envelope.Data, &view); err == nil {
				onBoard(view)
			}
		}
	}
}
