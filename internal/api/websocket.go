package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/amterp/kanboard/internal/board"
	"github.com/amterp/kanboard/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WebSocketHub pushes board changes to every connection and runs one drag
// state machine per connection.
type WebSocketHub struct {
	logger     *log.Logger
	controller *board.Controller
	settings   *LiveSettings

	mu      sync.RWMutex
	clients map[*WebSocketClient]bool
}

// WebSocketClient represents a connected WebSocket client.
type WebSocketClient struct {
	hub       *WebSocketHub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
	// drag is only touched from readPump.
	drag *board.Drag
	log  *log.Entry
}

// NewWebSocketHub creates a hub and subscribes it to board changes.
func NewWebSocketHub(controller *board.Controller, settings *LiveSettings, logger *log.Logger) *WebSocketHub {
	h := &WebSocketHub{
		logger:     logger,
		controller: controller,
		settings:   settings,
		clients:    make(map[*WebSocketClient]bool),
	}
	controller.OnChange(h.OnBoardChange)
	return h
}

// OnBoardChange broadcasts the re-derived board.
func (h *WebSocketHub) OnBoardChange(view board.View) {
	h.broadcastMessage(WebSocketMessage{Type: MsgBoard, Data: view})
}

// OnSettingsChange broadcasts reloaded column display and drag thresholds.
func (h *WebSocketHub) OnSettingsChange(settings *model.Settings) {
	h.broadcastMessage(WebSocketMessage{Type: MsgSettings, Data: toSettingsResponse(settings)})
}

func (h *WebSocketHub) broadcastMessage(msg WebSocketMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.WithError(err).Errorf("Failed to marshal %s message", msg.Type)
		return
	}
	h.broadcast(data)
}

// broadcast sends a message to all connected clients.
func (h *WebSocketHub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.trySend(client, data)
	}
}

// trySend attempts to send data to a client, handling the case where
// the client's channel was closed between snapshot and send.
func (h *WebSocketHub) trySend(client *WebSocketClient, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed by removeClient - client already cleaned up
		}
	}()

	select {
	case client.send <- data:
	default:
		// Client buffer full, close it
		h.logger.WithField("session", client.sessionID).Warn("WebSocket client too slow, dropping")
		h.removeClient(client)
	}
}

func (h *WebSocketHub) addClient(client *WebSocketClient) {
	h.mu.Lock()
	h.addClientLocked(client)
	h.mu.Unlock()
}

func (h *WebSocketHub) addClientLocked(client *WebSocketClient) {
	h.clients[client] = true
}

// register queues the greeting and adds client under one lock, so no board
// broadcast can reach the client ahead of it. The greeting's board is read
// inside that section; any later change is broadcast to the client after it.
func (h *WebSocketHub) register(client *WebSocketClient) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	payload, err := json.Marshal(WebSocketMessage{Type: MsgConnected, Data: ConnectedData{
		SessionID: client.sessionID,
		Drag:      h.settings.Get().Drag,
		Board:     h.controller.View(),
	}})
	if err != nil {
		return err
	}
	// The send buffer is fresh and empty.
	client.send <- payload
	h.addClientLocked(client)
	return nil
}

func (h *WebSocketHub) removeClient(client *WebSocketClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

func (h *WebSocketHub) newClient(conn *websocket.Conn) *WebSocketClient {
	sessionID := uuid.NewString()
	return &WebSocketClient{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
		drag:      h.controller.NewDrag(),
		log:       h.logger.WithField("session", sessionID),
	}
}

// ServeWS handles WebSocket connection requests.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := h.newClient(conn)
	if err := h.register(client); err != nil {
		client.log.WithError(err).Error("Failed to greet WebSocket client")
		conn.Close()
		return
	}
	client.log.Debug("WebSocket connected")

	go client.writePump()
	go client.readPump()
}

// handle applies one drag notification.
func (c *WebSocketClient) handle(msg ClientMessage) {
	switch msg.Type {
	case MsgDragStart:
		if err := c.drag.Start(msg.CardID); err != nil {
			c.sendError(err.Error())
			return
		}
		c.log.WithField("card", msg.CardID).Debug("Drag started")

	case MsgDragMove:
		c.drag.Pointer(msg.DX, msg.DY)

	case MsgDragRelease:
		result := c.drag.Release(msg.Target)
		c.log.WithFields(log.Fields{
			"card":   result.CardID,
			"target": msg.Target,
			"moved":  result.Moved,
		}).Debug("Drag released")
		c.sendMessage(MsgDrop, result)

	case MsgDragCancel:
		cardID := c.drag.ActiveID()
		c.drag.Cancel()
		c.sendMessage(MsgDrop, board.DropResult{CardID: cardID})

	default:
		c.sendError("unknown message type: " + msg.Type)
	}
}

func (c *WebSocketClient) sendMessage(msgType string, data any) {
	payload, err := json.Marshal(WebSocketMessage{Type: msgType, Data: data})
	if err != nil {
		c.log.WithError(err).Errorf("Failed to marshal %s message", msgType)
		return
	}
	c.hub.trySend(c, payload)
}

func (c *WebSocketClient) sendError(message string) {
	c.sendMessage(MsgError, ErrorData{Message: message})
}

// readPump reads drag notifications until the connection drops.
func (c *WebSocketClient) readPump() {
	defer func() {
		// A connection lost mid-drag abandons the drag.
		c.drag.Cancel()
		// Only call removeClient here - closing send channel signals writePump to exit
		// writePump is responsible for closing the connection
		c.hub.removeClient(c)
		c.log.Debug("WebSocket disconnected")
	}()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WebSocket read error")
			}
			break
		}
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}
		c.handle(msg)
	}
}

// writePump writes messages to the WebSocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(30 * time.Second) // Ping interval
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// One frame per message so each frame is a complete JSON document.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll disconnects every client.
func (h *WebSocketHub) CloseAll() {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.removeClient(client)
	}
}
