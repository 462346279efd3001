/*
Package room contains the core logic for the shared virtual room.

This file defines the Client struct, representing one active WebSocket
connection. It manages the connection's lifecycle and its message pumps:
ReadPump forwards raw inbound frames to the Room's event loop, WritePump
drains the outbound queue and keeps the heartbeat alive. The pumps never
touch room state themselves.
*/
package room

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"vibehotel/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of a message sent by the client.
	maxMessageSize = 4096

	// capacity of the per-client outbound queue.
	sendChannelBuffer = 256
)

// Client represents an active WebSocket connection identified by a session id.
type Client struct {
	// the room the client is connected to.
	room *Room

	// underlying WebSocket connection object.
	conn *websocket.Conn

	// sessionID is the opaque identity of this connection; it doubles as the
	// user id inside the room state.
	sessionID string

	// a buffered channel used to queue messages waiting to be sent to the client.
	send chan []byte

	// structured logger with session context.
	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded WebSocket connection.
func NewClient(r *Room, wsConn *websocket.Conn, sessionID string) *Client {
	clientLogger := logx.Logger().With().
		Str("session_id", sessionID).
		Logger()

	return &Client{
		room:      r,
		conn:      wsConn,
		sessionID: sessionID,
		send:      make(chan []byte, sendChannelBuffer),
		logger:    clientLogger,
	}
}

// SessionID returns the opaque identity of this connection.
func (c *Client) SessionID() string {
	return c.sessionID
}

// ReadPump reads frames from the WebSocket connection and forwards them to
// the Room's event loop. It handles heartbeats (Pong) and performs cleanup
// when the connection closes.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		// Frames are processed by the room loop one at a time; stream order
		// on the connection guarantees in-order processing per session.
		select {
		case c.room.inbound <- inboundFrame{client: c, data: messageBytes}:
		case <-c.room.done:
			return
		}
	}
}

// cleanupOnDisconnect hands the client to the room's unregister queue and
// closes the underlying connection.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	select {
	case c.room.unregister <- c:
	case <-c.room.done:
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// WritePump writes queued messages from the send channel to the WebSocket
// connection and sends periodic Ping messages to keep the heartbeat alive.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// ensure the connection is closed on exit
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one message pulled from the send channel.
// Returns true if the WritePump loop should continue, false if it should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Debug().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends a periodic WebSocket Ping message.
// Returns false if the WritePump loop should terminate due to write failure.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// enqueue pushes a pre-serialized message onto the client's send queue.
// Delivery is best-effort: when the queue is full the message is dropped so
// a slow recipient never blocks the room loop or other sessions.
func (c *Client) enqueue(message []byte) {
	select {
	case c.send <- message:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping message")
	}
}
