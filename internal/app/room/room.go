/*
Package room contains the core logic for the shared virtual room.

This file defines the Room struct and its Run event loop: the session
registry, the command processor, and the broadcast router in one place.
Events (register, unregister, inbound frame) are consumed from channels one
at a time, so every command mutates state and queues its emissions before
the next event is looked at. State therefore needs no locking, and messages
reach each recipient in the order they were produced.
*/
package room

import (
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"vibehotel/internal/app/user"
	"vibehotel/internal/pkg/logx"
)

// inboundChannelBuffer sizes the queue of raw frames waiting for the event loop.
const inboundChannelBuffer = 1024

// MaxChatLength is the maximum number of characters kept from a chat line.
const MaxChatLength = 200

// inboundFrame couples a raw client frame with the connection it arrived on.
type inboundFrame struct {
	client *Client
	data   []byte
}

// Room is the single shared virtual space all sessions occupy.
type Room struct {
	// maxClients caps simultaneous connections; 0 means unlimited.
	maxClients int

	// state is the authoritative room model, touched only by the Run loop.
	state *State

	// clients maps session ids to live connections, touched only by the Run loop.
	clients map[string]*Client

	// clientCount mirrors len(clients) for lock-free reads outside the loop.
	clientCount atomic.Int64

	// register queues clients whose connection was just upgraded.
	register chan *Client

	// unregister queues clients whose connection closed.
	unregister chan *Client

	// inbound queues raw frames read from client connections.
	inbound chan inboundFrame

	// done signals the Run loop and all pumps to stop.
	done chan struct{}

	stopOnce sync.Once

	// structured logger with room context.
	logger zerolog.Logger
}

// NewRoom creates a Room backed by a fresh State over the given catalog.
func NewRoom(catalog *Catalog, maxClients int) *Room {
	roomLogger := logx.Logger().With().
		Str("component", "room").
		Logger()

	return &Room{
		maxClients: maxClients,
		state:      NewState(catalog),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame, inboundChannelBuffer),
		done:       make(chan struct{}),
		logger:     roomLogger,
	}
}

// Catalog returns the immutable catalog of purchasable item types.
func (r *Room) Catalog() *Catalog {
	return r.state.Catalog()
}

// IsFull reports whether the room has reached its connection capacity.
// Safe to call from handler goroutines.
func (r *Room) IsFull() bool {
	return r.maxClients > 0 && int(r.clientCount.Load()) >= r.maxClients
}

// RegisterClient queues a freshly upgraded connection for registration.
func (r *Room) RegisterClient(c *Client) {
	select {
	case r.register <- c:
	case <-r.done:
		close(c.send)
	}
}

// Stop terminates the Run loop. Safe to call more than once.
func (r *Room) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

// Run starts the room's event loop. One event is fully processed before the
// next is handled; this is the only goroutine that touches room state.
func (r *Room) Run() {
	r.logger.Info().Msg("Room event loop started.")

	defer func() {
		for id, c := range r.clients {
			delete(r.clients, id)
			close(c.send)
		}
		r.clientCount.Store(0)

		r.logger.Info().Msg("Room event loop stopped.")
	}()

	for {
		select {
		case c := <-r.register:
			r.handleRegister(c)

		case c := <-r.unregister:
			r.handleUnregister(c)

		case frame := <-r.inbound:
			r.handleFrame(frame.client, frame.data)

		case <-r.done:
			return
		}
	}
}

// handleRegister admits a connection into the room: it records the session,
// creates the default user record, and sends the welcome snapshot.
func (r *Room) handleRegister(c *Client) {
	if r.maxClients > 0 && len(r.clients) >= r.maxClients {
		// The handler checks capacity before upgrading, but connections can
		// race past that check; the loop's verdict is the authoritative one.
		r.logger.Warn().
			Str("session_id", c.sessionID).
			Int("max_clients", r.maxClients).
			Msg("Room is full. Connection rejected after upgrade.")
		close(c.send)
		return
	}

	r.clients[c.sessionID] = c
	r.clientCount.Store(int64(len(r.clients)))

	u := r.state.AddUser(c.sessionID)

	r.logger.Info().
		Str("session_id", c.sessionID).
		Int("total_users", len(r.clients)).
		Msg("Client joined room.")

	r.sendTo(c, NewWelcome(
		u.ID,
		r.state.Users(),
		r.state.Credits(u.ID),
		r.state.Inventory(u.ID),
		r.state.RoomObjects(),
	))
}

// handleUnregister removes a session and its user state and announces the
// departure to everyone still connected. Unregistering a session that is
// already gone is a no-op.
func (r *Room) handleUnregister(c *Client) {
	current, ok := r.clients[c.sessionID]
	if !ok || current != c {
		return
	}

	delete(r.clients, c.sessionID)
	r.clientCount.Store(int64(len(r.clients)))
	close(c.send)

	r.state.RemoveUser(c.sessionID)

	r.logger.Info().
		Str("session_id", c.sessionID).
		Int("total_users", len(r.clients)).
		Msg("Client left room.")

	r.broadcastAll(NewUserLeft(c.sessionID))
}

// handleFrame validates and applies one inbound command. Malformed frames
// and semantically invalid commands are dropped silently; nothing here may
// take down the loop.
func (r *Room) handleFrame(c *Client, data []byte) {
	msgType := DecodeMsgType(data)
	if msgType == "" {
		c.logger.Warn().Msg("Client sent invalid or untagged frame")
		return
	}

	me, ok := r.state.User(c.sessionID)
	if !ok {
		// Frames can arrive queued behind an unregister; ignore them.
		return
	}

	switch msgType {
	case TypeJoin:
		r.handleJoin(c, data, me)

	case TypeMove:
		r.handleMove(c, data, me)

	case TypeChat:
		r.handleChat(c, data, me)

	case TypeBuyItem:
		r.handleBuyItem(c, data)

	case TypePlaceItem:
		r.handlePlaceItem(c, data)

	case TypeMoveFurni:
		r.handleMoveFurni(c, data)

	case TypePickupFurni:
		r.handlePickupFurni(c, data)

	default:
		c.logger.Debug().Str("msg_type", string(msgType)).Msg("Client sent unsupported message type")
	}
}

// handleJoin sets the sender's display name and color and announces the
// identity to everyone else.
func (r *Room) handleJoin(c *Client, data []byte, me *user.User) {
	var msg JoinMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid join payload")
		return
	}

	me.Name = truncate(strings.TrimSpace(msg.Name), user.MaxNameLength)
	if me.Name == "" {
		me.Name = user.DefaultName
	}

	me.Color = msg.Color
	if me.Color == 0 {
		me.Color = user.DefaultColor
	}

	r.broadcastExcept(c.sessionID, NewUserJoined(me.ID, *me))
}

// handleMove clamps the target tile and moves the sender there. The sender
// receives its own echo; clients treat it as harmless.
func (r *Room) handleMove(c *Client, data []byte, me *user.User) {
	var msg MoveMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid move payload")
		return
	}

	me.X, me.Y = ClampGrid(msg.X, msg.Y)

	r.broadcastAll(NewUserMoved(me.ID, me.X, me.Y))
}

// handleChat broadcasts a trimmed chat line. Empty lines are dropped.
func (r *Room) handleChat(c *Client, data []byte, me *user.User) {
	var msg ChatMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid chat payload")
		return
	}

	text := truncate(strings.TrimSpace(msg.Text), MaxChatLength)
	if text == "" {
		return
	}

	r.broadcastAll(NewChatBroadcast(me.ID, me.Name, text, time.Now().UnixMilli()))
}

// handleBuyItem debits the sender and adds the purchased item. Unknown
// catalog ids and insufficient balances are silent no-ops.
func (r *Room) handleBuyItem(c *Client, data []byte) {
	var msg BuyItemMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid buy_item payload")
		return
	}

	credits, inventory, ok := r.state.Buy(c.sessionID, msg.CatalogID)
	if !ok {
		c.logger.Debug().Str("catalog_id", msg.CatalogID).Msg("Purchase rejected")
		return
	}

	r.sendTo(c, NewUpdateCredits(credits))
	r.sendTo(c, NewSyncInventory(inventory))
}

// handlePlaceItem converts one of the sender's inventory items into a room
// object. Unknown item ids are silent no-ops.
func (r *Room) handlePlaceItem(c *Client, data []byte) {
	var msg PlaceItemMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid place_item payload")
		return
	}

	obj, inventory, ok := r.state.PlaceItem(c.sessionID, msg.ItemID, msg.X, msg.Y)
	if !ok {
		c.logger.Debug().Str("item_id", msg.ItemID).Msg("Place rejected: item not in inventory")
		return
	}

	r.sendTo(c, NewSyncInventory(inventory))
	r.broadcastAll(NewFurniPlaced(obj))
}

// handleMoveFurni moves a placed object. Any connected user may move any
// object; there is no ownership check.
func (r *Room) handleMoveFurni(c *Client, data []byte) {
	var msg MoveFurniMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid move_furni payload")
		return
	}

	x, y, ok := r.state.MoveObject(msg.InstanceID, msg.X, msg.Y)
	if !ok {
		c.logger.Debug().Str("instance_id", msg.InstanceID).Msg("Move rejected: unknown room object")
		return
	}

	r.broadcastAll(NewFurniMoved(msg.InstanceID, x, y))
}

// handlePickupFurni returns a placed object to the sender's inventory. Any
// connected user may pick up any object; there is no ownership check.
func (r *Room) handlePickupFurni(c *Client, data []byte) {
	var msg PickupFurniMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid pickup_furni payload")
		return
	}

	inventory, ok := r.state.PickupObject(c.sessionID, msg.InstanceID)
	if !ok {
		c.logger.Debug().Str("instance_id", msg.InstanceID).Msg("Pickup rejected: unknown room object")
		return
	}

	r.sendTo(c, NewSyncInventory(inventory))
	r.broadcastAll(NewFurniPickedUp(msg.InstanceID))
}

// sendTo serializes a message and queues it for a single recipient.
func (r *Room) sendTo(c *Client, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error().Err(err).Msg("Error marshaling message for send")
		return
	}

	c.enqueue(data)
}

// broadcastAll serializes a message once and queues it for every session.
func (r *Room) broadcastAll(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error().Err(err).Msg("Error marshaling message for broadcast")
		return
	}

	for _, c := range r.clients {
		c.enqueue(data)
	}
}

// broadcastExcept serializes a message once and queues it for every session
// except the named one.
func (r *Room) broadcastExcept(exceptID string, msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error().Err(err).Msg("Error marshaling message for broadcast")
		return
	}

	for id, c := range r.clients {
		if id == exceptID {
			continue
		}
		c.enqueue(data)
	}
}

// truncate keeps at most limit characters of s.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
