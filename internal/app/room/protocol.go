/*
Package room contains the core logic for the shared virtual room: the
authoritative state store, the command processor, and client connection
handling.

This file defines the closed message vocabulary exchanged with clients.
Every message is a flat JSON object tagged by a "type" field. Ids are opaque
strings, coordinates are integers (fractional input is rounded server-side),
colors are 24-bit integers, and timestamps are epoch milliseconds.
*/
package room

import (
	"encoding/json"

	"vibehotel/internal/app/user"
)

// ClientMsgType enumerates the commands a client may send.
type ClientMsgType string

const (
	TypeJoin        ClientMsgType = "join"
	TypeMove        ClientMsgType = "move"
	TypeChat        ClientMsgType = "chat"
	TypeBuyItem     ClientMsgType = "buy_item"
	TypePlaceItem   ClientMsgType = "place_item"
	TypeMoveFurni   ClientMsgType = "move_furni"
	TypePickupFurni ClientMsgType = "pickup_furni"
)

// Server-to-client message type tags.
const (
	TypeWelcome       = "welcome"
	TypeUserJoined    = "user_joined"
	TypeUserLeft      = "user_left"
	TypeUserMoved     = "user_moved"
	TypeChatBroadcast = "chat"
	TypeUpdateCredits = "update_credits"
	TypeSyncInventory = "sync_inventory"
	TypeFurniPlaced   = "furni_placed"
	TypeFurniMoved    = "furni_moved"
	TypeFurniPickedUp = "furni_picked_up"
)

// Client command payloads. Coordinates arrive as float64 because clients may
// send fractional positions; the state store rounds and clamps them.

// JoinMsg sets the sender's display name and avatar color.
type JoinMsg struct {
	Name  string `json:"name"`
	Color int    `json:"color"`
}

// MoveMsg moves the sender to a grid tile.
type MoveMsg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ChatMsg broadcasts a chat line from the sender.
type ChatMsg struct {
	Text string `json:"text"`
}

// BuyItemMsg purchases one catalog item into the sender's inventory.
type BuyItemMsg struct {
	CatalogID string `json:"catalogId"`
}

// PlaceItemMsg places an inventory item into the room at a grid tile.
type PlaceItemMsg struct {
	ItemID string  `json:"itemId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// MoveFurniMsg moves a placed room object to another grid tile.
type MoveFurniMsg struct {
	InstanceID string  `json:"instanceId"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// PickupFurniMsg returns a placed room object to the sender's inventory.
type PickupFurniMsg struct {
	InstanceID string `json:"instanceId"`
}

// DecodeMsgType extracts the "type" tag from a raw client frame.
// It returns an empty type if the frame is not valid JSON or carries no tag;
// such frames are dropped by the caller.
func DecodeMsgType(data []byte) ClientMsgType {
	var envelope struct {
		Type ClientMsgType `json:"type"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}

	return envelope.Type
}

// Server message structures. Constructors set the type tag so call sites
// cannot mislabel a message.

// WelcomeMsg is sent to a freshly connected session only. It carries the
// session's id and a full snapshot of the room.
type WelcomeMsg struct {
	Type        string               `json:"type"`
	ID          string               `json:"id"`
	Users       map[string]user.User `json:"users"`
	Credits     int                  `json:"credits"`
	Inventory   []Item               `json:"inventory"`
	RoomObjects []RoomObject         `json:"roomObjects"`
}

// UserJoinedMsg announces a user's identity to everyone except the sender.
type UserJoinedMsg struct {
	Type string    `json:"type"`
	ID   string    `json:"id"`
	User user.User `json:"user"`
}

// UserLeftMsg announces a disconnect to all remaining sessions.
type UserLeftMsg struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// UserMovedMsg announces a user's new grid position.
type UserMovedMsg struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// ChatBroadcastMsg carries one chat line to every session.
type ChatBroadcastMsg struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// UpdateCreditsMsg reports the sender's new balance after a purchase.
type UpdateCreditsMsg struct {
	Type    string `json:"type"`
	Credits int    `json:"credits"`
}

// SyncInventoryMsg replaces the recipient's view of its inventory.
type SyncInventoryMsg struct {
	Type  string `json:"type"`
	Items []Item `json:"items"`
}

// FurniPlacedMsg announces a newly placed room object.
type FurniPlacedMsg struct {
	Type   string     `json:"type"`
	Object RoomObject `json:"object"`
}

// FurniMovedMsg announces a room object's new grid position.
type FurniMovedMsg struct {
	Type       string `json:"type"`
	InstanceID string `json:"instanceId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

// FurniPickedUpMsg announces that a room object left the room.
type FurniPickedUpMsg struct {
	Type       string `json:"type"`
	InstanceID string `json:"instanceId"`
}

func NewWelcome(id string, users map[string]user.User, credits int, inventory []Item, objects []RoomObject) WelcomeMsg {
	return WelcomeMsg{
		Type:        TypeWelcome,
		ID:          id,
		Users:       users,
		Credits:     credits,
		Inventory:   inventory,
		RoomObjects: objects,
	}
}

func NewUserJoined(id string, u user.User) UserJoinedMsg {
	return UserJoinedMsg{Type: TypeUserJoined, ID: id, User: u}
}

func NewUserLeft(id string) UserLeftMsg {
	return UserLeftMsg{Type: TypeUserLeft, ID: id}
}

func NewUserMoved(id string, x, y int) UserMovedMsg {
	return UserMovedMsg{Type: TypeUserMoved, ID: id, X: x, Y: y}
}

func NewChatBroadcast(id, name, text string, ts int64) ChatBroadcastMsg {
	return ChatBroadcastMsg{Type: TypeChatBroadcast, ID: id, Name: name, Text: text, TS: ts}
}

func NewUpdateCredits(credits int) UpdateCreditsMsg {
	return UpdateCreditsMsg{Type: TypeUpdateCredits, Credits: credits}
}

func NewSyncInventory(items []Item) SyncInventoryMsg {
	return SyncInventoryMsg{Type: TypeSyncInventory, Items: items}
}

func NewFurniPlaced(obj RoomObject) FurniPlacedMsg {
	return FurniPlacedMsg{Type: TypeFurniPlaced, Object: obj}
}

func NewFurniMoved(instanceID string, x, y int) FurniMovedMsg {
	return FurniMovedMsg{Type: TypeFurniMoved, InstanceID: instanceID, X: x, Y: y}
}

func NewFurniPickedUp(instanceID string) FurniPickedUpMsg {
	return FurniPickedUpMsg{Type: TypeFurniPickedUp, InstanceID: instanceID}
}
