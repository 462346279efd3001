/*
Package room contains the core logic for the shared virtual room.

This file defines the State struct, the single owner of all session-scoped
and room-global mutable state: users, per-user credits and inventories, and
the objects placed in the room. State performs no locking of its own; the
Room's event loop is its sole caller, so every mutation is one atomic state
transition by construction.
*/
package room

import (
	"math"

	"vibehotel/internal/app/user"
	"vibehotel/internal/pkg/randx"
)

// Grid dimensions of the room's tile map.
const (
	MapWidth  = 12
	MapHeight = 12
)

const (
	// StartX and StartY are the spawn tile for new users.
	StartX = 5
	StartY = 5

	// StarterCredits is the balance granted to every new session.
	StarterCredits = 100
)

// Item is a catalog-item instance held in a user's inventory.
type Item struct {
	ID     string `json:"id"`
	TypeID string `json:"typeId"`
	Name   string `json:"name"`
}

// RoomObject is a catalog-item instance placed in the room's grid.
// Its InstanceID is the id of the inventory item it was placed from, and
// is carried back to the inventory item on pickup.
type RoomObject struct {
	InstanceID string `json:"instanceId"`
	TypeID     string `json:"typeId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

// ClampGrid rounds the given coordinates to the nearest integers and clamps
// them into the map bounds [0, MapWidth-1] x [0, MapHeight-1].
func ClampGrid(x, y float64) (int, int) {
	cx := int(math.Round(x))
	cy := int(math.Round(y))

	cx = max(0, min(MapWidth-1, cx))
	cy = max(0, min(MapHeight-1, cy))

	return cx, cy
}

// State is the authoritative mutable model of the room.
type State struct {
	catalog *Catalog

	users       map[string]*user.User
	credits     map[string]int
	inventories map[string][]Item
	roomObjects []RoomObject
}

// NewState creates an empty State backed by the given catalog.
func NewState(catalog *Catalog) *State {
	return &State{
		catalog:     catalog,
		users:       make(map[string]*user.User),
		credits:     make(map[string]int),
		inventories: make(map[string][]Item),
		roomObjects: make([]RoomObject, 0),
	}
}

// Catalog returns the immutable catalog backing this state.
func (s *State) Catalog() *Catalog {
	return s.catalog
}

// AddUser creates the default user record for a new session: name "Guest",
// white color, spawn position, starter credits, empty inventory.
func (s *State) AddUser(id string) *user.User {
	u := &user.User{
		ID:    id,
		Name:  user.DefaultName,
		Color: user.DefaultColor,
		X:     StartX,
		Y:     StartY,
	}

	s.users[id] = u
	s.credits[id] = StarterCredits
	s.inventories[id] = make([]Item, 0)

	return u
}

// RemoveUser deletes the user record, credits, and inventory for a session.
// Removing an unknown id is a no-op.
func (s *State) RemoveUser(id string) {
	delete(s.users, id)
	delete(s.credits, id)
	delete(s.inventories, id)
}

// User returns the live user record for a session id.
func (s *State) User(id string) (*user.User, bool) {
	u, ok := s.users[id]
	return u, ok
}

// Users returns a value snapshot of all user records keyed by id.
func (s *State) Users() map[string]user.User {
	snapshot := make(map[string]user.User, len(s.users))
	for id, u := range s.users {
		snapshot[id] = *u
	}
	return snapshot
}

// Credits returns the current balance for a session id.
func (s *State) Credits(id string) int {
	return s.credits[id]
}

// Inventory returns a snapshot of a session's inventory.
// The snapshot is never nil, so it serializes as an empty JSON array.
func (s *State) Inventory(id string) []Item {
	inv := s.inventories[id]

	snapshot := make([]Item, len(inv))
	copy(snapshot, inv)
	return snapshot
}

// RoomObjects returns a snapshot of all objects placed in the room.
func (s *State) RoomObjects() []RoomObject {
	snapshot := make([]RoomObject, len(s.roomObjects))
	copy(snapshot, s.roomObjects)
	return snapshot
}

// Buy purchases one catalog item for the given session. It fails without
// touching any state when the catalog id is unknown or the balance does not
// cover the cost. On success it returns the new balance and an inventory
// snapshot including the freshly minted item.
func (s *State) Buy(id, catalogID string) (credits int, inventory []Item, ok bool) {
	entry, found := s.catalog.Lookup(catalogID)
	if !found {
		return 0, nil, false
	}

	balance := s.credits[id]
	if balance < entry.Cost {
		return 0, nil, false
	}

	s.credits[id] = balance - entry.Cost
	s.inventories[id] = append(s.inventories[id], Item{
		ID:     randx.ItemID(),
		TypeID: entry.ID,
		Name:   entry.Name,
	})

	return s.credits[id], s.Inventory(id), true
}

// PlaceItem converts an inventory item of the given session into a room
// object at the clamped coordinates. The object reuses the item's id as its
// instance id. It fails when the item is not in the session's inventory.
func (s *State) PlaceItem(id, itemID string, x, y float64) (obj RoomObject, inventory []Item, ok bool) {
	inv := s.inventories[id]

	idx := -1
	for i, item := range inv {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return RoomObject{}, nil, false
	}

	item := inv[idx]
	s.inventories[id] = append(inv[:idx], inv[idx+1:]...)

	cx, cy := ClampGrid(x, y)
	obj = RoomObject{
		InstanceID: item.ID,
		TypeID:     item.TypeID,
		X:          cx,
		Y:          cy,
	}
	s.roomObjects = append(s.roomObjects, obj)

	return obj, s.Inventory(id), true
}

// MoveObject moves a placed room object to the clamped coordinates.
// It fails when the instance id does not reference a placed object.
func (s *State) MoveObject(instanceID string, x, y float64) (cx, cy int, ok bool) {
	for i := range s.roomObjects {
		if s.roomObjects[i].InstanceID == instanceID {
			cx, cy = ClampGrid(x, y)
			s.roomObjects[i].X = cx
			s.roomObjects[i].Y = cy
			return cx, cy, true
		}
	}

	return 0, 0, false
}

// PickupObject removes a placed room object and appends the equivalent item
// to the given session's inventory, preserving the instance id. The item
// name is resolved from the catalog, with a generic fallback for unknown
// types. It fails when the instance id does not reference a placed object.
func (s *State) PickupObject(id, instanceID string) (inventory []Item, ok bool) {
	idx := -1
	for i, obj := range s.roomObjects {
		if obj.InstanceID == instanceID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, false
	}

	obj := s.roomObjects[idx]
	s.roomObjects = append(s.roomObjects[:idx], s.roomObjects[idx+1:]...)

	s.inventories[id] = append(s.inventories[id], Item{
		ID:     obj.InstanceID,
		TypeID: obj.TypeID,
		Name:   s.catalog.ItemName(obj.TypeID),
	})

	return s.Inventory(id), true
}
