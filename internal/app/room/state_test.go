package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibehotel/internal/app/user"
)

func newTestState() *State {
	return NewState(DefaultCatalog())
}

func TestClampGrid(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		wantX int
		wantY int
	}{
		{"origin", 0, 0, 0, 0},
		{"in bounds", 5, 7, 5, 7},
		{"negative and overflow", -5, 99.7, 0, 11},
		{"fractional rounds down", 3.4, 2.2, 3, 2},
		{"fractional rounds up", 3.5, 10.6, 4, 11},
		{"both negative", -0.6, -100, 0, 0},
		{"max corner", 11, 11, 11, 11},
		{"just past max", 11.5, 12, 11, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ClampGrid(tt.x, tt.y)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestAddUserDefaults(t *testing.T) {
	s := newTestState()

	u := s.AddUser("session-1")

	assert.Equal(t, "session-1", u.ID)
	assert.Equal(t, user.DefaultName, u.Name)
	assert.Equal(t, user.DefaultColor, u.Color)
	assert.Equal(t, StartX, u.X)
	assert.Equal(t, StartY, u.Y)
	assert.Equal(t, StarterCredits, s.Credits("session-1"))
	assert.Empty(t, s.Inventory("session-1"))
	assert.NotNil(t, s.Inventory("session-1"))
}

func TestRemoveUserClearsAllState(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	_, _, ok := s.Buy("session-1", "chair_red")
	require.True(t, ok)

	s.RemoveUser("session-1")

	_, exists := s.User("session-1")
	assert.False(t, exists)
	assert.Zero(t, s.Credits("session-1"))
	assert.Empty(t, s.Inventory("session-1"))

	// removing again is a no-op
	s.RemoveUser("session-1")
}

func TestBuyDebitsCreditsAndAddsItem(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	credits, inventory, ok := s.Buy("session-1", "chair_red")

	require.True(t, ok)
	assert.Equal(t, 95, credits)
	require.Len(t, inventory, 1)
	assert.Equal(t, "chair_red", inventory[0].TypeID)
	assert.Equal(t, "Red Chair", inventory[0].Name)
	assert.NotEmpty(t, inventory[0].ID)
}

func TestBuyUnknownCatalogIDIsNoOp(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	_, _, ok := s.Buy("session-1", "golden_throne")

	assert.False(t, ok)
	assert.Equal(t, StarterCredits, s.Credits("session-1"))
	assert.Empty(t, s.Inventory("session-1"))
}

func TestBuyInsufficientCreditsIsNoOp(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	// Drain the balance: 6 tables at 15 and 2 chairs at 5 leaves 0.
	for i := 0; i < 6; i++ {
		_, _, ok := s.Buy("session-1", "table_wood")
		require.True(t, ok)
	}
	for i := 0; i < 2; i++ {
		_, _, ok := s.Buy("session-1", "chair_red")
		require.True(t, ok)
	}
	require.Zero(t, s.Credits("session-1"))

	before := s.Inventory("session-1")

	_, _, ok := s.Buy("session-1", "chair_blue")

	assert.False(t, ok)
	assert.Zero(t, s.Credits("session-1"))
	assert.Equal(t, before, s.Inventory("session-1"))
}

func TestPlaceItemCreatesRoomObjectWithSameID(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	_, inventory, ok := s.Buy("session-1", "plant_green")
	require.True(t, ok)
	itemID := inventory[0].ID

	obj, remaining, ok := s.PlaceItem("session-1", itemID, 3.6, -2)

	require.True(t, ok)
	assert.Equal(t, itemID, obj.InstanceID)
	assert.Equal(t, "plant_green", obj.TypeID)
	assert.Equal(t, 4, obj.X)
	assert.Equal(t, 0, obj.Y)
	assert.Empty(t, remaining)
	require.Len(t, s.RoomObjects(), 1)
}

func TestPlaceItemUnknownIDIsNoOp(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	_, _, ok := s.PlaceItem("session-1", "no-such-item", 1, 1)

	assert.False(t, ok)
	assert.Empty(t, s.RoomObjects())
}

func TestPlacePickupRoundTripPreservesIdentity(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	_, inventory, ok := s.Buy("session-1", "chair_blue")
	require.True(t, ok)
	original := inventory[0]

	obj, _, ok := s.PlaceItem("session-1", original.ID, 2, 2)
	require.True(t, ok)

	restored, ok := s.PickupObject("session-1", obj.InstanceID)

	require.True(t, ok)
	require.Len(t, restored, 1)
	assert.Equal(t, original.ID, restored[0].ID)
	assert.Equal(t, original.TypeID, restored[0].TypeID)
	assert.Equal(t, "Blue Chair", restored[0].Name)
	assert.Empty(t, s.RoomObjects())
}

func TestPickupResolvesNameFromCatalogWithFallback(t *testing.T) {
	// A state whose catalog no longer knows the placed object's type.
	s := NewState(NewCatalog(nil))
	s.AddUser("session-1")
	s.roomObjects = append(s.roomObjects, RoomObject{
		InstanceID: "orphan-1",
		TypeID:     "retired_type",
		X:          1,
		Y:          1,
	})

	restored, ok := s.PickupObject("session-1", "orphan-1")

	require.True(t, ok)
	require.Len(t, restored, 1)
	assert.Equal(t, FallbackItemName, restored[0].Name)
	assert.Equal(t, "retired_type", restored[0].TypeID)
}

func TestPickupUnknownInstanceIsNoOp(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	_, ok := s.PickupObject("session-1", "ghost")

	assert.False(t, ok)
	assert.Empty(t, s.Inventory("session-1"))
}

func TestMoveObjectLastWriteWins(t *testing.T) {
	s := newTestState()
	s.AddUser("a")
	s.AddUser("b")

	_, inv, ok := s.Buy("a", "table_wood")
	require.True(t, ok)
	obj, _, ok := s.PlaceItem("a", inv[0].ID, 0, 0)
	require.True(t, ok)

	// Two sessions move the same object back to back; the second write is
	// the one that sticks and the object is never duplicated or lost.
	_, _, ok = s.MoveObject(obj.InstanceID, 3, 3)
	require.True(t, ok)
	x, y, ok := s.MoveObject(obj.InstanceID, 9, 1)
	require.True(t, ok)

	assert.Equal(t, 9, x)
	assert.Equal(t, 1, y)

	objects := s.RoomObjects()
	require.Len(t, objects, 1)
	assert.Equal(t, 9, objects[0].X)
	assert.Equal(t, 1, objects[0].Y)
}

func TestMoveObjectUnknownInstanceIsNoOp(t *testing.T) {
	s := newTestState()

	_, _, ok := s.MoveObject("ghost", 5, 5)

	assert.False(t, ok)
}

func TestSnapshotsDoNotAliasState(t *testing.T) {
	s := newTestState()
	s.AddUser("session-1")

	users := s.Users()
	users["session-1"] = user.User{ID: "session-1", Name: "Tampered"}

	u, ok := s.User("session-1")
	require.True(t, ok)
	assert.Equal(t, user.DefaultName, u.Name)

	_, inventory, ok := s.Buy("session-1", "chair_red")
	require.True(t, ok)
	inventory[0].Name = "Tampered"
	assert.Equal(t, "Red Chair", s.Inventory("session-1")[0].Name)
}
