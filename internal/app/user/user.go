/*
Package user contains the core data structure for a room participant.

It defines the basic representation of a user within the room (the User struct),
used for passing user information both internally and to clients.
*/
package user

// Default values applied to every freshly connected user.
const (
	// DefaultName is the display name assigned until a join command arrives.
	DefaultName = "Guest"

	// DefaultColor is the 24-bit RGB color tag assigned until a join command arrives (white).
	DefaultColor = 0xFFFFFF

	// MaxNameLength is the maximum number of characters kept from a submitted name.
	MaxNameLength = 24
)

// User represents one participant in the room.
// Fields use JSON tags for serialization in WebSocket messages.
type User struct {
	// ID is the unique identifier for the user, equal to the session id of its connection.
	ID string `json:"id"`

	// Name is the display name of the user in the room.
	Name string `json:"name"`

	// Color is a 24-bit RGB color tag used by clients to tint the avatar.
	Color int `json:"color"`

	// X and Y are the user's current grid coordinates.
	X int `json:"x"`
	Y int `json:"y"`
}
