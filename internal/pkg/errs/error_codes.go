/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors on the HTTP
surface (health, catalog, WebSocket upgrade).
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1002
)

// 2xxx: Room Business Logic Errors
const (
	// ErrRoomIsFull indicates that the room has reached its maximum user capacity.
	ErrRoomIsFull = 2101

	// ErrRoomClosed indicates that the room is shutting down and no longer accepts connections.
	ErrRoomClosed = 2102
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
