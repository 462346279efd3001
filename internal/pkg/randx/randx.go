/*
Package randx provides functions for generating opaque unique identifiers.

It is used to mint session identifiers for WebSocket connections and
instance identifiers for purchased items.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// SessionIDLength is the fixed length of a session identifier.
	// Twelve Base62 characters carry just over 71 bits of entropy, which is
	// enough to make collisions among live sessions negligible.
	SessionIDLength = 12
)

// SessionID generates a Base62 encoded session identifier using a
// cryptographically secure random number generator (crypto/rand).
// It returns a string of length SessionIDLength and any error encountered.
func SessionID() (string, error) {
	result := make([]byte, SessionIDLength)

	for i := 0; i < SessionIDLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for session id: %v", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// ItemID generates a standard UUID v4 string to serve as the unique
// identifier for an item instance. The same identifier follows the item
// through the inventory / room-object round trip.
func ItemID() string {
	return uuid.New().String()
}

// IsValidSessionID checks if the given string is a valid session identifier:
// length equals SessionIDLength and all characters belong to Base62Chars.
func IsValidSessionID(id string) bool {
	if len(id) != SessionIDLength {
		return false
	}

	for _, char := range id {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}
