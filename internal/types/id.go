// README: Common identifier type used across modules.
package types

import (
	"crypto/rand"
	"encoding/hex"
)

type ID string

// NewID returns a random 32-char hex identifier.
func NewID() ID {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return ID(hex.EncodeToString(b))
}
