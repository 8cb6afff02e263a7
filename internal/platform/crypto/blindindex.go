package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// BlindIndex derives deterministic lookup tokens for values stored
// encrypted, using keyed BLAKE2b-256. The same value always maps to the same
// token while the token reveals nothing without the key.
type BlindIndex struct {
	key []byte
}

func NewBlindIndex(key string) (*BlindIndex, error) {
	if key == "" {
		return &BlindIndex{}, nil
	}
	decoded, err := decodeKey(key)
	if err != nil {
		return nil, err
	}
	if len(decoded) < 16 || len(decoded) > blake2b.Size {
		return nil, fmt.Errorf("BLIND_INDEX_KEY must be between 16 and %d bytes after decoding", blake2b.Size)
	}
	return &BlindIndex{key: decoded}, nil
}

func (b *BlindIndex) Configured() bool {
	return b != nil && len(b.key) > 0
}

// Index normalizes value to trimmed upper case before hashing.
func (b *BlindIndex) Index(value string) string {
	if !b.Configured() {
		return ""
	}
	h, err := blake2b.New256(b.key)
	if err != nil {
		return ""
	}
	h.Write([]byte(strings.ToUpper(strings.TrimSpace(value))))
	return hex.EncodeToString(h.Sum(nil))
}
