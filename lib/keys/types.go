// Package keys holds the fixed-length symmetric key type shared by the
// agent's key unwrap and derivation code.
package keys

import (
	"errors"

	"github.com/go-i2p/logger"
	"github.com/keylime/go-keylime/lib/util"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// KeyLen is the length of a symmetric key in bytes.
const KeyLen = 32

// ErrInvalidKeyLength is returned when a key is built from a buffer that is
// not exactly KeyLen bytes long.
var ErrInvalidKeyLength = errors.New("invalid symmetric key length")

// KeyBytes is the raw key material.
type KeyBytes [KeyLen]byte

// SymmKey is a 32-byte symmetric key. The all-zero key is the "unset"
// sentinel, so the zero value of SymmKey is an empty key.
type SymmKey struct {
	Bytes KeyBytes
}

// FromBytes copies b into a new key. b must be exactly KeyLen bytes.
func FromBytes(b []byte) (SymmKey, error) {
	if len(b) != KeyLen {
		log.WithFields(logger.Fields{
			"at":       "FromBytes",
			"reason":   "length_mismatch",
			"length":   len(b),
			"expected": KeyLen,
		}).Error("refusing to build symmetric key")
		return SymmKey{}, oops.Errorf("got %d bytes, want %d: %w", len(b), KeyLen, ErrInvalidKeyLength)
	}
	var k SymmKey
	copy(k.Bytes[:], b)
	return k, nil
}

// MustFromBytes is like FromBytes but panics on a length mismatch. Use it
// only where the buffer length is fixed by construction.
func MustFromBytes(b []byte) SymmKey {
	k, err := FromBytes(b)
	if err != nil {
		util.Panicf("keys: %v", err)
	}
	return k
}

// IsEmpty reports whether k is the all-zero sentinel.
func (k SymmKey) IsEmpty() bool {
	return k.Bytes == KeyBytes{}
}

// Slice returns a copy of the key material.
func (k SymmKey) Slice() []byte {
	b := make([]byte, KeyLen)
	copy(b, k.Bytes[:])
	return b
}

// Xor combines two key shares byte by byte. The tenant splits the
// bootstrap key K into U and V with K = U xor V.
func (k SymmKey) Xor(other SymmKey) SymmKey {
	var out SymmKey
	for i := range out.Bytes {
		out.Bytes[i] = k.Bytes[i] ^ other.Bytes[i]
	}
	return out
}

// String never prints key material.
func (k SymmKey) String() string {
	if k.IsEmpty() {
		return "SymmKey(empty)"
	}
	return "SymmKey(redacted)"
}

// KeySet is an ordered collection of keys. Order is insertion order and
// callers rely on it when trying keys one after another.
type KeySet []SymmKey

// Add appends k to the set.
func (s *KeySet) Add(k SymmKey) {
	*s = append(*s, k)
}

// Len returns the number of keys in the set.
func (s KeySet) Len() int {
	return len(s)
}

// Any calls try with each key in insertion order and returns the first key
// for which try reports true.
func (s KeySet) Any(try func(SymmKey) bool) (SymmKey, bool) {
	for _, k := range s {
		if try(k) {
			return k, true
		}
	}
	return SymmKey{}, false
}
