// Package ref provides the opaque record identifier used across all
// collections: a 12-byte value with a canonical 24-character lowercase hex
// encoding. The all-zero value is a reserved invalid sentinel, never assigned
// to a stored record.
package ref

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

// EncodedLen is the length of the canonical hex encoding.
const EncodedLen = 24

// ID is a 12-byte record identifier.
type ID [12]byte

// Zero is the invalid sentinel value.
var Zero ID

var (
	processRand [5]byte
	counter     atomic.Uint32
)

func init() {
	if _, err := rand.Read(processRand[:]); err != nil {
		panic(fmt.Sprintf("ref: seeding process entropy: %v", err))
	}
	var seed [4]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Sprintf("ref: seeding counter: %v", err))
	}
	counter.Store(binary.BigEndian.Uint32(seed[:]))
}

// New returns a fresh identifier: 4 bytes of unix seconds, 5 bytes of
// per-process entropy and a 3-byte rolling counter. Ids generated within one
// process sort roughly by creation time.
func New() ID {
	var id ID
	binary.BigEndian.PutUint32(id[0:4], uint32(time.Now().Unix()))
	copy(id[4:9], processRand[:])
	n := counter.Add(1)
	id[9] = byte(n >> 16)
	id[10] = byte(n >> 8)
	id[11] = byte(n)
	return id
}

// Parse decodes the canonical hex form. It rejects anything that is not
// exactly 24 hex characters.
func Parse(s string) (ID, error) {
	var id ID
	if len(s) != EncodedLen {
		return Zero, fmt.Errorf("ref: invalid id length %d", len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return Zero, fmt.Errorf("ref: invalid id %q: %w", s, err)
	}
	return id, nil
}

// MustParse is Parse for test fixtures and constants; it panics on bad input.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether the id is the reserved invalid sentinel.
func (id ID) IsZero() bool {
	return id == Zero
}

// Hex returns the canonical 24-character lowercase hex encoding.
func (id ID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ID) String() string {
	return id.Hex()
}

// MarshalJSON encodes the id as its hex string. The zero sentinel encodes as
// the empty string so drafts serialize without a fabricated id.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(id.Hex())
}

// UnmarshalJSON accepts the hex string, the empty string or null; the latter
// two decode to the zero sentinel.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = Zero
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*id = Zero
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
