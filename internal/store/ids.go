package store

import (
	"encoding/binary"
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator produces fallback listing IDs for records created without
// backend confirmation. Injectable so tests can supply deterministic IDs.
type IDGenerator interface {
	NewID() string
}

// randomIDs derives a base-36 string from random UUID bytes. The result is
// deliberately non-numeric so local-only records never collide with broker
// post IDs.
type randomIDs struct{}

func (randomIDs) NewID() string {
	u := uuid.New()
	hi := binary.BigEndian.Uint64(u[:8])
	return "local-" + strconv.FormatUint(hi, 36)
}
