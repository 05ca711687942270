package types

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hashFields feeds seconds then nanos to xxhash. Field order matters and
// no normalization is applied, mirroring Equal.
func hashFields(seconds int64, nanos int32) uint64 {
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(seconds))
	binary.BigEndian.PutUint32(buf[8:], uint32(nanos))
	return xxhash.Sum64(buf[:])
}
