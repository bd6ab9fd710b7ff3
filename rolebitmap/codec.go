package rolebitmap

import (
	"encoding/binary"
	"errors"
)

// EncodedLen is the length of a binary-encoded bitmap.
const EncodedLen = 32

// ErrBadEncoding is returned by [Decode] for inputs that are not exactly
// EncodedLen bytes.
var ErrBadEncoding = errors.New("invalid bitmap encoding length")

// Encode serializes m as 32 big-endian bytes (most significant limb first).
func Encode(m Bitmap) []byte {
	out := make([]byte, EncodedLen)
	binary.BigEndian.PutUint64(out[0:8], m.D)
	binary.BigEndian.PutUint64(out[8:16], m.C)
	binary.BigEndian.PutUint64(out[16:24], m.B)
	binary.BigEndian.PutUint64(out[24:32], m.A)
	return out
}

// Decode parses a 32-byte big-endian bitmap produced by [Encode]. It does
// not validate slot contents; counters use the same encoding.
func Decode(data []byte) (Bitmap, error) {
	if len(data) != EncodedLen {
		return Bitmap{}, ErrBadEncoding
	}
	return Bitmap{
		D: binary.BigEndian.Uint64(data[0:8]),
		C: binary.BigEndian.Uint64(data[8:16]),
		B: binary.BigEndian.Uint64(data[16:24]),
		A: binary.BigEndian.Uint64(data[24:32]),
	}, nil
}
