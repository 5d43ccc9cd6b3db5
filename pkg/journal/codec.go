package journal

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
)

// encodeGob is the wire format for every record this journal stores —
// trades and order-lifecycle events alike are small, rarely-read structs,
// so gob's simplicity wins over a schema'd codec.
func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(b []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(v)
}

// seqKey renders a big-endian 8-byte sequence number prefixed by prefix, so
// Pebble's natural byte-order iteration returns records in insertion order.
func seqKey(prefix byte, seq uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:], seq)
	return key
}
