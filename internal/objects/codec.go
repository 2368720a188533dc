package objects

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Serialize encodes obj with encoding/gob. A fixed Go struct encodes
// deterministically for a given value, which is the one property the
// object store's content-addressing depends on — no schema evolution is
// ever needed for a single-binary, single-process store, so gob's
// simplicity costs nothing here.
func Serialize[T any](obj T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(obj); err != nil {
		return nil, fmt.Errorf("objects: serialize: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize decodes bytes previously produced by Serialize.
func Deserialize[T any](data []byte) (T, error) {
	var out T
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&out); err != nil {
		return out, fmt.Errorf("objects: deserialize: %w", err)
	}
	return out, nil
}
