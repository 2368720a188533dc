// Package objects implements the content-addressed object store: the
// hasher/codec pair and the on-disk blob/commit store keyed by 40-hex
// fingerprints.
package objects

import (
	"encoding/hex"
	"io"

	"github.com/pjbgf/sha1cd"
)

// kind tags the wrapped payload passed to Fingerprint so that blobs and
// commit records hash into disjoint spaces even when their raw bytes
// coincide, and so a reader can recover what was hashed from the object
// file's header.
type kind string

const (
	kindBlob   kind = "blob"
	kindCommit kind = "commit"
)

// headerDelim separates an object's kind header from its payload on disk.
const headerDelim byte = 0

// Fingerprint returns the 40-character lowercase hex digest of the
// kind-wrapped payload. The wrapping is "<kind>\x00<data>" so that
// identical bytes hashed as different kinds never collide, and so the
// store can recover the kind from a stored object without a second file.
func Fingerprint(k kind, data []byte) (string, error) {
	h := sha1cd.New()
	if _, err := io.WriteString(h, string(k)); err != nil {
		return "", err
	}
	if _, err := h.Write([]byte{headerDelim}); err != nil {
		return "", err
	}
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FingerprintBlob hashes file contents under the "blob" kind.
func FingerprintBlob(data []byte) (string, error) {
	return Fingerprint(kindBlob, data)
}
