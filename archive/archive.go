// Package archive stores canonical virtual track encodings in a
// content-addressed archive, keyed by the CIDv1 of the encoded bytes.
//
// The archive lets independently authored compositions be audited for track
// equivalence offline: two CPLs whose tracks archive under the same CID
// reference the same underlying content.
package archive

import (
	"errors"

	"github.com/ipfs/go-cid"
)

// Store is a minimal content-addressed archive.
//
// Contract:
// - Put is idempotent and derives the CID from the bytes written.
// - Archived encodings are immutable.
// - Get returns ErrNotFound when the CID is absent.
type Store interface {
	Put(encoding []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

var (
	ErrNotFound   = errors.New("archive: not found")
	ErrInvalidCID = errors.New("archive: invalid cid")
	ErrMismatch   = errors.New("archive: cid mismatch")
	ErrImmutable  = errors.New("archive: immutable encoding mismatch")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
