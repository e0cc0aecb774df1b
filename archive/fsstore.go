package archive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"

	"imfvtfp/vtfp"
)

// FSStore is a filesystem-backed archive.
//
// Encodings are written once, read-only, under a directory derived from the
// CID. The store is offline and deterministic: no network, no clock.
type FSStore struct {
	root string
}

// NewFSStore opens (creating if needed) an archive rooted at root.
func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		return nil, errors.New("archive: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) Put(encoding []byte) (cid.Cid, error) {
	id, err := vtfp.EncodingCID(encoding)
	if err != nil {
		return cid.Undef, err
	}

	path := s.pathFor(id)
	if existing, err := os.ReadFile(path); err == nil {
		if !bytes.Equal(existing, encoding) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return cid.Undef, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cid.Undef, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return cid.Undef, err
	}
	if _, err := tmp.Write(encoding); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return cid.Undef, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return cid.Undef, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return cid.Undef, err
	}
	if err := os.Chmod(tmp.Name(), 0o444); err != nil {
		_ = os.Remove(tmp.Name())
		return cid.Undef, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return cid.Undef, err
	}
	return id, nil
}

func (s *FSStore) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	b, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	got, err := vtfp.EncodingCID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, ErrMismatch
	}
	return b, nil
}

func (s *FSStore) Has(id cid.Cid) bool {
	if !id.Defined() {
		return false
	}
	_, err := os.Stat(s.pathFor(id))
	return err == nil
}

// pathFor shards by the CID string's trailing characters. CIDv1 base32
// strings share a long common prefix, so leading-character shards would all
// collapse into one directory.
func (s *FSStore) pathFor(id cid.Cid) string {
	str := id.String()
	if len(str) < 2 {
		return filepath.Join(s.root, str)
	}
	return filepath.Join(s.root, str[len(str)-2:], str)
}
