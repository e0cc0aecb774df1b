package archive

import (
	"bytes"
	"os"
	"testing"

	"github.com/ipfs/go-cid"

	"imfvtfp/vtfp"
)

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	encoding := []byte("canonical track bytes")
	id, err := store.Put(encoding)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	want, err := vtfp.EncodingCID(encoding)
	if err != nil {
		t.Fatalf("EncodingCID: %v", err)
	}
	if id != want {
		t.Errorf("Put must key by the encoding's CID")
	}

	if !store.Has(id) {
		t.Errorf("Has: expected true")
	}
	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, encoding) {
		t.Errorf("Get returned different bytes")
	}

	// Idempotent re-put.
	again, err := store.Put(encoding)
	if err != nil {
		t.Fatalf("second Put: %v", err)
	}
	if again != id {
		t.Errorf("second Put returned different CID")
	}
}

func TestFSStoreNotFound(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	absent, err := vtfp.EncodingCID([]byte("never stored"))
	if err != nil {
		t.Fatalf("EncodingCID: %v", err)
	}
	if store.Has(absent) {
		t.Errorf("Has: expected false")
	}
	if _, err := store.Get(absent); !IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Get(cid.Undef); err != ErrInvalidCID {
		t.Errorf("expected ErrInvalidCID for undefined CID, got %v", err)
	}
}

func TestFSStoreDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(dir)
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	id, err := store.Put([]byte("original"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	path := store.pathFor(id)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := os.WriteFile(path, []byte("tampered"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := store.Get(id); err != ErrMismatch {
		t.Errorf("expected ErrMismatch for tampered encoding, got %v", err)
	}
	if _, err := store.Put([]byte("original")); err != ErrImmutable {
		t.Errorf("expected ErrImmutable when stored bytes differ, got %v", err)
	}
}
