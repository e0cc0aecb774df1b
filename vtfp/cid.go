package vtfp

import (
	"github.com/google/uuid"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// EncodingCID returns an IPFS-compatible CIDv1 (raw + sha2-256) over a
// canonical track encoding. It is the key under which canonical encodings are
// archived, and a second, collision-resistant content address for the same
// bytes the SHA-1 fingerprint covers.
func EncodingCID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, WrapError(KindInternal, "VTFP-CID-001", "multihash over canonical encoding failed", err)
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// TrackCID canonicalizes one virtual track and returns the CID of its
// canonical encoding.
func TrackCID(sequences []Sequence, trackID uuid.UUID) (cid.Cid, error) {
	canonical, err := Canonicalize(TrackResources(sequences, trackID))
	if err != nil {
		return cid.Undef, err
	}
	return EncodingCID(CanonicalEncoding(canonical))
}
