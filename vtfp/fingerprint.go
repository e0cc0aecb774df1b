package vtfp

import "github.com/google/uuid"

// DefaultURNWidth is the hex digest width used when the caller does not ask
// for a specific one.
const DefaultURNWidth = 10

// ComputeFingerprint computes the fingerprint URN for one virtual track:
// the matching sequences' resources are concatenated in document order,
// canonicalized, digested, and rendered at the requested hex width.
//
// The computation is a pure function of its inputs; identical sequences and
// trackID always produce the identical URN.
func ComputeFingerprint(sequences []Sequence, trackID uuid.UUID, width int) (string, error) {
	canonical, err := Canonicalize(TrackResources(sequences, trackID))
	if err != nil {
		return "", err
	}
	digest := DigestRecords(canonical)
	return FormatURN(digest[:], width)
}
