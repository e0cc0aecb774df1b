package vtfp

import "github.com/google/uuid"

// Sequence is the ordered resource list of one CPL sequence element, tagged
// with the virtual track it belongs to. Built once by the document parser and
// immutable thereafter.
type Sequence struct {
	TrackID   uuid.UUID
	Tag       string // local element name, e.g. MainImageSequence
	Resources []Resource
}

// TrackResources concatenates, in document order, the resource lists of every
// sequence belonging to trackID. Segment and sequence boundaries carry no
// semantic weight for fingerprinting, so the concatenation is flat.
func TrackResources(sequences []Sequence, trackID uuid.UUID) []Resource {
	var out []Resource
	for _, seq := range sequences {
		if seq.TrackID != trackID {
			continue
		}
		out = append(out, seq.Resources...)
	}
	return out
}

// Canonicalize reduces an ordered resource list to its minimal canonical
// sequence in a single linear pass.
//
// Each input record is compared against the current accumulator only:
// a congruent record is absorbed by summing repeat counts (rule A), a
// continuation record by summing durations (rule B). Rule A is tested first,
// so a record satisfying both is always merged by congruence. Anything else
// flushes the accumulator and starts a new one.
//
// Two compositions expressing the same underlying track content with
// different internal segmentation therefore reduce to the same canonical
// sequence, and hence the same fingerprint.
//
// Returns an EmptyTrack error when records is empty.
func Canonicalize(records []Resource) ([]Resource, error) {
	if len(records) == 0 {
		return nil, NewError(KindEmptyTrack, "VTFP-TRK-001", "virtual track matched no resources")
	}

	out := make([]Resource, 0, len(records))
	acc := records[0].Clone()
	for _, rec := range records[1:] {
		switch {
		case acc.IsCongruentTo(rec):
			acc.ExtendRepeat(rec)
		case acc.IsContinuedBy(rec):
			acc.ExtendSourceDuration(rec)
		default:
			out = append(out, acc)
			acc = rec.Clone()
		}
	}
	return append(out, acc), nil
}

// Track identifies one virtual track of a composition.
type Track struct {
	ID  uuid.UUID
	Tag string
}

// ListTracks returns the distinct (TrackId, sequence tag) pairs present in a
// parsed composition. Duplicates collapse; results are reported in first
// appearance order.
func ListTracks(sequences []Sequence) []Track {
	seen := make(map[Track]bool, len(sequences))
	out := make([]Track, 0, len(sequences))
	for _, seq := range sequences {
		t := Track{ID: seq.TrackID, Tag: seq.Tag}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
