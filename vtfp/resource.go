// Package vtfp computes IMF virtual track fingerprints: it canonicalizes the
// ordered resource list of one virtual track, digests the canonical sequence,
// and renders the result as a urn:smpte:imf-vtfp URN.
package vtfp

import (
	"fmt"

	"github.com/google/uuid"
)

// EditRate is the rational edit unit rate of a track file region.
//
// The fingerprint itself never encodes the edit rate; it only participates in
// the stereoscopic construction invariant (both eyes must share it).
type EditRate struct {
	Num uint64
	Den uint64
}

func (r EditRate) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

// MonoResource references a region of a single track file, as a half-open
// edit-unit interval [EntryPoint, EntryPoint+SourceDuration), repeated
// RepeatCount times.
type MonoResource struct {
	TrackFileID    uuid.UUID
	EditRate       EditRate
	EntryPoint     uint64
	SourceDuration uint64
	RepeatCount    uint64
}

// Resource is one virtual track resource reference. Exactly one variant is
// populated: Mono, or the LeftEye/RightEye pair.
//
// For the stereoscopic variant, SourceDuration and RepeatCount are the shared
// outer values; both eyes are kept in lockstep with them by the extend
// operations. The mono variant carries its own values inside Mono and leaves
// the outer fields at zero.
type Resource struct {
	Mono     *MonoResource
	LeftEye  *MonoResource
	RightEye *MonoResource

	SourceDuration uint64
	RepeatCount    uint64
}

// Stereoscopic reports whether r is the two-eye variant.
func (r Resource) Stereoscopic() bool { return r.Mono == nil }

// NewMono builds a mono resource record from raw CPL field values.
//
// A zero sourceDuration falls back to intrinsicDuration; if neither is
// available the record is unusable and a MissingDuration error is returned.
// A zero repeatCount means the document omitted the property and defaults to 1.
func NewMono(trackFileID uuid.UUID, editRate EditRate, entryPoint, sourceDuration, intrinsicDuration, repeatCount uint64) (MonoResource, error) {
	if sourceDuration == 0 {
		sourceDuration = intrinsicDuration
	}
	if sourceDuration == 0 {
		return MonoResource{}, NewError(KindMissingDuration, "VTFP-RES-010",
			fmt.Sprintf("resource %s: SourceDuration is zero and no IntrinsicDuration is available", trackFileID))
	}
	if repeatCount == 0 {
		repeatCount = 1
	}
	return MonoResource{
		TrackFileID:    trackFileID,
		EditRate:       editRate,
		EntryPoint:     entryPoint,
		SourceDuration: sourceDuration,
		RepeatCount:    repeatCount,
	}, nil
}

// NewMonoResource wraps a mono record as a Resource.
func NewMonoResource(m MonoResource) Resource {
	return Resource{Mono: &m}
}

// NewStereoResource builds a stereoscopic resource from its two eye records.
//
// Invariants enforced here are fatal input errors: the eyes must share an edit
// rate, each eye's SourceDuration must equal the shared duration, and each
// eye's RepeatCount must be 1 at construction time. A zero repeatCount means
// the document omitted the outer property and defaults to 1.
func NewStereoResource(left, right MonoResource, repeatCount uint64) (Resource, error) {
	if left.EditRate != right.EditRate {
		return Resource{}, NewError(KindMalformedResource, "VTFP-RES-001",
			fmt.Sprintf("stereoscopic eyes disagree on edit rate: left %s, right %s", left.EditRate, right.EditRate))
	}
	if left.SourceDuration != right.SourceDuration {
		return Resource{}, NewError(KindMalformedResource, "VTFP-RES-002",
			fmt.Sprintf("stereoscopic eyes disagree on SourceDuration: left %d, right %d", left.SourceDuration, right.SourceDuration))
	}
	if left.RepeatCount != 1 || right.RepeatCount != 1 {
		return Resource{}, NewError(KindMalformedResource, "VTFP-RES-003",
			fmt.Sprintf("stereoscopic eyes must have RepeatCount 1: left %d, right %d", left.RepeatCount, right.RepeatCount))
	}
	if repeatCount == 0 {
		repeatCount = 1
	}
	return Resource{
		LeftEye:        &left,
		RightEye:       &right,
		SourceDuration: left.SourceDuration,
		RepeatCount:    repeatCount,
	}, nil
}

// Clone returns an independent copy, safe to mutate without affecting r.
// The canonicalizer clones every record it accumulates so merging never
// aliases the parsed document.
func (r Resource) Clone() Resource {
	c := r
	if r.Mono != nil {
		m := *r.Mono
		c.Mono = &m
	}
	if r.LeftEye != nil {
		m := *r.LeftEye
		c.LeftEye = &m
	}
	if r.RightEye != nil {
		m := *r.RightEye
		c.RightEye = &m
	}
	return c
}

// ExtendRepeat absorbs other under the congruence rule: other's repeat count
// is added to r's. For the stereoscopic variant the outer count and both eyes
// grow together.
func (r *Resource) ExtendRepeat(other Resource) {
	if r.Mono != nil {
		r.Mono.RepeatCount += other.repeatCount()
		return
	}
	r.RepeatCount += other.repeatCount()
	r.LeftEye.RepeatCount += other.LeftEye.RepeatCount
	r.RightEye.RepeatCount += other.RightEye.RepeatCount
}

// ExtendSourceDuration absorbs other under the continuity rule: other's
// duration is added to r's. For the stereoscopic variant the outer duration
// and both eyes grow together.
func (r *Resource) ExtendSourceDuration(other Resource) {
	if r.Mono != nil {
		r.Mono.SourceDuration += other.sourceDuration()
		return
	}
	r.SourceDuration += other.sourceDuration()
	r.LeftEye.SourceDuration += other.LeftEye.SourceDuration
	r.RightEye.SourceDuration += other.RightEye.SourceDuration
}

func (r Resource) repeatCount() uint64 {
	if r.Mono != nil {
		return r.Mono.RepeatCount
	}
	return r.RepeatCount
}

func (r Resource) sourceDuration() uint64 {
	if r.Mono != nil {
		return r.Mono.SourceDuration
	}
	return r.SourceDuration
}

// IsCongruentTo reports whether other references the same track file region
// as r: same TrackFileID, EntryPoint, and SourceDuration. RepeatCount is
// deliberately not considered. Both eyes of a stereoscopic pair must satisfy
// the test independently; variants never mix.
func (r Resource) IsCongruentTo(other Resource) bool {
	if r.Stereoscopic() != other.Stereoscopic() {
		return false
	}
	if r.Mono != nil {
		return monoCongruent(*r.Mono, *other.Mono)
	}
	return monoCongruent(*r.LeftEye, *other.LeftEye) && monoCongruent(*r.RightEye, *other.RightEye)
}

// IsContinuedBy reports whether other's region begins exactly where r's ends
// (half-open intervals), with both records at RepeatCount 1 and the same
// TrackFileID. Both eyes of a stereoscopic pair must satisfy the test
// independently; variants never mix.
func (r Resource) IsContinuedBy(other Resource) bool {
	if r.Stereoscopic() != other.Stereoscopic() {
		return false
	}
	if r.Mono != nil {
		return monoContinued(*r.Mono, *other.Mono)
	}
	// The shared repeat count governs the stereoscopic record, not the eyes'.
	if r.RepeatCount != 1 || other.RepeatCount != 1 {
		return false
	}
	return monoContinued(*r.LeftEye, *other.LeftEye) && monoContinued(*r.RightEye, *other.RightEye)
}

func monoCongruent(l, r MonoResource) bool {
	return l.TrackFileID == r.TrackFileID &&
		l.EntryPoint == r.EntryPoint &&
		l.SourceDuration == r.SourceDuration
}

func monoContinued(l, r MonoResource) bool {
	return l.TrackFileID == r.TrackFileID &&
		l.RepeatCount == 1 &&
		r.RepeatCount == 1 &&
		l.EntryPoint+l.SourceDuration == r.EntryPoint
}
