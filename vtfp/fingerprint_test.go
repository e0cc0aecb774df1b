package vtfp

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestComputeFingerprintDeterminism(t *testing.T) {
	track := fileID(0x01)
	u1 := fileID(0x10)

	seqs := []Sequence{
		{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{
			mustMono(t, u1, 0, 10, 1),
			mustMono(t, u1, 10, 10, 1),
		}},
	}

	first, err := ComputeFingerprint(seqs, track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := ComputeFingerprint(seqs, track, 40)
		if err != nil {
			t.Fatalf("ComputeFingerprint: %v", err)
		}
		if again != first {
			t.Fatalf("fingerprint not deterministic: %s vs %s", again, first)
		}
	}
	if !strings.HasPrefix(first, URNPrefix) {
		t.Errorf("fingerprint missing URN prefix: %s", first)
	}
}

func TestComputeFingerprintOrderSensitivity(t *testing.T) {
	track := fileID(0x01)
	a := mustMono(t, fileID(0x10), 0, 10, 1)
	b := mustMono(t, fileID(0x20), 0, 5, 1)

	forward := []Sequence{{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{a, b}}}
	reversed := []Sequence{{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{b, a}}}

	f1, err := ComputeFingerprint(forward, track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint forward: %v", err)
	}
	f2, err := ComputeFingerprint(reversed, track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint reversed: %v", err)
	}
	if f1 == f2 {
		t.Errorf("reversing the resource order must change the fingerprint")
	}
}

func TestComputeFingerprintSegmentationInvariance(t *testing.T) {
	// The same underlying track expressed with different clip boundaries must
	// fingerprint identically: one 20-unit reference vs. two adjacent
	// 10-unit halves vs. the same clip listed twice as a repeat.
	track := fileID(0x01)
	u := fileID(0x10)

	whole := []Sequence{{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{
		mustMono(t, u, 0, 20, 1),
	}}}
	split := []Sequence{{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{
		mustMono(t, u, 0, 10, 1),
		mustMono(t, u, 10, 10, 1),
	}}}
	splitAcrossSequences := []Sequence{
		{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{mustMono(t, u, 0, 10, 1)}},
		{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{mustMono(t, u, 10, 10, 1)}},
	}

	fpWhole, err := ComputeFingerprint(whole, track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint whole: %v", err)
	}
	fpSplit, err := ComputeFingerprint(split, track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint split: %v", err)
	}
	fpSeqs, err := ComputeFingerprint(splitAcrossSequences, track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint split across sequences: %v", err)
	}
	if fpWhole != fpSplit {
		t.Errorf("segmentation must not affect the fingerprint: %s vs %s", fpWhole, fpSplit)
	}
	if fpWhole != fpSeqs {
		t.Errorf("sequence boundaries must not affect the fingerprint: %s vs %s", fpWhole, fpSeqs)
	}

	repeated := []Sequence{{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{
		mustMono(t, u, 0, 20, 1),
		mustMono(t, u, 0, 20, 1),
		mustMono(t, u, 0, 20, 1),
	}}}
	collapsed := []Sequence{{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{
		mustMono(t, u, 0, 20, 3),
	}}}
	fpRepeated, err := ComputeFingerprint(repeated, track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint repeated: %v", err)
	}
	fpCollapsed, err := ComputeFingerprint(collapsed, track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint collapsed: %v", err)
	}
	if fpRepeated != fpCollapsed {
		t.Errorf("repeat expression must not affect the fingerprint: %s vs %s", fpRepeated, fpCollapsed)
	}
}

func TestComputeFingerprintEndToEnd(t *testing.T) {
	track := fileID(0x01)
	u1 := fileID(0x10)
	u2 := fileID(0x20)

	seqs := func(u uuid.UUID) []Sequence {
		return []Sequence{
			{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{
				mustMono(t, u1, 0, 10, 1),
				mustMono(t, u1, 10, 10, 1),
			}},
			{TrackID: track, Tag: "MainImageSequence", Resources: []Resource{
				mustMono(t, u1, 0, 10, 1),
				mustMono(t, u, 0, 5, 1),
			}},
		}
	}

	canonical, err := Canonicalize(TrackResources(seqs(u2), track))
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	// First sequence merges to one record (dur=20); the second sequence's
	// resources stay independent in concatenation order.
	if len(canonical) != 3 {
		t.Fatalf("expected 3 canonical records, got %d", len(canonical))
	}
	if canonical[0].Mono.SourceDuration != 20 {
		t.Errorf("expected merged duration 20, got %d", canonical[0].Mono.SourceDuration)
	}

	fp1, err := ComputeFingerprint(seqs(u2), track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint: %v", err)
	}
	fp2, err := ComputeFingerprint(seqs(fileID(0x21)), track, 40)
	if err != nil {
		t.Fatalf("ComputeFingerprint: %v", err)
	}
	if fp1 == fp2 {
		t.Errorf("changing the second sequence's TrackFileId must change the digest")
	}
}

func TestComputeFingerprintUnknownTrack(t *testing.T) {
	seqs := []Sequence{{TrackID: fileID(0x01), Tag: "MainImageSequence", Resources: []Resource{
		mustMono(t, fileID(0x10), 0, 10, 1),
	}}}
	_, err := ComputeFingerprint(seqs, fileID(0xFF), 10)
	if err == nil {
		t.Fatalf("expected EmptyTrack error")
	}
	if !IsKind(err, KindEmptyTrack) {
		t.Errorf("expected EmptyTrack kind, got %v", err)
	}
}
