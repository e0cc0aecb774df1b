package vtfp

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"testing"
)

func be64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func TestMonoRecordLayout(t *testing.T) {
	u := fileID(0x11)
	r := mustMono(t, u, 3, 10, 2)

	got := AppendRecord(nil, r)
	var want []byte
	want = append(want, u[:]...)
	want = append(want, be64(3)...)
	want = append(want, be64(10)...)
	want = append(want, be64(2)...)

	if len(got) != monoRecordSize {
		t.Fatalf("mono record must be %d bytes, got %d", monoRecordSize, len(got))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("mono layout mismatch:\n got %x\nwant %x", got, want)
	}
}

func TestStereoRecordLayout(t *testing.T) {
	left := fileID(0xA0)
	right := fileID(0xB0)
	r := mustStereo(t, left, right, 7, 10, 3)

	got := AppendRecord(nil, r)
	var want []byte
	want = append(want, be64(10)...)
	want = append(want, be64(3)...)
	want = append(want, left[:]...)
	want = append(want, be64(7)...)
	want = append(want, right[:]...)
	want = append(want, be64(7)...)

	if len(got) != stereoRecordSize {
		t.Fatalf("stereo record must be %d bytes, got %d", stereoRecordSize, len(got))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("stereo layout mismatch:\n got %x\nwant %x", got, want)
	}
}

func TestDigestRecordsMatchesEncodingSHA1(t *testing.T) {
	recs := []Resource{
		mustMono(t, fileID(0x11), 0, 10, 1),
		mustStereo(t, fileID(0xA0), fileID(0xB0), 0, 10, 1),
	}
	want := sha1.Sum(CanonicalEncoding(recs))
	got := DigestRecords(recs)
	if got != want {
		t.Errorf("streaming digest must equal SHA-1 of the concatenated encoding")
	}
}

func TestCanonicalEncodingConcatenatesWithoutSeparators(t *testing.T) {
	a := mustMono(t, fileID(0x11), 0, 10, 1)
	b := mustMono(t, fileID(0x22), 5, 6, 7)
	enc := CanonicalEncoding([]Resource{a, b})
	if len(enc) != 2*monoRecordSize {
		t.Fatalf("expected %d bytes, got %d", 2*monoRecordSize, len(enc))
	}
	if !bytes.Equal(enc[:monoRecordSize], AppendRecord(nil, a)) {
		t.Errorf("first record encoding mismatch")
	}
	if !bytes.Equal(enc[monoRecordSize:], AppendRecord(nil, b)) {
		t.Errorf("second record encoding mismatch")
	}
}
