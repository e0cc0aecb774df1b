package vtfp

import (
	"crypto/sha1"
	"encoding/binary"
)

// DigestSize is the size in bytes of a raw track fingerprint digest.
const DigestSize = sha1.Size

// Record encodings are fixed width, so the concatenation is unambiguous
// without length prefixes or separators:
//
//	mono:   TrackFileId(16) EntryPoint(8) SourceDuration(8) RepeatCount(8)
//	stereo: SourceDuration(8) RepeatCount(8) LeftId(16) LeftEntry(8) RightId(16) RightEntry(8)
//
// All integers are big-endian.
const (
	monoRecordSize   = 40
	stereoRecordSize = 64
)

// AppendRecord appends the canonical byte encoding of one record to dst.
func AppendRecord(dst []byte, r Resource) []byte {
	if r.Mono != nil {
		dst = append(dst, r.Mono.TrackFileID[:]...)
		dst = binary.BigEndian.AppendUint64(dst, r.Mono.EntryPoint)
		dst = binary.BigEndian.AppendUint64(dst, r.Mono.SourceDuration)
		dst = binary.BigEndian.AppendUint64(dst, r.Mono.RepeatCount)
		return dst
	}
	dst = binary.BigEndian.AppendUint64(dst, r.SourceDuration)
	dst = binary.BigEndian.AppendUint64(dst, r.RepeatCount)
	dst = append(dst, r.LeftEye.TrackFileID[:]...)
	dst = binary.BigEndian.AppendUint64(dst, r.LeftEye.EntryPoint)
	dst = append(dst, r.RightEye.TrackFileID[:]...)
	dst = binary.BigEndian.AppendUint64(dst, r.RightEye.EntryPoint)
	return dst
}

// CanonicalEncoding returns the concatenated canonical encoding of records.
// The same bytes feed the SHA-1 fingerprint digest, the CID derivation, and
// the archive, so all three agree on what "the canonical track" is.
func CanonicalEncoding(records []Resource) []byte {
	size := 0
	for _, r := range records {
		if r.Mono != nil {
			size += monoRecordSize
		} else {
			size += stereoRecordSize
		}
	}
	out := make([]byte, 0, size)
	for _, r := range records {
		out = AppendRecord(out, r)
	}
	return out
}

// DigestRecords feeds each record's canonical encoding, in order, into one
// streaming SHA-1 instance and returns the digest.
//
// SHA-1 is chosen for compactness of the resulting identifier, not for
// collision resistance against adversarial input.
func DigestRecords(records []Resource) [DigestSize]byte {
	h := sha1.New()
	var buf []byte
	for _, r := range records {
		buf = AppendRecord(buf[:0], r)
		h.Write(buf)
	}
	var sum [DigestSize]byte
	h.Sum(sum[:0])
	return sum
}
