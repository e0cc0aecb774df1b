// Package cpl parses SMPTE IMF Composition Playlist documents into the
// sequence/resource model consumed by the fingerprint core.
//
// Only the elements the fingerprint needs are read; the document is not
// validated against the full CPL schema.
package cpl

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"imfvtfp/vtfp"
)

// Accepted CompositionPlaylist root namespaces (SMPTE ST 2067-3).
const (
	NS2013 = "http://www.smpte-ra.org/schemas/2067-3/2013"
	NS2016 = "http://www.smpte-ra.org/schemas/2067-3/2016"
)

// Document is a parsed composition playlist, reduced to what fingerprinting
// needs: the identity of the composition and the ordered sequence list with
// segment boundaries already flattened away.
type Document struct {
	ID        uuid.UUID // zero when the document omits Id
	Namespace string
	Sequences []vtfp.Sequence
}

type node struct {
	XMLName  xml.Name
	Text     string `xml:",chardata"`
	Children []node `xml:",any"`
}

// Parse reads a CPL document. The root element must be a CompositionPlaylist
// in the 2013 or 2016 namespace; anything else is rejected.
//
// All failures are reported through the vtfp error taxonomy with KindParse,
// except resource-level invariant violations, which keep their own kinds
// (MissingDuration, MalformedResource).
func Parse(data []byte) (*Document, error) {
	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, vtfp.WrapError(vtfp.KindParse, "VTFP-CPL-001", "composition playlist is not well-formed XML", err)
	}
	if root.XMLName.Local != "CompositionPlaylist" {
		return nil, vtfp.NewError(vtfp.KindParse, "VTFP-CPL-002",
			fmt.Sprintf("document root is %s, expected CompositionPlaylist", root.XMLName.Local))
	}
	if root.XMLName.Space != NS2013 && root.XMLName.Space != NS2016 {
		return nil, vtfp.NewError(vtfp.KindParse, "VTFP-CPL-003",
			fmt.Sprintf("root namespace %q is not a valid SMPTE IMF CPL namespace", root.XMLName.Space))
	}

	doc := &Document{Namespace: root.XMLName.Space}
	if idText, ok := childText(root, "Id"); ok {
		id, err := parseUUID(idText)
		if err != nil {
			return nil, vtfp.WrapError(vtfp.KindParse, "VTFP-CPL-004",
				fmt.Sprintf("invalid CompositionPlaylist Id %q", idText), err)
		}
		doc.ID = id
	}

	// Segment boundaries carry no weight for fingerprinting: every
	// SequenceList in the document contributes, in document order.
	for _, list := range findAll(root, "SequenceList") {
		for _, seqNode := range list.Children {
			seq, err := parseSequence(seqNode)
			if err != nil {
				return nil, err
			}
			doc.Sequences = append(doc.Sequences, seq)
		}
	}
	return doc, nil
}

func parseSequence(n node) (vtfp.Sequence, error) {
	idText, ok := childText(n, "TrackId")
	if !ok {
		return vtfp.Sequence{}, vtfp.NewError(vtfp.KindParse, "VTFP-CPL-005",
			fmt.Sprintf("sequence %s has no TrackId", n.XMLName.Local))
	}
	trackID, err := parseUUID(idText)
	if err != nil {
		return vtfp.Sequence{}, vtfp.WrapError(vtfp.KindParse, "VTFP-CPL-004",
			fmt.Sprintf("sequence %s: invalid TrackId %q", n.XMLName.Local, idText), err)
	}

	seq := vtfp.Sequence{TrackID: trackID, Tag: n.XMLName.Local}
	for _, resNode := range findAll(n, "Resource") {
		res, err := parseResource(resNode)
		if err != nil {
			return vtfp.Sequence{}, err
		}
		seq.Resources = append(seq.Resources, res)
	}
	return seq, nil
}

func parseResource(n node) (vtfp.Resource, error) {
	left, leftOK := child(n, "LeftEye")
	right, rightOK := child(n, "RightEye")
	if leftOK != rightOK {
		return vtfp.Resource{}, vtfp.NewError(vtfp.KindParse, "VTFP-CPL-006",
			"stereoscopic resource must carry both LeftEye and RightEye")
	}

	sourceDuration, err := childUint(n, "SourceDuration")
	if err != nil {
		return vtfp.Resource{}, err
	}
	intrinsicDuration, err := childUint(n, "IntrinsicDuration")
	if err != nil {
		return vtfp.Resource{}, err
	}
	repeatCount, err := childUint(n, "RepeatCount")
	if err != nil {
		return vtfp.Resource{}, err
	}

	if leftOK {
		outer := sourceDuration
		if outer == 0 {
			outer = intrinsicDuration
		}
		leftEye, err := parseEye(left, outer)
		if err != nil {
			return vtfp.Resource{}, err
		}
		rightEye, err := parseEye(right, outer)
		if err != nil {
			return vtfp.Resource{}, err
		}
		if outer != 0 && (leftEye.SourceDuration != outer || rightEye.SourceDuration != outer) {
			return vtfp.Resource{}, vtfp.NewError(vtfp.KindMalformedResource, "VTFP-RES-002",
				fmt.Sprintf("stereoscopic eye durations %d/%d disagree with resource duration %d",
					leftEye.SourceDuration, rightEye.SourceDuration, outer))
		}
		return vtfp.NewStereoResource(leftEye, rightEye, repeatCount)
	}

	mono, err := parseMonoBody(n, sourceDuration, intrinsicDuration, repeatCount)
	if err != nil {
		return vtfp.Resource{}, err
	}
	return vtfp.NewMonoResource(mono), nil
}

// parseEye reads one eye of a stereoscopic resource. An eye that omits its
// own duration inherits the outer resource's.
func parseEye(n node, outerDuration uint64) (vtfp.MonoResource, error) {
	sourceDuration, err := childUint(n, "SourceDuration")
	if err != nil {
		return vtfp.MonoResource{}, err
	}
	intrinsicDuration, err := childUint(n, "IntrinsicDuration")
	if err != nil {
		return vtfp.MonoResource{}, err
	}
	if intrinsicDuration == 0 {
		intrinsicDuration = outerDuration
	}
	repeatCount, err := childUint(n, "RepeatCount")
	if err != nil {
		return vtfp.MonoResource{}, err
	}
	return parseMonoBody(n, sourceDuration, intrinsicDuration, repeatCount)
}

func parseMonoBody(n node, sourceDuration, intrinsicDuration, repeatCount uint64) (vtfp.MonoResource, error) {
	idText, ok := childText(n, "TrackFileId")
	if !ok {
		return vtfp.MonoResource{}, vtfp.NewError(vtfp.KindParse, "VTFP-CPL-007",
			fmt.Sprintf("%s has no TrackFileId", n.XMLName.Local))
	}
	trackFileID, err := parseUUID(idText)
	if err != nil {
		return vtfp.MonoResource{}, vtfp.WrapError(vtfp.KindParse, "VTFP-CPL-004",
			fmt.Sprintf("%s: invalid TrackFileId %q", n.XMLName.Local, idText), err)
	}

	entryPoint, err := childUint(n, "EntryPoint")
	if err != nil {
		return vtfp.MonoResource{}, err
	}
	editRate, err := childEditRate(n)
	if err != nil {
		return vtfp.MonoResource{}, err
	}
	return vtfp.NewMono(trackFileID, editRate, entryPoint, sourceDuration, intrinsicDuration, repeatCount)
}

// parseUUID accepts both bare and urn:uuid:-prefixed values.
func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(s))
}

func child(n node, local string) (node, bool) {
	for _, c := range n.Children {
		if c.XMLName.Local == local {
			return c, true
		}
	}
	return node{}, false
}

func childText(n node, local string) (string, bool) {
	c, ok := child(n, local)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(c.Text), true
}

// childUint reads an optional non-negative integer child element. Absent
// elements read as zero; the resource constructors apply the defaults.
func childUint(n node, local string) (uint64, error) {
	text, ok := childText(n, local)
	if !ok || text == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, vtfp.WrapError(vtfp.KindParse, "VTFP-CPL-008",
			fmt.Sprintf("%s: invalid %s %q", n.XMLName.Local, local, text), err)
	}
	return v, nil
}

// childEditRate reads an optional "numerator denominator" rational.
func childEditRate(n node) (vtfp.EditRate, error) {
	text, ok := childText(n, "EditRate")
	if !ok || text == "" {
		return vtfp.EditRate{}, nil
	}
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return vtfp.EditRate{}, vtfp.NewError(vtfp.KindParse, "VTFP-CPL-009",
			fmt.Sprintf("%s: invalid EditRate %q", n.XMLName.Local, text))
	}
	num, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return vtfp.EditRate{}, vtfp.WrapError(vtfp.KindParse, "VTFP-CPL-009",
			fmt.Sprintf("%s: invalid EditRate %q", n.XMLName.Local, text), err)
	}
	den, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return vtfp.EditRate{}, vtfp.WrapError(vtfp.KindParse, "VTFP-CPL-009",
			fmt.Sprintf("%s: invalid EditRate %q", n.XMLName.Local, text), err)
	}
	return vtfp.EditRate{Num: num, Den: den}, nil
}

// findAll returns every descendant element with the given local name, in
// document order, without descending into matches.
func findAll(n node, local string) []node {
	var out []node
	for _, c := range n.Children {
		if c.XMLName.Local == local {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, local)...)
	}
	return out
}
