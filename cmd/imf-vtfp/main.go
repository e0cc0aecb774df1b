// Command imf-vtfp computes IMF virtual track fingerprints from composition
// playlist documents and manages the canonical-encoding archive.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ipfs/go-cid"

	"imfvtfp/archive"
	"imfvtfp/cpl"
	"imfvtfp/rpc"
	"imfvtfp/vtfp"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "tracks":
		return cmdTracks(args[1:], out, errOut)
	case "fingerprint":
		return cmdFingerprint(args[1:], out, errOut)
	case "track-cid":
		return cmdTrackCID(args[1:], out, errOut)
	case "archive":
		return cmdArchive(args[1:], out, errOut)
	case "remote":
		return cmdRemote(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "imf-vtfp: IMF virtual track fingerprint tool")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  imf-vtfp tracks <cpl-file>")
	fmt.Fprintln(w, "  imf-vtfp fingerprint [-n <width>] -track <uuid> <cpl-file>")
	fmt.Fprintln(w, "  imf-vtfp track-cid -track <uuid> <cpl-file>")
	fmt.Fprintln(w, "  imf-vtfp archive put -dir <dir> -track <uuid> <cpl-file>")
	fmt.Fprintln(w, "  imf-vtfp archive get -dir <dir> <cid>")
	fmt.Fprintln(w, "  imf-vtfp archive has -dir <dir> <cid>")
	fmt.Fprintln(w, "  imf-vtfp remote tracks -addr <host:port> <cpl-file>")
	fmt.Fprintln(w, "  imf-vtfp remote fingerprint [-n <width>] -addr <host:port> -track <uuid> <cpl-file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - track ids accept the urn:uuid: prefix")
	fmt.Fprintln(w, "  - -n is the hex digest width, clamped to 2..40 (default 10)")
	fmt.Fprintln(w, "  - archive stores a track's canonical encoding keyed by its CID")
}

// clampWidth applies the CLI's historical width handling.
func clampWidth(n int) int {
	if n < 2 {
		return 2
	}
	if n > 2*vtfp.DigestSize {
		return 2 * vtfp.DigestSize
	}
	return n
}

func parseTrackID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.UUID{}, fmt.Errorf("missing -track")
	}
	return uuid.Parse(s)
}

func loadDocument(path string, errOut io.Writer) (*cpl.Document, int) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read cpl: %v\n", err)
		return nil, 1
	}
	doc, err := cpl.Parse(data)
	if err != nil {
		fmt.Fprintf(errOut, "invalid cpl: %v\n", err)
		return nil, 1
	}
	return doc, 0
}

func cmdTracks(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("tracks", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: imf-vtfp tracks <cpl-file>")
		return 2
	}
	doc, code := loadDocument(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	for _, track := range vtfp.ListTracks(doc.Sequences) {
		fmt.Fprintf(out, "%s %s\n", track.ID, track.Tag)
	}
	return 0
}

func cmdFingerprint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("fingerprint", flag.ContinueOnError)
	fs.SetOutput(errOut)
	width := fs.Int("n", vtfp.DefaultURNWidth, "Hex digest width (clamped to 2..40)")
	trackText := fs.String("track", "", "Virtual track id (UUID)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: imf-vtfp fingerprint [-n <width>] -track <uuid> <cpl-file>")
		return 2
	}
	trackID, err := parseTrackID(*trackText)
	if err != nil {
		fmt.Fprintf(errOut, "invalid -track: %v\n", err)
		return 2
	}
	doc, code := loadDocument(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	urn, err := vtfp.ComputeFingerprint(doc.Sequences, trackID, clampWidth(*width))
	if err != nil {
		fmt.Fprintf(errOut, "fingerprint: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, urn)
	return 0
}

func cmdTrackCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("track-cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	trackText := fs.String("track", "", "Virtual track id (UUID)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: imf-vtfp track-cid -track <uuid> <cpl-file>")
		return 2
	}
	trackID, err := parseTrackID(*trackText)
	if err != nil {
		fmt.Fprintf(errOut, "invalid -track: %v\n", err)
		return 2
	}
	doc, code := loadDocument(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	id, err := vtfp.TrackCID(doc.Sequences, trackID)
	if err != nil {
		fmt.Fprintf(errOut, "track-cid: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, id)
	return 0
}

func cmdArchive(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: imf-vtfp archive <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: put, get, has")
		return 2
	}
	switch args[0] {
	case "put":
		return cmdArchivePut(args[1:], out, errOut)
	case "get":
		return cmdArchiveGet(args[1:], out, errOut)
	case "has":
		return cmdArchiveHas(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown archive subcommand: %s\n", args[0])
		return 2
	}
}

func openStore(dir string, errOut io.Writer) (*archive.FSStore, int) {
	if dir == "" {
		fmt.Fprintln(errOut, "missing -dir")
		return nil, 2
	}
	store, err := archive.NewFSStore(dir)
	if err != nil {
		fmt.Fprintf(errOut, "archive: %v\n", err)
		return nil, 1
	}
	return store, 0
}

func cmdArchivePut(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive put", flag.ContinueOnError)
	fs.SetOutput(errOut)
	dir := fs.String("dir", "", "Archive directory")
	trackText := fs.String("track", "", "Virtual track id (UUID)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: imf-vtfp archive put -dir <dir> -track <uuid> <cpl-file>")
		return 2
	}
	trackID, err := parseTrackID(*trackText)
	if err != nil {
		fmt.Fprintf(errOut, "invalid -track: %v\n", err)
		return 2
	}
	store, code := openStore(*dir, errOut)
	if code != 0 {
		return code
	}
	doc, code := loadDocument(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	canonical, err := vtfp.Canonicalize(vtfp.TrackResources(doc.Sequences, trackID))
	if err != nil {
		fmt.Fprintf(errOut, "canonicalize: %v\n", err)
		return 1
	}
	id, err := store.Put(vtfp.CanonicalEncoding(canonical))
	if err != nil {
		fmt.Fprintf(errOut, "archive put: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, id)
	return 0
}

func cmdArchiveGet(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive get", flag.ContinueOnError)
	fs.SetOutput(errOut)
	dir := fs.String("dir", "", "Archive directory")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: imf-vtfp archive get -dir <dir> <cid>")
		return 2
	}
	id, err := cid.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid cid: %v\n", err)
		return 2
	}
	store, code := openStore(*dir, errOut)
	if code != 0 {
		return code
	}
	b, err := store.Get(id)
	if err != nil {
		fmt.Fprintf(errOut, "archive get: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, hex.EncodeToString(b))
	return 0
}

func cmdArchiveHas(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("archive has", flag.ContinueOnError)
	fs.SetOutput(errOut)
	dir := fs.String("dir", "", "Archive directory")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: imf-vtfp archive has -dir <dir> <cid>")
		return 2
	}
	id, err := cid.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid cid: %v\n", err)
		return 2
	}
	store, code := openStore(*dir, errOut)
	if code != 0 {
		return code
	}
	if !store.Has(id) {
		fmt.Fprintln(errOut, "absent")
		return 1
	}
	_, _ = fmt.Fprintln(out, "present")
	return 0
}

func cmdRemote(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: imf-vtfp remote <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: tracks, fingerprint")
		return 2
	}
	switch args[0] {
	case "tracks":
		return cmdRemoteTracks(args[1:], out, errOut)
	case "fingerprint":
		return cmdRemoteFingerprint(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown remote subcommand: %s\n", args[0])
		return 2
	}
}

func dialRemote(addr string, errOut io.Writer) (*rpc.Client, int) {
	if addr == "" {
		fmt.Fprintln(errOut, "missing -addr")
		return nil, 2
	}
	client, err := rpc.Dial(addr, rpc.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		fmt.Fprintf(errOut, "dial %s: %v\n", addr, err)
		return nil, 1
	}
	client.Timeout = 30 * time.Second
	return client, 0
}

func cmdRemoteTracks(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("remote tracks", flag.ContinueOnError)
	fs.SetOutput(errOut)
	addr := fs.String("addr", "", "Fingerprint service address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: imf-vtfp remote tracks -addr <host:port> <cpl-file>")
		return 2
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read cpl: %v\n", err)
		return 1
	}
	client, code := dialRemote(*addr, errOut)
	if code != 0 {
		return code
	}
	defer client.Close()

	tracks, err := client.Tracks(data)
	if err != nil {
		fmt.Fprintf(errOut, "remote tracks: %v\n", err)
		return 1
	}
	for _, line := range tracks {
		fmt.Fprintln(out, line)
	}
	return 0
}

func cmdRemoteFingerprint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("remote fingerprint", flag.ContinueOnError)
	fs.SetOutput(errOut)
	addr := fs.String("addr", "", "Fingerprint service address")
	width := fs.Int("n", vtfp.DefaultURNWidth, "Hex digest width (clamped to 2..40)")
	trackText := fs.String("track", "", "Virtual track id (UUID)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: imf-vtfp remote fingerprint [-n <width>] -addr <host:port> -track <uuid> <cpl-file>")
		return 2
	}
	trackID, err := parseTrackID(*trackText)
	if err != nil {
		fmt.Fprintf(errOut, "invalid -track: %v\n", err)
		return 2
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read cpl: %v\n", err)
		return 1
	}
	client, code := dialRemote(*addr, errOut)
	if code != 0 {
		return code
	}
	defer client.Close()

	urn, err := client.Compute(data, trackID, clampWidth(*width))
	if err != nil {
		fmt.Fprintf(errOut, "remote fingerprint: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, urn)
	return 0
}
