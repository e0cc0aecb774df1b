// Command imf-vtfpd serves the Fingerprint gRPC service, computing virtual
// track fingerprints and archiving canonical encodings on behalf of clients.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	"imfvtfp/archive"
	"imfvtfp/rpc"
)

func main() {
	fs := flag.NewFlagSet("imf-vtfpd", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7878", "listen address")
	dir := fs.String("archive", "", "Canonical-encoding archive directory (disables Archive/Fetch when empty)")

	_ = fs.Parse(os.Args[1:])

	var store archive.Store
	if *dir != "" {
		fsStore, err := archive.NewFSStore(*dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		store = fsStore
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	rpc.RegisterFingerprintServer(s, &rpc.Server{Store: store})

	if store != nil {
		fmt.Fprintf(os.Stderr, "imf-vtfpd listening on %s (archive=%s)\n", lis.Addr().String(), *dir)
	} else {
		fmt.Fprintf(os.Stderr, "imf-vtfpd listening on %s (no archive)\n", lis.Addr().String())
	}
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
