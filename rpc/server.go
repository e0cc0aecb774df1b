package rpc

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
	"github.com/ipfs/go-cid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"imfvtfp/archive"
	"imfvtfp/cpl"
	"imfvtfp/vtfp"
)

// Server exposes the fingerprint core over the Fingerprint gRPC service.
//
// Store is optional; without one, Archive and Fetch fail with
// FailedPrecondition.
type Server struct {
	UnimplementedFingerprintServer
	Store archive.Store
}

func (s *Server) Tracks(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	doc, err := cpl.Parse(in.GetValue())
	if err != nil {
		return nil, mapErr(err)
	}
	var lines []string
	for _, track := range vtfp.ListTracks(doc.Sequences) {
		lines = append(lines, track.ID.String()+" "+track.Tag)
	}
	return wrapperspb.String(strings.Join(lines, "\n")), nil
}

func (s *Server) Compute(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	_ = ctx
	doc, trackID, err := decodeSelection(in)
	if err != nil {
		return nil, err
	}
	width := vtfp.DefaultURNWidth
	if f, ok := in.GetFields()["width"]; ok {
		width = int(f.GetNumberValue())
	}
	urn, err := vtfp.ComputeFingerprint(doc.Sequences, trackID, width)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(urn), nil
}

func (s *Server) Archive(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s == nil || s.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing archive store")
	}
	doc, trackID, err := decodeSelection(in)
	if err != nil {
		return nil, err
	}
	canonical, err := vtfp.Canonicalize(vtfp.TrackResources(doc.Sequences, trackID))
	if err != nil {
		return nil, mapErr(err)
	}
	id, err := s.Store.Put(vtfp.CanonicalEncoding(canonical))
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.String(id.String()), nil
}

func (s *Server) Fetch(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s == nil || s.Store == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing archive store")
	}
	id, err := cid.Decode(in.GetValue())
	if err != nil || !id.Defined() {
		return nil, status.Error(codes.InvalidArgument, archive.ErrInvalidCID.Error())
	}
	b, err := s.Store.Get(id)
	if err != nil {
		return nil, mapErr(err)
	}
	return wrapperspb.Bytes(b), nil
}

// decodeSelection reads the shared "cpl" + "track_id" request fields.
func decodeSelection(in *structpb.Struct) (*cpl.Document, uuid.UUID, error) {
	fields := in.GetFields()
	cplB64 := fields["cpl"].GetStringValue()
	if cplB64 == "" {
		return nil, uuid.UUID{}, status.Error(codes.InvalidArgument, "missing cpl")
	}
	data, err := base64.StdEncoding.DecodeString(cplB64)
	if err != nil {
		return nil, uuid.UUID{}, status.Error(codes.InvalidArgument, "cpl is not valid base64")
	}
	trackText := fields["track_id"].GetStringValue()
	if trackText == "" {
		return nil, uuid.UUID{}, status.Error(codes.InvalidArgument, "missing track_id")
	}
	trackID, err := uuid.Parse(trackText)
	if err != nil {
		return nil, uuid.UUID{}, status.Error(codes.InvalidArgument, "invalid track_id")
	}
	doc, err := cpl.Parse(data)
	if err != nil {
		return nil, uuid.UUID{}, mapErr(err)
	}
	return doc, trackID, nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case vtfp.IsKind(err, vtfp.KindParse),
		vtfp.IsKind(err, vtfp.KindMalformedResource),
		vtfp.IsKind(err, vtfp.KindMissingDuration),
		vtfp.IsKind(err, vtfp.KindInvalidWidth):
		return status.Error(codes.InvalidArgument, err.Error())
	case vtfp.IsKind(err, vtfp.KindEmptyTrack):
		return status.Error(codes.NotFound, err.Error())
	case archive.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case err == archive.ErrInvalidCID:
		return status.Error(codes.InvalidArgument, err.Error())
	case err == archive.ErrMismatch, err == archive.ErrImmutable:
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
