package rpc

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"imfvtfp/archive"
	"imfvtfp/vtfp"
)

// Client is a typed client for the Fingerprint gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client FingerprintClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero. CPL documents
	// are small, but the default 4MiB is easy to exceed with generous ones.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewFingerprintClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Tracks lists the virtual tracks of a CPL document as "uuid tag" strings.
func (c *Client) Tracks(cplBytes []byte) ([]string, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Tracks(ctx, wrapperspb.Bytes(cplBytes))
	if err != nil {
		return nil, err
	}
	if reply.GetValue() == "" {
		return nil, nil
	}
	return strings.Split(reply.GetValue(), "\n"), nil
}

// Compute returns the fingerprint URN for one virtual track of a CPL document.
func (c *Client) Compute(cplBytes []byte, trackID uuid.UUID, width int) (string, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Compute(ctx, selection(cplBytes, trackID, width))
	if err != nil {
		return "", err
	}
	return reply.GetValue(), nil
}

// Archive stores the canonical encoding of one virtual track on the server
// and returns its CID.
func (c *Client) Archive(cplBytes []byte, trackID uuid.UUID) (cid.Cid, error) {
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Archive(ctx, selection(cplBytes, trackID, 0))
	if err != nil {
		return cid.Undef, err
	}
	id, err := cid.Decode(reply.GetValue())
	if err != nil || !id.Defined() {
		return cid.Undef, archive.ErrInvalidCID
	}
	return id, nil
}

// Fetch retrieves an archived canonical encoding by CID and verifies it
// against the requested CID before returning.
func (c *Client) Fetch(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, archive.ErrInvalidCID
	}
	ctx, cancel := c.ctx()
	defer cancel()

	reply, err := c.client.Fetch(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return nil, err
	}
	b := reply.GetValue()
	got, err := vtfp.EncodingCID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, archive.ErrMismatch
	}
	return b, nil
}

func selection(cplBytes []byte, trackID uuid.UUID, width int) *structpb.Struct {
	fields := map[string]*structpb.Value{
		"cpl":      structpb.NewStringValue(base64.StdEncoding.EncodeToString(cplBytes)),
		"track_id": structpb.NewStringValue(trackID.String()),
	}
	if width > 0 {
		fields["width"] = structpb.NewNumberValue(float64(width))
	}
	return &structpb.Struct{Fields: fields}
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
