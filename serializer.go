package parcel

import (
	"bytes"
	"context"
	"io"
)

// Serializer converts whole request and response bodies.
//
// Implementations must be safe for concurrent use. Both methods must honor
// ctx cancellation for any body transfer they perform and return ctx.Err()
// rather than swallowing it.
type Serializer interface {
	// Serialize encodes v as mediaType. Aux carries optional per-call data
	// such as a *PartDetail for multipart fields.
	Serialize(ctx context.Context, v any, mediaType string, aux any) (*Content, error)

	// Deserialize decodes c into a value of the target type. Target may be
	// nil, in which case the serializer picks its natural representation.
	Deserialize(ctx context.Context, c *Content, target *Type, aux any) (any, error)
}

// Content is a body with its declared media type.
type Content struct {
	MediaType string
	FileName  string
	Body      io.Reader
}

// NewContent wraps an in-memory body.
func NewContent(mediaType string, body []byte) *Content {
	return &Content{MediaType: mediaType, Body: bytes.NewReader(body)}
}

// NewStreamContent wraps a streaming body. The reader is consumed at most once.
func NewStreamContent(mediaType string, body io.Reader) *Content {
	return &Content{MediaType: mediaType, Body: body}
}

// Bytes reads the whole body. The body is replaced with an in-memory copy so
// later calls return the same bytes.
func (c *Content) Bytes(ctx context.Context) ([]byte, error) {
	if c.Body == nil {
		return nil, nil
	}
	data, err := readAll(ctx, c.Body)
	if err != nil {
		return nil, err
	}
	c.Body = bytes.NewReader(data)
	return data, nil
}

// Size returns the body length, or -1 when unknown.
func (c *Content) Size() int64 {
	switch b := c.Body.(type) {
	case nil:
		return 0
	case *bytes.Reader:
		return int64(b.Len())
	case *bytes.Buffer:
		return int64(b.Len())
	default:
		return -1
	}
}

const chunkSize = 32 * 1024

// readAll reads r to EOF, checking ctx between chunks.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	if err := copyContext(ctx, &buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// copyContext copies src to dst, checking ctx between chunks.
func copyContext(ctx context.Context, dst io.Writer, src io.Reader) error {
	chunk := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := src.Read(chunk)
		if n > 0 {
			if _, werr := dst.Write(chunk[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
