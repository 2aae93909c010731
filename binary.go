package parcel

import (
	"context"
	"io"
)

// BinarySerializer passes opaque bytes and streams through unchanged.
type BinarySerializer struct{}

// NewBinarySerializer returns an octet-stream passthrough serializer.
func NewBinarySerializer() *BinarySerializer {
	return &BinarySerializer{}
}

// Serialize accepts []byte, string, io.Reader and byte or stream Values.
// Streams are not read here; the returned Content wraps the reader.
func (s *BinarySerializer) Serialize(ctx context.Context, v any, mediaType string, _ any) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mediaType == "" {
		mediaType = MediaTypeOctet
	}
	switch x := v.(type) {
	case []byte:
		return NewContent(mediaType, x), nil
	case string:
		return NewContent(mediaType, []byte(x)), nil
	case Value:
		switch x.Kind() {
		case KindBytes:
			return NewContent(mediaType, x.raw), nil
		case KindStream:
			return NewStreamContent(mediaType, x.r), nil
		}
		return nil, newUnsupportedTypeError(x.typ.String(), "binary serialization")
	case io.Reader:
		return NewStreamContent(mediaType, x), nil
	default:
		return nil, newUnsupportedTypeError(typeName(v), "binary serialization")
	}
}

// Deserialize yields the body reader for TypeStream targets and the body
// bytes otherwise.
func (s *BinarySerializer) Deserialize(ctx context.Context, c *Content, target *Type, _ any) (any, error) {
	if target.Kind() == KindStream {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return c.Body, nil
	}
	data, err := c.Bytes(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}
