package parcel

import (
	"context"
	"errors"
)

// Codec provides content-type aware marshaling.
// Structured document formats implement Codec and are adapted into the
// registry with FromCodec.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// codecSerializer adapts a Codec into a Serializer.
type codecSerializer struct {
	codec Codec
}

// FromCodec adapts c into a Serializer.
//
// Deserialize allocates its target with the target type's factory; without
// one it decodes into an untyped value. A codec that cannot decode untyped
// values reports ErrUnsupportedType, which is returned as is.
func FromCodec(c Codec) Serializer {
	return &codecSerializer{codec: c}
}

func (s *codecSerializer) Serialize(ctx context.Context, v any, mediaType string, _ any) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.codec.Marshal(v)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	if mediaType == "" {
		mediaType = s.codec.ContentType()
	}
	return NewContent(mediaType, data), nil
}

func (s *codecSerializer) Deserialize(ctx context.Context, c *Content, target *Type, _ any) (any, error) {
	data, err := c.Bytes(ctx)
	if err != nil {
		return nil, err
	}
	if dst := target.New(); dst != nil {
		if err := s.codec.Unmarshal(data, dst); err != nil {
			return nil, newCodecError(ErrUnmarshal, err)
		}
		return dst, nil
	}
	var out any
	if err := s.codec.Unmarshal(data, &out); err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			return nil, err
		}
		return nil, newCodecError(ErrUnmarshal, err)
	}
	return out, nil
}
