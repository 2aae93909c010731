// Package msgpack registers application/msgpack bodies with a parcel registry.
package msgpack

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/zoobzio/parcel"
)

// ContentType is the registry key Register claims.
const ContentType = "application/msgpack"

type msgpackCodec struct{}

// New returns the MessagePack codec.
func New() parcel.Codec {
	return &msgpackCodec{}
}

// Register adds the MessagePack codec to r under ContentType.
func Register(r *parcel.Registry) error {
	return r.Add(ContentType, parcel.FromCodec(New()))
}

func (c *msgpackCodec) ContentType() string {
	return ContentType
}

func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes into v. Untyped maps decode as map[string]any.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
