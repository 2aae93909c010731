// Package json registers application/json bodies with a parcel registry.
//
// Lookups for media types carrying parameters, such as
// "application/json; charset=utf-8", resolve to the same entry. Without a
// factory on the target type, bodies decode into the encoding/json untyped
// model: map[string]any, []any, float64, string, bool or nil.
package json

import (
	"encoding/json"

	"github.com/zoobzio/parcel"
)

// ContentType is the registry key Register claims.
const ContentType = "application/json"

type jsonCodec struct{}

// New returns the JSON codec.
func New() parcel.Codec {
	return &jsonCodec{}
}

// Register adds the JSON codec to r under ContentType. Registering twice
// returns parcel.ErrDuplicateKey.
func Register(r *parcel.Registry) error {
	return r.Add(ContentType, parcel.FromCodec(New()))
}

func (c *jsonCodec) ContentType() string {
	return ContentType
}

func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
