// Package xml registers application/xml bodies with a parcel registry.
//
// Decoding needs a concrete target: the declared type must carry a factory.
// encoding/xml has no untyped document model, so a nil target or a type
// without a factory fails with parcel.ErrUnsupportedType rather than
// returning an empty result.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/parcel"
)

// ContentType is the registry key Register claims.
const ContentType = "application/xml"

type xmlCodec struct{}

// New returns the XML codec.
func New() parcel.Codec {
	return &xmlCodec{}
}

// Register adds the XML codec to r under ContentType.
func Register(r *parcel.Registry) error {
	return r.Add(ContentType, parcel.FromCodec(New()))
}

func (c *xmlCodec) ContentType() string {
	return ContentType
}

func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	return xml.Marshal(v)
}

// Unmarshal decodes data into v, which must not be an untyped *any.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	if _, ok := v.(*any); ok {
		return &parcel.UnsupportedTypeError{Type: "interface {}", Operation: "xml decoding"}
	}
	return xml.Unmarshal(data, v)
}
