// Package bson registers application/bson bodies with a parcel registry.
//
// Bodies must be BSON documents: structs, maps or bson.D values. A target
// type without a factory decodes into an ordered bson.D, so field order from
// the wire is kept.
package bson

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/zoobzio/parcel"
)

// ContentType is the registry key Register claims.
const ContentType = "application/bson"

type bsonCodec struct{}

// New returns the BSON codec.
func New() parcel.Codec {
	return &bsonCodec{}
}

// Register adds the BSON codec to r under ContentType.
func Register(r *parcel.Registry) error {
	return r.Add(ContentType, parcel.FromCodec(New()))
}

func (c *bsonCodec) ContentType() string {
	return ContentType
}

func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
