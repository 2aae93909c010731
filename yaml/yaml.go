// Package yaml registers application/yaml bodies with a parcel registry.
//
// Struct fields map through yaml tags. A target type without a factory
// decodes into the yaml.v3 generic form (map[string]any for mappings).
package yaml

import (
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/parcel"
)

// ContentType is the registry key Register claims.
const ContentType = "application/yaml"

type yamlCodec struct{}

// New returns the YAML codec.
func New() parcel.Codec {
	return &yamlCodec{}
}

// Register adds the YAML codec to r under ContentType.
func Register(r *parcel.Registry) error {
	return r.Add(ContentType, parcel.FromCodec(New()))
}

func (c *yamlCodec) ContentType() string {
	return ContentType
}

func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
