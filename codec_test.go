package parcel_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/zoobzio/parcel"
	parceltest "github.com/zoobzio/parcel/testing"
)

// testCodec is a simple JSON codec for testing without importing parcel/json.
type testCodec struct{}

func (c *testCodec) ContentType() string { return "application/json" }

func (c *testCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *testCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func TestFromCodec_Serialize(t *testing.T) {
	s := parcel.FromCodec(&testCodec{})

	c, err := s.Serialize(context.Background(), &parceltest.Pet{Name: "Rex", Age: 3}, "", nil)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if c.MediaType != "application/json" {
		t.Errorf("MediaType = %q, want codec content type", c.MediaType)
	}
	if got := parceltest.Body(t, c); got != `{"name":"Rex","age":3}` {
		t.Errorf("body = %s", got)
	}

	c, err = s.Serialize(context.Background(), 1, "application/problem+json", nil)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if c.MediaType != "application/problem+json" {
		t.Errorf("MediaType = %q, want requested media type", c.MediaType)
	}
}

func TestFromCodec_DeserializeFactory(t *testing.T) {
	s := parcel.FromCodec(&testCodec{})
	c := parcel.NewContent("application/json", []byte(`{"name":"Rex","age":3}`))

	v, err := s.Deserialize(context.Background(), c, parceltest.PetType, nil)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	pet, ok := v.(*parceltest.Pet)
	if !ok {
		t.Fatalf("Deserialize() = %T, want *Pet", v)
	}
	if pet.Name != "Rex" || pet.Age != 3 {
		t.Errorf("Deserialize() = %+v", pet)
	}
}

func TestFromCodec_DeserializeUntyped(t *testing.T) {
	s := parcel.FromCodec(&testCodec{})
	c := parcel.NewContent("application/json", []byte(`{"a":[1,2]}`))

	v, err := s.Deserialize(context.Background(), c, parceltest.Animal, nil)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("Deserialize() = %T, want map[string]any", v)
	}
	if len(m["a"].([]any)) != 2 {
		t.Errorf("Deserialize() = %v", m)
	}
}

func TestFromCodec_Errors(t *testing.T) {
	s := parcel.FromCodec(&testCodec{})

	_, err := s.Serialize(context.Background(), make(chan int), "", nil)
	if !errors.Is(err, parcel.ErrMarshal) {
		t.Errorf("Serialize(chan) error = %v, want ErrMarshal", err)
	}

	c := parcel.NewContent("application/json", []byte(`{not json`))
	_, err = s.Deserialize(context.Background(), c, parceltest.PetType, nil)
	if !errors.Is(err, parcel.ErrUnmarshal) {
		t.Errorf("Deserialize(invalid) error = %v, want ErrUnmarshal", err)
	}

	var ce *parcel.CodecError
	if !errors.As(err, &ce) || ce.Cause == nil {
		t.Errorf("Deserialize(invalid) should carry the codec cause, got %v", err)
	}
}

// untypedOnlyCodec cannot decode into an untyped target.
type untypedOnlyCodec struct{ testCodec }

func (c *untypedOnlyCodec) Unmarshal(data []byte, v any) error {
	if _, ok := v.(*any); ok {
		return &parcel.UnsupportedTypeError{Type: "interface {}", Operation: "decoding"}
	}
	return c.testCodec.Unmarshal(data, v)
}

func TestFromCodec_UnsupportedUntyped(t *testing.T) {
	s := parcel.FromCodec(&untypedOnlyCodec{})
	c := parcel.NewContent("application/json", []byte(`{"name":"Rex"}`))

	_, err := s.Deserialize(context.Background(), c, parceltest.Animal, nil)
	if !errors.Is(err, parcel.ErrUnsupportedType) {
		t.Errorf("Deserialize(no factory) error = %v, want ErrUnsupportedType", err)
	}
	if errors.Is(err, parcel.ErrUnmarshal) {
		t.Error("unsupported target should not be reported as an unmarshal failure")
	}
}
