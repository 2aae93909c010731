package json

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/parcel"
)

type pet struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

var petType = parcel.NewObjectType("Pet", nil, func() any { return &pet{} })

func TestContentType(t *testing.T) {
	if got := New().ContentType(); got != "application/json" {
		t.Errorf("ContentType() = %q, want %q", got, "application/json")
	}
}

func TestRegister_RoundTrip(t *testing.T) {
	reg := parcel.NewDefaultRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	ctx := context.Background()
	c, err := reg.Serialize(ctx, pet{Name: "Rex", Age: 3}, ContentType, nil)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if c.MediaType != ContentType {
		t.Errorf("MediaType = %q, want %q", c.MediaType, ContentType)
	}

	got, err := parcel.DeserializeAs[*pet](ctx, reg, c, petType, nil)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if got.Name != "Rex" || got.Age != 3 {
		t.Errorf("round-trip failed: got %+v", got)
	}
}

func TestRegister_CharsetParameter(t *testing.T) {
	reg := parcel.NewDefaultRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	c := parcel.NewStreamContent("application/json; charset=utf-8", strings.NewReader(`{"name":"Tom","age":7}`))
	got, err := parcel.DeserializeAs[*pet](context.Background(), reg, c, petType, nil)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if got.Name != "Tom" {
		t.Errorf("Name = %q, want %q", got.Name, "Tom")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	reg := parcel.NewDefaultRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := Register(reg); !errors.Is(err, parcel.ErrDuplicateKey) {
		t.Errorf("second Register() error = %v, want ErrDuplicateKey", err)
	}
}

func TestDeserialize_Untyped(t *testing.T) {
	s := parcel.FromCodec(New())
	v, err := s.Deserialize(context.Background(), parcel.NewContent(ContentType, []byte(`{"a":1}`)), nil, nil)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	m, ok := v.(map[string]any)
	if !ok || m["a"] != float64(1) {
		t.Errorf("Deserialize() = %#v, want map with a=1", v)
	}
}

func TestDeserialize_Invalid(t *testing.T) {
	s := parcel.FromCodec(New())
	_, err := s.Deserialize(context.Background(), parcel.NewContent(ContentType, []byte("invalid json")), petType, nil)
	if !errors.Is(err, parcel.ErrUnmarshal) {
		t.Errorf("Deserialize(invalid) error = %v, want ErrUnmarshal", err)
	}
}
