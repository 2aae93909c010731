package parcel_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/zoobzio/parcel"
	parceltest "github.com/zoobzio/parcel/testing"
)

func TestRegistry_TypeFallback(t *testing.T) {
	ser := parceltest.NewRecordingSerializer("bytes")
	r, err := parcel.NewRegistry(parcel.WithTypeSerializer(parcel.TypeBytes, ser))
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	c, err := r.Serialize(context.Background(), []byte{1, 2}, "unregistered/type", nil)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if got := parceltest.Body(t, c); got != "bytes" {
		t.Errorf("Serialize() body = %q, want %q", got, "bytes")
	}

	_, err = r.Serialize(context.Background(), "text", "unregistered/type", nil)
	if !errors.Is(err, parcel.ErrUnknownMediaType) {
		t.Errorf("Serialize(string) error = %v, want ErrUnknownMediaType", err)
	}
}

func TestRegistry_ExactMediaTypeWins(t *testing.T) {
	byMedia := parceltest.NewRecordingSerializer("media")
	byType := parceltest.NewRecordingSerializer("type")
	r, _ := parcel.NewRegistry(
		parcel.WithSerializer("application/json", byMedia),
		parcel.WithTypeSerializer(parceltest.PetType, byType),
	)

	c, err := r.Serialize(context.Background(), &parceltest.Pet{Name: "Rex"}, "application/json", nil)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if got := parceltest.Body(t, c); got != "media" {
		t.Errorf("Serialize() used %q, want media serializer", got)
	}
	if len(byType.Calls()) != 0 {
		t.Error("type serializer should not be called when the media type matches")
	}

	c, err = r.Serialize(context.Background(), &parceltest.Pet{Name: "Rex"}, "application/xml", nil)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if got := parceltest.Body(t, c); got != "type" {
		t.Errorf("Serialize() used %q, want type serializer", got)
	}
}

func TestRegistry_ParentChain(t *testing.T) {
	animal := parceltest.NewRecordingSerializer("animal")
	r, _ := parcel.NewRegistry(parcel.WithTypeSerializer(parceltest.Animal, animal))

	s, err := r.Lookup("application/x-pet", parceltest.PetType)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if s != parcel.Serializer(animal) {
		t.Error("Lookup() should resolve through the parent type")
	}
}

func TestRegistry_EssenceMatch(t *testing.T) {
	ser := parceltest.NewRecordingSerializer("json")
	r, _ := parcel.NewRegistry(parcel.WithSerializer("application/json", ser))

	for _, mt := range []string{"application/json; charset=utf-8", "Application/JSON", "application/json;v=2"} {
		if _, err := r.Lookup(mt, nil); err != nil {
			t.Errorf("Lookup(%q) error: %v", mt, err)
		}
	}
	if _, err := r.Lookup("application/jsonx", nil); !errors.Is(err, parcel.ErrUnknownMediaType) {
		t.Errorf("Lookup(application/jsonx) error = %v, want ErrUnknownMediaType", err)
	}
}

func TestRegistry_DeserializeMissCarriesContent(t *testing.T) {
	r, _ := parcel.NewRegistry()
	c := parcel.NewContent("application/x-unknown", []byte("raw"))

	_, err := r.Deserialize(context.Background(), c, parceltest.PetType, nil)

	var ue *parcel.UnknownMediaTypeError
	if !errors.As(err, &ue) {
		t.Fatalf("Deserialize() error = %v, want *UnknownMediaTypeError", err)
	}
	if ue.Content != c {
		t.Error("UnknownMediaTypeError.Content should be the unparsed content")
	}
	if ue.MediaType != "application/x-unknown" || ue.Type != "Pet" {
		t.Errorf("UnknownMediaTypeError = %+v", ue)
	}
}

func TestRegistry_DeserializeForwardsAux(t *testing.T) {
	ser := parceltest.NewRecordingSerializer("out")
	r, _ := parcel.NewRegistry(parcel.WithSerializer("application/x-rec", ser))

	v, err := r.Deserialize(context.Background(), parcel.NewContent("application/x-rec", []byte("in")), nil, "aux")
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if v != "out" {
		t.Errorf("Deserialize() = %v, want %q", v, "out")
	}
	calls := ser.Calls()
	if len(calls) != 1 || calls[0].Aux != "aux" || calls[0].Op != "deserialize" {
		t.Errorf("Calls() = %+v", calls)
	}
}

func TestRegistry_DeserializeNilContent(t *testing.T) {
	r, _ := parcel.NewRegistry()
	if _, err := r.Deserialize(context.Background(), nil, nil, nil); !errors.Is(err, parcel.ErrArgument) {
		t.Errorf("Deserialize(nil) error = %v, want ErrArgument", err)
	}
}

func TestRegistry_AddErrors(t *testing.T) {
	r, _ := parcel.NewRegistry()
	ser := parceltest.NewRecordingSerializer("x")

	if err := r.Add("", ser); !errors.Is(err, parcel.ErrArgument) {
		t.Errorf("Add(empty) error = %v, want ErrArgument", err)
	}
	if err := r.Add("a/b", nil); !errors.Is(err, parcel.ErrArgument) {
		t.Errorf("Add(nil) error = %v, want ErrArgument", err)
	}
	if err := r.AddType(nil, ser); !errors.Is(err, parcel.ErrArgument) {
		t.Errorf("AddType(nil) error = %v, want ErrArgument", err)
	}

	if err := r.Add("a/b", ser); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := r.Add("a/b", ser); !errors.Is(err, parcel.ErrDuplicateKey) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicateKey", err)
	}
	if err := r.AddType(parcel.TypeString, ser); err != nil {
		t.Fatalf("AddType() error: %v", err)
	}
	if err := r.AddType(parcel.TypeString, ser); !errors.Is(err, parcel.ErrDuplicateKey) {
		t.Errorf("AddType(duplicate) error = %v, want ErrDuplicateKey", err)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestNewRegistry_OptionError(t *testing.T) {
	ser := parceltest.NewRecordingSerializer("x")
	_, err := parcel.NewRegistry(
		parcel.WithSerializer("a/b", ser),
		parcel.WithSerializer("a/b", ser),
	)
	if !errors.Is(err, parcel.ErrDuplicateKey) {
		t.Errorf("NewRegistry() error = %v, want ErrDuplicateKey", err)
	}
}

func TestRegistry_Cancelled(t *testing.T) {
	r := parcel.NewDefaultRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Serialize(ctx, "hello", parcel.MediaTypeText, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Serialize() error = %v, want context.Canceled", err)
	}
	c := parcel.NewStreamContent(parcel.MediaTypeText, strings.NewReader("hello"))
	if _, err := r.Deserialize(ctx, c, parcel.TypeString, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Deserialize() error = %v, want context.Canceled", err)
	}
}

func TestDefaultRegistry_Baseline(t *testing.T) {
	r := parcel.NewDefaultRegistry()
	for _, mt := range []string{parcel.MediaTypeText, parcel.MediaTypeOctet, parcel.MediaTypeMultipart} {
		if _, err := r.Lookup(mt, nil); err != nil {
			t.Errorf("Lookup(%q) error: %v", mt, err)
		}
	}

	c, err := r.Serialize(context.Background(), []byte("png"), "image/png", nil)
	if err != nil {
		t.Fatalf("Serialize(image/png) error: %v", err)
	}
	if c.MediaType != "image/png" || parceltest.Body(t, c) != "png" {
		t.Errorf("Serialize(image/png) = %q %q", c.MediaType, parceltest.Body(t, c))
	}
}

func TestDefault_Concurrent(t *testing.T) {
	parcel.ResetDefault()
	defer parcel.ResetDefault()

	const n = 32
	got := make([]*parcel.Registry, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = parcel.Default()
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if got[i] != got[0] {
			t.Fatal("Default() returned different instances")
		}
	}
}

func TestResetDefault(t *testing.T) {
	r1 := parcel.Default()
	parcel.ResetDefault()
	r2 := parcel.Default()
	if r1 == r2 {
		t.Error("ResetDefault() should discard the default registry")
	}
}

func TestDeserializeAs(t *testing.T) {
	r := parcel.NewDefaultRegistry()
	c := parcel.NewContent(parcel.MediaTypeText, []byte("42"))

	v, err := parcel.DeserializeAs[parcel.Value](context.Background(), r, c, parcel.TypeInt32, nil)
	if err != nil {
		t.Fatalf("DeserializeAs() error: %v", err)
	}
	if v.Int() != 42 {
		t.Errorf("DeserializeAs() = %v, want 42", v)
	}

	c = parcel.NewContent(parcel.MediaTypeText, []byte("42"))
	if _, err := parcel.DeserializeAs[int](context.Background(), r, c, parcel.TypeInt32, nil); !errors.Is(err, parcel.ErrUnsupportedType) {
		t.Errorf("DeserializeAs[int]() error = %v, want ErrUnsupportedType", err)
	}
}
