// Package testing provides test utilities for parcel.
package testing

import (
	"context"
	"sync"
	gotesting "testing"

	"github.com/zoobzio/parcel"
)

// Animal is a sample base model type with no factory.
var Animal = parcel.NewObjectType("Animal", nil, nil)

// PetType is a sample model type descending from Animal.
var PetType = parcel.NewObjectType("Pet", Animal, func() any { return &Pet{} })

// Pet is a sample body model.
type Pet struct {
	Name string `json:"name" xml:"name" yaml:"name" msgpack:"name" bson:"name"`
	Age  int    `json:"age" xml:"age" yaml:"age" msgpack:"age" bson:"age"`
}

// ParcelType implements parcel.Typed.
func (p *Pet) ParcelType() *parcel.Type { return PetType }

// Call records one invocation of a RecordingSerializer.
type Call struct {
	Op        string
	MediaType string
	Value     any
	Aux       any
}

// RecordingSerializer records every call and answers with its Name.
// Serialize returns a body holding Name; Deserialize returns Name.
type RecordingSerializer struct {
	Name string

	mu    sync.Mutex
	calls []Call
}

// NewRecordingSerializer returns a RecordingSerializer named name.
func NewRecordingSerializer(name string) *RecordingSerializer {
	return &RecordingSerializer{Name: name}
}

// Serialize implements parcel.Serializer.
func (s *RecordingSerializer) Serialize(ctx context.Context, v any, mediaType string, aux any) (*parcel.Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.record(Call{Op: "serialize", MediaType: mediaType, Value: v, Aux: aux})
	return parcel.NewContent(mediaType, []byte(s.Name)), nil
}

// Deserialize implements parcel.Serializer.
func (s *RecordingSerializer) Deserialize(ctx context.Context, c *parcel.Content, _ *parcel.Type, aux any) (any, error) {
	if _, err := c.Bytes(ctx); err != nil {
		return nil, err
	}
	s.record(Call{Op: "deserialize", MediaType: c.MediaType, Aux: aux})
	return s.Name, nil
}

// Calls returns a snapshot of recorded calls.
func (s *RecordingSerializer) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *RecordingSerializer) record(c Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
}

// Body reads c fully and returns it as a string, failing tb on error.
func Body(tb gotesting.TB, c *parcel.Content) string {
	tb.Helper()
	data, err := c.Bytes(context.Background())
	if err != nil {
		tb.Fatalf("reading content body: %v", err)
	}
	return string(data)
}
