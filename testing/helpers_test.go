package testing

import (
	"context"
	gotesting "testing"
)

func TestRecordingSerializer(t *gotesting.T) {
	s := NewRecordingSerializer("rec")
	ctx := context.Background()

	c, err := s.Serialize(ctx, "v", "a/b", nil)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if got := Body(t, c); got != "rec" {
		t.Errorf("Body() = %q, want %q", got, "rec")
	}

	v, err := s.Deserialize(ctx, c, nil, nil)
	if err != nil {
		t.Fatalf("Deserialize() error: %v", err)
	}
	if v != "rec" {
		t.Errorf("Deserialize() = %v, want %q", v, "rec")
	}

	calls := s.Calls()
	if len(calls) != 2 || calls[0].Op != "serialize" || calls[1].Op != "deserialize" {
		t.Errorf("Calls() = %+v", calls)
	}
}

func TestPetType(t *gotesting.T) {
	if !PetType.IsA(Animal) {
		t.Error("PetType should descend from Animal")
	}
	if _, ok := PetType.New().(*Pet); !ok {
		t.Error("PetType.New() should allocate *Pet")
	}
}
