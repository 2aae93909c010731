package parcel

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for parcel events.
var (
	SignalRegistryCreated     = capitan.NewSignal("parcel.registry.created", "Default registry instantiated")
	SignalSerializeComplete   = capitan.NewSignal("parcel.serialize.complete", "Body serialization finished")
	SignalDeserializeComplete = capitan.NewSignal("parcel.deserialize.complete", "Body deserialization finished")
	SignalLookupMiss          = capitan.NewSignal("parcel.lookup.miss", "No serializer for media type or declared type")
	SignalFormEncoded         = capitan.NewSignal("parcel.form.encoded", "Multipart form encoding finished")
)

// Keys for typed event data.
var (
	KeyMediaType = capitan.NewStringKey("media_type")
	KeyTypeName  = capitan.NewStringKey("type_name")
	KeySize      = capitan.NewIntKey("size")
	KeyParts     = capitan.NewIntKey("parts")
	KeyEntries   = capitan.NewIntKey("entries")
	KeyDuration  = capitan.NewDurationKey("duration")
	KeyError     = capitan.NewErrorKey("error")
)

// emitRegistryCreated emits an event when the default registry is built.
func emitRegistryCreated(ctx context.Context, entries int) {
	capitan.Emit(ctx, SignalRegistryCreated,
		KeyEntries.Field(entries),
	)
}

// emitLookupMiss emits an event when no serializer matches.
func emitLookupMiss(ctx context.Context, mediaType, typeName string) {
	capitan.Emit(ctx, SignalLookupMiss,
		KeyMediaType.Field(mediaType),
		KeyTypeName.Field(typeName),
	)
}

// emitSerializeComplete emits an event when a body has been serialized.
func emitSerializeComplete(ctx context.Context, mediaType, typeName string, size int64, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyMediaType.Field(mediaType),
		KeyTypeName.Field(typeName),
		KeySize.Field(int(size)),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSerializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSerializeComplete, fields...)
	}
}

// emitDeserializeComplete emits an event when a body has been deserialized.
func emitDeserializeComplete(ctx context.Context, mediaType, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyMediaType.Field(mediaType),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDeserializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDeserializeComplete, fields...)
	}
}

// emitFormEncoded emits an event when a multipart form has been encoded.
func emitFormEncoded(ctx context.Context, parts int, size int64, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyParts.Field(parts),
		KeySize.Field(int(size)),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalFormEncoded, fields...)
	} else {
		capitan.Emit(ctx, SignalFormEncoded, fields...)
	}
}
