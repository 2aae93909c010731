package parcel

import (
	"context"
	"mime"
	"strings"
	"sync/atomic"
	"time"
)

// Baseline media types registered by NewDefaultRegistry.
const (
	MediaTypeText      = "text/plain"
	MediaTypeOctet     = "application/octet-stream"
	MediaTypeMultipart = "multipart/form-data"
)

// Registry maps media types and declared types to serializers.
//
// Population (Add, AddType) must finish before the registry is shared;
// after that, concurrent lookups need no synchronization.
type Registry struct {
	mediaTypes map[string]Serializer
	types      map[*Type]Serializer
}

// RegistryOption configures a Registry during construction.
type RegistryOption func(*Registry) error

// WithSerializer registers s for an exact media type.
func WithSerializer(mediaType string, s Serializer) RegistryOption {
	return func(r *Registry) error {
		return r.Add(mediaType, s)
	}
}

// WithTypeSerializer registers s for a declared type and its descendants.
func WithTypeSerializer(t *Type, s Serializer) RegistryOption {
	return func(r *Registry) error {
		return r.AddType(t, s)
	}
}

// NewRegistry creates an empty registry and applies opts in order.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		mediaTypes: make(map[string]Serializer),
		types:      make(map[*Type]Serializer),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry creates a registry holding the baseline serializers:
// plain text, octet-stream passthrough and multipart/form-data. Strings,
// bytes, streams and forms also resolve by declared type.
func NewDefaultRegistry() *Registry {
	r, _ := NewRegistry()
	text := NewTextSerializer()
	binary := NewBinarySerializer()
	multipart := NewMultipartSerializer(r)

	r.mediaTypes[MediaTypeText] = text
	r.mediaTypes[MediaTypeOctet] = binary
	r.mediaTypes[MediaTypeMultipart] = multipart
	r.types[TypeString] = text
	r.types[TypeBytes] = binary
	r.types[TypeStream] = binary
	r.types[TypeForm] = multipart
	return r
}

// Add registers s for an exact media type. Registering a media type twice
// returns ErrDuplicateKey.
func (r *Registry) Add(mediaType string, s Serializer) error {
	if mediaType == "" {
		return newArgumentError("mediaType", "empty media type")
	}
	if s == nil {
		return newArgumentError("serializer", "nil serializer")
	}
	if _, ok := r.mediaTypes[mediaType]; ok {
		return &ArgumentError{Err: ErrDuplicateKey, Argument: "mediaType", Detail: mediaType}
	}
	r.mediaTypes[mediaType] = s
	return nil
}

// AddType registers s for a declared type. Registering a type twice returns
// ErrDuplicateKey.
func (r *Registry) AddType(t *Type, s Serializer) error {
	if t == nil {
		return newArgumentError("type", "nil type")
	}
	if s == nil {
		return newArgumentError("serializer", "nil serializer")
	}
	if _, ok := r.types[t]; ok {
		return &ArgumentError{Err: ErrDuplicateKey, Argument: "type", Detail: t.String()}
	}
	r.types[t] = s
	return nil
}

// Len returns the number of registered entries across both key spaces.
func (r *Registry) Len() int {
	return len(r.mediaTypes) + len(r.types)
}

// Lookup resolves a serializer.
//
// An exact media type match wins, then the media type with its parameters
// stripped, then the declared type followed by its parents. A miss on all of
// them returns an UnknownMediaTypeError.
func (r *Registry) Lookup(mediaType string, t *Type) (Serializer, error) {
	if s, ok := r.lookupMediaType(mediaType); ok {
		return s, nil
	}
	for cur := t; cur != nil; cur = cur.parent {
		if s, ok := r.types[cur]; ok {
			return s, nil
		}
	}
	err := &UnknownMediaTypeError{MediaType: mediaType}
	if t != nil {
		err.Type = t.String()
	}
	return nil, err
}

func (r *Registry) lookupMediaType(mediaType string) (Serializer, bool) {
	if mediaType == "" {
		return nil, false
	}
	if s, ok := r.mediaTypes[mediaType]; ok {
		return s, true
	}
	essence := mediaTypeEssence(mediaType)
	if essence == mediaType {
		return nil, false
	}
	s, ok := r.mediaTypes[essence]
	return s, ok
}

// Serialize encodes v as mediaType with the matching serializer.
func (r *Registry) Serialize(ctx context.Context, v any, mediaType string, aux any) (*Content, error) {
	t := TypeOf(v)
	s, err := r.Lookup(mediaType, t)
	if err != nil {
		emitLookupMiss(ctx, mediaType, t.String())
		return nil, err
	}

	start := time.Now()
	c, err := s.Serialize(ctx, v, mediaType, aux)
	var size int64
	if c != nil {
		size = c.Size()
	}
	emitSerializeComplete(ctx, mediaType, t.String(), size, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Deserialize decodes c into a value of the target type. The media type is
// taken from c. On a miss the returned UnknownMediaTypeError carries c.
func (r *Registry) Deserialize(ctx context.Context, c *Content, target *Type, aux any) (any, error) {
	if c == nil {
		return nil, newArgumentError("content", "nil content")
	}
	s, err := r.Lookup(c.MediaType, target)
	if err != nil {
		emitLookupMiss(ctx, c.MediaType, target.String())
		if ue, ok := err.(*UnknownMediaTypeError); ok {
			ue.Content = c
		}
		return nil, err
	}

	start := time.Now()
	v, err := s.Deserialize(ctx, c, target, aux)
	emitDeserializeComplete(ctx, c.MediaType, target.String(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// DeserializeAs decodes c and asserts the result to T.
func DeserializeAs[T any](ctx context.Context, r *Registry, c *Content, target *Type, aux any) (T, error) {
	var zero T
	v, err := r.Deserialize(ctx, c, target, aux)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, newUnsupportedTypeError(typeName(v), "conversion to "+typeName(zero))
	}
	return out, nil
}

// mediaTypeEssence strips parameters and lower-cases the type/subtype.
func mediaTypeEssence(mediaType string) string {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		return mt
	}
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// defaultRegistry is process-wide state. It is built on first use and never
// torn down.
var defaultRegistry atomic.Pointer[Registry]

// Default returns the process-wide registry, building it on first use.
// Concurrent first callers all receive the same instance.
//
// Applications should prefer an explicitly owned registry passed from their
// entry point; Default exists for generated code that has none.
func Default() *Registry {
	if r := defaultRegistry.Load(); r != nil {
		return r
	}
	r := NewDefaultRegistry()
	if defaultRegistry.CompareAndSwap(nil, r) {
		emitRegistryCreated(context.Background(), r.Len())
		return r
	}
	return defaultRegistry.Load()
}

// ResetDefault discards the process-wide registry.
// This is primarily useful for test isolation.
func ResetDefault() {
	defaultRegistry.Store(nil)
}
