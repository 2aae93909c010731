// Package parcel converts typed values to and from the wire forms used by
// generated HTTP API clients: path segments, query strings, header values and
// request/response bodies.
//
// The package is a runtime for generated code. The generator decides which
// style, explode flag, format hint and media type each parameter uses and
// passes them as literal arguments; parcel only performs the encoding.
//
// # Values
//
// Inputs are Values: immutable tagged variants over a closed set of kinds
// (booleans, integers, floats, decimals, dates, date-times, durations,
// UUIDs, enums, strings, bytes, streams, URIs and flat lists of those).
// Every Value has a declared *Type. The zero Value is null.
//
//	id := parcel.UUID(uuid.New())
//	tags := parcel.Strings("a", "b")
//	status := petStatus.MustMember("available")
//
// # Literals
//
// SerializeLiteral and ParseLiteral convert single values to their canonical
// invariant text and back. Format hints select between encodings of one kind:
//
//	parcel.SerializeLiteral(parcel.Date(t), parcel.FormatDate) // "2024-03-01"
//	parcel.SerializeLiteral(parcel.DateTimeOffset(t), "")       // "2024-03-01T10:20:30.0000000+00:00"
//	parcel.SerializeLiteral(parcel.Duration(90*time.Minute), "") // "01:30:00"
//
// # Request assembly
//
//	seg, _ := parcel.SerializePathList("id", ids, parcel.StyleMatrix, true, "")
//	q := parcel.NewQueryBuilder("/pets/" + seg)
//	_ = q.AppendPrimitive("limit", parcel.Int32(10), false, "")
//	_ = q.AppendList("tag", tags, false, ",", false, "")
//	_ = parcel.SetHeader(req.Header, "X-Request-Id", id)
//
// # Bodies
//
// A Registry maps media types, and declared types as a fallback, to
// Serializers. An exact media type always wins over the type fallback.
//
//	reg := parcel.NewDefaultRegistry()
//	_ = json.Register(reg)
//	content, _ := reg.Serialize(ctx, pet, "application/json", nil)
//	v, _ := reg.Deserialize(ctx, parcel.NewStreamContent(resp.Header.Get("Content-Type"), resp.Body), petType, nil)
//
// Default returns a lazily built process-wide registry holding the baseline
// serializers (text/plain, application/octet-stream, multipart/form-data).
//
// # Codec Providers
//
// Structured document formats implement Codec and live in sibling packages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Multipart
//
// EncodeForm writes an aggregate as multipart/form-data, serializing each
// field through the registry. Field descriptors are written by hand or
// derived from struct tags:
//
//	type Upload struct {
//	    Title string       `form:"title"`
//	    Image *parcel.File `form:"image" form.type:"image/png"`
//	}
//
//	content, _ := parcel.EncodeForm(ctx, reg, parcel.FormOf(&upload))
//
// Decoding multipart bodies is not supported.
//
// # Errors
//
// Failures wrap one of the sentinel errors (ErrFormat, ErrUnsupportedType,
// ErrUnknownMediaType, ErrArgument, ErrDuplicateKey, ErrNotImplemented).
// Nothing in parcel retries.
//
// # Concurrency
//
// Literal, path and header functions are pure. A QueryBuilder belongs to one
// request. A Registry is safe for concurrent reads once populated.
package parcel
