package parcel

import (
	"bytes"
	"io"
	"math"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// tick is the wire precision of date-time and duration literals.
const tick = 100 * time.Nanosecond

// Value is an immutable instance of one of the supported kinds.
//
// The zero Value is null. Values are built with the kind constructors
// (Bool, Int32, String, List, ...) or From, and read back with the
// matching accessor. Accessors return the zero value of their Go type
// when called on a Value of another kind.
type Value struct {
	typ   *Type
	b     bool
	i     int64
	u     uint64
	f     float64
	dec   decimal.Decimal
	t     time.Time
	dur   time.Duration
	id    uuid.UUID
	s     string
	raw   []byte
	r     io.Reader
	uri   *url.URL
	items []Value
}

// Null returns the null value.
func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{typ: TypeBool, b: b} }

func Int8(i int8) Value { return Value{typ: TypeInt8, i: int64(i)} }
func Int16(i int16) Value { return Value{typ: TypeInt16, i: int64(i)} }
func Int32(i int32) Value { return Value{typ: TypeInt32, i: int64(i)} }
func Int64(i int64) Value { return Value{typ: TypeInt64, i: i} }

func Uint8(u uint8) Value { return Value{typ: TypeUint8, u: uint64(u)} }
func Uint16(u uint16) Value { return Value{typ: TypeUint16, u: uint64(u)} }
func Uint32(u uint32) Value { return Value{typ: TypeUint32, u: uint64(u)} }
func Uint64(u uint64) Value { return Value{typ: TypeUint64, u: u} }

func Float32(f float32) Value { return Value{typ: TypeFloat32, f: float64(f)} }
func Float64(f float64) Value { return Value{typ: TypeFloat64, f: f} }

func Decimal(d decimal.Decimal) Value { return Value{typ: TypeDecimal, dec: d} }

// Date keeps only the calendar date of t.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{typ: TypeDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateTime keeps the wall clock of t and drops its location.
func DateTime(t time.Time) Value {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	wall := time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)
	return Value{typ: TypeDateTime, t: wall.Truncate(tick)}
}

// DateTimeOffset keeps t together with its UTC offset.
func DateTimeOffset(t time.Time) Value {
	return Value{typ: TypeDateTimeOffset, t: t.Truncate(tick)}
}

func Duration(d time.Duration) Value {
	return Value{typ: TypeDuration, dur: d - d%tick}
}

func UUID(id uuid.UUID) Value { return Value{typ: TypeUUID, id: id} }

func String(s string) Value { return Value{typ: TypeString, s: s} }

// Bytes copies b. A nil slice yields null.
func Bytes(b []byte) Value {
	if b == nil {
		return Value{}
	}
	return Value{typ: TypeBytes, raw: bytes.Clone(b)}
}

// Stream wraps r. A nil reader yields null.
func Stream(r io.Reader) Value {
	if r == nil {
		return Value{}
	}
	return Value{typ: TypeStream, r: r}
}

// URI copies u. A nil URL yields null.
func URI(u *url.URL) Value {
	if u == nil {
		return Value{}
	}
	c := *u
	return Value{typ: TypeURI, uri: &c}
}

// List builds a list of elem. Items may be null; nested lists are rejected.
func List(elem *Type, items ...Value) (Value, error) {
	lt, err := ListOf(elem)
	if err != nil {
		return Value{}, err
	}
	for _, it := range items {
		if it.Kind() == KindList {
			return Value{}, newArgumentError("items", "lists cannot be nested")
		}
	}
	return Value{typ: lt, items: append([]Value(nil), items...)}, nil
}

// MustList is like List but panics on error.
func MustList(elem *Type, items ...Value) Value {
	v, err := List(elem, items...)
	if err != nil {
		panic(err)
	}
	return v
}

// Strings builds a string list.
func Strings(ss ...string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = String(s)
	}
	return MustList(TypeString, items...)
}

func (v Value) IsNull() bool { return v.typ == nil }
func (v Value) Type() *Type { return v.typ }
func (v Value) Kind() Kind { return v.typ.Kind() }

func (v Value) Bool() bool { return v.b }
func (v Value) Int() int64 { return v.i }
func (v Value) Uint() uint64 { return v.u }
func (v Value) Float() float64 { return v.f }
func (v Value) Decimal() decimal.Decimal { return v.dec }
func (v Value) Time() time.Time { return v.t }
func (v Value) Duration() time.Duration { return v.dur }
func (v Value) UUID() uuid.UUID { return v.id }
func (v Value) Reader() io.Reader { return v.r }
func (v Value) Items() []Value { return append([]Value(nil), v.items...) }
func (v Value) Len() int { return len(v.items) }
func (v Value) Index(i int) Value { return v.items[i] }

// Str returns the text of a string value or the member name of an enum value.
func (v Value) Str() string { return v.s }

// Bytes returns the byte content. Callers must not modify it.
func (v Value) Bytes() []byte { return v.raw }

// URI returns a copy of the URL.
func (v Value) URI() *url.URL {
	if v.uri == nil {
		return nil
	}
	c := *v.uri
	return &c
}

// String returns the literal form, or a placeholder for kinds without one.
func (v Value) String() string {
	if v.IsNull() {
		return "<null>"
	}
	s, err := SerializeLiteral(v, "")
	if err != nil {
		return "<" + v.typ.String() + ">"
	}
	return s
}

// Equal reports whether v and o hold the same kind and value.
// NaN equals NaN. Streams only compare equal when both are null.
func (v Value) Equal(o Value) bool {
	if v.typ == nil || o.typ == nil {
		return v.typ == nil && o.typ == nil
	}
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case KindBool:
		return v.b == o.b
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return v.i == o.i
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return v.u == o.u
	case KindFloat32, KindFloat64:
		if math.IsNaN(v.f) && math.IsNaN(o.f) {
			return true
		}
		return v.f == o.f
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindDate, KindDateTime:
		return v.t.Equal(o.t)
	case KindDateTimeOffset:
		_, vo := v.t.Zone()
		_, oo := o.t.Zone()
		return v.t.Equal(o.t) && vo == oo
	case KindDuration:
		return v.dur == o.dur
	case KindUUID:
		return v.id == o.id
	case KindEnum:
		return v.typ == o.typ && v.s == o.s
	case KindString:
		return v.s == o.s
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case KindURI:
		return v.uri.String() == o.uri.String()
	case KindList:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// From converts a Go value into a Value.
//
// time.Time maps to a date-time with offset; use Date or DateTime for the
// other date kinds. nil maps to null.
func From(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int64(int64(v)), nil
	case int8:
		return Int8(v), nil
	case int16:
		return Int16(v), nil
	case int32:
		return Int32(v), nil
	case int64:
		return Int64(v), nil
	case uint:
		return Uint64(uint64(v)), nil
	case uint8:
		return Uint8(v), nil
	case uint16:
		return Uint16(v), nil
	case uint32:
		return Uint32(v), nil
	case uint64:
		return Uint64(v), nil
	case float32:
		return Float32(v), nil
	case float64:
		return Float64(v), nil
	case decimal.Decimal:
		return Decimal(v), nil
	case time.Time:
		return DateTimeOffset(v), nil
	case time.Duration:
		return Duration(v), nil
	case uuid.UUID:
		return UUID(v), nil
	case string:
		return String(v), nil
	case []byte:
		return Bytes(v), nil
	case *url.URL:
		return URI(v), nil
	case []string:
		if v == nil {
			return Value{}, nil
		}
		return Strings(v...), nil
	case []int32:
		return listFrom(TypeInt32, v, Int32)
	case []int64:
		return listFrom(TypeInt64, v, Int64)
	case []int:
		return listFrom(TypeInt64, v, func(i int) Value { return Int64(int64(i)) })
	case []float64:
		return listFrom(TypeFloat64, v, Float64)
	case []bool:
		return listFrom(TypeBool, v, Bool)
	case []uuid.UUID:
		return listFrom(TypeUUID, v, UUID)
	case []time.Time:
		return listFrom(TypeDateTimeOffset, v, DateTimeOffset)
	case io.Reader:
		return Stream(v), nil
	default:
		return Value{}, newUnsupportedTypeError(typeName(x), "value conversion")
	}
}

func listFrom[E any](elem *Type, in []E, conv func(E) Value) (Value, error) {
	if in == nil {
		return Value{}, nil
	}
	items := make([]Value, len(in))
	for i, e := range in {
		items[i] = conv(e)
	}
	return List(elem, items...)
}
