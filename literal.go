package parcel

import (
	"encoding/base64"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Format hints understood by the literal codec.
const (
	FormatDate      = "date"
	FormatFullDate  = "full-date"
	FormatDateTime  = "date-time"
	FormatByte      = "byte"
	FormatBase64URL = "base64url"
	FormatBinary    = "binary"
)

func isDateOnly(format string) bool {
	return format == FormatDate || format == FormatFullDate
}

// SerializeLiteral renders a scalar value as its canonical invariant text.
//
// Null renders as the empty string. Streams, objects and lists have no
// literal form and return an UnsupportedTypeError; use JoinList for lists.
func SerializeLiteral(v Value, format string) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	switch v.Kind() {
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10), nil
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.u, 10), nil
	case KindFloat32:
		return formatFloat(v.f, 32), nil
	case KindFloat64:
		return formatFloat(v.f, 64), nil
	case KindDecimal:
		return v.dec.String(), nil
	case KindDate, KindDateTime, KindDateTimeOffset:
		return formatTime(v.t, v.Kind(), format), nil
	case KindDuration:
		return formatDuration(v.dur), nil
	case KindUUID:
		return v.id.String(), nil
	case KindEnum, KindString:
		return v.s, nil
	case KindBytes:
		return formatBytes(v.raw, format), nil
	case KindURI:
		return v.uri.String(), nil
	default:
		return "", newUnsupportedTypeError(v.typ.String(), "literal serialization")
	}
}

// ParseLiteral parses text as a value of type t.
//
// Parsing is strict: text that is malformed or out of range for t returns a
// FormatError. With the date formats, any time component is rejected.
func ParseLiteral(text string, t *Type, format string) (Value, error) {
	if t == nil {
		return Value{}, newArgumentError("type", "nil type")
	}
	switch t.kind {
	case KindBool:
		switch {
		case strings.EqualFold(text, "true"):
			return Bool(true), nil
		case strings.EqualFold(text, "false"):
			return Bool(false), nil
		}
		return Value{}, newFormatError(text, t, format, nil)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		i, err := strconv.ParseInt(text, 10, intBits(t.kind))
		if err != nil {
			return Value{}, newFormatError(text, t, format, numError(err))
		}
		return Value{typ: t, i: i}, nil
	case KindUint8, KindUint16, KindUint32, KindUint64:
		u, err := strconv.ParseUint(text, 10, intBits(t.kind))
		if err != nil {
			return Value{}, newFormatError(text, t, format, numError(err))
		}
		return Value{typ: t, u: u}, nil
	case KindFloat32, KindFloat64:
		bits := 64
		if t.kind == KindFloat32 {
			bits = 32
		}
		f, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return Value{}, newFormatError(text, t, format, numError(err))
		}
		return Value{typ: t, f: f}, nil
	case KindDecimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return Value{}, newFormatError(text, t, format, err)
		}
		return Value{typ: t, dec: d}, nil
	case KindDate, KindDateTime, KindDateTimeOffset:
		ts, err := parseTime(text, t.kind, format)
		if err != nil {
			return Value{}, newFormatError(text, t, format, err)
		}
		return Value{typ: t, t: ts}, nil
	case KindDuration:
		d, err := parseDuration(text)
		if err != nil {
			return Value{}, newFormatError(text, t, format, err)
		}
		return Value{typ: t, dur: d}, nil
	case KindUUID:
		id, err := uuid.Parse(text)
		if err != nil {
			return Value{}, newFormatError(text, t, format, err)
		}
		return Value{typ: t, id: id}, nil
	case KindEnum:
		if !t.HasMember(text) {
			return Value{}, newFormatError(text, t, format, nil)
		}
		return Value{typ: t, s: text}, nil
	case KindString:
		return Value{typ: t, s: text}, nil
	case KindBytes:
		raw, err := parseBytes(text, format)
		if err != nil {
			return Value{}, newFormatError(text, t, format, err)
		}
		return Value{typ: t, raw: raw}, nil
	case KindURI:
		u, err := url.Parse(text)
		if err != nil {
			return Value{}, newFormatError(text, t, format, err)
		}
		return Value{typ: t, uri: u}, nil
	default:
		return Value{}, newUnsupportedTypeError(t.String(), "literal parsing")
	}
}

// JoinList serializes each item of list and joins the results with sep.
// Null items render as empty strings. A null list renders as "".
func JoinList(sep string, list Value, format string) (string, error) {
	if list.IsNull() {
		return "", nil
	}
	if list.Kind() != KindList {
		return "", newUnsupportedTypeError(list.typ.String(), "list serialization")
	}
	parts := make([]string, len(list.items))
	for i, item := range list.items {
		s, err := SerializeLiteral(item, format)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, sep), nil
}

// ParseList parses each of values as an elem, preserving order.
func ParseList(values []string, elem *Type, format string) (Value, error) {
	lt, err := ListOf(elem)
	if err != nil {
		return Value{}, err
	}
	items := make([]Value, len(values))
	for i, s := range values {
		item, err := ParseLiteral(s, elem, format)
		if err != nil {
			return Value{}, err
		}
		items[i] = item
	}
	return Value{typ: lt, items: items}, nil
}

// SplitList splits text on sep and parses each part as an elem.
// Empty text yields an empty list.
func SplitList(text, sep string, elem *Type, format string) (Value, error) {
	if text == "" {
		return ParseList(nil, elem, format)
	}
	return ParseList(strings.Split(text, sep), elem, format)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == 0 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	// Plain notation for decimal exponents in [-5, 15), exponent form outside.
	e := strconv.FormatFloat(f, 'E', -1, bits)
	exp, _ := strconv.Atoi(e[strings.LastIndexByte(e, 'E')+1:])
	if exp >= -5 && exp < 15 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return e
}

func formatBytes(raw []byte, format string) string {
	switch format {
	case FormatBase64URL:
		return base64.RawURLEncoding.EncodeToString(raw)
	case FormatBinary:
		return string(raw)
	default:
		return base64.StdEncoding.EncodeToString(raw)
	}
}

func parseBytes(text, format string) ([]byte, error) {
	switch format {
	case FormatBase64URL:
		return base64.RawURLEncoding.DecodeString(strings.TrimRight(text, "="))
	case FormatBinary:
		return []byte(text), nil
	default:
		return base64.StdEncoding.DecodeString(text)
	}
}

func intBits(k Kind) int {
	switch k {
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	default:
		return 64
	}
}

// numError strips the redundant function/input prefix from strconv errors.
func numError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

func typeName(x any) string {
	return fmt.Sprintf("%T", x)
}
