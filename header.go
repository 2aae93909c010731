package parcel

import (
	"net/http"
	"strings"
)

// SerializeHeader renders a header value. Strings pass through unchanged;
// other kinds use their literal form with no format hint.
func SerializeHeader(v Value) (string, error) {
	if v.Kind() == KindString {
		return v.s, nil
	}
	return SerializeLiteral(v, "")
}

// SerializeHeaderList renders a list header value, comma-joined.
func SerializeHeaderList(list Value) (string, error) {
	return JoinList(",", list, "")
}

// ParseHeader parses all wire occurrences of a header as one value of type t.
// Occurrences are joined with "," before parsing.
func ParseHeader(values []string, t *Type) (Value, error) {
	if t == nil {
		return Value{}, newArgumentError("type", "nil type")
	}
	joined := strings.Join(values, ",")
	if t.kind == KindString {
		return Value{typ: t, s: joined}, nil
	}
	return ParseLiteral(joined, t, "")
}

// ParseHeaderList parses each wire occurrence of a header as one list item.
func ParseHeaderList(values []string, elem *Type) (Value, error) {
	return ParseList(values, elem, "")
}

// SetHeader serializes v into h under name. Null values remove the header.
func SetHeader(h http.Header, name string, v Value) error {
	if v.IsNull() {
		h.Del(name)
		return nil
	}
	var (
		s   string
		err error
	)
	if v.Kind() == KindList {
		s, err = SerializeHeaderList(v)
	} else {
		s, err = SerializeHeader(v)
	}
	if err != nil {
		return err
	}
	h.Set(name, s)
	return nil
}

// HeaderValue parses the occurrences of name in h as a t.
// A missing header yields null.
func HeaderValue(h http.Header, name string, t *Type) (Value, error) {
	values := h.Values(name)
	if len(values) == 0 {
		return Value{}, nil
	}
	if t.Kind() == KindList {
		return ParseHeaderList(values, t.elem)
	}
	return ParseHeader(values, t)
}
