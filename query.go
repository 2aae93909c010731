package parcel

import (
	"net/url"
	"strings"
)

// QueryBuilder accumulates query parameters onto a base URI.
//
// A QueryBuilder belongs to a single request: create it, append to it in
// order, read String once and discard it. It is not safe for concurrent use.
type QueryBuilder struct {
	b        strings.Builder
	hasQuery bool
}

// NewQueryBuilder starts a query string on base. If base already carries a
// query, appended parameters are joined with "&".
func NewQueryBuilder(base string) *QueryBuilder {
	q := &QueryBuilder{hasQuery: strings.Contains(base, "?")}
	q.b.WriteString(base)
	return q
}

// AppendPrimitive appends name=value. Null values are skipped.
//
// Name is written as given and must already be escaped. The value is
// percent-encoded unless allowReserved is set.
func (q *QueryBuilder) AppendPrimitive(name string, v Value, allowReserved bool, format string) error {
	if v.IsNull() {
		return nil
	}
	lit, err := SerializeLiteral(v, format)
	if err != nil {
		return err
	}
	q.writePair(name, lit, allowReserved)
	return nil
}

// AppendList appends a list parameter. A null list is skipped.
//
// Exploded lists append one name=value pair per non-null item. Otherwise a
// single name= pair is appended, even for an empty list, and non-null items
// are joined with delimiter, which is written unescaped.
func (q *QueryBuilder) AppendList(name string, list Value, explode bool, delimiter string, allowReserved bool, format string) error {
	if list.IsNull() {
		return nil
	}
	if list.Kind() != KindList {
		return newUnsupportedTypeError(list.typ.String(), "query list serialization")
	}

	// Serialize every item before writing so a failing item leaves the
	// builder unchanged.
	lits := make([]string, 0, len(list.items))
	for _, item := range list.items {
		if item.IsNull() {
			continue
		}
		lit, err := SerializeLiteral(item, format)
		if err != nil {
			return err
		}
		lits = append(lits, lit)
	}

	if explode {
		for _, lit := range lits {
			q.writePair(name, lit, allowReserved)
		}
		return nil
	}

	q.separator()
	q.b.WriteString(name)
	q.b.WriteByte('=')
	for i, lit := range lits {
		if i > 0 {
			q.b.WriteString(delimiter)
		}
		q.writeValue(lit, allowReserved)
	}
	return nil
}

// String returns the accumulated URI.
func (q *QueryBuilder) String() string {
	return q.b.String()
}

// URL parses the accumulated URI.
func (q *QueryBuilder) URL() (*url.URL, error) {
	return url.Parse(q.b.String())
}

func (q *QueryBuilder) separator() {
	if q.hasQuery {
		q.b.WriteByte('&')
		return
	}
	q.b.WriteByte('?')
	q.hasQuery = true
}

func (q *QueryBuilder) writePair(name, lit string, allowReserved bool) {
	q.separator()
	q.b.WriteString(name)
	q.b.WriteByte('=')
	q.writeValue(lit, allowReserved)
}

func (q *QueryBuilder) writeValue(lit string, allowReserved bool) {
	if allowReserved {
		q.b.WriteString(lit)
		return
	}
	q.b.WriteString(EscapeDataString(lit))
}

// AppendQueryParameter returns a copy of u with one already-escaped
// name=value pair appended to its query. A nil u yields nil.
func AppendQueryParameter(u *url.URL, name, value string) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	pair := name + "=" + value
	if c.RawQuery == "" {
		c.RawQuery = pair
	} else {
		c.RawQuery += "&" + pair
	}
	c.ForceQuery = false
	return &c
}

// EscapeDataString percent-encodes every byte of s outside the RFC 3986
// unreserved set, using upper-case hex. Spaces become %20.
func EscapeDataString(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	const hex = "0123456789ABCDEF"
	out := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			out = append(out, c)
			continue
		}
		out = append(out, '%', hex[c>>4], hex[c&0x0F])
	}
	return string(out)
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	default:
		return false
	}
}
