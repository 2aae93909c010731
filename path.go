package parcel

import (
	"fmt"
	"strings"
)

// Style is a URI path segment encoding scheme.
type Style uint8

const (
	// StyleSimple renders the bare literal; lists are comma-joined.
	StyleSimple Style = iota
	// StyleLabel prefixes the literal with a dot.
	StyleLabel
	// StyleMatrix prefixes the literal with ";name=".
	StyleMatrix
)

func (s Style) String() string {
	switch s {
	case StyleSimple:
		return "simple"
	case StyleLabel:
		return "label"
	case StyleMatrix:
		return "matrix"
	default:
		return fmt.Sprintf("Style(%d)", uint8(s))
	}
}

// ParseStyle maps a style name from an API description to a Style.
func ParseStyle(name string) (Style, error) {
	switch name {
	case "", "simple":
		return StyleSimple, nil
	case "label":
		return StyleLabel, nil
	case "matrix":
		return StyleMatrix, nil
	default:
		return 0, newArgumentError("style", fmt.Sprintf("unknown path style %q", name))
	}
}

// SerializePathSegment renders a single path parameter.
//
// Null renders as "" (simple), "." (label) or ";name=" (matrix). The result is
// not percent-encoded.
func SerializePathSegment(name string, v Value, style Style, format string) (string, error) {
	lit, err := SerializeLiteral(v, format)
	if err != nil {
		return "", err
	}
	switch style {
	case StyleSimple:
		return lit, nil
	case StyleLabel:
		return "." + lit, nil
	case StyleMatrix:
		return ";" + name + "=" + lit, nil
	default:
		return "", newArgumentError("style", style.String())
	}
}

// SerializePathList renders a list path parameter.
//
// Label output is dot-joined whether or not explode is set. Exploded matrix
// output repeats ";name=" once per item.
func SerializePathList(name string, list Value, style Style, explode bool, format string) (string, error) {
	if !list.IsNull() && list.Kind() != KindList {
		return "", newUnsupportedTypeError(list.typ.String(), "path list serialization")
	}
	switch style {
	case StyleSimple:
		return JoinList(",", list, format)
	case StyleLabel:
		joined, err := JoinList(".", list, format)
		if err != nil {
			return "", err
		}
		return "." + joined, nil
	case StyleMatrix:
		prefix := ";" + name + "="
		if !explode {
			joined, err := JoinList(",", list, format)
			if err != nil {
				return "", err
			}
			return prefix + joined, nil
		}
		var b strings.Builder
		for _, item := range list.items {
			lit, err := SerializeLiteral(item, format)
			if err != nil {
				return "", err
			}
			b.WriteString(prefix)
			b.WriteString(lit)
		}
		return b.String(), nil
	default:
		return "", newArgumentError("style", style.String())
	}
}
