package parcel

import "io"

// Kind identifies the closed set of value kinds the runtime can encode.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindDecimal
	KindDate
	KindDateTime
	KindDateTimeOffset
	KindDuration
	KindUUID
	KindEnum
	KindString
	KindBytes
	KindStream
	KindURI
	KindList
	KindObject
)

var kindNames = [...]string{
	KindInvalid:        "invalid",
	KindBool:           "bool",
	KindInt8:           "int8",
	KindInt16:          "int16",
	KindInt32:          "int32",
	KindInt64:          "int64",
	KindUint8:          "uint8",
	KindUint16:         "uint16",
	KindUint32:         "uint32",
	KindUint64:         "uint64",
	KindFloat32:        "float32",
	KindFloat64:        "float64",
	KindDecimal:        "decimal",
	KindDate:           "date",
	KindDateTime:       "date-time",
	KindDateTimeOffset: "date-time-offset",
	KindDuration:       "duration",
	KindUUID:           "uuid",
	KindEnum:           "enum",
	KindString:         "string",
	KindBytes:          "bytes",
	KindStream:         "stream",
	KindURI:            "uri",
	KindList:           "list",
	KindObject:         "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Scalar reports whether values of this kind have a literal text form.
func (k Kind) Scalar() bool {
	switch k {
	case KindInvalid, KindStream, KindList, KindObject:
		return false
	default:
		return true
	}
}

// Type is the declared type of a value.
//
// Types form an explicit "is-a" hierarchy through Parent, which the registry
// walks when no serializer matches a media type. Types are immutable once
// constructed and may be shared freely.
type Type struct {
	name    string
	kind    Kind
	parent  *Type
	elem    *Type
	members map[string]struct{}
	order   []string
	factory func() any
}

// Built-in scalar and body types.
var (
	TypeBool           = &Type{name: "bool", kind: KindBool}
	TypeInt8           = &Type{name: "int8", kind: KindInt8}
	TypeInt16          = &Type{name: "int16", kind: KindInt16}
	TypeInt32          = &Type{name: "int32", kind: KindInt32}
	TypeInt64          = &Type{name: "int64", kind: KindInt64}
	TypeUint8          = &Type{name: "uint8", kind: KindUint8}
	TypeUint16         = &Type{name: "uint16", kind: KindUint16}
	TypeUint32         = &Type{name: "uint32", kind: KindUint32}
	TypeUint64         = &Type{name: "uint64", kind: KindUint64}
	TypeFloat32        = &Type{name: "float32", kind: KindFloat32}
	TypeFloat64        = &Type{name: "float64", kind: KindFloat64}
	TypeDecimal        = &Type{name: "decimal", kind: KindDecimal}
	TypeDate           = &Type{name: "date", kind: KindDate}
	TypeDateTime       = &Type{name: "date-time", kind: KindDateTime}
	TypeDateTimeOffset = &Type{name: "date-time-offset", kind: KindDateTimeOffset}
	TypeDuration       = &Type{name: "duration", kind: KindDuration}
	TypeUUID           = &Type{name: "uuid", kind: KindUUID}
	TypeString         = &Type{name: "string", kind: KindString}
	TypeBytes          = &Type{name: "bytes", kind: KindBytes}
	TypeStream         = &Type{name: "stream", kind: KindStream}
	TypeURI            = &Type{name: "uri", kind: KindURI}

	// TypeForm is the declared type of a *Form multipart aggregate.
	TypeForm = &Type{name: "form", kind: KindObject}
)

// NewEnumType declares an enumeration with the given member names.
// Member names are matched exactly and case-sensitively.
func NewEnumType(name string, members ...string) *Type {
	t := &Type{
		name:    name,
		kind:    KindEnum,
		members: make(map[string]struct{}, len(members)),
		order:   append([]string(nil), members...),
	}
	for _, m := range members {
		t.members[m] = struct{}{}
	}
	return t
}

// ListOf declares a list of elem. Lists do not nest.
func ListOf(elem *Type) (*Type, error) {
	if elem == nil {
		return nil, newArgumentError("elem", "nil element type")
	}
	if elem.kind == KindList {
		return nil, newArgumentError("elem", "lists cannot be nested")
	}
	return &Type{name: "[]" + elem.name, kind: KindList, elem: elem}, nil
}

// MustListOf is like ListOf but panics on error. Intended for package-level declarations.
func MustListOf(elem *Type) *Type {
	t, err := ListOf(elem)
	if err != nil {
		panic(err)
	}
	return t
}

// NewObjectType declares a body model type.
//
// Parent may be nil. Factory, if set, allocates a decode target for
// structured codecs and should return a pointer.
func NewObjectType(name string, parent *Type, factory func() any) *Type {
	return &Type{name: name, kind: KindObject, parent: parent, factory: factory}
}

// Name returns the declared name.
func (t *Type) Name() string {
	return t.name
}

// Kind returns the value kind.
func (t *Type) Kind() Kind {
	if t == nil {
		return KindInvalid
	}
	return t.kind
}

// Parent returns the "is-a" parent, or nil.
func (t *Type) Parent() *Type {
	return t.parent
}

// Elem returns the element type of a list.
func (t *Type) Elem() *Type {
	return t.elem
}

// Members returns enum member names in declaration order.
func (t *Type) Members() []string {
	return append([]string(nil), t.order...)
}

// HasMember reports whether name is a member of an enum type.
func (t *Type) HasMember(name string) bool {
	_, ok := t.members[name]
	return ok
}

// New allocates a decode target, or returns nil when the type has no factory.
func (t *Type) New() any {
	if t == nil || t.factory == nil {
		return nil
	}
	return t.factory()
}

// IsA reports whether t is other or descends from it.
func (t *Type) IsA(other *Type) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

// Member returns the enum value for name.
func (t *Type) Member(name string) (Value, error) {
	if t.kind != KindEnum {
		return Value{}, newUnsupportedTypeError(t.name, "enum member")
	}
	if !t.HasMember(name) {
		return Value{}, newFormatError(name, t, "", nil)
	}
	return Value{typ: t, s: name}, nil
}

// MustMember is like Member but panics on error.
func (t *Type) MustMember(name string) Value {
	v, err := t.Member(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Typed is implemented by body values that declare their own type.
type Typed interface {
	ParcelType() *Type
}

// TypeOf resolves the declared type of a body value, or nil when unknown.
func TypeOf(v any) *Type {
	switch x := v.(type) {
	case nil:
		return nil
	case Typed:
		return x.ParcelType()
	case Value:
		return x.typ
	case *Form:
		return TypeForm
	case string:
		return TypeString
	case []byte:
		return TypeBytes
	case io.Reader:
		return TypeStream
	default:
		return nil
	}
}
