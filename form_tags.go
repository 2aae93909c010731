package parcel

import (
	"io"
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("form")
	sentinel.Tag("form.type")
}

var (
	readerType = reflect.TypeFor[io.Reader]()
	bytesType  = reflect.TypeFor[[]byte]()
)

// FormFieldsOf derives multipart field descriptors from the struct tags of T.
//
//	type Upload struct {
//	    Title string `form:"title"`
//	    Image *parcel.File `form:"image" form.type:"image/png,image/jpeg"`
//	}
//
// Fields without a form tag, or tagged "-", are ignored. Without a form.type
// tag, byte slices and readers default to application/octet-stream and
// everything else to text/plain.
func FormFieldsOf[T any]() []FormField {
	meta := sentinel.Scan[T]()
	fields := make([]FormField, 0, len(meta.Fields))
	for _, f := range meta.Fields {
		name, ok := f.Tags["form"]
		if !ok || name == "" || name == "-" {
			continue
		}
		index := append([]int(nil), f.Index...)
		fields = append(fields, FormField{
			Name:       name,
			MediaTypes: tagMediaTypes(f.Tags["form.type"], f.ReflectType),
			Value: func(aggregate any) any {
				return fieldByIndex(aggregate, index)
			},
		})
	}
	return fields
}

// FormOf pairs v with the descriptors derived from T's struct tags.
func FormOf[T any](v *T) *Form {
	if v == nil {
		return NewForm(nil, FormFieldsOf[T]()...)
	}
	return NewForm(v, FormFieldsOf[T]()...)
}

func tagMediaTypes(tag string, rt reflect.Type) []string {
	var out []string
	for _, mt := range strings.Split(tag, ",") {
		if mt = strings.TrimSpace(mt); mt != "" {
			out = append(out, mt)
		}
	}
	if len(out) > 0 {
		return out
	}
	if rt != nil && (rt == bytesType || rt.Implements(readerType)) {
		return []string{MediaTypeOctet}
	}
	return []string{MediaTypeText}
}

// fieldByIndex reads a struct field from aggregate, which may be a struct
// or a pointer to one. Nil pointers along the way yield nil.
func fieldByIndex(aggregate any, index []int) any {
	rv := reflect.ValueOf(aggregate)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	fv, err := rv.FieldByIndexErr(index)
	if err != nil {
		return nil
	}
	switch fv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		if fv.IsNil() {
			return nil
		}
	}
	if fv.Kind() == reflect.Pointer && !fv.Type().Implements(readerType) {
		fv = fv.Elem()
	}
	return fv.Interface()
}
