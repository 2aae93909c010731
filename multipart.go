package parcel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"time"
)

// PartDetail overrides how a single multipart field is written.
// It is passed to the part's serializer as auxiliary data.
type PartDetail struct {
	ContentType string
	FileName    string
}

// Detailer is implemented by field values that carry their own part detail.
type Detailer interface {
	PartDetail() *PartDetail
}

// File is a streaming form field value with a file name and content type.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

func (f *File) Read(p []byte) (int, error) {
	if f.Body == nil {
		return 0, io.EOF
	}
	return f.Body.Read(p)
}

// PartDetail implements Detailer.
func (f *File) PartDetail() *PartDetail {
	return &PartDetail{ContentType: f.ContentType, FileName: f.Name}
}

// FormField describes one field of a multipart aggregate.
type FormField struct {
	// Name is the form field name.
	Name string

	// Value extracts the field value from the aggregate. A nil result skips
	// the field.
	Value func(aggregate any) any

	// MediaTypes lists acceptable media types in preference order.
	MediaTypes []string

	// Detail optionally returns a content type override and file name.
	Detail func(aggregate any) *PartDetail
}

// Form is a multipart aggregate paired with its field descriptors.
type Form struct {
	value  any
	fields []FormField
}

// NewForm pairs an aggregate value with its fields. A nil value encodes as a
// form with no parts.
func NewForm(v any, fields ...FormField) *Form {
	return &Form{value: v, fields: fields}
}

// Fields returns the field descriptors.
func (f *Form) Fields() []FormField {
	return append([]FormField(nil), f.fields...)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// EncodeForm writes form as a multipart/form-data body.
//
// Each field is serialized through r with its effective media type: the
// detail override if present, else the first acceptable media type.
func EncodeForm(ctx context.Context, r *Registry, form *Form) (*Content, error) {
	return encodeForm(ctx, r, form, "")
}

func encodeForm(ctx context.Context, r *Registry, form *Form, boundary string) (*Content, error) {
	if r == nil {
		return nil, newArgumentError("registry", "nil registry")
	}
	start := time.Now()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if boundary != "" {
		if err := w.SetBoundary(boundary); err != nil {
			return nil, newArgumentError("boundary", err.Error())
		}
	}

	parts, err := writeParts(ctx, r, w, form)
	if err == nil {
		err = w.Close()
	}
	emitFormEncoded(ctx, parts, int64(buf.Len()), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return NewContent(w.FormDataContentType(), buf.Bytes()), nil
}

func writeParts(ctx context.Context, r *Registry, w *multipart.Writer, form *Form) (int, error) {
	if form == nil || form.value == nil {
		return 0, nil
	}
	parts := 0
	for _, field := range form.fields {
		if err := ctx.Err(); err != nil {
			return parts, err
		}
		if field.Value == nil {
			return parts, newArgumentError("field", fmt.Sprintf("%s has no value accessor", field.Name))
		}
		v := field.Value(form.value)
		if isNullField(v) {
			continue
		}

		detail := fieldDetail(field, form.value, v)
		mediaType := detail.ContentType
		if mediaType == "" {
			if len(field.MediaTypes) == 0 {
				return parts, newArgumentError("field", fmt.Sprintf("%s has no media type", field.Name))
			}
			mediaType = field.MediaTypes[0]
		}

		c, err := r.Serialize(ctx, v, mediaType, detail)
		if err != nil {
			return parts, fmt.Errorf("form field %s: %w", field.Name, err)
		}
		if detail.FileName != "" {
			c.FileName = detail.FileName
		}
		if err := writePart(ctx, w, field.Name, c); err != nil {
			return parts, fmt.Errorf("form field %s: %w", field.Name, err)
		}
		parts++
	}
	return parts, nil
}

func writePart(ctx context.Context, w *multipart.Writer, name string, c *Content) error {
	disposition := fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(name))
	if c.FileName != "" {
		disposition += fmt.Sprintf(`; filename="%s"`, quoteEscaper.Replace(c.FileName))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", disposition)
	if c.MediaType != "" {
		h.Set("Content-Type", c.MediaType)
	}
	pw, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if c.Body == nil {
		return nil
	}
	return copyContext(ctx, pw, c.Body)
}

func fieldDetail(field FormField, aggregate, v any) *PartDetail {
	if field.Detail != nil {
		if d := field.Detail(aggregate); d != nil {
			return d
		}
	}
	if d, ok := v.(Detailer); ok {
		if pd := d.PartDetail(); pd != nil {
			return pd
		}
	}
	return &PartDetail{}
}

func isNullField(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case Value:
		return x.IsNull()
	case []byte:
		return x == nil
	case *File:
		return x == nil
	default:
		return false
	}
}

// MultipartSerializer encodes *Form values as multipart/form-data.
type MultipartSerializer struct {
	registry *Registry
	boundary string
}

// NewMultipartSerializer returns a multipart serializer that serializes each
// part through r.
func NewMultipartSerializer(r *Registry) *MultipartSerializer {
	return &MultipartSerializer{registry: r}
}

// WithBoundary returns a copy that writes a fixed boundary instead of a
// random one.
func (s *MultipartSerializer) WithBoundary(boundary string) *MultipartSerializer {
	c := *s
	c.boundary = boundary
	return &c
}

// Serialize encodes a *Form. The returned media type carries the boundary.
func (s *MultipartSerializer) Serialize(ctx context.Context, v any, _ string, _ any) (*Content, error) {
	form, ok := v.(*Form)
	if !ok && v != nil {
		return nil, newUnsupportedTypeError(typeName(v), "multipart serialization")
	}
	return encodeForm(ctx, s.registry, form, s.boundary)
}

// Deserialize is not supported for multipart bodies.
func (s *MultipartSerializer) Deserialize(_ context.Context, _ *Content, _ *Type, _ any) (any, error) {
	return nil, fmt.Errorf("%w: multipart/form-data deserialization", ErrNotImplemented)
}
