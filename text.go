package parcel

import (
	"context"
	"mime"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// TextSerializer encodes scalar values as their literal text.
//
// A charset parameter on the media type selects the body encoding; UTF-8 is
// assumed otherwise.
type TextSerializer struct{}

// NewTextSerializer returns a plain text serializer.
func NewTextSerializer() *TextSerializer {
	return &TextSerializer{}
}

// Serialize renders v with the literal codec. Lists are comma-joined.
func (s *TextSerializer) Serialize(ctx context.Context, v any, mediaType string, _ any) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := From(v)
	if err != nil {
		return nil, err
	}
	var text string
	if val.Kind() == KindList {
		text, err = JoinList(",", val, "")
	} else {
		text, err = SerializeLiteral(val, "")
	}
	if err != nil {
		return nil, err
	}

	if mediaType == "" {
		mediaType = MediaTypeText
	}
	enc, err := charsetEncoding(mediaType)
	if err != nil {
		return nil, err
	}
	body := []byte(text)
	if enc != nil {
		body, err = enc.NewEncoder().Bytes(body)
		if err != nil {
			return nil, newCodecError(ErrMarshal, err)
		}
	}
	return NewContent(mediaType, body), nil
}

// Deserialize reads the body as text. A nil target yields a string; any
// other target is parsed with the literal codec and yields a Value.
func (s *TextSerializer) Deserialize(ctx context.Context, c *Content, target *Type, _ any) (any, error) {
	data, err := c.Bytes(ctx)
	if err != nil {
		return nil, err
	}
	enc, err := charsetEncoding(c.MediaType)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		data, err = enc.NewDecoder().Bytes(data)
		if err != nil {
			return nil, newCodecError(ErrUnmarshal, err)
		}
	}

	text := string(data)
	switch {
	case target == nil:
		return text, nil
	case target.kind == KindList:
		return SplitList(text, ",", target.elem, "")
	default:
		return ParseLiteral(text, target, "")
	}
}

// charsetEncoding returns the encoding named by the charset parameter, or
// nil when the media type names none.
func charsetEncoding(mediaType string) (encoding.Encoding, error) {
	_, params, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return nil, nil
	}
	name, ok := params["charset"]
	if !ok || strings.EqualFold(name, "utf-8") {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, newArgumentError("charset", err.Error())
	}
	return enc, nil
}
