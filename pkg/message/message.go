// Package message decodes and encodes chat messages whose attachments share a
// {"type", "payload"} envelope, where the payload shape depends on type.
//
// Two codecs implement the same Codec interface:
//
//   - Registry: an open table of payload types keyed by discriminant. Unknown
//     types decode to an Envelope with a nil payload, which encodes back as
//     "payload": null.
//   - VariantCodec: the closed Attachment set. Unknown types decode to
//     Unsupported, which cannot be encoded.
//
// Both operate on generic JSON trees (see Parse); Pack and Unpack add the
// text step.
package message

import (
	"encoding/json"
)

// Codec decodes and encodes a single attachment envelope.
type Codec[A any] interface {
	Decode(r *ObjectReader) (A, error)
	Encode(a A, w *ObjectWriter) error
}

var (
	_ Codec[Envelope]   = (*Registry)(nil)
	_ Codec[Attachment] = VariantCodec{}
)

type Message[A any] struct {
	From        string
	Text        string
	Attachments []A
}

// DecodeMessage decodes a message tree. The first failing field or
// attachment aborts the decode and no partial message is returned.
func DecodeMessage[A any](c Codec[A], v any) (*Message[A], error) {
	r, err := NewObjectReader(v)
	if err != nil {
		return nil, err
	}

	from, err := r.String("from")
	if err != nil {
		return nil, err
	}

	text, err := r.String("text")
	if err != nil {
		return nil, err
	}

	arr, err := r.Array("attachments")
	if err != nil {
		return nil, err
	}

	attachments := make([]A, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		ar, err := arr.Object(i)
		if err != nil {
			return nil, err
		}

		a, err := c.Decode(ar)
		if err != nil {
			return nil, err
		}

		attachments = append(attachments, a)
	}

	return &Message[A]{From: from, Text: text, Attachments: attachments}, nil
}

// EncodeMessage encodes m into a generic tree. The first attachment that
// fails to encode aborts the whole message.
func EncodeMessage[A any](c Codec[A], m *Message[A]) (map[string]any, error) {
	w := NewObjectWriter()
	w.SetString("from", m.From)
	w.SetString("text", m.Text)

	arr := w.Array("attachments")
	for _, a := range m.Attachments {
		if err := c.Encode(a, arr.AppendObject()); err != nil {
			return nil, err
		}
	}

	return w.Value(), nil
}

func Unpack[A any](c Codec[A], buf []byte) (*Message[A], error) {
	v, err := Parse(buf)
	if err != nil {
		return nil, err
	}

	return DecodeMessage(c, v)
}

func Pack[A any](c Codec[A], m *Message[A]) ([]byte, error) {
	v, err := EncodeMessage(c, m)
	if err != nil {
		return nil, err
	}

	return json.Marshal(v)
}
