package message

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, r *Registry, input string) (Envelope, error) {
	t.Helper()

	v, err := Parse([]byte(input))
	require.NoError(t, err)

	or, err := NewObjectReader(v)
	require.NoError(t, err)

	return r.Decode(or)
}

func encodeEnvelope(r *Registry, env Envelope) (map[string]any, error) {
	w := NewObjectWriter()
	if err := r.Encode(env, w); err != nil {
		return nil, err
	}
	return w.Value(), nil
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := DefaultRegistry()

	tests := []Envelope{
		{Type: "image", Payload: ImageAttachment{URL: "http://via.placeholder.com/640x480", Width: 640, Height: 480}},
		{Type: "audio", Payload: AudioAttachment{Title: "Never Gonna Give You Up", URL: "https://contoso.com/a.mp3", ShouldAutoplay: true}},
		{Type: "audio", Payload: AudioAttachment{Title: "", URL: "https://contoso.com/b.mp3"}},
	}

	for _, env := range tests {
		t.Run(env.Type, func(t *testing.T) {
			tree, err := encodeEnvelope(r, env)
			require.NoError(t, err)

			or, err := NewObjectReader(tree)
			require.NoError(t, err)

			got, err := r.Decode(or)
			require.NoError(t, err)
			assert.Equal(t, env, got)
		})
	}
}

func TestRegistry_DecodeUnknownTypeNeverFails(t *testing.T) {
	r := DefaultRegistry()

	inputs := []string{
		`{"type": "pdf", "payload": {"title": "The Swift Programming Language"}}`,
		`{"type": "pdf", "payload": null}`,
		`{"type": "pdf", "payload": 42}`,
		`{"type": "pdf", "payload": [1, 2]}`,
		`{"type": "pdf"}`,
		`{"type": "IMAGE", "payload": {"url": 1}}`,
	}

	for _, input := range inputs {
		env, err := decodeEnvelope(t, r, input)
		require.NoError(t, err, input)
		assert.Nil(t, env.Payload, input)
		assert.NotEmpty(t, env.Type, input)
	}
}

func TestRegistry_DecodeErrors(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name  string
		input string
		want  error
		path  string
	}{
		{name: "missing type", input: `{"payload": {}}`, want: ErrMissingField, path: "type"},
		{name: "empty type", input: `{"type": "", "payload": {}}`, want: ErrMissingField, path: "type"},
		{name: "type not string", input: `{"type": 3, "payload": {}}`, want: ErrWrongType, path: "type"},
		{name: "missing payload", input: `{"type": "image"}`, want: ErrMissingField, path: "payload"},
		{name: "null payload", input: `{"type": "image", "payload": null}`, want: ErrWrongType, path: "payload"},
		{name: "missing width", input: `{"type": "image", "payload": {"url": "http://x", "height": 1}}`, want: ErrMissingField, path: "payload.width"},
		{name: "autoplay not bool", input: `{"type": "audio", "payload": {"title": "t", "url": "http://x", "shouldAutoplay": "yes"}}`, want: ErrWrongType, path: "payload.shouldAutoplay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEnvelope(t, r, tt.input)
			require.ErrorIs(t, err, tt.want)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.path, de.Path)
		})
	}
}

func TestRegistry_EncodeNilPayloadWritesNull(t *testing.T) {
	tree, err := encodeEnvelope(DefaultRegistry(), Envelope{Type: "pdf"})
	require.NoError(t, err)

	payload, ok := tree["payload"]
	assert.True(t, ok)
	assert.Nil(t, payload)
	assert.Equal(t, "pdf", tree["type"])
}

func TestRegistry_EncodeUnregisteredType(t *testing.T) {
	_, err := encodeEnvelope(DefaultRegistry(), Envelope{Type: "pdf", Payload: "SwiftBook"})
	require.ErrorIs(t, err, ErrUnregisteredType)

	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, UnregisteredType, ee.Kind)
	assert.Equal(t, "pdf", ee.Type)
}

func TestRegistry_EncodeMismatchedPayload(t *testing.T) {
	env := Envelope{Type: "image", Payload: AudioAttachment{Title: "t", URL: "http://x"}}

	_, err := encodeEnvelope(DefaultRegistry(), env)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestRegistry_EncodeEmptyType(t *testing.T) {
	_, err := encodeEnvelope(DefaultRegistry(), Envelope{Payload: ImageAttachment{}})
	require.ErrorIs(t, err, ErrInvalidValue)
}

type pdfAttachment struct {
	Title string
}

func TestRegistry_Overwrite(t *testing.T) {
	first := PayloadType[pdfAttachment]{
		Decode: func(r *ObjectReader) (pdfAttachment, error) {
			return pdfAttachment{Title: "first"}, nil
		},
		Encode: func(v pdfAttachment, w *ObjectWriter) error {
			w.SetString("by", "first")
			return nil
		},
	}
	second := PayloadType[pdfAttachment]{
		Decode: func(r *ObjectReader) (pdfAttachment, error) {
			title, err := r.String("title")
			return pdfAttachment{Title: title}, err
		},
		Encode: func(v pdfAttachment, w *ObjectWriter) error {
			w.SetString("title", v.Title)
			return nil
		},
	}

	r := NewRegistry()
	Register(r, first, "pdf")
	Register(r, second, "pdf")

	env, err := decodeEnvelope(t, r, `{"type": "pdf", "payload": {"title": "The Swift Programming Language"}}`)
	require.NoError(t, err)
	assert.Equal(t, pdfAttachment{Title: "The Swift Programming Language"}, env.Payload)

	tree, err := encodeEnvelope(r, env)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "The Swift Programming Language"}, tree["payload"])
}

func TestRegistry_OverwriteWithDifferentType(t *testing.T) {
	r := DefaultRegistry()
	Register(r, AudioType, "image")

	env, err := decodeEnvelope(t, r, `{"type": "image", "payload": {"title": "t", "url": "http://x", "shouldAutoplay": false}}`)
	require.NoError(t, err)
	assert.Equal(t, AudioAttachment{Title: "t", URL: "http://x"}, env.Payload)

	_, err = encodeEnvelope(r, Envelope{Type: "image", Payload: ImageAttachment{URL: "http://x"}})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestRegistry_Types(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Types())

	Register(Register(r, AudioType, "audio"), ImageType, "image")
	Register(r, ImageType, "picture")

	assert.Equal(t, []string{"audio", "image", "picture"}, r.Types())
	assert.True(t, r.Registered("picture"))
	assert.False(t, r.Registered("pdf"))
}
