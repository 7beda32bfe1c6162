package message

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	wantImage = ImageAttachment{URL: "http://via.placeholder.com/640x480", Width: 640, Height: 480}
	wantAudio = AudioAttachment{
		Title:          "Never Gonna Give You Up",
		URL:            "https://contoso.com/media/NeverGonnaGiveYouUp.mp3",
		ShouldAutoplay: true,
	}
)

func readFixture(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile("testdata/message.json")
	require.NoError(t, err)
	return data
}

func TestUnpack_Registry(t *testing.T) {
	r := DefaultRegistry()

	msg, err := Unpack[Envelope](r, readFixture(t))
	require.NoError(t, err)

	assert.Equal(t, "Guille", msg.From)
	assert.Equal(t, "Look what I just found!", msg.Text)
	require.Len(t, msg.Attachments, 3)
	assert.Equal(t, Envelope{Type: "image", Payload: wantImage}, msg.Attachments[0])
	assert.Equal(t, Envelope{Type: "audio", Payload: wantAudio}, msg.Attachments[1])
	assert.Equal(t, Envelope{Type: "pdf"}, msg.Attachments[2])

	data, err := Pack[Envelope](r, msg)
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal(data, &tree))
	pdf := tree["attachments"].([]any)[2].(map[string]any)
	assert.Equal(t, "pdf", pdf["type"])
	assert.Contains(t, pdf, "payload")
	assert.Nil(t, pdf["payload"])

	again, err := Unpack[Envelope](r, data)
	require.NoError(t, err)
	assert.Equal(t, msg, again)
}

func TestUnpack_Variant(t *testing.T) {
	var c VariantCodec

	msg, err := Unpack[Attachment](c, readFixture(t))
	require.NoError(t, err)

	require.Len(t, msg.Attachments, 3)
	assert.Equal(t, wantImage, msg.Attachments[0])
	assert.Equal(t, wantAudio, msg.Attachments[1])
	assert.Equal(t, Unsupported{}, msg.Attachments[2])

	_, err = Pack[Attachment](c, msg)
	assert.ErrorIs(t, err, ErrInvalidValue)

	known := &Message[Attachment]{From: msg.From, Text: msg.Text, Attachments: msg.Attachments[:2]}
	data, err := Pack[Attachment](c, known)
	require.NoError(t, err)

	again, err := Unpack[Attachment](c, data)
	require.NoError(t, err)
	assert.Equal(t, known, again)
}

func TestDecodeMessage_FailsWholeMessage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "attachment without type",
			input: `{"from": "a", "text": "b", "attachments": [{"type": "image", "payload": {"url": "http://x", "width": 1, "height": 1}}, {"payload": {}}]}`,
			want:  ErrMissingField,
		},
		{
			name:  "known attachment without payload",
			input: `{"from": "a", "text": "b", "attachments": [{"type": "audio"}]}`,
			want:  ErrMissingField,
		},
		{
			name:  "attachment not an object",
			input: `{"from": "a", "text": "b", "attachments": ["image"]}`,
			want:  ErrWrongType,
		},
		{name: "missing from", input: `{"text": "b", "attachments": []}`, want: ErrMissingField},
		{name: "missing text", input: `{"from": "a", "attachments": []}`, want: ErrMissingField},
		{name: "missing attachments", input: `{"from": "a", "text": "b"}`, want: ErrMissingField},
		{name: "attachments not array", input: `{"from": "a", "text": "b", "attachments": {}}`, want: ErrWrongType},
		{name: "from not string", input: `{"from": 1, "text": "b", "attachments": []}`, want: ErrWrongType},
		{name: "not an object", input: `[]`, want: ErrWrongType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			require.NoError(t, err)

			regMsg, err := DecodeMessage[Envelope](DefaultRegistry(), v)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, regMsg)

			varMsg, err := DecodeMessage[Attachment](VariantCodec{}, v)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, varMsg)
		})
	}
}

func TestEncodeMessage_EmptyAttachments(t *testing.T) {
	tree, err := EncodeMessage[Envelope](DefaultRegistry(), &Message[Envelope]{From: "a", Text: "b"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"from": "a", "text": "b", "attachments": []any{}}, tree)
}

func TestEncodeMessage_AbortsOnFirstError(t *testing.T) {
	msg := &Message[Envelope]{
		From: "a",
		Text: "b",
		Attachments: []Envelope{
			{Type: "image", Payload: wantImage},
			{Type: "pdf", Payload: "SwiftBook"},
			{Type: "audio", Payload: wantAudio},
		},
	}

	tree, err := EncodeMessage[Envelope](DefaultRegistry(), msg)
	assert.ErrorIs(t, err, ErrUnregisteredType)
	assert.Nil(t, tree)
	assert.Contains(t, err.Error(), "attachments[1]")
}
