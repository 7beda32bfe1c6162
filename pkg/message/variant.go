package message

// Attachment is the closed set of attachment shapes: ImageAttachment,
// AudioAttachment and Unsupported. Adding a shape means adding a case to
// VariantCodec.
type Attachment interface {
	isAttachment()
}

// Unsupported stands for an attachment whose type is not known. It decodes
// but can never be encoded.
type Unsupported struct{}

func (ImageAttachment) isAttachment() {}
func (AudioAttachment) isAttachment() {}
func (Unsupported) isAttachment()     {}

// VariantCodec reads and writes attachments as the closed Attachment set.
type VariantCodec struct{}

func (VariantCodec) Decode(r *ObjectReader) (Attachment, error) {
	typ, err := readDiscriminant(r)
	if err != nil {
		return nil, err
	}

	switch typ {
	case "image":
		return decodeVariant(r, ImageType)
	case "audio":
		return decodeVariant(r, AudioType)
	default:
		return Unsupported{}, nil
	}
}

func (VariantCodec) Encode(a Attachment, w *ObjectWriter) error {
	switch v := a.(type) {
	case ImageAttachment:
		w.SetString(typeKey, "image")
		return ImageType.Encode(v, w.Object(payloadKey))
	case AudioAttachment:
		w.SetString(typeKey, "audio")
		return AudioType.Encode(v, w.Object(payloadKey))
	case Unsupported:
		return &EncodeError{Kind: InvalidValue, Path: w.Path(), Reason: "unsupported attachment"}
	default:
		return &EncodeError{Kind: InvalidValue, Path: w.Path(), Reason: "nil attachment"}
	}
}

// Types lists the discriminants VariantCodec decodes to a typed attachment.
func (VariantCodec) Types() []string {
	return []string{"audio", "image"}
}

func decodeVariant[T Attachment](r *ObjectReader, t PayloadType[T]) (Attachment, error) {
	pr, err := r.Object(payloadKey)
	if err != nil {
		return nil, err
	}

	v, err := t.Decode(pr)
	if err != nil {
		return nil, err
	}

	return v, nil
}
