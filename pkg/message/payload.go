package message

// PayloadType describes how one concrete payload shape is read from and
// written to a payload object. It is the unit registered with a Registry.
type PayloadType[T any] struct {
	Decode func(r *ObjectReader) (T, error)
	Encode func(v T, w *ObjectWriter) error
}

type ImageAttachment struct {
	URL    string
	Width  int
	Height int
}

type AudioAttachment struct {
	Title          string
	URL            string
	ShouldAutoplay bool
}

var (
	ImageType = PayloadType[ImageAttachment]{Decode: decodeImage, Encode: encodeImage}
	AudioType = PayloadType[AudioAttachment]{Decode: decodeAudio, Encode: encodeAudio}
)

func decodeImage(r *ObjectReader) (ImageAttachment, error) {
	var (
		img ImageAttachment
		err error
	)

	if img.URL, err = r.URL("url"); err != nil {
		return ImageAttachment{}, err
	}

	if img.Width, err = r.Int("width"); err != nil {
		return ImageAttachment{}, err
	}

	if img.Height, err = r.Int("height"); err != nil {
		return ImageAttachment{}, err
	}

	return img, nil
}

func encodeImage(img ImageAttachment, w *ObjectWriter) error {
	w.SetString("url", img.URL)
	w.SetInt("width", img.Width)
	w.SetInt("height", img.Height)
	return nil
}

func decodeAudio(r *ObjectReader) (AudioAttachment, error) {
	var (
		audio AudioAttachment
		err   error
	)

	if audio.Title, err = r.String("title"); err != nil {
		return AudioAttachment{}, err
	}

	if audio.URL, err = r.URL("url"); err != nil {
		return AudioAttachment{}, err
	}

	if audio.ShouldAutoplay, err = r.Bool("shouldAutoplay"); err != nil {
		return AudioAttachment{}, err
	}

	return audio, nil
}

func encodeAudio(audio AudioAttachment, w *ObjectWriter) error {
	w.SetString("title", audio.Title)
	w.SetString("url", audio.URL)
	w.SetBool("shouldAutoplay", audio.ShouldAutoplay)
	return nil
}
