package message

import (
	"fmt"
	"sort"
)

const (
	typeKey    = "type"
	payloadKey = "payload"
)

// Envelope is an attachment decoded by a Registry. Payload holds the value
// produced by the decoder registered for Type, or nil when Type had no
// decoder or the wire payload was null.
type Envelope struct {
	Type    string
	Payload any
}

type (
	decodeFunc func(r *ObjectReader) (any, error)
	encodeFunc func(payload any, w *ObjectWriter) error
)

// Registry maps discriminants to payload decoders and encoders.
//
// A Registry is not safe for concurrent mutation. Finish all Register calls
// before sharing it; after that Decode and Encode may run from any number of
// goroutines.
type Registry struct {
	decoders map[string]decodeFunc
	encoders map[string]encodeFunc
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]decodeFunc),
		encoders: make(map[string]encodeFunc),
	}
}

// DefaultRegistry returns a new registry with "image" and "audio" installed.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	Register(r, ImageType, "image")
	Register(r, AudioType, "audio")
	return r
}

// Register installs t under discriminant, replacing any earlier registration
// for the same discriminant. It returns r so calls can be chained.
func Register[T any](r *Registry, t PayloadType[T], discriminant string) *Registry {
	r.decoders[discriminant] = func(pr *ObjectReader) (any, error) {
		v, err := t.Decode(pr)
		if err != nil {
			return nil, err
		}
		return v, nil
	}

	r.encoders[discriminant] = func(payload any, w *ObjectWriter) error {
		v, ok := payload.(T)
		if !ok {
			return &EncodeError{
				Kind:   InvalidValue,
				Type:   discriminant,
				Path:   w.Path(),
				Reason: fmt.Sprintf("payload of type %T does not match registered type %T", payload, *new(T)),
			}
		}
		return t.Encode(v, w.Object(payloadKey))
	}

	return r
}

// Types lists the registered discriminants in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.decoders))
	for t := range r.decoders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (r *Registry) Registered(discriminant string) bool {
	_, ok := r.decoders[discriminant]
	return ok
}

// Decode reads one envelope. Unknown discriminants are not an error: the
// envelope is returned with a nil payload and the wire payload is ignored.
func (r *Registry) Decode(or *ObjectReader) (Envelope, error) {
	typ, err := readDiscriminant(or)
	if err != nil {
		return Envelope{}, err
	}

	decode, ok := r.decoders[typ]
	if !ok {
		return Envelope{Type: typ}, nil
	}

	pr, err := or.Object(payloadKey)
	if err != nil {
		return Envelope{}, err
	}

	payload, err := decode(pr)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{Type: typ, Payload: payload}, nil
}

// Encode writes env. A nil payload is written as an explicit null; a
// non-nil payload requires an encoder registered for env.Type.
func (r *Registry) Encode(env Envelope, w *ObjectWriter) error {
	if env.Type == "" {
		return &EncodeError{Kind: InvalidValue, Path: w.Path(), Reason: "empty attachment type"}
	}

	w.SetString(typeKey, env.Type)

	if env.Payload == nil {
		w.SetNull(payloadKey)
		return nil
	}

	encode, ok := r.encoders[env.Type]
	if !ok {
		return &EncodeError{Kind: UnregisteredType, Type: env.Type, Path: w.Path()}
	}

	return encode(env.Payload, w)
}

func readDiscriminant(r *ObjectReader) (string, error) {
	typ, err := r.String(typeKey)
	if err != nil {
		return "", err
	}

	if typ == "" {
		return "", &DecodeError{Kind: MissingField, Path: joinPath(r.Path(), typeKey)}
	}

	return typ, nil
}
