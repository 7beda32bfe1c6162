package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/tailscale/hujson"
)

// integers above this lose precision as float64
const maxExactFloat = 1 << 53

// Parse converts JSON text into a generic tree of nil, bool, json.Number,
// string, []any and map[string]any. Comments and trailing commas are accepted.
func Parse(data []byte) (any, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if dec.More() {
		return nil, errors.New("unexpected data after top-level value")
	}

	return v, nil
}

// ObjectReader gives typed, path-aware access to the fields of one JSON object.
type ObjectReader struct {
	path   string
	fields map[string]any
}

func NewObjectReader(v any) (*ObjectReader, error) {
	return readObject("", v)
}

func readObject(path string, v any) (*ObjectReader, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &DecodeError{Kind: WrongType, Path: path, Expected: "object", Got: kindOf(v)}
	}

	return &ObjectReader{path: path, fields: m}, nil
}

func (r *ObjectReader) Path() string {
	return r.path
}

func (r *ObjectReader) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// IsNull reports whether key is present with a JSON null value.
func (r *ObjectReader) IsNull(key string) bool {
	v, ok := r.fields[key]
	return ok && v == nil
}

func (r *ObjectReader) value(key string) (any, error) {
	v, ok := r.fields[key]
	if !ok {
		return nil, &DecodeError{Kind: MissingField, Path: joinPath(r.path, key)}
	}
	return v, nil
}

func (r *ObjectReader) wrongType(key, expected string, got any) error {
	return &DecodeError{Kind: WrongType, Path: joinPath(r.path, key), Expected: expected, Got: kindOf(got)}
}

func (r *ObjectReader) String(key string) (string, error) {
	v, err := r.value(key)
	if err != nil {
		return "", err
	}

	s, ok := v.(string)
	if !ok {
		return "", r.wrongType(key, "string", v)
	}

	return s, nil
}

func (r *ObjectReader) Bool(key string) (bool, error) {
	v, err := r.value(key)
	if err != nil {
		return false, err
	}

	b, ok := v.(bool)
	if !ok {
		return false, r.wrongType(key, "boolean", v)
	}

	return b, nil
}

func (r *ObjectReader) Int(key string) (int, error) {
	v, err := r.value(key)
	if err != nil {
		return 0, err
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 0); err == nil {
			return int(i), nil
		}
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) <= maxExactFloat {
			return int(f), nil
		}
	case float64:
		if n == math.Trunc(n) && math.Abs(n) <= maxExactFloat {
			return int(n), nil
		}
	}

	return 0, r.wrongType(key, "integer", v)
}

// URL reads a non-empty string that parses as a URL reference.
func (r *ObjectReader) URL(key string) (string, error) {
	s, err := r.String(key)
	if err != nil {
		return "", err
	}

	if s == "" {
		return "", &DecodeError{Kind: WrongType, Path: joinPath(r.path, key), Expected: "URL", Got: "empty string"}
	}

	if _, err := url.Parse(s); err != nil {
		return "", &DecodeError{Kind: WrongType, Path: joinPath(r.path, key), Expected: "URL", Got: strconv.Quote(s)}
	}

	return s, nil
}

func (r *ObjectReader) Object(key string) (*ObjectReader, error) {
	v, err := r.value(key)
	if err != nil {
		return nil, err
	}

	return readObject(joinPath(r.path, key), v)
}

func (r *ObjectReader) Array(key string) (*ArrayReader, error) {
	v, err := r.value(key)
	if err != nil {
		return nil, err
	}

	items, ok := v.([]any)
	if !ok {
		return nil, r.wrongType(key, "array", v)
	}

	return &ArrayReader{path: joinPath(r.path, key), items: items}, nil
}

type ArrayReader struct {
	path  string
	items []any
}

func (a *ArrayReader) Len() int {
	return len(a.items)
}

func (a *ArrayReader) Object(i int) (*ObjectReader, error) {
	return readObject(indexPath(a.path, i), a.items[i])
}

// ObjectWriter builds one JSON object as a map[string]any.
type ObjectWriter struct {
	path   string
	fields map[string]any
}

func NewObjectWriter() *ObjectWriter {
	return &ObjectWriter{fields: make(map[string]any)}
}

func (w *ObjectWriter) Path() string {
	return w.path
}

func (w *ObjectWriter) SetString(key, v string) {
	w.fields[key] = v
}

func (w *ObjectWriter) SetInt(key string, v int) {
	w.fields[key] = v
}

func (w *ObjectWriter) SetBool(key string, v bool) {
	w.fields[key] = v
}

func (w *ObjectWriter) SetNull(key string) {
	w.fields[key] = nil
}

// Object replaces key with a new empty object and returns its writer.
func (w *ObjectWriter) Object(key string) *ObjectWriter {
	child := &ObjectWriter{path: joinPath(w.path, key), fields: make(map[string]any)}
	w.fields[key] = child.fields
	return child
}

// Array replaces key with a new empty array and returns its writer.
func (w *ObjectWriter) Array(key string) *ArrayWriter {
	a := &ArrayWriter{parent: w, key: key, path: joinPath(w.path, key), items: []any{}}
	w.fields[key] = a.items
	return a
}

// Value returns the object built so far.
func (w *ObjectWriter) Value() map[string]any {
	return w.fields
}

// ArrayWriter appends JSON objects to an array field of its parent object.
type ArrayWriter struct {
	parent *ObjectWriter
	key    string
	path   string
	items  []any
}

func (a *ArrayWriter) AppendObject() *ObjectWriter {
	child := &ObjectWriter{path: indexPath(a.path, len(a.items)), fields: make(map[string]any)}
	a.items = append(a.items, child.fields)
	a.parent.fields[a.key] = a.items
	return child
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case json.Number, float64, float32, int, int64, int32:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
