package querymap

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// jsonSource streams the members of a JSON object.
type jsonSource struct {
	dec     *json.Decoder
	started bool
	done    bool
}

// NewJSONSource returns a MapSource reading one JSON object from r.
// A top-level null yields no entries.
func NewJSONSource(r io.Reader) MapSource {
	return &jsonSource{dec: json.NewDecoder(r)}
}

func (s *jsonSource) Name() string { return "json" }

func (s *jsonSource) Next() (string, ValueSource, error) {
	if s.done {
		return "", nil, io.EOF
	}

	if !s.started {
		s.started = true
		tok, err := s.dec.Token()
		if err != nil {
			return "", nil, jsonSyntaxError(err)
		}
		if tok == nil {
			s.done = true
			return "", nil, io.EOF
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return "", nil, syntaxError("expected JSON object, got %v", tok)
		}
	}

	if !s.dec.More() {
		// Consume the closing '}'.
		if _, err := s.dec.Token(); err != nil {
			return "", nil, jsonSyntaxError(err)
		}
		s.done = true
		return "", nil, io.EOF
	}

	tok, err := s.dec.Token()
	if err != nil {
		return "", nil, jsonSyntaxError(err)
	}
	key, ok := tok.(string)
	if !ok {
		return "", nil, syntaxError("expected JSON object key, got %v", tok)
	}

	var raw json.RawMessage
	if err := s.dec.Decode(&raw); err != nil {
		return key, nil, jsonSyntaxError(err)
	}

	return key, jsonValue(raw), nil
}

func jsonSyntaxError(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return syntaxError("%v", err)
}

// jsonValue is one buffered JSON value.
type jsonValue []byte

func (v jsonValue) Shape() Shape {
	trimmed := bytes.TrimLeft(v, " \t\r\n")
	if len(trimmed) == 0 {
		return ShapeNull
	}
	switch trimmed[0] {
	case 'n':
		return ShapeNull
	case '[':
		return ShapeList
	case '{':
		return ShapeMap
	default:
		return ShapeScalar
	}
}

func (v jsonValue) Decode(dst any) error {
	return json.Unmarshal(v, dst)
}

func isJSONNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// MarshalJSON implements json.Marshaler.
//
// Every key is encoded as a list, even when the source presented a scalar.
func (m QueryMap[V]) MarshalJSON() ([]byte, error) {
	if m.s == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.s.values)
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Each member may hold a single value or an array of values. A JSON null
// leaves the map unchanged.
func (m *QueryMap[V]) UnmarshalJSON(data []byte) error {
	if isJSONNull(data) {
		return nil
	}
	qm, err := Decode[V](NewJSONSource(bytes.NewReader(data)))
	if err != nil {
		return err
	}
	*m = qm
	return nil
}
