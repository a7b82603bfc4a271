package querymap

import (
	"encoding"
	"fmt"
	"io"
	"reflect"

	"github.com/tinylib/msgp/msgp"
)

// msgpSource streams the entries of a MessagePack map.
type msgpSource struct {
	r         *msgp.Reader
	remaining uint32
	pending   *msgpValue
}

// NewMsgPackSource reads a MessagePack map header from r and returns a
// MapSource over its entries. A nil value yields no entries.
func NewMsgPackSource(r *msgp.Reader) (MapSource, error) {
	if r.IsNil() {
		if err := r.ReadNil(); err != nil {
			return nil, syntaxError("%v", err)
		}
		return &msgpSource{r: r}, nil
	}
	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, syntaxError("%v", err)
	}
	return &msgpSource{r: r, remaining: n}, nil
}

func (s *msgpSource) Name() string { return "msgpack" }

func (s *msgpSource) Next() (string, ValueSource, error) {
	// The previous value must be off the wire before the next key.
	if s.pending != nil && !s.pending.loaded {
		if err := s.r.Skip(); err != nil {
			return "", nil, syntaxError("%v", err)
		}
	}
	s.pending = nil

	if s.remaining == 0 {
		return "", nil, io.EOF
	}
	s.remaining--

	key, err := s.r.ReadString()
	if err != nil {
		return "", nil, syntaxError("map key: %v", err)
	}
	t, err := s.r.NextType()
	if err != nil {
		return key, nil, syntaxError("%v", err)
	}

	s.pending = &msgpValue{r: s.r, typ: t}
	return key, s.pending, nil
}

// msgpValue reads its payload lazily, once, and keeps it for repeated
// Decode attempts.
type msgpValue struct {
	r      *msgp.Reader
	typ    msgp.Type
	loaded bool
	raw    any
	err    error
}

func (v *msgpValue) Shape() Shape {
	switch v.typ {
	case msgp.NilType:
		return ShapeNull
	case msgp.ArrayType:
		return ShapeList
	case msgp.MapType:
		return ShapeMap
	default:
		return ShapeScalar
	}
}

func (v *msgpValue) Decode(dst any) error {
	if !v.loaded {
		v.loaded = true
		v.raw, v.err = v.r.ReadIntf()
		if v.err != nil {
			v.err = syntaxError("%v", v.err)
		}
	}
	if v.err != nil {
		return v.err
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", dst)
	}
	return assign(rv.Elem(), v.raw)
}

// assign stores a value produced by msgp.Reader.ReadIntf into dst.
func assign(dst reflect.Value, raw any) error {
	if raw == nil {
		dst.SetZero()
		return nil
	}

	if dst.Kind() == reflect.Interface && dst.NumMethod() == 0 {
		dst.Set(reflect.ValueOf(raw))
		return nil
	}

	if dst.Kind() == reflect.Pointer {
		p := reflect.New(dst.Type().Elem())
		if err := assign(p.Elem(), raw); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	}

	src := reflect.ValueOf(raw)

	if s, ok := raw.(string); ok && dst.CanAddr() {
		if u, ok := dst.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(s))
		}
	}

	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}

	switch {
	case isInt(dst.Kind()) && isInt(src.Kind()):
		n := src.Int()
		if dst.OverflowInt(n) {
			return fmt.Errorf("msgpack integer %d overflows %s", n, dst.Type())
		}
		dst.SetInt(n)
		return nil
	case isInt(dst.Kind()) && isUint(src.Kind()):
		n := src.Uint()
		if n > 1<<63-1 || dst.OverflowInt(int64(n)) {
			return fmt.Errorf("msgpack integer %d overflows %s", n, dst.Type())
		}
		dst.SetInt(int64(n))
		return nil
	case isUint(dst.Kind()) && isUint(src.Kind()):
		n := src.Uint()
		if dst.OverflowUint(n) {
			return fmt.Errorf("msgpack integer %d overflows %s", n, dst.Type())
		}
		dst.SetUint(n)
		return nil
	case isUint(dst.Kind()) && isInt(src.Kind()):
		n := src.Int()
		if n < 0 || dst.OverflowUint(uint64(n)) {
			return fmt.Errorf("msgpack integer %d overflows %s", n, dst.Type())
		}
		dst.SetUint(uint64(n))
		return nil
	case isFloat(dst.Kind()) && isFloat(src.Kind()):
		dst.SetFloat(src.Float())
		return nil
	case dst.Kind() == reflect.String && src.Kind() == reflect.Slice && src.Type().Elem().Kind() == reflect.Uint8:
		dst.SetString(string(src.Bytes()))
		return nil
	case dst.Kind() == reflect.Slice && src.Kind() == reflect.Slice:
		out := reflect.MakeSlice(dst.Type(), src.Len(), src.Len())
		for i := range src.Len() {
			if err := assign(out.Index(i), src.Index(i).Interface()); err != nil {
				return fmt.Errorf("index %d: %w", i, err)
			}
		}
		dst.Set(out)
		return nil
	}

	return fmt.Errorf("cannot decode msgpack %T into %s", raw, dst.Type())
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// EncodeMsg implements msgp.Encodable. Every key is written as an array.
func (m QueryMap[V]) EncodeMsg(en *msgp.Writer) error {
	if err := en.WriteMapHeader(uint32(m.Len())); err != nil {
		return err
	}
	if m.s == nil {
		return nil
	}
	for _, k := range m.s.keys {
		vs := m.s.values[k]
		if err := en.WriteString(k); err != nil {
			return err
		}
		if err := en.WriteArrayHeader(uint32(len(vs))); err != nil {
			return err
		}
		for _, v := range vs {
			if err := en.WriteIntf(v); err != nil {
				return fmt.Errorf("querymap: key %q: %w", k, err)
			}
		}
	}
	return nil
}

// DecodeMsg implements msgp.Decodable.
//
// Each map value may be a single value or an array of values.
func (m *QueryMap[V]) DecodeMsg(dc *msgp.Reader) error {
	src, err := NewMsgPackSource(dc)
	if err != nil {
		return err
	}
	qm, err := Decode[V](src)
	if err != nil {
		return err
	}
	*m = qm
	return nil
}
