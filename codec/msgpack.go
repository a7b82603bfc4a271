package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// ErrUnsupportedType is returned by MsgPack for values that do not implement
// the msgp streaming interfaces.
var ErrUnsupportedType = errors.New("codec: type does not support msgpack")

// MsgPack is a MessagePack codec backed by github.com/tinylib/msgp.
//
// Marshal requires a msgp.Encodable and Unmarshal a msgp.Decodable, which
// QueryMap and *QueryMap are.
type MsgPack struct{}

// Marshal encodes the value to MessagePack.
func (MsgPack) Marshal(v any) ([]byte, error) {
	e, ok := v.(msgp.Encodable)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	var buf bytes.Buffer
	if err := msgp.Encode(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the MessagePack data into v.
func (MsgPack) Unmarshal(data []byte, v any) error {
	d, ok := v.(msgp.Decodable)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	return msgp.Decode(bytes.NewReader(data), d)
}

// Name returns the unique name of the codec ("msgpack").
func (MsgPack) Name() string { return "msgpack" }
