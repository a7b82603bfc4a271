// Package apigateway decodes the parameter maps of AWS API Gateway v2
// (HTTP API) events.
//
// API Gateway joins repeated query parameters with commas
// ("tag=a&tag=b" arrives as "tag": "a,b"). Parameters splits such scalars
// back into separate values when decoding and joins them again when
// encoding.
//
// A value that itself contains a comma cannot survive the round trip: it is
// split on decode and there is no escaping scheme to tell the two apart.
package apigateway

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/tinylib/msgp/msgp"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/querymap"
)

// Separator joins multiple values of one parameter.
const Separator = ","

// Parameters is a QueryMap[string] that follows the comma-joined convention.
//
// A JSON null decodes into an empty Parameters. Use *Parameters for fields
// where null or a missing member must stay distinguishable (nil).
type Parameters struct {
	querymap.QueryMap[string]
}

// NewParameters wraps an existing map.
func NewParameters(m querymap.QueryMap[string]) Parameters {
	return Parameters{QueryMap: m}
}

// SplitValues splits a comma-joined scalar into its values.
func SplitValues(s string) []string {
	return strings.Split(s, Separator)
}

// Decode builds Parameters from any structured source, splitting scalar
// strings on commas. Lists are kept as-is; repeated keys overwrite.
func Decode(src querymap.MapSource, opts ...querymap.Option) (Parameters, error) {
	opts = append(slices.Clip(opts), querymap.WithScalarSplitter(SplitValues))
	m, err := querymap.Decode[string](src, opts...)
	if err != nil {
		return Parameters{}, err
	}
	return Parameters{QueryMap: m}, nil
}

// Joined returns every key with its values joined by commas.
func (p Parameters) Joined() map[string]string {
	out := make(map[string]string, p.Len())
	for k := range p.Keys() {
		vs, _ := p.All(k)
		out[k] = strings.Join(vs, Separator)
	}
	return out
}

// Get returns the comma-joined values of key, or "" if absent.
func (p Parameters) Get(key string) string {
	vs, ok := p.All(key)
	if !ok {
		return ""
	}
	return strings.Join(vs, Separator)
}

// MarshalJSON encodes every key as one comma-joined string.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Joined())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Parameters) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(querymap.NewJSONSource(bytes.NewReader(data)))
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// MarshalYAML encodes every key as one comma-joined string.
func (p Parameters) MarshalYAML() (any, error) {
	return p.Joined(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Parameters) UnmarshalYAML(node *yaml.Node) error {
	src, err := querymap.NewYAMLSource(node)
	if err != nil {
		return err
	}
	decoded, err := Decode(src)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// EncodeMsg implements msgp.Encodable.
func (p Parameters) EncodeMsg(en *msgp.Writer) error {
	joined := p.Joined()
	if err := en.WriteMapHeader(uint32(len(joined))); err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(joined)) {
		if err := en.WriteString(k); err != nil {
			return err
		}
		if err := en.WriteString(joined[k]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsg implements msgp.Decodable.
func (p *Parameters) DecodeMsg(dc *msgp.Reader) error {
	src, err := querymap.NewMsgPackSource(dc)
	if err != nil {
		return err
	}
	decoded, err := Decode(src)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
