// Package querymap provides QueryMap, a read-only multi-valued map keyed by
// strings.
//
// QueryMap normalizes data sources that collapse single values to scalars
// (HTTP query strings, JSON/YAML/MessagePack payloads, API gateway event
// parameters) into one representation where every key maps to an ordered,
// non-empty list of values.
//
// # Construction
//
// From a Go map:
//
//	m := querymap.New(map[string][]string{"foo": {"bar"}})
//	v, _ := m.First("foo") // "bar"
//
// From a query string:
//
//	m, err := querymap.Parse("foo=bar&baz=quux&foo=qux")
//	vs, _ := m.All("foo") // [bar qux]
//
// From JSON, where a member may be a single value or an array:
//
//	var req struct {
//	    Data querymap.QueryMap[string] `json:"data"`
//	}
//	_ = json.Unmarshal([]byte(`{"data":{"foo":"bar","baz":["a","b"]}}`), &req)
//
// The same one-or-many rule applies to YAML (gopkg.in/yaml.v3) and
// MessagePack (github.com/tinylib/msgp). Custom formats plug in through
// MapSource and Decode.
//
// # Reading
//
//	m.First(key)   // first value
//	m.All(key)     // copy of all values
//	m.Values(key)  // iter.Seq over the values, no allocation
//	m.Pairs()      // iter.Seq2 over flattened (key, value) pairs
//	m.Iter()       // explicit cursor over the same pairs
//
// Keys are visited in ascending order. A QueryMap is never modified after
// construction; copies share the underlying data and are safe to read from
// multiple goroutines.
//
// # Encoding
//
// MarshalJSON, MarshalYAML and EncodeMsg always write lists, so a decoded map
// round-trips without loss. The apigateway subpackage implements the
// comma-joined convention of AWS API Gateway instead.
package querymap
