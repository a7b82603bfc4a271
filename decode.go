package querymap

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"
)

// Shape is the structural kind of an encoded value, as seen by the source
// before decoding it into a Go type.
type Shape uint8

const (
	// ShapeNull is an explicit null / nil.
	ShapeNull Shape = iota
	// ShapeScalar is a string, number, boolean or binary value.
	ShapeScalar
	// ShapeList is an array / sequence.
	ShapeList
	// ShapeMap is an object / mapping.
	ShapeMap
)

func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeScalar:
		return "scalar"
	case ShapeList:
		return "list"
	case ShapeMap:
		return "map"
	default:
		return "unknown"
	}
}

// ValueSource is one encoded value of a MapSource entry.
//
// Decode may be called more than once on the same value; implementations
// backed by a stream buffer the value on first use.
type ValueSource interface {
	Shape() Shape
	Decode(dst any) error
}

// MapSource yields the entries of a structured map one at a time.
//
// Next returns io.EOF once all entries have been consumed. A value returned
// by Next is only valid until the following call to Next.
type MapSource interface {
	Next() (key string, value ValueSource, err error)
}

// namedSource is implemented by the built-in sources to label logs and metrics.
type namedSource interface {
	Name() string
}

func sourceName(src MapSource) string {
	if n, ok := src.(namedSource); ok {
		return n.Name()
	}
	return "custom"
}

// Decode builds a QueryMap from a structured source.
//
// Every value may be either a single V or a list of V. The scalar
// interpretation is tried first; the list interpretation only when the scalar
// one fails on a list-shaped value. A scalar v becomes [v] (or the output of
// the splitter registered with WithScalarSplitter). An empty list leaves the
// key absent. So does a null value, unless V is a pointer, interface, map or
// slice type, where null is kept as a value. For any other V a null list
// element is an ErrElement.
//
// Duplicate keys overwrite earlier ones unless WithDuplicates says otherwise.
// Any failing entry aborts the decode; no partial map is returned.
func Decode[V any](src MapSource, opts ...Option) (QueryMap[V], error) {
	o := newOptions(OverwriteDuplicates, opts)
	name := sourceName(src)
	start := time.Now()

	values, err := decodeEntries[V](src, o)

	o.metricsCollector.RecordDecode(name, len(values), time.Since(start), err)
	o.logger.LogDecode(name, len(values), err)

	if err != nil {
		return QueryMap[V]{}, err
	}
	return wrap(values), nil
}

func decodeEntries[V any](src MapSource, o *options) (map[string][]V, error) {
	split, err := splitterFor[V](o)
	if err != nil {
		return nil, err
	}

	values := make(map[string][]V)
	for {
		key, val, err := src.Next()
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			if key != "" {
				return nil, &DecodeError{Key: key, cause: err}
			}
			return nil, err
		}

		vs, err := decodeOneOrMany(val, split)
		if err != nil {
			return nil, &DecodeError{Key: key, cause: err}
		}

		switch {
		case o.duplicates == AppendDuplicates:
			if len(vs) > 0 {
				values[key] = append(values[key], vs...)
			}
		case len(vs) == 0:
			delete(values, key)
		default:
			values[key] = vs
		}
	}
}

// decodeOneOrMany normalizes one encoded value into a list of V.
func decodeOneOrMany[V any](val ValueSource, split func(V) []V) ([]V, error) {
	shape := val.Shape()
	nillable := isNillable[V]()
	if shape == ShapeNull && !nillable {
		return nil, nil
	}

	var one V
	errOne := val.Decode(&one)
	if errOne == nil {
		if split != nil {
			return split(one), nil
		}
		return []V{one}, nil
	}

	switch shape {
	case ShapeList:
		if nillable {
			var many []V
			if err := val.Decode(&many); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrElement, err)
			}
			return many, nil
		}
		return decodeStrictList[V](val)
	case ShapeScalar, ShapeNull:
		return nil, fmt.Errorf("%w: %w", ErrElement, errOne)
	default:
		return nil, fmt.Errorf("%w: got %s: %w", ErrShape, shape, errOne)
	}
}

// decodeStrictList decodes a list whose elements must not be null.
func decodeStrictList[V any](val ValueSource) ([]V, error) {
	var ptrs []*V
	if err := val.Decode(&ptrs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrElement, err)
	}
	many := make([]V, len(ptrs))
	for i, p := range ptrs {
		if p == nil {
			return nil, fmt.Errorf("%w: index %d is null", ErrElement, i)
		}
		many[i] = *p
	}
	return many, nil
}

// isNillable reports whether null is a meaningful value of V.
func isNillable[V any]() bool {
	switch reflect.TypeFor[V]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}
