package querymap

import (
	"io"

	"gopkg.in/yaml.v3"
)

const yamlNullTag = "!!null"

// yamlSource walks the key/value pairs of a YAML mapping node.
type yamlSource struct {
	content []*yaml.Node
	pos     int
}

// NewYAMLSource returns a MapSource over a YAML mapping node. Document and
// alias nodes are resolved; a null node yields no entries.
func NewYAMLSource(node *yaml.Node) (MapSource, error) {
	node = resolveYAML(node)
	if node == nil || isYAMLNull(node) {
		return &yamlSource{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, syntaxError("expected YAML mapping at line %d, got %s", node.Line, yamlKind(node))
	}
	return &yamlSource{content: node.Content}, nil
}

func (s *yamlSource) Name() string { return "yaml" }

func (s *yamlSource) Next() (string, ValueSource, error) {
	if s.pos+1 >= len(s.content) {
		return "", nil, io.EOF
	}
	keyNode := resolveYAML(s.content[s.pos])
	valNode := resolveYAML(s.content[s.pos+1])
	s.pos += 2

	if keyNode == nil || keyNode.Kind != yaml.ScalarNode {
		return "", nil, syntaxError("expected scalar YAML key")
	}
	return keyNode.Value, yamlValue{node: valNode}, nil
}

type yamlValue struct {
	node *yaml.Node
}

func (v yamlValue) Shape() Shape {
	switch {
	case v.node == nil || isYAMLNull(v.node):
		return ShapeNull
	case v.node.Kind == yaml.SequenceNode:
		return ShapeList
	case v.node.Kind == yaml.MappingNode:
		return ShapeMap
	default:
		return ShapeScalar
	}
}

func (v yamlValue) Decode(dst any) error {
	return v.node.Decode(dst)
}

func resolveYAML(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isYAMLNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == yamlNullTag
}

func yamlKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "node"
	}
}

// MarshalYAML implements yaml.Marshaler. Every key is encoded as a sequence.
func (m QueryMap[V]) MarshalYAML() (any, error) {
	if m.s == nil {
		return map[string][]V{}, nil
	}
	return m.s.values, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
//
// Each mapping value may be a single scalar or a sequence of values.
func (m *QueryMap[V]) UnmarshalYAML(node *yaml.Node) error {
	src, err := NewYAMLSource(node)
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
