package document

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the Map as a mapping node so key order survives encoding.
func (m *Map) MarshalYAML() (interface{}, error) {
	return toNode(m)
}

// UnmarshalYAML decodes a mapping node, keeping the document's key order.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	v, err := fromNode(node)
	if err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*m = *NewMap()
	case *Map:
		*m = *val
	default:
		return fmt.Errorf("expected a mapping, got %s", nodeKind(node))
	}
	return nil
}

// Marshal encodes m as YAML with two-space indentation.
func Marshal(m *Map) ([]byte, error) {
	if m == nil {
		m = NewMap()
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a YAML document whose top level is a mapping.
// Empty input yields an empty Map.
func Unmarshal(data []byte) (*Map, error) {
	m := NewMap()
	if len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

func toNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case *Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if val == nil {
			return node, nil
		}
		for _, k := range val.keys {
			child, err := toNode(val.values[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			key := &yaml.Node{}
			if err := key.Encode(k); err != nil {
				return nil, err
			}
			node.Content = append(node.Content, key, child)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i, item := range val {
			child, err := toNode(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(val)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string, int, int64, bool:
		node := &yaml.Node{}
		if err := node.Encode(val); err != nil {
			return nil, err
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// formatFloat keeps a decimal point so the value decodes as a float again.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func fromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0])
	case yaml.AliasNode:
		return fromNode(node.Alias)
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			val, err := fromNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key.Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := fromNode(child)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node", node.Line)
	}
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			return nodeKind(node.Content[0])
		}
	}
	return "unknown node"
}
