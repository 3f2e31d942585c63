package fulltext

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeDocuments reads a stream of YAML documents from r. JSON input works
// as well since JSON is valid YAML. Object keys keep the order they have in
// the source. When expandLists is set, a top-level sequence contributes each
// of its elements as a separate document.
func DecodeDocuments(r io.Reader, expandLists bool) ([]Value, error) {
	dec := yaml.NewDecoder(r)

	var docs []Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode documents: %w", err)
		}

		v, err := FromYAML(&node)
		if err != nil {
			return nil, err
		}
		if expandLists && v.Kind() == KindArray {
			docs = append(docs, v.Items()...)
			continue
		}
		docs = append(docs, v)
	}
}

// FromYAML converts a yaml.v3 node tree into a Value.
func FromYAML(node *yaml.Node) (Value, error) {
	if node == nil {
		return Null(), nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAML(node.Content[0])

	case yaml.AliasNode:
		return FromYAML(node.Alias)

	case yaml.MappingNode:
		fields := make([]Field, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, val := node.Content[i], node.Content[i+1]
			fv, err := FromYAML(val)
			if err != nil {
				return Value{}, fmt.Errorf("line %d: field %q: %w", key.Line, key.Value, err)
			}
			fields = append(fields, Field{Key: key.Value, Value: fv})
		}
		return Object(fields...), nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			iv, err := FromYAML(child)
			if err != nil {
				return Value{}, err
			}
			items = append(items, iv)
		}
		return Array(items...), nil

	case yaml.ScalarNode:
		return scalarFromYAML(node)

	default:
		return Value{}, fmt.Errorf("%w: yaml node kind %d at line %d", ErrUnsupportedValue, node.Kind, node.Line)
	}
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool", "!!int", "!!float":
		var x any
		if err := node.Decode(&x); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return FromAny(x)
	default:
		// !!str, !!timestamp and !!binary are indexed as their literal text.
		return String(node.Value), nil
	}
}
