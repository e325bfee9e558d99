package host

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// markupNode is the YAML schema for one node:
//
//	tag: x-carousel
//	attributes:
//	  delay: "5000"
//	  autoplay: ""
//	children:
//	  - tag: img
//
// Attribute declaration order is preserved.
type markupNode struct {
	Tag      string
	Attrs    []attrEntry
	Children []markupNode
}

func (m *markupNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("markup node must be a mapping, got %v at line %d", value.Kind, value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		val := value.Content[i+1]
		switch key.Value {
		case "tag":
			if err := val.Decode(&m.Tag); err != nil {
				return err
			}
		case "attributes":
			if val.Kind != yaml.MappingNode {
				return fmt.Errorf("attributes must be a mapping at line %d", val.Line)
			}
			for j := 0; j+1 < len(val.Content); j += 2 {
				name := val.Content[j].Value
				raw := val.Content[j+1]
				text := raw.Value
				if raw.Tag == "!!null" {
					// Bare "autoplay:" declares presence with no value.
					text = ""
				}
				m.Attrs = append(m.Attrs, attrEntry{name: name, value: text})
			}
		case "children":
			if err := val.Decode(&m.Children); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown markup key %q at line %d", key.Value, key.Line)
		}
	}
	if m.Tag == "" {
		return fmt.Errorf("markup node at line %d has no tag", value.Line)
	}
	return nil
}

// ParseMarkup builds a detached node tree from YAML markup.
func ParseMarkup(data []byte) (*Node, error) {
	var spec markupNode
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return buildNode(&spec), nil
}

// LoadMarkup parses YAML markup and installs it as the document root.
func (d *Document) LoadMarkup(data []byte) error {
	root, err := ParseMarkup(data)
	if err != nil {
		return err
	}
	d.SetRoot(root)
	return nil
}

func buildNode(spec *markupNode) *Node {
	n := NewNode(spec.Tag)
	n.attrs = append(n.attrs, spec.Attrs...)
	for i := range spec.Children {
		child := buildNode(&spec.Children[i])
		child.parent = n
		n.children = append(n.children, child)
	}
	return n
}
