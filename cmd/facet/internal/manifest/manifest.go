// Package manifest loads and statically validates component manifests.
//
// A manifest declares component types in YAML so a project can be checked
// without mounting anything: tags, extension chains, and attribute
// descriptors are all validated with the same rules the runtime applies at
// definition time.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-facet/facet/pkg/attr"
	"github.com/go-facet/facet/pkg/compose"
)

// Manifest is the root of a components.yaml file.
type Manifest struct {
	Components []Component `yaml:"components"`
}

// Component declares one component type.
type Component struct {
	Tag        string      `yaml:"tag"`
	Extends    string      `yaml:"extends"`
	Attributes []Attribute `yaml:"attributes,omitempty"`
	Operations []string    `yaml:"operations,omitempty"`
}

// Attribute declares one reflected attribute.
type Attribute struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Default    any    `yaml:"default,omitempty"`
	Responsive bool   `yaml:"responsive,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses manifest bytes. Unknown keys are errors.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Validate checks every declaration with the runtime's definition rules:
// valid unique tags, resolvable extension targets, and buildable attribute
// descriptors. It returns all problems joined, not just the first.
func (m *Manifest) Validate() error {
	var errs []error
	defined := make(map[string]bool, len(m.Components))

	for _, c := range m.Components {
		if err := compose.ValidateTag(c.Tag); err != nil {
			errs = append(errs, fmt.Errorf("component %q: %w", c.Tag, err))
		} else if defined[c.Tag] {
			errs = append(errs, fmt.Errorf("component %q: tag declared twice", c.Tag))
		}

		if c.Extends == "" {
			errs = append(errs, fmt.Errorf("component %q: missing extends", c.Tag))
		} else if compose.ValidateTag(c.Extends) == nil && !defined[c.Extends] {
			// A hyphenated extends target must be a component declared
			// earlier in the manifest; native tags have no hyphen.
			errs = append(errs, fmt.Errorf("component %q: extends undefined component %q", c.Tag, c.Extends))
		}

		seen := make(map[string]bool, len(c.Attributes))
		for _, a := range c.Attributes {
			if seen[a.Name] {
				errs = append(errs, fmt.Errorf("component %q: attribute %q declared twice", c.Tag, a.Name))
				continue
			}
			seen[a.Name] = true

			kind, err := parseKind(a.Kind)
			if err != nil {
				errs = append(errs, fmt.Errorf("component %q, attribute %q: %w", c.Tag, a.Name, err))
				continue
			}
			if _, err := attr.New(a.Name, attr.Options{
				Kind:       kind,
				Default:    a.Default,
				Responsive: a.Responsive,
			}); err != nil {
				errs = append(errs, fmt.Errorf("component %q: %w", c.Tag, err))
			}
		}

		for _, op := range c.Operations {
			if op == "" {
				errs = append(errs, fmt.Errorf("component %q: empty operation name", c.Tag))
			}
		}

		if c.Tag != "" {
			defined[c.Tag] = true
		}
	}

	return errors.Join(errs...)
}

func parseKind(s string) (attr.Kind, error) {
	switch s {
	case "bool":
		return attr.Bool, nil
	case "number":
		return attr.Number, nil
	case "string", "":
		return attr.String, nil
	default:
		return 0, fmt.Errorf("unknown kind %q (want bool, number, or string)", s)
	}
}
