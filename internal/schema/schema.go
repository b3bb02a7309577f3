package schema

import (
	"gopkg.in/yaml.v3"

	"github.com/cockroachdb/errors"
)

// namespaceDef is the raw wire shape of one namespace definition.
type namespaceDef struct {
	Namespace   string `yaml:"namespace"`
	Description string `yaml:"description"`
	Nocompile   bool   `yaml:"nocompile"`

	CompilerOptions map[string]any `yaml:"compiler_options"`

	Types        []*typeDef     `yaml:"types"`
	Properties   namedSchemas   `yaml:"properties"`
	ManifestKeys namedSchemas   `yaml:"manifest_keys"`
	Functions    []*functionDef `yaml:"functions"`
	Events       []*functionDef `yaml:"events"`
}

// typeDef is the raw wire shape of a type node. The same shape appears
// as a top-level type (with "id"), a property value, a function
// parameter (with "name"), an array item, or a choices alternative.
type typeDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Ref         string `yaml:"$ref"`
	Description string `yaml:"description"`
	Optional    bool   `yaml:"optional"`
	Nocompile   bool   `yaml:"nocompile"`

	Enum                 enumValueList  `yaml:"enum"`
	Items                *typeDef       `yaml:"items"`
	Properties           namedSchemas   `yaml:"properties"`
	AdditionalProperties *typeDef       `yaml:"additionalProperties"`
	Choices              []*typeDef     `yaml:"choices"`
	Functions            []*functionDef `yaml:"functions"`

	// Value fixes a namespace-level property to a constant.
	Value any `yaml:"value"`
}

// functionDef is the raw wire shape of a function or event.
type functionDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Nocompile   bool   `yaml:"nocompile"`

	Parameters   []*typeDef       `yaml:"parameters"`
	ReturnsAsync *returnsAsyncDef `yaml:"returns_async"`
}

// returnsAsyncDef is the raw wire shape of a function's async result.
type returnsAsyncDef struct {
	Name       string     `yaml:"name"`
	Parameters []*typeDef `yaml:"parameters"`
}

// namedSchema is one (wire name, type node) pair of an object-shaped
// block.
type namedSchema struct {
	Name string
	Def  *typeDef
}

// namedSchemas preserves the declaration order of an object-shaped
// block ("properties", "manifest_keys"). Plain map decoding would lose
// the order the fields were written in, and field order is part of the
// generated output.
type namedSchemas []namedSchema

// UnmarshalYAML implements yaml.Unmarshaler by walking the mapping
// node's key/value pairs directly.
func (p *namedSchemas) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Newf("expected mapping of names to schemas, got %v", node.Kind)
	}

	out := make(namedSchemas, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string

		if err := node.Content[i].Decode(&name); err != nil {
			return errors.Wrap(err, "invalid schema entry name")
		}

		def := new(typeDef)
		if err := node.Content[i+1].Decode(def); err != nil {
			return errors.Wrapf(err, "invalid schema for %q", name)
		}

		out = append(out, namedSchema{Name: name, Def: def})
	}

	*p = out

	return nil
}

// enumValueDef is one declared enum member.
type enumValueDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// enumValueList accepts both enum entry spellings:
//   - plain string: "enabled"
//   - object: {"name": "enabled", "description": "..."}
type enumValueList []enumValueDef

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *enumValueList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return errors.Newf("expected list of enum values, got %v", node.Kind)
	}

	out := make(enumValueList, 0, len(node.Content))

	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			var name string

			if err := item.Decode(&name); err != nil {
				return errors.Wrap(err, "invalid enum value")
			}

			out = append(out, enumValueDef{Name: name})

		case yaml.MappingNode:
			var def enumValueDef

			if err := item.Decode(&def); err != nil {
				return errors.Wrap(err, "invalid enum value object")
			}

			out = append(out, def)

		default:
			return errors.Newf("expected string or object in enum list, got %v", item.Kind)
		}
	}

	*e = out

	return nil
}
