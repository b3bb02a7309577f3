package gen

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"schema-compiler/internal/code"
	"schema-compiler/internal/cpputil"
	"schema-compiler/internal/model"
)

// typeOptions controls how generateType renders one declaration.
type typeOptions struct {
	// toplevel marks types declared in the namespace's types list. Their
	// enum helpers drop the static qualifier and from_json structs gain
	// the deprecated unique_ptr factory.
	toplevel bool
	// typedefs enables using-aliases for string and array declarations.
	// Inline positions leave primitives to the type mapper instead.
	typedefs bool
}

// generateType renders the declaration for one type. REF, ANY, and
// primitive kinds outside a typedef position declare nothing; the type
// mapper names them in place.
func (g *generator) generateType(t *model.Type, opts typeOptions) (*code.Code, error) {
	classname := cpputil.Classname(t.SimpleName())
	c := code.New()

	switch {
	case len(t.Functions) > 0:
		// Functions declared on a type live in a namespace named after it.
		c.Appendf("namespace %s {", classname)
		c.Append("")
		for _, fn := range t.Functions {
			fc, err := g.generateFunction(fn)
			if err != nil {
				return nil, err
			}
			c.Cblock(fc)
		}
		c.Appendf("}  // namespace %s", classname)

	case t.PropertyType == model.PropertyTypeArray:
		if opts.typedefs && t.Description != "" {
			c.Comment(t.Description)
		}

		item, err := g.generateType(t.ItemType, typeOptions{toplevel: opts.toplevel})
		if err != nil {
			return nil, err
		}
		c.Cblock(item)

		if opts.typedefs {
			itemCppType, err := g.types.cppType(t.ItemType, false)
			if err != nil {
				return nil, err
			}

			if itemCppType == "base::Value" {
				c.Appendf("using %s = base::Value::List;", classname)
			} else {
				c.Appendf("using %s = std::vector<%s >;", classname, itemCppType)
			}
		}

	case t.PropertyType == model.PropertyTypeString:
		if opts.typedefs {
			if t.Description != "" {
				c.Comment(t.Description)
			}
			c.Append("using {classname} = std::string;")
		}

	case t.PropertyType == model.PropertyTypeEnum:
		if t.Description != "" {
			c.Comment(t.Description)
		}
		c.Cblock(g.generateEnumDeclaration(classname, t))

		// Top-level enums sit in a namespace scope, so their helpers are
		// free functions; inline ones are declared inside a struct.
		maybeStatic := "static "
		if opts.toplevel {
			maybeStatic = ""
		}
		c.Append("")
		c.Appendf("%sconst char* ToString(%s as_enum);", maybeStatic, classname)
		c.Appendf("%s%s Parse%s(base::StringPiece as_string);", maybeStatic, classname, classname)
		c.Appendf("%sstd::u16string Get%sParseError(base::StringPiece as_string);",
			maybeStatic, classname)

	case t.PropertyType == model.PropertyTypeObject,
		t.PropertyType == model.PropertyTypeChoices:
		if t.Description != "" {
			c.Comment(t.Description)
		}

		if err := c.Scope("struct {classname} {", "};", func() error {
			return g.generateStructBody(c, t, classname, opts)
		}); err != nil {
			return nil, err
		}

	case t.PropertyType == model.PropertyTypeRef,
		t.PropertyType == model.PropertyTypeAny,
		t.PropertyType == model.PropertyTypeBinary,
		t.PropertyType == model.PropertyTypeBoolean,
		t.PropertyType == model.PropertyTypeDouble,
		t.PropertyType == model.PropertyTypeFunction,
		t.PropertyType == model.PropertyTypeInt64,
		t.PropertyType == model.PropertyTypeInteger:
		// Nothing to declare.

	default:
		return nil, errors.AssertionFailedf(
			"no declaration form for type %q of kind %s", t.Name, t.PropertyType)
	}

	return c.Substitute(map[string]string{"classname": classname}), nil
}

// generateStructBody writes the members of an OBJECT or CHOICES struct:
// special members first, then the origin-dependent conversion surface,
// then nested types and fields.
func (g *generator) generateStructBody(
	c *code.Code, t *model.Type, classname string, opts typeOptions,
) error {
	c.Append("{classname}();")
	c.Append("~{classname}();")
	c.Append("{classname}(const {classname}&) = delete;")
	c.Append("{classname}& operator=(const {classname}&) = delete;")
	c.Append("{classname}({classname}&& rhs);")
	c.Append("{classname}& operator=({classname}&& rhs);")

	if t.Origin.FromManifestKeys {
		c.Append("")
		c.Comment("Manifest key constants.")
		c.Concat(g.generateManifestKeyConstants(t.Properties))
	}

	valueType := "base::Value::Dict"
	if t.PropertyType == model.PropertyTypeChoices {
		valueType = "base::Value"
	}

	if t.Origin.FromJSON {
		c.Append("")
		c.Comment(fmt.Sprintf("Populates a %s object from a base::Value& instance."+
			" Returns whether |out| was successfully populated.", classname))
		c.Appendf("static bool Populate(%s);",
			g.paramList("const base::Value& value", classname+"& out"))

		if t.PropertyType != model.PropertyTypeChoices {
			c.Append("")
			c.Comment(fmt.Sprintf("Populates a %s object from a Dict& instance."+
				" Returns whether |out| was successfully populated.", classname))
			c.Appendf("static bool Populate(%s);",
				g.paramList("const base::Value::Dict& value", classname+"& out"))
		}

		c.Append("")
		c.Comment(fmt.Sprintf("Creates a deep copy of %s.", classname))
		c.Appendf("%s Clone() const;", classname)

		if opts.toplevel {
			c.Append("")
			c.Comment(fmt.Sprintf(
				"Creates a %s object from a base::Value, or NULL on failure.", classname))
			c.Appendf("static std::unique_ptr<%s> FromValueDeprecated(%s);",
				classname, g.paramListLegacyError("const base::Value& value"))
		}

		returnType := g.types.optionalReturnType(classname, g.generateErrorMessages)
		failure := "nullopt"
		if g.generateErrorMessages {
			failure = "unexpected"
		}

		if t.PropertyType != model.PropertyTypeChoices {
			c.Append("")
			c.Comment(fmt.Sprintf(
				"Creates a %s object from a base::Value::Dict, or %s on failure.",
				classname, failure))
			c.Appendf("static %s FromValue(const base::Value::Dict& value);", returnType)
		}

		c.Append("")
		c.Comment(fmt.Sprintf(
			"Creates a %s object from a base::Value, or %s on failure.", classname, failure))
		c.Appendf("static %s FromValue(const base::Value& value);", returnType)
	}

	if t.Origin.FromClient {
		c.Append("")
		c.Comment(fmt.Sprintf(
			"Returns a new %s representing the serialized form of this %s object.",
			valueType, classname))
		c.Appendf("%s ToValue() const;", valueType)
	}

	if t.Origin.FromManifestKeys {
		c.Cblock(g.generateParseFromDictionary(t, classname))
	}

	if t.PropertyType == model.PropertyTypeChoices {
		// Exactly one alternative field is set by the parser.
		choices, err := g.generateTypes(t.Choices, typeOptions{})
		if err != nil {
			return err
		}
		c.Cblock(choices)

		c.Append("// Choices:")
		for _, choice := range t.Choices {
			choiceType, err := g.types.cppType(choice, true)
			if err != nil {
				return err
			}
			c.Appendf("%s as_%s;", choiceType, choice.UnixName())
		}

		return nil
	}

	c.Append("")

	propTypes := make([]*model.Type, len(t.Properties))
	for i, prop := range t.Properties {
		propTypes[i] = prop.Type
	}
	nested, err := g.generateTypes(propTypes, typeOptions{})
	if err != nil {
		return err
	}
	c.Cblock(nested)

	fields, err := g.generateFields(t.Properties)
	if err != nil {
		return err
	}
	c.Cblock(fields)

	if t.AdditionalProperties != nil {
		// Open dictionaries of "any" stay a Value::Dict rather than a
		// map of string to Value.
		if t.AdditionalProperties.PropertyType == model.PropertyTypeAny {
			c.Append("base::Value::Dict additional_properties;")
		} else {
			extra, err := g.generateType(t.AdditionalProperties, typeOptions{})
			if err != nil {
				return err
			}
			c.Cblock(extra)

			extraType, err := g.types.cppType(t.AdditionalProperties, false)
			if err != nil {
				return err
			}
			c.Appendf("std::map<std::string, %s> additional_properties;", extraType)
		}
	}

	return nil
}

// generateTypes renders a sequence of type declarations, one blank line
// between blocks.
func (g *generator) generateTypes(types []*model.Type, opts typeOptions) (*code.Code, error) {
	c := code.New()
	for _, t := range types {
		tc, err := g.generateType(t, opts)
		if err != nil {
			return nil, err
		}
		c.Cblock(tc)
	}

	return c, nil
}

// generateEnumDeclaration renders the enum itself, without its helper
// functions. The none member is pinned to 0 so default initialization
// lands on a valid entry.
func (g *generator) generateEnumDeclaration(enumName string, t *model.Type) *code.Code {
	c := code.New()

	open := fmt.Sprintf("enum %s {", enumName)
	if g.modernisedEnums {
		open = fmt.Sprintf("enum class %s {", enumName)
	}

	_ = c.Scope(open, "};", func() error {
		c.Appendf("%s = 0,", g.types.enumNoneValue(t))

		last := g.types.enumNoneValue(t)
		for _, value := range t.EnumValues {
			last = g.types.enumValue(t, value)
			c.Appendf("%s,", last)
		}

		if g.modernisedEnums {
			c.Appendf("kMaxValue = %s,", last)
		} else {
			c.Appendf("%s = %s,", g.types.enumLastValue(t), last)
		}

		return nil
	})

	return c
}

// generateFields renders the member declarations of a struct, one blank
// line between members.
func (g *generator) generateFields(props []*model.Property) (*code.Code, error) {
	c := code.New()
	for i, prop := range props {
		if i > 0 {
			c.Append("")
		}
		if prop.Description != "" {
			c.Comment(prop.Description)
		}

		cppType, err := g.types.cppType(prop.Type, prop.Optional)
		if err != nil {
			return nil, err
		}
		c.Appendf("%s %s;", cppType, prop.UnixName())
	}

	return c, nil
}

// generateManifestKeys renders the synthetic manifest keys type.
func (g *generator) generateManifestKeys() (*code.Code, error) {
	if g.ns.ManifestKeys == nil ||
		g.ns.ManifestKeys.PropertyType != model.PropertyTypeObject {
		return nil, errors.AssertionFailedf(
			"manifest keys of namespace %q must be an object", g.ns.Name)
	}

	return g.generateType(g.ns.ManifestKeys, typeOptions{})
}

// generateParseFromDictionary declares the manifest parsing entry
// point. The root manifest type has the public signature; nested types
// carry the key and error path plumbing.
func (g *generator) generateParseFromDictionary(t *model.Type, classname string) *code.Code {
	var params []string
	var comment string

	if t.IsRootManifestKeys() {
		params = []string{
			"const base::Value::Dict& root_dict",
			classname + "& out",
			"std::u16string& error",
		}
		comment = "Parses manifest keys for this namespace. Any keys not available" +
			" to the manifest will be ignored. On a parsing error, false is returned" +
			" and |error| is populated."
	} else {
		params = []string{
			"const base::Value::Dict& root_dict",
			"base::StringPiece key",
			classname + "& out",
			"std::u16string& error",
			"std::vector<base::StringPiece>& error_path_reversed",
		}
		comment = "Parses the given |key| from |root_dict|. Any keys not available" +
			" to the manifest will be ignored. On a parsing error, false is returned" +
			" and |error| and |error_path_reversed| are populated."
	}

	c := code.New()
	c.Append("")
	c.Comment(comment)
	c.Appendf("static bool ParseFromDictionary(%s);", strings.Join(params, ", "))

	return c
}

// generateManifestKeyConstants declares the wire-name constant for each
// manifest property.
func (g *generator) generateManifestKeyConstants(props []*model.Property) *code.Code {
	c := code.New()
	for _, prop := range props {
		c.Appendf("static constexpr char %s[] = %q;",
			cpputil.UnixNameToConstantName(prop.UnixName()), prop.Name)
	}

	return c
}
