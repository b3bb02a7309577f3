package schema

import (
	"fmt"
	"sort"
	"strings"

	"schema-compiler/internal/diagnostic"
	"schema-compiler/internal/match"
	"schema-compiler/internal/model"
)

// knownCompilerOptions are the option names the generator understands.
var knownCompilerOptions = []string{"generate_error_messages", "modernised_enums"}

// builder turns one raw namespace definition into a model namespace,
// accumulating findings as it goes.
type builder struct {
	ns    *model.Namespace
	diags *diagnostic.Diagnostics
}

func buildNamespace(def *namespaceDef, sourceFile string, diags *diagnostic.Diagnostics) *model.Namespace {
	if def.Namespace == "" {
		diags.AddError("namespace_without_name",
			"schema definition declares no namespace name", "", sourceFile)
		return nil
	}

	ns := &model.Namespace{
		Name:        def.Namespace,
		Description: def.Description,
		SourceFile:  sourceFile,
	}

	b := &builder{ns: ns, diags: diags}

	b.compilerOptions(def.CompilerOptions)

	for _, td := range def.Types {
		if td == nil || td.Nocompile {
			continue
		}

		if td.ID == "" {
			b.errorf("type_without_id", "types", "top-level type declares no id")
			continue
		}

		t := b.buildType(td.ID, td, model.Origin{FromJSON: true, FromClient: true}, "types."+td.ID)
		if t == nil {
			continue
		}

		if _, exists := ns.TypeByName(t.Name); exists {
			b.errorf("duplicate_type", "types."+td.ID, "type %q is declared more than once", td.ID)
			continue
		}

		ns.AddType(t)
	}

	ns.Properties = b.buildProperties(def.Properties, model.Origin{}, "properties")

	if len(def.ManifestKeys) > 0 {
		ns.ManifestKeys = b.buildManifestKeys(def.ManifestKeys)
	}

	for _, fd := range def.Functions {
		if f := b.buildFunction(fd, "functions"); f != nil {
			ns.Functions = append(ns.Functions, f)
		}
	}

	for _, ed := range def.Events {
		if e := b.buildEvent(ed); e != nil {
			ns.Events = append(ns.Events, e)
		}
	}

	b.propagateManifestOrigin()

	return ns
}

// buildType builds the model type for one schema node. The shape is
// decided by the first matching discriminator: $ref, enum, choices,
// then the type keyword. A nil return means the node was diagnosed and
// dropped.
func (b *builder) buildType(name string, def *typeDef, origin model.Origin, path string) *model.Type {
	t := &model.Type{
		Name:        b.qualify(name),
		Description: def.Description,
		Origin:      origin,
	}

	switch {
	case def.Ref != "":
		t.PropertyType = model.PropertyTypeRef
		t.Ref = b.qualifyRef(def.Ref)

	case len(def.Enum) > 0:
		t.PropertyType = model.PropertyTypeEnum

		for _, v := range def.Enum {
			t.EnumValues = append(t.EnumValues, model.EnumValue{
				Name:        v.Name,
				Description: v.Description,
			})
		}

	case len(def.Choices) > 0:
		t.PropertyType = model.PropertyTypeChoices

		for i, alt := range def.Choices {
			if alt == nil {
				continue
			}

			built := b.buildType(choiceName(alt), alt, origin, fmt.Sprintf("%s.choices.%d", path, i))
			if built != nil {
				t.Choices = append(t.Choices, built)
			}
		}

	default:
		return b.buildKeywordType(t, name, def, origin, path)
	}

	return t
}

// buildKeywordType finishes a type node driven by its "type" keyword.
func (b *builder) buildKeywordType(t *model.Type, name string, def *typeDef, origin model.Origin, path string) *model.Type {
	switch def.Type {
	case "any":
		t.PropertyType = model.PropertyTypeAny
	case "binary":
		t.PropertyType = model.PropertyTypeBinary
	case "boolean":
		t.PropertyType = model.PropertyTypeBoolean
	case "function":
		t.PropertyType = model.PropertyTypeFunction
	case "int64":
		t.PropertyType = model.PropertyTypeInt64
	case "integer":
		t.PropertyType = model.PropertyTypeInteger
	case "number":
		t.PropertyType = model.PropertyTypeDouble
	case "string":
		t.PropertyType = model.PropertyTypeString

	case "array":
		t.PropertyType = model.PropertyTypeArray

		if def.Items == nil {
			b.errorf("array_without_items", path, "array type declares no items")
			return nil
		}

		t.ItemType = b.buildType(name+"Type", def.Items, origin, path+".items")
		if t.ItemType == nil {
			return nil
		}

	case "object":
		t.PropertyType = model.PropertyTypeObject
		t.Properties = b.buildProperties(def.Properties, origin, path+".properties")

		if def.AdditionalProperties != nil {
			t.AdditionalProperties = b.buildType("additionalProperties",
				def.AdditionalProperties, origin, path+".additionalProperties")
		}

		for _, fd := range def.Functions {
			if f := b.buildFunction(fd, path+".functions"); f != nil {
				t.Functions = append(t.Functions, f)
			}
		}

	case "":
		b.errorf("missing_type_keyword", path,
			"schema node declares no type, $ref, enum, or choices")
		return nil

	default:
		b.diags.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityError,
			Code:        "unknown_type_keyword",
			Message:     fmt.Sprintf("unknown type keyword %q", def.Type),
			Namespace:   b.ns.Name,
			Path:        path,
			Suggestions: match.Suggest(def.Type, typeKeywords, 1),
		})

		return nil
	}

	return t
}

// typeKeywords are the valid "type" spellings, for suggestions.
var typeKeywords = []string{
	"any", "array", "binary", "boolean", "function",
	"int64", "integer", "number", "object", "string",
}

// choiceName names a choices alternative by its shape: the referenced
// type's simple name, the pluralized item name for arrays, or the type
// keyword itself.
func choiceName(def *typeDef) string {
	switch {
	case def.Ref != "":
		return model.StripNamespace(def.Ref)
	case def.Type == "array" && def.Items != nil:
		return choiceName(def.Items) + "s"
	case def.Type != "":
		return def.Type
	default:
		return "choice"
	}
}

func (b *builder) buildProperties(defs namedSchemas, origin model.Origin, path string) []*model.Property {
	var out []*model.Property

	for _, entry := range defs {
		if entry.Def == nil || entry.Def.Nocompile {
			continue
		}

		if p := b.buildProperty(entry.Name, entry.Def, origin, path+"."+entry.Name); p != nil {
			out = append(out, p)
		}
	}

	return out
}

func (b *builder) buildProperty(name string, def *typeDef, origin model.Origin, path string) *model.Property {
	t := b.buildType(name, def, origin, path)
	if t == nil {
		return nil
	}

	return &model.Property{
		Name:        name,
		Description: def.Description,
		Type:        t,
		Optional:    def.Optional,
		Value:       def.Value,
	}
}

// buildManifestKeys wraps the manifest_keys block into the namespace's
// synthetic ManifestKeys object type. It is held apart from the
// ordinary types so it renders in its own section and stays out of
// field dependency ordering.
func (b *builder) buildManifestKeys(defs namedSchemas) *model.Type {
	origin := model.Origin{FromManifestKeys: true}

	return &model.Type{
		Name:         b.qualify(model.ManifestKeysTypeName),
		PropertyType: model.PropertyTypeObject,
		Origin:       origin,
		Properties:   b.buildProperties(defs, origin, "manifest_keys"),
	}
}

func (b *builder) buildFunction(def *functionDef, path string) *model.Function {
	if def == nil || def.Nocompile {
		return nil
	}

	if def.Name == "" {
		b.errorf("function_without_name", path, "function declares no name")
		return nil
	}

	fpath := path + "." + def.Name

	f := &model.Function{
		Name:        def.Name,
		Description: def.Description,
		Params:      b.buildParams(def.Parameters, model.Origin{FromJSON: true}, fpath+".parameters"),
	}

	if def.ReturnsAsync != nil {
		name := def.ReturnsAsync.Name
		if name == "" {
			name = "callback"
		}

		f.ReturnsAsync = &model.ReturnsAsync{
			Name: name,
			Params: b.buildParams(def.ReturnsAsync.Parameters,
				model.Origin{FromClient: true}, fpath+".returns_async.parameters"),
		}
	}

	return f
}

func (b *builder) buildEvent(def *functionDef) *model.Event {
	if def == nil || def.Nocompile {
		return nil
	}

	if def.Name == "" {
		b.errorf("event_without_name", "events", "event declares no name")
		return nil
	}

	return &model.Event{
		Name:        def.Name,
		Description: def.Description,
		Params: b.buildParams(def.Parameters,
			model.Origin{FromClient: true}, "events."+def.Name+".parameters"),
	}
}

func (b *builder) buildParams(defs []*typeDef, origin model.Origin, path string) []*model.Property {
	var out []*model.Property

	for _, def := range defs {
		if def == nil || def.Nocompile {
			continue
		}

		if def.Name == "" {
			b.errorf("parameter_without_name", path, "parameter declares no name")
			continue
		}

		if p := b.buildProperty(def.Name, def, origin, path+"."+def.Name); p != nil {
			out = append(out, p)
		}
	}

	return out
}

func (b *builder) compilerOptions(raw map[string]any) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		switch k {
		case "generate_error_messages":
			b.setOption(k, raw[k], &b.ns.Options.GenerateErrorMessages)
		case "modernised_enums":
			b.setOption(k, raw[k], &b.ns.Options.ModernisedEnums)
		default:
			b.diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityWarning,
				Code:        "unknown_compiler_option",
				Message:     fmt.Sprintf("unknown compiler option %q is ignored", k),
				Namespace:   b.ns.Name,
				Path:        "compiler_options." + k,
				Suggestions: match.Suggest(k, knownCompilerOptions, 1),
			})
		}
	}
}

func (b *builder) setOption(name string, value any, out *bool) {
	v, ok := value.(bool)
	if !ok {
		b.errorf("invalid_compiler_option", "compiler_options."+name,
			"compiler option %q expects a boolean", name)
		return
	}

	*out = v
}

// propagateManifestOrigin follows same-namespace refs reachable from
// the manifest keys type and marks their targets from_manifest_keys, so
// referenced types declare the manifest parsing surface too.
func (b *builder) propagateManifestOrigin() {
	if b.ns.ManifestKeys == nil {
		return
	}

	b.markManifestOrigin(b.ns.ManifestKeys, map[string]bool{})
}

func (b *builder) markManifestOrigin(t *model.Type, seen map[string]bool) {
	switch t.PropertyType {
	case model.PropertyTypeRef:
		if model.GetNamespace(t.Ref) != b.ns.Name {
			return
		}

		target, ok := b.ns.TypeByName(t.Ref)
		if !ok || seen[target.Name] {
			return
		}

		seen[target.Name] = true
		target.Origin.FromManifestKeys = true

		b.markManifestOrigin(target, seen)

	case model.PropertyTypeArray:
		if t.ItemType != nil {
			b.markManifestOrigin(t.ItemType, seen)
		}

	case model.PropertyTypeChoices:
		for _, alt := range t.Choices {
			b.markManifestOrigin(alt, seen)
		}

	case model.PropertyTypeObject:
		for _, p := range t.Properties {
			b.markManifestOrigin(p.Type, seen)
		}

		if t.AdditionalProperties != nil {
			b.markManifestOrigin(t.AdditionalProperties, seen)
		}
	}
}

// qualify prefixes a simple name with the namespace.
func (b *builder) qualify(simple string) string {
	return b.ns.Name + "." + simple
}

// qualifyRef qualifies a bare ref into the declaring namespace; dotted
// refs already name their namespace.
func (b *builder) qualifyRef(ref string) string {
	if strings.Contains(ref, ".") {
		return ref
	}

	return b.ns.Name + "." + ref
}

func (b *builder) errorf(code, path, format string, args ...any) {
	b.diags.AddError(code, fmt.Sprintf(format, args...), b.ns.Name, path)
}
