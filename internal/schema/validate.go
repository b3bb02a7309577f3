package schema

import (
	"fmt"
	"strconv"

	"schema-compiler/internal/diagnostic"
	"schema-compiler/internal/match"
	"schema-compiler/internal/model"
)

// Validate checks a built model for the problems the generator cannot
// tolerate and for likely schema mistakes. It never mutates the model.
func Validate(m *model.Model) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	for _, ns := range m.Namespaces {
		v := &validator{ns: ns, diags: diags, typeNames: simpleTypeNames(ns)}
		v.namespace()
	}

	return diags
}

type validator struct {
	ns    *model.Namespace
	diags *diagnostic.Diagnostics

	// typeNames are the namespace's declared simple type names, used
	// for ref suggestions.
	typeNames []string
}

func (v *validator) namespace() {
	seen := map[string]bool{}

	for _, t := range v.ns.Types {
		if seen[t.Name] {
			v.error("duplicate_type", "types."+t.SimpleName(),
				fmt.Sprintf("type %q is declared more than once", t.SimpleName()))
			continue
		}

		seen[t.Name] = true

		v.typeDecl(t, "types."+t.SimpleName())
	}

	v.properties(v.ns.Properties, "properties")

	if mk := v.ns.ManifestKeys; mk != nil {
		if mk.PropertyType != model.PropertyTypeObject {
			v.error("non_object_manifest_keys", "manifest_keys",
				"manifest_keys must be an object type")
		} else {
			v.typeDecl(mk, "manifest_keys")
		}
	}

	for _, f := range v.ns.Functions {
		v.function(f, "functions."+f.Name)
	}

	for _, e := range v.ns.Events {
		v.properties(e.Params, "events."+e.Name+".parameters")
	}
}

// typeDecl validates one type and everything it contains.
func (v *validator) typeDecl(t *model.Type, path string) {
	switch t.PropertyType {
	case model.PropertyTypeRef:
		v.ref(t.Ref, path)

	case model.PropertyTypeEnum:
		v.enum(t, path)

	case model.PropertyTypeArray:
		if t.ItemType != nil {
			v.typeDecl(t.ItemType, path+".items")
		}

	case model.PropertyTypeChoices:
		for i, alt := range t.Choices {
			v.typeDecl(alt, path+".choices."+strconv.Itoa(i))
		}

	case model.PropertyTypeObject:
		v.properties(t.Properties, path+".properties")

		if t.AdditionalProperties != nil {
			v.typeDecl(t.AdditionalProperties, path+".additionalProperties")
		}

		for _, f := range t.Functions {
			v.function(f, path+".functions."+f.Name)
		}
	}
}

// properties checks one ordered property list: every member type, plus
// unix-name collisions, which would declare the same field twice.
func (v *validator) properties(props []*model.Property, path string) {
	seen := map[string]string{}

	for _, p := range props {
		unix := p.UnixName()

		if prev, ok := seen[unix]; ok {
			v.error("duplicate_property", path+"."+p.Name,
				fmt.Sprintf("properties %q and %q collide on unix name %q", prev, p.Name, unix))
		} else {
			seen[unix] = p.Name
		}

		v.typeDecl(p.Type, path+"."+p.Name)
	}
}

func (v *validator) function(f *model.Function, path string) {
	v.properties(f.Params, path+".parameters")

	if f.ReturnsAsync != nil {
		v.properties(f.ReturnsAsync.Params, path+".returns_async.parameters")
	}
}

func (v *validator) enum(t *model.Type, path string) {
	if len(t.EnumValues) == 0 {
		v.error("enum_without_values", path, "enum declares no values")
		return
	}

	seen := map[string]bool{}

	for _, ev := range t.EnumValues {
		if ev.Name == "" {
			v.error("empty_enum_value", path, "enum declares an empty value")
			continue
		}

		if seen[ev.Name] {
			v.error("duplicate_enum_value", path,
				fmt.Sprintf("enum value %q is declared more than once", ev.Name))
			continue
		}

		seen[ev.Name] = true
	}
}

// ref checks that a same-namespace reference names a declared type.
// Refs into namespaces that are not loaded stay quiet: partial schema
// sets still generate, with includes pointing at the missing headers.
func (v *validator) ref(ref, path string) {
	if model.GetNamespace(ref) != v.ns.Name {
		return
	}

	if _, ok := v.ns.TypeByName(ref); ok {
		return
	}

	simple := model.StripNamespace(ref)

	v.diags.Add(diagnostic.Diagnostic{
		Severity:    diagnostic.SeverityError,
		Code:        "unresolved_ref",
		Message:     fmt.Sprintf("reference %q does not name a type in this namespace", simple),
		Namespace:   v.ns.Name,
		Path:        path,
		Suggestions: match.Suggest(simple, v.typeNames, 3),
	})
}

func (v *validator) error(code, path, message string) {
	v.diags.AddError(code, message, v.ns.Name, path)
}

func simpleTypeNames(ns *model.Namespace) []string {
	names := make([]string, 0, len(ns.Types))
	for _, t := range ns.Types {
		names = append(names, t.SimpleName())
	}

	return names
}
