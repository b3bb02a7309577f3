package gen

import (
	"path"
	"sort"

	"schema-compiler/internal/code"
	"schema-compiler/internal/cpputil"
	"schema-compiler/internal/model"
)

// typeDependency is one cross-namespace type reachable from this
// namespace's declarations. A hard dependency cannot be satisfied by a
// forward declaration; anything reached through a container or a
// non-optional slot is hard.
type typeDependency struct {
	namespace  string
	simpleName string
	// propertyType is the resolved target's kind, or Unknown when the
	// target namespace is not loaded.
	propertyType model.PropertyType
	hard         bool
}

// namespaceTypeDependencies collects the cross-namespace types this
// namespace's functions, types, and events reach, sorted by target
// namespace then type name. Same-namespace refs are excluded.
func (h *typeHelper) namespaceTypeDependencies() []typeDependency {
	seen := make(map[typeDependency]bool)
	var deps []typeDependency

	for _, fn := range h.ns.Functions {
		for _, param := range fn.Params {
			h.collectTypeDependencies(param.Type, !param.Optional, seen, &deps)
		}

		if fn.ReturnsAsync != nil {
			for _, param := range fn.ReturnsAsync.Params {
				h.collectTypeDependencies(param.Type, !param.Optional, seen, &deps)
			}
		}
	}

	for _, t := range h.ns.Types {
		h.collectTypeDependencies(t, true, seen, &deps)
	}

	for _, ev := range h.ns.Events {
		for _, param := range ev.Params {
			h.collectTypeDependencies(param.Type, !param.Optional, seen, &deps)
		}
	}

	out := make([]typeDependency, 0, len(deps))
	for _, dep := range deps {
		if dep.namespace != "" && dep.namespace != h.ns.Name {
			out = append(out, dep)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].namespace != out[j].namespace {
			return out[i].namespace < out[j].namespace
		}
		if out[i].simpleName != out[j].simpleName {
			return out[i].simpleName < out[j].simpleName
		}

		return !out[i].hard && out[j].hard
	})

	return out
}

func (h *typeHelper) collectTypeDependencies(
	t *model.Type, hard bool, seen map[typeDependency]bool, deps *[]typeDependency,
) {
	switch t.PropertyType {
	case model.PropertyTypeRef:
		target := h.followRef(t)
		dep := typeDependency{hard: hard}
		if target.PropertyType == model.PropertyTypeRef {
			dep.namespace = model.GetNamespace(target.Ref)
			dep.simpleName = model.StripNamespace(target.Ref)
		} else {
			dep.namespace = model.GetNamespace(target.Name)
			dep.simpleName = target.SimpleName()
			dep.propertyType = target.PropertyType
		}

		if !seen[dep] {
			seen[dep] = true
			*deps = append(*deps, dep)
		}
	case model.PropertyTypeArray:
		// Element types live inside the container, so the declaration
		// is always needed in full.
		h.collectTypeDependencies(t.ItemType, true, seen, deps)
	case model.PropertyTypeChoices:
		for _, choice := range t.Choices {
			h.collectTypeDependencies(choice, true, seen, deps)
		}
	case model.PropertyTypeObject:
		for _, prop := range t.Properties {
			h.collectTypeDependencies(prop.Type, !prop.Optional, seen, deps)
		}

		if t.AdditionalProperties != nil {
			h.collectTypeDependencies(t.AdditionalProperties, true, seen, deps)
		}
	}
}

// generateIncludes returns the #include lines for the namespaces this
// one depends on. With includeSoft false only namespaces reached
// through a hard dependency are included; the rest are expected to be
// forward declared.
func (h *typeHelper) generateIncludes(includeSoft, generateErrorMessages bool) *code.Code {
	c := code.New()
	if generateErrorMessages {
		c.Append(`#include "base/types/expected.h"`)
	}

	deps := h.namespaceTypeDependencies()

	hasHard := make(map[string]bool)
	for _, dep := range deps {
		if dep.hard {
			hasHard[dep.namespace] = true
		}
	}

	included := make(map[string]bool)
	for _, dep := range deps {
		if included[dep.namespace] {
			continue
		}
		if !hasHard[dep.namespace] && !includeSoft {
			continue
		}

		included[dep.namespace] = true
		c.Appendf(`#include "%s"`, h.includePath(dep.namespace))
	}

	return c
}

// includePath names the header generated for a dependency namespace.
// Loaded namespaces contribute their own source directory; for
// unloaded ones the current namespace's directory stands in.
func (h *typeHelper) includePath(namespace string) string {
	sourceFile := h.ns.SourceFile
	if target, ok := h.model.Namespace(namespace); ok {
		sourceFile = target.SourceFile
	}

	header := model.UnixName(namespace) + ".h"

	dir := path.Dir(cpputil.ToPosixPath(sourceFile))
	if dir == "." || dir == "" {
		return header
	}

	return dir + "/" + header
}

// generateForwardDeclarations declares the soft struct dependencies
// inside their own namespaces, for namespaces whose includes are
// suppressed by the circular-reference configuration.
func (h *typeHelper) generateForwardDeclarations(namespacePattern string) *code.Code {
	c := code.New()

	deps := h.namespaceTypeDependencies()
	for i := 0; i < len(deps); {
		j := i
		var forward []typeDependency
		for ; j < len(deps) && deps[j].namespace == deps[i].namespace; j++ {
			dep := deps[j]
			if dep.hard {
				continue
			}
			if dep.propertyType != model.PropertyTypeObject &&
				dep.propertyType != model.PropertyTypeChoices {
				continue
			}

			forward = append(forward, dep)
		}

		if len(forward) > 0 {
			cppNamespace := cpputil.GetCppNamespace(
				namespacePattern, model.UnixName(deps[i].namespace))
			c.Concat(cpputil.OpenNamespace(cppNamespace))
			for _, dep := range forward {
				c.Appendf("struct %s;", cpputil.Classname(dep.simpleName))
			}
			c.Concat(cpputil.CloseNamespace(cppNamespace))
		}

		i = j
	}

	return c
}
