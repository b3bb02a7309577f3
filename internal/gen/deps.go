package gen

import (
	"strings"

	"github.com/cockroachdb/errors"

	"schema-compiler/internal/model"
)

// CircularDependencyError reports an illegal reference cycle among a
// namespace's types. Cycle holds the qualified type names along the
// walk, ending with the repeated type that closed the loop.
type CircularDependencyError struct {
	Cycle []string
}

func (e *CircularDependencyError) Error() string {
	return "illegal circular dependency via cycle " + strings.Join(e.Cycle, ", ")
}

// fieldDependencyOrder returns the namespace's top-level types ordered
// so that a type's same-namespace field dependencies appear before the
// type itself. Only REF properties into the same namespace are
// expanded; cross-namespace refs resolve through includes or forward
// declarations instead.
func (g *generator) fieldDependencyOrder() ([]*model.Type, error) {
	var order []*model.Type
	placed := make(map[*model.Type]bool)

	var expand func(path []*model.Type, t *model.Type) error
	expand = func(path []*model.Type, t *model.Type) error {
		for _, seen := range path {
			if seen == t {
				cycle := make([]string, 0, len(path)+1)
				for _, p := range path {
					cycle = append(cycle, p.Name)
				}
				cycle = append(cycle, t.Name)

				return &CircularDependencyError{Cycle: cycle}
			}
		}

		for _, prop := range t.Properties {
			if prop.Type.PropertyType != model.PropertyTypeRef {
				continue
			}

			if model.GetNamespace(prop.Type.Ref) != g.ns.Name {
				continue
			}

			target, ok := g.ns.TypeByName(prop.Type.Ref)
			if !ok {
				// The loader validates refs before generation runs.
				return errors.AssertionFailedf(
					"type %s references undeclared type %s", t.Name, prop.Type.Ref)
			}

			if err := expand(append(path, t), target); err != nil {
				return err
			}
		}

		if !placed[t] {
			placed[t] = true
			order = append(order, t)
		}

		return nil
	}

	for _, t := range g.ns.Types {
		if err := expand(nil, t); err != nil {
			return nil, err
		}
	}

	return order, nil
}
