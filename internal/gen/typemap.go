package gen

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"schema-compiler/internal/code"
	"schema-compiler/internal/cpputil"
	"schema-compiler/internal/model"
)

// typeHelper maps schema types onto their C++ spellings for one
// namespace. Same-namespace refs collapse to the bare class name;
// cross-namespace refs qualify with the target namespace's unix name,
// which needs no resolution.
type typeHelper struct {
	model *model.Model
	ns    *model.Namespace
}

func newTypeHelper(m *model.Model, ns *model.Namespace) *typeHelper {
	return &typeHelper{model: m, ns: ns}
}

// followRef chases REF links to the concrete declaration. A ref whose
// target namespace is not loaded stays as the REF itself.
func (h *typeHelper) followRef(t *model.Type) *model.Type {
	for t.PropertyType == model.PropertyTypeRef {
		target, ok := h.model.ResolveRef(t.Ref)
		if !ok {
			return t
		}

		t = target
	}

	return t
}

// cppType renders the C++ type for t. Optional slots wrap in
// absl::optional, except enums, which mark absence with their none
// member instead.
func (h *typeHelper) cppType(t *model.Type, optional bool) (string, error) {
	raw, err := h.rawCppType(t)
	if err != nil {
		return "", err
	}

	if !optional {
		return raw, nil
	}

	if h.followRef(t).PropertyType == model.PropertyTypeEnum {
		return raw, nil
	}

	return "absl::optional<" + raw + ">", nil
}

func (h *typeHelper) rawCppType(t *model.Type) (string, error) {
	switch t.PropertyType {
	case model.PropertyTypeRef:
		refNamespace := model.GetNamespace(t.Ref)
		classname := cpputil.Classname(model.StripNamespace(t.Ref))
		if refNamespace == h.ns.Name {
			return classname, nil
		}

		return fmt.Sprintf("%s::%s", model.UnixName(refNamespace), classname), nil
	case model.PropertyTypeBoolean:
		return "bool", nil
	case model.PropertyTypeInteger:
		return "int", nil
	case model.PropertyTypeInt64:
		return "int64_t", nil
	case model.PropertyTypeDouble:
		return "double", nil
	case model.PropertyTypeString:
		return "std::string", nil
	case model.PropertyTypeEnum, model.PropertyTypeObject, model.PropertyTypeChoices:
		return cpputil.Classname(t.SimpleName()), nil
	case model.PropertyTypeAny:
		return "base::Value", nil
	case model.PropertyTypeFunction:
		// Function-valued slots travel as serialized dictionaries.
		return "base::Value::Dict", nil
	case model.PropertyTypeBinary:
		return "std::vector<uint8_t>", nil
	case model.PropertyTypeArray:
		item, err := h.rawCppType(t.ItemType)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("std::vector<%s>", item), nil
	default:
		return "", errors.AssertionFailedf(
			"no C++ rendering for type %q of kind %s", t.Name, t.PropertyType)
	}
}

// optionalReturnType renders the return type of a fallible factory:
// expected-with-error when error messages are on, plain optional
// otherwise.
func (h *typeHelper) optionalReturnType(cppType string, supportErrors bool) string {
	if supportErrors {
		return fmt.Sprintf("base::expected<%s, std::u16string>", cppType)
	}

	return fmt.Sprintf("absl::optional<%s>", cppType)
}

// enumNoneValue names the member an optional enum holds when unset.
func (h *typeHelper) enumNoneValue(t *model.Type) string {
	if h.ns.Options.ModernisedEnums {
		return "kNone"
	}

	return strings.ToUpper(h.followRef(t).UnixName()) + "_NONE"
}

// enumLastValue names the trailing alias marking the highest member.
func (h *typeHelper) enumLastValue(t *model.Type) string {
	if h.ns.Options.ModernisedEnums {
		return "kMaxValue"
	}

	return strings.ToUpper(h.followRef(t).UnixName()) + "_LAST"
}

// enumValue names one declared member of an enum.
func (h *typeHelper) enumValue(t *model.Type, v model.EnumValue) string {
	if h.ns.Options.ModernisedEnums {
		return "k" + cpputil.ToCamelCase(sanitizeEnumValue(v.Name))
	}

	prefix := strings.ToUpper(h.followRef(t).UnixName())

	return prefix + "_" + cpputil.Classname(strings.ToUpper(v.Name))
}

// sanitizeEnumValue folds the separators schemas allow in member names
// into underscores so the result is a C++ identifier.
func sanitizeEnumValue(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)
}

// propertyValues renders a value-carrying namespace property with the
// given declaration template. The template sees {type}, {name} and
// {value}; string values adjust to char-array spelling. Object
// properties without values recurse into a nested namespace and render
// nothing when no descendant carries a value.
func (h *typeHelper) propertyValues(prop *model.Property, line string) (*code.Code, error) {
	c := code.New()
	if prop.Description != "" {
		c.Comment(prop.Description)
	}

	if prop.Value != nil {
		cppType, err := h.cppType(prop.Type, false)
		if err != nil {
			return nil, err
		}

		name := prop.UnixName()
		value := fmt.Sprintf("%v", prop.Value)
		if cppType == "std::string" {
			cppType = "char"
			name += "[]"
			value = fmt.Sprintf("%q", prop.Value)
		}

		c.Append(line)
		c.Substitute(map[string]string{"type": cppType, "name": name, "value": value})

		return c, nil
	}

	hasChildValues := false
	err := c.Scope(fmt.Sprintf("namespace %s {", prop.UnixName()),
		fmt.Sprintf("}  // namespace %s", prop.UnixName()), func() error {
			for _, child := range prop.Type.Properties {
				childCode, err := h.propertyValues(child, line)
				if err != nil {
					return err
				}

				if childCode != nil {
					hasChildValues = true
					c.Concat(childCode)
				}
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	if !hasChildValues {
		return nil, nil
	}

	return c, nil
}
