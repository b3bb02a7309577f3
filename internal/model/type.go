package model

// ManifestKeysTypeName is the simple name of the synthetic top-level
// type the loader builds from a namespace's manifest_keys block.
const ManifestKeysTypeName = "ManifestKeys"

// PropertyType is the closed set of shapes a schema type can take.
type PropertyType int

const (
	PropertyTypeUnknown PropertyType = iota
	PropertyTypeAny
	PropertyTypeArray
	PropertyTypeBinary
	PropertyTypeBoolean
	PropertyTypeChoices
	PropertyTypeDouble
	PropertyTypeEnum
	PropertyTypeFunction
	PropertyTypeInt64
	PropertyTypeInteger
	PropertyTypeObject
	PropertyTypeRef
	PropertyTypeString
)

// String returns the schema keyword for the property type.
func (p PropertyType) String() string {
	switch p {
	case PropertyTypeAny:
		return "any"
	case PropertyTypeArray:
		return "array"
	case PropertyTypeBinary:
		return "binary"
	case PropertyTypeBoolean:
		return "boolean"
	case PropertyTypeChoices:
		return "choices"
	case PropertyTypeDouble:
		return "number"
	case PropertyTypeEnum:
		return "enum"
	case PropertyTypeFunction:
		return "function"
	case PropertyTypeInt64:
		return "int64"
	case PropertyTypeInteger:
		return "integer"
	case PropertyTypeObject:
		return "object"
	case PropertyTypeRef:
		return "ref"
	case PropertyTypeString:
		return "string"
	default:
		return "unknown"
	}
}

// IsFundamental reports whether values of this kind pass by value in
// generated parameter lists; everything else goes by const reference.
func (p PropertyType) IsFundamental() bool {
	switch p {
	case PropertyTypeBoolean, PropertyTypeDouble, PropertyTypeInt64, PropertyTypeInteger:
		return true
	default:
		return false
	}
}

// EnumValue is one declared member of an ENUM type.
type EnumValue struct {
	Name        string
	Description string
}

// Origin records which directions of the data pipeline a type
// participates in. The generator emits conversion surfaces accordingly.
type Origin struct {
	// FromJSON marks types constructed from untrusted generic values
	// (function arguments, parsed payloads).
	FromJSON bool
	// FromClient marks types serialized back into generic values
	// (results, event payloads).
	FromClient bool
	// FromManifestKeys marks types populated from the manifest
	// dictionary.
	FromManifestKeys bool
}

// Type is one schema type: a named top-level declaration or an anonymous
// inline shape hanging off a property, parameter, or alternative.
type Type struct {
	// Name is fully qualified ("alarms.Alarm") for named types; inline
	// types carry the synthesized name of their slot.
	Name        string
	Description string

	PropertyType PropertyType

	// Ref is the qualified name of the referenced type for REF types.
	Ref string

	// ItemType is the element type for ARRAY types.
	ItemType *Type

	// EnumValues are the declared members for ENUM types, in order.
	EnumValues []EnumValue

	// Properties are the declared fields for OBJECT types, in
	// declaration order.
	Properties []*Property

	// AdditionalProperties, when set on an OBJECT, types the open-ended
	// remainder of the dictionary.
	AdditionalProperties *Type

	// Choices are the alternatives for CHOICES types, in order.
	Choices []*Type

	// Functions are callable members declared on the type itself.
	Functions []*Function

	Origin Origin
}

// SimpleName returns the type name without its namespace qualifier.
func (t *Type) SimpleName() string {
	return StripNamespace(t.Name)
}

// UnixName returns the snake_case form of the simple name.
func (t *Type) UnixName() string {
	return UnixName(t.SimpleName())
}

// IsRootManifestKeys reports whether this is the synthetic top-level
// manifest keys type of its namespace.
func (t *Type) IsRootManifestKeys() bool {
	return t.SimpleName() == ManifestKeysTypeName
}
