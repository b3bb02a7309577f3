package model

// CompilerOptions are the per-namespace switches read from the schema's
// compiler_options block.
type CompilerOptions struct {
	// GenerateErrorMessages emits the error-reporting variants of parse
	// entry points (expected-style factories, error out-params).
	GenerateErrorMessages bool
	// ModernisedEnums emits scoped enum classes with kConstant members
	// instead of plain enums with SHOUTING members.
	ModernisedEnums bool
}

// Model is an ordered collection of loaded namespaces. Cross-namespace
// refs resolve against it when the target namespace is loaded.
type Model struct {
	Namespaces []*Namespace

	byName map[string]*Namespace
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{byName: make(map[string]*Namespace)}
}

// AddNamespace appends ns to the model and indexes it by name. A
// namespace with a name seen before replaces the index entry but both
// stay in order; the loader rejects duplicates before this matters.
func (m *Model) AddNamespace(ns *Namespace) {
	m.Namespaces = append(m.Namespaces, ns)
	m.byName[ns.Name] = ns
}

// Namespace returns the loaded namespace with the given name.
func (m *Model) Namespace(name string) (*Namespace, bool) {
	ns, ok := m.byName[name]

	return ns, ok
}

// ResolveRef resolves a fully qualified type name ("ns.Type") to its
// declaration. Unqualified names and refs into unloaded namespaces do
// not resolve.
func (m *Model) ResolveRef(ref string) (*Type, bool) {
	namespace := GetNamespace(ref)
	if namespace == "" {
		return nil, false
	}

	ns, ok := m.Namespace(namespace)
	if !ok {
		return nil, false
	}

	return ns.TypeByName(ref)
}

// Namespace is one API namespace: its declarations in source order plus
// the options that were set on it.
type Namespace struct {
	Name        string
	Description string

	// SourceFile is the schema file path this namespace was loaded from,
	// relative to the schema root.
	SourceFile string

	// Properties are namespace-level constants, in declaration order.
	Properties []*Property

	// Types are the top-level type declarations, in declaration order.
	Types []*Type

	// ManifestKeys is the synthetic type built from the manifest_keys
	// block, nil when the namespace declares none.
	ManifestKeys *Type

	Functions []*Function
	Events    []*Event

	Options CompilerOptions

	typesByName map[string]*Type
}

// UnixName returns the namespace name in snake_case.
func (n *Namespace) UnixName() string {
	return UnixName(n.Name)
}

// AddType appends t to the namespace's top-level types and indexes it
// under its qualified name.
func (n *Namespace) AddType(t *Type) {
	if n.typesByName == nil {
		n.typesByName = make(map[string]*Type)
	}

	n.Types = append(n.Types, t)
	n.typesByName[t.Name] = t
}

// TypeByName returns the top-level type declared under the given
// qualified name.
func (n *Namespace) TypeByName(name string) (*Type, bool) {
	t, ok := n.typesByName[name]

	return t, ok
}

// Property is a named, typed slot: an object field, a function
// parameter, or a namespace-level constant.
type Property struct {
	// Name is the wire name as written in the schema.
	Name        string
	Description string

	Type     *Type
	Optional bool

	// Value is the fixed value for namespace-level constants, nil
	// otherwise.
	Value any
}

// UnixName returns the declared member identifier for the property.
func (p *Property) UnixName() string {
	return UnixName(p.Name)
}

// Function is a callable API operation.
type Function struct {
	Name        string
	Description string

	Params []*Property

	// ReturnsAsync describes the values handed back when the operation
	// completes, nil for fire-and-forget functions.
	ReturnsAsync *ReturnsAsync
}

// ReturnsAsync is the asynchronous result contract of a function.
type ReturnsAsync struct {
	Name   string
	Params []*Property
}

// Event is a broadcast the API fires at registered listeners.
type Event struct {
	Name        string
	Description string

	Params []*Property
}
