// Package introspection provides the schema model decoded from a GraphQL
// introspection result, plus helpers to resolve wrapped type references.
package introspection

// Kind is the __TypeKind of a type or type reference.
type Kind string

// Type kinds reported by introspection. KindUnknown marks a reference that
// could not be resolved to a named type.
const (
	KindScalar      Kind = "SCALAR"
	KindObject      Kind = "OBJECT"
	KindInterface   Kind = "INTERFACE"
	KindUnion       Kind = "UNION"
	KindEnum        Kind = "ENUM"
	KindInputObject Kind = "INPUT_OBJECT"
	KindList        Kind = "LIST"
	KindNonNull     Kind = "NON_NULL"
	KindUnknown     Kind = "UNKNOWN"
)

// IsComposite reports whether values of this kind carry a selection set.
func (k Kind) IsComposite() bool {
	switch k {
	case KindObject, KindInterface, KindUnion:
		return true
	}
	return false
}

// IsLeaf reports whether the kind is selected without a selection set.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindScalar, KindEnum:
		return true
	}
	return false
}

// TypeRef is a possibly wrapped reference to a named type.
type TypeRef struct {
	Kind   Kind     `json:"kind"`
	Name   string   `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

// InputValue is a field argument or an input object field.
type InputValue struct {
	Name         string   `json:"name"`
	Type         *TypeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue"`
}

// Required reports whether a value must be supplied.
func (v InputValue) Required() bool {
	return IsNonNull(v.Type)
}

// Field is an output field of an object or interface type.
type Field struct {
	Name string       `json:"name"`
	Type *TypeRef     `json:"type"`
	Args []InputValue `json:"args"`
}

// HasRequiredArgs reports whether the field cannot be selected without
// supplying at least one argument.
func (f Field) HasRequiredArgs() bool {
	for _, a := range f.Args {
		if a.Required() {
			return true
		}
	}
	return false
}

// EnumValue is a single declared enum value.
type EnumValue struct {
	Name string `json:"name"`
}

// TypeDef is a named type of the schema.
type TypeDef struct {
	Kind          Kind         `json:"kind"`
	Name          string       `json:"name"`
	Fields        []Field      `json:"fields"`
	InputFields   []InputValue `json:"inputFields"`
	EnumValues    []EnumValue  `json:"enumValues"`
	Interfaces    []TypeRef    `json:"interfaces"`
	PossibleTypes []TypeRef    `json:"possibleTypes"`
}

// Field looks up an output field by name.
func (t *TypeDef) Field(name string) (*Field, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// Schema is an immutable index of the introspected types.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string

	types map[string]*TypeDef
	order []string
}

// NewSchema indexes the given type definitions by name. Definitions with an
// empty name are dropped; a repeated name keeps the last definition.
func NewSchema(defs []TypeDef) *Schema {
	s := &Schema{types: make(map[string]*TypeDef, len(defs))}
	for i := range defs {
		def := defs[i]
		if def.Name == "" {
			continue
		}
		if _, exists := s.types[def.Name]; !exists {
			s.order = append(s.order, def.Name)
		}
		s.types[def.Name] = &def
	}
	return s
}

// Type returns the definition for a type name.
func (s *Schema) Type(name string) (*TypeDef, bool) {
	def, ok := s.types[name]
	return def, ok
}

// Has reports whether the schema defines the named type.
func (s *Schema) Has(name string) bool {
	_, ok := s.types[name]
	return ok
}

// KindOf returns the declared kind of a type, KindUnknown when absent.
func (s *Schema) KindOf(name string) Kind {
	if def, ok := s.types[name]; ok && def.Kind != "" {
		return def.Kind
	}
	return KindUnknown
}

// Field looks up a field of a type.
func (s *Schema) Field(typeName, fieldName string) (*Field, bool) {
	def, ok := s.types[typeName]
	if !ok {
		return nil, false
	}
	return def.Field(fieldName)
}

// TypeNames returns the type names in declaration order.
func (s *Schema) TypeNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of indexed types.
func (s *Schema) Len() int {
	return len(s.types)
}

// OperationFor returns the operation keyword used when the given type is the
// root of a document.
func (s *Schema) OperationFor(root string) string {
	switch {
	case root != "" && root == s.MutationType:
		return "mutation"
	case root != "" && root == s.SubscriptionType:
		return "subscription"
	}
	return "query"
}
