package querygen

import "github.com/sanixdarker/gqlpath/pkg/introspection"

// Placeholder is the sentinel used for values that have no better default.
const Placeholder = "REPLACE_ME"

// EnumFallback is used for enums that declare no values.
const EnumFallback EnumValue = "ENUM_VALUE"

var scalarDefaults = map[string]any{
	"String":  Placeholder,
	"ID":      Placeholder,
	"Int":     1,
	"Float":   1.0,
	"Boolean": true,
}

// Synthesize produces a structurally valid sample value for ref. Input
// objects are expanded until maxDepth levels of nesting, after which the
// sentinel is returned. It never fails: unknown types degrade to the
// sentinel.
func Synthesize(schema *introspection.Schema, ref *introspection.TypeRef, maxDepth int) any {
	return synthesize(schema, ref, maxDepth, 0)
}

func synthesize(schema *introspection.Schema, ref *introspection.TypeRef, maxDepth, depth int) any {
	if depth > maxDepth {
		return Placeholder
	}

	kind, name := introspection.UnwrapNamed(ref)

	var val any
	switch kind {
	case introspection.KindScalar:
		if d, ok := scalarDefaults[name]; ok {
			val = d
		} else {
			val = Placeholder
		}
	case introspection.KindEnum:
		val = EnumFallback
		if def, ok := schema.Type(name); ok && len(def.EnumValues) > 0 {
			val = EnumValue(def.EnumValues[0].Name)
		}
	case introspection.KindInputObject:
		val = synthesizeInput(schema, name, maxDepth, depth)
	default:
		val = Placeholder
	}

	if introspection.HasListWrapper(ref) {
		return []any{val}
	}
	return val
}

// synthesizeInput fills every required field. When none is required the
// first field is used so that the object is never empty.
func synthesizeInput(schema *introspection.Schema, name string, maxDepth, depth int) Object {
	obj := Object{}
	def, ok := schema.Type(name)
	if !ok {
		return obj
	}

	for _, f := range def.InputFields {
		if f.Required() {
			obj = append(obj, Member{Key: f.Name, Value: synthesize(schema, f.Type, maxDepth, depth+1)})
		}
	}
	if len(obj) == 0 && len(def.InputFields) > 0 {
		f := def.InputFields[0]
		obj = append(obj, Member{Key: f.Name, Value: synthesize(schema, f.Type, maxDepth, depth+1)})
	}
	return obj
}
