package querygen

import (
	"strings"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
)

const typenameField = "__typename"

// selectionBuilder emits bounded selection sets for one operation. The total
// field count is shared by every recursive call of the same operation.
type selectionBuilder struct {
	schema *introspection.Schema
	opts   Options
	vars   *VarContext
	total  int
}

func newSelectionBuilder(schema *introspection.Schema, opts Options, vars *VarContext) *selectionBuilder {
	return &selectionBuilder{schema: schema, opts: opts, vars: vars}
}

// build returns the fields selected on typeName, never an empty string.
// shapes is shared by sibling inline fragments and is nil elsewhere.
func (b *selectionBuilder) build(typeName string, depth int, visited map[string]bool, shapes map[string]string) string {
	if depth <= 0 {
		return typenameField
	}

	if visited[typeName] {
		if b.opts.CyclePolicy == CycleScalars {
			return b.leavesOnly(typeName, shapes)
		}
		return typenameField
	}

	def, ok := b.schema.Type(typeName)
	if !ok {
		return typenameField
	}

	branch := make(map[string]bool, len(visited)+1)
	for k := range visited {
		branch[k] = true
	}
	branch[typeName] = true

	switch def.Kind {
	case introspection.KindObject:
	case introspection.KindInterface, introspection.KindUnion:
		if b.opts.InlineFragments {
			return b.fragments(def, depth, branch)
		}
		return typenameField
	default:
		return typenameField
	}

	var out []string
	count := 0
	for _, f := range def.Fields {
		if b.total >= b.opts.MaxTotalFields || count >= b.opts.MaxFieldsPerType {
			break
		}
		if f.HasRequiredArgs() && !b.opts.IncludeRequiredArgsFields {
			continue
		}

		kind, child := introspection.UnwrapNamed(f.Type)
		if !kind.IsLeaf() && !kind.IsComposite() {
			continue
		}
		if !sameShape(shapes, f.Name, f.Type) {
			continue
		}

		sel := f.Name + b.arguments(typeName, f)
		if kind.IsComposite() {
			sel += " { " + b.build(child, depth-1, branch, nil) + " }"
		}
		out = append(out, sel)
		count++
		b.total++
	}

	if len(out) == 0 {
		return typenameField
	}
	return strings.Join(out, " ")
}

// leavesOnly selects __typename plus the scalar and enum fields found among
// the first MaxFieldsPerType fields of an object type.
func (b *selectionBuilder) leavesOnly(typeName string, shapes map[string]string) string {
	def, ok := b.schema.Type(typeName)
	if !ok || def.Kind != introspection.KindObject {
		return typenameField
	}

	out := []string{typenameField}
	for i, f := range def.Fields {
		if i >= b.opts.MaxFieldsPerType {
			break
		}
		if f.HasRequiredArgs() {
			continue
		}
		if kind, _ := introspection.UnwrapNamed(f.Type); kind.IsLeaf() && sameShape(shapes, f.Name, f.Type) {
			out = append(out, f.Name)
		}
	}
	return strings.Join(out, " ")
}

// fragments expands an abstract type into inline fragments on each of its
// possible object types. A member field whose name was already selected by an
// earlier fragment with a different type is left out, since the two could
// not be merged into one response.
func (b *selectionBuilder) fragments(def *introspection.TypeDef, depth int, branch map[string]bool) string {
	out := []string{typenameField}
	shapes := map[string]string{}
	count := 0
	for i := range def.PossibleTypes {
		if b.total >= b.opts.MaxTotalFields || count >= b.opts.MaxFieldsPerType {
			break
		}
		_, member := introspection.UnwrapNamed(&def.PossibleTypes[i])
		if b.schema.KindOf(member) != introspection.KindObject {
			continue
		}
		out = append(out, "... on "+member+" { "+b.build(member, depth, branch, shapes)+" }")
		count++
		b.total++
	}
	return strings.Join(out, " ")
}

// sameShape records the type selected under name and reports whether it
// matches what a sibling fragment already selected there. A nil map accepts
// everything.
func sameShape(shapes map[string]string, name string, ref *introspection.TypeRef) bool {
	if shapes == nil {
		return true
	}
	typ := ref.String()
	if prev, ok := shapes[name]; ok {
		return prev == typ
	}
	shapes[name] = typ
	return true
}

// arguments renders "(a: $v, b: 1)" for the required arguments of f, plus
// the optional ones when enabled. It returns "" when nothing is passed.
func (b *selectionBuilder) arguments(parent string, f introspection.Field) string {
	var assigns []string
	for _, a := range f.Args {
		if !a.Required() && !b.opts.IncludeOptionalArgs {
			continue
		}
		if b.opts.ArgMode == ArgModeVars {
			name := b.vars.Register(parent+"_"+f.Name+"_"+a.Name, a.Type)
			assigns = append(assigns, a.Name+": $"+name)
			continue
		}
		assigns = append(assigns, a.Name+": "+Literal(Synthesize(b.schema, a.Type, b.opts.MaxInputDepth)))
	}
	if len(assigns) == 0 {
		return ""
	}
	return "(" + strings.Join(assigns, ", ") + ")"
}
