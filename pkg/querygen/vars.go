package querygen

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
)

var (
	nonIdentChars = regexp.MustCompile(`[^A-Za-z0-9_]`)
	underscoreRun = regexp.MustCompile(`__+`)
)

// VarContext collects the variables declared while one operation is built.
type VarContext struct {
	schema   *introspection.Schema
	mode     ArgMode
	maxDepth int

	names  []string
	types  map[string]string
	values map[string]any
}

// NewVarContext returns an empty context. Values are synthesized with
// maxInputDepth levels of input object nesting.
func NewVarContext(schema *introspection.Schema, mode ArgMode, maxInputDepth int) *VarContext {
	return &VarContext{
		schema:   schema,
		mode:     mode,
		maxDepth: maxInputDepth,
		types:    make(map[string]string),
		values:   make(map[string]any),
	}
}

// Register declares a variable for ref derived from hint and returns its
// name. A name already declared with the same type is reused; a clash with
// a different type gets a numeric suffix.
func (c *VarContext) Register(hint string, ref *introspection.TypeRef) string {
	base := sanitizeVarName(hint)
	typ := ref.String()

	name := base
	for i := 2; ; i++ {
		existing, ok := c.types[name]
		if !ok {
			break
		}
		if existing == typ {
			return name
		}
		name = base + "_" + strconv.Itoa(i)
	}

	c.names = append(c.names, name)
	c.types[name] = typ
	c.values[name] = Synthesize(c.schema, ref, c.maxDepth)
	return name
}

// Definitions renders "($a: T, $b: U)" in declaration order, or "" when no
// variable was registered.
func (c *VarContext) Definitions() string {
	if len(c.names) == 0 {
		return ""
	}
	defs := make([]string, len(c.names))
	for i, n := range c.names {
		defs[i] = "$" + n + ": " + c.types[n]
	}
	return "(" + strings.Join(defs, ", ") + ")"
}

// Variables returns the synthesized values in declaration order. It is empty
// in inline mode.
func (c *VarContext) Variables() Object {
	vars := Object{}
	if c.mode != ArgModeVars {
		return vars
	}
	for _, n := range c.names {
		vars = append(vars, Member{Key: n, Value: c.values[n]})
	}
	return vars
}

// Len returns the number of declared variables.
func (c *VarContext) Len() int {
	return len(c.names)
}

func sanitizeVarName(hint string) string {
	name := nonIdentChars.ReplaceAllString(hint, "_")
	name = underscoreRun.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "v"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "v_" + name
	}
	return name
}
