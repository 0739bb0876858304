package querygen

import (
	"strings"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
)

// QueryBody is a GraphQL request body.
type QueryBody struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName"`
	Variables     Object `json:"variables"`
}

// BuildQuery synthesizes one operation that walks path down to target and
// selects a bounded set of target fields. Every argument of the path fields
// and of the selected fields gets a variable or a literal, depending on
// opts.ArgMode.
func BuildQuery(schema *introspection.Schema, target string, path Path, opName string, opts Options) QueryBody {
	vars := NewVarContext(schema, opts.ArgMode, opts.MaxInputDepth)
	sb := newSelectionBuilder(schema, opts, vars)

	// A scalar or enum target is selected as a bare leaf field.
	inner := ""
	if len(path) == 0 || !schema.KindOf(target).IsLeaf() {
		inner = "{ " + sb.build(target, opts.SelectionDepth, map[string]bool{}, nil) + " }"
	}
	for i := len(path) - 1; i >= 0; i-- {
		step := path[i]
		sel := step.FieldName
		if f, ok := schema.Field(step.ParentType, step.FieldName); ok {
			sel += sb.arguments(step.ParentType, *f)
		}
		if inner != "" {
			sel += " " + inner
		}
		inner = "{ " + sel + " }"
	}

	root := target
	if len(path) > 0 {
		root = path[0].ParentType
	}

	var q strings.Builder
	q.WriteString(schema.OperationFor(root))
	q.WriteByte(' ')
	q.WriteString(opName)
	q.WriteString(vars.Definitions())
	q.WriteByte(' ')
	q.WriteString(inner)

	return QueryBody{
		Query:         q.String(),
		OperationName: opName,
		Variables:     vars.Variables(),
	}
}
