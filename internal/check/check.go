// Package check validates generated request bodies against the schema they
// were generated from.
package check

import (
	"fmt"
	"sort"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Result is the outcome of checking one body.
type Result struct {
	Index         int      `json:"index"`
	OperationName string   `json:"operationName"`
	Errors        []string `json:"errors,omitempty"`
}

// OK reports whether the body passed.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Checker validates query documents with gqlparser.
type Checker struct {
	schema *ast.Schema
}

// New builds a checker from an introspected schema.
func New(schema *introspection.Schema) (*Checker, error) {
	exec, err := schema.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to build schema for validation: %w", err)
	}
	return &Checker{schema: exec}, nil
}

// Body parses and validates a single body. The query must contain exactly
// one operation named like the body, and every declared variable must have a
// value.
func (c *Checker) Body(body querygen.QueryBody) []string {
	doc, errs := gqlparser.LoadQuery(c.schema, body.Query)
	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}

	if len(doc.Operations) != 1 {
		return []string{fmt.Sprintf("expected 1 operation, found %d", len(doc.Operations))}
	}
	op := doc.Operations[0]

	var msgs []string
	if op.Name != body.OperationName {
		msgs = append(msgs, fmt.Sprintf("operationName %q does not match operation %q", body.OperationName, op.Name))
	}

	declared := make(map[string]bool, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		declared[def.Variable] = true
		if _, ok := body.Variables.Get(def.Variable); !ok {
			msgs = append(msgs, fmt.Sprintf("variable $%s has no value", def.Variable))
		}
	}

	var extra []string
	for _, key := range body.Variables.Keys() {
		if !declared[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		msgs = append(msgs, fmt.Sprintf("variable %q is not declared", key))
	}
	return msgs
}

// All checks every body in order.
func (c *Checker) All(bodies []querygen.QueryBody) []Result {
	results := make([]Result, len(bodies))
	for i, b := range bodies {
		results[i] = Result{
			Index:         i + 1,
			OperationName: b.OperationName,
			Errors:        c.Body(b),
		}
	}
	return results
}

// Failed counts the results with errors.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}
