// Package querygen finds field paths through an introspected GraphQL schema
// and synthesizes operations that reach a target type along each of them.
package querygen

import (
	"fmt"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
)

// Generator runs path search and query synthesis over one schema. It holds
// no mutable state and is safe for concurrent use.
type Generator struct {
	schema *introspection.Schema
	opts   Options
}

// Result holds the paths found and one body per path, or a single body when
// bundling. Labels describe each body for display.
type Result struct {
	Root   string      `json:"root"`
	Target string      `json:"target"`
	Paths  []Path      `json:"paths"`
	Bodies []QueryBody `json:"bodies"`
	Labels []string    `json:"labels"`
}

// New validates opts and returns a generator.
func New(schema *introspection.Schema, opts Options) (*Generator, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema is required")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Generator{schema: schema, opts: opts}, nil
}

// Schema returns the schema the generator works on.
func (g *Generator) Schema() *introspection.Schema {
	return g.schema
}

// Options returns the generator options.
func (g *Generator) Options() Options {
	return g.opts
}

// Paths checks that target and root exist, in that order, and returns every
// path between them within the configured budgets. An unreachable target
// yields an empty slice, not an error.
func (g *Generator) Paths(root, target string) ([]Path, error) {
	if !g.schema.Has(target) {
		return nil, newUnknownTypeError(g.schema, "target", target)
	}
	if !g.schema.Has(root) {
		return nil, newUnknownTypeError(g.schema, "root", root)
	}
	return FindPaths(g.schema, root, target, g.opts.MaxPathDepth, g.opts.MaxPaths), nil
}

// Generate finds the paths from root to target and builds a request body
// for each. With Bundle set the bodies are merged into one aliased
// operation; with Pretty set the query text is indented.
func (g *Generator) Generate(root, target string) (*Result, error) {
	paths, err := g.Paths(root, target)
	if err != nil {
		return nil, err
	}

	res := &Result{Root: root, Target: target, Paths: paths}
	for i, p := range paths {
		res.Bodies = append(res.Bodies, BuildQuery(g.schema, target, p, OperationName(target, i+1), g.opts))
		res.Labels = append(res.Labels, p.String())
	}

	if g.opts.Bundle && len(res.Bodies) > 0 {
		bundled, err := Bundle(res.Bodies, BundledOperationName(target))
		if err != nil {
			return nil, fmt.Errorf("failed to bundle operations: %w", err)
		}
		res.Bodies = []QueryBody{bundled}
		res.Labels = []string{fmt.Sprintf("%d paths bundled with aliases -> %s", len(paths), target)}
	}

	if g.opts.Pretty {
		for i := range res.Bodies {
			res.Bodies[i].Query = Pretty(res.Bodies[i].Query, g.opts.Indent, true)
		}
	}
	return res, nil
}

// OperationName returns the name of the n-th generated operation, counting
// from 1.
func OperationName(target string, n int) string {
	return fmt.Sprintf("op_%s_%d", target, n)
}

// BundledOperationName returns the name of the aliased operation.
func BundledOperationName(target string) string {
	return "op_" + target + "_bundled"
}
