package querygen

import (
	"strings"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
)

// PathStep is one field traversal from a parent type to a child type.
type PathStep struct {
	ParentType string `json:"parentType"`
	FieldName  string `json:"fieldName"`
	ChildType  string `json:"childType"`
}

// Path is a chain of field traversals from the root to the target type.
type Path []PathStep

// String renders the path as "Root (field) -> Child (field) -> Target".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p)+1)
	for _, s := range p {
		parts = append(parts, s.ParentType+" ("+s.FieldName+")")
	}
	parts = append(parts, p[len(p)-1].ChildType)
	return strings.Join(parts, " -> ")
}

type pathEntry struct {
	typeName string
	steps    Path
	visited  map[string]bool
}

// FindPaths enumerates field paths from root to target breadth first, so
// shorter paths come first. A type never repeats within one path. Search
// stops once maxPaths paths are found; entries whose path already holds
// maxDepth steps are not expanded.
func FindPaths(schema *introspection.Schema, root, target string, maxDepth, maxPaths int) []Path {
	var paths []Path
	if maxPaths <= 0 {
		return paths
	}

	queue := []pathEntry{{typeName: root, visited: map[string]bool{root: true}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if len(cur.steps) >= maxDepth {
			continue
		}
		def, ok := schema.Type(cur.typeName)
		if !ok {
			continue
		}

		for _, f := range def.Fields {
			_, child := introspection.UnwrapNamed(f.Type)
			if child == introspection.Unknown {
				continue
			}
			step := PathStep{ParentType: cur.typeName, FieldName: f.Name, ChildType: child}

			if child == target {
				paths = append(paths, extend(cur.steps, step))
				if len(paths) >= maxPaths {
					return paths
				}
				continue
			}

			if !schema.KindOf(child).IsComposite() || cur.visited[child] {
				continue
			}
			visited := make(map[string]bool, len(cur.visited)+1)
			for k := range cur.visited {
				visited[k] = true
			}
			visited[child] = true
			queue = append(queue, pathEntry{typeName: child, steps: extend(cur.steps, step), visited: visited})
		}
	}
	return paths
}

func extend(steps Path, step PathStep) Path {
	out := make(Path, len(steps), len(steps)+1)
	copy(out, steps)
	return append(out, step)
}
