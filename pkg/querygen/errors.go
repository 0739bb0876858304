package querygen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/sanixdarker/gqlpath/pkg/introspection"
)

const maxSuggestions = 3

// UnknownTypeError reports a root or target type missing from the schema.
type UnknownTypeError struct {
	Role        string
	Name        string
	Suggestions []string
}

func (e *UnknownTypeError) Error() string {
	msg := fmt.Sprintf("%s type %q not found in schema", e.Role, e.Name)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// VariableConflictError reports two bundled operations declaring the same
// variable with different types.
type VariableConflictError struct {
	Name   string
	First  string
	Second string
}

func (e *VariableConflictError) Error() string {
	return fmt.Sprintf("variable $%s declared as both %s and %s", e.Name, e.First, e.Second)
}

func newUnknownTypeError(schema *introspection.Schema, role, name string) *UnknownTypeError {
	return &UnknownTypeError{Role: role, Name: name, Suggestions: suggest(schema.TypeNames(), name)}
}

// suggest returns close type names ordered by edit distance, then name.
func suggest(names []string, name string) []string {
	limit := len(name) / 3
	if limit < 2 {
		limit = 2
	}

	type candidate struct {
		name string
		dist int
	}
	var found []candidate
	for _, n := range names {
		if strings.HasPrefix(n, "__") {
			continue
		}
		if d := levenshtein.Distance(strings.ToLower(name), strings.ToLower(n), nil); d <= limit {
			found = append(found, candidate{n, d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].name < found[j].name
	})

	var out []string
	for i := 0; i < len(found) && i < maxSuggestions; i++ {
		out = append(out, found[i].name)
	}
	return out
}
