package querygen

import (
	"regexp"
	"strconv"
	"strings"
)

var operationPattern = regexp.MustCompile(`(?s)^(query|mutation|subscription)\s+\w+\s*(\([^)]*\))?\s*(\{.*\})\s*$`)

// Bundle merges single-path operations into one operation whose top-level
// selections are aliased p1, p2, ... by position. Bodies that do not look
// like a generated operation are skipped but still consume their alias
// index. Identical variable definitions are declared once; a variable
// declared with two different types yields a *VariableConflictError.
func Bundle(bodies []QueryBody, opName string) (QueryBody, error) {
	keyword := "query"
	var (
		defNames   []string
		defTypes   = map[string]string{}
		selections []string
		variables  = Object{}
	)

	for i, body := range bodies {
		m := operationPattern.FindStringSubmatch(Compact(body.Query))
		if m == nil {
			continue
		}
		if len(selections) == 0 {
			keyword = m[1]
		}

		for _, def := range splitDefinitions(m[2]) {
			name, typ := def[0], def[1]
			if prev, ok := defTypes[name]; ok {
				if prev != typ {
					return QueryBody{}, &VariableConflictError{Name: name, First: prev, Second: typ}
				}
				continue
			}
			defTypes[name] = typ
			defNames = append(defNames, name)
		}

		inner := strings.TrimSpace(m[3])
		inner = strings.TrimSpace(inner[1 : len(inner)-1])
		selections = append(selections, "p"+strconv.Itoa(i+1)+": "+inner)

		for _, v := range body.Variables {
			variables.Set(v.Key, v.Value)
		}
	}

	defs := ""
	if len(defNames) > 0 {
		parts := make([]string, len(defNames))
		for i, n := range defNames {
			parts[i] = "$" + n + ": " + defTypes[n]
		}
		defs = "(" + strings.Join(parts, ", ") + ")"
	}

	return QueryBody{
		Query:         keyword + " " + opName + defs + " { " + strings.Join(selections, " ") + " }",
		OperationName: opName,
		Variables:     variables,
	}, nil
}

// splitDefinitions turns "($a: ID!, $b: [Int])" into name/type pairs.
func splitDefinitions(group string) [][2]string {
	group = strings.TrimSpace(group)
	if len(group) < 2 {
		return nil
	}
	var out [][2]string
	for _, part := range strings.Split(group[1:len(group)-1], ",") {
		name, typ, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimPrefix(strings.TrimSpace(name), "$")
		if name == "" {
			continue
		}
		out = append(out, [2]string{name, strings.TrimSpace(typ)})
	}
	return out
}
