package querygen

import "strings"

// Pretty indents a single-line operation, one selection per line. Quoted
// strings and parenthesized argument lists stay on the line of their field.
// Anything after the outermost closing brace is dropped.
func Pretty(compact string, indent int, trailingNewline bool) string {
	s := strings.TrimSpace(compact)
	tokens := tokenize(s)

	open, last := -1, -1
	for i, t := range tokens {
		if t == "{" && open < 0 {
			open = i
		}
		if t == "}" {
			last = i
		}
	}
	if open < 0 || last <= open {
		return s
	}

	pad := func(depth int) string {
		return strings.Repeat(" ", indent*depth)
	}

	var sb strings.Builder
	if header := strings.Join(tokens[:open], " "); header != "" {
		sb.WriteString(header)
		sb.WriteByte(' ')
	}
	sb.WriteString("{\n")

	body := tokens[open+1 : last]
	depth := 1
	for i := 0; i < len(body); i++ {
		tok := body[i]
		switch tok {
		case "{":
			sb.WriteString("{\n")
			depth++
			continue
		case "}":
			if depth > 1 {
				depth--
			}
			sb.WriteString(pad(depth) + "}\n")
			continue
		}

		if strings.HasSuffix(tok, ":") && i+1 < len(body) && !isBrace(body[i+1]) {
			tok += " " + body[i+1]
			i++
		}
		if tok == "..." && i+2 < len(body) && body[i+1] == "on" && !isBrace(body[i+2]) {
			tok = "... on " + body[i+2]
			i += 2
		}

		sb.WriteString(pad(depth) + tok)
		if i+1 < len(body) && body[i+1] == "{" {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte('\n')
		}
	}

	sb.WriteByte('}')
	if trailingNewline {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Compact collapses every whitespace run outside string literals into one
// space.
func Compact(text string) string {
	var sb strings.Builder
	s := strings.TrimSpace(text)
	space := false
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isSpace(c):
			space = true
			i++
			continue
		case c == '"':
			j := scanString(s, i)
			if space {
				sb.WriteByte(' ')
			}
			sb.WriteString(s[i:j])
			i = j
		default:
			if space {
				sb.WriteByte(' ')
			}
			sb.WriteByte(c)
			i++
		}
		space = false
	}
	return sb.String()
}

// tokenize splits on whitespace and braces. A parenthesized group is glued
// to the token it follows with its inner whitespace normalized.
func tokenize(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isSpace(c):
			flush()
			i++
		case isBrace(string(c)):
			flush()
			tokens = append(tokens, string(c))
			i++
		case c == '"':
			j := scanString(s, i)
			cur.WriteString(s[i:j])
			i = j
		case c == '(':
			i = scanGroup(s, i, &cur)
		default:
			cur.WriteByte(c)
			i++
		}
	}
	flush()
	return tokens
}

// scanGroup copies the balanced group starting at s[start] == '(' into sb
// and returns the index just past it.
func scanGroup(s string, start int, sb *strings.Builder) int {
	depth := 0
	space := false
	i := start
	for i < len(s) {
		c := s[i]
		if isSpace(c) {
			space = true
			i++
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		switch c {
		case '"':
			j := scanString(s, i)
			sb.WriteString(s[i:j])
			i = j
			continue
		case '(':
			depth++
		case ')':
			depth--
		}
		sb.WriteByte(c)
		i++
		if depth == 0 {
			break
		}
	}
	return i
}

// scanString returns the index just past the string literal starting at
// s[start] == '"'. Unterminated strings run to the end of s.
func scanString(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isBrace(tok string) bool {
	return tok == "{" || tok == "}"
}
