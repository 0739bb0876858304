package querygen

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Literal encodes a synthesized value as a GraphQL input literal.
func Literal(v any) string {
	var sb strings.Builder
	writeLiteral(&sb, v)
	return sb.String()
}

func writeLiteral(sb *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		sb.WriteString("null")
	case string:
		sb.WriteByte('"')
		sb.WriteString(stringEscaper.Replace(val))
		sb.WriteByte('"')
	case EnumValue:
		sb.WriteString(string(val))
	case bool:
		sb.WriteString(strconv.FormatBool(val))
	case int:
		sb.WriteString(strconv.Itoa(val))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case float64:
		sb.WriteString(formatFloat(val))
	case json.Number:
		sb.WriteString(val.String())
	case []any:
		sb.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeLiteral(sb, item)
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, m := range val {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.Key)
			sb.WriteString(": ")
			writeLiteral(sb, m.Value)
		}
		sb.WriteByte('}')
	default:
		writeLiteral(sb, fmt.Sprint(val))
	}
}

// formatFloat always keeps a decimal point so the literal stays a Float.
func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
