package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// WriteBodies writes bodies as NDJSON (one compact object per line) or as a
// JSON array indented by two spaces. No bodies produce an empty file for
// NDJSON and [] for an array.
func WriteBodies(w io.Writer, bodies []querygen.QueryBody, format string) error {
	switch format {
	case config.FormatNDJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for i, b := range bodies {
			if err := enc.Encode(b); err != nil {
				return fmt.Errorf("failed to write body %d: %w", i+1, err)
			}
		}
		return nil
	case config.FormatJSONArray:
		if len(bodies) == 0 {
			_, err := io.WriteString(w, "[]")
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bodies); err != nil {
			return fmt.Errorf("failed to write bodies: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

// ReadBodies reads a file written by WriteBodies in either format.
func ReadBodies(data []byte) ([]querygen.QueryBody, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var bodies []querygen.QueryBody
		if err := json.Unmarshal(trimmed, &bodies); err != nil {
			return nil, fmt.Errorf("failed to parse JSON array: %w", err)
		}
		return bodies, nil
	}

	var bodies []querygen.QueryBody
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	for dec.More() {
		var b querygen.QueryBody
		if err := dec.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to parse body %d: %w", len(bodies)+1, err)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}
