package introspection

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/buger/jsonparser"
)

// SchemaLoadError reports an introspection document that cannot be used.
type SchemaLoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *SchemaLoadError) Error() string {
	msg := e.Reason
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads and parses an introspection result from disk.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		reason := "failed to read schema file"
		if errors.Is(err, os.ErrNotExist) {
			reason = "schema file not found"
		}
		return nil, &SchemaLoadError{Source: path, Reason: reason, Err: err}
	}

	s, err := Parse(data)
	if err != nil {
		var le *SchemaLoadError
		if errors.As(err, &le) {
			le.Source = path
		}
		return nil, err
	}
	return s, nil
}

type namedRef struct {
	Name string `json:"name"`
}

type rawSchema struct {
	QueryType        *namedRef `json:"queryType"`
	MutationType     *namedRef `json:"mutationType"`
	SubscriptionType *namedRef `json:"subscriptionType"`
}

// Parse decodes an introspection result. The __schema object may sit at the
// top level or under data.__schema.
func Parse(data []byte) (*Schema, error) {
	// jsonparser finds keys in truncated or trailing-garbage documents too.
	if !json.Valid(data) {
		return nil, &SchemaLoadError{Reason: "invalid JSON", Err: jsonError(data)}
	}

	node, err := locateSchema(data)
	if err != nil {
		return nil, &SchemaLoadError{Reason: "missing data.__schema or __schema"}
	}

	typesNode, dataType, _, err := jsonparser.Get(node, "types")
	if err != nil || dataType != jsonparser.Array {
		return nil, &SchemaLoadError{Reason: "__schema.types is not an array"}
	}

	var defs []TypeDef
	if err := json.Unmarshal(typesNode, &defs); err != nil {
		return nil, &SchemaLoadError{Reason: "malformed __schema.types", Err: err}
	}

	var roots rawSchema
	if err := json.Unmarshal(node, &roots); err != nil {
		return nil, &SchemaLoadError{Reason: "malformed __schema", Err: err}
	}

	s := NewSchema(defs)
	if roots.QueryType != nil {
		s.QueryType = roots.QueryType.Name
	}
	if roots.MutationType != nil {
		s.MutationType = roots.MutationType.Name
	}
	if roots.SubscriptionType != nil {
		s.SubscriptionType = roots.SubscriptionType.Name
	}
	return s, nil
}

func locateSchema(data []byte) ([]byte, error) {
	for _, keys := range [][]string{{"data", "__schema"}, {"__schema"}} {
		node, dataType, _, err := jsonparser.Get(data, keys...)
		if err != nil {
			continue
		}
		if dataType != jsonparser.Object {
			return nil, fmt.Errorf("%v is not an object", keys)
		}
		return node, nil
	}
	return nil, jsonparser.KeyPathNotFoundError
}

func jsonError(data []byte) error {
	var v any
	return json.Unmarshal(data, &v)
}
