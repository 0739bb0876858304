// Package handlers implements the JSON API endpoints.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sanixdarker/gqlpath/pkg/introspection"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// MaxBodySize caps request bodies at 10MB.
const MaxBodySize = 10 << 20

// GenerateRequest is the input of the path and query endpoints.
type GenerateRequest struct {
	Schema      json.RawMessage `json:"schema"`
	Root        string          `json:"root"`
	Target      string          `json:"target"`
	Options     json.RawMessage `json:"options,omitempty"`
	Save        bool            `json:"save,omitempty"`
	RawRequests bool            `json:"rawRequests,omitempty"`
}

type errorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// prepared holds a decoded request ready for generation.
type prepared struct {
	req    GenerateRequest
	schema *introspection.Schema
	gen    *querygen.Generator
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeGenerateError maps generation errors to status codes.
func writeGenerateError(w http.ResponseWriter, err error) {
	var unknown *querygen.UnknownTypeError
	var load *introspection.SchemaLoadError
	var conflict *querygen.VariableConflictError

	switch {
	case errors.As(err, &unknown):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Suggestions: unknown.Suggestions})
	case errors.As(err, &load):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &conflict):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decode reads a JSON body no larger than MaxBodySize into v.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// prepare decodes a GenerateRequest, parses its schema and builds a
// generator whose options are the configured defaults overlaid with the
// request's options.
func (h *GenerateHandler) prepare(w http.ResponseWriter, r *http.Request) (*prepared, bool) {
	var p prepared
	if !decode(w, r, &p.req) {
		return nil, false
	}
	if len(p.req.Schema) == 0 {
		writeError(w, http.StatusBadRequest, "schema is required")
		return nil, false
	}
	if p.req.Target == "" {
		writeError(w, http.StatusBadRequest, "target is required")
		return nil, false
	}
	if p.req.Root == "" {
		p.req.Root = h.app.Config.Root
	}

	schema, err := h.schemas.Parse(p.req.Schema)
	if err != nil {
		writeGenerateError(w, err)
		return nil, false
	}
	p.schema = schema

	limits := h.app.Config.Options()
	opts := limits
	if len(p.req.Options) > 0 {
		if err := json.Unmarshal(p.req.Options, &opts); err != nil {
			writeError(w, http.StatusBadRequest, "invalid options: "+err.Error())
			return nil, false
		}
		clampBudgets(&opts, limits)
	}

	p.gen, err = querygen.New(schema, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid options: %v", err))
		return nil, false
	}
	return &p, true
}

// clampBudgets lowers every search and synthesis budget in opts to the
// configured value. Requests may tighten budgets but never raise them.
func clampBudgets(opts *querygen.Options, limits querygen.Options) {
	clamp := func(v *int, max int) {
		if *v > max {
			*v = max
		}
	}
	clamp(&opts.MaxPathDepth, limits.MaxPathDepth)
	clamp(&opts.MaxPaths, limits.MaxPaths)
	clamp(&opts.SelectionDepth, limits.SelectionDepth)
	clamp(&opts.MaxFieldsPerType, limits.MaxFieldsPerType)
	clamp(&opts.MaxTotalFields, limits.MaxTotalFields)
	clamp(&opts.MaxInputDepth, limits.MaxInputDepth)
}
