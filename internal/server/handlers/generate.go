package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sanixdarker/gqlpath/internal/app"
	"github.com/sanixdarker/gqlpath/internal/check"
	"github.com/sanixdarker/gqlpath/internal/httpreq"
	"github.com/sanixdarker/gqlpath/internal/schemacache"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// GenerateHandler serves path search, query synthesis, SDL export and
// query checks.
type GenerateHandler struct {
	app     *app.App
	schemas *schemacache.Cache
}

// NewGenerateHandler creates a new GenerateHandler that parses schemas
// through the given cache.
func NewGenerateHandler(application *app.App, schemas *schemacache.Cache) *GenerateHandler {
	return &GenerateHandler{app: application, schemas: schemas}
}

type pathsResponse struct {
	Root   string          `json:"root"`
	Target string          `json:"target"`
	Paths  []querygen.Path `json:"paths"`
	Labels []string        `json:"labels"`
}

type queriesResponse struct {
	Root      string               `json:"root"`
	Target    string               `json:"target"`
	Operation string               `json:"operation"`
	Labels    []string             `json:"labels"`
	Bodies    []querygen.QueryBody `json:"bodies"`
	Requests  []string             `json:"requests,omitempty"`
	RunID     string               `json:"runId,omitempty"`
}

// Paths returns every path from root to target.
func (h *GenerateHandler) Paths(w http.ResponseWriter, r *http.Request) {
	p, ok := h.prepare(w, r)
	if !ok {
		return
	}

	paths, err := p.gen.Paths(p.req.Root, p.req.Target)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	resp := pathsResponse{Root: p.req.Root, Target: p.req.Target, Paths: paths, Labels: []string{}}
	if resp.Paths == nil {
		resp.Paths = []querygen.Path{}
	}
	for _, path := range paths {
		resp.Labels = append(resp.Labels, path.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

// Queries returns a request body per path, optionally archiving the run and
// rendering raw HTTP requests.
func (h *GenerateHandler) Queries(w http.ResponseWriter, r *http.Request) {
	p, ok := h.prepare(w, r)
	if !ok {
		return
	}

	res, err := p.gen.Generate(p.req.Root, p.req.Target)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	resp := queriesResponse{
		Root:      res.Root,
		Target:    res.Target,
		Operation: p.schema.OperationFor(res.Root),
		Labels:    res.Labels,
		Bodies:    res.Bodies,
	}
	if resp.Bodies == nil {
		resp.Bodies = []querygen.QueryBody{}
		resp.Labels = []string{}
	}

	if p.req.RawRequests {
		for _, b := range res.Bodies {
			raw, err := httpreq.Build(h.app.Config.Target, b)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			resp.Requests = append(resp.Requests, raw)
		}
	}

	if p.req.Save {
		svc, err := h.app.Catalog()
		if err != nil {
			h.app.Logger.Error("failed to open run archive", "error", err)
			writeError(w, http.StatusInternalServerError, "run archive unavailable")
			return
		}
		run, err := svc.SaveResult(p.req.Schema, resp.Operation, p.gen.Options(), res)
		if err != nil {
			h.app.Logger.Error("failed to save run", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save run")
			return
		}
		resp.RunID = run.ID
	}

	h.app.Logger.Debug("generated queries", "root", res.Root, "target", res.Target, "bodies", len(res.Bodies))
	writeJSON(w, http.StatusOK, resp)
}

// SDL converts an introspection document to schema definition language.
func (h *GenerateHandler) SDL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Schema json.RawMessage `json:"schema"`
	}
	if !decode(w, r, &req) {
		return
	}

	schema, err := h.schemas.Parse(req.Schema)
	if err != nil {
		writeGenerateError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(schema.SDL()))
}

type checkRequest struct {
	Schema json.RawMessage      `json:"schema"`
	Bodies []querygen.QueryBody `json:"bodies"`
}

type checkResponse struct {
	Results []check.Result `json:"results"`
	Failed  int            `json:"failed"`
}

// Check validates request bodies against a schema.
func (h *GenerateHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if !decode(w, r, &req) {
		return
	}

	schema, err := h.schemas.Parse(req.Schema)
	if err != nil {
		writeGenerateError(w, err)
		return
	}
	checker, err := check.New(schema)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results := checker.All(req.Bodies)
	writeJSON(w, http.StatusOK, checkResponse{Results: results, Failed: check.Failed(results)})
}
