package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sanixdarker/gqlpath/internal/app"
	"github.com/sanixdarker/gqlpath/internal/catalog"
	"github.com/sanixdarker/gqlpath/internal/config"
	"github.com/sanixdarker/gqlpath/internal/console"
	"github.com/sanixdarker/gqlpath/internal/server/middleware"
	"github.com/sanixdarker/gqlpath/pkg/querygen"
)

// RunsHandler serves the run archive.
type RunsHandler struct {
	app *app.App
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(application *app.App) *RunsHandler {
	return &RunsHandler{app: application}
}

func (h *RunsHandler) catalog(w http.ResponseWriter) (*catalog.Service, bool) {
	svc, err := h.app.Catalog()
	if err != nil {
		h.app.Logger.Error("failed to open run archive", "error", err)
		writeError(w, http.StatusInternalServerError, "run archive unavailable")
		return nil, false
	}
	return svc, true
}

func (h *RunsHandler) lookup(w http.ResponseWriter, r *http.Request) (*catalog.Run, bool) {
	svc, ok := h.catalog(w)
	if !ok {
		return nil, false
	}
	id := chi.URLParam(r, "id")
	run, err := svc.GetRun(id)
	if err != nil {
		h.app.Logger.Error("failed to get run", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get run")
		return nil, false
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "run not found: "+id)
		return nil, false
	}
	return run, true
}

// List returns a page of runs. Query parameters: page, page_size.
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.catalog(w)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := svc.ListRuns(page, size)
	if err != nil {
		h.app.Logger.Error("failed to list runs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Get returns one run with its bodies.
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if run, ok := h.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, run)
	}
}

// Export downloads the bodies of a run as NDJSON, or as a JSON array with
// format=json-array.
func (h *RunsHandler) Export(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookup(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	ext := "ndjson"
	switch format {
	case "", config.FormatNDJSON:
		format = config.FormatNDJSON
	case config.FormatJSONArray:
		ext = "json"
	default:
		writeError(w, http.StatusBadRequest, "unknown format: "+format)
		return
	}

	bodies := make([]querygen.QueryBody, len(run.Bodies))
	for i, b := range run.Bodies {
		bodies[i] = b.Body
	}

	short := run.ID
	if len(short) > 8 {
		short = short[:8]
	}
	name := middleware.SanitizeFilename("gqlpath_" + run.Target + "_" + short)
	w.Header().Set("Content-Type", "application/x-ndjson")
	if format == config.FormatJSONArray {
		w.Header().Set("Content-Type", "application/json")
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"."+ext+"\"")
	if err := console.WriteBodies(w, bodies, format); err != nil {
		h.app.Logger.Error("failed to export run", "id", run.ID, "error", err)
	}
}

// Delete removes a run.
func (h *RunsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.catalog(w)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	found, err := svc.DeleteRun(id)
	if err != nil {
		h.app.Logger.Error("failed to delete run", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete run")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "run not found: "+id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
