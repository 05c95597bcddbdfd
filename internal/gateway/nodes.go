package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flemzord/tgdispatch/internal/core"
	"github.com/flemzord/tgdispatch/internal/node"
)

// nodeJSON is a serializable node catalog entry.
type nodeJSON struct {
	ID     string      `json:"id"`
	Schema node.Schema `json:"schema"`
}

// handleListNodes returns the catalog of registered nodes with their
// schemas.
func (g *Gateway) handleListNodes() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		nodes := node.Registered()
		out := make([]nodeJSON, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, nodeJSON{
				ID:     string(n.ModuleInfo().ID),
				Schema: n.Describe(),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

// runRequest is the body of POST /api/nodes/{id}/run.
type runRequest struct {
	Inputs node.Values `json:"inputs"`
}

// runResponse reports one node execution. Cache is always "never": dispatch
// nodes have side effects, so no execution result may be reused.
type runResponse struct {
	Outputs    node.Values `json:"outputs"`
	ExecutedAt time.Time   `json:"executed_at"`
	Cache      string      `json:"cache"`
}

// handleRunNode executes a loaded node with the inputs from the request
// body. Only nodes that were loaded from the configuration are runnable;
// registry entries without a loaded instance have no configuration to run
// with.
func (g *Gateway) handleRunNode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		svc, ok := g.appCtx.Service(id)
		if !ok {
			http.Error(w, "node not loaded: "+id, http.StatusNotFound)
			return
		}
		n, ok := svc.(node.Node)
		if !ok {
			http.Error(w, "not a node: "+id, http.StatusNotFound)
			return
		}

		var req runRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		start := time.Now()
		out, err := n.Run(r.Context(), req.Inputs)
		g.metrics.RecordRun(id, err, time.Since(start))

		if err != nil {
			g.logger.Error("node run failed", "node", id, "error", err)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, runResponse{
			Outputs:    out,
			ExecutedAt: start.UTC(),
			Cache:      "never",
		})
	}
}

// moduleJSON is a serializable module registry entry.
type moduleJSON struct {
	ID        string `json:"id"`
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
}

// handleListModules lists all compiled modules.
func (g *Gateway) handleListModules() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		mods := core.GetModules()
		out := make([]moduleJSON, 0, len(mods))
		for _, m := range mods {
			out = append(out, moduleJSON{
				ID:        string(m.ID),
				Namespace: m.ID.Namespace(),
				Name:      m.ID.Name(),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
