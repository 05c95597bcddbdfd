package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/flemzord/tgdispatch/internal/node"
)

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Nodes   int    `json:"nodes"`
	Journal bool   `json:"journal"`
}

// handleHealth returns an http.HandlerFunc for GET /health. The gateway has
// no upstream dependency to probe, so a reachable server is a healthy one.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(g.startedAt).Round(time.Second).String(),
			Nodes:   len(node.Registered()),
			Journal: g.journal != nil,
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
