package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flemzord/tgdispatch/internal/journal"
)

// defaultHistoryLimit bounds GET /api/history when no limit is given.
const defaultHistoryLimit = 50

// handleHistory returns recent dispatch journal entries, newest first.
// Responds 503 when no journal module is configured.
func (g *Gateway) handleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if g.journal == nil {
			http.Error(w, "journal not configured", http.StatusServiceUnavailable)
			return
		}

		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				http.Error(w, "invalid limit: "+raw, http.StatusBadRequest)
				return
			}
			limit = n
		}

		entries, err := g.journal.Recent(r.Context(), limit)
		if err != nil {
			g.logger.Error("journal read failed", "error", err)
			http.Error(w, "journal read failed", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []journal.Entry{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entries)
	}
}
