package telegram

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/flemzord/tgdispatch/pkg/imaging"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

// testImage returns a small valid image.
func testImage() imaging.Image {
	m := imaging.New(2, 2)
	m.Set(0, 0, 1, 0, 0)
	m.Set(1, 1, 0, 0, 1)
	return m
}

// testPolicy keeps resolve-mode delays negligible in tests.
func testPolicy() Policy {
	return Policy{PollInterval: time.Millisecond, MaxPolls: 30}
}

func newTestDispatcher(t *testing.T, baseURL string) *Dispatcher {
	t.Helper()
	client := NewClient("TOKEN", baseURL, 5*time.Second)
	return NewDispatcher(client, testPolicy(), discardLogger())
}
