package schedule

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flemzord/tgdispatch/internal/core"
	"github.com/flemzord/tgdispatch/internal/journal"
	"github.com/flemzord/tgdispatch/modules/node/telegram"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memJournal collects entries in memory.
type memJournal struct {
	entries []journal.Entry
}

func (j *memJournal) Record(_ context.Context, e journal.Entry) error {
	j.entries = append(j.entries, e)
	return nil
}

func (j *memJournal) Recent(_ context.Context, n int) ([]journal.Entry, error) {
	if n > len(j.entries) {
		n = len(j.entries)
	}
	out := make([]journal.Entry, 0, n)
	for i := len(j.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, j.entries[i])
	}
	return out, nil
}

func validPost() PostConfig {
	return PostConfig{
		Name:     "daily",
		Schedule: "0 9 * * *",
		BotToken: "12345:ABCdef",
		ChatID:   "@channel",
		Text:     "<b>good morning</b>",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PostConfig)
		wantErr string
	}{
		{"missing schedule", func(p *PostConfig) { p.Schedule = "" }, "schedule is required"},
		{"missing token", func(p *PostConfig) { p.BotToken = "" }, "bot_token is required"},
		{"missing chat", func(p *PostConfig) { p.ChatID = "" }, "chat_id is required"},
		{"missing text", func(p *PostConfig) { p.Text = "" }, "text is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPost()
			tt.mutate(&p)
			c := Config{Posts: []PostConfig{p}}
			err := c.validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidateDuplicateName(t *testing.T) {
	c := Config{Posts: []PostConfig{validPost(), validPost()}}
	err := c.validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate post name") {
		t.Errorf("validate() = %v, want duplicate name error", err)
	}
}

func TestPostJobRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostFormValue("text"); got != "<b>good morning</b>" {
			t.Errorf("text = %q", got)
		}
		if got := r.PostFormValue("parse_mode"); got != "HTML" {
			t.Errorf("parse_mode = %q, want HTML", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"result": map[string]any{"message_id": 9, "chat": map[string]any{"id": 1}, "date": 0},
		})
	}))
	defer srv.Close()

	rec := &memJournal{}
	job := &postJob{
		post:    validPost(),
		client:  telegram.NewClient("12345:ABCdef", srv.URL, 5*time.Second),
		journal: rec,
		logger:  discardLogger(),
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(rec.entries) != 1 {
		t.Fatalf("journal entries = %d, want 1", len(rec.entries))
	}
	e := rec.entries[0]
	if e.Outcome != "sent" || e.MessageID != 9 || e.Node != "schedule.daily" {
		t.Errorf("entry = %+v", e)
	}
}

func TestPostJobRunFailureRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := &memJournal{}
	job := &postJob{
		post:    validPost(),
		client:  telegram.NewClient("12345:ABCdef", srv.URL, 5*time.Second),
		journal: rec,
		logger:  discardLogger(),
	}

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.entries) != 1 || rec.entries[0].Outcome != "failed" {
		t.Fatalf("journal entries = %+v, want one failed", rec.entries)
	}
}

func TestModuleLifecycle(t *testing.T) {
	m := &Module{}
	m.config = Config{Posts: []PostConfig{validPost()}}
	m.config.defaults()

	if err := m.Provision(core.NewAppContext(discardLogger(), t.TempDir())); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := m.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(context.Background()); err != nil {
		t.Errorf("stop: %v", err)
	}
}

func TestModuleStartRejectsBadSchedule(t *testing.T) {
	p := validPost()
	p.Schedule = "not cron"
	m := &Module{}
	m.config = Config{Posts: []PostConfig{p}}
	m.config.defaults()

	if err := m.Provision(core.NewAppContext(discardLogger(), t.TempDir())); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if err := m.Start(); err == nil {
		_ = m.Stop(context.Background())
		t.Fatal("expected error for invalid schedule")
	}
}
