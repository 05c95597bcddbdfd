package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/flemzord/tgdispatch/internal/core"
	"github.com/flemzord/tgdispatch/internal/journal"
)

func newTestModule(t *testing.T) *Module {
	t.Helper()

	dir := t.TempDir()
	m := &Module{
		config: Config{
			Path: filepath.Join(dir, "test.db"),
		},
	}
	m.config.defaults()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := m.Provision(core.NewAppContext(logger, dir)); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	t.Cleanup(func() {
		_ = m.Stop(context.Background())
	})

	return m
}

func TestRecordAndRecent(t *testing.T) {
	m := newTestModule(t)
	r := m.recorder
	ctx := context.Background()

	entries := []journal.Entry{
		{Node: "node.telegram_send", ChatID: "@c", MessageID: 1, Outcome: "sent"},
		{Node: "node.telegram_reply", ChatID: "55", MessageID: 2, ReplyTo: 1, Outcome: "sent"},
		{Node: "node.telegram_send", ChatID: "@c", Outcome: "failed", Error: "boom"},
	}
	for _, e := range entries {
		if err := r.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := r.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}

	// Newest first.
	if got[0].Outcome != "failed" || got[0].Error != "boom" {
		t.Errorf("newest = %+v, want the failed dispatch", got[0])
	}
	if got[2].Node != "node.telegram_send" || got[2].MessageID != 1 {
		t.Errorf("oldest = %+v, want the first dispatch", got[2])
	}
	if got[1].ReplyTo != 1 {
		t.Errorf("reply_to = %d, want 1", got[1].ReplyTo)
	}
}

func TestRecentLimit(t *testing.T) {
	m := newTestModule(t)
	r := m.recorder
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		e := journal.Entry{Node: "node.telegram_send", MessageID: i + 1, Outcome: "sent"}
		if err := r.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := r.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].MessageID != 5 || got[1].MessageID != 4 {
		t.Errorf("order = [%d %d], want [5 4]", got[0].MessageID, got[1].MessageID)
	}
}

func TestRecordSetsTime(t *testing.T) {
	m := newTestModule(t)
	r := m.recorder
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	if err := r.Record(ctx, journal.Entry{Node: "node.telegram_send", Outcome: "sent"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := r.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Time.Before(before) {
		t.Errorf("time = %s, want after %s", got[0].Time, before)
	}
}

func TestPruneOldEntries(t *testing.T) {
	dir := t.TempDir()
	limit := 3
	m := &Module{
		config: Config{
			Path:       filepath.Join(dir, "test.db"),
			MaxEntries: &limit,
		},
	}
	m.config.defaults()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := m.Provision(core.NewAppContext(logger, dir)); err != nil {
		t.Fatalf("provision: %v", err)
	}
	t.Cleanup(func() { _ = m.Stop(context.Background()) })

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		e := journal.Entry{Node: "node.telegram_send", MessageID: i + 1, Outcome: "sent"}
		if err := m.recorder.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := m.recorder.Recent(ctx, 100)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != limit {
		t.Fatalf("got %d entries, want %d", len(got), limit)
	}
	if got[0].MessageID != 10 || got[2].MessageID != 8 {
		t.Errorf("kept [%d..%d], want the newest three", got[2].MessageID, got[0].MessageID)
	}
}

func TestServiceRegistration(t *testing.T) {
	dir := t.TempDir()
	m := &Module{config: Config{Path: filepath.Join(dir, "test.db")}}
	m.config.defaults()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appCtx := core.NewAppContext(logger, dir)
	if err := m.Provision(appCtx); err != nil {
		t.Fatalf("provision: %v", err)
	}
	t.Cleanup(func() { _ = m.Stop(context.Background()) })

	svc, ok := appCtx.Service("journal.recorder")
	if !ok {
		t.Fatal("journal.recorder service not registered")
	}
	if _, ok := svc.(journal.Recorder); !ok {
		t.Fatalf("service is %T, not a journal.Recorder", svc)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative busy timeout", func(c *Config) { c.BusyTimeout = -1 }, true},
		{"negative max entries", func(c *Config) { n := -1; c.MaxEntries = &n }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.defaults()
			tt.mutate(&c)
			err := c.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
