package gateway

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/flemzord/tgdispatch/internal/core"
	"github.com/flemzord/tgdispatch/internal/journal"
	"github.com/flemzord/tgdispatch/internal/node"
)

func init() {
	core.RegisterModule(&fakeNode{})
}

// fakeNode is a minimal test node. The registered prototype has no behavior;
// tests register a configured instance as a service to make it runnable.
type fakeNode struct {
	runErr error
	out    node.Values
	lastIn node.Values
}

func (n *fakeNode) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "node.fake",
		New: func() core.Module { return &fakeNode{} },
	}
}

func (n *fakeNode) Describe() node.Schema {
	return node.Schema{
		Category:    "test",
		Required:    []node.Input{{Name: "value", Type: node.TypeString}},
		Returns:     []string{"echo"},
		AlwaysStale: true,
	}
}

func (n *fakeNode) Run(_ context.Context, in node.Values) (node.Values, error) {
	n.lastIn = in
	if n.runErr != nil {
		return nil, n.runErr
	}
	return n.out, nil
}

// fakeJournal is an in-memory journal recorder.
type fakeJournal struct {
	entries []journal.Entry
	readErr error
}

func (j *fakeJournal) Record(_ context.Context, e journal.Entry) error {
	j.entries = append(j.entries, e)
	return nil
}

func (j *fakeJournal) Recent(_ context.Context, n int) ([]journal.Entry, error) {
	if j.readErr != nil {
		return nil, j.readErr
	}
	if n > len(j.entries) {
		n = len(j.entries)
	}
	out := make([]journal.Entry, 0, n)
	for i := len(j.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, j.entries[i])
	}
	return out, nil
}

// newTestGateway builds a provisioned gateway with auth configured, without
// starting the HTTP server.
func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	g := &Gateway{}
	g.config.Auth = AuthConfig{BearerToken: "test-token"}
	g.config.defaults()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := g.Provision(core.NewAppContext(logger, t.TempDir())); err != nil {
		t.Fatalf("provision: %v", err)
	}
	return g
}
