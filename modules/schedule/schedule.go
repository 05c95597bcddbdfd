// Package schedule implements the recurring-post module. Each configured
// post is a cron job that sends a fixed HTML message to a chat on its
// schedule, with outcomes recorded in the dispatch journal when one is
// configured.
package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/tgdispatch/internal/core"
	"github.com/flemzord/tgdispatch/internal/cron"
	"github.com/flemzord/tgdispatch/internal/journal"
	"github.com/flemzord/tgdispatch/modules/node/telegram"
)

func init() {
	core.RegisterModule(&Module{})
}

// Compile-time interface guards.
var (
	_ core.Configurable = (*Module)(nil)
	_ core.Provisioner  = (*Module)(nil)
	_ core.Validator    = (*Module)(nil)
	_ core.Starter      = (*Module)(nil)
	_ core.Stopper      = (*Module)(nil)
)

// Module runs the configured posts on their cron schedules.
type Module struct {
	config    Config
	logger    *slog.Logger
	appCtx    *core.AppContext
	scheduler *cron.Scheduler
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "schedule.posts",
		New: func() core.Module { return &Module{} },
	}
}

// Configure implements core.Configurable.
func (m *Module) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return fmt.Errorf("schedule: decode config: %w", err)
	}
	m.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	m.config.defaults()
	m.appCtx = ctx
	m.logger = ctx.Logger
	m.scheduler = cron.NewScheduler(ctx.Logger)
	return nil
}

// Validate implements core.Validator.
func (m *Module) Validate() error {
	return m.config.validate()
}

// Start implements core.Starter. The journal is resolved here because all
// modules are provisioned before any is started.
func (m *Module) Start() error {
	var rec journal.Recorder
	if svc, ok := m.appCtx.Service("journal.recorder"); ok {
		rec, _ = svc.(journal.Recorder)
	}

	for _, p := range m.config.Posts {
		client := telegram.NewClient(p.BotToken, m.config.APIURL, m.config.Timeout)
		job := &postJob{
			post:    p,
			client:  client,
			journal: rec,
			logger:  m.logger,
		}
		if err := m.scheduler.RegisterJob(job); err != nil {
			return err
		}
	}

	return m.scheduler.Start()
}

// Stop implements core.Stopper.
func (m *Module) Stop(ctx context.Context) error {
	return m.scheduler.Stop(ctx)
}
