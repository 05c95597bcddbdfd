package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/flemzord/tgdispatch/internal/core"
	"github.com/flemzord/tgdispatch/internal/journal"
	"github.com/flemzord/tgdispatch/internal/node"
)

func init() {
	core.RegisterModule(&SendNode{})
}

// Compile-time interface guards.
var (
	_ node.Node         = (*SendNode)(nil)
	_ core.Configurable = (*SendNode)(nil)
	_ core.Provisioner  = (*SendNode)(nil)
	_ core.Validator    = (*SendNode)(nil)
	_ core.Starter      = (*SendNode)(nil)
)

// SendNode posts one to five images to a Telegram channel as a media group.
type SendNode struct {
	config  Config
	logger  *slog.Logger
	appCtx  *core.AppContext
	journal journal.Recorder
}

// ModuleInfo implements core.Module.
func (n *SendNode) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "node.telegram_send",
		New: func() core.Module { return &SendNode{} },
	}
}

// Configure implements core.Configurable.
func (n *SendNode) Configure(yn *yaml.Node) error {
	if err := yn.Decode(&n.config); err != nil {
		return fmt.Errorf("telegram: decode config: %w", err)
	}
	n.config.defaults()
	return nil
}

// Provision implements core.Provisioner. The loaded instance registers
// itself as a service so the gateway can execute it.
func (n *SendNode) Provision(ctx *core.AppContext) error {
	n.config.defaults()
	n.appCtx = ctx
	n.logger = ctx.Logger
	ctx.RegisterService("node.telegram_send", n)
	return nil
}

// Validate implements core.Validator.
func (n *SendNode) Validate() error {
	return n.config.validate()
}

// Start implements core.Starter. Service binding happens here because all
// modules are provisioned before any is started.
func (n *SendNode) Start() error {
	n.journal = resolveJournal(n.appCtx)
	return nil
}

// Describe implements node.Node.
func (n *SendNode) Describe() node.Schema {
	return node.Schema{
		Category: "api/telegram",
		Required: []node.Input{
			{Name: "bot_token", Type: node.TypeString},
			{Name: "channel_id", Type: node.TypeString},
		},
		Optional: append(imageInputs(),
			node.Input{Name: "caption", Type: node.TypeString, Default: ""},
			node.Input{Name: "as_document", Type: node.TypeBool, Default: false},
		),
		Returns:     []string{"message_id"},
		AlwaysStale: true,
	}
}

// Run implements node.Node.
func (n *SendNode) Run(ctx context.Context, in node.Values) (node.Values, error) {
	chatID := in.String("channel_id")
	if chatID == "" {
		return nil, fmt.Errorf("telegram: channel_id is required")
	}

	d, err := n.config.newDispatcher(in.String("bot_token"), n.logger)
	if err != nil {
		return nil, err
	}

	images, err := collectImages(in)
	if err != nil {
		return nil, err
	}

	messageID, err := d.Send(ctx, chatID, images, in.String("caption"), in.Bool("as_document"))

	state, detail := outcome(err)
	record(ctx, n.journal, n.logger, journal.Entry{
		Node:      "node.telegram_send",
		ChatID:    chatID,
		MessageID: messageID,
		Outcome:   state,
		Error:     detail,
	})
	if err != nil {
		return nil, err
	}

	return node.Values{"message_id": messageID}, nil
}
