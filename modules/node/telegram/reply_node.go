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
	core.RegisterModule(&ReplyNode{})
}

// Compile-time interface guards.
var (
	_ node.Node         = (*ReplyNode)(nil)
	_ core.Configurable = (*ReplyNode)(nil)
	_ core.Provisioner  = (*ReplyNode)(nil)
	_ core.Validator    = (*ReplyNode)(nil)
	_ core.Starter      = (*ReplyNode)(nil)
)

// ReplyNode posts images or text as a reply to an existing message. The
// target is either given directly (reply_to_message_id) or discovered from
// a forwarded-message marker (reply_to_marker) by polling the update feed.
type ReplyNode struct {
	config  Config
	logger  *slog.Logger
	appCtx  *core.AppContext
	journal journal.Recorder
}

// ModuleInfo implements core.Module.
func (n *ReplyNode) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "node.telegram_reply",
		New: func() core.Module { return &ReplyNode{} },
	}
}

// Configure implements core.Configurable.
func (n *ReplyNode) Configure(yn *yaml.Node) error {
	if err := yn.Decode(&n.config); err != nil {
		return fmt.Errorf("telegram: decode config: %w", err)
	}
	n.config.defaults()
	return nil
}

// Provision implements core.Provisioner. The loaded instance registers
// itself as a service so the gateway can execute it.
func (n *ReplyNode) Provision(ctx *core.AppContext) error {
	n.config.defaults()
	n.appCtx = ctx
	n.logger = ctx.Logger
	ctx.RegisterService("node.telegram_reply", n)
	return nil
}

// Validate implements core.Validator.
func (n *ReplyNode) Validate() error {
	return n.config.validate()
}

// Start implements core.Starter.
func (n *ReplyNode) Start() error {
	n.journal = resolveJournal(n.appCtx)
	return nil
}

// Describe implements node.Node.
func (n *ReplyNode) Describe() node.Schema {
	return node.Schema{
		Category: "api/telegram",
		Required: []node.Input{
			{Name: "bot_token", Type: node.TypeString},
			{Name: "chat_id", Type: node.TypeString},
		},
		Optional: append(imageInputs(),
			node.Input{Name: "reply_to_marker", Type: node.TypeInt},
			node.Input{Name: "reply_to_message_id", Type: node.TypeInt},
			node.Input{Name: "text", Type: node.TypeString, Default: ""},
			node.Input{Name: "as_document", Type: node.TypeBool, Default: false},
		),
		Returns:     []string{"reply_to", "message_id"},
		AlwaysStale: true,
	}
}

// Run implements node.Node.
func (n *ReplyNode) Run(ctx context.Context, in node.Values) (node.Values, error) {
	chatID := in.String("chat_id")
	if chatID == "" {
		return nil, fmt.Errorf("telegram: chat_id is required")
	}

	d, err := n.config.newDispatcher(in.String("bot_token"), n.logger)
	if err != nil {
		return nil, err
	}

	var target ReplyTarget
	if target.MessageID, err = in.Int("reply_to_message_id"); err != nil {
		return nil, err
	}
	if target.Marker, err = in.Int("reply_to_marker"); err != nil {
		return nil, err
	}

	images, err := collectImages(in)
	if err != nil {
		return nil, err
	}

	result, err := d.Reply(ctx, chatID, target, images, in.String("text"), in.Bool("as_document"))

	state, detail := outcome(err)
	record(ctx, n.journal, n.logger, journal.Entry{
		Node:      "node.telegram_reply",
		ChatID:    chatID,
		MessageID: result.MessageID,
		ReplyTo:   result.Target,
		Outcome:   state,
		Error:     detail,
	})
	if err != nil {
		return nil, err
	}

	return node.Values{
		"reply_to":   result.Target,
		"message_id": result.MessageID,
	}, nil
}
