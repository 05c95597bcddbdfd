package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flemzord/tgdispatch/pkg/imaging"
)

// Errors callers branch on.
var (
	// ErrNothingToSend means the caller supplied no images and no
	// non-blank text. A caller-usage error, never retried.
	ErrNothingToSend = errors.New("telegram: nothing to send")

	// ErrReplyTargetNotFound means resolve mode exhausted its poll budget
	// without finding a message forwarded from the given marker.
	ErrReplyTargetNotFound = errors.New("telegram: reply target not found")

	// ErrNoReplyTarget means a reply was requested with neither a direct
	// message id nor a forwarded-message marker.
	ErrNoReplyTarget = errors.New("telegram: no reply target specified")
)

// maxMediaItems caps a single media group. Mirrors the five image slots the
// host exposes per node.
const maxMediaItems = 5

// Policy holds the resolve-mode polling parameters. Both are configuration,
// not constants, so tests can shrink them.
type Policy struct {
	// PollInterval is the fixed delay between getUpdates polls.
	PollInterval time.Duration

	// MaxPolls bounds the number of getUpdates calls per resolution.
	MaxPolls int
}

// ReplyTarget selects how a reply finds its target message. Exactly one
// field should be set: MessageID replies directly; Marker triggers resolve
// mode, scanning updates for a message forwarded from that id.
type ReplyTarget struct {
	MessageID int
	Marker    int
}

// ReplyResult reports a completed reply: the target the reply attached to
// (resolved or given directly) and the id of the newly created message.
type ReplyResult struct {
	Target    int
	MessageID int
}

// Dispatcher performs the two top-level operations, Send and Reply. It owns
// outbound request construction and the reply-resolution polling protocol.
// A Dispatcher keeps no state across calls; concurrent use is safe.
type Dispatcher struct {
	client *Client
	policy Policy
	logger *slog.Logger

	// sleep is the inter-poll delay, replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewDispatcher creates a Dispatcher around the given client.
func NewDispatcher(client *Client, policy Policy, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		client: client,
		policy: policy,
		logger: logger,
		sleep:  sleepCtx,
	}
}

// Send posts the images to a channel as one media group and returns the id
// of the first created message. At least one image is required; the whole
// group is either accepted in one request or the call fails entirely.
func (d *Dispatcher) Send(ctx context.Context, channelID string, images []imaging.Image, caption string, asDocument bool) (int, error) {
	if len(images) == 0 {
		return 0, ErrNothingToSend
	}
	if len(images) > maxMediaItems {
		return 0, fmt.Errorf("telegram: media group limited to %d images, got %d", maxMediaItems, len(images))
	}

	media, files, err := BuildMediaGroup(images, caption, asDocument)
	if err != nil {
		return 0, err
	}

	messages, err := d.client.SendMediaGroup(ctx, SendMediaGroupRequest{
		ChatID: channelID,
		Media:  media,
		Files:  files,
	})
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, fmt.Errorf("telegram: sendMediaGroup returned no messages")
	}

	d.logger.Info("media group sent",
		"chat", channelID,
		"images", len(images),
		"message_id", messages[0].MessageID,
	)
	return messages[0].MessageID, nil
}

// Reply resolves a reply target, then posts the images (or, with no images,
// the text) as a reply to it. The payload is validated before any network
// traffic so a nothing-to-send call never burns the polling budget.
// Replies always set allow_sending_without_reply, so a missing or expired
// target degrades to a plain message at the provider rather than failing.
func (d *Dispatcher) Reply(ctx context.Context, chatID string, target ReplyTarget, images []imaging.Image, text string, asDocument bool) (ReplyResult, error) {
	if len(images) == 0 && strings.TrimSpace(text) == "" {
		return ReplyResult{}, ErrNothingToSend
	}
	if len(images) > maxMediaItems {
		return ReplyResult{}, fmt.Errorf("telegram: media group limited to %d images, got %d", maxMediaItems, len(images))
	}

	replyTo := target.MessageID
	if replyTo == 0 {
		if target.Marker == 0 {
			return ReplyResult{}, ErrNoReplyTarget
		}
		resolved, err := d.resolveReplyTarget(ctx, target.Marker)
		if err != nil {
			return ReplyResult{}, err
		}
		replyTo = resolved
	}

	if len(images) > 0 {
		media, files, err := BuildMediaGroup(images, text, asDocument)
		if err != nil {
			return ReplyResult{}, err
		}
		messages, err := d.client.SendMediaGroup(ctx, SendMediaGroupRequest{
			ChatID:           chatID,
			Media:            media,
			Files:            files,
			ReplyToMessageID: replyTo,
		})
		if err != nil {
			return ReplyResult{}, err
		}
		if len(messages) == 0 {
			return ReplyResult{}, fmt.Errorf("telegram: sendMediaGroup returned no messages")
		}

		d.logger.Info("media group reply sent",
			"chat", chatID,
			"reply_to", replyTo,
			"images", len(images),
			"message_id", messages[0].MessageID,
		)
		return ReplyResult{Target: replyTo, MessageID: messages[0].MessageID}, nil
	}

	msg, err := d.client.SendMessage(ctx, SendMessageRequest{
		ChatID:           chatID,
		Text:             text,
		ReplyToMessageID: replyTo,
	})
	if err != nil {
		return ReplyResult{}, err
	}

	d.logger.Info("text reply sent",
		"chat", chatID,
		"reply_to", replyTo,
		"message_id", msg.MessageID,
	)
	return ReplyResult{Target: replyTo, MessageID: msg.MessageID}, nil
}

// sleepCtx blocks for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
