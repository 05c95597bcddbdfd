package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/flemzord/tgdispatch/internal/cron"
	"github.com/flemzord/tgdispatch/internal/journal"
	"github.com/flemzord/tgdispatch/modules/node/telegram"
)

// Compile-time interface guard.
var _ cron.Job = (*postJob)(nil)

// postJob sends one configured post per tick.
type postJob struct {
	post    PostConfig
	client  *telegram.Client
	journal journal.Recorder
	logger  *slog.Logger
}

// Name implements cron.Job.
func (j *postJob) Name() string { return j.post.Name }

// Schedule implements cron.Job.
func (j *postJob) Schedule() string { return j.post.Schedule }

// Run implements cron.Job.
func (j *postJob) Run(ctx context.Context) error {
	msg, err := j.client.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID: j.post.ChatID,
		Text:   j.post.Text,
	})

	entry := journal.Entry{
		Time:    time.Now().UTC(),
		Node:    "schedule." + j.post.Name,
		ChatID:  j.post.ChatID,
		Outcome: "sent",
	}
	if err != nil {
		entry.Outcome = "failed"
		entry.Error = err.Error()
	} else {
		entry.MessageID = msg.MessageID
		j.logger.Info("scheduled post sent",
			"post", j.post.Name,
			"chat", j.post.ChatID,
			"message_id", msg.MessageID,
		)
	}

	if j.journal != nil {
		if jerr := j.journal.Record(ctx, entry); jerr != nil {
			j.logger.Warn("journal record failed", "error", jerr)
		}
	}

	return err
}
