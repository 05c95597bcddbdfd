package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flemzord/tgdispatch/internal/core"
	"github.com/flemzord/tgdispatch/internal/journal"
	"github.com/flemzord/tgdispatch/internal/node"
	"github.com/flemzord/tgdispatch/pkg/imaging"
)

// imageSlots are the optional per-node image input names, in order.
var imageSlots = [maxMediaItems]string{"image_1", "image_2", "image_3", "image_4", "image_5"}

// imageInputs returns the optional image slot declarations for a schema.
func imageInputs() []node.Input {
	inputs := make([]node.Input, 0, len(imageSlots))
	for _, name := range imageSlots {
		inputs = append(inputs, node.Input{Name: name, Type: node.TypeImage})
	}
	return inputs
}

// collectImages decodes the populated image slots in input order. A slot
// that is present but undecodable fails the whole call before any network
// traffic happens.
func collectImages(in node.Values) ([]imaging.Image, error) {
	var images []imaging.Image
	for _, name := range imageSlots {
		if !in.Has(name) {
			continue
		}
		raw, err := in.Bytes(name)
		if err != nil {
			return nil, err
		}
		img, err := imaging.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("telegram: input %q: %w", name, err)
		}
		images = append(images, img)
	}
	return images, nil
}

// newDispatcher validates the per-invocation token and builds a dispatcher
// for it. Credentials stay call-scoped; nothing ambient holds them.
func (c *Config) newDispatcher(token string, logger *slog.Logger) (*Dispatcher, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	client := NewClient(token, c.APIURL, c.Timeout)
	return NewDispatcher(client, c.policy(), logger), nil
}

// resolveJournal looks up the optional journal recorder service.
func resolveJournal(appCtx *core.AppContext) journal.Recorder {
	svc, ok := appCtx.Service("journal.recorder")
	if !ok {
		return nil
	}
	rec, _ := svc.(journal.Recorder)
	return rec
}

// record writes a journal entry if a recorder is configured. Journal
// failures are logged, never propagated: the dispatch outcome stands.
func record(ctx context.Context, rec journal.Recorder, logger *slog.Logger, e journal.Entry) {
	if rec == nil {
		return
	}
	e.Time = time.Now().UTC()
	if err := rec.Record(ctx, e); err != nil {
		logger.Warn("journal record failed", "error", err)
	}
}

// outcome maps a dispatch error to the journal outcome fields.
func outcome(err error) (string, string) {
	if err == nil {
		return "sent", ""
	}
	return "failed", err.Error()
}
