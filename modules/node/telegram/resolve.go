package telegram

import (
	"context"
	"fmt"
)

// resolveReplyTarget scans the bot's update feed for a message forwarded
// from marker and returns that message's own id. It polls up to
// policy.MaxPolls times with policy.PollInterval between polls; the first
// poll starts immediately and no delay follows the last one.
//
// The offset cursor starts at -1 ("only the latest updates") and after each
// batch advances to one past the highest update_id seen anywhere in the
// batch (the running maximum, not the last item), so an out-of-order batch
// can neither redeliver nor skip updates. If several updates in one batch
// match the marker, the last one seen wins.
//
// The cursor is local to this call; repeated resolutions re-scan from
// scratch, which is inefficient but keeps the dispatcher stateless.
func (d *Dispatcher) resolveReplyTarget(ctx context.Context, marker int) (int, error) {
	offset := -1

	for attempt := 0; attempt < d.policy.MaxPolls; attempt++ {
		if attempt > 0 {
			if err := d.sleep(ctx, d.policy.PollInterval); err != nil {
				return 0, err
			}
		}

		updates, err := d.client.GetUpdates(ctx, offset)
		if err != nil {
			return 0, fmt.Errorf("telegram: poll updates: %w", err)
		}

		target := 0
		for _, u := range updates {
			if next := u.UpdateID + 1; next > offset {
				offset = next
			}
			if u.Message == nil {
				continue
			}
			if u.Message.ForwardFromMessageID == marker {
				target = u.Message.MessageID
			}
		}
		if target != 0 {
			d.logger.Debug("reply target resolved",
				"marker", marker,
				"target", target,
				"polls", attempt+1,
			)
			return target, nil
		}
	}

	return 0, fmt.Errorf("%w: no forwarded message matched marker %d after %d polls",
		ErrReplyTargetNotFound, marker, d.policy.MaxPolls)
}
