package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/flemzord/tgdispatch/internal/journal"
)

// recorder implements journal.Recorder backed by SQLite.
type recorder struct {
	db         *sql.DB
	maxEntries int
}

// Record inserts one dispatch entry, pruning the oldest rows past the
// configured bound.
func (r *recorder) Record(ctx context.Context, e journal.Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dispatches (time, node, chat_id, message_id, reply_to, outcome, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Time.UTC().Format(time.RFC3339Nano),
		e.Node, e.ChatID, e.MessageID, e.ReplyTo, e.Outcome, e.Error,
	)
	if err != nil {
		return fmt.Errorf("sqlite: record dispatch: %w", err)
	}

	if r.maxEntries > 0 {
		_, err = r.db.ExecContext(ctx,
			`DELETE FROM dispatches WHERE id NOT IN
			 (SELECT id FROM dispatches ORDER BY id DESC LIMIT ?)`,
			r.maxEntries,
		)
		if err != nil {
			return fmt.Errorf("sqlite: prune dispatches: %w", err)
		}
	}

	return nil
}

// Recent returns up to n entries, newest first.
func (r *recorder) Recent(ctx context.Context, n int) ([]journal.Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT time, node, chat_id, message_id, reply_to, outcome, error
		 FROM dispatches ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query dispatches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []journal.Entry
	for rows.Next() {
		var e journal.Entry
		var ts string
		if err := rows.Scan(&ts, &e.Node, &e.ChatID, &e.MessageID, &e.ReplyTo, &e.Outcome, &e.Error); err != nil {
			return nil, fmt.Errorf("sqlite: scan dispatch: %w", err)
		}
		if e.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("sqlite: parse dispatch time %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate dispatches: %w", err)
	}

	return entries, nil
}
