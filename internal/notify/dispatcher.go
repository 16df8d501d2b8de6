// Package notify delivers pending matches to their owners and commits
// successful sends to the ledger.
package notify

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

// Sender delivers a plain-text message to a chat. telegram.Router implements it.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Ledger records a delivered notification. store.Repo implements it.
type Ledger interface {
	RecordSent(ctx context.Context, chatID int64, key string) error
}

// Dispatcher fans pending matches out to the messaging channel with bounded
// concurrency. Delivery is attempted before the ledger write, so a crash in
// between can at worst repeat one notification on the next pass; a duplicate
// ledger write on its own can never happen (the insert is idempotent).
type Dispatcher struct {
	sender Sender
	ledger Ledger
	log    *zap.Logger
	limit  int
}

func NewDispatcher(sender Sender, ledger Ledger, log *zap.Logger, limit int) *Dispatcher {
	if limit < 1 {
		limit = 1
	}
	return &Dispatcher{sender: sender, ledger: ledger, log: log, limit: limit}
}

// Dispatch delivers every pending match and returns the number of successful
// sends. One recipient's failure never aborts the batch: a failed send is
// logged, left out of the ledger, and retried naturally on the next pass.
func (d *Dispatcher) Dispatch(ctx context.Context, matches []domain.PendingMatch) int {
	var sent atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.limit)
	for _, m := range matches {
		m := m // keep per-iteration capture semantics under go < 1.22
		g.Go(func() error {
			if err := d.sender.SendMessage(m.Alert.ChatID, RenderMessage(m)); err != nil {
				d.log.Error("send failed",
					zap.Error(err),
					zap.Int64("chat_id", m.Alert.ChatID),
					zap.String("key", m.Key),
				)
				return nil
			}
			sent.Add(1)
			if err := d.ledger.RecordSent(ctx, m.Alert.ChatID, m.Key); err != nil {
				// The message is already out; the next pass may repeat it once.
				d.log.Error("ledger write failed after delivery",
					zap.Error(err),
					zap.Int64("chat_id", m.Alert.ChatID),
					zap.String("key", m.Key),
				)
				return nil
			}
			d.log.Info("notification sent",
				zap.Int64("chat_id", m.Alert.ChatID),
				zap.String("coach", m.Slot.Coach),
				zap.String("key", m.Key),
			)
			return nil
		})
	}
	_ = g.Wait() // workers recover everything themselves

	return int(sent.Load())
}

// RenderMessage formats the notification text: the slot that opened up plus
// the criteria that triggered it.
func RenderMessage(m domain.PendingMatch) string {
	return fmt.Sprintf(
		"🔔 Class available!\n\n"+
			"Coach: %s\n"+
			"Day: %s, %s\n"+
			"Time: %s\n\n"+
			"This matches your alert for %q on %s between %s.",
		m.Slot.Coach,
		m.Slot.Day, m.Slot.Date,
		m.Slot.Time,
		m.Alert.Coach, m.Alert.Days.Short(), m.Alert.TimeRange,
	)
}
