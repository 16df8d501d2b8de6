// Package match cross-products alerts against freshly scraped slots and
// decides which pairs still owe the owner a notification.
package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

// LedgerLookup reports whether (chatID, key) has already been notified.
// Backed by the sent-notifications table; an error here is a persistence
// failure and aborts the pass.
type LedgerLookup func(ctx context.Context, chatID int64, key string) (bool, error)

// ComputeMatches returns every (alert, slot) pair that satisfies the alert's
// criteria and is absent from the ledger. Output is grouped alert-then-slot
// in input order. The engine performs no writes; committing a match to the
// ledger is the dispatcher's job, after a successful send.
//
// Within a single call no (owner, key) pair is emitted twice, even when two
// of the owner's alerts match the same slot — the ledger is only updated
// after dispatch, so without the in-run seen set the dispatcher would double
// send.
func ComputeMatches(ctx context.Context, alerts []domain.Alert, slots []domain.Slot, sent LedgerLookup) ([]domain.PendingMatch, error) {
	var pending []domain.PendingMatch
	seen := make(map[string]struct{})

	for _, alert := range alerts {
		for _, slot := range slots {
			if !Satisfies(alert, slot) {
				continue
			}
			key := slot.NotificationKey()
			ownerKey := fmt.Sprintf("%d|%s", alert.ChatID, key)
			if _, dup := seen[ownerKey]; dup {
				continue
			}
			already, err := sent(ctx, alert.ChatID, key)
			if err != nil {
				return nil, fmt.Errorf("ledger lookup: %w", err)
			}
			if already {
				continue
			}
			seen[ownerKey] = struct{}{}
			pending = append(pending, domain.PendingMatch{Alert: alert, Slot: slot, Key: key})
		}
	}
	return pending, nil
}

// Satisfies reports whether slot structurally matches alert: the slot is
// available, the alert's coach name appears within the slot's coach name
// (case-insensitive substring, so "David" covers "David G"), the slot's day
// is one of the alert's days, and the slot's time falls inside the alert's
// window. Unparseable slot times are simply non-matches.
func Satisfies(alert domain.Alert, slot domain.Slot) bool {
	if slot.Status != domain.StatusAvailable {
		return false
	}
	if !strings.Contains(strings.ToLower(slot.Coach), strings.ToLower(alert.Coach)) {
		return false
	}
	if !alert.Days.Contains(slot.Day) {
		return false
	}
	return domain.InRange(slot.Time, alert.TimeRange)
}
