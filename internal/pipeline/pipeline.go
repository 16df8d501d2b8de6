// Package pipeline runs one idempotent matching pass: scrape, match, dispatch.
// Both the hourly ticker and the post-alert-creation trigger call the same
// entry point; safety under overlapping passes comes from the ledger's unique
// constraint, not from any coordination here.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/match"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/notify"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/store"
)

// SlotSource yields the currently available slots. scraper.Client implements it.
type SlotSource interface {
	FetchAvailableSlots(ctx context.Context) ([]domain.Slot, error)
}

type Pipeline struct {
	slots      SlotSource
	repo       store.Repo
	dispatcher *notify.Dispatcher
	log        *zap.Logger
}

func New(slots SlotSource, repo store.Repo, dispatcher *notify.Dispatcher, log *zap.Logger) *Pipeline {
	return &Pipeline{slots: slots, repo: repo, dispatcher: dispatcher, log: log}
}

// Run performs a full scrape-and-check pass. The reason is log-only. Scrape
// failures degrade to "no matches this pass"; persistence failures abort the
// pass and are returned so the caller can log and rely on the next trigger.
func (p *Pipeline) Run(ctx context.Context, reason string) error {
	log := p.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("reason", reason),
	)
	log.Info("matching pass started")

	slots, err := p.slots.FetchAvailableSlots(ctx)
	if err != nil {
		log.Warn("scrape failed, treating as no available slots", zap.Error(err))
		return nil
	}
	if len(slots) == 0 {
		log.Info("matching pass complete: no available slots on the website")
		return nil
	}

	alerts, err := p.repo.ListAllAlerts(ctx)
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}
	if len(alerts) == 0 {
		log.Info("matching pass complete: no alerts configured")
		return nil
	}

	pending, err := match.ComputeMatches(ctx, alerts, slots, p.repo.HasSent)
	if err != nil {
		return fmt.Errorf("compute matches: %w", err)
	}
	if len(pending) == 0 {
		log.Info("matching pass complete: no new matching slots",
			zap.Int("slots", len(slots)),
			zap.Int("alerts", len(alerts)),
		)
		return nil
	}

	sent := p.dispatcher.Dispatch(ctx, pending)
	log.Info("matching pass complete",
		zap.Int("slots", len(slots)),
		zap.Int("alerts", len(alerts)),
		zap.Int("pending", len(pending)),
		zap.Int("sent", sent),
	)
	return nil
}
