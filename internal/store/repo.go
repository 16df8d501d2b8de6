package store

import (
	"context"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

// Repo defines storage operations for alerts and the sent-notifications
// ledger. The matching engine only ever reads through it; the dispatcher is
// the sole writer of ledger entries.
type Repo interface {
	AddAlert(ctx context.Context, a *domain.Alert) (int64, error)
	ListAlerts(ctx context.Context, chatID int64) ([]domain.Alert, error)
	ListAllAlerts(ctx context.Context) ([]domain.Alert, error)
	DeleteAlert(ctx context.Context, id int64) error

	HasSent(ctx context.Context, chatID int64, key string) (bool, error)
	RecordSent(ctx context.Context, chatID int64, key string) error

	Close() error
}
