package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/notify"
)

type fakeSlots struct {
	slots []domain.Slot
	err   error
}

func (f *fakeSlots) FetchAvailableSlots(context.Context) ([]domain.Slot, error) {
	return f.slots, f.err
}

// memRepo is an in-memory store.Repo good enough for pipeline tests.
type memRepo struct {
	mu     sync.Mutex
	alerts []domain.Alert
	ledger map[string]bool
	nextID int64
}

func newMemRepo() *memRepo { return &memRepo{ledger: make(map[string]bool)} }

func (m *memRepo) AddAlert(_ context.Context, a *domain.Alert) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	m.alerts = append(m.alerts, *a)
	return a.ID, nil
}

func (m *memRepo) ListAlerts(_ context.Context, chatID int64) ([]domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var res []domain.Alert
	for _, a := range m.alerts {
		if a.ChatID == chatID {
			res = append(res, a)
		}
	}
	return res, nil
}

func (m *memRepo) ListAllAlerts(context.Context) ([]domain.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Alert(nil), m.alerts...), nil
}

func (m *memRepo) DeleteAlert(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.alerts {
		if a.ID == id {
			m.alerts = append(m.alerts[:i], m.alerts[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memRepo) HasSent(_ context.Context, chatID int64, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ledger[fmt.Sprintf("%d|%s", chatID, key)], nil
}

func (m *memRepo) RecordSent(_ context.Context, chatID int64, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger[fmt.Sprintf("%d|%s", chatID, key)] = true
	return nil
}

func (m *memRepo) Close() error { return nil }

type countingSender struct {
	mu   sync.Mutex
	sent int
}

func (c *countingSender) SendMessage(int64, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent++
	return nil
}

func TestRun_SecondPassSendsNothing(t *testing.T) {
	repo := newMemRepo()
	if _, err := repo.AddAlert(context.Background(), &domain.Alert{
		ChatID:    100,
		Coach:     "David",
		Days:      domain.DaySet{"Monday"},
		TimeRange: "16:00-18:00",
	}); err != nil {
		t.Fatalf("AddAlert: %v", err)
	}

	slots := &fakeSlots{slots: []domain.Slot{{
		Coach: "David G", Day: "Monday", Date: "2025-10-06", Time: "17:00",
		Status: domain.StatusAvailable,
	}}}
	sender := &countingSender{}
	p := New(slots, repo, notify.NewDispatcher(sender, repo, zap.NewNop(), 2), zap.NewNop())

	if err := p.Run(context.Background(), "first"); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if sender.sent != 1 {
		t.Fatalf("first pass sent %d messages, want 1", sender.sent)
	}

	// Identical scrape result on the next pass: the ledger suppresses it.
	if err := p.Run(context.Background(), "second"); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if sender.sent != 1 {
		t.Fatalf("second pass re-sent: total %d messages, want still 1", sender.sent)
	}
}

func TestRun_ScrapeFailureIsNotFatal(t *testing.T) {
	repo := newMemRepo()
	slots := &fakeSlots{err: errors.New("network down")}
	sender := &countingSender{}
	p := New(slots, repo, notify.NewDispatcher(sender, repo, zap.NewNop(), 1), zap.NewNop())

	if err := p.Run(context.Background(), "scheduled check"); err != nil {
		t.Fatalf("scrape failure must degrade to an empty pass, got %v", err)
	}
	if sender.sent != 0 {
		t.Fatalf("nothing should be sent on a failed scrape, sent %d", sender.sent)
	}
}
