package domain

import "fmt"

// Slot availability as reported by the calendar page.
const (
	StatusAvailable = "Available"
	StatusBooked    = "Booked"
)

// Slot is one bookable time unit on the club schedule. Slots are ephemeral:
// every scrape produces a fresh list and nothing about them is persisted.
type Slot struct {
	Coach  string
	Day    string // full weekday name
	Date   string // site-native date string, opaque to matching
	Time   string // "HH:MM" or "HH:MM-HH:MM"
	Status string
}

// NotificationKey identifies a (coach, date, time) triple. Two slots with the
// same triple yield the same key regardless of which scrape produced them,
// which is what makes the sent-notifications ledger able to deduplicate
// across runs.
func (s Slot) NotificationKey() string {
	return fmt.Sprintf("%s-%s-%s", s.Coach, s.Date, s.Time)
}

// PendingMatch is an (alert, slot) pair that satisfies the alert's criteria
// and has not yet been recorded in the ledger for the alert's owner.
type PendingMatch struct {
	Alert Alert
	Slot  Slot
	Key   string
}
