package domain

import (
	"errors"
	"testing"
)

func TestParseDays_CanonicalOrder(t *testing.T) {
	ds, err := ParseDays("Wednesday, monday")
	if err != nil {
		t.Fatalf("ParseDays: %v", err)
	}
	if ds.String() != "Monday,Wednesday" {
		t.Fatalf("got %q, want %q", ds.String(), "Monday,Wednesday")
	}
	if ds.Short() != "Mon Wed" {
		t.Fatalf("Short() = %q, want %q", ds.Short(), "Mon Wed")
	}
}

func TestParseDays_Rejects(t *testing.T) {
	if _, err := ParseDays(""); !errors.Is(err, ErrNoDays) {
		t.Fatalf("empty input: got %v, want ErrNoDays", err)
	}
	if _, err := ParseDays("Saturday"); !errors.Is(err, ErrUnknownDay) {
		t.Fatalf("weekend day: got %v, want ErrUnknownDay", err)
	}
}

func TestDaySet_ExactMembership(t *testing.T) {
	ds, err := ParseDays("Monday,Wednesday")
	if err != nil {
		t.Fatalf("ParseDays: %v", err)
	}
	if !ds.Contains("monday") {
		t.Fatal("membership should be case-insensitive")
	}
	// A name that is merely a prefix of a member must not match; the old
	// substring-on-joined-string check got this wrong.
	if ds.Contains("Mon") {
		t.Fatal("partial day names must not be members")
	}
	if ds.Contains("Friday") {
		t.Fatal("Friday is not in the set")
	}
}

func TestNotificationKey_StableAcrossScrapes(t *testing.T) {
	a := Slot{Coach: "David G", Day: "Monday", Date: "2025-10-06", Time: "17:00", Status: StatusAvailable}
	b := Slot{Coach: "David G", Day: "Monday", Date: "2025-10-06", Time: "17:00", Status: StatusAvailable}
	if a.NotificationKey() != b.NotificationKey() {
		t.Fatal("identical (coach, date, time) triples must yield identical keys")
	}
	if got, want := a.NotificationKey(), "David G-2025-10-06-17:00"; got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
}
