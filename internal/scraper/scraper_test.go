package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

func TestFetchAvailableSlots_SessionCookieFlow(t *testing.T) {
	var calendarHits int
	mux := http.NewServeMux()
	mux.HandleFunc("/index.asp", func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "ASPSESSIONID", Value: "abc123"})
	})
	mux.HandleFunc("/calendar", func(w http.ResponseWriter, r *http.Request) {
		calendarHits++
		if c, err := r.Cookie("ASPSESSIONID"); err != nil || c.Value != "abc123" {
			t.Errorf("calendar request missing session cookie: %v", err)
		}
		_, _ = w.Write([]byte(calendarFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL+"/calendar", srv.URL+"/index.asp", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	slots, err := c.FetchAvailableSlots(context.Background())
	if err != nil {
		t.Fatalf("FetchAvailableSlots: %v", err)
	}
	if calendarHits != 1 {
		t.Fatalf("calendar fetched %d times, want 1", calendarHits)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d available slots, want 3 (the booked one is filtered)", len(slots))
	}
	for _, s := range slots {
		if s.Status != domain.StatusAvailable {
			t.Fatalf("booked slot leaked through: %+v", s)
		}
	}
}

func TestFetchCoaches_UniqueSorted(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/index.asp", func(http.ResponseWriter, *http.Request) {})
	mux.HandleFunc("/calendar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(calendarFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL+"/calendar", srv.URL+"/index.asp", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	coaches, err := c.FetchCoaches(context.Background())
	if err != nil {
		t.Fatalf("FetchCoaches: %v", err)
	}
	want := []string{"Arseni", "David G", "Igor"}
	if len(coaches) != len(want) {
		t.Fatalf("got %v, want %v", coaches, want)
	}
	for i := range want {
		if coaches[i] != want[i] {
			t.Fatalf("got %v, want %v", coaches, want)
		}
	}
}

func TestFetchFullSchedule_NetworkFailure(t *testing.T) {
	c, err := New("http://127.0.0.1:1/calendar", "http://127.0.0.1:1/index.asp", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.FetchFullSchedule(context.Background()); err == nil {
		t.Fatal("expected an error for an unreachable site")
	}
}

func TestDValue(t *testing.T) {
	c, err := New("http://example.invalid/calendar", "http://example.invalid/index.asp", 2, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Pin "now" to the site's reference date: d=6477 on 2025-09-24.
	c.now = func() time.Time { return time.Date(2025, time.September, 24, 12, 0, 0, 0, time.UTC) }

	if got := c.dValue(0); got != referenceD {
		t.Fatalf("dValue(0) = %d, want %d", got, referenceD)
	}
	if got := c.dValue(2); got != referenceD+14 {
		t.Fatalf("dValue(2) = %d, want %d", got, referenceD+14)
	}
}
