// Package scraper fetches the club's public calendar and turns it into slots.
// The calendar page refuses requests without the session cookie handed out by
// the club landing page, so every fetch goes through a cookie-jar session.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// The site's "d" query parameter is a day counter; d=6477 lands on 2025-09-24.
// Future weeks are addressed by adding whole days to the reference.
const referenceD = 6477

var referenceDate = time.Date(2025, time.September, 24, 0, 0, 0, 0, time.UTC)

// Client scrapes the schedule website.
type Client struct {
	http        *http.Client
	calendarURL string
	cookieURL   string
	weeksAhead  int
	log         *zap.Logger

	now func() time.Time // stubbed in tests
}

func New(calendarURL, cookieURL string, weeksAhead int, log *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		http: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
		},
		calendarURL: calendarURL,
		cookieURL:   cookieURL,
		weeksAhead:  weeksAhead,
		log:         log,
		now:         time.Now,
	}, nil
}

// FetchFullSchedule acquires a session cookie, then fetches and parses the
// calendar for the current week plus any configured future weeks.
func (c *Client) FetchFullSchedule(ctx context.Context) ([]domain.Slot, error) {
	if err := c.get(ctx, c.cookieURL, func(*http.Response) error { return nil }); err != nil {
		return nil, fmt.Errorf("acquire session cookie: %w", err)
	}

	var all []domain.Slot
	for week := 0; week <= c.weeksAhead; week++ {
		url := c.calendarURL
		if week > 0 {
			url = fmt.Sprintf("%s&d=%d", c.calendarURL, c.dValue(week))
		}
		var slots []domain.Slot
		err := c.get(ctx, url, func(resp *http.Response) error {
			var perr error
			slots, perr = ParseSchedule(resp.Body)
			return perr
		})
		if err != nil {
			return nil, fmt.Errorf("fetch calendar week %d: %w", week, err)
		}
		all = append(all, slots...)
	}

	c.log.Debug("schedule fetched", zap.Int("slots", len(all)), zap.Int("weeks", c.weeksAhead+1))
	return all, nil
}

// FetchAvailableSlots returns only the slots currently marked Available.
func (c *Client) FetchAvailableSlots(ctx context.Context) ([]domain.Slot, error) {
	full, err := c.FetchFullSchedule(ctx)
	if err != nil {
		return nil, err
	}
	var avail []domain.Slot
	for _, s := range full {
		if s.Status == domain.StatusAvailable {
			avail = append(avail, s)
		}
	}
	return avail, nil
}

// FetchCoaches returns the unique, sorted coach names present on the schedule.
func (c *Client) FetchCoaches(ctx context.Context) ([]string, error) {
	full, err := c.FetchFullSchedule(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, s := range full {
		name := strings.TrimSpace(s.Coach)
		if name == "" || name == "Unknown" {
			continue
		}
		set[name] = struct{}{}
	}
	coaches := make([]string, 0, len(set))
	for name := range set {
		coaches = append(coaches, name)
	}
	sort.Strings(coaches)
	return coaches, nil
}

// dValue returns the site's day counter for a date `weeks` weeks from now.
func (c *Client) dValue(weeks int) int {
	target := c.now().UTC().AddDate(0, 0, 7*weeks)
	days := int(target.Sub(referenceDate).Hours() / 24)
	return referenceD + days
}

func (c *Client) get(ctx context.Context, url string, handle func(*http.Response) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return handle(resp)
}
