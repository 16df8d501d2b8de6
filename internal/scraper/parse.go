package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Rainbow1nTheDark/fencing-tg-alerts/internal/domain"
)

const coachHeaderSelector = `tr[height="24"][bgcolor="#ffff66"]`

// ParseSchedule extracts slots from the calendar HTML, working bottom-up from
// the coach header rows: each yellow header row names a coach, its enclosing
// day column carries the weekday and date, and the sibling rows below it are
// the coach's slots for that day. A slot row has exactly two bordered cells,
// time and status; an <input> in the status cell means the slot is bookable.
// A page with no recognizable headers parses to an empty schedule.
func ParseSchedule(r io.Reader) ([]domain.Slot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var schedule []domain.Slot
	doc.Find(coachHeaderSelector).Each(func(_ int, header *goquery.Selection) {
		link := header.Find("a.maintext").First()
		if !strings.Contains(link.Text(), "Coach:") {
			return
		}
		coach := strings.TrimSpace(strings.Replace(link.Text(), "Coach:", "", 1))

		column := header.Closest("td.tdborder")
		if column.Length() == 0 {
			return
		}
		dayHeader := column.Find(`tr[height="34"]`).First()
		day := textOrUnknown(dayHeader.Find("a.mainbold").First())
		date := textOrUnknown(dayHeader.Find("a.smallbold").First())

		header.NextAll().EachWithBreak(func(_ int, row *goquery.Selection) bool {
			if row.Is(coachHeaderSelector) {
				return false // next coach's block
			}
			cells := row.ChildrenFiltered("td.tdborder")
			if cells.Length() != 2 {
				return true
			}
			status := domain.StatusBooked
			if cells.Eq(1).Find("input").Length() > 0 {
				status = domain.StatusAvailable
			}
			schedule = append(schedule, domain.Slot{
				Coach:  coach,
				Day:    day,
				Date:   date,
				Time:   strings.TrimSpace(cells.Eq(0).Text()),
				Status: status,
			})
			return true
		})
	})

	return schedule, nil
}

func textOrUnknown(sel *goquery.Selection) string {
	s := strings.TrimSpace(sel.Text())
	if s == "" {
		return "Unknown"
	}
	return s
}
