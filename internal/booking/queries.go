package booking

import (
	"context"
	"time"

	"github.com/konanauto/garage-booking/internal/availability"
	"github.com/konanauto/garage-booking/internal/restriction"
	"github.com/konanauto/garage-booking/internal/schedule"
)

// DayStatus summarizes a calendar day for the booking form.
type DayStatus string

const (
	DayClosed DayStatus = "closed"
	DayFull   DayStatus = "full"
	DayOpen   DayStatus = "open"
)

// DayAvailability is one day of the booking calendar. Slots is populated
// for slot-based services when the day is open; whole-day services carry
// only the status.
type DayAvailability struct {
	Date     string    `json:"date"`
	Status   DayStatus `json:"status"`
	WholeDay bool      `json:"whole_day,omitempty"`
	Slots    []string  `json:"slots,omitempty"`
}

// DayAvailability reports what a public visitor could book for the
// service on the given day, from the current snapshot.
func (s *Service) DayAvailability(ctx context.Context, service string, date time.Time) (*DayAvailability, error) {
	def, err := s.catalog.Lookup(service)
	if err != nil {
		return nil, err
	}

	out := &DayAvailability{
		Date:     schedule.DayStart(date).Format("2006-01-02"),
		WholeDay: !def.RequiresTimeSlot,
	}

	if schedule.IsClosed(date) {
		out.Status = DayClosed
		return out, nil
	}
	today := schedule.DayStart(time.Now().In(schedule.Location))
	if schedule.DayStart(date).Before(today) {
		out.Status = DayClosed
		return out, nil
	}

	limits, err := s.limits.Get(ctx)
	if err != nil {
		return nil, err
	}
	day := schedule.CollectDay(s.cache.Snapshot(), date)

	blocked := restriction.Evaluate(restriction.DefaultRules(limits.PickupQuota), day, restriction.Candidate{
		Service: service,
		Date:    date,
		Role:    restriction.RolePublic,
		Visit:   restriction.VisitInPerson,
	})
	if blocked != nil {
		out.Status = DayFull
		return out, nil
	}

	if out.WholeDay {
		if availability.Check(def, limits, date, schedule.Clock{}, day) != nil {
			out.Status = DayFull
		} else {
			out.Status = DayOpen
		}
		return out, nil
	}

	for _, at := range schedule.Slots(date, def.DurationMin) {
		if availability.Check(def, limits, date, at, day) == nil {
			out.Slots = append(out.Slots, at.String())
		}
	}
	if len(out.Slots) == 0 {
		out.Status = DayFull
	} else {
		out.Status = DayOpen
	}
	return out, nil
}

// MonthAvailability returns the day statuses for a whole month, as the
// booking calendar renders it. Slot lists are omitted to keep the
// payload small; the form fetches them per day.
func (s *Service) MonthAvailability(ctx context.Context, service string, year int, month time.Month) ([]DayAvailability, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, schedule.Location)
	days := make([]DayAvailability, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		day, err := s.DayAvailability(ctx, service, d)
		if err != nil {
			return nil, err
		}
		day.Slots = nil
		days = append(days, *day)
	}
	return days, nil
}
