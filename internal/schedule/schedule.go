// Package schedule owns the shop's local-time arithmetic: the JST timezone,
// clock-of-day parsing, the calendar day window over fetched events, the
// business-hour slot grid and the closed-day calendar. No other package may
// compute local-time offsets on its own.
package schedule

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// Location is the shop's timezone. Day boundaries, slot times and holiday
// dates are all evaluated here, never in UTC.
var Location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		// Containers without tzdata still get correct JST math; Japan has
		// no daylight saving.
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// Event is the read-only projection of one calendar entry. Start and End are
// timezone-aware. DurationMin is the declared work duration parsed from the
// entry's description, 0 when absent. WholeDay marks all-day entries, which
// span [midnight, next midnight) and occupy the date rather than a time slot.
type Event struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Title       string    `json:"title"`
	DurationMin int       `json:"duration_min,omitempty"`
	WholeDay    bool      `json:"whole_day,omitempty"`
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock accepts "9:00" and "09:00" style values.
func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return Clock{}, fmt.Errorf("schedule: parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("schedule: clock %q out of range", s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// String renders the slot-grid form used in calendar titles and the booking
// UI, e.g. "9:30".
func (c Clock) String() string {
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

// Minutes returns minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func clockFromMinutes(m int) Clock {
	return Clock{Hour: m / 60, Minute: m % 60}
}

// At pins the clock onto the given date in the shop timezone.
func (c Clock) At(date time.Time) time.Time {
	y, m, d := date.In(Location).Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, Location)
}

// DayStart returns midnight of the date in the shop timezone.
func DayStart(date time.Time) time.Time {
	y, m, d := date.In(Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Location)
}

// SameDay reports whether both instants fall on the same shop-local calendar
// day. Events arrive with explicit offsets, so UTC day boundaries would
// misclassify evening entries.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(Location).Date()
	by, bm, bd := b.In(Location).Date()
	return ay == by && am == bm && ad == bd
}

// EventsOnDay yields the events whose start falls on the given shop-local
// day, ordered by start time ascending. The sequence is finite and
// restartable; the input is not mutated.
func EventsOnDay(events []Event, date time.Time) iter.Seq[Event] {
	day := make([]Event, 0, len(events))
	for _, e := range events {
		if SameDay(e.Start, date) {
			day = append(day, e)
		}
	}
	slices.SortFunc(day, func(a, b Event) int {
		return a.Start.Compare(b.Start)
	})
	return func(yield func(Event) bool) {
		for _, e := range day {
			if !yield(e) {
				return
			}
		}
	}
}

// CollectDay materializes EventsOnDay into a slice.
func CollectDay(events []Event, date time.Time) []Event {
	return slices.Collect(EventsOnDay(events, date))
}
