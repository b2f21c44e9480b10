package schedule

import "time"

// Business hours. Saturdays close an hour earlier; the 12:00-13:00 lunch
// break takes no new work.
var (
	dayOpen       = Clock{Hour: 9, Minute: 0}
	weekdayClose  = Clock{Hour: 17, Minute: 30}
	saturdayClose = Clock{Hour: 16, Minute: 30}
	lunchStart    = Clock{Hour: 12, Minute: 0}
	lunchEnd      = Clock{Hour: 13, Minute: 0}
)

// SlotStepMinutes is the grid spacing of candidate start times.
const SlotStepMinutes = 30

// CloseAt returns the last admissible slot start for the date's weekday.
func CloseAt(date time.Time) Clock {
	if date.In(Location).Weekday() == time.Saturday {
		return saturdayClose
	}
	return weekdayClose
}

// Slots returns the ordered candidate start times for a booking of
// durationMin minutes on the given date. A start is admissible when:
//
//   - it lies on the 30-minute grid between opening and the weekday's
//     closing boundary, excluding any 12:xx start;
//   - the computed end does not pass the closing boundary;
//   - the slot does not cross the lunch interior: an end of exactly 12:00
//     is fine, otherwise any slot ending after 12:00 must start at 13:00
//     or later.
//
// Closed days yield no slots.
func Slots(date time.Time, durationMin int) []Clock {
	if IsClosed(date) {
		return nil
	}
	closeAt := CloseAt(date)

	var slots []Clock
	for m := dayOpen.Minutes(); m <= closeAt.Minutes(); m += SlotStepMinutes {
		c := clockFromMinutes(m)
		if c.Hour == lunchStart.Hour {
			continue
		}
		end := m + durationMin
		if end > closeAt.Minutes() {
			continue
		}
		if end > lunchStart.Minutes() && m < lunchEnd.Minutes() {
			continue
		}
		slots = append(slots, c)
	}
	return slots
}

// ValidSlot reports whether at is one of the candidate starts Slots would
// emit for the date and duration.
func ValidSlot(date time.Time, at Clock, durationMin int) bool {
	for _, c := range Slots(date, durationMin) {
		if c == at {
			return true
		}
	}
	return false
}
