package schedule

import "time"

// IsClosed reports whether the shop takes no bookings on the date: every
// Sunday, public holidays, and the 2nd and 4th Saturday of each month.
func IsClosed(date time.Time) bool {
	local := date.In(Location)
	if local.Weekday() == time.Sunday {
		return true
	}
	if IsHoliday(local) {
		return true
	}
	if local.Weekday() == time.Saturday {
		w := weekOfMonth(local.Day())
		if w == 2 || w == 4 {
			return true
		}
	}
	return false
}

// weekOfMonth is ceil(day/7): day 1-7 is week 1, 8-14 week 2, and so on.
func weekOfMonth(day int) int {
	return (day + 6) / 7
}
