package schedule

import (
	"math"
	"sync"
	"time"
)

// Japanese public holidays, generated per year: fixed dates, the Happy
// Monday holidays, the equinox approximations and the observed-holiday
// shift (a holiday falling on Sunday moves to the next non-holiday day).

var holidayCache sync.Map // year -> map[[2]int]bool keyed by (month, day)

// IsHoliday reports whether the date is a public holiday (observed shifts
// included) in the shop timezone.
func IsHoliday(date time.Time) bool {
	local := date.In(Location)
	set := holidaysFor(local.Year())
	return set[[2]int{int(local.Month()), local.Day()}]
}

func holidaysFor(year int) map[[2]int]bool {
	if cached, ok := holidayCache.Load(year); ok {
		return cached.(map[[2]int]bool)
	}

	days := []time.Time{
		date(year, time.January, 1),    // 元日
		nthMonday(year, time.January, 2), // 成人の日
		date(year, time.February, 11), // 建国記念の日
		date(year, time.February, 23), // 天皇誕生日
		date(year, time.March, equinoxDay(20.8431, year)), // 春分の日
		date(year, time.April, 29), // 昭和の日
		date(year, time.May, 3),    // 憲法記念日
		date(year, time.May, 4),    // みどりの日
		date(year, time.May, 5),    // こどもの日
		nthMonday(year, time.July, 3), // 海の日
		date(year, time.August, 11),   // 山の日
		nthMonday(year, time.September, 3), // 敬老の日
		date(year, time.September, equinoxDay(23.2488, year)), // 秋分の日
		nthMonday(year, time.October, 2), // スポーツの日
		date(year, time.November, 3),     // 文化の日
		date(year, time.November, 23),    // 勤労感謝の日
	}

	set := make(map[[2]int]bool, len(days)+4)
	for _, d := range days {
		set[[2]int{int(d.Month()), d.Day()}] = true
	}
	// Observed shift: Sunday holidays roll forward to the first day that is
	// not already a holiday.
	for _, d := range days {
		if d.Weekday() != time.Sunday {
			continue
		}
		next := d.AddDate(0, 0, 1)
		for set[[2]int{int(next.Month()), next.Day()}] {
			next = next.AddDate(0, 0, 1)
		}
		set[[2]int{int(next.Month()), next.Day()}] = true
	}

	actual, _ := holidayCache.LoadOrStore(year, set)
	return actual.(map[[2]int]bool)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Location)
}

func nthMonday(year int, month time.Month, n int) time.Time {
	first := date(year, month, 1)
	offset := (int(time.Monday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

// equinoxDay uses the established linear approximation, valid for the years
// a 90-day booking window can reach.
func equinoxDay(base float64, year int) int {
	return int(math.Floor(base + 0.242194*float64(year-1980) - math.Floor(float64(year-1980)/4)))
}
