package schedule

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"9:00", Clock{9, 0}, false},
		{"09:30", Clock{9, 30}, false},
		{"17:30", Clock{17, 30}, false},
		{"24:00", Clock{}, true},
		{"9:60", Clock{}, true},
		{"lunch", Clock{}, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockString(t *testing.T) {
	if s := (Clock{9, 0}).String(); s != "9:00" {
		t.Errorf("expected 9:00, got %s", s)
	}
	if s := (Clock{16, 30}).String(); s != "16:30" {
		t.Errorf("expected 16:30, got %s", s)
	}
}

func TestClockAtUsesShopTimezone(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	at := Clock{9, 30}.At(date)
	if at.Location() != Location {
		t.Fatalf("expected shop location, got %v", at.Location())
	}
	if at.Hour() != 9 || at.Minute() != 30 {
		t.Errorf("expected 09:30 local, got %s", at.Format("15:04"))
	}
}

func TestEventsOnDayFiltersByLocalDay(t *testing.T) {
	jst := Location
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, jst)

	events := []Event{
		{Title: "オイル交換 - 山田", Start: time.Date(2026, 9, 7, 14, 0, 0, 0, jst), End: time.Date(2026, 9, 7, 14, 30, 0, 0, jst)},
		{Title: "車検 - 鈴木", Start: time.Date(2026, 9, 7, 9, 0, 0, 0, jst), End: time.Date(2026, 9, 7, 10, 0, 0, 0, jst)},
		{Title: "other day", Start: time.Date(2026, 9, 8, 9, 0, 0, 0, jst), End: time.Date(2026, 9, 8, 10, 0, 0, 0, jst)},
		// 00:30 JST on the 7th expressed in UTC: a UTC day filter would put
		// this on the 6th.
		{Title: "midnight edge", Start: time.Date(2026, 9, 6, 15, 30, 0, 0, time.UTC), End: time.Date(2026, 9, 6, 16, 0, 0, 0, time.UTC)},
	}

	got := CollectDay(events, day)
	if len(got) != 3 {
		t.Fatalf("expected 3 events on day, got %d", len(got))
	}
	if got[0].Title != "midnight edge" {
		t.Errorf("expected ascending order, first was %q", got[0].Title)
	}
	if got[1].Title != "車検 - 鈴木" || got[2].Title != "オイル交換 - 山田" {
		t.Errorf("unexpected order: %q, %q", got[1].Title, got[2].Title)
	}
}

func TestEventsOnDayRestartable(t *testing.T) {
	jst := Location
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, jst)
	events := []Event{
		{Title: "a", Start: time.Date(2026, 9, 7, 9, 0, 0, 0, jst), End: time.Date(2026, 9, 7, 10, 0, 0, 0, jst)},
		{Title: "b", Start: time.Date(2026, 9, 7, 10, 0, 0, 0, jst), End: time.Date(2026, 9, 7, 11, 0, 0, 0, jst)},
	}

	seq := EventsOnDay(events, day)
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 2 || second != 2 {
		t.Errorf("sequence not restartable: %d then %d", first, second)
	}
}
