// Package availability decides whether a concrete candidate slot is free:
// daily capacity by title classification, half-open interval overlap, and
// the named 車検 hard cap. Business policies beyond raw scheduling conflicts
// live in the restriction package.
package availability

import (
	"errors"
	"time"

	"github.com/konanauto/garage-booking/internal/catalog"
	"github.com/konanauto/garage-booking/internal/schedule"
	"github.com/konanauto/garage-booking/internal/titles"
)

// ErrSlotUnavailable means the slot conflicts with existing bookings:
// either a time overlap or an exhausted daily cap. The caller tells the
// customer to try another time.
var ErrSlotUnavailable = errors.New("availability: slot unavailable")

// InspectionDayCap is the hard daily capacity for 車検. It applies
// regardless of the configured per-service limits and is checked as its own
// rule so it stays independently testable.
const InspectionDayCap = 2

// CheckInspectionCap rejects once the day already holds InspectionDayCap
// 車検 entries.
func CheckInspectionCap(dayEvents []schedule.Event) error {
	if titles.CountService(dayEvents, catalog.ServiceShaken) >= InspectionDayCap {
		return ErrSlotUnavailable
	}
	return nil
}

// Check reports whether the candidate slot can be accepted against the
// day's events. dayEvents must already be filtered to the target day. The
// checks short-circuit in order:
//
//  1. the 車検 hard cap (named rule);
//  2. the service's effective daily cap, counting events whose title
//     classifies as the service;
//  3. for slot-requiring services, half-open interval overlap: [a,b) and
//     [c,d) collide iff a < d && c < b.
//
// Whole-day services skip the overlap check entirely, and whole-day events
// are never overlap conflicts for slot bookings: they occupy the date only
// through their daily caps. A nil error means available.
func Check(def catalog.ServiceDefinition, limits *catalog.Limits, date time.Time, at schedule.Clock, dayEvents []schedule.Event) error {
	if def.Name == catalog.ServiceShaken {
		if err := CheckInspectionCap(dayEvents); err != nil {
			return err
		}
	}

	if dayCap := limits.CapFor(def); dayCap > 0 {
		if titles.CountService(dayEvents, def.Name) >= dayCap {
			return ErrSlotUnavailable
		}
	}

	if def.WholeDay() {
		return nil
	}

	slotStart := at.At(date)
	slotEnd := slotStart.Add(def.Duration())
	for _, e := range dayEvents {
		if e.WholeDay {
			continue
		}
		if slotStart.Before(e.End) && e.Start.Before(slotEnd) {
			return ErrSlotUnavailable
		}
	}
	return nil
}

// Available is Check reduced to a boolean, for slot-grid rendering.
func Available(def catalog.ServiceDefinition, limits *catalog.Limits, date time.Time, at schedule.Clock, dayEvents []schedule.Event) bool {
	return Check(def, limits, date, at, dayEvents) == nil
}
