// Package catalog holds the fixed service menu: durations, daily capacity
// and whether a service books a concrete time slot or the whole day.
package catalog

import (
	"errors"
	"time"
)

// Service identifiers. The Japanese display names double as the calendar
// title classification tokens, so they must not be translated or reworded
// while Google Calendar remains the event store.
const (
	ServicePickup            = "引取"
	ServiceShaken            = "車検"
	ServiceOilChange         = "オイル交換"
	ServiceInspection12Month = "12ヵ月点検"
	ServiceInspection6Month  = "6ヵ月点検(貨物車)"
	ServiceScheduledCheck    = "スケジュール点検"
	ServiceGeneralRepair     = "一般整備"
	ServiceTireChange        = "タイヤ交換"
)

// ErrUnknownService is returned for identifiers outside the catalog. An
// unknown service is a hard error: defaulting to a guessed duration would
// put a mis-sized hold on the calendar.
var ErrUnknownService = errors.New("catalog: unknown service")

// ServiceDefinition describes one bookable service.
type ServiceDefinition struct {
	// Name is the catalog identifier and the display name written into
	// calendar titles.
	Name string `json:"name"`
	// DurationMin is the slot length in minutes. 0 means the vehicle is
	// held for the whole day and no end time is written.
	DurationMin int `json:"duration_min"`
	// MaxPerDay caps same-day bookings of this service. 0 means unlimited.
	MaxPerDay int `json:"max_per_day"`
	// RequiresTimeSlot is false for whole-day services, which are scheduled
	// onto a date with no time component.
	RequiresTimeSlot bool `json:"requires_time_slot"`
}

// Duration returns the slot length as a time.Duration.
func (d ServiceDefinition) Duration() time.Duration {
	return time.Duration(d.DurationMin) * time.Minute
}

// WholeDay reports whether the service occupies the date rather than a slot.
func (d ServiceDefinition) WholeDay() bool {
	return !d.RequiresTimeSlot
}

// Catalog is the immutable service menu, loaded once at process start.
type Catalog struct {
	services map[string]ServiceDefinition
	order    []string
}

// Default returns the shop's standard menu.
func Default() *Catalog {
	return New([]ServiceDefinition{
		{Name: ServiceShaken, DurationMin: 0, MaxPerDay: 2, RequiresTimeSlot: false},
		{Name: ServiceInspection12Month, DurationMin: 120, MaxPerDay: 2, RequiresTimeSlot: true},
		{Name: ServiceInspection6Month, DurationMin: 90, MaxPerDay: 2, RequiresTimeSlot: true},
		{Name: ServiceScheduledCheck, DurationMin: 60, MaxPerDay: 4, RequiresTimeSlot: true},
		{Name: ServiceGeneralRepair, DurationMin: 60, MaxPerDay: 4, RequiresTimeSlot: true},
		{Name: ServiceOilChange, DurationMin: 30, MaxPerDay: 2, RequiresTimeSlot: true},
		{Name: ServiceTireChange, DurationMin: 30, MaxPerDay: 8, RequiresTimeSlot: true},
		{Name: ServicePickup, DurationMin: 30, MaxPerDay: 3, RequiresTimeSlot: true},
	})
}

// New builds a catalog from definitions, preserving declaration order.
func New(defs []ServiceDefinition) *Catalog {
	c := &Catalog{services: make(map[string]ServiceDefinition, len(defs))}
	for _, def := range defs {
		if _, dup := c.services[def.Name]; dup {
			continue
		}
		c.services[def.Name] = def
		c.order = append(c.order, def.Name)
	}
	return c
}

// Lookup resolves a service identifier.
func (c *Catalog) Lookup(name string) (ServiceDefinition, error) {
	def, ok := c.services[name]
	if !ok {
		return ServiceDefinition{}, ErrUnknownService
	}
	return def, nil
}

// Services returns all definitions in declaration order.
func (c *Catalog) Services() []ServiceDefinition {
	out := make([]ServiceDefinition, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.services[name])
	}
	return out
}
