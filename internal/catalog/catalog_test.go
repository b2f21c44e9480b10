package catalog

import (
	"errors"
	"testing"
	"time"
)

func TestLookupKnownService(t *testing.T) {
	c := Default()

	def, err := c.Lookup(ServiceInspection12Month)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if def.DurationMin != 120 {
		t.Errorf("expected 120 min, got %d", def.DurationMin)
	}
	if def.MaxPerDay != 2 {
		t.Errorf("expected cap 2, got %d", def.MaxPerDay)
	}
	if !def.RequiresTimeSlot {
		t.Error("12ヵ月点検 requires a time slot")
	}
	if def.Duration() != 2*time.Hour {
		t.Errorf("expected 2h duration, got %s", def.Duration())
	}
}

func TestLookupUnknownServiceIsHardError(t *testing.T) {
	c := Default()

	_, err := c.Lookup("エンジン交換")
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
}

func TestShakenIsWholeDay(t *testing.T) {
	c := Default()

	def, err := c.Lookup(ServiceShaken)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !def.WholeDay() {
		t.Error("車検 must be a whole-day booking")
	}
	if def.DurationMin != 0 {
		t.Errorf("whole-day sentinel duration should be 0, got %d", def.DurationMin)
	}
}

func TestServicesPreserveOrder(t *testing.T) {
	c := New([]ServiceDefinition{
		{Name: "b", DurationMin: 30},
		{Name: "a", DurationMin: 60},
		{Name: "b", DurationMin: 90}, // duplicate ignored
	})

	defs := c.Services()
	if len(defs) != 2 {
		t.Fatalf("expected 2 services, got %d", len(defs))
	}
	if defs[0].Name != "b" || defs[0].DurationMin != 30 {
		t.Errorf("expected first declaration kept, got %+v", defs[0])
	}
	if defs[1].Name != "a" {
		t.Errorf("expected declaration order, got %+v", defs[1])
	}
}

func TestLimitsCapFor(t *testing.T) {
	def := ServiceDefinition{Name: ServiceOilChange, MaxPerDay: 2}

	var nilLimits *Limits
	if got := nilLimits.CapFor(def); got != 2 {
		t.Errorf("nil limits should fall back to catalog cap, got %d", got)
	}

	limits := &Limits{MaxPerDay: map[string]int{ServiceOilChange: 5}}
	if got := limits.CapFor(def); got != 5 {
		t.Errorf("expected override 5, got %d", got)
	}

	lifted := &Limits{MaxPerDay: map[string]int{ServiceOilChange: 0}}
	if got := lifted.CapFor(def); got != 0 {
		t.Errorf("explicit 0 lifts the cap, got %d", got)
	}
}
