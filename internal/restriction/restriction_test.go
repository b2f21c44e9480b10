package restriction

import (
	"testing"
	"time"

	"github.com/konanauto/garage-booking/internal/catalog"
	"github.com/konanauto/garage-booking/internal/schedule"
)

var day = time.Date(2026, 9, 7, 0, 0, 0, 0, schedule.Location)

func pickupEvent(name string, h int) schedule.Event {
	start := time.Date(2026, 9, 7, h, 0, 0, 0, schedule.Location)
	return schedule.Event{
		Title: "【未確認】(引取) " + name + " - オイル交換",
		Start: start,
		End:   start.Add(30 * time.Minute),
	}
}

func serviceEvent(service string, h int) schedule.Event {
	start := time.Date(2026, 9, 7, h, 0, 0, 0, schedule.Location)
	return schedule.Event{
		Title: "【未確認】鈴木 - " + service,
		Start: start,
		End:   start.Add(time.Hour),
	}
}

func TestPickupAccessControl(t *testing.T) {
	rules := DefaultRules(3)

	c := Candidate{Service: catalog.ServicePickup, Date: day, Role: RolePublic, Visit: VisitPickup}
	err := Evaluate(rules, nil, c)
	if err == nil {
		t.Fatal("public pickup booking must be rejected")
	}
	if err.RuleID != RulePickupAccessControl {
		t.Errorf("expected %s, got %s", RulePickupAccessControl, err.RuleID)
	}
	if err.Message != "引取サービスは管理者フォームからのみ予約可能です。" {
		t.Errorf("message must be reported verbatim, got %q", err.Message)
	}
}

func TestPickupQuotaBlocksAnyService(t *testing.T) {
	rules := DefaultRules(3)
	dayEvents := []schedule.Event{
		pickupEvent("山田", 9),
		pickupEvent("田中", 10),
		pickupEvent("佐藤", 11),
	}

	// Quota reached: even a plain oil change is blocked for the public.
	c := Candidate{Service: catalog.ServiceOilChange, Date: day, Role: RolePublic, Visit: VisitInPerson}
	err := Evaluate(rules, dayEvents, c)
	if err == nil || err.RuleID != RulePickupLimit {
		t.Fatalf("expected %s rejection, got %v", RulePickupLimit, err)
	}
}

func TestPickupQuotaBelowLimit(t *testing.T) {
	rules := DefaultRules(3)
	dayEvents := []schedule.Event{pickupEvent("山田", 9), pickupEvent("田中", 10)}

	c := Candidate{Service: catalog.ServiceOilChange, Date: day, Role: RolePublic, Visit: VisitInPerson}
	if err := Evaluate(rules, dayEvents, c); err != nil {
		t.Fatalf("two pickups with quota three must pass, got %v", err)
	}
}

func TestPickupQuotaIsConfigurable(t *testing.T) {
	rules := DefaultRules(4)
	dayEvents := []schedule.Event{
		pickupEvent("山田", 9),
		pickupEvent("田中", 10),
		pickupEvent("佐藤", 11),
	}

	c := Candidate{Service: catalog.ServiceOilChange, Date: day, Role: RolePublic, Visit: VisitInPerson}
	if err := Evaluate(rules, dayEvents, c); err != nil {
		t.Fatalf("quota four should admit a day with three pickups, got %v", err)
	}
}

func TestInspectionCoupling(t *testing.T) {
	rules := DefaultRules(3)
	dayEvents := []schedule.Event{
		serviceEvent(catalog.ServiceShaken, 9),
		serviceEvent(catalog.ServiceShaken, 10),
		serviceEvent(catalog.ServiceInspection12Month, 13),
	}

	c := Candidate{Service: catalog.ServiceInspection12Month, Date: day, Role: RolePublic, Visit: VisitInPerson}
	err := Evaluate(rules, dayEvents, c)
	if err == nil || err.RuleID != RuleInspection12MonthCap {
		t.Fatalf("expected coupling rejection, got %v", err)
	}

	// Other services are unaffected by the coupling.
	c.Service = catalog.ServiceOilChange
	if err := Evaluate(rules, dayEvents, c); err != nil {
		t.Errorf("coupling must only cap 12ヵ月点検, got %v", err)
	}
}

func TestInspectionCouplingNeedsTwoShaken(t *testing.T) {
	rules := DefaultRules(3)
	dayEvents := []schedule.Event{
		serviceEvent(catalog.ServiceShaken, 9),
		serviceEvent(catalog.ServiceInspection12Month, 13),
	}

	c := Candidate{Service: catalog.ServiceInspection12Month, Date: day, Role: RolePublic, Visit: VisitInPerson}
	if err := Evaluate(rules, dayEvents, c); err != nil {
		t.Fatalf("one 車検 must not trigger the coupling, got %v", err)
	}
}

func TestPrivilegedBypassesAllRules(t *testing.T) {
	rules := DefaultRules(3)
	dayEvents := []schedule.Event{
		pickupEvent("山田", 9),
		pickupEvent("田中", 10),
		pickupEvent("佐藤", 11),
	}

	c := Candidate{Service: catalog.ServicePickup, Date: day, Role: RolePrivileged, Visit: VisitPickup}
	if err := Evaluate(rules, dayEvents, c); err != nil {
		t.Fatalf("privileged requester must bypass rules, got %v", err)
	}
}

func TestDisabledRuleSkipped(t *testing.T) {
	rules := DefaultRules(3)
	rules[0].Enabled = false

	c := Candidate{Service: catalog.ServicePickup, Date: day, Role: RolePublic, Visit: VisitPickup}
	if err := Evaluate(rules, nil, c); err != nil {
		t.Fatalf("disabled rule must not fire, got %v", err)
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	rules := DefaultRules(3)
	dayEvents := []schedule.Event{
		pickupEvent("山田", 9),
		pickupEvent("田中", 10),
		pickupEvent("佐藤", 11),
	}

	// A public pickup on a full pickup day trips both of the first two
	// rules; declaration order decides.
	c := Candidate{Service: catalog.ServicePickup, Date: day, Role: RolePublic, Visit: VisitPickup}
	err := Evaluate(rules, dayEvents, c)
	if err == nil || err.RuleID != RulePickupAccessControl {
		t.Fatalf("expected first declared rule to win, got %v", err)
	}
}
