// Package restriction evaluates the shop's booking policies: rules that can
// reject a booking even when the requested time itself is free. Rules are
// data, evaluated strictly in declaration order; the first enabled rule that
// blocks decides the rejection and its customer-facing message.
package restriction

import (
	"fmt"
	"time"

	"github.com/konanauto/garage-booking/internal/catalog"
	"github.com/konanauto/garage-booking/internal/schedule"
	"github.com/konanauto/garage-booking/internal/titles"
)

// Role distinguishes the public booking site from the authenticated admin
// form.
type Role string

const (
	RolePublic     Role = "public"
	RolePrivileged Role = "privileged"
)

// VisitType is how the vehicle reaches the shop.
type VisitType string

const (
	VisitInPerson VisitType = "来店"
	VisitPickup   VisitType = "引取"
)

// Candidate is one proposed booking under evaluation.
type Candidate struct {
	Service string
	Date    time.Time
	// At is the requested start, nil for whole-day services.
	At    *schedule.Clock
	Role  Role
	Visit VisitType
}

// Rule is one policy. Blocks receives the target day's events and the
// candidate; returning true rejects the booking with Message.
type Rule struct {
	ID          string
	Description string
	Enabled     bool
	Blocks      func(dayEvents []schedule.Event, c Candidate) bool
	Message     string
}

// Error is a policy rejection. The message is shown to the customer
// verbatim and must never be downgraded or rewritten.
type Error struct {
	RuleID  string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("restriction: %s: %s", e.RuleID, e.Message)
}

// Rule identifiers.
const (
	RulePickupAccessControl  = "pickup_access_control"
	RulePickupLimit          = "pickup_limit"
	RuleInspection12MonthCap = "inspection_12month_limit"
)

// DefaultRules returns the shop's policies in their fixed evaluation order.
// pickupQuota is configuration (the historical revisions disagree on 3 vs
// 4); values below 1 fall back to the catalog default.
func DefaultRules(pickupQuota int) []Rule {
	if pickupQuota < 1 {
		pickupQuota = catalog.DefaultPickupQuota
	}
	return []Rule{
		{
			ID:          RulePickupAccessControl,
			Description: "引取予約アクセス制御",
			Enabled:     true,
			Blocks: func(_ []schedule.Event, c Candidate) bool {
				return c.Visit == VisitPickup
			},
			Message: "引取サービスは管理者フォームからのみ予約可能です。",
		},
		{
			ID:          RulePickupLimit,
			Description: "引取予約制限",
			Enabled:     true,
			Blocks: func(dayEvents []schedule.Event, _ Candidate) bool {
				return titles.CountPickups(dayEvents) >= pickupQuota
			},
			Message: "この日は引取予約が上限に達しているため、新規予約を受け付けられません。",
		},
		{
			ID:          RuleInspection12MonthCap,
			Description: "車検と12ヵ月点検の制限",
			Enabled:     true,
			Blocks: func(dayEvents []schedule.Event, c Candidate) bool {
				if c.Service != catalog.ServiceInspection12Month {
					return false
				}
				if titles.CountService(dayEvents, catalog.ServiceShaken) < 2 {
					return false
				}
				return titles.CountService(dayEvents, catalog.ServiceInspection12Month) >= 1
			},
			Message: "申し訳ありません。車検予約数により12ヵ月点検は予約できません。",
		},
	}
}

// Evaluate runs the rules against the day's events. Privileged requesters
// bypass every rule; they remain subject to availability checks. A nil
// return means no policy objects.
func Evaluate(rules []Rule, dayEvents []schedule.Event, c Candidate) *Error {
	if c.Role == RolePrivileged {
		return nil
	}
	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if rule.Blocks(dayEvents, c) {
			return &Error{RuleID: rule.ID, Message: rule.Message}
		}
	}
	return nil
}
