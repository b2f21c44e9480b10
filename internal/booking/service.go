// Package booking runs the reservation decision flow: catalog lookup,
// shop-calendar checks, quota and restriction rules, and the calendar
// write plus owner notification for accepted requests.
package booking

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/konanauto/garage-booking/internal/availability"
	"github.com/konanauto/garage-booking/internal/catalog"
	"github.com/konanauto/garage-booking/internal/gcal"
	"github.com/konanauto/garage-booking/internal/notify"
	"github.com/konanauto/garage-booking/internal/observability/metrics"
	"github.com/konanauto/garage-booking/internal/restriction"
	"github.com/konanauto/garage-booking/internal/schedule"
	"github.com/konanauto/garage-booking/internal/titles"
	"github.com/konanauto/garage-booking/pkg/logging"
)

var tracer = otel.Tracer("github.com/konanauto/garage-booking/internal/booking")

// Rejection reasons carried on Decision and exported as metric labels.
const (
	ReasonUnknownService      = "unknown_service"
	ReasonClosedDay           = "closed_day"
	ReasonPastDate            = "past_date"
	ReasonInvalidTimeSlot     = "invalid_time_slot"
	ReasonSlotUnavailable     = "slot_unavailable"
	ReasonRestrictionViolated = "restriction_violated"
)

// Decision is the outcome of one reservation request.
type Decision struct {
	Accepted bool      `json:"accepted"`
	Reason   string    `json:"reason,omitempty"`
	RuleID   string    `json:"rule_id,omitempty"`
	Message  string    `json:"message,omitempty"`
	Start    time.Time `json:"start,omitempty"`
	End      time.Time `json:"end,omitempty"`
	WholeDay bool      `json:"whole_day,omitempty"`
}

// LimitsStore yields the current per-service daily caps.
type LimitsStore interface {
	Get(ctx context.Context) (*catalog.Limits, error)
}

// CalendarWriter creates events on the shop calendar.
type CalendarWriter interface {
	Insert(ctx context.Context, e gcal.Entry) error
}

// Service wires the decision flow together.
type Service struct {
	catalog  *catalog.Catalog
	limits   LimitsStore
	cache    *Cache
	calendar CalendarWriter
	notifier notify.Sender
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

type ServiceConfig struct {
	Catalog  *catalog.Catalog
	Limits   LimitsStore
	Cache    *Cache
	Calendar CalendarWriter
	Notifier notify.Sender
	Metrics  *metrics.BookingMetrics
	Logger   *logging.Logger
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Cache == nil {
		return nil, errors.New("booking: service requires an event cache")
	}
	if cfg.Limits == nil {
		return nil, errors.New("booking: service requires a limits store")
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &Service{
		catalog:  cfg.Catalog,
		limits:   cfg.Limits,
		cache:    cfg.Cache,
		calendar: cfg.Calendar,
		notifier: cfg.Notifier,
		metrics:  cfg.Metrics,
		logger:   cfg.Logger,
	}, nil
}

func (s *Service) reject(reason, ruleID, message string) *Decision {
	s.metrics.ObserveDecision("rejected", reason)
	return &Decision{Accepted: false, Reason: reason, RuleID: ruleID, Message: message}
}

// Decide evaluates a candidate reservation against the calendar snapshot
// without writing anything. Privileged callers skip restriction rules but
// never the availability checks.
func (s *Service) Decide(ctx context.Context, c restriction.Candidate) (*Decision, error) {
	ctx, span := tracer.Start(ctx, "booking.Decide")
	defer span.End()
	span.SetAttributes(
		attribute.String("booking.service", c.Service),
		attribute.String("booking.date", c.Date.Format("2006-01-02")),
	)

	def, err := s.catalog.Lookup(c.Service)
	if err != nil {
		return s.reject(ReasonUnknownService, "", "選択されたサービスは受け付けていません。"), nil
	}

	if schedule.IsClosed(c.Date) {
		return s.reject(ReasonClosedDay, "", "この日は休業日です。"), nil
	}

	today := schedule.DayStart(time.Now().In(schedule.Location))
	if schedule.DayStart(c.Date).Before(today) {
		return s.reject(ReasonPastDate, "", "過去の日付はご予約いただけません。"), nil
	}

	limits, err := s.limits.Get(ctx)
	if err != nil {
		return nil, err
	}

	day := schedule.CollectDay(s.cache.Snapshot(), c.Date)

	var at schedule.Clock
	var start, end time.Time
	wholeDay := !def.RequiresTimeSlot
	if wholeDay {
		start = schedule.DayStart(c.Date)
		end = start.AddDate(0, 0, 1)
	} else {
		if c.At == nil || !schedule.ValidSlot(c.Date, *c.At, def.DurationMin) {
			return s.reject(ReasonInvalidTimeSlot, "", "この時間帯はご予約いただけません。"), nil
		}
		at = *c.At
		start = at.At(c.Date)
		end = start.Add(def.Duration())
	}

	if err := availability.Check(def, limits, c.Date, at, day); err != nil {
		return s.reject(ReasonSlotUnavailable, "", "この日時は既に予約が埋まっています。"), nil
	}

	if verr := restriction.Evaluate(restriction.DefaultRules(limits.PickupQuota), day, c); verr != nil {
		return s.reject(ReasonRestrictionViolated, verr.RuleID, verr.Message), nil
	}

	s.metrics.ObserveDecision("accepted", "")
	return &Decision{Accepted: true, Start: start, End: end, WholeDay: wholeDay}, nil
}

// Request is a reservation submission with full customer details.
type Request struct {
	Details titles.Details
	Date    time.Time
	At      *schedule.Clock
	Role    restriction.Role
	Visit   restriction.VisitType
}

// Book decides and, when accepted, writes the calendar event and emails
// the owner. The snapshot is patched in place so the slot reads as taken
// before the next refresh.
func (s *Service) Book(ctx context.Context, req Request) (*Decision, error) {
	ctx, span := tracer.Start(ctx, "booking.Book")
	defer span.End()

	d, err := s.Decide(ctx, restriction.Candidate{
		Service: req.Details.Service,
		Date:    req.Date,
		At:      req.At,
		Role:    req.Role,
		Visit:   req.Visit,
	})
	if err != nil || !d.Accepted {
		return d, err
	}
	if s.calendar == nil {
		return nil, errors.New("booking: no calendar writer configured")
	}

	pickup := req.Visit == restriction.VisitPickup
	entry := gcal.Entry{
		Title:       titles.Compose(req.Details.DisplayName(), req.Details.Service, pickup),
		Description: titles.Description(req.Details),
		Service:     req.Details.Service,
		Start:       d.Start,
		End:         d.End,
		WholeDay:    d.WholeDay,
	}

	began := time.Now()
	if err := s.calendar.Insert(ctx, entry); err != nil {
		s.metrics.ObserveCalendarOp("insert", "error", time.Since(began).Seconds())
		s.logger.Error("calendar insert failed", "error", err, "service", req.Details.Service)
		return nil, err
	}
	s.metrics.ObserveCalendarOp("insert", "ok", time.Since(began).Seconds())

	def, _ := s.catalog.Lookup(req.Details.Service)
	s.cache.Append(schedule.Event{
		Start:       d.Start,
		End:         d.End,
		Title:       entry.Title,
		DurationMin: def.DurationMin,
		WholeDay:    d.WholeDay,
	})

	s.logger.Info("booking accepted",
		"service", req.Details.Service, "date", req.Date.Format("2006-01-02"), "whole_day", d.WholeDay)

	if s.notifier != nil {
		msg := notify.BookingReceived(req.Details, d.Start, d.WholeDay)
		go func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.notifier.Send(sendCtx, msg); err != nil {
				s.logger.Error("owner notification failed", "error", err)
			}
		}()
	}

	return d, nil
}
