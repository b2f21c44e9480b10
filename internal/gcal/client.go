// Package gcal is the Google Calendar collaborator: it reads the scheduled
// events the decision engine works from and writes accepted bookings back.
// The calendar is the system of record; nothing here caches or mutates
// state beyond the insert.
package gcal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/konanauto/garage-booking/internal/catalog"
	"github.com/konanauto/garage-booking/internal/schedule"
	"github.com/konanauto/garage-booking/internal/titles"
	"github.com/konanauto/garage-booking/pkg/logging"
)

// ErrUnreachable wraps any transport failure against the calendar API. The
// caller decides whether to retry; this package does not.
var ErrUnreachable = errors.New("gcal: calendar unreachable")

// Google Calendar color ids per service, carried over from the shop's
// existing calendar so staff keep their color coding.
var serviceColors = map[string]string{
	catalog.ServiceShaken:            "11",
	catalog.ServiceOilChange:         "5",
	catalog.ServiceInspection12Month: "9",
	catalog.ServiceInspection6Month:  "9",
	catalog.ServiceScheduledCheck:    "7",
	catalog.ServiceGeneralRepair:     "8",
	catalog.ServiceTireChange:        "6",
	catalog.ServicePickup:            "10",
}

// ColorFor returns the calendar color id for a service, empty when unknown.
func ColorFor(service string) string {
	return serviceColors[service]
}

// Config holds the service-account credentials and target calendar.
type Config struct {
	CalendarID  string
	ClientEmail string
	// PrivateKey may contain literal "\n" sequences, as delivered through
	// environment variables.
	PrivateKey string
}

// Client talks to one Google Calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
	logger     *logging.Logger
}

// NewClient builds a calendar client authenticated as a service account.
// Extra options override the defaults; tests pass WithEndpoint and
// WithoutAuthentication.
func NewClient(ctx context.Context, cfg Config, logger *logging.Logger, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.CalendarID == "" {
		return nil, errors.New("gcal: calendar id is required")
	}

	if len(opts) == 0 {
		if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
			return nil, errors.New("gcal: service account credentials are required")
		}
		conf := &jwt.Config{
			Email:      cfg.ClientEmail,
			PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
			TokenURL:   google.JWTTokenURL,
			Scopes:     []string{calendar.CalendarScope},
		}
		opts = []option.ClientOption{option.WithTokenSource(conf.TokenSource(ctx))}
	}

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcal: create service: %w", err)
	}
	return &Client{svc: svc, calendarID: cfg.CalendarID, logger: logger}, nil
}

// Window fetches events whose start lies in [from, to), ordered by start
// time, expanded to single events.
func (c *Client) Window(ctx context.Context, from, to time.Time) ([]schedule.Event, error) {
	call := c.svc.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	var events []schedule.Event
	pageToken := ""
	for {
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: list events: %v", ErrUnreachable, err)
		}
		for _, item := range resp.Items {
			ev, ok := c.toEvent(item)
			if !ok {
				continue
			}
			events = append(events, ev)
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			return events, nil
		}
	}
}

func (c *Client) toEvent(item *calendar.Event) (schedule.Event, bool) {
	start, allDay, okStart := parseEventTime(item.Start)
	end, _, okEnd := parseEventTime(item.End)
	if !okStart {
		c.logger.Warn("skipping calendar event without parsable start", "event_id", item.Id)
		return schedule.Event{}, false
	}
	if !okEnd {
		end = start
	}
	return schedule.Event{
		Start:       start,
		End:         end,
		Title:       item.Summary,
		DurationMin: titles.WorkMinutes(item.Description),
		WholeDay:    allDay,
	}, true
}

func parseEventTime(edt *calendar.EventDateTime) (t time.Time, allDay, ok bool) {
	if edt == nil {
		return time.Time{}, false, false
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false, false
		}
		return t, false, true
	}
	if edt.Date != "" {
		// All-day entries carry a date only; pin them to shop-local
		// midnight so day filtering classifies them correctly.
		t, err := time.ParseInLocation("2006-01-02", edt.Date, schedule.Location)
		if err != nil {
			return time.Time{}, false, false
		}
		return t, true, true
	}
	return time.Time{}, false, false
}

// Entry is one accepted booking to be written to the calendar.
type Entry struct {
	Title       string
	Description string
	Service     string
	Start       time.Time
	End         time.Time
	// WholeDay entries are written as all-day events on Start's date.
	WholeDay bool
}

// Insert creates the calendar event for an accepted booking.
func (c *Client) Insert(ctx context.Context, e Entry) error {
	ev := &calendar.Event{
		Summary:     e.Title,
		Description: e.Description,
		ColorId:     ColorFor(e.Service),
	}
	if e.WholeDay {
		day := schedule.DayStart(e.Start)
		ev.Start = &calendar.EventDateTime{Date: day.Format("2006-01-02")}
		ev.End = &calendar.EventDateTime{Date: day.AddDate(0, 0, 1).Format("2006-01-02")}
	} else {
		ev.Start = &calendar.EventDateTime{DateTime: e.Start.Format(time.RFC3339), TimeZone: "Asia/Tokyo"}
		ev.End = &calendar.EventDateTime{DateTime: e.End.Format(time.RFC3339), TimeZone: "Asia/Tokyo"}
	}

	if _, err := c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: insert event: %v", ErrUnreachable, err)
	}
	c.logger.Info("calendar event created", "title", e.Title, "start", e.Start)
	return nil
}
