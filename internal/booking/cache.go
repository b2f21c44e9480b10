package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/konanauto/garage-booking/internal/observability/metrics"
	"github.com/konanauto/garage-booking/internal/schedule"
	"github.com/konanauto/garage-booking/pkg/logging"
)

// CalendarReader reads the booked-events window from the shop calendar.
type CalendarReader interface {
	Window(ctx context.Context, from, to time.Time) ([]schedule.Event, error)
}

// Cache holds a periodically refreshed snapshot of the calendar so every
// availability check reads local memory instead of hitting Google.
// The snapshot may lag the calendar by up to the refresh interval.
type Cache struct {
	reader     CalendarReader
	windowDays int
	logger     *logging.Logger
	metrics    *metrics.BookingMetrics

	mu        sync.RWMutex
	events    []schedule.Event
	fetchedAt time.Time

	tick <-chan time.Time
	stop func()
}

type CacheConfig struct {
	Reader     CalendarReader
	Interval   time.Duration
	WindowDays int
	Logger     *logging.Logger
	Metrics    *metrics.BookingMetrics

	// Tick/Stop override the internal ticker in tests.
	Tick <-chan time.Time
	Stop func()
}

func NewCache(cfg CacheConfig) (*Cache, error) {
	if cfg.Reader == nil {
		return nil, errors.New("booking: cache requires a calendar reader")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 90
	}

	tick := cfg.Tick
	stop := cfg.Stop
	if tick == nil {
		interval := cfg.Interval
		if interval <= 0 {
			interval = 10 * time.Second
		}
		ticker := time.NewTicker(interval)
		tick = ticker.C
		stop = ticker.Stop
	}

	return &Cache{
		reader:     cfg.Reader,
		windowDays: windowDays,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		tick:       tick,
		stop:       stop,
	}, nil
}

// Start refreshes once immediately, then on every tick until ctx ends.
func (c *Cache) Start(ctx context.Context) {
	if c == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if c.stop != nil {
			c.stop()
		}
	}()

	if err := c.RefreshOnce(ctx); err != nil {
		c.logger.Error("initial calendar refresh failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.tick:
			if err := c.RefreshOnce(ctx); err != nil {
				c.logger.Error("calendar refresh failed", "error", err)
			}
		}
	}
}

// RefreshOnce replaces the snapshot with the current calendar window.
// On error the previous snapshot stays in place.
func (c *Cache) RefreshOnce(ctx context.Context) error {
	if c == nil || c.reader == nil {
		return errors.New("booking: cache not initialized")
	}

	from := schedule.DayStart(time.Now().In(schedule.Location))
	to := from.AddDate(0, 0, c.windowDays)

	began := time.Now()
	events, err := c.reader.Window(ctx, from, to)
	if err != nil {
		c.metrics.ObserveCalendarOp("window", "error", time.Since(began).Seconds())
		return err
	}
	c.metrics.ObserveCalendarOp("window", "ok", time.Since(began).Seconds())

	c.mu.Lock()
	c.events = events
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.metrics.SetCachedEvents(len(events))
	return nil
}

// Append patches a freshly written event into the snapshot so it counts
// against availability before the next refresh replaces it.
func (c *Cache) Append(ev schedule.Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	events := make([]schedule.Event, len(c.events), len(c.events)+1)
	copy(events, c.events)
	c.events = append(events, ev)
	c.mu.Unlock()
	c.metrics.SetCachedEvents(len(events) + 1)
}

// Snapshot returns the cached events. The slice is shared and must not
// be mutated by callers.
func (c *Cache) Snapshot() []schedule.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.events
}

// FetchedAt reports when the snapshot was last replaced; zero before the
// first successful refresh.
func (c *Cache) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
