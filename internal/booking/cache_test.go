package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/konanauto/garage-booking/internal/schedule"
)

type fakeReader struct {
	mu     sync.Mutex
	events []schedule.Event
	err    error
	calls  int
}

func (f *fakeReader) Window(ctx context.Context, from, to time.Time) ([]schedule.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeReader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestNewCacheRequiresReader(t *testing.T) {
	if _, err := NewCache(CacheConfig{}); err == nil {
		t.Fatal("expected error without reader")
	}
}

func TestRefreshOnce(t *testing.T) {
	ev := schedule.Event{
		Start: time.Date(2026, 9, 7, 9, 0, 0, 0, schedule.Location),
		End:   time.Date(2026, 9, 7, 9, 30, 0, 0, schedule.Location),
		Title: "【未確認】山田 - オイル交換",
	}
	reader := &fakeReader{events: []schedule.Event{ev}}
	c, err := NewCache(CacheConfig{Reader: reader})
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}

	if err := c.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := c.Snapshot(); len(got) != 1 || got[0].Title != ev.Title {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if c.FetchedAt().IsZero() {
		t.Error("fetchedAt should be set after refresh")
	}
}

func TestRefreshOnceKeepsSnapshotOnError(t *testing.T) {
	reader := &fakeReader{events: []schedule.Event{{Title: "a"}}}
	c, _ := NewCache(CacheConfig{Reader: reader})
	if err := c.RefreshOnce(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	reader.mu.Lock()
	reader.err = errors.New("calendar down")
	reader.mu.Unlock()

	if err := c.RefreshOnce(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if len(c.Snapshot()) != 1 {
		t.Error("failed refresh must not clear the previous snapshot")
	}
}

func TestStartRefreshesOnTick(t *testing.T) {
	reader := &fakeReader{}
	tick := make(chan time.Time)
	c, _ := NewCache(CacheConfig{Reader: reader, Tick: tick})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(ctx)
		close(done)
	}()

	// The start-up refresh plus two ticks.
	deadline := time.After(2 * time.Second)
	for reader.callCount() < 1 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for initial refresh")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	tick <- time.Now()
	tick <- time.Now()
	cancel()
	<-done

	if got := reader.callCount(); got < 3 {
		t.Errorf("expected at least 3 refreshes, got %d", got)
	}
}

func TestAppend(t *testing.T) {
	reader := &fakeReader{events: []schedule.Event{{Title: "a"}}}
	c, _ := NewCache(CacheConfig{Reader: reader})
	_ = c.RefreshOnce(context.Background())

	before := c.Snapshot()
	c.Append(schedule.Event{Title: "b"})

	if len(before) != 1 {
		t.Error("append must not mutate a previously taken snapshot")
	}
	if got := c.Snapshot(); len(got) != 2 || got[1].Title != "b" {
		t.Errorf("unexpected snapshot after append: %+v", got)
	}
}
