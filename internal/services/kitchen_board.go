package services

import (
	"sync"
	"time"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/pkg/utils"

	"github.com/go-co-op/gocron"
)

// BoardSnapshot is what the kitchen screen receives on every tick.
type BoardSnapshot struct {
	Tickets []models.KitchenTicket `json:"tickets"`
	Clock   time.Time              `json:"clock"`
}

// KitchenBoard polls the active orders and pushes snapshots to every
// connected kitchen screen. It also ticks once a second so the elapsed
// minutes and the wall clock stay current between polls.
type KitchenBoard struct {
	kitchen   KitchenService
	scheduler *gocron.Scheduler
	interval  time.Duration
	now       func() time.Time

	mu          sync.Mutex
	latest      []models.KitchenTicket
	subscribers map[chan BoardSnapshot]struct{}
}

// NewKitchenBoard creates a board polling every interval in the given location.
func NewKitchenBoard(kitchen KitchenService, interval time.Duration, loc *time.Location) *KitchenBoard {
	if loc == nil {
		loc = time.Local
	}
	if interval < time.Second {
		interval = time.Second
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &KitchenBoard{
		kitchen:     kitchen,
		scheduler:   s,
		interval:    interval,
		now:         time.Now,
		latest:      []models.KitchenTicket{},
		subscribers: make(map[chan BoardSnapshot]struct{}),
	}
}

// Start schedules the poller and the clock and runs them in the background.
func (b *KitchenBoard) Start() error {
	if _, err := b.scheduler.Every(b.interval).Do(b.Refresh); err != nil {
		return err
	}
	if _, err := b.scheduler.Every(1).Second().Do(b.tick); err != nil {
		return err
	}
	b.scheduler.StartAsync()
	utils.LogInfo("Kitchen board started", map[string]interface{}{"poll_interval": b.interval.String()})
	return nil
}

// Stop halts the scheduler and closes every subscription.
func (b *KitchenBoard) Stop() {
	b.scheduler.Stop()
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subscribers {
		delete(b.subscribers, ch)
		close(ch)
	}
}

// Refresh re-reads the active orders and broadcasts the result.
func (b *KitchenBoard) Refresh() {
	tickets, err := b.kitchen.Tickets()
	if err != nil {
		utils.LogError(err, "Kitchen board refresh failed")
		return
	}
	b.mu.Lock()
	b.latest = tickets
	b.mu.Unlock()
	b.broadcast()
}

func (b *KitchenBoard) tick() {
	b.broadcast()
}

// Snapshot returns the last polled tickets with elapsed minutes
// recomputed for the current time.
func (b *KitchenBoard) Snapshot() BoardSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *KitchenBoard) snapshotLocked() BoardSnapshot {
	now := b.now()
	nowMs := now.UnixMilli()
	tickets := make([]models.KitchenTicket, len(b.latest))
	for i, t := range b.latest {
		elapsed := (nowMs - t.Timestamp) / int64(time.Minute/time.Millisecond)
		if elapsed < 0 {
			elapsed = 0
		}
		t.ElapsedMinutes = elapsed
		t.Late = elapsed > LateAfterMinutes
		tickets[i] = t
	}
	return BoardSnapshot{Tickets: tickets, Clock: now}
}

func (b *KitchenBoard) broadcast() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subscribers) == 0 {
		return
	}
	snap := b.snapshotLocked()
	for ch := range b.subscribers {
		select {
		case ch <- snap:
		default:
			// slow screen, it gets the next one
		}
	}
}

// Subscribe registers a kitchen screen. The returned function unsubscribes.
func (b *KitchenBoard) Subscribe() (<-chan BoardSnapshot, func()) {
	ch := make(chan BoardSnapshot, 1)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	ch <- b.snapshotLocked()
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subscribers[ch]; ok {
				delete(b.subscribers, ch)
				close(ch)
			}
		})
	}
}
