// Package vitals simulates the health readings shown by the app: a live
// heart-rate stream, a short reading history and static activity figures.
package vitals

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	DefaultInterval = 3 * time.Second
	HistorySize     = 10

	minRate = 65
	maxRate = 89
)

type Reading struct {
	Rate int
	Time time.Time
}

type Status string

const (
	StatusLow    Status = "Low"
	StatusNormal Status = "Normal"
	StatusHigh   Status = "High"
)

// Classify buckets a heart rate in beats per minute.
func Classify(rate int) Status {
	switch {
	case rate > 100:
		return StatusHigh
	case rate < 60:
		return StatusLow
	default:
		return StatusNormal
	}
}

// Monitor emits one simulated reading per interval.
type Monitor struct {
	interval time.Duration
	rate     func() int
	now      func() time.Time
}

type Option func(*Monitor)

func WithRateSource(f func() int) Option {
	return func(m *Monitor) { m.rate = f }
}

func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// NewMonitor returns a monitor ticking every interval; a non-positive
// interval means DefaultInterval.
func NewMonitor(interval time.Duration, opts ...Option) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	m := &Monitor{
		interval: interval,
		rate:     func() int { return minRate + rand.IntN(maxRate-minRate+1) },
		now:      time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Monitor) Interval() time.Duration { return m.interval }

// Start produces readings until ctx is done, then closes the channel.
// A reader that falls behind misses ticks rather than blocking the producer
// past cancellation.
func (m *Monitor) Start(ctx context.Context) <-chan Reading {
	out := make(chan Reading, 1)

	go func() {
		defer close(out)

		t := time.NewTicker(m.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				r := Reading{Rate: m.rate(), Time: m.now()}
				select {
				case out <- r:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// History is a bounded, concurrency-safe list of the latest readings.
type History struct {
	mu    sync.Mutex
	size  int
	items []Reading
}

// NewHistory keeps at most size readings; size <= 0 means HistorySize.
func NewHistory(size int) *History {
	if size <= 0 {
		size = HistorySize
	}
	return &History{size: size, items: make([]Reading, 0, size)}
}

func (h *History) Add(r Reading) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == h.size {
		copy(h.items, h.items[1:])
		h.items = h.items[:h.size-1]
	}
	h.items = append(h.items, r)
}

// Readings returns a copy, oldest first.
func (h *History) Readings() []Reading {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Reading, len(h.items))
	copy(out, h.items)
	return out
}

// Latest returns the newest reading; ok is false when the history is empty.
func (h *History) Latest() (r Reading, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return Reading{}, false
	}
	return h.items[len(h.items)-1], true
}

type Activity struct {
	Steps         int
	Calories      int
	DistanceMiles float64
	ActiveMinutes int
}

// TodayActivity is the fixed activity summary shown on the health screen.
func TodayActivity() Activity {
	return Activity{Steps: 3420, Calories: 1250, DistanceMiles: 2.1, ActiveMinutes: 45}
}

type Snapshot struct {
	HeartRate     int
	BloodPressure string
	OxygenPercent int
	TemperatureF  float64
}

// SOSSnapshot is the fixed vitals block attached to an emergency alert.
func SOSSnapshot() Snapshot {
	return Snapshot{HeartRate: 72, BloodPressure: "120/80", OxygenPercent: 98, TemperatureF: 98.6}
}
