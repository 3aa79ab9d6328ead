package tracking

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"backend-fleetdesk/internal/fleet"
)

type State string

const (
	StateTracking State = "tracking"
	StatePaused   State = "paused"
)

const (
	DefaultInterval = 5 * time.Second

	MaxSpeedDelta = 5.0
	MinSpeed      = 0.0
	MaxSpeed      = 120.0
)

// Update is the fleet state after one simulator tick.
type Update struct {
	At       time.Time             `json:"at"`
	Changed  []string              `json:"changed"`
	Vehicles []fleet.VehicleRecord `json:"vehicles"`
}

type Publisher interface {
	Publish(ctx context.Context, u Update) error
}

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Simulator perturbs the speed of in-transit vehicles on a fixed period
// until paused. At most one loop runs at a time.
type Simulator struct {
	fleet      *Fleet
	interval   time.Duration
	publishers []Publisher
	newTicker  func(time.Duration) Ticker
	rng        *rand.Rand

	mu     sync.Mutex
	parent context.Context
	state  State
	cancel context.CancelFunc
	done   chan struct{}

	ticks atomic.Int64
}

func NewSimulator(f *Fleet, interval time.Duration, publishers ...Publisher) *Simulator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Simulator{
		fleet:      f,
		interval:   interval,
		publishers: publishers,
		newTicker:  newTimeTicker,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		state:      StatePaused,
	}
}

// Start begins ticking. The loop ends when ctx is cancelled or Pause is
// called. Starting a running simulator does nothing.
func (s *Simulator) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parent = ctx
	s.startLocked()
}

// Resume restarts a paused simulator under the context given to Start, or
// under a background context once that one is cancelled.
func (s *Simulator) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startLocked()
}

func (s *Simulator) startLocked() {
	s.reapLocked()
	if s.state == StateTracking {
		return
	}
	if s.parent != nil && s.parent.Err() != nil {
		s.parent = nil
	}
	parent := s.parent
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	ticker := s.newTicker(s.interval)

	s.cancel = cancel
	s.done = done
	s.state = StateTracking
	go s.run(ctx, ticker, done)
}

// Pause stops the ticker and waits for the loop to exit. No tick is applied
// after Pause returns.
func (s *Simulator) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reapLocked()
	if s.state != StateTracking {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	s.state = StatePaused
}

// reapLocked moves a simulator whose loop ended on its own, because the
// Start context was cancelled, back to paused.
func (s *Simulator) reapLocked() {
	if s.state != StateTracking || s.done == nil {
		return
	}
	select {
	case <-s.done:
		s.cancel()
		s.cancel = nil
		s.done = nil
		s.state = StatePaused
	default:
	}
}

// Stop is Pause for shutdown paths.
func (s *Simulator) Stop() {
	s.Pause()
}

func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reapLocked()
	return s.state
}

type Status struct {
	State    State  `json:"state"`
	Interval string `json:"interval"`
	Ticks    int64  `json:"ticks"`
}

func (s *Simulator) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reapLocked()
	return Status{State: s.state, Interval: s.interval.String(), Ticks: s.ticks.Load()}
}

func (s *Simulator) run(ctx context.Context, ticker Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case at := <-ticker.C():
			// A cancel racing the tick wins.
			if ctx.Err() != nil {
				return
			}
			s.tick(ctx, at)
		}
	}
}

func (s *Simulator) tick(ctx context.Context, at time.Time) {
	changed := s.fleet.update(func(v *fleet.VehicleRecord) bool {
		if v.Status != fleet.StatusInTransit {
			return false
		}
		delta := (s.rng.Float64()*2 - 1) * MaxSpeedDelta
		v.Speed = clampSpeed(math.Round((v.Speed+delta)*10) / 10)
		v.LastUpdate = at
		return true
	})

	s.ticks.Add(1)

	u := Update{At: at, Changed: changed, Vehicles: s.fleet.Snapshot()}
	for _, p := range s.publishers {
		if err := p.Publish(ctx, u); err != nil {
			log.Printf("tracking publish error: %v", err)
		}
	}
}

func clampSpeed(v float64) float64 {
	return math.Max(MinSpeed, math.Min(MaxSpeed, v))
}
