package intervalreload

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const (
	DefaultInterval = time.Second

	// labels of the toggle button, naming the action it performs
	LabelActive   = "inactivate"
	LabelInactive = "activate"
)

type State uint8

const (
	StateStopped State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

// Refresher polls a Source on a fixed delay. Stop records that the user
// turned it off, Pause only suspends it so Resume can bring it back.
type Refresher struct {
	// OnUpdate, when set before Start, is called from the refresh
	// goroutine with every new value. It must not call Stop or Pause.
	OnUpdate func(TimeResponse)

	source   Source
	interval time.Duration

	// mu serializes transitions, active and state are readable without it
	// so OnUpdate may inspect them
	mu     sync.Mutex
	active atomic.Bool
	state  atomic.Uint32
	cancel context.CancelFunc
	done   chan struct{}

	dataMu    sync.RWMutex
	latest    TimeResponse
	hasLatest bool
}

func NewRefresher(src Source, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		source:   src,
		interval: interval,
	}
}

// Start refreshes immediately and then every interval. A running loop is
// stopped first so only one ever exists.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked()
}

func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Refresher) startLocked() {
	r.halt()
	r.active.Store(true)
	r.launch()
}

func (r *Refresher) stopLocked() {
	r.halt()
	r.active.Store(false)
	r.setState(StateStopped)
}

func (r *Refresher) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active.Load() {
		return
	}
	r.halt()
	r.setState(StatePaused)
}

func (r *Refresher) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active.Load() || r.State() == StateRunning {
		return
	}
	r.launch()
}

func (r *Refresher) Toggle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active.Load() {
		r.stopLocked()
	} else {
		r.startLocked()
	}
}

// Active reports the user intent, it stays true while paused.
func (r *Refresher) Active() bool {
	return r.active.Load()
}

func (r *Refresher) State() State {
	return State(r.state.Load())
}

func (r *Refresher) setState(s State) {
	r.state.Store(uint32(s))
}

func (r *Refresher) Label() string {
	if r.Active() {
		return LabelActive
	}
	return LabelInactive
}

func (r *Refresher) Latest() (TimeResponse, bool) {
	r.dataMu.RLock()
	defer r.dataMu.RUnlock()
	return r.latest, r.hasLatest
}

// launch and halt must be called with mu held.
func (r *Refresher) launch() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.setState(StateRunning)
	go r.run(ctx, r.done)
}

// halt waits for the loop to exit, including an in-flight Fetch.
func (r *Refresher) halt() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
	r.done = nil
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		r.refresh(ctx)
		timer.Reset(r.interval)
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	resp, err := r.source.Fetch()
	if ctx.Err() != nil {
		// stopped meanwhile, the result is dropped
		return
	}
	if err != nil {
		Warn.Printf("refresh failed: %s", err)
		return
	}

	r.dataMu.Lock()
	r.latest = resp
	r.hasLatest = true
	r.dataMu.Unlock()

	if r.OnUpdate != nil {
		r.OnUpdate(resp)
	}
}
