package snackbar

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/snackbars/internal/config"
	"github.com/jmylchreest/snackbars/internal/model"
)

// ErrHostClosed is reported for requests submitted to or queued on a closed host.
var ErrHostClosed = errors.New("snackbar host closed")

// HostQueue accepts display requests and reports how each one left the screen.
// Submit queues req behind earlier submissions and returns without waiting for it
// to show; the channel receives exactly one Result once the snackbar is gone.
// Cancelling ctx withdraws the request. Callers that don't care about the outcome
// simply never read the channel.
type HostQueue interface {
	Submit(ctx context.Context, req model.Request) (<-chan model.Result, error)
}

// Status is the lifecycle state of a request inside a host.
type Status int

const (
	// StatusPending means the request is waiting for its turn.
	StatusPending Status = iota
	// StatusActive means the request is the visible snackbar.
	StatusActive
	// StatusExpired means the snackbar timed out.
	StatusExpired
	// StatusDismissed means the snackbar was dismissed by the user.
	StatusDismissed
	// StatusActionPerformed means the user pressed the action button.
	StatusActionPerformed
	// StatusCancelled means the caller gave up or the host was closed.
	StatusCancelled
)

// String returns the string representation of Status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusExpired:
		return "expired"
	case StatusDismissed:
		return "dismissed"
	case StatusActionPerformed:
		return "action"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Change is published to subscribers whenever a request changes status.
type Change struct {
	Request model.Request
	Status  Status
}

// entry is a request queued on a HostState.
type entry struct {
	req      model.Request
	turn     chan struct{}      // closed when the entry becomes current
	done     chan model.Outcome // receives exactly one outcome
	status   Status
	finished bool
}

// HostState is an in-process host queue: strict FIFO, at most one visible snackbar,
// auto-dismiss after the configured duration.
type HostState struct {
	mu     sync.Mutex
	logger *slog.Logger
	cfg    *config.Config

	waiting []*entry
	current *entry

	subscribers []chan Change
	closed      bool
}

// NewHostState creates a host using cfg for duration lookups (nil = defaults).
func NewHostState(cfg *config.Config, logger *slog.Logger) *HostState {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HostState{
		logger: logger,
		cfg:    cfg,
	}
}

// SetConfig swaps the configuration used for requests that become visible later.
func (h *HostState) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = cfg
}

// Submit appends req to the FIFO and returns immediately.
func (h *HostState) Submit(ctx context.Context, req model.Request) (<-chan model.Result, error) {
	e := &entry{
		req:  req,
		turn: make(chan struct{}),
		done: make(chan model.Outcome, 1),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHostClosed
	}
	h.waiting = append(h.waiting, e)
	h.publishLocked(Change{Request: req, Status: StatusPending})
	h.advanceLocked()
	h.mu.Unlock()

	results := make(chan model.Result, 1)
	go func() {
		outcome, err := h.await(ctx, e)
		results <- model.Result{Outcome: outcome, Err: err}
	}()
	return results, nil
}

// Enqueue submits req and blocks until it is dismissed, times out, or ctx is cancelled.
func (h *HostState) Enqueue(ctx context.Context, req model.Request) (model.Outcome, error) {
	results, err := h.Submit(ctx, req)
	if err != nil {
		return model.OutcomeDismissed, err
	}
	r := <-results
	return r.Outcome, r.Err
}

// await waits for e's turn, then for it to leave the screen.
func (h *HostState) await(ctx context.Context, e *entry) (model.Outcome, error) {
	select {
	case <-e.turn:
	case outcome := <-e.done:
		// Finished while still waiting (host closed)
		return outcome, ErrHostClosed
	case <-ctx.Done():
		h.finish(e, StatusCancelled, model.OutcomeDismissed)
		return model.OutcomeDismissed, ctx.Err()
	}

	h.mu.Lock()
	timeout, expires := h.cfg.TimeoutFor(e.req.Duration)
	h.mu.Unlock()

	var expired <-chan time.Time
	if expires {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case outcome := <-e.done:
		if h.statusOf(e) == StatusCancelled {
			return outcome, ErrHostClosed
		}
		return outcome, nil
	case <-expired:
		h.finish(e, StatusExpired, model.OutcomeDismissed)
		return <-e.done, nil
	case <-ctx.Done():
		h.finish(e, StatusCancelled, model.OutcomeDismissed)
		return model.OutcomeDismissed, ctx.Err()
	}
}

// Current returns the visible request, if any.
func (h *HostState) Current() (model.Request, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return model.Request{}, false
	}
	return h.current.req, true
}

// Pending returns the number of requests waiting behind the visible one.
func (h *HostState) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.waiting)
}

// Dismiss closes the visible snackbar. Returns false if nothing is shown.
func (h *HostState) Dismiss() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return false
	}
	return h.finishLocked(h.current, StatusDismissed, model.OutcomeDismissed)
}

// PerformAction closes the visible snackbar reporting the action outcome.
// Returns false if nothing is shown.
func (h *HostState) PerformAction() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return false
	}
	return h.finishLocked(h.current, StatusActionPerformed, model.OutcomeActionPerformed)
}

// Subscribe returns a channel receiving status changes.
// Slow subscribers miss changes rather than blocking the host.
func (h *HostState) Subscribe() <-chan Change {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Change, 16)
	if h.closed {
		close(ch)
		return ch
	}
	h.subscribers = append(h.subscribers, ch)
	return ch
}

// Close cancels every queued and visible request and closes subscriber channels.
func (h *HostState) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	if h.current != nil {
		h.finishLocked(h.current, StatusCancelled, model.OutcomeDismissed)
	}
	for len(h.waiting) > 0 {
		h.finishLocked(h.waiting[0], StatusCancelled, model.OutcomeDismissed)
	}

	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
	h.logger.Debug("snackbar host closed")
	return nil
}

func (h *HostState) statusOf(e *entry) Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return e.status
}

func (h *HostState) finish(e *entry, status Status, outcome model.Outcome) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.finishLocked(e, status, outcome)
}

// finishLocked ends e exactly once and promotes the next waiting request.
func (h *HostState) finishLocked(e *entry, status Status, outcome model.Outcome) bool {
	if e.finished {
		return false
	}
	e.finished = true
	e.status = status

	if h.current == e {
		h.current = nil
	} else {
		for i, w := range h.waiting {
			if w == e {
				h.waiting = append(h.waiting[:i], h.waiting[i+1:]...)
				break
			}
		}
	}

	e.done <- outcome
	h.logger.Debug("snackbar finished", "event_id", e.req.EventID.String(), "status", status.String())
	h.publishLocked(Change{Request: e.req, Status: status})

	if !h.closed {
		h.advanceLocked()
	}
	return true
}

// advanceLocked makes the oldest waiting request current if nothing is shown.
func (h *HostState) advanceLocked() {
	if h.current != nil || len(h.waiting) == 0 {
		return
	}
	next := h.waiting[0]
	h.waiting = h.waiting[1:]
	h.current = next
	next.status = StatusActive
	close(next.turn)

	h.logger.Debug("snackbar shown",
		"event_id", next.req.EventID.String(),
		"severity", next.req.Severity.String(),
		"duration", next.req.Duration.String(),
	)
	h.publishLocked(Change{Request: next.req, Status: StatusActive})
}

func (h *HostState) publishLocked(c Change) {
	for _, ch := range h.subscribers {
		select {
		case ch <- c:
		default:
			// Channel full, skip
		}
	}
}
