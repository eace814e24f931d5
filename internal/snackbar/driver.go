package snackbar

import (
	"context"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/snackbars/internal/model"
)

// driverState is the dispatch state of a Driver.
type driverState int

const (
	// stateIdle means no event has been dispatched yet.
	stateIdle driverState = iota
	// stateDispatched means the event with Driver.lastID has been dispatched.
	stateDispatched
)

// Driver watches a Slot and dispatches each distinct event exactly once.
//
// Dispatch is keyed on the event ID, never on its content: re-triggering the same
// message and severity produces a new ID and therefore a new snackbar.
// Requests are submitted to the host queue in trigger order by a single worker,
// which never waits for a snackbar to leave the screen. Stop abandons whatever the
// worker has not handed over yet and withdraws what it has.
type Driver struct {
	mu     sync.Mutex
	logger *slog.Logger
	queue  HostQueue

	state  driverState
	lastID ulid.ULID

	pending []model.Request
	wake    chan struct{}

	cancel   context.CancelFunc
	done     chan struct{}
	outcomes sync.WaitGroup
	started  bool
	stopped  bool
}

// NewDriver creates a driver that dispatches onto queue.
func NewDriver(queue HostQueue, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		logger: logger,
		queue:  queue,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Start launches the dispatch worker. It is a no-op after Stop or a second Start.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.stopped {
		return
	}
	d.started = true

	ctx, d.cancel = context.WithCancel(ctx)
	go d.run(ctx)

	// Requests observed before Start are waiting for a wake-up
	if len(d.pending) > 0 {
		d.signal()
	}
}

// Observe inspects the slot and schedules a dispatch if it holds an event
// whose ID differs from the last dispatched one. It never blocks on the host queue.
// Returns true if a dispatch was scheduled.
func (d *Driver) Observe(slot *Slot) bool {
	event, ok := slot.Load()
	if !ok {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return false
	}
	if d.state == stateDispatched && d.lastID == event.ID() {
		return false
	}

	d.state = stateDispatched
	d.lastID = event.ID()
	d.pending = append(d.pending, NewRequest(event))
	d.signal()

	d.logger.Debug("snackbar dispatch scheduled",
		"event_id", event.ID().String(),
		"severity", event.Severity().String(),
	)
	return true
}

// LastDispatched returns the ID of the last dispatched event and whether there is one.
func (d *Driver) LastDispatched() (ulid.ULID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastID, d.state == stateDispatched
}

// Stop tears the driver down. Requests not yet handed to the host queue are dropped
// and submitted ones are cancelled. Stop waits for the worker and their outcomes.
func (d *Driver) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	abandoned := len(d.pending)
	d.pending = nil
	started := d.started
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()

	if abandoned > 0 {
		d.logger.Debug("abandoned pending snackbars on teardown", "count", abandoned)
	}
	if started {
		<-d.done
	}
	d.outcomes.Wait()
}

// signal wakes the worker without blocking. Must be called with d.mu held.
func (d *Driver) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// next pops the oldest pending request.
func (d *Driver) next() (model.Request, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || len(d.pending) == 0 {
		return model.Request{}, false
	}
	req := d.pending[0]
	d.pending = d.pending[1:]
	return req, true
}

// run is the dispatch worker loop.
func (d *Driver) run(ctx context.Context) {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.wake:
		}

		for {
			if ctx.Err() != nil {
				return
			}
			req, ok := d.next()
			if !ok {
				break
			}

			results, err := d.queue.Submit(ctx, req)
			if err != nil {
				d.logger.Debug("snackbar not shown", "event_id", req.EventID.String(), "error", err)
				continue
			}
			d.outcomes.Add(1)
			go func() {
				defer d.outcomes.Done()
				d.logOutcome(req, results)
			}()
		}
	}
}

// logOutcome records how a submitted snackbar left the screen.
func (d *Driver) logOutcome(req model.Request, results <-chan model.Result) {
	r := <-results
	if r.Err != nil {
		d.logger.Debug("snackbar not shown", "event_id", req.EventID.String(), "error", r.Err)
		return
	}
	d.logger.Debug("snackbar done", "event_id", req.EventID.String(), "outcome", r.Outcome.String())
}
