package dbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/snackbars/internal/config"
	"github.com/jmylchreest/snackbars/internal/model"
)

// ErrQueueClosed is reported for requests submitted to or waiting on a closed queue.
var ErrQueueClosed = errors.New("desktop queue closed")

const (
	signalClosed  = DBusInterface + ".NotificationClosed"
	signalAction  = DBusInterface + ".ActionInvoked"
	methodNotify  = DBusInterface + ".Notify"
	methodClose   = DBusInterface + ".CloseNotification"
	dismissLabel  = "Dismiss"
	closeTimeout  = 2 * time.Second
	defaultGrace  = 500 * time.Millisecond
	signalBufSize = 16
)

// Conn is the subset of *dbus.Conn used by DesktopQueue.
type Conn interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	AddMatchSignal(options ...dbus.MatchOption) error
	RemoveMatchSignal(options ...dbus.MatchOption) error
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)
}

// closeEvent is what the server told us about a notification.
type closeEvent struct {
	reason CloseReason
	action string
}

// DesktopQueue is a host queue backed by the desktop notification server.
//
// Requests are shown one at a time in submission order. Each one sends a Notify
// call, then waits for the server to report the notification closed, an action
// invoked, or for the request duration to pass. A notification that could not be
// closed is replaced by the next one through replaces_id.
type DesktopQueue struct {
	conn   Conn
	obj    dbus.BusObject
	logger *slog.Logger

	// grace is added to the request duration before closing the
	// notification ourselves, so the server's own expiry wins.
	grace time.Duration

	// tail is closed once the last submitted request has finished.
	tailMu sync.Mutex
	tail   chan struct{}

	mu      sync.Mutex
	cfg     *config.Config
	lastID  uint32
	waiters map[uint32]chan closeEvent

	signals   chan *dbus.Signal
	stopCh    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewDesktopQueue subscribes to notification signals on conn and returns a queue
// delivering requests through it. cfg may be nil for defaults.
func NewDesktopQueue(conn Conn, cfg *config.Config, logger *slog.Logger) (*DesktopQueue, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	q := &DesktopQueue{
		conn:    conn,
		obj:     conn.Object(DBusBusName, DBusPath),
		logger:  logger,
		grace:   defaultGrace,
		tail:    make(chan struct{}),
		cfg:     cfg,
		waiters: make(map[uint32]chan closeEvent),
		signals: make(chan *dbus.Signal, signalBufSize),
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}

	close(q.tail)

	for _, member := range []string{"NotificationClosed", "ActionInvoked"} {
		if err := conn.AddMatchSignal(matchOptions(member)...); err != nil {
			return nil, fmt.Errorf("failed to add %s match rule: %w", member, err)
		}
	}
	conn.Signal(q.signals)

	go q.dispatch()

	return q, nil
}

// NewSessionQueue connects to the session bus and returns a queue on it.
func NewSessionQueue(cfg *config.Config, logger *slog.Logger) (*DesktopQueue, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return NewDesktopQueue(conn, cfg, logger)
}

func matchOptions(member string) []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
		dbus.WithMatchMember(member),
	}
}

// SetConfig swaps the configuration used for subsequent requests.
func (q *DesktopQueue) SetConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cfg = cfg
}

// Submit queues req behind earlier submissions and returns without waiting.
// The channel receives one Result once the notification has closed.
func (q *DesktopQueue) Submit(ctx context.Context, req model.Request) (<-chan model.Result, error) {
	select {
	case <-q.stopCh:
		return nil, ErrQueueClosed
	default:
	}

	q.tailMu.Lock()
	prev := q.tail
	next := make(chan struct{})
	q.tail = next
	q.tailMu.Unlock()

	results := make(chan model.Result, 1)
	go func() {
		defer close(next)

		var err error
		select {
		case <-prev:
		case <-ctx.Done():
			err = ctx.Err()
		case <-q.stopCh:
			err = ErrQueueClosed
		}
		if err != nil {
			results <- model.Result{Outcome: model.OutcomeDismissed, Err: err}
			// Hold our place so the next request can't overtake the one still showing
			<-prev
			return
		}

		outcome, err := q.show(ctx, req)
		results <- model.Result{Outcome: outcome, Err: err}
	}()
	return results, nil
}

// Enqueue shows req as a desktop notification and blocks until it closes.
func (q *DesktopQueue) Enqueue(ctx context.Context, req model.Request) (model.Outcome, error) {
	results, err := q.Submit(ctx, req)
	if err != nil {
		return model.OutcomeDismissed, err
	}
	r := <-results
	return r.Outcome, r.Err
}

// show sends req and waits for it to close. Only one show runs at a time.
func (q *DesktopQueue) show(ctx context.Context, req model.Request) (model.Outcome, error) {
	select {
	case <-q.stopCh:
		return model.OutcomeDismissed, ErrQueueClosed
	default:
	}
	if err := ctx.Err(); err != nil {
		return model.OutcomeDismissed, err
	}

	waiter := make(chan closeEvent, 1)
	id, cfg, err := q.notify(ctx, req, waiter)
	if err != nil {
		return model.OutcomeDismissed, err
	}

	var expired <-chan time.Time
	if timeout, ok := cfg.TimeoutFor(req.Duration); ok {
		timer := time.NewTimer(timeout + q.grace)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case ev := <-waiter:
		q.clearLast(id)
		outcome := outcomeFor(ev)
		q.logger.Debug("desktop notification closed",
			"id", id,
			"reason", ev.reason.String(),
			"action", ev.action,
			"outcome", outcome.String(),
		)
		return outcome, nil
	case <-expired:
		q.abandon(id)
		return model.OutcomeDismissed, nil
	case <-ctx.Done():
		q.abandon(id)
		return model.OutcomeDismissed, ctx.Err()
	case <-q.stopCh:
		q.abandon(id)
		return model.OutcomeDismissed, ErrQueueClosed
	}
}

// Send shows req without waiting for it to close and returns the server's id.
func (q *DesktopQueue) Send(ctx context.Context, req model.Request) (uint32, error) {
	select {
	case <-q.stopCh:
		return 0, ErrQueueClosed
	default:
	}
	id, _, err := q.notify(ctx, req, nil)
	return id, err
}

// notify sends the Notify call. A non-nil waiter receives the close signal.
func (q *DesktopQueue) notify(ctx context.Context, req model.Request, waiter chan closeEvent) (uint32, *config.Config, error) {
	// Hold the lock across the call so a close signal can't beat the waiter registration
	q.mu.Lock()
	cfg := q.cfg
	n := notificationFor(cfg, req, q.lastID)
	var id uint32
	if err := q.obj.CallWithContext(ctx, methodNotify, 0, n.Args()...).Store(&id); err != nil {
		q.mu.Unlock()
		return 0, cfg, fmt.Errorf("failed to send notification: %w", err)
	}
	if waiter != nil {
		q.waiters[id] = waiter
	}
	q.lastID = id
	q.mu.Unlock()

	q.logger.Debug("desktop notification sent",
		"id", id,
		"event_id", req.EventID.String(),
		"urgency", n.Urgency(),
		"expire_timeout", n.ExpireTimeout,
	)
	return id, cfg, nil
}

// Close unsubscribes from the bus and releases every waiting request with ErrQueueClosed.
// The connection itself is left open since the session bus is shared.
func (q *DesktopQueue) Close() error {
	var errs []error
	q.closeOnce.Do(func() {
		close(q.stopCh)
		q.conn.RemoveSignal(q.signals)
		for _, member := range []string{"NotificationClosed", "ActionInvoked"} {
			if err := q.conn.RemoveMatchSignal(matchOptions(member)...); err != nil {
				errs = append(errs, fmt.Errorf("failed to remove %s match rule: %w", member, err))
			}
		}
		<-q.done
	})
	return errors.Join(errs...)
}

// dispatch routes incoming signals to the request being shown.
func (q *DesktopQueue) dispatch() {
	defer close(q.done)

	for {
		select {
		case <-q.stopCh:
			return
		case sig, ok := <-q.signals:
			if !ok {
				return
			}
			q.handleSignal(sig)
		}
	}
}

func (q *DesktopQueue) handleSignal(sig *dbus.Signal) {
	if sig == nil || len(sig.Body) < 2 {
		return
	}
	id, ok := sig.Body[0].(uint32)
	if !ok {
		return
	}

	var ev closeEvent
	switch sig.Name {
	case signalClosed:
		reason, _ := sig.Body[1].(uint32)
		ev.reason = CloseReason(reason)
	case signalAction:
		ev.action, _ = sig.Body[1].(string)
	default:
		return
	}

	q.mu.Lock()
	waiter, ok := q.waiters[id]
	if ok {
		delete(q.waiters, id)
	}
	q.mu.Unlock()

	if !ok {
		q.logger.Debug("ignoring signal for untracked notification", "id", id, "signal", sig.Name)
		return
	}
	waiter <- ev
}

func (q *DesktopQueue) clearLast(id uint32) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.lastID == id {
		q.lastID = 0
	}
}

// abandon stops waiting for id and asks the server to close it.
// If that fails the next notification replaces it.
func (q *DesktopQueue) abandon(id uint32) {
	q.mu.Lock()
	delete(q.waiters, id)
	q.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := q.obj.CallWithContext(ctx, methodClose, 0, id).Err; err != nil {
		q.logger.Warn("failed to close desktop notification", "id", id, "error", err)
		return
	}
	q.clearLast(id)
	q.logger.Debug("desktop notification closed by client", "id", id)
}

// notificationFor builds the Notify parameters for req.
func notificationFor(cfg *config.Config, req model.Request, replacesID uint32) *DBusNotification {
	n := &DBusNotification{
		AppName:    cfg.Desktop.AppName,
		ReplacesID: replacesID,
		AppIcon:    cfg.IconFor(req.Severity),
		Summary:    req.Message,
		Hints: map[string]dbus.Variant{
			"urgency":   dbus.MakeVariant(UrgencyFor(req.Severity)),
			"transient": dbus.MakeVariant(true),
		},
		ExpireTimeout: expireTimeout(cfg, req.Duration),
	}
	if req.HasAction() {
		n.Actions = append(n.Actions, ActionDefault, req.ActionLabel)
	}
	if req.WithDismissAction {
		n.Actions = append(n.Actions, ActionDismiss, dismissLabel)
	}
	return n
}

// expireTimeout converts a duration to the Notify expire_timeout in milliseconds.
func expireTimeout(cfg *config.Config, d model.Duration) int32 {
	timeout, ok := cfg.TimeoutFor(d)
	if !ok {
		return 0
	}
	return int32(timeout.Milliseconds())
}

func outcomeFor(ev closeEvent) model.Outcome {
	if ev.action != "" && ev.action != ActionDismiss {
		return model.OutcomeActionPerformed
	}
	return model.OutcomeDismissed
}
