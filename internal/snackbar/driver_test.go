package snackbar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/snackbars/internal/config"
	"github.com/jmylchreest/snackbars/internal/model"
)

func startedController(t *testing.T, q HostQueue) *Controller {
	t.Helper()
	c := NewController(q, nil)
	c.Start(context.Background())
	t.Cleanup(c.Stop)
	return c
}

func TestController_TriggerDispatchesOnce(t *testing.T) {
	for _, sev := range model.Severities() {
		t.Run(sev.String(), func(t *testing.T) {
			q := &recordingQueue{}
			c := startedController(t, q)

			e := c.Trigger("hello", sev)

			require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
			// No extra dispatches show up later
			time.Sleep(20 * time.Millisecond)
			reqs := q.Requests()
			require.Len(t, reqs, 1)
			assert.Equal(t, "hello", reqs[0].Message)
			assert.Equal(t, sev, reqs[0].Severity)
			assert.Equal(t, e.ID(), reqs[0].EventID)
		})
	}
}

func TestController_BuildFailedScenario(t *testing.T) {
	q := &recordingQueue{}
	c := startedController(t, q)

	c.Trigger("Build failed", model.SeverityError)

	require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
	req := q.Requests()[0]
	assert.Equal(t, "Build failed", req.Message)
	assert.Equal(t, model.SeverityError, req.Severity)
	assert.Equal(t, model.DurationShort, req.Duration)
}

func TestController_IdenticalTriggersDispatchTwice(t *testing.T) {
	q := &recordingQueue{}
	c := startedController(t, q)

	first := c.Trigger("Saved", model.SeverityInfo)
	second := c.Trigger("Saved", model.SeverityInfo)
	require.NotEqual(t, first.ID(), second.ID())

	require.Eventually(t, func() bool { return q.Len() == 2 }, time.Second, 5*time.Millisecond)
	reqs := q.Requests()
	assert.Equal(t, reqs[0].Message, reqs[1].Message)
	assert.Equal(t, reqs[0].Severity, reqs[1].Severity)
	assert.NotEqual(t, reqs[0].EventID, reqs[1].EventID)
	// Trigger order is preserved
	assert.Equal(t, first.ID(), reqs[0].EventID)
	assert.Equal(t, second.ID(), reqs[1].EventID)
}

func TestController_EmptyMessageAccepted(t *testing.T) {
	q := &recordingQueue{}
	c := startedController(t, q)

	c.Trigger("", model.SeverityInfo)

	require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "", q.Requests()[0].Message)
}

func TestController_OrderingAcrossManyTriggers(t *testing.T) {
	q := &recordingQueue{}
	c := startedController(t, q)

	var ids []string
	for i := 0; i < 50; i++ {
		ids = append(ids, c.Trigger("n", model.SeverityInfo).ID().String())
	}

	require.Eventually(t, func() bool { return q.Len() == 50 }, 2*time.Second, 5*time.Millisecond)
	for i, req := range q.Requests() {
		assert.Equal(t, ids[i], req.EventID.String())
	}
}

func TestController_TeardownBeforeDispatchDropsEvent(t *testing.T) {
	q := &recordingQueue{}
	c := NewController(q, nil)

	// Worker not started yet: the event is scheduled but not handed over
	c.Trigger("lost", model.SeverityError)
	assert.NotPanics(t, c.Stop)
	_, pending := c.slot.Load()
	assert.False(t, pending, "teardown empties the slot")

	// Starting after teardown does nothing
	c.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, q.Len())
}

func TestController_EventsBeforeStartAreDispatched(t *testing.T) {
	q := &recordingQueue{}
	c := NewController(q, nil)
	t.Cleanup(c.Stop)

	c.Trigger("early", model.SeverityInfo)
	c.Start(context.Background())

	require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDriver_ObserveSameIDIsNoop(t *testing.T) {
	d := NewDriver(&recordingQueue{}, nil)
	defer d.Stop()

	var slot Slot
	assert.False(t, d.Observe(&slot), "empty slot never dispatches")

	slot.Set(model.NewEvent("once", model.SeverityInfo))
	assert.True(t, d.Observe(&slot))
	assert.False(t, d.Observe(&slot), "same id must not dispatch again")

	slot.Set(model.NewEvent("once", model.SeverityInfo))
	assert.True(t, d.Observe(&slot), "new id dispatches even with identical content")
}

func TestDriver_LastDispatched(t *testing.T) {
	d := NewDriver(&recordingQueue{}, nil)
	defer d.Stop()

	_, ok := d.LastDispatched()
	assert.False(t, ok, "idle driver has no last id")

	var slot Slot
	e := model.NewEvent("x", model.SeverityInfo)
	slot.Set(e)
	d.Observe(&slot)

	id, ok := d.LastDispatched()
	assert.True(t, ok)
	assert.Equal(t, e.ID(), id)
}

func TestDriver_ObserveAfterStopIsNoop(t *testing.T) {
	d := NewDriver(&recordingQueue{}, nil)
	d.Stop()
	d.Stop() // idempotent

	var slot Slot
	slot.Set(model.NewEvent("late", model.SeverityInfo))
	assert.False(t, d.Observe(&slot))
}

func TestDriver_SubmitsWithoutWaitingForDismissal(t *testing.T) {
	cfg := fastConfig()
	cfg.Durations.Short = config.Duration(time.Hour)
	host := NewHostState(cfg, nil)
	defer host.Close()

	c := NewController(host, nil)
	c.Start(context.Background())

	c.Trigger("visible", model.SeverityInfo)
	c.Trigger("second", model.SeverityInfo)
	c.Trigger("third", model.SeverityError)

	// The host holds the whole backlog while the first snackbar is still up
	require.Eventually(t, func() bool { return host.Pending() == 2 }, time.Second, time.Millisecond)
	cur, ok := host.Current()
	require.True(t, ok)
	assert.Equal(t, "visible", cur.Message)

	require.True(t, host.Dismiss())
	waitCurrent(t, host, "second")
	assert.Equal(t, 1, host.Pending())

	c.Stop()

	_, ok = host.Current()
	assert.False(t, ok, "teardown removes the visible snackbar")
	assert.Equal(t, 0, host.Pending(), "teardown withdraws submitted requests")
}
