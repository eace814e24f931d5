package snackbar

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/snackbars/internal/model"
)

// Controller owns the pending slot and the driver for one display surface.
type Controller struct {
	slot   Slot
	driver *Driver
}

// NewController creates a controller dispatching onto queue.
func NewController(queue HostQueue, logger *slog.Logger) *Controller {
	return &Controller{
		driver: NewDriver(queue, logger),
	}
}

// Start begins dispatching. Events triggered before Start are dispatched once it runs.
func (c *Controller) Start(ctx context.Context) {
	c.driver.Start(ctx)
}

// Trigger records a new event and schedules its display.
// Calling it twice with the same arguments shows two snackbars.
func (c *Controller) Trigger(message string, severity model.Severity) model.Event {
	event := model.NewEvent(message, severity)
	c.slot.Set(event)
	c.driver.Observe(&c.slot)
	return event
}

// Stop tears down the surface; undispatched events are dropped.
func (c *Controller) Stop() {
	c.driver.Stop()
	c.slot.Clear()
}
