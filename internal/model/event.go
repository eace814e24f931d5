package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Event is a single request to show a snackbar.
// Events are immutable; every call to NewEvent yields a fresh ID, so two events with
// the same message and severity are still distinct.
type Event struct {
	message  string
	severity Severity
	id       ulid.ULID
}

// NewEvent creates an Event with a newly generated ULID.
// IDs come from a process-wide monotonic source, so later events always sort after
// earlier ones. The message is not validated; an empty string is allowed.
func NewEvent(message string, severity Severity) Event {
	return Event{
		message:  message,
		severity: severity,
		id:       ulid.Make(),
	}
}

// Message returns the text to display.
func (e Event) Message() string {
	return e.message
}

// Severity returns the severity of the event.
func (e Event) Severity() Severity {
	return e.severity
}

// ID returns the unique identifier used to decide whether the event was already shown.
func (e Event) ID() ulid.ULID {
	return e.id
}

// IsZero reports whether e is the zero Event (never produced by NewEvent).
func (e Event) IsZero() bool {
	return e.id == (ulid.ULID{})
}

// CreatedAt returns the creation time embedded in the event ID.
func (e Event) CreatedAt() time.Time {
	return ulid.Time(e.id.Time())
}
