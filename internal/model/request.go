package model

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Duration is how long a host queue keeps a snackbar visible.
type Duration int

const (
	// DurationShort is the default display time.
	DurationShort Duration = iota
	// DurationLong keeps the snackbar around for longer.
	DurationLong
	// DurationIndefinite keeps the snackbar until it is dismissed.
	DurationIndefinite
)

// String returns the lowercase name of the duration.
func (d Duration) String() string {
	switch d {
	case DurationShort:
		return "short"
	case DurationLong:
		return "long"
	case DurationIndefinite:
		return "indefinite"
	default:
		return fmt.Sprintf("duration(%d)", int(d))
	}
}

// ParseDuration converts "short", "long" or "indefinite" into a Duration.
func ParseDuration(name string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "short":
		return DurationShort, nil
	case "long":
		return DurationLong, nil
	case "indefinite":
		return DurationIndefinite, nil
	default:
		return DurationShort, fmt.Errorf("unknown duration %q (want short, long or indefinite)", name)
	}
}

// Request is what gets handed to a host queue.
// Severity is carried by every request; the zero value is SeverityInfo, so a request
// built without one renders as informational.
type Request struct {
	Message           string
	Severity          Severity
	Duration          Duration
	ActionLabel       string // empty = no action button
	WithDismissAction bool
	EventID           ulid.ULID
}

// HasAction reports whether the request offers an action button.
func (r Request) HasAction() bool {
	return r.ActionLabel != ""
}

// Outcome reports how a snackbar left the screen.
type Outcome int

const (
	// OutcomeDismissed means the snackbar timed out or was dismissed.
	OutcomeDismissed Outcome = iota
	// OutcomeActionPerformed means the user pressed the action button.
	OutcomeActionPerformed
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDismissed:
		return "dismissed"
	case OutcomeActionPerformed:
		return "action"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is delivered once a submitted request has left the host queue.
type Result struct {
	Outcome Outcome
	Err     error
}
