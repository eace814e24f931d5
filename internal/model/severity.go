// Package model defines the core data structures for snackbars.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// Severity classifies how urgent a snackbar is and drives its visual treatment.
type Severity int

const (
	// SeverityInfo is the default, informational severity.
	SeverityInfo Severity = iota
	// SeverityError marks a failure the user should notice.
	SeverityError
)

// ErrUnknownSeverity is returned when parsing an unrecognised severity name.
var ErrUnknownSeverity = errors.New("unknown severity")

// Severities returns every severity level in declaration order.
func Severities() []Severity {
	return []Severity{SeverityInfo, SeverityError}
}

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity converts a name ("info", "error") into a Severity.
// Matching is case-insensitive.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "error":
		return SeverityError, nil
	default:
		return SeverityInfo, fmt.Errorf("%w: %q (want info or error)", ErrUnknownSeverity, name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case SeverityInfo, SeverityError:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeverity, int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
