package snackbar

import "github.com/jmylchreest/snackbars/internal/model"

// NewRequest builds the host queue request for an event: short duration,
// no action label and no dismiss button.
func NewRequest(e model.Event) model.Request {
	return model.Request{
		Message:           e.Message(),
		Severity:          e.Severity(),
		Duration:          model.DurationShort,
		ActionLabel:       "",
		WithDismissAction: false,
		EventID:           e.ID(),
	}
}
