package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_ZeroValueIsInfo(t *testing.T) {
	var r Request
	assert.Equal(t, SeverityInfo, r.Severity)
	assert.Equal(t, DurationShort, r.Duration)
	assert.False(t, r.HasAction())
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    Duration
		wantErr bool
	}{
		{"short", DurationShort, false},
		{"Long", DurationLong, false},
		{"indefinite", DurationIndefinite, false},
		{"forever", DurationShort, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "dismissed", OutcomeDismissed.String())
	assert.Equal(t, "action", OutcomeActionPerformed.String())
}
