package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "severity(7)", Severity(7).String())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"info", SeverityInfo, false},
		{"INFO", SeverityInfo, false},
		{" error ", SeverityError, false},
		{"Error", SeverityError, false},
		{"warning", SeverityInfo, true},
		{"", SeverityInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownSeverity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_TextRoundTrip(t *testing.T) {
	for _, s := range Severities() {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var parsed Severity
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, s, parsed)
	}

	_, err := Severity(42).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownSeverity)
}

func TestSeverities_CoversAllNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Severities() {
		seen[s.String()] = true
	}
	assert.Equal(t, map[string]bool{"info": true, "error": true}, seen)
}
