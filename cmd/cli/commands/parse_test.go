package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"set 10 monday morning 1", []string{"set", "10", "monday", "morning", "1"}},
		{"  show  ", []string{"show"}},
		{`note "Locum cover on Friday"`, []string{"note", "Locum cover on Friday"}},
		{`note 'it''s'`, []string{"note", "its"}},
		{`note ""`, []string{"note", ""}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandLine_UnclosedQuote(t *testing.T) {
	_, err := parseCommandLine(`note "unfinished`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed quote")
}
