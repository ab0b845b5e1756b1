package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAction(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		expected bool
	}{
		{"Valid open", "open", true},
		{"Valid select_day", "select_day", true},
		{"Valid set_value", "set_value", true},
		{"Valid escape", "escape", true},
		{"Valid exit_year_picker", "exit_year_picker", true},
		{"Invalid uppercase", "OPEN", false},
		{"Invalid empty", "", false},
		{"Invalid random", "explode", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidAction(tt.action))
		})
	}
}

func TestValidActions(t *testing.T) {
	assert.Len(t, ValidActions, 19)
	for action, ok := range ValidActions {
		assert.True(t, ok, "action %s should be enabled", action)
	}
}
