package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitStyle_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		style    DigitStyle
		expected bool
	}{
		{name: "persian is valid", style: DigitStylePersian, expected: true},
		{name: "latin is valid", style: DigitStyleLatin, expected: true},
		{name: "empty string is invalid", style: DigitStyle(""), expected: false},
		{name: "uppercase is invalid", style: DigitStyle("PERSIAN"), expected: false},
		{name: "arabic is invalid", style: DigitStyle("arabic"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.style.IsValid())
		})
	}
}

func TestParseDigitStyle(t *testing.T) {
	style, err := ParseDigitStyle("latin")
	require.NoError(t, err)
	assert.Equal(t, DigitStyleLatin, style)

	_, err = ParseDigitStyle("roman")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid digit style")
	assert.Contains(t, err.Error(), "persian, latin")
}

func TestGetAllDigitStyles(t *testing.T) {
	styles := GetAllDigitStyles()
	assert.Len(t, styles, 2)
	for _, s := range styles {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
}

func TestDigitStyleNames(t *testing.T) {
	assert.Equal(t, "persian, latin", DigitStyleNames())
}
