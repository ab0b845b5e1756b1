// Package constants provides shared constants for the jalaali-picker application
package constants

import (
	"fmt"
	"strings"
)

// DigitStyle selects the numeral system used when rendering dates for display
type DigitStyle string

const (
	// DigitStylePersian renders digits as Extended Arabic-Indic (۰۱۲۳۴۵۶۷۸۹)
	DigitStylePersian DigitStyle = "persian"
	// DigitStyleLatin renders digits as ASCII (0123456789)
	DigitStyleLatin DigitStyle = "latin"
)

// IsValid checks if the digit style value is valid
func (s DigitStyle) IsValid() bool {
	return s == DigitStylePersian || s == DigitStyleLatin
}

// String returns the string representation of the digit style
func (s DigitStyle) String() string {
	return string(s)
}

// ParseDigitStyle parses a string into a DigitStyle type
// Returns an error if the value is invalid
func ParseDigitStyle(s string) (DigitStyle, error) {
	style := DigitStyle(s)
	if !style.IsValid() {
		return "", fmt.Errorf("invalid digit style: %s (must be one of %s)", s, DigitStyleNames())
	}
	return style, nil
}

// GetAllDigitStyles returns all valid digit style values
func GetAllDigitStyles() []DigitStyle {
	return []DigitStyle{DigitStylePersian, DigitStyleLatin}
}

// DigitStyleNames lists the valid digit styles for error messages, e.g. "persian, latin"
func DigitStyleNames() string {
	styles := GetAllDigitStyles()
	names := make([]string, len(styles))
	for i, style := range styles {
		names[i] = style.String()
	}
	return strings.Join(names, ", ")
}
