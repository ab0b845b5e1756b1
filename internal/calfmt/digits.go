package calfmt

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/belphemur/jalaali-picker/internal/constants"
)

const (
	persianZero = '۰' // U+06F0
	arabicZero  = '٠' // U+0660
)

func toPersian(r rune) rune {
	if r >= '0' && r <= '9' {
		return persianZero + (r - '0')
	}
	return r
}

func toLatin(r rune) rune {
	switch {
	case r >= persianZero && r <= persianZero+9:
		return '0' + (r - persianZero)
	case r >= arabicZero && r <= arabicZero+9:
		return '0' + (r - arabicZero)
	}
	return r
}

func mapDigits(s string, fn func(rune) rune) string {
	out, _, err := transform.String(runes.Map(fn), s)
	if err != nil {
		// runes.Map never fails on valid UTF-8; keep the input unchanged otherwise.
		return s
	}
	return out
}

// ToPersianDigits replaces ASCII digits with Extended Arabic-Indic digits.
func ToPersianDigits(s string) string {
	return mapDigits(s, toPersian)
}

// ToLatinDigits replaces Persian and Arabic-Indic digits with ASCII digits.
func ToLatinDigits(s string) string {
	return mapDigits(s, toLatin)
}

// ApplyDigitStyle renders the ASCII digits of s in the given style.
func ApplyDigitStyle(s string, style constants.DigitStyle) string {
	if style == constants.DigitStyleLatin {
		return s
	}
	return ToPersianDigits(s)
}
