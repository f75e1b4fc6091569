// Package dateformat classifies raw OOXML number formats as date or time
// formats without parsing them.  It backs the styles package and the root
// package when a format code is outside the date grammar.
package dateformat

import "strings"

// builtInDateIDs lists the inclusive ranges of built-in numFmtIds that show
// a date or time (ECMA-376 §18.8.30):
//
//	14–22   date and time formats (IDs 18–21 are time-only)
//	27–36   locale-specific CJK date formats
//	45–47   elapsed-time / seconds formats
//	50–58   locale-specific CJK date formats (variant set)
var builtInDateIDs = [...][2]int{{14, 22}, {27, 36}, {45, 47}, {50, 58}}

// IsBuiltInDateID reports whether id is a built-in numFmtId that shows a
// date, a date-time or a time.
func IsBuiltInDateID(id int) bool {
	for _, r := range builtInDateIDs {
		if id >= r[0] && id <= r[1] {
			return true
		}
	}
	return false
}

// dateLetters are the letters that always denote a date or time token:
// day and weekday, month or minute, year, era name, hour and second.
const dateLetters = "dDaAmMyYgGhHsS"

// generalKeyword is the name of the General number format.
const generalKeyword = "General"

// ScanFormatStr reports whether a custom format code contains a date or time
// token.  Only characters outside double-quoted literals, outside square
// brackets and not escaped by a backslash are looked at; the General keyword
// is skipped.  e and E count as the era year unless they follow a digit
// placeholder, where they are an exponent marker.
func ScanFormatStr(formatStr string) bool {
	var (
		quoted, bracketed, escaped bool
		prev                       rune
	)
	for i, ch := range formatStr {
		switch {
		case escaped:
			escaped = false
			continue
		case quoted:
			quoted = ch != '"'
			continue
		case bracketed:
			bracketed = ch != ']'
			continue
		}
		switch {
		case ch == '\\':
			escaped = true
		case ch == '"':
			quoted = true
		case ch == '[':
			bracketed = true
		case (ch == 'g' || ch == 'G') && hasFoldPrefix(formatStr[i:], generalKeyword):
			return ScanFormatStr(formatStr[i+len(generalKeyword):])
		case strings.ContainsRune(dateLetters, ch):
			return true
		case (ch == 'e' || ch == 'E') && !strings.ContainsRune("0#?.", prev):
			return true
		}
		prev = ch
	}
	return false
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
