package book

import (
	"time"

	"github.com/TsubasaBE/go-spsheet/era"
	"github.com/TsubasaBE/go-spsheet/numfmt"
)

// Style is a cell's display format, expressed as a spreadsheet format code
// such as "YYYY/MM/DD HH:MM:SS".  The zero Style has an empty format and
// renders nothing.
//
// Everything derived from the format (date items, numeric sections) is
// recomputed on each call.
type Style struct {
	format string
}

// NewStyle returns a Style for format.
func NewStyle(format string) Style {
	return Style{format: format}
}

// Format returns the format code.
func (s Style) Format() string {
	return s.format
}

// DateItems returns the parsed date items of the format.  ok is false when
// the format is not a date format.
func (s Style) DateItems() ([]numfmt.Item, bool) {
	return numfmt.Parse(s.format)
}

// NumericSections returns the parsed numeric sections of the format.  ok is
// false when the format is not a numeric format.
func (s Style) NumericSections() ([]numfmt.Section, bool) {
	return numfmt.ParseNumeric(s.format)
}

// FormatDate renders t with the Japanese era calendar.  ok is false when
// the format is not a date format.
func (s Style) FormatDate(t time.Time) (string, bool) {
	return s.FormatDateIn(t, era.Japanese)
}

// FormatDateIn renders t with the given era calendar.
func (s Style) FormatDateIn(t time.Time, cal era.Calendar) (string, bool) {
	items, ok := s.DateItems()
	if !ok {
		return "", false
	}
	return numfmt.FormatDate(items, t, cal), true
}
