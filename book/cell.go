package book

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Currency is the dynamic type of [Cell.V] for monetary amounts.  It is kept
// distinct from float64 so that a round trip through a file format that
// records the distinction preserves it.
type Currency float64

// Cell is a single value plus its display style.
//
// The dynamic type of V is one of:
//
//	string    text
//	float64   number
//	Currency  monetary amount
//	time.Time date or date-time, always in UTC
type Cell struct {
	V     any
	Style Style
}

// ErrInvalidDateSource is matched (via errors.Is) by the error returned from
// [Date] for a malformed source string.
var ErrInvalidDateSource = errors.New("book: invalid date source")

// DateSourceError describes a date source string that could not be parsed.
type DateSourceError struct {
	Source string
	Err    error
}

func (e *DateSourceError) Error() string {
	return fmt.Sprintf("book: invalid date source %q: %v", e.Source, e.Err)
}

func (e *DateSourceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidDateSource) succeed.
func (e *DateSourceError) Is(target error) bool {
	return target == ErrInvalidDateSource
}

// NewCell returns a cell holding v with style st.  v should be one of the
// types listed on [Cell]; a time.Time is converted to UTC.
func NewCell(v any, st Style) Cell {
	if t, ok := v.(time.Time); ok {
		v = t.UTC()
	}
	return Cell{V: v, Style: st}
}

// Str returns an unstyled text cell.
func Str(s string) Cell {
	return Cell{V: s}
}

// Float returns an unstyled numeric cell.
func Float(f float64) Cell {
	return Cell{V: f}
}

// Money returns a currency cell.
func Money(f float64, st Style) Cell {
	return Cell{V: Currency(f), Style: st}
}

// DateTime returns a date cell holding t converted to UTC.
func DateTime(t time.Time, st Style) Cell {
	return Cell{V: t.UTC(), Style: st}
}

// Date returns a date cell parsed from src.
//
// src is either a calendar date ("2017-12-02", read as midnight UTC) or an
// RFC 3339 date-time.  A date-time without a zone designator
// ("2017-12-02T13:30:00") is read as UTC.  Any other input returns an error
// matching [ErrInvalidDateSource].
func Date(src string, st Style) (Cell, error) {
	t, err := ParseDateSource(src)
	if err != nil {
		return Cell{}, err
	}
	return Cell{V: t, Style: st}, nil
}

// ParseDateSource parses a date source string as described on [Date].
func ParseDateSource(src string) (time.Time, error) {
	s := src
	if strings.Contains(s, "T") {
		if !hasZone(s) {
			s += "Z"
		}
	} else {
		s += "T00:00:00Z"
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &DateSourceError{Source: src, Err: err}
	}
	return t.UTC(), nil
}

// hasZone reports whether s ends in "Z" or a "±hh:mm" offset.
func hasZone(s string) bool {
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		return true
	}
	if len(s) < 6 {
		return false
	}
	tail := s[len(s)-6:]
	return (tail[0] == '+' || tail[0] == '-') && tail[3] == ':' &&
		isDigit(tail[1]) && isDigit(tail[2]) && isDigit(tail[4]) && isDigit(tail[5])
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// SetStyle replaces the cell's style.
func (c *Cell) SetStyle(st Style) {
	c.Style = st
}

// FormattedValue renders a date cell through its style.  ok is false for
// non-date cells and for styles that have no date format.
func (c Cell) FormattedValue() (string, bool) {
	t, isDate := c.V.(time.Time)
	if !isDate {
		return "", false
	}
	return c.Style.FormatDate(t)
}

// Equal reports whether c and o hold the same value with the same style.
// Dates compare by instant.
func (c Cell) Equal(o Cell) bool {
	if c.Style != o.Style {
		return false
	}
	if t, ok := c.V.(time.Time); ok {
		ot, ok := o.V.(time.Time)
		return ok && t.Equal(ot)
	}
	return c.V == o.V
}
