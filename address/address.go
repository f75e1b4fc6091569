// Package address converts between spreadsheet column labels ("A", "AB",
// "XFD"), A1-style cell references and 0-based indices.
//
// Column labels are bijective base-26: A=0 … Z=25, AA=26 … ZZ=701,
// AAA=702.  There is no zero digit, so every label has exactly one index and
// every non-negative index has exactly one label.
package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidColumn is returned by [ColumnToIndex] for an empty label or a
// label containing anything other than the letters A–Z.
var ErrInvalidColumn = errors.New("address: invalid column label")

// ColumnToIndex returns the 0-based index of an upper-case column label.
//
//	ColumnToIndex("A")   == 0
//	ColumnToIndex("Z")   == 25
//	ColumnToIndex("AA")  == 26
//	ColumnToIndex("AAA") == 702
func ColumnToIndex(label string) (int, error) {
	if label == "" {
		return 0, ErrInvalidColumn
	}
	index := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, label)
		}
		if i > 0 {
			index = (index + 1) * 26
		}
		index += int(ch - 'A')
	}
	return index, nil
}

// IndexToColumn returns the column label for a 0-based index.  A negative
// index yields the empty string.
func IndexToColumn(index int) string {
	if index < 0 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	n := index
	for {
		i--
		buf[i] = byte('A' + n%26)
		if n < 26 {
			break
		}
		n = n/26 - 1
	}
	return string(buf[i:])
}

// ColumnAndRowToIndex splits an A1-style reference into a 0-based column
// and a 0-based row.
//
// The reference is split at the earliest ASCII digit anywhere in the string:
// the part before it is the column label and the part from it onward is the
// 1-based row number.  ok is false when the reference has no digit, when the
// label is empty or not made of A–Z, or when the row is not a positive
// integer.
//
//	ColumnAndRowToIndex("A1")   == (0, 0, true)
//	ColumnAndRowToIndex("ZZ12") == (701, 11, true)
func ColumnAndRowToIndex(ref string) (col, row int, ok bool) {
	split := strings.IndexAny(ref, "0123456789")
	if split < 0 {
		return 0, 0, false
	}
	col, err := ColumnToIndex(ref[:split])
	if err != nil {
		return 0, 0, false
	}
	n, err := strconv.Atoi(ref[split:])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return col, n - 1, true
}

// CellName is the inverse of [ColumnAndRowToIndex]: it returns the A1-style
// reference of the 0-based (col, row) pair.
func CellName(col, row int) string {
	return IndexToColumn(col) + strconv.Itoa(row+1)
}
