// Package book is the in-memory document model: a Book is an ordered list
// of Sheets, and a Sheet is a sparse grid of Cells addressed by 0-based
// (row, column) indices.
//
// # Quick start
//
//	b := book.NewBook()
//	s := book.NewSheet("シート1")
//	s.AddCell(book.Str("a"), 0, 0)
//	c, err := book.Date("2017-12-02T13:30:00", book.NewStyle("YYYY/MM/DD HH:MM:SS"))
//	if err != nil { ... }
//	s.AddCell(c, 1, 0)
//	b.AddSheet(s)
//
// A Book has no knowledge of any file format; the xlsx and ods packages
// convert it to and from their containers.
package book

import "fmt"

// Book is an ordered collection of sheets.  Sheet names need not be unique;
// a sheet is identified by its position.
type Book struct {
	sheets []*Sheet
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{}
}

// AddSheet appends s.  The Book keeps the pointer, so later mutations of s
// are visible through the Book.
func (b *Book) AddSheet(s *Sheet) {
	b.sheets = append(b.sheets, s)
}

// Sheet returns the sheet at the given 0-based position.  An out-of-range
// index returns a non-nil error describing the valid range.
func (b *Book) Sheet(idx int) (*Sheet, error) {
	if idx < 0 || idx >= len(b.sheets) {
		return nil, fmt.Errorf("book: sheet index %d out of range [0, %d)", idx, len(b.sheets))
	}
	return b.sheets[idx], nil
}

// Sheets returns the sheets in order.  The slice is a copy; the sheets are
// not.
func (b *Book) Sheets() []*Sheet {
	out := make([]*Sheet, len(b.sheets))
	copy(out, b.sheets)
	return out
}

// Len returns the number of sheets.
func (b *Book) Len() int {
	return len(b.sheets)
}

// Equal reports whether b and o hold equal sheets in the same order.
func (b *Book) Equal(o *Book) bool {
	if b == nil || o == nil {
		return b == o
	}
	if len(b.sheets) != len(o.sheets) {
		return false
	}
	for i := range b.sheets {
		if !b.sheets[i].Equal(o.sheets[i]) {
			return false
		}
	}
	return true
}
