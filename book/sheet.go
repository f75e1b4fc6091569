package book

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Sheet is a named sparse grid of cells.  Absent cells are simply not
// stored; there is no distinction between "never written" and "empty".
type Sheet struct {
	Name string
	rows map[int]map[int]*Cell
}

// NewSheet returns an empty sheet called name.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name, rows: make(map[int]map[int]*Cell)}
}

// AddCell stores a copy of c at (row, col), replacing any cell already
// there.  It panics if row or col is negative, matching the behaviour of a
// slice index.
func (s *Sheet) AddCell(c Cell, row, col int) {
	if row < 0 || col < 0 {
		panic(fmt.Sprintf("book: cell index (%d, %d) out of range", row, col))
	}
	if s.rows == nil {
		s.rows = make(map[int]map[int]*Cell)
	}
	r, ok := s.rows[row]
	if !ok {
		r = make(map[int]*Cell)
		s.rows[row] = r
	}
	r[col] = &c
}

// Cell returns the cell at (row, col), or nil when there is none.  The
// returned pointer aliases the stored cell, so [Cell.SetStyle] on it changes
// the sheet.
func (s *Sheet) Cell(row, col int) *Cell {
	return s.rows[row][col]
}

// SetStyle replaces the style of the cell at (row, col).  It reports false
// when no cell is stored there.
func (s *Sheet) SetStyle(row, col int, st Style) bool {
	c := s.Cell(row, col)
	if c == nil {
		return false
	}
	c.SetStyle(st)
	return true
}

// SortedAccess calls visit for every stored cell in ascending row order and,
// within a row, ascending column order.  Iteration stops early when visit
// returns false.
func (s *Sheet) SortedAccess(visit func(row, col int, c *Cell) bool) {
	for _, row := range slices.Sorted(maps.Keys(s.rows)) {
		cols := s.rows[row]
		for _, col := range slices.Sorted(maps.Keys(cols)) {
			if !visit(row, col, cols[col]) {
				return
			}
		}
	}
}

// WalkThrough calls visit for every stored cell in unspecified order.  Use it
// when the order does not matter, e.g. to collect a set of styles.
func (s *Sheet) WalkThrough(visit func(row, col int, c *Cell)) {
	for row, cols := range s.rows {
		for col, c := range cols {
			visit(row, col, c)
		}
	}
}

// Position is the 0-based address of a cell.
type Position struct {
	Row, Col int
}

// Cells iterates over the stored cells in the same order as [SortedAccess].
//
//	for pos, c := range sheet.Cells() {
//	    fmt.Println(pos.Row, pos.Col, c.V)
//	}
func (s *Sheet) Cells() iter.Seq2[Position, *Cell] {
	return func(yield func(Position, *Cell) bool) {
		s.SortedAccess(func(row, col int, c *Cell) bool {
			return yield(Position{Row: row, Col: col}, c)
		})
	}
}

// MaxIndex returns the largest row index and the largest column index of
// any stored cell.  The two maxima are independent and may come from
// different cells.  ok is false for an empty sheet.
func (s *Sheet) MaxIndex() (row, col int, ok bool) {
	for r, cols := range s.rows {
		for c := range cols {
			if !ok {
				row, col, ok = r, c, true
				continue
			}
			row = max(row, r)
			col = max(col, c)
		}
	}
	return row, col, ok
}

// Len returns the number of stored cells.
func (s *Sheet) Len() int {
	n := 0
	for _, cols := range s.rows {
		n += len(cols)
	}
	return n
}

// Equal reports whether s and o have the same name and the same cells at the
// same positions.
func (s *Sheet) Equal(o *Sheet) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Name != o.Name || s.Len() != o.Len() {
		return false
	}
	for row, cols := range s.rows {
		for col, c := range cols {
			oc := o.Cell(row, col)
			if oc == nil || !c.Equal(*oc) {
				return false
			}
		}
	}
	return true
}
