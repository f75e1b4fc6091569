package xlsx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-spsheet/address"
	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/container"
	"github.com/TsubasaBE/go-spsheet/stringtable"
	"github.com/TsubasaBE/go-spsheet/styles"
)

// date1904Offset is the serial of 1904-01-01 in the 1900 date system.
const date1904Offset = 1462

// xmlCell is one c element of sheetData.
type xmlCell struct {
	R  string            `xml:"r,attr"`
	S  int               `xml:"s,attr"`
	T  string            `xml:"t,attr"`
	V  *string           `xml:"v"`
	IS *stringtable.Item `xml:"is"`
}

// sheetReader decodes the sheetData of one worksheet part.
type sheetReader struct {
	wb    *workbook
	part  string
	sheet *book.Sheet
	// row is the 0-based index of the current row element; nextCol is the
	// column an unaddressed c element lands in.
	row     int
	nextCol int
}

func (wb *workbook) readSheet(entry sheetEntry) (*book.Sheet, error) {
	d, err := wb.zr.Decoder(entry.part)
	if err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", entry.name, err)
	}
	sr := &sheetReader{wb: wb, part: entry.part, sheet: book.NewSheet(entry.name), row: -1}
	if err := sr.run(d); err != nil {
		return nil, fmt.Errorf("xlsx: sheet %q: %w", entry.name, err)
	}
	return sr.sheet, nil
}

func (sr *sheetReader) run(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return container.MarkupError(sr.part, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "row":
			if err := sr.startRow(start); err != nil {
				return err
			}
		case "c":
			var c xmlCell
			if err := d.DecodeElement(&c, &start); err != nil {
				return container.MarkupError(sr.part, err)
			}
			if err := sr.addCell(c); err != nil {
				return err
			}
		}
	}
}

// startRow sets the current row from the r attribute, or advances by one
// when it is absent.
func (sr *sheetReader) startRow(start xml.StartElement) error {
	sr.row++
	sr.nextCol = 0
	for _, a := range start.Attr {
		if a.Name.Local != "r" {
			continue
		}
		n, err := strconv.Atoi(a.Value)
		if err != nil || n < 1 {
			return sr.invalid("row number %q", a.Value)
		}
		sr.row = n - 1
	}
	return nil
}

func (sr *sheetReader) addCell(c xmlCell) error {
	row, col := sr.row, sr.nextCol
	if c.R != "" {
		var ok bool
		col, row, ok = address.ColumnAndRowToIndex(c.R)
		if !ok {
			return sr.invalid("cell reference %q", c.R)
		}
	}
	if row < 0 {
		row = 0
	}
	sr.nextCol = col + 1

	cell, ok, err := sr.value(c)
	if err != nil {
		return err
	}
	if ok {
		sr.sheet.AddCell(cell, row, col)
	}
	return nil
}

// value converts a c element to a book cell.  ok is false for cells that
// carry no value (formatting-only cells).
func (sr *sheetReader) value(c xmlCell) (book.Cell, bool, error) {
	format, kind := sr.wb.styles.Resolve(c.S)
	st := book.NewStyle(format)

	switch c.T {
	case "inlineStr":
		if c.IS == nil {
			return book.Cell{}, false, nil
		}
		return book.NewCell(c.IS.Text(), st), true, nil
	case "str", "e":
		// Formula string results and error literals such as "#DIV/0!".
		if c.V == nil {
			return book.Cell{}, false, nil
		}
		return book.NewCell(*c.V, st), true, nil
	}

	if c.V == nil {
		return book.Cell{}, false, nil
	}
	raw := strings.TrimSpace(*c.V)

	switch c.T {
	case "s":
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return book.Cell{}, false, sr.invalid("shared string index %q", raw)
		}
		s, ok := sr.wb.stringTable.Get(idx)
		if !ok {
			return book.Cell{}, false, sr.invalid("shared string index %d out of range", idx)
		}
		return book.NewCell(s, st), true, nil
	case "b":
		// The model has no boolean kind; TRUE/FALSE read as 1/0.
		switch raw {
		case "1", "true":
			return book.NewCell(1.0, st), true, nil
		case "0", "false":
			return book.NewCell(0.0, st), true, nil
		}
		return book.Cell{}, false, sr.invalid("boolean %q", raw)
	case "d":
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			t, err = book.ParseDateSource(raw)
		}
		if err != nil {
			return book.Cell{}, false, sr.invalid("ISO 8601 date %q", raw)
		}
		return book.DateTime(t, st), true, nil
	case "", "n":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return book.Cell{}, false, sr.invalid("number %q", raw)
		}
		return sr.number(f, format, kind), true, nil
	}
	return book.Cell{}, false, sr.invalid("cell type %q", c.T)
}

// number builds the cell for a numeric value according to the kind its
// format implies.  A serial outside the representable range stays a number.
func (sr *sheetReader) number(f float64, format string, kind styles.Kind) book.Cell {
	st := book.NewStyle(format)
	switch kind {
	case styles.KindDate:
		serial := f
		if sr.wb.date1904 {
			serial += date1904Offset
		}
		if t, err := styles.SerialToTime(serial); err == nil {
			return book.DateTime(t, st)
		}
	case styles.KindCurrency:
		return book.Money(f, st)
	}
	return book.NewCell(f, st)
}

func (sr *sheetReader) invalid(format string, args ...any) error {
	return container.MarkupError(sr.part, fmt.Errorf(format, args...))
}
