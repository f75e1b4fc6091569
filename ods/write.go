package ods

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/container"
	"github.com/TsubasaBE/go-spsheet/styles"
)

// Namespaces declared on content.xml.
const (
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsStyle  = "urn:oasis:names:tc:opendocument:xmlns:style:1.0"
	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsNumber = "urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0"
	nsFo     = "urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"
)

// dateValueLayout is the office:date-value layout written for date cells.
const dateValueLayout = "2006-01-02T15:04:05"

func writePackage(w io.Writer, b *book.Book) error {
	content, err := marshalContent(b)
	if err != nil {
		return err
	}
	meta := strings.ReplaceAll(metaXML, "{{created}}", time.Now().UTC().Format(dateValueLayout))

	zw := container.NewWriter(w)
	// The mimetype part must come first and be stored uncompressed.
	if err := zw.Store(partMimeType, []byte(MimeType)); err != nil {
		return fmt.Errorf("ods: %w", err)
	}
	for _, p := range []struct {
		name string
		data []byte
	}{
		{partManifest, manifestXML},
		{partMeta, []byte(meta)},
		{partStyles, stylesXML},
		{partContent, content},
	} {
		if err := zw.Add(p.name, p.data); err != nil {
			return fmt.Errorf("ods: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("ods: %w", err)
	}
	return nil
}

// ── token writer ──────────────────────────────────────────────────────────────

// tokenWriter emits prefixed element names through an xml.Encoder and keeps
// the first error.
type tokenWriter struct {
	enc *xml.Encoder
	err error
}

func (w *tokenWriter) start(name string, attrs ...string) {
	if w.err != nil {
		return
	}
	se := xml.StartElement{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	w.err = w.enc.EncodeToken(se)
}

func (w *tokenWriter) end(name string) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *tokenWriter) empty(name string, attrs ...string) {
	w.start(name, attrs...)
	w.end(name)
}

func (w *tokenWriter) text(s string) {
	if w.err != nil || s == "" {
		return
	}
	w.err = w.enc.EncodeToken(xml.CharData(s))
}

// ── content.xml ───────────────────────────────────────────────────────────────

func marshalContent(b *book.Book) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	w := &tokenWriter{enc: xml.NewEncoder(&buf)}
	dates := styles.CollectDateStyles(b)

	w.start("office:document-content",
		"xmlns:office", nsOffice,
		"xmlns:style", nsStyle,
		"xmlns:text", nsText,
		"xmlns:table", nsTable,
		"xmlns:number", nsNumber,
		"xmlns:fo", nsFo,
		"office:version", "1.2")

	w.start("office:automatic-styles")
	for _, ds := range dates.Styles {
		writeDateStyle(w, ds)
	}
	w.end("office:automatic-styles")

	w.start("office:body")
	w.start("office:spreadsheet")
	for _, s := range b.Sheets() {
		if err := writeTable(w, s, dates); err != nil {
			return nil, err
		}
	}
	w.end("office:spreadsheet")
	w.end("office:body")
	w.end("office:document-content")

	if w.err == nil {
		w.err = w.enc.Flush()
	}
	if w.err != nil {
		return nil, fmt.Errorf("ods: content: %w", w.err)
	}
	return buf.Bytes(), nil
}

// writeDateStyle emits the number:date-style and the table-cell style that
// refers to it.
func writeDateStyle(w *tokenWriter, ds styles.DateStyle) {
	w.start("number:date-style", "style:name", ds.DataName, "style:display-name", ds.Format)
	for _, e := range ds.Elements {
		name := "number:" + e.Name
		if e.Name == styles.ElemText {
			w.start(name)
			w.text(e.Text)
			w.end(name)
			continue
		}
		var attrs []string
		if e.Long {
			attrs = append(attrs, "number:style", "long")
		}
		if e.Textual {
			attrs = append(attrs, "number:textual", "true")
		}
		if e.Possessive {
			attrs = append(attrs, "number:possessive-form", "true")
		}
		if e.Gengou {
			attrs = append(attrs, "number:calendar", "gengou")
		}
		w.empty(name, attrs...)
	}
	w.end("number:date-style")
	w.empty("style:style",
		"style:name", ds.CellName,
		"style:family", "table-cell",
		"style:parent-style-name", "Default",
		"style:data-style-name", ds.DataName)
}

type placedCell struct {
	col  int
	cell *book.Cell
}

type rowCells struct {
	row   int
	cells []placedCell
}

// writeTable emits one table:table.  Every row from 0 to the last stored
// row is present; runs of empty rows and gaps between cells are written as
// repeated empty cells.
func writeTable(w *tokenWriter, s *book.Sheet, dates *styles.DateStyleTable) error {
	w.start("table:table", "table:name", s.Name)
	_, maxCol, ok := s.MaxIndex()
	if !ok {
		w.empty("table:table-column")
		w.start("table:table-row")
		w.empty("table:table-cell")
		w.end("table:table-row")
		w.end("table:table")
		return nil
	}
	width := strconv.Itoa(maxCol + 1)
	w.empty("table:table-column", "table:number-columns-repeated", width)

	var rows []rowCells
	s.SortedAccess(func(row, col int, c *book.Cell) bool {
		if n := len(rows); n == 0 || rows[n-1].row != row {
			rows = append(rows, rowCells{row: row})
		}
		last := &rows[len(rows)-1]
		last.cells = append(last.cells, placedCell{col: col, cell: c})
		return true
	})

	next := 0
	for _, r := range rows {
		if gap := r.row - next; gap > 0 {
			writeEmptyRows(w, gap, width)
		}
		w.start("table:table-row")
		col := 0
		for _, pc := range r.cells {
			if gap := pc.col - col; gap > 0 {
				writeGap(w, gap)
			}
			if err := writeCell(w, pc.cell, dates); err != nil {
				return fmt.Errorf("ods: sheet %q row %d column %d: %w", s.Name, r.row, pc.col, err)
			}
			col = pc.col + 1
		}
		w.end("table:table-row")
		next = r.row + 1
	}
	w.end("table:table")
	return nil
}

func writeEmptyRows(w *tokenWriter, n int, width string) {
	if n == 1 {
		w.start("table:table-row")
	} else {
		w.start("table:table-row", "table:number-rows-repeated", strconv.Itoa(n))
	}
	w.empty("table:table-cell", "table:number-columns-repeated", width)
	w.end("table:table-row")
}

func writeGap(w *tokenWriter, n int) {
	if n == 1 {
		w.empty("table:table-cell")
		return
	}
	w.empty("table:table-cell", "table:number-columns-repeated", strconv.Itoa(n))
}

func writeCell(w *tokenWriter, c *book.Cell, dates *styles.DateStyleTable) error {
	switch v := c.V.(type) {
	case string:
		w.start("table:table-cell", "office:value-type", "string")
		writeParagraphs(w, v)
	case float64:
		val, err := formatNumber(v)
		if err != nil {
			return err
		}
		w.start("table:table-cell", "office:value-type", "float", "office:value", val)
		writeParagraphs(w, val)
	case book.Currency:
		val, err := formatNumber(float64(v))
		if err != nil {
			return err
		}
		w.start("table:table-cell", "office:value-type", "currency", "office:value", val)
		writeParagraphs(w, val)
	case time.Time:
		attrs := []string{"office:value-type", "date", "office:date-value", v.UTC().Format(dateValueLayout)}
		if ds, ok := dates.Lookup(c.Style.Format()); ok {
			attrs = append([]string{"table:style-name", ds.CellName}, attrs...)
		}
		display, ok := c.FormattedValue()
		if !ok {
			display = v.UTC().Format(time.DateTime)
		}
		w.start("table:table-cell", attrs...)
		writeParagraphs(w, display)
	default:
		return fmt.Errorf("unsupported value type %T", c.V)
	}
	w.end("table:table-cell")
	return nil
}

func formatNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%v cannot be stored", f)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

// writeParagraphs writes s as one text:p per line.  Spaces that ODF
// whitespace handling would collapse become text:s elements and tabs become
// text:tab.
func writeParagraphs(w *tokenWriter, s string) {
	for _, line := range strings.Split(s, "\n") {
		w.start("text:p")
		writeLine(w, line)
		w.end("text:p")
	}
}

func writeLine(w *tokenWriter, line string) {
	var run strings.Builder
	flush := func() {
		w.text(run.String())
		run.Reset()
	}
	spaces := 0
	emitSpaces := func(atEnd bool) {
		if spaces == 0 {
			return
		}
		// A single space between two other characters survives as is.
		if spaces == 1 && run.Len() > 0 && !atEnd {
			run.WriteByte(' ')
		} else {
			flush()
			if spaces == 1 {
				w.empty("text:s")
			} else {
				w.empty("text:s", "text:c", strconv.Itoa(spaces))
			}
		}
		spaces = 0
	}
	for _, r := range line {
		switch r {
		case ' ':
			spaces++
			continue
		case '\t':
			emitSpaces(false)
			flush()
			w.empty("text:tab")
			continue
		}
		emitSpaces(false)
		run.WriteRune(r)
	}
	emitSpaces(true)
	flush()
}
