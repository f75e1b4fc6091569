package xlsx

import (
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-spsheet/address"
	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/container"
	"github.com/TsubasaBE/go-spsheet/internal/rels"
	"github.com/TsubasaBE/go-spsheet/stringtable"
	"github.com/TsubasaBE/go-spsheet/styles"
)

//go:embed templates/app.xml
var appXML []byte

// coreXML carries a {{created}} placeholder for the creation timestamp.
//
//go:embed templates/core.xml
var coreXML string

const (
	xmlHeader      = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	nsMain         = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRel          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Content types of the parts this package writes.
const (
	ctRels          = "application/vnd.openxmlformats-package.relationships+xml"
	ctWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ctWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	ctCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp           = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// packageWriter holds the state shared by the parts of one package.
type packageWriter struct {
	b       *book.Book
	numFmts *styles.NumFmtTable
	strings *stringtable.StringTable
	// stringRefs counts the cells that refer to the shared-string table.
	stringRefs int
	now        func() time.Time
}

func newPackageWriter(b *book.Book) *packageWriter {
	return &packageWriter{
		b:       b,
		numFmts: styles.CollectNumFmts(b),
		strings: stringtable.New(),
		now:     time.Now,
	}
}

type part struct {
	name string
	data []byte
}

func (pw *packageWriter) write(w io.Writer) error {
	sheets := pw.b.Sheets()

	// Worksheets are built first: they fill the shared-string table.
	sheetParts := make([]part, len(sheets))
	for i, s := range sheets {
		data, err := pw.marshalSheet(s)
		if err != nil {
			return err
		}
		sheetParts[i] = part{sheetPartName(i + 1), data}
	}

	rootRels, err := rels.Marshal([]rels.Relationship{
		{ID: "rId1", Type: rels.TypeOfficeDocument, Target: partWorkbook},
		{ID: "rId2", Type: rels.TypeCoreProperties, Target: partCore},
		{ID: "rId3", Type: rels.TypeExtProperties, Target: partApp},
	})
	if err != nil {
		return fmt.Errorf("xlsx: package rels: %w", err)
	}
	wbRels, err := rels.Marshal(workbookRels(len(sheets)))
	if err != nil {
		return fmt.Errorf("xlsx: workbook rels: %w", err)
	}

	parts := []part{
		{partContentTypes, contentTypes(len(sheets))},
		{partRootRels, rootRels},
		{partApp, appXML},
		{partCore, []byte(strings.ReplaceAll(coreXML, "{{created}}", pw.now().UTC().Format(time.RFC3339)))},
		{partWorkbook, marshalWorkbook(sheets)},
		{partWorkbookRels, wbRels},
		{partStyles, marshalStyleSheet(pw.numFmts)},
		{partSharedStrings, pw.strings.Marshal(pw.stringRefs)},
	}
	parts = append(parts, sheetParts...)

	zw := container.NewWriter(w)
	for _, p := range parts {
		if err := zw.Add(p.name, p.data); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return nil
}

func sheetPartName(n int) string {
	return "xl/" + sheetTarget(n)
}

// sheetTarget is the relationship target of worksheet n (1-based), relative
// to the workbook part.
func sheetTarget(n int) string {
	return "worksheets/sheet" + strconv.Itoa(n) + ".xml"
}

// workbookRels lists the worksheets as rId1..rIdN followed by the
// stylesheet and the shared-string table.
func workbookRels(n int) []rels.Relationship {
	out := make([]rels.Relationship, 0, n+2)
	for i := 1; i <= n; i++ {
		out = append(out, rels.Relationship{ID: "rId" + strconv.Itoa(i), Type: rels.TypeWorksheet, Target: sheetTarget(i)})
	}
	out = append(out,
		rels.Relationship{ID: "rId" + strconv.Itoa(n+1), Type: rels.TypeStyles, Target: "styles.xml"},
		rels.Relationship{ID: "rId" + strconv.Itoa(n+2), Type: rels.TypeSharedStrings, Target: "sharedStrings.xml"},
	)
	return out
}

func contentTypes(n int) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="` + nsContentTypes + `">`)
	b.WriteString(`<Default Extension="rels" ContentType="` + ctRels + `"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	override := func(name, ct string) {
		b.WriteString(`<Override PartName="/` + name + `" ContentType="` + ct + `"/>`)
	}
	override(partWorkbook, ctWorkbook)
	for i := 1; i <= n; i++ {
		override(sheetPartName(i), ctWorksheet)
	}
	override(partStyles, ctStyles)
	override(partSharedStrings, ctSharedStrings)
	override(partCore, ctCore)
	override(partApp, ctApp)
	b.WriteString(`</Types>`)
	return []byte(b.String())
}

func marshalWorkbook(sheets []*book.Sheet) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<workbook xmlns="` + nsMain + `" xmlns:r="` + nsRel + `">`)
	b.WriteString(`<workbookPr date1904="false"/>`)
	b.WriteString(`<bookViews><workbookView activeTab="0"/></bookViews>`)
	b.WriteString(`<sheets>`)
	for i, s := range sheets {
		n := strconv.Itoa(i + 1)
		b.WriteString(`<sheet name="`)
		escape(&b, s.Name)
		b.WriteString(`" sheetId="` + n + `" state="visible" r:id="rId` + n + `"/>`)
	}
	b.WriteString(`</sheets>`)
	b.WriteString(`<calcPr refMode="A1"/>`)
	b.WriteString(`</workbook>`)
	return []byte(b.String())
}

// dimension is the used range from A1 to the largest stored row and column.
func dimension(s *book.Sheet) string {
	row, col, ok := s.MaxIndex()
	if !ok || (row == 0 && col == 0) {
		return "A1"
	}
	return "A1:" + address.CellName(col, row)
}

func (pw *packageWriter) marshalSheet(s *book.Sheet) ([]byte, error) {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<worksheet xmlns="` + nsMain + `" xmlns:r="` + nsRel + `">`)
	b.WriteString(`<dimension ref="` + dimension(s) + `"/>`)
	if s.Len() == 0 {
		b.WriteString(`<sheetData/>`)
	} else {
		b.WriteString(`<sheetData>`)
		current := -1
		var err error
		s.SortedAccess(func(row, col int, c *book.Cell) bool {
			if row != current {
				if current >= 0 {
					b.WriteString(`</row>`)
				}
				current = row
				b.WriteString(`<row r="` + strconv.Itoa(row+1) + `">`)
			}
			err = pw.writeCell(&b, row, col, c)
			return err == nil
		})
		if err != nil {
			return nil, fmt.Errorf("xlsx: sheet %q: %w", s.Name, err)
		}
		b.WriteString(`</row></sheetData>`)
	}
	b.WriteString(`<pageMargins left="0.7875" right="0.7875" top="1.025" bottom="1.025" header="0.7875" footer="0.7875"/>`)
	b.WriteString(`</worksheet>`)
	return []byte(b.String()), nil
}

func (pw *packageWriter) writeCell(b *strings.Builder, row, col int, c *book.Cell) error {
	ref := address.CellName(col, row)
	var (
		typ string
		val string
	)
	switch v := c.V.(type) {
	case string:
		pw.stringRefs++
		typ, val = "s", strconv.Itoa(pw.strings.Add(v))
	case float64:
		typ, val = "n", formatNumber(v)
	case book.Currency:
		typ, val = "n", formatNumber(float64(v))
	case time.Time:
		typ, val = "n", formatNumber(styles.TimeToSerial(v))
	default:
		return fmt.Errorf("cell %s: unsupported value type %T", ref, c.V)
	}
	if val == "" {
		return fmt.Errorf("cell %s: %v cannot be stored", ref, c.V)
	}
	b.WriteString(`<c r="` + ref + `"`)
	if xf := pw.numFmts.XF(c); xf != 0 {
		b.WriteString(` s="` + strconv.Itoa(xf) + `"`)
	}
	b.WriteString(` t="` + typ + `"><v>` + val + `</v></c>`)
	return nil
}

// formatNumber returns the shortest decimal form of f, or "" for NaN and
// infinities, which have no representation in a numeric cell.
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func escape(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
