package xlsx

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/container"
	"github.com/TsubasaBE/go-spsheet/internal/rels"
	"github.com/TsubasaBE/go-spsheet/stringtable"
	"github.com/TsubasaBE/go-spsheet/styles"
)

// sheetEntry holds the display name and the package part of one worksheet.
// Hidden sheets are read like visible ones.
type sheetEntry struct {
	name string
	part string // e.g. "xl/worksheets/sheet1.xml"
}

// workbook is the metadata of an .xlsx package being read.
type workbook struct {
	zr          *container.Reader
	part        string
	sheets      []sheetEntry
	stringTable *stringtable.StringTable
	styles      styles.StyleTable
	// date1904 is true when serials count from 1904-01-01.  Such workbooks
	// are read correctly; this package always writes the 1900 system.
	date1904 bool
}

type xmlWorkbook struct {
	WorkbookPr struct {
		Date1904 string `xml:"date1904,attr"`
	} `xml:"workbookPr"`
	Sheets []xmlSheetRef `xml:"sheets>sheet"`
}

type xmlSheetRef struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	// Strict OOXML uses a different namespace for the same attribute.
	RIDStrict string `xml:"http://purl.oclc.org/ooxml/officeDocument/relationships id,attr"`
}

func readPackage(zr *container.Reader) (*book.Book, error) {
	wb := &workbook{zr: zr}
	if err := wb.parse(); err != nil {
		return nil, err
	}
	b := book.NewBook()
	for _, entry := range wb.sheets {
		s, err := wb.readSheet(entry)
		if err != nil {
			return nil, err
		}
		b.AddSheet(s)
	}
	return b, nil
}

// parse reads the workbook part, its relationships, the shared strings (if
// present) and the stylesheet (if present).
func (wb *workbook) parse() error {
	part, err := wb.mainPart()
	if err != nil {
		return err
	}
	wb.part = part
	if err := wb.parseWorkbook(); err != nil {
		return err
	}
	return nil
}

// mainPart locates the workbook part through _rels/.rels, falling back to
// the conventional name.
func (wb *workbook) mainPart() (string, error) {
	data, err := wb.zr.ReadPart(partRootRels)
	if errors.Is(err, fs.ErrNotExist) {
		return partWorkbook, nil
	}
	if err != nil {
		return "", fmt.Errorf("xlsx: package rels: %w", err)
	}
	rs, err := rels.Parse(partRootRels, data)
	if err != nil {
		return "", fmt.Errorf("xlsx: package rels: %w", err)
	}
	if rel, ok := rs.ByType(rels.TypeOfficeDocument); ok {
		return rels.Resolve("", rel.Target), nil
	}
	return partWorkbook, nil
}

// relsPart returns the relationship part that belongs to part.
func relsPart(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

func (wb *workbook) parseWorkbook() error {
	// Step 1: load the workbook relationships.
	relsName := relsPart(wb.part)
	data, err := wb.zr.ReadPart(relsName)
	if err != nil {
		return fmt.Errorf("xlsx: workbook rels: %w", err)
	}
	rs, err := rels.Parse(relsName, data)
	if err != nil {
		return fmt.Errorf("xlsx: workbook rels: %w", err)
	}
	targets := rs.Targets()

	// Step 2: the sheet list, in tab order.
	var doc xmlWorkbook
	if err := wb.zr.ReadXML(wb.part, &doc); err != nil {
		return fmt.Errorf("xlsx: workbook: %w", err)
	}
	wb.date1904 = doc.WorkbookPr.Date1904 == "1" || doc.WorkbookPr.Date1904 == "true"
	for _, s := range doc.Sheets {
		id := s.RID
		if id == "" {
			id = s.RIDStrict
		}
		target, ok := targets[id]
		if !ok {
			return fmt.Errorf("xlsx: workbook: %w",
				container.MarkupError(wb.part, fmt.Errorf("sheet %q refers to unknown relationship %q", s.Name, id)))
		}
		wb.sheets = append(wb.sheets, sheetEntry{
			name: s.Name,
			part: rels.Resolve(wb.part, target),
		})
	}

	// Step 3: optional parts.
	if err := wb.parseSharedStrings(rs); err != nil {
		return err
	}
	return wb.parseStyles(rs)
}

// optionalPart resolves the part of the first relationship of type typ,
// falling back to fallback when the workbook declares none.
func (wb *workbook) optionalPart(rs *rels.Relationships, typ, fallback string) string {
	if rel, ok := rs.ByType(typ); ok {
		return rels.Resolve(wb.part, rel.Target)
	}
	return fallback
}

// parseSharedStrings reads the shared-string table if it exists.
func (wb *workbook) parseSharedStrings(rs *rels.Relationships) error {
	part := wb.optionalPart(rs, rels.TypeSharedStrings, partSharedStrings)
	data, err := wb.zr.ReadPart(part)
	if errors.Is(err, fs.ErrNotExist) {
		// File is optional: no shared strings in this workbook.
		return nil
	}
	if err != nil {
		return fmt.Errorf("xlsx: shared strings: %w", err)
	}
	st, err := stringtable.Parse(part, data)
	if err != nil {
		return fmt.Errorf("xlsx: shared strings: %w", err)
	}
	wb.stringTable = st
	return nil
}

// parseStyles reads the stylesheet if it exists.  Without one every numeric
// cell is a plain number.
func (wb *workbook) parseStyles(rs *rels.Relationships) error {
	part := wb.optionalPart(rs, rels.TypeStyles, partStyles)
	data, err := wb.zr.ReadPart(part)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("xlsx: styles: %w", err)
	}
	st, err := parseStyleTable(part, data)
	if err != nil {
		return fmt.Errorf("xlsx: styles: %w", err)
	}
	wb.styles = st
	return nil
}
