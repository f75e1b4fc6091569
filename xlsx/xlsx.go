// Package xlsx reads and writes Office Open XML spreadsheet packages
// (.xlsx) as [book.Book] values.
//
// Text is stored in the shared-string table.  Numbers and currency amounts
// are numeric cells.  Dates are serial day numbers whose cell format is the
// cell's style string (or built-in format 22 when the style is empty).
// When reading, the cell format decides the value kind: a date format yields
// a date, a format with a currency tag yields [book.Currency] and anything
// else a float64.
package xlsx

import (
	"bytes"
	"io"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/container"
)

// Fixed part names of the packages this package writes.
const (
	partContentTypes  = "[Content_Types].xml"
	partRootRels      = "_rels/.rels"
	partApp           = "docProps/app.xml"
	partCore          = "docProps/core.xml"
	partWorkbook      = "xl/workbook.xml"
	partWorkbookRels  = "xl/_rels/workbook.xml.rels"
	partStyles        = "xl/styles.xml"
	partSharedStrings = "xl/sharedStrings.xml"
)

// Read parses an .xlsx package from r.  size must be the total byte size of
// the ZIP data.
func Read(r io.ReaderAt, size int64) (*book.Book, error) {
	zr, err := container.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return readPackage(zr)
}

// ReadFile reads the .xlsx file at path.
func ReadFile(path string) (*book.Book, error) {
	zr, err := container.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return readPackage(zr)
}

// Write encodes b as an .xlsx package to w.
func Write(w io.Writer, b *book.Book) error {
	return newPackageWriter(b).write(w)
}

// WriteFile writes b to the .xlsx file at path, replacing any existing file.
func WriteFile(path string, b *book.Book) error {
	return container.WriteFile(path, func(w io.Writer) error {
		return Write(w, b)
	})
}

// Bytes returns b encoded as an .xlsx package.
func Bytes(b *book.Book) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
