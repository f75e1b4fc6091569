// Package spsheet reads and writes spreadsheet documents in the OOXML
// (.xlsx) and OpenDocument (.ods) formats through one document model.
// No cgo is required.
//
// # Quick start
//
//	b, err := spsheet.Open("Book1.xlsx")
//	if err != nil { ... }
//
//	sheet, err := b.Sheet(0)
//	if err != nil { ... }
//
//	for pos, cell := range sheet.Cells() {
//	    fmt.Printf("(%d,%d) = %v\n", pos.Row, pos.Col, cell.V)
//	}
//
//	err = spsheet.Save("Book1.ods", b)
//
// # Cell values
//
// A cell holds text, a number, a currency amount or a date (see
// [book.Cell]).  Dates keep their format code in the cell's [book.Style];
// [book.Cell.FormattedValue] renders them, including Japanese era names:
//
//	c, _ := book.Date("2019-05-01", book.NewStyle(`GGGE\年M\月D\日`))
//	s, _ := c.FormattedValue() // "令和1年5月1日"
//
// # Format detection
//
// [Open] and [Detect] identify a package by its content and fall back to the
// file extension.  [Save] always goes by the extension.
//
// # Dates
//
// OOXML stores dates as serial day numbers.  [ConvertDate] and
// [TimeToSerial] convert between serials and [time.Time] for callers that
// handle raw serials themselves; the adapters do this automatically.
package spsheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/internal/dateformat"
	"github.com/TsubasaBE/go-spsheet/ods"
	"github.com/TsubasaBE/go-spsheet/styles"
	"github.com/TsubasaBE/go-spsheet/xlsx"
)

// Version is the current version of the go-spsheet library.
const Version = "1.0.0"

// Format identifies a spreadsheet file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatXLSX
	FormatODS
)

// MIME types of the supported formats.
const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeODS  = ods.MimeType
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatODS:
		return "ods"
	}
	return "unknown"
}

// Ext returns the file extension of the format, including the dot.
func (f Format) Ext() string {
	if f == FormatUnknown {
		return ""
	}
	return "." + f.String()
}

// ErrUnknownFormat is returned when a file is neither .xlsx nor .ods.
var ErrUnknownFormat = errors.New("spsheet: unknown file format")

// Detect identifies the format of a package from its content, falling back
// to the extension of name when the content is not conclusive.
func Detect(name string, data []byte) (Format, error) {
	if f := fromMIME(mimetype.Detect(data)); f != FormatUnknown {
		return f, nil
	}
	return FormatFromName(name)
}

// DetectFile is like [Detect] for the file at path.  Only the head of the
// file is read.
func DetectFile(path string) (Format, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("spsheet: DetectFile: %w", err)
	}
	if f := fromMIME(mt); f != FormatUnknown {
		return f, nil
	}
	return FormatFromName(path)
}

func fromMIME(mt *mimetype.MIME) Format {
	switch {
	case mt.Is(mimeXLSX):
		return FormatXLSX
	case mt.Is(mimeODS):
		return FormatODS
	}
	return FormatUnknown
}

// FormatFromName returns the format implied by the extension of name.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".ods":
		return FormatODS, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Open reads the spreadsheet file at path in whichever supported format it
// is.
func Open(path string) (*book.Book, error) {
	f, err := DetectFile(path)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatXLSX:
		return xlsx.ReadFile(path)
	case FormatODS:
		return ods.ReadFile(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Save writes b to path in the format named by its extension.
func Save(path string, b *book.Book) error {
	f, err := FormatFromName(path)
	if err != nil {
		return err
	}
	switch f {
	case FormatXLSX:
		return xlsx.WriteFile(path, b)
	case FormatODS:
		return ods.WriteFile(path, b)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Read parses a package of the given format from r.  size must equal the
// total byte length of the data.
func Read(r io.ReaderAt, size int64, f Format) (*book.Book, error) {
	switch f {
	case FormatXLSX:
		return xlsx.Read(r, size)
	case FormatODS:
		return ods.Read(r, size)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// Write encodes b to w in the given format.
func Write(w io.Writer, b *book.Book, f Format) error {
	switch f {
	case FormatXLSX:
		return xlsx.Write(w, b)
	case FormatODS:
		return ods.Write(w, b)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}

// date1904Offset is the serial of 1904-01-01 in the 1900 date system.
const date1904Offset = 1462

// ConvertDate converts an Excel serial day number (1900 date system) to a
// UTC [time.Time].  The fraction of the day is rounded to the nearest
// second.  NaN, infinite, negative and out-of-range serials are errors.
func ConvertDate(serial float64) (time.Time, error) {
	return styles.SerialToTime(serial)
}

// ConvertDateEx is [ConvertDate] with a choice of date system.  When
// date1904 is true serial 0 is 1904-01-01.
func ConvertDateEx(serial float64, date1904 bool) (time.Time, error) {
	if date1904 {
		serial += date1904Offset
	}
	return styles.SerialToTime(serial)
}

// TimeToSerial converts t to an Excel serial day number in the 1900 date
// system.  Sub-second precision is dropped.
func TimeToSerial(t time.Time) float64 {
	return styles.TimeToSerial(t)
}

// IsDateFormat reports whether a numFmtId and its optional custom format
// code describe a date or time format.  A non-empty formatStr decides on its
// own; otherwise id is checked against the built-in date ids.
func IsDateFormat(id int, formatStr string) bool {
	if formatStr != "" {
		return styles.IsDateFormatCode(formatStr)
	}
	return id == styles.DefaultDateNumFmtID || dateformat.IsBuiltInDateID(id)
}
