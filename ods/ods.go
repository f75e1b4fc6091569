// Package ods reads and writes OpenDocument spreadsheet packages (.ods) as
// [book.Book] values.
//
// Text, numbers, currency amounts and dates map to the matching
// office:value-type.  Date cells whose style parses as a date format carry
// it as a number:date-style; other styles are not represented in the file.
package ods

import (
	"bytes"
	_ "embed"
	"io"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/container"
)

// MimeType is the content of the mimetype part.
const MimeType = "application/vnd.oasis.opendocument.spreadsheet"

const (
	partMimeType = "mimetype"
	partManifest = "META-INF/manifest.xml"
	partStyles   = "styles.xml"
	partMeta     = "meta.xml"
	partContent  = "content.xml"
)

//go:embed templates/manifest.xml
var manifestXML []byte

//go:embed templates/styles.xml
var stylesXML []byte

// metaXML carries a {{created}} placeholder for the creation timestamp.
//
//go:embed templates/meta.xml
var metaXML string

// Read parses an .ods package from r.  size must be the total byte size of
// the ZIP data.
func Read(r io.ReaderAt, size int64) (*book.Book, error) {
	zr, err := container.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return readPackage(zr)
}

// ReadFile reads the .ods file at path.
func ReadFile(path string) (*book.Book, error) {
	zr, err := container.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return readPackage(zr)
}

// Write encodes b as an .ods package to w.
func Write(w io.Writer, b *book.Book) error {
	return writePackage(w, b)
}

// WriteFile writes b to the .ods file at path, replacing any existing file.
func WriteFile(path string, b *book.Book) error {
	return container.WriteFile(path, func(w io.Writer) error {
		return Write(w, b)
	})
}

// Bytes returns b encoded as an .ods package.
func Bytes(b *book.Book) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
