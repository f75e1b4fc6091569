// Package container reads and writes the ZIP packages that hold both
// spreadsheet formats, and classifies every failure at that boundary into
// one of four kinds: I/O, ZIP structure, XML markup or text decoding.
//
// Callers test the kind with errors.Is:
//
//	if errors.Is(err, container.ErrMarkup) { ... }
//
// and recover the failing part with errors.As and [*Error].
package container

import (
	"archive/zip"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"io/fs"
	"os"
)

// Failure kinds.
var (
	ErrIO     = errors.New("i/o failure")
	ErrZip    = errors.New("zip failure")
	ErrMarkup = errors.New("markup failure")
	ErrDecode = errors.New("text decoding failure")
)

// Error is a failure at the container boundary.
type Error struct {
	// Op is the operation that failed, e.g. "open", "read" or "write".
	Op string
	// Part is the package part involved, if any.
	Part string
	// Kind is one of ErrIO, ErrZip, ErrMarkup or ErrDecode.
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("container: %s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("container: %s %s: %v: %v", e.Op, e.Part, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func wrap(op, part string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Part: part, Kind: kind, Err: err}
}

// ── reading ───────────────────────────────────────────────────────────────────

// Reader gives access to the parts of a ZIP package.
type Reader struct {
	zr    *zip.Reader
	files map[string]*zip.File
}

// NewReader opens a ZIP package held in r.  size must be the total byte size
// of the data.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, wrap("open", "", ErrZip, err)
	}
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if _, dup := files[f.Name]; !dup {
			files[f.Name] = f
		}
	}
	return &Reader{zr: zr, files: files}, nil
}

// ReadFile reads the whole package at path into memory and opens it.
func ReadFile(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap("open", path, ErrIO, err)
	}
	return NewReader(bytesReaderAt(data), int64(len(data)))
}

// Names returns the part names in archive order.
func (r *Reader) Names() []string {
	names := make([]string, len(r.zr.File))
	for i, f := range r.zr.File {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the package contains the named part.
func (r *Reader) Has(name string) bool {
	_, ok := r.files[name]
	return ok
}

// ReadPart reads the full contents of a named part.  A missing part is an
// ErrZip failure that also matches fs.ErrNotExist.
func (r *Reader) ReadPart(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, wrap("read", name, ErrZip, fs.ErrNotExist)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, wrap("read", name, ErrZip, err)
	}
	data, readErr := io.ReadAll(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return nil, wrap("read", name, ErrZip, readErr)
	}
	// Propagate decompressor checksum / close errors even when the read
	// appeared to succeed (e.g. truncated deflate stream).
	if closeErr != nil {
		return nil, wrap("read", name, ErrZip, closeErr)
	}
	return data, nil
}

// ── writing ───────────────────────────────────────────────────────────────────

// Writer builds a ZIP package.
type Writer struct {
	zw *zip.Writer
}

// NewWriter returns a Writer that writes the package to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{zw: zip.NewWriter(w)}
}

// Store adds an uncompressed part with its sizes in the local header and no
// data descriptor.  ODF requires its mimetype part to be stored this way as
// the first entry.
func (w *Writer) Store(name string, data []byte) error {
	fh := &zip.FileHeader{
		Name:               name,
		Method:             zip.Store,
		CRC32:              crc32.ChecksumIEEE(data),
		CompressedSize64:   uint64(len(data)),
		UncompressedSize64: uint64(len(data)),
	}
	f, err := w.zw.CreateRaw(fh)
	if err != nil {
		return wrap("write", name, ErrZip, err)
	}
	if _, err := f.Write(data); err != nil {
		return wrap("write", name, ErrIO, err)
	}
	return nil
}

// Add adds a deflate-compressed part.
func (w *Writer) Add(name string, data []byte) error {
	return w.add(&zip.FileHeader{Name: name, Method: zip.Deflate}, data)
}

func (w *Writer) add(fh *zip.FileHeader, data []byte) error {
	f, err := w.zw.CreateHeader(fh)
	if err != nil {
		return wrap("write", fh.Name, ErrZip, err)
	}
	if _, err := f.Write(data); err != nil {
		return wrap("write", fh.Name, ErrIO, err)
	}
	return nil
}

// Close finishes the package.  It does not close the underlying writer.
func (w *Writer) Close() error {
	return wrap("write", "", ErrIO, w.zw.Close())
}

// WriteFile creates path and calls fill with a Writer for it.  The file is
// removed again if fill or closing fails.
func WriteFile(path string, fill func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return wrap("create", path, ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = wrap("close", path, ErrIO, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return fill(f)
}
