package container

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(b).ReadAt(p, off)
}

var declEncoding = regexp.MustCompile(`^<\?xml[^>]*\bencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// DecodeText converts the raw bytes of an XML part to UTF-8.
//
// A UTF-8 or UTF-16 byte order mark selects the encoding and is removed.
// Without one, a non-UTF-8 encoding named in the XML declaration is decoded
// via its WHATWG label.  The result must be valid UTF-8; anything else is an
// ErrDecode failure.
func DecodeText(part string, data []byte) ([]byte, error) {
	var out []byte
	switch m := declEncoding.FindSubmatch(data); {
	case hasBOM(data):
		var err error
		out, _, err = transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return nil, wrap("decode", part, ErrDecode, err)
		}
	case m != nil && !isUTF8Label(string(m[1])):
		label := strings.ToLower(string(m[1]))
		enc, err := htmlindex.Get(label)
		if err != nil {
			return nil, wrap("decode", part, ErrDecode, fmt.Errorf("unsupported encoding %q: %w", label, err))
		}
		if out, _, err = transform.Bytes(enc.NewDecoder(), data); err != nil {
			return nil, wrap("decode", part, ErrDecode, err)
		}
	default:
		out = data
	}
	if !utf8.Valid(out) {
		return nil, wrap("decode", part, ErrDecode, errors.New("invalid UTF-8"))
	}
	return out, nil
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}

func isUTF8Label(label string) bool {
	return strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8")
}

// NewDecoder returns an XML token decoder over the UTF-8 text of a part.
// The text has already been converted, so any encoding named in the XML
// declaration is accepted as is.
func NewDecoder(part string, data []byte) (*xml.Decoder, error) {
	text, err := DecodeText(part, data)
	if err != nil {
		return nil, err
	}
	d := xml.NewDecoder(bytes.NewReader(text))
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return d, nil
}

// Unmarshal decodes an XML part into v.  Malformed markup is an ErrMarkup
// failure.
func Unmarshal(part string, data []byte, v any) error {
	d, err := NewDecoder(part, data)
	if err != nil {
		return err
	}
	if err := d.Decode(v); err != nil {
		return MarkupError(part, err)
	}
	return nil
}

// MarkupError wraps an XML syntax or structure error found in part.
func MarkupError(part string, err error) error {
	return wrap("parse", part, ErrMarkup, err)
}

// ReadXML reads a part and decodes it into v.
func (r *Reader) ReadXML(name string, v any) error {
	data, err := r.ReadPart(name)
	if err != nil {
		return err
	}
	return Unmarshal(name, data, v)
}

// Decoder reads a part and returns a token decoder over it.
func (r *Reader) Decoder(name string) (*xml.Decoder, error) {
	data, err := r.ReadPart(name)
	if err != nil {
		return nil, err
	}
	return NewDecoder(name, data)
}
