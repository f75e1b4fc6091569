package ods

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/container"
	"github.com/TsubasaBE/go-spsheet/styles"
)

// timeValue matches an office:time-value duration such as "PT08H05M09S".
var timeValue = regexp.MustCompile(`^P(?:(\d+)D)?T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// timeEpoch is the day a bare time-of-day value is anchored to.
var timeEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// packageReader holds the style maps shared by styles.xml and content.xml.
type packageReader struct {
	part string
	// dataStyles maps a number:date-style name to its format code;
	// cellStyles maps a table-cell style name to its data style name.
	dataStyles map[string]string
	cellStyles map[string]string
	b          *book.Book
}

func readPackage(zr *container.Reader) (*book.Book, error) {
	if zr.Has(partMimeType) {
		data, err := zr.ReadPart(partMimeType)
		if err != nil {
			return nil, fmt.Errorf("ods: %w", err)
		}
		if mt := strings.TrimSpace(string(data)); !strings.HasPrefix(mt, MimeType) {
			return nil, fmt.Errorf("ods: %w", container.MarkupError(partMimeType, fmt.Errorf("unexpected media type %q", mt)))
		}
	}

	pr := &packageReader{
		dataStyles: make(map[string]string),
		cellStyles: make(map[string]string),
		b:          book.NewBook(),
	}
	for _, name := range []string{partStyles, partContent} {
		d, err := zr.Decoder(name)
		if err != nil {
			if name == partStyles && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("ods: %w", err)
		}
		pr.part = name
		if err := pr.run(d); err != nil {
			return nil, fmt.Errorf("ods: %w", err)
		}
	}
	return pr.b, nil
}

func (pr *packageReader) run(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return container.MarkupError(pr.part, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch {
		case is(start.Name, nsNumber, "date-style"), is(start.Name, nsNumber, "time-style"):
			if err := pr.readDateStyle(d, start); err != nil {
				return err
			}
		case is(start.Name, nsStyle, "style"):
			if attr(start, nsStyle, "family") != "table-cell" {
				continue
			}
			if ds := attr(start, nsStyle, "data-style-name"); ds != "" {
				pr.cellStyles[attr(start, nsStyle, "name")] = ds
			}
		case is(start.Name, nsTable, "table"):
			if err := pr.readTable(d, start); err != nil {
				return err
			}
		}
	}
}

func is(n xml.Name, space, local string) bool {
	return n.Space == space && n.Local == local
}

func attr(start xml.StartElement, space, local string) string {
	for _, a := range start.Attr {
		if is(a.Name, space, local) {
			return a.Value
		}
	}
	return ""
}

// readDateStyle records the format code of a number:date-style element.
// The display name carries the code as written by this package.
func (pr *packageReader) readDateStyle(d *xml.Decoder, start xml.StartElement) error {
	name := attr(start, nsStyle, "name")
	var (
		elems []styles.DateElement
		text  *strings.Builder
	)
	for {
		tok, err := d.Token()
		if err != nil {
			return pr.markup(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != nsNumber {
				if err := d.Skip(); err != nil {
					return pr.markup(err)
				}
				continue
			}
			if t.Name.Local == styles.ElemText {
				text = new(strings.Builder)
				continue
			}
			elems = append(elems, styles.DateElement{
				Name:       t.Name.Local,
				Long:       attr(t, nsNumber, "style") == "long",
				Gengou:     attr(t, nsNumber, "calendar") == "gengou",
				Textual:    attr(t, nsNumber, "textual") == "true",
				Possessive: attr(t, nsNumber, "possessive-form") == "true",
			})
		case xml.CharData:
			if text != nil {
				text.Write(t)
			}
		case xml.EndElement:
			switch {
			case t.Name == start.Name:
				pr.dataStyles[name] = styles.ODFFormat(attr(start, nsStyle, "display-name"), elems)
				return nil
			case is(t.Name, nsNumber, styles.ElemText) && text != nil:
				elems = append(elems, styles.DateElement{Name: styles.ElemText, Text: text.String()})
				text = nil
			}
		}
	}
}

// format returns the date format behind a table-cell style name, or "".
func (pr *packageReader) format(cellStyle string) string {
	if cellStyle == "" {
		return ""
	}
	return pr.dataStyles[pr.cellStyles[cellStyle]]
}

func (pr *packageReader) readTable(d *xml.Decoder, start xml.StartElement) error {
	sheet := book.NewSheet(attr(start, nsTable, "name"))
	row := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return pr.markup(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case is(t.Name, nsTable, "table-row"):
				n, err := pr.readRow(d, t, sheet, row)
				if err != nil {
					return fmt.Errorf("sheet %q: %w", sheet.Name, err)
				}
				row += n
			case is(t.Name, nsTable, "table-column"),
				is(t.Name, nsTable, "table-header-rows"),
				is(t.Name, nsTable, "table-rows"),
				is(t.Name, nsTable, "table-row-group"),
				is(t.Name, nsTable, "table-column-group"),
				is(t.Name, nsTable, "table-header-columns"),
				is(t.Name, nsTable, "table-columns"):
				// Row groups are descended into; columns carry nothing we keep.
			default:
				if err := d.Skip(); err != nil {
					return pr.markup(err)
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				pr.b.AddSheet(sheet)
				return nil
			}
		}
	}
}

// rowCell is a decoded cell waiting for its row to end.
type rowCell struct {
	col  int
	cell book.Cell
}

// readRow reads one table:table-row starting at row and returns how many
// rows it spans.
func (pr *packageReader) readRow(d *xml.Decoder, start xml.StartElement, sheet *book.Sheet, row int) (int, error) {
	repeat, err := pr.repeat(start, "number-rows-repeated")
	if err != nil {
		return 0, err
	}
	var cells []rowCell
	col := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return 0, pr.markup(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !is(t.Name, nsTable, "table-cell") && !is(t.Name, nsTable, "covered-table-cell") {
				if err := d.Skip(); err != nil {
					return 0, pr.markup(err)
				}
				continue
			}
			span, err := pr.repeat(t, "number-columns-repeated")
			if err != nil {
				return 0, err
			}
			c, ok, err := pr.readCell(d, t)
			if err != nil {
				return 0, fmt.Errorf("row %d column %d: %w", row+1, col+1, err)
			}
			if ok {
				for k := range span {
					cells = append(cells, rowCell{col: col + k, cell: c})
				}
			}
			col += span
		case xml.EndElement:
			if t.Name == start.Name {
				for r := range repeat {
					for _, pc := range cells {
						sheet.AddCell(pc.cell, row+r, pc.col)
					}
				}
				return repeat, nil
			}
		}
	}
}

// repeat reads a table:number-*-repeated attribute, defaulting to 1.
func (pr *packageReader) repeat(start xml.StartElement, local string) (int, error) {
	v := attr(start, nsTable, local)
	if v == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, pr.invalid("%s %q", local, v)
	}
	return n, nil
}

// readCell converts a table cell element to a book cell.  ok is false for
// cells without a value.
func (pr *packageReader) readCell(d *xml.Decoder, start xml.StartElement) (book.Cell, bool, error) {
	text, hasText, err := pr.readParagraphs(d)
	if err != nil {
		return book.Cell{}, false, err
	}
	st := book.NewStyle(pr.format(attr(start, nsTable, "style-name")))

	valueType := attr(start, nsOffice, "value-type")
	switch valueType {
	case "":
		if !hasText {
			return book.Cell{}, false, nil
		}
		return book.NewCell(text, st), true, nil
	case "string":
		if sv, ok := attrOK(start, nsOffice, "string-value"); ok {
			text = sv
		}
		return book.NewCell(text, st), true, nil
	case "float", "percentage":
		f, err := pr.float(start)
		if err != nil {
			return book.Cell{}, false, err
		}
		return book.NewCell(f, st), true, nil
	case "currency":
		f, err := pr.float(start)
		if err != nil {
			return book.Cell{}, false, err
		}
		return book.Money(f, st), true, nil
	case "date":
		v := attr(start, nsOffice, "date-value")
		t, err := book.ParseDateSource(v)
		if err != nil {
			return book.Cell{}, false, pr.invalid("date value %q", v)
		}
		return book.DateTime(t, st), true, nil
	case "time":
		v := attr(start, nsOffice, "time-value")
		dur, ok := parseDuration(v)
		if !ok {
			return book.Cell{}, false, pr.invalid("time value %q", v)
		}
		return book.DateTime(timeEpoch.Add(dur), st), true, nil
	case "boolean":
		// The model has no boolean kind; true/false read as 1/0.
		switch v := attr(start, nsOffice, "boolean-value"); v {
		case "true":
			return book.NewCell(1.0, st), true, nil
		case "false":
			return book.NewCell(0.0, st), true, nil
		default:
			return book.Cell{}, false, pr.invalid("boolean value %q", v)
		}
	}
	return book.Cell{}, false, pr.invalid("value type %q", valueType)
}

func attrOK(start xml.StartElement, space, local string) (string, bool) {
	for _, a := range start.Attr {
		if is(a.Name, space, local) {
			return a.Value, true
		}
	}
	return "", false
}

func (pr *packageReader) float(start xml.StartElement) (float64, error) {
	v := attr(start, nsOffice, "value")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, pr.invalid("number %q", v)
	}
	return f, nil
}

// parseDuration parses the PnDTnHnMnS subset used by office:time-value.
func parseDuration(s string) (time.Duration, bool) {
	neg := strings.HasPrefix(s, "-")
	m := timeValue.FindStringSubmatch(strings.TrimPrefix(s, "-"))
	if m == nil || (m[2] == "" && m[3] == "" && m[4] == "") {
		return 0, false
	}
	var total float64
	for i, unit := range []float64{24 * 3600, 3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, false
		}
		total += v * unit
	}
	d := time.Duration(total * float64(time.Second)).Round(time.Second)
	if neg {
		d = -d
	}
	return d, true
}

// readParagraphs consumes the content of a cell and returns the text of its
// text:p children joined by newlines.  hasText is false when the cell holds
// no paragraph.
func (pr *packageReader) readParagraphs(d *xml.Decoder) (string, bool, error) {
	var (
		paras []string
		cur   *strings.Builder
		// depth is the element depth below the cell; pDepth is the depth of
		// the open paragraph, or 0.
		depth, pDepth int
		// space is true when the last literal character written was a
		// collapsible space.
		space bool
	)
	for {
		tok, err := d.Token()
		if err != nil {
			return "", false, pr.markup(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if is(t.Name, nsOffice, "annotation") {
				if err := d.Skip(); err != nil {
					return "", false, pr.markup(err)
				}
				continue
			}
			depth++
			switch {
			case cur == nil:
				if is(t.Name, nsText, "p") || is(t.Name, nsText, "h") {
					cur, pDepth, space = new(strings.Builder), depth, false
				}
			case is(t.Name, nsText, "s"):
				n := 1
				if c := attr(t, nsText, "c"); c != "" {
					if n, err = strconv.Atoi(c); err != nil || n < 1 {
						return "", false, pr.invalid("space count %q", c)
					}
				}
				cur.WriteString(strings.Repeat(" ", n))
				space = false
			case is(t.Name, nsText, "tab"):
				cur.WriteByte('\t')
				space = false
			case is(t.Name, nsText, "line-break"):
				cur.WriteByte('\n')
				space = false
			}
		case xml.CharData:
			if cur == nil {
				continue
			}
			for _, r := range string(t) {
				switch r {
				case ' ', '\t', '\n', '\r':
					if !space {
						cur.WriteByte(' ')
					}
					space = true
				default:
					cur.WriteRune(r)
					space = false
				}
			}
		case xml.EndElement:
			if depth == 0 {
				return strings.Join(paras, "\n"), len(paras) > 0, nil
			}
			if depth == pDepth {
				paras = append(paras, cur.String())
				cur, pDepth = nil, 0
			}
			depth--
		}
	}
}

func (pr *packageReader) markup(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return container.MarkupError(pr.part, err)
}

func (pr *packageReader) invalid(format string, args ...any) error {
	return container.MarkupError(pr.part, fmt.Errorf(format, args...))
}
