package xlsx

import (
	"strconv"
	"strings"

	"github.com/TsubasaBE/go-spsheet/container"
	"github.com/TsubasaBE/go-spsheet/styles"
)

type xmlStyleSheet struct {
	NumFmts    []xmlNumFmt    `xml:"numFmts>numFmt"`
	CellXfs    []xmlXf        `xml:"cellXfs>xf"`
	CellStyles []xmlCellStyle `xml:"cellStyles>cellStyle"`
}

type xmlNumFmt struct {
	ID   int    `xml:"numFmtId,attr"`
	Code string `xml:"formatCode,attr"`
}

type xmlXf struct {
	NumFmtID int `xml:"numFmtId,attr"`
	XfID     int `xml:"xfId,attr"`
}

type xmlCellStyle struct {
	Name string `xml:"name,attr"`
	XfID int    `xml:"xfId,attr"`
}

// parseStyleTable parses xl/styles.xml and returns a StyleTable mapping each
// cellXfs index to its resolved XFStyle, including the name of the cell
// style it derives from.  Character references in format codes are decoded
// by the XML parser.
func parseStyleTable(part string, data []byte) (styles.StyleTable, error) {
	var doc xmlStyleSheet
	if err := container.Unmarshal(part, data, &doc); err != nil {
		return nil, err
	}
	// fmts maps numFmtId → format code for every numFmt element, including
	// overrides of built-in ids.
	fmts := make(map[int]string, len(doc.NumFmts))
	for _, nf := range doc.NumFmts {
		fmts[nf.ID] = nf.Code
	}
	names := make(map[int]string, len(doc.CellStyles))
	for _, cs := range doc.CellStyles {
		names[cs.XfID] = cs.Name
	}
	table := make(styles.StyleTable, len(doc.CellXfs))
	for i, xf := range doc.CellXfs {
		table[i] = styles.XFStyle{
			NumFmtID:  xf.NumFmtID,
			FormatStr: fmts[xf.NumFmtID],
			StyleName: names[xf.XfID],
		}
	}
	return table, nil
}

// marshalStyleSheet builds xl/styles.xml for the numFmt and cellXfs
// assignment in t.  Fonts, fills and borders are the minimal defaults.  Every
// xf but the default derives from the cell style naming its value kind.
func marshalStyleSheet(t *styles.NumFmtTable) []byte {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<styleSheet xmlns="` + nsMain + `">`)
	if len(t.NumFmts) > 0 {
		b.WriteString(`<numFmts count="` + strconv.Itoa(len(t.NumFmts)) + `">`)
		for _, nf := range t.NumFmts {
			b.WriteString(`<numFmt numFmtId="` + strconv.Itoa(nf.ID) + `" formatCode="`)
			escape(&b, nf.Code)
			b.WriteString(`"/>`)
		}
		b.WriteString(`</numFmts>`)
	}
	b.WriteString(`<fonts count="2">` +
		`<font><sz val="10"/><color rgb="FF000000"/><name val="Arial"/><family val="2"/></font>` +
		`<font><sz val="10"/><name val="Arial"/><family val="2"/></font>` +
		`</fonts>`)
	b.WriteString(`<fills count="2">` +
		`<fill><patternFill patternType="none"/></fill>` +
		`<fill><patternFill patternType="gray125"/></fill>` +
		`</fills>`)
	b.WriteString(`<borders count="1"><border><left/><right/><top/><bottom/><diagonal/></border></borders>`)
	styleCount := strconv.Itoa(len(styles.KindStyleNames) + 1)
	b.WriteString(`<cellStyleXfs count="` + styleCount + `">`)
	b.WriteString(`<xf numFmtId="0" fontId="0" fillId="0" borderId="0"/>`)
	for range styles.KindStyleNames {
		b.WriteString(`<xf numFmtId="0" fontId="1" fillId="0" borderId="0"/>`)
	}
	b.WriteString(`</cellStyleXfs>`)
	b.WriteString(`<cellXfs count="` + strconv.Itoa(len(t.XFs)) + `">`)
	for i, xf := range t.XFs {
		if i == 0 {
			b.WriteString(`<xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>`)
			continue
		}
		b.WriteString(`<xf numFmtId="` + strconv.Itoa(xf.NumFmtID) + `" fontId="1" fillId="0" borderId="0" xfId="` +
			strconv.Itoa(styles.StyleXF(xf.Kind)) + `" applyNumberFormat="1"/>`)
	}
	b.WriteString(`</cellXfs>`)
	b.WriteString(`<cellStyles count="` + styleCount + `">`)
	b.WriteString(`<cellStyle name="Normal" xfId="0" builtinId="0"/>`)
	for i, name := range styles.KindStyleNames {
		b.WriteString(`<cellStyle name="`)
		escape(&b, name)
		b.WriteString(`" xfId="` + strconv.Itoa(i+1) + `"/>`)
	}
	b.WriteString(`</cellStyles>`)
	b.WriteString(`</styleSheet>`)
	return []byte(b.String())
}
