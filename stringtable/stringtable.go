// Package stringtable reads and builds the xl/sharedStrings.xml part of an
// .xlsx package and provides indexed access to the shared string values.
package stringtable

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/TsubasaBE/go-spsheet/container"
)

// Namespace of the SpreadsheetML main schema.
const Namespace = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"

// StringTable holds shared strings in index order.
type StringTable struct {
	strings []string
	index   map[string]int
}

// New returns an empty StringTable ready for Add.
func New() *StringTable {
	return &StringTable{index: make(map[string]int)}
}

// Add interns s and returns its index.  Indices are assigned in first-seen
// order.
func (st *StringTable) Add(s string) int {
	if st.index == nil {
		st.index = make(map[string]int)
	}
	if idx, ok := st.index[s]; ok {
		return idx
	}
	idx := len(st.strings)
	st.strings = append(st.strings, s)
	st.index[s] = idx
	return idx
}

// Get returns the shared string at index idx and whether idx is in range.
// A nil table has no entries.
func (st *StringTable) Get(idx int) (string, bool) {
	if st == nil || idx < 0 || idx >= len(st.strings) {
		return "", false
	}
	return st.strings[idx], true
}

// Len returns the total number of shared strings.
func (st *StringTable) Len() int {
	return len(st.strings)
}

// ── XML ───────────────────────────────────────────────────────────────────────

type xmlSST struct {
	XMLName xml.Name `xml:"sst"`
	Items   []Item   `xml:"si"`
}

// Item is one string item: either plain text in <t> or rich-text runs.  The
// same shape is used by inline strings (<is>) in worksheets.
type Item struct {
	T    *xmlText `xml:"t"`
	Runs []xmlRun `xml:"r"`
}

type xmlRun struct {
	T xmlText `xml:"t"`
}

type xmlText struct {
	Value string `xml:",chardata"`
}

// Parse decodes a sharedStrings part.  Rich-text items are flattened to the
// concatenation of their runs.
func Parse(part string, data []byte) (*StringTable, error) {
	var doc xmlSST
	if err := container.Unmarshal(part, data, &doc); err != nil {
		return nil, fmt.Errorf("stringtable: %w", err)
	}
	st := &StringTable{strings: make([]string, 0, len(doc.Items))}
	for _, si := range doc.Items {
		st.strings = append(st.strings, si.Text())
	}
	return st, nil
}

// Text returns the item's text, concatenating rich-text runs.
func (si Item) Text() string {
	if si.T != nil {
		return si.T.Value
	}
	var b strings.Builder
	for _, r := range si.Runs {
		b.WriteString(r.T.Value)
	}
	return b.String()
}

// Marshal encodes the table as a sharedStrings part.  count is the number of
// cell references to the table; uniqueCount is Len.
func (st *StringTable) Marshal(count int) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, `<sst xmlns="%s" count="%d" uniqueCount="%d">`, Namespace, count, len(st.strings))
	for _, s := range st.strings {
		b.WriteString("<si><t")
		if needsPreserve(s) {
			b.WriteString(` xml:space="preserve"`)
		}
		b.WriteString(">")
		_ = xml.EscapeText(&b, []byte(s))
		b.WriteString("</t></si>")
	}
	b.WriteString("</sst>")
	return []byte(b.String())
}

func needsPreserve(s string) bool {
	if s == "" {
		return false
	}
	return strings.TrimSpace(s) != s || strings.ContainsAny(s, "\n\t")
}
