package styles

import (
	"cmp"
	"slices"
	"time"

	"github.com/TsubasaBE/go-spsheet/book"
)

const (
	// FirstCustomNumFmtID is the first numFmtId available for custom codes.
	FirstCustomNumFmtID = 164
	// DefaultDateNumFmtID is the built-in numFmtId written for a date cell
	// that has no style ("m/d/yy hh:mm").
	DefaultDateNumFmtID = 22
)

// Names of the cell styles that record the value kind of a cellXfs entry.
// The writer derives every non-default xf from one of them so that the kind
// survives formats that look like another kind.
const (
	NumberStyleName   = "Value (Number)"
	DateStyleName     = "Value (Date)"
	CurrencyStyleName = "Value (Currency)"
)

// KindStyleNames lists the kind cell styles in cellStyleXfs order, starting
// at index 1 (index 0 is Normal).
var KindStyleNames = [...]string{NumberStyleName, DateStyleName, CurrencyStyleName}

// kindByStyleName inverts KindStyleNames.
var kindByStyleName = map[string]Kind{
	NumberStyleName:   KindNumber,
	DateStyleName:     KindDate,
	CurrencyStyleName: KindCurrency,
}

// StyleXF returns the cellStyleXfs index of the kind cell style for k.
func StyleXF(k Kind) int {
	return int(k) + 1
}

// NumFmt is one custom numFmt element of xl/styles.xml.
type NumFmt struct {
	ID   int
	Code string
}

// XF is one cellXfs entry to write.
type XF struct {
	NumFmtID int
	Kind     Kind
}

type xfKey struct {
	code string
	kind Kind
}

// NumFmtTable assigns numFmt ids and cellXfs indices to the distinct styles
// of a book.  XF index 0 is the default (General) format and is always
// present.
type NumFmtTable struct {
	// NumFmts lists the custom numFmt elements in id order.
	NumFmts []NumFmt
	// XFs lists the cellXfs entries; XFs[0] is the default.
	XFs []XF

	byKey map[xfKey]int
}

// KindOf returns the value kind of c.
func KindOf(c *book.Cell) Kind {
	switch c.V.(type) {
	case time.Time:
		return KindDate
	case book.Currency:
		return KindCurrency
	}
	return KindNumber
}

// CollectNumFmts gathers the distinct (format, kind) pairs of every cell of
// b.  Unstyled date and currency cells count too: they get an xf with
// numFmtId 22 and 0 respectively.
//
// Codes and pairs are sorted so the assignment depends only on the set of
// pairs: custom ids start at [FirstCustomNumFmtID] in code order, and
// cellXfs indices start at 1 in (code, kind) order.
func CollectNumFmts(b *book.Book) *NumFmtTable {
	keys := make(map[xfKey]struct{})
	for _, s := range b.Sheets() {
		s.WalkThrough(func(_, _ int, c *book.Cell) {
			k := xfKey{code: c.Style.Format(), kind: KindOf(c)}
			if k.code == "" && k.kind == KindNumber {
				return
			}
			keys[k] = struct{}{}
		})
	}

	sorted := make([]xfKey, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	slices.SortFunc(sorted, func(a, b xfKey) int {
		return cmp.Or(cmp.Compare(a.code, b.code), cmp.Compare(a.kind, b.kind))
	})

	t := &NumFmtTable{
		XFs:   []XF{{}},
		byKey: make(map[xfKey]int, len(sorted)),
	}
	ids := make(map[string]int)
	for _, k := range sorted {
		var id int
		switch {
		case k.code == "" && k.kind == KindDate:
			id = DefaultDateNumFmtID
		case k.code == "":
			id = 0
		default:
			var ok bool
			if id, ok = ids[k.code]; !ok {
				id = FirstCustomNumFmtID + len(t.NumFmts)
				ids[k.code] = id
				t.NumFmts = append(t.NumFmts, NumFmt{ID: id, Code: k.code})
			}
		}
		t.byKey[k] = len(t.XFs)
		t.XFs = append(t.XFs, XF{NumFmtID: id, Kind: k.kind})
	}
	return t
}

// XF returns the cellXfs index to write for c.  Unstyled numbers and strings
// use the default index 0.
func (t *NumFmtTable) XF(c *book.Cell) int {
	return t.byKey[xfKey{code: c.Style.Format(), kind: KindOf(c)}]
}
