package styles

import (
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/numfmt"
)

// DateElement is one child of an ODF number:date-style element, e.g.
// <number:year number:style="long"/>.  Name is the local name without the
// number: prefix.
type DateElement struct {
	Name string
	// Long is number:style="long".
	Long bool
	// Gengou is number:calendar="gengou".
	Gengou bool
	// Textual is number:textual="true" (month names).
	Textual bool
	// Possessive is number:possessive-form="true".
	Possessive bool
	// Text is the content of a number:text element.
	Text string
}

// ODF date-style element local names.
const (
	ElemYear      = "year"
	ElemEra       = "era"
	ElemMonth     = "month"
	ElemDay       = "day"
	ElemDayOfWeek = "day-of-week"
	ElemHours     = "hours"
	ElemMinutes   = "minutes"
	ElemSeconds   = "seconds"
	ElemText      = "text"
)

// ODFElements translates date items to number:date-style children, keeping
// their order.  Literal items become number:text elements one for one.
func ODFElements(items []numfmt.Item) []DateElement {
	out := make([]DateElement, 0, len(items))
	for _, it := range items {
		var e DateElement
		switch it.Token {
		case numfmt.Literal:
			e = DateElement{Name: ElemText, Text: it.Text}
		case numfmt.Year4:
			e = DateElement{Name: ElemYear, Long: true}
		case numfmt.Year2:
			e = DateElement{Name: ElemYear}
		case numfmt.EraYear2:
			e = DateElement{Name: ElemYear, Long: true, Gengou: true}
		case numfmt.EraYear:
			e = DateElement{Name: ElemYear, Gengou: true}
		case numfmt.GengouName:
			e = DateElement{Name: ElemEra, Long: true, Gengou: true}
		case numfmt.GengouShort:
			e = DateElement{Name: ElemEra, Gengou: true}
		case numfmt.GengouAbbr:
			e = DateElement{Name: ElemEra}
		case numfmt.MonthLetter:
			e = DateElement{Name: ElemMonth, Long: true, Textual: true, Possessive: true}
		case numfmt.MonthName:
			e = DateElement{Name: ElemMonth, Long: true, Textual: true}
		case numfmt.MonthAbbr:
			e = DateElement{Name: ElemMonth, Textual: true}
		case numfmt.Month2:
			e = DateElement{Name: ElemMonth, Long: true}
		case numfmt.Month1:
			e = DateElement{Name: ElemMonth}
		case numfmt.YoubiLong:
			e = DateElement{Name: ElemDayOfWeek, Long: true, Gengou: true}
		case numfmt.YoubiShort:
			e = DateElement{Name: ElemDayOfWeek, Gengou: true}
		case numfmt.WeekdayName:
			e = DateElement{Name: ElemDayOfWeek, Long: true}
		case numfmt.WeekdayAbbr:
			e = DateElement{Name: ElemDayOfWeek}
		case numfmt.Day2:
			e = DateElement{Name: ElemDay, Long: true}
		case numfmt.Day1:
			e = DateElement{Name: ElemDay}
		case numfmt.Hour2:
			e = DateElement{Name: ElemHours, Long: true}
		case numfmt.Hour1:
			e = DateElement{Name: ElemHours}
		case numfmt.Minute2:
			e = DateElement{Name: ElemMinutes, Long: true}
		case numfmt.Minute1:
			e = DateElement{Name: ElemMinutes}
		case numfmt.Second2:
			e = DateElement{Name: ElemSeconds, Long: true}
		case numfmt.Second1:
			e = DateElement{Name: ElemSeconds}
		default:
			continue
		}
		out = append(out, e)
	}
	return out
}

// FormatFromODF rebuilds a format code from number:date-style children.  It
// is the inverse of [ODFElements] up to spelling: codes are emitted in upper
// case, / and : are emitted bare, any other single character is escaped and
// longer text is quoted.  Unknown elements are skipped.
func FormatFromODF(elems []DateElement) string {
	var sb strings.Builder
	for _, e := range elems {
		switch e.Name {
		case ElemYear:
			switch {
			case e.Long && e.Gengou:
				sb.WriteString("EE")
			case e.Gengou:
				sb.WriteString("E")
			case e.Long:
				sb.WriteString("YYYY")
			default:
				sb.WriteString("YY")
			}
		case ElemEra:
			switch {
			case e.Long:
				sb.WriteString("GGG")
			case e.Gengou:
				sb.WriteString("GG")
			default:
				sb.WriteString("G")
			}
		case ElemMonth:
			switch {
			case e.Textual && e.Possessive:
				sb.WriteString("MMMMM")
			case e.Textual && e.Long:
				sb.WriteString("MMMM")
			case e.Textual:
				sb.WriteString("MMM")
			case e.Long:
				sb.WriteString("MM")
			default:
				sb.WriteString("M")
			}
		case ElemDayOfWeek:
			switch {
			case e.Long && e.Gengou:
				sb.WriteString("AAAA")
			case e.Gengou:
				sb.WriteString("AAA")
			case e.Long:
				sb.WriteString("DDDD")
			default:
				sb.WriteString("DDD")
			}
		case ElemDay:
			sb.WriteString(pick(e.Long, "DD", "D"))
		case ElemHours:
			sb.WriteString(pick(e.Long, "HH", "H"))
		case ElemMinutes:
			sb.WriteString(pick(e.Long, "MM", "M"))
		case ElemSeconds:
			sb.WriteString(pick(e.Long, "SS", "S"))
		case ElemText:
			writeLiteral(&sb, e.Text)
		}
	}
	return sb.String()
}

func pick(long bool, l, s string) string {
	if long {
		return l
	}
	return s
}

func writeLiteral(sb *strings.Builder, text string) {
	switch {
	case text == "":
	case text == "/" || text == ":":
		sb.WriteString(text)
	case utf8.RuneCountInString(text) == 1:
		sb.WriteByte('\\')
		sb.WriteString(text)
	case strings.Contains(text, `"`):
		for _, r := range text {
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	default:
		sb.WriteByte('"')
		sb.WriteString(text)
		sb.WriteByte('"')
	}
}

// ODFFormat returns the format code of a number:date-style.  written is the
// code recorded in the style's display name when the style was written; it
// is returned as is when it still describes elems.  Otherwise the code is
// rebuilt with [FormatFromODF].
func ODFFormat(written string, elems []DateElement) string {
	if written != "" {
		if items, ok := numfmt.Parse(written); ok && slices.Equal(ODFElements(items), elems) {
			return written
		}
	}
	return FormatFromODF(elems)
}

// DateStyle is one ODF date style: the number:date-style named DataName and
// the table-cell style named CellName that refers to it.
type DateStyle struct {
	DataName string
	CellName string
	Format   string
	Elements []DateElement
}

// DateStyleTable assigns ODF style names to the distinct date formats of a
// book.
type DateStyleTable struct {
	Styles []DateStyle
	byCode map[string]int
}

// CollectDateStyles gathers the distinct date formats of every date cell of
// b.  Formats are sorted and named N1/ce1, N2/ce2, … in that order, so the
// names depend only on the set of formats.  Empty formats and formats
// without date items get no style.
func CollectDateStyles(b *book.Book) *DateStyleTable {
	codes := make(map[string][]numfmt.Item)
	for _, s := range b.Sheets() {
		s.WalkThrough(func(_, _ int, c *book.Cell) {
			if _, ok := c.V.(time.Time); !ok {
				return
			}
			if items, ok := c.Style.DateItems(); ok {
				codes[c.Style.Format()] = items
			}
		})
	}
	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	slices.Sort(sorted)

	t := &DateStyleTable{byCode: make(map[string]int, len(sorted))}
	for i, code := range sorted {
		n := strconv.Itoa(i + 1)
		t.Styles = append(t.Styles, DateStyle{
			DataName: "N" + n,
			CellName: "ce" + n,
			Format:   code,
			Elements: ODFElements(codes[code]),
		})
		t.byCode[code] = i
	}
	return t
}

// Lookup returns the style assigned to format.
func (t *DateStyleTable) Lookup(format string) (DateStyle, bool) {
	i, ok := t.byCode[format]
	if !ok {
		return DateStyle{}, false
	}
	return t.Styles[i], true
}
