// Package numfmt parses spreadsheet format codes such as "YYYY/MM/DD HH:MM:SS"
// or `MM\月DD\日` into an ordered list of date items and renders a
// [time.Time] through them.
//
// The public entry points are [Parse] (date grammar), [FormatDate] (rendering)
// and [ParseNumeric] (numeric grammar, token extraction only).
//
// # Date grammar
//
// At each position the first matching alternative wins, in this order:
//
//  1. hour, optional word, minute ("hh:mm" reads mm as minutes)
//  2. minute, optional word, second ("mm:ss" reads mm as minutes)
//  3. second
//  4. hour
//  5. year:  yyyy yy ee e ggg gg g
//  6. month: mmmmm mmmm mmm mm m
//  7. day:   aaaa aaa dddd ddd dd d
//  8. word:  "quoted run", \x escaped character, or a bare separator
//
// Each token is written all lower case or all upper case (yyyy or YYYY,
// never Yyyy).  If any part of the input is left
// unmatched the whole code has no date format and [Parse] reports false.
package numfmt

import (
	"strings"
	"unicode/utf8"
)

// Token identifies one date item.
type Token int

// Date items.  The Literal token carries its text in [Item.Text]; all other
// tokens are resolved against the instant being rendered.
const (
	Literal Token = iota
	Year4
	Year2
	EraYear2
	EraYear
	GengouName
	GengouShort
	GengouAbbr
	MonthLetter
	MonthName
	MonthAbbr
	Month2
	Month1
	YoubiLong
	YoubiShort
	WeekdayName
	WeekdayAbbr
	Day2
	Day1
	Hour2
	Hour1
	Minute2
	Minute1
	Second2
	Second1
)

// directives maps each token to its strftime-style projection.  Tokens that
// strftime cannot express (era, gengou, youbi, month letter) use a
// {{placeholder}} that [FormatDate] resolves itself.
var directives = [...]string{
	Year4:       "%Y",
	Year2:       "%y",
	EraYear2:    "{{era2}}",
	EraYear:     "{{era1}}",
	GengouName:  "{{gengou3}}",
	GengouShort: "{{gengou2}}",
	GengouAbbr:  "{{gengou1}}",
	MonthLetter: "{{month5}}",
	MonthName:   "%B",
	MonthAbbr:   "%b",
	Month2:      "%m",
	Month1:      "%-m",
	YoubiLong:   "{{youbi4}}",
	YoubiShort:  "{{youbi3}}",
	WeekdayName: "%A",
	WeekdayAbbr: "%a",
	Day2:        "%d",
	Day1:        "%-d",
	Hour2:       "%H",
	Hour1:       "%-H",
	Minute2:     "%M",
	Minute1:     "%-M",
	Second2:     "%S",
	Second1:     "%-S",
}

// Item is one element of a parsed date format.
type Item struct {
	Token Token
	// Text is the literal text for Literal items and empty otherwise.
	Text string
}

// Directive returns the strftime-style form of the item.  Literal text is
// returned with '%' doubled.
func (it Item) Directive() string {
	if it.Token == Literal {
		return strings.ReplaceAll(it.Text, "%", "%%")
	}
	return directives[it.Token]
}

// Pattern concatenates the strftime-style form of every item.
//
//	Pattern(Parse("YYYY/MM/DD HH:MM:SS")) == "%Y/%m/%d %H:%M:%S"
func Pattern(items []Item) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.Directive())
	}
	return sb.String()
}

// Separators is the set of characters accepted as a bare (unquoted,
// unescaped) literal by the date grammar.
const Separators = "/:-., "

// ── grammar ───────────────────────────────────────────────────────────────────

type variant struct {
	code string
	tok  Token
}

// Each family is ordered longest variant first.
var (
	yearVariants = []variant{
		{"yyyy", Year4}, {"yy", Year2}, {"ee", EraYear2}, {"e", EraYear},
		{"ggg", GengouName}, {"gg", GengouShort}, {"g", GengouAbbr},
	}
	monthVariants = []variant{
		{"mmmmm", MonthLetter}, {"mmmm", MonthName}, {"mmm", MonthAbbr},
		{"mm", Month2}, {"m", Month1},
	}
	dayVariants = []variant{
		{"aaaa", YoubiLong}, {"aaa", YoubiShort}, {"dddd", WeekdayName},
		{"ddd", WeekdayAbbr}, {"dd", Day2}, {"d", Day1},
	}
	hourVariants   = []variant{{"hh", Hour2}, {"h", Hour1}}
	minuteVariants = []variant{{"mm", Minute2}, {"m", Minute1}}
	secondVariants = []variant{{"ss", Second2}, {"s", Second1}}
)

// Parse tokenizes a format code into date items.  ok is false when the code
// is empty or any part of it does not match the grammar.
func Parse(format string) (items []Item, ok bool) {
	if format == "" {
		return nil, false
	}
	s := format
	for s != "" {
		got, n := next(s)
		if n == 0 {
			return nil, false
		}
		items = append(items, got...)
		s = s[n:]
	}
	return items, true
}

// next matches one grammar alternative at the start of s and returns the
// items it produced and the number of bytes consumed (0 = no match).
func next(s string) ([]Item, int) {
	if got, n := pair(s, hourVariants, minuteVariants); n > 0 {
		return got, n
	}
	if got, n := pair(s, minuteVariants, secondVariants); n > 0 {
		return got, n
	}
	for _, family := range [][]variant{secondVariants, hourVariants, yearVariants, monthVariants, dayVariants} {
		if it, n := match(s, family); n > 0 {
			return []Item{it}, n
		}
	}
	if it, n := word(s, Separators); n > 0 {
		return []Item{it}, n
	}
	return nil, 0
}

// pair matches first, an optional word, then second.  A word that is not
// followed by a second-family token fails the whole pair.
func pair(s string, first, second []variant) ([]Item, int) {
	a, n := match(s, first)
	if n == 0 {
		return nil, 0
	}
	rest := s[n:]
	w, wn := word(rest, Separators)
	b, bn := match(rest[wn:], second)
	if bn == 0 {
		return nil, 0
	}
	if wn > 0 {
		return []Item{a, w, b}, n + wn + bn
	}
	return []Item{a, b}, n + bn
}

// match tries the variants of family in order.  A variant matches in its
// all-lower or all-upper spelling only.
func match(s string, family []variant) (Item, int) {
	for _, v := range family {
		if strings.HasPrefix(s, v.code) || strings.HasPrefix(s, strings.ToUpper(v.code)) {
			return Item{Token: v.tok}, len(v.code)
		}
	}
	return Item{}, 0
}

// word matches a quoted run, a backslash-escaped character or one bare
// character from bare.
func word(s, bare string) (Item, int) {
	if s == "" {
		return Item{}, 0
	}
	switch s[0] {
	case '"':
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return Item{}, 0
		}
		return Item{Token: Literal, Text: s[1 : 1+end]}, end + 2
	case '\\':
		r, size := utf8.DecodeRuneInString(s[1:])
		if size == 0 || r == utf8.RuneError && size == 1 {
			return Item{}, 0
		}
		return Item{Token: Literal, Text: s[1 : 1+size]}, 1 + size
	}
	if strings.IndexByte(bare, s[0]) >= 0 {
		return Item{Token: Literal, Text: s[:1]}, 1
	}
	return Item{}, 0
}
