package numfmt

import "strings"

// Color is the optional colour tag that may open a numeric section.
type Color int

const (
	NoColor Color = iota
	Red
	Black
)

// Word is a literal or currency element surrounding the digit run of a
// numeric section.
type Word struct {
	Text string
	// Currency is set for a "[$…]" currency tag; Text then holds the tag
	// body, e.g. "￥-411".
	Currency bool
}

// Section is one semicolon-separated part of a numeric format code.
type Section struct {
	Color  Color
	Prefix []Word
	// Digits is the run of 0 # . , ? placeholders.
	Digits string
	Suffix []Word
}

// HasCurrency reports whether the section carries a currency tag.
func (s Section) HasCurrency() bool {
	for _, w := range s.Prefix {
		if w.Currency {
			return true
		}
	}
	for _, w := range s.Suffix {
		if w.Currency {
			return true
		}
	}
	return false
}

const (
	numericBare  = "/:- ()"
	digitPattern = "0#.,?"
	maxSections  = 4
)

var colorTags = []struct {
	tag   string
	color Color
	fold  bool
}{
	{"[RED]", Red, true},
	{"[赤]", Red, false},
	{"[BLACK]", Black, true},
	{"[黒]", Black, false},
}

// ParseNumeric splits a numeric format code such as `[RED][$￥-411]#,##0;-0`
// into sections.  ok is false when the code does not fully match, has no
// digit run in some section, or has more than four sections.
//
// The sections are only extracted; numeric rendering is not implemented.
func ParseNumeric(format string) (sections []Section, ok bool) {
	s := format
	for s != "" && len(sections) < maxSections {
		rest := s
		if len(sections) > 0 || strings.HasPrefix(rest, ";") {
			rest = strings.TrimPrefix(rest, ";")
		}
		sec, n := numericSection(rest)
		if n == 0 {
			break
		}
		sections = append(sections, sec)
		s = rest[n:]
	}
	if s != "" || len(sections) == 0 {
		return nil, false
	}
	return sections, true
}

func numericSection(s string) (Section, int) {
	var sec Section
	start := len(s)
	for _, c := range colorTags {
		if len(s) < len(c.tag) {
			continue
		}
		if c.fold && strings.EqualFold(s[:len(c.tag)], c.tag) || s[:len(c.tag)] == c.tag {
			sec.Color = c.color
			s = s[len(c.tag):]
			break
		}
	}
	sec.Prefix, s = numericWords(s)
	n := 0
	for n < len(s) && strings.IndexByte(digitPattern, s[n]) >= 0 {
		n++
	}
	if n == 0 {
		return Section{}, 0
	}
	sec.Digits = s[:n]
	sec.Suffix, s = numericWords(s[n:])
	return sec, start - len(s)
}

func numericWords(s string) ([]Word, string) {
	var words []Word
	for s != "" {
		if strings.HasPrefix(s, "[$") {
			end := strings.IndexByte(s, ']')
			if end < 0 {
				break
			}
			words = append(words, Word{Text: s[2:end], Currency: true})
			s = s[end+1:]
			continue
		}
		it, n := word(s, numericBare)
		if n == 0 {
			break
		}
		words = append(words, Word{Text: it.Text})
		s = s[n:]
	}
	return words, s
}
