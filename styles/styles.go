// Package styles bridges portable format codes and the native style
// metadata of each file format.
//
// For OOXML it resolves the cellXfs table read from xl/styles.xml
// ([StyleTable]) and assigns numFmt ids and cellXfs indices for writing
// ([NumFmtTable]).  For ODF it assigns date-style names ([DateStyleTable]) and
// translates date items to and from number:date-style elements
// ([ODFElements], [FormatFromODF]).  It also converts instants to and from
// Excel serial day numbers ([TimeToSerial], [SerialToTime]).
package styles

import (
	"github.com/xuri/nfp"

	"github.com/TsubasaBE/go-spsheet/internal/dateformat"
	"github.com/TsubasaBE/go-spsheet/numfmt"
)

// XFStyle holds the resolved formatting information for one XF (cell-format)
// index as read from the cellXfs table in xl/styles.xml.
type XFStyle struct {
	// NumFmtID is the numFmtId attribute of the xf element.  Values 0–163 are
	// built-in Excel formats; values ≥ 164 are custom formats defined by a
	// numFmt element in the same file.
	NumFmtID int
	// FormatStr is the formatCode of the matching numFmt element.  It is
	// empty for built-in IDs that have no custom override.
	FormatStr string
	// StyleName is the name of the cell style the xf derives from, if any.
	StyleName string
}

// StyleTable maps XF index → XFStyle.  The slice index is the 0-based XF
// index as stored in the s attribute of a cell.
type StyleTable []XFStyle

// Kind is the value kind a cell's number format implies.
type Kind int

const (
	KindNumber Kind = iota
	KindDate
	KindCurrency
)

// Resolve returns the format code a numeric cell with XF index s carries,
// and the kind of value it holds.
//
// Custom codes are returned unchanged.  Built-in date IDs resolve to their
// [BuiltInNumFmt] string, except ID 22 which resolves to the empty format:
// that is the ID written for a date cell without a style.  XF index 0 and
// out-of-range indices resolve to ("", KindNumber).
//
// An xf derived from one of the kind cell styles ([KindStyleNames]) has that
// kind whatever its format looks like.  Otherwise the kind is guessed from
// the format.
func (st StyleTable) Resolve(s int) (format string, kind Kind) {
	if s <= 0 || s >= len(st) {
		return "", KindNumber
	}
	xf := st[s]
	format, kind = xf.guess()
	if k, ok := kindByStyleName[xf.StyleName]; ok {
		kind = k
	}
	return format, kind
}

func (xf XFStyle) guess() (string, Kind) {
	if xf.FormatStr != "" {
		switch {
		case IsDateFormatCode(xf.FormatStr):
			return xf.FormatStr, KindDate
		case HasCurrencyTag(xf.FormatStr):
			return xf.FormatStr, KindCurrency
		}
		return xf.FormatStr, KindNumber
	}
	switch {
	case xf.NumFmtID == DefaultDateNumFmtID:
		return "", KindDate
	case dateformat.IsBuiltInDateID(xf.NumFmtID):
		return BuiltInNumFmt[xf.NumFmtID], KindDate
	case xf.NumFmtID == 0:
		return "", KindNumber
	}
	return BuiltInNumFmt[xf.NumFmtID], KindNumber
}

// IsDateFormatCode reports whether a format code displays a date or time.
//
// A code the date grammar accepts is a date format.  Otherwise the code is
// tokenized with nfp and any date/time or elapsed-time token makes it a date
// format; a code nfp cannot split into sections falls back to a scan of its
// unquoted characters.
func IsDateFormatCode(code string) bool {
	if code == "" {
		return false
	}
	if _, ok := numfmt.Parse(code); ok {
		return true
	}
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(code)
	if len(sections) == 0 {
		return dateformat.ScanFormatStr(code)
	}
	for _, sec := range sections {
		for _, tok := range sec.Items {
			switch tok.TType {
			case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
				return true
			}
		}
	}
	return false
}

// HasCurrencyTag reports whether a numeric format code carries a currency
// symbol tag such as [$￥-411].  Locale-only tags like [$-411] do not count.
func HasCurrencyTag(code string) bool {
	if secs, ok := numfmt.ParseNumeric(code); ok {
		for _, sec := range secs {
			if sec.HasCurrency() {
				return true
			}
		}
		return false
	}
	ps := nfp.NumberFormatParser()
	for _, sec := range ps.Parse(code) {
		for _, tok := range sec.Items {
			if tok.TType != nfp.TokenTypeCurrencyLanguage {
				continue
			}
			for _, part := range tok.Parts {
				if part.Token.TType == nfp.TokenSubTypeCurrencyString && part.Token.TValue != "" {
					return true
				}
			}
		}
	}
	return false
}

// BuiltInNumFmt maps built-in numFmtId values to their canonical format
// strings as defined by ECMA-376 §18.8.30.  IDs 27–36 and 50–58 are
// locale-specific (CJK/Thai) in the standard; the entries here are neutral
// Western fallbacks used when no numFmt element overrides the ID.
var BuiltInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	5:  `($#,##0_);($#,##0)`,
	6:  `($#,##0_);[Red]($#,##0)`,
	7:  `($#,##0.00_);($#,##0.00)`,
	8:  `($#,##0.00_);[Red]($#,##0.00)`,
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "hh:mm",
	21: "hh:mm:ss",
	22: "m/d/yy hh:mm",
	// IDs 27–36: locale-specific CJK date formats.
	27: "MM-DD-YYYY",
	28: "D-MMM-YY",
	29: "D-MMM-YY",
	30: "M/D/YY",
	31: "YYYY-M-D",
	32: "H:MM",
	33: "H:MM:SS",
	34: "H:MM AM/PM",
	35: "H:MM:SS AM/PM",
	36: "MM-DD-YYYY",
	37: `(#,##0_);(#,##0)`,
	38: `(#,##0_);[Red](#,##0)`,
	39: `(#,##0.00_);(#,##0.00)`,
	40: `(#,##0.00_);[Red](#,##0.00)`,
	41: `_(* #,##0_);_(* (#,##0);_(* "-"_);_(@_)`,
	42: `_($* #,##0_);_($* (#,##0);_($* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* (#,##0.00);_(* "-"??_);_(@_)`,
	44: `_($* #,##0.00_);_($* (#,##0.00);_($* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
	// IDs 50–58: locale-specific CJK date formats (variant set).
	50: "MM-DD-YYYY",
	51: "D-MMM-YY",
	52: "H:MM AM/PM",
	53: "H:MM:SS AM/PM",
	54: "D-MMM-YY",
	55: "H:MM AM/PM",
	56: "H:MM:SS AM/PM",
	57: "MM-DD-YYYY",
	58: "D-MMM-YY",
}
