package numfmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/TsubasaBE/go-spsheet/era"
)

// youbi holds the Japanese weekday characters, indexed by time.Weekday.
var youbi = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// FormatDate renders t through items.  Era and gengou items are resolved with
// cal; a nil cal uses [era.Japanese].  When t precedes every era of cal, era
// years fall back to the Gregorian year and gengou names render empty.
//
// t is converted to UTC before rendering.
func FormatDate(items []Item, t time.Time, cal era.Calendar) string {
	if cal == nil {
		cal = era.Japanese
	}
	t = t.UTC()
	e, hasEra := cal.Lookup(t)
	eraYear := t.Year()
	if hasEra {
		eraYear = e.Year(t)
	}

	var sb strings.Builder
	for _, it := range items {
		switch it.Token {
		case Literal:
			sb.WriteString(it.Text)

		// ── year / era ──────────────────────────────────────────────────────
		case Year4:
			fmt.Fprintf(&sb, "%04d", t.Year())
		case Year2:
			fmt.Fprintf(&sb, "%02d", t.Year()%100)
		case EraYear:
			sb.WriteString(strconv.Itoa(eraYear))
		case EraYear2:
			fmt.Fprintf(&sb, "%02d", eraYear)
		case GengouName:
			sb.WriteString(e.Name)
		case GengouShort:
			sb.WriteString(e.Short)
		case GengouAbbr:
			sb.WriteString(e.Abbr)

		// ── month ───────────────────────────────────────────────────────────
		case MonthLetter:
			sb.WriteString(t.Month().String()[:1])
		case MonthName:
			sb.WriteString(t.Month().String())
		case MonthAbbr:
			sb.WriteString(t.Month().String()[:3])
		case Month2:
			fmt.Fprintf(&sb, "%02d", int(t.Month()))
		case Month1:
			sb.WriteString(strconv.Itoa(int(t.Month())))

		// ── day ─────────────────────────────────────────────────────────────
		case YoubiLong:
			sb.WriteString(youbi[t.Weekday()] + "曜日")
		case YoubiShort:
			sb.WriteString(youbi[t.Weekday()])
		case WeekdayName:
			sb.WriteString(t.Weekday().String())
		case WeekdayAbbr:
			sb.WriteString(t.Weekday().String()[:3])
		case Day2:
			fmt.Fprintf(&sb, "%02d", t.Day())
		case Day1:
			sb.WriteString(strconv.Itoa(t.Day()))

		// ── time of day ─────────────────────────────────────────────────────
		case Hour2:
			fmt.Fprintf(&sb, "%02d", t.Hour())
		case Hour1:
			sb.WriteString(strconv.Itoa(t.Hour()))
		case Minute2:
			fmt.Fprintf(&sb, "%02d", t.Minute())
		case Minute1:
			sb.WriteString(strconv.Itoa(t.Minute()))
		case Second2:
			fmt.Fprintf(&sb, "%02d", t.Second())
		case Second1:
			sb.WriteString(strconv.Itoa(t.Second()))
		}
	}
	return sb.String()
}

// Format parses format and renders t through it with the Japanese calendar.
// ok is false when format has no date items.
func Format(format string, t time.Time) (string, bool) {
	items, ok := Parse(format)
	if !ok {
		return "", false
	}
	return FormatDate(items, t, era.Japanese), true
}
