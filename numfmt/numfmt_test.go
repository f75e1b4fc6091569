package numfmt

import (
	"reflect"
	"testing"
	"time"

	"github.com/TsubasaBE/go-spsheet/era"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"YYYY/MM/DD HH:MM:SS", "%Y/%m/%d %H:%M:%S"},
		{"yyyy/mm/dd hh:mm:ss", "%Y/%m/%d %H:%M:%S"},
		{`MM\月DD\日`, "%m月%d日"},
		{"mm:ss", "%M:%S"},
		{"h:m", "%-H:%-M"},
		{"hm", "%-H%-M"},
		{"m/d", "%-m/%-d"},
		{"mmmmm mmmm mmm", "{{month5}} %B %b"},
		{"aaaa aaa dddd ddd", "{{youbi4}} {{youbi3}} %A %a"},
		{"ggge\"年\"", "{{gengou3}}{{era1}}年"},
		{"gg ee g", "{{gengou2}} {{era2}} {{gengou1}}"},
		{`"100%"yy`, "100%%%y"},
		{"yy-mm-dd", "%y-%m-%d"},
		{"Dddd", "%-d%a"},
		{"mM", "%-m%-m"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			items, ok := Parse(tc.format)
			if !ok {
				t.Fatalf("Parse(%q) failed", tc.format)
			}
			if got := Pattern(items); got != tc.want {
				t.Errorf("Pattern(Parse(%q)) = %q, want %q", tc.format, got, tc.want)
			}
		})
	}
}

func TestParseItems(t *testing.T) {
	items, ok := Parse("HH:MM:SS")
	if !ok {
		t.Fatal("Parse failed")
	}
	want := []Item{
		{Token: Hour2}, {Token: Literal, Text: ":"}, {Token: Minute2},
		{Token: Literal, Text: ":"}, {Token: Second2},
	}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("Parse = %+v, want %+v", items, want)
	}
}

func TestParseRejects(t *testing.T) {
	for _, format := range []string{"", "#,##0", "General", "yyyy年", `"unterminated`, "0.00", "yyyy\\", "Yyyy", "yYYY", "Aaaa"} {
		if items, ok := Parse(format); ok {
			t.Errorf("Parse(%q) = %+v, want failure", format, items)
		}
	}
}

func TestFormatDate(t *testing.T) {
	dt := time.Date(2017, 12, 2, 13, 30, 5, 0, time.UTC)
	tests := []struct {
		format string
		want   string
	}{
		{`MM\月DD\日`, "12月02日"},
		{"YYYY/MM/DD HH:MM:SS", "2017/12/02 13:30:05"},
		{"yy/m/d h:m:s", "17/12/2 13:30:5"},
		{"mmmm mmm mmmmm", "December Dec D"},
		{"dddd ddd", "Saturday Sat"},
		{"aaaa aaa", "土曜日 土"},
		{`ggg e\年`, "平成 29年"},
		{"gg ee", "平 29"},
		{"g", "H"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			got, ok := Format(tc.format, dt)
			if !ok {
				t.Fatalf("Format(%q) failed", tc.format)
			}
			if got != tc.want {
				t.Errorf("Format(%q) = %q, want %q", tc.format, got, tc.want)
			}
		})
	}
}

func TestFormatDateEraPadding(t *testing.T) {
	items, _ := Parse("ggg ee")
	got := FormatDate(items, time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC), nil)
	if got != "令和 01" {
		t.Errorf("got %q, want %q", got, "令和 01")
	}
}

func TestFormatDateBeforeFirstEra(t *testing.T) {
	items, _ := Parse("ggg e")
	got := FormatDate(items, time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC), era.Japanese)
	if got != " 1800" {
		t.Errorf("got %q, want %q", got, " 1800")
	}
}

func TestFormatDateConvertsToUTC(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	items, _ := Parse("YYYY/MM/DD HH")
	got := FormatDate(items, time.Date(2017, 12, 3, 1, 0, 0, 0, jst), nil)
	if got != "2017/12/02 16" {
		t.Errorf("got %q, want %q", got, "2017/12/02 16")
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		format       string
		sections     int
		color        Color
		digits       string
		wantCurrency bool
	}{
		{"#,##0", 1, NoColor, "#,##0", false},
		{"[RED]0.00", 1, Red, "0.00", false},
		{"[赤]0", 1, Red, "0", false},
		{"[黒]#", 1, Black, "#", false},
		{"[$￥-411]#,##0", 1, NoColor, "#,##0", true},
		{`#,##0"円"`, 1, NoColor, "#,##0", false},
		{"0;-0;0;0", 4, NoColor, "0", false},
		{"[Black]#,##0;[Red]-#,##0", 2, Black, "#,##0", false},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			secs, ok := ParseNumeric(tc.format)
			if !ok {
				t.Fatalf("ParseNumeric(%q) failed", tc.format)
			}
			if len(secs) != tc.sections {
				t.Fatalf("got %d sections, want %d", len(secs), tc.sections)
			}
			if secs[0].Color != tc.color {
				t.Errorf("Color = %v, want %v", secs[0].Color, tc.color)
			}
			if secs[0].Digits != tc.digits {
				t.Errorf("Digits = %q, want %q", secs[0].Digits, tc.digits)
			}
			if secs[0].HasCurrency() != tc.wantCurrency {
				t.Errorf("HasCurrency = %v, want %v", secs[0].HasCurrency(), tc.wantCurrency)
			}
		})
	}
}

func TestParseNumericRejects(t *testing.T) {
	for _, format := range []string{"", "yyyy", "0;0;0;0;0", "[GREEN]0", "abc"} {
		if secs, ok := ParseNumeric(format); ok {
			t.Errorf("ParseNumeric(%q) = %+v, want failure", format, secs)
		}
	}
}
