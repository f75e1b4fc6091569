package styles_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/TsubasaBE/go-spsheet/book"
	"github.com/TsubasaBE/go-spsheet/numfmt"
	"github.com/TsubasaBE/go-spsheet/styles"
)

// ── serial conversion ─────────────────────────────────────────────────────────

func TestTimeToSerial(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want float64
	}{
		{"datetime", time.Date(2017, 12, 2, 13, 30, 0, 0, time.UTC), 43071.5625},
		{"date", time.Date(2017, 12, 2, 0, 0, 0, 0, time.UTC), 43071},
		{"epoch", time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), 2},
		{"1899-12-30", time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC), 0},
		{"noon 1900-03-01", time.Date(1900, 3, 1, 12, 0, 0, 0, time.UTC), 61.5},
		{"non-UTC input", time.Date(2017, 12, 2, 22, 30, 0, 0, time.FixedZone("JST", 9*3600)), 43071.5625},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := styles.TimeToSerial(tc.in); got != tc.want {
				t.Errorf("TimeToSerial(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSerialToTime(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want time.Time
	}{
		{"datetime", 43071.5625, time.Date(2017, 12, 2, 13, 30, 0, 0, time.UTC)},
		{"date", 43071, time.Date(2017, 12, 2, 0, 0, 0, 0, time.UTC)},
		{"zero", 0, time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)},
		{"rounds to second", 43071.5625 + 0.4/86400, time.Date(2017, 12, 2, 13, 30, 0, 0, time.UTC)},
		{"rolls over midnight", 43071.9999999, time.Date(2017, 12, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := styles.SerialToTime(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("SerialToTime(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSerialToTimeInvalid(t *testing.T) {
	for _, in := range []float64{math.NaN(), math.Inf(1), -1, 3e6} {
		if _, err := styles.SerialToTime(in); err == nil {
			t.Errorf("SerialToTime(%v) returned no error", in)
		}
	}
}

func TestSerialRoundTrip(t *testing.T) {
	start := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2000; i++ {
		in := start.Add(time.Duration(i) * 37 * time.Hour).Add(time.Duration(i*7919) * time.Second)
		got, err := styles.SerialToTime(styles.TimeToSerial(in))
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(in) {
			t.Fatalf("round trip %v -> %v", in, got)
		}
	}
}

// ── OOXML numFmt assignment ───────────────────────────────────────────────────

func TestCollectNumFmts(t *testing.T) {
	b := book.NewBook()
	s1 := book.NewSheet("a")
	d1, _ := book.Date("2017-12-02", book.NewStyle("YYYY/MM/DD"))
	d2, _ := book.Date("2017-12-03", book.NewStyle(`MM\月DD\日`))
	d3, _ := book.Date("2017-12-04", book.NewStyle("YYYY/MM/DD"))
	d4, _ := book.Date("2017-12-05", book.Style{})
	s1.AddCell(d1, 0, 0)
	s1.AddCell(d2, 1, 0)
	s1.AddCell(book.Float(1), 2, 0)
	s1.AddCell(book.NewCell(43071.0, book.NewStyle("YYYY/MM/DD")), 3, 0)
	b.AddSheet(s1)
	s2 := book.NewSheet("b")
	s2.AddCell(d3, 0, 0)
	s2.AddCell(d4, 0, 1)
	s2.AddCell(book.Money(100, book.NewStyle("[$￥-411]#,##0")), 0, 2)
	s2.AddCell(book.Money(5, book.Style{}), 0, 3)
	b.AddSheet(s2)

	tbl := styles.CollectNumFmts(b)
	wantFmts := []styles.NumFmt{
		{ID: 164, Code: `MM\月DD\日`},
		{ID: 165, Code: "YYYY/MM/DD"},
		{ID: 166, Code: "[$￥-411]#,##0"},
	}
	if !reflect.DeepEqual(tbl.NumFmts, wantFmts) {
		t.Errorf("NumFmts = %+v, want %+v", tbl.NumFmts, wantFmts)
	}
	wantXFs := []styles.XF{
		{},
		{NumFmtID: 22, Kind: styles.KindDate},
		{NumFmtID: 0, Kind: styles.KindCurrency},
		{NumFmtID: 164, Kind: styles.KindDate},
		{NumFmtID: 165, Kind: styles.KindNumber},
		{NumFmtID: 165, Kind: styles.KindDate},
		{NumFmtID: 166, Kind: styles.KindCurrency},
	}
	if !reflect.DeepEqual(tbl.XFs, wantXFs) {
		t.Errorf("XFs = %+v, want %+v", tbl.XFs, wantXFs)
	}
	for _, tc := range []struct {
		c    *book.Cell
		want int
	}{
		{s1.Cell(0, 0), 5},
		{s2.Cell(0, 0), 5},
		{s1.Cell(1, 0), 3},
		{s1.Cell(2, 0), 0},
		{s1.Cell(3, 0), 4},
		{s2.Cell(0, 1), 1},
		{s2.Cell(0, 2), 6},
		{s2.Cell(0, 3), 2},
	} {
		if got := tbl.XF(tc.c); got != tc.want {
			t.Errorf("XF(%v) = %d, want %d", tc.c.V, got, tc.want)
		}
	}
}

func TestCollectNumFmtsEmptyBook(t *testing.T) {
	tbl := styles.CollectNumFmts(book.NewBook())
	if len(tbl.NumFmts) != 0 || !reflect.DeepEqual(tbl.XFs, []styles.XF{{}}) {
		t.Errorf("got %+v, want only the default xf", tbl)
	}
}

// ── OOXML style resolution ────────────────────────────────────────────────────

func TestStyleTableResolve(t *testing.T) {
	st := styles.StyleTable{
		{NumFmtID: 0},
		{NumFmtID: 164, FormatStr: "YYYY/MM/DD HH:MM:SS"},
		{NumFmtID: 22},
		{NumFmtID: 14},
		{NumFmtID: 2},
		{NumFmtID: 165, FormatStr: "[$￥-411]#,##0"},
		{NumFmtID: 166, FormatStr: "#,##0.00"},
		{NumFmtID: 167, FormatStr: "[$-411]ggge\"年\"m\"月\"d\"日\""},
		{NumFmtID: 164, FormatStr: "YYYY/MM/DD", StyleName: styles.NumberStyleName},
		{NumFmtID: 168, FormatStr: "General", StyleName: styles.DateStyleName},
		{NumFmtID: 0, StyleName: styles.CurrencyStyleName},
		{NumFmtID: 14, StyleName: "Normal"},
	}
	tests := []struct {
		xf         int
		wantFormat string
		wantKind   styles.Kind
	}{
		{0, "", styles.KindNumber},
		{1, "YYYY/MM/DD HH:MM:SS", styles.KindDate},
		{2, "", styles.KindDate},
		{3, "mm-dd-yy", styles.KindDate},
		{4, "0.00", styles.KindNumber},
		{5, "[$￥-411]#,##0", styles.KindCurrency},
		{6, "#,##0.00", styles.KindNumber},
		{7, "[$-411]ggge\"年\"m\"月\"d\"日\"", styles.KindDate},
		{8, "YYYY/MM/DD", styles.KindNumber},
		{9, "General", styles.KindDate},
		{10, "", styles.KindCurrency},
		{11, "mm-dd-yy", styles.KindDate},
		{99, "", styles.KindNumber},
		{-1, "", styles.KindNumber},
	}
	for _, tc := range tests {
		format, kind := st.Resolve(tc.xf)
		if format != tc.wantFormat || kind != tc.wantKind {
			t.Errorf("Resolve(%d) = (%q, %v), want (%q, %v)", tc.xf, format, kind, tc.wantFormat, tc.wantKind)
		}
	}
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"YYYY/MM/DD", true},
		{`MM\月DD\日`, true},
		{"h:mm AM/PM", true},
		{"[h]:mm:ss", true},
		{"GGGE", true},
		{"", false},
		{"General", false},
		{"#,##0.00", false},
		{"0.00E+00", false},
		{`0"days"`, false},
		{"[$￥-411]#,##0", false},
	}
	for _, tc := range tests {
		if got := styles.IsDateFormatCode(tc.code); got != tc.want {
			t.Errorf("IsDateFormatCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

// ── ODF date styles ───────────────────────────────────────────────────────────

func TestODFElementsRoundTrip(t *testing.T) {
	formats := []string{
		`YYYY/MM/DD\ HH:MM:SS`,
		`MM\月DD\日`,
		`YY/M/D\ H:M:S`,
		"GGGEE",
		`GG\ E`,
		`G\.E`,
		`MMMMM\ MMMM\ MMM`,
		`AAAA\ AAA\ DDDD\ DDD`,
		`YYYY"年度"`,
		`YYYY\"MM`,
		`DDDD", "MMMM\ D", "YYYY`,
	}
	for _, f := range formats {
		t.Run(f, func(t *testing.T) {
			items, ok := numfmt.Parse(f)
			if !ok {
				t.Fatalf("Parse(%q) failed", f)
			}
			got := styles.FormatFromODF(styles.ODFElements(items))
			if got != f {
				t.Errorf("FormatFromODF(ODFElements(%q)) = %q", f, got)
			}
		})
	}
}

func TestODFElements(t *testing.T) {
	items, _ := numfmt.Parse(`EE\年`)
	got := styles.ODFElements(items)
	want := []styles.DateElement{
		{Name: styles.ElemYear, Long: true, Gengou: true},
		{Name: styles.ElemText, Text: "年"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ODFElements = %+v, want %+v", got, want)
	}
}

func TestFormatFromODFSkipsUnknown(t *testing.T) {
	got := styles.FormatFromODF([]styles.DateElement{
		{Name: styles.ElemYear, Long: true},
		{Name: "am-pm"},
		{Name: styles.ElemText, Text: ""},
		{Name: styles.ElemText, Text: "-"},
		{Name: styles.ElemMonth, Long: true},
	})
	if got != `YYYY\-MM` {
		t.Errorf("FormatFromODF = %q, want YYYY\\-MM", got)
	}
}

func TestODFFormat(t *testing.T) {
	items, _ := numfmt.Parse("yyyy-mm-dd")
	elems := styles.ODFElements(items)
	tests := []struct {
		written, want string
	}{
		{"yyyy-mm-dd", "yyyy-mm-dd"},
		{"YYYY-MM-DD", "YYYY-MM-DD"},
		{`YYYY"-"MM"-"DD`, `YYYY"-"MM"-"DD`},
		{"", `YYYY\-MM\-DD`},
		{"yyyy/mm/dd", `YYYY\-MM\-DD`},
		{"Date 1", `YYYY\-MM\-DD`},
	}
	for _, tc := range tests {
		if got := styles.ODFFormat(tc.written, elems); got != tc.want {
			t.Errorf("ODFFormat(%q) = %q, want %q", tc.written, got, tc.want)
		}
	}
}

func TestCollectDateStyles(t *testing.T) {
	b := book.NewBook()
	s := book.NewSheet("s")
	d1, _ := book.Date("2017-12-02", book.NewStyle("YYYY/MM/DD"))
	d2, _ := book.Date("2017-12-02", book.NewStyle(`MM\月DD\日`))
	d3, _ := book.Date("2017-12-02", book.Style{})
	d4, _ := book.Date("2017-12-02", book.NewStyle("#,##0"))
	s.AddCell(d2, 0, 0)
	s.AddCell(d1, 1, 0)
	s.AddCell(d1, 2, 0)
	s.AddCell(d3, 3, 0)
	s.AddCell(d4, 4, 0)
	s.AddCell(book.Money(1, book.NewStyle("YYYY")), 5, 0)
	b.AddSheet(s)

	tbl := styles.CollectDateStyles(b)
	if len(tbl.Styles) != 2 {
		t.Fatalf("got %d styles, want 2: %+v", len(tbl.Styles), tbl.Styles)
	}
	ds, ok := tbl.Lookup("YYYY/MM/DD")
	if !ok || ds.DataName != "N2" || ds.CellName != "ce2" {
		t.Errorf("Lookup(YYYY/MM/DD) = %+v, %v", ds, ok)
	}
	ds, ok = tbl.Lookup(`MM\月DD\日`)
	if !ok || ds.DataName != "N1" || ds.CellName != "ce1" {
		t.Errorf(`Lookup(MM\月DD\日) = %+v, %v`, ds, ok)
	}
	if _, ok := tbl.Lookup(""); ok {
		t.Error("the empty format was assigned a style")
	}
}
