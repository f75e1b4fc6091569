package spsheet_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TsubasaBE/go-spsheet"
	"github.com/TsubasaBE/go-spsheet/internal/testbook"
	"github.com/TsubasaBE/go-spsheet/ods"
	"github.com/TsubasaBE/go-spsheet/xlsx"
)

// ── ConvertDate ───────────────────────────────────────────────────────────────

func TestConvertDate(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    time.Time
		wantErr bool
	}{
		{
			name:  "serial 0 gives 1899-12-30",
			input: 0,
			want:  time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 2 gives 1900-01-01",
			input: 2,
			want:  time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 61 gives 1900-03-01",
			input: 61,
			want:  time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "date and time",
			input: 43071.5625,
			want:  time.Date(2017, 12, 2, 13, 30, 0, 0, time.UTC),
		},
		{
			name:  "fraction rounds to the second",
			input: 41235.45578,
			want:  time.Date(2012, 11, 22, 10, 56, 19, 0, time.UTC),
		},
		{name: "NaN", input: math.NaN(), wantErr: true},
		{name: "infinity", input: math.Inf(1), wantErr: true},
		{name: "negative", input: -1, wantErr: true},
		{name: "past 9999", input: 3e6, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := spsheet.ConvertDate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ConvertDate(%v) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestConvertDateEx1904(t *testing.T) {
	got, err := spsheet.ConvertDateEx(0, true)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ConvertDateEx(0, true) = %v, want %v", got, want)
	}
	got, err = spsheet.ConvertDateEx(43071.5625, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2017, 12, 2, 13, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ConvertDateEx(43071.5625, false) = %v, want %v", got, want)
	}
}

func TestTimeToSerial(t *testing.T) {
	in := time.Date(2017, 12, 2, 13, 30, 0, 0, time.UTC)
	if got := spsheet.TimeToSerial(in); got != 43071.5625 {
		t.Errorf("TimeToSerial(%v) = %v, want 43071.5625", in, got)
	}
}

// ── IsDateFormat ──────────────────────────────────────────────────────────────

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		id        int
		formatStr string
		want      bool
	}{
		{0, "", false},
		{2, "", false},
		{14, "", true},
		{18, "", true},
		{22, "", true},
		{31, "", true},
		{49, "", false},
		{164, "yyyy/mm/dd", true},
		{164, `GGGE\年M\月D\日`, true},
		{164, "[h]:mm:ss", true},
		{164, "#,##0.00", false},
		{164, `[$￥-411]#,##0`, false},
		{164, `"date"0`, false},
	}
	for _, tc := range tests {
		if got := spsheet.IsDateFormat(tc.id, tc.formatStr); got != tc.want {
			t.Errorf("IsDateFormat(%d, %q) = %v, want %v", tc.id, tc.formatStr, got, tc.want)
		}
	}
}

// ── format detection ──────────────────────────────────────────────────────────

func TestDetect(t *testing.T) {
	xlsxData, err := xlsx.Bytes(testbook.Sample(t))
	if err != nil {
		t.Fatal(err)
	}
	odsData, err := ods.Bytes(testbook.Sample(t))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		file string
		data []byte
		want spsheet.Format
	}{
		{"xlsx", "book.xlsx", xlsxData, spsheet.FormatXLSX},
		{"ods", "book.ods", odsData, spsheet.FormatODS},
		{"content beats extension", "book.xlsx", odsData, spsheet.FormatODS},
		{"extension fallback", "BOOK.ODS", []byte("not a package"), spsheet.FormatODS},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := spsheet.Detect(tc.file, tc.data)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if got != tc.want {
				t.Errorf("Detect(%q) = %v, want %v", tc.file, got, tc.want)
			}
		})
	}

	if _, err := spsheet.Detect("notes.txt", []byte("hello")); !errors.Is(err, spsheet.ErrUnknownFormat) {
		t.Errorf("Detect(notes.txt) = %v, want ErrUnknownFormat", err)
	}
}

func TestFormatString(t *testing.T) {
	for f, want := range map[spsheet.Format]string{
		spsheet.FormatXLSX:    "xlsx",
		spsheet.FormatODS:     "ods",
		spsheet.FormatUnknown: "unknown",
	} {
		if got := f.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
	if got := spsheet.FormatODS.Ext(); got != ".ods" {
		t.Errorf("Ext() = %q", got)
	}
}

// ── Open / Save ───────────────────────────────────────────────────────────────

func TestSaveOpen(t *testing.T) {
	dir := t.TempDir()
	want := testbook.Sample(t)
	for _, name := range []string{"sample.xlsx", "sample.ods"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := spsheet.Save(path, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := spsheet.Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			testbook.AssertEqual(t, got, want)
		})
	}
}

func TestOpenRenamedFile(t *testing.T) {
	dir := t.TempDir()
	odsPath := filepath.Join(dir, "sample.ods")
	want := testbook.Sample(t)
	if err := spsheet.Save(odsPath, want); err != nil {
		t.Fatal(err)
	}
	renamed := filepath.Join(dir, "sample.xlsx")
	if err := os.Rename(odsPath, renamed); err != nil {
		t.Fatal(err)
	}
	got, err := spsheet.Open(renamed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	testbook.AssertEqual(t, got, want)
}

func TestSaveUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.csv")
	if err := spsheet.Save(path, testbook.Sample(t)); !errors.Is(err, spsheet.ErrUnknownFormat) {
		t.Errorf("Save = %v, want ErrUnknownFormat", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Save left a file behind: %v", err)
	}
}

func TestReadWrite(t *testing.T) {
	want := testbook.Dates(t)
	for _, f := range []spsheet.Format{spsheet.FormatXLSX, spsheet.FormatODS} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := spsheet.Write(&buf, want, f); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := spsheet.Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()), f)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			testbook.AssertEqual(t, got, want)
		})
	}
	if err := spsheet.Write(&bytes.Buffer{}, want, spsheet.FormatUnknown); !errors.Is(err, spsheet.ErrUnknownFormat) {
		t.Errorf("Write(FormatUnknown) = %v, want ErrUnknownFormat", err)
	}
}
