package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/TsubasaBE/go-spsheet"
	"github.com/TsubasaBE/go-spsheet/internal/config"
	"github.com/TsubasaBE/go-spsheet/internal/testbook"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{LogLevel: "info", DumpFormat: "yaml"}
	root := newRootCmd(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	tests := []struct {
		style, date, want string
	}{
		{`GGGE\年M\月D\日`, "2019-05-01", "令和1年5月1日"},
		{"YYYY-MM-DD AAAA", "2019-05-01", "2019-05-01 水曜日"},
		{"YYYY/MM/DD HH:MM:SS", "2017-12-02T13:30:00", "2017/12/02 13:30:00"},
	}
	for _, tc := range tests {
		got, err := run(t, "render", "--style", tc.style, tc.date)
		if err != nil {
			t.Errorf("render %q: %v", tc.style, err)
			continue
		}
		if got != tc.want+"\n" {
			t.Errorf("render %q %s = %q, want %q", tc.style, tc.date, got, tc.want)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := run(t, "render", "--style", "#,##0", "2019-05-01"); err == nil {
		t.Error("numeric style: expected an error")
	}
	if _, err := run(t, "render", "--style", "YYYY", "May 1st"); err == nil {
		t.Error("bad date: expected an error")
	}
	if _, err := run(t, "render", "2019-05-01"); err == nil {
		t.Error("missing --style: expected an error")
	}
}

func TestTokens(t *testing.T) {
	got, err := run(t, "tokens", "YYYY/MM")
	if err != nil {
		t.Fatal(err)
	}
	want := "date %Y/%m\n  item    %Y\n  literal \"/\"\n  item    %m\n"
	if got != want {
		t.Errorf("tokens = %q, want %q", got, want)
	}

	got, err = run(t, "tokens", "[RED][$￥-411]#,##0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "color=red") || !strings.Contains(got, `prefix-currency="￥-411"`) {
		t.Errorf("tokens = %q", got)
	}

	if _, err := run(t, "tokens", "General"); err == nil {
		t.Error("General: expected an error")
	}
}

func TestConvertAndDump(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dates.xlsx")
	if err := spsheet.Save(in, testbook.Dates(t)); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "dates.ods")
	if _, err := run(t, "convert", in, out); err != nil {
		t.Fatalf("convert: %v", err)
	}
	got, err := spsheet.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	testbook.AssertEqual(t, got, testbook.Dates(t))

	text, err := run(t, "dump", out)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	var viaYAML []sheetDump
	if err := yaml.Unmarshal([]byte(text), &viaYAML); err != nil {
		t.Fatalf("dump output is not YAML: %v\n%s", err, text)
	}
	if len(viaYAML) != 1 || viaYAML[0].Name != "dates" || len(viaYAML[0].Cells) != 10 {
		t.Fatalf("dump = %+v", viaYAML)
	}
	first := viaYAML[0].Cells[0]
	if first.Ref != "A1" || first.Type != "date" || first.Display != "令和1年5月1日" {
		t.Errorf("first cell = %+v", first)
	}

	text, err = run(t, "dump", "--format", "json", out)
	if err != nil {
		t.Fatalf("dump --format json: %v", err)
	}
	var viaJSON []sheetDump
	if err := json.Unmarshal([]byte(text), &viaJSON); err != nil {
		t.Fatalf("dump output is not JSON: %v\n%s", err, text)
	}
	if len(viaJSON) != 1 || viaJSON[0].Cells[9].Format != "" || viaJSON[0].Cells[9].Ref != "A10" {
		t.Errorf("dump = %+v", viaJSON)
	}
}

func TestConvertUnknownTarget(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sample.ods")
	if err := spsheet.Save(in, testbook.Sample(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "convert", in, filepath.Join(dir, "sample.csv")); err == nil {
		t.Error("expected an error")
	}
}

func TestDumpInvalidFormat(t *testing.T) {
	in := filepath.Join(t.TempDir(), "sample.xlsx")
	if err := spsheet.Save(in, testbook.Sample(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "dump", "--format", "xml", in); err == nil {
		t.Error("expected an error")
	}
}
