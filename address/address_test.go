package address_test

import (
	"errors"
	"testing"

	"github.com/TsubasaBE/go-spsheet/address"
)

func TestColumnToIndex(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"ZZ", 701},
		{"AAA", 702},
		{"XFD", 16383},
	}
	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			got, err := address.ColumnToIndex(tc.label)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ColumnToIndex(%q) = %d, want %d", tc.label, got, tc.want)
			}
		})
	}
}

func TestColumnToIndexInvalid(t *testing.T) {
	for _, label := range []string{"", "a", "A1", "Ａ", "A-B"} {
		_, err := address.ColumnToIndex(label)
		if !errors.Is(err, address.ErrInvalidColumn) {
			t.Errorf("ColumnToIndex(%q) error = %v, want ErrInvalidColumn", label, err)
		}
	}
}

func TestIndexToColumn(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{701, "ZZ"},
		{702, "AAA"},
		{16383, "XFD"},
		{-1, ""},
	}
	for _, tc := range tests {
		if got := address.IndexToColumn(tc.index); got != tc.want {
			t.Errorf("IndexToColumn(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}

func TestColumnRoundTrip(t *testing.T) {
	for i := 0; i < 20000; i++ {
		label := address.IndexToColumn(i)
		got, err := address.ColumnToIndex(label)
		if err != nil {
			t.Fatalf("ColumnToIndex(%q): %v", label, err)
		}
		if got != i {
			t.Fatalf("round trip %d -> %q -> %d", i, label, got)
		}
	}
}

func TestColumnAndRowToIndex(t *testing.T) {
	tests := []struct {
		ref    string
		col    int
		row    int
		wantOK bool
	}{
		{"A1", 0, 0, true},
		{"B3", 1, 2, true},
		{"ZZ12", 701, 11, true},
		{"AAA1000", 702, 999, true},
		{"A", 0, 0, false},
		{"1", 0, 0, false},
		{"A0", 0, 0, false},
		{"a1", 0, 0, false},
		{"A1B", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.ref, func(t *testing.T) {
			col, row, ok := address.ColumnAndRowToIndex(tc.ref)
			if ok != tc.wantOK {
				t.Fatalf("ColumnAndRowToIndex(%q) ok = %v, want %v", tc.ref, ok, tc.wantOK)
			}
			if ok && (col != tc.col || row != tc.row) {
				t.Errorf("ColumnAndRowToIndex(%q) = (%d, %d), want (%d, %d)", tc.ref, col, row, tc.col, tc.row)
			}
		})
	}
}

func TestCellName(t *testing.T) {
	if got := address.CellName(701, 11); got != "ZZ12" {
		t.Errorf("CellName(701, 11) = %q, want ZZ12", got)
	}
	if got := address.CellName(0, 0); got != "A1" {
		t.Errorf("CellName(0, 0) = %q, want A1", got)
	}
}
