package dateformat

import "testing"

func TestScanFormatStr(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"yyyy/mm/dd", true},
		{"[$-411]ggge", true},
		{"aaa", true},
		{"h:mm", true},
		{"General", false},
		{"general", false},
		{"General;yyyy", true},
		{"0.00E+00", false},
		{"#,##0", false},
		{`0"days"`, false},
		{`0\d`, false},
		{"[Red]0", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := ScanFormatStr(tc.in); got != tc.want {
			t.Errorf("ScanFormatStr(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsBuiltInDateID(t *testing.T) {
	for id := 0; id < 164; id++ {
		want := (id >= 14 && id <= 22) || (id >= 27 && id <= 36) ||
			(id >= 45 && id <= 47) || (id >= 50 && id <= 58)
		if got := IsBuiltInDateID(id); got != want {
			t.Errorf("IsBuiltInDateID(%d) = %v, want %v", id, got, want)
		}
	}
}
