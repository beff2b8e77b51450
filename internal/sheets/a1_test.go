package sheets

import "testing"

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{-3, ""},
		{1, "A"},
		{3, "C"},
		{21, "U"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
		{16384, "XFD"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ColumnLetter(tt.n); got != tt.want {
				t.Errorf("ColumnLetter(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestColumnNumber(t *testing.T) {
	tests := []struct {
		letters string
		want    int
	}{
		{"A", 1},
		{"u", 21},
		{"Z", 26},
		{"AA", 27},
		{"ZZ", 702},
		{"XFD", 16384},
		{"", 0},
		{"A1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			if got := ColumnNumber(tt.letters); got != tt.want {
				t.Errorf("ColumnNumber(%q) = %d, want %d", tt.letters, got, tt.want)
			}
		})
	}
}

func TestColumnRoundTrip(t *testing.T) {
	for n := 1; n <= 2000; n++ {
		if got := ColumnNumber(ColumnLetter(n)); got != n {
			t.Fatalf("ColumnNumber(ColumnLetter(%d)) = %d", n, got)
		}
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		cells string
		want  string
	}{
		{"week title", "Mar 11/3 - Mar 17/3", "A14:U50", "'Mar 11/3 - Mar 17/3'!A14:U50"},
		{"whole columns", "Nicknames", "A:B", "'Nicknames'!A:B"},
		{"whole sheet", "Sheet1", "", "'Sheet1'"},
		{"embedded quote", "Tom's week", "A1", "'Tom''s week'!A1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Range(tt.sheet, tt.cells); got != tt.want {
				t.Errorf("Range() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCellRange(t *testing.T) {
	if got, want := CellRange("Week", 1, 12, 21, 50), "'Week'!A12:U50"; got != want {
		t.Errorf("CellRange() = %q, want %q", got, want)
	}
	if got, want := CellRange("Week", 1, 55, 21, 92), "'Week'!A55:U92"; got != want {
		t.Errorf("CellRange() = %q, want %q", got, want)
	}
}
