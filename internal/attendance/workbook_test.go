package attendance

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook_RoundTrip(t *testing.T) {
	matrix := Matrix{
		{"Name", "5/2/2024", "12/2/2024"},
		{"Alice Tan", "1", "0"},
		{"Bob Lim", "1", "1"},
	}

	data, err := Workbook("February", matrix)
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"February"}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	rows, err := f.GetRows("February")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	want := [][]string{
		{"Name", "5/2/2024", "12/2/2024"},
		{"Alice Tan", "1", "0"},
		{"Bob Lim", "1", "1"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkbook_HeaderStyle(t *testing.T) {
	data, err := Workbook("March", Matrix{{"Name", "1/3/2024"}, {"Alice", "1"}})
	if err != nil {
		t.Fatalf("Workbook() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	styleID, err := f.GetCellStyle("March", "B1")
	if err != nil {
		t.Fatalf("GetCellStyle() error = %v", err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle() error = %v", err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Error("header cell is not bold")
	}

	panes, err := f.GetPanes("March")
	if err != nil {
		t.Fatalf("GetPanes() error = %v", err)
	}
	if !panes.Freeze || panes.YSplit != 1 {
		t.Errorf("panes = %+v, want header row frozen", panes)
	}

	cellType, err := f.GetCellType("March", "B2")
	if err != nil {
		t.Fatalf("GetCellType() error = %v", err)
	}
	if cellType == excelize.CellTypeSharedString || cellType == excelize.CellTypeInlineString {
		t.Error("attendance cell stored as text, want number")
	}
}

func TestWorkbook_SheetNames(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		want  string
	}{
		{"default", "", "Sheet1"},
		{"long name is truncated", "A month name that is far too long for Excel", "A month name that is far too lo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Workbook(tt.sheet, Matrix{{"Name"}})
			if err != nil {
				t.Fatalf("Workbook() error = %v", err)
			}
			f, err := excelize.OpenReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("OpenReader() error = %v", err)
			}
			defer f.Close()
			if got := f.GetSheetList(); len(got) != 1 || got[0] != tt.want {
				t.Errorf("sheets = %q, want [%q]", got, tt.want)
			}
		})
	}
}
