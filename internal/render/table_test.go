package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing rendered HTML: %v", err)
	}
	return doc
}

func cells(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

func TestTable(t *testing.T) {
	html, err := Table([]string{"Name", "Boat"}, [][]string{
		{"Alice", "K1"},
		{"Bob", "C2"},
	})
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}

	doc := parse(t, html)
	if diff := cmp.Diff([]string{"Name", "Boat"}, cells(doc.Find("thead th"))); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}

	rows := doc.Find("tbody tr")
	if rows.Length() != 2 {
		t.Fatalf("got %d body rows, want 2", rows.Length())
	}
	if diff := cmp.Diff([]string{"Alice", "K1"}, cells(rows.Eq(0).Find("td"))); diff != "" {
		t.Errorf("row 0 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Bob", "C2"}, cells(rows.Eq(1).Find("td"))); diff != "" {
		t.Errorf("row 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestTable_EscapesText(t *testing.T) {
	html, err := Table([]string{"Name"}, [][]string{{"<b>Al & Co</b>"}})
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if strings.Contains(html, "<b>Al") {
		t.Errorf("cell text not escaped: %s", html)
	}
	if !strings.Contains(html, "&lt;b&gt;Al &amp; Co&lt;/b&gt;") {
		t.Errorf("escaped text missing: %s", html)
	}
	if got := parse(t, html).Find("tbody td").Text(); got != "<b>Al & Co</b>" {
		t.Errorf("cell text = %q", got)
	}
}

func TestTable_PadsShortRows(t *testing.T) {
	html, err := Table([]string{"Name", "Boat"}, [][]string{{"Alice"}, {"Bob", "K2", "extra"}})
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	rows := parse(t, html).Find("tbody tr")
	if diff := cmp.Diff([]string{"Alice", ""}, cells(rows.Eq(0).Find("td"))); diff != "" {
		t.Errorf("short row mismatch (-want +got):\n%s", diff)
	}
	if n := rows.Eq(1).Find("td").Length(); n != 2 {
		t.Errorf("long row has %d cells, want 2", n)
	}
}

func TestTable_NoRows(t *testing.T) {
	html, err := Table([]string{"Name"}, nil)
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if n := parse(t, html).Find("tbody tr").Length(); n != 0 {
		t.Errorf("got %d body rows, want 0", n)
	}
}

func TestTable_NoHeaders(t *testing.T) {
	if _, err := Table(nil, [][]string{{"x"}}); err == nil {
		t.Error("Table() with no headers expected error")
	}
}
