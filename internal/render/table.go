package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CSS styles the document produced by Table.
const CSS = `body { margin: 0; background: #ffffff; }
table { border-collapse: collapse; font-family: Helvetica, Arial, sans-serif; font-size: 18px; }
th, td { border: 1px solid #c8d3e0; padding: 6px 14px; text-align: left; }
th { background: #1f4e79; color: #ffffff; }
tbody tr:nth-child(even) { background: #eef3f8; }`

const tableTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body><table>
<thead><tr><th></th></tr></thead>
<tbody><tr><td></td></tr></tbody>
</table></body></html>`

// Table renders headers and rows as an HTML document. Cell text is escaped;
// short rows are padded with empty cells to the header width.
func Table(headers []string, rows [][]string) (string, error) {
	if len(headers) == 0 {
		return "", fmt.Errorf("table needs at least one column")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tableTemplate))
	if err != nil {
		return "", fmt.Errorf("parsing table template: %w", err)
	}

	headRow := doc.Find("thead tr")
	protoHead := headRow.Find("th").First()
	for _, h := range headers {
		headRow.AppendSelection(protoHead.Clone().SetText(h))
	}
	protoHead.Remove()

	body := doc.Find("tbody")
	protoRow := body.Find("tr").First()
	protoCell := protoRow.Find("td").First()
	for _, row := range rows {
		tr := protoRow.Clone()
		tr.Empty()
		for i := range headers {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			tr.AppendSelection(protoCell.Clone().SetText(text))
		}
		body.AppendSelection(tr)
	}
	protoRow.Remove()

	html, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("rendering table: %w", err)
	}
	return html, nil
}
