package boat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nuscanoeing/canoebot/internal/logger"
	"github.com/nuscanoeing/canoebot/internal/sheets"
	"github.com/nuscanoeing/canoebot/internal/week"
)

const (
	// Cells is the block of the weekly worksheet holding the allocations.
	Cells = "A14:U50"

	columnsPerDay = 3
	boatOffset    = 2
)

// Headers are the column titles of the rendered table.
var Headers = []string{"Name", "Boat"}

// ErrNoAllocation is returned when the worksheet has no allocation for the day.
var ErrNoAllocation = errors.New("no boat allocation for this day")

// Allocation is one paddler and the boat assigned to them.
type Allocation struct {
	Name string `json:"name"`
	Boat string `json:"boat"`
}

// Range returns the A1 range holding the allocations of the week containing t.
func Range(t time.Time) string {
	return sheets.Range(week.Label(t), Cells)
}

// Extract pairs the name and boat columns of the given weekday (Monday = 0).
// Pairing stops at the shorter column. Rows where either cell is blank are
// dropped. ErrNoAllocation is returned when nothing remains.
func Extract(columns [][]string, weekday int) ([]Allocation, error) {
	nameCol := weekday * columnsPerDay
	boatCol := nameCol + boatOffset
	if weekday < 0 || boatCol >= len(columns) {
		return nil, ErrNoAllocation
	}

	names, boats := columns[nameCol], columns[boatCol]
	n := len(names)
	if len(boats) < n {
		n = len(boats)
	}

	var rows []Allocation
	for i := 0; i < n; i++ {
		name := strings.TrimSpace(names[i])
		boat := strings.TrimSpace(boats[i])
		if name == "" || boat == "" {
			continue
		}
		rows = append(rows, Allocation{Name: name, Boat: boat})
	}
	if len(rows) == 0 {
		return nil, ErrNoAllocation
	}
	return rows, nil
}

// CellRows returns the allocations as string rows, for the HTML renderer.
func CellRows(rows []Allocation) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Name, r.Boat}
	}
	return out
}

// Table renders the allocations as a plain-text table: a header line, a dashed
// rule under each header and left-aligned columns separated by two spaces.
func Table(rows []Allocation) string {
	nameWidth := utf8.RuneCountInString(Headers[0])
	boatWidth := utf8.RuneCountInString(Headers[1])
	for _, r := range rows {
		if n := utf8.RuneCountInString(r.Name); n > nameWidth {
			nameWidth = n
		}
		if n := utf8.RuneCountInString(r.Boat); n > boatWidth {
			boatWidth = n
		}
	}

	var b strings.Builder
	writeRow := func(name, boat string) {
		b.WriteString(pad(name, nameWidth))
		b.WriteString("  ")
		b.WriteString(boat)
		b.WriteString("\n")
	}
	writeRow(Headers[0], Headers[1])
	writeRow(strings.Repeat("-", nameWidth), strings.Repeat("-", boatWidth))
	for _, r := range rows {
		writeRow(r.Name, r.Boat)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Service reads allocations from the club spreadsheet.
type Service struct {
	reader        sheets.ValuesReader
	spreadsheetID string
}

// NewService creates a Service reading spreadsheetID through reader.
func NewService(reader sheets.ValuesReader, spreadsheetID string) *Service {
	return &Service{reader: reader, spreadsheetID: spreadsheetID}
}

// ForDay returns the allocations for the day of t.
func (s *Service) ForDay(ctx context.Context, t time.Time) ([]Allocation, error) {
	rng := Range(t)
	start := time.Now()
	columns, err := s.reader.ReadColumns(ctx, s.spreadsheetID, rng)
	logger.RecordTiming("sheets.read", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("reading boat allocation: %w", err)
	}

	rows, err := Extract(columns, week.Weekday(t))
	if err != nil {
		return nil, err
	}
	logger.Debug("Boat allocation read", logger.Fields{"range": rng, "rows": len(rows)})
	return rows, nil
}
