package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nuscanoeing/canoebot/internal/attendance"
	"github.com/nuscanoeing/canoebot/internal/boat"
	"github.com/nuscanoeing/canoebot/internal/week"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// textWriter is implemented by every result type.
type textWriter interface {
	writeText(w io.Writer) error
}

// WeekResult describes the worksheets used for a day.
type WeekResult struct {
	Day           string   `json:"day"`
	Weekday       int      `json:"weekday"`
	Label         string   `json:"label"`
	BoatRange     string   `json:"boat_range"`
	PreviousMonth string   `json:"previous_month"`
	Days          []string `json:"days"`
	Weeks         []string `json:"weeks"`
}

func newWeekResult(t time.Time) *WeekResult {
	return &WeekResult{
		Day:           week.Day(t),
		Weekday:       week.Weekday(t),
		Label:         week.Label(t),
		BoatRange:     boat.Range(t),
		PreviousMonth: week.PreviousMonthName(t),
		Days:          week.DaysInPreviousMonth(t),
		Weeks:         week.WeeksInPreviousMonth(t),
	}
}

// QuoteResult is the output of the quote command.
type QuoteResult struct {
	Text string `json:"text"`
}

// BoatResult is the output of the boats command.
type BoatResult struct {
	Day         string            `json:"day"`
	Range       string            `json:"range"`
	Allocations []boat.Allocation `json:"allocations"`
}

// AttendanceResult is the output of the attendance command.
type AttendanceResult struct {
	Month    string            `json:"month"`
	Title    string            `json:"title"`
	Matrix   attendance.Matrix `json:"matrix"`
	Workbook string            `json:"workbook,omitempty"`
	FileID   string            `json:"file_id,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result textWriter, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return result.writeText(w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func (r *WeekResult) writeText(w io.Writer) error {
	fmt.Fprintf(w, "Day:            %s (weekday %d)\n", r.Day, r.Weekday)
	fmt.Fprintf(w, "Worksheet:      %s\n", r.Label)
	fmt.Fprintf(w, "Boat range:     %s\n", r.BoatRange)
	fmt.Fprintf(w, "Previous month: %s (%d days)\n", r.PreviousMonth, len(r.Days))
	fmt.Fprintln(w, "Weeks:")
	for _, label := range r.Weeks {
		fmt.Fprintf(w, "  %s\n", label)
	}
	return nil
}

func (r *QuoteResult) writeText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Text)
	return err
}

func (r *BoatResult) writeText(w io.Writer) error {
	fmt.Fprintf(w, "Boat allocation for %s (%s)\n\n", r.Day, r.Range)
	fmt.Fprintln(w, boat.Table(r.Allocations))
	fmt.Fprintf(w, "\nTotal: %d paddlers\n", len(r.Allocations))
	return nil
}

func (r *AttendanceResult) writeText(w io.Writer) error {
	fmt.Fprintf(w, "%s\n\n", r.Title)
	for _, row := range r.Matrix {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	members := len(r.Matrix) - 1
	if members < 0 {
		members = 0
	}
	sessions := 0
	if len(r.Matrix) > 0 {
		sessions = len(r.Matrix[0]) - 1
	}
	fmt.Fprintf(w, "\nTotal: %d members, %d sessions\n", members, sessions)
	if r.Workbook != "" {
		fmt.Fprintf(w, "Workbook written to %s\n", r.Workbook)
	}
	if r.FileID != "" {
		fmt.Fprintf(w, "Published to Drive as %s\n", r.FileID)
	}
	return nil
}
