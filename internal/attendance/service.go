package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nuscanoeing/canoebot/internal/logger"
	"github.com/nuscanoeing/canoebot/internal/sheets"
	"github.com/nuscanoeing/canoebot/internal/week"
)

// ErrNoFolder is returned by Publish when no Drive folder is configured.
var ErrNoFolder = errors.New("no Drive folder configured for attendance reports")

// Backend is the spreadsheet access the service needs. *sheets.Client
// implements it.
type Backend interface {
	sheets.ValuesReader
	sheets.ValuesWriter
	sheets.FileCreator
}

// Report is the attendance of one calendar month.
type Report struct {
	Month  string
	Title  string
	Matrix Matrix
}

// Service reads the club spreadsheet and publishes monthly reports.
type Service struct {
	backend       Backend
	spreadsheetID string
	folderID      string
}

// NewService creates a Service. folderID may be empty, in which case reports
// can be built and exported but not published.
func NewService(backend Backend, spreadsheetID, folderID string) *Service {
	return &Service{backend: backend, spreadsheetID: spreadsheetID, folderID: folderID}
}

// CanPublish reports whether a Drive folder is configured.
func (s *Service) CanPublish() bool {
	return s.folderID != ""
}

// Week reads and parses one weekly worksheet.
func (s *Service) Week(ctx context.Context, label string) (Weekly, error) {
	morning, err := s.read(ctx, sheets.Range(label, MorningCells))
	if err != nil {
		return nil, fmt.Errorf("reading morning sessions of %s: %w", label, err)
	}
	afternoon, err := s.read(ctx, sheets.Range(label, AfternoonCells))
	if err != nil {
		return nil, fmt.Errorf("reading afternoon sessions of %s: %w", label, err)
	}
	return ParseWeek(morning, afternoon), nil
}

// Monthly merges every week touching the previous month and keeps only that
// month's sessions.
func (s *Service) Monthly(ctx context.Context, today time.Time) (Weekly, error) {
	raw := make(Weekly)
	for _, label := range week.WeeksInPreviousMonth(today) {
		sessions, err := s.Week(ctx, label)
		if err != nil {
			return nil, err
		}
		Merge(raw, sessions)
	}
	return FilterToMonth(raw, today), nil
}

// Nicknames reads the nickname table.
func (s *Service) Nicknames(ctx context.Context) ([]Nickname, error) {
	columns, err := s.read(ctx, sheets.Range(NicknameSheet, nicknameCells))
	if err != nil {
		return nil, fmt.Errorf("reading nicknames: %w", err)
	}
	return ParseNicknames(columns), nil
}

// Build assembles the report for the month before today's.
func (s *Service) Build(ctx context.Context, today time.Time) (Report, error) {
	monthly, err := s.Monthly(ctx, today)
	if err != nil {
		return Report{}, err
	}
	nicknames, err := s.Nicknames(ctx)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Month:  week.PreviousMonthName(today),
		Title:  FileName(today),
		Matrix: BuildMatrix(nicknames, monthly),
	}
	logger.Info("Attendance report built", logger.Fields{
		"month":    report.Month,
		"sessions": len(monthly),
		"members":  len(nicknames),
	})
	return report, nil
}

// Publish creates a spreadsheet named after the report in the Drive folder and
// writes the matrix into its first sheet. It returns the new file's ID.
func (s *Service) Publish(ctx context.Context, report Report) (string, error) {
	if !s.CanPublish() {
		return "", ErrNoFolder
	}

	fileID, err := s.backend.CreateSpreadsheet(ctx, report.Title, s.folderID)
	if err != nil {
		return "", fmt.Errorf("creating %q: %w", report.Title, err)
	}
	if err := s.backend.WriteRows(ctx, fileID, reportTarget, report.Matrix); err != nil {
		return "", fmt.Errorf("writing %q: %w", report.Title, err)
	}

	logger.IncrCounter("attendance.published")
	logger.Info("Attendance report published", logger.Fields{
		"title":   report.Title,
		"file_id": fileID,
	})
	return fileID, nil
}

// Workbook exports the report as .xlsx, with the sheet named after the month.
func (r Report) Workbook() ([]byte, error) {
	return Workbook(r.Month, r.Matrix)
}

// WorkbookName is the file name of the exported workbook.
func (r Report) WorkbookName() string {
	return r.Title + ".xlsx"
}

func (s *Service) read(ctx context.Context, rng string) ([][]string, error) {
	start := time.Now()
	columns, err := s.backend.ReadColumns(ctx, s.spreadsheetID, rng)
	logger.RecordTiming("sheets.read", time.Since(start))
	return columns, err
}
