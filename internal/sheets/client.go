package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	// SpreadsheetMimeType is the Drive MIME type of a native Google Sheets file.
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

	majorDimensionColumns = "COLUMNS"
	valueInputUserEntered = "USER_ENTERED"
)

// ValuesReader reads a rectangular range column by column.
type ValuesReader interface {
	ReadColumns(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error)
}

// ValuesWriter writes rows into a range, interpreting values as if typed by a user.
type ValuesWriter interface {
	WriteRows(ctx context.Context, spreadsheetID, a1Range string, rows [][]string) error
}

// FileCreator creates an empty spreadsheet in a Drive folder and returns its ID.
type FileCreator interface {
	CreateSpreadsheet(ctx context.Context, name, folderID string) (string, error)
}

// Client implements ValuesReader, ValuesWriter and FileCreator on top of the
// Google API client libraries.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewClient authenticates with a service-account JSON key and builds the Sheets
// and Drive services.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("service account credentials are required")
	}
	return NewClientWithOptions(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveScope),
	)
}

// NewClientWithOptions builds a Client from arbitrary client options, e.g. a
// custom endpoint in tests.
func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	return &Client{sheets: sheetsSvc, drive: driveSvc}, nil
}

// ReadColumns fetches a range with majorDimension=COLUMNS. Google omits trailing
// empty cells, so columns may differ in length.
func (c *Client) ReadColumns(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, a1Range).
		MajorDimension(majorDimensionColumns).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", a1Range, err)
	}
	return toStrings(resp.Values), nil
}

// WriteRows overwrites a range with rows using USER_ENTERED input.
func (c *Client) WriteRows(ctx context.Context, spreadsheetID, a1Range string, rows [][]string) error {
	body := &sheets.ValueRange{Values: toInterfaces(rows)}
	_, err := c.sheets.Spreadsheets.Values.Update(spreadsheetID, a1Range, body).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("writing %s: %w", a1Range, err)
	}
	return nil
}

// CreateSpreadsheet creates a native Google Sheets file named name inside folderID.
func (c *Client) CreateSpreadsheet(ctx context.Context, name, folderID string) (string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: SpreadsheetMimeType,
	}
	if folderID != "" {
		file.Parents = []string{folderID}
	}
	created, err := c.drive.Files.Create(file).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("creating file %q: %w", name, err)
	}
	return created.Id, nil
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, col := range values {
		out[i] = make([]string, len(col))
		for j, v := range col {
			if v == nil {
				continue
			}
			out[i][j] = fmt.Sprint(v)
		}
	}
	return out
}

func toInterfaces(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = make([]interface{}, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}
