// Package attendance builds the monthly training attendance report.
//
// Every weekly worksheet has a morning block and an afternoon block. Inside a
// block each session is a column: a "Name" marker, the session date as D/M/YYYY
// and then the nicknames of the paddlers who turned up. The sessions of every
// week touching the previous month are merged, restricted to that month, and
// joined against the Nicknames worksheet to produce a name-by-date matrix of
// ones and zeros.
//
// The matrix is published as a new Google spreadsheet in a Drive folder and can
// also be exported as an .xlsx workbook:
//
//	svc := attendance.NewService(client, sheetID, folderID)
//	report, err := svc.Build(ctx, today)
//	if err != nil {
//		return err
//	}
//	fileID, err := svc.Publish(ctx, report)
package attendance
