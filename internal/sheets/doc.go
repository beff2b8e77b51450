// Package sheets wraps the Google Sheets and Drive APIs behind the three small
// capabilities the bot needs: reading a range column by column, writing rows into
// a range, and creating a spreadsheet file in a Drive folder.
//
// It also holds the A1-notation helpers used to address worksheet ranges.
package sheets
