// Package week provides the calendar arithmetic used to locate worksheets in the
// club spreadsheet.
//
// Each training week lives on its own worksheet whose title is the Monday-Sunday
// range it covers, e.g. "Mar 11/3 - Mar 17/3". Monthly reports walk every week and
// every day of the previous calendar month. All functions take the reference date
// explicitly and never consult the process locale.
package week
