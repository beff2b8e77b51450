// Package boat reads today's boat allocation from the weekly worksheet.
//
// Each weekly worksheet lays the days out side by side, three columns per day
// starting with Monday: paddler name, a spare column, and the boat. Rows with
// either cell blank are ignored.
package boat
