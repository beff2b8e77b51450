package attendance

import (
	"sort"
	"strings"
	"time"

	"github.com/nuscanoeing/canoebot/internal/week"
)

const (
	// MorningCells and AfternoonCells are the two session blocks of a weekly
	// worksheet.
	MorningCells   = "A12:U50"
	AfternoonCells = "A55:U92"

	// NicknameSheet maps nicknames (column A) to full names (column B).
	NicknameSheet = "Nicknames"
	nicknameCells = "A:B"

	nameMarker   = "Name"
	nameHeader   = "Name"
	present      = "1"
	absent       = "0"
	fileSuffix   = " Training Attendance"
	reportTarget = "Sheet1"
)

// Weekly maps a session date (D/M/YYYY) to the nicknames recorded for it.
type Weekly map[string][]string

// Nickname is one row of the Nicknames worksheet.
type Nickname struct {
	Nickname string
	FullName string
}

// Matrix is the report laid out as rows: a header row ("Name" followed by the
// dates) and one row per member with "1" or "0" per date.
type Matrix [][]string

// ParseWeek extracts the sessions of one weekly worksheet. Column i of the
// afternoon block is appended to column i of the morning block. Only columns
// containing a "Name" marker are sessions; within them blank cells and the
// marker are dropped, the first remaining cell is the date and the rest are
// nicknames.
func ParseWeek(morning, afternoon [][]string) Weekly {
	columns := make([][]string, 0, len(morning))
	for _, col := range morning {
		columns = append(columns, append([]string(nil), col...))
	}
	for i, col := range afternoon {
		if i < len(columns) {
			columns[i] = append(columns[i], col...)
		} else {
			columns = append(columns, append([]string(nil), col...))
		}
	}

	sessions := make(Weekly)
	for _, col := range columns {
		if !hasMarker(col) {
			continue
		}
		var cells []string
		for _, cell := range col {
			cell = strings.TrimSpace(cell)
			if cell == "" || cell == nameMarker {
				continue
			}
			cells = append(cells, cell)
		}
		if len(cells) == 0 {
			continue
		}
		date := cells[0]
		names := []string{}
		for _, nick := range cells[1:] {
			if nick != date {
				names = append(names, nick)
			}
		}
		sessions[date] = names
	}
	return sessions
}

func hasMarker(col []string) bool {
	for _, cell := range col {
		if strings.TrimSpace(cell) == nameMarker {
			return true
		}
	}
	return false
}

// Merge copies every session of src into dst, replacing dates already present.
func Merge(dst, src Weekly) {
	for date, names := range src {
		dst[date] = names
	}
}

// FilterToMonth keeps only the sessions dated in the month before today's.
func FilterToMonth(raw Weekly, today time.Time) Weekly {
	filtered := make(Weekly)
	for _, day := range week.DaysInPreviousMonth(today) {
		if names, ok := raw[day]; ok {
			filtered[day] = names
		}
	}
	return filtered
}

// ParseNicknames reads the Nicknames worksheet, given column by column. The
// header row is skipped, blank nicknames are ignored and a repeated nickname
// keeps its first position with the later full name.
func ParseNicknames(columns [][]string) []Nickname {
	if len(columns) == 0 {
		return nil
	}
	nicks := columns[0]
	var full []string
	if len(columns) > 1 {
		full = columns[1]
	}

	var out []Nickname
	index := make(map[string]int)
	for i := 1; i < len(nicks); i++ {
		nick := strings.TrimSpace(nicks[i])
		if nick == "" {
			continue
		}
		name := ""
		if i < len(full) {
			name = strings.TrimSpace(full[i])
		}
		if j, ok := index[nick]; ok {
			out[j].FullName = name
			continue
		}
		index[nick] = len(out)
		out = append(out, Nickname{Nickname: nick, FullName: name})
	}
	return out
}

// SortedDates returns the session dates in calendar order. Keys that are not
// D/M/YYYY dates sort last, alphabetically.
func SortedDates(sessions Weekly) []string {
	type keyed struct {
		key string
		at  time.Time
		ok  bool
	}
	keys := make([]keyed, 0, len(sessions))
	for date := range sessions {
		t, err := week.ParseDay(date)
		keys = append(keys, keyed{key: date, at: t, ok: err == nil})
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok && !a.at.Equal(b.at) {
			return a.at.Before(b.at)
		}
		return a.key < b.key
	})

	dates := make([]string, len(keys))
	for i, k := range keys {
		dates[i] = k.key
	}
	return dates
}

// BuildMatrix joins the month's sessions with the nickname table.
func BuildMatrix(nicknames []Nickname, monthly Weekly) Matrix {
	dates := SortedDates(monthly)

	attended := make(map[string]map[string]bool, len(dates))
	for _, date := range dates {
		set := make(map[string]bool)
		for _, nick := range monthly[date] {
			set[strings.TrimSpace(nick)] = true
		}
		attended[date] = set
	}

	header := append([]string{nameHeader}, dates...)
	matrix := Matrix{header}
	for _, n := range nicknames {
		row := make([]string, 0, len(dates)+1)
		row = append(row, n.FullName)
		for _, date := range dates {
			if attended[date][n.Nickname] {
				row = append(row, present)
			} else {
				row = append(row, absent)
			}
		}
		matrix = append(matrix, row)
	}
	return matrix
}

// FileName is the title of the report published for the month before today's.
func FileName(today time.Time) string {
	return week.PreviousMonthName(today) + fileSuffix
}
