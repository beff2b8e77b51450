package week

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestWeekday(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"Monday", date(2024, time.March, 11), 0},
		{"Friday", date(2024, time.March, 15), 4},
		{"Sunday", date(2024, time.March, 17), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Weekday(tt.t); got != tt.want {
				t.Errorf("Weekday(%s) = %d, want %d", tt.t.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "mid-week Friday",
			t:    date(2024, time.March, 15),
			want: "Mar 11/3 - Mar 17/3",
		},
		{
			name: "week spanning two months",
			t:    date(2024, time.February, 29),
			want: "Feb 26/2 - Mar 3/3",
		},
		{
			name: "week spanning new year",
			t:    date(2025, time.January, 1),
			want: "Dec 30/12 - Jan 5/1",
		},
		{
			name: "Monday maps to itself",
			t:    date(2024, time.January, 1),
			want: "Jan 1/1 - Jan 7/1",
		},
		{
			name: "Sunday belongs to the preceding Monday",
			t:    date(2023, time.December, 31),
			want: "Dec 25/12 - Dec 31/12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.t); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabel_SameForWholeWeek(t *testing.T) {
	starts := []time.Time{
		date(2024, time.March, 11),
		date(2024, time.February, 26),
		date(2024, time.December, 30),
	}

	for _, start := range starts {
		want := Label(start)
		for i := 1; i < 7; i++ {
			day := start.AddDate(0, 0, i)
			if got := Label(day); got != want {
				t.Errorf("Label(%s) = %q, want %q", day.Format("2006-01-02"), got, want)
			}
		}
		if next := Label(start.AddDate(0, 0, 7)); next == want {
			t.Errorf("Label of the following Monday should differ, got %q", next)
		}
	}
}

func TestLabel_IgnoresTimeOfDayAndZone(t *testing.T) {
	sgt := time.FixedZone("SGT", 8*60*60)
	late := time.Date(2024, time.March, 17, 23, 59, 59, 0, sgt)
	if got, want := Label(late), "Mar 11/3 - Mar 17/3"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestDaysInPreviousMonth(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		{
			name:      "leap February",
			today:     date(2024, time.March, 5),
			wantLen:   29,
			wantFirst: "1/2/2024",
			wantLast:  "29/2/2024",
		},
		{
			name:      "year rollover",
			today:     date(2024, time.January, 10),
			wantLen:   31,
			wantFirst: "1/12/2023",
			wantLast:  "31/12/2023",
		},
		{
			name:      "common February",
			today:     date(2023, time.March, 1),
			wantLen:   28,
			wantFirst: "1/2/2023",
			wantLast:  "28/2/2023",
		},
		{
			name:      "thirty day month",
			today:     date(2024, time.May, 31),
			wantLen:   30,
			wantFirst: "1/4/2024",
			wantLast:  "30/4/2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := DaysInPreviousMonth(tt.today)
			if len(days) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(days), tt.wantLen)
			}
			if days[0] != tt.wantFirst {
				t.Errorf("first = %q, want %q", days[0], tt.wantFirst)
			}
			if days[len(days)-1] != tt.wantLast {
				t.Errorf("last = %q, want %q", days[len(days)-1], tt.wantLast)
			}
		})
	}
}

func TestDaysInPreviousMonth_December(t *testing.T) {
	for _, d := range DaysInPreviousMonth(date(2024, time.January, 10)) {
		if !strings.HasSuffix(d, "/12/2023") {
			t.Errorf("day %q is not in December 2023", d)
		}
	}
}

func TestWeeksInPreviousMonth(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  []string
	}{
		{
			name:  "February 2024",
			today: date(2024, time.March, 5),
			want: []string{
				"Jan 29/1 - Feb 4/2",
				"Feb 5/2 - Feb 11/2",
				"Feb 12/2 - Feb 18/2",
				"Feb 19/2 - Feb 25/2",
				"Feb 26/2 - Mar 3/3",
			},
		},
		{
			name:  "December of the previous year",
			today: date(2024, time.January, 10),
			want: []string{
				"Nov 27/11 - Dec 3/12",
				"Dec 4/12 - Dec 10/12",
				"Dec 11/12 - Dec 17/12",
				"Dec 18/12 - Dec 24/12",
				"Dec 25/12 - Dec 31/12",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeeksInPreviousMonth(tt.today)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("WeeksInPreviousMonth() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreviousMonthName(t *testing.T) {
	if got := PreviousMonthName(date(2024, time.January, 10)); got != "December" {
		t.Errorf("PreviousMonthName() = %q, want December", got)
	}
	if got := PreviousMonthName(date(2024, time.March, 31)); got != "February" {
		t.Errorf("PreviousMonthName() = %q, want February", got)
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("5/3/2024")
	if err != nil {
		t.Fatalf("ParseDay() error = %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 5 {
		t.Errorf("ParseDay() = %v, want 2024-03-05", got)
	}
	if Day(got) != "5/3/2024" {
		t.Errorf("Day(ParseDay()) = %q, want 5/3/2024", Day(got))
	}

	if _, err := ParseDay("Name"); err == nil {
		t.Error("ParseDay(\"Name\") expected error")
	}
}

func TestFixedClock(t *testing.T) {
	want := date(2024, time.March, 15)
	if got := Fixed(want)(); !got.Equal(want) {
		t.Errorf("Fixed()() = %v, want %v", got, want)
	}
}
