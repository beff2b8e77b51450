package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nuscanoeing/canoebot/internal/boat"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortBySheet SortOrder = "sheet"
	SortByName  SortOrder = "name"
	SortByBoat  SortOrder = "boat"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case "":
		return SortBySheet, nil
	case SortBySheet, SortByName, SortByBoat:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'sheet', 'name' or 'boat')", s)
}

// sortAllocations sorts rows in place. SortBySheet keeps the worksheet order.
func sortAllocations(rows []boat.Allocation, order SortOrder) {
	switch order {
	case SortByName:
		sort.SliceStable(rows, func(i, j int) bool {
			return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
		})
	case SortByBoat:
		sort.SliceStable(rows, func(i, j int) bool {
			bi, bj := strings.ToLower(rows[i].Boat), strings.ToLower(rows[j].Boat)
			if bi != bj {
				return bi < bj
			}
			// same boat, order crews by name
			return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
		})
	}
}
