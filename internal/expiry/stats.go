package expiry

import (
	"sort"
	"time"

	"hr-system/internal/entities"
)

// StatusCounts aggregates classification results for one document type.
type StatusCounts struct {
	Valid    int `json:"valid"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
	None     int `json:"none"`
}

// Counts classifies every document of every employee against the reference
// date. Drives the dashboard counters.
func Counts(employees []entities.Employee, ref time.Time) map[entities.DocumentType]StatusCounts {
	out := make(map[entities.DocumentType]StatusCounts, len(entities.DocumentTypes))
	for _, doc := range entities.DocumentTypes {
		var c StatusCounts
		for i := range employees {
			switch Classify(employees[i].ExpiryOf(doc), ref) {
			case StatusValid:
				c.Valid++
			case StatusExpiring:
				c.Expiring++
			case StatusExpired:
				c.Expired++
			default:
				c.None++
			}
		}
		out[doc] = c
	}
	return out
}

// GroupCount is one bucket of a top-N grouping.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopGroups buckets employees by the label function and returns the n largest
// groups. Empty labels are skipped. Equal counts keep alphabetical order so
// the result is deterministic.
func TopGroups(employees []entities.Employee, n int, label func(*entities.Employee) string) []GroupCount {
	counts := make(map[string]int)
	for i := range employees {
		if l := label(&employees[i]); l != "" {
			counts[l]++
		}
	}

	groups := make([]GroupCount, 0, len(counts))
	for l, c := range counts {
		groups = append(groups, GroupCount{Label: l, Count: c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Label < groups[j].Label
	})

	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
