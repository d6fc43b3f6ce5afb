package orders

import (
	"sort"
	"strings"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

// TopItemsLimit caps the most-ordered items list
const TopItemsLimit = 5

// Count is one bucket of a breakdown
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarizes an order table
type Stats struct {
	Total     int     `json:"total"`
	BySection []Count `json:"bySection"`
	ByStatus  []Count `json:"byStatus"`
	TopItems  []Count `json:"topItems"`
}

// ComputeStats counts orders per section and status and ranks items
func ComputeStats(t *sheets.Table) Stats {
	top := CountBy(t, models.ColItem, "")
	if len(top) > TopItemsLimit {
		top = top[:TopItemsLimit]
	}
	return Stats{
		Total:     t.Len(),
		BySection: CountBy(t, models.ColSection, ""),
		ByStatus:  CountBy(t, models.ColStatus, ""),
		TopItems:  top,
	}
}

// CountBy buckets rows by the trimmed value of col, largest bucket first.
// Empty values land in the blank bucket, or are dropped when blank is "".
// A missing column yields no buckets.
func CountBy(t *sheets.Table, col, blank string) []Count {
	counts := []Count{}
	if !t.Has(col) {
		return counts
	}
	idx := map[string]int{}
	for i := range t.Rows {
		v := strings.TrimSpace(t.Value(i, col))
		if v == "" {
			if blank == "" {
				continue
			}
			v = blank
		}
		if j, ok := idx[v]; ok {
			counts[j].Count++
			continue
		}
		idx[v] = len(counts)
		counts = append(counts, Count{Name: v, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}
