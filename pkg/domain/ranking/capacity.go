package ranking

import (
	"fmt"
	"sort"
)

// DefaultQuarterCapacity is the assumed team velocity in story points per
// quarter when the workspace config does not override it.
const DefaultQuarterCapacity = 100.0

// CapacityStatus classifies a quarter's load against team capacity.
type CapacityStatus string

const (
	CapacityOK   CapacityStatus = "ok"
	CapacityNear CapacityStatus = "near"
	CapacityOver CapacityStatus = "over"
)

// QuarterLoad sums the scheduled effort of one quarter.
type QuarterLoad struct {
	Quarter     string         `json:"quarter"`
	Features    []string       `json:"features"`
	Effort      float64        `json:"effort"`
	Utilization float64        `json:"utilization"`
	Status      CapacityStatus `json:"status"`
}

// AnalyzeCapacity groups records by assigned quarter and flags quarters over
// 80% utilization as near capacity and over 100% as overcommitted. Quarters
// come back in chronological order.
func AnalyzeCapacity(records []*ScoreRecord, capacity float64) []QuarterLoad {
	if capacity <= 0 {
		capacity = DefaultQuarterCapacity
	}

	byQuarter := make(map[string]*QuarterLoad)
	for _, r := range records {
		if r.Quarter == "" {
			continue
		}
		load, ok := byQuarter[r.Quarter]
		if !ok {
			load = &QuarterLoad{Quarter: r.Quarter}
			byQuarter[r.Quarter] = load
		}
		load.Features = append(load.Features, r.Feature)
		load.Effort += r.Effort
	}

	out := make([]QuarterLoad, 0, len(byQuarter))
	for _, load := range byQuarter {
		load.Utilization = load.Effort / capacity * 100
		switch {
		case load.Utilization > 100:
			load.Status = CapacityOver
		case load.Utilization > 80:
			load.Status = CapacityNear
		default:
			load.Status = CapacityOK
		}
		out = append(out, *load)
	}

	sort.Slice(out, func(i, j int) bool {
		return quarterKey(out[i].Quarter) < quarterKey(out[j].Quarter)
	})
	return out
}

// quarterKey turns "Q3 2026" into a sortable integer; malformed labels sort
// last.
func quarterKey(label string) int {
	var quarter, year int
	if _, err := fmt.Sscanf(label, "Q%d %d", &quarter, &year); err != nil {
		return 1 << 30
	}
	return year*4 + quarter
}
