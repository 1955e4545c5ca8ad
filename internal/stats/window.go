package stats

import (
	"maps"

	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// LastNTimeAvg averages key over the last n raids by position.
// Raids missing the key inside the window are ignored, not replaced.
func LastNTimeAvg(raids []raid.Raid, key string, n int) float64 {
	if len(raids) == 0 || n <= 0 {
		return 0
	}

	start := max(0, len(raids)-n)
	sum := 0.0
	count := 0

	for _, r := range raids[start:] {
		if t, ok := r.Times[key]; ok && t > 0 {
			sum += float64(t)
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// LastNPPH averages points per hour over the last n raids by position,
// counting only raids that have both points and a duration.
func LastNPPH(raids []raid.Raid, n int) float64 {
	if n <= 0 {
		return 0
	}

	start := max(0, len(raids)-n)
	sum := 0.0
	count := 0

	for _, r := range raids[start:] {
		if r.TotalPoints > 0 && r.TotalSeconds > 0 {
			sum += r.PPH()
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// LastNPoints averages the points of the n most recent raids that have points.
// Unlike the time averages it keeps scanning back until n scored raids are found.
func LastNPoints(raids []raid.Raid, n int) float64 {
	sum := 0.0
	count := 0

	for i := len(raids) - 1; i >= 0 && count < n; i-- {
		if raids[i].TotalPoints > 0 {
			sum += float64(raids[i].TotalPoints)
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// LastNStats computes the Last N column for every display row.
func LastNStats(raids []raid.Raid, n int) map[string]float64 {
	result := make(map[string]float64)

	for _, key := range raid.DisplayOrder() {
		if raid.IsPointsRow(key) {
			continue
		}
		result[key] = LastNTimeAvg(raids, key, n)
	}

	result[raid.RowTotalPoints] = LastNPoints(raids, n)
	result[raid.RowPPH] = LastNPPH(raids, n)

	return result
}

// RecentTimes returns the room times of the most recent raid.
func RecentTimes(raids []raid.Raid) map[string]int {
	if len(raids) == 0 {
		return map[string]int{}
	}
	return maps.Clone(raids[len(raids)-1].Times)
}
