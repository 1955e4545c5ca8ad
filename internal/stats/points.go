package stats

import "github.com/ramonehamilton/cox-analytics/internal/raid"

// PointsAggregate holds the score-derived values shown in the table.
type PointsAggregate struct {
	BestPPH    int
	AvgPPH     int
	RecentPPH  int
	BestPoints int
	AvgPoints  int
}

// ComputePointsStats summarises points and points per hour across raids.
// Raids without points are skipped; RecentPPH only looks at the last raid.
func ComputePointsStats(raids []raid.Raid) PointsAggregate {
	var out PointsAggregate

	sumPPH, sumPoints := 0.0, 0.0
	countPPH, countPoints := 0, 0

	for _, r := range raids {
		if r.TotalPoints > 0 {
			sumPoints += float64(r.TotalPoints)
			countPoints++
			out.BestPoints = max(out.BestPoints, r.TotalPoints)
		}

		if r.TotalPoints > 0 && r.TotalSeconds > 0 {
			pph := r.PPH()
			sumPPH += pph
			countPPH++
			out.BestPPH = max(out.BestPPH, int(pph))
		}
	}

	if countPoints > 0 {
		out.AvgPoints = int(sumPoints / float64(countPoints))
	}
	if countPPH > 0 {
		out.AvgPPH = int(sumPPH / float64(countPPH))
	}

	if len(raids) > 0 {
		out.RecentPPH = int(raids[len(raids)-1].PPH())
	}

	return out
}

// MakePointsSummary prepares a points row for display.
func MakePointsSummary(best, average, recent int) raid.PointsSummary {
	return raid.PointsSummary{
		Best:       best,
		Average:    average,
		Recent:     recent,
		RecentDiff: recent - average,
	}
}

// PointsSummaries returns the Total Points and PPH rows for raids.
func PointsSummaries(raids []raid.Raid) (points, pph raid.PointsSummary) {
	agg := ComputePointsStats(raids)

	recentPoints := 0
	if len(raids) > 0 && raids[len(raids)-1].HasPoints() {
		recentPoints = raids[len(raids)-1].TotalPoints
	}

	points = MakePointsSummary(agg.BestPoints, agg.AvgPoints, recentPoints)
	pph = MakePointsSummary(agg.BestPPH, agg.AvgPPH, agg.RecentPPH)
	return points, pph
}
