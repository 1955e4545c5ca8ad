package points

import (
	"github.com/samber/lo"

	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// DefaultTolerance is the largest difference in seconds still treated as the same raid.
const DefaultTolerance = 3

// Match pairs primary runs with score-log runs and returns points keyed by KC.
//
// Both inputs are ordered oldest to newest. The walk starts at the newest end
// of each list; when the raid time and the floor 1 / upper time both agree
// within tolerance the runs are matched and both cursors move back. Otherwise
// the score-log entry is assumed to be a run the primary log never recorded
// (challenge mode, team raids) and only the score-log cursor moves.
//
// The walk is greedy. If the primary log itself is missing a solo run, later
// matches can line up with the wrong score-log entries; this is not corrected.
func Match(primary []raid.PrimaryRun, scores []raid.ScoreRun, tolerance int) map[int]int {
	result := make(map[int]int)
	if tolerance < 0 {
		tolerance = DefaultTolerance
	}

	i := len(primary) - 1
	j := len(scores) - 1

	for i >= 0 && j >= 0 {
		p := primary[i]
		q := scores[j]

		raidMatch := abs(p.RaidSeconds-q.RaidSeconds) <= tolerance
		floorMatch := abs(p.Floor1Seconds-q.UpperSeconds) <= tolerance

		if raidMatch && floorMatch {
			result[p.KC] = q.TotalPoints
			i--
			j--
			continue
		}

		j--
	}

	return result
}

// PrimaryRuns builds the primary side of the join from parsed raids.
// Raids missing either the completion time or the floor 1 time are skipped.
func PrimaryRuns(raids []raid.Raid) []raid.PrimaryRun {
	return lo.FilterMap(raids, func(r raid.Raid, _ int) (raid.PrimaryRun, bool) {
		total := r.Times[raid.PhaseCompleted]
		floor1 := r.Times[raid.PhaseFloor1]
		if total <= 0 || floor1 <= 0 {
			return raid.PrimaryRun{}, false
		}
		return raid.PrimaryRun{KC: r.KC, RaidSeconds: total, Floor1Seconds: floor1}, true
	})
}

// Attach sets TotalPoints on every raid found in the points map.
// Returns the number of raids that received points.
func Attach(raids []raid.Raid, pointsByKC map[int]int) int {
	attached := 0
	for i := range raids {
		if pts, ok := pointsByKC[raids[i].KC]; ok && pts > 0 {
			raids[i].TotalPoints = pts
			attached++
		}
	}
	return attached
}

// KeepScored returns only the raids that have points attached.
func KeepScored(raids []raid.Raid) []raid.Raid {
	return lo.Filter(raids, func(r raid.Raid, _ int) bool {
		return r.HasPoints()
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
