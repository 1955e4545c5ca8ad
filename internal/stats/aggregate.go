package stats

import (
	"math"
	"sort"
	"strconv"

	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// Classify decides whether a sample for room is plausible.
// Rules are checked in order and the first failure wins:
// global minimum, room minimum, room maximum.
func Classify(room string, seconds int) (raid.DiscardReason, bool) {
	b := raid.BoundsFor(room)

	switch {
	case seconds < raid.GlobalMinSeconds:
		return raid.ReasonBelowGlobalMin, false
	case b.HasMin() && seconds < b.MinSeconds:
		return raid.ReasonBelowRoomMin, false
	case b.HasMax() && seconds > b.MaxSeconds:
		return raid.ReasonAboveMax, false
	}
	return "", true
}

// ProcessRoom partitions every sample of room in raids[start:] into kept and
// discarded, and reduces the kept ones to average, fastest and count.
func ProcessRoom(raids []raid.Raid, room string, start int) raid.PhaseStats {
	var ps raid.PhaseStats
	if start < 0 {
		start = 0
	}

	sum := 0.0
	best := math.MaxInt

	// Collect kept and discarded samples
	for i := start; i < len(raids); i++ {
		r := raids[i]
		t, ok := r.Times[room]
		if !ok {
			continue
		}

		if reason, valid := Classify(room, t); !valid {
			ps.Discarded = append(ps.Discarded, raid.Discard{
				KC:      r.KC,
				Room:    room,
				Seconds: t,
				Reason:  reason,
			})
			continue
		}

		ps.Entries = append(ps.Entries, raid.Sample{KC: r.KC, Seconds: t})
		sum += float64(t)
		best = min(best, t)
		ps.ValidCount++
	}

	// Reduce to average and fastest
	if ps.ValidCount > 0 {
		ps.Avg = sum / float64(ps.ValidCount)
		ps.Fastest = best
	}

	return ps
}

// Aggregate builds statistics for every display key over raids[start:].
// Keys that never appear keep a zero PhaseStats.
func Aggregate(raids []raid.Raid, start int) raid.StatsSet {
	set := raid.NewStatsSet()
	for _, key := range raid.DisplayOrder() {
		ps := ProcessRoom(raids, key, start)
		set[key] = &ps
	}
	return set
}

// CollectDiscarded gathers all outliers in the set, most recent raid first.
func CollectDiscarded(set raid.StatsSet) []raid.Discard {
	var discarded []raid.Discard
	for _, key := range raid.DisplayOrder() {
		discarded = append(discarded, set.Get(key).Discarded...)
	}

	sort.Slice(discarded, func(i, j int) bool {
		a, b := discarded[i], discarded[j]
		if a.KC != b.KC {
			return a.KC > b.KC
		}
		if a.Room != b.Room {
			return a.Room > b.Room
		}
		if a.Seconds != b.Seconds {
			return a.Seconds > b.Seconds
		}
		return a.Reason > b.Reason
	})

	return discarded
}

// RoomCount pairs a prep room with its aggregated statistics.
type RoomCount struct {
	Room  string
	Stats raid.PhaseStats
}

// MostCommonRooms returns prep rooms with at least one valid sample,
// ordered by valid count descending and then by name.
func MostCommonRooms(set raid.StatsSet) []RoomCount {
	var common []RoomCount
	for _, room := range raid.PrepRooms() {
		st := set.Get(room)
		if st.ValidCount > 0 {
			common = append(common, RoomCount{Room: room, Stats: st})
		}
	}

	sort.Slice(common, func(i, j int) bool {
		if common[i].Stats.ValidCount != common[j].Stats.ValidCount {
			return common[i].Stats.ValidCount > common[j].Stats.ValidCount
		}
		return common[i].Room < common[j].Room
	})

	return common
}

// CountPad returns the digit width of the largest prep-room valid count,
// or 1 when no prep room has a valid sample.
func CountPad(set raid.StatsSet) int {
	maxCount := 0
	for _, room := range raid.PrepRooms() {
		maxCount = max(maxCount, set.Get(room).ValidCount)
	}
	if maxCount == 0 {
		return 1
	}
	return len(strconv.Itoa(maxCount))
}
