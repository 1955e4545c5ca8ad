package stats

import (
	"github.com/ramonehamilton/cox-analytics/internal/metrics"
	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// RoomSpread describes how consistent a prep room's kept times are.
type RoomSpread struct {
	Room   string
	Count  int
	Mean   float64
	Median float64
	P90    float64
	Min    int
	Max    int
}

// ComputeConsistency summarises the kept samples of each prep room that has
// any, in prep-room order. Discarded samples are not included.
func ComputeConsistency(set raid.StatsSet) []RoomSpread {
	var spreads []RoomSpread

	for _, room := range raid.PrepRooms() {
		st := set.Get(room)
		if st.ValidCount == 0 {
			continue
		}

		dist := metrics.NewDistribution(nil)
		for _, e := range st.Entries {
			dist.Record(e.Seconds)
		}

		spreads = append(spreads, RoomSpread{
			Room:   room,
			Count:  dist.Count(),
			Mean:   dist.Mean(),
			Median: dist.Median(),
			P90:    dist.Percentile(90),
			Min:    int(dist.Min()),
			Max:    int(dist.Max()),
		})
	}

	return spreads
}
