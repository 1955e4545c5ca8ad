package stats

import (
	"sort"

	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// ComputeRoomPPH estimates the points per hour each prep room contributes.
//
// Every raid with points and a duration hands each of its prep rooms a share
// of its points proportional to the room's share of the raid time. The room's
// rate is then its accumulated points over its accumulated hours, so long and
// short raids are weighted by time rather than averaged per raid.
func ComputeRoomPPH(raids []raid.Raid) []raid.RoomEfficiency {
	acc := make(map[string]*raid.RoomEfficiency)
	rooms := raid.PrepRooms()

	// Spread each raid's points over its prep rooms
	for _, r := range raids {
		if r.TotalPoints <= 0 || r.TotalSeconds <= 0 {
			continue
		}

		for _, room := range rooms {
			t, ok := r.Times[room]
			if !ok {
				continue
			}

			e, ok := acc[room]
			if !ok {
				e = &raid.RoomEfficiency{Room: room}
				acc[room] = e
			}

			share := float64(t) / float64(r.TotalSeconds)
			e.Raids++
			e.Points += float64(r.TotalPoints) * share
			e.Seconds += float64(t)
		}
	}

	// Convert accumulated points and seconds to a rate
	result := make([]raid.RoomEfficiency, 0, len(acc))
	for _, e := range acc {
		if e.Seconds <= 0 {
			continue
		}
		e.AvgPPH = int(e.Points / (e.Seconds / 3600.0))
		result = append(result, *e)
	}

	// Fastest earners first
	sort.Slice(result, func(i, j int) bool {
		if result[i].AvgPPH != result[j].AvgPPH {
			return result[i].AvgPPH > result[j].AvgPPH
		}
		return result[i].Room < result[j].Room
	})

	return result
}
