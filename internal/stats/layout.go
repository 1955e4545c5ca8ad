package stats

import (
	"github.com/samber/lo"

	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// CountPrepRooms returns how many prep rooms a raid recorded.
func CountPrepRooms(r raid.Raid) int {
	return countPrepRooms(r, raid.PrepRooms())
}

func countPrepRooms(r raid.Raid, rooms []string) int {
	return lo.CountBy(rooms, func(room string) bool {
		_, ok := r.Times[room]
		return ok
	})
}

// ComputeRoomDistribution counts raids with five, six or some other number of prep rooms.
func ComputeRoomDistribution(raids []raid.Raid) raid.RoomDistribution {
	var rd raid.RoomDistribution
	rooms := raid.PrepRooms()

	for _, r := range raids {
		switch countPrepRooms(r, rooms) {
		case 5:
			rd.Five++
		case 6:
			rd.Six++
		default:
			rd.Other++
		}
	}

	return rd
}

// FilterByLayout keeps the raids matching mode. Unknown modes keep everything.
func FilterByLayout(raids []raid.Raid, mode raid.LayoutFilter) []raid.Raid {
	rooms := raid.PrepRooms()
	full := len(rooms)

	switch mode {
	case raid.LayoutNormalOnly:
		return lo.Filter(raids, func(r raid.Raid, _ int) bool {
			return countPrepRooms(r, rooms) < full
		})
	case raid.LayoutFullOnly:
		return lo.Filter(raids, func(r raid.Raid, _ int) bool {
			return countPrepRooms(r, rooms) >= full
		})
	default:
		return raids
	}
}

// KeepMostRecent trims raids to the last maxCount entries.
// A negative maxCount keeps everything.
func KeepMostRecent(raids []raid.Raid, maxCount int) []raid.Raid {
	if maxCount < 0 || len(raids) <= maxCount {
		return raids
	}
	return raids[len(raids)-maxCount:]
}

