package stats

import "github.com/ramonehamilton/cox-analytics/internal/raid"

// Finalize fills in derived times for every raid in place.
// Running it twice recomputes the same values.
func Finalize(raids []raid.Raid) {
	rooms := raid.PrepRooms()
	for i := range raids {
		finalizeRaid(&raids[i], rooms)
	}
}

// FinalizeRaid computes TotalSeconds, Pre-Olm and Between room time for one raid.
// Between room time is only inserted when the completion time, the prep total
// and Olm are all known, so partial raids never produce a bogus residual.
func FinalizeRaid(r *raid.Raid) {
	finalizeRaid(r, raid.PrepRooms())
}

func finalizeRaid(r *raid.Raid, rooms []string) {
	if r.Times == nil {
		r.Times = make(map[string]int)
	}

	// Sum recorded prep rooms
	prep := 0
	for _, room := range rooms {
		if t, ok := r.Times[room]; ok {
			prep += t
		}
	}

	total := r.Times[raid.PhaseCompleted]
	olm := r.Times[raid.PhaseOlm]

	r.TotalSeconds = total

	if prep > 0 {
		r.Times[raid.PhasePreOlm] = prep
	}

	// Whatever is left is time spent between rooms
	if total > 0 && prep > 0 && olm > 0 {
		r.Times[raid.PhaseBetweenRoom] = total - prep - olm
	}
}
