package raid

import "slices"

// Room and phase names as written by the raid log.
const (
	RoomTekton     = "Tekton"
	RoomCrabs      = "Crabs"
	RoomIceDemon   = "Ice demon"
	RoomShamans    = "Shamans"
	RoomVanguards  = "Vanguards"
	RoomThieving   = "Thieving"
	RoomVespula    = "Vespula"
	RoomTightrope  = "Tightrope"
	RoomGuardians  = "Guardians"
	RoomVasa       = "Vasa"
	RoomMystics    = "Mystics"
	RoomMuttadiles = "Muttadiles"

	PhasePreOlm      = "Pre-Olm"
	PhaseOlm         = "Olm"
	PhaseCompleted   = "Raid Completed"
	PhaseBetweenRoom = "Between room time"
	PhaseFloor1      = "Floor 1"

	RowTotalPoints = "Total Points"
	RowPPH         = "PPH"
)

// GlobalMinSeconds is the floor below which any sample is discarded.
const GlobalMinSeconds = 20

const (
	prepRoomMaxSeconds    = 240
	betweenRoomMaxSeconds = 600
)

var prepRooms = []string{
	RoomTekton, RoomCrabs, RoomIceDemon, RoomShamans, RoomVanguards, RoomThieving,
	RoomVespula, RoomTightrope, RoomGuardians, RoomVasa, RoomMystics, RoomMuttadiles,
}

var displayOrder = []string{
	RoomTekton, RoomCrabs, RoomIceDemon, RoomShamans, RoomVanguards, RoomThieving,
	RoomVespula, RoomTightrope, RoomGuardians, RoomVasa, RoomMystics, RoomMuttadiles,
	PhasePreOlm,
	"Olm mage hand phase 1", "Olm phase 1", "Olm mage hand phase 2",
	"Olm phase 2", "Olm phase 3", "Olm head",
	PhaseOlm,
	PhaseCompleted,
	PhaseBetweenRoom,
	RowTotalPoints,
	RowPPH,
}

var roomMinSeconds = map[string]int{
	RoomTekton:       30,
	RoomCrabs:        45,
	RoomIceDemon:     90,
	RoomShamans:      27,
	RoomVanguards:    60,
	RoomThieving:     45,
	RoomVespula:      15,
	RoomTightrope:    25,
	RoomGuardians:    35,
	RoomVasa:         30,
	RoomMystics:      30,
	RoomMuttadiles:   45,
	PhaseBetweenRoom: 20,
}

// PrepRooms returns the prep rooms in their fixed order.
func PrepRooms() []string {
	return slices.Clone(prepRooms)
}

// DisplayOrder returns every phase key in table order.
func DisplayOrder() []string {
	return slices.Clone(displayOrder)
}

// IsPrepRoom reports whether room is one of the prep rooms.
func IsPrepRoom(room string) bool {
	return slices.Contains(prepRooms, room)
}

// IsPointsRow reports whether key is a score-derived row rather than a time.
func IsPointsRow(key string) bool {
	return key == RowTotalPoints || key == RowPPH
}

// Bounds holds the plausibility limits for a room. Zero means unset.
type Bounds struct {
	MinSeconds int
	MaxSeconds int
}

// HasMin reports whether a room-specific minimum is configured.
func (b Bounds) HasMin() bool { return b.MinSeconds > 0 }

// HasMax reports whether a maximum is configured.
func (b Bounds) HasMax() bool { return b.MaxSeconds > 0 }

// BoundsFor returns the plausibility bounds for a room.
// Prep rooms share one cap; Between room time has its own.
func BoundsFor(room string) Bounds {
	b := Bounds{MinSeconds: roomMinSeconds[room]}
	switch {
	case room == PhaseBetweenRoom:
		b.MaxSeconds = betweenRoomMaxSeconds
	case IsPrepRoom(room):
		b.MaxSeconds = prepRoomMaxSeconds
	}
	return b
}
