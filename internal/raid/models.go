package raid

// NoPoints marks a raid whose points have not been matched from the score log.
const NoPoints = -1

// Raid represents a single completed Chambers of Xeric run.
// Times are stored per room in seconds. TotalSeconds and the derived rooms
// (Pre-Olm, Between room time) are filled in by stats.Finalize; TotalPoints
// is attached later from the score log.
type Raid struct {
	KC           int            // Kill count at time of raid, higher is more recent
	Times        map[string]int // Room name -> seconds
	TotalSeconds int            // Total raid duration (derived)
	TotalPoints  int            // Points earned, NoPoints until matched
}

// New creates a raid with an empty times map and no points.
func New(kc int) Raid {
	return Raid{
		KC:          kc,
		Times:       make(map[string]int),
		TotalPoints: NoPoints,
	}
}

// HasPoints reports whether a score has been attached.
func (r Raid) HasPoints() bool {
	return r.TotalPoints > 0
}

// PPH returns points per hour, or 0 when either points or duration is missing.
func (r Raid) PPH() float64 {
	if r.TotalPoints <= 0 || r.TotalSeconds <= 0 {
		return 0
	}
	return float64(r.TotalPoints) / (float64(r.TotalSeconds) / 3600.0)
}

// DiscardReason explains why a sample was excluded from a room's averages.
type DiscardReason string

const (
	ReasonBelowGlobalMin DiscardReason = "<20s"
	ReasonBelowRoomMin   DiscardReason = "below min"
	ReasonAboveMax       DiscardReason = "above max"
)

// Sample is a kept (kc, seconds) pair for a room.
type Sample struct {
	KC      int
	Seconds int
}

// Discard is a sample that failed the plausibility filter.
type Discard struct {
	KC      int
	Room    string
	Seconds int
	Reason  DiscardReason
}

// PhaseStats holds aggregated statistics for a single room or phase.
type PhaseStats struct {
	Entries    []Sample  // All valid samples
	Discarded  []Discard // Outliers removed from analysis
	Avg        float64   // Average across valid samples, 0 when none
	Fastest    int       // Minimum valid sample, 0 when none
	ValidCount int
}

// StatsSet maps a phase name from DisplayOrder to its statistics.
type StatsSet map[string]*PhaseStats

// NewStatsSet returns a set with a zero PhaseStats for every display key.
func NewStatsSet() StatsSet {
	set := make(StatsSet, len(displayOrder))
	for _, k := range displayOrder {
		set[k] = &PhaseStats{}
	}
	return set
}

// Get returns the stats for a phase, or an empty value for unknown names.
func (s StatsSet) Get(room string) PhaseStats {
	if ps, ok := s[room]; ok && ps != nil {
		return *ps
	}
	return PhaseStats{}
}

// PrimaryRun is the primary-log side of the points join.
type PrimaryRun struct {
	KC            int
	RaidSeconds   int
	Floor1Seconds int
}

// ScoreRun is one solo, non-challenge entry from the score log.
type ScoreRun struct {
	RaidSeconds  int
	UpperSeconds int
	TotalPoints  int
}

// PointsSummary holds values prepared for the Total Points and PPH rows.
type PointsSummary struct {
	Best       int
	Average    int
	Recent     int
	RecentDiff int // Recent - Average
}

// RoomEfficiency is the estimated points-per-hour contribution of a prep room.
type RoomEfficiency struct {
	Room    string
	AvgPPH  int
	Raids   int
	Points  float64 // Apportioned points accumulated across raids
	Seconds float64 // Room seconds accumulated across raids
}

// RoomDistribution counts raids by number of prep rooms.
type RoomDistribution struct {
	Five  int
	Six   int
	Other int
}

// Total returns the number of raids counted.
func (d RoomDistribution) Total() int {
	return d.Five + d.Six + d.Other
}

// LayoutFilter selects raids by layout.
type LayoutFilter string

const (
	LayoutAll        LayoutFilter = "all"
	LayoutNormalOnly LayoutFilter = "normal" // Drop raids with every prep room present
	LayoutFullOnly   LayoutFilter = "full"   // Keep only raids with every prep room present
)

// Valid reports whether the filter is a known value.
func (f LayoutFilter) Valid() bool {
	switch f {
	case LayoutAll, LayoutNormalOnly, LayoutFullOnly:
		return true
	}
	return false
}
