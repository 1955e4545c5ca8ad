package report

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ramonehamilton/cox-analytics/internal/config"
	"github.com/ramonehamilton/cox-analytics/internal/points"
	"github.com/ramonehamilton/cox-analytics/internal/raid"
	"github.com/ramonehamilton/cox-analytics/internal/raidlog"
	"github.com/ramonehamilton/cox-analytics/internal/stats"
)

// ErrNoRaidsToAnalyze is returned when filtering leaves no primary raids.
var ErrNoRaidsToAnalyze = errors.New("no raids to analyze")

// Options selects the inputs and shaping of a report.
type Options struct {
	PrimaryFile   string
	SecondaryFile string
	PointsFile    string

	PastRaids     int // -1 keeps every raid
	SessionRaids  int
	Layout        raid.LayoutFilter
	RequirePoints bool
	Tolerance     int
}

// OptionsFromConfig copies report settings out of the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PrimaryFile:   cfg.Files.Primary,
		SecondaryFile: cfg.Files.Secondary,
		PointsFile:    cfg.Files.Points,
		PastRaids:     cfg.Report.PastRaids,
		SessionRaids:  cfg.Report.SessionRaids,
		Layout:        cfg.Layout(),
		RequirePoints: cfg.Report.RequirePoints,
		Tolerance:     cfg.Points.ToleranceSeconds,
	}
}

// Report is everything the console tables need.
type Report struct {
	Options Options

	PrimaryUser   string
	SecondaryUser string
	HasSecondary  bool
	HasScoreLog   bool
	MatchedPoints int

	Primary   []raid.Raid
	Secondary []raid.Raid

	PrimaryStats   raid.StatsSet
	SecondaryStats raid.StatsSet

	RecentTimes map[string]int
	LastN       map[string]float64
	Points      raid.PointsSummary
	PPH         raid.PointsSummary

	PrimaryDiscarded   []raid.Discard
	SecondaryDiscarded []raid.Discard

	Common       []stats.RoomCount
	CountPad     int
	Distribution raid.RoomDistribution
	Efficiency   []raid.RoomEfficiency
	Consistency  []stats.RoomSpread
}

// ShowLayoutTables reports whether the efficiency and prep-room tables apply.
func (r *Report) ShowLayoutTables() bool {
	return r.Options.Layout != raid.LayoutFullOnly
}

// Service builds reports from raid logs on disk.
type Service struct {
	opts   Options
	loader *points.Loader
	logger zerolog.Logger
}

// NewService creates a report service.
func NewService(opts Options, logger zerolog.Logger) *Service {
	return &Service{
		opts:   opts,
		loader: points.NewLoader(logger),
		logger: logger.With().Str("component", "report").Logger(),
	}
}

// Build reads the inputs and computes every statistic.
//
// A missing or empty primary log is fatal. A missing secondary log drops the
// comparison column and a missing score log leaves every raid without points.
// Points are attached and filtered before past-raids trimming.
func (s *Service) Build() (*Report, error) {
	opts := s.opts

	// Load raid logs
	primary, err := raidlog.ReadRaids(opts.PrimaryFile, s.logger)
	if err != nil {
		return nil, fmt.Errorf("read primary file: %w", err)
	}

	rep := &Report{
		Options:       opts,
		PrimaryUser:   raidlog.Username(opts.PrimaryFile),
		SecondaryUser: raidlog.Username(opts.SecondaryFile),
	}

	secondary := s.readSecondary()
	rep.HasSecondary = len(secondary) > 0
	secondary = stats.KeepMostRecent(secondary, opts.PastRaids)

	// Attach points, then trim to the requested window
	primary = s.attachPoints(rep, primary)
	primary = stats.KeepMostRecent(primary, opts.PastRaids)
	if len(primary) == 0 {
		return nil, ErrNoRaidsToAnalyze
	}

	// Derive totals before layout filtering needs them
	stats.Finalize(primary)
	stats.Finalize(secondary)

	primary = stats.FilterByLayout(primary, opts.Layout)
	secondary = stats.FilterByLayout(secondary, opts.Layout)
	if len(primary) == 0 {
		return nil, ErrNoRaidsToAnalyze
	}

	rep.Primary = primary
	rep.Secondary = secondary
	rep.compute()

	s.logger.Debug().
		Int("primary", len(primary)).
		Int("secondary", len(secondary)).
		Int("discarded", len(rep.PrimaryDiscarded)).
		Msg("Report built")

	return rep, nil
}

// readSecondary loads the comparison log. Failures degrade to no comparison.
func (s *Service) readSecondary() []raid.Raid {
	if s.opts.SecondaryFile == "" {
		return nil
	}

	exists, err := raidlog.LogExists(s.opts.SecondaryFile)
	if err != nil || !exists {
		s.logger.Warn().Err(err).Str("path", s.opts.SecondaryFile).Msg("Comparison file not found")
		return nil
	}

	raids, err := raidlog.ReadRaids(s.opts.SecondaryFile, s.logger)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.opts.SecondaryFile).Msg("Comparison disabled")
		return nil
	}
	return raids
}

// attachPoints matches the score log against primary and returns the raids
// that stay in the report.
func (s *Service) attachPoints(rep *Report, primary []raid.Raid) []raid.Raid {
	runs, err := s.loader.LoadFile(s.opts.PointsFile)
	if err != nil {
		if errors.Is(err, points.ErrNoScoreLog) && s.opts.PointsFile == "" {
			s.logger.Debug().Msg("No score log configured")
		} else {
			s.logger.Warn().Err(err).Msg("Points unavailable")
		}
		return primary
	}

	rep.HasScoreLog = true
	matches := points.Match(points.PrimaryRuns(primary), runs, s.opts.Tolerance)
	rep.MatchedPoints = points.Attach(primary, matches)

	s.logger.Debug().
		Int("score_runs", len(runs)).
		Int("matched", rep.MatchedPoints).
		Msg("Points attached")

	if s.opts.RequirePoints {
		return points.KeepScored(primary)
	}
	return primary
}

func (rep *Report) compute() {
	rep.Points, rep.PPH = stats.PointsSummaries(rep.Primary)

	rep.PrimaryStats = stats.Aggregate(rep.Primary, 0)
	rep.PrimaryDiscarded = stats.CollectDiscarded(rep.PrimaryStats)

	if rep.HasSecondary {
		rep.SecondaryStats = stats.Aggregate(rep.Secondary, 0)
		rep.SecondaryDiscarded = stats.CollectDiscarded(rep.SecondaryStats)
	}

	rep.RecentTimes = stats.RecentTimes(rep.Primary)
	rep.LastN = stats.LastNStats(rep.Primary, rep.Options.SessionRaids)

	rep.Common = stats.MostCommonRooms(rep.PrimaryStats)
	rep.CountPad = stats.CountPad(rep.PrimaryStats)
	rep.Distribution = stats.ComputeRoomDistribution(rep.Primary)
	rep.Efficiency = stats.ComputeRoomPPH(rep.Primary)
	rep.Consistency = stats.ComputeConsistency(rep.PrimaryStats)
}
