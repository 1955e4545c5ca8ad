package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/cox-analytics/internal/config"
	"github.com/ramonehamilton/cox-analytics/internal/raid"
	"github.com/ramonehamilton/cox-analytics/internal/raidlog"
)

const primaryTimes = `CoX KC: 100
Tekton: 1:40
Vasa: 1:00
Floor 1: 6:00
Olm: 4:00
Raid Completed: 11:40 | Team Size: 1
---
CoX KC: 101
Tekton: 1:50
Crabs: 0:10
Floor 1: 6:10
Olm: 3:50
Raid Completed: 10:50 | Team Size: 1
---
CoX KC: 102
Tekton: 2:00
Floor 1: 6:20
Olm: 3:40
Raid Completed: 10:40 | Team Size: 1
---
`

const secondaryTimes = `CoX KC: 50
Tekton: 1:30
Raid Completed: 10:00 | Team Size: 1
---
`

// The extra solo entry between KC 100 and KC 101 has no primary counterpart.
const scoreLog = `{"challengeMode":false,"teamSize":1,"raidTime":701,"upperTime":361,"totalPoints":30000}
{"challengeMode":false,"teamSize":1,"raidTime":900,"upperTime":500,"totalPoints":99999}
{"challengeMode":true,"teamSize":1,"raidTime":651,"upperTime":370,"totalPoints":50000}
{"challengeMode":false,"teamSize":1,"raidTime":650,"upperTime":370,"totalPoints":31000}
{"challengeMode":false,"teamSize":1,"raidTime":640,"upperTime":380,"totalPoints":36000}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()

	opts := OptionsFromConfig(config.DefaultConfig())
	opts.PrimaryFile = writeFile(t, dir, "Disco_Turtle_CoxTimes.txt", primaryTimes)
	opts.SecondaryFile = writeFile(t, dir, "Kgod_CoxTimes.txt", secondaryTimes)
	opts.PointsFile = writeFile(t, dir, "raid_tracker_data.log", scoreLog)
	opts.SessionRaids = 2
	return opts
}

func TestBuild(t *testing.T) {
	opts := baseOptions(t)

	rep, err := NewService(opts, zerolog.Nop()).Build()
	require.NoError(t, err)

	assert.Equal(t, "Disco Turtle", rep.PrimaryUser)
	assert.Equal(t, "Kgod", rep.SecondaryUser)
	assert.True(t, rep.HasSecondary)
	assert.True(t, rep.HasScoreLog)
	assert.Equal(t, 3, rep.MatchedPoints)
	require.Len(t, rep.Primary, 3)
	require.Len(t, rep.Secondary, 1)

	// Finalized derived phases.
	assert.Equal(t, 160, rep.Primary[0].Times[raid.PhasePreOlm])
	assert.Equal(t, 300, rep.Primary[0].Times[raid.PhaseBetweenRoom])
	assert.Equal(t, 700, rep.Primary[0].TotalSeconds)

	tekton := rep.PrimaryStats.Get(raid.RoomTekton)
	assert.Equal(t, 3, tekton.ValidCount)
	assert.Equal(t, 100, tekton.Fastest)
	assert.InDelta(t, 110.0, tekton.Avg, 1e-9)
	assert.InDelta(t, 90.0, rep.SecondaryStats.Get(raid.RoomTekton).Avg, 1e-9)

	require.Len(t, rep.PrimaryDiscarded, 1)
	assert.Equal(t, raid.Discard{KC: 101, Room: raid.RoomCrabs, Seconds: 10, Reason: raid.ReasonBelowGlobalMin}, rep.PrimaryDiscarded[0])
	assert.Empty(t, rep.SecondaryDiscarded)

	assert.Equal(t, raid.PointsSummary{Best: 36000, Average: 32333, Recent: 36000, RecentDiff: 3667}, rep.Points)
	assert.Equal(t, 202500, rep.PPH.Recent)

	assert.Equal(t, 120, rep.RecentTimes[raid.RoomTekton])
	assert.InDelta(t, 115.0, rep.LastN[raid.RoomTekton], 1e-9)
	assert.InDelta(t, 33500.0, rep.LastN[raid.RowTotalPoints], 1e-9)

	require.Len(t, rep.Common, 2)
	assert.Equal(t, raid.RoomTekton, rep.Common[0].Room)
	assert.Equal(t, raid.RoomVasa, rep.Common[1].Room)
	assert.Equal(t, raid.RoomDistribution{Other: 3}, rep.Distribution)
	assert.Len(t, rep.Efficiency, 3)
	assert.Len(t, rep.Consistency, 2)
	assert.True(t, rep.ShowLayoutTables())
}

func TestBuildPastRaids(t *testing.T) {
	opts := baseOptions(t)
	opts.PastRaids = 2

	rep, err := NewService(opts, zerolog.Nop()).Build()
	require.NoError(t, err)

	require.Len(t, rep.Primary, 2)
	assert.Equal(t, 101, rep.Primary[0].KC)
	assert.Equal(t, 102, rep.Primary[1].KC)
}

func TestBuildDegraded(t *testing.T) {
	t.Run("missing secondary", func(t *testing.T) {
		opts := baseOptions(t)
		opts.SecondaryFile = filepath.Join(t.TempDir(), "Nobody_CoxTimes.txt")

		rep, err := NewService(opts, zerolog.Nop()).Build()
		require.NoError(t, err)
		assert.False(t, rep.HasSecondary)
		assert.Nil(t, rep.SecondaryStats)
	})

	t.Run("missing score log", func(t *testing.T) {
		opts := baseOptions(t)
		opts.PointsFile = ""

		rep, err := NewService(opts, zerolog.Nop()).Build()
		require.NoError(t, err)
		assert.False(t, rep.HasScoreLog)
		for _, r := range rep.Primary {
			assert.Equal(t, raid.NoPoints, r.TotalPoints)
		}
		assert.Empty(t, rep.Efficiency)
		assert.Equal(t, raid.PointsSummary{}, rep.Points)
	})

	t.Run("missing score log ignores require points", func(t *testing.T) {
		opts := baseOptions(t)
		opts.PointsFile = filepath.Join(t.TempDir(), "missing.log")
		opts.RequirePoints = true

		rep, err := NewService(opts, zerolog.Nop()).Build()
		require.NoError(t, err)
		assert.Len(t, rep.Primary, 3)
	})
}

func TestBuildErrors(t *testing.T) {
	t.Run("missing primary", func(t *testing.T) {
		opts := baseOptions(t)
		opts.PrimaryFile = filepath.Join(t.TempDir(), "missing.txt")

		_, err := NewService(opts, zerolog.Nop()).Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("primary without solo raids", func(t *testing.T) {
		opts := baseOptions(t)
		opts.PrimaryFile = writeFile(t, t.TempDir(), "Team_CoxTimes.txt", "Raid Completed: 20:00 | Team Size: 3\n---\n")

		_, err := NewService(opts, zerolog.Nop()).Build()
		assert.ErrorIs(t, err, raidlog.ErrNoRaids)
	})

	t.Run("require points with no matches", func(t *testing.T) {
		opts := baseOptions(t)
		opts.PointsFile = writeFile(t, t.TempDir(), "raid_tracker_data.log",
			`{"challengeMode":false,"teamSize":1,"raidTime":900,"upperTime":500,"totalPoints":99999}`+"\n")
		opts.RequirePoints = true

		_, err := NewService(opts, zerolog.Nop()).Build()
		assert.ErrorIs(t, err, ErrNoRaidsToAnalyze)
	})

	t.Run("layout filter removes everything", func(t *testing.T) {
		opts := baseOptions(t)
		opts.Layout = raid.LayoutFullOnly

		_, err := NewService(opts, zerolog.Nop()).Build()
		assert.ErrorIs(t, err, ErrNoRaidsToAnalyze)
	})
}
