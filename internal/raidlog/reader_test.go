package raidlog

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

const sampleTimes = `CoX KC: 1,204
Tekton: 1:35
Crabs: 0:58
Ice demon: 2:10
Floor 1: 6:40
Olm: 3:20
Raid Completed: 24:05 | Team Size: 1
---
CoX KC: 1,205
Vasa: 1:10
Raid Completed: 21:30 | Team Size: 3
---

CoX KC: 1,206
Tekton: 1:30
Mystics: bad
Shamans: 1:99
Floor 1: 6:20
Raid Completed: 23:50 | Team Size: 1
---
CoX KC: 1,207
Muttadiles: 1:01:05
Raid Completed: 1:02:10 | Team Size: 1
`

func TestReaderReadAll(t *testing.T) {
	reader := NewReaderFrom(strings.NewReader(sampleTimes), zerolog.Nop())

	raids, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, raids, 3)

	first := raids[0]
	assert.Equal(t, 1204, first.KC)
	assert.Equal(t, raid.NoPoints, first.TotalPoints)
	assert.Equal(t, map[string]int{
		raid.RoomTekton:     95,
		raid.RoomCrabs:      58,
		raid.RoomIceDemon:   130,
		raid.PhaseFloor1:    400,
		raid.PhaseOlm:       200,
		raid.PhaseCompleted: 1445,
	}, first.Times)

	second := raids[1]
	assert.Equal(t, 1206, second.KC)
	assert.NotContains(t, second.Times, raid.RoomMystics)
	assert.NotContains(t, second.Times, raid.RoomShamans)
	assert.NotContains(t, second.Times, "CoX KC")
	assert.Equal(t, 90, second.Times[raid.RoomTekton])

	// Final block has no trailing separator.
	last := raids[2]
	assert.Equal(t, 1207, last.KC)
	assert.Equal(t, 3665, last.Times[raid.RoomMuttadiles])
	assert.Equal(t, 3730, last.Times[raid.PhaseCompleted])
}

func TestReaderReadRaidEOF(t *testing.T) {
	reader := NewReaderFrom(strings.NewReader("Tekton: 1:00\n---\n"), zerolog.Nop())

	_, err := reader.ReadRaid()
	assert.Equal(t, io.EOF, err)

	_, err = reader.ReadRaid()
	assert.Equal(t, io.EOF, err)
}

func TestReadRaids(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadRaids(filepath.Join(dir, "missing.txt"), zerolog.Nop())
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("no solo raids", func(t *testing.T) {
		path := filepath.Join(dir, "Team_CoxTimes.txt")
		require.NoError(t, os.WriteFile(path, []byte("Raid Completed: 20:00 | Team Size: 2\n---\n"), 0o644))

		_, err := ReadRaids(path, zerolog.Nop())
		assert.ErrorIs(t, err, ErrNoRaids)
	})

	t.Run("reads raids", func(t *testing.T) {
		path := filepath.Join(dir, "Disco_Turtle_CoxTimes.txt")
		require.NoError(t, os.WriteFile(path, []byte(sampleTimes), 0o644))

		raids, err := ReadRaids(path, zerolog.Nop())
		require.NoError(t, err)
		assert.Len(t, raids, 3)
	})
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "0:58", want: 58},
		{in: "24:05", want: 1445},
		{in: "75:00", want: 4500},
		{in: "1:02:03", want: 3723},
		{in: "1:60", wantErr: true},
		{in: "58", wantErr: true},
		{in: "a:bc", wantErr: true},
		{in: "1:2:3:4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKC(t *testing.T) {
	kc, ok := parseKC("CoX KC: 12,345")
	assert.True(t, ok)
	assert.Equal(t, 12345, kc)

	_, ok = parseKC("KC: none")
	assert.False(t, ok)
}

func TestReadRaidsSkipsOverlongLine(t *testing.T) {
	content := "CoX KC: 10\nTekton: 1:35\nRaid Completed: 24:05 | Team Size: 1\n---\n" +
		"Note: " + strings.Repeat("x", 2*1024*1024) + "\n" +
		"CoX KC: 11\nVasa: 1:10\nRaid Completed: 22:00 | Team Size: 1\n---\n"

	path := filepath.Join(t.TempDir(), "Long_CoxTimes.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	raids, err := ReadRaids(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, raids, 2)
	assert.Equal(t, 10, raids[0].KC)
	assert.Equal(t, 11, raids[1].KC)
	assert.Equal(t, 70, raids[1].Times[raid.RoomVasa])
}
