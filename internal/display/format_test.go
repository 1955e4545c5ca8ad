package display

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ramonehamilton/cox-analytics/internal/config"
)

func TestSecondsToTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "00:00"},
		{seconds: -5, want: "00:00"},
		{seconds: 9, want: "00:09"},
		{seconds: 95, want: "01:35"},
		{seconds: 1445, want: "24:05"},
		{seconds: 6000, want: "100:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, SecondsToTime(tt.seconds))
		})
	}
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "    Recent    ", CenterText("Recent", 14))
	assert.Equal(t, "  Last 10   ", CenterText("Last 10", 12))
	assert.Equal(t, "vs Ka", CenterText("vs Kaudal", 5))
}

func TestDiffColor(t *testing.T) {
	tests := []struct {
		name           string
		diff           int
		isTime         bool
		positiveIsGood bool
		want           string
	}{
		{name: "no difference", diff: 0, isTime: true, want: colorReset},
		{name: "much faster", diff: -20, isTime: true, want: colorCyan},
		{name: "faster", diff: -19, isTime: true, want: colorGreen},
		{name: "slightly slower", diff: 9, isTime: true, want: colorOrange},
		{name: "slower", diff: 10, isTime: true, want: colorRed},
		{name: "more points", diff: 500, positiveIsGood: true, want: colorGreen},
		{name: "fewer points", diff: -1, positiveIsGood: true, want: colorRed},
		{name: "lower is better", diff: -3, want: colorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffColor(tt.diff, tt.isTime, tt.positiveIsGood))
		})
	}
}

func TestMakeCell(t *testing.T) {
	c := MakeCell(95, 100.4, true, false)
	assert.Equal(t, Cell{Value: "01:35", Diff: "-00:05", Color: colorGreen}, c)

	c = MakeCell(36000, 32333.3, false, true)
	assert.Equal(t, Cell{Value: "36000", Diff: "+3667", Color: colorGreen}, c)

	c = MakeCell(100, 99.6, true, false)
	assert.Equal(t, Cell{Value: "01:40", Diff: "+00:00", Color: colorReset}, c)
}

func TestColorEnabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	assert.NoError(t, err)
	defer f.Close()

	tests := []struct {
		name string
		mode string
		file *os.File
		want bool
	}{
		{name: "always without file", mode: config.ColorAlways, want: true},
		{name: "always to plain file", mode: config.ColorAlways, file: f, want: true},
		{name: "never to stdout", mode: config.ColorNever, file: os.Stdout},
		{name: "auto without file", mode: config.ColorAuto},
		{name: "auto to plain file", mode: config.ColorAuto, file: f},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorEnabled(tt.mode, tt.file))
		})
	}
}
