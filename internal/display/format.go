package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SecondsToTime formats seconds as MM:SS. Non-positive values print as 00:00.
func SecondsToTime(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// CenterText pads text to width, truncating when it does not fit.
func CenterText(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}

	pad := width - len(text)
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

// Cell is a value with its signed difference from a reference average.
type Cell struct {
	Value string // "17:23" or "77455"
	Diff  string // "+00:12" or "-36322"
	Color string
}

// MakeCell formats value and its difference from the rounded average.
func MakeCell(value int, avg float64, isTime, positiveIsGood bool) Cell {
	d := value - int(math.Round(avg))

	sign := "+"
	if d < 0 {
		sign = "-"
	}

	c := Cell{Color: DiffColor(d, isTime, positiveIsGood)}
	if isTime {
		c.Value = SecondsToTime(value)
		c.Diff = sign + SecondsToTime(abs(d))
	} else {
		c.Value = strconv.Itoa(value)
		c.Diff = sign + strconv.Itoa(abs(d))
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
