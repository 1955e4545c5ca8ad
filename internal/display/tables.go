package display

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ramonehamilton/cox-analytics/internal/raid"
	"github.com/ramonehamilton/cox-analytics/internal/report"
	"github.com/ramonehamilton/cox-analytics/internal/stats"
)

// Column widths of the main statistics table.
const (
	valueWidth   = 6
	diffWidth    = 7
	nameWidth    = 21
	bestWidth    = 5
	averageWidth = 6
	recentWidth  = valueWidth + 1 + diffWidth
	lastNWidth   = valueWidth + 1 + diffWidth
	compareWidth = 18
	sepWidth     = 5
)

// ReportDisplayer renders a report as fixed-width console tables.
type ReportDisplayer struct {
	w     io.Writer
	color bool
}

// NewReportDisplayer creates a displayer writing to w.
func NewReportDisplayer(w io.Writer, color bool) *ReportDisplayer {
	return &ReportDisplayer{w: w, color: color}
}

// Render writes every table of the report.
func (d *ReportDisplayer) Render(rep *report.Report) {
	d.Summary(rep)
	d.StatsTable(rep)

	if rep.ShowLayoutTables() {
		d.RoomEfficiency(rep.Efficiency)
		d.MostCommonRooms(rep.Common, rep.Distribution, rep.CountPad)
	}
	d.Consistency(rep.Consistency)

	d.Discarded(rep.PrimaryDiscarded, "Primary", rep.PrimaryUser)
	if rep.HasSecondary {
		d.Discarded(rep.SecondaryDiscarded, "Secondary", rep.SecondaryUser)
	}
}

// NoRaids prints the message shown when filtering leaves nothing to analyse.
func (d *ReportDisplayer) NoRaids() {
	fmt.Fprintln(d.w, "No raids to analyze.")
}

// Summary prints which raids the report covers.
func (d *ReportDisplayer) Summary(rep *report.Report) {
	scope := "all"
	if rep.Options.PastRaids >= 0 {
		scope = "last " + strconv.Itoa(rep.Options.PastRaids)
	}

	fmt.Fprintf(d.w, "Analyzing %s solo raids from %s (%s raids)\n",
		scope, rep.PrimaryUser, humanize.Comma(int64(len(rep.Primary))))
	if rep.HasSecondary {
		fmt.Fprintf(d.w, "Comparison vs %s (%s raids)\n",
			rep.SecondaryUser, humanize.Comma(int64(len(rep.Secondary))))
	}
	if rep.HasScoreLog {
		fmt.Fprintf(d.w, "Points matched for %s raids\n", humanize.Comma(int64(rep.MatchedPoints)))
	}
	fmt.Fprintln(d.w)
}

// TotalWidth returns the width of the statistics table.
func TotalWidth(hasSecondary bool) int {
	columns := 5
	width := nameWidth + bestWidth + averageWidth + recentWidth + lastNWidth
	if hasSecondary {
		columns++
		width += compareWidth
	}
	return width + (columns-1)*sepWidth
}

// StatsTable prints the per-room statistics table with its header.
func (d *ReportDisplayer) StatsTable(rep *report.Report) {
	total := TotalWidth(rep.HasSecondary)
	sep := strings.Repeat(" ", sepWidth)

	fmt.Fprintf(d.w, "Raid Statistics - Primary: %s\n", rep.PrimaryUser)
	fmt.Fprintln(d.w, strings.Repeat("=", total))

	fmt.Fprintf(d.w, "%-*s%s%*s%s%*s%s%s%s%s",
		nameWidth, "Room", sep,
		bestWidth, "Best", sep,
		averageWidth, "Average", sep,
		CenterText("Recent", recentWidth), sep,
		CenterText("Last "+strconv.Itoa(rep.Options.SessionRaids), lastNWidth))
	if rep.HasSecondary {
		fmt.Fprintf(d.w, "%s%s", sep, CenterText("vs "+rep.SecondaryUser, compareWidth))
	}
	fmt.Fprintln(d.w)
	fmt.Fprintln(d.w, strings.Repeat("-", total))

	for _, key := range raid.DisplayOrder() {
		if !d.statsRow(rep, key) {
			continue
		}

		switch key {
		case raid.PhasePreOlm, raid.PhaseCompleted, raid.PhaseBetweenRoom:
			fmt.Fprintln(d.w, strings.Repeat("-", total))
		}
	}

	fmt.Fprintln(d.w, strings.Repeat("=", total))
	fmt.Fprintln(d.w)
}

// statsRow prints one row and reports whether anything was printed.
// Time rows without a single sample are skipped.
func (d *ReportDisplayer) statsRow(rep *report.Report, key string) bool {
	ps := rep.PrimaryStats.Get(key)
	sep := strings.Repeat(" ", sepWidth)

	var pts *raid.PointsSummary
	switch key {
	case raid.RowTotalPoints:
		pts = &rep.Points
	case raid.RowPPH:
		pts = &rep.PPH
	}

	if pts == nil && ps.ValidCount == 0 && (raid.IsPrepRoom(key) || len(ps.Discarded) == 0) {
		return false
	}

	var best, avg string
	if pts != nil {
		best = strconv.Itoa(pts.Best)
		avg = strconv.Itoa(pts.Average)
	} else {
		best = "--:--"
		if ps.Fastest > 0 {
			best = SecondsToTime(ps.Fastest)
		}
		avg = SecondsToTime(int(math.Round(ps.Avg)))
	}

	fmt.Fprintf(d.w, "%-*s%s%*s%s%*s%s", nameWidth, key, sep, bestWidth, best, sep, averageWidth, avg, sep)

	lastN, hasLastN := rep.LastN[key]
	if pts != nil {
		d.valueCell(pts.Recent > 0, pts.Recent, float64(pts.Average), false, true)
		fmt.Fprint(d.w, sep)
		d.valueCell(hasLastN && lastN > 0, int(lastN), float64(pts.Average), false, true)
	} else {
		recent, hasRecent := rep.RecentTimes[key]
		d.valueCell(hasRecent, recent, ps.Avg, true, false)
		fmt.Fprint(d.w, sep)
		d.valueCell(hasLastN && lastN > 0, int(lastN), ps.Avg, true, false)
	}

	if rep.HasSecondary {
		fmt.Fprint(d.w, sep)
		if pts == nil {
			fmt.Fprint(d.w, d.compareCell(ps, rep.SecondaryStats.Get(key)))
		} else {
			fmt.Fprint(d.w, strings.Repeat(" ", compareWidth))
		}
	}
	fmt.Fprintln(d.w)
	return true
}

// valueCell prints a value with its delta from avg, or "-" when there is no value.
func (d *ReportDisplayer) valueCell(hasValue bool, value int, avg float64, isTime, positiveIsGood bool) {
	if !hasValue {
		fmt.Fprintf(d.w, "%*s", valueWidth+1+diffWidth, "-")
		return
	}

	c := MakeCell(value, avg, isTime, positiveIsGood)
	fmt.Fprintf(d.w, "%*s %s", valueWidth, c.Value, d.paint(c.Color, fmt.Sprintf("%*s", diffWidth, c.Diff)))
}

// compareCell formats the secondary average, the signed primary delta and the
// secondary sample count, right-aligned to the comparison column.
func (d *ReportDisplayer) compareCell(primary, secondary raid.PhaseStats) string {
	if secondary.Avg <= 0.5 {
		return strings.Repeat(" ", compareWidth)
	}

	diff := primary.Avg - secondary.Avg
	rounded := int(math.Round(diff))

	sign := "+"
	switch {
	case math.Abs(diff) < 0.5:
		sign = " "
	case diff < 0:
		sign = "-"
	}

	avg := SecondsToTime(int(math.Round(secondary.Avg)))
	delta := sign + SecondsToTime(abs(rounded))
	count := " (" + strconv.Itoa(secondary.ValidCount) + ")"

	visible := len(avg) + 1 + len(delta) + len(count)
	pad := max(0, compareWidth-visible)

	return strings.Repeat(" ", pad) + avg + " " + d.paint(DiffColor(rounded, true, false), delta) + count
}

// RoomEfficiency prints the estimated points per hour of each prep room.
func (d *ReportDisplayer) RoomEfficiency(rows []raid.RoomEfficiency) {
	if len(rows) == 0 {
		return
	}

	const width = 38
	fmt.Fprintln(d.w, "Room Efficiency (PPH)")
	fmt.Fprintln(d.w, strings.Repeat("=", width))
	fmt.Fprintf(d.w, "%-18s%10s%8s\n", "Room", "Avg PPH", "Raids")
	fmt.Fprintln(d.w, strings.Repeat("-", width))

	for _, r := range rows {
		fmt.Fprintf(d.w, "%-18s%10s%8d\n", r.Room, humanize.Comma(int64(r.AvgPPH)), r.Raids)
	}

	fmt.Fprintln(d.w, strings.Repeat("=", width))
	fmt.Fprintln(d.w)
}

// MostCommonRooms prints prep rooms by completion count and the room count distribution.
// countPad is the digit width of the largest count.
func (d *ReportDisplayer) MostCommonRooms(common []stats.RoomCount, dist raid.RoomDistribution, countPad int) {
	if len(common) == 0 {
		return
	}

	const countHeader = "# Completed"
	countWidth := max(countPad, len(countHeader)) + 4
	width := 10 + 15 + countWidth

	fmt.Fprintln(d.w, "Most Common Prep Rooms:")
	fmt.Fprintln(d.w, strings.Repeat("-", width))
	fmt.Fprintf(d.w, "%-10s%15s%*s\n", "Room", "Avg time", countWidth, countHeader)
	fmt.Fprintln(d.w, strings.Repeat("-", width))

	for _, rc := range common {
		fmt.Fprintf(d.w, "%-10s%15s%*d\n",
			rc.Room, SecondsToTime(int(math.Round(rc.Stats.Avg))), countWidth, rc.Stats.ValidCount)
	}
	fmt.Fprintln(d.w)

	total := dist.Total()
	percent := func(n int) float64 {
		if total == 0 {
			return 0
		}
		return float64(n) * 100 / float64(total)
	}

	fmt.Fprintf(d.w, "Room count distribution: 5 rooms = %d (%.1f%%), 6 rooms = %d (%.1f%%)",
		dist.Five, percent(dist.Five), dist.Six, percent(dist.Six))
	if dist.Other > 0 {
		fmt.Fprintf(d.w, ", other = %d", dist.Other)
	}
	fmt.Fprint(d.w, "\n\n")
}

// Consistency prints the mean, median and p90 of each prep room's kept times.
func (d *ReportDisplayer) Consistency(spreads []stats.RoomSpread) {
	if len(spreads) == 0 {
		return
	}

	const width = 58
	fmt.Fprintln(d.w, "Room Consistency")
	fmt.Fprintln(d.w, strings.Repeat("=", width))
	fmt.Fprintf(d.w, "%-12s%8s%8s%8s%14s%8s\n", "Room", "Mean", "Median", "P90", "Range", "Raids")
	fmt.Fprintln(d.w, strings.Repeat("-", width))

	for _, s := range spreads {
		fmt.Fprintf(d.w, "%-12s%8s%8s%8s%14s%8d\n",
			s.Room,
			SecondsToTime(int(math.Round(s.Mean))),
			SecondsToTime(int(math.Round(s.Median))),
			SecondsToTime(int(math.Round(s.P90))),
			SecondsToTime(s.Min)+"-"+SecondsToTime(s.Max),
			s.Count)
	}

	fmt.Fprintln(d.w, strings.Repeat("=", width))
	fmt.Fprintln(d.w)
}

// Discarded lists the samples excluded as outliers.
func (d *ReportDisplayer) Discarded(discarded []raid.Discard, label, user string) {
	if len(discarded) == 0 {
		return
	}

	fmt.Fprintf(d.w, "Discarded Outliers (%s - %s) - %d items:\n", label, user, len(discarded))
	fmt.Fprintln(d.w, strings.Repeat("-", 80))
	for _, x := range discarded {
		fmt.Fprintf(d.w, "KC %5d | %-26s%8s  (%s)\n", x.KC, x.Room, SecondsToTime(x.Seconds), x.Reason)
	}
	fmt.Fprintln(d.w)
}

// paint wraps s in code when colour is enabled.
func (d *ReportDisplayer) paint(code, s string) string {
	if !d.color || code == colorReset {
		return s
	}
	return code + s + colorReset
}
