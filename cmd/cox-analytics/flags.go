package main

import (
	"flag"

	"github.com/ramonehamilton/cox-analytics/internal/config"
)

// cliFlags holds command-line overrides. Only flags the user sets are applied
// on top of the configuration file.
type cliFlags struct {
	configPath  string
	envFile     string
	showVersion bool

	primaryFile   string
	secondaryFile string
	pointsFile    string

	pastRaids     int
	sessionRaids  int
	layout        string
	requirePoints bool
	tolerance     int

	debugMode      bool
	debugModeShort bool
	color          string
}

func newCLIFlags(fs *flag.FlagSet) *cliFlags {
	f := &cliFlags{}

	fs.StringVar(&f.configPath, "config", "", "Path to config.toml (default ~/.cox-analytics/config.toml)")
	fs.StringVar(&f.envFile, "env-file", ".env", "Optional .env file with COX_* overrides")
	fs.BoolVar(&f.showVersion, "version", false, "Print the version and exit")

	// Input files
	fs.StringVar(&f.primaryFile, "primary-file", "", "Primary player's CoxTimes file")
	fs.StringVar(&f.secondaryFile, "secondary-file", "", "Comparison player's CoxTimes file")
	fs.StringVar(&f.pointsFile, "points-file", "", "Raid tracker score log")

	// Report shaping
	fs.IntVar(&f.pastRaids, "past-raids", config.AllRaids, "Analyse only the most recent N raids (-1 for all)")
	fs.IntVar(&f.sessionRaids, "session-raids", 10, "Raids in the \"Last N\" column")
	fs.StringVar(&f.layout, "layout", "all", "Layout filter: all, normal or full")
	fs.BoolVar(&f.requirePoints, "require-points", false, "Drop raids without matched points")
	fs.IntVar(&f.tolerance, "tolerance", 3, "Seconds of slack when matching the score log")

	// Application
	fs.BoolVar(&f.debugMode, "debug-mode", false, "Enable verbose debug logging")
	fs.BoolVar(&f.debugModeShort, "d", false, "Enable debug logging (shorthand for -debug-mode)")
	fs.StringVar(&f.color, "color", "auto", "Colour output: auto, always or never")

	return f
}

// apply copies explicitly set flags into cfg.
func (f *cliFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "primary-file":
			cfg.Files.Primary = f.primaryFile
		case "secondary-file":
			cfg.Files.Secondary = f.secondaryFile
		case "points-file":
			cfg.Files.Points = f.pointsFile
		case "past-raids":
			cfg.Report.PastRaids = f.pastRaids
		case "session-raids":
			cfg.Report.SessionRaids = f.sessionRaids
		case "layout":
			cfg.Report.LayoutFilter = f.layout
		case "require-points":
			cfg.Report.RequirePoints = f.requirePoints
		case "tolerance":
			cfg.Points.ToleranceSeconds = f.tolerance
		case "debug-mode":
			cfg.App.DebugMode = f.debugMode
		case "color":
			cfg.App.Color = f.color
		}
	})

	if f.debugModeShort {
		cfg.App.DebugMode = true
	}
}
