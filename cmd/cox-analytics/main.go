package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ramonehamilton/cox-analytics/internal/config"
	"github.com/ramonehamilton/cox-analytics/internal/display"
	"github.com/ramonehamilton/cox-analytics/internal/logging"
	"github.com/ramonehamilton/cox-analytics/internal/report"
	"github.com/ramonehamilton/cox-analytics/internal/version"
)

func main() {
	fs := flag.NewFlagSet("cox-analytics", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: cox-analytics [flags] [init]\n\n")
		fmt.Fprintf(fs.Output(), "Reports per-room statistics from CoX analytics times files.\n")
		fmt.Fprintf(fs.Output(), "\"init\" writes a default config file and exits.\n\n")
		fs.PrintDefaults()
	}
	flags := newCLIFlags(fs)
	_ = fs.Parse(os.Args[1:])

	os.Exit(run(fs, flags))
}

// run executes the command and returns the process exit code.
func run(fs *flag.FlagSet, flags *cliFlags) int {
	if flags.showVersion {
		fmt.Println(version.String())
		return 0
	}

	logger := logging.New(os.Stderr, flags.debugMode || flags.debugModeShort)

	configPath, err := resolveConfigPath(flags.configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to locate config")
		return 1
	}

	if fs.Arg(0) == "init" {
		return initConfig(configPath, logger)
	}

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load config")
		return 1
	}

	if err := config.LoadEnvFiles(flags.envFile); err != nil {
		logger.Warn().Err(err).Msg("Ignoring env file")
	}
	cfg.ApplyEnv()
	flags.apply(fs, cfg)

	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		return 1
	}

	logger = logging.New(os.Stderr, cfg.App.DebugMode)
	logger.Debug().Str("config", configPath).Str("primary", cfg.Files.Primary).Msg("Starting analysis")

	out := display.NewReportDisplayer(os.Stdout, display.ColorEnabled(cfg.App.Color, os.Stdout))

	rep, err := report.NewService(report.OptionsFromConfig(cfg), logger).Build()
	if errors.Is(err, report.ErrNoRaidsToAnalyze) {
		out.NoRaids()
		return 0
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build report")
		return 1
	}

	out.Render(rep)
	return 0
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.DefaultPath()
}

// initConfig writes the default configuration unless a file already exists.
func initConfig(path string, logger zerolog.Logger) int {
	if _, err := os.Stat(path); err == nil {
		logger.Warn().Str("path", path).Msg("Config already exists, leaving it unchanged")
		return 0
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		logger.Error().Err(err).Msg("Failed to write config")
		return 1
	}

	fmt.Printf("Wrote default config to %s\n", path)
	return 0
}
