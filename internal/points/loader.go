package points

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ramonehamilton/cox-analytics/internal/linereader"
	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// ErrNoScoreLog is returned when the score log path is empty or does not exist.
var ErrNoScoreLog = errors.New("score log not found")

// scoreEntry mirrors the fields used from one raid tracker line.
// Pointers distinguish missing keys from zero values.
type scoreEntry struct {
	ChallengeMode *bool `json:"challengeMode"`
	TeamSize      *int  `json:"teamSize"`
	RaidTime      *int  `json:"raidTime"`
	UpperTime     *int  `json:"upperTime"`
	TotalPoints   *int  `json:"totalPoints"`
}

// Loader reads raid tracker score logs.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a score log loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger.With().Str("component", "points").Logger()}
}

// LoadFile reads the score log at path.
func (l *Loader) LoadFile(path string) ([]raid.ScoreRun, error) {
	if path == "" {
		return nil, ErrNoScoreLog
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoScoreLog, path)
		}
		return nil, fmt.Errorf("open score log: %w", err)
	}
	defer file.Close()

	return l.Parse(file)
}

// Parse reads one entry per line and keeps solo, non-challenge runs with
// positive raid time, upper time and points. Lines that cannot be read are skipped.
func (l *Loader) Parse(r io.Reader) ([]raid.ScoreRun, error) {
	var runs []raid.ScoreRun

	lines := linereader.New(r, linereader.DefaultMaxLineLength)

	for {
		text, err := lines.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, linereader.ErrLineTooLong) {
			l.logger.Debug().Err(err).Msg("Skipping overlong score log line")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read score log: %w", err)
		}

		line := strings.TrimSpace(text)
		if line == "" {
			continue
		}

		// Decode and keep eligible solo runs
		entry, ok := decodeEntry(line)
		if !ok {
			l.logger.Debug().Int("line", lines.LineNo()).Msg("Skipping unreadable score log line")
			continue
		}

		run, ok := entry.soloRun()
		if !ok {
			continue
		}
		runs = append(runs, run)
	}

	l.logger.Debug().Int("lines", lines.LineNo()).Int("skipped", lines.Skipped()).Int("runs", len(runs)).Msg("Score log parsed")
	return runs, nil
}

// soloRun converts an entry to a ScoreRun if it is an eligible solo raid.
// A missing challengeMode is treated as a challenge run and a missing teamSize as a team raid.
func (e scoreEntry) soloRun() (raid.ScoreRun, bool) {
	if e.ChallengeMode == nil || *e.ChallengeMode {
		return raid.ScoreRun{}, false
	}
	if e.TeamSize == nil || *e.TeamSize != 1 {
		return raid.ScoreRun{}, false
	}

	run := raid.ScoreRun{
		RaidSeconds:  deref(e.RaidTime),
		UpperSeconds: deref(e.UpperTime),
		TotalPoints:  deref(e.TotalPoints),
	}
	if run.RaidSeconds <= 0 || run.UpperSeconds <= 0 || run.TotalPoints <= 0 {
		return raid.ScoreRun{}, false
	}
	return run, true
}

// decodeEntry decodes the JSON object on a line, falling back to key lookups
// for lines that are not strict JSON (prefixed or truncated records).
func decodeEntry(line string) (scoreEntry, bool) {
	var entry scoreEntry

	if start := strings.IndexByte(line, '{'); start >= 0 {
		if err := json.Unmarshal([]byte(line[start:]), &entry); err == nil {
			return entry, true
		}
	}

	entry = scoreEntry{}
	found := false
	if v, ok := extractBool(line, "challengeMode"); ok {
		entry.ChallengeMode = &v
		found = true
	}
	for key, dst := range map[string]**int{
		"teamSize":    &entry.TeamSize,
		"raidTime":    &entry.RaidTime,
		"upperTime":   &entry.UpperTime,
		"totalPoints": &entry.TotalPoints,
	} {
		if v, ok := extractInt(line, key); ok {
			*dst = &v
			found = true
		}
	}
	return entry, found
}

// valueAfter returns the text following `"key":`, trimmed of leading spaces.
func valueAfter(line, key string) (string, bool) {
	p := strings.Index(line, `"`+key+`"`)
	if p < 0 {
		return "", false
	}
	rest := line[p+len(key)+2:]
	c := strings.IndexByte(rest, ':')
	if c < 0 {
		return "", false
	}
	return strings.TrimLeft(rest[c+1:], " \t\""), true
}

func extractInt(line, key string) (int, bool) {
	v, ok := valueAfter(line, key)
	if !ok {
		return 0, false
	}
	end := 0
	for end < len(v) && (v[end] == '-' && end == 0 || v[end] >= '0' && v[end] <= '9') {
		end++
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func extractBool(line, key string) (bool, bool) {
	v, ok := valueAfter(line, key)
	if !ok {
		return false, false
	}
	switch {
	case strings.HasPrefix(v, "true"):
		return true, true
	case strings.HasPrefix(v, "false"):
		return false, true
	}
	return false, false
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
