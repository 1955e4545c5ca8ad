package raidlog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ramonehamilton/cox-analytics/internal/linereader"
	"github.com/ramonehamilton/cox-analytics/internal/raid"
)

// ErrNoRaids is returned when a raid log contains no usable solo raids.
var ErrNoRaids = errors.New("no raids found")

const (
	separator    = "---"
	completedKey = raid.PhaseCompleted + ":"
	teamSizeKey  = "Team Size:"
	kcMarker     = "KC"
)

// Reader reads raid blocks from a CoX analytics times file.
//
// A block is a run of "Room: m:ss" lines terminated by a "---" line. The
// "Raid Completed: m:ss | Team Size: N" line marks the block as a solo raid
// when N is 1; any other block is dropped.
type Reader struct {
	file   *os.File
	lines  *linereader.Reader
	logger zerolog.Logger
	lineNo int
	done   bool
}

// NewReader creates a Reader for the file at path.
func NewReader(path string, logger zerolog.Logger) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raid log: %w", err)
	}

	r := NewReaderFrom(file, logger)
	r.file = file
	return r, nil
}

// NewReaderFrom creates a Reader over an arbitrary stream.
func NewReaderFrom(rd io.Reader, logger zerolog.Logger) *Reader {
	return &Reader{
		lines:  linereader.New(rd, linereader.DefaultMaxLineLength),
		logger: logger.With().Str("component", "raidlog").Logger(),
	}
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadRaid returns the next solo raid in the log.
// It returns io.EOF when there are no more raids.
func (r *Reader) ReadRaid() (*raid.Raid, error) {
	if r.done {
		return nil, io.EOF
	}

	current := raid.New(0)
	valid := false

	for {
		line, err := r.lines.Next()
		r.lineNo = r.lines.LineNo()
		if err == io.EOF {
			break
		}
		if errors.Is(err, linereader.ErrLineTooLong) {
			r.logger.Debug().Err(err).Msg("Skipping overlong line")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read raid log: %w", err)
		}
		if line == "" {
			continue
		}

		// Kill count can appear anywhere in a block
		if strings.Contains(line, kcMarker) {
			if kc, ok := parseKC(line); ok {
				current.KC = kc
			}
		}

		// Separator closes the current block
		if strings.Contains(line, separator) {
			if valid && len(current.Times) > 0 {
				return &current, nil
			}
			current = raid.New(0)
			valid = false
			continue
		}

		// Completion line decides whether the block is a solo raid
		if strings.Contains(line, completedKey) {
			if isSolo(line) {
				valid = true
				if seconds, ok := parseCompleted(line); ok {
					current.Times[raid.PhaseCompleted] = seconds
				} else {
					r.logger.Debug().Int("line", r.lineNo).Msg("Unreadable completion time")
				}
			}
			continue
		}

		room, seconds, ok := r.parseRoomLine(line)
		if ok {
			current.Times[room] = seconds
		}
	}

	r.done = true

	// A final block without a trailing separator still counts.
	if valid && len(current.Times) > 0 {
		return &current, nil
	}
	return nil, io.EOF
}

// ReadAll reads every solo raid in the log, oldest first.
func (r *Reader) ReadAll() ([]raid.Raid, error) {
	var raids []raid.Raid

	for {
		rd, err := r.ReadRaid()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		raids = append(raids, *rd)
	}

	return raids, nil
}

// ReadRaids loads all solo raids from path.
// It returns ErrNoRaids when the file exists but yields nothing.
func ReadRaids(path string, logger zerolog.Logger) ([]raid.Raid, error) {
	reader, err := NewReader(path, logger)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	raids, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(raids) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRaids, path)
	}

	logger.Debug().Str("path", path).Int("raids", len(raids)).Msg("Raid log loaded")
	return raids, nil
}

// parseRoomLine reads "Room: m:ss". Lines whose value is not a clock time are ignored.
func (r *Reader) parseRoomLine(line string) (string, int, bool) {
	colon := strings.IndexByte(line, ':')
	if colon <= 0 || colon+1 >= len(line) {
		return "", 0, false
	}

	key := strings.TrimSpace(line[:colon])
	fields := strings.Fields(line[colon+1:])
	if key == "" || len(fields) == 0 || !strings.Contains(fields[0], ":") {
		return "", 0, false
	}

	seconds, err := ParseClock(fields[0])
	if err != nil {
		r.logger.Debug().Int("line", r.lineNo).Str("room", key).Err(err).Msg("Skipping room time")
		return "", 0, false
	}
	if seconds <= 0 {
		return "", 0, false
	}
	return key, seconds, true
}

// parseCompleted reads the time between "Raid Completed:" and the first "|".
func parseCompleted(line string) (int, bool) {
	pos := strings.Index(line, completedKey) + len(completedKey)
	value := line[pos:]
	if end := strings.Index(value, "|"); end >= 0 {
		value = value[:end]
	}

	seconds, err := ParseClock(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0, false
	}
	return seconds, true
}

// isSolo reports whether a completion line records a team size of exactly 1.
func isSolo(line string) bool {
	pos := strings.Index(line, teamSizeKey)
	if pos < 0 {
		return false
	}
	fields := strings.Fields(line[pos+len(teamSizeKey):])
	return len(fields) > 0 && fields[0] == "1"
}

// parseKC reads the first number after "KC", ignoring thousands separators.
func parseKC(line string) (int, bool) {
	pos := strings.Index(line, kcMarker) + len(kcMarker)

	for pos < len(line) && (line[pos] < '0' || line[pos] > '9') {
		pos++
	}

	var digits strings.Builder
	for pos < len(line) && (line[pos] >= '0' && line[pos] <= '9' || line[pos] == ',') {
		if line[pos] != ',' {
			digits.WriteByte(line[pos])
		}
		pos++
	}

	if digits.Len() == 0 {
		return 0, false
	}
	kc, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return kc, true
}

// ParseClock converts "m:ss" or "h:mm:ss" into seconds.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		total = total*60 + n
	}
	return total, nil
}
