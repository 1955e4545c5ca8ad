package raidlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// timesSuffix is appended to the player name by the CoX analytics plugin.
const timesSuffix = "_CoxTimes"

// Username derives a display name from a times file path,
// e.g. "Disco_Turtle_CoxTimes.txt" becomes "Disco Turtle".
func Username(path string) string {
	if path == "" {
		return ""
	}

	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if pos := strings.Index(name, timesSuffix); pos >= 0 {
		name = name[:pos]
	}
	return strings.ReplaceAll(name, "_", " ")
}

// LogExists checks if a log file exists at the given path.
func LogExists(path string) (bool, error) {
	if path == "" {
		return false, nil
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("path is a directory, not a file")
	}
	return true, nil
}
