package raidlog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/home/me/.runelite/cox-analytics/Disco_Turtle_CoxTimes.txt", want: "Disco Turtle"},
		{path: "Kaudal_CoxTimes.txt", want: "Kaudal"},
		{path: "plain.txt", want: "plain"},
		{path: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Username(tt.path); got != tt.want {
				t.Errorf("Username(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLogExists(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("non-existent file", func(t *testing.T) {
		exists, err := LogExists(filepath.Join(tmpDir, "nonexistent.txt"))
		if err != nil {
			t.Errorf("LogExists() error = %v, want nil", err)
		}
		if exists {
			t.Error("LogExists() = true, want false")
		}
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "times.txt")
		if err := os.WriteFile(path, []byte("test"), 0o644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		exists, err := LogExists(path)
		if err != nil {
			t.Errorf("LogExists() error = %v, want nil", err)
		}
		if !exists {
			t.Error("LogExists() = false, want true")
		}
	})

	t.Run("directory", func(t *testing.T) {
		exists, err := LogExists(tmpDir)
		if err == nil {
			t.Error("LogExists() error = nil, want error for directory")
		}
		if exists {
			t.Error("LogExists() = true, want false for directory")
		}
	})
}
