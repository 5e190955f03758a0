package lazywalk

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// TestEmptyDirectory tests walking an empty directory
func TestEmptyDirectory(t *testing.T) {
	cfg := mustConfig(t, t.TempDir(), testOptions(t, nil))

	entries, err := cfg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	// The root itself is never an entry.
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(entries))
	}
}

// TestHiddenFiles tests that dot-prefixed names are ordinary entries
func TestHiddenFiles(t *testing.T) {
	opts := testOptions(t, nil)
	opts.Pattern = `^\.`
	cfg := mustConfig(t, osTree(t, ".hidden", ".config/", "visible"), opts)

	var names []string
	for e, err := range cfg.All() {
		if err != nil {
			t.Fatalf("Walk failed: %v", err)
		}
		names = append(names, e.Name)
	}
	if len(names) != 2 {
		t.Errorf("Expected .hidden and .config, got %v", names)
	}
}

// TestLongPaths tests a deep chain reached with unlimited depth
func TestLongPaths(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping long path test in short mode")
	}

	rel := strings.Repeat("subdir/", 15) + "deep_file.txt"
	opts := testOptions(t, nil)
	opts.MaxDepth = -1
	opts.IncludeDirs = false
	cfg := mustConfig(t, osTree(t, rel), opts)

	entries, err := cfg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if want := filepath.Join(cfg.Root(), filepath.FromSlash(rel)); entries[0].Path != want {
		t.Errorf("Expected deepest file at %s, got %s", want, entries[0].Path)
	}
	if entries[0].Depth != 15 {
		t.Errorf("Expected depth 15, got %d", entries[0].Depth)
	}
}

// TestLongPathsBounded tests that the same chain stops at MaxDepth
func TestLongPathsBounded(t *testing.T) {
	opts := testOptions(t, nil)
	opts.MaxDepth = 3
	cfg := mustConfig(t, osTree(t, strings.Repeat("subdir/", 10)), opts)

	entries, err := cfg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	// Directories at depths 0 through 3; the one at depth 3 is not entered.
	if len(entries) != 4 {
		t.Errorf("Expected 4 entries, got %d", len(entries))
	}
}

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel LogLevel
	}{
		{
			name:     "Debug level",
			logLevel: LogLevelDebug,
		},
		{
			name:     "Info level",
			logLevel: LogLevelInfo,
		},
		{
			name:     "Warn level",
			logLevel: LogLevelWarn,
		},
		{
			name:     "Error level",
			logLevel: LogLevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := createLogger(tt.logLevel)
			if logger == nil {
				t.Errorf("Expected non-nil logger")
			}
		})
	}
}
