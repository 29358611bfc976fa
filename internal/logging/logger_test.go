package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFileLogger(t *testing.T, opts Options) (*slog.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.log")
	opts.OutputPaths = []string{path}
	logger, err := New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return logger, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestConsoleOutput(t *testing.T) {
	logger, path := newFileLogger(t, Options{Level: "info", Format: "console"})
	logger.Info("pulled repo", "component", "git", "commits", 3)

	out := readLog(t, path)
	if !strings.Contains(out, " INFO git: pulled repo") {
		t.Fatalf("unexpected console line: %q", out)
	}
	if !strings.Contains(out, "commits=3") {
		t.Fatalf("missing attr in console line: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("file output must not carry color codes: %q", out)
	}
}

func TestConsoleGroupFlattening(t *testing.T) {
	logger, path := newFileLogger(t, Options{Format: "console"})
	logger.WithGroup("wiki").With("page", "Mod-Categories.md").Warn("skipped write")

	out := readLog(t, path)
	if !strings.Contains(out, "wiki.page=Mod-Categories.md") {
		t.Fatalf("expected flattened group attr, got %q", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Fatalf("expected WARN label, got %q", out)
	}
}

func TestConsoleQuotesValues(t *testing.T) {
	logger, path := newFileLogger(t, Options{Format: "console"})
	logger.Info("wrote page", "title", "Some Mod Name")

	out := readLog(t, path)
	if !strings.Contains(out, `title="Some Mod Name"`) {
		t.Fatalf("expected quoted value, got %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	logger, path := newFileLogger(t, Options{Level: "debug", Format: "json"})
	logger.Debug("cache hit", "rel_path", "Author/mod.txt")

	line := strings.TrimSpace(readLog(t, path))
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("unmarshal json log line %q: %v", line, err)
	}
	if record["level"] != "debug" {
		t.Fatalf("unexpected level: %v", record["level"])
	}
	if record["msg"] != "cache hit" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts key")
	}
	if record["rel_path"] != "Author/mod.txt" {
		t.Fatalf("unexpected rel_path: %v", record["rel_path"])
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, path := newFileLogger(t, Options{Level: "warn", Format: "console"})
	logger.Info("should be dropped")
	logger.Warn("kept")

	out := readLog(t, path)
	if strings.Contains(out, "should be dropped") {
		t.Fatalf("info record leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := New(Options{Format: "logfmt"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported value") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	if logger == nil {
		t.Fatal("expected logger")
	}
	logger.Error("goes nowhere")
}
