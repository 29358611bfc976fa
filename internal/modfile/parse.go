package modfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"modcabinet/internal/report"
)

// ParseOptions carries the externally-supplied context an extraction
// needs: everything here comes from the directory walk, not the file
// body.
type ParseOptions struct {
	// Filename is the file's base name including extension, used for
	// free-text title guessing and error messages.
	Filename string
	// Author is the primary author derived from the directory layout.
	Author string
	// ValidCategories maps lower-case category keys to display names.
	ValidCategories map[string]string
	// PakOnly requires a pakfile directive to be present.
	PakOnly bool
	// Sink receives recoverable warnings and errors. May be nil.
	Sink *report.Sink
}

// ParseFile opens and extracts a mod file from disk. Files that are not
// valid UTF-8 are re-decoded as Latin-1 before parsing.
func ParseFile(path string, opts ParseOptions) (*ModFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mod file: %w", err)
	}
	if opts.Filename == "" {
		opts.Filename = filepath.Base(path)
	}
	return parseLines(splitLines(decode(data)), opts)
}

// Parse extracts a mod file from an already-decoded stream.
func Parse(r io.Reader, opts ParseOptions) (*ModFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read mod file: %w", err)
	}
	return parseLines(splitLines(string(data)), opts)
}

func parseLines(lines []string, opts ParseOptions) (*ModFile, error) {
	m := New(0, StatusUnknown)
	if err := m.load(lines, opts); err != nil {
		return nil, err
	}
	return m, nil
}

// load detects the file's dialect and runs the matching extractor. One
// leading blank line is tolerated before detection; a second leading
// blank forces the free-text fallback even if a structured dialect would
// otherwise match. That quirk is long-standing observed behavior and is
// preserved deliberately.
func (m *ModFile) load(lines []string, opts ParseOptions) error {
	m.sink = opts.Sink
	defer func() { m.sink = nil }()

	if !hasContent(lines) {
		return &NotAModFileError{Filename: opts.Filename, Reason: ReasonEmptyFile}
	}
	m.Author = opts.Author

	first := 0
	if first < len(lines) && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	var err error
	switch {
	case first >= len(lines) || strings.TrimSpace(lines[first]) == "":
		err = m.loadFreeText(lines, opts)
	case strings.Contains(lines[first], "<BLCMM"):
		err = m.loadBLCMM(lines, opts)
	case strings.HasPrefix(lines[first], "#<"):
		err = m.loadFilterTool(lines[first:], opts)
	case hasDirectiveHeader(lines[first:]):
		err = m.loadDirectives(lines[first:], opts)
	default:
		err = m.loadFreeText(lines, opts)
	}
	if err != nil {
		return err
	}
	m.Seen = true
	return nil
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

// decode interprets raw file bytes as UTF-8, falling back to Latin-1 for
// files that fail validation.
func decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// stripHashes removes a leading run of '#' characters and at most one
// space after it. Further leading whitespace is preserved so indented
// free text is not mangled.
func stripHashes(line string) string {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 {
		return line
	}
	if i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}

// titleGuess derives a title candidate from a filename: the last
// extension is dropped, and a name fully wrapped in angle brackets is
// unwrapped (files that were meant to be FilterTool format but lost
// their leading '#').
func titleGuess(filename string) string {
	base := filename
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if strings.HasPrefix(base, "<") && strings.HasSuffix(base, ">") {
		base = base[1 : len(base)-1]
	}
	return base
}
