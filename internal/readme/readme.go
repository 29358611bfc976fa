// Package readme parses loose README files into named sections and
// matches sections to mod titles with fuzzy similarity. README authors
// use every heading convention imaginable, so the parser recognizes ATX
// hashes, list-style dashes, and Setext underlines equally, whether or
// not the file claims to be markdown.
package readme

import (
	"io"
	"strings"

	"modcabinet/internal/modfile"
	"modcabinet/internal/textutil"
)

// DefaultSection holds content that appears before any heading.
const DefaultSection = "(default)"

// Readme is the parsed section map of one README file. Sections preserve
// insertion order and are immutable after parsing.
type Readme struct {
	RelFilename string `json:"rel_filename,omitempty"`
	Mtime       int64  `json:"mtime"`
	// Status tracks cache freshness within a run and is never persisted.
	Status modfile.Status `json:"-"`

	// Sections maps lower-cased section names to their lines.
	Sections map[string][]string `json:"sections"`
	// Order lists section names in the order they first appeared.
	Order []string `json:"order"`
	// FirstSection names the first section that received content, used
	// as a match fallback. Empty when no content was ever appended.
	FirstSection string `json:"first_section,omitempty"`
}

// Parse reads a README from r and builds its section map.
func Parse(r io.Reader, mtime int64) (*Readme, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseLines(strings.Split(string(data), "\n"), mtime), nil
}

// ParseLines builds a Readme from pre-split lines.
//
// Heading styles recognized: "# Name" (any number of hashes), "- Name",
// and Setext underlines ("===" / "---" under a text line), which
// retroactively turn the line above into a heading by popping it from
// the section it was just appended to.
func ParseLines(lines []string, mtime int64) *Readme {
	r := &Readme{
		Mtime:    mtime,
		Sections: map[string][]string{DefaultSection: {}},
		Order:    []string{DefaultSection},
	}
	prevLine := ""
	cur := DefaultSection
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "#"):
			cur = r.startSection(strings.ToLower(strings.TrimLeft(line, "# \t")))
		case strings.HasPrefix(line, "===") || strings.HasPrefix(line, "---"):
			if prevLine != "" {
				if len(r.Sections[cur]) > 0 {
					r.Sections[cur] = r.Sections[cur][:len(r.Sections[cur])-1]
					if r.FirstSection == cur && len(r.Sections[cur]) == 0 {
						r.FirstSection = ""
					}
					cur = r.startSection(strings.ToLower(prevLine))
				}
			} else {
				r.appendLine(cur, line)
			}
		case strings.HasPrefix(line, "-"):
			cur = r.startSection(strings.ToLower(strings.TrimLeft(line, "- \t")))
		default:
			if len(r.Sections[cur]) > 0 || line != "" {
				r.appendLine(cur, line)
			}
		}
		prevLine = line
	}
	for name, data := range r.Sections {
		for len(data) > 0 && data[len(data)-1] == "" {
			data = data[:len(data)-1]
		}
		r.Sections[name] = data
	}
	return r
}

func (r *Readme) startSection(name string) string {
	if _, ok := r.Sections[name]; !ok {
		r.Order = append(r.Order, name)
	}
	r.Sections[name] = []string{}
	return name
}

func (r *Readme) appendLine(section, line string) {
	if r.FirstSection == "" {
		r.FirstSection = section
	}
	r.Sections[section] = append(r.Sections[section], line)
}

// FindMatching returns the README content for the given mod title.
//
// For a single-mod directory: a literal "overview" section wins, then
// the first section whose name is similar to the title, then the first
// section that had content, then whatever preceded the headings. For a
// shared README covering several mods only a similarity match is
// trusted; anything else returns nothing.
func (r *Readme) FindMatching(modTitle string, singleMod bool) []string {
	titleLower := strings.ToLower(modTitle)
	if singleMod {
		if content, ok := r.Sections["overview"]; ok {
			return content
		}
	}
	for _, section := range r.Order {
		if textutil.Matches(titleLower, section) {
			return r.Sections[section]
		}
	}
	if !singleMod {
		return nil
	}
	if r.FirstSection != "" {
		return r.Sections[r.FirstSection]
	}
	return r.Sections[DefaultSection]
}
