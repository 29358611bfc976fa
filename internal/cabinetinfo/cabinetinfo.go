// Package cabinetinfo parses cabinet.info files, the per-directory
// listing that assigns wiki categories to mods which cannot carry
// category metadata themselves.
//
// Two shapes are accepted. A file whose first content line is a bare
// category list describes the directory's single mod. A file of
// "modname: categories" lines describes several mods by filename.
// Either shape may follow an entry with http/https URL lines, which
// attach to the most recently registered mod.
package cabinetinfo

import (
	"bufio"
	"io"
	"os"
	"strings"

	"modcabinet/internal/modfile"
	"modcabinet/internal/report"
)

// Entry is one mod's line in a cabinet.info file.
type Entry struct {
	Name       string   `json:"name,omitempty"`
	Categories []string `json:"categories"`
	URLs       []string `json:"urls"`
}

// Info is a parsed cabinet.info file. The zero-value key "" holds the
// unnamed entry of a single-mod file.
type Info struct {
	RelFilename string         `json:"rel_filename,omitempty"`
	Mtime       int64          `json:"mtime"`
	Status      modfile.Status `json:"-"`

	// SingleMod reports whether the file's first line was a bare
	// category list, claiming the whole directory for one mod.
	SingleMod bool `json:"single_mod"`

	Entries map[string]*Entry `json:"entries"`
	// Order lists entry names as they appeared in the file.
	Order []string `json:"order"`

	cur *Entry
}

// New returns an empty Info with the given source mtime.
func New(mtime int64, status modfile.Status) *Info {
	return &Info{
		Mtime:   mtime,
		Status:  status,
		Entries: make(map[string]*Entry),
	}
}

// LoadFile parses the cabinet.info file at path. Problems with
// individual lines are reported to sink and do not fail the load.
func LoadFile(path, filename string, sink *report.Sink, validCategories map[string]string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	info := New(st.ModTime().Unix(), modfile.StatusUnknown)
	if err := info.Load(f, filename, sink, validCategories); err != nil {
		return nil, err
	}
	return info, nil
}

// Load parses cabinet.info content from r.
func (i *Info) Load(r io.Reader, filename string, sink *report.Sink, validCategories map[string]string) error {
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://"):
			if i.cur == nil {
				sink.Errorf("URL found with no previous modfile in %s: %s", filename, line)
				continue
			}
			i.cur.URLs = append(i.cur.URLs, line)
			continue
		}
		switch {
		case first && !strings.Contains(line, ":"):
			i.SingleMod = true
			i.Register("", line, filename, sink, validCategories)
		case first:
			name, cats, _ := strings.Cut(line, ":")
			i.Register(strings.TrimSpace(name), cats, filename, sink, validCategories)
		case !i.SingleMod && strings.Contains(line, ":"):
			name, cats, _ := strings.Cut(line, ":")
			i.Register(strings.TrimSpace(name), cats, filename, sink, validCategories)
		default:
			sink.Errorf("Unknown line in %s: %s", filename, line)
		}
		first = false
	}
	return scanner.Err()
}

// Register adds a mod entry with the given comma-separated category
// list. Invalid categories are dropped with an error; an entry with no
// valid categories, or a name already present, is rejected.
func (i *Info) Register(name, categories, filename string, sink *report.Sink, validCategories map[string]string) bool {
	if _, ok := i.Entries[name]; ok {
		sink.Errorf("Mod %s specified twice in %s", displayName(name), filename)
		return false
	}
	var cats []string
	for _, cat := range strings.Split(categories, ",") {
		cat = strings.TrimSpace(cat)
		if _, ok := validCategories[cat]; ok {
			cats = append(cats, cat)
		} else {
			sink.Errorf("Invalid category %q in %s", cat, filename)
		}
	}
	if len(cats) == 0 {
		sink.Errorf("No categories found for %s in %s", displayName(name), filename)
		return false
	}
	entry := &Entry{Name: name, Categories: cats, URLs: []string{}}
	i.Entries[name] = entry
	i.Order = append(i.Order, name)
	i.cur = entry
	return true
}

func displayName(name string) string {
	if name == "" {
		return "the mod"
	}
	return name
}

// Get returns the entry for name, or nil. The unnamed single-mod entry
// is keyed by "".
func (i *Info) Get(name string) *Entry {
	return i.Entries[name]
}

// Has reports whether an entry exists for name.
func (i *Info) Has(name string) bool {
	_, ok := i.Entries[name]
	return ok
}

// Len returns the number of registered entries.
func (i *Info) Len() int {
	return len(i.Entries)
}

// ModList returns the entries in the order they were registered.
func (i *Info) ModList() []*Entry {
	out := make([]*Entry, 0, len(i.Order))
	for _, name := range i.Order {
		out = append(out, i.Entries[name])
	}
	return out
}
