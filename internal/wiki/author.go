package wiki

import (
	"regexp"
	"sort"
	"strings"

	"modcabinet/internal/modfile"
)

var (
	wikiModlinkRE = regexp.MustCompile(`^\[\[(.*?)\|.*\]\].*$`)
	htmlModlinkRE = regexp.MustCompile(`^<a href=.*?>(.*)</a>.*$`)
)

// Author is a cached per-author record: the set of wiki links to the
// author's mods as of the last completed run. A changed set flips the
// record to updated, which forces the author page to re-render.
type Author struct {
	Name   string         `json:"name"`
	Mods   []string       `json:"mods"`
	Status modfile.Status `json:"-"`

	curMods map[string]bool
}

// NewAuthor returns an author record with the given cache status.
func NewAuthor(name string, status modfile.Status) *Author {
	return &Author{Name: name, Status: status}
}

// AddMod records a mod link seen for this author during the current run.
func (a *Author) AddMod(m *modfile.ModFile) {
	if a.curMods == nil {
		a.curMods = make(map[string]bool)
	}
	a.curMods[Link(m.DisplayTitle(), m.WikiBase())] = true
}

// CheckModlist compares the links gathered this run against the cached
// set, replacing it and marking the record updated when they differ.
// Returns the resulting status.
func (a *Author) CheckModlist() modfile.Status {
	cached := make(map[string]bool, len(a.Mods))
	for _, link := range a.Mods {
		cached[link] = true
	}
	if !equalSets(cached, a.curMods) {
		a.Mods = make([]string, 0, len(a.curMods))
		for link := range a.curMods {
			a.Mods = append(a.Mods, link)
		}
		sort.Strings(a.Mods)
		a.Status = modfile.StatusUpdated
	}
	return a.Status
}

// WikiFilename returns the author page's filename.
func (a *Author) WikiFilename() string {
	return Filename(a.Name)
}

// Link returns an HTML link to the author page.
func (a *Author) Link() string {
	return Link(a.Name, a.Name)
}

// SortedModLinks returns the author's mod links ordered by link text
// rather than raw markup, so HTML and wiki-style links interleave
// properly.
func (a *Author) SortedModLinks() []string {
	links := append([]string(nil), a.Mods...)
	sort.Slice(links, func(i, j int) bool {
		return modlinkSortKey(links[i]) < modlinkSortKey(links[j])
	})
	return links
}

func modlinkSortKey(link string) string {
	lower := strings.ToLower(link)
	if m := wikiModlinkRE.FindStringSubmatch(lower); m != nil {
		return m[1]
	}
	if m := htmlModlinkRE.FindStringSubmatch(lower); m != nil {
		return m[1]
	}
	return lower
}

func equalSets(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
