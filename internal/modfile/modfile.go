// Package modfile extracts structured metadata from user-submitted mod
// description files. Five loosely-specified text dialects are understood: a
// modern tag-based header format (@key value), an older colon-keyword
// format (# Key: value), the XML-ish BLCMM export format, the FilterTool
// format, and a free-text fallback for files with no recognizable
// structure. All dialects produce the same ModFile record.
package modfile

import (
	"fmt"
	"sort"
	"strings"

	"modcabinet/internal/report"
)

// Status tracks a record's relationship to the persisted cache, driving
// incremental wiki regeneration.
type Status string

const (
	StatusUnknown Status = "unknown"
	StatusCached  Status = "cached"
	StatusNew     Status = "new"
	StatusUpdated Status = "updated"
)

// ModURL is a URL with an optional display label, written in mod files as
// "label|url".
type ModURL struct {
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}

// ParseModURL splits a "label|url" annotation on the first pipe. Input
// without a pipe is a bare URL.
func ParseModURL(s string) ModURL {
	if label, url, ok := strings.Cut(s, "|"); ok {
		return ModURL{Label: strings.TrimSpace(label), URL: strings.TrimSpace(url)}
	}
	return ModURL{URL: strings.TrimSpace(s)}
}

// Text returns the display text for the URL: the label when present,
// otherwise the URL itself.
func (u ModURL) Text() string {
	if u.Label != "" {
		return u.Label
	}
	return u.URL
}

// ModFile is the metadata extracted from a single mod file, plus the
// cross-file data the orchestrator layers in afterwards (categories for
// category-less dialects, README content, related-mod links, display
// titles).
type ModFile struct {
	RelFilename string `json:"rel_filename"`
	Mtime       int64  `json:"mtime"`
	Status      Status `json:"status"`
	Seen        bool   `json:"-"`

	Title            string   `json:"title"`
	TitleDisplay     string   `json:"title_display,omitempty"`
	WikiFilenameBase string   `json:"wiki_filename_base,omitempty"`
	Author           string   `json:"author,omitempty"`
	OtherAuthors     []string `json:"other_authors,omitempty"`
	Version          string   `json:"version,omitempty"`
	License          string   `json:"license,omitempty"`
	LicenseURL       string   `json:"license_url,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Description      []string `json:"description,omitempty"`
	Screenshots      []ModURL `json:"screenshots,omitempty"`
	VideoURLs        []ModURL `json:"video_urls,omitempty"`
	OtherURLs        []ModURL `json:"other_urls,omitempty"`
	NexusLink        *ModURL  `json:"nexus_link,omitempty"`
	Homepage         *ModURL  `json:"homepage,omitempty"`
	Pakfile          string   `json:"pakfile,omitempty"`
	ReadmeDesc       []string `json:"readme_desc,omitempty"`
	Changelog        []string `json:"changelog,omitempty"`
	RelatedLinks     []string `json:"related_links,omitempty"`
	Errors           bool     `json:"errors,omitempty"`

	sink *report.Sink
}

// New returns an empty record carrying the given file mtime and initial
// cache status.
func New(mtime int64, status Status) *ModFile {
	return &ModFile{Mtime: mtime, Status: status}
}

// HasErrors reports whether any warning or error was recorded during
// extraction. Records with errors are re-parsed on the next run.
func (m *ModFile) HasErrors() bool {
	return m.Errors
}

// HasCategory reports whether the record carries the given category key.
func (m *ModFile) HasCategory(cat string) bool {
	for _, c := range m.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

func (m *ModFile) errorf(format string, args ...any) {
	m.Errors = true
	m.sink.Errorf(format, args...)
}

func (m *ModFile) warnf(format string, args ...any) {
	m.Errors = true
	m.sink.Warnf(format, args...)
}

func (m *ModFile) addCategory(cat string) {
	if m.HasCategory(cat) {
		return
	}
	m.Categories = append(m.Categories, cat)
	sort.Strings(m.Categories)
}

// markChanged applies the forward-only cache status transition when a
// setter observes a value change. Records already new or updated stay
// where they are; anything else becomes updated.
func (m *ModFile) markChanged() {
	if m.Status != StatusNew && m.Status != StatusUpdated {
		m.Status = StatusUpdated
	}
}

// SetTitleDisplay records the disambiguated display title chosen by the
// orchestrator when multiple mods share a name.
func (m *ModFile) SetTitleDisplay(title string) {
	m.Seen = true
	if m.TitleDisplay != title {
		m.TitleDisplay = title
		m.markChanged()
	}
}

// SetWikiFilenameBase records the disambiguated wiki page base name.
func (m *ModFile) SetWikiFilenameBase(base string) {
	m.Seen = true
	if m.WikiFilenameBase != base {
		m.WikiFilenameBase = base
		m.markChanged()
	}
}

// SetRelatedLinks records wiki links to other mods sharing this mod's
// title.
func (m *ModFile) SetRelatedLinks(links []string) {
	m.Seen = true
	sorted := append([]string(nil), links...)
	sort.Strings(sorted)
	if !equalStrings(m.RelatedLinks, sorted) {
		m.RelatedLinks = sorted
		m.markChanged()
	}
}

// SetCategories assigns externally-derived categories (used for dialects
// whose file bodies carry no category metadata).
func (m *ModFile) SetCategories(cats []string) {
	m.Seen = true
	sorted := append([]string(nil), cats...)
	sort.Strings(sorted)
	if !equalStrings(m.Categories, sorted) {
		m.Categories = sorted
		m.markChanged()
	}
}

// SetURLs assigns externally-derived URLs, splitting them into the nexus
// link and screenshots by hostname.
func (m *ModFile) SetURLs(urls []string) {
	m.Seen = true
	var nexus *ModURL
	var screens []ModURL
	for _, u := range urls {
		parsed := ParseModURL(u)
		if strings.Contains(parsed.URL, "nexusmods.com") && nexus == nil {
			nexus = &parsed
		} else {
			screens = append(screens, parsed)
		}
	}
	if !equalModURLPtr(m.NexusLink, nexus) {
		m.NexusLink = nexus
		m.markChanged()
	}
	if !equalModURLs(m.Screenshots, screens) {
		m.Screenshots = screens
		m.markChanged()
	}
}

// UpdateReadmeDesc replaces the README-derived description.
func (m *ModFile) UpdateReadmeDesc(lines []string) {
	m.Seen = true
	if !equalStrings(m.ReadmeDesc, lines) {
		m.ReadmeDesc = append([]string(nil), lines...)
		m.markChanged()
	}
}

// UpdateChangelog replaces the README-derived changelog.
func (m *ModFile) UpdateChangelog(lines []string) {
	m.Seen = true
	if !equalStrings(m.Changelog, lines) {
		m.Changelog = append([]string(nil), lines...)
		m.markChanged()
	}
}

// DisplayTitle returns the disambiguated title when one was assigned,
// otherwise the extracted title.
func (m *ModFile) DisplayTitle() string {
	if m.TitleDisplay != "" {
		return m.TitleDisplay
	}
	return m.Title
}

// WikiBase returns the base name used to build this mod's wiki page
// filename.
func (m *ModFile) WikiBase() string {
	if m.WikiFilenameBase != "" {
		return m.WikiFilenameBase
	}
	return m.Title
}

func (m *ModFile) String() string {
	return fmt.Sprintf("%s (%s)", m.Title, m.RelFilename)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalModURLs(a, b []ModURL) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalModURLPtr(a, b *ModURL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
