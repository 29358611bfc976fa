package modfile

import (
	"regexp"
	"strings"
)

// The two directive header forms share one extractor. Whichever form
// appears first locks the sub-dialect for the rest of the file: directive
// lines in the other form are treated as free text from then on.
type directiveForm int

const (
	formUnlocked directiveForm = iota
	formTag
	formColon
)

var (
	tagRe   = regexp.MustCompile(`^@(\S+)(?:\s+(.*))?$`)
	colonRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 _-]*?)\s*:\s*(.*)$`)
)

// tagKeys are the recognized @key directives.
var tagKeys = map[string]bool{
	"title": true, "name": true,
	"version": true, "categories": true,
	"author": true, "main-author": true,
	"license": true, "license-url": true,
	"screenshot": true, "video": true,
	"homepage": true, "nexus": true,
	"url": true, "pakfile": true,
}

// colonKeys are the recognized "Key: value" directives.
var colonKeys = map[string]bool{
	"name": true, "version": true, "categories": true,
	"author": true, "main author": true,
	"license": true, "license url": true,
	"screenshot": true, "video": true,
	"homepage": true, "nexus": true,
	"url": true, "pakfile": true,
}

// hasDirectiveHeader reports whether any line before the raw-directive
// section is a recognizable directive in either header form. Used by
// dialect detection to choose between the directive extractor and the
// free-text fallback.
func hasDirectiveHeader(lines []string) bool {
	for _, raw := range lines {
		if isDirectiveTerminator(raw) {
			return false
		}
		stripped := strings.TrimSpace(stripHashes(raw))
		if mt := tagRe.FindStringSubmatch(stripped); mt != nil {
			if tagKeys[strings.ToLower(mt[1])] {
				return true
			}
		}
		if mc := colonRe.FindStringSubmatch(stripped); mc != nil {
			if colonKeys[canonicalColonKey(mc[1])] {
				return true
			}
		}
	}
	return false
}

// isDirectiveTerminator reports whether a raw line begins the machine
// directive section of the file.
func isDirectiveTerminator(raw string) bool {
	return strings.HasPrefix(raw, "Spark") || strings.HasPrefix(raw, "set ")
}

func canonicalColonKey(key string) string {
	return strings.Join(strings.Fields(strings.ToLower(key)), " ")
}

// loadDirectives parses the shared "header block, free text, machine
// directives" shape used by both the tag and colon header forms.
//
// Free-text handling distinguishes description from comments that
// document the directives below them: lines are appended directly until
// the first blank line, after which blocks are buffered and only kept if
// another blank follows before the raw directives start. A buffered
// block still pending when the directive section begins is discarded.
func (m *ModFile) loadDirectives(lines []string, opts ParseOptions) error {
	form := formUnlocked
	direct := true
	var pending []string

	flush := func() {
		if len(pending) == 0 {
			return
		}
		m.addCommentLine("", "")
		for _, p := range pending {
			m.addCommentLine(p, "")
		}
		pending = nil
	}

	for _, raw := range lines {
		if isDirectiveTerminator(raw) {
			break
		}
		stripped := strings.TrimSpace(stripHashes(raw))
		if stripped == "" {
			if direct {
				m.addCommentLine("", "")
				direct = false
			} else {
				flush()
			}
			continue
		}
		if form != formColon {
			if mt := tagRe.FindStringSubmatch(stripped); mt != nil {
				key := strings.ToLower(mt[1])
				if form == formTag || tagKeys[key] {
					form = formTag
					m.dispatchDirective(key, strings.TrimSpace(mt[2]), opts)
					continue
				}
			}
		}
		if form != formTag {
			if mc := colonRe.FindStringSubmatch(stripped); mc != nil {
				key := canonicalColonKey(mc[1])
				if form == formColon || colonKeys[key] {
					form = formColon
					m.dispatchDirective(key, strings.TrimSpace(mc[2]), opts)
					continue
				}
			}
		}
		if direct {
			m.addCommentLine(stripped, "")
		} else {
			pending = append(pending, stripped)
		}
	}

	m.trimTrailingDescription()
	return m.finishHeader(opts, true)
}

// dispatchDirective routes one directive to its field. Keys arrive
// lower-cased with either form's spelling.
func (m *ModFile) dispatchDirective(key, value string, opts ParseOptions) {
	if value == "" {
		m.warnf("Bare tag %q in %s", key, opts.Filename)
		return
	}
	switch key {
	case "title", "name":
		if m.Title == "" {
			m.Title = value
		} else {
			m.errorf("More than one mod name specified in %s", opts.Filename)
		}
	case "version":
		if m.Version == "" {
			m.Version = value
		} else {
			m.errorf("More than one version specified in %s", opts.Filename)
		}
	case "license":
		if m.License == "" {
			m.License = value
		} else {
			m.errorf("More than one license specified in %s", opts.Filename)
		}
	case "license-url", "license url":
		if m.LicenseURL == "" {
			m.LicenseURL = value
		} else {
			m.errorf("More than one license URL specified in %s", opts.Filename)
		}
	case "homepage":
		if m.Homepage == nil {
			u := ParseModURL(value)
			m.Homepage = &u
		} else {
			m.errorf("More than one homepage specified in %s", opts.Filename)
		}
	case "nexus":
		if m.NexusLink == nil {
			u := ParseModURL(value)
			m.NexusLink = &u
		} else {
			m.errorf("More than one nexus URL specified in %s", opts.Filename)
		}
	case "pakfile":
		if m.Pakfile == "" {
			m.Pakfile = value
		} else {
			m.errorf("More than one pakfile specified in %s", opts.Filename)
		}
	case "categories":
		for _, cat := range strings.Split(value, ",") {
			cat = strings.ToLower(strings.TrimSpace(cat))
			if cat == "" {
				continue
			}
			if _, ok := opts.ValidCategories[cat]; ok {
				m.addCategory(cat)
			} else {
				m.warnf("Invalid category %q in %s", cat, opts.Filename)
			}
		}
	case "author", "main-author", "main author":
		m.addOtherAuthor(value, opts.Author)
	case "screenshot":
		m.Screenshots = append(m.Screenshots, ParseModURL(value))
	case "video":
		m.VideoURLs = append(m.VideoURLs, ParseModURL(value))
	case "url":
		m.OtherURLs = append(m.OtherURLs, ParseModURL(value))
	default:
		m.warnf("Unknown key %q in %s", key, opts.Filename)
	}
}

// addOtherAuthor credits a secondary author, skipping the primary author
// and existing entries case-insensitively.
func (m *ModFile) addOtherAuthor(name, primary string) {
	if strings.EqualFold(name, primary) {
		return
	}
	for _, existing := range m.OtherAuthors {
		if strings.EqualFold(existing, name) {
			return
		}
	}
	m.OtherAuthors = append(m.OtherAuthors, name)
}

// finishHeader applies the terminal extraction checks, ordered: title,
// categories (when the dialect requires them), pakfile (pak-only mods).
func (m *ModFile) finishHeader(opts ParseOptions, needCategories bool) error {
	if m.Title == "" {
		return &NotAModFileError{Filename: opts.Filename, Reason: ReasonNoTitle}
	}
	if needCategories && len(m.Categories) == 0 {
		return &NotAModFileError{Filename: opts.Filename, Reason: ReasonNoCategories}
	}
	if opts.PakOnly && m.Pakfile == "" {
		return &NotAModFileError{Filename: opts.Filename, Reason: ReasonNoPakfile}
	}
	return nil
}
