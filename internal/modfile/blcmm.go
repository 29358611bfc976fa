package modfile

import (
	"regexp"
	"strings"
)

var (
	blcmmCategoryRe = regexp.MustCompile(`<category name="([^"]*)"`)
	blcmmCommentRe  = regexp.MustCompile(`^<comment>(.*)</comment>$`)
)

// loadBLCMM extracts from the XML-ish BLCMM export format. The title is
// the first category label in the file; the description is the first
// contiguous run of <comment> tags. Any other tag seen once comments have
// started ends description capture.
func (m *ModFile) loadBLCMM(lines []string, opts ParseOptions) error {
	capturing := false
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if m.Title == "" {
			if match := blcmmCategoryRe.FindStringSubmatch(line); match != nil {
				m.Title = strings.TrimSpace(match[1])
			}
			continue
		}
		if match := blcmmCommentRe.FindStringSubmatch(line); match != nil {
			m.addCommentLine(match[1], "")
			capturing = true
			continue
		}
		if capturing {
			break
		}
	}
	m.trimTrailingDescription()
	m.applyTitleFallback(opts)
	return m.finishHeader(opts, false)
}

// applyTitleFallback substitutes the filename for generic placeholder
// titles like "patch" or "mod".
func (m *ModFile) applyTitleFallback(opts ParseOptions) {
	switch strings.ToLower(strings.TrimSpace(m.Title)) {
	case "patch", "mod":
		m.Title = titleGuess(opts.Filename)
	}
}
