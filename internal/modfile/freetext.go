package modfile

import "strings"

// loadFreeText is the fallback for files with no recognizable structure.
// Every line up to the first raw "set " statement is prospective
// description text. The first candidate line is compared against the
// filename-derived title guess; a close match is consumed as the title
// instead. If no line matched, the filename guess becomes the title.
func (m *ModFile) loadFreeText(lines []string, opts ParseOptions) error {
	guess := titleGuess(opts.Filename)
	for _, raw := range lines {
		if strings.HasPrefix(raw, "set ") {
			break
		}
		m.addCommentLine(raw, guess)
	}
	m.trimTrailingDescription()
	if m.Title == "" {
		m.Title = guess
	}
	return m.finishHeader(opts, false)
}
