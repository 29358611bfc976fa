package modfile

import (
	"regexp"
	"strings"
)

var ftTagRe = regexp.MustCompile(`^#<(.*)>$`)

// loadFilterTool extracts from the FilterTool format. The title is the
// text of the first #<...> tag; plain lines after it are description. Any
// later tag ends capture unless its label mentions "description", the one
// nesting allowed to keep contributing text. A raw "set " line always
// ends capture.
func (m *ModFile) loadFilterTool(lines []string, opts ParseOptions) error {
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(raw, "set ") {
			break
		}
		if match := ftTagRe.FindStringSubmatch(line); match != nil {
			label := strings.TrimSpace(match[1])
			if m.Title == "" {
				m.Title = label
				continue
			}
			if strings.Contains(strings.ToLower(label), "description") {
				continue
			}
			break
		}
		if m.Title != "" && line != "" {
			m.addCommentLine(line, "")
		}
	}
	m.trimTrailingDescription()
	m.applyTitleFallback(opts)
	return m.finishHeader(opts, false)
}
