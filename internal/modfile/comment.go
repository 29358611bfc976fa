package modfile

import (
	"strings"

	"modcabinet/internal/textutil"
)

// commentCutset is stripped from both ends of every description line.
const commentCutset = "/#\n\r\t "

// artChars are the characters that make up decorative ASCII-art banners.
// A would-be first description line consisting solely of these is dropped.
const artChars = "_/\\.:|#~ \t"

// addCommentLine appends a raw line to the description after shared
// normalization: comment markers are stripped, a leading empty entry and
// consecutive empty entries are suppressed, and banner art is rejected at
// the start. When matchTitle is non-empty and the description is still
// empty, a line similar enough to matchTitle is consumed as the mod title
// instead of being appended; no further title matching happens once the
// description has content.
func (m *ModFile) addCommentLine(line, matchTitle string) {
	comment := strings.Trim(line, commentCutset)
	if len(m.Description) == 0 {
		if comment == "" {
			return
		}
		if strings.Trim(comment, artChars) == "" {
			return
		}
		if matchTitle != "" && m.Title == "" &&
			textutil.MatchesFold(comment, matchTitle) {
			m.Title = comment
			return
		}
	} else {
		if comment == "" && m.Description[len(m.Description)-1] == "" {
			return
		}
	}
	m.Description = append(m.Description, comment)
}

// trimTrailingDescription drops empty entries left at the end of the
// description once a load pass finishes.
func (m *ModFile) trimTrailingDescription() {
	for len(m.Description) > 0 && m.Description[len(m.Description)-1] == "" {
		m.Description = m.Description[:len(m.Description)-1]
	}
}
