package textutil

import "strings"

// MatchThreshold is the minimum similarity ratio considered a match.
// Comparisons are strict: a ratio of exactly 0.8 does not match.
const MatchThreshold = 0.8

// Ratio computes a normalized similarity score between a and b in [0,1].
// The score is (len(a)+len(b)-dist)/(len(a)+len(b)) where dist is the edit
// distance with substitutions counted as a delete plus an insert. Identical
// strings score 1; strings with no characters in common score 0. Comparison
// is case-sensitive; callers lowercase first when they want a fold.
func Ratio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	lensum := len(ra) + len(rb)
	if lensum == 0 {
		return 1
	}
	dist := indelDistance(ra, rb)
	return float64(lensum-dist) / float64(lensum)
}

// Matches reports whether the similarity of a and b exceeds MatchThreshold.
func Matches(a, b string) bool {
	return Ratio(a, b) > MatchThreshold
}

// MatchesFold is Matches with both inputs lowercased first.
func MatchesFold(a, b string) bool {
	return Matches(strings.ToLower(a), strings.ToLower(b))
}

// indelDistance is the edit distance between a and b when only insertions
// and deletions are allowed (a substitution therefore costs 2). Uses the
// standard two-row dynamic program.
func indelDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1]
			} else {
				cur[j] = min(prev[j], cur[j-1]) + 1
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
