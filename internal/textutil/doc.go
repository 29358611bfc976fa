// Package textutil provides fuzzy string matching for mod titles and
// README section names.
//
// Similarity is a normalized edit-distance ratio in [0,1]. Insertions and
// deletions cost 1, substitutions cost 2, so the ratio rewards shared
// character runs the way a diff would. The fixed acceptance threshold is
// strictly greater than 0.8 everywhere a match decision is made.
package textutil
