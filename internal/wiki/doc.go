// Package wiki builds the pages that make up the generated mod wiki.
//
// It owns page naming (titles to wiki filenames), HTML link construction,
// the ordered category catalog, per-author records, and the text/template
// rendering of category, mod, author, sidebar, home, and status pages.
package wiki
