// Package dirinfo indexes the files of one mod directory inside a
// repository checkout. Lookups are case insensitive because mod authors
// reference their own files with whatever casing they feel like.
package dirinfo

import (
	"path/filepath"
	"strings"
)

// Dir describes one directory's files relative to the repository root.
type Dir struct {
	// RepoDir is the absolute path of the repository checkout.
	RepoDir string
	// DirPath is the absolute path of this directory.
	DirPath string
	// RelDirPath is DirPath relative to RepoDir.
	RelDirPath string
	// DirAuthor is the first path component under the repository root,
	// which the repository layout reserves for the author name.
	DirAuthor string

	lowerMapping map[string]string
	extensionMap map[string][]string
	noExtension  []string
	readme       string
}

// UnknownAuthor is used when a directory sits directly at the
// repository root with no author component.
const UnknownAuthor = "(unknown)"

// New indexes the given filenames of the directory at dirPath, which
// must live under repoDir.
func New(repoDir, dirPath string, filenames []string) *Dir {
	rel, err := filepath.Rel(repoDir, dirPath)
	if err != nil || rel == "." {
		rel = ""
	}
	d := &Dir{
		RepoDir:      repoDir,
		DirPath:      dirPath,
		RelDirPath:   rel,
		DirAuthor:    UnknownAuthor,
		lowerMapping: make(map[string]string),
		extensionMap: make(map[string][]string),
	}
	if rel != "" {
		d.DirAuthor = strings.Split(rel, string(filepath.Separator))[0]
	}
	for _, name := range filenames {
		lower := strings.ToLower(name)
		if idx := strings.LastIndex(lower, "."); idx >= 0 {
			ext := lower[idx+1:]
			d.extensionMap[ext] = append(d.extensionMap[ext], lower)
		} else {
			d.noExtension = append(d.noExtension, lower)
		}
		d.lowerMapping[lower] = filepath.Join(dirPath, name)

		// Assume at most one README per dir. Good enough in practice.
		if strings.Contains(lower, "readme") {
			d.readme = lower
		}
	}
	return d
}

// Path returns the absolute path for filename, matched case
// insensitively. The second return is false when the file is absent.
func (d *Dir) Path(filename string) (string, bool) {
	path, ok := d.lowerMapping[strings.ToLower(filename)]
	return path, ok
}

// Contains reports whether the directory holds filename, matched case
// insensitively.
func (d *Dir) Contains(filename string) bool {
	_, ok := d.lowerMapping[strings.ToLower(filename)]
	return ok
}

// All returns the lower-cased names of every file in the directory.
func (d *Dir) All() []string {
	out := make([]string, 0, len(d.lowerMapping))
	for name := range d.lowerMapping {
		out = append(out, name)
	}
	return out
}

// AllWithExt returns the lower-cased names of files carrying the given
// extension, without its dot.
func (d *Dir) AllWithExt(extension string) []string {
	return d.extensionMap[extension]
}

// AllNoExt returns the lower-cased names of files with no extension.
func (d *Dir) AllNoExt() []string {
	return d.noExtension
}

// Readme returns the lower-cased name of the directory's README file,
// or "" when there is none.
func (d *Dir) Readme() string {
	return d.readme
}

// RelPath returns filename's path relative to the repository root.
// The second return is false when the file is absent.
func (d *Dir) RelPath(filename string) (string, bool) {
	path, ok := d.Path(filename)
	if !ok {
		return "", false
	}
	rel, err := filepath.Rel(d.RepoDir, path)
	if err != nil {
		return "", false
	}
	return rel, true
}
