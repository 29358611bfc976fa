package cabinet

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"modcabinet/internal/cabinetinfo"
	"modcabinet/internal/cache"
	"modcabinet/internal/dirinfo"
	"modcabinet/internal/modfile"
	"modcabinet/internal/readme"
	"modcabinet/internal/report"
	"modcabinet/internal/wiki"
)

// Extensions that can hold mods. Anything with "readme" in the name is
// documentation, not a mod.
var modExtensions = []string{"txt", "bl3hotfix"}

const infoFilename = "cabinet.info"

// walkResult accumulates everything one pass over the mods checkout
// discovered.
type walkResult struct {
	mods []*modfile.ModFile
	// seenCats maps category key to the mods carrying it.
	seenCats map[string][]*modfile.ModFile
	// nameRes groups mods by lower title, then lower author, then base
	// filename, for collision resolution.
	nameRes map[string]map[string]map[string]*modfile.ModFile

	seenMods    map[string]bool
	seenReadmes map[string]bool
	seenInfos   map[string]bool
}

func (r *Runner) walkRepo(ctx context.Context, logger *slog.Logger, sink *report.Sink) (*walkResult, error) {
	res := &walkResult{
		seenCats:    make(map[string][]*modfile.ModFile),
		nameRes:     make(map[string]map[string]map[string]*modfile.ModFile),
		seenMods:    make(map[string]bool),
		seenReadmes: make(map[string]bool),
		seenInfos:   make(map[string]bool),
	}

	root := r.cfg.Mods.RepoDir
	logger.Debug("walking mods checkout", "dir", root)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return fs.SkipDir
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				names = append(names, entry.Name())
			}
		}
		return r.processDir(ctx, logger, dirinfo.New(root, path, names), res, sink)
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("finished walking mods checkout", "mods", len(res.mods))
	return res, nil
}

func (r *Runner) processDir(ctx context.Context, logger *slog.Logger, dir *dirinfo.Dir, res *walkResult, sink *report.Sink) error {
	var rd *readme.Readme
	if name := dir.Readme(); name != "" {
		loaded, err := r.store.LoadReadme(ctx, dir, name)
		if err != nil {
			rel, _ := dir.RelPath(name)
			sink.Errorf("Unable to read README %s: %v", rel, err)
		} else {
			rd = loaded
			res.seenReadmes[rd.RelFilename] = true
		}
	}

	var info *cabinetinfo.Info
	if dir.Contains(infoFilename) {
		loaded, err := r.store.LoadInfo(ctx, dir, infoFilename, sink, r.validCats)
		if err != nil {
			rel, _ := dir.RelPath(infoFilename)
			sink.Errorf("Unable to read %s: %v", rel, err)
		} else {
			info = loaded
			res.seenInfos[info.RelFilename] = true
		}
	}

	var processed []*modfile.ModFile
	for _, ext := range modExtensions {
		for _, name := range dir.AllWithExt(ext) {
			if strings.Contains(name, "readme") {
				continue
			}
			m, err := r.store.LoadMod(ctx, dir, name, modfile.ParseOptions{
				Author:          dir.DirAuthor,
				ValidCategories: r.validCats,
				Sink:            sink,
			})
			if err != nil {
				if modfile.IsNotAModFile(err) {
					// Expected for plain text files in a mods repo.
					continue
				}
				rel, _ := dir.RelPath(name)
				sink.Errorf("Unable to process %s: %v", rel, err)
				continue
			}
			applyInfoEntry(m, info, name)
			if len(m.Categories) == 0 {
				// Free-text and FilterTool files carry no category
				// metadata of their own. Without a cabinet.info entry
				// they are plain text, not listable mods.
				continue
			}
			processed = append(processed, m)
		}
	}

	singleMod := len(processed) == 1
	for _, m := range processed {
		var readmeDesc, changelog []string
		if rd != nil {
			readmeDesc = rd.FindMatching(m.Title, singleMod)
			changelog = rd.FindMatching("changelog", false)
		}
		m.UpdateReadmeDesc(readmeDesc)
		m.UpdateChangelog(changelog)

		for _, cat := range m.Categories {
			res.seenCats[cat] = append(res.seenCats[cat], m)
		}

		titleKey := strings.ToLower(m.Title)
		authorKey := strings.ToLower(m.Author)
		if res.nameRes[titleKey] == nil {
			res.nameRes[titleKey] = make(map[string]map[string]*modfile.ModFile)
		}
		if res.nameRes[titleKey][authorKey] == nil {
			res.nameRes[titleKey][authorKey] = make(map[string]*modfile.ModFile)
		}
		res.nameRes[titleKey][authorKey][filepath.Base(m.RelFilename)] = m

		res.seenMods[m.RelFilename] = true
		res.mods = append(res.mods, m)
	}
	return nil
}

// applyInfoEntry layers cabinet.info categories and URLs onto mods whose
// own dialect carries no category metadata.
func applyInfoEntry(m *modfile.ModFile, info *cabinetinfo.Info, filename string) {
	if info == nil || len(m.Categories) > 0 {
		return
	}
	var entry *cabinetinfo.Entry
	if info.SingleMod {
		entry = info.Get("")
	} else {
		entry = info.Get(filename)
	}
	if entry == nil {
		return
	}
	m.SetCategories(entry.Categories)
	if len(entry.URLs) > 0 {
		m.SetURLs(entry.URLs)
	}
}

// loadAuthors reads every cached author record. The full set is needed
// up front so collision resolution can avoid mod pages that would shadow
// an author page.
func (r *Runner) loadAuthors(ctx context.Context) (map[string]*wiki.Author, error) {
	names, err := r.store.RelPaths(ctx, cache.KindAuthor)
	if err != nil {
		return nil, err
	}
	authors := make(map[string]*wiki.Author, len(names))
	for _, name := range names {
		author := new(wiki.Author)
		if _, ok, err := r.store.Get(ctx, cache.KindAuthor, name, author); err != nil {
			return nil, err
		} else if ok {
			author.Status = modfile.StatusCached
			authors[name] = author
		}
	}
	return authors, nil
}

// resolveNames disambiguates mods sharing a title. Several files by one
// author get " (from <file>)" suffixes; several authors sharing a title
// get " by <author>" page names; mods sharing a title link to each
// other.
func (r *Runner) resolveNames(res *walkResult, authors map[string]*wiki.Author) {
	authorNames := make(map[string]bool, len(authors))
	for name := range authors {
		authorNames[name] = true
	}

	for _, byAuthor := range res.nameRes {
		var shared []*modfile.ModFile
		needAuthor := len(byAuthor) > 1
		for authorKey, files := range byAuthor {
			needFilename := len(files) > 1
			for baseName, m := range files {
				filenameSuffix := ""
				if needFilename {
					filenameSuffix = " (from " + baseName + ")"
				}
				authorSuffix := ""
				if needAuthor {
					authorSuffix = " by " + m.Author
				}

				newFilename := m.Title + filenameSuffix + authorSuffix
				newDisplay := m.Title + filenameSuffix
				// A mod page must not shadow an author page.
				if authorNames[newFilename] {
					newFilename = newFilename + " by " + authorKey
				}
				m.SetWikiFilenameBase(newFilename)
				m.SetTitleDisplay(newDisplay)
				shared = append(shared, m)

				if m.Author != "" {
					author, ok := authors[m.Author]
					if !ok {
						author = wiki.NewAuthor(m.Author, modfile.StatusNew)
						authors[m.Author] = author
					}
					author.AddMod(m)
				}
			}
		}

		// An empty slice clears stale links on mods whose twins were
		// deleted.
		for _, m := range shared {
			links := make([]string, 0, len(shared)-1)
			for _, other := range shared {
				if other == m {
					continue
				}
				links = append(links, wiki.Link(other.DisplayTitle(), other.WikiBase())+", by "+other.Author)
			}
			m.SetRelatedLinks(links)
		}
	}
}
