package cabinet

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"modcabinet/internal/gitrepo"
	"modcabinet/internal/modfile"
	"modcabinet/internal/report"
	"modcabinet/internal/wiki"
)

func (r *Runner) writePages(
	ctx context.Context,
	logger *slog.Logger,
	walk *walkResult,
	authors map[string]*wiki.Author,
	sink *report.Sink,
	summary *Summary,
	gitOn bool,
	gitTimeout time.Duration,
) error {
	var wikiRepo *gitrepo.Repo
	if gitOn {
		repo, err := gitrepo.Open(r.cfg.Wiki.CabinetDir, gitTimeout)
		if err != nil {
			return err
		}
		if err := repo.Pull(ctx); err != nil {
			return fmt.Errorf("pull wiki repo: %w", err)
		}
		wikiRepo = repo
	} else {
		logger.Info("skipping wiki repo pull")
	}

	wikiFiles, err := listWikiFiles(r.cfg.Wiki.CabinetDir)
	if err != nil {
		return err
	}

	// Reserved names can never be claimed by a mod or author page;
	// created names track what this run has produced so far.
	gameFilename := wiki.Filename(wiki.GameTitle)
	reserved := map[string]bool{
		wiki.StatusFilename:     true,
		wiki.SidebarFilename:    true,
		wiki.CategoriesFilename: true,
		gameFilename:            true,
	}
	created := map[string]bool{
		wiki.StatusFilename:     true,
		wiki.SidebarFilename:    true,
		wiki.CategoriesFilename: true,
		gameFilename:            true,
	}
	for _, cat := range wiki.Categories() {
		reserved[cat.WikiFilename()] = true
	}

	staticPages, err := loadStaticPages(r.cfg.Wiki.StaticPagesDir)
	if err != nil {
		return err
	}
	for name := range staticPages {
		reserved[name] = true
	}

	backLink := wiki.Link("Go Back", wiki.GameTitle)

	write := func(filename, content string) error {
		wrote, err := r.writeWikiFile(wikiFiles, filename, content)
		if err != nil {
			return err
		}
		if wrote {
			summary.PagesWritten++
		}
		return nil
	}

	logger.Debug("writing static pages", "count", len(staticPages))
	staticNames := make([]string, 0, len(staticPages))
	for name := range staticPages {
		staticNames = append(staticNames, name)
	}
	sort.Strings(staticNames)
	for _, name := range staticNames {
		created[name] = true
		if err := write(name, staticPages[name]); err != nil {
			return err
		}
	}

	logger.Debug("writing category pages")
	var gameCats []wiki.Category
	for _, cat := range wiki.Categories() {
		mods, ok := walk.seenCats[cat.Key]
		if !ok {
			continue
		}
		gameCats = append(gameCats, cat)

		sort.Slice(mods, func(i, j int) bool {
			a := strings.ToLower(mods[i].DisplayTitle())
			b := strings.ToLower(mods[j].DisplayTitle())
			if a != b {
				return a < b
			}
			return mods[i].Author < mods[j].Author
		})
		listings := make([]wiki.ModListing, 0, len(mods))
		for _, m := range mods {
			listings = append(listings, wiki.ModListing{
				ModLink:    wiki.Link(m.DisplayTitle(), m.WikiBase()),
				AuthorLink: wiki.Link(m.Author, m.Author),
			})
		}
		content, err := r.renderer.RenderCategory(wiki.CategoryPage{
			Category: cat,
			BackLink: backLink,
			Mods:     listings,
		})
		if err != nil {
			return err
		}
		created[cat.WikiFilename()] = true
		if err := write(cat.WikiFilename(), content); err != nil {
			return err
		}
	}

	categoriesLink := wiki.Link("Mod Categories", "Mod Categories")
	gamePage, err := r.renderer.RenderGame(wiki.GamePage{
		Title:          wiki.GameTitle,
		Categories:     gameCats,
		CategoriesLink: categoriesLink,
	})
	if err != nil {
		return err
	}
	if err := write(gameFilename, gamePage); err != nil {
		return err
	}

	sidebar, err := r.renderer.RenderSidebar(wiki.SidebarPage{
		GameLink:       wiki.Link(wiki.GameTitle, wiki.GameTitle),
		Categories:     gameCats,
		CategoriesLink: categoriesLink,
		StatusLink:     wiki.Link("Wiki Status", "Wiki Status"),
	})
	if err != nil {
		return err
	}
	if err := write(wiki.SidebarFilename, sidebar); err != nil {
		return err
	}

	catalog, err := r.renderer.RenderCategories(wiki.CategoriesPage{Categories: wiki.Categories()})
	if err != nil {
		return err
	}
	if err := write(wiki.CategoriesFilename, catalog); err != nil {
		return err
	}

	logger.Debug("writing author pages", "count", len(authors))
	authorNames := make([]string, 0, len(authors))
	for name := range authors {
		authorNames = append(authorNames, name)
	}
	sort.Strings(authorNames)
	for _, name := range authorNames {
		author := authors[name]
		filename := author.WikiFilename()
		switch {
		case reserved[filename]:
			sink.Errorf("Author `%s` uses a reserved name", filename)
		case created[filename]:
			sink.Errorf("Author `%s` has the same name as an already-created file", filename)
		default:
			created[filename] = true
			// CheckModlist must run unconditionally so first-run
			// author data gets populated.
			if author.CheckModlist() != modfile.StatusCached || !wikiFiles[filename] {
				content, err := r.renderer.RenderAuthor(wiki.AuthorPage{
					Name:     author.Name,
					BackLink: backLink,
					ModLinks: author.SortedModLinks(),
				})
				if err != nil {
					return err
				}
				if err := r.writeFile(filename, content); err != nil {
					return err
				}
				summary.PagesWritten++
			}
		}
	}

	logger.Debug("writing mod pages", "count", len(walk.mods))
	for _, m := range walk.mods {
		filename := wiki.Filename(m.WikiBase())
		switch {
		case reserved[filename]:
			sink.Errorf("`%s` uses a reserved name", m.RelFilename)
		case created[filename]:
			sink.Errorf("`%s` has the same name as an already-created file", m.RelFilename)
		default:
			created[filename] = true
			if m.Status != modfile.StatusCached || !wikiFiles[filename] {
				content, err := r.renderer.RenderMod(r.modPage(m, backLink))
				if err != nil {
					return err
				}
				if err := r.writeFile(filename, content); err != nil {
					return err
				}
				summary.PagesWritten++
			}
		}
	}

	// The status page reflects this very run, so it always gets
	// rewritten.
	status, err := r.renderer.RenderStatus(wiki.StatusPage{
		GeneratedAt: time.Now().UTC(),
		RunID:       summary.RunID,
		Errors:      sink.Messages(),
	})
	if err != nil {
		return err
	}
	if err := r.writeFile(wiki.StatusFilename, status); err != nil {
		return err
	}
	summary.PagesWritten++

	if gitOn && r.cfg.Git.Commit {
		logger.Debug("committing wiki repo changes")
		for filename := range wikiFiles {
			if created[filename] {
				continue
			}
			logger.Debug("removing stale page", "page", filename)
			if err := wikiRepo.Rm(ctx, filename); err != nil {
				// Stray editor files or anything outside the repo
				// make git rm fail; the run carries on.
				logger.Error("could not git rm page", "page", filename, "error", err)
				continue
			}
			summary.PagesDeleted++
		}
		untracked, err := wikiRepo.UntrackedFiles(ctx)
		if err != nil {
			return err
		}
		for _, filename := range untracked {
			logger.Debug("adding new page", "page", filename)
			if err := wikiRepo.Add(ctx, filename); err != nil {
				return err
			}
		}
		dirty, err := wikiRepo.IsDirty(ctx)
		if err != nil {
			return err
		}
		if dirty {
			if err := wikiRepo.CommitAll(ctx, r.cfg.Wiki.CommitMessage); err != nil {
				return err
			}
			if err := wikiRepo.Push(ctx); err != nil {
				return err
			}
		} else {
			logger.Debug("no wiki changes to commit")
		}
	} else {
		logger.Info("skipping wiki repo commit")
	}

	return nil
}

// modPage assembles the render data for one mod's wiki page.
func (r *Runner) modPage(m *modfile.ModFile, backLink string) wiki.ModPage {
	relURL := filepath.ToSlash(m.RelFilename)
	page := wiki.ModPage{
		Title:        m.DisplayTitle(),
		BackLink:     backLink,
		Updated:      time.Unix(m.Mtime, 0).UTC(),
		Version:      m.Version,
		License:      m.License,
		LicenseURL:   m.LicenseURL,
		Description:  m.Description,
		ReadmeDesc:   m.ReadmeDesc,
		Changelog:    m.Changelog,
		RelFilename:  filepath.Base(m.RelFilename),
		SourceURL:    r.cfg.Mods.BaseURL + "/" + relURL,
		DownloadURL:  r.cfg.Mods.DownloadURL + "/" + relURL,
		NexusLink:    m.NexusLink,
		Homepage:     m.Homepage,
		Screenshots:  m.Screenshots,
		VideoURLs:    m.VideoURLs,
		OtherURLs:    m.OtherURLs,
		RelatedLinks: m.RelatedLinks,
	}
	if m.Author != "" {
		page.AuthorLink = wiki.Link(m.Author, m.Author)
	}
	for _, key := range m.Categories {
		if cat, ok := wiki.CategoryByKey(key); ok {
			page.Categories = append(page.Categories, cat)
		}
	}
	return page
}

// writeWikiFile writes filename only when its content differs from what
// is already checked out, keeping no-op runs from dirtying the repo.
func (r *Runner) writeWikiFile(wikiFiles map[string]bool, filename, content string) (bool, error) {
	path := filepath.Join(r.cfg.Wiki.CabinetDir, filename)
	if wikiFiles[filename] {
		current, err := os.ReadFile(path)
		if err == nil && string(current) == content {
			return false, nil
		}
	}
	return true, os.WriteFile(path, []byte(content), 0o644)
}

func (r *Runner) writeFile(filename, content string) error {
	return os.WriteFile(filepath.Join(r.cfg.Wiki.CabinetDir, filename), []byte(content), 0o644)
}

// listWikiFiles returns the names of regular files at the top level of
// the wiki checkout.
func listWikiFiles(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list wiki files: %w", err)
	}
	files := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files[entry.Name()] = true
		}
	}
	return files, nil
}

// loadStaticPages reads hand-maintained pages that get copied into the
// wiki verbatim. An unset directory means none.
func loadStaticPages(dir string) (map[string]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read static pages dir: %w", err)
	}
	pages := make(map[string]string, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read static page %s: %w", entry.Name(), err)
		}
		pages[entry.Name()] = string(data)
	}
	return pages, nil
}
