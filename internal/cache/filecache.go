package cache

import (
	"context"
	"fmt"
	"os"

	"modcabinet/internal/cabinetinfo"
	"modcabinet/internal/dirinfo"
	"modcabinet/internal/modfile"
	"modcabinet/internal/readme"
	"modcabinet/internal/report"
)

// LoadMod returns the mod file record for filename inside dir, parsing
// the file only when it is absent from the cache or its mtime moved.
// Records that parsed with errors are stored with mtime 0 so the next
// run retries them.
func (s *Store) LoadMod(ctx context.Context, dir *dirinfo.Dir, filename string, opts modfile.ParseOptions) (*modfile.ModFile, error) {
	path, rel, mtime, err := statFile(dir, filename)
	if err != nil {
		return nil, err
	}

	cached := new(modfile.ModFile)
	cachedMtime, ok, err := s.Get(ctx, KindMod, rel, cached)
	if err != nil {
		return nil, err
	}
	if ok && cachedMtime == mtime {
		cached.Status = modfile.StatusCached
		cached.RelFilename = rel
		return cached, nil
	}

	status := modfile.StatusNew
	if ok {
		status = modfile.StatusUpdated
	}
	opts.Filename = filename
	m, err := modfile.ParseFile(path, opts)
	if err != nil {
		return nil, err
	}
	m.Mtime = mtime
	m.Status = status
	m.RelFilename = rel

	storedMtime := mtime
	if m.HasErrors() {
		storedMtime = 0
	}
	if err := s.Put(ctx, KindMod, rel, storedMtime, m); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadReadme returns the parsed README for filename inside dir,
// re-reading it only when changed since the last run.
func (s *Store) LoadReadme(ctx context.Context, dir *dirinfo.Dir, filename string) (*readme.Readme, error) {
	path, rel, mtime, err := statFile(dir, filename)
	if err != nil {
		return nil, err
	}

	cached := new(readme.Readme)
	cachedMtime, ok, err := s.Get(ctx, KindReadme, rel, cached)
	if err != nil {
		return nil, err
	}
	if ok && cachedMtime == mtime {
		cached.Status = modfile.StatusCached
		cached.RelFilename = rel
		return cached, nil
	}

	status := modfile.StatusNew
	if ok {
		status = modfile.StatusUpdated
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := readme.Parse(f, mtime)
	if err != nil {
		return nil, fmt.Errorf("parse readme %s: %w", rel, err)
	}
	r.Status = status
	r.RelFilename = rel
	if err := s.Put(ctx, KindReadme, rel, mtime, r); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadInfo returns the parsed cabinet.info for filename inside dir,
// re-reading it only when changed since the last run. Line-level
// problems are reported to sink on a fresh parse only.
func (s *Store) LoadInfo(ctx context.Context, dir *dirinfo.Dir, filename string, sink *report.Sink, validCategories map[string]string) (*cabinetinfo.Info, error) {
	path, rel, mtime, err := statFile(dir, filename)
	if err != nil {
		return nil, err
	}

	cached := new(cabinetinfo.Info)
	cachedMtime, ok, err := s.Get(ctx, KindInfo, rel, cached)
	if err != nil {
		return nil, err
	}
	if ok && cachedMtime == mtime {
		cached.Status = modfile.StatusCached
		cached.RelFilename = rel
		return cached, nil
	}

	status := modfile.StatusNew
	if ok {
		status = modfile.StatusUpdated
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info := cabinetinfo.New(mtime, status)
	if err := info.Load(f, rel, sink, validCategories); err != nil {
		return nil, fmt.Errorf("parse cabinet info %s: %w", rel, err)
	}
	info.RelFilename = rel
	if err := s.Put(ctx, KindInfo, rel, mtime, info); err != nil {
		return nil, err
	}
	return info, nil
}

func statFile(dir *dirinfo.Dir, filename string) (path, rel string, mtime int64, err error) {
	path, ok := dir.Path(filename)
	if !ok {
		return "", "", 0, fmt.Errorf("no such file in %s: %s", dir.RelDirPath, filename)
	}
	rel, _ = dir.RelPath(filename)
	st, err := os.Stat(path)
	if err != nil {
		return "", "", 0, err
	}
	return path, rel, st.ModTime().Unix(), nil
}
