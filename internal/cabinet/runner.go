package cabinet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"modcabinet/internal/cache"
	"modcabinet/internal/config"
	"modcabinet/internal/gitrepo"
	"modcabinet/internal/logging"
	"modcabinet/internal/report"
	"modcabinet/internal/wiki"
)

// Options adjust a single generation run.
type Options struct {
	// Offline skips every git network operation: no pulls, no push,
	// no commit. The walk and page rendering still happen.
	Offline bool
	// Force runs the full generation even when the mods checkout has
	// not moved since the last pull.
	Force bool
}

// Summary describes what a run did.
type Summary struct {
	RunID        string
	Skipped      bool
	Mods         int
	Authors      int
	PagesWritten int
	PagesDeleted int
	Messages     []string
	ErrorCount   int
}

// Runner executes generation runs against one config and cache store.
type Runner struct {
	cfg       *config.Config
	store     *cache.Store
	renderer  *wiki.Renderer
	logger    *slog.Logger
	validCats map[string]string
}

// New builds a Runner. logger may be nil.
func New(cfg *config.Config, store *cache.Store, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if store == nil {
		return nil, fmt.Errorf("nil cache store")
	}
	renderer, err := wiki.NewRenderer()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:       cfg,
		store:     store,
		renderer:  renderer,
		logger:    logger.With("component", "cabinet"),
		validCats: wiki.CategoryMap(),
	}, nil
}

// Run performs one generation pass. It returns a Summary even on a
// skipped run; a non-nil error means the run aborted partway.
func (r *Runner) Run(ctx context.Context, opts Options) (*Summary, error) {
	lock := flock.New(r.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another run holds the lock at %s", r.cfg.LockPath())
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	logger.Info("starting generation run")

	summary := &Summary{RunID: runID}
	sink := new(report.Sink)
	gitOn := r.cfg.Git.Enabled && !opts.Offline
	gitTimeout := time.Duration(r.cfg.Git.CommandTimeout) * time.Second

	// Pull the mods checkout first. An unchanged head means nothing to
	// do unless the caller forces a run.
	if gitOn {
		modsRepo, err := gitrepo.Open(r.cfg.Mods.RepoDir, gitTimeout)
		if err != nil {
			return nil, err
		}
		before, err := modsRepo.HeadCommit(ctx)
		if err != nil {
			return nil, err
		}
		if err := modsRepo.Pull(ctx); err != nil {
			return nil, fmt.Errorf("pull mods repo: %w", err)
		}
		after, err := modsRepo.HeadCommit(ctx)
		if err != nil {
			return nil, err
		}
		if before == after {
			if !opts.Force {
				logger.Info("no update found for mods repo")
				summary.Skipped = true
				return summary, nil
			}
			logger.Info("no update found for mods repo, continuing anyway")
		}
	} else {
		logger.Info("skipping mods repo pull")
	}

	walk, err := r.walkRepo(ctx, logger, sink)
	if err != nil {
		return nil, err
	}
	summary.Mods = len(walk.mods)

	for _, msg := range sink.Messages() {
		logger.Warn("processing problem", "detail", msg)
	}

	// Drop cache entries for files deleted from the repository.
	for kind, keep := range map[cache.Kind]map[string]bool{
		cache.KindMod:    walk.seenMods,
		cache.KindReadme: walk.seenReadmes,
		cache.KindInfo:   walk.seenInfos,
	} {
		removed, err := r.store.PruneExcept(ctx, kind, keep)
		if err != nil {
			return nil, err
		}
		if removed > 0 {
			logger.Info("pruned stale cache entries", "kind", string(kind), "count", removed)
		}
	}

	authors, err := r.loadAuthors(ctx)
	if err != nil {
		return nil, err
	}
	r.resolveNames(walk, authors)
	summary.Authors = len(authors)

	if err := r.writePages(ctx, logger, walk, authors, sink, summary, gitOn, gitTimeout); err != nil {
		return nil, err
	}

	// Persist final record state. Setter-driven changes after the
	// initial parse (display titles, README matches, related links)
	// must land in the cache or every later run re-renders them.
	for _, m := range walk.mods {
		mtime := m.Mtime
		if m.HasErrors() {
			mtime = 0
		}
		if err := r.store.Put(ctx, cache.KindMod, m.RelFilename, mtime, m); err != nil {
			return nil, err
		}
	}
	for name, author := range authors {
		if err := r.store.Put(ctx, cache.KindAuthor, name, 0, author); err != nil {
			return nil, err
		}
	}

	summary.Messages = sink.Messages()
	summary.ErrorCount = sink.ErrorCount()
	logger.Info("generation run finished",
		"mods", summary.Mods,
		"authors", summary.Authors,
		"pages_written", summary.PagesWritten,
		"pages_deleted", summary.PagesDeleted,
		"problems", sink.Len(),
	)
	return summary, nil
}
