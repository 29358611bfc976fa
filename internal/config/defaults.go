package config

const (
	defaultRepoDir        = "~/bl3mods"
	defaultBaseURL        = "https://github.com/BLCM/bl3mods/blob/master"
	defaultDownloadURL    = "https://raw.githubusercontent.com/BLCM/bl3mods/master"
	defaultCabinetDir     = "~/bl3mods.wiki"
	defaultCommitMessage  = "Auto-update from modcabinet"
	defaultCommandTimeout = 300
	defaultLogDir         = "~/.local/share/modcabinet/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Mods: Mods{
			RepoDir:     defaultRepoDir,
			BaseURL:     defaultBaseURL,
			DownloadURL: defaultDownloadURL,
		},
		Wiki: Wiki{
			CabinetDir:    defaultCabinetDir,
			CommitMessage: defaultCommitMessage,
		},
		Cache: Cache{
			Dir: defaultCacheDir(),
		},
		Git: Git{
			Enabled:        true,
			Commit:         true,
			CommandTimeout: defaultCommandTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			LogDir: defaultLogDir,
		},
	}
}
