package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeMods(); err != nil {
		return err
	}
	if err := c.normalizeWiki(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeGit()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeMods() error {
	var err error
	if c.Mods.RepoDir, err = expandPath(c.Mods.RepoDir); err != nil {
		return fmt.Errorf("mods.repo_dir: %w", err)
	}
	c.Mods.BaseURL = strings.TrimRight(strings.TrimSpace(c.Mods.BaseURL), "/")
	if c.Mods.BaseURL == "" {
		c.Mods.BaseURL = defaultBaseURL
	}
	c.Mods.DownloadURL = strings.TrimRight(strings.TrimSpace(c.Mods.DownloadURL), "/")
	if c.Mods.DownloadURL == "" {
		c.Mods.DownloadURL = defaultDownloadURL
	}
	return nil
}

func (c *Config) normalizeWiki() error {
	var err error
	if c.Wiki.CabinetDir, err = expandPath(c.Wiki.CabinetDir); err != nil {
		return fmt.Errorf("wiki.cabinet_dir: %w", err)
	}
	if strings.TrimSpace(c.Wiki.StaticPagesDir) != "" {
		if c.Wiki.StaticPagesDir, err = expandPath(c.Wiki.StaticPagesDir); err != nil {
			return fmt.Errorf("wiki.static_pages_dir: %w", err)
		}
	} else {
		c.Wiki.StaticPagesDir = ""
	}
	c.Wiki.CommitMessage = strings.TrimSpace(c.Wiki.CommitMessage)
	if c.Wiki.CommitMessage == "" {
		c.Wiki.CommitMessage = defaultCommitMessage
	}
	return nil
}

func (c *Config) normalizeCache() error {
	var err error
	if strings.TrimSpace(c.Cache.Dir) == "" {
		c.Cache.Dir = defaultCacheDir()
	}
	if c.Cache.Dir, err = expandPath(c.Cache.Dir); err != nil {
		return fmt.Errorf("cache.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeGit() {
	if c.Git.CommandTimeout <= 0 {
		c.Git.CommandTimeout = defaultCommandTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.LogDir) == "" {
		c.Logging.LogDir = defaultLogDir
	}
	var err error
	if c.Logging.LogDir, err = expandPath(c.Logging.LogDir); err != nil {
		return fmt.Errorf("logging.log_dir: %w", err)
	}
	return nil
}
