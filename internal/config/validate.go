package config

import (
	"errors"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMods(); err != nil {
		return err
	}
	if err := c.validateWiki(); err != nil {
		return err
	}
	if err := c.validateGit(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMods() error {
	if strings.TrimSpace(c.Mods.RepoDir) == "" {
		return errors.New("mods.repo_dir must be set")
	}
	if strings.TrimSpace(c.Mods.BaseURL) == "" {
		return errors.New("mods.base_url must be set")
	}
	if strings.TrimSpace(c.Mods.DownloadURL) == "" {
		return errors.New("mods.download_url must be set")
	}
	return nil
}

func (c *Config) validateWiki() error {
	if strings.TrimSpace(c.Wiki.CabinetDir) == "" {
		return errors.New("wiki.cabinet_dir must be set")
	}
	if c.Mods.RepoDir == c.Wiki.CabinetDir {
		return errors.New("wiki.cabinet_dir must differ from mods.repo_dir")
	}
	return nil
}

func (c *Config) validateGit() error {
	if c.Git.CommandTimeout <= 0 {
		return errors.New("git.command_timeout must be positive (seconds)")
	}
	if c.Git.Commit && !c.Git.Enabled {
		return errors.New("git.commit requires git.enabled")
	}
	return nil
}
