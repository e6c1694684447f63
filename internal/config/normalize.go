package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSteam(); err != nil {
		return err
	}
	if err := c.normalizeSteamDB(); err != nil {
		return err
	}
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	// PluginDir stays empty when unset so the Steam root discovery runs.
	if strings.TrimSpace(c.Paths.PluginDir) != "" {
		if c.Paths.PluginDir, err = expandPath(c.Paths.PluginDir); err != nil {
			return fmt.Errorf("paths.plugin_dir: %w", err)
		}
	} else {
		c.Paths.PluginDir = ""
	}
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		c.Paths.ArchiveDir = defaultArchiveDir
	}
	if c.Paths.ArchiveDir, err = expandPath(c.Paths.ArchiveDir); err != nil {
		return fmt.Errorf("paths.archive_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.RegistryPath) == "" {
		c.Paths.RegistryPath = defaultRegistryPath
	}
	if c.Paths.RegistryPath, err = expandPath(c.Paths.RegistryPath); err != nil {
		return fmt.Errorf("paths.registry_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSteam() error {
	c.Steam.Root = strings.TrimSpace(c.Steam.Root)
	if c.Steam.Root == "" {
		return nil
	}
	var err error
	if c.Steam.Root, err = expandPath(c.Steam.Root); err != nil {
		return fmt.Errorf("steam.root: %w", err)
	}
	return nil
}

func (c *Config) normalizeSteamDB() error {
	c.SteamDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.SteamDB.BaseURL), "/")
	if c.SteamDB.BaseURL == "" {
		c.SteamDB.BaseURL = defaultSteamDBBaseURL
	}
	c.SteamDB.UserAgent = strings.TrimSpace(c.SteamDB.UserAgent)
	if c.SteamDB.UserAgent == "" {
		c.SteamDB.UserAgent = defaultUserAgent
	}
	if c.SteamDB.PageLoadTimeout <= 0 {
		c.SteamDB.PageLoadTimeout = defaultPageLoadTimeout
	}
	if c.SteamDB.ChallengeWait <= 0 {
		c.SteamDB.ChallengeWait = defaultChallengeWait
	}
	if c.SteamDB.TableWait <= 0 {
		c.SteamDB.TableWait = defaultTableWait
	}

	cookies := make(map[string]string, len(c.SteamDB.Cookies))
	for name, value := range c.SteamDB.Cookies {
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		cookies[name] = value
	}
	if _, ok := cookies["cf_clearance"]; !ok {
		if value, found := os.LookupEnv("STEAMDB_CF_CLEARANCE"); found && strings.TrimSpace(value) != "" {
			cookies["cf_clearance"] = strings.TrimSpace(value)
		}
	}
	if len(cookies) == 0 {
		cookies = nil
	}
	c.SteamDB.Cookies = cookies
	return nil
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.CheckInterval <= 0 {
		c.Workflow.CheckInterval = defaultCheckInterval
	}
}

func (c *Config) normalizeLogging() {
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
}
