package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSteamDB(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		return errors.New("paths.archive_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if strings.TrimSpace(c.Paths.RegistryPath) == "" {
		return errors.New("paths.registry_path must be set")
	}
	return nil
}

func (c *Config) validateSteamDB() error {
	base := strings.TrimSpace(c.SteamDB.BaseURL)
	if base == "" {
		return errors.New("steamdb.base_url must be set")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("steamdb.base_url is not a valid URL: %w", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("steamdb.base_url must be an http(s) URL, got %q", base)
	}
	if strings.TrimSpace(c.SteamDB.UserAgent) == "" {
		return errors.New("steamdb.user_agent must be set")
	}
	return ensurePositiveMap(map[string]int{
		"steamdb.page_load_timeout": c.SteamDB.PageLoadTimeout,
		"steamdb.challenge_wait":    c.SteamDB.ChallengeWait,
		"steamdb.table_wait":        c.SteamDB.TableWait,
	})
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.CheckInterval <= 0 {
		return errors.New("workflow.check_interval must be positive (minutes)")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
