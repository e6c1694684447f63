package config

const (
	defaultArchiveDir   = "~/.local/share/steamer/archive"
	defaultLogDir       = "~/.local/share/steamer/logs"
	defaultRegistryPath = "~/.local/share/steamer/registry.db"

	defaultSteamDBBaseURL = "https://steamdb.info"
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36"
	defaultPageLoadTimeout = 60
	defaultChallengeWait   = 35
	defaultTableWait       = 20

	defaultCheckInterval = 60

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArchiveDir:   defaultArchiveDir,
			LogDir:       defaultLogDir,
			RegistryPath: defaultRegistryPath,
		},
		SteamDB: SteamDB{
			BaseURL:         defaultSteamDBBaseURL,
			UserAgent:       defaultUserAgent,
			PageLoadTimeout: defaultPageLoadTimeout,
			ChallengeWait:   defaultChallengeWait,
			TableWait:       defaultTableWait,
		},
		Workflow: Workflow{
			CheckInterval: defaultCheckInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
