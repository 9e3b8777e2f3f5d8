package config

// DefaultPath is the config file read when --config is not given.
const DefaultPath = ".akasha.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  ".akasha",
		LogLevel: "info",
		Bookmarks: BookmarksConfig{
			Database: "akasha.db",
			Slot:     "akasha_saved",
		},
		Oracle: OracleConfig{
			ThinkDelayMS: 2000,
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
