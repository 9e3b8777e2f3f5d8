package config

// Config is the top-level akasha configuration, corresponding to .akasha.yml.
type Config struct {
	DataDir   string          `yaml:"data_dir" koanf:"data_dir"`
	LogLevel  string          `yaml:"log_level" koanf:"log_level"`
	Dataset   DatasetConfig   `yaml:"dataset" koanf:"dataset"`
	Bookmarks BookmarksConfig `yaml:"bookmarks" koanf:"bookmarks"`
	Oracle    OracleConfig    `yaml:"oracle" koanf:"oracle"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
}

// DatasetConfig selects the content library. An empty Dir uses the
// embedded library; an empty Include uses the default globs.
type DatasetConfig struct {
	Dir     string   `yaml:"dir,omitempty" koanf:"dir"`
	Include []string `yaml:"include,omitempty" koanf:"include"`
}

// BookmarksConfig locates the saved-transmission slot. Database is
// relative to DataDir unless absolute.
type BookmarksConfig struct {
	Database string `yaml:"database" koanf:"database"`
	Slot     string `yaml:"slot" koanf:"slot"`
}

// OracleConfig tunes the keyword responder. A zero Seed uses the shared
// random source.
type OracleConfig struct {
	ThinkDelayMS int   `yaml:"think_delay_ms" koanf:"think_delay_ms"`
	Seed         int64 `yaml:"seed,omitempty" koanf:"seed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
